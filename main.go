package main

import (
	goflag "flag"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		klog.ErrorS(err, "Failed")
		klog.Flush()
		os.Exit(1)
	}
	klog.Flush()
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tableau",
		Short:         "Solve linear programs with the tableau simplex method",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	fs := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(fs)
	cmd.PersistentFlags().AddGoFlagSet(fs)

	cmd.AddCommand(newSolveCommand())
	return cmd
}
