package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	"q.log/tableau/instance"
	"q.log/tableau/instance/mps"
	"q.log/tableau/model"
	"q.log/tableau/simplex"
	"q.log/tableau/verify"
)

var errNoSolution = errors.New("no solution")

type solveOptions struct {
	format        string
	output        string
	maxIterations int
	epsilon       float64
	verify        bool
	tolerance     float64
}

func newSolveCommand() *cobra.Command {
	o := &solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Load a problem, run the simplex method and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.OutOrStdout(), args[0])
		},
	}

	o.addFlags(cmd.Flags())
	return cmd
}

func (o *solveOptions) addFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.format, "format", string(instance.FormatAuto), "problem file format: auto, json, yaml or mps")
	flags.StringVarP(&o.output, "output", "o", "text", "result format: text or yaml")
	flags.IntVar(&o.maxIterations, "max-iterations", 1000, "pivot ceiling, 0 disables it")
	flags.Float64Var(&o.epsilon, "epsilon", 1e-9, "tolerance of sign and ratio tests")
	flags.BoolVar(&o.verify, "verify", false, "cross-check the result with gonum's revised simplex")
	flags.Float64Var(&o.tolerance, "verify-tolerance", 1e-6, "allowed objective difference when verifying")
}

func (o *solveOptions) load(filename string) (*model.Tableau, error) {
	r := instance.NewReader(filename, instance.Format(o.format))

	var (
		p   *instance.Problem
		err error
	)
	switch r.Format() {
	case instance.FormatMPS:
		p, err = mps.ReadFile(filename)
	case instance.FormatJSON, instance.FormatYAML:
		p, err = r.ReadProblem()
	default:
		err = errors.Errorf("unknown format %q", o.format)
	}
	if err != nil {
		return nil, err
	}

	return p.Tableau()
}

func (o *solveOptions) run(out io.Writer, filename string) error {
	t, err := o.load(filename)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, t)

	var ref *verify.Result
	if o.verify && t.Action() != model.None {
		if ref, err = verify.Reference(t.Clone()); err != nil {
			return err
		}
	}

	s := simplex.NewSolver(t, simplex.WithMaxIterations(o.maxIterations), simplex.WithEpsilon(o.epsilon))
	sol, err := s.Run()
	if err != nil {
		return err
	}
	if sol == nil {
		return errors.Wrapf(errNoSolution, "method of %s is not max or min", filename)
	}
	klog.V(1).InfoS("Solved", "file", filename, "pivots", len(s.Steps()))

	if ref != nil {
		if err := verify.Check(sol, ref, o.tolerance); err != nil {
			return err
		}
	}

	switch o.output {
	case "yaml":
		data, err := yaml.Marshal(result(sol, t.N()))
		if err != nil {
			return errors.Wrap(err, "encode result")
		}
		_, err = out.Write(data)
		return err
	default:
		fmt.Fprintf(out, "%v\nResult %v\n", t, sol)
		return nil
	}
}

type solveResult struct {
	Objective float64   `json:"objective"`
	X         []float64 `json:"x"`
}

func result(sol simplex.Solution, n int) solveResult {
	return solveResult{
		Objective: sol.Objective(),
		X:         sol.Values(n),
	}
}
