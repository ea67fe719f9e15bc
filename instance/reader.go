package instance

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// Format of a problem file.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatMPS  Format = "mps"
)

// Reader reads a problem document from a file
type Reader struct {
	filename string
	format   Format
}

func NewReader(filename string, format Format) *Reader {
	if format == "" {
		format = FormatAuto
	}
	return &Reader{
		filename: filename,
		format:   format,
	}
}

// Format returns the format of the file, resolving FormatAuto from the
// file extension. Unknown extensions are read as YAML, which covers JSON.
func (r *Reader) Format() Format {
	if r.format != FormatAuto {
		return r.format
	}
	switch strings.ToLower(filepath.Ext(r.filename)) {
	case ".json":
		return FormatJSON
	case ".mps":
		return FormatMPS
	default:
		return FormatYAML
	}
}

// ReadProblem parses a JSON or YAML problem document. MPS files are read by
// the mps package.
func (r *Reader) ReadProblem() (*Problem, error) {
	if r.Format() == FormatMPS {
		return nil, errors.Errorf("instance: %s is an MPS file", r.filename)
	}

	f, err := os.Open(r.filename)
	if err != nil {
		return nil, errors.Wrap(err, "instance: open problem")
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses a JSON or YAML problem document.
func Decode(in io.Reader) (*Problem, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, errors.Wrap(err, "instance: read problem")
	}

	p := &Problem{}
	if err := yaml.UnmarshalStrict(data, p); err != nil {
		return nil, errors.Wrap(err, "instance: decode problem")
	}

	return p, nil
}
