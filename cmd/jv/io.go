package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/rwjson/encode"
	"github.com/signadot/rwjson/ir"
	"github.com/signadot/rwjson/rvalue"
)

// each parses every file, or stdin when there are none, and calls f with
// the document. Strict mode failures raised by f are returned as errors.
func (cfg *MainConfig) each(cc *cli.Context, files []string, f func(file string, v rvalue.Value) error) error {
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		v, err := cfg.readFile(cc, file)
		if err == nil {
			err = process(f, file, v)
		}
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
	}
	return nil
}

func process(f func(string, rvalue.Value) error, file string, v rvalue.Value) (err error) {
	defer rvalue.Catch(&err)
	return f(file, v)
}

func (cfg *MainConfig) readFile(cc *cli.Context, file string) (rvalue.Value, error) {
	var r io.Reader = cc.In
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return rvalue.Value{}, fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
		r = f
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return rvalue.Value{}, fmt.Errorf("error reading: %w", err)
	}
	return rvalue.Parse(d, cfg.loadOpts()...)
}

// docWriter writes documents one after the other: JSON documents each on
// their own line, YAML documents separated by "---".
type docWriter struct {
	w    io.Writer
	opts []encode.EncodeOption
	yaml bool
	n    int
}

func (cfg *MainConfig) docWriter(w io.Writer, extra ...encode.EncodeOption) *docWriter {
	opts := append(cfg.encOpts(w), extra...)
	return &docWriter{
		w:    w,
		opts: opts,
		yaml: encode.FormatFromOpts(opts...).IsYAML(),
	}
}

func (dw *docWriter) write(v ir.Source) error {
	if dw.n > 0 && dw.yaml {
		if _, err := io.WriteString(dw.w, "---\n"); err != nil {
			return err
		}
	}
	dw.n++
	if err := encode.Encode(v, dw.w, dw.opts...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	if dw.yaml {
		return nil
	}
	_, err := io.WriteString(dw.w, "\n")
	return err
}
