package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/rwjson/ir"
	"github.com/signadot/rwjson/libdiff"
	"github.com/signadot/rwjson/rvalue"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff needs 2 files, got %d", cli.ErrUsage, len(args))
	}
	from, err := cfg.readFile(cc, args[0])
	if err != nil {
		return fmt.Errorf("error processing %s: %w", args[0], err)
	}
	to, err := cfg.readFile(cc, args[1])
	if err != nil {
		return fmt.Errorf("error processing %s: %w", args[1], err)
	}
	d, err := libdiff.Diff(from, to)
	if err != nil {
		return err
	}
	if d == nil {
		return nil
	}
	if cfg.Reverse {
		d, err = libdiff.Reverse(d)
		if err != nil {
			return err
		}
	}
	return cfg.docWriter(cc.Out).write(d)
}

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: missing diff file", cli.ErrUsage)
	}
	dv, err := cfg.readFile(cc, args[0])
	if err != nil {
		return fmt.Errorf("error processing %s: %w", args[0], err)
	}
	d, err := ir.FromSource(dv)
	if err != nil {
		return err
	}
	if cfg.Reverse {
		d, err = libdiff.Reverse(d)
		if err != nil {
			return err
		}
	}
	dw := cfg.docWriter(cc.Out)
	return cfg.each(cc, args[1:], func(_ string, v rvalue.Value) error {
		res, err := libdiff.Apply(v, d)
		if err != nil {
			return err
		}
		return dw.write(res)
	})
}
