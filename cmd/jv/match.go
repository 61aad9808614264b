package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/rwjson/match"
	"github.com/signadot/rwjson/rvalue"
)

func jvMatch(cfg *MatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: missing pattern", cli.ErrUsage)
	}
	var pattern rvalue.Value
	if cfg.File {
		pattern, err = cfg.readFile(cc, args[0])
	} else {
		pattern, err = rvalue.Parse([]byte(args[0]), cfg.loadOpts()...)
	}
	if err != nil {
		return fmt.Errorf("error decoding pattern: %w", err)
	}
	dw := cfg.docWriter(cc.Out)
	return cfg.each(cc, args[1:], func(_ string, v rvalue.Value) error {
		ok, err := match.Match(v, pattern)
		if err != nil || !ok {
			return err
		}
		if !cfg.Trim {
			return dw.write(v)
		}
		t, err := match.Trim(pattern, v)
		if err != nil {
			return err
		}
		return dw.write(t)
	})
}
