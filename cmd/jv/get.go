package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/rwjson/ir"
	"github.com/signadot/rwjson/rvalue"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: missing path", cli.ErrUsage)
	}
	path := args[0]
	segs, err := rvalue.ParsePath(path)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	dw := cfg.docWriter(cc.Out)
	return cfg.each(cc, args[1:], func(_ string, v rvalue.Value) error {
		for _, res := range cfg.lookup(v, segs) {
			if err := res.Err(); err != nil {
				return err
			}
			if !cfg.Keys {
				if err := dw.write(res); err != nil {
					return err
				}
				continue
			}
			if t := res.Type(); t != ir.ObjectType {
				return fmt.Errorf("%s: %s has no keys", path, t)
			}
			for k := range res.Entries() {
				if err := dw.write(ir.FromString(k)); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// lookup returns the value at segs, or with -a every value under a
// duplicated final key.
func (cfg *GetConfig) lookup(v rvalue.Value, segs []rvalue.Segment) []rvalue.Value {
	n := len(segs)
	if !cfg.All || n == 0 || segs[n-1].IsIndex {
		return []rvalue.Value{v.GetPath(rvalue.FormatPath(segs))}
	}
	parent := v.GetPath(rvalue.FormatPath(segs[:n-1]))
	if parent.Err() != nil {
		return []rvalue.Value{parent}
	}
	res := parent.GetAll(segs[n-1].Key)
	if len(res) == 0 {
		return []rvalue.Value{parent.Get(segs[n-1].Key)}
	}
	return res
}
