package main

import (
	"github.com/scott-cotton/cli"

	"github.com/signadot/rwjson/encode"
	"github.com/signadot/rwjson/rvalue"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	dw := cfg.docWriter(cc.Out)
	return cfg.each(cc, args, func(_ string, v rvalue.Value) error {
		return dw.write(v)
	})
}

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := []encode.EncodeOption{encode.EncodeColors(encode.NewColors())}
	if cfg.Indent == 0 {
		opts = append(opts, encode.EncodeIndent(2))
	}
	dw := cfg.docWriter(cc.Out, opts...)
	return cfg.each(cc, args, func(_ string, v rvalue.Value) error {
		return dw.write(v)
	})
}
