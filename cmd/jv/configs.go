package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/rwjson/encode"
	"github.com/signadot/rwjson/eval"
	"github.com/signadot/rwjson/format"
	"github.com/signadot/rwjson/rvalue"
)

type MainConfig struct {
	Color    bool `cli:"name=color desc='encode with color'"`
	Indent   int  `cli:"name=indent desc='indent output by n spaces, 0 for compact'"`
	Strict   bool `cli:"name=strict desc='read input in strict mode'"`
	MaxDepth int  `cli:"name=maxdepth desc='maximum nesting depth of input' default=10000"`

	J bool `cli:"name=j aliases=json desc='output json'"`
	Y bool `cli:"name=y aliases=yaml desc='output yaml'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) loadOpts() []rvalue.LoadOption {
	res := []rvalue.LoadOption{rvalue.LoadTolerant()}
	if cfg.Strict {
		res[0] = rvalue.LoadStrict()
	}
	if cfg.MaxDepth > 0 {
		res = append(res, rvalue.LoadMaxDepth(cfg.MaxDepth))
	}
	return res
}

func (cfg *MainConfig) outFormat() format.Format {
	var f format.Format
	switch {
	case cfg.Y:
		f = format.YAMLFormat
	case cfg.J:
		f = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	return f
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.EncodeIndent(cfg.Indent),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := cfg.Main == nil
	for _, opt := range cfg.mainOpts() {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	return res
}

func (cfg *MainConfig) mainOpts() []*cli.Opt {
	if cfg.Main == nil {
		return nil
	}
	return cfg.Main.Opts
}

type DumpConfig struct {
	*MainConfig
	Dump *cli.Command
}

type ViewConfig struct {
	*MainConfig
	View *cli.Command
}

type GetConfig struct {
	*MainConfig
	All  bool `cli:"name=a desc='print every match of a duplicated final key'"`
	Keys bool `cli:"name=k desc='print the keys of the result instead'"`
	Get  *cli.Command
}

type MatchConfig struct {
	*cli.Command
	*MainConfig

	Trim bool `cli:"name=trim desc='trim the results to the match'"`
	File bool `cli:"name=f desc='consider match a file path'"`
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Diff    *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='apply diff reversed'"`
	Patch   *cli.Command
}

type EvalConfig struct {
	*MainConfig
	Env    eval.Env
	Expand bool `cli:"name=x desc='expand expression references in documents'"`
	Eval   *cli.Command
}

type ServeConfig struct {
	*MainConfig
	ConfigFile string `cli:"name=config desc='configuration file (json, yaml or toml)'"`
	Addr       string `cli:"name=addr desc='TCP listen address'"`
	Load       []string
	Serve      *cli.Command
}
