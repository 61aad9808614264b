package main

import (
	"fmt"
	"maps"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/signadot/rwjson/eval"
	"github.com/signadot/rwjson/ir"
	"github.com/signadot/rwjson/rvalue"
)

func jvEval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	dw := cfg.docWriter(cc.Out)
	if cfg.Expand {
		return cfg.each(cc, args, func(_ string, v rvalue.Value) error {
			n, err := ir.FromSource(v)
			if err != nil {
				return err
			}
			env := eval.Env{}
			maps.Copy(env, cfg.Env)
			env[eval.DocName], err = eval.ToAny(v)
			if err != nil {
				return err
			}
			n, err = eval.Expand(n, env)
			if err != nil {
				return fmt.Errorf("error expanding: %w", err)
			}
			return dw.write(n)
		})
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: missing expression", cli.ErrUsage)
	}
	code := args[0]
	return cfg.each(cc, args[1:], func(_ string, v rvalue.Value) error {
		res, err := eval.Eval(code, v, cfg.Env)
		if err != nil {
			return fmt.Errorf("error evaluating: %w", err)
		}
		return dw.write(res)
	})
}

func envFunc(env map[string]any, a string) error {
	key, val, ok := strings.Cut(a, "=")
	if !ok {
		return fmt.Errorf("%w: argument %q expected key=val", cli.ErrUsage, a)
	}
	var v any
	err := yaml.Unmarshal([]byte(val), &v)
	if err != nil {
		return err
	}
	parts := strings.Split(key, ".")
	n := len(parts)
	tmpEnv := env
	for i, part := range parts {
		if i == n-1 {
			tmpEnv[part] = v
			break
		}
		next := tmpEnv[part]
		if next == nil {
			next = map[string]any{}
			tmpEnv[part] = next
		}
		nextEnv, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot access %s, list or scalar", strings.Join(parts[:i+1], "."))
		}
		tmpEnv = nextEnv
	}
	return nil
}
