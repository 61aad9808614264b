package eval

import (
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/rwjson/debug"
	"github.com/signadot/rwjson/encode"
	"github.com/signadot/rwjson/ir"
	"github.com/signadot/rwjson/rvalue"
)

// Env holds the variables visible to expressions.
type Env map[string]any

// DocName is the variable an evaluated document is bound to.
const DocName = "doc"

// Eval evaluates the expression code with doc bound to the variable doc
// as plain Go values, alongside the variables of env, and returns the
// result as a node.
//
// Besides the expr-lang builtins, expressions may call
//
//	getpath(p)  the value at kinded path p in doc, or nil
//	dump(x)     the compact JSON text of x
//	getenv(k)   the environment variable k
func Eval(code string, doc ir.Source, env Env) (*ir.Node, error) {
	x, err := evalAny(code, doc, env)
	if err != nil {
		return nil, err
	}
	return FromAny(x)
}

func evalAny(code string, doc ir.Source, env Env) (any, error) {
	full := Env{}
	for k, v := range env {
		full[k] = v
	}
	var root rvalue.Value
	if doc != nil {
		x, err := ToAny(doc)
		if err != nil {
			return nil, err
		}
		full[DocName] = x
		root, err = readable(doc)
		if err != nil {
			return nil, err
		}
	}
	prg, err := expr.Compile(code, exprOpts(root)...)
	if err != nil {
		return nil, fmt.Errorf("error compiling %q: %w", code, err)
	}
	res, err := vm.Run(prg, map[string]any(full))
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", code, err)
	}
	if debug.Eval() {
		debug.Logf("eval %q gave %#v\n", code, res)
	}
	return res, nil
}

func readable(doc ir.Source) (rvalue.Value, error) {
	switch x := doc.(type) {
	case rvalue.Value:
		return x.Tolerant(), nil
	case rvalue.Owned:
		return x.Tolerant(), nil
	}
	o, err := rvalue.FromSource(doc, rvalue.LoadTolerant())
	if err != nil {
		return rvalue.Value{}, err
	}
	return o.Value, nil
}

func exprOpts(root rvalue.Value) []expr.Option {
	return []expr.Option{
		expr.Function("getpath", func(params ...any) (any, error) {
			v := root.GetPath(params[0].(string))
			if rvalue.IsNotFound(v.Err()) {
				return nil, nil
			}
			return ToAny(v)
		},
			new(func(string) any)),
		expr.Function("dump", func(params ...any) (any, error) {
			n, err := FromAny(params[0])
			if err != nil {
				return nil, err
			}
			return encode.Dump(n)
		},
			new(func(any) string)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}
