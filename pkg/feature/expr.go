package feature

import (
	"fmt"
	"strconv"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalNumber evaluates a dialog's "number" field expression in a fresh
// sandboxed zygomys environment per call. Dialogs may hand the engine
// simple arithmetic; the kernel only ever sees the resulting number. The
// environment is a NewZlispSandbox so an expression cannot reach the
// filesystem or network, and its result must reduce to a number.
//
// A bare numeric literal ("12.5") is handled as a fast path without
// invoking the interpreter at all, since the overwhelming majority of
// number fields are never touched by their dialog's expression mode.
func EvalNumber(expr string) (float64, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, fmt.Errorf("feature: empty number expression")
	}
	if v, err := strconv.ParseFloat(expr, 64); err == nil {
		return v, nil
	}

	env := zygo.NewZlispSandbox()
	defer env.Stop()

	if err := env.LoadString(expr); err != nil {
		return 0, fmt.Errorf("feature: parsing number expression %q: %w", expr, err)
	}
	res, err := env.Run()
	if err != nil {
		return 0, fmt.Errorf("feature: evaluating number expression %q: %w", expr, err)
	}
	return sexpToFloat64(res)
}

func sexpToFloat64(res zygo.Sexp) (float64, error) {
	switch v := res.(type) {
	case *zygo.SexpFloat:
		return float64(v.Val), nil
	case *zygo.SexpInt:
		return float64(v.Val), nil
	default:
		if f, err := strconv.ParseFloat(strings.TrimSpace(res.SexpString()), 64); err == nil {
			return f, nil
		}
		return 0, fmt.Errorf("feature: number expression did not reduce to a number, got %T", res)
	}
}
