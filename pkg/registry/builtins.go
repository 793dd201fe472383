package registry

import (
	"context"
	"fmt"
	"math"
)

// RegisterBuiltins adds the arithmetic helpers every scene can rely on.
func RegisterBuiltins(r *Registry) {
	r.Register("multiply", multiply)
	r.Register("sum", sum)
	r.Register("clamp", clamp)
}

// multiply returns a*b.
func multiply(_ context.Context, args map[string]any) (any, error) {
	a, err := Float(args, "a")
	if err != nil {
		return nil, err
	}
	b, err := Float(args, "b")
	if err != nil {
		return nil, err
	}
	return a * b, nil
}

// sum adds every number in "values".
func sum(_ context.Context, args map[string]any) (any, error) {
	raw, ok := args["values"].([]any)
	if !ok {
		return nil, fmt.Errorf("sum: argument %q must be a list", "values")
	}
	total := 0.0
	for i, v := range raw {
		f, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("sum: values[%d] is not a number: %v", i, v)
		}
		total += f
	}
	return total, nil
}

// clamp limits "value" to [min, max].
func clamp(_ context.Context, args map[string]any) (any, error) {
	v, err := Float(args, "value")
	if err != nil {
		return nil, err
	}
	lo, err := Float(args, "min")
	if err != nil {
		return nil, err
	}
	hi, err := Float(args, "max")
	if err != nil {
		return nil, err
	}
	if lo > hi {
		return nil, fmt.Errorf("clamp: min %v greater than max %v", lo, hi)
	}
	return math.Min(math.Max(v, lo), hi), nil
}

// Float reads a numeric argument. YAML and JSON decoders produce several
// numeric types, all of which are accepted.
func Float(args map[string]any, key string) (float64, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing argument %q", key)
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, fmt.Errorf("argument %q is not a number: %v", key, v)
	}
	return f, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
