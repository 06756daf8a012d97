package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// EvalContext exposes the size helpers kib and mib to option expressions.
func EvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"kib": scaleFunc(1 << 10),
			"mib": scaleFunc(1 << 20),
		},
	}
}

func scaleFunc(unit int64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "n", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return args[0].Multiply(cty.NumberIntVal(unit)), nil
		},
	})
}
