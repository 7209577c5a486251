package stencil

import "github.com/ortto/stencil/culture"

// registerArithmeticFilters wires the Arithmetic and Counting filter
// groups: add/sub/mul/div (and their full-word aliases), incr/decr,
// incrBy/decrBy. Chains left-associate because each filter call only ever
// sees its own two operands; the chain itself is threaded by eval.go.
func registerArithmeticFilters(r *FilterRegistry) {
	registerBinaryNumeric(r, "add", func(a, b Value) Value { return numericBinOp(a, b, func(x, y float64) float64 { return x + y }) })
	registerBinaryNumeric(r, "sub", func(a, b Value) Value { return numericBinOp(a, b, func(x, y float64) float64 { return x - y }) })
	r.Alias("subtract", "sub")
	registerBinaryNumeric(r, "mul", func(a, b Value) Value { return numericBinOp(a, b, func(x, y float64) float64 { return x * y }) })
	r.Alias("multiply", "mul")

	r.Register("div", 2, false, func(e *evalState, args []Value) (Value, error) {
		b := argFloat(args[1])
		if b == 0 {
			return Value{}, &FilterError{Filter: "div", Cause: errDivideByZero}
		}
		return Float(argFloat(args[0]) / b), nil
	})
	r.Alias("divide", "div")

	r.Register("incr", 1, false, func(e *evalState, args []Value) (Value, error) {
		return Int(argInt(args[0]) + 1), nil
	})
	r.Register("decr", 1, false, func(e *evalState, args []Value) (Value, error) {
		return Int(argInt(args[0]) - 1), nil
	})
	r.Register("incrBy", 2, false, func(e *evalState, args []Value) (Value, error) {
		return Int(argInt(args[0]) + argInt(args[1])), nil
	})
	r.Register("decrBy", 2, false, func(e *evalState, args []Value) (Value, error) {
		return Int(argInt(args[0]) - argInt(args[1])), nil
	})

	registerDecimalFilters(r)
}

// registerDecimalFilters wires decimal/numberWithDelimiter/
// decimalWithDelimiter, the culture-aware grouped-number filters that sit
// on top of the page's default culture rather than a bojanz/currency
// locale (currency amounts go through the "currency" filter instead).
func registerDecimalFilters(r *FilterRegistry) {
	r.Register("decimal", 1, false, func(e *evalState, args []Value) (Value, error) {
		return String(culture.FormatNumber(e.ctx.defaultCulture(), argFloat(args[0]), 2)), nil
	})
	r.Register("decimal", 2, false, func(e *evalState, args []Value) (Value, error) {
		return String(culture.FormatNumber(e.ctx.defaultCulture(), argFloat(args[0]), int(argInt(args[1])))), nil
	})
	r.Alias("numberWithDelimiter", "decimal")
	r.Alias("decimalWithDelimiter", "decimal")
}

type binOpError string

func (e binOpError) Error() string { return string(e) }

const errDivideByZero = binOpError("division by zero")

func registerBinaryNumeric(r *FilterRegistry, name string, op func(a, b Value) Value) {
	r.Register(name, 2, false, func(e *evalState, args []Value) (Value, error) {
		return op(args[0], args[1]), nil
	})
}

// numericBinOp applies op to a and b's float values, returning an Int if
// both operands are integers (so add/sub/mul stay integral until a
// fractional result is actually produced), else a Float.
func numericBinOp(a, b Value, op func(x, y float64) float64) Value {
	result := op(argFloat(a), argFloat(b))
	if a.Kind() == KindInt && b.Kind() == KindInt {
		return Int(int64(result))
	}
	return Float(result)
}
