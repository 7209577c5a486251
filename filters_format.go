package stencil

import (
	"fmt"
	"strconv"

	"github.com/ortto/stencil/culture"
)

// registerFormatFilters wires currency and the generic format(fmt) filter.
func registerFormatFilters(r *FilterRegistry) {
	r.Register("currency", 1, false, func(e *evalState, args []Value) (Value, error) {
		return formatCurrency(e, args[0], e.ctx.defaultCulture())
	})
	r.Register("currency", 2, false, func(e *evalState, args []Value) (Value, error) {
		return formatCurrency(e, args[0], argString(args[1]))
	})

	r.Register("format", 2, false, func(e *evalState, args []Value) (Value, error) {
		return String(applyPrintfFormat(argString(args[1]), args[0])), nil
	})
}

func formatCurrency(e *evalState, subject Value, cultureTag string) (Value, error) {
	amount := strconv.FormatFloat(argFloat(subject), 'f', -1, 64)
	code := culture.DefaultCurrencyForTag(cultureTag)
	out, err := culture.FormatCurrency(cultureTag, code, amount)
	if err != nil {
		return Value{}, &FilterError{Filter: "currency", Cause: err}
	}
	return String(out), nil
}

// applyPrintfFormat renders v through a Go printf verb, e.g. "%.2f" or
// "%05d", the general-purpose escape hatch the Formatting group's
// format(fmt) filter exposes alongside the date/currency specializations.
func applyPrintfFormat(verb string, v Value) string {
	switch v.Kind() {
	case KindInt:
		return fmt.Sprintf(verb, v.raw.(int64))
	case KindFloat:
		return fmt.Sprintf(verb, v.raw.(float64))
	default:
		return fmt.Sprintf(verb, v.AsString())
	}
}
