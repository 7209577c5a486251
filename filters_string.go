package stencil

import (
	"strings"
	"unicode"
)

// registerStringFilters wires the String filter group.
func registerStringFilters(r *FilterRegistry) {
	r.Register("lower", 1, false, func(e *evalState, args []Value) (Value, error) {
		return String(strings.ToLower(argString(args[0]))), nil
	})
	r.Register("upper", 1, false, func(e *evalState, args []Value) (Value, error) {
		return String(strings.ToUpper(argString(args[0]))), nil
	})
	r.Register("titleCase", 1, false, func(e *evalState, args []Value) (Value, error) {
		return String(titleCase(argString(args[0]))), nil
	})
	r.Register("humanize", 1, false, func(e *evalState, args []Value) (Value, error) {
		return String(humanize(argString(args[0]))), nil
	})
	r.Register("pascalCase", 1, false, func(e *evalState, args []Value) (Value, error) {
		return String(toPascalCase(argString(args[0]))), nil
	})
	r.Register("camelCase", 1, false, func(e *evalState, args []Value) (Value, error) {
		return String(toCamelCase(argString(args[0]))), nil
	})

	r.Register("substring", 2, false, func(e *evalState, args []Value) (Value, error) {
		return String(substring(argString(args[0]), int(argInt(args[1])), -1)), nil
	})
	r.Register("substring", 3, false, func(e *evalState, args []Value) (Value, error) {
		return String(substring(argString(args[0]), int(argInt(args[1])), int(argInt(args[2])))), nil
	})

	r.Register("padLeft", 2, false, func(e *evalState, args []Value) (Value, error) {
		return String(pad(argString(args[0]), int(argInt(args[1])), " ", true)), nil
	})
	r.Register("padLeft", 3, false, func(e *evalState, args []Value) (Value, error) {
		return String(pad(argString(args[0]), int(argInt(args[1])), argString(args[2]), true)), nil
	})
	r.Register("padRight", 2, false, func(e *evalState, args []Value) (Value, error) {
		return String(pad(argString(args[0]), int(argInt(args[1])), " ", false)), nil
	})
	r.Register("padRight", 3, false, func(e *evalState, args []Value) (Value, error) {
		return String(pad(argString(args[0]), int(argInt(args[1])), argString(args[2]), false)), nil
	})

	r.Register("repeating", 2, false, func(e *evalState, args []Value) (Value, error) {
		n := int(argInt(args[1]))
		if n < 0 {
			n = 0
		}
		return String(strings.Repeat(argString(args[0]), n)), nil
	})
}

func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// humanize splits on underscores and camelCase word boundaries, then
// title-cases each resulting word.
func humanize(s string) string {
	words := splitWords(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func splitWords(s string) []string {
	var words []string
	var cur strings.Builder
	runes := []rune(s)
	for i, ch := range runes {
		if ch == '_' || ch == '-' || ch == ' ' {
			if cur.Len() > 0 {
				words = append(words, cur.String())
				cur.Reset()
			}
			continue
		}
		if i > 0 && unicode.IsUpper(ch) && cur.Len() > 0 {
			prev := runes[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				words = append(words, cur.String())
				cur.Reset()
			}
		}
		cur.WriteRune(ch)
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}
	return words
}

func toPascalCase(s string) string {
	words := splitWords(s)
	var b strings.Builder
	for _, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(strings.ToLower(string(r[1:])))
	}
	return b.String()
}

func toCamelCase(s string) string {
	p := toPascalCase(s)
	if p == "" {
		return p
	}
	r := []rune(p)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// substring returns s[start:start+length] clamped to s's bounds;
// length < 0 means "to the end".
func substring(s string, start, length int) string {
	r := []rune(s)
	if start < 0 {
		start = 0
	}
	if start > len(r) {
		return ""
	}
	end := len(r)
	if length >= 0 && start+length < end {
		end = start + length
	}
	return string(r[start:end])
}

func pad(s string, n int, ch string, left bool) string {
	if ch == "" {
		ch = " "
	}
	r := []rune(s)
	if len(r) >= n {
		return s
	}
	padding := strings.Repeat(ch, n-len(r))
	if len(padding) > n-len(r) {
		padding = padding[:n-len(r)]
	}
	if left {
		return padding + s
	}
	return s + padding
}
