package relative

import (
	"fmt"
	"strings"
)

// Tokens is an ordered display sequence. Elements are strings, int64 magnitudes
// or nested Tokens produced by wrapper composition.
type Tokens []any

// Flatten concatenates nested sequences into a single level, keeping order.
// Flat input is returned as is.
func Flatten(in Tokens) Tokens {
	if !nested(in) {
		return in
	}
	out := make(Tokens, 0, len(in)+2)
	return appendFlat(out, in)
}

func nested(in Tokens) bool {
	for _, t := range in {
		switch t.(type) {
		case Tokens, []any:
			return true
		}
	}
	return false
}

func appendFlat(dst, src Tokens) Tokens {
	for _, t := range src {
		switch v := t.(type) {
		case Tokens:
			dst = appendFlat(dst, v)
		case []any:
			dst = appendFlat(dst, Tokens(v))
		default:
			dst = append(dst, t)
		}
	}
	return dst
}

// String joins the tokens for plain text display
func (t Tokens) String() string {
	var b strings.Builder
	for _, token := range Flatten(t) {
		switch v := token.(type) {
		case string:
			b.WriteString(v)
		default:
			fmt.Fprint(&b, v)
		}
	}
	return b.String()
}
