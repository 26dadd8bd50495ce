package app

import (
	"strings"
	"unicode/utf8"
)

const maxTraceQueryBytes = 256

// traceQuery flattens a statement onto one line for span attributes. Owner
// keys and values travel as bind args, so the text itself holds no user data.
func traceQuery(query string) string {
	flat := strings.Join(strings.Fields(query), " ")
	if len(flat) <= maxTraceQueryBytes {
		return flat
	}

	cut := maxTraceQueryBytes
	for cut > 0 && !utf8.RuneStart(flat[cut]) {
		cut--
	}
	return flat[:cut] + "..."
}
