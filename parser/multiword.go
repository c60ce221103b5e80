package parser

import (
	"fmt"
	"strings"
)

// multiWordTypes maps each multi-word keyword the grammar understands to
// the canonical registry name it resolves through. These are matched as
// whole consecutive identifier tokens, longest match wins.
var multiWordTypes = map[string]string{
	"double precision":         "double",
	"time with time zone":      "time with time zone",
	"timestamp with time zone": "timestamp with time zone",
}

// The interval grammar is a family of unit-pair productions.
var intervalUnitPairs = []struct {
	from string
	to   string
}{
	{"year", "month"},
	{"day", "second"},
}

func init() {
	for _, pair := range intervalUnitPairs {
		name := fmt.Sprintf("interval %s to %s", pair.from, pair.to)
		multiWordTypes[name] = name
	}
}

// hasMultiWordPrefix reports whether the canonical word sequence is an
// exact multi-word keyword or a proper word-boundary prefix of one.
func hasMultiWordPrefix(words string) bool {
	for keyword := range multiWordTypes {
		if keyword == words || strings.HasPrefix(keyword, words+" ") {
			return true
		}
	}
	return false
}
