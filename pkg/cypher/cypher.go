// Package cypher holds the small string helpers needed around Cypher
// statements: quoting identifiers that cannot be bound as parameters and
// rendering parameterised statements as literal text for logs.
package cypher

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// EscapeString escapes s for use inside a single-quoted Cypher string
// literal. Backslashes are doubled first, then single quotes are prefixed
// with a backslash. Nothing else is touched.
//
// Statements sent to the store never rely on this; values are always bound
// as parameters. It is used to print statements in a form that can be
// pasted into a Cypher shell.
func EscapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// Literal returns s as a single-quoted Cypher string literal.
func Literal(s string) string {
	return "'" + EscapeString(s) + "'"
}

// QuoteIdentifier wraps a label or relationship type in backticks so that
// arbitrary extractor output can be used as an identifier. Embedded
// backticks are doubled.
func QuoteIdentifier(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

var paramRe = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)

// Inline substitutes $param references in query with literal renderings of
// params. Unknown parameters are left as they are.
func Inline(query string, params map[string]any) string {
	return paramRe.ReplaceAllStringFunc(query, func(m string) string {
		v, ok := params[m[1:]]
		if !ok {
			return m
		}
		return literalValue(v)
	})
}

func literalValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return Literal(val)
	case []string:
		parts := make([]string, len(val))
		for i, s := range val {
			parts[i] = Literal(s)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return Literal(fmt.Sprint(val))
	}
}
