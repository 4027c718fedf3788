// Package typehint injects documented parameter and return types into PHP
// signatures that lack explicit declarations.
package typehint

import (
	"strings"

	"github.com/dhamidi/phint/php/phpdoc"
)

// Hint is a type declaration derived from documentation.
type Hint struct {
	Name     string
	Nullable bool
}

// scalarAliases maps long-form scalar names onto the declarable spelling.
var scalarAliases = map[string]string{
	"integer":  "int",
	"boolean":  "bool",
	"double":   "float",
	"callback": "callable",
}

// scalarHints is the set of lowercase type names that are legal in a
// declaration. Anything else written in lowercase is assumed to be a
// pseudo-type or a typo and is skipped.
var scalarHints = map[string]bool{
	"array":    true,
	"bool":     true,
	"callable": true,
	"float":    true,
	"int":      true,
	"self":     true,
	"string":   true,
}

// ExtractHint converts a documented type expression into a declarable hint.
// It returns false whenever the expression is missing, ambiguous, or names
// a type that cannot safely appear in a signature.
func ExtractHint(expr *phpdoc.TypeExpr) (Hint, bool) {
	if expr == nil || len(expr.Alts) == 0 {
		return Hint{}, false
	}

	var alt phpdoc.TypeAlt
	nullable := false

	switch len(expr.Alts) {
	case 1:
		alt = expr.Alts[0]
		if alt.IsNull() {
			return Hint{}, false
		}
	case 2:
		a, b := expr.Alts[0], expr.Alts[1]
		switch {
		case a.IsNull() && b.IsNull():
			return Hint{}, false
		case a.IsNull():
			alt, nullable = b, true
		case b.IsNull():
			alt, nullable = a, true
		default:
			// Two real alternatives: ambiguous.
			return Hint{}, false
		}
	default:
		return Hint{}, false
	}

	name := alt.Name
	if alt.Array {
		name = "array"
	}
	if name == "" {
		return Hint{}, false
	}

	name, ok := validateHintName(name)
	if !ok {
		return Hint{}, false
	}
	return Hint{Name: name, Nullable: nullable}, true
}

// validateHintName normalizes aliases and enforces the scalar whitelist for
// names written fully in lowercase. Mixed-case names are presumed to be
// class names and pass through unchanged.
func validateHintName(name string) (string, bool) {
	lower := strings.ToLower(name)
	if lower != name {
		return name, true
	}
	if alias, ok := scalarAliases[lower]; ok {
		lower = alias
	}
	if !scalarHints[lower] {
		return "", false
	}
	return lower, true
}
