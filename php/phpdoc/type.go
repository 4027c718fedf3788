package phpdoc

import "strings"

// TypeExpr is a documented type expression: one or more alternatives
// separated by "|". "?T" is shorthand for "null|T".
type TypeExpr struct {
	Alts []TypeAlt
}

// TypeAlt is a single alternative within a type expression.
type TypeAlt struct {
	Name  string
	Array bool // written as "T[]"
}

// IsNull reports whether the alternative is the null type.
func (a TypeAlt) IsNull() bool {
	return strings.EqualFold(a.Name, "null")
}

func (a TypeAlt) String() string {
	if a.Array {
		return a.Name + "[]"
	}
	return a.Name
}

func (t *TypeExpr) String() string {
	if t == nil {
		return ""
	}
	parts := make([]string, len(t.Alts))
	for i, a := range t.Alts {
		parts[i] = a.String()
	}
	return strings.Join(parts, "|")
}

// ParseType parses a documented type expression. Returns nil for an empty
// or malformed expression.
func ParseType(s string) *TypeExpr {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var expr TypeExpr
	if strings.HasPrefix(s, "?") {
		expr.Alts = append(expr.Alts, TypeAlt{Name: "null"})
		s = s[1:]
	}

	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil
		}
		alt := TypeAlt{Name: part}
		if strings.HasSuffix(part, "[]") {
			alt.Array = true
			alt.Name = strings.TrimSuffix(part, "[]")
			if alt.Name == "" {
				return nil
			}
		} else if i := strings.IndexByte(part, '<'); i > 0 && strings.HasSuffix(part, ">") {
			// Generic notation like array<int, string>: keep the base name.
			alt.Name = part[:i]
		}
		expr.Alts = append(expr.Alts, alt)
	}
	return &expr
}
