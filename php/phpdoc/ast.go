// Package phpdoc provides a parser for PHPDoc comments.
package phpdoc

import "strings"

// Node is the interface implemented by all PHPDoc AST nodes.
type Node interface {
	node()
}

// DocBlock represents a complete PHPDoc comment.
type DocBlock struct {
	Body []Node // Summary and description content
	Tags []Node // Block tags like @param, @return, etc.
}

func (DocBlock) node() {}

// Summary returns the rendered text of the block's body, trimmed.
func (d *DocBlock) Summary() string {
	if d == nil {
		return ""
	}
	var sb strings.Builder
	for _, n := range d.Body {
		switch n := n.(type) {
		case Text:
			sb.WriteString(n.Content)
		case InheritDoc:
			sb.WriteString("{@inheritdoc}")
		}
	}
	return strings.TrimSpace(sb.String())
}

// IsInherited reports whether the block defers to an ancestor's
// documentation, i.e. its summary is exactly the inherit marker.
func (d *DocBlock) IsInherited() bool {
	return strings.EqualFold(d.Summary(), "{@inheritdoc}")
}

// Param returns the @param tag for the given variable name ("$foo" or
// "foo"), or nil.
func (d *DocBlock) Param(name string) *Param {
	if d == nil {
		return nil
	}
	name = strings.TrimPrefix(name, "$")
	for _, tag := range d.Tags {
		if p, ok := tag.(*Param); ok && p.Var == name {
			return p
		}
	}
	return nil
}

// Returns collects every @return tag in declaration order.
func (d *DocBlock) Returns() []*Return {
	if d == nil {
		return nil
	}
	var out []*Return
	for _, tag := range d.Tags {
		if r, ok := tag.(*Return); ok {
			out = append(out, r)
		}
	}
	return out
}

// Text represents plain text content.
type Text struct {
	Content string
}

func (Text) node() {}

// InheritDoc represents an {@inheritdoc} inline tag.
type InheritDoc struct{}

func (InheritDoc) node() {}

// Code represents an {@code ...} or backtick inline tag.
type Code struct {
	Content string
}

func (Code) node() {}

// Link represents an {@link ...} inline tag.
type Link struct {
	Reference string
	Label     string
}

func (Link) node() {}

// UnknownInlineTag represents an unrecognized inline tag.
type UnknownInlineTag struct {
	Name    string
	Content string
}

func (UnknownInlineTag) node() {}

// Param represents a @param block tag.
type Param struct {
	Type        *TypeExpr // nil when the tag carries no type
	Var         string    // variable name without the leading $
	Variadic    bool
	ByRef       bool
	Description string
}

func (*Param) node() {}

// Return represents a @return block tag.
type Return struct {
	Type        *TypeExpr
	Description string
}

func (*Return) node() {}

// VarTag represents a @var block tag.
type VarTag struct {
	Type        *TypeExpr
	Var         string
	Description string
}

func (*VarTag) node() {}

// Throws represents a @throws block tag.
type Throws struct {
	Exception   string
	Description string
}

func (*Throws) node() {}

// See represents a @see block tag.
type See struct {
	Reference   string
	Description string
}

func (*See) node() {}

// Since represents a @since block tag.
type Since struct {
	Version string
}

func (*Since) node() {}

// Deprecated represents a @deprecated block tag.
type Deprecated struct {
	Description string
}

func (*Deprecated) node() {}

// Author represents an @author block tag.
type Author struct {
	Name string
}

func (*Author) node() {}

// UnknownBlockTag represents an unrecognized block tag.
type UnknownBlockTag struct {
	Name    string
	Content string
}

func (*UnknownBlockTag) node() {}
