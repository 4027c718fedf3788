package php

import (
	"github.com/dhamidi/phint/php/parser"
	"github.com/dhamidi/phint/php/phpdoc"
)

type SymbolKind string

const (
	SymbolClass     SymbolKind = "class"
	SymbolInterface SymbolKind = "interface"
	SymbolTrait     SymbolKind = "trait"
	SymbolFunction  SymbolKind = "function"
)

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
)

// ClassModel describes a class, interface, or trait declaration.
// Fully qualified names are stored without the leading backslash.
type ClassModel struct {
	Name       string // fully qualified
	SimpleName string
	Namespace  string
	Kind       SymbolKind
	Parent     string   // fully qualified superclass, "" if none
	Interfaces []string // implemented (class) or extended (interface) interfaces
	IsAbstract bool
	IsFinal    bool
	Doc        string
	DocBlock   *phpdoc.DocBlock
	Methods    []MethodModel
	Span       parser.Span
}

// Method returns the method with the given name, or nil. PHP method names
// are case-insensitive.
func (c *ClassModel) Method(name string) *MethodModel {
	if c == nil {
		return nil
	}
	for i := range c.Methods {
		if equalFoldASCII(c.Methods[i].Name, name) {
			return &c.Methods[i]
		}
	}
	return nil
}

type MethodModel struct {
	Name          string
	Visibility    Visibility
	IsStatic      bool
	IsAbstract    bool
	IsFinal       bool
	Doc           string
	DocBlock      *phpdoc.DocBlock
	Params        []ParameterModel
	HasReturnType bool
	Span          parser.Span
}

type FunctionModel struct {
	Name          string // fully qualified
	SimpleName    string
	Namespace     string
	Doc           string
	DocBlock      *phpdoc.DocBlock
	Params        []ParameterModel
	HasReturnType bool
	Span          parser.Span
}

type ParameterModel struct {
	Name       string // without the leading $
	TypeText   string // explicit declared type, "" if none
	ByRef      bool
	Variadic   bool
	HasDefault bool
	Span       parser.Span
}

// FileModel holds every declaration found in one source file.
type FileModel struct {
	Classes   []*ClassModel
	Functions []*FunctionModel
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
