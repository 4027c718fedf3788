package php

import "strings"

// Index is a read-only lookup over scanned declarations. PHP class and
// function names are case-insensitive, so keys are canonicalized by
// stripping the leading backslash and lowercasing.
type Index struct {
	classes   map[string]*ClassModel
	functions map[string]*FunctionModel
}

func NewIndex(classes []*ClassModel, functions []*FunctionModel) *Index {
	ix := &Index{
		classes:   make(map[string]*ClassModel),
		functions: make(map[string]*FunctionModel),
	}
	for _, c := range classes {
		ix.classes[canonicalName(c.Name)] = c
	}
	for _, f := range functions {
		ix.functions[canonicalName(f.Name)] = f
	}
	return ix
}

// Class returns the class, interface, or trait with the given fully
// qualified name, or nil.
func (ix *Index) Class(fqn string) *ClassModel {
	if ix == nil {
		return nil
	}
	return ix.classes[canonicalName(fqn)]
}

// Function returns the free function with the given fully qualified name,
// or nil.
func (ix *Index) Function(fqn string) *FunctionModel {
	if ix == nil {
		return nil
	}
	return ix.functions[canonicalName(fqn)]
}

func (ix *Index) Classes() []*ClassModel {
	out := make([]*ClassModel, 0, len(ix.classes))
	for _, c := range ix.classes {
		out = append(out, c)
	}
	return out
}

func (ix *Index) Functions() []*FunctionModel {
	out := make([]*FunctionModel, 0, len(ix.functions))
	for _, f := range ix.functions {
		out = append(out, f)
	}
	return out
}

func canonicalName(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, "\\"))
}
