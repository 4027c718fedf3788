package typehint

import (
	"strings"

	"github.com/dhamidi/phint/php"
	"github.com/dhamidi/phint/php/phpdoc"
)

// Symbol are the coordinates of the declaration being documented: the kind
// and simple name of the enclosing type (empty for free functions), the
// namespace both live in, and the member name.
type Symbol struct {
	Kind      php.SymbolKind
	Namespace string
	Class     string
	Member    string
}

// Resolver locates the docblock for a symbol, walking the inheritance graph
// when a method has no usable documentation of its own.
type Resolver struct {
	index *php.Index
}

func NewResolver(index *php.Index) *Resolver {
	return &Resolver{index: index}
}

// Resolve returns the docblock governing the symbol, or nil. For methods
// the search prefers interfaces over the superclass at every level:
// documented contracts outrank default implementations.
func (r *Resolver) Resolve(sym Symbol) *phpdoc.DocBlock {
	if r == nil || r.index == nil || sym.Member == "" {
		return nil
	}

	if sym.Kind == php.SymbolFunction || sym.Class == "" {
		fn := r.index.Function(qualify(sym.Namespace, sym.Member))
		if fn == nil {
			return nil
		}
		return fn.DocBlock
	}

	class := r.index.Class(qualify(sym.Namespace, sym.Class))
	return r.resolveMember(class, sym.Member, make(map[string]bool))
}

// ParamHint resolves the declarable hint for one parameter, by variable
// name ("$c" or "c").
func (r *Resolver) ParamHint(sym Symbol, varName string) (Hint, bool) {
	doc := r.Resolve(sym)
	param := doc.Param(varName)
	if param == nil {
		return Hint{}, false
	}
	return ExtractHint(param.Type)
}

// ReturnHint resolves the declarable return hint for the symbol. More than
// one @return tag makes the return type unresolved.
func (r *Resolver) ReturnHint(sym Symbol) (Hint, bool) {
	doc := r.Resolve(sym)
	if doc == nil {
		return Hint{}, false
	}
	returns := doc.Returns()
	if len(returns) != 1 {
		return Hint{}, false
	}
	return ExtractHint(returns[0].Type)
}

// resolveMember finds the docblock for a member of the given type,
// following {@inheritdoc} and absent blocks up the hierarchy. The visited
// set guards against cycles in a corrupted symbol model; well-formed
// hierarchies are acyclic and never hit it.
func (r *Resolver) resolveMember(class *php.ClassModel, member string, visited map[string]bool) *phpdoc.DocBlock {
	if class == nil {
		return nil
	}
	key := strings.ToLower(class.Name)
	if visited[key] {
		return nil
	}
	visited[key] = true

	if m := class.Method(member); m != nil && m.DocBlock != nil {
		if class.Kind == php.SymbolTrait || !m.DocBlock.IsInherited() {
			return m.DocBlock
		}
	}

	if doc := r.searchInterfaces(class.Interfaces, member, visited); doc != nil {
		return doc
	}
	if class.Kind == php.SymbolClass && class.Parent != "" {
		return r.resolveMember(r.index.Class(class.Parent), member, visited)
	}
	return nil
}

// searchInterfaces walks candidate interfaces in declaration order and
// returns the first docblock found, recursing into each interface's own
// parents.
func (r *Resolver) searchInterfaces(fqsens []string, member string, visited map[string]bool) *phpdoc.DocBlock {
	for _, fqsen := range fqsens {
		iface := r.index.Class(fqsen)
		if iface == nil {
			continue
		}
		if doc := r.resolveMember(iface, member, visited); doc != nil {
			return doc
		}
	}
	return nil
}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "\\" + name
}
