package php

import (
	"strings"

	"github.com/dhamidi/phint/php/parser"
	"github.com/dhamidi/phint/php/phpdoc"
)

// ParseFile builds the symbol model for one source file. The parser is
// signature-level: it records declarations, inheritance references, and
// docblocks, and skips over statement bodies by brace counting.
func ParseFile(source []byte, file string) *FileModel {
	w := &sourceWalker{
		tokens: parser.Tokenize(source, file),
		uses:   make(map[string]string),
		model:  &FileModel{},
	}
	w.walk()
	return w.model
}

type sourceWalker struct {
	tokens    []parser.Token
	pos       int
	namespace string
	uses      map[string]string // lowercased alias -> fully qualified name
	model     *FileModel

	pendingDoc string
}

func (w *sourceWalker) walk() {
	for {
		tok, ok := w.nextSignificant()
		if !ok {
			return
		}

		switch tok.Kind {
		case parser.TokenNamespace:
			w.parseNamespace()

		case parser.TokenUse:
			w.parseUse()

		case parser.TokenClass, parser.TokenInterface, parser.TokenTrait:
			if prev := w.prevSignificantKind(); prev == parser.TokenDoubleColon || prev == parser.TokenNew {
				// Foo::class constant or anonymous class expression.
				continue
			}
			doc := w.takeDoc()
			w.parseClassLike(tok, doc)

		case parser.TokenFunction:
			doc := w.takeDoc()
			if fn, ok := w.parseFunctionSignature(); ok {
				fn.Namespace = w.namespace
				fn.SimpleName = fn.Name
				fn.Name = qualify(w.namespace, fn.SimpleName)
				fn.Doc = doc
				if doc != "" {
					fn.DocBlock = phpdoc.Parse(doc)
				}
				w.model.Functions = append(w.model.Functions, fn)
			}

		case parser.TokenLBrace:
			w.skipBalancedBraces()
		}
	}
}

// nextSignificant advances to the next token that is not whitespace, not a
// comment, and not part of an attribute. Doc comments are remembered for
// the next declaration; most statement boundaries discard them.
func (w *sourceWalker) nextSignificant() (parser.Token, bool) {
	for w.pos < len(w.tokens) {
		tok := w.tokens[w.pos]
		w.pos++

		switch tok.Kind {
		case parser.TokenWhitespace, parser.TokenComment, parser.TokenLineComment,
			parser.TokenInlineHTML, parser.TokenOpenTag, parser.TokenOpenTagEcho, parser.TokenCloseTag:
			continue
		case parser.TokenDocComment:
			w.pendingDoc = tok.Literal
			continue
		case parser.TokenAttribute:
			w.skipAttribute()
			continue
		}

		switch tok.Kind {
		case parser.TokenSemicolon, parser.TokenRBrace:
			w.pendingDoc = ""
		}

		return tok, true
	}
	return parser.Token{Kind: parser.TokenEOF}, false
}

func (w *sourceWalker) peekSignificant() parser.Token {
	saved := w.pos
	savedDoc := w.pendingDoc
	tok, _ := w.nextSignificant()
	w.pos = saved
	w.pendingDoc = savedDoc
	return tok
}

func (w *sourceWalker) prevSignificantKind() parser.TokenKind {
	for i := w.pos - 2; i >= 0; i-- {
		switch w.tokens[i].Kind {
		case parser.TokenWhitespace, parser.TokenComment, parser.TokenLineComment, parser.TokenDocComment:
			continue
		}
		return w.tokens[i].Kind
	}
	return parser.TokenEOF
}

func (w *sourceWalker) takeDoc() string {
	doc := w.pendingDoc
	w.pendingDoc = ""
	return doc
}

// skipAttribute consumes the tokens of a #[...] attribute group.
func (w *sourceWalker) skipAttribute() {
	depth := 1
	for w.pos < len(w.tokens) && depth > 0 {
		switch w.tokens[w.pos].Kind {
		case parser.TokenLBracket, parser.TokenAttribute:
			depth++
		case parser.TokenRBracket:
			depth--
		}
		w.pos++
	}
}

func (w *sourceWalker) skipBalancedBraces() {
	depth := 1
	for depth > 0 {
		tok, ok := w.nextSignificant()
		if !ok {
			return
		}
		switch tok.Kind {
		case parser.TokenLBrace:
			depth++
		case parser.TokenRBrace:
			depth--
		}
	}
}

func (w *sourceWalker) parseNamespace() {
	var sb strings.Builder
	for {
		tok := w.peekSignificant()
		switch tok.Kind {
		case parser.TokenIdent:
			sb.WriteString(tok.Literal)
			w.nextSignificant()
		case parser.TokenNsSeparator:
			sb.WriteString("\\")
			w.nextSignificant()
		default:
			w.namespace = sb.String()
			w.uses = make(map[string]string)
			// Consume the terminator; a braced namespace keeps its body
			// at the top level of the walk.
			if tok.Kind == parser.TokenSemicolon || tok.Kind == parser.TokenLBrace {
				w.nextSignificant()
			}
			return
		}
	}
}

// parseUse handles "use Fully\Qualified\Name [as Alias];". Function and
// const imports and group-use braces are skipped; they never name types
// that inheritance resolution cares about.
func (w *sourceWalker) parseUse() {
	tok := w.peekSignificant()
	if tok.Kind == parser.TokenFunction || tok.Kind == parser.TokenConst {
		w.skipStatement()
		return
	}

	name, last := w.readName()
	if name == "" {
		return
	}

	tok = w.peekSignificant()
	switch tok.Kind {
	case parser.TokenLBrace:
		w.skipStatement()
		return
	case parser.TokenAs:
		w.nextSignificant()
		alias := w.peekSignificant()
		if alias.Kind == parser.TokenIdent {
			w.nextSignificant()
			w.uses[strings.ToLower(alias.Literal)] = strings.TrimPrefix(name, "\\")
		}
		w.skipStatement()
		return
	}

	w.uses[strings.ToLower(last)] = strings.TrimPrefix(name, "\\")
	w.skipStatement()
}

func (w *sourceWalker) skipStatement() {
	for {
		tok, ok := w.nextSignificant()
		if !ok || tok.Kind == parser.TokenSemicolon {
			return
		}
		if tok.Kind == parser.TokenLBrace {
			w.skipBalancedBraces()
			return
		}
	}
}

// readName reads a possibly qualified name; returns the full text and its
// last segment.
func (w *sourceWalker) readName() (string, string) {
	var sb strings.Builder
	last := ""
	for {
		tok := w.peekSignificant()
		switch tok.Kind {
		case parser.TokenIdent, parser.TokenArray, parser.TokenCallable, parser.TokenStatic:
			sb.WriteString(tok.Literal)
			last = tok.Literal
			w.nextSignificant()
		case parser.TokenNsSeparator:
			sb.WriteString("\\")
			w.nextSignificant()
		default:
			return sb.String(), last
		}
	}
}

// resolveName turns a source-level type name into a fully qualified one
// using the current namespace and use-statement aliases.
func (w *sourceWalker) resolveName(name string) string {
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "\\") {
		return strings.TrimPrefix(name, "\\")
	}
	first := name
	rest := ""
	if i := strings.Index(name, "\\"); i >= 0 {
		first, rest = name[:i], name[i+1:]
	}
	if fqn, ok := w.uses[strings.ToLower(first)]; ok {
		if rest != "" {
			return fqn + "\\" + rest
		}
		return fqn
	}
	return qualify(w.namespace, name)
}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "\\" + name
}

func (w *sourceWalker) parseClassLike(kw parser.Token, doc string) {
	kind := SymbolClass
	switch kw.Kind {
	case parser.TokenInterface:
		kind = SymbolInterface
	case parser.TokenTrait:
		kind = SymbolTrait
	}

	nameTok := w.peekSignificant()
	if nameTok.Kind != parser.TokenIdent {
		return
	}
	w.nextSignificant()

	model := &ClassModel{
		SimpleName: nameTok.Literal,
		Namespace:  w.namespace,
		Name:       qualify(w.namespace, nameTok.Literal),
		Kind:       kind,
		Doc:        doc,
		Span:       kw.Span,
	}
	if doc != "" {
		model.DocBlock = phpdoc.Parse(doc)
	}

	for {
		tok := w.peekSignificant()
		if tok.Kind == parser.TokenExtends {
			w.nextSignificant()
			names := w.readNameList()
			if kind == SymbolInterface {
				model.Interfaces = append(model.Interfaces, names...)
			} else if len(names) > 0 {
				model.Parent = names[0]
			}
			continue
		}
		if tok.Kind == parser.TokenImplements {
			w.nextSignificant()
			model.Interfaces = append(model.Interfaces, w.readNameList()...)
			continue
		}
		break
	}

	// Body
	tok, ok := w.nextSignificant()
	if !ok || tok.Kind != parser.TokenLBrace {
		w.model.Classes = append(w.model.Classes, model)
		return
	}

	depth := 1
	for depth > 0 {
		tok, ok := w.nextSignificant()
		if !ok {
			break
		}
		switch tok.Kind {
		case parser.TokenLBrace:
			depth++
		case parser.TokenRBrace:
			depth--
		case parser.TokenFunction:
			if depth != 1 {
				continue
			}
			fnIdx := w.pos - 1
			methodDoc := w.takeDoc()
			if fn, ok := w.parseFunctionSignature(); ok {
				method := MethodModel{
					Name:          fn.SimpleName,
					Visibility:    VisibilityPublic,
					Doc:           methodDoc,
					Params:        fn.Params,
					HasReturnType: fn.HasReturnType,
					Span:          fn.Span,
				}
				if methodDoc != "" {
					method.DocBlock = phpdoc.Parse(methodDoc)
				}
				w.applyModifiers(&method, fnIdx)
				model.Methods = append(model.Methods, method)
			}
		}
	}

	w.model.Classes = append(w.model.Classes, model)
}

// applyModifiers walks backwards from the function keyword to pick up
// visibility and the static/abstract/final modifiers.
func (w *sourceWalker) applyModifiers(m *MethodModel, fnIdx int) {
	for i := fnIdx - 1; i >= 0; i-- {
		tok := w.tokens[i]
		switch tok.Kind {
		case parser.TokenWhitespace, parser.TokenComment, parser.TokenLineComment, parser.TokenDocComment:
			continue
		case parser.TokenPublic:
			m.Visibility = VisibilityPublic
		case parser.TokenProtected:
			m.Visibility = VisibilityProtected
		case parser.TokenPrivate:
			m.Visibility = VisibilityPrivate
		case parser.TokenStatic:
			m.IsStatic = true
		case parser.TokenAbstract:
			m.IsAbstract = true
		case parser.TokenFinal:
			m.IsFinal = true
		default:
			return
		}
	}
}

func (w *sourceWalker) readNameList() []string {
	var names []string
	for {
		name, _ := w.readName()
		if name == "" {
			return names
		}
		names = append(names, w.resolveName(name))
		if w.peekSignificant().Kind != parser.TokenComma {
			return names
		}
		w.nextSignificant()
	}
}

// parseFunctionSignature is entered just after a "function" keyword. It
// returns false for anonymous functions.
func (w *sourceWalker) parseFunctionSignature() (*FunctionModel, bool) {
	tok := w.peekSignificant()
	if tok.Kind == parser.TokenBitAnd {
		w.nextSignificant()
		tok = w.peekSignificant()
	}
	if tok.Kind != parser.TokenIdent {
		// Anonymous function: let the regular walk skip its body.
		return nil, false
	}
	w.nextSignificant()

	fn := &FunctionModel{
		SimpleName: tok.Literal,
		Name:       tok.Literal,
		Span:       tok.Span,
	}

	open, ok := w.nextSignificant()
	if !ok || open.Kind != parser.TokenLParen {
		return nil, false
	}
	fn.Params = w.parseParameterList()

	// Return type and body/terminator.
	for {
		tok, ok := w.nextSignificant()
		if !ok {
			return fn, true
		}
		switch tok.Kind {
		case parser.TokenColon:
			fn.HasReturnType = true
		case parser.TokenLBrace:
			w.skipBalancedBraces()
			return fn, true
		case parser.TokenSemicolon:
			return fn, true
		}
	}
}

// parseParameterList is entered just after the opening parenthesis.
func (w *sourceWalker) parseParameterList() []ParameterModel {
	var params []ParameterModel
	var cur ParameterModel
	depth := 1
	seen := false

	flush := func() {
		if seen {
			params = append(params, cur)
		}
		cur = ParameterModel{}
		seen = false
	}

	for {
		tok, ok := w.nextSignificant()
		if !ok {
			flush()
			return params
		}

		switch tok.Kind {
		case parser.TokenLParen, parser.TokenLBracket:
			depth++
		case parser.TokenRParen, parser.TokenRBracket:
			depth--
			if depth == 0 {
				flush()
				return params
			}
		case parser.TokenComma:
			if depth == 1 {
				flush()
			}
		case parser.TokenBitAnd:
			if depth == 1 && cur.Name == "" {
				cur.ByRef = true
			}
		case parser.TokenEllipsis:
			if depth == 1 && cur.Name == "" {
				cur.Variadic = true
			}
		case parser.TokenQuestion:
			if depth == 1 && cur.Name == "" {
				cur.TypeText += "?"
			}
		case parser.TokenIdent, parser.TokenNsSeparator, parser.TokenArray,
			parser.TokenCallable, parser.TokenStatic, parser.TokenNull,
			parser.TokenTrue, parser.TokenFalse:
			if depth == 1 && cur.Name == "" {
				cur.TypeText += tok.Literal
			}
		case parser.TokenBitOr:
			if depth == 1 && cur.Name == "" && cur.TypeText != "" {
				cur.TypeText += "|"
			}
		case parser.TokenVariable:
			if depth == 1 && cur.Name == "" {
				cur.Name = strings.TrimPrefix(tok.Literal, "$")
				cur.Span = tok.Span
				seen = true
			}
		case parser.TokenAssign:
			if depth == 1 && cur.Name != "" {
				cur.HasDefault = true
			}
		}
	}
}
