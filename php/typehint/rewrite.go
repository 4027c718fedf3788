package typehint

import (
	"github.com/dhamidi/phint/php"
	"github.com/dhamidi/phint/php/parser"
)

// Config controls the generated syntax.
type Config struct {
	// Nullable enables the ?T marker syntax (PHP >= 7.1). When disabled,
	// nullable parameters fall back to a "= null" default suffix and
	// nullable return types are left alone.
	Nullable bool
}

// Edit records one injected piece of text and the position of the token it
// was inserted in front of.
type Edit struct {
	Pos  parser.Position
	Text string
}

// Rewriter splices documented types into signatures that lack explicit
// declarations. Every token it does not act on is re-emitted verbatim, so
// the output differs from the input only by the deliberate insertions.
type Rewriter struct {
	resolver *Resolver
	config   Config
}

func NewRewriter(resolver *Resolver, config Config) *Rewriter {
	return &Rewriter{resolver: resolver, config: config}
}

// rewriteState is the per-file cursor through the token stream.
type rewriteState struct {
	level      int    // brace depth
	namespace  string // accumulated namespace path
	inNS       bool   // accumulating a namespace declaration

	objectKind php.SymbolKind // enclosing declaration kind
	objectName string         // enclosing type name, "" at top level
	nameless   bool           // type keyword seen, name not yet

	functionName string
	namePending  bool // function keyword seen, name or '(' not yet
	inFunction   bool // signature open, return decision pending
	returnSeen   bool // explicit return type declared

	inParams    bool
	parenDepth  int
	hintAllowed bool
	appendNull  bool

	pending []parser.Token // held '&'/'...' marker and trailing whitespace

	lastSig parser.TokenKind
}

// Rewrite consumes the token stream once and returns the rewritten source
// together with the injections that were made. It never fails: anything
// ambiguous passes through unchanged.
func (rw *Rewriter) Rewrite(tokens []parser.Token) (string, []Edit) {
	var out []byte
	var edits []Edit
	st := &rewriteState{objectKind: php.SymbolFunction, lastSig: parser.TokenEOF}

	emit := func(tok parser.Token) {
		out = append(out, tok.Literal...)
	}
	inject := func(pos parser.Position, text string) {
		out = append(out, text...)
		edits = append(edits, Edit{Pos: pos, Text: text})
	}
	flushPending := func() {
		for _, held := range st.pending {
			out = append(out, held.Literal...)
		}
		st.pending = st.pending[:0]
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case parser.TokenWhitespace:
			if len(st.pending) > 0 {
				st.pending = append(st.pending, tok)
				continue
			}
			emit(tok)
			continue
		case parser.TokenComment, parser.TokenLineComment, parser.TokenDocComment,
			parser.TokenInlineHTML, parser.TokenOpenTag, parser.TokenOpenTagEcho,
			parser.TokenCloseTag, parser.TokenStringLiteral, parser.TokenHeredoc:
			flushPending()
			emit(tok)
			continue
		}

		switch tok.Kind {
		case parser.TokenNamespace:
			if st.lastSig != parser.TokenNsSeparator {
				st.inNS = true
				st.namespace = ""
			}
			emit(tok)

		case parser.TokenNsSeparator:
			if st.inNS {
				st.namespace += "\\"
			}
			if st.inParams && st.parenDepth == 1 {
				st.hintAllowed = false
			}
			emit(tok)

		case parser.TokenClass, parser.TokenInterface, parser.TokenTrait:
			// Foo::class and "new class" never open a named declaration.
			if st.lastSig != parser.TokenDoubleColon && st.lastSig != parser.TokenNew {
				st.level = 0
				st.objectName = ""
				st.nameless = true
				switch tok.Kind {
				case parser.TokenClass:
					st.objectKind = php.SymbolClass
				case parser.TokenInterface:
					st.objectKind = php.SymbolInterface
				case parser.TokenTrait:
					st.objectKind = php.SymbolTrait
				}
			}
			emit(tok)

		case parser.TokenFunction:
			// "use function Foo\bar;" imports never open a signature.
			if st.lastSig != parser.TokenUse {
				st.functionName = ""
				st.namePending = true
				st.inFunction = true
				st.returnSeen = false
			}
			emit(tok)

		case parser.TokenIdent:
			if st.inNS {
				st.namespace += tok.Literal
			} else if st.nameless {
				st.objectName = tok.Literal
				st.nameless = false
			} else if st.namePending && st.functionName == "" {
				st.functionName = tok.Literal
			}
			if st.inParams && st.parenDepth == 1 {
				st.hintAllowed = false
			}
			flushPending()
			emit(tok)

		case parser.TokenArray, parser.TokenCallable, parser.TokenQuestion:
			if st.inParams && st.parenDepth == 1 {
				st.hintAllowed = false
			}
			flushPending()
			emit(tok)

		case parser.TokenLParen:
			if st.namePending {
				st.namePending = false
				st.inParams = true
				st.parenDepth = 1
				st.hintAllowed = true
				st.appendNull = false
			} else if st.inParams {
				st.parenDepth++
			}
			flushPending()
			emit(tok)

		case parser.TokenRParen:
			if st.inParams {
				st.parenDepth--
				if st.parenDepth == 0 {
					if st.appendNull {
						out = insertBeforeTrailingSpace(out, " = null")
						st.appendNull = false
					}
					st.inParams = false
				}
			}
			flushPending()
			emit(tok)

		case parser.TokenComma:
			if st.inParams && st.parenDepth == 1 {
				if st.appendNull {
					out = insertBeforeTrailingSpace(out, " = null")
					st.appendNull = false
				}
				st.hintAllowed = true
			}
			flushPending()
			emit(tok)

		case parser.TokenBitAnd, parser.TokenEllipsis:
			if st.inParams && st.parenDepth == 1 {
				// Hold the marker: an injected type goes in front of it.
				st.pending = append(st.pending, tok)
				continue
			}
			emit(tok)

		case parser.TokenVariable:
			if st.inParams && st.parenDepth == 1 && st.hintAllowed {
				sym := st.symbol()
				if hint, ok := rw.resolver.ParamHint(sym, tok.Literal); ok {
					text := hint.Name + " "
					if hint.Nullable {
						if rw.config.Nullable {
							text = "?" + text
						} else {
							st.appendNull = true
						}
					}
					pos := tok.Span.Start
					if len(st.pending) > 0 {
						pos = st.pending[0].Span.Start
					}
					inject(pos, text)
				}
				st.hintAllowed = false
			}
			flushPending()
			emit(tok)

		case parser.TokenAssign:
			if st.inParams && st.parenDepth == 1 {
				// An original default value wins over the fallback suffix.
				st.appendNull = false
			}
			flushPending()
			emit(tok)

		case parser.TokenColon:
			if st.inFunction && !st.inParams {
				st.returnSeen = true
			}
			flushPending()
			emit(tok)

		case parser.TokenSemicolon, parser.TokenLBrace:
			flushPending()
			if st.inNS {
				st.inNS = false
			}
			if st.inFunction && !st.inParams {
				if !st.returnSeen {
					if hint, ok := rw.resolver.ReturnHint(st.symbol()); ok {
						if !hint.Nullable || rw.config.Nullable {
							text := ": " + hint.Name
							if hint.Nullable {
								text = ": ?" + hint.Name
							}
							out = insertBeforeTrailingSpace(out, text)
							edits = append(edits, Edit{Pos: tok.Span.Start, Text: text})
						}
					}
				}
				st.inFunction = false
				st.namePending = false
			}
			if tok.Kind == parser.TokenLBrace {
				st.level++
			}
			emit(tok)

		case parser.TokenRBrace:
			flushPending()
			if st.level > 0 {
				st.level--
				if st.level == 0 {
					// Leaving a type declaration body returns to
					// top-level scope.
					st.objectKind = php.SymbolFunction
					st.objectName = ""
				}
			}
			emit(tok)

		default:
			flushPending()
			emit(tok)
		}

		st.lastSig = tok.Kind
	}

	return string(out), edits
}

func (st *rewriteState) symbol() Symbol {
	return Symbol{
		Kind:      st.objectKind,
		Namespace: st.namespace,
		Class:     st.objectName,
		Member:    st.functionName,
	}
}

// insertBeforeTrailingSpace places text at the end of out, but in front of
// any trailing whitespace so the declaration stays glued to the closing
// parenthesis: "f(): int {" and "f(): int\n{" rather than "f() : int{".
func insertBeforeTrailingSpace(out []byte, text string) []byte {
	i := len(out)
	for i > 0 && isSpaceByte(out[i-1]) {
		i--
	}
	if i == len(out) {
		return append(out, text...)
	}

	result := make([]byte, 0, len(out)+len(text))
	result = append(result, out[:i]...)
	result = append(result, text...)
	result = append(result, out[i:]...)
	return result
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
