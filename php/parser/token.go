package parser

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenDocComment
	TokenLineComment
	TokenInlineHTML
	TokenOpenTag
	TokenOpenTagEcho
	TokenCloseTag

	// Literals
	TokenIdent
	TokenVariable
	TokenIntLiteral
	TokenFloatLiteral
	TokenStringLiteral
	TokenHeredoc
	TokenTrue
	TokenFalse
	TokenNull

	// Keywords
	TokenAbstract
	TokenArray
	TokenAs
	TokenBreak
	TokenCallable
	TokenCase
	TokenCatch
	TokenClass
	TokenClone
	TokenConst
	TokenContinue
	TokenDeclare
	TokenDefault
	TokenDo
	TokenEcho
	TokenElse
	TokenElseif
	TokenEmpty
	TokenExtends
	TokenFinal
	TokenFinally
	TokenFn
	TokenFor
	TokenForeach
	TokenFunction
	TokenGlobal
	TokenGoto
	TokenIf
	TokenImplements
	TokenInclude
	TokenIncludeOnce
	TokenInstanceof
	TokenInsteadof
	TokenInterface
	TokenIsset
	TokenList
	TokenMatch
	TokenNamespace
	TokenNew
	TokenPrint
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenReadonly
	TokenRequire
	TokenRequireOnce
	TokenReturn
	TokenStatic
	TokenSwitch
	TokenThrow
	TokenTrait
	TokenTry
	TokenUnset
	TokenUse
	TokenVar
	TokenWhile
	TokenYield

	// Operators and punctuation
	TokenAttribute
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenEllipsis
	TokenAt
	TokenNsSeparator
	TokenArrow
	TokenNullsafeArrow
	TokenDoubleColon
	TokenDoubleArrow

	TokenAssign
	TokenEQ
	TokenIdentical
	TokenNE
	TokenNotIdentical
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenSpaceship
	TokenAnd
	TokenOr
	TokenNot
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenBitNot
	TokenShl
	TokenShr
	TokenPlus
	TokenMinus
	TokenStar
	TokenPow
	TokenSlash
	TokenPercent
	TokenIncrement
	TokenDecrement
	TokenQuestion
	TokenCoalesce
	TokenColon
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenPowAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenDotAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenShlAssign
	TokenShrAssign
	TokenCoalesceAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:            "EOF",
	TokenError:          "Error",
	TokenWhitespace:     "Whitespace",
	TokenComment:        "Comment",
	TokenDocComment:     "DocComment",
	TokenLineComment:    "LineComment",
	TokenInlineHTML:     "InlineHTML",
	TokenOpenTag:        "OpenTag",
	TokenOpenTagEcho:    "OpenTagEcho",
	TokenCloseTag:       "CloseTag",
	TokenIdent:          "Identifier",
	TokenVariable:       "Variable",
	TokenIntLiteral:     "IntLiteral",
	TokenFloatLiteral:   "FloatLiteral",
	TokenStringLiteral:  "StringLiteral",
	TokenHeredoc:        "Heredoc",
	TokenTrue:           "true",
	TokenFalse:          "false",
	TokenNull:           "null",
	TokenAbstract:       "abstract",
	TokenArray:          "array",
	TokenAs:             "as",
	TokenBreak:          "break",
	TokenCallable:       "callable",
	TokenCase:           "case",
	TokenCatch:          "catch",
	TokenClass:          "class",
	TokenClone:          "clone",
	TokenConst:          "const",
	TokenContinue:       "continue",
	TokenDeclare:        "declare",
	TokenDefault:        "default",
	TokenDo:             "do",
	TokenEcho:           "echo",
	TokenElse:           "else",
	TokenElseif:         "elseif",
	TokenEmpty:          "empty",
	TokenExtends:        "extends",
	TokenFinal:          "final",
	TokenFinally:        "finally",
	TokenFn:             "fn",
	TokenFor:            "for",
	TokenForeach:        "foreach",
	TokenFunction:       "function",
	TokenGlobal:         "global",
	TokenGoto:           "goto",
	TokenIf:             "if",
	TokenImplements:     "implements",
	TokenInclude:        "include",
	TokenIncludeOnce:    "include_once",
	TokenInstanceof:     "instanceof",
	TokenInsteadof:      "insteadof",
	TokenInterface:      "interface",
	TokenIsset:          "isset",
	TokenList:           "list",
	TokenMatch:          "match",
	TokenNamespace:      "namespace",
	TokenNew:            "new",
	TokenPrint:          "print",
	TokenPrivate:        "private",
	TokenProtected:      "protected",
	TokenPublic:         "public",
	TokenReadonly:       "readonly",
	TokenRequire:        "require",
	TokenRequireOnce:    "require_once",
	TokenReturn:         "return",
	TokenStatic:         "static",
	TokenSwitch:         "switch",
	TokenThrow:          "throw",
	TokenTrait:          "trait",
	TokenTry:            "try",
	TokenUnset:          "unset",
	TokenUse:            "use",
	TokenVar:            "var",
	TokenWhile:          "while",
	TokenYield:          "yield",
	TokenAttribute:      "#[",
	TokenLParen:         "(",
	TokenRParen:         ")",
	TokenLBrace:         "{",
	TokenRBrace:         "}",
	TokenLBracket:       "[",
	TokenRBracket:       "]",
	TokenSemicolon:      ";",
	TokenComma:          ",",
	TokenDot:            ".",
	TokenEllipsis:       "...",
	TokenAt:             "@",
	TokenNsSeparator:    "\\",
	TokenArrow:          "->",
	TokenNullsafeArrow:  "?->",
	TokenDoubleColon:    "::",
	TokenDoubleArrow:    "=>",
	TokenAssign:         "=",
	TokenEQ:             "==",
	TokenIdentical:      "===",
	TokenNE:             "!=",
	TokenNotIdentical:   "!==",
	TokenLT:             "<",
	TokenLE:             "<=",
	TokenGT:             ">",
	TokenGE:             ">=",
	TokenSpaceship:      "<=>",
	TokenAnd:            "&&",
	TokenOr:             "||",
	TokenNot:            "!",
	TokenBitAnd:         "&",
	TokenBitOr:          "|",
	TokenBitXor:         "^",
	TokenBitNot:         "~",
	TokenShl:            "<<",
	TokenShr:            ">>",
	TokenPlus:           "+",
	TokenMinus:          "-",
	TokenStar:           "*",
	TokenPow:            "**",
	TokenSlash:          "/",
	TokenPercent:        "%",
	TokenIncrement:      "++",
	TokenDecrement:      "--",
	TokenQuestion:       "?",
	TokenCoalesce:       "??",
	TokenColon:          ":",
	TokenPlusAssign:     "+=",
	TokenMinusAssign:    "-=",
	TokenStarAssign:     "*=",
	TokenPowAssign:      "**=",
	TokenSlashAssign:    "/=",
	TokenPercentAssign:  "%=",
	TokenDotAssign:      ".=",
	TokenAndAssign:      "&=",
	TokenOrAssign:       "|=",
	TokenXorAssign:      "^=",
	TokenShlAssign:      "<<=",
	TokenShrAssign:      ">>=",
	TokenCoalesceAssign: "??=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

// PHP keywords are case-insensitive; lookup happens on the lowercased
// identifier while the token literal keeps the original spelling.
var keywords = map[string]TokenKind{
	"abstract":     TokenAbstract,
	"array":        TokenArray,
	"as":           TokenAs,
	"break":        TokenBreak,
	"callable":     TokenCallable,
	"case":         TokenCase,
	"catch":        TokenCatch,
	"class":        TokenClass,
	"clone":        TokenClone,
	"const":        TokenConst,
	"continue":     TokenContinue,
	"declare":      TokenDeclare,
	"default":      TokenDefault,
	"do":           TokenDo,
	"echo":         TokenEcho,
	"else":         TokenElse,
	"elseif":       TokenElseif,
	"empty":        TokenEmpty,
	"extends":      TokenExtends,
	"final":        TokenFinal,
	"finally":      TokenFinally,
	"fn":           TokenFn,
	"for":          TokenFor,
	"foreach":      TokenForeach,
	"function":     TokenFunction,
	"global":       TokenGlobal,
	"goto":         TokenGoto,
	"if":           TokenIf,
	"implements":   TokenImplements,
	"include":      TokenInclude,
	"include_once": TokenIncludeOnce,
	"instanceof":   TokenInstanceof,
	"insteadof":    TokenInsteadof,
	"interface":    TokenInterface,
	"isset":        TokenIsset,
	"list":         TokenList,
	"match":        TokenMatch,
	"namespace":    TokenNamespace,
	"new":          TokenNew,
	"print":        TokenPrint,
	"private":      TokenPrivate,
	"protected":    TokenProtected,
	"public":       TokenPublic,
	"readonly":     TokenReadonly,
	"require":      TokenRequire,
	"require_once": TokenRequireOnce,
	"return":       TokenReturn,
	"static":       TokenStatic,
	"switch":       TokenSwitch,
	"throw":        TokenThrow,
	"trait":        TokenTrait,
	"try":          TokenTry,
	"unset":        TokenUnset,
	"use":          TokenUse,
	"var":          TokenVar,
	"while":        TokenWhile,
	"yield":        TokenYield,
	"true":         TokenTrue,
	"false":        TokenFalse,
	"null":         TokenNull,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[lowerASCII(ident)]; ok {
		return kind
	}
	return TokenIdent
}

func lowerASCII(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
