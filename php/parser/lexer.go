package parser

type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
	inPHP  bool
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
}

// Tokenize runs a lexer over the whole input and returns every token up to
// but not including EOF. Concatenating the literals reproduces the input.
func Tokenize(input []byte, file string) []Token {
	l := NewLexer(input, file)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Kind == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) match(s string) bool {
	if l.pos+len(s) > len(l.input) {
		return false
	}
	return string(l.input[l.pos:l.pos+len(s)]) == s
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func (l *Lexer) NextToken() Token {
	startPos := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}
	}

	if !l.inPHP {
		return l.scanHTML(startPos)
	}

	ch := l.peek()

	if ch == '?' && l.peekN(1) == '>' {
		l.advanceN(2)
		l.inPHP = false
		return l.token(TokenCloseTag, startPos)
	}

	if ch == '/' && l.peekN(1) == '/' {
		return l.scanLineComment(startPos)
	}
	if ch == '#' {
		if l.peekN(1) == '[' {
			l.advanceN(2)
			return l.token(TokenAttribute, startPos)
		}
		return l.scanLineComment(startPos)
	}
	if ch == '/' && l.peekN(1) == '*' {
		return l.scanBlockComment(startPos)
	}

	if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
		return l.scanWhitespace(startPos)
	}

	if ch == '$' {
		return l.scanVariable(startPos)
	}

	if isPHPLetter(ch) {
		return l.scanIdentOrKeyword(startPos)
	}

	if isDigit(ch) {
		return l.scanNumber(startPos)
	}

	if ch == '\'' || ch == '"' || ch == '`' {
		return l.scanStringLiteral(startPos, ch)
	}

	if ch == '<' && l.peekN(1) == '<' && l.peekN(2) == '<' {
		return l.scanHeredoc(startPos)
	}

	return l.scanOperator(startPos)
}

// scanHTML consumes inline HTML up to the next open tag. The open tag itself
// is returned as its own token on the following call.
func (l *Lexer) scanHTML(start Position) Token {
	if l.match("<?=") {
		l.advanceN(3)
		l.inPHP = true
		return l.token(TokenOpenTagEcho, start)
	}
	if l.match("<?php") {
		l.advanceN(5)
		l.inPHP = true
		return l.token(TokenOpenTag, start)
	}
	if l.match("<?") {
		l.advanceN(2)
		l.inPHP = true
		return l.token(TokenOpenTag, start)
	}

	for l.pos < len(l.input) {
		if l.peek() == '<' && l.peekN(1) == '?' {
			break
		}
		l.advance()
	}
	return l.token(TokenInlineHTML, start)
}

func (l *Lexer) scanWhitespace(start Position) Token {
	for {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.advance()
		} else {
			break
		}
	}
	return l.token(TokenWhitespace, start)
}

func (l *Lexer) scanLineComment(start Position) Token {
	for l.peek() != 0 && l.peek() != '\n' {
		// A closing tag ends a line comment in PHP.
		if l.peek() == '?' && l.peekN(1) == '>' {
			break
		}
		l.advance()
	}
	return l.token(TokenLineComment, start)
}

func (l *Lexer) scanBlockComment(start Position) Token {
	isDoc := l.match("/**") && !l.match("/**/")
	l.advanceN(2)
	for {
		if l.peek() == 0 {
			break
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			break
		}
		l.advance()
	}
	kind := TokenComment
	if isDoc {
		kind = TokenDocComment
	}
	return l.token(kind, start)
}

func (l *Lexer) scanVariable(start Position) Token {
	l.advance() // $
	if l.peek() == '$' {
		// Variable variable: tokenize the leading $ alone.
		return l.token(TokenError, start)
	}
	if !isPHPLetter(l.peek()) {
		return l.token(TokenError, start)
	}
	for isPHPLetterOrDigit(l.peek()) {
		l.advance()
	}
	return l.token(TokenVariable, start)
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for isPHPLetterOrDigit(l.peek()) {
		l.advance()
	}
	end := l.Position()
	literal := string(l.input[start.Offset:end.Offset])
	return Token{
		Kind:    LookupKeyword(literal),
		Span:    Span{Start: start, End: end},
		Literal: literal,
	}
}

func (l *Lexer) scanNumber(start Position) Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		l.advanceN(2)
		for isHexDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		return l.token(TokenIntLiteral, start)
	}
	if l.peek() == '0' && (l.peekN(1) == 'b' || l.peekN(1) == 'B') {
		l.advanceN(2)
		for l.peek() == '0' || l.peek() == '1' || l.peek() == '_' {
			l.advance()
		}
		return l.token(TokenIntLiteral, start)
	}

	isFloat := false
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		isFloat = true
		l.advance()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		next := l.peekN(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekN(2))) {
			isFloat = true
			l.advance()
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
			for isDigit(l.peek()) {
				l.advance()
			}
		}
	}

	kind := TokenIntLiteral
	if isFloat {
		kind = TokenFloatLiteral
	}
	return l.token(kind, start)
}

func (l *Lexer) scanStringLiteral(start Position, quote byte) Token {
	l.advance()
	for l.peek() != 0 && l.peek() != quote {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() == quote {
		l.advance()
	}
	return l.token(TokenStringLiteral, start)
}

// scanHeredoc consumes <<<LABEL ... LABEL (and nowdoc <<<'LABEL') as a
// single token. The terminator is a line whose first non-indent content is
// the label.
func (l *Lexer) scanHeredoc(start Position) Token {
	l.advanceN(3)
	for l.peek() == ' ' || l.peek() == '\t' {
		l.advance()
	}
	quoted := byte(0)
	if l.peek() == '\'' || l.peek() == '"' {
		quoted = l.peek()
		l.advance()
	}
	labelStart := l.pos
	for isPHPLetterOrDigit(l.peek()) {
		l.advance()
	}
	label := string(l.input[labelStart:l.pos])
	if label == "" {
		return l.token(TokenError, start)
	}
	if quoted != 0 && l.peek() == quoted {
		l.advance()
	}

	for l.peek() != 0 {
		if l.peek() == '\n' {
			l.advance()
			mark := l.pos
			for l.peek() == ' ' || l.peek() == '\t' {
				l.advance()
			}
			if l.pos-mark >= 0 && l.match(label) {
				after := l.peekN(len(label))
				if !isPHPLetterOrDigit(after) {
					l.advanceN(len(label))
					return l.token(TokenHeredoc, start)
				}
			}
			continue
		}
		l.advance()
	}
	return l.token(TokenHeredoc, start)
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.peek()

	switch ch {
	case '(':
		l.advance()
		return l.token(TokenLParen, start)
	case ')':
		l.advance()
		return l.token(TokenRParen, start)
	case '{':
		l.advance()
		return l.token(TokenLBrace, start)
	case '}':
		l.advance()
		return l.token(TokenRBrace, start)
	case '[':
		l.advance()
		return l.token(TokenLBracket, start)
	case ']':
		l.advance()
		return l.token(TokenRBracket, start)
	case ';':
		l.advance()
		return l.token(TokenSemicolon, start)
	case ',':
		l.advance()
		return l.token(TokenComma, start)
	case '@':
		l.advance()
		return l.token(TokenAt, start)
	case '~':
		l.advance()
		return l.token(TokenBitNot, start)
	case '\\':
		l.advance()
		return l.token(TokenNsSeparator, start)

	case '.':
		if l.peekN(1) == '.' && l.peekN(2) == '.' {
			l.advanceN(3)
			return l.token(TokenEllipsis, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenDotAssign, start)
		}
		l.advance()
		return l.token(TokenDot, start)

	case '?':
		if l.peekN(1) == '-' && l.peekN(2) == '>' {
			l.advanceN(3)
			return l.token(TokenNullsafeArrow, start)
		}
		if l.peekN(1) == '?' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenCoalesceAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenCoalesce, start)
		}
		l.advance()
		return l.token(TokenQuestion, start)

	case ':':
		if l.peekN(1) == ':' {
			l.advanceN(2)
			return l.token(TokenDoubleColon, start)
		}
		l.advance()
		return l.token(TokenColon, start)

	case '=':
		if l.peekN(1) == '=' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenIdentical, start)
			}
			l.advanceN(2)
			return l.token(TokenEQ, start)
		}
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(TokenDoubleArrow, start)
		}
		l.advance()
		return l.token(TokenAssign, start)

	case '!':
		if l.peekN(1) == '=' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenNotIdentical, start)
			}
			l.advanceN(2)
			return l.token(TokenNE, start)
		}
		l.advance()
		return l.token(TokenNot, start)

	case '<':
		if l.peekN(1) == '=' {
			if l.peekN(2) == '>' {
				l.advanceN(3)
				return l.token(TokenSpaceship, start)
			}
			l.advanceN(2)
			return l.token(TokenLE, start)
		}
		if l.peekN(1) == '<' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenShlAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenShl, start)
		}
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(TokenNE, start)
		}
		l.advance()
		return l.token(TokenLT, start)

	case '>':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenGE, start)
		}
		if l.peekN(1) == '>' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenShrAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenShr, start)
		}
		l.advance()
		return l.token(TokenGT, start)

	case '&':
		if l.peekN(1) == '&' {
			l.advanceN(2)
			return l.token(TokenAnd, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenAndAssign, start)
		}
		l.advance()
		return l.token(TokenBitAnd, start)

	case '|':
		if l.peekN(1) == '|' {
			l.advanceN(2)
			return l.token(TokenOr, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenOrAssign, start)
		}
		l.advance()
		return l.token(TokenBitOr, start)

	case '^':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenXorAssign, start)
		}
		l.advance()
		return l.token(TokenBitXor, start)

	case '+':
		if l.peekN(1) == '+' {
			l.advanceN(2)
			return l.token(TokenIncrement, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenPlusAssign, start)
		}
		l.advance()
		return l.token(TokenPlus, start)

	case '-':
		if l.peekN(1) == '-' {
			l.advanceN(2)
			return l.token(TokenDecrement, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenMinusAssign, start)
		}
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(TokenArrow, start)
		}
		l.advance()
		return l.token(TokenMinus, start)

	case '*':
		if l.peekN(1) == '*' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenPowAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenPow, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenStarAssign, start)
		}
		l.advance()
		return l.token(TokenStar, start)

	case '/':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenSlashAssign, start)
		}
		l.advance()
		return l.token(TokenSlash, start)

	case '%':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenPercentAssign, start)
		}
		l.advance()
		return l.token(TokenPercent, start)
	}

	l.advance()
	return l.token(TokenError, start)
}

func isPHPLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch >= 0x80
}

func isPHPLetterOrDigit(ch byte) bool {
	return isPHPLetter(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
