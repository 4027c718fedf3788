package parser

import (
	"testing"
)

func TestLexerNewLexer(t *testing.T) {
	lexer := NewLexer([]byte("<?php class Foo {}"), "test.php")
	pos := lexer.Position()

	if pos.File != "test.php" {
		t.Errorf("File = %q, want %q", pos.File, "test.php")
	}
	if pos.Line != 1 {
		t.Errorf("Line = %d, want %d", pos.Line, 1)
	}
	if pos.Column != 1 {
		t.Errorf("Column = %d, want %d", pos.Column, 1)
	}
	if pos.Offset != 0 {
		t.Errorf("Offset = %d, want %d", pos.Offset, 0)
	}
}

func firstPHPToken(t *testing.T, source string) Token {
	t.Helper()
	lexer := NewLexer([]byte("<?php "+source), "test.php")
	lexer.NextToken() // open tag
	lexer.NextToken() // whitespace
	return lexer.NextToken()
}

func TestLexerKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"class", TokenClass},
		{"interface", TokenInterface},
		{"trait", TokenTrait},
		{"function", TokenFunction},
		{"namespace", TokenNamespace},
		{"extends", TokenExtends},
		{"implements", TokenImplements},
		{"use", TokenUse},
		{"array", TokenArray},
		{"callable", TokenCallable},
		{"public", TokenPublic},
		{"private", TokenPrivate},
		{"protected", TokenProtected},
		{"static", TokenStatic},
		{"abstract", TokenAbstract},
		{"final", TokenFinal},
		{"return", TokenReturn},
		{"new", TokenNew},
		{"true", TokenTrue},
		{"false", TokenFalse},
		{"null", TokenNull},
		// Keywords are case-insensitive in PHP.
		{"Function", TokenFunction},
		{"CLASS", TokenClass},
		{"NULL", TokenNull},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := firstPHPToken(t, tt.input)
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestLexerVariables(t *testing.T) {
	tests := []string{
		"$foo",
		"$Bar",
		"$_private",
		"$camelCase",
		"$with123Numbers",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			tok := firstPHPToken(t, input)
			if tok.Kind != TokenVariable {
				t.Errorf("Kind = %v, want %v", tok.Kind, TokenVariable)
			}
			if tok.Literal != input {
				t.Errorf("Literal = %q, want %q", tok.Literal, input)
			}
		})
	}
}

func TestLexerOperators(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"(", TokenLParen},
		{")", TokenRParen},
		{"{", TokenLBrace},
		{"}", TokenRBrace},
		{";", TokenSemicolon},
		{",", TokenComma},
		{":", TokenColon},
		{"::", TokenDoubleColon},
		{"->", TokenArrow},
		{"?->", TokenNullsafeArrow},
		{"=>", TokenDoubleArrow},
		{"?", TokenQuestion},
		{"??", TokenCoalesce},
		{"??=", TokenCoalesceAssign},
		{"\\", TokenNsSeparator},
		{"&", TokenBitAnd},
		{"&&", TokenAnd},
		{"...", TokenEllipsis},
		{"===", TokenIdentical},
		{"!==", TokenNotIdentical},
		{"<=>", TokenSpaceship},
		{"**", TokenPow},
		{".=", TokenDotAssign},
		{"#[", TokenAttribute},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := firstPHPToken(t, tt.input)
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestLexerComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  TokenKind
	}{
		{"line", "// hello", TokenLineComment},
		{"hash", "# hello", TokenLineComment},
		{"block", "/* hello */", TokenComment},
		{"doc", "/** @param int $a */", TokenDocComment},
		{"empty block", "/**/", TokenComment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := firstPHPToken(t, tt.input)
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestLexerOpenCloseTags(t *testing.T) {
	input := "before <?php echo 1; ?> after"
	tokens := Tokenize([]byte(input), "test.php")

	kinds := []TokenKind{
		TokenInlineHTML,
		TokenOpenTag,
		TokenWhitespace,
		TokenEcho,
		TokenWhitespace,
		TokenIntLiteral,
		TokenSemicolon,
		TokenWhitespace,
		TokenCloseTag,
		TokenInlineHTML,
	}

	if len(tokens) != len(kinds) {
		t.Fatalf("len(tokens) = %d, want %d", len(tokens), len(kinds))
	}
	for i, want := range kinds {
		if tokens[i].Kind != want {
			t.Errorf("tokens[%d].Kind = %v, want %v", i, tokens[i].Kind, want)
		}
	}
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"single", `'hello'`},
		{"double", `"hello"`},
		{"escaped quote", `'it\'s'`},
		{"interpolation stays one token", `"a {$b} c"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := firstPHPToken(t, tt.input)
			if tok.Kind != TokenStringLiteral {
				t.Errorf("Kind = %v, want %v", tok.Kind, TokenStringLiteral)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestLexerHeredoc(t *testing.T) {
	input := "<<<EOT\nhello $world\nEOT"
	tok := firstPHPToken(t, input)
	if tok.Kind != TokenHeredoc {
		t.Errorf("Kind = %v, want %v", tok.Kind, TokenHeredoc)
	}
	if tok.Literal != input {
		t.Errorf("Literal = %q, want %q", tok.Literal, input)
	}
}

// Concatenating every literal must reproduce the input byte-for-byte; the
// rewriter depends on this.
func TestLexerRoundtrip(t *testing.T) {
	sources := []string{
		"<?php\n\nnamespace App;\n\nclass Foo\n{\n    public function bar(int $a, $b = null)\n    {\n        return $a + 1;\n    }\n}\n",
		"<html><body><?= $title ?></body></html>",
		"<?php\n/**\n * @param int|null $c\n */\nfunction baz($c) {}\n",
		"<?php $s = 'a\\'b'; $t = \"c{$d}e\"; $h = <<<EOT\nx\nEOT;\n",
		"no php here at all",
	}

	for _, src := range sources {
		tokens := Tokenize([]byte(src), "test.php")
		var out string
		for _, tok := range tokens {
			out += tok.Literal
		}
		if out != src {
			t.Errorf("roundtrip = %q, want %q", out, src)
		}
	}
}

func TestLexerPositions(t *testing.T) {
	input := "<?php\n$foo = 1;\n"
	tokens := Tokenize([]byte(input), "test.php")

	var varTok *Token
	for i := range tokens {
		if tokens[i].Kind == TokenVariable {
			varTok = &tokens[i]
			break
		}
	}
	if varTok == nil {
		t.Fatal("no variable token found")
	}
	if varTok.Span.Start.Line != 2 {
		t.Errorf("Line = %d, want %d", varTok.Span.Start.Line, 2)
	}
	if varTok.Span.Start.Column != 1 {
		t.Errorf("Column = %d, want %d", varTok.Span.Start.Column, 1)
	}
}
