package phpdoc

import (
	"strings"
	"unicode"
)

// Parser is a recursive-descent parser for PHPDoc comments.
type Parser struct {
	input []rune
	pos   int
	len   int
}

// Parse parses a PHPDoc comment string (including the /** */ delimiters)
// and returns a DocBlock AST.
func Parse(doc string) *DocBlock {
	p := &Parser{
		input: []rune(doc),
	}
	p.len = len(p.input)
	return p.parseDocBlock()
}

func (p *Parser) parseDocBlock() *DocBlock {
	p.skipCommentStart()

	block := &DocBlock{}
	block.Body = p.parseContent(false)
	block.Tags = p.parseBlockTags()

	return block
}

// skipCommentStart skips the leading /** and any whitespace/asterisks.
func (p *Parser) skipCommentStart() {
	p.skipWhitespace()
	if p.match("/**") {
		p.advance(3)
	} else if p.match("/*") {
		p.advance(2)
	}
	p.skipLinePrefix()
}

// skipLinePrefix skips leading whitespace and a single asterisk at the start
// of a line.
func (p *Parser) skipLinePrefix() {
	p.skipHorizontalWhitespace()
	if p.peek() == '*' && p.peekAt(1) != '/' {
		p.advance(1)
		if p.peek() == ' ' {
			p.advance(1)
		}
	}
}

// parseContent parses rich text content until a block tag or end of comment.
// If inInlineTag is true, parsing stops at an unmatched '}'.
func (p *Parser) parseContent(inInlineTag bool) []Node {
	var nodes []Node
	var textBuf strings.Builder

	flushText := func() {
		if textBuf.Len() > 0 {
			nodes = append(nodes, Text{Content: textBuf.String()})
			textBuf.Reset()
		}
	}

	for p.pos < p.len {
		ch := p.peek()

		if ch == '*' && p.peekAt(1) == '/' {
			break
		}

		if !inInlineTag && p.isAtBlockTag() {
			break
		}

		switch ch {
		case '\n', '\r':
			textBuf.WriteRune(ch)
			p.advance(1)
			if ch == '\r' && p.peek() == '\n' {
				textBuf.WriteRune('\n')
				p.advance(1)
			}
			p.skipLinePrefix()

		case '{':
			if p.peekAt(1) == '@' {
				flushText()
				node := p.parseInlineTag()
				if node != nil {
					nodes = append(nodes, node)
				}
			} else {
				textBuf.WriteRune(ch)
				p.advance(1)
			}

		case '}':
			if inInlineTag {
				flushText()
				return nodes
			}
			textBuf.WriteRune(ch)
			p.advance(1)

		default:
			textBuf.WriteRune(ch)
			p.advance(1)
		}
	}

	flushText()
	return nodes
}

// isAtBlockTag checks if we're at the start of a block tag (@ at start of a
// line, after the optional asterisk prefix).
func (p *Parser) isAtBlockTag() bool {
	if p.peek() != '@' {
		return false
	}
	if p.pos == 0 {
		return true
	}

	i := p.pos - 1
	for i >= 0 {
		ch := p.input[i]
		if ch == '\n' || ch == '\r' {
			return true
		}
		if ch == '*' {
			j := i - 1
			for j >= 0 && (p.input[j] == ' ' || p.input[j] == '\t') {
				j--
			}
			if j < 0 || p.input[j] == '\n' || p.input[j] == '\r' {
				return true
			}
		}
		if ch != ' ' && ch != '\t' {
			return false
		}
		i--
	}
	return true
}

// parseInlineTag parses an inline tag like {@inheritdoc} or {@link ...}.
func (p *Parser) parseInlineTag() Node {
	if !p.match("{@") {
		return nil
	}
	p.advance(2)

	tagName := p.readTagName()
	p.skipHorizontalWhitespace()

	var node Node
	switch strings.ToLower(tagName) {
	case "inheritdoc":
		node = InheritDoc{}
	case "code":
		node = Code{Content: p.readBalancedContent()}
	case "link", "see":
		ref := p.readWord()
		p.skipHorizontalWhitespace()
		label := p.readBalancedContent()
		node = Link{Reference: ref, Label: label}
	default:
		node = UnknownInlineTag{Name: tagName, Content: p.readBalancedContent()}
	}

	if p.peek() == '}' {
		p.advance(1)
	}

	return node
}

// parseBlockTags parses block tags until end of comment.
func (p *Parser) parseBlockTags() []Node {
	var tags []Node

	for p.pos < p.len {
		p.skipWhitespace()
		p.skipLinePrefix()

		if p.match("*/") {
			break
		}

		if p.peek() != '@' {
			p.advance(1)
			continue
		}

		p.advance(1)
		tagName := p.readTagName()
		if tagName == "" {
			continue
		}

		p.skipHorizontalWhitespace()

		var tag Node
		switch tagName {
		case "param":
			tag = p.parseParamTag()
		case "return", "returns":
			tag = p.parseReturnTag()
		case "var":
			tag = p.parseVarTag()
		case "throws", "exception":
			tag = p.parseThrowsTag()
		case "see":
			tag = p.parseSeeTag()
		case "since":
			tag = &Since{Version: p.readBlockText()}
		case "deprecated":
			tag = &Deprecated{Description: p.readBlockText()}
		case "author":
			tag = &Author{Name: p.readBlockText()}
		default:
			tag = &UnknownBlockTag{Name: tagName, Content: p.readBlockText()}
		}

		if tag != nil {
			tags = append(tags, tag)
		}
	}

	return tags
}

// parseParamTag parses "@param [type] [&][...]$name [description]".
func (p *Parser) parseParamTag() Node {
	tag := &Param{}

	if p.peek() != '$' && p.peek() != '&' && !p.match("...") {
		tag.Type = ParseType(p.readWord())
		p.skipHorizontalWhitespace()
	}

	if p.peek() == '&' {
		tag.ByRef = true
		p.advance(1)
	}
	if p.match("...") {
		tag.Variadic = true
		p.advance(3)
	}
	if p.peek() == '$' {
		p.advance(1)
		tag.Var = p.readIdentifier()
	}

	p.skipHorizontalWhitespace()
	tag.Description = p.readBlockText()
	return tag
}

// parseReturnTag parses "@return type [description]".
func (p *Parser) parseReturnTag() Node {
	tag := &Return{}
	if p.peek() != '\n' && p.peek() != '\r' {
		tag.Type = ParseType(p.readWord())
		p.skipHorizontalWhitespace()
	}
	tag.Description = p.readBlockText()
	return tag
}

// parseVarTag parses "@var type [$name] [description]".
func (p *Parser) parseVarTag() Node {
	tag := &VarTag{}
	if p.peek() != '$' {
		tag.Type = ParseType(p.readWord())
		p.skipHorizontalWhitespace()
	}
	if p.peek() == '$' {
		p.advance(1)
		tag.Var = p.readIdentifier()
		p.skipHorizontalWhitespace()
	}
	tag.Description = p.readBlockText()
	return tag
}

func (p *Parser) parseThrowsTag() Node {
	exc := p.readWord()
	p.skipHorizontalWhitespace()
	return &Throws{Exception: exc, Description: p.readBlockText()}
}

func (p *Parser) parseSeeTag() Node {
	ref := p.readWord()
	p.skipHorizontalWhitespace()
	return &See{Reference: ref, Description: p.readBlockText()}
}

// readBlockText reads free text until the next block tag or end of comment,
// collapsing line prefixes; the result is trimmed.
func (p *Parser) readBlockText() string {
	var sb strings.Builder

	for p.pos < p.len {
		ch := p.peek()

		if ch == '*' && p.peekAt(1) == '/' {
			break
		}
		if p.isAtBlockTag() {
			break
		}

		if ch == '\n' || ch == '\r' {
			sb.WriteRune('\n')
			p.advance(1)
			if ch == '\r' && p.peek() == '\n' {
				p.advance(1)
			}
			p.skipLinePrefix()
			continue
		}

		sb.WriteRune(ch)
		p.advance(1)
	}

	return strings.TrimSpace(sb.String())
}

// Helper methods for reading tokens

func (p *Parser) peek() rune {
	if p.pos >= p.len {
		return 0
	}
	return p.input[p.pos]
}

func (p *Parser) peekAt(offset int) rune {
	pos := p.pos + offset
	if pos >= p.len || pos < 0 {
		return 0
	}
	return p.input[pos]
}

func (p *Parser) advance(n int) {
	p.pos += n
	if p.pos > p.len {
		p.pos = p.len
	}
}

func (p *Parser) match(s string) bool {
	if p.pos+len(s) > p.len {
		return false
	}
	for i, ch := range s {
		if p.input[p.pos+i] != ch {
			return false
		}
	}
	return true
}

func (p *Parser) skipWhitespace() {
	for p.pos < p.len && isWhitespace(p.peek()) {
		p.advance(1)
	}
}

func (p *Parser) skipHorizontalWhitespace() {
	for p.pos < p.len && (p.peek() == ' ' || p.peek() == '\t') {
		p.advance(1)
	}
}

func (p *Parser) readTagName() string {
	start := p.pos
	for p.pos < p.len {
		ch := p.peek()
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '-' || ch == '_' {
			p.advance(1)
		} else {
			break
		}
	}
	return string(p.input[start:p.pos])
}

func (p *Parser) readIdentifier() string {
	start := p.pos
	for p.pos < p.len {
		ch := p.peek()
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' {
			p.advance(1)
		} else {
			break
		}
	}
	return string(p.input[start:p.pos])
}

func (p *Parser) readWord() string {
	start := p.pos
	for p.pos < p.len && !isWhitespace(p.peek()) && p.peek() != '}' {
		if p.peek() == '*' && p.peekAt(1) == '/' {
			break
		}
		p.advance(1)
	}
	return string(p.input[start:p.pos])
}

// readBalancedContent reads content until a closing '}', handling nested
// braces.
func (p *Parser) readBalancedContent() string {
	start := p.pos
	depth := 0

	for p.pos < p.len {
		ch := p.peek()

		if ch == '{' {
			depth++
			p.advance(1)
		} else if ch == '}' {
			if depth == 0 {
				break
			}
			depth--
			p.advance(1)
		} else if ch == '*' && p.peekAt(1) == '/' {
			break
		} else {
			p.advance(1)
		}
	}

	result := string(p.input[start:p.pos])
	if len(result) > 0 && result[0] == ' ' {
		result = result[1:]
	}
	return result
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
