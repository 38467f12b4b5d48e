// Package lexer turns Monkey source text into a lazy stream of tokens.
//
// The scanner works byte by byte over an ASCII token alphabet. Every call to
// NextToken consumes at least one byte until the input is exhausted, after
// which it keeps returning EOF.
package lexer

import "monkey/interpreter-go/pkg/token"

// Lexer is a forward-only cursor over a source buffer. Restarting a scan
// requires a fresh Lexer.
type Lexer struct {
	input        string
	position     int  // index of ch
	readPosition int  // index of the byte after ch
	ch           byte // 0 once the input is exhausted
}

// New constructs a lexer positioned on the first byte of input.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// NextToken scans and returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	var tok token.Token
	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			tok = l.twoByteToken(token.EQ)
		} else {
			tok = l.byteToken(token.ASSIGN)
		}
	case '!':
		if l.peekChar() == '=' {
			tok = l.twoByteToken(token.NOT_EQ)
		} else {
			tok = l.byteToken(token.BANG)
		}
	case '+':
		tok = l.byteToken(token.PLUS)
	case '-':
		tok = l.byteToken(token.MINUS)
	case '*':
		tok = l.byteToken(token.ASTERISK)
	case '/':
		tok = l.byteToken(token.SLASH)
	case '<':
		tok = l.byteToken(token.LT)
	case '>':
		tok = l.byteToken(token.GT)
	case ',':
		tok = l.byteToken(token.COMMA)
	case ';':
		tok = l.byteToken(token.SEMICOLON)
	case '(':
		tok = l.byteToken(token.LPAREN)
	case ')':
		tok = l.byteToken(token.RPAREN)
	case '{':
		tok = l.byteToken(token.LBRACE)
	case '}':
		tok = l.byteToken(token.RBRACE)
	case 0:
		if l.position >= len(l.input) {
			return token.New(token.EOF, "")
		}
		tok = l.byteToken(token.ILLEGAL)
	default:
		switch {
		case isLetter(l.ch):
			ident := l.readWhile(isLetter)
			return token.New(token.LookupIdent(ident), ident)
		case isDigit(l.ch):
			return token.New(token.INT, l.readWhile(isDigit))
		default:
			tok = l.byteToken(token.ILLEGAL)
		}
	}

	l.readChar()
	return tok
}

// byteToken builds a token from the current byte without advancing.
func (l *Lexer) byteToken(kind token.Kind) token.Token {
	return token.New(kind, l.input[l.position:l.readPosition])
}

// twoByteToken consumes the current byte and builds a token spanning it and
// the next one. The caller's trailing readChar moves past the second byte.
func (l *Lexer) twoByteToken(kind token.Kind) token.Token {
	start := l.position
	l.readChar()
	return token.New(kind, l.input[start:l.readPosition])
}

func (l *Lexer) readWhile(accept func(byte) bool) string {
	start := l.position
	for accept(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// Tokenize drains a fresh lexer over input. The result always ends with a
// single EOF token.
func Tokenize(input string) []token.Token {
	l := New(input)
	var out []token.Token
	for {
		tok := l.NextToken()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}
