package token

import "fmt"

// Kind identifies the lexical category of a token.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF

	IDENT
	INT

	ASSIGN
	PLUS
	MINUS
	BANG
	ASTERISK
	SLASH
	LT
	GT
	EQ
	NOT_EQ

	COMMA
	SEMICOLON
	LPAREN
	RPAREN
	LBRACE
	RBRACE

	keywordBeg
	FUNCTION
	LET
	TRUE
	FALSE
	IF
	ELSE
	RETURN
	keywordEnd
)

var kindNames = [...]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	IDENT:     "IDENT",
	INT:       "INT",
	ASSIGN:    "=",
	PLUS:      "+",
	MINUS:     "-",
	BANG:      "!",
	ASTERISK:  "*",
	SLASH:     "/",
	LT:        "<",
	GT:        ">",
	EQ:        "==",
	NOT_EQ:    "!=",
	COMMA:     ",",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	FUNCTION:  "FUNCTION",
	LET:       "LET",
	TRUE:      "TRUE",
	FALSE:     "FALSE",
	IF:        "IF",
	ELSE:      "ELSE",
	RETURN:    "RETURN",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("unknown_kind_%d", int(k))
}

// MarshalText encodes the kind by name so JSON dumps stay readable.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsKeyword reports whether k is produced from a reserved word.
func (k Kind) IsKeyword() bool {
	return keywordBeg < k && k < keywordEnd
}

// Token is a single lexical unit. Two tokens are equal when both kind and
// literal match.
type Token struct {
	Kind    Kind   `json:"kind"`
	Literal string `json:"literal"`
}

func New(kind Kind, literal string) Token {
	return Token{Kind: kind, Literal: literal}
}

func (t Token) String() string {
	if t.Literal == "" || t.Literal == t.Kind.String() || t.Kind.IsKeyword() {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", t.Kind, t.Literal)
}

var keywords = map[string]Kind{
	"fn":     FUNCTION,
	"let":    LET,
	"true":   TRUE,
	"false":  FALSE,
	"if":     IF,
	"else":   ELSE,
	"return": RETURN,
}

// LookupIdent maps an identifier run to its keyword kind, or IDENT when the
// word is not reserved.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return IDENT
}
