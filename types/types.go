package types

import (
	"fmt"
	"strconv"
)

type Position struct {
	Line     int
	Column   int
	Filename string
}

type TokenKind int

const (
	// EOF is never produced by the lexer; the parser's cursor reports it
	// once the token sequence is exhausted.
	EOF TokenKind = iota

	STRING
	INTEGER
	FLOAT
	IDENT
	BOOLEAN

	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	LBRACE
	RBRACE

	SEMICOLON
	COLON
	PERIOD
	COMMA

	PLUS
	MINUS
	ASTERISK
	SLASH

	EQUAL
	NOTEQUAL
	LT
	GT
	LTEQ
	GTEQ

	AND
	OR
	BANG
	AMPERSAND
	BAR

	ASSIGN
	DOUBLEPLUS
	DOUBLEMINUS

	OPENBLOCK
	ENDBLOCK

	VALUE
	UPDATE
	CONSTANT
	FUNCTION
	IF
	ELSE
	RETURN
)

var kindNames = map[TokenKind]string{
	EOF:         "EOF",
	STRING:      "STRING",
	INTEGER:     "INTEGER",
	FLOAT:       "FLOAT",
	IDENT:       "IDENT",
	BOOLEAN:     "BOOLEAN",
	LPAREN:      "LPAREN",
	RPAREN:      "RPAREN",
	LBRACKET:    "LBRACKET",
	RBRACKET:    "RBRACKET",
	LBRACE:      "LBRACE",
	RBRACE:      "RBRACE",
	SEMICOLON:   "SEMICOLON",
	COLON:       "COLON",
	PERIOD:      "PERIOD",
	COMMA:       "COMMA",
	PLUS:        "PLUS",
	MINUS:       "MINUS",
	ASTERISK:    "ASTERISK",
	SLASH:       "SLASH",
	EQUAL:       "EQUAL",
	NOTEQUAL:    "NOTEQUAL",
	LT:          "LT",
	GT:          "GT",
	LTEQ:        "LTEQ",
	GTEQ:        "GTEQ",
	AND:         "AND",
	OR:          "OR",
	BANG:        "BANG",
	AMPERSAND:   "AMPERSAND",
	BAR:         "BAR",
	ASSIGN:      "ASSIGN",
	DOUBLEPLUS:  "DOUBLEPLUS",
	DOUBLEMINUS: "DOUBLEMINUS",
	OPENBLOCK:   "OPENBLOCK",
	ENDBLOCK:    "ENDBLOCK",
	VALUE:       "VALUE",
	UPDATE:      "UPDATE",
	CONSTANT:    "CONSTANT",
	FUNCTION:    "FUNCTION",
	IF:          "IF",
	ELSE:        "ELSE",
	RETURN:      "RETURN",
}

var kindLexemes = map[TokenKind]string{
	LPAREN:      "(",
	RPAREN:      ")",
	LBRACKET:    "[",
	RBRACKET:    "]",
	LBRACE:      "{",
	RBRACE:      "}",
	SEMICOLON:   ";",
	COLON:       ":",
	PERIOD:      ".",
	COMMA:       ",",
	PLUS:        "+",
	MINUS:       "-",
	ASTERISK:    "*",
	SLASH:       "/",
	EQUAL:       "==",
	NOTEQUAL:    "!=",
	LT:          "<",
	GT:          ">",
	LTEQ:        "<=",
	GTEQ:        ">=",
	AND:         "&&",
	OR:          "||",
	BANG:        "!",
	AMPERSAND:   "&",
	BAR:         "|",
	ASSIGN:      "=",
	DOUBLEPLUS:  "++",
	DOUBLEMINUS: "--",
	OPENBLOCK:   "->",
	ENDBLOCK:    "end",
	VALUE:       "value",
	UPDATE:      "update",
	CONSTANT:    "constant",
	FUNCTION:    "f",
	IF:          "if",
	ELSE:        "else",
	RETURN:      "return",
}

func (t TokenKind) String() string {
	if name, ok := kindNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(t))
}

// Lexeme returns the source spelling of fixed-text kinds, and the kind
// name for kinds that carry a payload.
func (t TokenKind) Lexeme() string {
	if lit, ok := kindLexemes[t]; ok {
		return lit
	}
	return t.String()
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Token is produced once by the lexer and never mutated. Only the payload
// field matching Kind is meaningful: Text for STRING and IDENT, Int for
// INTEGER, Float for FLOAT, Bool for BOOLEAN.
type Token struct {
	Kind     TokenKind
	Position Position

	Text  string
	Int   uint64
	Float float64
	Bool  bool
}

func (t Token) String() string {
	switch t.Kind {
	case STRING:
		return fmt.Sprintf("%s(%s)", t.Kind, strconv.Quote(t.Text))
	case IDENT:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
	case INTEGER:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Int)
	case FLOAT:
		return fmt.Sprintf("%s(%s)", t.Kind, strconv.FormatFloat(t.Float, 'g', -1, 64))
	case BOOLEAN:
		return fmt.Sprintf("%s(%t)", t.Kind, t.Bool)
	}
	return t.Kind.String()
}
