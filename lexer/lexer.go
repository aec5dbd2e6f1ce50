// Package lexer turns sepia source text into a position-tracked token stream.
//
// The stream is forward-only: every call to Next consumes input, and a
// Lexer cannot be rewound. Lexical diagnostics never stop the stream; the
// offending character or lexeme yields no token and lexing resumes right
// after it. The collected diagnostics are available from Errors once the
// stream is drained.
package lexer

import (
	"bufio"
	"io"
	"iter"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/pontaoski/sepia/errors"
	"github.com/pontaoski/sepia/types"
)

type Lexer struct {
	pos     types.Position
	reader  *bufio.Reader
	done    bool
	lenient bool
	log     *slog.Logger
	errors  errors.List
}

type Option func(*Lexer)

// WithLenientOperators lets the plain form of an operator ("-", "=", "<", ...)
// be followed by any character instead of only whitespace or end of input.
func WithLenientOperators() Option {
	return func(l *Lexer) {
		l.lenient = true
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(l *Lexer) {
		l.log = log
	}
}

func NewLexer(reader io.Reader, filename string, opts ...Option) *Lexer {
	l := &Lexer{
		pos:    types.Position{Line: 1, Column: 0, Filename: filename},
		reader: bufio.NewReader(reader),
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var singles = map[rune]types.TokenKind{
	'(': types.LPAREN,
	')': types.RPAREN,
	'[': types.LBRACKET,
	']': types.RBRACKET,
	'{': types.LBRACE,
	'}': types.RBRACE,
	';': types.SEMICOLON,
	':': types.COLON,
	'.': types.PERIOD,
	',': types.COMMA,
	'*': types.ASTERISK,
	'/': types.SLASH,
}

type operator struct {
	plain    types.TokenKind
	compound map[rune]types.TokenKind
}

var operators = map[rune]operator{
	'&': {types.AMPERSAND, map[rune]types.TokenKind{'&': types.AND}},
	'|': {types.BAR, map[rune]types.TokenKind{'|': types.OR}},
	'+': {types.PLUS, map[rune]types.TokenKind{'+': types.DOUBLEPLUS}},
	'-': {types.MINUS, map[rune]types.TokenKind{'-': types.DOUBLEMINUS, '>': types.OPENBLOCK}},
	'=': {types.ASSIGN, map[rune]types.TokenKind{'=': types.EQUAL}},
	'!': {types.BANG, map[rune]types.TokenKind{'=': types.NOTEQUAL}},
	'>': {types.GT, map[rune]types.TokenKind{'=': types.GTEQ}},
	'<': {types.LT, map[rune]types.TokenKind{'=': types.LTEQ}},
}

var keywords = map[string]types.TokenKind{
	"true":     types.BOOLEAN,
	"false":    types.BOOLEAN,
	"value":    types.VALUE,
	"update":   types.UPDATE,
	"constant": types.CONSTANT,
	"return":   types.RETURN,
	"if":       types.IF,
	"else":     types.ELSE,
	"f":        types.FUNCTION,
	"end":      types.ENDBLOCK,
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func (l *Lexer) newline() {
	l.pos.Line++
	l.pos.Column = 0
}

func (l *Lexer) fail(err error) {
	l.done = true
	if err != io.EOF {
		l.report(errors.ReadFailure{Cause: err, Position: l.pos})
	}
}

func (l *Lexer) report(d errors.Diagnostic) {
	l.errors = append(l.errors, d)
	l.log.Debug("lexical diagnostic", "position", d.Pos().String(), "error", d.Error())
}

func (l *Lexer) read() (rune, bool) {
	if l.done {
		return 0, false
	}
	r, _, err := l.reader.ReadRune()
	if err != nil {
		l.fail(err)
		return 0, false
	}
	l.pos.Column++
	return r, true
}

func (l *Lexer) peek() (rune, bool) {
	if l.done {
		return 0, false
	}
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err != io.EOF {
			l.fail(err)
		}
		return 0, false
	}
	if err := l.reader.UnreadRune(); err != nil {
		panic(err)
	}
	return r, true
}

// digitAfterPeriod reports whether the next two bytes are a '.' and a digit.
func (l *Lexer) digitAfterPeriod() bool {
	byt, _ := l.reader.Peek(2)
	return len(byt) == 2 && byt[0] == '.' && isDigit(rune(byt[1]))
}

func kinded(t types.TokenKind, at types.Position) types.Token {
	return types.Token{
		Kind:     t,
		Position: at,
	}
}

// Next returns the next token, or false once the input is exhausted.
func (l *Lexer) Next() (types.Token, bool) {
	for {
		r, ok := l.read()
		if !ok {
			return types.Token{}, false
		}
		from := l.pos

		if kind, ok := singles[r]; ok {
			return kinded(kind, from), true
		}

		switch r {
		case ' ', '\t', '\r':
			continue
		case '\n':
			l.newline()
			continue
		case '"':
			return l.lexString(from), true
		}

		if op, ok := operators[r]; ok {
			if tok, ok := l.lexOperator(r, op, from); ok {
				return tok, true
			}
			continue
		}

		switch {
		case isDigit(r):
			if tok, ok := l.lexNumber(r, from); ok {
				return tok, true
			}
			continue
		case isLetter(r):
			return l.lexIdent(r, from), true
		}

		l.report(errors.UnrecognizedCharacter{Char: r, Position: from})
	}
}

func (l *Lexer) lexOperator(r rune, op operator, from types.Position) (types.Token, bool) {
	next, ok := l.peek()
	if ok {
		if kind, hit := op.compound[next]; hit {
			l.read()
			return kinded(kind, from), true
		}
	}
	if !ok || isSpace(next) || l.lenient {
		return kinded(op.plain, from), true
	}

	l.report(errors.MalformedOperator{Operator: r, Follower: next, Position: from})
	return types.Token{}, false
}

// lexString is called past the opening quote. A missing closing quote
// still yields a token holding everything up to the end of input.
func (l *Lexer) lexString(from types.Position) types.Token {
	var lit strings.Builder
	for {
		r, ok := l.read()
		if !ok || r == '"' {
			break
		}
		lit.WriteRune(r)
		if r == '\n' {
			l.newline()
		}
	}

	return types.Token{Kind: types.STRING, Position: from, Text: lit.String()}
}

func (l *Lexer) lexNumber(first rune, from types.Position) (types.Token, bool) {
	var lit strings.Builder
	lit.WriteRune(first)
	isFloat := false

	for {
		r, ok := l.peek()
		if !ok {
			break
		}
		if isDigit(r) {
			l.read()
			lit.WriteRune(r)
			continue
		}
		if r == '.' && l.digitAfterPeriod() {
			l.read()
			lit.WriteRune(r)
			isFloat = true
			continue
		}
		break
	}

	if isFloat {
		parsed, err := strconv.ParseFloat(lit.String(), 64)
		if err != nil {
			l.report(errors.MalformedNumericLiteral{Literal: lit.String(), Position: from})
			return types.Token{}, false
		}
		return types.Token{Kind: types.FLOAT, Position: from, Float: parsed}, true
	}

	parsed, err := strconv.ParseUint(lit.String(), 10, 64)
	if err != nil {
		l.report(errors.MalformedNumericLiteral{Literal: lit.String(), Position: from})
		return types.Token{}, false
	}
	return types.Token{Kind: types.INTEGER, Position: from, Int: parsed}, true
}

func (l *Lexer) lexIdent(first rune, from types.Position) types.Token {
	var lit strings.Builder
	lit.WriteRune(first)

	for {
		r, ok := l.peek()
		if !ok || !isLetter(r) {
			break
		}
		l.read()
		lit.WriteRune(r)
	}

	word := lit.String()
	if kind, ok := keywords[word]; ok {
		return types.Token{Kind: kind, Position: from, Bool: word == "true"}
	}

	return types.Token{Kind: types.IDENT, Position: from, Text: word}
}

// All exposes the remaining token stream as an iterator.
func (l *Lexer) All() iter.Seq[types.Token] {
	return func(yield func(types.Token) bool) {
		for {
			tok, ok := l.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Collect drains the lexer.
func (l *Lexer) Collect() []types.Token {
	return slices.Collect(l.All())
}

func (l *Lexer) Errors() errors.List {
	return l.errors
}
