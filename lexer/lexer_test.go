package lexer

import (
	"io"
	"slices"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/alecthomas/repr"
	"github.com/pontaoski/sepia/errors"
	"github.com/pontaoski/sepia/types"
)

func lexToEnd(t *testing.T, input string, opts ...Option) ([]types.Token, errors.List) {
	t.Helper()
	l := NewLexer(strings.NewReader(input), "stdin", opts...)
	return l.Collect(), l.Errors()
}

func kindsOf(tokens []types.Token) []types.TokenKind {
	var ret []types.TokenKind
	for _, tok := range tokens {
		ret = append(ret, tok.Kind)
	}
	return ret
}

func expectKinds(t *testing.T, input string, want ...types.TokenKind) []types.Token {
	t.Helper()
	tokens, errs := lexToEnd(t, input)
	if len(errs) != 0 {
		t.Fatalf("lexing %q: unexpected diagnostics:\n%s", input, errs)
	}
	got := kindsOf(tokens)
	if !slices.Equal(got, want) {
		t.Fatalf("lexing %q:\ngot  %v\nwant %v", input, got, want)
	}
	return tokens
}

func TestCompoundOperators(t *testing.T) {
	tests := []struct {
		input string
		kind  types.TokenKind
	}{
		{"&&", types.AND},
		{"||", types.OR},
		{"==", types.EQUAL},
		{"!=", types.NOTEQUAL},
		{"<=", types.LTEQ},
		{">=", types.GTEQ},
		{"->", types.OPENBLOCK},
		{"++", types.DOUBLEPLUS},
		{"--", types.DOUBLEMINUS},
	}

	for _, tt := range tests {
		tokens := expectKinds(t, tt.input, tt.kind)
		if tokens[0].Position.Column != 1 {
			t.Errorf("%q: column = %d, want 1", tt.input, tokens[0].Position.Column)
		}
	}
}

func TestPlainOperators(t *testing.T) {
	expectKinds(t, "+ - * / = ! < > & | ( ) [ ] { } ; : , .",
		types.PLUS, types.MINUS, types.ASTERISK, types.SLASH, types.ASSIGN,
		types.BANG, types.LT, types.GT, types.AMPERSAND, types.BAR,
		types.LPAREN, types.RPAREN, types.LBRACKET, types.RBRACKET,
		types.LBRACE, types.RBRACE, types.SEMICOLON, types.COLON,
		types.COMMA, types.PERIOD,
	)

	// end of input is an acceptable follower
	expectKinds(t, "x -", types.IDENT, types.MINUS)
}

func TestOperatorFollowers(t *testing.T) {
	tokens, errs := lexToEnd(t, "x +y")
	if got := kindsOf(tokens); !slices.Equal(got, []types.TokenKind{types.IDENT, types.IDENT}) {
		t.Fatalf("got %v", got)
	}
	if len(errs) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %s", len(errs), errs)
	}
	mal, ok := errs[0].(errors.MalformedOperator)
	if !ok {
		t.Fatalf("diagnostic is %T, want MalformedOperator", errs[0])
	}
	if mal.Operator != '+' || mal.Follower != 'y' || mal.Position.Line != 1 || mal.Position.Column != 3 {
		t.Fatalf("unexpected diagnostic %s", repr.String(mal))
	}

	_, errs = lexToEnd(t, "&x |y")
	if len(errs) != 2 {
		t.Fatalf("got %d diagnostics, want 2: %s", len(errs), errs)
	}

	tokens, errs = lexToEnd(t, "x+y -1 a<=b", WithLenientOperators())
	if len(errs) != 0 {
		t.Fatalf("lenient lexing reported %s", errs)
	}
	want := []types.TokenKind{
		types.IDENT, types.PLUS, types.IDENT,
		types.MINUS, types.INTEGER,
		types.IDENT, types.LTEQ, types.IDENT,
	}
	if got := kindsOf(tokens); !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNumbers(t *testing.T) {
	tokens := expectKinds(t, "123", types.INTEGER)
	if tokens[0].Int != 123 {
		t.Errorf("got %d, want 123", tokens[0].Int)
	}

	tokens = expectKinds(t, "1.5", types.FLOAT)
	if tokens[0].Float != 1.5 {
		t.Errorf("got %v, want 1.5", tokens[0].Float)
	}

	tokens = expectKinds(t, "12.a", types.INTEGER, types.PERIOD, types.IDENT)
	if tokens[0].Int != 12 || tokens[2].Text != "a" {
		t.Errorf("unexpected tokens %s", repr.String(tokens))
	}
	if tokens[1].Position.Column != 3 || tokens[2].Position.Column != 4 {
		t.Errorf("unexpected positions %s", repr.String(tokens))
	}

	expectKinds(t, "7.", types.INTEGER, types.PERIOD)
}

func TestMalformedNumbers(t *testing.T) {
	for _, input := range []string{"99999999999999999999", "1.2.3"} {
		tokens, errs := lexToEnd(t, input+" x")
		if got := kindsOf(tokens); !slices.Equal(got, []types.TokenKind{types.IDENT}) {
			t.Errorf("%q: got %v", input, got)
		}
		if len(errs) != 1 {
			t.Fatalf("%q: got %d diagnostics, want 1", input, len(errs))
		}
		num, ok := errs[0].(errors.MalformedNumericLiteral)
		if !ok || num.Literal != input || num.Position.Column != 1 {
			t.Errorf("%q: unexpected diagnostic %s", input, repr.String(errs[0]))
		}
	}
}

func TestKeywords(t *testing.T) {
	tokens := expectKinds(t, "true false value update constant return if else f end",
		types.BOOLEAN, types.BOOLEAN, types.VALUE, types.UPDATE, types.CONSTANT,
		types.RETURN, types.IF, types.ELSE, types.FUNCTION, types.ENDBLOCK,
	)
	if !tokens[0].Bool || tokens[1].Bool {
		t.Errorf("boolean payloads wrong: %s", repr.String(tokens[:2]))
	}
}

func TestKeywordBoundary(t *testing.T) {
	tokens := expectKinds(t, "truely values fn ending _if",
		types.IDENT, types.IDENT, types.IDENT, types.IDENT, types.IDENT)
	want := []string{"truely", "values", "fn", "ending", "_if"}
	for i, tok := range tokens {
		if tok.Text != want[i] {
			t.Errorf("token %d: got %q, want %q", i, tok.Text, want[i])
		}
	}

	// digits are not identifier characters
	expectKinds(t, "x1", types.IDENT, types.INTEGER)
}

func TestStrings(t *testing.T) {
	tokens := expectKinds(t, "\"hello world\"", types.STRING)
	if tokens[0].Text != "hello world" {
		t.Errorf("got %q", tokens[0].Text)
	}

	tokens = expectKinds(t, "\"a\nb\" x", types.STRING, types.IDENT)
	if tokens[0].Text != "a\nb" {
		t.Errorf("newline not kept: %q", tokens[0].Text)
	}
	if pos := tokens[1].Position; pos.Line != 2 || pos.Column != 4 {
		t.Errorf("identifier after multi-line string at %s, want line 2 column 4", pos)
	}

	tokens = expectKinds(t, "\"unterminated", types.STRING)
	if tokens[0].Text != "unterminated" {
		t.Errorf("got %q", tokens[0].Text)
	}
}

func TestPositions(t *testing.T) {
	tokens := expectKinds(t, "value x = 3;\n\t y",
		types.VALUE, types.IDENT, types.ASSIGN, types.INTEGER, types.SEMICOLON, types.IDENT)

	want := []types.Position{
		{Line: 1, Column: 1, Filename: "stdin"},
		{Line: 1, Column: 7, Filename: "stdin"},
		{Line: 1, Column: 9, Filename: "stdin"},
		{Line: 1, Column: 11, Filename: "stdin"},
		{Line: 1, Column: 12, Filename: "stdin"},
		{Line: 2, Column: 3, Filename: "stdin"},
	}
	for i, tok := range tokens {
		if tok.Position != want[i] {
			t.Errorf("token %d (%s): got %s, want %s", i, tok, tok.Position, want[i])
		}
	}
}

func TestUnrecognizedCharacter(t *testing.T) {
	tokens, errs := lexToEnd(t, "a # b")
	if got := kindsOf(tokens); !slices.Equal(got, []types.TokenKind{types.IDENT, types.IDENT}) {
		t.Fatalf("got %v", got)
	}
	if len(errs) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(errs))
	}
	un, ok := errs[0].(errors.UnrecognizedCharacter)
	if !ok || un.Char != '#' || un.Position.Column != 3 {
		t.Fatalf("unexpected diagnostic %s", repr.String(errs[0]))
	}
}

func TestEmptyInput(t *testing.T) {
	tokens, errs := lexToEnd(t, "")
	if len(tokens) != 0 || len(errs) != 0 {
		t.Fatalf("got %d tokens and %d diagnostics for empty input", len(tokens), len(errs))
	}
}

func TestExhaustedStaysExhausted(t *testing.T) {
	l := NewLexer(strings.NewReader("a"), "")
	if _, ok := l.Next(); !ok {
		t.Fatal("expected a token")
	}
	for i := 0; i < 3; i++ {
		if tok, ok := l.Next(); ok {
			t.Fatalf("got %s after end of input", tok)
		}
	}
}

func TestReadFailureEndsStream(t *testing.T) {
	source := io.MultiReader(strings.NewReader("x "), iotest.ErrReader(io.ErrClosedPipe))
	l := NewLexer(source, "broken.sp")

	tokens := l.Collect()
	if got := kindsOf(tokens); !slices.Equal(got, []types.TokenKind{types.IDENT}) {
		t.Fatalf("got %v, want the token read before the failure", got)
	}
	if tok, ok := l.Next(); ok {
		t.Fatalf("got %s after a read failure", tok)
	}

	errs := l.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %d diagnostics, want 1:\n%s", len(errs), errs)
	}
	failure, ok := errs[0].(errors.ReadFailure)
	if !ok {
		t.Fatalf("diagnostic is %T, want errors.ReadFailure", errs[0])
	}
	if failure.Cause != io.ErrClosedPipe {
		t.Errorf("cause is %v, want %v", failure.Cause, io.ErrClosedPipe)
	}
	want := types.Position{Line: 1, Column: 2, Filename: "broken.sp"}
	if failure.Position != want {
		t.Errorf("failure at %s, want %s", failure.Position, want)
	}
}

func TestAllStopsEarly(t *testing.T) {
	l := NewLexer(strings.NewReader("a b c"), "")
	for tok := range l.All() {
		if tok.Text != "a" {
			t.Fatalf("got %s", tok)
		}
		break
	}

	rest := l.Collect()
	if len(rest) != 2 || rest[0].Text != "b" {
		t.Fatalf("remaining tokens %s", repr.String(rest))
	}
}
