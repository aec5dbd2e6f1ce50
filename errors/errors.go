package errors

import (
	"fmt"
	"strings"

	"github.com/pontaoski/sepia/types"
)

// Diagnostic is a positioned, human-readable failure reported by the lexer
// or the parser.
type Diagnostic interface {
	error
	Pos() types.Position
}

type UnrecognizedCharacter struct {
	Char     rune
	Position types.Position
}

func (e UnrecognizedCharacter) Error() string {
	return fmt.Sprintf("unrecognized character %q. %s", e.Char, e.Position)
}

func (e UnrecognizedCharacter) Pos() types.Position { return e.Position }

type MalformedNumericLiteral struct {
	Literal  string
	Position types.Position
}

func (e MalformedNumericLiteral) Error() string {
	return fmt.Sprintf("malformed numeric literal %s. %s", e.Literal, e.Position)
}

func (e MalformedNumericLiteral) Pos() types.Position { return e.Position }

// MalformedOperator is reported when an operator character is followed by
// something that neither completes a compound operator nor is allowed to
// follow its plain form.
type MalformedOperator struct {
	Operator rune
	Follower rune
	Position types.Position
}

func (e MalformedOperator) Error() string {
	return fmt.Sprintf("operator %q cannot be followed by %q. %s", e.Operator, e.Follower, e.Position)
}

func (e MalformedOperator) Pos() types.Position { return e.Position }

type ReadFailure struct {
	Cause    error
	Position types.Position
}

func (e ReadFailure) Error() string {
	return fmt.Sprintf("reading source: %s. %s", e.Cause, e.Position)
}

func (e ReadFailure) Pos() types.Position { return e.Position }

func (e ReadFailure) Unwrap() error { return e.Cause }

type UnexpectedToken struct {
	Expected types.TokenKind
	Got      types.Token
	Position types.Position
}

func (e UnexpectedToken) Error() string {
	return fmt.Sprintf("got a %s, expected a %s. %s", e.Got, e.Expected, e.Position)
}

func (e UnexpectedToken) Pos() types.Position { return e.Position }

type NoPrefixHandler struct {
	Kind     types.TokenKind
	Position types.Position
}

func (e NoPrefixHandler) Error() string {
	return fmt.Sprintf("an expression cannot start with %s. %s", e.Kind, e.Position)
}

func (e NoPrefixHandler) Pos() types.Position { return e.Position }

// List keeps diagnostics in the order they were reported.
type List []Diagnostic

func (l List) Error() string {
	msgs := make([]string, 0, len(l))
	for _, d := range l {
		msgs = append(msgs, d.Error())
	}
	return strings.Join(msgs, "\n")
}

// Err returns nil for an empty list so callers can use the usual err != nil check.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
