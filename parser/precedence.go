package parser

import "github.com/pontaoski/sepia/types"

type Precedence int

const (
	LOWEST Precedence = iota
	AND
	OR
	EQUALS
	LESSGREATER
	SUM
	PRODUCT
	PREFIX
	CALL
	INDEX
)

var precedences = map[types.TokenKind]Precedence{
	types.EQUAL:    EQUALS,
	types.NOTEQUAL: EQUALS,
	types.LT:       LESSGREATER,
	types.GT:       LESSGREATER,
	types.LTEQ:     LESSGREATER,
	types.GTEQ:     LESSGREATER,
	types.OR:       OR,
	types.AND:      AND,
	types.PLUS:     SUM,
	types.MINUS:    SUM,
	types.ASTERISK: PRODUCT,
	types.SLASH:    PRODUCT,
	types.LPAREN:   CALL,
	types.LBRACKET: INDEX,
}

// PrecedenceOf returns the binding power of kind in infix position. Kinds
// that cannot continue an expression are LOWEST.
func PrecedenceOf(kind types.TokenKind) Precedence {
	if p, ok := precedences[kind]; ok {
		return p
	}
	return LOWEST
}
