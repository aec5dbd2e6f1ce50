// Package ast holds the syntax tree built by the parser.
//
// Expressions and statements are closed sum types: only the types in this
// file implement them. Every node keeps the token it started from so the
// evaluator can point diagnostics at source positions. Nodes are plain
// values owned by exactly one parent and are never modified after parsing.
package ast

import "github.com/pontaoski/sepia/types"

type Node interface {
	Pos() types.Position
	String() string
}

type Expression interface {
	Node
	is_Expression()
}

type Statement interface {
	Node
	is_Statement()
}

type IdentifierLiteral struct {
	Token types.Token
	Name  string
}

func (v IdentifierLiteral) is_Expression() {}

type StringLiteral struct {
	Token types.Token
	Value string
}

func (v StringLiteral) is_Expression() {}

type IntegerLiteral struct {
	Token types.Token
	Value uint64
}

func (v IntegerLiteral) is_Expression() {}

type FloatLiteral struct {
	Token types.Token
	Value float64
}

func (v FloatLiteral) is_Expression() {}

type BooleanLiteral struct {
	Token types.Token
	Value bool
}

func (v BooleanLiteral) is_Expression() {}

type ArrayLiteral struct {
	Token    types.Token
	Elements []Expression
}

func (v ArrayLiteral) is_Expression() {}

type MapPair struct {
	Key   Expression
	Value Expression
}

// MapLiteral keeps its pairs in source order; consumers must not depend on it.
type MapLiteral struct {
	Token types.Token
	Pairs []MapPair
}

func (v MapLiteral) is_Expression() {}

type FunctionLiteral struct {
	Token      types.Token
	Parameters []IdentifierLiteral
	Body       BlockStatement
}

func (v FunctionLiteral) is_Expression() {}

type PrefixExpression struct {
	Token    types.Token
	Operator types.TokenKind
	Right    Expression
}

func (v PrefixExpression) is_Expression() {}

type InfixExpression struct {
	Token    types.Token
	Operator types.TokenKind
	Left     Expression
	Right    Expression
}

func (v InfixExpression) is_Expression() {}

type IndexExpression struct {
	Token types.Token
	Left  Expression
	Index Expression
}

func (v IndexExpression) is_Expression() {}

type CallExpression struct {
	Token     types.Token
	Function  Expression
	Arguments []Expression
}

func (v CallExpression) is_Expression() {}

type IfExpression struct {
	Token       types.Token
	Condition   Expression
	Consequence BlockStatement
	Alternative *BlockStatement
}

func (v IfExpression) is_Expression() {}

type BlockStatement struct {
	Token      types.Token
	Statements []Statement
}

func (v BlockStatement) is_Statement() {}

type ExpressionStatement struct {
	Token      types.Token
	Expression Expression
}

func (v ExpressionStatement) is_Statement() {}

// ValueStatement introduces an immutable binding.
type ValueStatement struct {
	Token types.Token
	Name  IdentifierLiteral
	Value Expression
}

func (v ValueStatement) is_Statement() {}

// UpdateStatement rebinds a name that already exists.
type UpdateStatement struct {
	Token types.Token
	Name  IdentifierLiteral
	Value Expression
}

func (v UpdateStatement) is_Statement() {}

type ConstantStatement struct {
	Token types.Token
	Name  IdentifierLiteral
	Value Expression
}

func (v ConstantStatement) is_Statement() {}

type ReturnStatement struct {
	Token types.Token
	Value Expression
}

func (v ReturnStatement) is_Statement() {}

type Program struct {
	Statements []Statement
}

func (v IdentifierLiteral) Pos() types.Position   { return v.Token.Position }
func (v StringLiteral) Pos() types.Position       { return v.Token.Position }
func (v IntegerLiteral) Pos() types.Position      { return v.Token.Position }
func (v FloatLiteral) Pos() types.Position        { return v.Token.Position }
func (v BooleanLiteral) Pos() types.Position      { return v.Token.Position }
func (v ArrayLiteral) Pos() types.Position        { return v.Token.Position }
func (v MapLiteral) Pos() types.Position          { return v.Token.Position }
func (v FunctionLiteral) Pos() types.Position     { return v.Token.Position }
func (v PrefixExpression) Pos() types.Position    { return v.Token.Position }
func (v InfixExpression) Pos() types.Position     { return v.Token.Position }
func (v IndexExpression) Pos() types.Position     { return v.Token.Position }
func (v CallExpression) Pos() types.Position      { return v.Token.Position }
func (v IfExpression) Pos() types.Position        { return v.Token.Position }
func (v BlockStatement) Pos() types.Position      { return v.Token.Position }
func (v ExpressionStatement) Pos() types.Position { return v.Token.Position }
func (v ValueStatement) Pos() types.Position      { return v.Token.Position }
func (v UpdateStatement) Pos() types.Position     { return v.Token.Position }
func (v ConstantStatement) Pos() types.Position   { return v.Token.Position }
func (v ReturnStatement) Pos() types.Position     { return v.Token.Position }

func (p Program) Pos() types.Position {
	if len(p.Statements) == 0 {
		return types.Position{Line: 1, Column: 1}
	}
	return p.Statements[0].Pos()
}
