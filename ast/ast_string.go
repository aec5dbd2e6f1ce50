package ast

import (
	"fmt"
	"strconv"
	"strings"
)

func joinExpressions(exprs []Expression) string {
	var parts []string
	for _, e := range exprs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}

func (v IdentifierLiteral) String() string { return v.Name }

func (v StringLiteral) String() string { return strconv.Quote(v.Value) }

func (v IntegerLiteral) String() string { return strconv.FormatUint(v.Value, 10) }

func (v FloatLiteral) String() string { return strconv.FormatFloat(v.Value, 'g', -1, 64) }

func (v BooleanLiteral) String() string { return strconv.FormatBool(v.Value) }

func (v ArrayLiteral) String() string {
	return "[" + joinExpressions(v.Elements) + "]"
}

func (v MapLiteral) String() string {
	var parts []string
	for _, pair := range v.Pairs {
		parts = append(parts, pair.Key.String()+": "+pair.Value.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (v FunctionLiteral) String() string {
	var params []string
	for _, p := range v.Parameters {
		params = append(params, p.Name)
	}
	return fmt.Sprintf("f(%s) %s", strings.Join(params, ", "), v.Body)
}

func (v PrefixExpression) String() string {
	return fmt.Sprintf("(%s%s)", v.Operator.Lexeme(), v.Right)
}

func (v InfixExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", v.Left, v.Operator.Lexeme(), v.Right)
}

func (v IndexExpression) String() string {
	return fmt.Sprintf("(%s[%s])", v.Left, v.Index)
}

func (v CallExpression) String() string {
	return fmt.Sprintf("%s(%s)", v.Function, joinExpressions(v.Arguments))
}

func (v IfExpression) String() string {
	if v.Alternative == nil {
		return fmt.Sprintf("if %s %s", v.Condition, v.Consequence)
	}
	return fmt.Sprintf("if %s %s else %s", v.Condition, v.Consequence, *v.Alternative)
}

func (v BlockStatement) String() string {
	var out strings.Builder
	out.WriteString("->")
	for _, s := range v.Statements {
		out.WriteString(" ")
		out.WriteString(s.String())
	}
	out.WriteString(" end")
	return out.String()
}

func (v ExpressionStatement) String() string { return v.Expression.String() }

func (v ValueStatement) String() string {
	return fmt.Sprintf("value %s = %s;", v.Name, v.Value)
}

func (v UpdateStatement) String() string {
	return fmt.Sprintf("update %s = %s;", v.Name, v.Value)
}

func (v ConstantStatement) String() string {
	return fmt.Sprintf("constant %s = %s;", v.Name, v.Value)
}

func (v ReturnStatement) String() string {
	return fmt.Sprintf("return %s;", v.Value)
}

func (p Program) String() string {
	var lines []string
	for _, s := range p.Statements {
		lines = append(lines, s.String())
	}
	return strings.Join(lines, "\n")
}
