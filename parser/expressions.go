package parser

import (
	"github.com/pontaoski/sepia/ast"
	"github.com/pontaoski/sepia/errors"
	"github.com/pontaoski/sepia/types"
)

func (p *Parser) registerHandlers() {
	p.prefixParseFns = map[types.TokenKind]prefixParseFn{
		types.IDENT:    p.parseIdentifier,
		types.STRING:   p.parseStringLiteral,
		types.INTEGER:  p.parseIntegerLiteral,
		types.FLOAT:    p.parseFloatLiteral,
		types.BOOLEAN:  p.parseBooleanLiteral,
		types.MINUS:    p.parsePrefixExpression,
		types.BANG:     p.parsePrefixExpression,
		types.LPAREN:   p.parseGroupedExpression,
		types.LBRACKET: p.parseArrayLiteral,
		types.LBRACE:   p.parseMapLiteral,
		types.FUNCTION: p.parseFunctionLiteral,
		types.IF:       p.parseIfExpression,
	}

	p.infixParseFns = map[types.TokenKind]infixParseFn{
		types.PLUS:     p.parseInfixExpression,
		types.MINUS:    p.parseInfixExpression,
		types.ASTERISK: p.parseInfixExpression,
		types.SLASH:    p.parseInfixExpression,
		types.EQUAL:    p.parseInfixExpression,
		types.NOTEQUAL: p.parseInfixExpression,
		types.LT:       p.parseInfixExpression,
		types.GT:       p.parseInfixExpression,
		types.LTEQ:     p.parseInfixExpression,
		types.GTEQ:     p.parseInfixExpression,
		types.AND:      p.parseInfixExpression,
		types.OR:       p.parseInfixExpression,
		types.LPAREN:   p.parseCallExpression,
		types.LBRACKET: p.parseIndexExpression,
	}
}

// parseExpression is called with the cursor on the first token of the
// expression and returns with the cursor on its last token.
func (p *Parser) parseExpression(precedence Precedence) ast.Expression {
	tok := p.currentToken()
	prefix := p.prefixParseFns[tok.Kind]
	if prefix == nil {
		panic(errors.NoPrefixHandler{Kind: tok.Kind, Position: tok.Position})
	}

	left := prefix()

	for !p.peekTokenIs(types.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken().Kind]
		if infix == nil {
			return left
		}

		p.consumeToken()
		left = infix(left)
	}

	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	tok := p.currentToken()
	return ast.IdentifierLiteral{Token: tok, Name: tok.Text}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.currentToken()
	return ast.StringLiteral{Token: tok, Value: tok.Text}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	tok := p.currentToken()
	return ast.IntegerLiteral{Token: tok, Value: tok.Int}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	tok := p.currentToken()
	return ast.FloatLiteral{Token: tok, Value: tok.Float}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	tok := p.currentToken()
	return ast.BooleanLiteral{Token: tok, Value: tok.Bool}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	tok := p.currentToken()
	p.consumeToken()

	return ast.PrefixExpression{
		Token:    tok,
		Operator: tok.Kind,
		Right:    p.parseExpression(PREFIX),
	}
}

// parseInfixExpression parses the right operand at the operator's own
// precedence, so chains of equal precedence nest to the left.
func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	tok := p.currentToken()
	precedence := p.currentPrecedence()
	p.consumeToken()

	return ast.InfixExpression{
		Token:    tok,
		Operator: tok.Kind,
		Left:     left,
		Right:    p.parseExpression(precedence),
	}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.consumeToken()
	expr := p.parseExpression(LOWEST)
	p.expectPeek(types.RPAREN)
	return expr
}

// parseExpressionList parses comma separated expressions up to and
// including the closing token. The cursor starts on the opening token.
func (p *Parser) parseExpressionList(end types.TokenKind) []ast.Expression {
	var list []ast.Expression

	if p.peekTokenIs(end) {
		p.consumeToken()
		return list
	}

	p.consumeToken()
	list = append(list, p.parseExpression(LOWEST))

	for p.peekTokenIs(types.COMMA) {
		p.consumeToken()
		p.consumeToken()
		list = append(list, p.parseExpression(LOWEST))
	}

	p.expectPeek(end)
	return list
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.currentToken()
	return ast.ArrayLiteral{Token: tok, Elements: p.parseExpressionList(types.RBRACKET)}
}

func (p *Parser) parseMapLiteral() ast.Expression {
	lit := ast.MapLiteral{Token: p.currentToken()}

	for !p.peekTokenIs(types.RBRACE) {
		p.consumeToken()
		key := p.parseExpression(LOWEST)

		p.expectPeek(types.COLON)
		p.consumeToken()
		value := p.parseExpression(LOWEST)

		lit.Pairs = append(lit.Pairs, ast.MapPair{Key: key, Value: value})

		if !p.peekTokenIs(types.RBRACE) {
			p.expectPeek(types.COMMA)
		}
	}
	p.expectPeek(types.RBRACE)

	return lit
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	lit := ast.FunctionLiteral{Token: p.currentToken()}

	p.expectPeek(types.LPAREN)
	if p.peekTokenIs(types.RPAREN) {
		p.consumeToken()
	} else {
		for {
			p.expectPeek(types.IDENT)
			tok := p.currentToken()
			lit.Parameters = append(lit.Parameters, ast.IdentifierLiteral{Token: tok, Name: tok.Text})

			if !p.peekTokenIs(types.COMMA) {
				break
			}
			p.consumeToken()
		}
		p.expectPeek(types.RPAREN)
	}

	p.expectPeek(types.OPENBLOCK)
	lit.Body = p.parseBlock()

	return lit
}

func (p *Parser) parseIfExpression() ast.Expression {
	expr := ast.IfExpression{Token: p.currentToken()}
	p.consumeToken()

	expr.Condition = p.parseExpression(LOWEST)

	p.expectPeek(types.OPENBLOCK)
	expr.Consequence = p.parseBlock()

	if p.peekTokenIs(types.ELSE) {
		p.consumeToken()
		p.expectPeek(types.OPENBLOCK)
		alt := p.parseBlock()
		expr.Alternative = &alt
	}

	return expr
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	tok := p.currentToken()
	return ast.CallExpression{
		Token:     tok,
		Function:  function,
		Arguments: p.parseExpressionList(types.RPAREN),
	}
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	tok := p.currentToken()
	p.consumeToken()

	index := p.parseExpression(LOWEST)
	p.expectPeek(types.RBRACKET)

	return ast.IndexExpression{Token: tok, Left: left, Index: index}
}
