// Package parser builds an ast.Program from a token sequence.
//
// Statements are parsed by recursive descent and expressions by precedence
// climbing. A diagnostic aborts only the top-level statement it occurs in:
// the parser records it, skips past the next semicolon and carries on, so one
// pass reports every statement that failed.
package parser

import (
	"io"
	"log/slog"

	"github.com/pontaoski/sepia/ast"
	"github.com/pontaoski/sepia/errors"
	"github.com/pontaoski/sepia/lexer"
	"github.com/pontaoski/sepia/types"
	"github.com/ztrue/tracerr"
)

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	tokens   []types.Token
	position int
	errors   errors.List
	log      *slog.Logger
	depth    int

	prefixParseFns map[types.TokenKind]prefixParseFn
	infixParseFns  map[types.TokenKind]infixParseFn
}

type settings struct {
	log     *slog.Logger
	lexOpts []lexer.Option
}

type Option func(*settings)

func WithLogger(log *slog.Logger) Option {
	return func(s *settings) {
		s.log = log
	}
}

// WithLexerOptions is only used by Parse, which runs the lexer itself.
func WithLexerOptions(opts ...lexer.Option) Option {
	return func(s *settings) {
		s.lexOpts = append(s.lexOpts, opts...)
	}
}

func collectSettings(opts []Option) settings {
	s := settings{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func NewParser(tokens []types.Token, opts ...Option) *Parser {
	s := collectSettings(opts)
	p := &Parser{
		tokens: tokens,
		log:    s.log,
	}
	p.registerHandlers()
	return p
}

// Parse lexes and parses everything reader yields. The returned error, when
// not nil, wraps an errors.List holding the lexical diagnostics followed by
// the parse diagnostics; the program holds every statement that parsed.
func Parse(reader io.Reader, filename string, opts ...Option) (ast.Program, error) {
	s := collectSettings(opts)
	lexOpts := append([]lexer.Option{lexer.WithLogger(s.log)}, s.lexOpts...)

	l := lexer.NewLexer(reader, filename, lexOpts...)
	tokens := l.Collect()
	s.log.Debug("lexed source", "file", filename, "tokens", len(tokens), "diagnostics", len(l.Errors()))

	p := NewParser(tokens, opts...)
	program := p.ParseProgram()

	var diags errors.List
	diags = append(diags, l.Errors()...)
	diags = append(diags, p.Errors()...)
	if err := diags.Err(); err != nil {
		return program, tracerr.Wrap(err)
	}
	return program, nil
}

func (p *Parser) Errors() errors.List {
	return p.errors
}

func (p *Parser) atEnd() bool {
	return p.position >= len(p.tokens)
}

func (p *Parser) tokenAt(i int) types.Token {
	if i < len(p.tokens) {
		return p.tokens[i]
	}

	end := types.Token{Kind: types.EOF, Position: types.Position{Line: 1}}
	if len(p.tokens) > 0 {
		end.Position = p.tokens[len(p.tokens)-1].Position
	}
	return end
}

func (p *Parser) currentToken() types.Token {
	return p.tokenAt(p.position)
}

func (p *Parser) peekToken() types.Token {
	return p.tokenAt(p.position + 1)
}

func (p *Parser) consumeToken() {
	p.position++
}

func (p *Parser) currentTokenIs(kind types.TokenKind) bool {
	return p.currentToken().Kind == kind
}

func (p *Parser) peekTokenIs(kind types.TokenKind) bool {
	return p.peekToken().Kind == kind
}

func (p *Parser) peekPrecedence() Precedence {
	return PrecedenceOf(p.peekToken().Kind)
}

func (p *Parser) currentPrecedence() Precedence {
	return PrecedenceOf(p.currentToken().Kind)
}

// expectPeek advances onto the peek token if it is of the given kind and
// aborts the current statement otherwise.
func (p *Parser) expectPeek(kind types.TokenKind) {
	if p.peekTokenIs(kind) {
		p.consumeToken()
		return
	}

	peek := p.peekToken()
	panic(errors.UnexpectedToken{
		Expected: kind,
		Got:      peek,
		Position: peek.Position,
	})
}

func (p *Parser) skipSemicolon() {
	if p.peekTokenIs(types.SEMICOLON) {
		p.consumeToken()
	}
}

func (p *Parser) ParseProgram() ast.Program {
	program := ast.Program{}

	for !p.atEnd() {
		if stmt, ok := p.parseTopLevel(); ok {
			program.Statements = append(program.Statements, stmt)
		}
		p.consumeToken()
	}

	p.log.Debug("parsed program", "statements", len(program.Statements), "diagnostics", len(p.errors))
	return program
}

func (p *Parser) parseTopLevel() (stmt ast.Statement, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			d, isDiagnostic := r.(errors.Diagnostic)
			if !isDiagnostic {
				panic(r)
			}

			p.errors = append(p.errors, d)
			p.log.Debug("parse diagnostic", "position", d.Pos().String(), "error", d.Error())
			depth := p.depth
			p.depth = 0
			p.synchronize(depth)
			stmt, ok = nil, false
		}
	}()

	return p.parseStatement(), true
}

var statementKeywords = map[types.TokenKind]bool{
	types.VALUE:    true,
	types.UPDATE:   true,
	types.CONSTANT: true,
	types.RETURN:   true,
}

// synchronize skips the rest of a failed statement. depth is the number of
// blocks open when the statement failed; their closing `end`s are skipped too.
// The cursor is left on a top-level semicolon or on the token before a
// top-level statement keyword.
func (p *Parser) synchronize(depth int) {
	for !p.atEnd() {
		switch p.currentToken().Kind {
		case types.OPENBLOCK:
			depth++
		case types.ENDBLOCK:
			if depth > 0 {
				depth--
			}
		case types.SEMICOLON:
			if depth == 0 {
				return
			}
		}
		if depth == 0 && statementKeywords[p.peekToken().Kind] {
			return
		}
		p.consumeToken()
	}
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.currentToken().Kind {
	case types.RETURN:
		return p.parseReturnStatement()
	case types.VALUE:
		return p.parseValueStatement()
	case types.UPDATE:
		return p.parseUpdateStatement()
	case types.CONSTANT:
		return p.parseConstantStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.currentToken()
	p.consumeToken()

	value := p.parseExpression(LOWEST)
	p.skipSemicolon()

	return ast.ReturnStatement{Token: tok, Value: value}
}

// parseBinding handles the shared `KEYWORD name = expr [;]` shape.
func (p *Parser) parseBinding() (types.Token, ast.IdentifierLiteral, ast.Expression) {
	tok := p.currentToken()

	p.expectPeek(types.IDENT)
	name := ast.IdentifierLiteral{Token: p.currentToken(), Name: p.currentToken().Text}

	p.expectPeek(types.ASSIGN)
	p.consumeToken()

	value := p.parseExpression(LOWEST)
	p.skipSemicolon()

	return tok, name, value
}

func (p *Parser) parseValueStatement() ast.Statement {
	tok, name, value := p.parseBinding()
	return ast.ValueStatement{Token: tok, Name: name, Value: value}
}

func (p *Parser) parseUpdateStatement() ast.Statement {
	tok, name, value := p.parseBinding()
	return ast.UpdateStatement{Token: tok, Name: name, Value: value}
}

func (p *Parser) parseConstantStatement() ast.Statement {
	tok, name, value := p.parseBinding()
	return ast.ConstantStatement{Token: tok, Name: name, Value: value}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.currentToken()

	expr := p.parseExpression(LOWEST)
	p.skipSemicolon()

	return ast.ExpressionStatement{Token: tok, Expression: expr}
}

// parseBlock should be called with the cursor on the opening `->`; it
// returns with the cursor on the closing `end`.
func (p *Parser) parseBlock() ast.BlockStatement {
	block := ast.BlockStatement{Token: p.currentToken()}
	p.depth++
	p.consumeToken()

	for !p.currentTokenIs(types.ENDBLOCK) {
		if p.atEnd() {
			panic(errors.UnexpectedToken{
				Expected: types.ENDBLOCK,
				Got:      p.currentToken(),
				Position: p.currentToken().Position,
			})
		}
		block.Statements = append(block.Statements, p.parseStatement())
		p.consumeToken()
	}

	p.depth--
	return block
}
