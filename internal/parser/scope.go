package parser

import (
	"github.com/opal-lang/opal/internal/ast"
	"github.com/opal-lang/opal/internal/literal"
	"github.com/opal-lang/opal/internal/source"
	"github.com/opal-lang/opal/internal/token"
)

// ParseFile parses the entire source as the implicit top-level Scope: no
// surrounding braces, terminated by end-of-text rather than '}'.
func (p *Parser) ParseFile() (ast.ScopeID, error) {
	scope := p.arena.NewScope(ast.NilID, ast.NilID, source.Range{})
	endRange, err := p.parseScopeBody(scope, token.EOT)
	s := p.arena.Scope(scope)
	s.Range = source.Range{Beg: 0, End: endRange.End}
	return scope, err
}

// parseBracedScope parses a `{ ... }` scope; p.cur() must be at the '{'.
func (p *Parser) parseBracedScope(parent ast.ScopeID, owner ast.RoutineID) (ast.ScopeID, error) {
	begTok := p.advance() // '{'
	scope := p.arena.NewScope(parent, owner, begTok.Range)
	endRange, err := p.parseScopeBody(scope, token.RBRACE)
	s := p.arena.Scope(scope)
	s.Range = source.Cover(begTok.Range, endRange)
	return scope, err
}

// parseScopeBody runs the statement loop of spec §4.8 until terminator (or
// end-of-text) is reached, returning the Range of whatever token ended it.
func (p *Parser) parseScopeBody(scope ast.ScopeID, terminator token.Type) (source.Range, error) {
	for {
		tok := p.cur()

		if tok.Type == terminator {
			if terminator == token.RBRACE {
				p.advance()
			}
			return tok.Range, nil
		}
		if tok.Type == token.EOT {
			return tok.Range, p.fail(tok.Range, "unexpected end of text, expected %s", terminator)
		}

		switch {
		case tok.Type == token.SEMICOLON:
			p.advance() // empty statement

		case tok.Type == token.NAME && p.peek(1).Type == token.COLON:
			valueID, err := p.parseValueDecl()
			if err != nil {
				return p.cur().Range, err
			}
			p.arena.AddValue(scope, valueID)
			v := p.arena.Value(valueID)
			if !v.IsConstant && v.Init != ast.NilNode {
				stmt := p.newNode(ast.Node{Kind: ast.KindValue, Range: v.Range, Value: valueID})
				p.arena.AddStatement(scope, stmt)
			}

		case tok.Type == token.DOT && p.peek(1).Type == token.NAME && p.peek(2).Type == token.COLON:
			routineID, err := p.parseRoutine(scope)
			if err != nil {
				return p.cur().Range, err
			}
			p.arena.AddRoutine(scope, routineID)

		case tok.Type == token.DOT && p.peek(1).Type == token.NAME:
			p.advance() // '.'
			nameTok := p.advance()
			name := literal.Identifier(p.src.Bytes(), nameTok.Range.Beg, nameTok.Range.End)
			label := p.arena.NewLabel(ast.Label{Name: name, Position: len(p.arena.Scope(scope).Statements)})
			p.arena.AddLabel(scope, label)

		case tok.Type == token.LBRACE:
			childScope, err := p.parseBracedScope(scope, ast.NilID)
			if err != nil {
				return p.cur().Range, err
			}
			stmt := p.newNode(ast.Node{Kind: ast.KindScope, Range: p.arena.Scope(childScope).Range, Scope: childScope})
			p.arena.AddStatement(scope, stmt)

		default:
			expr, err := p.parseExpr(0, false, false)
			if err != nil {
				return p.cur().Range, err
			}
			if expr != ast.NilNode {
				p.arena.AddStatement(scope, expr)
			} else {
				// nud() returned a null left operand on a token this loop
				// doesn't otherwise recognize as a statement starter.
				return tok.Range, p.fail(tok.Range, "unexpected token %s, expected a statement", tok.Type)
			}
		}

		if p.err != nil {
			return p.cur().Range, p.err
		}
	}
}

// parseValueDecl implements spec §4.8's parse_value: a NAME, ':', an
// optional declaration-precedence type sub-expression, then either ':'
// (constant, requires an initializer) or '=' (mutable, requires an
// initializer). Neither is permitted only if a type was given.
func (p *Parser) parseValueDecl() (ast.ValueID, error) {
	nameTok, ok := p.expect(token.NAME, "value declaration")
	if !ok {
		return 0, p.err
	}
	name := literal.Identifier(p.src.Bytes(), nameTok.Range.Beg, nameTok.Range.End)
	if _, ok := p.expect(token.COLON, "value declaration"); !ok {
		return 0, p.err
	}

	typeExpr := ast.NilNode
	if p.cur().Type != token.EQUALS && p.cur().Type != token.COLON {
		var err error
		typeExpr, err = p.parseExpr(0, true, false)
		if err != nil {
			return 0, err
		}
	}

	var (
		isConstant bool
		initExpr   = ast.NilNode
		end        = nameTok.Range
	)
	switch p.cur().Type {
	case token.COLON:
		isConstant = true
		colonTok := p.advance()
		var err error
		initExpr, err = p.parseExpr(0, false, false)
		if err != nil {
			return 0, err
		}
		if initExpr == ast.NilNode {
			return 0, p.fail(colonTok.Range, "constant %q requires an initializer", name)
		}
		end = p.nodeRange(initExpr)
	case token.EQUALS:
		eqTok := p.advance()
		var err error
		initExpr, err = p.parseExpr(0, false, false)
		if err != nil {
			return 0, err
		}
		if initExpr == ast.NilNode {
			return 0, p.fail(eqTok.Range, "value %q requires an initializer", name)
		}
		end = p.nodeRange(initExpr)
	default:
		if typeExpr == ast.NilNode {
			return 0, p.fail(nameTok.Range, "value %q is neither typed nor initialized", name)
		}
		end = p.nodeRange(typeExpr)
	}

	v := ast.Value{
		Range:      source.Cover(nameTok.Range, end),
		Name:       name,
		Type:       typeExpr,
		Init:       initExpr,
		IsConstant: isConstant,
	}
	return p.arena.NewValue(v), nil
}

// parseRoutine implements spec §4.8's routine case: '.', NAME, ':', then
// the parameter list parsed as one declaration-precedence expression, then
// an optional '{' body.
func (p *Parser) parseRoutine(parent ast.ScopeID) (ast.RoutineID, error) {
	p.advance() // '.'
	nameTok, ok := p.expect(token.NAME, "routine declaration")
	if !ok {
		return 0, p.err
	}
	if _, ok := p.expect(token.COLON, "routine declaration"); !ok {
		return 0, p.err
	}
	name := literal.Identifier(p.src.Bytes(), nameTok.Range.Beg, nameTok.Range.End)

	params, err := p.parseExpr(0, true, false)
	if err != nil {
		return 0, err
	}

	id := p.arena.NewRoutine(ast.Routine{Name: name, Params: params, Scope: ast.NilID})

	if p.cur().Type == token.LBRACE {
		scopeID, err := p.parseBracedScope(parent, id)
		if err != nil {
			return id, err
		}
		p.arena.Routine(id).Scope = scopeID
	}
	return id, nil
}
