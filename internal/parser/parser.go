// Package parser implements the Pratt/precedence-climbing expression
// parser and the scope/declaration parser that together build the AST
// (package ast) from a token stream (package lexer).
package parser

import (
	"fmt"

	"github.com/opal-lang/opal/internal/ast"
	"github.com/opal-lang/opal/internal/diag"
	"github.com/opal-lang/opal/internal/lexer"
	"github.com/opal-lang/opal/internal/literal"
	"github.com/opal-lang/opal/internal/source"
	"github.com/opal-lang/opal/internal/token"
)

// Precedence table of spec §4.7; higher binds tighter.
const (
	precList      = 1 // ,
	precField     = 2 // :
	precAssign    = 3 // = compound-assigns, .., ?
	precOr        = 4 // ||
	precAnd       = 5 // &&
	precBitOr     = 6 // |
	precBitXor    = 7 // ^
	precBitAnd    = 8 // &
	precEquality  = 9  // == !=
	precRelation  = 10 // > < >= <=
	precShift     = 11 // << >>
	precAdditive  = 12 // + -
	precMul       = 13 // * / %
	precUnary     = 14 // prefix operators
	precCall      = 15 // invocation, ->
	precResolve   = 16 // .
)

func infixPrecedence(tt token.Type) (int, bool) {
	switch tt {
	case token.DOT:
		return precResolve, true
	case token.ARROW:
		return precCall, true
	case token.STAR, token.SLASH, token.PERCENT:
		return precMul, true
	case token.PLUS, token.MINUS:
		return precAdditive, true
	case token.LSHIFT, token.RSHIFT:
		return precShift, true
	case token.GT, token.LT, token.GT_EQUALS, token.LT_EQUALS:
		return precRelation, true
	case token.EQUALS_EQUALS, token.BANG_EQUALS:
		return precEquality, true
	case token.AMPERSAND:
		return precBitAnd, true
	case token.CARET:
		return precBitXor, true
	case token.PIPE:
		return precBitOr, true
	case token.AMP_AMP:
		return precAnd, true
	case token.PIPE_PIPE:
		return precOr, true
	case token.DOT_DOT, token.QUESTION,
		token.EQUALS, token.PLUS_EQUALS, token.MINUS_EQUALS, token.STAR_EQUALS,
		token.SLASH_EQUALS, token.PERCENT_EQUALS, token.AMP_EQUALS, token.CARET_EQUALS,
		token.PIPE_EQUALS, token.LSHIFT_EQUALS, token.RSHIFT_EQUALS:
		return precAssign, true
	case token.COLON:
		return precField, true
	case token.COMMA:
		return precList, true
	}
	return 0, false
}

// isDeclStop reports whether tt is one of the tokens the declaration-
// precedence carve-out (spec §4.7) stops at: any assignment-family
// operator, the list comma, or the field colon.
func isDeclStop(tt token.Type) bool {
	switch tt {
	case token.EQUALS, token.PLUS_EQUALS, token.MINUS_EQUALS, token.STAR_EQUALS,
		token.SLASH_EQUALS, token.PERCENT_EQUALS, token.AMP_EQUALS, token.CARET_EQUALS,
		token.PIPE_EQUALS, token.LSHIFT_EQUALS, token.RSHIFT_EQUALS,
		token.COMMA, token.COLON:
		return true
	}
	return false
}

// isTerminator reports tokens that, seen in prefix position, yield a null
// left operand (spec §4.7's `; ) ] { }` rule) or end the token stream.
func isTerminator(tt token.Type) bool {
	switch tt {
	case token.SEMICOLON, token.RPAREN, token.RBRACKET, token.LBRACE, token.RBRACE, token.EOT:
		return true
	}
	return false
}

func isPrefixOperator(tt token.Type) bool {
	switch tt {
	case token.MINUS, token.BANG, token.TILDE, token.AT, token.BACKSLASH, token.CARET, token.APOSTROPHE, token.DOT:
		return true
	}
	return false
}

// Parser holds the token lookahead buffer and the arena/sink it builds
// into. A Parser is used once, for one Source.
type Parser struct {
	src   *source.Source
	tz    *lexer.Tokenizer
	arena *ast.Arena
	sink  *diag.Sink

	buf []token.Token
	err error
}

// New constructs a Parser over src, allocating into a and reporting
// through sink.
func New(src *source.Source, a *ast.Arena, sink *diag.Sink) *Parser {
	return &Parser{src: src, tz: lexer.New(src), arena: a, sink: sink}
}

// Parse tokenizes and parses src in full, returning the top-level Scope.
// Parsing aborts at the first syntax error, per spec §1/§7.
func Parse(src *source.Source, a *ast.Arena, sink *diag.Sink) (ast.ScopeID, error) {
	p := New(src, a, sink)
	return p.ParseFile()
}

func (p *Parser) fill(n int) {
	for len(p.buf) <= n {
		tok, err := p.tz.Next()
		if p.sink != nil {
			p.sink.RecordToken()
		}
		if err != nil {
			p.failErr(tok.Range, err)
		}
		p.buf = append(p.buf, tok)
	}
}

func (p *Parser) cur() token.Token       { p.fill(0); return p.buf[0] }
func (p *Parser) peek(n int) token.Token { p.fill(n); return p.buf[n] }

func (p *Parser) advance() token.Token {
	p.fill(0)
	t := p.buf[0]
	p.buf = p.buf[1:]
	return t
}

// fail records the first parse failure (subsequent calls are no-ops, per
// the abort-on-first-syntax-error policy) and returns it as an error.
func (p *Parser) fail(rng source.Range, format string, args ...any) error {
	return p.failErr(rng, fmt.Errorf(format, args...))
}

func (p *Parser) failErr(rng source.Range, err error) error {
	if p.err == nil {
		p.err = err
		if p.sink != nil {
			p.sink.Failuref(p.src, rng, "%s", err.Error())
		}
	}
	return p.err
}

func (p *Parser) expect(tt token.Type, context string) (token.Token, bool) {
	if p.cur().Type == tt {
		return p.advance(), true
	}
	tok := p.cur()
	p.fail(tok.Range, "expected %s in %s, got %s", tt, context, tok.Type)
	return tok, false
}

func (p *Parser) newNode(n ast.Node) ast.NodeID {
	if p.sink != nil {
		p.sink.RecordNode()
	}
	return p.arena.NewNode(n)
}

func (p *Parser) nodeRange(id ast.NodeID) source.Range {
	if id == ast.NilNode {
		return source.Range{}
	}
	return p.arena.Node(id).Range
}

// ---- Expression parsing (Pratt / precedence climbing) ----

// parseExpr parses an expression, consuming infix operators whose
// precedence is strictly greater than minPrec. When declMode is true
// (the declaration-precedence carve-out of spec §4.7), the loop also
// stops — regardless of precedence — at any assignment-family operator,
// the list comma, or the field colon. When stopBang is true (set while
// parsing a ternary's middle arm), the loop also stops at BANG so the
// enclosing QUESTION handler sees it and consumes it as the else-arm
// separator, rather than this loop mistaking it for an implicit-
// invocation argument.
func (p *Parser) parseExpr(minPrec int, declMode, stopBang bool) (ast.NodeID, error) {
	left, err := p.nud(declMode, stopBang)
	if err != nil || left == ast.NilNode {
		return left, err
	}

	for {
		tok := p.cur()
		if declMode && isDeclStop(tok.Type) {
			return left, nil
		}
		if stopBang && tok.Type == token.BANG {
			return left, nil
		}

		prec, isOp := infixPrecedence(tok.Type)
		if !isOp {
			if isTerminator(tok.Type) {
				return left, nil
			}
			// A non-operator, non-terminator token after a complete left
			// expression is an implicit invocation (juxtaposition).
			if precCall <= minPrec {
				return left, nil
			}
			right, err := p.parseExpr(precCall, declMode, stopBang)
			if err != nil {
				return left, err
			}
			left = p.newNode(ast.Node{
				Kind:     ast.KindBinary,
				Op:       ast.OpInvoke,
				Range:    source.Cover(p.nodeRange(left), p.nodeRange(right)),
				Children: [3]ast.NodeID{left, right, ast.NilNode},
			})
			continue
		}

		if prec <= minPrec {
			return left, nil
		}

		if tok.Type == token.QUESTION {
			p.advance()
			then, err := p.parseExpr(0, false, true)
			if err != nil {
				return left, err
			}
			elseID := ast.NilNode
			if p.cur().Type == token.BANG {
				p.advance()
				elseID, err = p.parseExpr(prec, false, false)
				if err != nil {
					return left, err
				}
			}
			end := p.nodeRange(then)
			if elseID != ast.NilNode {
				end = p.nodeRange(elseID)
			}
			left = p.newNode(ast.Node{
				Kind:     ast.KindTernary,
				Op:       token.QUESTION,
				Range:    source.Cover(p.nodeRange(left), end),
				Children: [3]ast.NodeID{left, then, elseID},
			})
			continue
		}

		p.advance()
		right, err := p.parseExpr(prec, declMode, stopBang)
		if err != nil {
			return left, err
		}
		left = p.newNode(ast.Node{
			Kind:     ast.KindBinary,
			Op:       tok.Type,
			Range:    source.Cover(p.nodeRange(left), p.nodeRange(right)),
			Children: [3]ast.NodeID{left, right, ast.NilNode},
		})
	}
}

// nud is the prefix ("null denotation") dispatch.
func (p *Parser) nud(declMode, stopBang bool) (ast.NodeID, error) {
	tok := p.cur()

	switch tok.Type {
	case token.INTEGER_BIN, token.INTEGER_DEC, token.INTEGER_HEX:
		p.advance()
		return p.newNode(ast.Node{Kind: ast.KindInteger, Range: tok.Range, Int: p.foldInteger(tok)}), nil

	case token.REAL:
		p.advance()
		f, err := literal.Real(p.src.Slice(tok.Range.Beg, tok.Range.End))
		if err != nil {
			return ast.NilNode, p.failErr(tok.Range, err)
		}
		return p.newNode(ast.Node{Kind: ast.KindReal, Range: tok.Range, Flt: f}), nil

	case token.STRING:
		p.advance()
		b, err := literal.String(p.arena.Bytes, p.src.Slice(tok.Range.Beg, tok.Range.End))
		if err != nil {
			return ast.NilNode, p.failErr(tok.Range, err)
		}
		return p.newNode(ast.Node{Kind: ast.KindString, Range: tok.Range, Str: b}), nil

	case token.NAME:
		p.advance()
		ref := literal.Identifier(p.src.Bytes(), tok.Range.Beg, tok.Range.End)
		return p.newNode(ast.Node{Kind: ast.KindReference, Range: tok.Range, Ref: ref}), nil

	case token.LPAREN:
		p.advance()
		inner, err := p.parseExpr(0, false, false)
		if err != nil {
			return ast.NilNode, err
		}
		closeTok, ok := p.expect(token.RPAREN, "subexpression")
		if !ok {
			return ast.NilNode, p.err
		}
		return p.newNode(ast.Node{
			Kind:     ast.KindUnary,
			Op:       token.LPAREN,
			Range:    source.Cover(tok.Range, closeTok.Range),
			Children: [3]ast.NodeID{inner, ast.NilNode, ast.NilNode},
		}), nil

	case token.LBRACKET:
		p.advance()
		inner, err := p.parseExpr(0, false, false)
		if err != nil {
			return ast.NilNode, err
		}
		closeTok, ok := p.expect(token.RBRACKET, "enumeration")
		if !ok {
			return ast.NilNode, p.err
		}
		return p.newNode(ast.Node{
			Kind:     ast.KindUnary,
			Op:       token.LBRACKET,
			Range:    source.Cover(tok.Range, closeTok.Range),
			Children: [3]ast.NodeID{inner, ast.NilNode, ast.NilNode},
		}), nil
	}

	if isPrefixOperator(tok.Type) {
		p.advance()
		operand, err := p.parseExpr(precUnary, declMode, stopBang)
		if err != nil {
			return ast.NilNode, err
		}
		return p.newNode(ast.Node{
			Kind:     ast.KindUnary,
			Op:       tok.Type,
			Range:    source.Cover(tok.Range, p.nodeRange(operand)),
			Children: [3]ast.NodeID{operand, ast.NilNode, ast.NilNode},
		}), nil
	}

	if isTerminator(tok.Type) {
		return ast.NilNode, nil
	}

	return ast.NilNode, p.fail(tok.Range, "unexpected token %s in expression", tok.Type)
}

// foldInteger strips the base prefix (if any) and folds the remaining
// digits per spec §4.6.
func (p *Parser) foldInteger(tok token.Token) uint64 {
	lexeme := p.src.Slice(tok.Range.Beg, tok.Range.End)
	switch tok.Type {
	case token.INTEGER_BIN:
		return literal.Integer(lexeme[2:], 2)
	case token.INTEGER_HEX:
		return literal.Integer(lexeme[2:], 16)
	default:
		return literal.Integer(lexeme, 10)
	}
}
