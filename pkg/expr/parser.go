package expr

import (
	"errors"
	"fmt"
	"strconv"
)

// Operator precedence levels, lowest first.
const (
	_ int = iota
	precLowest
	precOr      // ||
	precAnd     // &&
	precEquals  // == !=
	precCompare // < > <= >=
	precPrefix  // !x
)

var precedences = map[tokenType]int{
	tokenOr:    precOr,
	tokenAnd:   precAnd,
	tokenEq:    precEquals,
	tokenNotEq: precEquals,
	tokenLT:    precCompare,
	tokenGT:    precCompare,
	tokenLTE:   precCompare,
	tokenGTE:   precCompare,
}

type (
	prefixParseFn func() node
	infixParseFn  func(node) node
)

type parser struct {
	l *lexer

	curToken  token
	peekToken token

	errors []string

	prefixParseFns map[tokenType]prefixParseFn
	infixParseFns  map[tokenType]infixParseFn
}

func newParser(l *lexer) *parser {
	p := &parser{l: l}

	p.prefixParseFns = map[tokenType]prefixParseFn{
		tokenIdent:  p.parseIdentifier,
		tokenInt:    p.parseIntegerLiteral,
		tokenFloat:  p.parseFloatLiteral,
		tokenString: p.parseStringLiteral,
		tokenTrue:   p.parseBooleanLiteral,
		tokenFalse:  p.parseBooleanLiteral,
		tokenNot:    p.parsePrefixExpression,
		tokenLParen: p.parseGroupedExpression,
	}
	p.infixParseFns = map[tokenType]infixParseFn{
		tokenEq:    p.parseInfixExpression,
		tokenNotEq: p.parseInfixExpression,
		tokenLT:    p.parseInfixExpression,
		tokenGT:    p.parseInfixExpression,
		tokenLTE:   p.parseInfixExpression,
		tokenGTE:   p.parseInfixExpression,
		tokenAnd:   p.parseInfixExpression,
		tokenOr:    p.parseInfixExpression,
	}

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.nextToken()
}

// parse consumes the whole input as a single expression.
func (p *parser) parse() (node, error) {
	root := p.parseExpression(precLowest)

	if p.peekToken.typ != tokenEOF {
		p.errorf("unexpected token %s at position %d", p.peekToken.typ, p.peekToken.position)
	}
	if len(p.errors) > 0 {
		return nil, errors.Join(ErrParse, errors.New(p.errors[0]))
	}
	return root, nil
}

func (p *parser) parseExpression(precedence int) node {
	prefix := p.prefixParseFns[p.curToken.typ]
	if prefix == nil {
		p.errorf("unexpected token %s at position %d", p.curToken.typ, p.curToken.position)
		return nil
	}
	left := prefix()

	for left != nil && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.typ]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	return left
}

func (p *parser) parseIdentifier() node {
	return &identifier{name: p.curToken.literal}
}

func (p *parser) parseIntegerLiteral() node {
	value, err := strconv.ParseInt(p.curToken.literal, 10, 64)
	if err != nil {
		p.errorf("could not parse %q as integer", p.curToken.literal)
		return nil
	}
	return &integerLiteral{value: value}
}

func (p *parser) parseFloatLiteral() node {
	value, err := strconv.ParseFloat(p.curToken.literal, 64)
	if err != nil {
		p.errorf("could not parse %q as float", p.curToken.literal)
		return nil
	}
	return &floatLiteral{value: value}
}

func (p *parser) parseStringLiteral() node {
	return &stringLiteral{value: p.curToken.literal}
}

func (p *parser) parseBooleanLiteral() node {
	return &booleanLiteral{value: p.curToken.typ == tokenTrue}
}

func (p *parser) parsePrefixExpression() node {
	operator := p.curToken.literal
	p.nextToken()
	right := p.parseExpression(precPrefix)
	if right == nil {
		return nil
	}
	return &prefixExpression{operator: operator, right: right}
}

func (p *parser) parseInfixExpression(left node) node {
	operator := p.curToken.literal
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &infixExpression{operator: operator, left: left, right: right}
}

func (p *parser) parseGroupedExpression() node {
	p.nextToken()
	inner := p.parseExpression(precLowest)
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	return inner
}

func (p *parser) expectPeek(t tokenType) bool {
	if p.peekToken.typ == t {
		p.nextToken()
		return true
	}
	p.errorf("expected next token to be %s, got %s instead", t, p.peekToken.typ)
	return false
}

func (p *parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.typ]; ok {
		return prec
	}
	return precLowest
}

func (p *parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.typ]; ok {
		return prec
	}
	return precLowest
}

func (p *parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}
