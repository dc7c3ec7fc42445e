package formula

import "fmt"

// node is a parsed formula fragment. Evaluation is a post-order walk
// over the tree; the only interpretable operations are the four
// arithmetic operators, exponentiation, unary minus, and variable
// lookup, so no host-language code path is reachable from user input.
type node interface {
	eval(vars map[string]float64) (float64, error)
}

type numberNode struct {
	value float64
}

type variableNode struct {
	name string
}

type binaryNode struct {
	op          tokenKind
	left, right node
}

type unaryMinusNode struct {
	operand node
}

// parser is a recursive-descent parser over a token stream.
//
// Grammar:
//
//	expression := term (('+'|'-') term)*
//	term       := power (('*'|'/') power)*
//	power      := '-' power | primary ('^' power)?   right-associative
//	primary    := NUMBER | IDENT | '(' expression ')'
type parser struct {
	tokens []token
	pos    int
}

// parse builds the AST for a tokenized formula. The token stream must
// be fully consumed; trailing tokens are a syntax error.
func parse(tokens []token) (node, error) {
	p := &parser{tokens: tokens}
	root, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokenEOF {
		t := p.peek()
		return nil, fmt.Errorf("unexpected token %q at position %d", t.text, t.pos)
	}
	return root, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokenEOF {
		p.pos++
	}
	return t
}

func (p *parser) expression() (node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		k := p.peek().kind
		if k != tokenPlus && k != tokenMinus {
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: k, left: left, right: right}
	}
}

func (p *parser) term() (node, error) {
	left, err := p.power()
	if err != nil {
		return nil, err
	}
	for {
		k := p.peek().kind
		if k != tokenStar && k != tokenSlash {
			return left, nil
		}
		p.next()
		right, err := p.power()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: k, left: left, right: right}
	}
}

// power handles unary minus before exponentiation so that "-2^2"
// reads as -(2^2), matching the regulation workbook behavior.
func (p *parser) power() (node, error) {
	if p.peek().kind == tokenMinus {
		p.next()
		operand, err := p.power()
		if err != nil {
			return nil, err
		}
		return &unaryMinusNode{operand: operand}, nil
	}
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokenCaret {
		return base, nil
	}
	p.next()
	// Right-associative: the exponent is itself a power expression.
	exp, err := p.power()
	if err != nil {
		return nil, err
	}
	return &binaryNode{op: tokenCaret, left: base, right: exp}, nil
}

func (p *parser) primary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokenNumber:
		return &numberNode{value: t.value}, nil
	case tokenIdent:
		return &variableNode{name: t.text}, nil
	case tokenLParen:
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		closing := p.next()
		if closing.kind != tokenRParen {
			return nil, fmt.Errorf("missing closing parenthesis at position %d", closing.pos)
		}
		return inner, nil
	case tokenEOF:
		return nil, fmt.Errorf("unexpected end of formula at position %d", t.pos)
	default:
		return nil, fmt.Errorf("unexpected token %q at position %d", t.text, t.pos)
	}
}
