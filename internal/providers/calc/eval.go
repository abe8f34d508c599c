package calc

import (
	"math"
	"strconv"
	"strings"
)

// evaluate parses and computes an arithmetic expression supporting
// + - * / % ^, parentheses, unary minus, and decimal literals. A bare
// number is rejected so plain numeric queries do not trigger a result.
// Returns false for anything that is not a full, finite expression.
func evaluate(expr string) (float64, bool) {
	p := &parser{input: expr}
	p.skipSpace()
	if !p.hasOperator() {
		return 0, false
	}
	value, ok := p.parseSum()
	if !ok {
		return 0, false
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return 0, false
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

type parser struct {
	input string
	pos   int
}

// hasOperator reports whether the input contains a binary operator
// outside of a leading sign, i.e. whether it is worth parsing at all.
func (p *parser) hasOperator() bool {
	trimmed := strings.TrimSpace(p.input)
	trimmed = strings.TrimLeft(trimmed, "+-")
	return strings.ContainsAny(trimmed, "+-*/%^")
}

// parseSum handles + and - at the lowest precedence.
func (p *parser) parseSum() (float64, bool) {
	left, ok := p.parseProduct()
	if !ok {
		return 0, false
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '+':
			p.pos++
			right, ok := p.parseProduct()
			if !ok {
				return 0, false
			}
			left += right
		case '-':
			p.pos++
			right, ok := p.parseProduct()
			if !ok {
				return 0, false
			}
			left -= right
		default:
			return left, true
		}
	}
}

// parseProduct handles *, / and %.
func (p *parser) parseProduct() (float64, bool) {
	left, ok := p.parsePower()
	if !ok {
		return 0, false
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '*':
			p.pos++
			right, ok := p.parsePower()
			if !ok {
				return 0, false
			}
			left *= right
		case '/':
			p.pos++
			right, ok := p.parsePower()
			if !ok || right == 0 {
				return 0, false
			}
			left /= right
		case '%':
			p.pos++
			right, ok := p.parsePower()
			if !ok || right == 0 {
				return 0, false
			}
			left = math.Mod(left, right)
		default:
			return left, true
		}
	}
}

// parsePower handles ^, right-associative.
func (p *parser) parsePower() (float64, bool) {
	base, ok := p.parseUnary()
	if !ok {
		return 0, false
	}
	p.skipSpace()
	if p.peek() != '^' {
		return base, true
	}
	p.pos++
	exp, ok := p.parsePower()
	if !ok {
		return 0, false
	}
	return math.Pow(base, exp), true
}

// parseUnary handles leading signs.
func (p *parser) parseUnary() (float64, bool) {
	p.skipSpace()
	switch p.peek() {
	case '-':
		p.pos++
		v, ok := p.parseUnary()
		return -v, ok
	case '+':
		p.pos++
		return p.parseUnary()
	}
	return p.parseAtom()
}

// parseAtom handles parenthesised expressions and number literals.
func (p *parser) parseAtom() (float64, bool) {
	p.skipSpace()
	if p.peek() == '(' {
		p.pos++
		v, ok := p.parseSum()
		if !ok {
			return 0, false
		}
		p.skipSpace()
		if p.peek() != ')' {
			return 0, false
		}
		p.pos++
		return v, true
	}
	return p.parseNumber()
}

func (p *parser) parseNumber() (float64, bool) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c >= '0' && c <= '9') || c == '.' {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return 0, false
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}
