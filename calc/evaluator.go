// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package calc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrInvalidSyntax is the only error kind Evaluate returns
	ErrInvalidSyntax = errors.New("invalid syntax")

	// ErrInvalidInput marks text rejected by the character check,
	// before any parsing
	ErrInvalidInput = fmt.Errorf("%w: invalid input", ErrInvalidSyntax)
)

var glyphReplacer = strings.NewReplacer(
	GlyphTimes, "*",
	GlyphDivide, "/",
	GlyphMinus, "-",
)

// Normalize rewrites display glyphs into plain arithmetic operators
func Normalize(text string) string {
	return glyphReplacer.Replace(text)
}

// Evaluate normalizes and evaluates an expression over numbers,
// + - * /, parentheses and postfix percent. Division by zero yields
// ±Inf or NaN rather than an error.
func Evaluate(text string) (float64, error) {
	expr := Normalize(text)

	if err := validateCharset(expr); err != nil {
		return 0, err
	}

	p := &parser{src: expr}
	if err := p.next(); err != nil {
		return 0, err
	}

	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if p.tok.kind != lexEOF {
		return 0, p.errorf("unexpected %q", p.tok.text)
	}
	return v, nil
}

// validateCharset accepts digits, + - * / ( ) . % and whitespace only
func validateCharset(expr string) error {
	if expr == "" {
		return fmt.Errorf("%w: empty expression", ErrInvalidInput)
	}
	for i, r := range expr {
		if strings.ContainsRune("0123456789+-*/().%", r) || unicode.IsSpace(r) {
			continue
		}
		return fmt.Errorf("%w: %q at offset %d", ErrInvalidInput, r, i)
	}
	return nil
}

type lexKind int

const (
	lexEOF lexKind = iota
	lexNumber
	lexPlus
	lexMinus
	lexStar
	lexSlash
	lexPercent
	lexLParen
	lexRParen
)

var punctuation = map[byte]lexKind{
	'+': lexPlus, '-': lexMinus, '*': lexStar, '/': lexSlash,
	'%': lexPercent, '(': lexLParen, ')': lexRParen,
}

type lexeme struct {
	kind lexKind
	text string
	pos  int
	num  float64
}

type parser struct {
	src string
	pos int
	tok lexeme
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", ErrInvalidSyntax, fmt.Sprintf(format, args...), p.tok.pos)
}

// next advances to the following lexeme
func (p *parser) next() error {
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		p.pos += size
	}

	start := p.pos
	if start >= len(p.src) {
		p.tok = lexeme{kind: lexEOF, pos: start}
		return nil
	}

	c := p.src[start]
	if kind, ok := punctuation[c]; ok {
		// "++" and "--" are increment/decrement, which arithmetic
		// on literals cannot use
		if (c == '+' || c == '-') && start+1 < len(p.src) && p.src[start+1] == c {
			p.tok = lexeme{pos: start}
			return p.errorf("unexpected %q", p.src[start:start+2])
		}
		p.pos++
		p.tok = lexeme{kind: kind, text: string(c), pos: start}
		return nil
	}

	end := start
	for end < len(p.src) && ((p.src[end] >= '0' && p.src[end] <= '9') || p.src[end] == '.') {
		end++
	}
	if end == start {
		p.tok = lexeme{pos: start}
		return p.errorf("unexpected %q", c)
	}

	text := p.src[start:end]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		p.tok = lexeme{pos: start}
		return p.errorf("malformed number %q", text)
	}
	p.pos = end
	p.tok = lexeme{kind: lexNumber, text: text, pos: start, num: v}
	return nil
}

// expr = term { ("+" | "-") term }
func (p *parser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for p.tok.kind == lexPlus || p.tok.kind == lexMinus {
		op := p.tok.kind
		if err := p.next(); err != nil {
			return 0, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == lexPlus {
			left += right
		} else {
			left -= right
		}
	}
	return left, nil
}

// term = unary { ("*" | "/") unary }
func (p *parser) parseTerm() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for p.tok.kind == lexStar || p.tok.kind == lexSlash {
		op := p.tok.kind
		if err := p.next(); err != nil {
			return 0, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == lexStar {
			left *= right
		} else {
			left /= right
		}
	}
	return left, nil
}

// unary = ("+" | "-") unary | postfix
func (p *parser) parseUnary() (float64, error) {
	switch p.tok.kind {
	case lexPlus:
		if err := p.next(); err != nil {
			return 0, err
		}
		return p.parseUnary()
	case lexMinus:
		if err := p.next(); err != nil {
			return 0, err
		}
		v, err := p.parseUnary()
		return -v, err
	}
	return p.parsePostfix()
}

// postfix = primary [ "%" ]
func (p *parser) parsePostfix() (float64, error) {
	v, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	if p.tok.kind == lexPercent {
		if err := p.next(); err != nil {
			return 0, err
		}
		v /= 100
	}
	return v, nil
}

// primary = number | "(" expr ")"
func (p *parser) parsePrimary() (float64, error) {
	switch p.tok.kind {
	case lexNumber:
		v := p.tok.num
		if err := p.next(); err != nil {
			return 0, err
		}
		return v, nil

	case lexLParen:
		if err := p.next(); err != nil {
			return 0, err
		}
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.tok.kind != lexRParen {
			return 0, p.errorf("missing closing paren")
		}
		if err := p.next(); err != nil {
			return 0, err
		}
		return v, nil

	case lexEOF:
		return 0, p.errorf("unexpected end of expression")
	}
	return 0, p.errorf("unexpected %q", p.tok.text)
}
