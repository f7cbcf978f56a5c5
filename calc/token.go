// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package calc

import (
	"unicode/utf8"
)

// Display glyphs for the operators shown on the keypad
const (
	GlyphPlus     = "+"
	GlyphMinus    = "−"
	GlyphTimes    = "×"
	GlyphDivide   = "÷"
	GlyphPercent  = "%"
	GlyphDecimal  = "."
	GlyphInfinity = "∞"
)

type TokenKind int

const (
	TokenNumber TokenKind = iota
	TokenOperator
	TokenLParen
	TokenRParen
	TokenPercent
	TokenOther
)

func (k TokenKind) String() string {
	switch k {
	case TokenNumber:
		return "number"
	case TokenOperator:
		return "operator"
	case TokenLParen:
		return "lparen"
	case TokenRParen:
		return "rparen"
	case TokenPercent:
		return "percent"
	}
	return "other"
}

// Token is a slice of buffer text. Pos is a byte offset.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

// End returns the byte offset just past the token
func (t Token) End() int {
	return t.Pos + len(t.Text)
}

func (t Token) isMinus() bool {
	return t.Kind == TokenOperator && (t.Text == "-" || t.Text == GlyphMinus)
}

func isOperatorRune(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '−', '×', '÷':
		return true
	}
	return false
}

func isNumberRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.'
}

// Tokenize splits buffer text into number, operator, paren and percent
// tokens. Runs of digits and dots form one number token. Anything else
// (whitespace, ∞, letters) becomes a TokenOther of one rune.
// Concatenating the token texts always gives back the input.
func Tokenize(text string) []Token {
	var tokens []Token
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case isNumberRune(r):
			j := i + size
			for j < len(text) {
				r2, s2 := utf8.DecodeRuneInString(text[j:])
				if !isNumberRune(r2) {
					break
				}
				j += s2
			}
			tokens = append(tokens, Token{Kind: TokenNumber, Text: text[i:j], Pos: i})
			i = j
			continue
		case isOperatorRune(r):
			tokens = append(tokens, Token{Kind: TokenOperator, Text: text[i : i+size], Pos: i})
		case r == '(':
			tokens = append(tokens, Token{Kind: TokenLParen, Text: "(", Pos: i})
		case r == ')':
			tokens = append(tokens, Token{Kind: TokenRParen, Text: ")", Pos: i})
		case r == '%':
			tokens = append(tokens, Token{Kind: TokenPercent, Text: "%", Pos: i})
		default:
			tokens = append(tokens, Token{Kind: TokenOther, Text: text[i : i+size], Pos: i})
		}
		i += size
	}
	return tokens
}
