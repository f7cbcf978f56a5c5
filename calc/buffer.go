// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package calc

import (
	"strings"
	"unicode/utf8"
)

// Buffer holds the expression being typed, in display glyphs.
// The zero value is an empty buffer ready to use.
type Buffer struct {
	text string
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

// Text returns the raw expression text
func (b *Buffer) Text() string {
	return b.text
}

// SetText replaces the expression, e.g. with a result or a history entry
func (b *Buffer) SetText(text string) {
	b.text = text
}

// Current returns the text for display: an empty buffer shows as "0"
func (b *Buffer) Current() string {
	if b.text == "" {
		return "0"
	}
	return b.text
}

// lastToken returns the final token of the buffer, if any
func (b *Buffer) lastToken() (Token, bool) {
	tokens := Tokenize(b.text)
	if len(tokens) == 0 {
		return Token{}, false
	}
	return tokens[len(tokens)-1], true
}

// Append adds a keypad token to the expression.
// Returns false when the entry rules reject it.
func (b *Buffer) Append(token string) bool {
	if token == "" {
		return false
	}

	last, ok := b.lastToken()

	// No second leading zero in a number
	if token == "0" && ok && last.Kind == TokenNumber && last.Text == "0" {
		return false
	}

	if token == GlyphDecimal {
		switch {
		case !ok || last.Kind == TokenOperator || last.Kind == TokenLParen:
			token = "0."
		case last.Kind == TokenNumber && strings.Contains(last.Text, GlyphDecimal):
			return false
		}
	}

	b.text += token
	return true
}

// Backspace removes the last character; no-op on an empty buffer
func (b *Buffer) Backspace() {
	if b.text == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(b.text)
	b.text = b.text[:len(b.text)-size]
}

// Clear empties the buffer
func (b *Buffer) Clear() {
	b.text = ""
}

// NegateLast toggles the sign of the trailing operand.
//
//	5+3    → 5+(-3)
//	5+(-3) → 5+3
//	3×-5   → 3×5
//	5-3    → 5-(-3)
//	5+     → -5+
//	-5+    → 5+
func (b *Buffer) NegateLast() {
	tokens := Tokenize(b.text)

	k := len(tokens) - 1
	if k >= 0 && tokens[k].Kind == TokenPercent {
		k--
	}

	if k < 0 {
		b.toggleLeadingMinus()
		return
	}

	last := tokens[k]
	switch last.Kind {
	case TokenRParen:
		// (-N) unwraps to N
		if k >= 3 &&
			tokens[k-1].Kind == TokenNumber &&
			tokens[k-2].isMinus() &&
			tokens[k-3].Kind == TokenLParen {
			num := tokens[k-1]
			b.text = b.text[:tokens[k-3].Pos] + num.Text + b.text[last.End():]
			return
		}
		b.toggleLeadingMinus()

	case TokenNumber:
		if k >= 1 && tokens[k-1].isMinus() && isUnaryPosition(tokens, k-1) {
			minus := tokens[k-1]
			b.text = b.text[:minus.Pos] + b.text[minus.End():]
			return
		}
		b.text = b.text[:last.Pos] + "(-" + last.Text + ")" + b.text[last.End():]

	default:
		b.toggleLeadingMinus()
	}
}

// isUnaryPosition reports whether the operator at i is a sign rather
// than a binary operator: it starts the expression or follows another
// operator or an opening paren.
func isUnaryPosition(tokens []Token, i int) bool {
	if i == 0 {
		return true
	}
	prev := tokens[i-1]
	return prev.Kind == TokenOperator || prev.Kind == TokenLParen
}

func (b *Buffer) toggleLeadingMinus() {
	if strings.HasPrefix(b.text, "-") {
		b.text = b.text[1:]
		return
	}
	if strings.HasPrefix(b.text, GlyphMinus) {
		b.text = b.text[len(GlyphMinus):]
		return
	}
	b.text = "-" + b.text
}
