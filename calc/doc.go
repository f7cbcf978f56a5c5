// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package calc implements the calculator engine: expression entry,
evaluation and result formatting.

# Buffer

Buffer accumulates keypad tokens using display glyphs (+ − × ÷ % .):

	buf := calc.NewBuffer()
	buf.Append("7")
	buf.Append("+")
	buf.Append(".")   // becomes "0." at the start of a number
	buf.NegateLast()  // 7+(-0.)

Entry rules work on the token sequence from Tokenize rather than on
the raw string:

  - a number holds at most one decimal point
  - "0" is not appended to a number that is exactly "0"
  - NegateLast toggles the trailing operand between N and (-N), or
    drops a unary minus in front of it

# Evaluation

Evaluate parses the closed grammar below with a recursive-descent
parser. Nothing is executed dynamically.

	expr    = term { ("+" | "-") term }
	term    = unary { ("*" | "/") unary }
	unary   = ("+" | "-") unary | postfix
	postfix = primary [ "%" ]
	primary = number | "(" expr ")"

Percent is flat division by 100 (10% = 0.1). Division by zero follows
IEEE-754. Every failure wraps ErrInvalidSyntax; text with characters
outside digits, operators, parens, dots and whitespace wraps
ErrInvalidInput and is never parsed.

FormatResult prints ∞ for non-finite values, integers without a
fraction, and everything else rounded to 10 decimals.

# Controller

Controller is the dispatch table between input and engine:

	ctrl := calc.NewController(calc.NewBuffer(), historyStore,
		calc.WithNotifier(notifier))

	ctrl.Press("7")              // keypad glyph
	ctrl.Do(calc.ActionNegate)   // named action
	ctrl.Key("Enter")            // physical key
	ctrl.Display()

After a failed evaluation Display shows "Invalid input" or "Error" for
ErrorDuration and then the unchanged expression again.
*/
package calc
