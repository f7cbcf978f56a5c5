// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package calc

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrorDuration is how long an evaluation error stays on the display
const ErrorDuration = 900 * time.Millisecond

// Error texts shown in place of the expression
const (
	MessageInvalidInput = "Invalid input"
	MessageError        = "Error"
)

// NotificationTitle is the title used for result notifications
const NotificationTitle = "Calculator"

var ErrUnknownAction = errors.New("unknown action")

// Action is a named keypad function
type Action string

const (
	ActionClear   Action = "clear"
	ActionBack    Action = "back"
	ActionPercent Action = "percent"
	ActionEquals  Action = "equals"
	ActionNegate  Action = "negate"
)

// ParseAction validates an action name
func ParseAction(name string) (Action, error) {
	switch a := Action(name); a {
	case ActionClear, ActionBack, ActionPercent, ActionEquals, ActionNegate:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// Recorder persists successful evaluations
type Recorder interface {
	Append(expression, result string) error
}

// Notifier shows a best-effort message; implementations must not block
type Notifier interface {
	Notify(title, body string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(title, body string)

func (f NotifierFunc) Notify(title, body string) { f(title, body) }

// Controller routes keypad presses, named actions and keyboard keys to
// the buffer and evaluator. It is not safe for concurrent use.
type Controller struct {
	buf      *Buffer
	history  Recorder
	notifier Notifier
	now      func() time.Time

	errText  string
	errUntil time.Time
}

type Option func(*Controller)

// WithNotifier sets the notifier fired after each successful evaluation
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithClock overrides time.Now, for the error display timeout
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController wires a buffer to an optional history recorder
func NewController(buf *Buffer, history Recorder, opts ...Option) *Controller {
	if buf == nil {
		buf = NewBuffer()
	}
	c := &Controller{
		buf:     buf,
		history: history,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Buffer() *Buffer {
	return c.buf
}

// Press appends a keypad glyph (digit, operator, ".", "%")
func (c *Controller) Press(glyph string) bool {
	c.errText = ""
	return c.buf.Append(glyph)
}

// Do runs a named action. Only ActionEquals can fail, with the
// evaluation error; the buffer is left untouched in that case.
func (c *Controller) Do(action Action) error {
	switch action {
	case ActionClear:
		c.errText = ""
		c.buf.Clear()
	case ActionBack:
		c.errText = ""
		c.buf.Backspace()
	case ActionPercent:
		c.Press(GlyphPercent)
	case ActionEquals:
		return c.Evaluate()
	case ActionNegate:
		c.errText = ""
		c.buf.NegateLast()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return nil
}

// Key handles a physical key by its browser-style name ("7", "Enter",
// "Backspace", "Escape", "*", ...). Unhandled keys return false.
func (c *Controller) Key(key string) (bool, error) {
	switch key {
	case "Enter", "=":
		return true, c.Evaluate()
	case "Backspace":
		return true, c.Do(ActionBack)
	case "Escape":
		return true, c.Do(ActionClear)
	case "*":
		c.Press(GlyphTimes)
		return true, nil
	case "/":
		c.Press(GlyphDivide)
		return true, nil
	case "+", "-", "%", ".":
		c.Press(key)
		return true, nil
	}
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		c.Press(key)
		return true, nil
	}
	return false, nil
}

// Evaluate computes the buffer. On success the raw expression and the
// formatted result go to history and the buffer becomes the result.
// On failure the error is shown for ErrorDuration and the buffer is kept.
func (c *Controller) Evaluate() error {
	expression := c.buf.Text()
	if expression == "" {
		return nil
	}

	v, err := Evaluate(expression)
	if err != nil {
		slog.Debug("evaluation failed", "expression", expression, "error", err)
		c.errText = MessageError
		if errors.Is(err, ErrInvalidInput) {
			c.errText = MessageInvalidInput
		}
		c.errUntil = c.now().Add(ErrorDuration)
		return err
	}

	result := FormatResult(v)
	if c.history != nil {
		if err := c.history.Append(expression, result); err != nil {
			slog.Warn("failed to save history", "error", err)
		}
	}

	c.errText = ""
	c.buf.SetText(result)

	if c.notifier != nil {
		c.notifier.Notify(NotificationTitle, "Result: "+result)
	}
	return nil
}

// Recall continues from a previous result
func (c *Controller) Recall(result string) {
	c.errText = ""
	c.buf.SetText(result)
}

// ErrorText returns the error being displayed and how long it has left
func (c *Controller) ErrorText() (string, time.Duration) {
	if c.errText == "" {
		return "", 0
	}
	left := c.errUntil.Sub(c.now())
	if left <= 0 {
		return "", 0
	}
	return c.errText, left
}

// Display is what the calculator screen shows right now
func (c *Controller) Display() string {
	if msg, _ := c.ErrorText(); msg != "" {
		return msg
	}
	return c.buf.Current()
}
