package calculator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/display"
	calcerrors "github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/errors"
	"github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/history"
	"github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/observability"
)

// Keys understood by Session.Press besides the characters in appendKeys.
const (
	KeyClear     = "C"
	KeyBackspace = "⌫"
	KeyEquals    = "="
	KeyAnswer    = "ANS"
	KeySign      = "+/-"
	KeyPercent   = "%"
)

// appendKeys are the single-character keys appended to the expression.
const appendKeys = "0123456789.+-×÷^*/()"

// emptyHistory is the history text shown before anything was evaluated.
const emptyHistory = "—"

// ErrNilCalculator is returned by NewSession when calc is nil.
var ErrNilCalculator = errors.New("calculator is nil")

// trailingNumber matches the rightmost number in an expression, preceded by
// the start of input, an operator or an open parenthesis. Group 1 is the
// number including a leading minus.
var trailingNumber = regexp.MustCompile(`(?:^|[+\-*/%(])\s*(-?(?:\d+\.?\d*|\.\d+)(?:[eE][+\-]?\d+)?)\s*$`)

// Session is the state behind a calculator screen: the expression being
// typed, the main display, the status line, the last answer and a short
// history of results.
//
// The expression is always held in internal notation; display glyphs are
// translated as they are appended.
//
// A Session is not safe for concurrent use.
type Session struct {
	calc   *Calculator
	id     string
	logger *slog.Logger
	store  history.Store
	limit  int

	expression string
	screen     string
	status     string
	history    []history.Entry
	answer     float64
	hasAnswer  bool
}

// NewSession creates a session evaluating through calc.
//
// With a history store, the most recent entries for the session ID are
// restored and the newest one becomes the last answer.
func NewSession(calc *Calculator, opts ...SessionOption) (*Session, error) {
	if calc == nil {
		return nil, ErrNilCalculator
	}

	cfg := sessionConfig{historyLimit: DefaultHistoryLimit}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}

	s := &Session{
		calc:   calc,
		id:     cfg.id,
		logger: observability.EnrichLogger(calc.logger, cfg.id),
		store:  cfg.store,
		limit:  cfg.historyLimit,
		screen: "0",
	}

	if s.store != nil {
		entries, err := s.store.Recent(context.Background(), s.id, s.limit)
		if err != nil {
			return nil, fmt.Errorf("restore history: %w", err)
		}
		s.history = entries
		if len(entries) > 0 {
			s.answer, s.hasAnswer = entries[0].Value, true
		}
		observability.LogHistoryRestore(s.logger, len(entries))
	}
	return s, nil
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Expression returns the expression being typed, in internal notation.
func (s *Session) Expression() string { return s.expression }

// Screen returns the main display text.
func (s *Session) Screen() string { return s.screen }

// Status returns the status line: the evaluated expression, an error, or "".
func (s *Session) Status() string { return s.status }

// LastAnswer returns the value of the last successful evaluation.
func (s *Session) LastAnswer() (float64, bool) { return s.answer, s.hasAnswer }

// History returns the history entries, most recent first.
func (s *Session) History() []history.Entry {
	out := make([]history.Entry, len(s.history))
	copy(out, s.history)
	return out
}

// HistoryLines renders the history one "expression = result" per line.
func (s *Session) HistoryLines() string {
	if len(s.history) == 0 {
		return emptyHistory
	}
	lines := make([]string, len(s.history))
	for i, e := range s.history {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}

// Press handles a key. It reports whether the key was recognized; unknown
// keys change nothing.
//
// Besides the Key constants, the keyboard names Escape, BackSpace, Return
// and KP_Enter are accepted, as are the characters 0-9 . + - × ÷ ^ * / ( ).
func (s *Session) Press(ctx context.Context, key string) bool {
	switch key {
	case KeyClear, "Escape":
		s.Clear()
	case KeyBackspace, "BackSpace":
		s.Backspace()
	case KeyEquals, "Return", "KP_Enter":
		s.Evaluate(ctx)
	case KeyAnswer:
		s.InsertAnswer()
	case KeySign:
		s.ToggleSign()
	case KeyPercent:
		s.Percent()
	default:
		if utf8.RuneCountInString(key) != 1 || !strings.Contains(appendKeys, key) {
			return false
		}
		s.Append(key)
	}
	return true
}

// Append adds text to the expression, translating display glyphs.
func (s *Session) Append(text string) {
	s.expression += display.ToInternal(text)
	s.edited()
}

// Clear empties the expression.
func (s *Session) Clear() {
	s.expression = ""
	s.edited()
}

// Backspace removes the last character of the expression.
func (s *Session) Backspace() {
	_, size := utf8.DecodeLastRuneInString(s.expression)
	s.expression = s.expression[:len(s.expression)-size]
	s.edited()
}

// InsertAnswer appends the formatted last answer. It does nothing to the
// expression before the first successful evaluation.
func (s *Session) InsertAnswer() {
	if s.hasAnswer {
		s.expression += display.Format(s.answer)
	}
	s.edited()
}

// ToggleSign flips the sign of the rightmost number.
func (s *Session) ToggleSign() {
	s.replaceTrailingNumber(func(num string) string {
		if strings.HasPrefix(num, "-") {
			return num[1:]
		}
		return "-" + num
	})
}

// Percent divides the rightmost number by 100.
func (s *Session) Percent() {
	s.replaceTrailingNumber(func(num string) string {
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return num
		}
		return display.Format(v / 100)
	})
}

func (s *Session) replaceTrailingNumber(fn func(string) string) {
	m := trailingNumber.FindStringSubmatchIndex(s.expression)
	if m == nil {
		return
	}
	start, end := m[2], m[3]
	s.expression = s.expression[:start] + fn(s.expression[start:end]) + s.expression[end:]
	s.edited()
}

// edited refreshes the screen after a change to the expression and clears
// the status line.
func (s *Session) edited() {
	s.status = ""
	if s.expression == "" {
		s.screen = "0"
		return
	}
	s.screen = display.ToDisplay(s.expression)
}

// Evaluate evaluates the expression.
//
// On success the result replaces the expression, becomes the last answer
// and is added to the history. On failure, including a non-finite result,
// the screen shows "Error", the status line carries the message and the
// expression is kept for editing. A blank expression resets the screen.
func (s *Session) Evaluate(ctx context.Context) Result {
	if strings.TrimSpace(s.expression) == "" {
		s.screen = "0"
		s.status = ""
		return newResult(0, calcerrors.ErrEmptyExpression)
	}

	res := s.calc.evaluate(ctx, s.id, s.logger, s.expression)
	switch {
	case !res.OK:
		s.fail(res.Message)
		return res
	case res.NonFinite():
		s.fail(calcerrors.ErrNonFinite.Error())
		return res
	}

	shown := display.ToDisplay(s.expression)
	entry := history.Entry{Expression: shown, Result: res.Display, Value: res.Value}
	s.answer, s.hasAnswer = res.Value, true
	s.history = append([]history.Entry{entry}, s.history...)
	if len(s.history) > s.limit {
		s.history = s.history[:s.limit]
	}
	s.expression = res.Display
	s.screen = res.Display
	s.status = shown + " ="
	s.persist(ctx, entry)
	return res
}

func (s *Session) fail(msg string) {
	s.screen = display.ErrorText
	s.status = "Error: " + msg
}

// persist appends entry to the history store. Failures are logged only.
func (s *Session) persist(ctx context.Context, entry history.Entry) {
	if s.store == nil {
		return
	}
	err := s.store.Append(ctx, s.id, entry)
	s.calc.metrics.RecordHistoryWrite(ctx, err == nil)
	if err != nil {
		observability.LogHistoryError(s.logger, "append", err)
	}
}

// ClearHistory forgets the session history, in the store too.
func (s *Session) ClearHistory(ctx context.Context) error {
	s.history = nil
	if s.store == nil {
		return nil
	}
	if err := s.store.Clear(ctx, s.id); err != nil {
		observability.LogHistoryError(s.logger, "clear", err)
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
