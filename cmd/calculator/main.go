// Command calculator evaluates arithmetic expressions.
//
// With -e it evaluates one expression and prints the result. Otherwise it
// reads lines from standard input. A line that starts with an operator
// continues from the previous result; any other line starts over.
//
// Lines beginning with ':' are commands:
//
//	:history  print the recent calculations
//	:ans      print the last answer
//	:clear    forget the history
//	:quit     exit
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"unicode/utf8"

	"github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator"
	"github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/config"
	"github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/display"
	calcerrors "github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/errors"
	"github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/history"
	"github.com/Mohamed-Elkiky/basic-calculator/pkg/calculator/observability"
)

// defaultSessionID names the session when history is kept on disk and no
// -session is given, so that restarts see the same history.
const defaultSessionID = "default"

// continuers are the leading characters that extend the previous result.
const continuers = "+-*/%^×÷"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	configPath  string
	expression  string
	historyPath string
	sessionID   string
	verbose     bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("calculator", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "settings file (YAML or JSON)")
	fs.StringVar(&o.expression, "e", "", "evaluate one expression and exit")
	fs.StringVar(&o.historyPath, "history", "", "SQLite file for history (overrides the settings file)")
	fs.StringVar(&o.sessionID, "session", "", "session ID for stored history")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return o, nil
}

func loadSettings(o options) (config.Settings, error) {
	s := config.Defaults()
	if o.configPath != "" {
		var err error
		if s, err = config.Load(o.configPath); err != nil {
			return config.Settings{}, err
		}
	}
	if o.historyPath != "" {
		s.HistoryPath = o.historyPath
	}
	if o.verbose {
		s.LogLevel = "debug"
	}
	return s, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	settings, err := loadSettings(o)
	if err != nil {
		fmt.Fprintln(stderr, "calculator:", err)
		return 1
	}

	logger, err := observability.NewLogger(stderr, settings.LogLevel, settings.LogFormat)
	if err != nil {
		fmt.Fprintln(stderr, "calculator:", err)
		return 1
	}

	calc := calculator.New(
		calculator.WithLogger(logger),
		calculator.WithMetrics(settings.Metrics),
		calculator.WithTracing(settings.Tracing),
		calculator.WithMaxDepth(settings.MaxDepth),
	)

	if o.expression != "" {
		return evalOnce(ctx, calc, o.expression, stdout, stderr)
	}

	store, err := openStore(settings)
	if err != nil {
		fmt.Fprintln(stderr, "calculator:", err)
		return 1
	}
	defer store.Close()

	id := o.sessionID
	if id == "" && settings.HistoryPath != "" {
		id = defaultSessionID
	}
	session, err := calculator.NewSession(calc,
		calculator.WithHistoryStore(store),
		calculator.WithHistoryLimit(settings.HistoryLimit),
		calculator.WithSessionID(id),
	)
	if err != nil {
		fmt.Fprintln(stderr, "calculator:", err)
		return 1
	}

	if err := repl(ctx, session, stdin, stdout); err != nil {
		fmt.Fprintln(stderr, "calculator:", err)
		return 1
	}
	return 0
}

func evalOnce(ctx context.Context, calc *calculator.Calculator, text string, stdout, stderr io.Writer) int {
	res := calc.Evaluate(ctx, text)
	switch {
	case !res.OK:
		fmt.Fprintln(stderr, "Error:", res.Message)
		return 1
	case res.NonFinite():
		fmt.Fprintln(stderr, "Error:", calcerrors.ErrNonFinite)
		return 1
	}
	fmt.Fprintln(stdout, res.Display)
	return 0
}

func openStore(s config.Settings) (history.Store, error) {
	if s.HistoryPath == "" {
		return history.NewMemoryStore(), nil
	}
	return history.NewSQLiteStore(s.HistoryPath, history.WithBusyTimeout(s.HistoryBusyTimeout))
}

func repl(ctx context.Context, s *calculator.Session, stdin io.Reader, stdout io.Writer) error {
	scanner := bufio.NewScanner(stdin)
	continued := false
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			quit, err := command(ctx, s, line, stdout)
			if err != nil {
				fmt.Fprintln(stdout, "Error:", err)
			}
			if quit {
				return nil
			}
			continue
		}

		if r, _ := utf8.DecodeRuneInString(line); !continued || !strings.ContainsRune(continuers, r) {
			s.Clear()
		}
		s.Append(line)
		res := s.Evaluate(ctx)
		if !res.OK || res.NonFinite() {
			fmt.Fprintln(stdout, s.Status())
			continued = false
			continue
		}
		fmt.Fprintln(stdout, s.Screen())
		continued = true
	}
	return scanner.Err()
}

// command runs a ':' command and reports whether the loop should end.
func command(ctx context.Context, s *calculator.Session, line string, stdout io.Writer) (bool, error) {
	switch line {
	case ":quit", ":q":
		return true, nil
	case ":history":
		fmt.Fprintln(stdout, s.HistoryLines())
	case ":ans":
		v, ok := s.LastAnswer()
		if !ok {
			fmt.Fprintln(stdout, "no answer yet")
			break
		}
		fmt.Fprintln(stdout, display.Format(v))
	case ":clear":
		return false, s.ClearHistory(ctx)
	default:
		return false, fmt.Errorf("unknown command %q", line)
	}
	return false, nil
}
