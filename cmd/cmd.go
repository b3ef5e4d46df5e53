package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Aidix21/Conf-SH-A-R-Pr4/emit"
	"github.com/Aidix21/Conf-SH-A-R-Pr4/logger"
	"github.com/Aidix21/Conf-SH-A-R-Pr4/parser"
	"github.com/Aidix21/Conf-SH-A-R-Pr4/value"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Exit statuses returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// usageError marks command-line mistakes, as opposed to bad input text.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{fmt.Errorf(format, args...)}
}

// Execute runs the confsh CLI with the given version string and exits.
func Execute(version string) {
	os.Exit(Run(context.Background(), os.Args, os.Stdin, os.Stdout, os.Stderr, version))
}

// Run executes the CLI with explicit streams and returns the exit status.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, version string) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, log: zap.NewNop()}
	defer a.close()

	err := newCommand(version, a).Run(ctx, args)
	if err == nil {
		return ExitOK
	}

	var se *parser.SyntaxError
	var ue *usageError
	switch {
	case errors.As(err, &se):
		a.report(se.Error())
		return ExitError
	case errors.As(err, &ue):
		fmt.Fprintf(stderr, "error: %v\n", ue)
		return ExitUsage
	default:
		a.report(fmt.Sprintf("Unexpected error: %v", err))
		return ExitError
	}
}

func newCommand(version string, a *app) *cli.Command {
	return &cli.Command{
		Name:      "confsh",
		Usage:     "Convert confsh configuration text to TOML",
		ArgsUsage: "[file | -]",
		Version:   version,
		Reader:    a.stdin,
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		// Errors are classified and printed by Run.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		OnUsageError:   onUsageError,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: toml, json or yaml",
				Value:   string(emit.FormatTOML),
				Sources: cli.EnvVars("CONFSH_FORMAT"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level: debug, info, warn or error",
				Value:   logger.DefaultConfig().Level,
				Sources: cli.EnvVars("CONFSH_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "Write logs to a rotating file instead of stderr",
				Sources: cli.EnvVars("CONFSH_LOG_FILE"),
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Aliases: []string{"C"},
				Usage:   "Disable ANSI color in error output",
			},
		},
		Action: a.convertAction,
		Commands: []*cli.Command{
			{
				Name:         "check",
				Usage:        "Parse the input and report errors without printing output",
				ArgsUsage:    "[file | -]",
				Action:       a.checkAction,
				OnUsageError: onUsageError,
			},
		},
	}
}

// onUsageError reports flag parsing failures as usage errors, without the
// help text urfave/cli would otherwise print to stdout.
func onUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return &usageError{err}
}

// app carries the streams and per-invocation state shared by actions.
type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	log      *zap.Logger
	closeLog func() error
	color    bool
}

func (a *app) convertAction(ctx context.Context, cmd *cli.Command) error {
	format, err := emit.ParseFormat(cmd.String("format"))
	if err != nil {
		return &usageError{err}
	}
	tbl, err := a.load(cmd)
	if err != nil {
		return err
	}
	out, err := emit.Render(format, tbl)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", format, err)
	}
	if _, err := io.WriteString(a.stdout, out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	a.log.Debug("output written", zap.String("format", string(format)), zap.Int("bytes", len(out)))
	return nil
}

func (a *app) checkAction(ctx context.Context, cmd *cli.Command) error {
	tbl, err := a.load(cmd)
	if err != nil {
		return err
	}
	a.log.Info("input is valid", zap.Int("entries", tbl.Len()))
	return nil
}

// load configures logging and colour from cmd's flags, then reads and
// parses the input named by its arguments.
func (a *app) load(cmd *cli.Command) (*value.Table, error) {
	if err := a.setup(cmd); err != nil {
		return nil, err
	}
	if cmd.NArg() > 1 {
		return nil, usagef("expected at most one input file, got %d", cmd.NArg())
	}

	name := cmd.Args().First()
	src, err := a.readInput(name)
	if err != nil {
		return nil, err
	}
	a.log.Debug("input read", zap.String("source", displayName(name)), zap.Int("bytes", len(src)))

	return parser.Parse(src, parser.WithLogger(a.log.Named("parser")))
}

func (a *app) setup(cmd *cli.Command) error {
	a.color = colorEnabled(cmd.Bool("no-color"), a.stderr)

	cfg := logger.DefaultConfig()
	cfg.Level = cmd.String("log-level")
	cfg.FileName = cmd.String("log-file")
	l, closeFn, err := logger.New(cfg, a.stderr)
	if err != nil {
		return &usageError{err}
	}
	a.log, a.closeLog = l, closeFn
	return nil
}

func (a *app) close() {
	if a.closeLog != nil {
		_ = a.closeLog()
	}
}

func (a *app) readInput(name string) (string, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}

// report writes a single error line to stderr, in red when enabled.
func (a *app) report(line string) {
	c := color.New(color.FgRed)
	if a.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	c.Fprintln(a.stderr, line)
}

func displayName(name string) string {
	if name == "" || name == "-" {
		return "<stdin>"
	}
	return name
}

// colorEnabled honours --no-color and NO_COLOR, and otherwise colours only
// when w is a terminal.
func colorEnabled(noColor bool, w io.Writer) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
