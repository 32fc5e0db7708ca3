package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

const usage = `Usage: ubjson <command> [flags] [file]

Commands:
  encode   convert JSON or YAML to UBJSON
  decode   convert UBJSON to JSON or YAML
  dump     print decoded UBJSON values with their Go types
  help     show this message

Run "ubjson <command> --help" for the flags of a command.
`

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: newLogger(stderr, false),
	}

	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "encode":
		err = a.encode(args[1:])
	case "decode":
		err = a.decode(args[1:])
	case "dump":
		err = a.dump(args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	fmt.Fprintf(stderr, "error: %v\n", err)

	var uerr usageError
	if errors.As(err, &uerr) {
		return 2
	}
	return 1
}

// flagSet returns a flag set for the named command with the flags every
// command shares.
func (a *app) flagSet(name string) (*pflag.FlagSet, *bool) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: ubjson %s [flags] [file]\n\nFlags:\n%s", name, fs.FlagUsages())
	}
	verbose := fs.BoolP("verbose", "v", false, "log debug records")
	return fs, verbose
}

func (a *app) parse(fs *pflag.FlagSet, verbose *bool, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return usageError{err}
	}
	a.logger = newLogger(a.stderr, *verbose)
	return nil
}

// newLogger writes text records to a terminal and JSON records otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}

	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}

type usageError struct {
	err error
}

func usagef(format string, args ...interface{}) error {
	return usageError{fmt.Errorf(format, args...)}
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }
