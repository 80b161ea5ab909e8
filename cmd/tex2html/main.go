package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"

	tex2html "github.com/alnah/go-tex2html"
	"github.com/alnah/go-tex2html/internal/docclass"
	"github.com/alnah/go-tex2html/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command and returns the process exit code.
// args[0] is the program name.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch {
	case cmd == "version" || cmd == "--version":
		fmt.Fprintf(env.Stdout, "tex2html %s\n", Version)
		return ExitSuccess
	case cmd == "help" || cmd == "--help" || cmd == "-h":
		runHelp(rest, env)
		return ExitSuccess
	case cmd == "styles":
		for _, name := range tex2html.StyleNames() {
			fmt.Fprintln(env.Stdout, name)
		}
		return ExitSuccess
	case cmd == "completion":
		if err := runCompletion(rest, env); err != nil {
			fmt.Fprintln(env.Stderr, err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	case cmd == "convert":
		return runConvertCmd(rest, env)
	case looksLikeEvents(cmd) || strings.HasPrefix(cmd, "-"):
		// Bare "tex2html doc.events.yaml" is shorthand for convert.
		return runConvertCmd(args[1:], env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// runConvertCmd parses the convert flags, sets up the worker pool and runs
// the batch.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		// Usage is printed for --help; other parse errors are not.
		if errors.Is(err, errHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	// maxprocs.Set only fails on an invalid GOMAXPROCS, in which case the
	// runtime default applies.
	logf := func(string, ...any) {}
	if flags.common.verbose {
		logf = func(format string, a ...any) {
			fmt.Fprintf(env.Stderr, format+"\n", a...)
		}
	}
	undo, _ := maxprocs.Set(maxprocs.Logger(logf))
	defer undo()

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, err.Error()+hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, tex2html.ErrTimeout):
		return hints.ForTimeout()
	case errors.Is(err, tex2html.ErrStyleNotFound):
		return hints.ForStyleNotFound(tex2html.StyleNames())
	case errors.Is(err, tex2html.ErrUnknownClass):
		return hints.ForUnknownClass(docclass.Names())
	case errors.Is(err, tex2html.ErrDecode):
		return hints.ForEventStream()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}
