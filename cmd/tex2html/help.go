package main

import (
	"fmt"
	"io"
	"strings"

	tex2html "github.com/alnah/go-tex2html"
	"github.com/alnah/go-tex2html/internal/docclass"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2html <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert LaTeX event streams to HTML")
	fmt.Fprintln(w, "  styles      List the built-in stylesheets")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'tex2html help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2html convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert LaTeX event streams (YAML) to HTML pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Event file or directory of *.events.yaml files")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>        Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path (.yaml, .yml, .toml)")
	fmt.Fprintln(w, "  -w, --workers <n>          Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>          Conversion timeout per file (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintf(w, "      --class <s>            Class when the document declares none: %s\n", strings.Join(docclass.Names(), ", "))
	fmt.Fprintln(w, "      --class-option <s>     Class option, e.g. 12pt, a4paper (repeatable)")
	fmt.Fprintln(w, "      --package <s>          Package loaded before the document (repeatable)")
	fmt.Fprintln(w, "  -l, --lang <tag>           Document language (BCP 47), e.g. en, de, fr")
	fmt.Fprintln(w, "      --date <s>             \\today date: \"auto\" or YYYY-MM-DD")
	fmt.Fprintln(w, "      --date-format <s>      \\today format")
	fmt.Fprintln(w, "                             Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, dddd, ddd")
	fmt.Fprintln(w, "                             Presets (case-insensitive): iso, european, us, long, full")
	fmt.Fprintln(w, "                             Use [text] to escape literals: [Date]: YYYY")
	fmt.Fprintf(w, "      --precision <n>        Decimals of pixel values (0-%d, default %d)\n", tex2html.MaxPrecision, tex2html.DefaultPrecision)
	fmt.Fprintln(w, "      --no-hyphenate         Disable hyphenation")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "  -s, --style <s>            Style name, CSS file or CSS content (repeatable)")
	fmt.Fprintln(w, "      --css <path>           CSS file applied after every other style")
	fmt.Fprintln(w, "      --asset-path <dir>     Directory with styles/<name>.css overrides")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                Only show errors")
	fmt.Fprintln(w, "  -v, --verbose              Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TEX2HTML_CONFIG, TEX2HTML_STYLE, TEX2HTML_TIMEOUT, TEX2HTML_WORKERS,")
	fmt.Fprintln(w, "  TEX2HTML_INPUT_DIR, TEX2HTML_OUTPUT_DIR, TEX2HTML_ASSET_PATH,")
	fmt.Fprintln(w, "  TEX2HTML_CLASS, TEX2HTML_LANG, TEX2HTML_DATE")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "styles":
		fmt.Fprintln(env.Stdout, "Usage: tex2html styles")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List the built-in stylesheets usable with --style.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: tex2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: tex2html help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
