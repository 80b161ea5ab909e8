package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// errHelp reports that --help was requested and usage has been printed.
var errHelp = flag.ErrHelp

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds the flags that shape the generated page.
type documentFlags struct {
	class        string
	classOptions []string
	packages     []string
	language     string
	dateFormat   string
	date         string
	precision    int
	noHyphenate  bool
}

// assetFlags holds stylesheet flags.
type assetFlags struct {
	styles    []string // names, paths or inline CSS
	css       string   // per-document CSS file, applied last
	assetPath string   // override asset directory
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   string
	workers  int
	timeout  string
	document documentFlags
	assets   assetFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addDocumentFlags adds document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.class, "class", "", "document class when the document declares none")
	fs.StringSliceVar(&f.classOptions, "class-option", nil, "document class option (repeatable)")
	fs.StringSliceVar(&f.packages, "package", nil, "package to load before the document (repeatable)")
	fs.StringVarP(&f.language, "lang", "l", "", "document language (BCP 47 tag)")
	fs.StringVar(&f.dateFormat, "date-format", "", "\\today format: preset or pattern")
	fs.StringVar(&f.date, "date", "", "\\today date: \"auto\" or YYYY-MM-DD")
	fs.IntVar(&f.precision, "precision", -1, "decimals of pixel values (0-10)")
	fs.BoolVar(&f.noHyphenate, "no-hyphenate", false, "disable hyphenation")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringSliceVarP(&f.styles, "style", "s", nil, "CSS style name, file path or content (repeatable)")
	fs.StringVar(&f.css, "css", "", "CSS file applied after every other style")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// newConvertFlagSet registers every convert flag into a new FlagSet.
func newConvertFlagSet(f *convertFlags, usage io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usage)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "conversion timeout per file (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printConvertUsage(usage) }
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
// Usage and parse errors go to w.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f, w)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
