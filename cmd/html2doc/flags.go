package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// parseFlags holds flags that change how HTML is converted.
type parseFlags struct {
	unknownTags      string
	baseURL          string
	assetRoot        string
	noMarkdownEscape bool
}

// highlightFlags holds code highlighting flags.
type highlightFlags struct {
	style    string
	disabled bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	output    string
	format    string
	workers   int
	logLevel  string
	parse     parseFlags
	highlight highlightFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timings and debug logs")
}

// addParseFlags adds conversion flags to a FlagSet.
func addParseFlags(fs *flag.FlagSet, f *parseFlags) {
	fs.StringVarP(&f.unknownTags, "unknown-tags", "u", "", "unknown tag policy: pass-through, drop, bypass")
	fs.StringVar(&f.baseURL, "base-url", "", "absolute URL relative links resolve against")
	fs.StringVar(&f.assetRoot, "asset-root", "", "directory relative image paths resolve under")
	fs.BoolVar(&f.noMarkdownEscape, "no-markdown-escape", false, "never treat blank-line text as Markdown")
}

// addHighlightFlags adds highlighting flags to a FlagSet.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.StringVar(&f.style, "highlight-style", "", "chroma style for code blocks")
	fs.BoolVar(&f.disabled, "no-highlight", false, "disable code highlighting")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (default: stdout)")
	fs.StringVarP(&f.format, "format", "f", "", "output format: text, yaml")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addParseFlags(fs, &f.parse)
	addHighlightFlags(fs, &f.highlight)

	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
