package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2doc <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert HTML files to text or a YAML document tree")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'html2doc help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2doc convert <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert HTML files into document blocks.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    HTML file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output file or directory (default: stdout)")
	fmt.Fprintln(w, "  -f, --format <s>            Output format: text, yaml")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "  -u, --unknown-tags <s>      Unknown tag policy: pass-through, drop, bypass")
	fmt.Fprintln(w, "      --base-url <url>        Absolute URL relative links resolve against")
	fmt.Fprintln(w, "      --asset-root <dir>      Directory relative image paths resolve under")
	fmt.Fprintln(w, "      --no-markdown-escape    Never treat text after a blank line as Markdown")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Highlighting:")
	fmt.Fprintln(w, "      --highlight-style <s>   Chroma style for code blocks (default: github)")
	fmt.Fprintln(w, "      --no-highlight          Disable code highlighting")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show timings and debug logs")
	fmt.Fprintln(w, "      --log-level <s>         Log level: debug, info, warn, error")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  HTML2DOC_CONFIG, HTML2DOC_INPUT_DIR, HTML2DOC_OUTPUT_DIR, HTML2DOC_FORMAT,")
	fmt.Fprintln(w, "  HTML2DOC_UNKNOWN_TAGS, HTML2DOC_BASE_URL, HTML2DOC_ASSET_ROOT,")
	fmt.Fprintln(w, "  HTML2DOC_HIGHLIGHT_STYLE, HTML2DOC_LOG_LEVEL, HTML2DOC_WORKERS")
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
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: html2doc version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: html2doc help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
