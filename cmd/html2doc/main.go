package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-html2doc/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// errUsage marks command line mistakes.
var errUsage = errors.New("usage error")

func main() {
	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches the command in args and returns the process exit code.
// args[0] is the program name. A first argument that looks like an HTML
// file or a directory runs convert.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) {
		if !looksLikeInput(cmd) {
			fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
			printUsage(env.Stderr)
			return ExitUsage
		}
		cmd, rest = "convert", args[1:]
	}

	var err error
	switch cmd {
	case "convert":
		err = runConvertCommand(ctx, rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "html2doc %s\n", Version)
	case "help", "-h", "--help":
		runHelp(rest, env)
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "error:", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvertCommand parses convert flags, sizes GOMAXPROCS and converts.
func runConvertCommand(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	configureMaxProcs(flags.common.verbose, env.Stderr)
	return runConvert(ctx, positional, flags, env)
}

// configureMaxProcs sets GOMAXPROCS from the container CPU quota.
// The error is ignored: maxprocs.Set only fails on an invalid GOMAXPROCS
// environment value, and the runtime default then applies.
func configureMaxProcs(verbose bool, w io.Writer) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}

func isCommand(s string) bool {
	switch s {
	case "convert", "version", "help", "-h", "--help":
		return true
	}
	return false
}

// looksLikeInput reports whether s names an HTML file or an existing directory.
func looksLikeInput(s string) bool {
	if strings.HasPrefix(s, "-") {
		return false
	}
	return fileutil.IsHTML(s) || fileutil.DirExists(filepath.Clean(s))
}
