// Command brex is the BREX regex language's command-line front end: it
// parses a BREX source string, resolves and compiles it, then tests it
// against a haystack drawn from a file, stdin, or a literal string,
// grounded on _examples/shibukawa-snapsql/cmd/snapsql/main.go's
// kong.Parse-plus-flat-options-struct shape (BREX has no subcommands,
// so there is no per-command Run method, just one CLI struct and one
// run function).
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/marron-at-work/brex/compile"
	"github.com/marron-at-work/brex/config"
	"github.com/marron-at-work/brex/logging"
	"github.com/marron-at-work/brex/match"
	"github.com/marron-at-work/brex/parse"
	"github.com/marron-at-work/brex/resolve"
	"github.com/marron-at-work/brex/xcmd"
)

// CLI is the brex command line: one positional regex, one positional
// or flag-selected input source, and the `-a/-n/-c/-x` output modes.
type CLI struct {
	Regex string `arg:"" help:"BREX regex source, e.g. '/[0-9]+/'."`
	Input string `arg:"" optional:"" help:"Input file. Omit and use -s or -l instead."`

	Stdin   bool   `short:"s" help:"Read the haystack from stdin."`
	Literal string `short:"l" help:"Use TEXT as the haystack directly, instead of a file." placeholder:"TEXT"`

	Accept      bool `short:"a" help:"Accept-test mode: test the whole input once and print accept or reject."`
	LineNumbers bool `short:"n" help:"Prefix each matching line with its 1-based line number."`
	CountOnly   bool `short:"c" help:"Print only the number of matching lines."`
	WholeLine   bool `short:"x" help:"Require the whole line to match, not just a substring of it."`

	Config  string `help:"Config file consulted alongside BREX_-prefixed environment variables." type:"path"`
	EnvFile string `help:"Dotenv-style file consulted for \\${$NAME} environment references." type:"path"`

	Watch time.Duration `help:"Re-run the match against the input file every DURATION, until interrupted (e.g. --watch=2s). Requires a file input; incompatible with -s and -l." placeholder:"DURATION"`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("brex"),
		kong.Description("Test a BREX regex against a file, stdin, or a literal string."),
	)
	os.Exit(run(&cli, os.Stdout, os.Stderr))
}

func run(cli *CLI, stdout, stderr io.Writer) int {
	if err := validateFlags(cli); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	cfg, err := config.LoadCLIConfig(cli.Config)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	regex, pdiags := parse.ParseRegex(cli.Regex)
	if len(pdiags) > 0 {
		return reportDiagnostics(logger, stderr, "parse", pdiags)
	}

	env, err := config.NewEnvLookup(cli.EnvFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	resolved, rdiags := resolve.ResolveStandalone(regex, env)
	if len(rdiags) > 0 {
		return reportDiagnostics(logger, stderr, "resolve", rdiags)
	}

	exec, cdiags := compile.Compile(resolved)
	if len(cdiags) > 0 {
		return reportDiagnostics(logger, stderr, "compile", cdiags)
	}

	if cli.Watch > 0 {
		return runWatch(cli, exec, stdout, stderr)
	}

	haystack, err := readHaystack(cli)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if cli.Accept {
		return runAccept(exec, haystack, stdout, stderr)
	}
	return runSearch(exec, haystack, cli, stdout, stderr)
}

func validateFlags(cli *CLI) error {
	if cli.Accept && (cli.LineNumbers || cli.CountOnly || cli.WholeLine) {
		return fmt.Errorf("brex: -a excludes -n, -c, and -x")
	}
	if cli.CountOnly && cli.LineNumbers {
		return fmt.Errorf("brex: -c excludes -n")
	}
	if cli.Stdin && cli.Literal != "" {
		return fmt.Errorf("brex: -s excludes -l")
	}
	sources := 0
	if cli.Stdin {
		sources++
	}
	if cli.Literal != "" {
		sources++
	}
	if cli.Input != "" {
		sources++
	}
	if sources != 1 {
		return fmt.Errorf("brex: specify exactly one of an input file, -s, or -l")
	}
	if cli.Watch > 0 && cli.Input == "" {
		return fmt.Errorf("brex: --watch requires a file input, not -s or -l")
	}
	return nil
}

func readHaystack(cli *CLI) (string, error) {
	switch {
	case cli.Literal != "":
		return cli.Literal, nil
	case cli.Stdin:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("brex: reading stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(cli.Input)
		if err != nil {
			return "", fmt.Errorf("brex: reading %s: %w", cli.Input, err)
		}
		return string(data), nil
	}
}

// runWatch re-reads and re-tests cli.Input every cli.Watch interval via
// xcmd.PeriodicRun, until an interrupt signal arrives (xcmd.WaitInterrupted,
// watched in a second goroutine that cancels the shared context) or a read
// error occurs. After Ctrl-C it returns the exit code of the last
// completed iteration (0 if none completed).
func runWatch(cli *CLI, exec *match.Executor, stdout, stderr io.Writer) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = xcmd.WaitInterrupted(ctx)
		cancel()
	}()

	var exitCode int
	err := xcmd.PeriodicRun(ctx, func(context.Context) error {
		haystack, err := readHaystack(cli)
		if err != nil {
			return err
		}
		if cli.Accept {
			exitCode = runAccept(exec, haystack, stdout, stderr)
		} else {
			exitCode = runSearch(exec, haystack, cli, stdout, stderr)
		}
		return nil
	}, cli.Watch)

	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return exitCode
}

// runAccept tests the entire haystack once, with no line splitting.
func runAccept(exec *match.Executor, haystack string, stdout, stderr io.Writer) int {
	haystack = strings.TrimSuffix(haystack, "\n")
	ok, kind := exec.Test(haystack)
	if kind != match.ErrNone {
		fmt.Fprintf(stderr, "brex: runtime error: %s\n", kind)
		return 1
	}
	if ok {
		fmt.Fprintln(stdout, "accept")
	} else {
		fmt.Fprintln(stdout, "reject")
	}
	return 0
}

// runSearch splits the haystack into lines and reports, per line,
// either a whole-line match (-x) or a match of any substring of the
// line.
func runSearch(exec *match.Executor, haystack string, cli *CLI, stdout, stderr io.Writer) int {
	count := 0
	lineNo := 0
	scanner := bufio.NewScanner(strings.NewReader(haystack))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		var matched bool
		var kind match.ErrorKind
		if cli.WholeLine {
			matched, kind = exec.Test(line)
		} else {
			matched, kind = lineContainsMatch(exec, line)
		}
		if kind != match.ErrNone {
			fmt.Fprintf(stderr, "brex: runtime error on line %d: %s\n", lineNo, kind)
			return 1
		}
		if !matched {
			continue
		}
		count++
		if cli.CountOnly {
			continue
		}
		if cli.LineNumbers {
			fmt.Fprintf(stdout, "%d:%s\n", lineNo, line)
		} else {
			fmt.Fprintln(stdout, line)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(stderr, "brex: reading input: %v\n", err)
		return 1
	}
	if cli.CountOnly {
		fmt.Fprintln(stdout, count)
	}
	return 0
}

// lineContainsMatch tests every substring of line against exec,
// shortest-start-first, stopping at the first accept. Substrings are
// sliced by rune, not byte, so a match can never split a multi-byte
// codepoint.
func lineContainsMatch(exec *match.Executor, line string) (bool, match.ErrorKind) {
	runes := []rune(line)
	for start := 0; start <= len(runes); start++ {
		for end := start; end <= len(runes); end++ {
			ok, kind := exec.Test(string(runes[start:end]))
			if kind != match.ErrNone {
				return false, kind
			}
			if ok {
				return true, match.ErrNone
			}
		}
	}
	return false, match.ErrNone
}

// reportDiagnostics logs and prints every diagnostic in diags (one of
// parse.Diagnostic, resolve.Diagnostic, or compile.Diagnostic, all of
// which implement fmt.Stringer) and returns the CLI's exit code for a
// non-empty diagnostics list.
func reportDiagnostics[D fmt.Stringer](logger *slog.Logger, stderr io.Writer, stage string, diags []D) int {
	stringers := make([]fmt.Stringer, len(diags))
	for i, d := range diags {
		stringers[i] = d
	}
	logging.LogDiagnostics(logger, stage, stringers)
	for _, d := range diags {
		fmt.Fprintln(stderr, d.String())
	}
	return 1
}
