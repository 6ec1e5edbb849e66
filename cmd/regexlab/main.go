// Command regexlab is a minimal CLI sketch over the regexlab facade.
// It is intentionally thin: spec §6 names a much richer external CLI
// surface (analyze/lint/explain/highlight/graph, multiple output
// formatters, ANSI toggling) that stays out of scope here — this binary
// only ever exercises validate and redos, the two operations this
// module fully implements end to end.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yoeunes/regexlab"
)

func main() {
	var stdin io.Reader
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		stdin = os.Stdin
	}
	if err := run(os.Args, stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("regexlab", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.Usage = func() {
		fmt.Fprintf(stderr, "regexlab - static analysis for PCRE-flavored regular expressions\n\n")
		fmt.Fprintf(stderr, "Usage:\n")
		fmt.Fprintf(stderr, "  regexlab validate <pattern>\n")
		fmt.Fprintf(stderr, "  regexlab redos <pattern>\n")
		fmt.Fprintf(stderr, "  echo '/pattern/' | regexlab validate\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  regexlab validate '/(?<x>a)\\k<x>/'\n")
		fmt.Fprintf(stderr, "  regexlab redos '/(a+)+b/'\n")
	}

	err := fs.Parse(args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return fmt.Errorf("no subcommand given")
	}

	cmd, rest := rest[0], rest[1:]
	pattern, err := getInput(rest, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fs.Usage()
		return err
	}

	switch cmd {
	case "validate":
		return runValidate(pattern, stdout)
	case "redos":
		return runRedos(pattern, stdout)
	default:
		fmt.Fprintf(stderr, "Error: unknown subcommand %q\n", cmd)
		fs.Usage()
		return fmt.Errorf("unknown subcommand: %s", cmd)
	}
}

func runValidate(pattern string, stdout io.Writer) error {
	res := regexlab.Validate(pattern, regexlab.DefaultConfig())
	if res.IsValid {
		fmt.Fprintf(stdout, "OK  %s\n", pattern)
		return nil
	}
	fmt.Fprintf(stdout, "FAIL  %s\n\n%s\n\n%s: %s\n", pattern, res.CaretSnippet, res.ErrorCode, res.Error.Message)
	return errors.New(res.ErrorCode)
}

func runRedos(pattern string, stdout io.Writer) error {
	a := regexlab.Redos(pattern, regexlab.DefaultConfig())
	fmt.Fprintf(stdout, "%s  severity=%s score=%d confidence=%s\n", pattern, a.Severity, a.Score, a.Confidence)
	for _, h := range a.Hotspots {
		fmt.Fprintf(stdout, "  [%s] offset %d\n%s\n", h.Rule, h.Offset, h.Snippet)
	}
	for _, r := range a.Recommendations {
		fmt.Fprintf(stdout, "  %s\n", r.Explain())
	}
	if a.Severity == "safe" || a.Severity == "low" {
		return nil
	}
	return fmt.Errorf("redos severity %s", a.Severity)
}

func getInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if stdin != nil {
		input, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return strings.TrimSpace(string(input)), nil
	}
	return "", fmt.Errorf("no pattern provided")
}
