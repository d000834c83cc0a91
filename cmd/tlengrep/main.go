// Command tlengrep prints the lines of its input that are words of a
// regular language.
//
// Usage:
//
//	tlengrep [flags] PATTERN [FILE...]
//
// Unlike grep, a line is selected only if the whole line matches PATTERN.
// With no FILE, standard input is read. Exit status is 0 if a line was
// selected, 1 if none was, and 2 on error.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/coregx/mindfa"
)

// Version is set at build time via -ldflags.
var Version = "dev"

const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

type options struct {
	invert    bool
	count     bool
	lineNum   bool
	fixed     bool
	maxStates int
	logLevel  string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tlengrep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.BoolVar(&opts.invert, "v", false, "select non-matching lines")
	fs.BoolVar(&opts.count, "c", false, "print only a count of selected lines per input")
	fs.BoolVar(&opts.lineNum, "n", false, "prefix each line with its line number")
	fs.BoolVar(&opts.fixed, "F", false, "treat PATTERN as a literal string")
	fs.IntVar(&opts.maxStates, "max-states", 0, "abort if the DFA needs more states (0 = unlimited)")
	fs.StringVar(&opts.logLevel, "log-level", getEnv("TLENGREP_LOG_LEVEL", "warn"), "log level: debug, info, warn, error")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: tlengrep [flags] PATTERN [FILE...]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return exitError
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: parseLogLevel(opts.logLevel),
	}))

	pattern := fs.Arg(0)
	if opts.fixed {
		pattern = mindfa.QuoteMeta(pattern)
	}
	config := mindfa.DefaultConfig().
		WithMaxDFAStates(opts.maxStates).
		WithLogger(logger)
	re, err := mindfa.CompileWithConfig(pattern, config)
	if err != nil {
		fmt.Fprintf(stderr, "tlengrep: %v\n", err)
		return exitError
	}
	logger.Info("compiled pattern",
		"version", Version,
		"pattern", pattern,
		"states", re.States(),
		"strategy", re.Strategy().String())

	files := fs.Args()[1:]
	multi := len(files) > 1
	if len(files) == 0 {
		files = []string{"-"}
	}

	selected := false
	failed := false
	for _, name := range files {
		n, err := grepFile(re, name, stdin, stdout, opts, multi)
		if err != nil {
			logger.Error("read failed", "file", name, "error", err)
			fmt.Fprintf(stderr, "tlengrep: %s: %v\n", name, err)
			failed = true
			continue
		}
		if n > 0 {
			selected = true
		}
	}

	switch {
	case failed:
		return exitError
	case selected:
		return exitMatch
	default:
		return exitNoMatch
	}
}

// grepFile scans one input and returns the number of selected lines.
func grepFile(re *mindfa.Regex, name string, stdin io.Reader, stdout io.Writer, opts options, multi bool) (int, error) {
	var r io.Reader = stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return 0, err
		}
		defer f.Close()
		r = f
	}
	return grep(re, r, stdout, name, opts, multi)
}

func grep(re *mindfa.Regex, r io.Reader, w io.Writer, name string, opts options, multi bool) (int, error) {
	out := bufio.NewWriter(w)
	defer out.Flush()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	selected := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if re.MatchString(line) == opts.invert {
			continue
		}
		selected++
		if opts.count {
			continue
		}
		if multi {
			fmt.Fprintf(out, "%s:", name)
		}
		if opts.lineNum {
			fmt.Fprintf(out, "%d:", lineNo)
		}
		fmt.Fprintln(out, line)
	}
	if err := scanner.Err(); err != nil {
		return selected, err
	}

	if opts.count {
		if multi {
			fmt.Fprintf(out, "%s:", name)
		}
		fmt.Fprintln(out, selected)
	}
	return selected, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
