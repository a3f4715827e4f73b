// Command tf2logstat parses TF2 server console logs and prints per-match statistics as
// JSON, either for a single file or for every matching log under a directory.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/oops"
	flag "github.com/spf13/pflag"

	"github.com/tf2stats/logparser/handler"
	"github.com/tf2stats/logparser/internal/loader"
	"github.com/tf2stats/logparser/internal/walker"
	"github.com/tf2stats/logparser/parser"
)

// Match is the outer, CLI-facing wrapper around one parse: an identity stamp and source
// file name alongside the core parser's result. PerSubject keys render in sorted order,
// since encoding/json always emits map[string]V keys sorted lexicographically.
type Match struct {
	ID         uuid.UUID                           `json:"id"`
	SourceFile string                               `json:"source_file"`
	StartedAt  string                               `json:"started_at,omitempty"`
	Global     handler.GlobalOutput                 `json:"global"`
	PerSubject map[string]handler.PerSubjectOutput  `json:"per_subject"`
}

func main() {
	var (
		input     = flag.String("input", "", "path to a single log file, or a directory when --recursive or --glob scanning is desired")
		glob      = flag.String("glob", "", "comma-separated list of filepath.Match globs to scan for under --input (default \"*.log,*.log.gz\")")
		recursive = flag.Bool("recursive", false, "descend into subdirectories of --input")
		out       = flag.String("out", "", "write JSON output here instead of stdout")
		logLevel  = flag.String("log-level", "info", "zerolog level: debug, info, warn, error")
	)
	flag.Parse()

	log := newLogger(*logLevel)

	if *input == "" {
		log.Error().Msg("--input is required")
		os.Exit(2)
	}

	out2, err := run(*input, *glob, *recursive, log)
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}

	if err := writeOutput(*out, out2); err != nil {
		log.Error().Err(err).Msg("failed to write output")
		os.Exit(1)
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}

// run drives the loader/walker/parser over input and returns a JSON-marshalable value:
// a single Match for a file, or a []Match for a directory.
func run(input, glob string, recursive bool, log zerolog.Logger) (any, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", input, err)
	}

	if !info.IsDir() {
		buf, err := loader.Load(input)
		if err != nil {
			return nil, err
		}
		result, err := parser.Parse(buf)
		if err != nil {
			return nil, oops.With("file", input).Wrapf(err, "parse log file %q", input)
		}
		return toMatch(input, result), nil
	}

	opts := walker.Options{Recursive: recursive, Log: log}
	if glob != "" {
		opts.Patterns = splitGlob(glob)
	}
	files, walkErr := walker.Walk(input, opts)
	if walkErr != nil {
		log.Warn().Err(walkErr).Msg("one or more files in the batch failed")
	}

	matches := make([]Match, 0, len(files))
	for _, f := range files {
		matches = append(matches, toMatch(f.Path, f.Result))
	}
	return matches, nil
}

func toMatch(path string, result parser.Result) Match {
	m := Match{
		ID:         uuid.New(),
		SourceFile: path,
		Global:     result.Global,
		PerSubject: result.PerSubject,
	}
	if !result.StartedAt.IsZero() {
		m.StartedAt = result.StartedAt.UTC().Format("2006-01-02T15:04:05Z")
	}
	return m
}

func splitGlob(s string) []string {
	var patterns []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

func writeOutput(out string, v any) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	buf = append(buf, '\n')

	if out == "" {
		_, err := os.Stdout.Write(buf)
		return err
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return os.WriteFile(out, buf, 0o644)
}
