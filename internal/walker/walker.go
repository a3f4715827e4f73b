// Package walker discovers log files under a directory tree and parses them
// concurrently, mirroring the original command-line tool's directory-batch mode.
package walker

import (
	"errors"
	"io/fs"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/oops"

	"github.com/tf2stats/logparser/internal/loader"
	"github.com/tf2stats/logparser/parser"
)

// Options controls a directory walk.
type Options struct {
	// Patterns are filepath.Match globs tested against each entry's base name.
	// A file is included if it matches any pattern. Defaults to "*.log" and
	// "*.log.gz" when empty.
	Patterns []string
	// Recursive descends into subdirectories when true; otherwise only the
	// root directory's direct entries are considered.
	Recursive bool
	// Workers bounds how many files are parsed concurrently. Zero or
	// negative selects runtime.NumCPU().
	Workers int
	Log     zerolog.Logger
}

// File is one successfully parsed log file.
type File struct {
	Path   string
	Result parser.Result
}

// job is a discovered path awaiting a worker.
type job struct {
	idx  int
	path string
}

// outcome is a worker's result for one job, kept in discovery order so Walk's
// output is deterministic regardless of which worker finishes first.
type outcome struct {
	idx  int
	file File
	err  error
}

var defaultPatterns = []string{"*.log", "*.log.gz"}

// Walk discovers every file under root matching Options.Patterns, loads and
// parses each one, and returns the successfully parsed files in discovery
// order. A file that fails to load or parse does not abort the walk: its
// error is collected and returned joined with every other failure via
// errors.Join, alongside whatever files did succeed.
func Walk(root string, opts Options) ([]File, error) {
	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = defaultPatterns
	}

	paths, err := discover(root, patterns, opts.Recursive)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan job, workers)
	results := make(chan outcome, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				file, err := parseOne(j.path)
				if err != nil {
					opts.Log.Error().Err(err).Str("path", j.path).Msg("failed to parse log file")
				} else {
					opts.Log.Debug().Str("path", j.path).Msg("parsed log file")
				}
				results <- outcome{idx: j.idx, file: file, err: err}
			}
		}()
	}

	go func() {
		for i, p := range paths {
			jobs <- job{idx: i, path: p}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([]*outcome, len(paths))
	for res := range results {
		o := res
		ordered[o.idx] = &o
	}

	var files []File
	var errs []error
	for _, o := range ordered {
		if o.err != nil {
			errs = append(errs, o.err)
			continue
		}
		files = append(files, o.file)
	}
	return files, errors.Join(errs...)
}

func parseOne(path string) (File, error) {
	buf, err := loader.Load(path)
	if err != nil {
		return File{}, err
	}
	result, err := parser.Parse(buf)
	if err != nil {
		return File{}, oops.With("file", path).Wrapf(err, "parse log file %q", path)
	}
	return File{Path: path, Result: result}, nil
}

// discover walks root collecting paths whose base name matches any pattern.
func discover(root string, patterns []string, recursive bool) ([]string, error) {
	var paths []string
	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if matchesAny(d.Name(), patterns) {
			paths = append(paths, path)
		}
		return nil
	}
	if err := filepath.WalkDir(root, walkFn); err != nil {
		return nil, err
	}
	return paths, nil
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
