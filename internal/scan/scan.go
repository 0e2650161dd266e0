package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gerunddev/todotree/internal/config"
	"github.com/gerunddev/todotree/internal/logger"
	"github.com/gerunddev/todotree/internal/markdown"
	"github.com/gerunddev/todotree/internal/state"
	"github.com/gerunddev/todotree/internal/todo"
)

// Scanner parses every markdown file under a directory into a to-do forest
type Scanner struct {
	config *config.Config
	state  *state.State
	log    *logger.Logger
}

// NewScanner creates a new scanner instance
func NewScanner(cfg *config.Config, st *state.State) *Scanner {
	return &Scanner{
		config: cfg,
		state:  st,
		log:    logger.Discard(),
	}
}

// SetLogger sets the logger for the scanner
func (s *Scanner) SetLogger(l *logger.Logger) {
	s.log = l
}

// FileResult is the outcome of scanning one file
type FileResult struct {
	Path    string
	Todos   int
	Open    int
	Forest  []todo.Node
	Changed bool
	Empty   bool
	Err     error
}

// Result represents the result of a scan
type Result struct {
	Files     []FileResult
	Errors    []error
	StartTime time.Time
	EndTime   time.Time
}

// Scan walks dir and parses each markdown file that changed since the last
// scan. Unchanged files report the counts recorded in state. Parse failures
// are collected per file and do not stop the scan.
func (s *Scanner) Scan(ctx context.Context, dir string) (*Result, error) {
	result := &Result{
		StartTime: time.Now(),
	}
	s.log.ScanStarted(dir)

	files, err := ScanDirectory(dir, ".md", s.config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			result.EndTime = time.Now()
			return result, err
		}

		fr := s.scanFile(path)
		if fr.Err != nil {
			result.Errors = append(result.Errors, fr.Err)
		}
		result.Files = append(result.Files, fr)
	}

	result.EndTime = time.Now()
	s.log.ScanCompleted(len(result.Files), len(result.Errors), result.EndTime.Sub(result.StartTime))
	return result, nil
}

func (s *Scanner) scanFile(path string) FileResult {
	fr := FileResult{Path: path}

	opts := s.config.ParseOptions()
	key := OptionsKey(opts)

	cached, ok, err := s.state.Cached(path, key)
	if err != nil {
		s.log.StateError("check", err)
	}
	if ok {
		fr.Todos = cached.Todos
		fr.Open = cached.Open
		fr.Empty = cached.Empty
		s.log.Skipped(path, "unchanged")
		return fr
	}
	fr.Changed = true

	forest, err := ParseFile(path, opts, s.log)
	switch {
	case errors.Is(err, todo.ErrEmptyStream):
		fr.Empty = true
	case err != nil:
		fr.Err = fmt.Errorf("%s: %w", path, err)
		s.state.Forget(path)
		return fr
	}

	fr.Forest = forest
	fr.Todos = todo.Count(forest)
	fr.Open = todo.Open(forest)

	entry := state.FileState{Options: key, Todos: fr.Todos, Open: fr.Open, Empty: fr.Empty}
	if err := s.state.Update(path, entry); err != nil {
		s.log.StateError("update", err)
	}
	return fr
}

// OptionsKey identifies parser options in the scan state. Counts recorded
// under one key are not reused under another.
func OptionsKey(opts todo.Options) string {
	return fmt.Sprintf("min_depth=%d strict=%t max_nesting=%d", opts.MinDepth, opts.Strict, opts.MaxNesting)
}

// ParseFile reads a markdown file and parses its heading stream
func ParseFile(path string, opts todo.Options, l *logger.Logger) ([]todo.Node, error) {
	start := time.Now()

	doc, err := markdown.ReadFile(path)
	if err != nil {
		return nil, err
	}

	forest, err := todo.Parse(doc.Blocks, opts)
	if err != nil {
		if errors.Is(err, todo.ErrEmptyStream) {
			l.EmptyDocument(path)
		} else {
			l.ParseFailed(path, err)
		}
		return nil, err
	}

	l.DocumentParsed(path, todo.Count(forest), time.Since(start))
	return forest, nil
}

// ScanDirectory scans a directory for files with given extension,
// skipping paths that match any exclude pattern
func ScanDirectory(dir string, ext string, exclude []string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		if rel != "." && excluded(rel, exclude) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.IsDir() && filepath.Ext(path) == ext {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// excluded reports whether rel or its base name matches a pattern
func excluded(rel string, patterns []string) bool {
	base := filepath.Base(rel)
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// Totals sums the to-do counts across all files
func (r *Result) Totals() (todos, open int) {
	for _, f := range r.Files {
		todos += f.Todos
		open += f.Open
	}
	return todos, open
}

// String returns a human-readable summary of the scan result
func (r *Result) String() string {
	duration := r.EndTime.Sub(r.StartTime)
	todos, open := r.Totals()
	return fmt.Sprintf(
		"Scan complete: %d files, %d todos (%d open), %d errors (took %v)",
		len(r.Files),
		todos,
		open,
		len(r.Errors),
		duration.Round(time.Millisecond),
	)
}
