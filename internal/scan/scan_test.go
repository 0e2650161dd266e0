package scan

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gerunddev/todotree/internal/config"
	"github.com/gerunddev/todotree/internal/logger"
	"github.com/gerunddev/todotree/internal/state"
	"github.com/gerunddev/todotree/internal/todo"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestScanDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.md"), "# (TODO) a")
	writeFile(t, filepath.Join(tmpDir, "notes.txt"), "not markdown")
	writeFile(t, filepath.Join(tmpDir, "sub", "b.md"), "# (TODO) b")
	writeFile(t, filepath.Join(tmpDir, "archive", "old.md"), "# (DONE) old")
	writeFile(t, filepath.Join(tmpDir, "draft-c.md"), "# (TODO) c")

	tests := []struct {
		name    string
		exclude []string
		want    []string
	}{
		{
			name: "all markdown files",
			want: []string{"a.md", "archive/old.md", "draft-c.md", "sub/b.md"},
		},
		{
			name:    "exclude directory",
			exclude: []string{"archive"},
			want:    []string{"a.md", "draft-c.md", "sub/b.md"},
		},
		{
			name:    "exclude by base name",
			exclude: []string{"draft-*"},
			want:    []string{"a.md", "archive/old.md", "sub/b.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := ScanDirectory(tmpDir, ".md", tt.exclude)
			if err != nil {
				t.Fatalf("ScanDirectory failed: %v", err)
			}

			var got []string
			for _, f := range files {
				rel, _ := filepath.Rel(tmpDir, f)
				got = append(got, filepath.ToSlash(rel))
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("ScanDirectory() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanDirectoryMissing(t *testing.T) {
	if _, err := ScanDirectory(filepath.Join(t.TempDir(), "missing"), ".md", nil); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestScan(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "project.md"), `# (TODO) Ship

## (DONE) Write parser

## (WAITING) Review
`)
	writeFile(t, filepath.Join(tmpDir, "empty.md"), "")
	writeFile(t, filepath.Join(tmpDir, "broken.md"), "# (TODO) [link](http://example.com)\n")

	cfg := config.DefaultConfig()
	st := state.NewState()
	scanner := NewScanner(cfg, st)

	var logBuf bytes.Buffer
	scanner.SetLogger(logger.New(&logBuf))

	result, err := scanner.Scan(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(result.Files) != 3 {
		t.Fatalf("Expected 3 files, got %d", len(result.Files))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Expected 1 error, got %v", result.Errors)
	}
	if !errors.Is(result.Errors[0], todo.ErrNoTextInHeading) {
		t.Errorf("Expected ErrNoTextInHeading, got %v", result.Errors[0])
	}

	byName := make(map[string]FileResult)
	for _, f := range result.Files {
		byName[filepath.Base(f.Path)] = f
	}

	project := byName["project.md"]
	if project.Todos != 3 || project.Open != 2 {
		t.Errorf("project.md counts = %d/%d, want 3/2", project.Todos, project.Open)
	}
	if !project.Changed || len(project.Forest) != 1 {
		t.Errorf("project.md should be parsed on first scan: %+v", project)
	}
	if !byName["empty.md"].Empty || byName["empty.md"].Err != nil {
		t.Errorf("empty.md should be reported as empty: %+v", byName["empty.md"])
	}

	// Failed files are not cached
	if st.Files[filepath.Join(tmpDir, "broken.md")] != nil {
		t.Error("Failed file should not be recorded in state")
	}
	if st.Files[filepath.Join(tmpDir, "project.md")] == nil {
		t.Error("Parsed file should be recorded in state")
	}

	logOutput := logBuf.String()
	if !strings.Contains(logOutput, "parse failed") {
		t.Errorf("Expected 'parse failed' log message, got: %s", logOutput)
	}
	if !strings.Contains(logOutput, "scan completed") {
		t.Errorf("Expected 'scan completed' log message, got: %s", logOutput)
	}

	todos, open := result.Totals()
	if todos != 3 || open != 2 {
		t.Errorf("Totals() = %d/%d, want 3/2", todos, open)
	}
	if !strings.Contains(result.String(), "3 files, 3 todos (2 open), 1 errors") {
		t.Errorf("Unexpected summary: %s", result.String())
	}
}

func TestScanUsesCachedCounts(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "todo.md")
	writeFile(t, path, "# (TODO) one\n\n# (DONE) two\n")

	st := state.NewState()
	scanner := NewScanner(config.DefaultConfig(), st)

	if _, err := scanner.Scan(context.Background(), tmpDir); err != nil {
		t.Fatalf("First scan failed: %v", err)
	}

	result, err := scanner.Scan(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("Second scan failed: %v", err)
	}

	fr := result.Files[0]
	if fr.Changed {
		t.Error("Unchanged file should not be marked as changed")
	}
	if fr.Forest != nil {
		t.Error("Unchanged file should not be reparsed")
	}
	if fr.Todos != 2 || fr.Open != 1 {
		t.Errorf("Cached counts = %d/%d, want 2/1", fr.Todos, fr.Open)
	}
}

func TestScanReparsesWhenOptionsChange(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "todo.md"), "# top\n## nested\n")

	st := state.NewState()
	cfg := config.DefaultConfig()

	result, err := NewScanner(cfg, st).Scan(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("First scan failed: %v", err)
	}
	if result.Files[0].Todos != 2 {
		t.Fatalf("Todos at min_depth 1 = %d, want 2", result.Files[0].Todos)
	}

	cfg.MinDepth = 2
	result, err = NewScanner(cfg, st).Scan(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("Second scan failed: %v", err)
	}
	fr := result.Files[0]
	if !fr.Changed {
		t.Error("File scanned with different options should be reparsed")
	}
	if fr.Todos != 0 {
		t.Errorf("Todos at min_depth 2 = %d, want 0", fr.Todos)
	}

	cfg.Strict = true
	result, err = NewScanner(cfg, st).Scan(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("Strict scan failed: %v", err)
	}
	if len(result.Errors) != 1 || !errors.Is(result.Errors[0], todo.ErrTrailingContent) {
		t.Errorf("Expected trailing content error under strict, got %v", result.Errors)
	}
}

func TestScanKeepsEmptyFlagWhenCached(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "empty.md"), "")

	scanner := NewScanner(config.DefaultConfig(), state.NewState())
	for i := 0; i < 2; i++ {
		result, err := scanner.Scan(context.Background(), tmpDir)
		if err != nil {
			t.Fatalf("Scan %d failed: %v", i+1, err)
		}
		if !result.Files[0].Empty {
			t.Errorf("Scan %d: empty file not reported as empty", i+1)
		}
	}
}

func TestScanStrict(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "todo.md"), "## (TODO) child\n\n# (TODO) top\n")

	cfg := config.DefaultConfig()
	cfg.MinDepth = 2
	cfg.Strict = true

	result, err := NewScanner(cfg, state.NewState()).Scan(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(result.Errors) != 1 || !errors.Is(result.Errors[0], todo.ErrTrailingContent) {
		t.Errorf("Expected trailing content error, got %v", result.Errors)
	}
}

func TestScanCancelled(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "todo.md"), "# (TODO) one\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewScanner(config.DefaultConfig(), state.NewState()).Scan(ctx, tmpDir)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if len(result.Files) != 0 {
		t.Errorf("Expected no files after cancel, got %d", len(result.Files))
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.md")
	writeFile(t, path, "# (TODO) Ship (DEADLINE: 2024-06-01)\n")

	forest, err := ParseFile(path, todo.DefaultOptions(), logger.Discard())
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(forest) != 1 || forest[0].Title != "Ship" || forest[0].Deadline != "2024-06-01" {
		t.Errorf("Unexpected forest: %+v", forest)
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.md"), todo.DefaultOptions(), logger.Discard()); err == nil {
		t.Error("Expected error for missing file")
	}
}
