package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

const sampleLog = `L 08/06/2018 - 21:13:57: "Alice<1><[U:1:100]><Red>" say "hello"`

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkFindsMatchingFilesNonRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "match1.log", sampleLog)
	writeFile(t, dir, "match2.log", sampleLog)
	writeFile(t, dir, "notes.txt", "ignore me")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, filepath.Join("sub", "nested.log"), sampleLog)

	files, err := Walk(dir, Options{Log: zerolog.Nop()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("found %d files, want 2 (nested.log should be skipped non-recursively)", len(files))
	}
}

func TestWalkRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "top.log", sampleLog)
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, filepath.Join("sub", "nested.log"), sampleLog)

	files, err := Walk(dir, Options{Recursive: true, Log: zerolog.Nop()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("found %d files, want 2", len(files))
	}
}

func TestWalkJoinsErrorsFromUnparseableFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.log", sampleLog)
	writeFile(t, dir, "bad.log", "L not a log line at all, no timestamp shape\nL "+sampleLog[2:])

	files, err := Walk(dir, Options{Log: zerolog.Nop()})
	if err == nil {
		t.Fatal("expected an error from the unparseable file")
	}
	if len(files) != 1 {
		t.Fatalf("found %d good files, want 1 despite the bad file", len(files))
	}
}

func TestWalkEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	files, err := Walk(dir, Options{Log: zerolog.Nop()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("found %d files, want 0", len(files))
	}
}
