package repo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func assertDir(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected directory %s: %v", path, err)
	}
	if !info.IsDir() {
		t.Fatalf("%s is not a directory", path)
	}
}

func assertFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected file %s: %v", path, err)
	}
	if info.IsDir() {
		t.Fatalf("%s is a directory, want file", path)
	}
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()

	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init(%q): %v", dir, err)
	}
	if r.RootDir != dir {
		t.Errorf("RootDir = %q, want %q", r.RootDir, dir)
	}

	gitDir := filepath.Join(dir, ".git")
	if r.GitDir != gitDir {
		t.Errorf("GitDir = %q, want %q", r.GitDir, gitDir)
	}

	assertDir(t, gitDir)
	assertDir(t, filepath.Join(gitDir, "objects"))
	assertDir(t, filepath.Join(gitDir, "objects", "info"))
	assertDir(t, filepath.Join(gitDir, "objects", "pack"))
	assertDir(t, filepath.Join(gitDir, "refs", "heads"))
	assertDir(t, filepath.Join(gitDir, "refs", "tags"))
	assertFile(t, filepath.Join(gitDir, "HEAD"))
	assertFile(t, filepath.Join(gitDir, "config"))
	assertFile(t, filepath.Join(gitDir, "description"))

	if r.Store == nil {
		t.Error("Store is nil after Init")
	}
}

func TestInit_WritesSymbolicHEAD(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(r.GitDir, "HEAD"))
	if err != nil {
		t.Fatalf("read HEAD: %v", err)
	}
	if string(data) != "ref: refs/heads/main\n" {
		t.Errorf("HEAD = %q, want %q", data, "ref: refs/heads/main\n")
	}

	head, err := r.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if head != "refs/heads/main" {
		t.Errorf("Head() = %q, want refs/heads/main", head)
	}
}

// Re-running Init must refuse instead of overwriting HEAD/config.
func TestInit_ExistingRepo_Error(t *testing.T) {
	dir := t.TempDir()
	if _, err := Init(dir); err != nil {
		t.Fatalf("first Init: %v", err)
	}

	headPath := filepath.Join(dir, ".git", "HEAD")
	if err := os.WriteFile(headPath, []byte("ref: refs/heads/work\n"), 0o644); err != nil {
		t.Fatalf("write HEAD: %v", err)
	}

	_, err := Init(dir)
	if !errors.Is(err, ErrRepositoryExists) {
		t.Fatalf("second Init: got %v, want ErrRepositoryExists", err)
	}

	data, err := os.ReadFile(headPath)
	if err != nil {
		t.Fatalf("read HEAD: %v", err)
	}
	if string(data) != "ref: refs/heads/work\n" {
		t.Errorf("failed Init modified HEAD: %q", data)
	}
}

func TestOpen_FindsRepositoryFromSubdir(t *testing.T) {
	dir := t.TempDir()
	if _, err := Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}

	subdir := filepath.Join(dir, "a", "b", "c")
	if err := os.MkdirAll(subdir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	r, err := Open(subdir)
	if err != nil {
		t.Fatalf("Open(%q): %v", subdir, err)
	}
	if r.RootDir != dir {
		t.Errorf("RootDir = %q, want %q", r.RootDir, dir)
	}
	if r.GitDir != filepath.Join(dir, ".git") {
		t.Errorf("GitDir = %q", r.GitDir)
	}
}

// With nested repositories, the nearest enclosing one wins.
func TestOpen_NearestRepositoryWins(t *testing.T) {
	outer := t.TempDir()
	if _, err := Init(outer); err != nil {
		t.Fatalf("Init outer: %v", err)
	}

	inner := filepath.Join(outer, "b")
	if err := os.MkdirAll(inner, 0o755); err != nil {
		t.Fatalf("mkdir inner: %v", err)
	}
	if _, err := Init(inner); err != nil {
		t.Fatalf("Init inner: %v", err)
	}

	start := filepath.Join(inner, "c")
	if err := os.MkdirAll(start, 0o755); err != nil {
		t.Fatalf("mkdir start: %v", err)
	}

	r, err := Open(start)
	if err != nil {
		t.Fatalf("Open(%q): %v", start, err)
	}
	if r.RootDir != inner {
		t.Errorf("RootDir = %q, want nearest repo %q", r.RootDir, inner)
	}
}

func TestOpen_NoRepository_Error(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(dir)
	if !errors.Is(err, ErrRepositoryNotFound) {
		t.Fatalf("Open: got %v, want ErrRepositoryNotFound", err)
	}
	if !strings.Contains(err.Error(), dir) {
		t.Errorf("error %q does not mention the starting path", err)
	}
}
