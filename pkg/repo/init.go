package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/oxid/pkg/object"
)

// ErrRepositoryExists is returned by Init when the target directory
// already holds a metadata directory.
var ErrRepositoryExists = errors.New("repository already exists")

// ErrRepositoryNotFound is returned by Open when no metadata directory is
// found between the starting path and the filesystem root.
var ErrRepositoryNotFound = errors.New("not an oxid repository (or any parent directory)")

const defaultDescription = "Unnamed oxid repository.\n"

// Init creates a new oxid repository at path. It creates the .git/
// directory structure: objects/ (with info/ and pack/ placeholders),
// refs/heads/, refs/tags/, HEAD, config, and description. Re-running
// against an initialized directory fails with ErrRepositoryExists rather
// than overwriting HEAD or config.
func Init(path string) (*Repo, error) {
	gitDir := filepath.Join(path, MetaDirName)

	if _, err := os.Stat(gitDir); err == nil {
		return nil, fmt.Errorf("init %s: %w", gitDir, ErrRepositoryExists)
	}

	dirs := []string{
		filepath.Join(gitDir, "objects"),
		filepath.Join(gitDir, "objects", "info"),
		filepath.Join(gitDir, "objects", "pack"),
		filepath.Join(gitDir, "refs", "heads"),
		filepath.Join(gitDir, "refs", "tags"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	headPath := filepath.Join(gitDir, "HEAD")
	if err := os.WriteFile(headPath, []byte("ref: refs/heads/main\n"), 0o644); err != nil {
		return nil, fmt.Errorf("init: write HEAD: %w", err)
	}

	descPath := filepath.Join(gitDir, "description")
	if err := os.WriteFile(descPath, []byte(defaultDescription), 0o644); err != nil {
		return nil, fmt.Errorf("init: write description: %w", err)
	}

	r := &Repo{
		RootDir: path,
		GitDir:  gitDir,
		Store:   object.NewStore(gitDir),
	}
	if err := r.WriteConfig(DefaultConfig()); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	return r, nil
}

// Open searches upward from path for a .git/ directory and opens the
// repository. The nearest enclosing repository wins; the walk stops at
// the filesystem root with ErrRepositoryNotFound.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		gitDir := filepath.Join(cur, MetaDirName)
		info, err := os.Stat(gitDir)
		if err == nil && info.IsDir() {
			return &Repo{
				RootDir: cur,
				GitDir:  gitDir,
				Store:   object.NewStore(gitDir),
			}, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("open %s: %w", abs, ErrRepositoryNotFound)
		}
		cur = parent
	}
}
