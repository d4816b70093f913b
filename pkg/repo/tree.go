package repo

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/odvcencio/oxid/pkg/object"
)

// StageEntry is one staged file as supplied by the staging layer: a
// forward-slash path, a tree mode string, and the blob hash of the
// staged content.
type StageEntry struct {
	Path string
	Mode string
	Hash object.Hash
}

// TreeFileEntry represents a single file in a flattened tree.
type TreeFileEntry struct {
	Path string
	Mode string
	Hash object.Hash
}

// BuildTree converts flat staged entries into a hierarchical tree
// structure, writing TreeObj objects to the store and returning the root
// hash.
//
// Entries use forward-slash paths (e.g. "pkg/util/util.go"). BuildTree
// groups them by directory, recursively creates subtrees, and returns the
// root tree hash.
func (r *Repo) BuildTree(entries []StageEntry) (object.Hash, error) {
	byPath := make(map[string]StageEntry, len(entries))
	for _, e := range entries {
		byPath[e.Path] = e
	}
	return r.buildTreeDir(byPath, "")
}

// buildTreeDir builds a TreeObj for the given directory prefix and writes
// it to the store. It returns the tree's hash.
func (r *Repo) buildTreeDir(byPath map[string]StageEntry, prefix string) (object.Hash, error) {
	// Collect direct children: files and subdirectory names.
	files := make(map[string]StageEntry) // name -> entry
	subdirs := make(map[string]struct{}) // immediate child dir names

	for p, entry := range byPath {
		var rel string
		if prefix == "" {
			rel = p
		} else {
			if !strings.HasPrefix(p, prefix+"/") {
				continue
			}
			rel = p[len(prefix)+1:]
		}

		slash := strings.IndexByte(rel, '/')
		if slash < 0 {
			files[rel] = entry
		} else {
			subdirs[rel[:slash]] = struct{}{}
		}
	}

	names := make([]string, 0, len(files)+len(subdirs))
	for name := range files {
		names = append(names, name)
	}
	for name := range subdirs {
		// A name cannot be both a file and a directory. Dropping either
		// side would silently lose staged content, so refuse the input.
		if _, isFile := files[name]; isFile {
			conflict := name
			if prefix != "" {
				conflict = prefix + "/" + name
			}
			return "", fmt.Errorf("build tree: path %q staged as both file and directory", conflict)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var treeEntries []object.TreeEntry
	for _, name := range names {
		if entry, isFile := files[name]; isFile {
			treeEntries = append(treeEntries, object.TreeEntry{
				Name: name,
				Mode: normalizeFileMode(entry.Mode),
				Hash: entry.Hash,
			})
		} else {
			childPrefix := name
			if prefix != "" {
				childPrefix = prefix + "/" + name
			}
			subHash, err := r.buildTreeDir(byPath, childPrefix)
			if err != nil {
				return "", fmt.Errorf("build tree %q: %w", childPrefix, err)
			}
			treeEntries = append(treeEntries, object.TreeEntry{
				Name: name,
				Mode: object.TreeModeDir,
				Hash: subHash,
			})
		}
	}

	h, err := r.Store.WriteTree(&object.TreeObj{Entries: treeEntries})
	if err != nil {
		return "", fmt.Errorf("write tree (prefix=%q): %w", prefix, err)
	}
	return h, nil
}

// FlattenTree walks a tree object recursively, returning all file entries
// with their full paths (using forward slashes).
func (r *Repo) FlattenTree(h object.Hash) ([]TreeFileEntry, error) {
	return r.flattenTreeRec(h, "")
}

func (r *Repo) flattenTreeRec(h object.Hash, prefix string) ([]TreeFileEntry, error) {
	treeObj, err := r.Store.ReadTree(h)
	if err != nil {
		return nil, fmt.Errorf("flatten tree: read %s: %w", h, err)
	}

	var result []TreeFileEntry
	for _, entry := range treeObj.Entries {
		fullPath := entry.Name
		if prefix != "" {
			fullPath = path.Join(prefix, entry.Name)
		}

		if entry.IsDir() {
			sub, err := r.flattenTreeRec(entry.Hash, fullPath)
			if err != nil {
				return nil, err
			}
			result = append(result, sub...)
		} else {
			result = append(result, TreeFileEntry{
				Path: fullPath,
				Mode: entry.Mode,
				Hash: entry.Hash,
			})
		}
	}
	return result, nil
}

func normalizeFileMode(mode string) string {
	if mode == object.TreeModeExecutable {
		return object.TreeModeExecutable
	}
	return object.TreeModeFile
}
