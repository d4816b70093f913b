package repo

import (
	"fmt"
	"strings"
	"time"

	"github.com/odvcencio/oxid/pkg/object"
)

// Commit stores a commit pointing at treeHash and advances the current
// branch ref.
//
//  1. Resolve HEAD to get the parent commit hash (none for a root commit)
//  2. Create a CommitObj with tree hash, parent, identity, and message
//  3. Write the commit to the store
//  4. Update the current branch ref (or detached HEAD) to the new hash
func (r *Repo) Commit(treeHash object.Hash, message string, who object.Signature) (object.Hash, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("commit: message is required")
	}

	var parents []object.Hash
	if parentHash, err := r.ResolveRef("HEAD"); err == nil && parentHash != "" {
		parents = append(parents, parentHash)
	}
	// HEAD resolution failing is fine: first commit, no ref file yet.

	commitObj := &object.CommitObj{
		TreeHash:  treeHash,
		Parents:   parents,
		Author:    who,
		Committer: who,
		Message:   message,
	}

	commitHash, err := r.Store.WriteCommit(commitObj)
	if err != nil {
		return "", fmt.Errorf("commit: write commit: %w", err)
	}

	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("commit: read HEAD: %w", err)
	}
	if strings.HasPrefix(head, "refs/") {
		if err := r.UpdateRef(head, commitHash); err != nil {
			return "", fmt.Errorf("commit: %w", err)
		}
	} else {
		// Detached HEAD: point HEAD at the new commit directly.
		if err := r.UpdateRef("HEAD", commitHash); err != nil {
			return "", fmt.Errorf("commit: update detached HEAD: %w", err)
		}
	}

	return commitHash, nil
}

// NewSignature builds a Signature for the local identity at time now.
func NewSignature(name, email string, now time.Time) object.Signature {
	return object.Signature{
		Name:  name,
		Email: email,
		When:  now.Unix(),
		TZ:    formatTimezoneOffset(now),
	}
}

// Log walks the commit history starting from the given hash, following
// first-parent links, returning up to limit commits newest first.
func (r *Repo) Log(start object.Hash, limit int) ([]*object.CommitObj, error) {
	var commits []*object.CommitObj
	current := start

	for len(commits) < limit {
		c, err := r.Store.ReadCommit(current)
		if err != nil {
			return nil, fmt.Errorf("log: read commit %s: %w", current, err)
		}
		commits = append(commits, c)

		if len(c.Parents) == 0 {
			break
		}
		current = c.Parents[0]
	}

	return commits, nil
}

func formatTimezoneOffset(t time.Time) string {
	_, offset := t.Zone()
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	hours := offset / 3600
	minutes := (offset % 3600) / 60
	return fmt.Sprintf("%s%02d%02d", sign, hours, minutes)
}
