package object

// Hash is a 40-character hex-encoded SHA-1 digest.
type Hash string

// Valid reports whether h is exactly 40 lowercase hex characters.
func (h Hash) Valid() bool {
	if len(h) != 40 {
		return false
	}
	for i := 0; i < len(h); i++ {
		c := h[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// ObjectType identifies the kind of object stored. The set is closed:
// anything outside blob/tree/commit/tag is rejected at parse time.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
	TypeTag    ObjectType = "tag"
)

// ParseObjectType maps a type-tag string to its ObjectType.
func ParseObjectType(s string) (ObjectType, error) {
	switch ObjectType(s) {
	case TypeBlob, TypeTree, TypeCommit, TypeTag:
		return ObjectType(s), nil
	}
	return "", unknownTypeError(s)
}

const (
	// Tree mode constants compatible with Git's canonical mode strings.
	TreeModeDir        = "40000"
	TreeModeFile       = "100644"
	TreeModeExecutable = "100755"
)

// Object is the shared capability of all stored kinds: report the type tag
// and produce the canonical payload bytes. Framing and digest computation
// derive from these two methods alone (see Frame and HashOf), so every kind
// hashes through the exact same code path.
type Object interface {
	Type() ObjectType
	Marshal() []byte
}

// Blob holds raw file data.
type Blob struct {
	Data []byte
}

// TreeEntry is one entry in a tree object: a file or subtree reference.
type TreeEntry struct {
	Name string
	Mode string
	Hash Hash
}

// IsDir reports whether the entry references a subtree.
func (e TreeEntry) IsDir() bool {
	return e.Mode == TreeModeDir
}

// TreeObj holds tree entries. Marshal sorts them by Name, so insertion
// order never influences the digest.
type TreeObj struct {
	Entries []TreeEntry
}

// Signature identifies an author, committer, or tagger at a point in time.
type Signature struct {
	Name  string
	Email string
	When  int64  // unix seconds
	TZ    string // e.g. "+0200"
}

// CommitObj represents a commit pointing to a tree with metadata.
type CommitObj struct {
	TreeHash  Hash
	Parents   []Hash // empty for root commits, two or more for merges
	Author    Signature
	Committer Signature
	Message   string
}

// TagObj is an annotated tag: a named pointer at any stored object.
type TagObj struct {
	TargetHash Hash
	TargetType ObjectType
	Name       string
	Tagger     Signature
	Message    string
}

func (b *Blob) Type() ObjectType      { return TypeBlob }
func (tr *TreeObj) Type() ObjectType  { return TypeTree }
func (c *CommitObj) Type() ObjectType { return TypeCommit }
func (t *TagObj) Type() ObjectType    { return TypeTag }
