package object

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Signature
// ---------------------------------------------------------------------------

// String renders a signature in the canonical "Name <email> ts tz" form.
func (s Signature) String() string {
	return fmt.Sprintf("%s <%s> %d %s", s.Name, s.Email, s.When, s.TZ)
}

// parseSignature parses the canonical "Name <email> ts tz" form.
func parseSignature(val string) (Signature, error) {
	open := strings.LastIndex(val, " <")
	end := strings.LastIndex(val, ">")
	if open < 0 || end < open {
		return Signature{}, fmt.Errorf("%w: bad signature %q", ErrMalformedObject, val)
	}

	sig := Signature{
		Name:  val[:open],
		Email: val[open+2 : end],
	}

	rest := strings.TrimSpace(val[end+1:])
	tsStr, tz, _ := strings.Cut(rest, " ")
	ts, err := strconv.ParseInt(tsStr, 10, 64)
	if err != nil {
		return Signature{}, fmt.Errorf("%w: bad signature timestamp %q", ErrMalformedObject, tsStr)
	}
	sig.When = ts
	sig.TZ = tz
	return sig, nil
}

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// MarshalBlob serializes a Blob to raw bytes (identity).
func MarshalBlob(b *Blob) []byte {
	out := make([]byte, len(b.Data))
	copy(out, b.Data)
	return out
}

// UnmarshalBlob deserializes raw bytes into a Blob.
func UnmarshalBlob(data []byte) (*Blob, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return &Blob{Data: out}, nil
}

// ---------------------------------------------------------------------------
// TreeObj
// ---------------------------------------------------------------------------

// MarshalTree serializes a TreeObj. Entries are sorted by Name for
// deterministic output. Each entry is one line:
//
//	mode hash name
//
// where mode is a Git-compatible mode string (40000, 100644, 100755) and
// hash is the 40-hex digest of the referenced blob or subtree.
func MarshalTree(tr *TreeObj) []byte {
	sorted := make([]TreeEntry, len(tr.Entries))
	copy(sorted, tr.Entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	var buf bytes.Buffer
	for _, e := range sorted {
		mode := e.Mode
		if strings.TrimSpace(mode) == "" {
			mode = TreeModeFile
		}
		fmt.Fprintf(&buf, "%s %s %s\n", mode, string(e.Hash), e.Name)
	}
	return buf.Bytes()
}

// Validate checks that every entry survives the canonical encoding: a
// known mode (blank marshals as a regular file) and a 40-hex hash. The
// store refuses to write trees that would fail their own decode.
func (tr *TreeObj) Validate() error {
	for _, e := range tr.Entries {
		switch e.Mode {
		case TreeModeDir, TreeModeFile, TreeModeExecutable, "":
		default:
			return fmt.Errorf("%w: tree entry %q mode %q", ErrMalformedObject, e.Name, e.Mode)
		}
		if !e.Hash.Valid() {
			return fmt.Errorf("%w: tree entry %q hash %q", ErrMalformedObject, e.Name, e.Hash)
		}
	}
	return nil
}

// UnmarshalTree parses a TreeObj from its serialized form.
func UnmarshalTree(data []byte) (*TreeObj, error) {
	tr := &TreeObj{}
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return tr, nil
	}
	for _, line := range strings.Split(text, "\n") {
		parts := strings.SplitN(line, " ", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: tree entry %q", ErrMalformedObject, line)
		}
		mode := parts[0]
		switch mode {
		case TreeModeDir, TreeModeFile, TreeModeExecutable:
		default:
			return nil, fmt.Errorf("%w: tree entry mode %q", ErrMalformedObject, mode)
		}
		h := Hash(parts[1])
		if !h.Valid() {
			return nil, fmt.Errorf("%w: tree entry hash %q", ErrMalformedObject, parts[1])
		}
		tr.Entries = append(tr.Entries, TreeEntry{
			Name: parts[2],
			Mode: mode,
			Hash: h,
		})
	}
	return tr, nil
}

// ---------------------------------------------------------------------------
// CommitObj
// ---------------------------------------------------------------------------

// MarshalCommit serializes a CommitObj in the conventional text layout:
//
//	tree H
//	parent H     (zero or more)
//	author Name <email> ts tz
//	committer Name <email> ts tz
//
//	message
func MarshalCommit(c *CommitObj) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", string(c.TreeHash))
	for _, p := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", string(p))
	}
	fmt.Fprintf(&buf, "author %s\n", c.Author)
	fmt.Fprintf(&buf, "committer %s\n", c.Committer)
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return buf.Bytes()
}

// UnmarshalCommit parses a CommitObj from its serialized form.
func UnmarshalCommit(data []byte) (*CommitObj, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("%w: commit missing header/message separator", ErrMalformedObject)
	}
	header := string(data[:idx])
	message := string(data[idx+2:])

	c := &CommitObj{Message: message}
	var sawTree, sawAuthor, sawCommitter bool
	for _, line := range strings.Split(header, "\n") {
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("%w: commit header line %q", ErrMalformedObject, line)
		}
		switch key {
		case "tree":
			if !Hash(val).Valid() {
				return nil, fmt.Errorf("%w: commit tree hash %q", ErrMalformedObject, val)
			}
			c.TreeHash = Hash(val)
			sawTree = true
		case "parent":
			if !Hash(val).Valid() {
				return nil, fmt.Errorf("%w: commit parent hash %q", ErrMalformedObject, val)
			}
			c.Parents = append(c.Parents, Hash(val))
		case "author":
			sig, err := parseSignature(val)
			if err != nil {
				return nil, err
			}
			c.Author = sig
			sawAuthor = true
		case "committer":
			sig, err := parseSignature(val)
			if err != nil {
				return nil, err
			}
			c.Committer = sig
			sawCommitter = true
		default:
			return nil, fmt.Errorf("%w: commit header key %q", ErrMalformedObject, key)
		}
	}

	if !sawTree {
		return nil, fmt.Errorf("%w: commit missing tree", ErrMalformedObject)
	}
	if !sawAuthor {
		return nil, fmt.Errorf("%w: commit missing author", ErrMalformedObject)
	}
	if !sawCommitter {
		return nil, fmt.Errorf("%w: commit missing committer", ErrMalformedObject)
	}
	return c, nil
}

// ---------------------------------------------------------------------------
// TagObj
// ---------------------------------------------------------------------------

// MarshalTag serializes a TagObj:
//
//	object H
//	type T
//	tag NAME
//	tagger Name <email> ts tz
//
//	message
func MarshalTag(t *TagObj) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "object %s\n", string(t.TargetHash))
	fmt.Fprintf(&buf, "type %s\n", t.TargetType)
	fmt.Fprintf(&buf, "tag %s\n", t.Name)
	fmt.Fprintf(&buf, "tagger %s\n", t.Tagger)
	buf.WriteByte('\n')
	buf.WriteString(t.Message)
	return buf.Bytes()
}

// UnmarshalTag parses a TagObj from its serialized form.
func UnmarshalTag(data []byte) (*TagObj, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("%w: tag missing header/message separator", ErrMalformedObject)
	}
	header := string(data[:idx])
	message := string(data[idx+2:])

	t := &TagObj{Message: message}
	var sawObject, sawType bool
	for _, line := range strings.Split(header, "\n") {
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("%w: tag header line %q", ErrMalformedObject, line)
		}
		switch key {
		case "object":
			if !Hash(val).Valid() {
				return nil, fmt.Errorf("%w: tag object hash %q", ErrMalformedObject, val)
			}
			t.TargetHash = Hash(val)
			sawObject = true
		case "type":
			objType, err := ParseObjectType(val)
			if err != nil {
				return nil, err
			}
			t.TargetType = objType
			sawType = true
		case "tag":
			t.Name = val
		case "tagger":
			sig, err := parseSignature(val)
			if err != nil {
				return nil, err
			}
			t.Tagger = sig
		default:
			return nil, fmt.Errorf("%w: tag header key %q", ErrMalformedObject, key)
		}
	}

	if !sawObject {
		return nil, fmt.Errorf("%w: tag missing object", ErrMalformedObject)
	}
	if !sawType {
		return nil, fmt.Errorf("%w: tag missing type", ErrMalformedObject)
	}
	return t, nil
}

// ---------------------------------------------------------------------------
// Object interface plumbing
// ---------------------------------------------------------------------------

func (b *Blob) Marshal() []byte      { return MarshalBlob(b) }
func (tr *TreeObj) Marshal() []byte  { return MarshalTree(tr) }
func (c *CommitObj) Marshal() []byte { return MarshalCommit(c) }
func (t *TagObj) Marshal() []byte    { return MarshalTag(t) }

// Decode dispatches payload parsing on the declared type tag and returns
// the concrete kind behind the Object interface.
func Decode(objType ObjectType, payload []byte) (Object, error) {
	switch objType {
	case TypeBlob:
		return UnmarshalBlob(payload)
	case TypeTree:
		return UnmarshalTree(payload)
	case TypeCommit:
		return UnmarshalCommit(payload)
	case TypeTag:
		return UnmarshalTag(payload)
	}
	return nil, unknownTypeError(string(objType))
}
