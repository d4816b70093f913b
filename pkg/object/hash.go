package object

import (
	"encoding/hex"

	"github.com/pjbgf/sha1cd"
)

// HashBytes computes the SHA-1 hash of data and returns it as a lowercase
// hex-encoded Hash. Uses the collision-detecting sha1cd implementation.
func HashBytes(data []byte) Hash {
	h := sha1cd.New()
	h.Write(data)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// HashObject computes the SHA-1 of the envelope "type len\0content". This
// is the only digest derivation in the package: every object kind hashes
// through it, so no variant can diverge from the framing.
func HashObject(objType ObjectType, data []byte) Hash {
	return HashBytes(Frame(objType, data))
}

// HashOf computes the content hash of any Object.
func HashOf(o Object) Hash {
	return HashObject(o.Type(), o.Marshal())
}
