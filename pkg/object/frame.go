package object

import (
	"bytes"
	"fmt"
	"strconv"
)

// Frame wraps payload bytes in the canonical envelope "type len\0content".
// The framed bytes are what gets hashed and what gets stored on disk
// (compressed), so the length must be the exact payload byte count.
func Frame(objType ObjectType, payload []byte) []byte {
	header := fmt.Sprintf("%s %d\x00", objType, len(payload))
	out := make([]byte, 0, len(header)+len(payload))
	out = append(out, header...)
	return append(out, payload...)
}

// Unframe parses an envelope back into its type and payload. The declared
// length must match the remaining byte count exactly.
func Unframe(data []byte) (ObjectType, []byte, error) {
	nulIdx := bytes.IndexByte(data, 0)
	if nulIdx < 0 {
		return "", nil, fmt.Errorf("%w: no NUL after header", ErrMalformedObject)
	}
	payload := data[nulIdx+1:]

	tag, lenStr, ok := bytes.Cut(data[:nulIdx], []byte(" "))
	if !ok {
		return "", nil, fmt.Errorf("%w: invalid header %q", ErrMalformedObject, string(data[:nulIdx]))
	}

	objType, err := ParseObjectType(string(tag))
	if err != nil {
		return "", nil, err
	}

	length, err := strconv.Atoi(string(lenStr))
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid length %q", ErrMalformedObject, string(lenStr))
	}
	if length != len(payload) {
		return "", nil, fmt.Errorf(
			"%w: length mismatch (header=%d, actual=%d)",
			ErrMalformedObject, length, len(payload),
		)
	}

	return objType, payload, nil
}
