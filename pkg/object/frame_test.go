package object

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func TestFrameUnframeRoundTrip(t *testing.T) {
	payloads := [][]byte{
		nil,
		[]byte("Hello World"),
		{0x00, 0x01, 0x02},
		bytes.Repeat([]byte("x"), 4096),
	}
	types := []ObjectType{TypeBlob, TypeTree, TypeCommit, TypeTag}

	for _, objType := range types {
		for _, payload := range payloads {
			framed := Frame(objType, payload)
			gotType, gotPayload, err := Unframe(framed)
			if err != nil {
				t.Fatalf("Unframe(Frame(%s, %d bytes)): %v", objType, len(payload), err)
			}
			if gotType != objType {
				t.Errorf("Type: got %q, want %q", gotType, objType)
			}
			if !bytes.Equal(gotPayload, payload) {
				t.Errorf("Payload mismatch for type %s", objType)
			}
		}
	}
}

func TestFrameLayout(t *testing.T) {
	framed := Frame(TypeBlob, []byte("Hello World"))
	want := []byte("blob 11\x00Hello World")
	if !bytes.Equal(framed, want) {
		t.Errorf("Frame: got %q, want %q", framed, want)
	}
}

func TestUnframeMissingNUL(t *testing.T) {
	_, _, err := Unframe([]byte("blob 11 Hello World"))
	if !errors.Is(err, ErrMalformedObject) {
		t.Errorf("missing NUL: got %v, want ErrMalformedObject", err)
	}
}

func TestUnframeMissingSpace(t *testing.T) {
	_, _, err := Unframe([]byte("blob11\x00Hello World"))
	if !errors.Is(err, ErrMalformedObject) {
		t.Errorf("missing space: got %v, want ErrMalformedObject", err)
	}
}

func TestUnframeNonNumericLength(t *testing.T) {
	_, _, err := Unframe([]byte("blob eleven\x00Hello World"))
	if !errors.Is(err, ErrMalformedObject) {
		t.Errorf("non-numeric length: got %v, want ErrMalformedObject", err)
	}
}

func TestUnframeTamperedLength(t *testing.T) {
	framed := Frame(TypeBlob, []byte("Hello World"))
	tampered := bytes.Replace(framed, []byte("blob 11"), []byte("blob 12"), 1)
	_, _, err := Unframe(tampered)
	if !errors.Is(err, ErrMalformedObject) {
		t.Errorf("tampered length: got %v, want ErrMalformedObject", err)
	}
}

func TestUnframeUnknownType(t *testing.T) {
	_, _, err := Unframe([]byte(fmt.Sprintf("widget %d\x00payload", len("payload"))))
	if !errors.Is(err, ErrUnknownObjectType) {
		t.Errorf("unknown type: got %v, want ErrUnknownObjectType", err)
	}
}

func TestParseObjectType(t *testing.T) {
	for _, tag := range []string{"blob", "tree", "commit", "tag"} {
		objType, err := ParseObjectType(tag)
		if err != nil {
			t.Errorf("ParseObjectType(%q): %v", tag, err)
		}
		if string(objType) != tag {
			t.Errorf("ParseObjectType(%q) = %q", tag, objType)
		}
	}

	for _, tag := range []string{"widget", "", "Blob", "BLOB", "blobs"} {
		_, err := ParseObjectType(tag)
		if !errors.Is(err, ErrUnknownObjectType) {
			t.Errorf("ParseObjectType(%q): got %v, want ErrUnknownObjectType", tag, err)
		}
	}
}
