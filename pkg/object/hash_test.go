package object

import "testing"

func TestHashBytesDeterminism(t *testing.T) {
	data := []byte("hello world")
	h1 := HashBytes(data)
	h2 := HashBytes(data)
	if h1 != h2 {
		t.Errorf("HashBytes not deterministic: %q != %q", h1, h2)
	}
	if len(h1) != 40 {
		t.Errorf("Hash length: got %d, want 40", len(h1))
	}
	if !h1.Valid() {
		t.Errorf("HashBytes produced invalid hash %q", h1)
	}
}

func TestHashBytesEmptyInput(t *testing.T) {
	h := HashBytes(nil)
	if len(h) != 40 {
		t.Errorf("Hash length for empty input: got %d, want 40", len(h))
	}
}

func TestHashBytesDifferentInput(t *testing.T) {
	h1 := HashBytes([]byte("aaa"))
	h2 := HashBytes([]byte("bbb"))
	if h1 == h2 {
		t.Error("Different inputs produced same hash")
	}
}

func TestHashObjectEnvelope(t *testing.T) {
	data := []byte("hello")
	h1 := HashObject(TypeBlob, data)
	h2 := HashBytes(data)
	if h1 == h2 {
		t.Error("HashObject should differ from HashBytes due to envelope")
	}

	// Same type+data => same hash
	h3 := HashObject(TypeBlob, data)
	if h1 != h3 {
		t.Error("HashObject not deterministic")
	}

	// Different type => different hash
	h4 := HashObject(TypeTag, data)
	if h1 == h4 {
		t.Error("Different types should produce different hashes")
	}
}

// The digest of the framed 12-byte blob "Hello World\n" must match git's.
func TestHashObjectKnownVector(t *testing.T) {
	h := HashObject(TypeBlob, []byte("Hello World\n"))
	want := Hash("557db03de997c86a4a028e1ebd3a1ceb225be238")
	if h != want {
		t.Errorf("blob digest: got %s, want %s", h, want)
	}
}

func TestHashOfMatchesHashObject(t *testing.T) {
	b := &Blob{Data: []byte("Hello World")}
	if HashOf(b) != HashObject(TypeBlob, b.Marshal()) {
		t.Error("HashOf diverged from HashObject")
	}
}

func TestHashValid(t *testing.T) {
	cases := []struct {
		h    Hash
		want bool
	}{
		{"557db03de997c86a4a028e1ebd3a1ceb225be238", true},
		{"557db03de997c86a4a028e1ebd3a1ceb225be23", false},   // 39 chars
		{"557db03de997c86a4a028e1ebd3a1ceb225be2388", false}, // 41 chars
		{"557DB03de997c86a4a028e1ebd3a1ceb225be238", false},  // uppercase
		{"zz7db03de997c86a4a028e1ebd3a1ceb225be238", false},  // non-hex
		{"", false},
	}
	for _, c := range cases {
		if got := c.h.Valid(); got != c.want {
			t.Errorf("Hash(%q).Valid() = %v, want %v", c.h, got, c.want)
		}
	}
}
