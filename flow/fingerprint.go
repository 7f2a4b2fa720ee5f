package flow

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
)

// Digest identifies emitted source by content. Because emission is a pure
// function of the immutable value, structurally equal constructs share a
// digest.
type Digest [sha256.Size]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether the digest is unset.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

type hashSink struct {
	h hash.Hash
}

func (s hashSink) WriteString(str string) (int, error) {
	return s.h.Write([]byte(str))
}

// Fingerprint renders c straight into a SHA-256 state and returns the
// digest, without buffering the text. It fails exactly when Render would.
func Fingerprint(c Code) (Digest, error) {
	h := sha256.New()
	if err := RenderTo(hashSink{h: h}, c); err != nil {
		return Digest{}, err
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}
