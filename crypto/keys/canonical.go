package keys

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
)

// IsCanonicalEcdsa reports whether an r || s || v signature has r and s in
// [1, N-1] and s in the lower half of the curve order. Only canonical
// signatures verify, so a relayed proof cannot be re-encoded into a second
// valid form.
func IsCanonicalEcdsa(sig []byte) bool {
	if len(sig) != EcdsaSignatureLength {
		return false
	}
	var r, s btcec.ModNScalar
	if overflow := r.SetByteSlice(sig[:32]); overflow || r.IsZero() {
		return false
	}
	if overflow := s.SetByteSlice(sig[32:64]); overflow || s.IsZero() {
		return false
	}
	return !s.IsOverHalfOrder()
}

// CanonicalizeEcdsa maps s to N - s when it lies in the upper half and flips
// the recovery id, so the result recovers the same public key.
func CanonicalizeEcdsa(sig []byte) ([]byte, error) {
	if len(sig) != EcdsaSignatureLength {
		return nil, fmt.Errorf("malformed signature: not the correct size")
	}
	var r, s btcec.ModNScalar
	if overflow := r.SetByteSlice(sig[:32]); overflow || r.IsZero() {
		return nil, fmt.Errorf("r is not in valid range [1, N-1]")
	}
	if overflow := s.SetByteSlice(sig[32:64]); overflow || s.IsZero() {
		return nil, fmt.Errorf("s is not in valid range [1, N-1]")
	}

	out := append([]byte(nil), sig...)
	if !s.IsOverHalfOrder() {
		return out, nil
	}

	s.Negate()
	sBytes := s.Bytes()
	copy(out[32:64], sBytes[:])
	out[64] ^= 1
	return out, nil
}
