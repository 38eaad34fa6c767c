package keys

import (
	varint "github.com/multiformats/go-varint"
	"golang.org/x/crypto/blake2b"
)

// MaxRawPayloadLength is the largest payload signed as-is; longer payloads
// are signed over their blake2b-256 digest.
const MaxRawPayloadLength = 256

// EncodePayload frames each field with its uvarint length and concatenates them
func EncodePayload(fields ...[]byte) []byte {
	size := 0
	for _, f := range fields {
		size += varint.UvarintSize(uint64(len(f))) + len(f)
	}

	out := make([]byte, 0, size)
	for _, f := range fields {
		out = append(out, varint.ToUvarint(uint64(len(f)))...)
		out = append(out, f...)
	}
	return out
}

// WrapPayload returns the bytes that are actually signed for payload
func WrapPayload(payload []byte) []byte {
	if len(payload) > MaxRawPayloadLength {
		sum := blake2b.Sum256(payload)
		return sum[:]
	}
	return payload
}

// SigningPayload frames fields and wraps the result
func SigningPayload(fields ...[]byte) []byte {
	return WrapPayload(EncodePayload(fields...))
}

// EncodeNonce returns the uvarint form of a nonce
func EncodeNonce(nonce uint64) []byte {
	return varint.ToUvarint(nonce)
}
