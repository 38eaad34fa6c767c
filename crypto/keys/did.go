package keys

import (
	"encoding/hex"
	"fmt"
	"strings"

	mb "github.com/multiformats/go-multibase"
	"golang.org/x/crypto/blake2b"
)

const (
	// DIDPrefix is the method prefix used for owner identifiers
	DIDPrefix = "did:infra:ua:"
	// SuffixLength is the size of the base58 encoded account suffix of an owner DID
	SuffixLength = 48
	// AddressPrefix is the network byte prepended to accounts before encoding
	AddressPrefix = 42

	checksumLength = 2
)

var ss58Pre = []byte("SS58PRE")

// AccountID is the 32 byte native account identifier
type AccountID [32]byte

// Bytes returns a copy of the account bytes
func (a AccountID) Bytes() []byte {
	return append([]byte(nil), a[:]...)
}

// String returns the hex form of the account
func (a AccountID) String() string {
	return hex.EncodeToString(a[:])
}

// IsZero reports whether the account is unset
func (a AccountID) IsZero() bool {
	return a == AccountID{}
}

// AccountFromBytes copies a 32 byte slice into an AccountID
func AccountFromBytes(bz []byte) (AccountID, error) {
	var acc AccountID
	if len(bz) != len(acc) {
		return acc, fmt.Errorf("invalid account length: %d", len(bz))
	}
	copy(acc[:], bz)
	return acc, nil
}

// DIDCodec converts owner DIDs to native accounts and back.
type DIDCodec interface {
	Account(did string) (AccountID, error)
	DID(account AccountID) string
}

// SuffixCodec decodes the fixed-length base58btc suffix of a DID. The decoded
// suffix is prefix(1) || account(32) || checksum(2); only the account span is
// consumed, the checksum is not validated on decode.
type SuffixCodec struct {
	Method string
}

// DefaultDIDCodec returns the codec used by the module when none is configured
func DefaultDIDCodec() DIDCodec {
	return SuffixCodec{Method: DIDPrefix}
}

// Account extracts the account from the last 48 bytes of the DID
func (c SuffixCodec) Account(did string) (AccountID, error) {
	var acc AccountID
	if len(did) < SuffixLength {
		return acc, fmt.Errorf("owner did too short: %d bytes", len(did))
	}

	suffix := did[len(did)-SuffixLength:]
	enc, data, err := mb.Decode(string(mb.Base58BTC) + suffix)
	if err != nil {
		return acc, fmt.Errorf("decoding multibase: %w", err)
	}
	if enc != mb.Base58BTC {
		return acc, fmt.Errorf("unexpected multibase encoding: %s", mb.EncodingToStr[enc])
	}
	if len(data) < 1+len(acc) {
		return acc, fmt.Errorf("decoded suffix too short: %d bytes", len(data))
	}

	copy(acc[:], data[1:1+len(acc)])
	return acc, nil
}

// DID encodes an account as method || base58btc(prefix || account || checksum)
func (c SuffixCodec) DID(account AccountID) string {
	data := make([]byte, 0, 1+len(account)+checksumLength)
	data = append(data, AddressPrefix)
	data = append(data, account[:]...)
	data = append(data, checksum(data)...)

	encoded, err := mb.Encode(mb.Base58BTC, data)
	if err != nil {
		return ""
	}
	return c.Method + strings.TrimPrefix(encoded, string(mb.Base58BTC))
}

func checksum(data []byte) []byte {
	h, _ := blake2b.New512(nil)
	h.Write(ss58Pre)
	h.Write(data)
	return h.Sum(nil)[:checksumLength]
}

// NewOwnerDID encodes an account with the default codec
func NewOwnerDID(account AccountID) string {
	return DefaultDIDCodec().DID(account)
}

// ValidateDID checks that a DID decodes to an account with the given codec
func ValidateDID(codec DIDCodec, did string) error {
	if _, err := codec.Account(did); err != nil {
		return fmt.Errorf("invalid DID format: %w", err)
	}
	return nil
}
