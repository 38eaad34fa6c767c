package keys

import (
	"bytes"
	"fmt"

	"github.com/ChainSafe/go-schnorrkel"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"
	"golang.org/x/crypto/blake2b"
)

// Scheme is the closed set of signature algorithms accepted for proofs.
type Scheme uint8

const (
	SchemeUnknown Scheme = iota
	SchemeEd25519
	SchemeSr25519
	SchemeEcdsa
)

const (
	// EcdsaSignatureLength is r || s || v
	EcdsaSignatureLength = 65
	// CompressedPubKeyLength is the serialized size of a compressed secp256k1 key
	CompressedPubKeyLength = 33

	signatureLength = 64
)

// SigningContext is the transcript label used for sr25519 signatures
var SigningContext = []byte("substrate")

var schemeNames = map[Scheme]string{
	SchemeEd25519: "ed25519",
	SchemeSr25519: "sr25519",
	SchemeEcdsa:   "ecdsa",
}

// String returns the scheme name
func (s Scheme) String() string {
	if name, ok := schemeNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseScheme resolves a scheme by its short name
func ParseScheme(name string) (Scheme, error) {
	for s, n := range schemeNames {
		if n == name {
			return s, nil
		}
	}
	return SchemeUnknown, fmt.Errorf("unsupported signature scheme: %s", name)
}

// ParseProofType maps an off-chain proof type name to its scheme
func ParseProofType(proofType string) (Scheme, error) {
	switch proofType {
	case "Ed25519Signature2018", "Ed25519Signature2020":
		return SchemeEd25519, nil
	case "Sr25519Signature2020", "Sr25519VerificationKey2020":
		return SchemeSr25519, nil
	case "EcdsaSecp256k1Signature2019", "EcdsaSecp256k1RecoverySignature2020":
		return SchemeEcdsa, nil
	default:
		return SchemeUnknown, fmt.Errorf("unsupported proof type: %s", proofType)
	}
}

// ProofType returns the canonical off-chain proof type name for a scheme
func (s Scheme) ProofType() string {
	switch s {
	case SchemeEd25519:
		return "Ed25519Signature2020"
	case SchemeSr25519:
		return "Sr25519Signature2020"
	case SchemeEcdsa:
		return "EcdsaSecp256k1Signature2019"
	default:
		return ""
	}
}

// MultiSigner is a public key tagged with its scheme.
type MultiSigner struct {
	Scheme    Scheme `json:"scheme"`
	PublicKey []byte `json:"public_key"`
}

// AccountID derives the native account of the signer. Ed25519 and sr25519
// accounts are the public key itself; ecdsa accounts are the blake2b-256
// digest of the compressed public key.
func (m MultiSigner) AccountID() (AccountID, error) {
	switch m.Scheme {
	case SchemeEd25519, SchemeSr25519:
		return AccountFromBytes(m.PublicKey)
	case SchemeEcdsa:
		if len(m.PublicKey) != CompressedPubKeyLength {
			return AccountID{}, fmt.Errorf("invalid ecdsa public key length: %d", len(m.PublicKey))
		}
		return AccountID(blake2b.Sum256(m.PublicKey)), nil
	default:
		return AccountID{}, fmt.Errorf("unsupported signature scheme: %d", m.Scheme)
	}
}

// MultiSignature is a signature tagged with its scheme.
type MultiSignature struct {
	Scheme    Scheme `json:"scheme"`
	Signature []byte `json:"signature"`
}

// Verify reports whether the signature over msg was produced by account
func (m MultiSignature) Verify(msg []byte, account AccountID) bool {
	return Verify(m.Scheme, msg, m.Signature, account)
}

// Verify checks sig over msg against account using the given scheme
func Verify(scheme Scheme, msg, sig []byte, account AccountID) bool {
	switch scheme {
	case SchemeEd25519:
		return verifyEd25519(msg, sig, account)
	case SchemeSr25519:
		return verifySr25519(msg, sig, account)
	case SchemeEcdsa:
		return verifyEcdsa(msg, sig, account)
	default:
		return false
	}
}

func verifyEd25519(msg, sig []byte, account AccountID) bool {
	if len(sig) != signatureLength {
		return false
	}
	pub := &ed25519.PubKey{Key: account.Bytes()}
	return pub.VerifySignature(msg, sig)
}

func verifySr25519(msg, sig []byte, account AccountID) bool {
	if len(sig) != signatureLength {
		return false
	}
	pub, err := schnorrkel.NewPublicKey(account)
	if err != nil {
		return false
	}

	var raw [signatureLength]byte
	copy(raw[:], sig)
	s := new(schnorrkel.Signature)
	if err := s.Decode(raw); err != nil {
		return false
	}

	ok, err := pub.Verify(s, schnorrkel.NewSigningContext(SigningContext, msg))
	return err == nil && ok
}

func verifyEcdsa(msg, sig []byte, account AccountID) bool {
	if !IsCanonicalEcdsa(sig) {
		return false
	}
	pub, err := RecoverEcdsa(msg, sig)
	if err != nil {
		return false
	}
	derived := blake2b.Sum256(pub.SerializeCompressed())
	return bytes.Equal(derived[:], account[:])
}

// RecoverEcdsa recovers the public key from an r || s || v signature over
// blake2b-256(msg).
func RecoverEcdsa(msg, sig []byte) (*btcec.PublicKey, error) {
	if len(sig) != EcdsaSignatureLength {
		return nil, fmt.Errorf("malformed signature: not the correct size")
	}

	v := sig[64]
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return nil, fmt.Errorf("invalid recovery id: %d", sig[64])
	}

	compact := make([]byte, EcdsaSignatureLength)
	compact[0] = 27 + 4 + v
	copy(compact[1:], sig[:64])

	hash := blake2b.Sum256(msg)
	pub, _, err := ecdsa.RecoverCompact(compact, hash[:])
	if err != nil {
		return nil, err
	}
	return pub, nil
}
