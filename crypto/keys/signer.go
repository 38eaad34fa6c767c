package keys

import (
	"crypto/rand"
	"fmt"

	"github.com/ChainSafe/go-schnorrkel"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"
	"golang.org/x/crypto/blake2b"
)

// Signer produces proofs for one of the supported schemes.
type Signer interface {
	Scheme() Scheme
	PublicKey() []byte
	Sign(msg []byte) ([]byte, error)
}

// SignerAccount returns the native account of a signer
func SignerAccount(s Signer) AccountID {
	acc, _ := MultiSignerOf(s).AccountID()
	return acc
}

// MultiSignerOf returns the tagged public key of a signer
func MultiSignerOf(s Signer) MultiSigner {
	return MultiSigner{Scheme: s.Scheme(), PublicKey: s.PublicKey()}
}

// NewSignerFromSeed derives a deterministic signer from an arbitrary seed
func NewSignerFromSeed(scheme Scheme, seed []byte) (Signer, error) {
	secret := blake2b.Sum256(seed)
	defer wipe(secret[:])

	switch scheme {
	case SchemeEd25519:
		return &ed25519Signer{priv: ed25519.GenPrivKeyFromSecret(secret[:])}, nil
	case SchemeSr25519:
		mini, err := schnorrkel.NewMiniSecretKeyFromRaw(secret)
		if err != nil {
			return nil, err
		}
		return newSr25519Signer(mini.ExpandEd25519())
	case SchemeEcdsa:
		priv, _ := btcec.PrivKeyFromBytes(secret[:])
		return &ecdsaSigner{priv: priv}, nil
	default:
		return nil, fmt.Errorf("unsupported signature scheme: %d", scheme)
	}
}

// GenerateSigner creates a signer from fresh randomness
func GenerateSigner(scheme Scheme) (Signer, error) {
	seed := make([]byte, 32)
	defer wipe(seed)

	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}
	return NewSignerFromSeed(scheme, seed)
}

type ed25519Signer struct {
	priv *ed25519.PrivKey
}

func (s *ed25519Signer) Scheme() Scheme    { return SchemeEd25519 }
func (s *ed25519Signer) PublicKey() []byte { return s.priv.PubKey().Bytes() }

func (s *ed25519Signer) Sign(msg []byte) ([]byte, error) {
	return s.priv.Sign(msg)
}

type sr25519Signer struct {
	secret *schnorrkel.SecretKey
	public [32]byte
}

func newSr25519Signer(secret *schnorrkel.SecretKey) (*sr25519Signer, error) {
	pub, err := secret.Public()
	if err != nil {
		return nil, err
	}
	return &sr25519Signer{secret: secret, public: pub.Encode()}, nil
}

func (s *sr25519Signer) Scheme() Scheme    { return SchemeSr25519 }
func (s *sr25519Signer) PublicKey() []byte { return append([]byte(nil), s.public[:]...) }

func (s *sr25519Signer) Sign(msg []byte) ([]byte, error) {
	sig, err := s.secret.Sign(schnorrkel.NewSigningContext(SigningContext, msg))
	if err != nil {
		return nil, err
	}
	enc := sig.Encode()
	return enc[:], nil
}

type ecdsaSigner struct {
	priv *btcec.PrivateKey
}

func (s *ecdsaSigner) Scheme() Scheme    { return SchemeEcdsa }
func (s *ecdsaSigner) PublicKey() []byte { return s.priv.PubKey().SerializeCompressed() }

// Sign returns r || s || v over blake2b-256(msg)
func (s *ecdsaSigner) Sign(msg []byte) ([]byte, error) {
	hash := blake2b.Sum256(msg)
	compact := ecdsa.SignCompact(s.priv, hash[:], true)
	if len(compact) != EcdsaSignatureLength {
		return nil, fmt.Errorf("unexpected compact signature length: %d", len(compact))
	}

	out := make([]byte, EcdsaSignatureLength)
	copy(out, compact[1:])
	out[64] = compact[0] - 27 - 4
	return CanonicalizeEcdsa(out)
}
