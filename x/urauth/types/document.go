package types

import (
	"encoding/hex"
	"fmt"

	"github.com/sonr-io/urauth/crypto/keys"
)

// DocIDLength is the size of a document identifier
const DocIDLength = 16

// DocID identifies a document independently of the uri it is registered under.
type DocID [DocIDLength]byte

func (id DocID) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText encodes the id as hex
func (id DocID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText decodes a hex id
func (id *DocID) UnmarshalText(text []byte) error {
	bz, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	if len(bz) != DocIDLength {
		return fmt.Errorf("invalid doc id length: %d", len(bz))
	}
	copy(id[:], bz)
	return nil
}

// WeightedDID is an owner and its contribution towards the update threshold.
type WeightedDID struct {
	DID    string `json:"did"`
	Weight uint16 `json:"weight"`
}

// MultiDID is the weighted owner set of a document.
type MultiDID struct {
	DIDs      []WeightedDID `json:"dids"`
	Threshold uint16        `json:"threshold"`
}

// NewSingleOwner returns an owner set with one owner of weight 1 and threshold 1
func NewSingleOwner(did string) MultiDID {
	return MultiDID{DIDs: []WeightedDID{{DID: did, Weight: 1}}, Threshold: 1}
}

// TotalWeight sums the owner weights
func (m MultiDID) TotalWeight() uint32 {
	var total uint32
	for _, d := range m.DIDs {
		total += uint32(d.Weight)
	}
	return total
}

// Find returns the owner entry for did
func (m MultiDID) Find(did string) (WeightedDID, bool) {
	for _, d := range m.DIDs {
		if d.DID == did {
			return d, true
		}
	}
	return WeightedDID{}, false
}

// FindAccount returns the first owner whose DID decodes to account
func (m MultiDID) FindAccount(codec keys.DIDCodec, account keys.AccountID) (WeightedDID, bool) {
	for _, d := range m.DIDs {
		acc, err := codec.Account(d.DID)
		if err != nil {
			continue
		}
		if acc == account {
			return d, true
		}
	}
	return WeightedDID{}, false
}

// Validate checks the owner set invariants
func (m MultiDID) Validate(maxOwners uint32) error {
	if len(m.DIDs) == 0 {
		return fmt.Errorf("owner set is empty")
	}
	if maxOwners > 0 && uint32(len(m.DIDs)) > maxOwners {
		return fmt.Errorf("owner set has %d entries, max %d", len(m.DIDs), maxOwners)
	}
	seen := make(map[string]bool, len(m.DIDs))
	for _, d := range m.DIDs {
		if d.DID == "" {
			return fmt.Errorf("owner did is empty")
		}
		if d.Weight == 0 {
			return fmt.Errorf("owner %s has zero weight", d.DID)
		}
		if seen[d.DID] {
			return fmt.Errorf("duplicate owner %s", d.DID)
		}
		seen[d.DID] = true
	}
	if m.Threshold == 0 {
		return fmt.Errorf("threshold must be positive")
	}
	if uint32(m.Threshold) > m.TotalWeight() {
		return fmt.Errorf("threshold %d exceeds total weight %d", m.Threshold, m.TotalWeight())
	}
	return nil
}

// ValidateAccounts checks that every owner DID decodes with codec and that
// no two owners resolve to the same account.
func (m MultiDID) ValidateAccounts(codec keys.DIDCodec) error {
	seen := make(map[keys.AccountID]string, len(m.DIDs))
	for _, d := range m.DIDs {
		acc, err := codec.Account(d.DID)
		if err != nil {
			return fmt.Errorf("owner %q: %w", d.DID, err)
		}
		if prev, ok := seen[acc]; ok {
			return fmt.Errorf("owners %s and %s share account %s", prev, d.DID, acc)
		}
		seen[acc] = d.DID
	}
	return nil
}

func (m MultiDID) clone() MultiDID {
	return MultiDID{DIDs: append([]WeightedDID(nil), m.DIDs...), Threshold: m.Threshold}
}

// Proof records which owner authorized a mutation.
type Proof struct {
	DID       string              `json:"did"`
	Signature keys.MultiSignature `json:"signature"`
}

// IdentityInfo lists credentials that bind the owner to a real-world identity.
type IdentityInfo struct {
	Credentials []string `json:"credentials"`
}

// ContentMetadata describes claimed content.
type ContentMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CopyrightInfo records the rights holder and license.
type CopyrightInfo struct {
	Holder  string `json:"holder"`
	License string `json:"license,omitempty"`
}

// Price is an amount of a denomination.
type Price struct {
	Amount uint64 `json:"amount"`
	Denom  string `json:"denom"`
}

// AllowEntry grants a content type, optionally for a price.
type AllowEntry struct {
	ContentType string `json:"content_type"`
	Price       *Price `json:"price,omitempty"`
}

// Rule applies to the listed user agents ("*" for all).
type Rule struct {
	UserAgents []string     `json:"user_agents"`
	Allow      []AllowEntry `json:"allow,omitempty"`
	Disallow   []string     `json:"disallow,omitempty"`
}

// AccessRule binds rules to a uri pattern below the document's uri.
type AccessRule struct {
	Path  string `json:"path"`
	Rules []Rule `json:"rules"`
}

// Asset links a token to the document.
type Asset struct {
	Standard string `json:"standard"`
	Address  string `json:"address"`
	Symbol   string `json:"symbol,omitempty"`
}

// DataSource points at where claimed content is served from.
type DataSource struct {
	URI string `json:"uri"`
}

// URAuthDoc is the ownership document of a registered uri.
type URAuthDoc struct {
	ID              DocID            `json:"id"`
	CreatedAt       uint64           `json:"created_at"`
	UpdatedAt       uint64           `json:"updated_at"`
	MultiOwnerDID   MultiDID         `json:"multi_owner_did"`
	IdentityInfo    *IdentityInfo    `json:"identity_info,omitempty"`
	ContentMetadata *ContentMetadata `json:"content_metadata,omitempty"`
	CopyrightInfo   *CopyrightInfo   `json:"copyright_info,omitempty"`
	AccessRules     []AccessRule     `json:"access_rules,omitempty"`
	Asset           *Asset           `json:"asset,omitempty"`
	DataSource      *DataSource      `json:"data_source,omitempty"`
	Proofs          []Proof          `json:"proofs,omitempty"`
}

// NewURAuthDoc creates a single-owner document. Contents claims seed the
// content metadata and data source.
func NewURAuthDoc(id DocID, now uint64, ownerDID string, claim ClaimType) URAuthDoc {
	doc := URAuthDoc{
		ID:            id,
		CreatedAt:     now,
		UpdatedAt:     now,
		MultiOwnerDID: NewSingleOwner(ownerDID),
	}
	if claim.IsContents() && claim.Contents != nil {
		doc.ContentMetadata = &ContentMetadata{
			Name:        claim.Contents.Name,
			Description: claim.Contents.Description,
		}
		if claim.Contents.DataSource != "" {
			doc.DataSource = &DataSource{URI: claim.Contents.DataSource}
		}
	}
	return doc
}

// Validate checks document invariants
func (d URAuthDoc) Validate(maxOwners uint32) error {
	if d.UpdatedAt < d.CreatedAt {
		return fmt.Errorf("updated_at %d before created_at %d", d.UpdatedAt, d.CreatedAt)
	}
	return d.MultiOwnerDID.Validate(maxOwners)
}
