package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/sonr-io/urauth/crypto/keys"
)

// URIPattern is a whitelisted root pattern for direct claims.
type URIPattern struct {
	ClaimKind ClaimKind `json:"claim_kind"`
	Pattern   string    `json:"pattern"`
}

// RegisteredDoc is a registry entry in genesis.
type RegisteredDoc struct {
	URI string    `json:"uri"`
	Doc URAuthDoc `json:"doc"`
}

// AccountNonce is the last used nonce of an account (hex).
type AccountNonce struct {
	Account string `json:"account"`
	Nonce   uint64 `json:"nonce"`
}

// AccountID decodes the hex account
func (n AccountNonce) AccountID() (keys.AccountID, error) {
	bz, err := decodeHex(n.Account)
	if err != nil {
		return keys.AccountID{}, err
	}
	return keys.AccountFromBytes(bz)
}

// GenesisState is the module state at chain start. Pending requests are
// transient and not part of genesis.
type GenesisState struct {
	Params        Params          `json:"params"`
	OracleMembers []string        `json:"oracle_members"`
	URIPatterns   []URIPattern    `json:"uri_patterns"`
	Documents     []RegisteredDoc `json:"documents"`
	DocCounter    uint64          `json:"doc_counter"`
	Nonces        []AccountNonce  `json:"nonces"`
}

// DefaultGenesis returns the default genesis state. There are no implicit
// oracle members or patterns.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:        DefaultParams(),
		OracleMembers: []string{},
		URIPatterns:   []URIPattern{},
		Documents:     []RegisteredDoc{},
		Nonces:        []AccountNonce{},
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	if uint32(len(gs.OracleMembers)) > gs.Params.MaxOracleMembers {
		return fmt.Errorf("%d oracle members exceed max %d", len(gs.OracleMembers), gs.Params.MaxOracleMembers)
	}
	members := make(map[string]bool)
	for i, m := range gs.OracleMembers {
		if _, err := sdk.AccAddressFromBech32(m); err != nil {
			return fmt.Errorf("invalid oracle member at index %d: %w", i, err)
		}
		if members[m] {
			return fmt.Errorf("duplicate oracle member at index %d: %s", i, m)
		}
		members[m] = true
	}

	if uint32(len(gs.URIPatterns)) > gs.Params.MaxURIPatterns {
		return fmt.Errorf("%d uri patterns exceed max %d", len(gs.URIPatterns), gs.Params.MaxURIPatterns)
	}
	patterns := make(map[URIPattern]bool)
	for i, p := range gs.URIPatterns {
		if _, err := ParsePattern(p.Pattern, ClaimType{Kind: p.ClaimKind}); err != nil {
			return fmt.Errorf("invalid uri pattern at index %d: %w", i, err)
		}
		if patterns[p] {
			return fmt.Errorf("duplicate uri pattern at index %d: %s", i, p.Pattern)
		}
		patterns[p] = true
	}

	uris := make(map[string]bool)
	ids := make(map[DocID]bool)
	for i, rd := range gs.Documents {
		if rd.URI == "" {
			return fmt.Errorf("document at index %d has empty uri", i)
		}
		if uris[rd.URI] {
			return fmt.Errorf("duplicate document uri at index %d: %s", i, rd.URI)
		}
		uris[rd.URI] = true
		if ids[rd.Doc.ID] {
			return fmt.Errorf("duplicate document id at index %d: %s", i, rd.Doc.ID)
		}
		ids[rd.Doc.ID] = true
		if err := rd.Doc.Validate(gs.Params.MaxOwners); err != nil {
			return fmt.Errorf("document %s: %w", rd.URI, err)
		}
	}
	if uint64(len(gs.Documents)) > gs.DocCounter {
		return fmt.Errorf("doc counter %d is below document count %d", gs.DocCounter, len(gs.Documents))
	}

	accounts := make(map[string]bool)
	for i, n := range gs.Nonces {
		if _, err := n.AccountID(); err != nil {
			return fmt.Errorf("invalid nonce account at index %d: %w", i, err)
		}
		if accounts[n.Account] {
			return fmt.Errorf("duplicate nonce account at index %d: %s", i, n.Account)
		}
		accounts[n.Account] = true
	}

	return nil
}
