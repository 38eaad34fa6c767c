package types

import (
	"encoding/json"
	"fmt"
)

// Params configures the module.
type Params struct {
	// Limits
	MaxURILength     uint32 `json:"max_uri_length"`
	MaxOracleMembers uint32 `json:"max_oracle_members"`
	MaxURIPatterns   uint32 `json:"max_uri_patterns"`
	MaxOwners        uint32 `json:"max_owners"`

	// Blocks a pending request stays open for oracle verification
	RequestExpiryBlocks int64 `json:"request_expiry_blocks"`

	// Derive challenges on chain instead of taking them from the requester
	RandomChallenge bool `json:"random_challenge"`
}

// DefaultParams returns default module parameters.
func DefaultParams() Params {
	return Params{
		MaxURILength:        512,
		MaxOracleMembers:    32,
		MaxURIPatterns:      256,
		MaxOwners:           64,
		RequestExpiryBlocks: 100,
		RandomChallenge:     true,
	}
}

// Stringer method for Params.
func (p Params) String() string {
	bz, err := json.Marshal(p)
	if err != nil {
		panic(err)
	}

	return string(bz)
}

// Validate does the sanity check on the params.
func (p Params) Validate() error {
	if err := validateLimits(p); err != nil {
		return err
	}

	// Request window: 1 block to ~1 week at 6s blocks
	if p.RequestExpiryBlocks < 1 || p.RequestExpiryBlocks > 100800 {
		return fmt.Errorf(
			"request_expiry_blocks must be between 1 and 100800, got %d",
			p.RequestExpiryBlocks,
		)
	}

	return nil
}

// validateLimits validates size limits
func validateLimits(p Params) error {
	if p.MaxURILength < 16 || p.MaxURILength > 4096 {
		return fmt.Errorf(
			"max_uri_length must be between 16 and 4096, got %d",
			p.MaxURILength,
		)
	}

	if p.MaxOracleMembers == 0 || p.MaxOracleMembers > 1024 {
		return fmt.Errorf(
			"max_oracle_members must be between 1 and 1024, got %d",
			p.MaxOracleMembers,
		)
	}

	if p.MaxURIPatterns == 0 || p.MaxURIPatterns > 65536 {
		return fmt.Errorf(
			"max_uri_patterns must be between 1 and 65536, got %d",
			p.MaxURIPatterns,
		)
	}

	if p.MaxOwners == 0 || p.MaxOwners > 1024 {
		return fmt.Errorf(
			"max_owners must be between 1 and 1024, got %d",
			p.MaxOwners,
		)
	}

	return nil
}
