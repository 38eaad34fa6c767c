package keeper

import (
	"context"
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"golang.org/x/crypto/blake2b"
)

// ChallengeSource derives the challenge value bound to a new request.
type ChallengeSource interface {
	Challenge(ctx context.Context, seed []byte) ([]byte, error)
}

// HeaderChallengeSource hashes the block header hash and height with the
// request seed, giving every replica the same value.
type HeaderChallengeSource struct{}

func (HeaderChallengeSource) Challenge(ctx context.Context, seed []byte) ([]byte, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, err
	}
	var height [8]byte
	binary.BigEndian.PutUint64(height[:], uint64(sdkCtx.BlockHeight()))

	h.Write(sdkCtx.HeaderHash())
	h.Write(height[:])
	h.Write(seed)
	return h.Sum(nil), nil
}
