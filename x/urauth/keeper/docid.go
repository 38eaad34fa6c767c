package keeper

import (
	"context"

	"lukechampine.com/blake3"

	"github.com/sonr-io/urauth/crypto/keys"
	"github.com/sonr-io/urauth/x/urauth/types"
)

var docIDDomain = []byte("urauth/doc-id")

// nextDocID advances the counter and derives a document id from it.
func (k Keeper) nextDocID(ctx context.Context) (types.DocID, error) {
	n, err := k.DocCounter.Next(ctx)
	if err != nil {
		return types.DocID{}, err
	}
	return DocIDFromCounter(n), nil
}

// DocIDFromCounter hashes a counter value into a 16 byte id
func DocIDFromCounter(n uint64) types.DocID {
	h := blake3.New(types.DocIDLength, nil)
	h.Write(docIDDomain)
	h.Write(keys.EncodeNonce(n))

	var id types.DocID
	copy(id[:], h.Sum(nil))
	return id
}
