package keeper_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"

	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/testutil/integration"
	simtestutil "github.com/cosmos/cosmos-sdk/testutil/sims"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"

	"github.com/sonr-io/urauth/crypto/keys"
	"github.com/sonr-io/urauth/x/urauth/keeper"
	"github.com/sonr-io/urauth/x/urauth/types"
)

type testFixture struct {
	t *testing.T

	ctx         sdk.Context
	k           keeper.Keeper
	msgServer   types.MsgServer
	queryServer types.QueryServer

	addrs      []sdk.AccAddress
	govModAddr string
}

// owner is a test key pair with its owner DID.
type owner struct {
	signer keys.Signer
	acc    keys.AccountID
	did    string
}

func SetupTest(t *testing.T, opts ...keeper.Option) *testFixture {
	t.Helper()
	f := &testFixture{t: t}

	logger := log.NewTestLogger(t)

	f.govModAddr = authtypes.NewModuleAddress(govtypes.ModuleName).String()
	f.addrs = simtestutil.CreateIncrementalAccounts(8)

	storeKeys := storetypes.NewKVStoreKeys(types.StoreKey)
	f.ctx = sdk.NewContext(
		integration.CreateMultiStore(storeKeys, logger),
		cmtproto.Header{Height: 10, Time: time.Unix(1_700_000_000, 0)},
		false,
		logger,
	)

	f.k = keeper.NewKeeper(
		runtime.NewKVStoreService(storeKeys[types.StoreKey]),
		logger,
		f.govModAddr,
		opts...,
	)
	f.msgServer = keeper.NewMsgServerImpl(f.k)
	f.queryServer = keeper.NewQuerier(f.k)

	require.NoError(t, f.k.Params.Set(f.ctx, types.DefaultParams()))

	return f
}

func newOwner(t *testing.T, seed string) owner {
	t.Helper()
	return newOwnerWithScheme(t, keys.SchemeEd25519, seed)
}

func newOwnerWithScheme(t *testing.T, scheme keys.Scheme, seed string) owner {
	t.Helper()
	s, err := keys.NewSignerFromSeed(scheme, []byte(seed))
	require.NoError(t, err)
	acc := keys.SignerAccount(s)
	return owner{signer: s, acc: acc, did: keys.NewOwnerDID(acc)}
}

func (o owner) sign(t *testing.T, payload []byte) types.SignedProof {
	t.Helper()
	sig, err := o.signer.Sign(payload)
	require.NoError(t, err)
	return types.SignedProof{Signer: keys.MultiSignerOf(o.signer), Signature: sig}
}

// requestProof signs (uri, did) with the signer's next nonce.
func (f *testFixture) requestProof(o owner, uri, did string) types.SignedProof {
	f.t.Helper()
	n, err := f.k.GetNonce(f.ctx, o.acc)
	require.NoError(f.t, err)
	return o.sign(f.t, types.RequestSigningPayload(uri, did, n+1))
}

// updateProof signs field against the document state it produces.
func (f *testFixture) updateProof(o owner, uri string, field types.UpdateDocField, updatedAt uint64) *types.SignedProof {
	f.t.Helper()
	_, doc, err := f.k.GetDocument(f.ctx, uri)
	require.NoError(f.t, err)

	params, err := f.k.GetParams(f.ctx)
	require.NoError(f.t, err)
	preview, err := doc.Apply(field, params.MaxOwners)
	require.NoError(f.t, err)
	preview.UpdatedAt = updatedAt

	n, err := f.k.GetNonce(f.ctx, o.acc)
	require.NoError(f.t, err)
	payload, err := types.UpdateSigningPayload(uri, preview, field, n+1)
	require.NoError(f.t, err)

	p := o.sign(f.t, payload)
	return &p
}

// addOracles admits the first n fixture accounts as oracle members.
func (f *testFixture) addOracles(n int) []sdk.AccAddress {
	f.t.Helper()
	for _, addr := range f.addrs[:n] {
		require.NoError(f.t, f.k.AddOracleMember(f.ctx, f.govModAddr, addr))
	}
	return f.addrs[:n]
}

// request opens a pending request for uri owned and signed by o.
func (f *testFixture) request(o owner, claim types.ClaimType, uri string) *types.RequestMetadata {
	f.t.Helper()
	meta, err := f.k.RequestOwnership(f.ctx, claim, uri, o.did, nil, f.requestProof(o, uri, o.did))
	require.NoError(f.t, err)
	return meta
}

// envelope builds the signed challenge json o would publish at uri.
func (f *testFixture) envelope(o owner, uri string, challenge []byte, ts string) string {
	f.t.Helper()
	env, err := types.NewChallengeEnvelope(uri, o.did, challenge, ts, o.signer)
	require.NoError(f.t, err)
	bz, err := env.Marshal()
	require.NoError(f.t, err)
	return string(bz)
}

// register drives uri through a full oracle round and returns its document.
func (f *testFixture) register(o owner, claim types.ClaimType, uri string) types.URAuthDoc {
	f.t.Helper()
	members, err := f.k.GetOracleMembers(f.ctx)
	require.NoError(f.t, err)
	if len(members) == 0 {
		members = f.addOracles(1)
	}

	meta := f.request(o, claim, uri)
	raw := f.envelope(o, uri, meta.ChallengeValue, "2024-01-01T00:00:00Z")

	for _, m := range members {
		result, doc, err := f.k.VerifyChallenge(f.ctx, m, raw)
		require.NoError(f.t, err)
		if result == types.VerificationComplete {
			require.NotNil(f.t, doc)
			return *doc
		}
	}
	f.t.Fatalf("registration of %s did not complete", uri)
	return types.URAuthDoc{}
}

func (f *testFixture) resetEvents() {
	f.ctx = f.ctx.WithEventManager(sdk.NewEventManager())
}

func (f *testFixture) hasEvent(eventType string) bool {
	for _, e := range f.ctx.EventManager().Events() {
		if e.Type == eventType {
			return true
		}
	}
	return false
}

func (f *testFixture) eventAttr(eventType, key string) string {
	for _, e := range f.ctx.EventManager().Events() {
		if e.Type != eventType {
			continue
		}
		for _, a := range e.Attributes {
			if a.Key == key {
				return a.Value
			}
		}
	}
	return ""
}

func TestKeeperDefaults(t *testing.T) {
	f := SetupTest(t)

	require.Equal(t, f.govModAddr, f.k.GetAuthority())

	params, err := f.k.GetParams(f.ctx)
	require.NoError(t, err)
	require.Equal(t, types.DefaultParams(), params)

	o := newOwner(t, "alice")
	n, err := f.k.GetNonce(f.ctx, o.acc)
	require.NoError(t, err)
	require.Zero(t, n)

	acc, err := f.k.DIDCodec().Account(o.did)
	require.NoError(t, err)
	require.Equal(t, o.acc, acc)
}

func TestParamsFallBackToDefaults(t *testing.T) {
	f := SetupTest(t)
	require.NoError(t, f.k.Params.Remove(f.ctx))

	params, err := f.k.GetParams(f.ctx)
	require.NoError(t, err)
	require.Equal(t, types.DefaultParams(), params)
}

func TestDocIDFromCounter(t *testing.T) {
	seen := make(map[types.DocID]bool)
	for i := uint64(0); i < 64; i++ {
		id := keeper.DocIDFromCounter(i)
		require.False(t, seen[id], fmt.Sprintf("collision at %d", i))
		seen[id] = true
		require.Equal(t, id, keeper.DocIDFromCounter(i))
	}
}
