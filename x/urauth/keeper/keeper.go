package keeper

import (
	"context"
	"errors"
	"time"

	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"

	"cosmossdk.io/collections"
	storetypes "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/sonr-io/urauth/crypto/keys"
	"github.com/sonr-io/urauth/x/urauth/types"
)

type Keeper struct {
	logger log.Logger

	// state management
	Schema         collections.Schema
	Params         collections.Item[types.Params]
	Registry       collections.Map[string, types.URAuthDoc]
	Pending        collections.Map[string, types.RequestMetadata]
	Challenges     collections.Map[string, []byte]
	Tallies        collections.Map[string, types.VerificationSubmission]
	UpdateStatus   collections.Map[[]byte, types.UpdateDocStatus]
	OracleMembers  collections.KeySet[sdk.AccAddress]
	URIPatterns    collections.KeySet[collections.Pair[uint64, string]]
	ExpirySchedule collections.KeySet[collections.Pair[int64, string]]
	DocCounter     collections.Sequence
	Nonces         collections.Map[[]byte, uint64]

	// pluggable dependencies
	didCodec  keys.DIDCodec
	challenge ChallengeSource

	authority string
}

// Option configures optional keeper dependencies
type Option func(*Keeper)

// WithDIDCodec overrides the owner DID to account codec
func WithDIDCodec(codec keys.DIDCodec) Option {
	return func(k *Keeper) { k.didCodec = codec }
}

// WithChallengeSource overrides how challenge values are derived
func WithChallengeSource(src ChallengeSource) Option {
	return func(k *Keeper) { k.challenge = src }
}

// NewKeeper creates a new Keeper instance
func NewKeeper(
	storeService storetypes.KVStoreService,
	logger log.Logger,
	authority string,
	opts ...Option,
) Keeper {
	logger = logger.With(log.ModuleKey, "x/"+types.ModuleName)

	sb := collections.NewSchemaBuilder(storeService)

	if authority == "" {
		authority = authtypes.NewModuleAddress(govtypes.ModuleName).String()
	}

	k := Keeper{
		logger: logger,

		Params: collections.NewItem(sb, types.ParamsKey, "params", types.ParamsValue),
		Registry: collections.NewMap(
			sb,
			types.RegistryKey,
			"registry",
			collections.StringKey,
			types.URAuthDocValue,
		),
		Pending: collections.NewMap(
			sb,
			types.PendingKey,
			"pending",
			collections.StringKey,
			types.RequestMetadataValue,
		),
		Challenges: collections.NewMap(
			sb,
			types.ChallengeKey,
			"challenges",
			collections.StringKey,
			collections.BytesValue,
		),
		Tallies: collections.NewMap(
			sb,
			types.TallyKey,
			"tallies",
			collections.StringKey,
			types.SubmissionValue,
		),
		UpdateStatus: collections.NewMap(
			sb,
			types.UpdateStatusKey,
			"update_status",
			collections.BytesKey,
			types.UpdateStatusValue,
		),
		OracleMembers: collections.NewKeySet(
			sb,
			types.OracleMembersKey,
			"oracle_members",
			sdk.AccAddressKey,
		),
		URIPatterns: collections.NewKeySet(
			sb,
			types.URIPatternsKey,
			"uri_patterns",
			collections.PairKeyCodec(collections.Uint64Key, collections.StringKey),
		),
		ExpirySchedule: collections.NewKeySet(
			sb,
			types.ExpiryScheduleKey,
			"expiry_schedule",
			collections.PairKeyCodec(collections.Int64Key, collections.StringKey),
		),
		DocCounter: collections.NewSequence(sb, types.DocCounterKey, "doc_counter"),
		Nonces: collections.NewMap(
			sb,
			types.NoncesKey,
			"nonces",
			collections.BytesKey,
			collections.Uint64Value,
		),

		didCodec:  keys.DefaultDIDCodec(),
		challenge: HeaderChallengeSource{},
		authority: authority,
	}

	for _, opt := range opts {
		opt(&k)
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}

	k.Schema = schema

	return k
}

func (k Keeper) Logger() log.Logger {
	return k.logger
}

// GetAuthority returns the module authority address
func (k Keeper) GetAuthority() string {
	return k.authority
}

// DIDCodec returns the codec used to map owner DIDs to accounts
func (k Keeper) DIDCodec() keys.DIDCodec {
	return k.didCodec
}

func (k Keeper) checkAuthority(authority string) error {
	if k.authority != authority {
		return errorsmod.Wrapf(
			govtypes.ErrInvalidSigner,
			"invalid authority; expected %s, got %s",
			k.authority,
			authority,
		)
	}
	return nil
}

// GetParams returns the module params, falling back to defaults before genesis
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	p, err := k.Params.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return types.DefaultParams(), nil
	}
	return p, err
}

// GetNonce returns the last nonce used by account
func (k Keeper) GetNonce(ctx context.Context, account keys.AccountID) (uint64, error) {
	n, err := k.Nonces.Get(ctx, account.Bytes())
	if errors.Is(err, collections.ErrNotFound) {
		return 0, nil
	}
	return n, err
}

// nextNonce returns the nonce a fresh proof from account must be signed over
func (k Keeper) nextNonce(ctx context.Context, account keys.AccountID) (uint64, error) {
	n, err := k.GetNonce(ctx, account)
	if err != nil {
		return 0, err
	}
	return n + 1, nil
}

// blockTime returns the block time in unix seconds
func blockTime(ctx context.Context) uint64 {
	t := sdk.UnwrapSDKContext(ctx).BlockTime()
	if t.IsZero() || t.Before(time.Unix(0, 0)) {
		return 0
	}
	return uint64(t.Unix())
}
