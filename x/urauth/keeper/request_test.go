package keeper_test

import (
	"strings"
	"testing"

	"cosmossdk.io/collections"
	"github.com/stretchr/testify/suite"

	"github.com/sonr-io/urauth/crypto/keys"
	"github.com/sonr-io/urauth/x/urauth/keeper"
	"github.com/sonr-io/urauth/x/urauth/types"
)

type RequestTestSuite struct {
	suite.Suite
	f     *testFixture
	alice owner
	bob   owner
}

func TestRequestTestSuite(t *testing.T) {
	suite.Run(t, new(RequestTestSuite))
}

func (suite *RequestTestSuite) SetupTest() {
	suite.f = SetupTest(suite.T())
	suite.alice = newOwner(suite.T(), "alice")
	suite.bob = newOwner(suite.T(), "bob")
}

func (suite *RequestTestSuite) TestRequestOwnership() {
	f := suite.f
	uri := "https://www.example.com"

	f.resetEvents()
	meta, err := f.k.RequestOwnership(f.ctx, types.DomainClaim(), uri, suite.alice.did, nil, f.requestProof(suite.alice, uri, suite.alice.did))
	suite.Require().NoError(err)
	suite.Require().Len(meta.ChallengeValue, types.ChallengeLength)
	suite.Require().Equal("example.com", meta.TargetURI)
	suite.Require().Equal(int64(10), meta.RequestedAt)
	suite.Require().Equal(int64(10)+types.DefaultParams().RequestExpiryBlocks, meta.ExpiresAt)

	stored, err := f.k.Pending.Get(f.ctx, uri)
	suite.Require().NoError(err)
	suite.Require().Equal(*meta, stored)

	challenge, err := f.k.Challenges.Get(f.ctx, uri)
	suite.Require().NoError(err)
	suite.Require().Equal(meta.ChallengeValue, challenge)

	scheduled, err := f.k.ExpirySchedule.Has(f.ctx, collections.Join(meta.ExpiresAt, uri))
	suite.Require().NoError(err)
	suite.Require().True(scheduled)

	nonce, err := f.k.GetNonce(f.ctx, suite.alice.acc)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(1), nonce)

	suite.Require().True(f.hasEvent(types.EventTypeRegisterRequested))
	suite.Require().Equal(uri, f.eventAttr(types.EventTypeRegisterRequested, types.AttributeKeyURI))
}

func (suite *RequestTestSuite) TestRequestOwnershipMsgServer() {
	f := suite.f
	uri := "example.org"

	resp, err := f.msgServer.RequestOwnership(f.ctx, &types.MsgRequestOwnership{
		ClaimType: types.DomainClaim(),
		URI:       uri,
		OwnerDID:  suite.alice.did,
		Proof:     f.requestProof(suite.alice, uri, suite.alice.did),
	})
	suite.Require().NoError(err)
	suite.Require().Len(resp.Challenge, types.ChallengeLength)

	pending, err := f.queryServer.Pending(f.ctx, &types.QueryPendingRequest{URI: uri})
	suite.Require().NoError(err)
	suite.Require().Equal(resp.Challenge, pending.Challenge)
	suite.Require().Equal(resp.ExpiresAt, pending.Metadata.ExpiresAt)
}

func (suite *RequestTestSuite) TestRequestChallengeDependsOnRequest() {
	f := suite.f

	a := f.request(suite.alice, types.DomainClaim(), "a.com")
	b := f.request(suite.alice, types.DomainClaim(), "b.com")
	suite.Require().NotEqual(a.ChallengeValue, b.ChallengeValue)
}

func (suite *RequestTestSuite) TestRequestRejectsMalformedInput() {
	f := suite.f
	alice := suite.alice

	tests := []struct {
		name  string
		claim types.ClaimType
		uri   string
		did   string
		err   error
	}{
		{"empty uri", types.DomainClaim(), "", alice.did, types.ErrInvalidURI},
		{"whitespace", types.DomainClaim(), "exa mple.com", alice.did, types.ErrInvalidURI},
		{"too long", types.DomainClaim(), "example.com/" + strings.Repeat("a", 600), alice.did, types.ErrURITooLong},
		{"bad did", types.DomainClaim(), "example.com", "did:infra:ua:short", types.ErrInvalidDID},
		{"bad claim", types.ClaimType{Kind: types.ClaimKindContents}, "ur://file/cid", alice.did, types.ErrInvalidClaimType},
		{"contents without path", types.NewContentsClaim("", "doc", ""), "ur://file", alice.did, types.ErrInvalidURI},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := f.k.RequestOwnership(f.ctx, tt.claim, tt.uri, tt.did, nil, f.requestProof(alice, tt.uri, tt.did))
			suite.Require().ErrorIs(err, tt.err)

			n, err := f.k.GetNonce(f.ctx, alice.acc)
			suite.Require().NoError(err)
			suite.Require().Zero(n)
		})
	}
}

func (suite *RequestTestSuite) TestRequestBadProof() {
	f := suite.f
	uri := "example.com"

	proof := f.requestProof(suite.alice, "other.com", suite.alice.did)
	_, err := f.k.RequestOwnership(f.ctx, types.DomainClaim(), uri, suite.alice.did, nil, proof)
	suite.Require().ErrorIs(err, types.ErrBadProof)

	has, err := f.k.Pending.Has(f.ctx, uri)
	suite.Require().NoError(err)
	suite.Require().False(has)
}

func (suite *RequestTestSuite) TestRequestNonceReplay() {
	f := suite.f
	uri := "example.com"

	proof := f.requestProof(suite.alice, uri, suite.alice.did)
	_, err := f.k.RequestOwnership(f.ctx, types.DomainClaim(), uri, suite.alice.did, nil, proof)
	suite.Require().NoError(err)

	_, err = f.k.RequestOwnership(f.ctx, types.DomainClaim(), uri, suite.alice.did, nil, proof)
	suite.Require().ErrorIs(err, types.ErrIncorrectNonce)
}

func (suite *RequestTestSuite) TestRequestSignerMustControlOwner() {
	f := suite.f
	uri := "example.com"

	proof := f.requestProof(suite.bob, uri, suite.alice.did)
	_, err := f.k.RequestOwnership(f.ctx, types.DomainClaim(), uri, suite.alice.did, nil, proof)
	suite.Require().ErrorIs(err, types.ErrBadSigner)
}

func (suite *RequestTestSuite) TestRequestRejectsRegisteredRoot() {
	f := suite.f
	f.register(suite.alice, types.DomainClaim(), "example.com")

	for _, uri := range []string{"example.com", "https://www.example.com", "blog.example.com"} {
		_, err := f.k.RequestOwnership(f.ctx, types.DomainClaim(), uri, suite.bob.did, nil, f.requestProof(suite.bob, uri, suite.bob.did))
		suite.Require().ErrorIs(err, types.ErrAlreadyRegistered, uri)
	}
}

func (suite *RequestTestSuite) TestRequestReplacesPending() {
	f := suite.f
	uri := "example.com"

	first := f.request(suite.alice, types.DomainClaim(), uri)

	f.ctx = f.ctx.WithBlockHeight(20)
	second := f.request(suite.alice, types.DomainClaim(), uri)
	suite.Require().NotEqual(first.ChallengeValue, second.ChallengeValue)

	stale, err := f.k.ExpirySchedule.Has(f.ctx, collections.Join(first.ExpiresAt, uri))
	suite.Require().NoError(err)
	suite.Require().False(stale)

	current, err := f.k.Challenges.Get(f.ctx, uri)
	suite.Require().NoError(err)
	suite.Require().Equal(second.ChallengeValue, current)
}

func (suite *RequestTestSuite) TestRequestSuppliedChallenge() {
	f := suite.f
	uri := "example.com"

	params := types.DefaultParams()
	params.RandomChallenge = false
	suite.Require().NoError(f.k.Params.Set(f.ctx, params))

	_, err := f.k.RequestOwnership(f.ctx, types.DomainClaim(), uri, suite.alice.did, nil, f.requestProof(suite.alice, uri, suite.alice.did))
	suite.Require().ErrorIs(err, types.ErrChallengeValueMissing)

	_, err = f.k.RequestOwnership(f.ctx, types.DomainClaim(), uri, suite.alice.did, []byte{1, 2, 3}, f.requestProof(suite.alice, uri, suite.alice.did))
	suite.Require().ErrorIs(err, types.ErrBadChallengeValue)

	challenge := make([]byte, types.ChallengeLength)
	for i := range challenge {
		challenge[i] = byte(i)
	}
	meta, err := f.k.RequestOwnership(f.ctx, types.DomainClaim(), uri, suite.alice.did, challenge, f.requestProof(suite.alice, uri, suite.alice.did))
	suite.Require().NoError(err)
	suite.Require().Equal(challenge, meta.ChallengeValue)
}

func (suite *RequestTestSuite) TestRequestAcrossSchemes() {
	f := suite.f

	for _, scheme := range []keys.Scheme{keys.SchemeEd25519, keys.SchemeSr25519, keys.SchemeEcdsa} {
		o := newOwnerWithScheme(suite.T(), scheme, "carol-"+scheme.String())
		uri := scheme.String() + ".example.net"
		meta := f.request(o, types.DomainClaim(), uri)
		suite.Require().Equal(o.did, meta.OwnerDID)
	}
}

func (suite *RequestTestSuite) TestRequestByAncestorOwner() {
	f := suite.f

	// a sub-domain document without its root, as imported from genesis
	doc := types.NewURAuthDoc(keeper.DocIDFromCounter(99), 1, suite.alice.did, types.DomainClaim())
	suite.Require().NoError(f.k.Registry.Set(f.ctx, "blog.example.com", doc))

	uri := "a.blog.example.com"
	meta, err := f.k.RequestOwnership(f.ctx, types.DomainClaim(), uri, suite.bob.did, nil, f.requestProof(suite.alice, uri, suite.bob.did))
	suite.Require().NoError(err)
	suite.Require().Equal(suite.bob.did, meta.OwnerDID)

	uri = "b.other.example.com"
	_, err = f.k.RequestOwnership(f.ctx, types.DomainClaim(), uri, suite.bob.did, nil, f.requestProof(suite.alice, uri, suite.bob.did))
	suite.Require().ErrorIs(err, types.ErrBadSigner)
}
