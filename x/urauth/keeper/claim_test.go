package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/sonr-io/urauth/x/urauth/keeper"
	"github.com/sonr-io/urauth/x/urauth/types"
)

type ClaimTestSuite struct {
	suite.Suite
	f     *testFixture
	alice owner
	bob   owner
}

func TestClaimTestSuite(t *testing.T) {
	suite.Run(t, new(ClaimTestSuite))
}

func (suite *ClaimTestSuite) SetupTest() {
	suite.f = SetupTest(suite.T())
	suite.alice = newOwner(suite.T(), "alice")
	suite.bob = newOwner(suite.T(), "bob")
}

func (suite *ClaimTestSuite) claim(signer owner, claim types.ClaimType, uri, did string) (types.URAuthDoc, error) {
	return suite.f.k.ClaimOwnership(suite.f.ctx, claim, uri, did, suite.f.requestProof(signer, uri, did))
}

func (suite *ClaimTestSuite) TestClaimByAncestor() {
	f := suite.f
	root := f.register(suite.alice, types.DomainClaim(), "example.com")

	f.resetEvents()
	doc, err := suite.claim(suite.alice, types.DomainClaim(), "blog.example.com/posts", suite.bob.did)
	suite.Require().NoError(err)
	suite.Require().NotEqual(root.ID, doc.ID)
	suite.Require().Equal(types.NewSingleOwner(suite.bob.did), doc.MultiOwnerDID)
	suite.Require().Equal("ancestor", f.eventAttr(types.EventTypeRegistered, types.AttributeKeyRegistrationRoute))

	stored, err := f.k.Registry.Get(f.ctx, "blog.example.com/posts")
	suite.Require().NoError(err)
	suite.Require().Equal(doc, stored)

	// bob now owns an ancestor of deeper paths
	_, err = suite.claim(suite.bob, types.DomainClaim(), "blog.example.com/posts/2024", suite.bob.did)
	suite.Require().NoError(err)
}

func (suite *ClaimTestSuite) TestClaimRequiresAncestorOwnership() {
	f := suite.f
	f.register(suite.alice, types.DomainClaim(), "example.com")

	_, err := suite.claim(suite.bob, types.DomainClaim(), "blog.example.com", suite.bob.did)
	suite.Require().ErrorIs(err, types.ErrNotURAuthDocOwner)

	_, err = suite.claim(suite.bob, types.DomainClaim(), "blog.unknown.org", suite.bob.did)
	suite.Require().ErrorIs(err, types.ErrNotURAuthDocOwner)
}

func (suite *ClaimTestSuite) TestClaimAlreadyRegistered() {
	f := suite.f
	f.register(suite.alice, types.DomainClaim(), "example.com")

	_, err := suite.claim(suite.alice, types.DomainClaim(), "blog.example.com", suite.alice.did)
	suite.Require().NoError(err)

	_, err = suite.claim(suite.alice, types.DomainClaim(), "https://blog.example.com/", suite.alice.did)
	suite.Require().ErrorIs(err, types.ErrAlreadyRegistered)
}

func (suite *ClaimTestSuite) TestClaimRootByWhitelist() {
	f := suite.f

	_, err := suite.claim(suite.alice, types.DomainClaim(), "example.com", suite.alice.did)
	suite.Require().ErrorIs(err, types.ErrNotURIByOracle)

	suite.Require().NoError(f.k.AddURIPattern(f.ctx, f.govModAddr, types.URIPattern{
		ClaimKind: types.ClaimKindDomain,
		Pattern:   "*.com",
	}))

	f.resetEvents()
	doc, err := suite.claim(suite.alice, types.DomainClaim(), "example.com", suite.alice.did)
	suite.Require().NoError(err)
	suite.Require().Equal(types.NewSingleOwner(suite.alice.did), doc.MultiOwnerDID)
	suite.Require().Equal("whitelist", f.eventAttr(types.EventTypeRegistered, types.AttributeKeyRegistrationRoute))

	_, err = suite.claim(suite.alice, types.DomainClaim(), "example.org", suite.alice.did)
	suite.Require().ErrorIs(err, types.ErrNotURIByOracle)
}

func (suite *ClaimTestSuite) TestClaimRootPatternKindMustMatch() {
	f := suite.f
	contents := types.NewContentsClaim("", "video", "")

	suite.Require().NoError(f.k.AddURIPattern(f.ctx, f.govModAddr, types.URIPattern{
		ClaimKind: types.ClaimKindDomain,
		Pattern:   "ur://file/*",
	}))
	_, err := suite.claim(suite.alice, contents, "ur://file/cid", suite.alice.did)
	suite.Require().ErrorIs(err, types.ErrNotURIByOracle)

	suite.Require().NoError(f.k.AddURIPattern(f.ctx, f.govModAddr, types.URIPattern{
		ClaimKind: types.ClaimKindContents,
		Pattern:   "ur://file/*",
	}))
	_, err = suite.claim(suite.alice, contents, "ur://file/cid", suite.alice.did)
	suite.Require().NoError(err)
}

func (suite *ClaimTestSuite) TestClaimRootSignerMustBeOwner() {
	f := suite.f
	suite.Require().NoError(f.k.AddURIPattern(f.ctx, f.govModAddr, types.URIPattern{
		ClaimKind: types.ClaimKindDomain,
		Pattern:   "*",
	}))

	_, err := suite.claim(suite.alice, types.DomainClaim(), "example.com", suite.bob.did)
	suite.Require().ErrorIs(err, types.ErrBadSigner)
}

func (suite *ClaimTestSuite) TestClaimPurgesPendingRequest() {
	f := suite.f

	// a sub-domain document without its root, as imported from genesis
	doc := types.NewURAuthDoc(keeper.DocIDFromCounter(99), 1, suite.alice.did, types.DomainClaim())
	suite.Require().NoError(f.k.Registry.Set(f.ctx, "blog.example.com", doc))

	uri := "a.blog.example.com"
	f.request(suite.bob, types.DomainClaim(), uri)

	_, err := suite.claim(suite.alice, types.DomainClaim(), uri, suite.alice.did)
	suite.Require().NoError(err)

	pending, err := f.k.Pending.Has(f.ctx, uri)
	suite.Require().NoError(err)
	suite.Require().False(pending)

	challenge, err := f.k.Challenges.Has(f.ctx, uri)
	suite.Require().NoError(err)
	suite.Require().False(challenge)
}

func (suite *ClaimTestSuite) TestClaimBadProof() {
	f := suite.f
	f.register(suite.alice, types.DomainClaim(), "example.com")

	proof := f.requestProof(suite.alice, "other.example.com", suite.alice.did)
	_, err := f.k.ClaimOwnership(f.ctx, types.DomainClaim(), "blog.example.com", suite.alice.did, proof)
	suite.Require().ErrorIs(err, types.ErrBadProof)
}

func (suite *ClaimTestSuite) TestClaimOwnershipMsgServer() {
	f := suite.f
	f.register(suite.alice, types.DomainClaim(), "example.com")

	uri := "shop.example.com"
	resp, err := f.msgServer.ClaimOwnership(f.ctx, &types.MsgClaimOwnership{
		ClaimType: types.DomainClaim(),
		URI:       uri,
		OwnerDID:  suite.alice.did,
		Proof:     f.requestProof(suite.alice, uri, suite.alice.did),
	})
	suite.Require().NoError(err)

	doc, err := f.queryServer.Document(f.ctx, &types.QueryDocumentRequest{URI: "https://shop.example.com"})
	suite.Require().NoError(err)
	suite.Require().Equal(uri, doc.URI)
	suite.Require().Equal(resp.DocID, doc.Doc.ID)
}
