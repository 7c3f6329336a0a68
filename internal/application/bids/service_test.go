package bids

import (
	"context"
	"testing"
	"time"

	"gavel-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupBidsTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Listing{}, &domain.Bid{}, &domain.ListingEvent{},
	))
	return &Service{DB: db}, db
}

func createUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	u := &domain.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createListing(t *testing.T, db *gorm.DB, owner *domain.User, startingBid int64) *domain.Listing {
	l := &domain.Listing{
		Name:        "Vintage camera",
		StartingBid: startingBid,
		Description: "A camera",
		OwnerID:     owner.UserID,
		Active:      true,
	}
	require.NoError(t, db.Create(l).Error)
	return l
}

func TestCurrentMax_NoBidsIsStartingBid(t *testing.T) {
	svc, db := setupBidsTest(t)
	owner := createUser(t, db, "owner")
	listing := createListing(t, db, owner, 100)

	max, count, err := CurrentMax(context.Background(), svc.DB, listing)
	require.NoError(t, err)
	assert.Equal(t, int64(100), max)
	assert.Equal(t, int64(0), count)
}

func TestPlaceBid_MustStrictlyExceedStartingBid(t *testing.T) {
	svc, db := setupBidsTest(t)
	owner := createUser(t, db, "owner")
	bidder := createUser(t, db, "bidder")
	listing := createListing(t, db, owner, 100)

	_, err := svc.PlaceBid(context.Background(), listing.ListingID, bidder.UserID, 100)
	assert.ErrorIs(t, err, ErrBidTooLow)

	// Rejected bids are never persisted.
	var count int64
	require.NoError(t, db.Model(&domain.Bid{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestPlaceBid_AcceptedBidsStrictlyIncrease(t *testing.T) {
	svc, db := setupBidsTest(t)
	owner := createUser(t, db, "owner")
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	listing := createListing(t, db, owner, 100)
	ctx := context.Background()

	res, err := svc.PlaceBid(ctx, listing.ListingID, alice.UserID, 150)
	require.NoError(t, err)
	assert.Equal(t, int64(150), res.NewMax)
	assert.Equal(t, int64(1), res.BidCount)

	_, err = svc.PlaceBid(ctx, listing.ListingID, bob.UserID, 150)
	assert.ErrorIs(t, err, ErrBidTooLow)
	_, err = svc.PlaceBid(ctx, listing.ListingID, bob.UserID, 120)
	assert.ErrorIs(t, err, ErrBidTooLow)

	res, err = svc.PlaceBid(ctx, listing.ListingID, bob.UserID, 151)
	require.NoError(t, err)
	assert.Equal(t, int64(151), res.NewMax)
	assert.Equal(t, int64(2), res.BidCount)
}

func TestPlaceBid_SelfBidRejectedRegardlessOfAmount(t *testing.T) {
	svc, db := setupBidsTest(t)
	owner := createUser(t, db, "owner")
	listing := createListing(t, db, owner, 100)

	_, err := svc.PlaceBid(context.Background(), listing.ListingID, owner.UserID, 100000)
	assert.ErrorIs(t, err, ErrSelfBid)
}

func TestPlaceBid_ListingNotFound(t *testing.T) {
	svc, db := setupBidsTest(t)
	bidder := createUser(t, db, "bidder")

	_, err := svc.PlaceBid(context.Background(), uuid.New(), bidder.UserID, 100)
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestPlaceBid_ClosedListingRejected(t *testing.T) {
	svc, db := setupBidsTest(t)
	owner := createUser(t, db, "owner")
	bidder := createUser(t, db, "bidder")
	listing := createListing(t, db, owner, 100)
	require.NoError(t, db.Model(listing).Update("active", false).Error)

	_, err := svc.PlaceBid(context.Background(), listing.ListingID, bidder.UserID, 500)
	assert.ErrorIs(t, err, ErrListingClosed)
}

func TestPlaceBid_WritesAuditEvent(t *testing.T) {
	svc, db := setupBidsTest(t)
	owner := createUser(t, db, "owner")
	bidder := createUser(t, db, "bidder")
	listing := createListing(t, db, owner, 100)

	_, err := svc.PlaceBid(context.Background(), listing.ListingID, bidder.UserID, 200)
	require.NoError(t, err)

	var events []domain.ListingEvent
	require.NoError(t, db.Where("listing_id = ?", listing.ListingID).Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventBidPlaced, events[0].EventType)
	require.NotNil(t, events[0].ActorID)
	assert.Equal(t, bidder.UserID, *events[0].ActorID)
}

func TestCloseListing_NoBidsLeavesWinnerUnset(t *testing.T) {
	svc, db := setupBidsTest(t)
	owner := createUser(t, db, "owner")
	listing := createListing(t, db, owner, 100)

	res, err := svc.CloseListing(context.Background(), listing.ListingID, owner.UserID)
	require.NoError(t, err)
	assert.Nil(t, res.WinnerID)

	var reloaded domain.Listing
	require.NoError(t, db.Where("listing_id = ?", listing.ListingID).First(&reloaded).Error)
	assert.False(t, reloaded.Active)
	assert.Nil(t, reloaded.WinnerID)
}

func TestCloseListing_WinnerIsHighestBidder(t *testing.T) {
	svc, db := setupBidsTest(t)
	owner := createUser(t, db, "owner")
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	listing := createListing(t, db, owner, 100)
	ctx := context.Background()

	_, err := svc.PlaceBid(ctx, listing.ListingID, alice.UserID, 150)
	require.NoError(t, err)
	_, err = svc.PlaceBid(ctx, listing.ListingID, bob.UserID, 200)
	require.NoError(t, err)

	res, err := svc.CloseListing(ctx, listing.ListingID, owner.UserID)
	require.NoError(t, err)
	require.NotNil(t, res.WinnerID)
	assert.Equal(t, bob.UserID, *res.WinnerID)
	require.NotNil(t, res.MaxBid)
	assert.Equal(t, int64(200), *res.MaxBid)

	var reloaded domain.Listing
	require.NoError(t, db.Where("listing_id = ?", listing.ListingID).First(&reloaded).Error)
	assert.False(t, reloaded.Active)
	require.NotNil(t, reloaded.WinnerID)
	assert.Equal(t, bob.UserID, *reloaded.WinnerID)
}

func TestCloseListing_TieAtMaxEarliestWins(t *testing.T) {
	svc, db := setupBidsTest(t)
	owner := createUser(t, db, "owner")
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	listing := createListing(t, db, owner, 100)

	// Two bids at the same amount can only arise through concurrent placement;
	// seed them directly with distinct timestamps.
	require.NoError(t, db.Create(&domain.Bid{
		ListingID: listing.ListingID,
		BidderID:  alice.UserID,
		Amount:    200,
		CreatedAt: time.Now().Add(-time.Minute),
	}).Error)
	require.NoError(t, db.Create(&domain.Bid{
		ListingID: listing.ListingID,
		BidderID:  bob.UserID,
		Amount:    200,
	}).Error)

	res, err := svc.CloseListing(context.Background(), listing.ListingID, owner.UserID)
	require.NoError(t, err)
	require.NotNil(t, res.WinnerID)
	assert.Equal(t, alice.UserID, *res.WinnerID)
	require.NotNil(t, res.MaxBid)
	assert.Equal(t, int64(200), *res.MaxBid)
}

func TestCloseListing_Irreversible(t *testing.T) {
	svc, db := setupBidsTest(t)
	owner := createUser(t, db, "owner")
	listing := createListing(t, db, owner, 100)
	ctx := context.Background()

	_, err := svc.CloseListing(ctx, listing.ListingID, owner.UserID)
	require.NoError(t, err)

	_, err = svc.CloseListing(ctx, listing.ListingID, owner.UserID)
	assert.ErrorIs(t, err, ErrListingClosed)
}

func TestCloseListing_NotFound(t *testing.T) {
	svc, db := setupBidsTest(t)
	owner := createUser(t, db, "owner")

	_, err := svc.CloseListing(context.Background(), uuid.New(), owner.UserID)
	assert.ErrorIs(t, err, ErrListingNotFound)
}

// Worked example: start at 100, reject 100, accept 150, reject 120, close,
// winner is the 150 bidder.
func TestBiddingFlow_WorkedExample(t *testing.T) {
	svc, db := setupBidsTest(t)
	owner := createUser(t, db, "owner")
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	listing := createListing(t, db, owner, 100)
	ctx := context.Background()

	_, err := svc.PlaceBid(ctx, listing.ListingID, alice.UserID, 100)
	assert.ErrorIs(t, err, ErrBidTooLow)

	res, err := svc.PlaceBid(ctx, listing.ListingID, alice.UserID, 150)
	require.NoError(t, err)
	assert.Equal(t, int64(150), res.NewMax)

	_, err = svc.PlaceBid(ctx, listing.ListingID, bob.UserID, 120)
	assert.ErrorIs(t, err, ErrBidTooLow)

	closed, err := svc.CloseListing(ctx, listing.ListingID, owner.UserID)
	require.NoError(t, err)
	require.NotNil(t, closed.WinnerID)
	assert.Equal(t, alice.UserID, *closed.WinnerID)
}

func TestListForListing_HighestFirst(t *testing.T) {
	svc, db := setupBidsTest(t)
	owner := createUser(t, db, "owner")
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	listing := createListing(t, db, owner, 10)
	ctx := context.Background()

	_, err := svc.PlaceBid(ctx, listing.ListingID, alice.UserID, 20)
	require.NoError(t, err)
	_, err = svc.PlaceBid(ctx, listing.ListingID, bob.UserID, 30)
	require.NoError(t, err)

	bids, err := svc.ListForListing(ctx, listing.ListingID)
	require.NoError(t, err)
	require.Len(t, bids, 2)
	assert.Equal(t, int64(30), bids[0].Amount)
	assert.Equal(t, int64(20), bids[1].Amount)
}
