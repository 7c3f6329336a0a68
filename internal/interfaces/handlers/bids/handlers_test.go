package bids

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	bidsvc "gavel-backend/internal/application/bids"
	"gavel-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupBidsTest(t *testing.T) (*Handlers, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Listing{}, &domain.Bid{}, &domain.ListingEvent{},
	))
	return &Handlers{Service: &bidsvc.Service{DB: db}}, db
}

func newApp(h *Handlers, sessionUserID string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if sessionUserID != "" {
			c.Locals("user", map[string]interface{}{
				"user_id":  sessionUserID,
				"username": "tester",
				"email":    "tester@example.com",
			})
		}
		return c.Next()
	})
	app.Post("/place-bid", h.PlaceBid)
	app.Post("/close-listing", h.CloseListing)
	app.Get("/get-bids/:listing_id", h.GetBids)
	return app
}

func seedListing(t *testing.T, db *gorm.DB) (*domain.User, *domain.User, *domain.Listing) {
	owner := &domain.User{Username: "owner", Email: "owner@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(owner).Error)
	bidder := &domain.User{Username: "bidder", Email: "bidder@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(bidder).Error)
	listing := &domain.Listing{Name: "Old radio", StartingBid: 100, Description: "Works", OwnerID: owner.UserID, Active: true}
	require.NoError(t, db.Create(listing).Error)
	return owner, bidder, listing
}

func TestPlaceBid_Accepted(t *testing.T) {
	h, db := setupBidsTest(t)
	_, bidder, listing := seedListing(t, db)
	app := newApp(h, bidder.UserID.String())

	body, _ := json.Marshal(map[string]interface{}{"listing_id": listing.ListingID.String(), "amount": 150})
	req := httptest.NewRequest("POST", "/place-bid", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "success", result["status"])
	data := result["data"].(map[string]interface{})
	assert.Equal(t, float64(150), data["new_max"])
	assert.Equal(t, float64(1), data["bid_count"])
}

func TestPlaceBid_TooLowRejected(t *testing.T) {
	h, db := setupBidsTest(t)
	_, bidder, listing := seedListing(t, db)
	app := newApp(h, bidder.UserID.String())

	body, _ := json.Marshal(map[string]interface{}{"listing_id": listing.ListingID.String(), "amount": 100})
	req := httptest.NewRequest("POST", "/place-bid", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&domain.Bid{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestPlaceBid_SelfBidRejected(t *testing.T) {
	h, db := setupBidsTest(t)
	owner, _, listing := seedListing(t, db)
	app := newApp(h, owner.UserID.String())

	body, _ := json.Marshal(map[string]interface{}{"listing_id": listing.ListingID.String(), "amount": 500})
	req := httptest.NewRequest("POST", "/place-bid", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)
}

func TestPlaceBid_MissingFields(t *testing.T) {
	h, db := setupBidsTest(t)
	_, bidder, _ := seedListing(t, db)
	app := newApp(h, bidder.UserID.String())

	body, _ := json.Marshal(map[string]interface{}{})
	req := httptest.NewRequest("POST", "/place-bid", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestPlaceBid_UnknownListing404(t *testing.T) {
	h, db := setupBidsTest(t)
	_, bidder, _ := seedListing(t, db)
	app := newApp(h, bidder.UserID.String())

	body, _ := json.Marshal(map[string]interface{}{"listing_id": "00000000-0000-0000-0000-00000000dead", "amount": 500})
	req := httptest.NewRequest("POST", "/place-bid", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestCloseListing_ReturnsWinner(t *testing.T) {
	h, db := setupBidsTest(t)
	owner, bidder, listing := seedListing(t, db)
	require.NoError(t, db.Create(&domain.Bid{ListingID: listing.ListingID, BidderID: bidder.UserID, Amount: 200}).Error)
	app := newApp(h, owner.UserID.String())

	body, _ := json.Marshal(map[string]interface{}{"listing_id": listing.ListingID.String()})
	req := httptest.NewRequest("POST", "/close-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	data := result["data"].(map[string]interface{})
	assert.Equal(t, bidder.UserID.String(), data["winner_id"])
}

func TestGetBids_InvalidUUID(t *testing.T) {
	h, db := setupBidsTest(t)
	_, bidder, _ := seedListing(t, db)
	app := newApp(h, bidder.UserID.String())

	req := httptest.NewRequest("GET", "/get-bids/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
