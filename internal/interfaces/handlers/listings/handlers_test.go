package listings

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	listsvc "gavel-backend/internal/application/listings"
	"gavel-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupListingsTest(t *testing.T) (*Handlers, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Category{}, &domain.Brand{}, &domain.ProductModel{},
		&domain.Listing{}, &domain.Bid{}, &domain.Comment{}, &domain.WatchlistEntry{},
		&domain.ListingEvent{},
	))
	return &Handlers{Service: &listsvc.Service{DB: db}}, db
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
	app.Post("/create-listing", h.CreateListing)
	app.Get("/get-all-listings", h.GetAllListings)
	app.Get("/get-listing/:listing_id", h.GetListingByID)
	app.Get("/get-won-listings", h.GetWonListings)
	return app
}

func seedUser(t *testing.T, db *gorm.DB) *domain.User {
	u := &domain.User{Username: "seller", Email: "seller@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestCreateListing_Success(t *testing.T) {
	h, db := setupListingsTest(t)
	owner := seedUser(t, db)
	app := newApp(h, owner.UserID.String())

	body, _ := json.Marshal(map[string]interface{}{
		"name":         "Old radio",
		"starting_bid": 100,
		"description":  "Works fine",
		"url":          "http://example.com/radio.jpg",
	})
	req := httptest.NewRequest("POST", "/create-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "success", result["status"])
	data := result["data"].(map[string]interface{})
	assert.Equal(t, true, data["active"])
	assert.Nil(t, data["winner_id"])
}

func TestCreateListing_MissingStartingBid(t *testing.T) {
	h, db := setupListingsTest(t)
	owner := seedUser(t, db)
	app := newApp(h, owner.UserID.String())

	body, _ := json.Marshal(map[string]interface{}{
		"name":        "Old radio",
		"description": "Works fine",
	})
	req := httptest.NewRequest("POST", "/create-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	errObj := result["error"].(map[string]interface{})
	assert.Equal(t, "Missing required field: starting_bid", errObj["message"])
}

func TestCreateListing_UnknownCategory(t *testing.T) {
	h, db := setupListingsTest(t)
	owner := seedUser(t, db)
	app := newApp(h, owner.UserID.String())

	body, _ := json.Marshal(map[string]interface{}{
		"name":         "Old radio",
		"starting_bid": 100,
		"description":  "Works fine",
		"category_id":  "00000000-0000-0000-0000-00000000dead",
	})
	req := httptest.NewRequest("POST", "/create-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestGetAllListings_EmptyDB(t *testing.T) {
	h, _ := setupListingsTest(t)
	app := newApp(h, "")

	req := httptest.NewRequest("GET", "/get-all-listings", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "Listings fetched successfully", result["message"])
}

func TestGetAllListings_UnknownCategoryFilter(t *testing.T) {
	h, _ := setupListingsTest(t)
	app := newApp(h, "")

	req := httptest.NewRequest("GET", "/get-all-listings?category=Nope", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestGetListingByID_InvalidUUID(t *testing.T) {
	h, _ := setupListingsTest(t)
	app := newApp(h, "")

	req := httptest.NewRequest("GET", "/get-listing/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestGetWonListings_RequiresSession(t *testing.T) {
	h, _ := setupListingsTest(t)
	app := newApp(h, "")

	req := httptest.NewRequest("GET", "/get-won-listings", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
