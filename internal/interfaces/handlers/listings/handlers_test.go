package listings

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"stayhub-backend/internal/application/listings"
	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/middleware"
	"stayhub-backend/internal/pkg/testdb"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupListingsTest(t *testing.T) (*fiber.App, *gorm.DB) {
	db := testdb.Open(t)
	h := &Handlers{Service: &listings.Service{DB: db}}
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	h.Register(app, middleware.RequireAuth())
	return app, db
}

func seed(t *testing.T, db *gorm.DB) *domain.Listing {
	host := &domain.Profile{ClerkUserID: "host_1", Email: "host@example.com"}
	require.NoError(t, db.Create(host).Error)
	l := &domain.Listing{
		HostID: host.ID, Title: "Mumbai Loft", Type: "loft", PricePerNight: 6000, Guests: 2,
		Address: "3 Marine Dr", City: "Mumbai", State: "MH", Country: "India", IsActive: true,
	}
	require.NoError(t, db.Create(l).Error)
	return l
}

func TestList_QueryParams(t *testing.T) {
	app, db := setupListingsTest(t)
	seed(t, db)

	cases := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"?city=mum", 1},
		{"?minPrice=6000&maxPrice=6000", 1},
		{"?minPrice=6001", 0},
		{"?guests=3", 0},
		{"?type=LOFT", 1},
		{"?q=marine", 0},
		{"?q=loft", 1},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", "/listings"+tc.query, nil))
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode, tc.query)
		var rows []map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
		assert.Len(t, rows, tc.want, tc.query)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/listings?guests=two", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Invalid query: guests must be an integer", body["error"])
}

func TestGet(t *testing.T) {
	app, db := setupListingsTest(t)
	l := seed(t, db)

	resp, err := app.Test(httptest.NewRequest("GET", "/listings/"+l.ID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var detail map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
	assert.Equal(t, "Mumbai Loft", detail["title"])
	assert.Equal(t, float64(0), detail["rating"])
	assert.Contains(t, detail, "host")

	resp, err = app.Test(httptest.NewRequest("GET", "/listings/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Listing not found", body["error"])
}

func TestQuote(t *testing.T) {
	app, db := setupListingsTest(t)
	l := seed(t, db)

	resp, err := app.Test(httptest.NewRequest("GET", "/listings/"+l.ID.String()+"/quote?check_in=2025-06-10&check_out=2025-06-13", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	var q map[string]int64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&q))
	assert.Equal(t, int64(3), q["nights"])
	assert.Equal(t, int64(18000), q["subtotal"])
	assert.Equal(t, int64(18000+2000+3000+1500), q["total"])

	// Missing dates quote nothing.
	resp, err = app.Test(httptest.NewRequest("GET", "/listings/"+l.ID.String()+"/quote", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&q))
	assert.Equal(t, int64(0), q["total"])

	resp, err = app.Test(httptest.NewRequest("GET", "/listings/"+l.ID.String()+"/quote?check_in=10/06/2025", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestCreate_RequiresAuth(t *testing.T) {
	app, _ := setupListingsTest(t)
	resp, err := app.Test(httptest.NewRequest("POST", "/listings", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "User must be signed in", body["error"])
}
