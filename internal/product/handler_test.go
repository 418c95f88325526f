package product

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sbilus/storefront-backend/internal/stock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrString(s string) *string { return &s }
func ptrBool(b bool) *bool       { return &b }

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptrPrice(s string) *decimal.Decimal {
	d := price(s)
	return &d
}

func seedRows() []Row {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []Row{
		{Name: "Tee", Price: price("49.90"), PromotionalPrice: ptrPrice("39.90"), CategoryName: ptrString("Tshirts"),
			Stock: []byte(`{"P":2,"M":0}`), CreatedAt: base},
		{Name: "Dress", Price: price("89.90"), CategoryName: ptrString("Vestidos"), IsNew: ptrBool(true),
			Sizes: []string{"P", "M"}, CreatedAt: base.Add(time.Hour)},
		{Name: "Top", Price: price("29.90"), CategoryName: ptrString("Cropped"), CreatedAt: base.Add(2 * time.Hour)},
	}
}

func newTestApp(allowReset bool) (*fiber.App, *InMemoryRepository) {
	repo := NewInMemoryRepository(seedRows())
	svc := NewService(repo, TransformOptions{DefaultSizeQuantity: 5, FallbackImage: "fallback.jpg"})
	app := fiber.New()
	NewHandler(svc, allowReset).RegisterPublicRoutes(app)
	return app, repo
}

func decodeBody(t *testing.T, body io.Reader, v any) {
	t.Helper()
	b, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, v), string(b))
}

func TestGetProducts_Filters(t *testing.T) {
	app, _ := newTestApp(false)

	cases := []struct {
		query string
		names []string
	}{
		{"", []string{"Tee", "Dress", "Top"}},
		{"?category=vestidos", []string{"Dress"}},
		{"?category=Acessorios", []string{}},
		{"?section=promocoes", []string{"Tee"}},
		{"?section=novidades", []string{"Dress"}},
		{"?section=lancamentos", []string{"Top", "Dress", "Tee"}},
		{"?section=unknown", []string{"Tee", "Dress", "Top"}},
		// category wins over section
		{"?category=Tshirts&section=novidades", []string{"Tee"}},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			res, err := app.Test(httptest.NewRequest("GET", "/api/v1/products"+tc.query, nil))
			require.NoError(t, err)
			require.Equal(t, fiber.StatusOK, res.StatusCode)

			var got []Product
			decodeBody(t, res.Body, &got)
			names := make([]string, 0, len(got))
			for _, p := range got {
				names = append(names, p.Name)
			}
			assert.Equal(t, tc.names, names)
		})
	}
}

func TestGetProduct(t *testing.T) {
	app, _ := newTestApp(false)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/product/1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var p Product
	decodeBody(t, res.Body, &p)
	assert.Equal(t, "Tee", p.Name)
	assert.True(t, p.Price.Equal(price("39.90")))
	require.NotNil(t, p.OriginalPrice)
	assert.True(t, p.OriginalPrice.Equal(price("49.90")))
	assert.Equal(t, "fallback.jpg", p.Image)
	require.Len(t, p.Sizes, 1)
	assert.Equal(t, "P", p.Sizes[0].Size)

	res, err = app.Test(httptest.NewRequest("GET", "/api/v1/product/999", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestCheckAvailability(t *testing.T) {
	app, _ := newTestApp(false)

	cases := []struct {
		body    string
		allowed bool
		reason  string
		qty     int
	}{
		{`{"size":"P","quantity":5}`, true, "", 2},
		{`{"size":"M","quantity":1}`, false, "size_out_of_stock", 0},
		{`{"size":"","quantity":1}`, false, "size_not_selected", 0},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("POST", "/api/v1/product/1/availability", strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, res.StatusCode)

		var got stock.Decision
		decodeBody(t, res.Body, &got)
		assert.Equal(t, tc.allowed, got.Allowed, tc.body)
		assert.Equal(t, stock.Reason(tc.reason), got.Reason, tc.body)
		assert.Equal(t, tc.qty, got.Quantity, tc.body)
	}

	// a product without any stock reports out_of_stock
	req := httptest.NewRequest("POST", "/api/v1/product/3/availability", strings.NewReader(`{"size":"P","quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	var got stock.Decision
	decodeBody(t, res.Body, &got)
	assert.Equal(t, stock.ReasonOutOfStock, got.Reason)
}

func TestResetProducts(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		app, _ := newTestApp(false)
		res, err := app.Test(httptest.NewRequest("POST", "/dev/reset-products", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
	})

	t.Run("sample catalog without body", func(t *testing.T) {
		app, repo := newTestApp(true)
		res, err := app.Test(httptest.NewRequest("POST", "/dev/reset-products", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, res.StatusCode)

		rows, _ := repo.List(context.Background())
		assert.Len(t, rows, len(sampleCatalog))
	})

	t.Run("explicit rows", func(t *testing.T) {
		app, repo := newTestApp(true)
		req := httptest.NewRequest("POST", "/dev/reset-products",
			strings.NewReader(`[{"name":"Only","price":"10.00","stock":{"U":1}}]`))
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, res.StatusCode)

		rows, _ := repo.List(context.Background())
		require.Len(t, rows, 1)
		assert.Equal(t, "Only", rows[0].Name)
	})

	t.Run("invalid rows", func(t *testing.T) {
		app, _ := newTestApp(true)
		req := httptest.NewRequest("POST", "/dev/reset-products", strings.NewReader(`[{"price":"-1"}]`))
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, res.StatusCode)

		var got map[string]map[string]string
		decodeBody(t, res.Body, &got)
		assert.Contains(t, got["errors"], "[0].name")
		assert.Contains(t, got["errors"], "[0].price")
	})
}
