package order

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

func TestParseStatus(t *testing.T) {
	assert.Equal(t, StatusPending, ParseStatus(nil))
	assert.Equal(t, StatusPending, ParseStatus(strPtr("")))
	assert.Equal(t, StatusCompleted, ParseStatus(strPtr("completed")))
	assert.Equal(t, StatusCancelled, ParseStatus(strPtr(" Cancelled ")))
	assert.Equal(t, StatusPending, ParseStatus(strPtr("shipped")))

	assert.Equal(t, "Concluído", StatusCompleted.Label())
	assert.Equal(t, "Pendente", StatusPending.Label())
}

func TestDeliveryFee(t *testing.T) {
	items := []Item{{TotalPrice: dec("79.80")}}
	assert.True(t, DeliveryFee(dec("92.70"), items).Equal(dec("12.90")))
	assert.True(t, DeliveryFee(dec("50"), items).IsZero())
	assert.True(t, DeliveryFee(dec("10"), nil).Equal(dec("10")))
}

const (
	clientID = "3c0a6f52-9b1e-4d27-8f6a-1d2e3f4a5b6c"
	order1   = "a1b2c3d4-0000-4000-8000-000000000001"
	order2   = "a1b2c3d4-0000-4000-8000-000000000002"
)

func TestPostgresRepository_ListByClient(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	newer := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM orders o").WithArgs(clientID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_number", "total_amount", "status", "created_at", "address"}).
			AddRow(order2, "002", "92.70", nil, newer, "Rua X, 1").
			AddRow(order1, "001", "89.90", "completed", older, "Rua X, 1"))
	mock.ExpectQuery("FROM order_items i").WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "product_id", "name", "size", "quantity", "unit_price", "total_price"}).
			AddRow(order1, "p1", "Vestido", "M", 1, "89.90", "89.90").
			AddRow(order2, "p2", "Camiseta", "M", 2, "39.90", "79.80"))

	orders, err := repo.ListByClient(context.Background(), clientID)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "002", orders[0].Number)
	assert.Equal(t, StatusPending, orders[0].Status)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Camiseta", orders[0].Items[0].ProductName)
	assert.True(t, orders[0].DeliveryFee.Equal(dec("12.90")))

	assert.Equal(t, StatusCompleted, orders[1].Status)
	assert.Equal(t, "Concluído", orders[1].StatusLabel)
	assert.True(t, orders[1].DeliveryFee.IsZero())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ItemsKeepInsertionOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	created := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM orders o").WithArgs(clientID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_number", "total_amount", "status", "created_at", "address"}).
			AddRow(order1, "001", "150.00", "completed", created, "Rua X, 1"))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY i.order_id, i.ctid")).WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "product_id", "name", "size", "quantity", "unit_price", "total_price"}).
			AddRow(order1, "ffff", "Vestido", "M", 1, "89.90", "89.90").
			AddRow(order1, "0000", "Cropped", "P", 1, "29.90", "29.90").
			AddRow(order1, "8888", "Camiseta", "G", 1, "30.20", "30.20"))

	orders, err := repo.ListByClient(context.Background(), clientID)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	names := make([]string, 0, len(orders[0].Items))
	for _, it := range orders[0].Items {
		names = append(names, it.ProductName)
	}
	assert.Equal(t, []string{"Vestido", "Cropped", "Camiseta"}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_UnknownClient(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	orders, err := repo.ListByClient(context.Background(), "not-a-uuid")
	require.NoError(t, err)
	assert.Empty(t, orders)

	mock.ExpectQuery("FROM orders o").WithArgs(clientID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_number", "total_amount", "status", "created_at", "address"}))
	orders, err = repo.ListByClient(context.Background(), clientID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	assert.NoError(t, mock.ExpectationsWereMet())
}

type failingRepo struct{}

func (failingRepo) ListByClient(context.Context, string) ([]Order, error) {
	return nil, errors.New("connection refused")
}

func makeApp(repo Repository) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-Client-ID"); v != "" {
			c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"sub": v}})
		}
		return c.Next()
	})
	NewHandler(NewService(repo)).RegisterProtectedRoutes(app)
	return app
}

func TestOrdersRoute(t *testing.T) {
	repo := NewInMemoryRepository(map[string][]Order{
		"c-1": {
			{ID: "o1", Number: "001", Total: dec("89.90"), CreatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Status: StatusCompleted},
			{ID: "o2", Number: "002", Total: dec("92.70"), CreatedAt: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), Status: StatusPending},
		},
	})
	app := makeApp(repo)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/orders", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

	req := httptest.NewRequest("GET", "/api/v1/orders", nil)
	req.Header.Set("X-Client-ID", "c-1")
	res, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var got []map[string]any
	b, _ := io.ReadAll(res.Body)
	require.NoError(t, json.Unmarshal(b, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "002", got[0]["number"])
	assert.Equal(t, "Pendente", got[0]["statusLabel"])
	assert.Equal(t, []any{}, got[0]["items"])
}

func TestOrdersRoute_BackendDown(t *testing.T) {
	app := makeApp(failingRepo{})
	req := httptest.NewRequest("GET", "/api/v1/orders", nil)
	req.Header.Set("X-Client-ID", "c-1")
	res, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	b, _ := io.ReadAll(res.Body)
	assert.JSONEq(t, `[]`, string(b))
}
