package stock

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/sbilus/storefront-backend/internal/apperror"
)

func TestServiceAdjust(t *testing.T) {
	repo := NewInMemoryRepository(map[string]map[string]int{"p1": {"M": 2}})
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.Adjust(ctx, Movement{ProductID: "p1", Size: "M", Quantity: 1, Type: MovementOut}); err != nil {
		t.Fatalf("expected adjustment to succeed, got %v", err)
	}
	if got := repo.Level("p1", "M"); got != 1 {
		t.Fatalf("expected stock 1, got %d", got)
	}

	err := svc.Adjust(ctx, Movement{ProductID: "p1", Size: "M", Quantity: 5, Type: MovementOut})
	if !errors.Is(err, apperror.ErrRPCFailed) || !errors.Is(err, ErrAdjustmentRejected) {
		t.Fatalf("expected rejected rpc error, got %v", err)
	}

	err = svc.Adjust(ctx, Movement{ProductID: "p1", Size: "M", Quantity: 1, Type: "transfer"})
	if !errors.Is(err, apperror.ErrValidationFailed) {
		t.Fatalf("expected validation error, got %v", err)
	}
	err = svc.Adjust(ctx, Movement{ProductID: "p1", Size: "M", Quantity: -1, Type: MovementIn})
	if apperror.ReasonOf(err) != "quantity_must_be_positive" {
		t.Fatalf("expected quantity_must_be_positive, got %v", err)
	}

	moves := svc.Movements(ctx, "p1", 0)
	if len(moves) != 1 || moves[0].NewStock != 1 || moves[0].PreviousStock != 2 {
		t.Fatalf("unexpected movements %+v", moves)
	}
}

func TestPostgresAdjustStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(adjustStockQuery)).
		WithArgs("p1", "G", 3, "in", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"update_product_stock"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(adjustStockQuery)).
		WithArgs("p1", "G", 9, "out", sqlmock.AnyArg()).
		WillReturnError(errors.New("insufficient stock"))

	ok, err := repo.AdjustStock(context.Background(), Movement{ProductID: "p1", Size: "G", Quantity: 3, Type: MovementIn})
	if err != nil || !ok {
		t.Fatalf("expected success, got ok=%v err=%v", ok, err)
	}

	svc := NewService(repo)
	err = svc.Adjust(context.Background(), Movement{ProductID: "p1", Size: "G", Quantity: 9, Type: MovementOut})
	if !errors.Is(err, apperror.ErrRPCFailed) {
		t.Fatalf("expected rpc failure, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresListMovements(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"id", "product_id", "size", "movement_type", "quantity", "previous_stock", "new_stock", "reason", "created_at"}).
		AddRow("m1", "p1", "P", "out", 1, 4, 3, "sale", nil)
	mock.ExpectQuery("FROM stock_movements").WithArgs("p1", 10).WillReturnRows(rows)

	out, err := repo.ListMovements(context.Background(), "p1", 10)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(out) != 1 || out[0].MovementType != MovementOut || out[0].Reason == nil || *out[0].Reason != "sale" {
		t.Fatalf("unexpected records %+v", out)
	}
	if out[0].CreatedAt != nil {
		t.Fatalf("expected nil createdAt for NULL column")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStockRoutes(t *testing.T) {
	repo := NewInMemoryRepository(map[string]map[string]int{"p1": {"P": 1}})
	h := NewHandler(NewService(repo))
	app := fiber.New()
	h.RegisterProtectedRoutes(app)

	req := httptest.NewRequest("POST", "/api/v1/product/p1/stock", strings.NewReader(`{"size":"P","quantity":4,"movementType":"in"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	req2 := httptest.NewRequest("POST", "/api/v1/product/p1/stock", strings.NewReader(`{"size":"P","quantity":10,"movementType":"out"}`))
	req2.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("expected 502 for rejected adjustment, got %d", res2.StatusCode)
	}

	req3 := httptest.NewRequest("POST", "/api/v1/product/p1/stock", strings.NewReader(`{"size":"","quantity":1,"movementType":"in"}`))
	req3.Header.Set("Content-Type", "application/json")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for missing size, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), "size_required") {
		t.Fatalf("expected reason in body, got %s", b3)
	}

	req4 := httptest.NewRequest("GET", "/api/v1/product/p1/stock/movements", nil)
	res4, _ := app.Test(req4)
	b4, _ := io.ReadAll(res4.Body)
	if !strings.Contains(string(b4), `"newStock":5`) {
		t.Fatalf("expected movement history, got %s", b4)
	}
}
