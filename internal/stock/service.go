package stock

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/sbilus/storefront-backend/internal/apperror"
)

// ErrAdjustmentRejected is returned when the procedure answers false.
var ErrAdjustmentRejected = errors.New("stock adjustment rejected")

const defaultMovementsLimit = 50

// Service runs stock adjustments. Checkout never calls it; stock is decremented
// only through this explicit step.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Adjust validates m and calls the stock procedure. Procedure failures are
// returned as apperror RPC errors.
func (s *Service) Adjust(ctx context.Context, m Movement) error {
	m.ProductID = strings.TrimSpace(m.ProductID)
	m.Size = strings.TrimSpace(m.Size)
	if reason := validateMovement(m); reason != "" {
		return apperror.Validation("stock.Adjust", reason)
	}

	ok, err := s.repo.AdjustStock(ctx, m)
	if err != nil {
		return apperror.RPC("stock.Adjust", err)
	}
	if !ok {
		return apperror.RPC("stock.Adjust", ErrAdjustmentRejected)
	}
	return nil
}

func validateMovement(m Movement) string {
	switch {
	case m.ProductID == "":
		return "product_required"
	case m.Size == "":
		return "size_required"
	case m.Quantity == 0:
		return "quantity_required"
	}
	if _, err := ParseMovementType(string(m.Type)); err != nil {
		return "invalid_movement_type"
	}
	if m.Type != MovementAdjustment && m.Quantity < 0 {
		return "quantity_must_be_positive"
	}
	return ""
}

// Movements returns the recorded history of productID, newest first. Read
// failures degrade to an empty list.
func (s *Service) Movements(ctx context.Context, productID string, limit int) []MovementRecord {
	if limit <= 0 {
		limit = defaultMovementsLimit
	}
	out, err := s.repo.ListMovements(ctx, productID, limit)
	if err != nil {
		log.Printf("[WARN] stock: list movements for %s: %v", productID, err)
		return []MovementRecord{}
	}
	return out
}
