package stock

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// MovementType is the kind of stock movement passed to update_product_stock.
type MovementType string

const (
	MovementIn         MovementType = "in"
	MovementOut        MovementType = "out"
	MovementAdjustment MovementType = "adjustment"
)

func ParseMovementType(s string) (MovementType, error) {
	switch MovementType(s) {
	case MovementIn, MovementOut, MovementAdjustment:
		return MovementType(s), nil
	}
	return "", fmt.Errorf("unknown movement type %q", s)
}

// Movement is a request to change the stock of one product size.
// In and out movements carry a positive unit count; adjustments carry a signed delta.
type Movement struct {
	ProductID string
	Size      string
	Quantity  int
	Type      MovementType
	Reason    *string
}

// MovementRecord is a row of the stock_movements history.
type MovementRecord struct {
	ID            string       `json:"id"`
	ProductID     string       `json:"productId"`
	Size          string       `json:"size"`
	MovementType  MovementType `json:"movementType"`
	Quantity      int          `json:"quantity"`
	PreviousStock int          `json:"previousStock"`
	NewStock      int          `json:"newStock"`
	Reason        *string      `json:"reason,omitempty"`
	CreatedAt     *time.Time   `json:"createdAt,omitempty"`
}

// Apply returns the stock level after m is applied to current, and whether the
// result is acceptable (never below zero).
func Apply(current int, m Movement) (int, bool) {
	next := current
	switch m.Type {
	case MovementIn:
		next = current + m.Quantity
	case MovementOut:
		next = current - m.Quantity
	case MovementAdjustment:
		next = current + m.Quantity
	default:
		return current, false
	}
	if next < 0 {
		return current, false
	}
	return next, true
}

// MovementLog is an in-memory stock_movements history. The zero value is ready
// to use.
type MovementLog struct {
	mu      sync.RWMutex
	records []MovementRecord
}

// Record appends the movement m that took stock from prev to next.
func (l *MovementLog) Record(m Movement, prev, next int) MovementRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now().UTC()
	rec := MovementRecord{
		ID:            strconv.Itoa(len(l.records) + 1),
		ProductID:     m.ProductID,
		Size:          m.Size,
		MovementType:  m.Type,
		Quantity:      m.Quantity,
		PreviousStock: prev,
		NewStock:      next,
		Reason:        m.Reason,
		CreatedAt:     &now,
	}
	l.records = append(l.records, rec)
	return rec
}

// List returns the movements of productID, newest first.
func (l *MovementLog) List(productID string, limit int) []MovementRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]MovementRecord, 0)
	for i := len(l.records) - 1; i >= 0; i-- {
		if l.records[i].ProductID != productID {
			continue
		}
		out = append(out, l.records[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
