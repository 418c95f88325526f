package order

import (
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status of an order as stored by the backend.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus reads a stored status. Null and unknown values read as pending;
// unknown ones are logged.
func ParseStatus(raw *string) Status {
	if raw == nil {
		return StatusPending
	}
	switch s := Status(strings.ToLower(strings.TrimSpace(*raw))); s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return s
	case "":
		return StatusPending
	}
	log.Printf("[WARN] order: unknown status %q read as pending", *raw)
	return StatusPending
}

// Label is the pt-BR badge text of the profile screen.
func (s Status) Label() string {
	switch s {
	case StatusCompleted:
		return "Concluído"
	case StatusCancelled:
		return "Cancelado"
	}
	return "Pendente"
}

// Item is a row of `order_items` with the product name joined in.
type Item struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Size        string          `json:"size"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// Order is a historical purchase of a client.
type Order struct {
	ID          string          `json:"id"`
	Number      string          `json:"number"`
	Items       []Item          `json:"items"`
	Total       decimal.Decimal `json:"total"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Address     string          `json:"address"`
	CreatedAt   time.Time       `json:"date"`
	Status      Status          `json:"status"`
	StatusLabel string          `json:"statusLabel"`
}

// DeliveryFee is what the order total carries beyond its items, never
// negative.
func DeliveryFee(total decimal.Decimal, items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.TotalPrice)
	}
	fee := total.Sub(sum)
	if fee.IsNegative() {
		return decimal.Zero
	}
	return fee
}
