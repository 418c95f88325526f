package checkout

import (
	"errors"
	"strings"

	"github.com/sbilus/storefront-backend/internal/apperror"
	"github.com/sbilus/storefront-backend/internal/cart"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrBlankAddress = errors.New("delivery address is blank")
)

// Summary is everything the order message is rendered from.
type Summary struct {
	Items       []cart.LineItem `json:"items"`
	Address     string          `json:"address"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Total       decimal.Decimal `json:"total"`
}

// Compose validates a checkout and computes its totals. An empty cart or a
// blank address blocks it.
func Compose(items []cart.LineItem, address string, deliveryFee decimal.Decimal) (Summary, error) {
	if len(items) == 0 {
		return Summary{}, validation("empty_cart", ErrEmptyCart)
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return Summary{}, validation("blank_address", ErrBlankAddress)
	}
	if deliveryFee.IsNegative() {
		deliveryFee = decimal.Zero
	}

	c := cart.Cart{Items: items}
	return Summary{
		Items:       items,
		Address:     address,
		Subtotal:    c.Subtotal(),
		DeliveryFee: deliveryFee,
		Total:       c.Total(deliveryFee),
	}, nil
}

func validation(reason string, err error) error {
	return &apperror.Error{Op: "checkout", Kind: apperror.KindValidationFailed, Reason: reason, Err: err}
}
