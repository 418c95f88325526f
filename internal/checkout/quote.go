package checkout

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// DeliveryQuoter prices delivery to a free-text address.
type DeliveryQuoter interface {
	Quote(ctx context.Context, address string) (decimal.Decimal, error)
}

// FlatRateQuoter charges the same fee for any non-blank address.
type FlatRateQuoter struct {
	Fee decimal.Decimal
}

func (q FlatRateQuoter) Quote(ctx context.Context, address string) (decimal.Decimal, error) {
	if strings.TrimSpace(address) == "" {
		return decimal.Zero, validation("blank_address", ErrBlankAddress)
	}
	if q.Fee.IsNegative() {
		return decimal.Zero, nil
	}
	return q.Fee, nil
}
