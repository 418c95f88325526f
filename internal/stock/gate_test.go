package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAddToCart(t *testing.T) {
	sizes := []SizeStock{{"P", 3}, {"G", 1}}

	cases := []struct {
		name     string
		sizes    []SizeStock
		size     string
		qty      int
		allowed  bool
		reason   Reason
		max      int
		quantity int
		label    string
	}{
		{"no stock at all", nil, "P", 1, false, ReasonOutOfStock, 0, 0, LabelSoldOut},
		{"no stock ignores selection", []SizeStock{}, "", 3, false, ReasonOutOfStock, 0, 0, LabelSoldOut},
		{"size not selected", sizes, "", 1, false, ReasonSizeNotSelected, 0, 0, LabelPickSize},
		{"size absent", []SizeStock{{"P", 3}}, "M", 1, false, ReasonSizeOutOfStock, 0, 0, LabelUnavailable},
		{"within stock", sizes, "P", 2, true, ReasonNone, 3, 2, LabelAddToCart},
		{"clamped to stock", []SizeStock{{"P", 3}}, "P", 5, true, ReasonNone, 3, 3, LabelAddToCart},
		{"clamped up to one", sizes, "G", 0, true, ReasonNone, 1, 1, LabelAddToCart},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := CanAddToCart(tc.sizes, tc.size, tc.qty)
			assert.Equal(t, tc.allowed, d.Allowed)
			assert.Equal(t, tc.reason, d.Reason)
			assert.Equal(t, tc.max, d.MaxQuantity)
			assert.Equal(t, tc.quantity, d.Quantity)
			assert.Equal(t, tc.label, d.ButtonLabel)
			if !tc.allowed {
				assert.NotEmpty(t, d.Message)
			}
		})
	}
}

func TestStepper(t *testing.T) {
	assert.Equal(t, 3, Increment(3, 3), "increment past max is a no-op")
	assert.Equal(t, 3, Increment(2, 3))
	assert.Equal(t, 1, Decrement(1), "decrement below one is a no-op")
	assert.Equal(t, 1, Decrement(2))
	assert.Equal(t, 0, Clamp(4, 0))
}

func TestAvailabilityOf(t *testing.T) {
	a := AvailabilityOf([]SizeStock{{"P", 5}, {"M", 8}, {"G", 3}, {"GG", 2}})
	assert.Equal(t, StateInStock, a.State)
	assert.Equal(t, 18, a.TotalUnits)
	assert.Equal(t, []string{"P", "M", "G"}, a.Preview)
	assert.Equal(t, 1, a.MoreSizes)

	empty := AvailabilityOf(nil)
	assert.Equal(t, StateOutOfStock, empty.State)
	assert.NotNil(t, empty.Sizes)
	assert.Zero(t, empty.MoreSizes)
}

func TestApply(t *testing.T) {
	next, ok := Apply(3, Movement{Type: MovementOut, Quantity: 2})
	assert.True(t, ok)
	assert.Equal(t, 1, next)

	_, ok = Apply(1, Movement{Type: MovementOut, Quantity: 2})
	assert.False(t, ok, "stock never goes negative")

	next, ok = Apply(1, Movement{Type: MovementAdjustment, Quantity: -1})
	assert.True(t, ok)
	assert.Zero(t, next)
}
