package checkout

import (
	"context"
	"errors"
	"log"

	"github.com/sbilus/storefront-backend/internal/apperror"
	"github.com/sbilus/storefront-backend/internal/cart"
	"github.com/shopspring/decimal"
)

// Options configures the chat handoff.
type Options struct {
	StoreName string
	BaseURL   string
	Phone     string
}

type Service struct {
	carts  *cart.Service
	quoter DeliveryQuoter
	opts   Options
}

func NewService(carts *cart.Service, quoter DeliveryQuoter, opts Options) *Service {
	return &Service{carts: carts, quoter: quoter, opts: opts}
}

// Quote is the "calculate delivery" step of the cart screen.
type Quote struct {
	Address     string          `json:"address"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Total       decimal.Decimal `json:"total"`
}

// Result is the rendered order and the link that hands it off.
type Result struct {
	Summary
	Message string `json:"message"`
	URL     string `json:"url"`
}

func (s *Service) Quote(ctx context.Context, sessionID, address string) (Quote, error) {
	c, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return Quote{}, err
	}
	fee, err := s.fee(ctx, address)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Address:     address,
		Subtotal:    c.Subtotal(),
		DeliveryFee: fee,
		Total:       c.Total(fee),
	}, nil
}

// Checkout composes the order of the session's cart, builds the handoff URL
// and clears the cart. Stock is not touched.
func (s *Service) Checkout(ctx context.Context, sessionID, address string) (Result, error) {
	c, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return Result{}, err
	}
	if len(c.Items) == 0 {
		return Result{}, validation("empty_cart", ErrEmptyCart)
	}
	fee, err := s.fee(ctx, address)
	if err != nil {
		return Result{}, err
	}
	summary, err := Compose(c.Items, address, fee)
	if err != nil {
		return Result{}, err
	}

	msg := Message(summary, s.opts.StoreName)
	res := Result{Summary: summary, Message: msg, URL: HandoffURL(s.opts.BaseURL, s.opts.Phone, msg)}

	if err := s.carts.ClearCart(ctx, sessionID); err != nil {
		log.Printf("[WARN] checkout: clear cart %s: %v", sessionID, err)
	}
	log.Printf("[DEBUG] checkout %s: %d items, total %s", sessionID, len(summary.Items), summary.Total.StringFixed(2))
	return res, nil
}

func (s *Service) fee(ctx context.Context, address string) (decimal.Decimal, error) {
	fee, err := s.quoter.Quote(ctx, address)
	if err != nil {
		if errors.Is(err, apperror.ErrValidationFailed) {
			return decimal.Zero, err
		}
		return decimal.Zero, apperror.Fetch("checkout.Quote", err)
	}
	return fee, nil
}
