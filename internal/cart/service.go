package cart

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/sbilus/storefront-backend/internal/apperror"
	"github.com/sbilus/storefront-backend/internal/product"
	"github.com/sbilus/storefront-backend/internal/stock"
)

// Service orchestrates cart operations.
type Service struct {
	repo     Repository
	products product.ServiceInterface
	now      func() time.Time
}

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products, now: time.Now}
}

func (s *Service) GetCart(ctx context.Context, sessionID string) (Cart, error) {
	c, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return Cart{}, apperror.Fetch("cart.Get", err)
	}
	return c, nil
}

// AddToCart loads the product, runs the add-to-cart gate on its current stock
// and stores the selection. A refused gate is a validation error carrying the
// gate reason.
func (s *Service) AddToCart(ctx context.Context, sessionID, productID, size string, qty int) (Cart, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return Cart{}, err
	}

	size = strings.TrimSpace(size)
	decision := stock.CanAddToCart(p.Sizes, size, qty)
	if !decision.Allowed {
		return Cart{}, apperror.Validation("cart.AddToCart", string(decision.Reason))
	}

	item := LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Image:     p.Image,
		Size:      size,
		Quantity:  decision.Quantity,
		UnitPrice: p.Price,
		Stock:     decision.MaxQuantity,
	}
	var line LineItem
	c, err := s.update(ctx, "cart.AddToCart", sessionID, func(c *Cart) error {
		line = c.Add(item)
		return nil
	})
	if err != nil {
		return Cart{}, err
	}
	log.Printf("[DEBUG] cart %s: %s size %s now x%d", sessionID, p.ID, size, line.Quantity)
	return c, nil
}

func (s *Service) SetQuantity(ctx context.Context, sessionID string, index, qty int) (Cart, error) {
	return s.update(ctx, "cart.SetQuantity", sessionID, func(c *Cart) error {
		_, err := c.SetQuantity(index, qty)
		return err
	})
}

func (s *Service) RemoveItem(ctx context.Context, sessionID string, index int) (Cart, error) {
	return s.update(ctx, "cart.RemoveItem", sessionID, func(c *Cart) error {
		return c.Remove(index)
	})
}

// ClearCart empties the session's cart.
func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return apperror.Fetch("cart.Clear", err)
	}
	return nil
}

// update runs fn on the stored cart as one step. Errors from fn come back
// unchanged; storage failures become FetchFailed.
func (s *Service) update(ctx context.Context, op, sessionID string, fn func(*Cart) error) (Cart, error) {
	var fnErr error
	c, err := s.repo.Update(ctx, sessionID, func(c *Cart) error {
		if fnErr = fn(c); fnErr != nil {
			return fnErr
		}
		c.UpdatedAt = s.now().UTC()
		return nil
	})
	if fnErr != nil {
		return Cart{}, fnErr
	}
	if err != nil {
		return Cart{}, apperror.Fetch(op, err)
	}
	return c, nil
}

// IsNotFound reports errors that the handler answers with 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrItemNotFound) || errors.Is(err, product.ErrNotFound)
}
