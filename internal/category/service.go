package category

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/sbilus/storefront-backend/internal/apperror"
)

// Service provides business logic for categories.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns every category with its display icon. A backend failure is
// logged and yields an empty list.
func (s *Service) List(ctx context.Context) []Category {
	items, err := s.repo.List(ctx)
	if err != nil {
		log.Printf("[WARN] category: list: %v", err)
		return []Category{}
	}
	out := make([]Category, 0, len(items))
	for _, c := range items {
		out = append(out, Decorate(c))
	}
	return out
}

func (s *Service) GetByName(ctx context.Context, name string) (Category, error) {
	c, err := s.repo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Category{}, ErrNotFound
		}
		return Category{}, apperror.Fetch("category.GetByName", err)
	}
	return Decorate(c), nil
}
