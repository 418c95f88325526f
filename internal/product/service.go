package product

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"github.com/sbilus/storefront-backend/internal/apperror"
	"github.com/sbilus/storefront-backend/internal/stock"
)

// ServiceInterface is what other features need from the catalog.
type ServiceInterface interface {
	GetByID(ctx context.Context, id string) (Product, error)
}

type Service struct {
	repo Repository
	opts TransformOptions
}

func NewService(repo Repository, opts TransformOptions) *Service {
	return &Service{repo: repo, opts: opts}
}

// List returns every product. Backend failures are logged and degrade to an
// empty list.
func (s *Service) List(ctx context.Context) []Product {
	rows, err := s.repo.List(ctx)
	if err != nil {
		log.Printf("[WARN] product: list: %v", err)
		return []Product{}
	}
	return s.transformAll(rows)
}

// GetByID returns ErrNotFound for unknown ids and a FetchFailed error when
// the backend could not be read.
func (s *Service) GetByID(ctx context.Context, id string) (Product, error) {
	row, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Product{}, ErrNotFound
		}
		log.Printf("[WARN] product: get %s: %v", id, err)
		return Product{}, apperror.Fetch("product.GetByID", err)
	}
	return Transform(row, s.opts), nil
}

func (s *Service) ListByCategory(ctx context.Context, name string) []Product {
	rows, err := s.repo.ListByCategoryName(ctx, strings.TrimSpace(name))
	if err != nil {
		log.Printf("[WARN] product: list by category %q: %v", name, err)
		return []Product{}
	}
	return s.transformAll(rows)
}

// Browse applies the product list filter. An unknown section returns every
// product.
func (s *Service) Browse(ctx context.Context, f Filter) []Product {
	if f.Category != "" {
		return s.ListByCategory(ctx, f.Category)
	}
	all := s.List(ctx)
	if f.Section == "" {
		return all
	}
	return filterSection(all, f.Section)
}

// Section returns up to limit products of a home page section.
func (s *Service) Section(ctx context.Context, section Section, limit int) []Product {
	out := filterSection(s.List(ctx), section)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func filterSection(all []Product, section Section) []Product {
	out := make([]Product, 0, len(all))
	switch section {
	case SectionLaunches:
		out = append(out, all...)
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	case SectionPromotions:
		for _, p := range all {
			if p.IsPromotion {
				out = append(out, p)
			}
		}
	case SectionNew:
		for _, p := range all {
			if p.IsNew {
				out = append(out, p)
			}
		}
	default:
		out = append(out, all...)
	}
	return out
}

// CheckAvailability runs the add-to-cart gate for a selection on a product.
func (s *Service) CheckAvailability(ctx context.Context, id, size string, qty int) (stock.Decision, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return stock.Decision{}, err
	}
	return stock.CanAddToCart(p.Sizes, size, qty), nil
}

// ResetProducts replaces all products with the given list (used for dev / seeding).
func (s *Service) ResetProducts(ctx context.Context, rows []Row) error {
	return s.repo.Reset(ctx, rows)
}

func (s *Service) transformAll(rows []Row) []Product {
	out := make([]Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, Transform(r, s.opts))
	}
	return out
}
