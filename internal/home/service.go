package home

import (
	"context"

	"github.com/sbilus/storefront-backend/internal/category"
	"github.com/sbilus/storefront-backend/internal/product"
)

// Service assembles the home page from the catalog.
type Service struct {
	categories *category.Service
	products   *product.Service
	contactURL string
}

func NewService(categories *category.Service, products *product.Service, contactURL string) *Service {
	return &Service{categories: categories, products: products, contactURL: contactURL}
}

// Page returns the categories and up to perSection products of each section.
// Backend failures leave the affected part empty.
func (s *Service) Page(ctx context.Context, perSection int) Page {
	if perSection <= 0 {
		perSection = DefaultSectionSize
	}
	page := Page{
		Categories: s.categories.List(ctx),
		Sections:   make([]SectionBlock, 0, len(product.Sections)),
		ContactURL: s.contactURL,
	}
	for _, sec := range product.Sections {
		page.Sections = append(page.Sections, SectionBlock{
			Key:      sec,
			Title:    sec.Title(),
			Products: s.products.Section(ctx, sec, perSection),
			SeeAll:   "/products?section=" + string(sec),
		})
	}
	return page
}
