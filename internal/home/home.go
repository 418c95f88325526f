package home

import (
	"github.com/sbilus/storefront-backend/internal/category"
	"github.com/sbilus/storefront-backend/internal/product"
)

// DefaultSectionSize is how many products each home section shows.
const DefaultSectionSize = 4

// SectionBlock is one product carousel of the home page.
type SectionBlock struct {
	Key      product.Section   `json:"key"`
	Title    string            `json:"title"`
	Products []product.Product `json:"products"`
	// SeeAll links to the full product list of the section.
	SeeAll string `json:"seeAll"`
}

// Page is the JSON shape of the home screen.
type Page struct {
	Categories []category.Category `json:"categories"`
	Sections   []SectionBlock      `json:"sections"`
	ContactURL string              `json:"contactUrl"`
}
