package product

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/sbilus/storefront-backend/internal/stock"
	"github.com/shopspring/decimal"
)

// Row mirrors a row of the `products` table, with the category name joined in.
// JSON tags follow the snake_case column names of the hosted backend.
type Row struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Description      *string          `json:"description,omitempty"`
	Price            decimal.Decimal  `json:"price"`
	PromotionalPrice *decimal.Decimal `json:"promotional_price,omitempty"`
	Images           []string         `json:"images,omitempty"`
	Sizes            []string         `json:"sizes,omitempty"`
	CategoryID       *string          `json:"category_id,omitempty"`
	CategoryName     *string          `json:"category_name,omitempty"`
	IsNew            *bool            `json:"is_new,omitempty"`
	Stock            json.RawMessage  `json:"stock,omitempty"`
	Weight           *decimal.Decimal `json:"weight,omitempty"`
	Height           *decimal.Decimal `json:"height,omitempty"`
	Width            *decimal.Decimal `json:"width,omitempty"`
	Length           *decimal.Decimal `json:"length,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// Product is the view model served to the storefront.
type Product struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Price         decimal.Decimal    `json:"price"`
	OriginalPrice *decimal.Decimal   `json:"originalPrice,omitempty"`
	Image         string             `json:"image"`
	Images        []string           `json:"images"`
	CategoryID    *string            `json:"categoryId,omitempty"`
	Category      string             `json:"category"`
	Sizes         []stock.SizeStock  `json:"sizes"`
	Availability  stock.Availability `json:"availability"`
	IsPromotion   bool               `json:"isPromotion"`
	IsNew         bool               `json:"isNew"`
	CreatedAt     time.Time          `json:"createdAt"`

	Stock stock.Source `json:"-"`
}

// TransformOptions carries the defaults the backend does not store.
type TransformOptions struct {
	DefaultSizeQuantity int
	FallbackImage       string
}

// Transform reshapes a backend row into the storefront view model.
//
// The stock column wins over the legacy sizes array; a promotional price lower
// than the list price becomes the charged price, and the list price is kept
// as the struck-through original.
func Transform(r Row, opts TransformOptions) Product {
	p := Product{
		ID:         r.ID,
		Name:       r.Name,
		Price:      r.Price,
		Images:     make([]string, 0, len(r.Images)),
		CategoryID: r.CategoryID,
		CreatedAt:  r.CreatedAt,
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.CategoryName != nil {
		p.Category = *r.CategoryName
	}
	if r.IsNew != nil {
		p.IsNew = *r.IsNew
	}
	if promo := r.PromotionalPrice; promo != nil && !promo.IsNegative() && promo.LessThan(r.Price) {
		original := r.Price
		p.Price = *promo
		p.OriginalPrice = &original
		p.IsPromotion = true
	}

	for _, img := range r.Images {
		if strings.TrimSpace(img) != "" {
			p.Images = append(p.Images, img)
		}
	}
	p.Image = opts.FallbackImage
	if len(p.Images) > 0 {
		p.Image = p.Images[0]
	}

	p.Stock = stockSource(r, opts.DefaultSizeQuantity)
	p.Sizes = stock.Normalize(p.Stock)
	p.Availability = stock.AvailabilityOf(p.Sizes)
	return p
}

func stockSource(r Row, defaultQty int) stock.Source {
	if len(r.Stock) > 0 {
		src, err := stock.DecodeJSON(r.Stock, defaultQty)
		if err == nil && !src.IsZero() {
			return src
		}
		if err != nil {
			log.Printf("[WARN] product %s: unreadable stock column: %v", r.ID, err)
		}
	}
	if r.Sizes != nil {
		return stock.LabelList(defaultQty, r.Sizes...)
	}
	return stock.Source{}
}

// Section is one of the home page product sections.
type Section string

const (
	SectionLaunches   Section = "lancamentos"
	SectionPromotions Section = "promocoes"
	SectionNew        Section = "novidades"
)

// Sections lists the home page sections in display order.
var Sections = []Section{SectionLaunches, SectionPromotions, SectionNew}

func (s Section) Title() string {
	switch s {
	case SectionLaunches:
		return "Lançamentos"
	case SectionPromotions:
		return "Promoções"
	case SectionNew:
		return "Novidades"
	}
	return string(s)
}

// Filter is the query of the product list screen. Category takes precedence
// over Section.
type Filter struct {
	Category string
	Section  Section
}
