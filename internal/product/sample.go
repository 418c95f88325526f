package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type sampleProduct struct {
	name, desc, category, image string
	price, promo                string
	stock                       string
	isNew                       bool
}

var sampleCatalog = []sampleProduct{
	{"T-shirt Básica Rosa", "T-shirt básica em algodão 100%, corte feminino, ideal para o dia a dia. Confortável e versátil.", "Tshirts",
		"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400&h=400&fit=crop", "49.90", "39.90", `{"P":5,"M":8,"G":3,"GG":2}`, false},
	{"Conjunto Moletom Oversized", "Conjunto moletom oversized com calça jogger. Perfeito para dias mais frios e looks despojados.", "Conjuntos",
		"https://images.unsplash.com/photo-1515886657613-9f3515b0c78f?w=400&h=400&fit=crop", "129.90", "", `{"P":3,"M":6,"G":4,"GG":1}`, true},
	{"Vestido Midi Floral", "Vestido midi com estampa floral delicada. Tecido fluido e corte que valoriza a silhueta.", "Vestidos",
		"https://images.unsplash.com/photo-1595777457583-95e059d581b8?w=400&h=400&fit=crop", "89.90", "", `{"P":4,"M":7,"G":5,"GG":2}`, false},
	{"Cropped Canelado", "Top cropped em malha canelada. Modelagem justa que realça as curvas. Várias cores disponíveis.", "Cropped",
		"https://images.unsplash.com/photo-1434389677669-e08b4cac3105?w=400&h=400&fit=crop", "39.90", "29.90", `{"P":6,"M":9,"G":4,"GG":1}`, false},
	{"T-shirt Estampada", "T-shirt com estampa exclusiva. Design moderno e cores vibrantes para quem gosta de se destacar.", "Tshirts",
		"https://images.unsplash.com/photo-1503341504253-dff4815485f1?w=400&h=400&fit=crop", "44.90", "", `{"P":5,"M":7,"G":6,"GG":3}`, true},
	{"Conjunto Social Feminino", "Conjunto blazer e calça para looks mais formais. Tecido de qualidade e corte impecável.", "Conjuntos",
		"https://images.unsplash.com/photo-1594633312681-425c7b97ccd1?w=400&h=400&fit=crop", "189.90", "", `{"P":2,"M":4,"G":3,"GG":1}`, false},
	{"Vestido Longo Festa", "Vestido longo elegante para ocasiões especiais. Tecido nobre e acabamento refinado.", "Vestidos",
		"https://images.unsplash.com/photo-1566479179817-c0de94e4e0bb?w=400&h=400&fit=crop", "159.90", "", `{"P":3,"M":5,"G":4,"GG":2}`, false},
	{"Cropped Renda", "Top cropped em renda delicada. Perfeito para compor looks românticos e femininos.", "Cropped",
		"https://images.unsplash.com/photo-1469334031218-e382a71b716b?w=400&h=400&fit=crop", "49.90", "", `{"P":4,"M":6,"G":3,"GG":1}`, true},
}

// SampleRows returns the demo catalog used when seeding without a payload.
func SampleRows(now time.Time) []Row {
	rows := make([]Row, 0, len(sampleCatalog))
	for i, s := range sampleCatalog {
		desc, category, isNew := s.desc, s.category, s.isNew
		row := Row{
			Name:         s.name,
			Description:  &desc,
			Price:        decimal.RequireFromString(s.price),
			Images:       []string{s.image},
			CategoryName: &category,
			IsNew:        &isNew,
			Stock:        []byte(s.stock),
			// older entries first so the launches section lists the catalog newest-first
			CreatedAt: now.Add(time.Duration(i-len(sampleCatalog)) * time.Hour),
		}
		row.UpdatedAt = row.CreatedAt
		if s.promo != "" {
			promo := decimal.RequireFromString(s.promo)
			row.PromotionalPrice = &promo
		}
		rows = append(rows, row)
	}
	return rows
}
