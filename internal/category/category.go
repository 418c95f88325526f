package category

import (
	_ "embed"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Category is the public DTO returned by the category API.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"-"`
}

//go:embed icons.yaml
var iconsYAML []byte

type iconTable struct {
	Fallback string            `yaml:"fallback"`
	Icons    map[string]string `yaml:"icons"`
}

var icons = mustParseIcons(iconsYAML)

func mustParseIcons(raw []byte) iconTable {
	var t iconTable
	if err := yaml.Unmarshal(raw, &t); err != nil {
		panic(fmt.Sprintf("category: parse icons.yaml: %v", err))
	}
	if t.Fallback == "" {
		panic("category: icons.yaml has no fallback icon")
	}
	normalized := make(map[string]string, len(t.Icons))
	for label, icon := range t.Icons {
		normalized[normalizeLabel(label)] = icon
	}
	t.Icons = normalized
	return t
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Icon returns the display icon for a category label. Unknown labels get the
// fallback icon.
func Icon(label string) string {
	if icon, ok := icons.Icons[normalizeLabel(label)]; ok {
		return icon
	}
	return icons.Fallback
}

// Decorate fills the display fields derived from the category name.
func Decorate(c Category) Category {
	c.Icon = Icon(c.Name)
	c.Path = "/products?category=" + url.QueryEscape(normalizeLabel(c.Name))
	return c
}
