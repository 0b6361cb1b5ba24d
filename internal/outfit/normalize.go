// internal/outfit/normalize.go
package outfit

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// RawProduct is a catalog row as it arrives from storage or an import file.
// Fields whose shape varies between sources are kept as raw JSON and
// resolved by NormalizeProduct.
type RawProduct struct {
	ID          json.RawMessage `json:"id"`
	Name        string          `json:"name"`
	Price       json.RawMessage `json:"price"`
	Brand       string          `json:"brand"`
	Color       string          `json:"color"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Image       json.RawMessage `json:"image"`
	Images      json.RawMessage `json:"images"`
	URL         string          `json:"url"`
	Occasions   json.RawMessage `json:"occasions"`
	StyleTags   json.RawMessage `json:"style_tags"`
	Materials   json.RawMessage `json:"materials"`
	Fit         string          `json:"fit"`
	Formality   json.RawMessage `json:"formality"`
	InStock     *bool           `json:"in_stock"`
	Inventory   *int            `json:"inventory_count"`
}

// NormalizeProduct maps any accepted raw shape onto Product. It never fails:
// unparseable fields degrade to their zero value and the product simply
// scores lower or is dropped by the image filter.
func NormalizeProduct(raw RawProduct) Product {
	var id ProductID
	if err := id.UnmarshalJSON(raw.ID); err != nil {
		id = ""
	}

	category, _ := ParseCategory(raw.Category)

	images := ParseStringList(raw.Images)
	for _, img := range ParseStringList(raw.Image) {
		if !containsFold(images, img) {
			images = append([]string{img}, images...)
		}
	}

	inStock := false
	switch {
	case raw.InStock != nil:
		inStock = *raw.InStock
	case raw.Inventory != nil:
		inStock = *raw.Inventory > 0
	}

	price := parseNumber(raw.Price)
	if price < 0 {
		price = 0
	}

	return Product{
		ID:          id,
		Name:        strings.TrimSpace(raw.Name),
		Price:       price,
		Brand:       strings.TrimSpace(raw.Brand),
		Color:       strings.TrimSpace(raw.Color),
		Category:    category,
		Description: strings.TrimSpace(raw.Description),
		Images:      images,
		URL:         strings.TrimSpace(raw.URL),
		Occasions:   ParseStringList(raw.Occasions),
		StyleTags:   ParseStringList(raw.StyleTags),
		Materials:   ParseStringList(raw.Materials),
		Fit:         strings.ToLower(strings.TrimSpace(raw.Fit)),
		Formality:   int(parseNumber(raw.Formality)),
		InStock:     inStock,
	}
}

// NormalizeProducts normalizes a batch and drops rows without an id or a
// recognized category.
func NormalizeProducts(raws []RawProduct) []Product {
	products := make([]Product, 0, len(raws))
	for _, raw := range raws {
		p := NormalizeProduct(raw)
		if p.ID == "" || !p.Category.Valid() {
			continue
		}
		products = append(products, p)
	}
	return products
}

// ParseStringList accepts a JSON array of strings, a JSON string holding an
// encoded array, a comma separated string, or a single plain string. Anything
// else yields nil. Empty entries are removed.
func ParseStringList(data json.RawMessage) []string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '[':
		var items []interface{}
		if err := json.Unmarshal(data, &items); err != nil {
			return nil
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			switch v := item.(type) {
			case string:
				out = appendTrimmed(out, v)
			case map[string]interface{}:
				// image objects: {"url": "..."}
				if u, ok := v["url"].(string); ok {
					out = appendTrimmed(out, u)
				}
			}
		}
		return out
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
		if strings.HasPrefix(s, "[") {
			return ParseStringList(json.RawMessage(s))
		}
		if strings.Contains(s, ",") && !strings.Contains(s, "://") {
			var out []string
			for _, part := range strings.Split(s, ",") {
				out = appendTrimmed(out, part)
			}
			return out
		}
		return appendTrimmed(nil, s)
	}
	return nil
}

func appendTrimmed(out []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		out = append(out, s)
	}
	return out
}

func parseNumber(data json.RawMessage) float64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0
		}
		s = strings.TrimPrefix(strings.TrimSpace(s), "$")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return 0
	}
	return f
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
