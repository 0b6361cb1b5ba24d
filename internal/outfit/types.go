// internal/outfit/types.go
package outfit

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

type Category string

const (
	CategoryTop    Category = "top"
	CategoryBottom Category = "bottom"
	CategoryShoes  Category = "shoes"
)

// Categories lists the outfit slots in the order they are filled.
var Categories = []Category{CategoryTop, CategoryBottom, CategoryShoes}

func (c Category) Valid() bool {
	switch c {
	case CategoryTop, CategoryBottom, CategoryShoes:
		return true
	}
	return false
}

// ParseCategory maps catalog spellings ("tops", "Pants", "footwear") onto a Category.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "tops", "shirt", "shirts", "blouse", "outerwear":
		return CategoryTop, true
	case "bottom", "bottoms", "pants", "trousers", "skirt", "skirts", "shorts", "jeans":
		return CategoryBottom, true
	case "shoes", "shoe", "footwear", "sneakers", "boots":
		return CategoryShoes, true
	}
	return "", false
}

// ProductID is a catalog key. The generative service and legacy rows send it
// either as a JSON number or a JSON string, so both decode to the same value.
type ProductID string

func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProductID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ProductID(n.String())
	return nil
}

func (id ProductID) String() string { return string(id) }

// Product is the canonical catalog entry consumed by the scorer and selector.
type Product struct {
	ID             ProductID `json:"id"`
	Name           string    `json:"name"`
	Price          float64   `json:"price"`
	Brand          string    `json:"brand"`
	Color          string    `json:"color"`
	Category       Category  `json:"category"`
	Description    string    `json:"description"`
	Images         []string  `json:"images"`
	URL            string    `json:"url"`
	Occasions      []string  `json:"occasions,omitempty"`
	StyleTags      []string  `json:"style_tags,omitempty"`
	Materials      []string  `json:"materials,omitempty"`
	Fit            string    `json:"fit,omitempty"`
	Formality      int       `json:"formality,omitempty"`
	InStock        bool      `json:"in_stock"`
	RelevanceScore float64   `json:"relevance_score"`
}

type PriceRange struct {
	Min         float64 `json:"min" yaml:"min" validate:"min=0"`
	Max         float64 `json:"max" yaml:"max" validate:"min=0"`
	IsUnlimited bool    `json:"is_unlimited" yaml:"is_unlimited"`
}

// Contains reports whether price falls inside the range. An unlimited range
// has no upper bound.
func (r PriceRange) Contains(price float64) bool {
	if price < r.Min {
		return false
	}
	return r.IsUnlimited || price <= r.Max
}

type BodyProfile struct {
	BodyType     string `json:"body_type,omitempty" yaml:"body_type"`
	PreferredFit string `json:"preferred_fit,omitempty" yaml:"preferred_fit"`
	HeightCM     int    `json:"height_cm,omitempty" yaml:"height_cm"`
	AvoidAreas   string `json:"avoid_areas,omitempty" yaml:"avoid_areas"`
}

type ColorStrategy struct {
	Primary []string `json:"primary,omitempty" yaml:"primary"`
	Avoid   []string `json:"avoid,omitempty" yaml:"avoid"`
}

// UserProfile is the style-quiz result for one generation request.
type UserProfile struct {
	Occasion      string         `json:"occasion" yaml:"occasion" validate:"required,occasion"`
	PriceRange    PriceRange     `json:"price_range" yaml:"price_range"`
	StyleKeywords []string       `json:"style_keywords,omitempty" yaml:"style_keywords"`
	BodyProfile   *BodyProfile   `json:"body_profile,omitempty" yaml:"body_profile"`
	ColorStrategy *ColorStrategy `json:"color_strategy,omitempty" yaml:"color_strategy"`
}

// CandidatePool holds the per-category shortlists sent to the generative
// service. Each list is sorted by descending relevance and free of duplicate ids.
type CandidatePool struct {
	Tops    []Product `json:"tops"`
	Bottoms []Product `json:"bottoms"`
	Shoes   []Product `json:"shoes"`
}

func (p CandidatePool) For(c Category) []Product {
	switch c {
	case CategoryTop:
		return p.Tops
	case CategoryBottom:
		return p.Bottoms
	case CategoryShoes:
		return p.Shoes
	}
	return nil
}

func (p *CandidatePool) set(c Category, products []Product) {
	switch c {
	case CategoryTop:
		p.Tops = products
	case CategoryBottom:
		p.Bottoms = products
	case CategoryShoes:
		p.Shoes = products
	}
}

type ItemRef struct {
	ID ProductID `json:"id"`
}

// Proposal is one raw outfit suggestion returned by the generative service.
type Proposal struct {
	OutfitNumber    int      `json:"outfitNumber"`
	Name            string   `json:"name"`
	Top             ItemRef  `json:"top"`
	Bottom          ItemRef  `json:"bottom"`
	Shoes           ItemRef  `json:"shoes"`
	TotalPrice      float64  `json:"totalPrice"`
	WhyItWorks      string   `json:"whyItWorks"`
	StylistNotes    []string `json:"stylistNotes"`
	ConfidenceScore float64  `json:"confidenceScore"`
}

func (p *Proposal) slot(c Category) *ProductID {
	switch c {
	case CategoryTop:
		return &p.Top.ID
	case CategoryBottom:
		return &p.Bottom.ID
	case CategoryShoes:
		return &p.Shoes.ID
	}
	return nil
}

// IDFor returns the product id referenced for the given category.
func (p Proposal) IDFor(c Category) ProductID {
	if s := p.slot(c); s != nil {
		return *s
	}
	return ""
}

type OutfitItem struct {
	ID          ProductID `json:"id"`
	Category    Category  `json:"category"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Price       float64   `json:"price"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	URL         string    `json:"url"`
}

type EnrichedOutfit struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	TotalPrice   float64      `json:"totalPrice"`
	WithinBudget bool         `json:"withinBudget"`
	QualityScore float64      `json:"qualityScore"`
	Items        []OutfitItem `json:"items"`
	WhyItWorks   string       `json:"whyItWorks"`
	StylistNotes []string     `json:"stylistNotes"`
	Fallback     bool         `json:"fallback,omitempty"`
}

// Feedback is a past reaction to a generated outfit, fed back into the prompt.
type Feedback struct {
	OutfitName string   `json:"outfit_name"`
	ItemNames  []string `json:"item_names,omitempty"`
	Liked      bool     `json:"liked"`
	Reason     string   `json:"reason,omitempty"`
}

func formatPrice(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}
