// internal/outfit/enrich.go
package outfit

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	fallbackPrice = 50.0
	fallbackURL   = "#"
)

// Lookup resolves product ids per category. It is built once per batch from
// the filtered category lists, which are wider than the candidate pool.
type Lookup struct {
	byID  map[Category]map[ProductID]Product
	lists map[Category][]Product
}

// NewLookup indexes the filtered per-category lists. The first occurrence of
// an id wins.
func NewLookup(lists map[Category][]Product) *Lookup {
	l := &Lookup{
		byID:  make(map[Category]map[ProductID]Product, len(Categories)),
		lists: lists,
	}
	for _, c := range Categories {
		byID := make(map[ProductID]Product, len(lists[c]))
		for _, p := range lists[c] {
			if _, ok := byID[p.ID]; !ok {
				byID[p.ID] = p
			}
		}
		l.byID[c] = byID
	}
	return l
}

func (l *Lookup) Resolve(c Category, id ProductID) (Product, bool) {
	p, ok := l.byID[c][id]
	return p, ok
}

// Enrich resolves the proposal's three references. When every reference
// resolves, the price is recomputed from the catalog and checked against the
// budget. Otherwise the outfit is synthesized by Fallback.
func Enrich(proposal Proposal, lookup *Lookup, profile UserProfile, index int) EnrichedOutfit {
	items := make([]OutfitItem, 0, len(Categories))
	total := decimal.Zero
	for _, c := range Categories {
		p, ok := lookup.Resolve(c, proposal.IDFor(c))
		if !ok {
			return lookup.Fallback(proposal, index)
		}
		items = append(items, itemFromProduct(c, p))
		total = total.Add(decimal.NewFromFloat(p.Price))
	}

	totalPrice, _ := total.Round(2).Float64()
	return EnrichedOutfit{
		ID:           outfitID(index),
		Name:         outfitName(proposal, index),
		TotalPrice:   totalPrice,
		WithinBudget: profile.PriceRange.Contains(totalPrice),
		QualityScore: proposal.ConfidenceScore,
		Items:        items,
		WhyItWorks:   proposal.WhyItWorks,
		StylistNotes: proposal.StylistNotes,
	}
}

// Fallback synthesizes an outfit from the products at the same index of each
// category list, or from placeholder products when a list is too short. It is
// never budget validated.
func (l *Lookup) Fallback(proposal Proposal, index int) EnrichedOutfit {
	items := make([]OutfitItem, 0, len(Categories))
	total := decimal.Zero
	for _, c := range Categories {
		var item OutfitItem
		if list := l.lists[c]; index >= 0 && index < len(list) {
			item = itemFromProduct(c, list[index])
		} else {
			item = placeholderItem(c, index)
		}
		items = append(items, item)
		total = total.Add(decimal.NewFromFloat(item.Price))
	}

	totalPrice, _ := total.Round(2).Float64()
	return EnrichedOutfit{
		ID:           outfitID(index),
		Name:         outfitName(proposal, index),
		TotalPrice:   totalPrice,
		WithinBudget: false,
		QualityScore: proposal.ConfidenceScore,
		Items:        items,
		WhyItWorks:   proposal.WhyItWorks,
		StylistNotes: proposal.StylistNotes,
		Fallback:     true,
	}
}

// EnrichAll returns exactly one outfit per proposal. Proposals that repair
// marked as unresolved go straight to the fallback.
func EnrichAll(proposals []Proposal, lookup *Lookup, profile UserProfile, report RepairReport) []EnrichedOutfit {
	outfits := make([]EnrichedOutfit, len(proposals))
	for i, p := range proposals {
		if report.IsUnresolved(i) {
			outfits[i] = lookup.Fallback(p, i)
			continue
		}
		outfits[i] = Enrich(p, lookup, profile, i)
	}
	return outfits
}

func itemFromProduct(c Category, p Product) OutfitItem {
	images := p.Images
	if len(images) == 0 {
		images = []string{PlaceholderImage}
	}
	return OutfitItem{
		ID:          p.ID,
		Category:    c,
		Name:        p.Name,
		Brand:       p.Brand,
		Price:       p.Price,
		Color:       p.Color,
		Description: p.Description,
		Images:      images,
		URL:         p.URL,
	}
}

func placeholderItem(c Category, index int) OutfitItem {
	return OutfitItem{
		ID:       ProductID(fmt.Sprintf("placeholder-%s-%d", c, index+1)),
		Category: c,
		Name:     "Classic " + titleCase(string(c)),
		Brand:    "Generic",
		Price:    fallbackPrice,
		Images:   []string{PlaceholderImage},
		URL:      fallbackURL,
	}
}

func outfitID(index int) string {
	return fmt.Sprintf("outfit-%d", index+1)
}

func outfitName(p Proposal, index int) string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return fmt.Sprintf("Outfit %d", index+1)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
