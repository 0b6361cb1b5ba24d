// internal/outfit/scorer.go
package outfit

import (
	"math"
	"strings"
)

const (
	baseScore          = 50.0
	occasionMatchBonus = 40.0
	styleTagPoints     = 5.0
	styleTagCap        = 20.0
	fitPresentBonus    = 5.0
	preferredFitBonus  = 5.0
	fabricPoints       = 2.0
	fabricCap          = 10.0
	formalityMax       = 20.0
	formalityStep      = 10.0
	priceInRangeBonus  = 30.0
	priceMidpointBonus = 10.0
	descriptionBonus   = 5.0
	inStockBonus       = 5.0

	minDescriptionLength = 50
	defaultFormality     = 3
)

var preferredFits = map[string]bool{
	"fitted":   true,
	"tailored": true,
	"regular":  true,
}

var fabricKeywords = []string{
	"breathable",
	"durable",
	"soft",
	"stretch",
	"moisture-wicking",
	"wrinkle-resistant",
	"organic",
	"premium",
}

var occasionFormality = map[string]int{
	"workout":         1,
	"gym":             1,
	"athletic":        1,
	"casual":          2,
	"weekend":         2,
	"everyday":        2,
	"beach":           2,
	"travel":          2,
	"date":            3,
	"date night":      3,
	"party":           3,
	"brunch":          3,
	"smart casual":    3,
	"business casual": 3,
	"cocktail":        4,
	"work":            4,
	"office":          4,
	"business":        4,
	"interview":       4,
	"formal":          5,
	"wedding":         5,
	"gala":            5,
	"black tie":       5,
}

// ExpectedFormality maps an occasion onto the 1 (athletic) .. 5 (formal) scale.
func ExpectedFormality(occasion string) int {
	key := strings.NewReplacer("-", " ", "_", " ").Replace(strings.ToLower(strings.TrimSpace(occasion)))
	if f, ok := occasionFormality[key]; ok {
		return f
	}
	return defaultFormality
}

// Score computes the additive relevance of product for profile. It is pure
// and total: missing product metadata only forfeits the matching points.
func Score(product Product, profile UserProfile) float64 {
	score := baseScore

	if occasion := strings.TrimSpace(profile.Occasion); occasion != "" && containsFold(product.Occasions, occasion) {
		score += occasionMatchBonus
	}

	score += styleScore(product, profile.StyleKeywords)

	if product.Fit != "" {
		score += fitPresentBonus
		if preferredFits[strings.ToLower(product.Fit)] {
			score += preferredFitBonus
		}
	}

	score += fabricScore(product)

	if product.Formality > 0 {
		diff := math.Abs(float64(product.Formality - ExpectedFormality(profile.Occasion)))
		score += math.Max(0, formalityMax-formalityStep*diff)
	}

	score += priceScore(product.Price, profile.PriceRange)

	if len(product.Description) > minDescriptionLength {
		score += descriptionBonus
	}
	if product.InStock {
		score += inStockBonus
	}

	return score
}

func styleScore(product Product, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	points := 0.0
	for _, tag := range product.StyleTags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		for _, kw := range keywords {
			k := strings.ToLower(strings.TrimSpace(kw))
			if k == "" {
				continue
			}
			if strings.Contains(t, k) || strings.Contains(k, t) {
				points += styleTagPoints
				break
			}
		}
	}
	return math.Min(points, styleTagCap)
}

func fabricScore(product Product) float64 {
	text := strings.ToLower(strings.Join(product.Materials, " ") + " " + product.Description)
	points := 0.0
	for _, kw := range fabricKeywords {
		if strings.Contains(text, kw) {
			points += fabricPoints
		}
	}
	return math.Min(points, fabricCap)
}

func priceScore(price float64, r PriceRange) float64 {
	if !r.Contains(price) {
		return 0
	}
	score := priceInRangeBonus
	if r.IsUnlimited {
		return score
	}
	half := (r.Max - r.Min) / 2
	if half <= 0 {
		return score + priceMidpointBonus
	}
	mid := r.Min + half
	closeness := 1 - math.Abs(price-mid)/half
	return score + priceMidpointBonus*math.Max(0, closeness)
}

// ScoreAll returns a copy of products with RelevanceScore assigned.
func ScoreAll(products []Product, profile UserProfile) []Product {
	scored := make([]Product, len(products))
	for i, p := range products {
		p.RelevanceScore = Score(p, profile)
		scored[i] = p
	}
	return scored
}
