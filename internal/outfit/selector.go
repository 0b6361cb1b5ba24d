// internal/outfit/selector.go
package outfit

import "sort"

const (
	DefaultBatchSize    = 9
	DefaultMaxPoolSize  = 15
	DefaultMinInventory = 9
)

type SelectOptions struct {
	MaxPoolSize  int
	MinInventory int
}

// Selection is the outcome of Select.
type Selection struct {
	// Pool is the capped shortlist sent to the generative service.
	Pool CandidatePool

	// Lists holds every product that passed the image filter, per category,
	// in the same order as Pool. Enrichment resolves ids against these.
	Lists map[Category][]Product

	// LowInventory names categories with fewer products than MinInventory.
	LowInventory []Category
}

// Select drops products without usable imagery, ranks each category by
// descending RelevanceScore and truncates it to MaxPoolSize. Ties keep the
// catalog order. A duplicate id keeps only its highest ranked occurrence.
func Select(products []Product, hasValidImage func(Product) bool, opts SelectOptions) Selection {
	if hasValidImage == nil {
		hasValidImage = HasValidImage
	}
	if opts.MaxPoolSize <= 0 {
		opts.MaxPoolSize = DefaultMaxPoolSize
	}

	grouped := make(map[Category][]Product, len(Categories))
	for _, p := range products {
		if !p.Category.Valid() || !hasValidImage(p) {
			continue
		}
		grouped[p.Category] = append(grouped[p.Category], p)
	}

	sel := Selection{Lists: make(map[Category][]Product, len(Categories))}
	for _, c := range Categories {
		list := rankCategory(grouped[c])
		sel.Lists[c] = list

		pool := list
		if len(pool) > opts.MaxPoolSize {
			pool = pool[:opts.MaxPoolSize]
		}
		sel.Pool.set(c, append([]Product(nil), pool...))

		if len(list) < opts.MinInventory {
			sel.LowInventory = append(sel.LowInventory, c)
		}
	}
	return sel
}

func rankCategory(products []Product) []Product {
	ranked := append([]Product(nil), products...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})

	seen := make(map[ProductID]bool, len(ranked))
	out := ranked[:0]
	for _, p := range ranked {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}
