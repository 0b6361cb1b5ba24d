package outfit

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func testProduct(id string, c Category, score float64) Product {
	return Product{
		ID:             ProductID(id),
		Name:           fmt.Sprintf("%s %s", c, id),
		Price:          40,
		Category:       c,
		Images:         []string{"https://cdn.example.com/" + id + ".jpg"},
		InStock:        true,
		RelevanceScore: score,
	}
}

// testCatalog builds n products per category with descending scores and
// prices of 10, 20, 30, ...
func testCatalog(n int) []Product {
	var out []Product
	for _, c := range Categories {
		for i := 1; i <= n; i++ {
			p := testProduct(fmt.Sprintf("%s-%d", c, i), c, float64(100-i))
			p.Price = float64(10 * i)
			out = append(out, p)
		}
	}
	return out
}

func proposal(top, bottom, shoes string) Proposal {
	return Proposal{
		Top:    ItemRef{ID: ProductID(top)},
		Bottom: ItemRef{ID: ProductID(bottom)},
		Shoes:  ItemRef{ID: ProductID(shoes)},
	}
}

func completionBody(t *testing.T, proposals []Proposal) string {
	t.Helper()
	data, err := json.Marshal(map[string]interface{}{"outfits": proposals})
	require.NoError(t, err)
	return string(data)
}
