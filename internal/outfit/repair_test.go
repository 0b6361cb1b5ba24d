package outfit

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func poolOf(n int) CandidatePool {
	sel := Select(testCatalog(n), nil, SelectOptions{MaxPoolSize: n})
	return sel.Pool
}

func TestRepair_ReplacesLaterDuplicateWithNextUnused(t *testing.T) {
	pool := CandidatePool{
		Tops: []Product{
			testProduct("1", CategoryTop, 90),
			testProduct("2", CategoryTop, 80),
			testProduct("3", CategoryTop, 70),
		},
		Bottoms: []Product{testProduct("b1", CategoryBottom, 9), testProduct("b2", CategoryBottom, 8), testProduct("b3", CategoryBottom, 7)},
		Shoes:   []Product{testProduct("s1", CategoryShoes, 9), testProduct("s2", CategoryShoes, 8), testProduct("s3", CategoryShoes, 7)},
	}
	proposals := []Proposal{
		proposal("1", "b1", "s1"),
		proposal("1", "b2", "s2"),
		proposal("3", "b3", "s3"),
	}

	repaired, report := Repair(proposals, pool)

	assert.Equal(t, ProductID("1"), repaired[0].Top.ID)
	assert.Equal(t, ProductID("2"), repaired[1].Top.ID)
	assert.Equal(t, ProductID("3"), repaired[2].Top.ID)
	assert.Equal(t, 1, report.Duplicates)
	assert.Equal(t, 1, report.Replaced)
	assert.Zero(t, report.Unresolved)

	// input untouched
	assert.Equal(t, ProductID("1"), proposals[1].Top.ID)
}

func TestRepair_IdentityOnCleanBatch(t *testing.T) {
	pool := poolOf(5)
	proposals := []Proposal{
		proposal("top-1", "bottom-2", "shoes-3"),
		proposal("top-2", "bottom-3", "shoes-1"),
		proposal("top-3", "bottom-1", "shoes-2"),
	}
	proposals[0].Name = "First"

	repaired, report := Repair(proposals, pool)

	assert.Equal(t, proposals, repaired)
	assert.Equal(t, RepairReport{}, report)
}

func TestRepair_UniquenessWhenPoolIsLargeEnough(t *testing.T) {
	const batch = 9
	rng := rand.New(rand.NewSource(7))
	pool := poolOf(batch)

	for run := 0; run < 200; run++ {
		proposals := make([]Proposal, batch)
		for i := range proposals {
			proposals[i] = proposal(
				fmt.Sprintf("top-%d", rng.Intn(batch)+1),
				fmt.Sprintf("bottom-%d", rng.Intn(batch)+1),
				fmt.Sprintf("shoes-%d", rng.Intn(batch)+1),
			)
		}

		repaired, report := Repair(proposals, pool)
		require.Len(t, repaired, batch)
		assert.Zero(t, report.Unresolved)

		for _, c := range Categories {
			seen := map[ProductID]bool{}
			for _, p := range repaired {
				id := p.IDFor(c)
				require.False(t, seen[id], "run %d: %s id %s used twice", run, c, id)
				seen[id] = true
			}
		}
	}
}

func TestRepair_ExhaustedPoolLeavesDuplicates(t *testing.T) {
	pool := poolOf(9)
	pool.Shoes = pool.Shoes[:2]

	proposals := make([]Proposal, 9)
	for i := range proposals {
		proposals[i] = proposal(fmt.Sprintf("top-%d", i+1), fmt.Sprintf("bottom-%d", i+1), "shoes-1")
	}

	repaired, report := Repair(proposals, pool)

	distinct := map[ProductID]bool{}
	for _, p := range repaired {
		distinct[p.Shoes.ID] = true
	}
	assert.Len(t, distinct, 2)
	assert.Equal(t, 8, report.Duplicates)
	assert.Equal(t, 1, report.Replaced)
	assert.Equal(t, 7, report.Unresolved)
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8}, report.UnresolvedOutfits)
	assert.Equal(t, ProductID("shoes-2"), repaired[1].Shoes.ID)
	assert.True(t, report.IsUnresolved(8))
	assert.False(t, report.IsUnresolved(0))
}
