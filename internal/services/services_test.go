package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/javajoker/outfit-backend/internal/config"
	"github.com/javajoker/outfit-backend/internal/database"
	"github.com/javajoker/outfit-backend/internal/models"
	"github.com/javajoker/outfit-backend/internal/outfit"
)

func testConfig() *config.Config {
	return &config.Config{
		Outfit: config.OutfitConfig{
			BatchSize:         3,
			MaxPoolSize:       15,
			MinInventory:      3,
			Temperature:       0.8,
			CompletionTimeout: 5 * time.Second,
			PriceBandSlack:    0.25,
			FeedbackLimit:     5,
		},
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Initialize(config.DatabaseConfig{
		Driver:   "sqlite",
		Path:     fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

// seedProducts inserts n products per category priced 20, 40, 60, ...
func seedProducts(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	id := uint(1)
	for _, c := range outfit.Categories {
		for i := 1; i <= n; i++ {
			images, _ := json.Marshal([]string{fmt.Sprintf("https://cdn.example.com/%d.jpg", id)})
			row := models.Product{
				ID:             id,
				Name:           fmt.Sprintf("%s %d", c, i),
				Brand:          "Acme",
				Category:       string(c),
				Price:          float64(20 * i),
				Images:         images,
				Occasions:      []byte(`["work"]`),
				InventoryCount: 1,
				Status:         models.ProductStatusActive,
			}
			require.NoError(t, db.Create(&row).Error)
			id++
		}
	}
}

func completionFor(t *testing.T, proposals ...outfit.Proposal) string {
	t.Helper()
	data, err := json.Marshal(map[string]interface{}{"outfits": proposals})
	require.NoError(t, err)
	return string(data)
}

func look(top, bottom, shoes string) outfit.Proposal {
	return outfit.Proposal{
		Name:   "Look",
		Top:    outfit.ItemRef{ID: outfit.ProductID(top)},
		Bottom: outfit.ItemRef{ID: outfit.ProductID(bottom)},
		Shoes:  outfit.ItemRef{ID: outfit.ProductID(shoes)},
	}
}

type stubCompleter struct {
	body    string
	err     error
	prompts []outfit.Prompt
}

func (s *stubCompleter) Complete(_ context.Context, prompt outfit.Prompt, _ outfit.CompletionOptions) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.body, s.err
}
