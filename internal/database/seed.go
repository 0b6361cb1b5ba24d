// internal/database/seed.go
package database

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/javajoker/outfit-backend/internal/models"
	"github.com/javajoker/outfit-backend/internal/outfit"
)

// SeedCatalog loads a JSON array of catalog rows into an empty products
// table. A non-empty table is left untouched.
func SeedCatalog(db *gorm.DB, path string) (int, error) {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		logrus.WithField("products", count).Info("Catalog already seeded")
		return 0, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog seed %s: %w", path, err)
	}

	var raws []outfit.RawProduct
	if err := json.Unmarshal(data, &raws); err != nil {
		return 0, fmt.Errorf("failed to parse catalog seed %s: %w", path, err)
	}

	rows := make([]models.Product, 0, len(raws))
	for _, raw := range raws {
		rows = append(rows, ProductFromRaw(raw))
	}

	err = WithTransaction(db, func(tx *gorm.DB) error {
		return tx.CreateInBatches(rows, 100).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed catalog: %w", err)
	}

	logrus.WithField("products", len(rows)).Info("Catalog seeded")
	return len(rows), nil
}

// ProductFromRaw converts an import row into a catalog row, keeping the loose
// image and tag columns as they arrived.
func ProductFromRaw(raw outfit.RawProduct) models.Product {
	p := outfit.NormalizeProduct(raw)

	row := models.Product{
		Name:        p.Name,
		Brand:       p.Brand,
		Color:       p.Color,
		Category:    string(p.Category),
		Description: p.Description,
		Price:       p.Price,
		URL:         p.URL,
		Images:      rawJSON(raw.Images),
		Occasions:   rawJSON(raw.Occasions),
		StyleTags:   rawJSON(raw.StyleTags),
		Materials:   rawJSON(raw.Materials),
		Fit:         p.Fit,
		Formality:   p.Formality,
		Status:      models.ProductStatusActive,
	}
	if id, err := strconv.ParseUint(string(p.ID), 10, 64); err == nil {
		row.ID = uint(id)
	}
	if imgs := outfit.ParseStringList(raw.Image); len(imgs) > 0 {
		row.Image = imgs[0]
	}
	if raw.Category != "" && row.Category == "" {
		row.Category = raw.Category
	}
	switch {
	case raw.Inventory != nil:
		row.InventoryCount = *raw.Inventory
	case p.InStock:
		row.InventoryCount = 1
	}
	return row
}

func rawJSON(data json.RawMessage) datatypes.JSON {
	if len(data) == 0 {
		return nil
	}
	return datatypes.JSON(data)
}
