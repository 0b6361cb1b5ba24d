// internal/services/catalog_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/javajoker/outfit-backend/internal/config"
	"github.com/javajoker/outfit-backend/internal/models"
	"github.com/javajoker/outfit-backend/internal/outfit"
	"github.com/javajoker/outfit-backend/internal/utils"
)

var ErrProductNotFound = errors.New("product not found")

type CatalogService struct {
	db  *gorm.DB
	cfg *config.Config
}

type ProductSearchParams struct {
	utils.PaginationParams
	PriceMin *float64 `json:"price_min,omitempty"`
	PriceMax *float64 `json:"price_max,omitempty"`
	InStock  *bool    `json:"in_stock,omitempty"`
}

func NewCatalogService(db *gorm.DB, cfg *config.Config) *CatalogService {
	return &CatalogService{
		db:  db,
		cfg: cfg,
	}
}

// FetchCatalog loads the active products that could fit the profile's
// budget. The band is widened by the configured slack so the scorer still
// sees near misses; occasion and style are left to the scorer.
func (s *CatalogService) FetchCatalog(ctx context.Context, profile outfit.UserProfile) ([]outfit.Product, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("status = ?", models.ProductStatusActive)

	slack := s.cfg.Outfit.PriceBandSlack
	r := profile.PriceRange
	if r.Min > 0 {
		query = query.Where("price >= ?", r.Min*(1-slack))
	}
	if !r.IsUnlimited && r.Max > 0 {
		query = query.Where("price <= ?", r.Max*(1+slack))
	}

	var rows []models.Product
	if err := query.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	raws := make([]outfit.RawProduct, 0, len(rows))
	for _, row := range rows {
		raws = append(raws, ToRawProduct(row))
	}
	return outfit.NormalizeProducts(raws), nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*outfit.Product, error) {
	var row models.Product
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	p := outfit.NormalizeProduct(ToRawProduct(row))
	return &p, nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, params ProductSearchParams) ([]outfit.Product, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("status = ?", models.ProductStatusActive)

	if params.Category != "" {
		c, _ := outfit.ParseCategory(params.Category)
		query = query.Where("category = ?", string(c))
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(description) LIKE ?",
			searchTerm, searchTerm, searchTerm)
	}

	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}

	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}

	if params.InStock != nil {
		if *params.InStock {
			query = query.Where("inventory_count > 0")
		} else {
			query = query.Where("inventory_count = 0")
		}
	}

	// Count total records
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"id", "created_at", "price", "name", "brand"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var rows []models.Product
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search products: %w", err)
	}

	products := make([]outfit.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, outfit.NormalizeProduct(ToRawProduct(row)))
	}
	return products, total, nil
}

// ToRawProduct exposes a stored row in the loose import shape so the same
// normalizer handles database rows and seed files.
func ToRawProduct(row models.Product) outfit.RawProduct {
	raw := outfit.RawProduct{
		ID:          json.RawMessage(strconv.FormatUint(uint64(row.ID), 10)),
		Name:        row.Name,
		Price:       json.RawMessage(strconv.FormatFloat(row.Price, 'f', -1, 64)),
		Brand:       row.Brand,
		Color:       row.Color,
		Category:    row.Category,
		Description: row.Description,
		Images:      json.RawMessage(row.Images),
		URL:         row.URL,
		Occasions:   json.RawMessage(row.Occasions),
		StyleTags:   json.RawMessage(row.StyleTags),
		Materials:   json.RawMessage(row.Materials),
		Fit:         row.Fit,
		Formality:   json.RawMessage(strconv.Itoa(row.Formality)),
	}
	if row.Image != "" {
		if b, err := json.Marshal(row.Image); err == nil {
			raw.Image = b
		}
	}
	inventory := row.InventoryCount
	raw.Inventory = &inventory
	return raw
}
