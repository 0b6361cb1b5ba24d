// internal/services/outfit_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/javajoker/outfit-backend/internal/config"
	"github.com/javajoker/outfit-backend/internal/models"
	"github.com/javajoker/outfit-backend/internal/outfit"
	"github.com/javajoker/outfit-backend/internal/utils"
)

type OutfitService struct {
	db              *gorm.DB
	cfg             *config.Config
	catalogService  *CatalogService
	feedbackService *FeedbackService
	engine          *outfit.Engine
}

// GenerateOutfitsRequest is the style-quiz result plus optional identity and
// inline feedback. The profile fields sit at the top level of the body.
type GenerateOutfitsRequest struct {
	outfit.UserProfile
	UserID   string            `json:"user_id,omitempty" validate:"max=64"`
	Feedback []outfit.Feedback `json:"feedback,omitempty"`
}

func NewOutfitService(db *gorm.DB, cfg *config.Config, catalogService *CatalogService, feedbackService *FeedbackService, engine *outfit.Engine) *OutfitService {
	return &OutfitService{
		db:              db,
		cfg:             cfg,
		catalogService:  catalogService,
		feedbackService: feedbackService,
		engine:          engine,
	}
}

// EngineConfigFrom maps the outfit section of the application config onto
// the engine's tunables.
func EngineConfigFrom(cfg config.OutfitConfig) outfit.Config {
	return outfit.Config{
		BatchSize:         cfg.BatchSize,
		MaxPoolSize:       cfg.MaxPoolSize,
		MinInventory:      cfg.MinInventory,
		Temperature:       cfg.Temperature,
		CompletionTimeout: cfg.CompletionTimeout,
	}
}

func (s *OutfitService) GenerateOutfits(ctx context.Context, req *GenerateOutfitsRequest) (*outfit.Result, error) {
	// An empty budget means the quiz skipped the price step.
	r := &req.PriceRange
	if r.Min == 0 && r.Max == 0 && !r.IsUnlimited {
		r.IsUnlimited = true
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", outfit.ErrInvalidProfile, err)
	}

	start := time.Now()
	entry := &models.GenerationLog{
		UserID:    req.UserID,
		Occasion:  req.Occasion,
		Profile:   profileMap(req.UserProfile),
		BatchSize: s.engine.Config().BatchSize,
	}

	result, err := s.generate(ctx, req, entry)
	entry.DurationMS = time.Since(start).Milliseconds()
	if err != nil {
		entry.Status = models.GenerationStatusFailed
		entry.ErrorMessage = err.Error()
	} else {
		entry.Status = models.GenerationStatusSucceeded
		entry.Duplicates = result.Repair.Duplicates
		entry.Replaced = result.Repair.Replaced
		for _, o := range result.Outfits {
			if o.Fallback {
				entry.Fallbacks++
			}
		}
	}
	s.recordGeneration(entry)

	return result, err
}

func (s *OutfitService) generate(ctx context.Context, req *GenerateOutfitsRequest, entry *models.GenerationLog) (*outfit.Result, error) {
	catalog, err := s.catalogService.FetchCatalog(ctx, req.UserProfile)
	if err != nil {
		return nil, err
	}
	entry.CatalogSize = len(catalog)

	feedback := append([]outfit.Feedback(nil), req.Feedback...)
	recent, err := s.feedbackService.RecentFeedback(ctx, req.UserID)
	if err != nil {
		// Feedback only steers the prompt; generation proceeds without it.
		logrus.WithError(err).WithField("user_id", req.UserID).Warn("Failed to load recent feedback")
	}
	feedback = append(feedback, recent...)

	return s.engine.Generate(ctx, outfit.GenerateRequest{
		Catalog:  catalog,
		Profile:  req.UserProfile,
		Feedback: feedback,
	})
}

func (s *OutfitService) recordGeneration(entry *models.GenerationLog) {
	if err := s.db.Create(entry).Error; err != nil {
		logrus.WithError(err).Error("Failed to record generation log")
	}
}

// RecentGenerations lists the newest generation log rows.
func (s *OutfitService) RecentGenerations(ctx context.Context, params utils.PaginationParams) ([]models.GenerationLog, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.GenerationLog{})
	if params.Search != "" {
		query = query.Where("occasion = ?", params.Search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count generations: %w", err)
	}

	var rows []models.GenerationLog
	err := utils.ApplyPagination(query.Order("created_at DESC"), params).Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list generations: %w", err)
	}
	return rows, total, nil
}

func profileMap(p outfit.UserProfile) datatypes.JSONMap {
	data, err := json.Marshal(p)
	if err != nil {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return datatypes.JSONMap(m)
}
