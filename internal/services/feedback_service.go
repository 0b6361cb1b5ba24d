// internal/services/feedback_service.go
package services

import (
	"context"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/javajoker/outfit-backend/internal/config"
	"github.com/javajoker/outfit-backend/internal/models"
	"github.com/javajoker/outfit-backend/internal/outfit"
	"github.com/javajoker/outfit-backend/internal/utils"
)

type FeedbackService struct {
	db  *gorm.DB
	cfg *config.Config
}

type RecordFeedbackRequest struct {
	UserID     string   `json:"user_id" validate:"required,max=64"`
	OutfitName string   `json:"outfit_name" validate:"required,max=255"`
	ItemIDs    []string `json:"item_ids,omitempty" validate:"max=3"`
	ItemNames  []string `json:"item_names,omitempty" validate:"max=3"`
	Liked      bool     `json:"liked"`
	Reason     string   `json:"reason,omitempty" validate:"max=1000"`
}

func NewFeedbackService(db *gorm.DB, cfg *config.Config) *FeedbackService {
	return &FeedbackService{
		db:  db,
		cfg: cfg,
	}
}

func (s *FeedbackService) RecordFeedback(ctx context.Context, req *RecordFeedbackRequest) (*models.OutfitFeedback, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	feedback := &models.OutfitFeedback{
		UserID:     req.UserID,
		OutfitName: req.OutfitName,
		ItemIDs:    datatypes.JSONSlice[string](req.ItemIDs),
		ItemNames:  datatypes.JSONSlice[string](req.ItemNames),
		Liked:      req.Liked,
		Reason:     req.Reason,
	}

	if err := s.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to record feedback: %w", err)
	}

	return feedback, nil
}

// ListFeedback returns the user's feedback rows, newest first.
func (s *FeedbackService) ListFeedback(ctx context.Context, userID string, params utils.PaginationParams) ([]models.OutfitFeedback, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.OutfitFeedback{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count feedback: %w", err)
	}

	var rows []models.OutfitFeedback
	err := utils.ApplyPagination(query.Order("created_at DESC"), params).Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list feedback: %w", err)
	}

	return rows, total, nil
}

// RecentFeedback returns the latest entries in the shape the prompt builder
// expects. An empty user id yields no feedback.
func (s *FeedbackService) RecentFeedback(ctx context.Context, userID string) ([]outfit.Feedback, error) {
	if userID == "" {
		return nil, nil
	}

	limit := s.cfg.Outfit.FeedbackLimit
	if limit <= 0 {
		return nil, nil
	}

	var rows []models.OutfitFeedback
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent feedback: %w", err)
	}

	feedback := make([]outfit.Feedback, 0, len(rows))
	for _, row := range rows {
		feedback = append(feedback, outfit.Feedback{
			OutfitName: row.OutfitName,
			ItemNames:  []string(row.ItemNames),
			Liked:      row.Liked,
			Reason:     row.Reason,
		})
	}
	return feedback, nil
}
