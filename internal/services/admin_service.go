// internal/services/admin_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/javajoker/outfit-backend/internal/models"
)

type AdminService struct {
	db *gorm.DB
}

type AdminDashboardStats struct {
	TotalProducts        int64            `json:"total_products"`
	ActiveProducts       int64            `json:"active_products"`
	ProductsByCategory   map[string]int64 `json:"products_by_category"`
	TotalGenerations     int64            `json:"total_generations"`
	GenerationsThisMonth int64            `json:"generations_this_month"`
	FailedGenerations    int64            `json:"failed_generations"`
	SuccessRate          float64          `json:"success_rate"`
	AverageDurationMS    float64          `json:"average_duration_ms"`
	RepairedDuplicates   int64            `json:"repaired_duplicates"`
	FallbackOutfits      int64            `json:"fallback_outfits"`
	TotalFeedback        int64            `json:"total_feedback"`
	LikeRate             float64          `json:"like_rate"`
	GenerationGrowth     float64          `json:"generation_growth"`
}

// AnalyticsMetrics are the metric names GetAnalytics understands.
var AnalyticsMetrics = []string{"generations", "failures", "fallbacks", "duplicates", "feedback", "likes"}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{
		db: db,
	}
}

func (s *AdminService) GetDashboardStats(ctx context.Context) (*AdminDashboardStats, error) {
	db := s.db.WithContext(ctx)
	stats := &AdminDashboardStats{ProductsByCategory: map[string]int64{}}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	// Catalog statistics
	if err := db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	db.Model(&models.Product{}).Where("status = ?", models.ProductStatusActive).Count(&stats.ActiveProducts)

	var perCategory []struct {
		Category string
		Count    int64
	}
	db.Model(&models.Product{}).
		Where("status = ?", models.ProductStatusActive).
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&perCategory)
	for _, row := range perCategory {
		stats.ProductsByCategory[row.Category] = row.Count
	}

	// Generation statistics
	if err := db.Model(&models.GenerationLog{}).Count(&stats.TotalGenerations).Error; err != nil {
		return nil, fmt.Errorf("failed to count generations: %w", err)
	}
	db.Model(&models.GenerationLog{}).Where("created_at >= ?", monthStart).Count(&stats.GenerationsThisMonth)
	db.Model(&models.GenerationLog{}).
		Where("status = ?", models.GenerationStatusFailed).
		Count(&stats.FailedGenerations)

	if stats.TotalGenerations > 0 {
		stats.SuccessRate = float64(stats.TotalGenerations-stats.FailedGenerations) / float64(stats.TotalGenerations) * 100
	}

	db.Model(&models.GenerationLog{}).
		Select("COALESCE(AVG(duration_ms), 0)").Scan(&stats.AverageDurationMS)
	db.Model(&models.GenerationLog{}).
		Select("COALESCE(SUM(duplicates), 0)").Scan(&stats.RepairedDuplicates)
	db.Model(&models.GenerationLog{}).
		Select("COALESCE(SUM(fallbacks), 0)").Scan(&stats.FallbackOutfits)

	// Feedback statistics
	db.Model(&models.OutfitFeedback{}).Count(&stats.TotalFeedback)
	if stats.TotalFeedback > 0 {
		var liked int64
		db.Model(&models.OutfitFeedback{}).Where("liked = ?", true).Count(&liked)
		stats.LikeRate = float64(liked) / float64(stats.TotalFeedback) * 100
	}

	// Growth calculations
	var lastMonthGenerations int64
	db.Model(&models.GenerationLog{}).
		Where("created_at >= ? AND created_at < ?", lastMonthStart, monthStart).
		Count(&lastMonthGenerations)

	if lastMonthGenerations > 0 {
		stats.GenerationGrowth = float64(stats.GenerationsThisMonth-lastMonthGenerations) / float64(lastMonthGenerations) * 100
	}

	return stats, nil
}

// GetAnalytics counts the requested metrics for rows created between
// startDate and endDate. Unknown metric names are ignored.
func (s *AdminService) GetAnalytics(ctx context.Context, startDate, endDate time.Time, metrics []string) (map[string]interface{}, error) {
	db := s.db.WithContext(ctx)
	analytics := make(map[string]interface{})
	between := "created_at BETWEEN ? AND ?"

	for _, metric := range metrics {
		switch metric {
		case "generations":
			var count int64
			if err := db.Model(&models.GenerationLog{}).Where(between, startDate, endDate).Count(&count).Error; err != nil {
				return nil, fmt.Errorf("failed to count generations: %w", err)
			}
			analytics["generations"] = count

		case "failures":
			var count int64
			db.Model(&models.GenerationLog{}).
				Where("status = ? AND "+between, models.GenerationStatusFailed, startDate, endDate).
				Count(&count)
			analytics["failures"] = count

		case "fallbacks":
			var sum int64
			db.Model(&models.GenerationLog{}).
				Where(between, startDate, endDate).
				Select("COALESCE(SUM(fallbacks), 0)").Scan(&sum)
			analytics["fallbacks"] = sum

		case "duplicates":
			var sum int64
			db.Model(&models.GenerationLog{}).
				Where(between, startDate, endDate).
				Select("COALESCE(SUM(duplicates), 0)").Scan(&sum)
			analytics["duplicates"] = sum

		case "feedback":
			var count int64
			db.Model(&models.OutfitFeedback{}).Where(between, startDate, endDate).Count(&count)
			analytics["feedback"] = count

		case "likes":
			var count int64
			db.Model(&models.OutfitFeedback{}).
				Where("liked = ? AND "+between, true, startDate, endDate).
				Count(&count)
			analytics["likes"] = count
		}
	}

	return analytics, nil
}
