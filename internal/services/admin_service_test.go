package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/outfit-backend/internal/models"
)

func seedGenerations(t *testing.T, svc *AdminService) {
	t.Helper()
	rows := []models.GenerationLog{
		{Occasion: "work", Status: models.GenerationStatusSucceeded, Duplicates: 2, Fallbacks: 1, DurationMS: 100},
		{Occasion: "work", Status: models.GenerationStatusSucceeded, Duplicates: 1, DurationMS: 300},
		{Occasion: "date", Status: models.GenerationStatusFailed, DurationMS: 200},
		{Occasion: "date", Status: models.GenerationStatusSucceeded, DurationMS: 200},
	}
	require.NoError(t, svc.db.Create(&rows).Error)

	feedback := []models.OutfitFeedback{
		{UserID: "u1", OutfitName: "A", Liked: true},
		{UserID: "u1", OutfitName: "B", Liked: false},
		{UserID: "u2", OutfitName: "C", Liked: true},
		{UserID: "u2", OutfitName: "D", Liked: true},
	}
	require.NoError(t, svc.db.Create(&feedback).Error)
}

func TestAdminService_GetDashboardStats(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db, 2)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", 1).Update("status", models.ProductStatusSuspended).Error)
	svc := NewAdminService(db)
	seedGenerations(t, svc)

	stats, err := svc.GetDashboardStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(6), stats.TotalProducts)
	assert.Equal(t, int64(5), stats.ActiveProducts)
	assert.Equal(t, map[string]int64{"top": 1, "bottom": 2, "shoes": 2}, stats.ProductsByCategory)
	assert.Equal(t, int64(4), stats.TotalGenerations)
	assert.Equal(t, int64(4), stats.GenerationsThisMonth)
	assert.Equal(t, int64(1), stats.FailedGenerations)
	assert.InDelta(t, 75.0, stats.SuccessRate, 0.001)
	assert.InDelta(t, 200.0, stats.AverageDurationMS, 0.001)
	assert.Equal(t, int64(3), stats.RepairedDuplicates)
	assert.Equal(t, int64(1), stats.FallbackOutfits)
	assert.Equal(t, int64(4), stats.TotalFeedback)
	assert.InDelta(t, 75.0, stats.LikeRate, 0.001)
}

func TestAdminService_GetDashboardStats_Empty(t *testing.T) {
	stats, err := NewAdminService(newTestDB(t)).GetDashboardStats(context.Background())

	require.NoError(t, err)
	assert.Zero(t, stats.TotalGenerations)
	assert.Zero(t, stats.SuccessRate)
	assert.Empty(t, stats.ProductsByCategory)
}

func TestAdminService_GetAnalytics(t *testing.T) {
	svc := NewAdminService(newTestDB(t))
	seedGenerations(t, svc)
	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)

	analytics, err := svc.GetAnalytics(context.Background(), start, end, append(AnalyticsMetrics, "unknown"))

	require.NoError(t, err)
	assert.Equal(t, int64(4), analytics["generations"])
	assert.Equal(t, int64(1), analytics["failures"])
	assert.Equal(t, int64(1), analytics["fallbacks"])
	assert.Equal(t, int64(3), analytics["duplicates"])
	assert.Equal(t, int64(4), analytics["feedback"])
	assert.Equal(t, int64(3), analytics["likes"])
	assert.NotContains(t, analytics, "unknown")

	analytics, err = svc.GetAnalytics(context.Background(), end, end.Add(time.Hour), []string{"generations"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), analytics["generations"])
}
