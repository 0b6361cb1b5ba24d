package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/javajoker/outfit-backend/internal/config"
	"github.com/javajoker/outfit-backend/internal/models"
	"github.com/javajoker/outfit-backend/internal/outfit"
	"github.com/javajoker/outfit-backend/internal/utils"
)

type OutfitServiceTestSuite struct {
	suite.Suite
	db        *gorm.DB
	cfg       *config.Config
	completer *stubCompleter
	service   *OutfitService
	feedback  *FeedbackService
}

func (s *OutfitServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	seedProducts(s.T(), s.db, 4) // ids 1-4 tops, 5-8 bottoms, 9-12 shoes
	s.cfg = testConfig()
	s.completer = &stubCompleter{}

	engine := outfit.NewEngine(EngineConfigFrom(s.cfg.Outfit), s.completer, logrus.StandardLogger())
	catalog := NewCatalogService(s.db, s.cfg)
	s.feedback = NewFeedbackService(s.db, s.cfg)
	s.service = NewOutfitService(s.db, s.cfg, catalog, s.feedback, engine)
}

func (s *OutfitServiceTestSuite) request() *GenerateOutfitsRequest {
	return &GenerateOutfitsRequest{
		UserProfile: outfit.UserProfile{
			Occasion:   "work",
			PriceRange: outfit.PriceRange{Min: 0, Max: 300},
		},
		UserID: "shopper-1",
	}
}

func (s *OutfitServiceTestSuite) TestGenerateOutfits_Succeeds() {
	s.completer.body = completionFor(s.T(),
		look("1", "5", "9"),
		look("1", "6", "10"),
		look("3", "7", "11"),
	)
	_, err := s.feedback.RecordFeedback(context.Background(), &RecordFeedbackRequest{
		UserID: "shopper-1", OutfitName: "Boardroom", Liked: false, Reason: "too stiff",
	})
	s.Require().NoError(err)

	req := s.request()
	req.Feedback = []outfit.Feedback{{OutfitName: "Inline", Liked: true}}
	result, err := s.service.GenerateOutfits(context.Background(), req)

	s.Require().NoError(err)
	s.Require().Len(result.Outfits, 3)
	s.Equal(1, result.Repair.Replaced)

	tops := map[outfit.ProductID]bool{}
	for _, o := range result.Outfits {
		tops[o.Items[0].ID] = true
	}
	s.Len(tops, 3)

	s.Require().Len(s.completer.prompts, 1)
	s.Contains(s.completer.prompts[0].User, `LIKED "Inline"`)
	s.Contains(s.completer.prompts[0].User, `DISLIKED "Boardroom": too stiff`)

	var entry models.GenerationLog
	s.Require().NoError(s.db.First(&entry).Error)
	s.Equal(models.GenerationStatusSucceeded, entry.Status)
	s.Equal("shopper-1", entry.UserID)
	s.Equal("work", entry.Occasion)
	s.Equal(12, entry.CatalogSize)
	s.Equal(1, entry.Duplicates)
	s.Equal(3, entry.BatchSize)
	s.Equal("work", entry.Profile["occasion"])
}

func (s *OutfitServiceTestSuite) TestGenerateOutfits_EmptyBudgetMeansUnlimited() {
	s.completer.body = completionFor(s.T(), look("1", "5", "9"), look("2", "6", "10"), look("3", "7", "11"))

	req := s.request()
	req.PriceRange = outfit.PriceRange{}
	result, err := s.service.GenerateOutfits(context.Background(), req)

	s.Require().NoError(err)
	s.True(req.PriceRange.IsUnlimited)
	for _, o := range result.Outfits {
		s.True(o.WithinBudget)
	}
}

func (s *OutfitServiceTestSuite) TestGenerateOutfits_InvalidProfile() {
	req := s.request()
	req.Occasion = ""

	_, err := s.service.GenerateOutfits(context.Background(), req)

	s.ErrorIs(err, outfit.ErrInvalidProfile)
	s.NotEmpty(utils.GetValidationErrors(err))
	s.Empty(s.completer.prompts)
}

func (s *OutfitServiceTestSuite) TestGenerateOutfits_FailureIsLogged() {
	s.completer.err = errors.New("upstream timeout")

	_, err := s.service.GenerateOutfits(context.Background(), s.request())
	s.ErrorIs(err, outfit.ErrCompletionFailed)

	rows, total, err := s.service.RecentGenerations(context.Background(), utils.PaginationParams{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal(models.GenerationStatusFailed, rows[0].Status)
	s.Contains(rows[0].ErrorMessage, "upstream timeout")
}

func TestOutfitServiceSuite(t *testing.T) {
	suite.Run(t, new(OutfitServiceTestSuite))
}
