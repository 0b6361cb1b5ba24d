// internal/handlers/outfit.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/outfit-backend/internal/i18n"
	"github.com/javajoker/outfit-backend/internal/outfit"
	"github.com/javajoker/outfit-backend/internal/services"
	"github.com/javajoker/outfit-backend/internal/utils"
)

type OutfitHandler struct {
	outfitService   *services.OutfitService
	feedbackService *services.FeedbackService
}

func NewOutfitHandler(outfitService *services.OutfitService, feedbackService *services.FeedbackService) *OutfitHandler {
	return &OutfitHandler{
		outfitService:   outfitService,
		feedbackService: feedbackService,
	}
}

// POST /outfits/generate
func (h *OutfitHandler) GenerateOutfits(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.GenerateOutfitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// The token identity wins over the body.
	if userID, ok := utils.GetUserIDFromContext(c); ok {
		req.UserID = userID
	}

	result, err := h.outfitService.GenerateOutfits(c.Request.Context(), &req)
	if err != nil {
		h.generationError(c, lang, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"outfits":  result.Outfits,
		"warnings": result.Warnings,
		"message":  i18n.T(lang, i18n.KeyOutfitGenerated),
	})
}

func (h *OutfitHandler) generationError(c *gin.Context, lang string, err error) {
	if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	switch {
	case errors.Is(err, outfit.ErrInvalidProfile):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOutfitInvalidProfile, err.Error()), nil)
	case errors.Is(err, outfit.ErrEmptyCatalog):
		utils.UnprocessableResponse(c, "EMPTY_CATALOG", i18n.T(lang, i18n.KeyOutfitEmptyCatalog))
	case errors.Is(err, outfit.ErrMalformedResponse):
		utils.BadGatewayResponse(c, "MALFORMED_COMPLETION", i18n.T(lang, i18n.KeyOutfitMalformedResponse))
	case errors.Is(err, outfit.ErrCompletionFailed):
		utils.BadGatewayResponse(c, "COMPLETION_FAILED", i18n.T(lang, i18n.KeyOutfitCompletionFailed))
	default:
		logrus.WithError(err).Error("Outfit generation failed")
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyOutfitGenerationFailed))
	}
}

// POST /outfits/feedback
func (h *OutfitHandler) RecordFeedback(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.RecordFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if userID, ok := utils.GetUserIDFromContext(c); ok {
		req.UserID = userID
	}
	if req.UserID == "" {
		utils.ValidationErrorResponse(c, []utils.ValidationError{{
			Field:   "user_id",
			Tag:     "required",
			Message: i18n.T(lang, i18n.KeyFeedbackUserID),
		}})
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	feedback, err := h.feedbackService.RecordFeedback(c.Request.Context(), &req)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{
		"feedback": feedback,
		"message":  i18n.T(lang, i18n.KeyFeedbackRecorded),
	})
}

// GET /outfits/feedback
// Lists only the caller's own feedback.
func (h *OutfitHandler) GetFeedback(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	params := utils.GetPaginationParams(c)

	userID, _ := utils.GetUserIDFromContext(c)
	if userID == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "user_id"), nil)
		return
	}

	rows, total, err := h.feedbackService.ListFeedback(c.Request.Context(), userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(rows, total, params))
}

// GET /outfits/generations
func (h *OutfitHandler) GetGenerations(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	rows, total, err := h.outfitService.RecentGenerations(c.Request.Context(), params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(rows, total, params))
}
