// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired     = "auth.required"
	KeyAuthInvalidToken = "auth.invalid_token"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Rate limiting
	KeyRateLimitExceeded = "rate_limit.exceeded"

	// Products
	KeyProductNotFound = "product.not_found"

	// Outfits
	KeyOutfitGenerated         = "outfit.generated"
	KeyOutfitInvalidProfile    = "outfit.invalid_profile"
	KeyOutfitEmptyCatalog      = "outfit.empty_catalog"
	KeyOutfitCompletionFailed  = "outfit.completion_failed"
	KeyOutfitMalformedResponse = "outfit.malformed_response"
	KeyOutfitGenerationFailed  = "outfit.generation_failed"

	// Feedback
	KeyFeedbackRecorded = "feedback.recorded"
	KeyFeedbackUserID   = "feedback.user_required"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
)
