// internal/models/feedback.go
package models

import (
	"gorm.io/datatypes"
)

// OutfitFeedback records a user's reaction to a generated outfit. Recent rows
// are replayed into the next generation prompt.
type OutfitFeedback struct {
	BaseModel
	UserID     string                      `json:"user_id" gorm:"size:64;not null;index"`
	OutfitName string                      `json:"outfit_name" gorm:"size:255;not null"`
	ItemIDs    datatypes.JSONSlice[string] `json:"item_ids"`
	ItemNames  datatypes.JSONSlice[string] `json:"item_names"`
	Liked      bool                        `json:"liked"`
	Reason     string                      `json:"reason" gorm:"type:text"`
}

// GenerationLog is an audit row written for every outfit generation request.
type GenerationLog struct {
	BaseModel
	UserID       string            `json:"user_id" gorm:"size:64;index"`
	Occasion     string            `json:"occasion" gorm:"size:80;index"`
	Profile      datatypes.JSONMap `json:"profile"`
	BatchSize    int               `json:"batch_size"`
	CatalogSize  int               `json:"catalog_size"`
	Duplicates   int               `json:"duplicates"`
	Replaced     int               `json:"replaced"`
	Fallbacks    int               `json:"fallbacks"`
	Status       GenerationStatus  `json:"status" gorm:"type:varchar(20);index"`
	ErrorMessage string            `json:"error_message,omitempty" gorm:"type:text"`
	DurationMS   int64             `json:"duration_ms"`
}
