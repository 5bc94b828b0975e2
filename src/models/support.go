package models

import (
	"time"
	"travelhub/src/types"

	"gorm.io/datatypes"
)

type SupportRequest struct {
	ID          uint                        `gorm:"primarykey" json:"id"`
	UserID      uint                        `gorm:"index;not null" json:"user_id"`
	BookingID   *uint                       `json:"booking_id,omitempty"`
	Subject     string                      `gorm:"size:200;not null" json:"subject"`
	Description string                      `gorm:"type:text" json:"description"`
	Status      types.SupportStatus         `gorm:"size:20;default:open" json:"status"`
	Priority    types.SupportPriority       `gorm:"size:10;default:medium" json:"priority"`
	ResolvedAt  *time.Time                  `json:"resolved_at,omitempty"`
	Attachments datatypes.JSONSlice[string] `json:"attachments"`

	User *User `gorm:"foreignKey:UserID" json:"-"`

	types.Timestamps
}

type AILog struct {
	ID             uint              `gorm:"primarykey" json:"id"`
	UserID         *uint             `gorm:"index" json:"user_id,omitempty"`
	SessionID      string            `gorm:"size:100;index" json:"session_id"`
	Query          string            `gorm:"type:text" json:"query"`
	Response       string            `gorm:"type:text" json:"response"`
	Context        datatypes.JSONMap `json:"context"`
	Feedback       *string           `gorm:"size:20" json:"feedback,omitempty"`
	ProcessingTime float64           `json:"processing_time"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AILog) TableName() string {
	return "ai_logs"
}

// TranslationsCache memoizes translations with a usage counter; entries never expire.
type TranslationsCache struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	SourceText     string    `gorm:"type:text;not null;uniqueIndex:idx_translation_key" json:"source_text"`
	SourceLanguage string    `gorm:"size:10;not null;uniqueIndex:idx_translation_key" json:"source_language"`
	TargetLanguage string    `gorm:"size:10;not null;uniqueIndex:idx_translation_key" json:"target_language"`
	TranslatedText string    `gorm:"type:text;not null" json:"translated_text"`
	LastUsed       time.Time `json:"last_used"`
	UseCount       uint      `gorm:"default:1" json:"use_count"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (TranslationsCache) TableName() string {
	return "translations_cache"
}
