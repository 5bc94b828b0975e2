package models

import (
	"time"
	"travelhub/src/types"
)

type User struct {
	ID                uint                 `gorm:"primarykey" json:"id"`
	Name              string               `gorm:"size:100" json:"name,omitempty"`
	Email             *string              `gorm:"size:254;uniqueIndex" json:"email,omitempty"`
	Phone             *string              `gorm:"size:15" json:"phone,omitempty"`
	Preference        types.UserPreference `gorm:"size:20;not null" json:"preference,omitempty"`
	PreferredLanguage types.Language       `gorm:"size:10;not null;default:en" json:"preferred_language,omitempty"`
	IsVerified        bool                 `json:"is_verified"`
	PasswordHash      string               `gorm:"size:255" json:"-"`
	LastLogin         *time.Time           `json:"last_login,omitempty"`

	OAuthProfile *OAuthProfile `gorm:"foreignKey:UserID" json:"-"`

	types.Timestamps
}

// DisplayName falls back to the email address when no name is set.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	if u.Email != nil {
		return *u.Email
	}
	return ""
}

type OAuthProfile struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	UserID         uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Provider       string     `gorm:"size:20;not null;uniqueIndex:idx_oauth_provider_user" json:"provider"`
	ProviderUserID string     `gorm:"size:255;not null;uniqueIndex:idx_oauth_provider_user" json:"provider_user_id"`
	AccessToken    string     `gorm:"type:text" json:"-"`
	RefreshToken   string     `gorm:"type:text" json:"-"`
	TokenExpiresAt *time.Time `json:"-"`
	ProfilePicture string     `gorm:"size:500" json:"profile_picture,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OAuthProfile) TableName() string {
	return "oauth_profiles"
}
