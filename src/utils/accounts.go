package utils

import (
	"errors"
	"log"
	"strings"
	"time"
	"travelhub/src/models"
	"travelhub/src/types"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sealTokens(profile *models.OAuthProfile, tokens types.ProviderTokens, tokenKey string) error {
	access, err := SealProviderToken(tokenKey, tokens.AccessToken)
	if err != nil {
		return err
	}
	profile.AccessToken = access
	if tokens.RefreshToken != "" {
		refresh, err := SealProviderToken(tokenKey, tokens.RefreshToken)
		if err != nil {
			return err
		}
		profile.RefreshToken = refresh
	}
	profile.TokenExpiresAt = tokens.Expiry
	return nil
}

func resolveOAuthUser(tx *gorm.DB, provider string, profile types.ProviderProfile, tokens types.ProviderTokens, tokenKey string) (*models.User, bool, error) {
	var existing models.OAuthProfile
	err := tx.
		Preload("User").
		Where("provider = ? AND provider_user_id = ?", provider, profile.ID).
		First(&existing).
		Error
	if err == nil && existing.User != nil {
		if err := sealTokens(&existing, tokens, tokenKey); err != nil {
			return nil, false, err
		}
		if profile.Picture != "" {
			existing.ProfilePicture = profile.Picture
		}
		if err := tx.Omit("User").Save(&existing).Error; err != nil {
			return nil, false, err
		}
		return existing.User, false, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	link := models.OAuthProfile{
		Provider:       provider,
		ProviderUserID: profile.ID,
		ProfilePicture: profile.Picture,
	}
	if err := sealTokens(&link, tokens, tokenKey); err != nil {
		return nil, false, err
	}

	email := NormalizeEmail(profile.Email)
	if email != "" {
		var user models.User
		err := tx.Preload("OAuthProfile").Where("email = ?", email).First(&user).Error
		if err == nil {
			if user.OAuthProfile != nil {
				return nil, false, types.NewConflictError("this email is already linked to another sign-in provider")
			}
			link.UserID = user.ID
			if err := tx.Create(&link).Error; err != nil {
				return nil, false, err
			}
			return &user, false, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
	}

	user := models.User{
		Name:       profile.Name,
		Preference: types.PREFERENCE_TRAVELLER,
		IsVerified: true,
	}
	if email != "" {
		user.Email = &email
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, false, err
	}
	link.UserID = user.ID
	if err := tx.Create(&link).Error; err != nil {
		return nil, false, err
	}
	return &user, true, nil
}

// ResolveOAuthUser finds or creates the account behind a provider identity.
// The boolean result reports whether a new user was created.
func ResolveOAuthUser(db *gorm.DB, provider string, profile types.ProviderProfile, tokens types.ProviderTokens, tokenKey string) (*models.User, bool, error) {
	if profile.ID == "" {
		return nil, false, types.NewUpstreamError("provider returned no user id", nil)
	}
	var (
		user  *models.User
		isNew bool
	)
	attempt := func() error {
		return db.Transaction(func(tx *gorm.DB) error {
			u, created, err := resolveOAuthUser(tx, provider, profile, tokens, tokenKey)
			if err != nil {
				return err
			}
			user, isNew = u, created
			return nil
		})
	}
	err := attempt()
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// a concurrent sign-in created the same identity
		log.Printf("[accounts] Retrying oauth sign-in for %s after duplicate key\n", provider)
		err = attempt()
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, types.NewConflictError("account already exists")
		}
		return nil, false, err
	}
	return user, isNew, nil
}

func RegisterUser(db *gorm.DB, body *types.RegisterRequestBody) (*models.User, error) {
	email := NormalizeEmail(body.Email)
	hash, err := HashPassword(body.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, types.NewFieldError("password", "must be at most 72 bytes")
	}
	if err != nil {
		return nil, err
	}
	user := models.User{
		Name:         strings.TrimSpace(body.Name),
		Email:        &email,
		Phone:        body.Phone,
		Preference:   types.PREFERENCE_TRAVELLER,
		IsVerified:   false,
		PasswordHash: hash,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return types.NewConflictError("user with this email already exists")
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return types.NewConflictError("user with this email already exists")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func AuthenticateUser(db *gorm.DB, email string, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("user not found")
		}
		return nil, err
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, types.NewUnauthorizedError("invalid credentials", nil)
	}
	now := time.Now()
	if err := db.Model(&user).Update("last_login", now).Error; err != nil {
		log.Printf("[accounts] Error updating last_login: %s\n", err.Error())
	}
	user.LastLogin = &now
	return &user, nil
}

func FindUser(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("user not found")
		}
		return nil, err
	}
	return &user, nil
}
