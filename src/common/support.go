package common

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"
	"travelhub/src/models"
	"travelhub/src/types"

	"github.com/redis/go-redis/v9"
	"github.com/tidwall/gjson"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const translationCacheTTL = 6 * time.Hour

func ListSupportRequests(db *gorm.DB, userId uint) ([]types.APIResponseSupportRequest, error) {
	var rows []models.SupportRequest
	if err := db.
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	out := make([]types.APIResponseSupportRequest, len(rows))
	for i := range rows {
		out[i] = SerializeSupportRequest(&rows[i])
	}
	return out, nil
}

func CreateSupportRequest(db *gorm.DB, userId uint, body *types.SupportRequestBody) (*types.APIResponseSupportRequest, error) {
	row := models.SupportRequest{
		UserID:      userId,
		BookingID:   body.BookingID,
		Subject:     body.Subject,
		Description: body.Description,
		Status:      types.SUPPORT_OPEN,
		Priority:    body.Priority,
		Attachments: datatypes.JSONSlice[string](body.Attachments),
	}
	if row.Priority == "" {
		row.Priority = types.PRIORITY_MEDIUM
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if body.BookingID != nil {
			var count int64
			if err := tx.Model(&models.Booking{}).Where("id = ? AND user_id = ?", *body.BookingID, userId).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return types.NewFieldError("booking", "booking does not exist")
			}
		}
		return tx.Omit(clause.Associations).Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	out := SerializeSupportRequest(&row)
	return &out, nil
}

func translationKey(text string, source string, target string) string {
	sum := sha1.Sum([]byte(text))
	return fmt.Sprintf("translation:%s:%s:%s", source, target, hex.EncodeToString(sum[:]))
}

// LookupTranslation serves a stored translation and bumps its usage
// counter. rdb may be nil.
func LookupTranslation(ctx context.Context, db *gorm.DB, rdb *redis.Client, q *types.TranslationQuery) (*types.APIResponseTranslation, error) {
	key := translationKey(q.Text, q.Source, q.Target)
	touch := db.
		Model(&models.TranslationsCache{}).
		Where("source_text = ? AND source_language = ? AND target_language = ?", q.Text, q.Source, q.Target)
	if rdb != nil {
		if val, err := rdb.Get(ctx, key).Result(); err == nil && gjson.Valid(val) {
			var out types.APIResponseTranslation
			if err := json.Unmarshal([]byte(val), &out); err == nil {
				if err := touch.UpdateColumns(map[string]any{"use_count": gorm.Expr("use_count + 1"), "last_used": time.Now()}).Error; err != nil {
					log.Printf("[translations] Error updating usage: %s\n", err.Error())
				}
				out.UseCount++
				return &out, nil
			}
		} else if err != nil && !errors.Is(err, redis.Nil) {
			log.Printf("[redis] Error reading translation cache: %s\n", err.Error())
		}
	}
	var row models.TranslationsCache
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("source_text = ? AND source_language = ? AND target_language = ?", q.Text, q.Source, q.Target).
			First(&row).
			Error; err != nil {
			return notFound(err, "translation")
		}
		row.UseCount++
		row.LastUsed = time.Now()
		return tx.Model(&row).UpdateColumns(map[string]any{"use_count": gorm.Expr("use_count + 1"), "last_used": row.LastUsed}).Error
	})
	if err != nil {
		return nil, err
	}
	out := SerializeTranslation(&row)
	if rdb != nil {
		if payload, err := json.Marshal(out); err == nil {
			rdb.Set(ctx, key, payload, translationCacheTTL)
		}
	}
	return &out, nil
}

// StoreTranslation inserts or replaces the translated text for a triple.
func StoreTranslation(ctx context.Context, db *gorm.DB, rdb *redis.Client, body *types.TranslationRequestBody) (*types.APIResponseTranslation, error) {
	row := models.TranslationsCache{
		SourceText:     body.SourceText,
		SourceLanguage: body.SourceLanguage,
		TargetLanguage: body.TargetLanguage,
		TranslatedText: body.TranslatedText,
		LastUsed:       time.Now(),
		UseCount:       1,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source_text"}, {Name: "source_language"}, {Name: "target_language"}},
			DoUpdates: clause.AssignmentColumns([]string{"translated_text", "last_used"}),
		}).Create(&row).Error; err != nil {
			return err
		}
		return tx.
			Where("source_text = ? AND source_language = ? AND target_language = ?", row.SourceText, row.SourceLanguage, row.TargetLanguage).
			First(&row).
			Error
	})
	if err != nil {
		return nil, err
	}
	if rdb != nil {
		if err := rdb.Del(ctx, translationKey(row.SourceText, row.SourceLanguage, row.TargetLanguage)).Err(); err != nil {
			log.Printf("[redis] Error evicting translation: %s\n", err.Error())
		}
	}
	out := SerializeTranslation(&row)
	return &out, nil
}

// CreateAILog stores one assistant exchange. userId is nil for anonymous sessions.
func CreateAILog(db *gorm.DB, userId *uint, body *types.AILogRequestBody) (*models.AILog, error) {
	row := models.AILog{
		UserID:         userId,
		SessionID:      body.SessionID,
		Query:          body.Query,
		Response:       body.Response,
		Context:        datatypes.JSONMap(body.Context),
		Feedback:       body.Feedback,
		ProcessingTime: body.ProcessingTime,
	}
	if row.Context == nil {
		row.Context = datatypes.JSONMap{}
	}
	if err := db.Omit(clause.Associations).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
