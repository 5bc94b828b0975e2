package common

import (
	"errors"
	"log"
	"math"
	"time"
	"travelhub/src/config"
	"travelhub/src/models"
	"travelhub/src/types"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RefreshPropertyRating stores the review average and count on the property.
func RefreshPropertyRating(tx *gorm.DB, propertyId uint) error {
	var agg struct {
		Total   int64
		Average float64
	}
	if err := tx.
		Model(&models.PropertyReview{}).
		Select("COUNT(*) AS total, COALESCE(AVG(rating), 0) AS average").
		Where("property_id = ?", propertyId).
		Scan(&agg).
		Error; err != nil {
		return err
	}
	return tx.
		Model(&models.Property{}).
		Where("id = ?", propertyId).
		Updates(map[string]any{
			"rating":        math.Round(agg.Average*100) / 100,
			"total_ratings": agg.Total,
		}).
		Error
}

// ReconcilePropertyRatings recomputes every property's aggregates.
func ReconcilePropertyRatings(db *gorm.DB) (int, error) {
	var ids []uint
	if err := db.Model(&models.Property{}).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	updated := 0
	for _, id := range ids {
		if err := db.Transaction(func(tx *gorm.DB) error {
			return RefreshPropertyRating(tx, id)
		}); err != nil {
			log.Printf("[ratings] Error reconciling property [%d]: %s\n", id, err.Error())
			continue
		}
		updated++
	}
	return updated, nil
}

func loadReview(tx *gorm.DB, propertyId uint, reviewId uint) (*models.PropertyReview, error) {
	var review models.PropertyReview
	if err := tx.
		Where("id = ? AND property_id = ?", reviewId, propertyId).
		First(&review).
		Error; err != nil {
		return nil, notFound(err, "review")
	}
	return &review, nil
}

func CreateReview(db *gorm.DB, propertyId uint, userId uint, body *types.ReviewRequestBody) (*types.APIResponseReview, error) {
	if err := RequireFields(body.Missing()); err != nil {
		return nil, err
	}
	review := models.PropertyReview{PropertyID: propertyId, UserID: userId}
	ApplyReviewBody(&review, body)
	err := db.Transaction(func(tx *gorm.DB) error {
		prop, err := FindProperty(tx, propertyId)
		if err != nil {
			return err
		}
		if prop.HostID == userId {
			return types.NewForbiddenError("hosts cannot review their own property")
		}
		var existing int64
		if err := tx.
			Model(&models.PropertyReview{}).
			Where("property_id = ? AND user_id = ?", propertyId, userId).
			Count(&existing).
			Error; err != nil {
			return err
		}
		if existing > 0 {
			return types.NewConflictError("review for this property already exists")
		}
		if err := tx.Create(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return types.NewConflictError("review for this property already exists")
			}
			return err
		}
		return RefreshPropertyRating(tx, propertyId)
	})
	if err != nil {
		return nil, err
	}
	if err := db.Preload("User").First(&review, review.ID).Error; err != nil {
		return nil, err
	}
	out := SerializeReview(&review)
	return &out, nil
}

func UpdateReview(db *gorm.DB, propertyId uint, reviewId uint, userId uint, body *types.ReviewRequestBody) (*types.APIResponseReview, error) {
	var review *models.PropertyReview
	err := db.Transaction(func(tx *gorm.DB) error {
		r, err := loadReview(tx, propertyId, reviewId)
		if err != nil {
			return err
		}
		if r.UserID != userId {
			return types.NewForbiddenError("only the author can change this review")
		}
		ApplyReviewBody(r, body)
		if err := tx.Save(r).Error; err != nil {
			return err
		}
		review = r
		return RefreshPropertyRating(tx, propertyId)
	})
	if err != nil {
		return nil, err
	}
	if err := db.Preload("User").First(review, review.ID).Error; err != nil {
		return nil, err
	}
	out := SerializeReview(review)
	return &out, nil
}

func DeleteReview(db *gorm.DB, propertyId uint, reviewId uint, userId uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		r, err := loadReview(tx, propertyId, reviewId)
		if err != nil {
			return err
		}
		if r.UserID != userId {
			return types.NewForbiddenError("only the author can delete this review")
		}
		if err := tx.Delete(r).Error; err != nil {
			return err
		}
		return RefreshPropertyRating(tx, propertyId)
	})
}

// UpsertAvailability writes the per-date row for a property owned by hostId.
func UpsertAvailability(db *gorm.DB, propertyId uint, hostId uint, body *types.AvailabilityRequestBody) (*types.APIResponseAvailability, error) {
	day, err := time.ParseInLocation(config.DATE_FORMAT, body.Date, time.UTC)
	if err != nil {
		return nil, types.NewFieldError("date", "must be a date in YYYY-MM-DD format")
	}
	row := models.PropertyAvailability{
		PropertyID:  propertyId,
		Date:        datatypes.Date(day),
		IsAvailable: true,
		BasePrice:   *body.BasePrice,
		MinimumStay: 1,
	}
	set(&row.IsAvailable, body.IsAvailable)
	set(&row.MinimumStay, body.MinimumStay)
	err = db.Transaction(func(tx *gorm.DB) error {
		prop, err := FindProperty(tx, propertyId)
		if err != nil {
			return err
		}
		if prop.HostID != hostId {
			return types.NewForbiddenError("only the host can change availability")
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "property_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_available", "base_price", "minimum_stay"}),
		}).Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	out := SerializeAvailability(&row)
	return &out, nil
}
