package common

import (
	"log"
	"travelhub/src/models"

	"gorm.io/gorm"
)

// UpdateMissingSlugs fills the slug of properties that were stored without one.
func UpdateMissingSlugs(db *gorm.DB) int {
	var props []models.Property
	if err := db.
		Select("id", "name").
		Where("slug IS NULL OR slug = ''").
		Find(&props).
		Error; err != nil {
		log.Printf("Error querying Properties: %s\n", err.Error())
		return 0
	}
	updated := 0
	if err := db.Transaction(func(tx *gorm.DB) error {
		for _, p := range props {
			if err := tx.
				Model(&models.Property{}).
				Where("id = ?", p.ID).
				Update("slug", PropertySlug(p.Name, p.ID)).
				Error; err != nil {
				return err
			}
			updated++
		}
		return nil
	}); err != nil {
		log.Printf("Error on update operation: %s\n", err.Error())
		return 0
	}
	return updated
}
