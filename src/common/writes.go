package common

import (
	"errors"
	"travelhub/src/models"
	"travelhub/src/models/scopes"
	"travelhub/src/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Writes take partial=true for PATCH. A full write (POST, PUT) must carry
// every required field of the body.

func checkRequired(partial bool, missing map[string]string) error {
	if partial {
		return nil
	}
	return RequireFields(missing)
}

func duplicate(err error, message string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return types.NewConflictError(message)
	}
	return err
}

// loadOwned finds a row by id regardless of is_active and checks its owner.
func loadOwned[T any](tx *gorm.DB, dst *T, id uint, column string, ownerId uint, what string) error {
	if err := tx.Scopes(scopes.WithID(id)).First(dst).Error; err != nil {
		return notFound(err, what)
	}
	var count int64
	if err := tx.Model(dst).Scopes(scopes.WithID(id), scopes.OwnedBy(column, ownerId)).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return types.NewForbiddenError("you do not own this " + what)
	}
	return nil
}

func serializeOne(tx *gorm.DB, p *models.Property) (*types.APIResponseProperty, error) {
	if err := tx.Preload("Host").Scopes(scopes.WithID(p.ID)).First(p).Error; err != nil {
		return nil, err
	}
	out, err := serializeProperties(tx, []models.Property{*p})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func CreateProperty(db *gorm.DB, host *models.User, body *types.PropertyRequestBody) (*types.APIResponseProperty, error) {
	if err := RequireFields(body.Missing()); err != nil {
		return nil, err
	}
	prop := models.Property{HostID: host.ID, IsActive: true, VerifiedHost: host.IsVerified}
	ApplyPropertyBody(&prop, body)
	var out *types.APIResponseProperty
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&prop).Error; err != nil {
			return err
		}
		prop.Slug = PropertySlug(prop.Name, prop.ID)
		if err := tx.Model(&prop).Update("slug", prop.Slug).Error; err != nil {
			return err
		}
		var err error
		out, err = serializeOne(tx, &prop)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func UpdateProperty(db *gorm.DB, id uint, hostId uint, body *types.PropertyRequestBody, partial bool) (*types.APIResponseProperty, error) {
	if err := checkRequired(partial, body.Missing()); err != nil {
		return nil, err
	}
	var out *types.APIResponseProperty
	err := db.Transaction(func(tx *gorm.DB) error {
		var prop models.Property
		if err := loadOwned(tx, &prop, id, "host_id", hostId, "property"); err != nil {
			return err
		}
		ApplyPropertyBody(&prop, body)
		prop.Slug = PropertySlug(prop.Name, prop.ID)
		if err := tx.Omit(clause.Associations).Save(&prop).Error; err != nil {
			return err
		}
		var err error
		out, err = serializeOne(tx, &prop)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func DeleteProperty(db *gorm.DB, id uint, hostId uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var prop models.Property
		if err := loadOwned(tx, &prop, id, "host_id", hostId, "property"); err != nil {
			return err
		}
		for _, dep := range []any{&models.PropertyAvailability{}, &models.PropertyReview{}} {
			if err := tx.Where("property_id = ?", id).Delete(dep).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&prop).Error
	})
}

// CheckPropertyOwner fails unless hostId owns the property.
func CheckPropertyOwner(db *gorm.DB, id uint, hostId uint) error {
	var prop models.Property
	return loadOwned(db, &prop, id, "host_id", hostId, "property")
}

// AddPropertyPhoto appends an uploaded photo URL.
func AddPropertyPhoto(db *gorm.DB, id uint, hostId uint, url string) (*types.APIResponseProperty, error) {
	var out *types.APIResponseProperty
	err := db.Transaction(func(tx *gorm.DB) error {
		var prop models.Property
		if err := loadOwned(tx, &prop, id, "host_id", hostId, "property"); err != nil {
			return err
		}
		prop.Photos = append(prop.Photos, url)
		prop.PhotoCount = uint(len(prop.Photos))
		if err := tx.Model(&prop).Updates(map[string]any{"photos": prop.Photos, "photo_count": prop.PhotoCount}).Error; err != nil {
			return err
		}
		var err error
		out, err = serializeOne(tx, &prop)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func saveHomestay(tx *gorm.DB, h *models.Homestay) (*types.APIResponseHomestay, error) {
	if err := tx.Omit(clause.Associations).Save(h).Error; err != nil {
		return nil, err
	}
	if err := tx.Preload("Host").Scopes(scopes.WithID(h.ID)).First(h).Error; err != nil {
		return nil, err
	}
	out := SerializeHomestay(h)
	return &out, nil
}

func CreateHomestay(db *gorm.DB, hostId uint, body *types.HomestayRequestBody) (*types.APIResponseHomestay, error) {
	if err := RequireFields(body.Missing()); err != nil {
		return nil, err
	}
	homestay := models.Homestay{HostID: hostId, IsActive: true}
	if err := ApplyHomestayBody(&homestay, body); err != nil {
		return nil, err
	}
	var out *types.APIResponseHomestay
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		out, err = saveHomestay(tx, &homestay)
		return err
	})
	return out, err
}

func UpdateHomestay(db *gorm.DB, id uint, hostId uint, body *types.HomestayRequestBody, partial bool) (*types.APIResponseHomestay, error) {
	if err := checkRequired(partial, body.Missing()); err != nil {
		return nil, err
	}
	var out *types.APIResponseHomestay
	err := db.Transaction(func(tx *gorm.DB) error {
		var homestay models.Homestay
		if err := loadOwned(tx, &homestay, id, "host_id", hostId, "homestay"); err != nil {
			return err
		}
		if err := ApplyHomestayBody(&homestay, body); err != nil {
			return err
		}
		var err error
		out, err = saveHomestay(tx, &homestay)
		return err
	})
	return out, err
}

func DeleteHomestay(db *gorm.DB, id uint, hostId uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var homestay models.Homestay
		if err := loadOwned(tx, &homestay, id, "host_id", hostId, "homestay"); err != nil {
			return err
		}
		return tx.Delete(&homestay).Error
	})
}

func operatorExists(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&models.BusOperator{}).Scopes(scopes.WithID(id)).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return types.NewFieldError("operator", "bus operator does not exist")
	}
	return nil
}

func saveBus(tx *gorm.DB, bus *models.Bus) (*types.APIResponseBus, error) {
	if err := operatorExists(tx, bus.OperatorID); err != nil {
		return nil, err
	}
	if err := tx.Omit(clause.Associations).Save(bus).Error; err != nil {
		return nil, err
	}
	saved, err := FindBus(tx, bus.ID)
	if err != nil {
		return nil, err
	}
	out := SerializeBus(saved)
	return &out, nil
}

func CreateBus(db *gorm.DB, body *types.BusRequestBody) (*types.APIResponseBus, error) {
	if err := RequireFields(body.Missing()); err != nil {
		return nil, err
	}
	var bus models.Bus
	if err := ApplyBusBody(&bus, body); err != nil {
		return nil, err
	}
	var out *types.APIResponseBus
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		out, err = saveBus(tx, &bus)
		return err
	})
	return out, err
}

func UpdateBus(db *gorm.DB, id uint, body *types.BusRequestBody, partial bool) (*types.APIResponseBus, error) {
	if err := checkRequired(partial, body.Missing()); err != nil {
		return nil, err
	}
	var out *types.APIResponseBus
	err := db.Transaction(func(tx *gorm.DB) error {
		var bus models.Bus
		if err := tx.Scopes(scopes.WithID(id)).First(&bus).Error; err != nil {
			return notFound(err, "bus")
		}
		if err := ApplyBusBody(&bus, body); err != nil {
			return err
		}
		var err error
		out, err = saveBus(tx, &bus)
		return err
	})
	return out, err
}

func DeleteBus(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := FindBus(tx, id); err != nil {
			return err
		}
		if err := tx.Where("bus_id = ?", id).Delete(&models.BusSeat{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Bus{}, id).Error
	})
}

func CreateTrain(db *gorm.DB, body *types.TrainRequestBody) (*types.APIResponseTrain, error) {
	if err := RequireFields(body.Missing()); err != nil {
		return nil, err
	}
	var train models.Train
	if err := ApplyTrainBody(&train, body); err != nil {
		return nil, err
	}
	if err := db.Omit(clause.Associations).Create(&train).Error; err != nil {
		return nil, duplicate(err, "train with this number already exists")
	}
	out := SerializeTrain(&train)
	return &out, nil
}

func UpdateTrain(db *gorm.DB, id uint, body *types.TrainRequestBody, partial bool) (*types.APIResponseTrain, error) {
	if err := checkRequired(partial, body.Missing()); err != nil {
		return nil, err
	}
	train, err := FindTrain(db, id)
	if err != nil {
		return nil, err
	}
	if err := ApplyTrainBody(train, body); err != nil {
		return nil, err
	}
	if err := db.Omit(clause.Associations).Save(train).Error; err != nil {
		return nil, duplicate(err, "train with this number already exists")
	}
	out := SerializeTrain(train)
	return &out, nil
}

func DeleteTrain(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := FindTrain(tx, id); err != nil {
			return err
		}
		if err := tx.Where("train_id = ?", id).Delete(&models.TrainClass{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Train{}, id).Error
	})
}

func CreateBusOperator(db *gorm.DB, body *types.BusOperatorRequestBody) (*types.APIResponseBusOperator, error) {
	if err := RequireFields(body.Missing()); err != nil {
		return nil, err
	}
	var operator models.BusOperator
	ApplyBusOperatorBody(&operator, body)
	if err := db.Omit(clause.Associations).Create(&operator).Error; err != nil {
		return nil, err
	}
	out := SerializeBusOperator(&operator)
	return &out, nil
}

func UpdateBusOperator(db *gorm.DB, id uint, body *types.BusOperatorRequestBody, partial bool) (*types.APIResponseBusOperator, error) {
	if err := checkRequired(partial, body.Missing()); err != nil {
		return nil, err
	}
	operator, err := FindBusOperator(db, id)
	if err != nil {
		return nil, err
	}
	ApplyBusOperatorBody(operator, body)
	if err := db.Omit(clause.Associations).Save(operator).Error; err != nil {
		return nil, err
	}
	out := SerializeBusOperator(operator)
	return &out, nil
}

// DeleteBusOperator refuses while buses still reference the operator.
func DeleteBusOperator(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := FindBusOperator(tx, id); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.Bus{}).Where("operator_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return types.NewConflictError("bus operator still has buses")
		}
		return tx.Delete(&models.BusOperator{}, id).Error
	})
}
