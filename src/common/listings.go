package common

import (
	"errors"
	"travelhub/src/models"
	"travelhub/src/models/scopes"
	"travelhub/src/types"

	"gorm.io/gorm"
)

// The list functions are shared by the REST handlers and the realtime
// snapshots. A limit of zero or less returns every match.

func withLimit(tx *gorm.DB, limit int) *gorm.DB {
	if limit > 0 {
		return tx.Limit(limit)
	}
	return tx
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.NewNotFoundError(what + " not found")
	}
	return err
}

// PropertyRatingCounts counts reviews per property at read time.
func PropertyRatingCounts(db *gorm.DB, ids []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	var rows []struct {
		PropertyID uint
		Total      int64
	}
	if err := db.
		Model(&models.PropertyReview{}).
		Select("property_id, COUNT(*) AS total").
		Where("property_id IN ?", ids).
		Group("property_id").
		Scan(&rows).
		Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.PropertyID] = r.Total
	}
	return counts, nil
}

func serializeProperties(db *gorm.DB, props []models.Property) ([]types.APIResponseProperty, error) {
	ids := make([]uint, len(props))
	for i := range props {
		ids[i] = props[i].ID
	}
	counts, err := PropertyRatingCounts(db, ids)
	if err != nil {
		return nil, err
	}
	out := make([]types.APIResponseProperty, len(props))
	for i := range props {
		out[i] = SerializeProperty(&props[i], counts[props[i].ID])
	}
	return out, nil
}

func ListProperties(db *gorm.DB, params FilterParams, limit int) ([]types.APIResponseProperty, error) {
	q, err := ApplyFilters(db.Model(&models.Property{}), PropertyListSpec, params)
	if err != nil {
		return nil, err
	}
	var props []models.Property
	if err := withLimit(q, limit).Preload("Host").Find(&props).Error; err != nil {
		return nil, err
	}
	return serializeProperties(db, props)
}

// FindProperty loads an active property with its host.
func FindProperty(db *gorm.DB, id uint) (*models.Property, error) {
	var prop models.Property
	if err := db.
		Scopes(scopes.Active, scopes.WithID(id)).
		Preload("Host").
		First(&prop).
		Error; err != nil {
		return nil, notFound(err, "property")
	}
	return &prop, nil
}

func GetProperty(db *gorm.DB, id uint) (*types.APIResponseProperty, error) {
	prop, err := FindProperty(db, id)
	if err != nil {
		return nil, err
	}
	out, err := serializeProperties(db, []models.Property{*prop})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func ListAvailability(db *gorm.DB, propertyId uint) ([]types.APIResponseAvailability, error) {
	var rows []models.PropertyAvailability
	if err := db.
		Where("property_id = ?", propertyId).
		Order("date").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	out := make([]types.APIResponseAvailability, len(rows))
	for i := range rows {
		out[i] = SerializeAvailability(&rows[i])
	}
	return out, nil
}

func ListReviews(db *gorm.DB, propertyId uint) ([]types.APIResponseReview, error) {
	var rows []models.PropertyReview
	if err := db.
		Where("property_id = ?", propertyId).
		Preload("User").
		Order("created_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	out := make([]types.APIResponseReview, len(rows))
	for i := range rows {
		out[i] = SerializeReview(&rows[i])
	}
	return out, nil
}

func ListBuses(db *gorm.DB, params FilterParams, limit int) ([]types.APIResponseBus, error) {
	q, err := ApplyFilters(db.Model(&models.Bus{}), BusListSpec, params)
	if err != nil {
		return nil, err
	}
	var buses []models.Bus
	if err := withLimit(q, limit).Preload("Operator").Find(&buses).Error; err != nil {
		return nil, err
	}
	out := make([]types.APIResponseBus, len(buses))
	for i := range buses {
		out[i] = SerializeBus(&buses[i])
	}
	return out, nil
}

func FindBus(db *gorm.DB, id uint) (*models.Bus, error) {
	var bus models.Bus
	if err := db.Scopes(scopes.WithID(id)).Preload("Operator").First(&bus).Error; err != nil {
		return nil, notFound(err, "bus")
	}
	return &bus, nil
}

func ListTrains(db *gorm.DB, params FilterParams, limit int) ([]types.APIResponseTrain, error) {
	q, err := ApplyFilters(db.Model(&models.Train{}), TrainListSpec, params)
	if err != nil {
		return nil, err
	}
	var trains []models.Train
	if err := withLimit(q, limit).Find(&trains).Error; err != nil {
		return nil, err
	}
	out := make([]types.APIResponseTrain, len(trains))
	for i := range trains {
		out[i] = SerializeTrain(&trains[i])
	}
	return out, nil
}

func FindTrain(db *gorm.DB, id uint) (*models.Train, error) {
	var train models.Train
	if err := db.Scopes(scopes.WithID(id)).First(&train).Error; err != nil {
		return nil, notFound(err, "train")
	}
	return &train, nil
}

func ListHomestays(db *gorm.DB, params FilterParams, limit int) ([]types.APIResponseHomestay, error) {
	q, err := ApplyFilters(db.Model(&models.Homestay{}), HomestayListSpec, params)
	if err != nil {
		return nil, err
	}
	var homestays []models.Homestay
	if err := withLimit(q, limit).Preload("Host").Find(&homestays).Error; err != nil {
		return nil, err
	}
	out := make([]types.APIResponseHomestay, len(homestays))
	for i := range homestays {
		out[i] = SerializeHomestay(&homestays[i])
	}
	return out, nil
}

func FindHomestay(db *gorm.DB, id uint) (*models.Homestay, error) {
	var homestay models.Homestay
	if err := db.
		Scopes(scopes.Active, scopes.WithID(id)).
		Preload("Host").
		First(&homestay).
		Error; err != nil {
		return nil, notFound(err, "homestay")
	}
	return &homestay, nil
}

func ListBusOperators(db *gorm.DB, params FilterParams, limit int) ([]types.APIResponseBusOperator, error) {
	q, err := ApplyFilters(db.Model(&models.BusOperator{}), BusOperatorListSpec, params)
	if err != nil {
		return nil, err
	}
	var operators []models.BusOperator
	if err := withLimit(q, limit).Find(&operators).Error; err != nil {
		return nil, err
	}
	out := make([]types.APIResponseBusOperator, len(operators))
	for i := range operators {
		out[i] = SerializeBusOperator(&operators[i])
	}
	return out, nil
}

func FindBusOperator(db *gorm.DB, id uint) (*models.BusOperator, error) {
	var operator models.BusOperator
	if err := db.Scopes(scopes.WithID(id)).First(&operator).Error; err != nil {
		return nil, notFound(err, "bus operator")
	}
	return &operator, nil
}
