package models

import (
	"travelhub/src/types"

	"gorm.io/datatypes"
)

type Train struct {
	ID               uint                 `gorm:"primarykey" json:"id"`
	Number           string               `gorm:"size:10;not null;uniqueIndex" json:"number"`
	Name             string               `gorm:"size:100;not null" json:"name"`
	FromStation      string               `gorm:"size:100;index" json:"from_station"`
	ToStation        string               `gorm:"size:100;index" json:"to_station"`
	DepartureTime    datatypes.Time       `json:"departure_time"`
	ArrivalTime      datatypes.Time       `json:"arrival_time"`
	Duration         string               `gorm:"size:20" json:"duration"`
	Distance         uint                 `json:"distance"`
	RunningDays      string               `gorm:"size:50" json:"running_days"`
	ClassesAvailable types.TrainClassType `gorm:"size:10;default:ALL" json:"classes_available"`
	BaseFare         float64              `gorm:"type:decimal(10,2)" json:"base_fare"`

	Classes []TrainClass `gorm:"foreignKey:TrainID" json:"-"`

	types.Timestamps
}

type TrainClass struct {
	ID             uint                 `gorm:"primarykey" json:"id"`
	TrainID        uint                 `gorm:"not null;uniqueIndex:idx_train_class" json:"train_id"`
	ClassType      types.TrainClassType `gorm:"size:10;not null;uniqueIndex:idx_train_class" json:"class_type"`
	Price          float64              `gorm:"type:decimal(10,2)" json:"price"`
	AvailableSeats uint                 `json:"available_seats"`
	TotalSeats     uint                 `json:"total_seats"`
	HasTatkal      bool                 `json:"has_tatkal"`
	TatkalCharge   float64              `gorm:"type:decimal(10,2)" json:"tatkal_charge"`

	Train *Train `gorm:"foreignKey:TrainID" json:"-"`
}
