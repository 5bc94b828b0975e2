package models

import (
	"travelhub/src/types"

	"gorm.io/datatypes"
)

type Homestay struct {
	ID             uint                        `gorm:"primarykey" json:"id"`
	HostID         uint                        `gorm:"index;not null" json:"host_id"`
	Name           string                      `gorm:"size:200;not null" json:"name"`
	Description    string                      `gorm:"type:text" json:"description"`
	Address        string                      `gorm:"type:text" json:"address"`
	City           string                      `gorm:"size:100;index" json:"city"`
	Country        string                      `gorm:"size:100" json:"country"`
	PricePerNight  float64                     `gorm:"type:decimal(10,2);not null" json:"price_per_night"`
	TotalRooms     uint                        `json:"total_rooms"`
	AvailableRooms uint                        `json:"available_rooms"`
	Amenities      datatypes.JSONSlice[string] `json:"amenities"`
	HouseRules     datatypes.JSONSlice[string] `json:"house_rules"`
	Photos         datatypes.JSONSlice[string] `json:"photos"`
	Rating         float64                     `gorm:"type:decimal(3,2)" json:"rating"`
	IsActive       bool                        `gorm:"index" json:"is_active"`

	Host *User `gorm:"foreignKey:HostID" json:"-"`

	types.Timestamps
}
