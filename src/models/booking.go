package models

import (
	"travelhub/src/types"

	"gorm.io/datatypes"
)

// Booking is a homestay stay. Status is a free enum.
type Booking struct {
	ID              uint                `gorm:"primarykey" json:"id"`
	UserID          uint                `gorm:"index;not null" json:"user_id"`
	HomestayID      uint                `gorm:"index;not null" json:"homestay_id"`
	CheckIn         datatypes.Date      `json:"check_in"`
	CheckOut        datatypes.Date      `json:"check_out"`
	Guests          uint                `json:"guests"`
	TotalPrice      float64             `gorm:"type:decimal(10,2)" json:"total_price"`
	Status          types.BookingStatus `gorm:"size:20;default:pending" json:"status"`
	SpecialRequests string              `gorm:"type:text" json:"special_requests"`

	User     *User     `gorm:"foreignKey:UserID" json:"-"`
	Homestay *Homestay `gorm:"foreignKey:HomestayID" json:"-"`
	Payment  *Payment  `gorm:"foreignKey:BookingID" json:"-"`

	types.Timestamps
}

type Review struct {
	ID                  uint                        `gorm:"primarykey" json:"id"`
	UserID              uint                        `gorm:"index;not null" json:"user_id"`
	HomestayID          uint                        `gorm:"index;not null" json:"homestay_id"`
	BookingID           uint                        `gorm:"uniqueIndex;not null" json:"booking_id"`
	Rating              uint                        `json:"rating"`
	Comment             string                      `gorm:"type:text" json:"comment"`
	CleanlinessRating   uint                        `json:"cleanliness_rating"`
	CommunicationRating uint                        `json:"communication_rating"`
	LocationRating      uint                        `json:"location_rating"`
	ValueRating         uint                        `json:"value_rating"`
	Photos              datatypes.JSONSlice[string] `json:"photos"`

	Booking *Booking `gorm:"foreignKey:BookingID" json:"-"`

	types.Timestamps
}
