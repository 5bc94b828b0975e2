package models

import (
	"time"
	"travelhub/src/types"

	"gorm.io/datatypes"
)

type Property struct {
	ID            uint                        `gorm:"primarykey" json:"id"`
	HostID        uint                        `gorm:"index;not null" json:"host_id"`
	Name          string                      `gorm:"size:200;not null" json:"name"`
	Slug          string                      `gorm:"size:220;index" json:"slug"`
	Type          types.PropertyType          `gorm:"size:20;not null;index" json:"type"`
	Location      string                      `gorm:"size:255" json:"location"`
	State         string                      `gorm:"size:100;index" json:"state"`
	City          string                      `gorm:"size:100;index" json:"city"`
	Description   string                      `gorm:"type:text" json:"description"`
	MaxGuests     uint                        `json:"max_guests"`
	Bedrooms      uint                        `json:"bedrooms"`
	Bathrooms     uint                        `json:"bathrooms"`
	PricePerNight float64                     `gorm:"type:decimal(10,2);not null" json:"price_per_night"`
	Rating        float64                     `gorm:"type:decimal(3,2)" json:"rating"`
	TotalRatings  uint                        `json:"total_ratings"`
	InstantBook   bool                        `json:"instant_book"`
	VerifiedHost  bool                        `json:"verified_host"`
	Amenities     datatypes.JSONSlice[string] `json:"amenities"`
	Photos        datatypes.JSONSlice[string] `json:"photos"`
	PhotoCount    uint                        `json:"photo_count"`
	IsActive      bool                        `gorm:"index" json:"is_active"`

	Host         *User                  `gorm:"foreignKey:HostID" json:"-"`
	Reviews      []PropertyReview       `gorm:"foreignKey:PropertyID" json:"-"`
	Availability []PropertyAvailability `gorm:"foreignKey:PropertyID" json:"-"`

	types.Timestamps
}

type PropertyAvailability struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	PropertyID  uint           `gorm:"not null;uniqueIndex:idx_property_date" json:"property_id"`
	Date        datatypes.Date `gorm:"not null;uniqueIndex:idx_property_date" json:"date"`
	IsAvailable bool           `json:"is_available"`
	BasePrice   float64        `gorm:"type:decimal(10,2)" json:"base_price"`
	MinimumStay uint           `json:"minimum_stay"`
}

type PropertyReview struct {
	ID                uint                        `gorm:"primarykey" json:"id"`
	PropertyID        uint                        `gorm:"not null;uniqueIndex:idx_property_user" json:"property_id"`
	UserID            uint                        `gorm:"not null;uniqueIndex:idx_property_user" json:"user_id"`
	Rating            uint                        `gorm:"not null" json:"rating"`
	Comment           string                      `gorm:"type:text" json:"comment"`
	CleanlinessRating uint                        `json:"cleanliness_rating"`
	LocationRating    uint                        `json:"location_rating"`
	ValueRating       uint                        `json:"value_rating"`
	AmenitiesRating   uint                        `json:"amenities_rating"`
	Photos            datatypes.JSONSlice[string] `json:"photos"`

	User *User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PropertyBooking is stored as submitted; no status transitions are enforced.
type PropertyBooking struct {
	ID                 uint                `gorm:"primarykey" json:"id"`
	PropertyID         uint                `gorm:"index;not null" json:"property_id"`
	UserID             uint                `gorm:"index;not null" json:"user_id"`
	CheckIn            datatypes.Date      `json:"check_in"`
	CheckOut           datatypes.Date      `json:"check_out"`
	Guests             uint                `json:"guests"`
	TotalPrice         float64             `gorm:"type:decimal(10,2)" json:"total_price"`
	Status             types.BookingStatus `gorm:"size:20;default:pending" json:"status"`
	SpecialRequests    string              `gorm:"type:text" json:"special_requests"`
	CancellationPolicy string              `gorm:"size:50" json:"cancellation_policy"`
	HouseRulesAccepted bool                `json:"house_rules_accepted"`

	Property *Property `gorm:"foreignKey:PropertyID" json:"-"`
	User     *User     `gorm:"foreignKey:UserID" json:"-"`

	types.Timestamps
}
