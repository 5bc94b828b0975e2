package models

import (
	"time"
	"travelhub/src/types"

	"gorm.io/datatypes"
)

type BusOperator struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Logo        string  `gorm:"size:500" json:"logo"`
	Description string  `gorm:"type:text" json:"description"`
	Rating      float64 `gorm:"type:decimal(3,2)" json:"rating"`
	TotalBuses  uint    `json:"total_buses"`

	Buses []Bus `gorm:"foreignKey:OperatorID" json:"-"`

	types.Timestamps
}

type Bus struct {
	ID             uint                        `gorm:"primarykey" json:"id"`
	OperatorID     uint                        `gorm:"index;not null" json:"operator_id"`
	BusNumber      string                      `gorm:"size:20;not null" json:"bus_number"`
	BusType        string                      `gorm:"size:100" json:"bus_type"`
	FromCity       string                      `gorm:"size:100;index" json:"from_city"`
	ToCity         string                      `gorm:"size:100;index" json:"to_city"`
	DepartureTime  time.Time                   `gorm:"index" json:"departure_time"`
	ArrivalTime    time.Time                   `json:"arrival_time"`
	Duration       string                      `gorm:"size:20" json:"duration"`
	SeatType       types.SeatType              `gorm:"size:20;not null" json:"seat_type"`
	TotalSeats     uint                        `json:"total_seats"`
	AvailableSeats uint                        `json:"available_seats"`
	WindowSeats    uint                        `json:"window_seats"`
	BaseFare       float64                     `gorm:"type:decimal(10,2);not null" json:"base_fare"`
	Rating         float64                     `gorm:"type:decimal(3,2)" json:"rating"`
	TotalRatings   uint                        `json:"total_ratings"`
	LiveTracking   bool                        `json:"live_tracking"`
	Amenities      datatypes.JSONSlice[string] `json:"amenities"`

	Operator *BusOperator `gorm:"foreignKey:OperatorID" json:"-"`
	Seats    []BusSeat    `gorm:"foreignKey:BusID" json:"-"`

	types.Timestamps
}

type BusSeat struct {
	ID         uint             `gorm:"primarykey" json:"id"`
	BusID      uint             `gorm:"not null;uniqueIndex:idx_bus_seat" json:"bus_id"`
	SeatNumber string           `gorm:"size:10;not null;uniqueIndex:idx_bus_seat" json:"seat_number"`
	IsWindow   bool             `json:"is_window"`
	IsLadies   bool             `json:"is_ladies"`
	Price      float64          `gorm:"type:decimal(10,2)" json:"price"`
	Status     types.SeatStatus `gorm:"size:20;default:available" json:"status"`

	Bus *Bus `gorm:"foreignKey:BusID" json:"-"`
}

// BusBooking keeps cancellation_allowed as data only.
type BusBooking struct {
	ID                  uint                `gorm:"primarykey" json:"id"`
	UserID              uint                `gorm:"index;not null" json:"user_id"`
	BusID               uint                `gorm:"index;not null" json:"bus_id"`
	TravelDate          datatypes.Date      `json:"travel_date"`
	TotalFare           float64             `gorm:"type:decimal(10,2)" json:"total_fare"`
	Status              types.BookingStatus `gorm:"size:20;default:pending" json:"status"`
	CancellationAllowed bool                `json:"cancellation_allowed"`

	Seats []BusSeat `gorm:"many2many:bus_booking_seats;" json:"-"`
	User  *User     `gorm:"foreignKey:UserID" json:"-"`
	Bus   *Bus      `gorm:"foreignKey:BusID" json:"-"`

	types.Timestamps
}
