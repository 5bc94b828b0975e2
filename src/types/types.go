package types

import (
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type ReviewRequestParams struct {
	ID       uint `uri:"id" binding:"required"`
	ReviewID uint `uri:"review_id" binding:"required"`
}

// Handler consumes a raw message body from an external source.
type Handler func(payload string)

type UserPreference string

const (
	PREFERENCE_TRAVELLER UserPreference = "traveller"
	PREFERENCE_PROVIDER  UserPreference = "provider"
)

type Language string

const (
	LANGUAGE_EN Language = "en"
	LANGUAGE_HI Language = "hi"
	LANGUAGE_MR Language = "mr"
	LANGUAGE_KN Language = "kn"
	LANGUAGE_BN Language = "bn"
)

type PropertyType string

const (
	PROPERTY_CABIN       PropertyType = "cabin"
	PROPERTY_HOUSEBOAT   PropertyType = "houseboat"
	PROPERTY_DESERT_CAMP PropertyType = "desert_camp"
	PROPERTY_VILLA       PropertyType = "villa"
	PROPERTY_COTTAGE     PropertyType = "cottage"
	PROPERTY_TREEHOUSE   PropertyType = "treehouse"
)

type SeatType string

const (
	SEAT_SEATER     SeatType = "seater"
	SEAT_SLEEPER    SeatType = "sleeper"
	SEAT_AC_SEATER  SeatType = "ac_seater"
	SEAT_AC_SLEEPER SeatType = "ac_sleeper"
)

type SeatStatus string

const (
	SEAT_AVAILABLE SeatStatus = "available"
	SEAT_BOOKED    SeatStatus = "booked"
	SEAT_RESERVED  SeatStatus = "reserved"
	SEAT_BLOCKED   SeatStatus = "blocked"
)

type TrainClassType string

const (
	CLASS_ALL TrainClassType = "ALL"
	CLASS_SL  TrainClassType = "SL"
	CLASS_3A  TrainClassType = "3A"
	CLASS_2A  TrainClassType = "2A"
	CLASS_1A  TrainClassType = "1A"
	CLASS_CC  TrainClassType = "CC"
)

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_CANCELLED BookingStatus = "cancelled"
	BOOKING_COMPLETED BookingStatus = "completed"
)

type PaymentStatus string

const (
	PAYMENT_PENDING   PaymentStatus = "pending"
	PAYMENT_COMPLETED PaymentStatus = "completed"
	PAYMENT_FAILED    PaymentStatus = "failed"
	PAYMENT_REFUNDED  PaymentStatus = "refunded"
)

type TransactionType string

const (
	TRANSACTION_PAYMENT TransactionType = "payment"
	TRANSACTION_REFUND  TransactionType = "refund"
	TRANSACTION_PAYOUT  TransactionType = "payout"
)

type SupportStatus string

const (
	SUPPORT_OPEN        SupportStatus = "open"
	SUPPORT_IN_PROGRESS SupportStatus = "in_progress"
	SUPPORT_RESOLVED    SupportStatus = "resolved"
	SUPPORT_CLOSED      SupportStatus = "closed"
)

type SupportPriority string

const (
	PRIORITY_LOW    SupportPriority = "low"
	PRIORITY_MEDIUM SupportPriority = "medium"
	PRIORITY_HIGH   SupportPriority = "high"
	PRIORITY_URGENT SupportPriority = "urgent"
)

type Metadata map[string]any
