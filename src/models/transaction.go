package models

import (
	"travelhub/src/types"

	"gorm.io/datatypes"
)

type Payment struct {
	ID            uint                `gorm:"primarykey" json:"id"`
	BookingID     uint                `gorm:"uniqueIndex;not null" json:"booking_id"`
	Amount        float64             `gorm:"type:decimal(10,2)" json:"amount"`
	Currency      string              `gorm:"size:3;default:INR" json:"currency"`
	PaymentMethod string              `gorm:"size:50" json:"payment_method"`
	Status        types.PaymentStatus `gorm:"size:20;default:pending" json:"status"`
	TransactionID string              `gorm:"size:100;uniqueIndex" json:"transaction_id"`

	Transactions []Transaction `gorm:"foreignKey:PaymentID" json:"-"`

	types.Timestamps
}

type Transaction struct {
	ID                    uint                  `gorm:"primarykey" json:"id"`
	PaymentID             uint                  `gorm:"index;not null" json:"payment_id"`
	TransactionType       types.TransactionType `gorm:"size:20;not null" json:"transaction_type"`
	Amount                float64               `gorm:"type:decimal(10,2)" json:"amount"`
	Currency              string                `gorm:"size:3;default:INR" json:"currency"`
	ProviderTransactionID string                `gorm:"size:100" json:"provider_transaction_id"`
	Metadata              datatypes.JSONMap     `json:"metadata"`

	Payment *Payment `gorm:"foreignKey:PaymentID" json:"-"`

	types.Timestamps
}
