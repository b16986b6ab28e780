package models

import (
	"bookingapi/src/types"
	"time"
)

type Payment struct {
	ID        string      `gorm:"primaryKey;type:uuid" json:"_id" bson:"_id"`
	BookingID string      `gorm:"type:uuid;index" json:"booking_id" bson:"booking_id"`
	Amount    float64     `json:"amount" bson:"amount"`
	Currency  string      `json:"currency" bson:"currency"`
	Status    string      `json:"status" bson:"status"`
	Reference string      `json:"reference,omitempty" bson:"reference,omitempty"`
	Metadata  types.JSONB `gorm:"type:jsonb" json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at" bson:"created_at"`
}
