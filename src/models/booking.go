package models

import (
	"bookingapi/src/types"
	"time"
)

type Booking struct {
	ID                   string        `gorm:"primaryKey;type:uuid" json:"_id" bson:"_id"`
	Package              []types.JSONB `gorm:"type:jsonb;serializer:json" json:"package" bson:"package"`
	PackageName          string        `gorm:"index" json:"package_name" bson:"package_name"`
	BookingDate          string        `json:"bookingDate,omitempty" bson:"bookingDate,omitempty"`
	Location             string        `json:"location,omitempty" bson:"location,omitempty"`
	Status               string        `json:"status" bson:"status"`
	Attendees            any           `gorm:"type:jsonb;serializer:json" json:"attendees,omitempty" bson:"attendees,omitempty"`
	TotalPrice           *float64      `json:"totalPrice,omitempty" bson:"totalPrice,omitempty"`
	CurrencyCode         string        `json:"CurrencyCode,omitempty" bson:"CurrencyCode,omitempty"`
	PaymentGeneratorLink string        `gorm:"column:payment_genrator_link" json:"payment_genrator_link,omitempty" bson:"payment_genrator_link,omitempty"`
	UserID               string        `gorm:"type:uuid;index" json:"userId" bson:"userId"`
	CreatedAt            time.Time     `gorm:"autoCreateTime;index" json:"created_at" bson:"created_at"`

	User *UserRef `gorm:"-" json:"user,omitempty" bson:"-"`
}

// BookingUpdate is a partial update; nil fields are left untouched.
type BookingUpdate struct {
	Status               *string
	TotalPrice           *float64
	CurrencyCode         *string
	PaymentGeneratorLink *string
}

func (u BookingUpdate) Empty() bool {
	return u.Status == nil && u.TotalPrice == nil && u.CurrencyCode == nil && u.PaymentGeneratorLink == nil
}

type BookingQuery struct {
	// Search matches package_name case-insensitively; OwnerIDs are OR-ed with it.
	Search   string
	OwnerIDs []string
	Skip     int
	Limit    int
}
