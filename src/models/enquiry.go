package models

import (
	"time"
)

type Enquiry struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"_id" bson:"_id"`
	Name          string    `gorm:"not null" json:"name" bson:"name"`
	Email         string    `gorm:"not null" json:"email" bson:"email"`
	Message       string    `gorm:"not null" json:"message" bson:"message"`
	ReplyMessage  *string   `json:"reply_message" bson:"reply_message"`
	UserID        *string   `gorm:"type:uuid;index" json:"userId,omitempty" bson:"userId,omitempty"`
	EnquireStatus string    `json:"enquire_status" bson:"enquire_status"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at" bson:"created_at"`
}

type EnquiryUpdate struct {
	EnquireStatus *string
	ReplyMessage  *string
}
