package models

import (
	"time"
)

type User struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"_id" bson:"_id"`
	Username    string    `gorm:"uniqueIndex;not null" json:"username" bson:"username"`
	Password    string    `gorm:"not null" json:"-" bson:"password"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email" bson:"email"`
	Address     string    `json:"address" bson:"address"`
	City        string    `json:"city" bson:"city"`
	State       string    `json:"state" bson:"state"`
	Country     string    `json:"country" bson:"country"`
	PhoneNumber string    `json:"phone_number" bson:"phone_number"`
	Role        string    `json:"role" bson:"role"`
	UserStatus  string    `json:"user_status" bson:"user_status"`
	CreatedDate time.Time `gorm:"autoCreateTime" json:"created_date" bson:"created_date"`
}

// UserRef is the owner projection attached to bookings.
type UserRef struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

func (u *User) Ref(withPhone bool) *UserRef {
	ref := &UserRef{ID: u.ID, Username: u.Username, Email: u.Email}
	if withPhone {
		ref.PhoneNumber = u.PhoneNumber
	}
	return ref
}

type UserUpdate struct {
	Email       *string
	Address     *string
	City        *string
	State       *string
	Country     *string
	PhoneNumber *string
	UserStatus  *string
}

type UserQuery struct {
	Search string
	Skip   int
	Limit  int
}
