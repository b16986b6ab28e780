package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

// Clone returns a shallow copy so callers can add keys without touching the source item.
func (a JSONB) Clone() JSONB {
	out := make(JSONB, len(a)+1)
	for k, v := range a {
		out[k] = v
	}
	return out
}

// PlaceID returns the item's external place reference, or "" when the item has none.
func (a JSONB) PlaceID() string {
	v, ok := a["place_id"]
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

type Pagination struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
	Skip  int `form:"-"`
}

type ListQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Search string `form:"search"`
}

type SimpleRequestParams struct {
	ID string `uri:"id" binding:"required"`
}

type CreateBookingRequestBody struct {
	Package      []JSONB  `json:"Package"`
	PackageName  string   `json:"package_name"`
	BookingDate  string   `json:"bookingDate"`
	Location     string   `json:"location"`
	Status       string   `json:"status"`
	Attendees    any      `json:"attendees"`
	TotalPrice   *float64 `json:"totalPrice"`
	CurrencyCode string   `json:"CurrencyCode" binding:"omitempty,currencycode"`
}

type BookingStatusRequestBody struct {
	ID     string `json:"_id"`
	Status string `json:"status"`
}

type BookingPriceRequestBody struct {
	ID       string   `json:"_id"`
	Price    *float64 `json:"price"`
	Currency string   `json:"currency" binding:"omitempty,currencycode"`
}

type BookingPaymentRequestBody struct {
	ID                   string `json:"_id"`
	PaymentGeneratorLink string `json:"payment_genrator_link"`
}

type PlaceDetailsRequestBody struct {
	PlaceID string `json:"placeId"`
}

type RegisterUserRequestBody struct {
	Username    string `json:"username" binding:"required,min=3,max=64"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	Email       string `json:"email" binding:"required,email"`
	Address     string `json:"address" binding:"required"`
	City        string `json:"city" binding:"required"`
	State       string `json:"state" binding:"required"`
	Country     string `json:"country" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

type LoginRequestBody struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequestBody struct {
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	Country     *string `json:"country,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

type UserStatusRequestBody struct {
	ID         string `json:"_id" binding:"required"`
	UserStatus string `json:"user_status" binding:"required,oneof=active inactive blocked"`
}

type CreateEnquiryRequestBody struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

type EnquiryStatusRequestBody struct {
	ID            string `json:"_id" binding:"required"`
	EnquireStatus string `json:"enquire_status" binding:"required"`
}

type EnquiryReplyRequestBody struct {
	ID           string `json:"_id" binding:"required"`
	ReplyMessage string `json:"reply_message" binding:"required"`
}

type BookingStatus string

const (
	BOOKING_PENDING BookingStatus = "pending"
)

type UserStatus string

const (
	USER_ACTIVE   UserStatus = "active"
	USER_INACTIVE UserStatus = "inactive"
	USER_BLOCKED  UserStatus = "blocked"
)

type Role string

const (
	ROLE_USER  Role = "user"
	ROLE_ADMIN Role = "admin"
)

type EnquiryStatus string

const (
	ENQUIRY_PENDING EnquiryStatus = "pending"
	ENQUIRY_REPLIED EnquiryStatus = "replied"
)

type APIResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

type BookingListResponse struct {
	Bookings     any  `json:"bookingdata"`
	TotalBooking int  `json:"totalBooking"`
	TotalPages   int  `json:"totalPages"`
	CurrentPage  int  `json:"currentPage"`
	PerPage      int  `json:"perPage"`
	NextPage     *int `json:"nextPage"`
	PreviousPage *int `json:"previousPage"`
}

type PagedResponse struct {
	Items        any  `json:"items"`
	Total        int  `json:"total"`
	TotalPages   int  `json:"totalPages"`
	CurrentPage  int  `json:"currentPage"`
	PerPage      int  `json:"perPage"`
	NextPage     *int `json:"nextPage"`
	PreviousPage *int `json:"previousPage"`
}

// Handler processes one queue message body. A nil error acknowledges the message.
type Handler func(payload string) error

type AuthResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

type PaymentLinkResponse struct {
	PaymentURL string `json:"payment_url"`
}
