package repository

import (
	"context"
	"errors"

	"bookingapi/src/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	// FindByLogin matches either username or email exactly.
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
	// SearchIDs returns ids of users whose username contains term, ignoring case.
	SearchIDs(ctx context.Context, term string) ([]string, error)
	List(ctx context.Context, q models.UserQuery) ([]models.User, int64, error)
	Update(ctx context.Context, id string, u models.UserUpdate) error
	Delete(ctx context.Context, id string) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	// Find returns bookings newest first. A zero Limit means no limit.
	Find(ctx context.Context, q models.BookingQuery) ([]models.Booking, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, u models.BookingUpdate) error
}

type PaymentRepository interface {
	// FindByBookingID returns nil, nil when the booking has no payment.
	FindByBookingID(ctx context.Context, bookingID string) (*models.Payment, error)
}

type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *models.Enquiry) error
	FindByID(ctx context.Context, id string) (*models.Enquiry, error)
	List(ctx context.Context, skip, limit int) ([]models.Enquiry, int64, error)
	FindByUser(ctx context.Context, userID string) ([]models.Enquiry, error)
	Update(ctx context.Context, id string, u models.EnquiryUpdate) error
}

// Store groups the repositories of one backing database.
type Store struct {
	Users     UserRepository
	Bookings  BookingRepository
	Payments  PaymentRepository
	Enquiries EnquiryRepository

	closer func(ctx context.Context) error
}

func (s *Store) Close(ctx context.Context) error {
	if s.closer == nil {
		return nil
	}
	return s.closer(ctx)
}
