package repository

import (
	"context"
	"testing"
	"time"

	"bookingapi/src/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	bookingID = "6f1c2a3e-8d4b-4c1a-9e2f-0a1b2c3d4e5f"
	userID    = "2b7e9c41-5a3d-4f8e-b6c2-7d9e0f1a2b3c"
	ownerID   = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
)

type GormStoreSuite struct {
	suite.Suite
	Mock  sqlmock.Sqlmock
	Store *Store
}

func (s *GormStoreSuite) SetupTest() {
	sqlDB, mock, err := sqlmock.New()
	s.Require().NoError(err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)

	s.Mock = mock
	s.Store = NewGormStore(gormDB)
}

func (s *GormStoreSuite) TearDownTest() {
	s.NoError(s.Mock.ExpectationsWereMet())
}

func (s *GormStoreSuite) TestCreateBookingAssignsID() {
	s.Mock.ExpectBegin()
	s.Mock.ExpectExec(`INSERT INTO "bookings"`).WillReturnResult(sqlmock.NewResult(0, 1))
	s.Mock.ExpectCommit()

	booking := &models.Booking{PackageName: "Desert Safari", Status: "pending", UserID: userID}
	s.Require().NoError(s.Store.Bookings.Create(context.Background(), booking))
	s.NotEmpty(booking.ID)
}

func (s *GormStoreSuite) TestFindBookingByID() {
	rows := sqlmock.NewRows([]string{"id", "package_name", "status", "user_id", "created_at"}).
		AddRow(bookingID, "Desert Safari", "pending", userID, time.Now())
	s.Mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id = \$1`).
		WillReturnRows(rows)

	booking, err := s.Store.Bookings.FindByID(context.Background(), bookingID)
	s.Require().NoError(err)
	s.Equal("Desert Safari", booking.PackageName)
	s.Equal(userID, booking.UserID)
}

func (s *GormStoreSuite) TestFindBookingByIDNotFound() {
	s.Mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.Store.Bookings.FindByID(context.Background(), bookingID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *GormStoreSuite) TestMalformedIDsNeverReachDatabase() {
	ctx := context.Background()
	status := "confirmed"
	reply := "thanks"

	_, err := s.Store.Bookings.FindByID(ctx, "nope")
	s.ErrorIs(err, ErrNotFound)
	s.ErrorIs(s.Store.Bookings.Update(ctx, "nope", models.BookingUpdate{Status: &status}), ErrNotFound)
	s.ErrorIs(s.Store.Bookings.Update(ctx, "nope", models.BookingUpdate{}), ErrNotFound)

	_, err = s.Store.Users.FindByID(ctx, "a1")
	s.ErrorIs(err, ErrNotFound)
	s.ErrorIs(s.Store.Users.Update(ctx, "a1", models.UserUpdate{City: &reply}), ErrNotFound)
	s.ErrorIs(s.Store.Users.Delete(ctx, "a1"), ErrNotFound)

	_, err = s.Store.Enquiries.FindByID(ctx, "e-1")
	s.ErrorIs(err, ErrNotFound)
	s.ErrorIs(s.Store.Enquiries.Update(ctx, "e-1", models.EnquiryUpdate{ReplyMessage: &reply}), ErrNotFound)

	enquiries, err := s.Store.Enquiries.FindByUser(ctx, "a1")
	s.NoError(err)
	s.Empty(enquiries)

	payment, err := s.Store.Payments.FindByBookingID(ctx, "nope")
	s.NoError(err)
	s.Nil(payment)

	users, err := s.Store.Users.FindByIDs(ctx, []string{"x", "y"})
	s.NoError(err)
	s.Empty(users)

	bookings, err := s.Store.Bookings.Find(ctx, models.BookingQuery{OwnerIDs: []string{"x"}})
	s.NoError(err)
	s.Empty(bookings)
}

func (s *GormStoreSuite) TestFindUsersByIDsDropsMalformed() {
	s.Mock.ExpectQuery(`SELECT "id","username","email","phone_number" FROM "users" WHERE id IN \(\$1\)`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(userID, "anna"))

	users, err := s.Store.Users.FindByIDs(context.Background(), []string{"bogus", userID})
	s.Require().NoError(err)
	s.Require().Len(users, 1)
	s.Equal("anna", users[0].Username)
}

func (s *GormStoreSuite) TestFindBookingsEscapesSearch() {
	s.Mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE \(?package_name ILIKE \$1 OR user_id IN \(\$2,\$3\)\)? ORDER BY created_at desc`).
		WithArgs(`%50\%%`, userID, ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "package_name"}).AddRow("b1", "50% off"))

	bookings, err := s.Store.Bookings.Find(context.Background(), models.BookingQuery{
		Search:   "50%",
		OwnerIDs: []string{userID, ownerID},
	})
	s.Require().NoError(err)
	s.Len(bookings, 1)
}

func (s *GormStoreSuite) TestCountBookings() {
	s.Mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	total, err := s.Store.Bookings.Count(context.Background())
	s.Require().NoError(err)
	s.EqualValues(7, total)
}

func (s *GormStoreSuite) TestUpdateBookingStatus() {
	status := "confirmed"
	s.Mock.ExpectBegin()
	s.Mock.ExpectExec(`UPDATE "bookings" SET "status"=\$1 WHERE id = \$2`).
		WithArgs("confirmed", bookingID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.Mock.ExpectCommit()

	s.NoError(s.Store.Bookings.Update(context.Background(), bookingID, models.BookingUpdate{Status: &status}))
}

func (s *GormStoreSuite) TestUpdateMissingBooking() {
	status := "confirmed"
	s.Mock.ExpectBegin()
	s.Mock.ExpectExec(`UPDATE "bookings"`).WillReturnResult(sqlmock.NewResult(0, 0))
	s.Mock.ExpectCommit()

	err := s.Store.Bookings.Update(context.Background(), bookingID, models.BookingUpdate{Status: &status})
	s.ErrorIs(err, ErrNotFound)
}

func (s *GormStoreSuite) TestFindUsersByIDsSkipsEmpty() {
	users, err := s.Store.Users.FindByIDs(context.Background(), nil)
	s.Require().NoError(err)
	s.Empty(users)
}

func (s *GormStoreSuite) TestSearchUserIDs() {
	s.Mock.ExpectQuery(`SELECT "id" FROM "users" WHERE username ILIKE \$1`).
		WithArgs(`%ann\_a%`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u1").AddRow("u2"))

	ids, err := s.Store.Users.SearchIDs(context.Background(), "ann_a")
	s.Require().NoError(err)
	s.Equal([]string{"u1", "u2"}, ids)
}

func (s *GormStoreSuite) TestDeleteMissingUser() {
	s.Mock.ExpectBegin()
	s.Mock.ExpectExec(`DELETE FROM "users" WHERE id = \$1`).
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.Mock.ExpectCommit()

	s.ErrorIs(s.Store.Users.Delete(context.Background(), userID), ErrNotFound)
}

func (s *GormStoreSuite) TestPaymentAbsentIsNotAnError() {
	s.Mock.ExpectQuery(`SELECT \* FROM "payments" WHERE booking_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	payment, err := s.Store.Payments.FindByBookingID(context.Background(), bookingID)
	s.NoError(err)
	s.Nil(payment)
}

func TestGormStore(t *testing.T) {
	suite.Run(t, new(GormStoreSuite))
}
