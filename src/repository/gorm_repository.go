package repository

import (
	"context"
	"errors"
	"strings"

	"bookingapi/src/models"
	"bookingapi/src/models/scopes"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewGormStore builds a Store over a relational database.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:     &gormUserRepository{db: db},
		Bookings:  &gormBookingRepository{db: db},
		Payments:  &gormPaymentRepository{db: db},
		Enquiries: &gormEnquiryRepository{db: db},
		closer: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func translateGormError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

// isUUID reports whether id can be compared against a uuid column. Anything
// else can never match a row, and postgres rejects it with 22P02.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func uuidsOnly(ids []string) []string {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if isUUID(id) {
			valid = append(valid, id)
		}
	}
	return valid
}

// likePattern builds a literal "contains" pattern for ILIKE.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

type gormUserRepository struct {
	db *gorm.DB
}

func (r *gormUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return translateGormError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *gormUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	if !isUUID(id) {
		return nil, ErrNotFound
	}
	var user models.User
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Scopes(scopes.WithID(id)).
		First(&user).
		Error; err != nil {
		return nil, translateGormError(err)
	}
	return &user, nil
}

func (r *gormUserRepository) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ? OR email = ?", login, login).
		First(&user).
		Error; err != nil {
		return nil, translateGormError(err)
	}
	return &user, nil
}

func (r *gormUserRepository) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	ids = uuidsOnly(ids)
	users := make([]models.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id", "username", "email", "phone_number").
		Scopes(scopes.WithIDs(ids...)).
		Find(&users).
		Error
	return users, translateGormError(err)
}

func (r *gormUserRepository) SearchIDs(ctx context.Context, term string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username ILIKE ?", likePattern(term)).
		Pluck("id", &ids).
		Error
	return ids, translateGormError(err)
}

func (r *gormUserRepository) List(ctx context.Context, q models.UserQuery) ([]models.User, int64, error) {
	var users []models.User
	var total int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scoped := tx.Model(&models.User{})
		if q.Search != "" {
			p := likePattern(q.Search)
			scoped = scoped.Where("username ILIKE ? OR email ILIKE ?", p, p)
		}
		if err := scoped.Count(&total).Error; err != nil {
			return err
		}
		return scoped.
			Scopes(scopes.NewestFirst("created_date"), scopes.Page(q.Skip, q.Limit)).
			Find(&users).
			Error
	})
	if err != nil {
		return nil, 0, translateGormError(err)
	}
	return users, total, nil
}

func (r *gormUserRepository) Update(ctx context.Context, id string, u models.UserUpdate) error {
	if !isUUID(id) {
		return ErrNotFound
	}
	values := map[string]any{}
	if u.Email != nil {
		values["email"] = *u.Email
	}
	if u.Address != nil {
		values["address"] = *u.Address
	}
	if u.City != nil {
		values["city"] = *u.City
	}
	if u.State != nil {
		values["state"] = *u.State
	}
	if u.Country != nil {
		values["country"] = *u.Country
	}
	if u.PhoneNumber != nil {
		values["phone_number"] = *u.PhoneNumber
	}
	if u.UserStatus != nil {
		values["user_status"] = *u.UserStatus
	}
	if len(values) == 0 {
		_, err := r.FindByID(ctx, id)
		return err
	}
	res := r.db.WithContext(ctx).Model(&models.User{}).Scopes(scopes.WithID(id)).Updates(values)
	if res.Error != nil {
		return translateGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormUserRepository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return ErrNotFound
	}
	res := r.db.WithContext(ctx).Scopes(scopes.WithID(id)).Delete(&models.User{})
	if res.Error != nil {
		return translateGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type gormBookingRepository struct {
	db *gorm.DB
}

func (r *gormBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	return translateGormError(r.db.WithContext(ctx).Create(booking).Error)
}

func (r *gormBookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	if !isUUID(id) {
		return nil, ErrNotFound
	}
	var booking models.Booking
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Scopes(scopes.WithID(id)).
		First(&booking).
		Error; err != nil {
		return nil, translateGormError(err)
	}
	return &booking, nil
}

func (r *gormBookingRepository) Find(ctx context.Context, q models.BookingQuery) ([]models.Booking, error) {
	bookings := make([]models.Booking, 0)
	owners := uuidsOnly(q.OwnerIDs)
	if len(q.OwnerIDs) > 0 && len(owners) == 0 && q.Search == "" {
		return bookings, nil
	}
	q.OwnerIDs = owners
	tx := r.db.WithContext(ctx).Model(&models.Booking{})
	switch {
	case q.Search != "" && len(q.OwnerIDs) > 0:
		tx = tx.Where("package_name ILIKE ? OR user_id IN ?", likePattern(q.Search), q.OwnerIDs)
	case q.Search != "":
		tx = tx.Where("package_name ILIKE ?", likePattern(q.Search))
	case len(q.OwnerIDs) > 0:
		tx = tx.Where("user_id IN ?", q.OwnerIDs)
	}
	tx = tx.Scopes(scopes.NewestFirst("created_at"), scopes.Page(q.Skip, q.Limit))
	if err := tx.Find(&bookings).Error; err != nil {
		return nil, translateGormError(err)
	}
	return bookings, nil
}

func (r *gormBookingRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).Count(&total).Error
	return total, translateGormError(err)
}

func (r *gormBookingRepository) Update(ctx context.Context, id string, u models.BookingUpdate) error {
	if !isUUID(id) {
		return ErrNotFound
	}
	if u.Empty() {
		_, err := r.FindByID(ctx, id)
		return err
	}
	values := map[string]any{}
	if u.Status != nil {
		values["status"] = *u.Status
	}
	if u.TotalPrice != nil {
		values["total_price"] = *u.TotalPrice
	}
	if u.CurrencyCode != nil {
		values["currency_code"] = *u.CurrencyCode
	}
	if u.PaymentGeneratorLink != nil {
		values["payment_genrator_link"] = *u.PaymentGeneratorLink
	}
	res := r.db.WithContext(ctx).Model(&models.Booking{}).Scopes(scopes.WithID(id)).Updates(values)
	if res.Error != nil {
		return translateGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type gormPaymentRepository struct {
	db *gorm.DB
}

func (r *gormPaymentRepository) FindByBookingID(ctx context.Context, bookingID string) (*models.Payment, error) {
	if !isUUID(bookingID) {
		return nil, nil
	}
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("booking_id = ?", bookingID).
		First(&payment).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

type gormEnquiryRepository struct {
	db *gorm.DB
}

func (r *gormEnquiryRepository) Create(ctx context.Context, enquiry *models.Enquiry) error {
	if enquiry.ID == "" {
		enquiry.ID = uuid.NewString()
	}
	return translateGormError(r.db.WithContext(ctx).Create(enquiry).Error)
}

func (r *gormEnquiryRepository) FindByID(ctx context.Context, id string) (*models.Enquiry, error) {
	if !isUUID(id) {
		return nil, ErrNotFound
	}
	var enquiry models.Enquiry
	if err := r.db.WithContext(ctx).
		Scopes(scopes.WithID(id)).
		First(&enquiry).
		Error; err != nil {
		return nil, translateGormError(err)
	}
	return &enquiry, nil
}

func (r *gormEnquiryRepository) List(ctx context.Context, skip, limit int) ([]models.Enquiry, int64, error) {
	var enquiries []models.Enquiry
	var total int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Enquiry{}).Count(&total).Error; err != nil {
			return err
		}
		return tx.Model(&models.Enquiry{}).
			Scopes(scopes.NewestFirst("created_at"), scopes.Page(skip, limit)).
			Find(&enquiries).
			Error
	})
	if err != nil {
		return nil, 0, translateGormError(err)
	}
	return enquiries, total, nil
}

func (r *gormEnquiryRepository) FindByUser(ctx context.Context, userID string) ([]models.Enquiry, error) {
	enquiries := make([]models.Enquiry, 0)
	if !isUUID(userID) {
		return enquiries, nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Scopes(scopes.NewestFirst("created_at")).
		Find(&enquiries).
		Error
	return enquiries, translateGormError(err)
}

func (r *gormEnquiryRepository) Update(ctx context.Context, id string, u models.EnquiryUpdate) error {
	if !isUUID(id) {
		return ErrNotFound
	}
	values := map[string]any{}
	if u.EnquireStatus != nil {
		values["enquire_status"] = *u.EnquireStatus
	}
	if u.ReplyMessage != nil {
		values["reply_message"] = *u.ReplyMessage
	}
	if len(values) == 0 {
		_, err := r.FindByID(ctx, id)
		return err
	}
	res := r.db.WithContext(ctx).Model(&models.Enquiry{}).Scopes(scopes.WithID(id)).Updates(values)
	if res.Error != nil {
		return translateGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
