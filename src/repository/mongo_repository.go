package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"bookingapi/src/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongoStore builds a Store over a document database and ensures its indexes.
func NewMongoStore(ctx context.Context, db *mongo.Database) (*Store, error) {
	users := db.Collection("users")
	bookings := db.Collection("bookings")
	payments := db.Collection("payments")
	enquiries := db.Collection("enquiries")

	if _, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.M{"username": 1}, Options: options.Index().SetUnique(true)},
		{Keys: bson.M{"email": 1}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		return nil, fmt.Errorf("failed to create user indexes: %w", err)
	}
	if _, err := bookings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.M{"created_at": -1}},
		{Keys: bson.M{"userId": 1}},
	}); err != nil {
		return nil, fmt.Errorf("failed to create booking indexes: %w", err)
	}
	if _, err := payments.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.M{"booking_id": 1}}); err != nil {
		return nil, fmt.Errorf("failed to create payment indexes: %w", err)
	}

	return &Store{
		Users:     &mongoUserRepository{collection: users},
		Bookings:  &mongoBookingRepository{collection: bookings},
		Payments:  &mongoPaymentRepository{collection: payments},
		Enquiries: &mongoEnquiryRepository{collection: enquiries},
		closer: func(ctx context.Context) error {
			return db.Client().Disconnect(ctx)
		},
	}, nil
}

func translateMongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	}
	return err
}

// containsRegex matches term literally anywhere in the field, ignoring case.
func containsRegex(term string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(term), "$options": "i"}
}

func findOptions(skip, limit int, sortKey string) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: sortKey, Value: -1}})
	if limit > 0 {
		opts.SetSkip(int64(skip)).SetLimit(int64(limit))
	}
	return opts
}

func setFields(ctx context.Context, c *mongo.Collection, id string, fields bson.M) error {
	if len(fields) == 0 {
		n, err := c.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	}
	res, err := c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return translateMongoError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type mongoUserRepository struct {
	collection *mongo.Collection
}

func (r *mongoUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedDate.IsZero() {
		user.CreatedDate = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, user)
	return translateMongoError(err)
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, translateMongoError(err)
	}
	return &user, nil
}

func (r *mongoUserRepository) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	filter := bson.M{"$or": []bson.M{{"username": login}, {"email": login}}}
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translateMongoError(err)
	}
	return &user, nil
}

func (r *mongoUserRepository) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	projection := bson.M{"username": 1, "email": 1, "phone_number": 1}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *mongoUserRepository) SearchIDs(ctx context.Context, term string) ([]string, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"username": containsRegex(term)}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

func (r *mongoUserRepository) List(ctx context.Context, q models.UserQuery) ([]models.User, int64, error) {
	filter := bson.M{}
	if q.Search != "" {
		filter["$or"] = []bson.M{{"username": containsRegex(q.Search)}, {"email": containsRegex(q.Search)}}
	}
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	cursor, err := r.collection.Find(ctx, filter, findOptions(q.Skip, q.Limit, "created_date"))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *mongoUserRepository) Update(ctx context.Context, id string, u models.UserUpdate) error {
	fields := bson.M{}
	if u.Email != nil {
		fields["email"] = *u.Email
	}
	if u.Address != nil {
		fields["address"] = *u.Address
	}
	if u.City != nil {
		fields["city"] = *u.City
	}
	if u.State != nil {
		fields["state"] = *u.State
	}
	if u.Country != nil {
		fields["country"] = *u.Country
	}
	if u.PhoneNumber != nil {
		fields["phone_number"] = *u.PhoneNumber
	}
	if u.UserStatus != nil {
		fields["user_status"] = *u.UserStatus
	}
	return setFields(ctx, r.collection, id, fields)
}

func (r *mongoUserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type mongoBookingRepository struct {
	collection *mongo.Collection
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, booking)
	return translateMongoError(err)
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		return nil, translateMongoError(err)
	}
	return &booking, nil
}

func (r *mongoBookingRepository) Find(ctx context.Context, q models.BookingQuery) ([]models.Booking, error) {
	filter := bson.M{}
	switch {
	case q.Search != "" && len(q.OwnerIDs) > 0:
		filter["$or"] = []bson.M{
			{"package_name": containsRegex(q.Search)},
			{"userId": bson.M{"$in": q.OwnerIDs}},
		}
	case q.Search != "":
		filter["package_name"] = containsRegex(q.Search)
	case len(q.OwnerIDs) > 0:
		filter["userId"] = bson.M{"$in": q.OwnerIDs}
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions(q.Skip, q.Limit, "created_at"))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := make([]models.Booking, 0)
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *mongoBookingRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *mongoBookingRepository) Update(ctx context.Context, id string, u models.BookingUpdate) error {
	fields := bson.M{}
	if u.Status != nil {
		fields["status"] = *u.Status
	}
	if u.TotalPrice != nil {
		fields["totalPrice"] = *u.TotalPrice
	}
	if u.CurrencyCode != nil {
		fields["CurrencyCode"] = *u.CurrencyCode
	}
	if u.PaymentGeneratorLink != nil {
		fields["payment_genrator_link"] = *u.PaymentGeneratorLink
	}
	return setFields(ctx, r.collection, id, fields)
}

type mongoPaymentRepository struct {
	collection *mongo.Collection
}

func (r *mongoPaymentRepository) FindByBookingID(ctx context.Context, bookingID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.collection.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&payment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

type mongoEnquiryRepository struct {
	collection *mongo.Collection
}

func (r *mongoEnquiryRepository) Create(ctx context.Context, enquiry *models.Enquiry) error {
	if enquiry.ID == "" {
		enquiry.ID = uuid.NewString()
	}
	if enquiry.CreatedAt.IsZero() {
		enquiry.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, enquiry)
	return translateMongoError(err)
}

func (r *mongoEnquiryRepository) FindByID(ctx context.Context, id string) (*models.Enquiry, error) {
	var enquiry models.Enquiry
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&enquiry); err != nil {
		return nil, translateMongoError(err)
	}
	return &enquiry, nil
}

func (r *mongoEnquiryRepository) List(ctx context.Context, skip, limit int) ([]models.Enquiry, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions(skip, limit, "created_at"))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	enquiries := make([]models.Enquiry, 0)
	if err := cursor.All(ctx, &enquiries); err != nil {
		return nil, 0, err
	}
	return enquiries, total, nil
}

func (r *mongoEnquiryRepository) FindByUser(ctx context.Context, userID string) ([]models.Enquiry, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions(0, 0, "created_at"))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	enquiries := make([]models.Enquiry, 0)
	if err := cursor.All(ctx, &enquiries); err != nil {
		return nil, err
	}
	return enquiries, nil
}

func (r *mongoEnquiryRepository) Update(ctx context.Context, id string, u models.EnquiryUpdate) error {
	fields := bson.M{}
	if u.EnquireStatus != nil {
		fields["enquire_status"] = *u.EnquireStatus
	}
	if u.ReplyMessage != nil {
		fields["reply_message"] = *u.ReplyMessage
	}
	return setFields(ctx, r.collection, id, fields)
}
