package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"

	"bookingapi/src/config"
	"bookingapi/src/lib"
	"bookingapi/src/models"
	"bookingapi/src/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// memStore keeps every collection in maps and counts calls so tests can
// assert that a request never reached the store.
type memStore struct {
	mu        sync.Mutex
	calls     int
	users     map[string]models.User
	bookings  map[string]models.Booking
	payments  map[string]models.Payment
	enquiries map[string]models.Enquiry
	clock     time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[string]models.User{},
		bookings:  map[string]models.Booking{},
		payments:  map[string]models.Payment{},
		enquiries: map[string]models.Enquiry{},
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) Store() *repository.Store {
	return &repository.Store{
		Users:     memUsers{m},
		Bookings:  memBookings{m},
		Payments:  memPayments{m},
		Enquiries: memEnquiries{m},
	}
}

func (m *memStore) touch() time.Time {
	m.calls++
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *memStore) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	now := r.m.touch()
	for _, u := range r.m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedDate = now
	r.m.users[user.ID] = *user
	return nil
}

func (r memUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.touch()
	u, ok := r.m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r memUsers) FindByLogin(_ context.Context, login string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.touch()
	for _, u := range r.m.users {
		if u.Username == login || u.Email == login {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memUsers) FindByIDs(_ context.Context, ids []string) ([]models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.touch()
	users := []models.User{}
	for _, id := range ids {
		if u, ok := r.m.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r memUsers) SearchIDs(_ context.Context, term string) ([]string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.touch()
	ids := []string{}
	for _, u := range r.m.users {
		if strings.Contains(strings.ToLower(u.Username), strings.ToLower(term)) {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

func (r memUsers) List(_ context.Context, q models.UserQuery) ([]models.User, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.touch()
	users := []models.User{}
	for _, u := range r.m.users {
		if q.Search == "" || strings.Contains(strings.ToLower(u.Username), strings.ToLower(q.Search)) {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedDate.After(users[j].CreatedDate) })
	return window(users, q.Skip, q.Limit), int64(len(users)), nil
}

func (r memUsers) Update(_ context.Context, id string, u models.UserUpdate) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.touch()
	user, ok := r.m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.Address != nil {
		user.Address = *u.Address
	}
	if u.City != nil {
		user.City = *u.City
	}
	if u.PhoneNumber != nil {
		user.PhoneNumber = *u.PhoneNumber
	}
	if u.UserStatus != nil {
		user.UserStatus = *u.UserStatus
	}
	r.m.users[id] = user
	return nil
}

func (r memUsers) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.touch()
	if _, ok := r.m.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.m.users, id)
	return nil
}

type memBookings struct{ m *memStore }

func (r memBookings) Create(_ context.Context, booking *models.Booking) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	now := r.m.touch()
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	booking.CreatedAt = now
	r.m.bookings[booking.ID] = *booking
	return nil
}

func (r memBookings) FindByID(_ context.Context, id string) (*models.Booking, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.touch()
	b, ok := r.m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r memBookings) Find(_ context.Context, q models.BookingQuery) ([]models.Booking, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.touch()
	owners := map[string]bool{}
	for _, id := range q.OwnerIDs {
		owners[id] = true
	}
	filtered := q.Search != "" || len(q.OwnerIDs) > 0
	bookings := []models.Booking{}
	for _, b := range r.m.bookings {
		if filtered {
			byName := q.Search != "" && strings.Contains(strings.ToLower(b.PackageName), strings.ToLower(q.Search))
			if !byName && !owners[b.UserID] {
				continue
			}
		}
		bookings = append(bookings, b)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].CreatedAt.After(bookings[j].CreatedAt) })
	return window(bookings, q.Skip, q.Limit), nil
}

func (r memBookings) Count(_ context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.touch()
	return int64(len(r.m.bookings)), nil
}

func (r memBookings) Update(_ context.Context, id string, u models.BookingUpdate) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.touch()
	b, ok := r.m.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	if u.Status != nil {
		b.Status = *u.Status
	}
	if u.TotalPrice != nil {
		b.TotalPrice = u.TotalPrice
	}
	if u.CurrencyCode != nil {
		b.CurrencyCode = *u.CurrencyCode
	}
	if u.PaymentGeneratorLink != nil {
		b.PaymentGeneratorLink = *u.PaymentGeneratorLink
	}
	r.m.bookings[id] = b
	return nil
}

type memPayments struct{ m *memStore }

func (r memPayments) FindByBookingID(_ context.Context, bookingID string) (*models.Payment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.touch()
	for _, p := range r.m.payments {
		if p.BookingID == bookingID {
			return &p, nil
		}
	}
	return nil, nil
}

type memEnquiries struct{ m *memStore }

func (r memEnquiries) Create(_ context.Context, enquiry *models.Enquiry) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	now := r.m.touch()
	if enquiry.ID == "" {
		enquiry.ID = uuid.NewString()
	}
	enquiry.CreatedAt = now
	r.m.enquiries[enquiry.ID] = *enquiry
	return nil
}

func (r memEnquiries) FindByID(_ context.Context, id string) (*models.Enquiry, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.touch()
	e, ok := r.m.enquiries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r memEnquiries) List(_ context.Context, skip, limit int) ([]models.Enquiry, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.touch()
	all := []models.Enquiry{}
	for _, e := range r.m.enquiries {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return window(all, skip, limit), int64(len(all)), nil
}

func (r memEnquiries) FindByUser(_ context.Context, userID string) ([]models.Enquiry, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.touch()
	mine := []models.Enquiry{}
	for _, e := range r.m.enquiries {
		if e.UserID != nil && *e.UserID == userID {
			mine = append(mine, e)
		}
	}
	return mine, nil
}

func (r memEnquiries) Update(_ context.Context, id string, u models.EnquiryUpdate) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.touch()
	e, ok := r.m.enquiries[id]
	if !ok {
		return repository.ErrNotFound
	}
	if u.EnquireStatus != nil {
		e.EnquireStatus = *u.EnquireStatus
	}
	if u.ReplyMessage != nil {
		reply := *u.ReplyMessage
		e.ReplyMessage = &reply
	}
	r.m.enquiries[id] = e
	return nil
}

func window[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []lib.SendMailInput
	err  error
}

func (f *fakeMailer) Send(_ context.Context, input *lib.SendMailInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, *input)
	return nil
}

func (f *fakeMailer) Sent() []lib.SendMailInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]lib.SendMailInput(nil), f.sent...)
}

// fakePlaces answers from a fixed table; ids listed in delays sleep first so
// completions arrive out of order.
type fakePlaces struct {
	details map[string]*lib.PlaceDetails
	delays  map[string]time.Duration
}

func (f *fakePlaces) PlaceDetails(ctx context.Context, placeID string) (*lib.PlaceDetails, error) {
	if d := f.delays[placeID]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if details, ok := f.details[placeID]; ok {
		return details, nil
	}
	return nil, errors.New("NOT_FOUND")
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: []byte("test-secret"),
		JWTTTL:    time.Hour,
		Mail: config.MailConfig{
			From:            "noreply@example.com",
			FromName:        "Bookings",
			OperatorMailbox: "ops@example.com",
		},
		Places: config.PlacesConfig{
			Timeout:      time.Second,
			Concurrency:  4,
			MarkFailures: true,
		},
		PaymentBaseURL: "https://pay.example.com/payment/",
	}
}

// newTestContext builds a gin context for a JSON request, optionally
// authenticated as the given user id and role.
func newTestContext(method, target string, body any, id, role string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	var raw []byte
	if body != nil {
		raw, _ = json.Marshal(body)
	}
	ctx.Request = httptest.NewRequest(method, target, bytes.NewReader(raw))
	ctx.Request.Header.Set("Content-Type", "application/json")
	if id != "" {
		ctx.Set("id", id)
		ctx.Set("role", role)
	}
	return ctx, w
}

func withID(ctx *gin.Context, id string) *gin.Context {
	ctx.Params = gin.Params{{Key: "id", Value: id}}
	return ctx
}
