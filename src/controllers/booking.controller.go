package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"bookingapi/src/config"
	"bookingapi/src/lib"
	"bookingapi/src/logger"
	"bookingapi/src/models"
	"bookingapi/src/repository"
	"bookingapi/src/types"
	"bookingapi/src/utils"

	"github.com/gin-gonic/gin"
)

const bookingCreatedMessage = "Your booking request was successful!"

type BookingController struct {
	store    *repository.Store
	places   *PlaceController
	notifier *Notifier
	cfg      *config.Config
	log      logger.Logger
}

func NewBookingController(store *repository.Store, places *PlaceController, notifier *Notifier, cfg *config.Config, log logger.Logger) *BookingController {
	return &BookingController{
		store:    store,
		places:   places,
		notifier: notifier,
		cfg:      cfg,
		log:      log.With("controller", "booking"),
	}
}

func (c *BookingController) CreateBooking(ctx *gin.Context) (*models.Booking, int, error) {
	userID := ctx.GetString("id")
	if userID == "" {
		return nil, http.StatusUnauthorized, ErrUnauthenticated
	}
	var body types.CreateBookingRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	reqCtx := ctx.Request.Context()
	user, err := c.store.Users.FindByID(reqCtx, userID)
	if err != nil {
		status, err := storeFailure(err, ErrUserNotFound)
		return nil, status, err
	}

	booking := &models.Booking{
		Package:      body.Package,
		PackageName:  body.PackageName,
		BookingDate:  body.BookingDate,
		Location:     body.Location,
		Status:       body.Status,
		Attendees:    body.Attendees,
		TotalPrice:   body.TotalPrice,
		CurrencyCode: body.CurrencyCode,
		UserID:       user.ID,
	}
	if booking.Package == nil {
		booking.Package = []types.JSONB{}
	}
	if booking.Status == "" {
		booking.Status = string(types.BOOKING_PENDING)
	}
	if err := c.store.Bookings.Create(reqCtx, booking); err != nil {
		c.log.Error("error creating booking", "user_id", user.ID, "error", err)
		return nil, http.StatusInternalServerError, err
	}
	c.log.Info("created booking", "booking_id", booking.ID, "user_id", user.ID)

	c.notifyBookingCreated(booking, user)
	return booking, http.StatusCreated, nil
}

func (c *BookingController) notifyBookingCreated(booking *models.Booking, user *models.User) {
	body, err := utils.RenderBookingCreatedEmail(utils.BookingCreatedEmail{
		Name:        user.Username,
		Message:     bookingCreatedMessage,
		BookingID:   booking.ID,
		PackageName: booking.PackageName,
		BookingDate: booking.BookingDate,
		Location:    booking.Location,
		Attendees:   attendeesText(booking.Attendees),
		Status:      booking.Status,
		Symbol:      utils.CurrencySymbol(booking.CurrencyCode),
		Amount:      utils.FormatAmount(booking.TotalPrice),
	})
	if err != nil {
		c.log.Error("error rendering booking email", "booking_id", booking.ID, "error", err)
		return
	}

	recipients := []string{user.Email}
	if c.cfg.Mail.OperatorMailbox != "" {
		recipients = append([]string{c.cfg.Mail.OperatorMailbox}, recipients...)
	}
	for _, to := range recipients {
		if to == "" {
			continue
		}
		c.notifier.Go("booking_created", &lib.SendMailInput{
			From:     c.cfg.Mail.From,
			FromName: c.cfg.Mail.FromName,
			To:       []string{to},
			Subject:  utils.BookingCreatedSubject,
			Body:     body,
			Html:     true,
		})
	}
}

func (c *BookingController) ListBookings(ctx *gin.Context) (*types.BookingListResponse, int, error) {
	var query types.ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, http.StatusBadRequest, err
	}
	p := utils.GetPagination(query.Page, query.Limit)
	search := strings.TrimSpace(query.Search)
	reqCtx := ctx.Request.Context()

	res := &types.BookingListResponse{CurrentPage: p.Page, PerPage: p.Limit}
	var bookings []models.Booking
	if search == "" {
		total, err := c.store.Bookings.Count(reqCtx)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		bookings, err = c.store.Bookings.Find(reqCtx, models.BookingQuery{Skip: p.Skip, Limit: p.Limit})
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		res.TotalBooking = int(total)
		res.TotalPages, res.NextPage, res.PreviousPage = utils.PageMeta(p, total)
	} else {
		ownerIDs, err := c.store.Users.SearchIDs(reqCtx, search)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		bookings, err = c.store.Bookings.Find(reqCtx, models.BookingQuery{Search: search, OwnerIDs: ownerIDs})
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		res.TotalBooking = len(bookings)
		res.TotalPages = 1
		if p.Page > 1 {
			prev := p.Page - 1
			res.PreviousPage = &prev
		}
	}

	if err := c.attachOwners(ctx, bookings, false); err != nil {
		return nil, http.StatusInternalServerError, err
	}
	res.Bookings = bookings
	return res, http.StatusOK, nil
}

func (c *BookingController) attachOwners(ctx *gin.Context, bookings []models.Booking, withPhone bool) error {
	seen := map[string]bool{}
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		if b.UserID != "" && !seen[b.UserID] {
			seen[b.UserID] = true
			ids = append(ids, b.UserID)
		}
	}
	users, err := c.store.Users.FindByIDs(ctx.Request.Context(), ids)
	if err != nil {
		return err
	}
	byID := make(map[string]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	for i := range bookings {
		if u, ok := byID[bookings[i].UserID]; ok {
			bookings[i].User = u.Ref(withPhone)
		}
	}
	return nil
}

func (c *BookingController) UpdateBookingStatus(ctx *gin.Context) (*models.Booking, int, error) {
	var body types.BookingStatusRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if body.ID == "" || body.Status == "" {
		status, err := badRequest("Booking ID and status are required.")
		return nil, status, err
	}
	return c.updateAndReload(ctx, body.ID, models.BookingUpdate{Status: &body.Status})
}

func (c *BookingController) UpdateBookingPrice(ctx *gin.Context) (*models.Booking, int, error) {
	var body types.BookingPriceRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if body.ID == "" || body.Price == nil || *body.Price == 0 {
		status, err := badRequest("Booking ID and price both are required.")
		return nil, status, err
	}
	currency := strings.ToUpper(body.Currency)
	return c.updateAndReload(ctx, body.ID, models.BookingUpdate{TotalPrice: body.Price, CurrencyCode: &currency})
}

func (c *BookingController) updateAndReload(ctx *gin.Context, id string, update models.BookingUpdate) (*models.Booking, int, error) {
	reqCtx := ctx.Request.Context()
	if err := c.store.Bookings.Update(reqCtx, id, update); err != nil {
		status, err := storeFailure(err, ErrBookingNotFound)
		return nil, status, err
	}
	booking, err := c.store.Bookings.FindByID(reqCtx, id)
	if err != nil {
		status, err := storeFailure(err, ErrBookingNotFound)
		return nil, status, err
	}
	return booking, http.StatusOK, nil
}

// SendPaymentLink stores the optional generator link and mails the customer
// the payment page for the booking.
func (c *BookingController) SendPaymentLink(ctx *gin.Context) (*types.PaymentLinkResponse, int, error) {
	var body types.BookingPaymentRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if body.ID == "" {
		status, err := badRequest("Booking ID is required.")
		return nil, status, err
	}

	reqCtx := ctx.Request.Context()
	booking, err := c.store.Bookings.FindByID(reqCtx, body.ID)
	if err != nil {
		status, err := storeFailure(err, ErrBookingNotFound)
		return nil, status, err
	}
	if body.PaymentGeneratorLink != "" {
		link := body.PaymentGeneratorLink
		if err := c.store.Bookings.Update(reqCtx, booking.ID, models.BookingUpdate{PaymentGeneratorLink: &link}); err != nil {
			status, err := storeFailure(err, ErrBookingNotFound)
			return nil, status, err
		}
		booking.PaymentGeneratorLink = link
	}

	owner, err := c.store.Users.FindByID(reqCtx, booking.UserID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, http.StatusInternalServerError, err
	}
	if owner == nil || owner.Email == "" {
		c.log.Warn("payment link owner unreachable", "booking_id", booking.ID, "user_id", booking.UserID)
		return nil, http.StatusUnprocessableEntity, ErrOwnerUnreachable
	}

	paymentURL := c.cfg.PaymentBaseURL + booking.ID
	html, err := utils.RenderPaymentLinkEmail(utils.PaymentLinkEmail{
		Name:   owner.Username,
		Amount: utils.FormatAmount(booking.TotalPrice),
		Symbol: utils.CurrencySymbol(booking.CurrencyCode),
		Link:   paymentURL,
	})
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	from := c.cfg.Mail.OperatorMailbox
	if from == "" {
		from = c.cfg.Mail.From
	}
	err = c.notifier.Send(reqCtx, "payment_link", &lib.SendMailInput{
		From:     from,
		FromName: c.cfg.Mail.FromName,
		To:       []string{owner.Email},
		Subject:  utils.PaymentLinkSubject,
		Body:     html,
		Html:     true,
	})
	if err != nil {
		c.log.Error("error sending payment link", "booking_id", booking.ID, "error", err)
		return nil, http.StatusBadGateway, wrap(ErrMailDelivery, err)
	}
	c.log.Info("sent payment link", "booking_id", booking.ID)
	return &types.PaymentLinkResponse{PaymentURL: paymentURL}, http.StatusOK, nil
}

// loadVisibleBooking hides bookings of other users from non-admin callers.
func (c *BookingController) loadVisibleBooking(ctx *gin.Context) (*models.Booking, int, error) {
	var params types.SimpleRequestParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		return nil, http.StatusBadRequest, err
	}
	booking, err := c.store.Bookings.FindByID(ctx.Request.Context(), params.ID)
	if err != nil {
		status, err := storeFailure(err, ErrBookingNotFound)
		return nil, status, err
	}
	if ctx.GetString("role") != string(types.ROLE_ADMIN) && booking.UserID != ctx.GetString("id") {
		return nil, http.StatusNotFound, ErrBookingNotFound
	}
	return booking, http.StatusOK, nil
}

func (c *BookingController) GetBooking(ctx *gin.Context) (*models.Booking, int, error) {
	booking, status, err := c.loadVisibleBooking(ctx)
	if err != nil {
		return nil, status, err
	}
	owner, err := c.store.Users.FindByID(ctx.Request.Context(), booking.UserID)
	switch {
	case err == nil:
		booking.User = owner.Ref(true)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, http.StatusInternalServerError, err
	}
	booking.Package = c.places.EnrichItems(ctx.Request.Context(), booking.Package)
	return booking, http.StatusOK, nil
}

func (c *BookingController) GetBookingPayment(ctx *gin.Context) (*models.Payment, int, error) {
	booking, status, err := c.loadVisibleBooking(ctx)
	if err != nil {
		return nil, status, err
	}
	payment, err := c.store.Payments.FindByBookingID(ctx.Request.Context(), booking.ID)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return payment, http.StatusOK, nil
}

func attendeesText(v any) string {
	switch a := v.(type) {
	case nil:
		return ""
	case string:
		return a
	case float64:
		return utils.FormatAmount(&a)
	case []any:
		return strconv.Itoa(len(a))
	}
	return fmt.Sprint(v)
}
