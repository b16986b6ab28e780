package controllers

import (
	"net/http"

	"bookingapi/src/config"
	"bookingapi/src/lib"
	"bookingapi/src/logger"
	"bookingapi/src/models"
	"bookingapi/src/repository"
	"bookingapi/src/types"
	"bookingapi/src/utils"

	"github.com/gin-gonic/gin"
)

type EnquiryController struct {
	enquiries repository.EnquiryRepository
	notifier  *Notifier
	cfg       *config.Config
	log       logger.Logger
}

func NewEnquiryController(enquiries repository.EnquiryRepository, notifier *Notifier, cfg *config.Config, log logger.Logger) *EnquiryController {
	return &EnquiryController{enquiries: enquiries, notifier: notifier, cfg: cfg, log: log.With("controller", "enquiry")}
}

func (c *EnquiryController) CreateEnquiry(ctx *gin.Context) (*models.Enquiry, int, error) {
	userID := ctx.GetString("id")
	if userID == "" {
		return nil, http.StatusUnauthorized, ErrUnauthenticated
	}
	var body types.CreateEnquiryRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	enquiry := &models.Enquiry{
		Name:          body.Name,
		Email:         body.Email,
		Message:       body.Message,
		UserID:        &userID,
		EnquireStatus: string(types.ENQUIRY_PENDING),
	}
	if err := c.enquiries.Create(ctx.Request.Context(), enquiry); err != nil {
		c.log.Error("error creating enquiry", "user_id", userID, "error", err)
		return nil, http.StatusInternalServerError, err
	}
	return enquiry, http.StatusCreated, nil
}

func (c *EnquiryController) ListEnquiries(ctx *gin.Context) (*types.PagedResponse, int, error) {
	var query types.ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, http.StatusBadRequest, err
	}
	p := utils.GetPagination(query.Page, query.Limit)
	enquiries, total, err := c.enquiries.List(ctx.Request.Context(), p.Skip, p.Limit)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	if enquiries == nil {
		enquiries = []models.Enquiry{}
	}
	res := &types.PagedResponse{Items: enquiries, Total: int(total), CurrentPage: p.Page, PerPage: p.Limit}
	res.TotalPages, res.NextPage, res.PreviousPage = utils.PageMeta(p, total)
	return res, http.StatusOK, nil
}

func (c *EnquiryController) MyEnquiries(ctx *gin.Context) ([]models.Enquiry, int, error) {
	userID := ctx.GetString("id")
	if userID == "" {
		return nil, http.StatusUnauthorized, ErrUnauthenticated
	}
	enquiries, err := c.enquiries.FindByUser(ctx.Request.Context(), userID)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return enquiries, http.StatusOK, nil
}

func (c *EnquiryController) UpdateEnquiryStatus(ctx *gin.Context) (*models.Enquiry, int, error) {
	var body types.EnquiryStatusRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	return c.updateAndReload(ctx, body.ID, models.EnquiryUpdate{EnquireStatus: &body.EnquireStatus})
}

// ReplyEnquiry stores the reply and mails it to the enquirer in the background.
func (c *EnquiryController) ReplyEnquiry(ctx *gin.Context) (*models.Enquiry, int, error) {
	var body types.EnquiryReplyRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	replied := string(types.ENQUIRY_REPLIED)
	enquiry, status, err := c.updateAndReload(ctx, body.ID, models.EnquiryUpdate{
		EnquireStatus: &replied,
		ReplyMessage:  &body.ReplyMessage,
	})
	if err != nil {
		return nil, status, err
	}

	html, err := utils.RenderEnquiryReplyEmail(utils.EnquiryReplyEmail{
		Name:    enquiry.Name,
		Message: enquiry.Message,
		Reply:   body.ReplyMessage,
	})
	if err != nil {
		c.log.Error("error rendering enquiry reply", "enquiry_id", enquiry.ID, "error", err)
		return enquiry, http.StatusOK, nil
	}
	c.notifier.Go("enquiry_reply", &lib.SendMailInput{
		From:     c.cfg.Mail.OperatorMailbox,
		FromName: c.cfg.Mail.FromName,
		To:       []string{enquiry.Email},
		Subject:  utils.EnquiryReplySubject,
		Body:     html,
		Html:     true,
	})
	return enquiry, http.StatusOK, nil
}

func (c *EnquiryController) updateAndReload(ctx *gin.Context, id string, update models.EnquiryUpdate) (*models.Enquiry, int, error) {
	reqCtx := ctx.Request.Context()
	if err := c.enquiries.Update(reqCtx, id, update); err != nil {
		status, err := storeFailure(err, ErrEnquiryNotFound)
		return nil, status, err
	}
	enquiry, err := c.enquiries.FindByID(reqCtx, id)
	if err != nil {
		status, err := storeFailure(err, ErrEnquiryNotFound)
		return nil, status, err
	}
	return enquiry, http.StatusOK, nil
}
