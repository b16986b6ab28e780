package controllers

import (
	"errors"
	"net/http"
	"strings"

	"bookingapi/src/config"
	"bookingapi/src/logger"
	"bookingapi/src/models"
	"bookingapi/src/repository"
	"bookingapi/src/types"
	"bookingapi/src/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users repository.UserRepository
	cfg   *config.Config
	log   logger.Logger
}

func NewUserController(users repository.UserRepository, cfg *config.Config, log logger.Logger) *UserController {
	return &UserController{users: users, cfg: cfg, log: log.With("controller", "user")}
}

func (c *UserController) Signup(ctx *gin.Context) (*models.User, int, error) {
	var body types.RegisterUserRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	hashed, err := utils.HashPassword(body.Password)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	user := &models.User{
		Username:    strings.TrimSpace(body.Username),
		Password:    hashed,
		Email:       strings.ToLower(strings.TrimSpace(body.Email)),
		Address:     body.Address,
		City:        body.City,
		State:       body.State,
		Country:     body.Country,
		PhoneNumber: body.PhoneNumber,
		Role:        string(types.ROLE_USER),
		UserStatus:  string(types.USER_ACTIVE),
	}
	if err := c.users.Create(ctx.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, http.StatusConflict, ErrDuplicateUser
		}
		c.log.Error("error creating user", "username", user.Username, "error", err)
		return nil, http.StatusInternalServerError, err
	}
	c.log.Info("registered user", "user_id", user.ID)
	return user, http.StatusCreated, nil
}

func (c *UserController) Login(ctx *gin.Context) (*types.AuthResponse, int, error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	login := strings.TrimSpace(body.Login)
	user, err := c.users.FindByLogin(ctx.Request.Context(), login)
	if err != nil && strings.Contains(login, "@") {
		user, err = c.users.FindByLogin(ctx.Request.Context(), strings.ToLower(login))
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, http.StatusUnauthorized, ErrInvalidCredentials
		}
		return nil, http.StatusInternalServerError, err
	}
	if !utils.CheckPassword(user.Password, body.Password) {
		return nil, http.StatusUnauthorized, ErrInvalidCredentials
	}
	if user.UserStatus != string(types.USER_ACTIVE) {
		return nil, http.StatusForbidden, ErrInactiveUser
	}
	token, err := utils.GenerateJWT(c.cfg.JWTSecret, c.cfg.JWTTTL, user)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return &types.AuthResponse{Token: token, User: user}, http.StatusOK, nil
}

func (c *UserController) Profile(ctx *gin.Context) (*models.User, int, error) {
	id := ctx.GetString("id")
	if id == "" {
		return nil, http.StatusUnauthorized, ErrUnauthenticated
	}
	user, err := c.users.FindByID(ctx.Request.Context(), id)
	if err != nil {
		status, err := storeFailure(err, ErrUserNotFound)
		return nil, status, err
	}
	return user, http.StatusOK, nil
}

func (c *UserController) UpdateProfile(ctx *gin.Context) (*models.User, int, error) {
	id := ctx.GetString("id")
	if id == "" {
		return nil, http.StatusUnauthorized, ErrUnauthenticated
	}
	var body types.UpdateUserRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if body.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*body.Email))
		body.Email = &email
	}
	err := c.users.Update(ctx.Request.Context(), id, models.UserUpdate{
		Email:       body.Email,
		Address:     body.Address,
		City:        body.City,
		State:       body.State,
		Country:     body.Country,
		PhoneNumber: body.PhoneNumber,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, http.StatusConflict, ErrDuplicateUser
	}
	if err != nil {
		status, err := storeFailure(err, ErrUserNotFound)
		return nil, status, err
	}
	return c.Profile(ctx)
}

func (c *UserController) ListUsers(ctx *gin.Context) (*types.PagedResponse, int, error) {
	var query types.ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, http.StatusBadRequest, err
	}
	p := utils.GetPagination(query.Page, query.Limit)
	users, total, err := c.users.List(ctx.Request.Context(), models.UserQuery{
		Search: strings.TrimSpace(query.Search),
		Skip:   p.Skip,
		Limit:  p.Limit,
	})
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	if users == nil {
		users = []models.User{}
	}
	res := &types.PagedResponse{Items: users, Total: int(total), CurrentPage: p.Page, PerPage: p.Limit}
	res.TotalPages, res.NextPage, res.PreviousPage = utils.PageMeta(p, total)
	return res, http.StatusOK, nil
}

func (c *UserController) UpdateUserStatus(ctx *gin.Context) (*models.User, int, error) {
	var body types.UserStatusRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	reqCtx := ctx.Request.Context()
	if err := c.users.Update(reqCtx, body.ID, models.UserUpdate{UserStatus: &body.UserStatus}); err != nil {
		status, err := storeFailure(err, ErrUserNotFound)
		return nil, status, err
	}
	user, err := c.users.FindByID(reqCtx, body.ID)
	if err != nil {
		status, err := storeFailure(err, ErrUserNotFound)
		return nil, status, err
	}
	c.log.Info("updated user status", "user_id", user.ID, "status", user.UserStatus)
	return user, http.StatusOK, nil
}

func (c *UserController) DeleteUser(ctx *gin.Context) (*string, int, error) {
	var params types.SimpleRequestParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if err := c.users.Delete(ctx.Request.Context(), params.ID); err != nil {
		status, err := storeFailure(err, ErrUserNotFound)
		return nil, status, err
	}
	c.log.Info("deleted user", "user_id", params.ID)
	return &params.ID, http.StatusOK, nil
}
