package handler

import (
	"Margin/config"
	"Margin/middleware"
	"Margin/models"
	"Margin/pkg/context"
	"Margin/pkg/jwt"
	"Margin/pkg/log"
	"Margin/pkg/response"
	"Margin/service"
	"Margin/types"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Account struct {
	Config         *config.Config
	AccountService service.IUserAccountService
}

func (a *Account) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth(a.Config.Jwt)
	admin := middleware.RequireRole(a.AccountService, a.Config.Account.AdminRole)

	g := r.Group("/v1/accounts")
	g.POST("", context.Wrap(a.Register))
	g.POST("/login", context.Wrap(a.Login))
	g.POST("/activate", context.Wrap(a.Activate))
	g.PUT("/password", authorize, context.Wrap(a.UpdatePassword))
	g.PUT("/:id/enable", authorize, admin, context.Wrap(a.Enable))
	g.PUT("/:id/disable", authorize, admin, context.Wrap(a.Disable))
}

func (a *Account) Register(c *gin.Context) error {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}

	verify := a.Config.Account.EmailVerification
	user, key, err := a.AccountService.AddUser(c.Request.Context(), &service.AddUserOpt{
		User: &models.User{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		},
		Enabled:           !verify,
		EmailVerification: verify,
	})
	if err != nil {
		return bizError(err)
	}

	resp := types.RegisterResponse{User: types.NewUserItem(user)}
	if key != nil {
		// TODO: 接入邮件服务后改为发信
		log.L.Info("activation key issued", zap.Uint64("user_id", user.ID))
		if a.Config.Debug() {
			resp.ActivationCode = key.Code
		}
	}

	response.Success(c, resp)
	return nil
}

func (a *Account) Login(c *gin.Context) error {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}

	user, err := a.AccountService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		return bizError(err)
	}

	expire := time.Duration(a.Config.Jwt.ExpiresIn) * time.Second
	token, err := jwt.GenerateToken([]byte(a.Config.Jwt.Secret), user.ID, jwt.TokenTypeAccess, expire)
	if err != nil {
		return err
	}

	response.Success(c, types.LoginResponse{
		AccessToken: token,
		ExpiresIn:   a.Config.Jwt.ExpiresIn,
		User:        types.NewUserItem(user),
	})
	return nil
}

func (a *Account) Activate(c *gin.Context) error {
	var req types.ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}

	user, err := a.AccountService.ActivateByCode(c.Request.Context(), req.Code)
	if err != nil {
		return bizError(err)
	}

	response.Success(c, types.NewUserItem(user))
	return nil
}

func (a *Account) UpdatePassword(c *gin.Context) error {
	var req types.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}

	user, err := currentUser(c, a.AccountService)
	if err != nil {
		return err
	}
	if err := a.AccountService.UpdatePasswordForUser(c.Request.Context(), user, req.Password); err != nil {
		return bizError(err)
	}

	response.Success(c, nil)
	return nil
}

func (a *Account) Enable(c *gin.Context) error {
	return a.setEnabled(c, true)
}

func (a *Account) Disable(c *gin.Context) error {
	return a.setEnabled(c, false)
}

func (a *Account) setEnabled(c *gin.Context, enabled bool) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx := c.Request.Context()

	user, err := a.AccountService.GetUser(ctx, id)
	if err != nil {
		return bizError(err)
	}
	if enabled {
		err = a.AccountService.EnableUser(ctx, user)
	} else {
		err = a.AccountService.DisableUser(ctx, user)
	}
	if err != nil {
		return bizError(err)
	}

	response.Success(c, types.NewUserItem(user))
	return nil
}
