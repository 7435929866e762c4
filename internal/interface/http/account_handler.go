package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/internal/interface/middleware"
	"github.com/oksasatya/go-account-service/pkg/response"
	"github.com/oksasatya/go-account-service/pkg/validation"
)

const maxResetInitBody = 1 << 10

type AccountHandler struct {
	Svc          *application.Service
	Logger       *logrus.Logger
	WriteTimeout time.Duration
}

func NewAccountHandler(svc *application.Service, logger *logrus.Logger, writeTimeout time.Duration) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger, WriteTimeout: writeTimeout}
}

type signupRequest struct {
	Login       string   `json:"login" binding:"required,login"`
	Password    string   `json:"password"`
	FirstName   string   `json:"firstName" binding:"max=50"`
	LastName    string   `json:"lastName" binding:"max=50"`
	Email       string   `json:"email" binding:"required,accountemail"`
	ImageURL    string   `json:"imageUrl" binding:"max=256"`
	LangKey     string   `json:"langKey" binding:"omitempty,langkey"`
	Authorities []string `json:"authorities"`
}

type resetFinishRequest struct {
	Key         string `json:"key"`
	NewPassword string `json:"newPassword"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// writeCtx detaches a store write from client disconnects while still bounding it.
func (h *AccountHandler) writeCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(c.Request.Context())
	if h.WriteTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.WriteTimeout)
}

func (h *AccountHandler) fail(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError && h.Logger != nil {
		h.Logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	response.Error[any](c, status, msg, nil)
}

func (h *AccountHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ctx, cancel := h.writeCtx(c)
	defer cancel()

	acc, err := h.Svc.Signup(ctx, application.SignupInput{
		Login:       req.Login,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		ImageURL:    req.ImageURL,
		LangKey:     req.LangKey,
		Authorities: req.Authorities,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toAccountDTO(acc), "account registered", nil)
}

func (h *AccountHandler) Activate(c *gin.Context) {
	ctx, cancel := h.writeCtx(c)
	defer cancel()

	acc, ok, err := h.Svc.Activate(ctx, c.Query("key"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if !ok {
		h.fail(c, application.ErrActivationKeyNotFound)
		return
	}
	response.Success(c, http.StatusOK, toAccountDTO(acc), "account activated", nil)
}

// ResetInit accepts the email as the raw body or as a JSON string. It answers 200 whether
// or not the email belongs to an account.
func (h *AccountHandler) ResetInit(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxResetInitBody))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	email := parseEmailBody(raw)
	if email == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"email": "is required"})
		return
	}
	ctx, cancel := h.writeCtx(c)
	defer cancel()

	if _, err := h.Svc.RequestPasswordReset(ctx, email); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "if the email is registered, a reset link was sent", nil)
}

func parseEmailBody(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			s = strings.TrimSpace(v)
		}
	}
	return s
}

func (h *AccountHandler) ResetFinish(c *gin.Context) {
	var req resetFinishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ctx, cancel := h.writeCtx(c)
	defer cancel()

	acc, err := h.Svc.CompletePasswordReset(ctx, req.NewPassword, req.Key)
	if err != nil {
		h.fail(c, err)
		return
	}
	if acc == nil {
		h.fail(c, application.ErrResetKeyNotFound)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "password reset", nil)
}

func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ctx, cancel := h.writeCtx(c)
	defer cancel()

	login := c.GetString(middleware.CtxLoginKey)
	if err := h.Svc.ChangePassword(ctx, login, req.CurrentPassword, req.NewPassword); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "password changed", nil)
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	acc, err := h.Svc.GetAccount(c.Request.Context(), c.GetString(middleware.CtxLoginKey))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toAccountDTO(acc), "account", nil)
}
