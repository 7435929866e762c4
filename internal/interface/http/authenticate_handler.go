package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/pkg/response"
	"github.com/oksasatya/go-account-service/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type loginRequest struct {
	Username   string `json:"username" binding:"required,max=50"`
	Password   string `json:"password" binding:"required,max=72"`
	RememberMe bool   `json:"rememberMe"`
}

type tokenResponse struct {
	IDToken string `json:"id_token"`
}

// Authenticate issues a bearer token, returned in the body and the Authorization header.
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	token, err := h.Svc.Authenticate(c.Request.Context(), req.Username, req.Password, req.RememberMe)
	if err != nil {
		status, msg := statusFor(err)
		if status >= http.StatusInternalServerError && h.Logger != nil {
			h.Logger.WithError(err).Error("authentication failed")
		}
		response.Error[any](c, status, msg, nil)
		return
	}
	c.Header("Authorization", "Bearer "+token)
	response.Success(c, http.StatusOK, tokenResponse{IDToken: token}, "authenticated", nil)
}
