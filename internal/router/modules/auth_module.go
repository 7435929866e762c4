package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-account-service/internal/interface/http"
	"github.com/oksasatya/go-account-service/internal/interface/middleware"
	"github.com/oksasatya/go-account-service/pkg/helpers"
)

// AuthModule exposes token issuance and the signed-in account.
type AuthModule struct {
	Handler  *handlers.AuthHandler
	Accounts *handlers.AccountHandler
	Tokens   *helpers.TokenService
}

func NewAuthModule(h *handlers.AuthHandler, accounts *handlers.AccountHandler, tokens *helpers.TokenService) *AuthModule {
	return &AuthModule{Handler: h, Accounts: accounts, Tokens: tokens}
}

func (m *AuthModule) Name() string { return "auth" }

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/authenticate", m.Handler.Authenticate)

	rg.GET("/account", middleware.JWTAuth(m.Tokens), m.Accounts.GetAccount)
}
