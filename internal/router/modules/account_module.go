package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-account-service/internal/interface/http"
	"github.com/oksasatya/go-account-service/internal/interface/middleware"
	"github.com/oksasatya/go-account-service/pkg/helpers"
)

// AccountModule wires registration, activation and password routes.
// Public: signup, activate, reset-password/init, reset-password/finish
// Protected: change-password
type AccountModule struct {
	Handler *handlers.AccountHandler
	Tokens  *helpers.TokenService
}

func NewAccountModule(h *handlers.AccountHandler, tokens *helpers.TokenService) *AccountModule {
	return &AccountModule{Handler: h, Tokens: tokens}
}

func (m *AccountModule) Name() string { return "accounts" }

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/accounts")
	g.POST("/signup", m.Handler.Signup)
	g.GET("/activate", m.Handler.Activate)
	g.POST("/reset-password/init", m.Handler.ResetInit)
	g.POST("/reset-password/finish", m.Handler.ResetFinish)

	auth := g.Group("/")
	auth.Use(middleware.JWTAuth(m.Tokens))
	{
		auth.POST("/change-password", m.Handler.ChangePassword)
	}
}
