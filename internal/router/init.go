package router

import (
	"github.com/oksasatya/go-account-service/internal/container"
	handlers "github.com/oksasatya/go-account-service/internal/interface/http"
	"github.com/oksasatya/go-account-service/internal/router/modules"
)

// InitModules builds the handlers from c and registers every module with r.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	svc := c.AccountService()

	accounts := handlers.NewAccountHandler(svc, c.Logger, c.Cfg.StoreWriteTimeout)
	auth := handlers.NewAuthHandler(svc, c.Logger)

	r.Add(
		modules.NewAccountModule(accounts, c.Tokens),
		modules.NewAuthModule(auth, accounts, c.Tokens),
	)
}
