package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Registry collects modules and mounts them under /api.
type Registry struct {
	Engine  *gin.Engine
	API     *gin.RouterGroup
	logger  *logrus.Logger
	modules []Module
}

func NewRegistry(engine *gin.Engine, logger *logrus.Logger) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api"), logger: logger}
}

func (r *Registry) Add(mods ...Module) {
	r.modules = append(r.modules, mods...)
}

// RegisterAll mounts the modules plus an unauthenticated /healthz check.
// Engine-wide middleware is attached by the caller so it also covers /healthz.
func (r *Registry) RegisterAll() {
	r.Engine.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	for _, m := range r.modules {
		m.Register(r.API)
		if r.logger != nil {
			r.logger.WithField("module", m.Name()).Debug("module registered")
		}
	}
}
