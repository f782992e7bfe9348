package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger is the liveness probe's view of the database pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Register(router *gin.RouterGroup) {
	router.GET("/health", h.health)
}

func (h *HealthHandler) health(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "db": false})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "db": true})
}
