package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petfolk/petcare/internal/service/carelog"
)

type CareLogHandler struct {
	service carelog.CareLogUseCase
}

func NewCareLogHandler(service carelog.CareLogUseCase) *CareLogHandler {
	return &CareLogHandler{service: service}
}

func (h *CareLogHandler) Register(router *gin.RouterGroup) {
	router.GET("/carelogs", h.list)
}

func (h *CareLogHandler) list(c *gin.Context) {
	memberID, ok := memberIdentity(c)
	if !ok {
		return
	}

	logs, err := h.service.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "carelogs": logs})
}
