package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petfolk/petcare/internal/service/catalog"
)

type CatalogHandler struct {
	service catalog.CatalogUseCase
}

func NewCatalogHandler(service catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) Register(router *gin.RouterGroup) {
	router.GET("/services", h.services)
	router.POST("/services/refresh", h.refresh)
	router.GET("/sitters", h.sitters)
}

func (h *CatalogHandler) services(c *gin.Context) {
	services, err := h.service.Services(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "services": services})
}

func (h *CatalogHandler) refresh(c *gin.Context) {
	if err := h.service.Refresh(c.Request.Context()); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *CatalogHandler) sitters(c *gin.Context) {
	sitters, err := h.service.SittersForService(c.Request.Context(), c.Query("serviceId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "sitters": sitters})
}
