package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petfolk/petcare/internal/service/pet"
)

type PetHandler struct {
	service pet.PetUseCase
}

func NewPetHandler(service pet.PetUseCase) *PetHandler {
	return &PetHandler{service: service}
}

func (h *PetHandler) Register(router *gin.RouterGroup) {
	router.POST("/pets", h.create)
	router.GET("/pets", h.list)
}

func (h *PetHandler) create(c *gin.Context) {
	var req pet.CreatePetInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), assertedMember(c, req.MemberID), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "pet": created})
}

func (h *PetHandler) list(c *gin.Context) {
	memberID, ok := memberIdentity(c)
	if !ok {
		return
	}

	pets, err := h.service.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "pets": pets})
}
