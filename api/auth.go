package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petfolk/petcare/internal/service/member"
)

type AuthHandler struct {
	service member.MemberUseCase
}

type loginRequest struct {
	MemberID string `json:"mId"`
	Password string `json:"password"`
}

func NewAuthHandler(service member.MemberUseCase) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/login", h.login)
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": err.Error()})
		return
	}

	profile, err := h.service.Login(c.Request.Context(), req.MemberID, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "member": profile})
}
