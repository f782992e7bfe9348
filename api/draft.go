package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/petfolk/petcare/internal/draft"
)

// sessionHeader identifies one browsing session's draft. A request without
// it is issued a fresh session ID, echoed back in the response header.
const sessionHeader = "x-session-id"

type DraftHandler struct {
	manager *draft.Manager
}

type draftDatesRequest struct {
	CheckIn  string `json:"checkin"`
	CheckOut string `json:"checkout"`
}

type draftSelectRequest struct {
	ID string `json:"id"`
}

type draftBudgetRequest struct {
	Budget float64 `json:"budget"`
}

func NewDraftHandler(manager *draft.Manager) *DraftHandler {
	return &DraftHandler{manager: manager}
}

func (h *DraftHandler) Register(router *gin.RouterGroup) {
	router.GET("/draft", h.current)
	router.POST("/draft/dates", h.setDates)
	router.POST("/draft/service", h.selectService)
	router.POST("/draft/sitter", h.selectSitter)
	router.POST("/draft/pet", h.selectPet)
	router.POST("/draft/budget", h.setBudget)
	router.POST("/draft/reset", h.reset)
}

func (h *DraftHandler) session(c *gin.Context) (*draft.Session, bool) {
	sessionID := c.GetHeader(sessionHeader)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	c.Header(sessionHeader, sessionID)

	s, err := h.manager.Session(c.Request.Context(), sessionID)
	if err != nil {
		respondErr(c, err)
		return nil, false
	}
	return s, true
}

func (h *DraftHandler) current(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "view": s.Current(c.Request.Context())})
}

func (h *DraftHandler) setDates(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req draftDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": err.Error()})
		return
	}

	view, err := s.SetDates(c.Request.Context(), req.CheckIn, req.CheckOut)
	switch {
	case errors.Is(err, draft.ErrBadDate), errors.Is(err, draft.ErrInvalidDateRange):
		// An inverted range still returns the cleared draft so the client
		// can render it alongside the error.
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": err.Error(), "view": view})
	case err != nil:
		respondErr(c, err)
	default:
		c.JSON(http.StatusOK, gin.H{"ok": true, "view": view})
	}
}

func (h *DraftHandler) selectService(c *gin.Context) {
	h.selection(c, func(s *draft.Session, id string) (draft.View, error) {
		return s.SelectService(c.Request.Context(), id)
	})
}

func (h *DraftHandler) selectSitter(c *gin.Context) {
	h.selection(c, func(s *draft.Session, id string) (draft.View, error) {
		return s.SelectSitter(c.Request.Context(), id)
	})
}

func (h *DraftHandler) selectPet(c *gin.Context) {
	h.selection(c, func(s *draft.Session, id string) (draft.View, error) {
		return s.SelectPet(c.Request.Context(), id)
	})
}

func (h *DraftHandler) selection(c *gin.Context, apply func(*draft.Session, string) (draft.View, error)) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req draftSelectRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "id is required"})
		return
	}

	view, err := apply(s, req.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "view": view})
}

func (h *DraftHandler) setBudget(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req draftBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Budget < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "budget must be a non-negative number"})
		return
	}

	view, err := s.SetBudget(c.Request.Context(), req.Budget)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "view": view})
}

func (h *DraftHandler) reset(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	view, err := s.Reset(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "view": view})
}
