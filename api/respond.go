// Package api is the HTTP surface. Handlers bind requests, call services
// and translate service errors to status codes; they hold no business
// logic of their own.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petfolk/petcare/internal/draft"
	"github.com/petfolk/petcare/internal/service/carelog"
	"github.com/petfolk/petcare/internal/service/catalog"
	"github.com/petfolk/petcare/internal/service/member"
	"github.com/petfolk/petcare/internal/service/order"
	"github.com/petfolk/petcare/internal/service/pet"
)

// memberHeader is an optional identity assertion. When present it must
// match the mId the request names in its query or body; requests without
// it act as the mId they name.
const memberHeader = "x-member-id"

// memberIdentity resolves who a read request acts for: the asserted header
// identity when present, the query mId otherwise. A header contradicting
// the query is an attempt to read someone else's data.
func memberIdentity(c *gin.Context) (string, bool) {
	id := c.GetHeader(memberHeader)
	if q := c.Query("mId"); q != "" {
		if id != "" && id != q {
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "message": "mId does not match the " + memberHeader + " header"})
			return "", false
		}
		if id == "" {
			id = q
		}
	}
	return id, true
}

// assertedMember resolves who a write request acts for. Header/body
// mismatches are left to the service, which rejects them as forbidden.
func assertedMember(c *gin.Context, bodyID string) string {
	if id := c.GetHeader(memberHeader); id != "" {
		return id
	}
	return bodyID
}

// respondErr maps a service error to its status code. Unknown errors are
// reported as a bare internal error so storage details never leak.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrValidation),
		errors.Is(err, catalog.ErrValidation),
		errors.Is(err, pet.ErrValidation),
		errors.Is(err, carelog.ErrValidation),
		errors.Is(err, member.ErrValidation),
		errors.Is(err, draft.ErrBadDate),
		errors.Is(err, draft.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": err.Error()})
	case errors.Is(err, member.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "message": err.Error()})
	case errors.Is(err, order.ErrForbidden), errors.Is(err, pet.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "message": err.Error()})
	case errors.Is(err, order.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "internal error"})
	}
}
