package middleware

import (
	"net/http"
	"strconv"

	"shareit/internal/handler/httperr"
	"shareit/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var errMissingIdentity = errs.New("missing or malformed identity header")

// SharerUserHeader carries the acting user's id on every authenticated call.
// There is no session layer; callers are trusted to set it.
const SharerUserHeader = "X-Sharer-User-Id"

const userIDKey = "sharer_user_id"

type IdentityMiddleware struct{}

func NewIdentityMiddleware() *IdentityMiddleware {
	return &IdentityMiddleware{}
}

func (m *IdentityMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SharerUserHeader)
		if raw == "" {
			httperr.AbortWithError(c, http.StatusBadRequest, errMissingIdentity,
				"X-Sharer-User-Id header is required")
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			httperr.AbortWithError(c, http.StatusBadRequest, errMissingIdentity,
				"X-Sharer-User-Id header must be a positive integer")
			return
		}

		c.Set(userIDKey, id)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
