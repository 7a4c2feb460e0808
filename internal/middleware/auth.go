package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gadgetswap-dev/gadgetswap/internal/auth"
	"github.com/gadgetswap-dev/gadgetswap/internal/types"
	"github.com/gadgetswap-dev/gadgetswap/internal/utils"
)

// SessionRequired verifies the session cookie and stores the decoded
// email in the context. Responses stay 200 at the transport level; the
// body status field carries the logical outcome (401 missing token,
// 402 invalid or expired), matching the convention the frontend
// depends on.
func SessionRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(types.SessionCookieName)

		if err != nil || token == "" {
			ctx.AbortWithStatusJSON(http.StatusOK, gin.H{
				"status":  401,
				"success": false,
				"message": "No token provided, authorization denied!",
			})
			return
		}

		email, err := auth.VerifyToken(token)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusOK, gin.H{
				"status":  402,
				"success": false,
				"message": "Invalid or expired token!",
			})
			return
		}

		ctx.Set(types.ContextEmailKey, utils.NormalizeEmail(email))
		ctx.Next()
	}
}
