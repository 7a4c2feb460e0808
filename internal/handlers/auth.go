package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gadgetswap-dev/gadgetswap/internal/auth"
	"github.com/gadgetswap-dev/gadgetswap/internal/config"
	"github.com/gadgetswap-dev/gadgetswap/internal/types"
	"github.com/gadgetswap-dev/gadgetswap/internal/utils"
)

type IssueSessionRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// AuthHandler issues and clears the session cookie. Identity is taken
// on faith at issuance; proving the email belongs to the caller
// happens upstream of this API.
type AuthHandler struct {
	cfg config.App
}

func NewAuthHandler(cfg config.App) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

func (h *AuthHandler) IssueSession(ctx *gin.Context) {
	var req IssueSessionRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"status": 400, "success": false, "message": "A valid email is required!"})
		return
	}

	token, err := auth.IssueToken(utils.NormalizeEmail(req.Email))

	if err != nil {
		log.Printf("Failed to sign session token: %v", err)
		ctx.JSON(http.StatusOK, gin.H{"status": 500, "success": false, "message": "Internal server error!"})
		return
	}

	setSessionCookie(ctx, token, int(auth.TokenTTL.Seconds()), h.cfg.Production())

	ctx.JSON(http.StatusCreated, gin.H{
		"status":  201,
		"success": true,
		"token":   token,
		"message": "Login Successful, JWT stored in Cookie!",
	})
}

func (h *AuthHandler) ClearSession(ctx *gin.Context) {
	setSessionCookie(ctx, "", -1, h.cfg.Production())

	ctx.JSON(http.StatusOK, gin.H{
		"status":  200,
		"success": true,
		"message": "Logout successful, cookie cleared!",
	})
}

// setSessionCookie writes the http-only session cookie. Production
// runs cross-site (frontend on another origin), so Secure and
// SameSite=None there; Lax everywhere else.
func setSessionCookie(ctx *gin.Context, token string, maxAge int, production bool) {
	sameSite := http.SameSiteLaxMode
	if production {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   production,
		HttpOnly: true,
		SameSite: sameSite,
	})
}
