package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gadgetswap-dev/gadgetswap/internal/store"
	"github.com/gadgetswap-dev/gadgetswap/internal/utils"
)

// FeedHandler serves the per-user chain feeds.
type FeedHandler struct {
	store store.Store
}

func NewFeedHandler(s store.Store) *FeedHandler {
	return &FeedHandler{store: s}
}

func (h *FeedHandler) GetAllMessagesOfAUser(ctx *gin.Context) {
	var req UserEmailRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"status": 400, "success": false, "message": "A valid userEmail is required!"})
		return
	}

	chain, err := h.store.FindMessageChainByEmail(ctx.Request.Context(), utils.NormalizeEmail(req.UserEmail))

	if errors.Is(err, store.ErrNotFound) {
		ctx.JSON(http.StatusOK, gin.H{"status": 404, "success": false, "message": "No message chain found for this user!"})
		return
	}
	if err != nil {
		log.Printf("Failed to fetch message chain: %v", err)
		ctx.JSON(http.StatusOK, gin.H{"status": 500, "success": false, "message": "Internal server error!"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  200,
		"success": true,
		"messages": gin.H{
			"total_count":  chain.TotalCount,
			"unread_count": chain.UnreadCount,
			"items":        chain.Items,
		},
	})
}

func (h *FeedHandler) GetAllNotificationsOfAUser(ctx *gin.Context) {
	callerEmail, err := utils.CurrentEmail(ctx)

	if err != nil {
		ctx.JSON(http.StatusOK, gin.H{"status": 401, "success": false, "message": "No verified session!"})
		return
	}

	var req UserEmailRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"status": 400, "success": false, "message": "A valid userEmail is required!"})
		return
	}

	userEmail := utils.NormalizeEmail(req.UserEmail)

	if callerEmail != userEmail {
		ctx.JSON(http.StatusOK, gin.H{"status": 403, "success": false, "message": "You can only view your own notifications!"})
		return
	}

	chain, err := h.store.FindNotificationChainByEmail(ctx.Request.Context(), userEmail)

	if errors.Is(err, store.ErrNotFound) {
		ctx.JSON(http.StatusOK, gin.H{"status": 404, "success": false, "message": "No notification chain found for this user!"})
		return
	}
	if err != nil {
		log.Printf("Failed to fetch notification chain: %v", err)
		ctx.JSON(http.StatusOK, gin.H{"status": 500, "success": false, "message": "Internal server error!"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  200,
		"success": true,
		"notifications": gin.H{
			"total_count":  chain.TotalCount,
			"unread_count": chain.UnreadCount,
			"items":        chain.Items,
		},
	})
}
