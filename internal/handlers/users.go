package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gadgetswap-dev/gadgetswap/internal/models"
	"github.com/gadgetswap-dev/gadgetswap/internal/saga"
	"github.com/gadgetswap-dev/gadgetswap/internal/services"
	"github.com/gadgetswap-dev/gadgetswap/internal/store"
	"github.com/gadgetswap-dev/gadgetswap/internal/utils"
)

type NewUserPayload struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
	Phone       string `json:"phone"`
}

type AddNewUserRequest struct {
	NewUser NewUserPayload `json:"newUser" binding:"required"`
}

type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type UserEmailRequest struct {
	UserEmail string `json:"userEmail" binding:"required,email"`
}

type ToggleWishlistRequest struct {
	UserEmail string `json:"userEmail" binding:"required,email"`
	GadgetID  string `json:"gadgetId" binding:"required"`
}

type UserSummary struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
	Role        string `json:"role"`
}

// UserHandler is the HTTP boundary for account operations. Every
// failure is logged here and translated into a body-level status;
// nothing propagates past the handler.
type UserHandler struct {
	store       store.Store
	provisioner *saga.Provisioner
	wishlist    *services.WishlistService
}

func NewUserHandler(s store.Store) *UserHandler {
	return &UserHandler{
		store:       s,
		provisioner: saga.NewProvisioner(s),
		wishlist:    services.NewWishlistService(s),
	}
}

func (h *UserHandler) AddNewUser(ctx *gin.Context) {
	var req AddNewUserRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"status": 400, "success": false, "message": "A valid newUser with email is required!"})
		return
	}

	newUser := models.User{
		Email:       utils.NormalizeEmail(req.NewUser.Email),
		DisplayName: req.NewUser.DisplayName,
		PhotoURL:    req.NewUser.PhotoURL,
		Phone:       req.NewUser.Phone,
		Role:        "user",
		JoinedAt:    time.Now().UTC(),
		Wishlist:    []string{},
	}

	userID, err := h.provisioner.CreateAccount(ctx.Request.Context(), &newUser)

	if err != nil {
		switch {
		case errors.Is(err, saga.ErrEmailRequired):
			ctx.JSON(http.StatusOK, gin.H{"status": 400, "success": false, "message": "Email is required!"})
		case errors.Is(err, saga.ErrEmailTaken):
			ctx.JSON(http.StatusOK, gin.H{"status": 409, "success": false, "message": "This email is already registered!"})
		default:
			log.Printf("Failed to provision account for %s: %v", newUser.Email, err)
			ctx.JSON(http.StatusOK, gin.H{"status": 500, "success": false, "message": "Failed to create the account!"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"status":  201,
		"success": true,
		"userId":  userID,
		"message": "Account created successfully!",
	})
}

func (h *UserHandler) FindAvailabilityByEmail(ctx *gin.Context) {
	var req EmailRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"status": 400, "success": false, "message": "A valid email is required!"})
		return
	}

	_, err := h.store.FindUserByEmail(ctx.Request.Context(), utils.NormalizeEmail(req.Email))

	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("Failed to check email availability: %v", err)
		ctx.JSON(http.StatusOK, gin.H{"status": 500, "success": false, "message": "Internal server error!"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  200,
		"success": true,
		"exists":  err == nil,
	})
}

func (h *UserHandler) GetUserByEmail(ctx *gin.Context) {
	var req EmailRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"status": 400, "success": false, "message": "A valid email is required!"})
		return
	}

	user, err := h.store.FindUserByEmail(ctx.Request.Context(), utils.NormalizeEmail(req.Email))

	if errors.Is(err, store.ErrNotFound) {
		ctx.JSON(http.StatusOK, gin.H{"status": 404, "success": false, "message": "User not found!"})
		return
	}
	if err != nil {
		log.Printf("Failed to fetch user: %v", err)
		ctx.JSON(http.StatusOK, gin.H{"status": 500, "success": false, "message": "Internal server error!"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  200,
		"success": true,
		"user": UserSummary{
			Email:       user.Email,
			DisplayName: user.DisplayName,
			PhotoURL:    user.PhotoURL,
			Role:        user.Role,
		},
	})
}

func (h *UserHandler) GetFullUserProfileDetails(ctx *gin.Context) {
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
		ctx.JSON(http.StatusOK, gin.H{"status": 403, "success": false, "message": "You can only view your own profile!"})
		return
	}

	user, err := h.store.FindUserByEmail(ctx.Request.Context(), userEmail)

	if errors.Is(err, store.ErrNotFound) {
		ctx.JSON(http.StatusOK, gin.H{"status": 404, "success": false, "message": "User not found!"})
		return
	}
	if err != nil {
		log.Printf("Failed to fetch profile: %v", err)
		ctx.JSON(http.StatusOK, gin.H{"status": 500, "success": false, "message": "Internal server error!"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  200,
		"success": true,
		"profile": user.Profile(),
	})
}

func (h *UserHandler) ToggleWishlistGadget(ctx *gin.Context) {
	callerEmail, err := utils.CurrentEmail(ctx)

	if err != nil {
		ctx.JSON(http.StatusOK, gin.H{"status": 401, "success": false, "message": "No verified session!"})
		return
	}

	var req ToggleWishlistRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"status": 400, "success": false, "message": "userEmail and gadgetId are required!"})
		return
	}

	result, err := h.wishlist.Toggle(ctx.Request.Context(), callerEmail, utils.NormalizeEmail(req.UserEmail), req.GadgetID)

	if err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			ctx.JSON(http.StatusOK, gin.H{"status": 403, "success": false, "message": "You can only modify your own wishlist!"})
		case errors.Is(err, services.ErrUserNotFound):
			ctx.JSON(http.StatusOK, gin.H{"status": 404, "success": false, "message": "User not found!"})
		default:
			log.Printf("Failed to toggle wishlist for %s: %v", req.UserEmail, err)
			ctx.JSON(http.StatusOK, gin.H{"status": 500, "success": false, "message": "Failed to update the wishlist!"})
		}
		return
	}

	message := "Gadget removed from wishlist!"
	if result.Added {
		message = "Gadget added to wishlist!"
	}
	if !result.Changed {
		message = "No changes were made to the wishlist!"
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":   200,
		"success":  true,
		"message":  message,
		"wishlist": result.Wishlist,
	})
}
