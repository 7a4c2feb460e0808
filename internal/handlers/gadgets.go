package handlers

import (
	"cmp"
	"errors"
	"log"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/gadgetswap-dev/gadgetswap/internal/models"
	"github.com/gadgetswap-dev/gadgetswap/internal/store"
	"github.com/gadgetswap-dev/gadgetswap/internal/utils"
)

// featuredPerCategory is how many gadgets the home page shows for each
// category.
const featuredPerCategory = 4

type GadgetHandler struct {
	store store.Store
}

func NewGadgetHandler(s store.Store) *GadgetHandler {
	return &GadgetHandler{store: s}
}

// FeaturedGadgets returns the top-rated gadgets per category for the
// home page, ties broken by rental count.
func (h *GadgetHandler) FeaturedGadgets(ctx *gin.Context) {
	gadgets, err := h.store.ListGadgets(ctx.Request.Context())

	if err != nil {
		log.Printf("Failed to list gadgets: %v", err)
		ctx.JSON(http.StatusOK, gin.H{"status": 500, "success": false, "message": "Internal server error!"})
		return
	}

	byCategory := make(map[string][]models.Gadget)

	for _, g := range gadgets {
		byCategory[g.Category] = append(byCategory[g.Category], g)
	}

	featured := make(map[string][]models.GadgetSummary, len(byCategory))

	for category, group := range byCategory {
		slices.SortFunc(group, func(a, b models.Gadget) int {
			if c := cmp.Compare(b.AverageRating, a.AverageRating); c != 0 {
				return c
			}
			return cmp.Compare(b.TotalRentalCount, a.TotalRentalCount)
		})

		top := group[:min(featuredPerCategory, len(group))]

		summaries := make([]models.GadgetSummary, 0, len(top))
		for i := range top {
			summaries = append(summaries, top[i].Summary())
		}
		featured[category] = summaries
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":   200,
		"success":  true,
		"featured": featured,
	})
}

func (h *GadgetHandler) GetAllGadgets(ctx *gin.Context) {
	gadgets, err := h.store.ListGadgets(ctx.Request.Context())

	if err != nil {
		log.Printf("Failed to list gadgets: %v", err)
		ctx.JSON(http.StatusOK, gin.H{"status": 500, "success": false, "message": "Internal server error!"})
		return
	}

	summaries := make([]models.GadgetSummary, 0, len(gadgets))

	for i := range gadgets {
		summaries = append(summaries, gadgets[i].Summary())
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  200,
		"success": true,
		"gadgets": summaries,
	})
}

func (h *GadgetHandler) GetGadgetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	gadget, err := h.store.FindGadgetByID(ctx.Request.Context(), id)

	if errors.Is(err, store.ErrNotFound) {
		ctx.JSON(http.StatusOK, gin.H{"status": 404, "success": false, "message": "Gadget not found!"})
		return
	}
	if err != nil {
		log.Printf("Failed to fetch gadget %s: %v", id, err)
		ctx.JSON(http.StatusOK, gin.H{"status": 500, "success": false, "message": "Internal server error!"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  200,
		"success": true,
		"gadget":  gadget,
	})
}

// WishlistGadgetDetails resolves the caller's wishlist ids into full
// gadget records. Ids whose gadget has been removed from the catalog
// are silently dropped.
func (h *GadgetHandler) WishlistGadgetDetails(ctx *gin.Context) {
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
		ctx.JSON(http.StatusOK, gin.H{"status": 403, "success": false, "message": "You can only view your own wishlist!"})
		return
	}

	user, err := h.store.FindUserByEmail(ctx.Request.Context(), userEmail)

	if errors.Is(err, store.ErrNotFound) {
		ctx.JSON(http.StatusOK, gin.H{"status": 404, "success": false, "message": "User not found!"})
		return
	}
	if err != nil {
		log.Printf("Failed to fetch user: %v", err)
		ctx.JSON(http.StatusOK, gin.H{"status": 500, "success": false, "message": "Internal server error!"})
		return
	}

	gadgets, err := h.store.FindGadgetsByIDs(ctx.Request.Context(), user.Wishlist)

	if err != nil {
		log.Printf("Failed to fetch wishlist gadgets: %v", err)
		ctx.JSON(http.StatusOK, gin.H{"status": 500, "success": false, "message": "Internal server error!"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  200,
		"success": true,
		"gadgets": gadgets,
	})
}
