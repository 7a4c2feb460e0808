package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gadgetswap-dev/gadgetswap/internal/config"
	"github.com/gadgetswap-dev/gadgetswap/internal/handlers"
	"github.com/gadgetswap-dev/gadgetswap/internal/middleware"
	"github.com/gadgetswap-dev/gadgetswap/internal/store"
	"github.com/gadgetswap-dev/gadgetswap/internal/types"
)

// NewRouter wires the HTTP surface. Route names are part of the
// contract with the deployed frontend and must not be renamed.
func NewRouter(cfg config.App, st store.Store) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins(cfg.ClientURL, cfg.AllowedOrigins),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := handlers.NewAuthHandler(cfg)
	userHandler := handlers.NewUserHandler(st)
	gadgetHandler := handlers.NewGadgetHandler(st)
	feedHandler := handlers.NewFeedHandler(st)

	r.GET("/", handlers.HealthCheck)

	r.POST("/generate_jwt_and_get_token", authHandler.IssueSession)
	r.POST("/logout_and_clear_jwt", authHandler.ClearSession)

	users := r.Group("/users")
	{
		users.POST("/add_new_user", userHandler.AddNewUser)
		users.POST("/find_availability_by_email", userHandler.FindAvailabilityByEmail)
		users.POST("/get_user_by_email", userHandler.GetUserByEmail)
		users.POST("/get_full_user_profile_details", middleware.SessionRequired(), userHandler.GetFullUserProfileDetails)
		users.PATCH("/add_or_remove_a_gadget_id_to_or_from_wishlist", middleware.SessionRequired(), userHandler.ToggleWishlistGadget)
	}

	gadgets := r.Group("/gadgets")
	{
		gadgets.GET("/featured_gadgets_for_home_page", gadgetHandler.FeaturedGadgets)
		gadgets.GET("/get_all_gadgets_for_gadgets_page", gadgetHandler.GetAllGadgets)
		gadgets.GET("/get_gadget_details_by_id/:id", gadgetHandler.GetGadgetByID)
		gadgets.POST("/get_gadget_details_of_a_wishlist_array", middleware.SessionRequired(), gadgetHandler.WishlistGadgetDetails)
	}

	messages := r.Group("/messages")
	{
		messages.POST("/get_all_messages_of_a_user", feedHandler.GetAllMessagesOfAUser)
	}

	notifications := r.Group("/notifications")
	{
		notifications.POST("/get_all_notifications_of_a_user", middleware.SessionRequired(), feedHandler.GetAllNotificationsOfAUser)
	}

	return r
}
