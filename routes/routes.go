package routes

import (
	"net/http"
	"time"

	"slotswapper/handlers"
	"slotswapper/middleware"
	"slotswapper/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers identity endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Auth.RegisterUserHandler)
		api.POST("/login", hb.Auth.AuthenticateUserHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.DELETE("/revoke", hb.Auth.RevokeUserAuthTokenHandler)
	}
}

// RegisterSlotRoutes registers slot management endpoints.
func RegisterSlotRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/slots")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", hb.Slot.CreateSlotHandler)
		api.GET("", hb.Slot.ListMySlotsHandler)
		api.GET("/offered", hb.Slot.ListMyOfferedSlotsHandler)
		api.GET("/:id", hb.Slot.GetSlotHandler)
		api.PUT("/:id", hb.Slot.UpdateSlotHandler)
		api.PATCH("/:id/status", hb.Slot.UpdateSlotStatusHandler)
		api.DELETE("/:id", hb.Slot.DeleteSlotHandler)
	}
}

// RegisterSwapRoutes registers the negotiation endpoints.
func RegisterSwapRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/swaps")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/swappable", hb.Swap.ListSwappableSlotsHandler)
		api.POST("", hb.Swap.ProposeSwapHandler)
		api.POST("/:id/resolve", hb.Swap.ResolveSwapHandler)
		api.GET("/incoming", hb.Swap.ListIncomingSwapsHandler)
		api.GET("/outgoing", hb.Swap.ListOutgoingSwapsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes wires CORS and every route group onto the engine.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterSlotRoutes(r, hb)
	RegisterSwapRoutes(r, hb)
	RegisterHealthRoute(r)
}
