package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"shopdesk/handlers"
	"shopdesk/utils"
)

// RegisterChatRoutes registers the conversational surface.
func RegisterChatRoutes(r *gin.Engine, chat *handlers.ChatHandler) {
	r.POST("/chat", chat.Chat)
	r.GET("/reset", chat.Reset)
}

// RegisterAppointmentRoutes registers staff lookups over booking records.
// Skipped entirely when record keeping is disabled.
func RegisterAppointmentRoutes(r *gin.Engine, appts *handlers.AppointmentHandler) {
	api := r.Group("/api/appointments")
	{
		api.GET("", appts.ListByPhone)
		api.GET("/:id", appts.GetByID)
		api.DELETE("/:id", appts.Delete)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, chat *handlers.ChatHandler, appts *handlers.AppointmentHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterChatRoutes(r, chat)
	RegisterHealthRoute(r)
	if appts != nil {
		RegisterAppointmentRoutes(r, appts)
	}
}
