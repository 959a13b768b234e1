package routes

import (
	"net/http"
	"time"

	"tutorhive/handlers"
	"tutorhive/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterScheduleRoutes registers the reconciliation endpoints.
func RegisterScheduleRoutes(r *gin.Engine, sh *handlers.ScheduleHandler) {
	api := r.Group("/api/schedules")
	{
		api.PUT("/availability/:tutorId", sh.DeclareAvailabilityHandler)
		api.POST("/classes/:tutorId", sh.CommitClassScheduleHandler)
		api.DELETE("/classes/:tutorId/:classRef", sh.ReleaseClassScheduleHandler)
		api.POST("/preview", sh.PreviewResidualFreeTimeHandler)
		api.GET("/tutor/:tutorId", sh.GetWeeklyCalendarHandler)
	}
}

// RegisterAdminRoutes registers the moderation endpoint.
func RegisterAdminRoutes(r *gin.Engine, vh *handlers.VerificationHandler) {
	api := r.Group("/api/admin")
	{
		api.POST("/verify", vh.SetVerificationStatusHandler)
	}
}

// RegisterRoutes wires CORS, health, and all endpoint groups.
func RegisterRoutes(r *gin.Engine, sh *handlers.ScheduleHandler, vh *handlers.VerificationHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})

	RegisterScheduleRoutes(r, sh)
	RegisterAdminRoutes(r, vh)
}
