package router

import (
	"time"

	"github.com/ecopledge-dev/ecopledge/internal/handlers"
	"github.com/ecopledge-dev/ecopledge/internal/middleware"
	"github.com/ecopledge-dev/ecopledge/internal/pledges"
	"github.com/ecopledge-dev/ecopledge/internal/realtime"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(engine *pledges.Engine, hub *realtime.Hub) *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "http://localhost:5174"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	pledgeHandler := handlers.NewPledgeHandler(engine)
	socketHandler := handlers.NewSocketHandler(hub)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/pledges", socketHandler.PledgeSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		carbon := api.Group("/carbon", middleware.AuthMiddleware())
		{
			carbon.GET("", handlers.ListCarbonEntries)
			carbon.POST("", handlers.CreateCarbonEntry)
			carbon.GET("/stats", handlers.GetCarbonStats)
			carbon.DELETE("/:entry_id", handlers.DeleteCarbonEntry)
		}

		pledge := api.Group("/pledge")
		{
			pledge.GET("", pledgeHandler.ListPledges)
			pledge.GET("/global-co2", pledgeHandler.GetGlobalCO2)
			pledge.POST("", middleware.AuthMiddleware(), pledgeHandler.CreatePledge)
			pledge.POST("/:pledge_id/like", middleware.AuthMiddleware(), pledgeHandler.ToggleLike)
		}
	}

	return r
}
