package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kartikey3d/roommate-finder/config"
	"github.com/kartikey3d/roommate-finder/handlers"
	"github.com/kartikey3d/roommate-finder/middleware"
	"github.com/kartikey3d/roommate-finder/websocket"
)

func SetupRouter(cfg config.Config, wsManager *websocket.Manager) *gin.Engine {
	router := gin.Default()

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	ipLimiter := middleware.NewRateLimiter(cfg.RateLimitRequestsPerMinute, time.Minute)
	messageLimiter := middleware.NewRateLimiter(cfg.RateLimitMessagesPerHour, time.Hour)

	// Public routes (no auth required)
	public := router.Group("/api")
	public.Use(middleware.IPRateLimitMiddleware(ipLimiter))
	public.POST("/signup", handlers.Signup)
	public.POST("/login", handlers.Login)

	// Protected routes group
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware())

	// Profile
	protected.GET("/me", handlers.GetMyProfile)
	protected.PUT("/me/profile", handlers.UpsertMyProfile)
	protected.GET("/user/:id", handlers.GetUser)

	// Preferences
	protected.GET("/me/preferences", handlers.GetMyPreferences)
	protected.PUT("/me/preferences", handlers.UpsertMyPreferences)

	// Matches
	protected.GET("/matches", handlers.GetMatches)
	protected.GET("/matches/:userId/explain", handlers.ExplainMatch)

	// Listings
	protected.GET("/listings", handlers.GetListings)
	protected.POST("/listings", handlers.CreateListing)

	// Chats
	protected.GET("/chats", handlers.GetChatList)
	protected.POST("/chats", handlers.CreateChat)
	protected.GET("/messages/:chatId", handlers.GetMessages)
	protected.POST("/messages/:chatId/read", handlers.MarkAsRead)
	protected.POST("/message", middleware.UserRateLimitMiddleware(messageLimiter), handlers.SendMessage)

	// Websocket (JWT resolved by the middleware, token via query parameter)
	router.GET("/ws", middleware.JWTAuthMiddleware(), func(c *gin.Context) {
		websocket.Handler(wsManager, c.GetString("userId"))(c.Writer, c.Request)
	})

	// Catch-all for undefined API routes
	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})

	return router
}
