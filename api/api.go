package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(getCustomCorsConfig()))

	v1 := router.Group("/api/v1")

	graphics := v1.Group("/graphics")
	{
		graphics.GET("", GetGraphicsHandler)
		graphics.POST("", SetGraphicsHandler)
		graphics.GET("/power", GetGraphicsPowerHandler)
		graphics.POST("/power", SetGraphicsPowerHandler)
		graphics.POST("/power/auto", AutoGraphicsPowerHandler)
		graphics.GET("/switchable", GetSwitchableHandler)
	}

	profile := v1.Group("/profile")
	{
		profile.GET("", GetProfileHandler)
		profile.POST("", SetProfileHandler)
	}

	v1.GET("/status", StatusHandler)

	return router
}

func getCustomCorsConfig() cors.Config {
	config := DefaultConfig()
	config.AllowOrigins = []string{"http://localhost"}
	return config
}

// DefaultConfig returns a generic default configuration mapped to localhost.
func DefaultConfig() cors.Config {
	return cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Access-Control-Allow-Origin", "Origin", "Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
}
