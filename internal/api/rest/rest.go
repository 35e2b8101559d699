package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/pumpitfaxt/launchpad-indexer/internal/api/middleware"
	"github.com/pumpitfaxt/launchpad-indexer/internal/ratelimit"
)

const (
	RATE_LIMIT_SCOPE_REPLY   = "reply"
	RATE_LIMIT_SCOPE_REFRESH = "refresh"
)

// SetupRoutes configures all REST API routes. limiter may be nil.
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig, limiter ratelimit.Limiter) {
	// Health check endpoint (no auth)
	router.GET("/health", handler.HealthCheck)

	refresh := []gin.HandlerFunc{
		middleware.RateLimit(limiter, RATE_LIMIT_SCOPE_REFRESH),
		middleware.Auth(authCfg),
		handler.RefreshTokens,
	}

	tokens := router.Group("/tokens")
	{
		tokens.GET("", handler.ListTokens)
		tokens.GET("/by-user/:address", handler.GetTokensByCreator)
		tokens.GET("/:address", handler.GetToken)
		tokens.GET("/:address/feed", handler.GetTokenFeed)
		tokens.POST("/:address/reply", middleware.RateLimit(limiter, RATE_LIMIT_SCOPE_REPLY), handler.AddReply)
		tokens.POST("/refresh", refresh...)
	}

	// Singular alias kept for existing clients
	router.POST("/token/refresh", refresh...)
}
