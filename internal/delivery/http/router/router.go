// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"piquant/internal/delivery/http/middleware"
	"piquant/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	SauceHandler   *handler.SauceHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	sauceHandler   *handler.SauceHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		sauceHandler:   params.SauceHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/api/auth")
	{
		authGroup.POST("/signup", r.userHandler.Signup)
		authGroup.POST("/login", r.userHandler.Login)
	}

	// Sauce routes all require authentication
	sauceGroup := e.Group("/api/sauces")
	sauceGroup.Use(r.authMiddleware.Authenticate)
	{
		sauceGroup.GET("", r.sauceHandler.GetAllSauces)
		sauceGroup.GET("/:id", r.sauceHandler.GetOneSauce)
		sauceGroup.POST("", r.sauceHandler.CreateSauce)
		sauceGroup.PUT("/:id", r.sauceHandler.ModifySauce)
		sauceGroup.DELETE("/:id", r.sauceHandler.DeleteSauce)
		sauceGroup.POST("/:id/like", r.sauceHandler.VoteSauce)
	}
}
