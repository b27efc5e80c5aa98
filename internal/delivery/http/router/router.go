// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"freshfarm/internal/delivery/http/middleware"
	"freshfarm/internal/delivery/http/router/handler"
	"freshfarm/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	AccountHandler *handler.AccountHandler
	ProductHandler *handler.ProductHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	ReviewHandler  *handler.ReviewHandler
	MessageHandler *handler.MessageHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	p := r.params
	auth := p.AuthMiddleware

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register/buyer", p.AuthHandler.RegisterBuyer)
		authGroup.POST("/register/farmer", p.AuthHandler.RegisterFarmer)
		authGroup.POST("/register/admin", p.AuthHandler.RegisterAdmin)
		authGroup.POST("/login", p.AuthHandler.Login)
	}

	// Account routes for the authenticated user
	accountGroup := e.Group("/account")
	accountGroup.Use(auth.Authenticate)
	{
		accountGroup.GET("/profile", p.AccountHandler.GetProfile)
		accountGroup.PATCH("/profile", p.AccountHandler.UpdateProfile)
		accountGroup.PUT("/password", p.AccountHandler.ChangePassword)
		accountGroup.DELETE("", p.AccountHandler.DeleteAccount)
	}

	// Catalog routes; browsing is public, management is farmer-only
	productGroup := e.Group("/products")
	{
		productGroup.GET("", p.ProductHandler.ListProducts)
		productGroup.GET("/:id", p.ProductHandler.GetProduct)
		productGroup.GET("/:id/reviews", p.ReviewHandler.ListProductReviews)

		farmerProducts := productGroup.Group("")
		farmerProducts.Use(auth.Authenticate, auth.RequireRole(entity.RoleFarmer))
		{
			farmerProducts.POST("", p.ProductHandler.CreateProduct)
			farmerProducts.PATCH("/:id", p.ProductHandler.UpdateProduct)
			farmerProducts.DELETE("/:id", p.ProductHandler.DeleteProduct)
			farmerProducts.POST("/:id/image", p.ProductHandler.UploadProductImage)
		}
	}

	// Farmer dashboard routes
	farmerGroup := e.Group("/farmer")
	farmerGroup.Use(auth.Authenticate, auth.RequireRole(entity.RoleFarmer))
	{
		farmerGroup.GET("/products", p.ProductHandler.ListMyProducts)
		farmerGroup.GET("/orders", p.OrderHandler.ListFarmerOrders)
	}

	// Cart routes, buyer only
	cartGroup := e.Group("/cart")
	cartGroup.Use(auth.Authenticate, auth.RequireRole(entity.RoleBuyer))
	{
		cartGroup.GET("", p.CartHandler.GetCart)
		cartGroup.POST("/items", p.CartHandler.AddItem)
		cartGroup.PATCH("/items/:itemId", p.CartHandler.SetItemQuantity)
		cartGroup.DELETE("/items/:itemId", p.CartHandler.RemoveItem)
		cartGroup.DELETE("", p.CartHandler.ClearCart)
	}

	// Order routes
	orderGroup := e.Group("/orders")
	orderGroup.Use(auth.Authenticate)
	{
		orderGroup.POST("", p.OrderHandler.PlaceOrder)
		orderGroup.GET("", p.OrderHandler.ListMyOrders)
		orderGroup.GET("/:id", p.OrderHandler.GetOrder)
		orderGroup.POST("/:id/cancel", p.OrderHandler.CancelOrder)
		orderGroup.PATCH("/:id/status", p.OrderHandler.UpdateStatus)
		orderGroup.GET("/:id/pickup-qr", p.OrderHandler.PickupQR)
	}

	// Review routes
	reviewGroup := e.Group("/reviews")
	reviewGroup.Use(auth.Authenticate)
	{
		reviewGroup.POST("", p.ReviewHandler.CreateReview)
		reviewGroup.PATCH("/:id", p.ReviewHandler.UpdateReview)
		reviewGroup.DELETE("/:id", p.ReviewHandler.DeleteReview)
	}

	// Messaging routes
	messageGroup := e.Group("/messages")
	messageGroup.Use(auth.Authenticate)
	{
		messageGroup.POST("", p.MessageHandler.SendMessage)
		messageGroup.GET("", p.MessageHandler.ListMyMessages)
		messageGroup.GET("/conversation/:userId", p.MessageHandler.ListConversation)
		messageGroup.POST("/:id/read", p.MessageHandler.MarkRead)
	}

	// Admin routes
	adminGroup := e.Group("/admin")
	adminGroup.Use(auth.Authenticate, auth.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/users", p.AdminHandler.ListUsers)
		adminGroup.POST("/users/:id/deactivate", p.AdminHandler.DeactivateUser)
		adminGroup.POST("/users/:id/reactivate", p.AdminHandler.ReactivateUser)
		adminGroup.DELETE("/users/:id", p.AccountHandler.AdminDeleteUser)
		adminGroup.GET("/transactions", p.AdminHandler.ListAllTransactions)
		adminGroup.GET("/reports", p.AdminHandler.GenerateReport)
	}
}
