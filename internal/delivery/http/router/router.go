// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"servease/internal/delivery/http/middleware"
	"servease/internal/delivery/http/router/handler"
	"servease/internal/domain/entity"
)

type RouterParams struct {
	fx.In

	IdentityHandler *handler.IdentityHandler
	RequestHandler  *handler.RequestHandler
	DeliveryHandler *handler.DeliveryHandler
	ShopHandler     *handler.ShopHandler
	PaymentHandler  *handler.PaymentHandler
	SupportHandler  *handler.SupportHandler
	AdminHandler    *handler.AdminHandler
	AuthMiddleware  *middleware.AuthMiddleware
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
// Route groups are segmented by the role tag carried in the access token.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.params.AuthMiddleware

	customer := entity.RoleCustomer
	provider := entity.RoleServiceProvider
	partner := entity.RoleDeliveryPartner
	admin := entity.RoleAdmin

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.params.IdentityHandler.Signup)
		authGroup.POST("/login", r.params.IdentityHandler.Login)
	}

	// Current-user routes
	meGroup := e.Group("/me")
	meGroup.Use(auth.Authenticate)
	{
		meGroup.GET("/profile", r.params.IdentityHandler.GetProfile)
		meGroup.POST("/device-token", r.params.IdentityHandler.RegisterDeviceToken)
	}

	// Shop directory is readable by any authenticated user.
	shopGroup := e.Group("/shops")
	shopGroup.Use(auth.Authenticate)
	{
		shopGroup.GET("", r.params.ShopHandler.List)
		shopGroup.GET("/:id", r.params.ShopHandler.Get)
	}

	// Repair request lifecycle
	requestGroup := e.Group("/requests")
	requestGroup.Use(auth.Authenticate)
	{
		requestGroup.POST("", r.params.RequestHandler.Create, auth.RequireRole(customer))
		requestGroup.GET("/mine", r.params.RequestHandler.ListMine, auth.RequireRole(customer))
		requestGroup.GET("/pending", r.params.RequestHandler.ListPending, auth.RequireRole(provider))
		requestGroup.GET("/shop/:shopId", r.params.RequestHandler.ListByShop, auth.RequireRole(provider, admin))
		requestGroup.GET("/:id", r.params.RequestHandler.Get)
		requestGroup.POST("/:id/assign", r.params.RequestHandler.AssignShop, auth.RequireRole(provider))
		requestGroup.POST("/:id/status", r.params.RequestHandler.AdvanceStatus, auth.RequireRole(provider, admin))
		requestGroup.POST("/:id/cancel", r.params.RequestHandler.Cancel, auth.RequireRole(customer, admin))
	}

	// Delivery tasks
	deliveryGroup := e.Group("/deliveries")
	deliveryGroup.Use(auth.Authenticate)
	{
		deliveryGroup.GET("/unassigned", r.params.DeliveryHandler.ListUnassigned, auth.RequireRole(partner))
		deliveryGroup.GET("/mine", r.params.DeliveryHandler.ListMine, auth.RequireRole(partner))
		deliveryGroup.GET("/request/:requestId", r.params.DeliveryHandler.GetForRequest)
		deliveryGroup.GET("/:id", r.params.DeliveryHandler.Get)
		deliveryGroup.GET("/:id/qr", r.params.DeliveryHandler.PickupQR, auth.RequireRole(partner))
		deliveryGroup.POST("/:id/accept", r.params.DeliveryHandler.Accept, auth.RequireRole(partner))
		deliveryGroup.POST("/:id/status", r.params.DeliveryHandler.Advance, auth.RequireRole(partner))
	}

	// Payments
	paymentGroup := e.Group("/payments")
	paymentGroup.Use(auth.Authenticate)
	{
		paymentGroup.POST("", r.params.PaymentHandler.Create, auth.RequireRole(customer))
		paymentGroup.GET("", r.params.PaymentHandler.ListAll, auth.RequireRole(admin))
		paymentGroup.GET("/request/:requestId", r.params.PaymentHandler.GetForRequest)
		paymentGroup.POST("/:id/status", r.params.PaymentHandler.UpdateStatus, auth.RequireRole(admin))
	}

	// Complaints and support tickets
	supportGroup := e.Group("/support")
	supportGroup.Use(auth.Authenticate)
	{
		supportGroup.POST("/complaints", r.params.SupportHandler.CreateComplaint)
		supportGroup.GET("/complaints/mine", r.params.SupportHandler.ListMyComplaints)
		supportGroup.GET("/complaints", r.params.SupportHandler.ListComplaints, auth.RequireRole(admin))
		supportGroup.POST("/complaints/:id/respond", r.params.SupportHandler.RespondToComplaint, auth.RequireRole(admin))

		supportGroup.POST("/tickets", r.params.SupportHandler.CreateTicket)
		supportGroup.GET("/tickets/mine", r.params.SupportHandler.ListMyTickets)
		supportGroup.GET("/tickets", r.params.SupportHandler.ListTickets, auth.RequireRole(admin))
		supportGroup.POST("/tickets/:id/respond", r.params.SupportHandler.RespondToTicket, auth.RequireRole(admin))
	}

	// Platform administration
	adminGroup := e.Group("/admin")
	adminGroup.Use(auth.Authenticate)
	adminGroup.Use(auth.RequireRole(admin))
	{
		adminGroup.GET("/users", r.params.AdminHandler.ListUsers)
		adminGroup.DELETE("/users/:id", r.params.AdminHandler.DeleteUser)
		adminGroup.GET("/stats", r.params.AdminHandler.PlatformStats)
		adminGroup.GET("/requests", r.params.RequestHandler.ListAll)
	}
}
