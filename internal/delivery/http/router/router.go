// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"backoffice/internal/delivery/http/middleware"
	"backoffice/internal/delivery/http/router/handler"
	"backoffice/internal/domain/entity"
	"backoffice/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	PropertyHandler *handler.PropertyHandler
	LeadHandler     *handler.LeadHandler
	ApprovalHandler *handler.ApprovalHandler

	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
	Metrics             *metrics.Metrics
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

	e.Use(p.RequestIDMiddleware.Process)
	e.Use(p.Metrics.Middleware())

	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", p.Metrics.Handler())

	// Auth routes; login and refresh are throttled per client IP
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", p.AuthHandler.Register)
		authGroup.POST("/login", p.AuthHandler.Login, p.RateLimitMiddleware.LimitAuth)
		authGroup.POST("/refresh", p.AuthHandler.Refresh, p.RateLimitMiddleware.LimitAuth)
		authGroup.POST("/logout", p.AuthHandler.Logout)
		authGroup.POST("/logout-all", p.AuthHandler.LogoutAll, p.AuthMiddleware.Authenticate)
		authGroup.GET("/me", p.AuthHandler.Me, p.AuthMiddleware.Authenticate)
	}

	// Listing routes require authentication; status changes are additionally
	// gated by the approval policy inside the usecase
	propertyGroup := e.Group("/properties")
	propertyGroup.Use(p.AuthMiddleware.Authenticate)
	{
		propertyGroup.POST("", p.PropertyHandler.Create)
		propertyGroup.GET("", p.PropertyHandler.List)
		propertyGroup.GET("/:id", p.PropertyHandler.Get)
		propertyGroup.PATCH("/:id", p.PropertyHandler.Update)
		propertyGroup.POST("/:id/status", p.PropertyHandler.ChangeStatus)
		propertyGroup.GET("/:id/share", p.PropertyHandler.Share)
	}

	leadGroup := e.Group("/leads")
	leadGroup.Use(p.AuthMiddleware.Authenticate)
	{
		leadGroup.POST("", p.LeadHandler.Create)
		leadGroup.GET("", p.LeadHandler.List)
		leadGroup.GET("/:id", p.LeadHandler.Get)
		leadGroup.PATCH("/:id", p.LeadHandler.Update)
		leadGroup.POST("/:id/status", p.LeadHandler.ChangeStatus)
		leadGroup.GET("/:id/share", p.LeadHandler.Share)
	}

	// Approval queues are only visible to roles that can ever decide a
	// request; the per-status privilege check happens in the usecase
	decidingRoles := []entity.Role{entity.RoleCEO, entity.RoleManager, entity.RoleTeamLead}

	propertyRequests := e.Group("/property-requests")
	propertyRequests.Use(p.AuthMiddleware.Authenticate)
	propertyRequests.Use(p.AuthMiddleware.RequireRoles(decidingRoles...))
	{
		propertyRequests.GET("/pending", p.ApprovalHandler.ListPendingProperties)
		propertyRequests.GET("/archive", p.ApprovalHandler.ListArchivedProperties)
		propertyRequests.PATCH("/:id/approve", p.ApprovalHandler.ApproveProperty)
		propertyRequests.PATCH("/:id/reject", p.ApprovalHandler.RejectProperty)
	}

	leadRequests := e.Group("/lead-requests")
	leadRequests.Use(p.AuthMiddleware.Authenticate)
	leadRequests.Use(p.AuthMiddleware.RequireRoles(decidingRoles...))
	{
		leadRequests.GET("/pending", p.ApprovalHandler.ListPendingLeads)
		leadRequests.GET("/archive", p.ApprovalHandler.ListArchivedLeads)
		leadRequests.PATCH("/:id/approve", p.ApprovalHandler.ApproveLead)
		leadRequests.PATCH("/:id/reject", p.ApprovalHandler.RejectLead)
	}
}
