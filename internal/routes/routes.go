package routes

import (
	"github.com/gin-gonic/gin"

	"printstore/internal/handlers"
	"printstore/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	resetHandler *handlers.PasswordResetHandler,
	catalogHandler *handlers.CatalogHandler,
	orderHandler *handlers.OrderHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {
	api := r.Group("/api")

	// ---- public
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/forgot-password", resetHandler.ForgotPassword)
		auth.POST("/reset-password", resetHandler.ResetPassword)
		auth.POST("/validate-reset-token", resetHandler.ValidateResetToken)
	}

	api.GET("/categories", catalogHandler.ListCategories)
	api.GET("/categories/:id", catalogHandler.GetCategory)
	api.GET("/products", catalogHandler.ListProducts)
	api.GET("/products/:id", catalogHandler.GetProduct)
	api.GET("/shipping-methods", orderHandler.ListShippingMethods)

	// ---- customer (JWT)
	authed := api.Group("", middleware.AuthMiddleware())
	{
		authed.POST("/orders", orderHandler.PlaceOrder)
		authed.GET("/orders", orderHandler.ListMyOrders)
		authed.GET("/orders/:id", orderHandler.GetOrder)
	}

	// ---- admin
	admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		admin.POST("/categories", catalogHandler.CreateCategory)
		admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)
		admin.POST("/sub-categories", catalogHandler.CreateSubCategory)
		admin.POST("/products", catalogHandler.CreateProduct)
		admin.PUT("/products/:id", catalogHandler.UpdateProduct)
		admin.DELETE("/products/:id", catalogHandler.DeleteProduct)
		admin.POST("/products/:id/material-options", catalogHandler.AddMaterialOption)
		admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	}

	reports := api.Group("/reports", middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		reports.GET("/orders", reportHandler.OrderReport)
		reports.GET("/orders/pdf", reportHandler.OrderReportPDF)
	}

	return r
}
