package router

import (
	"shirtshop/internal/middleware"
	"shirtshop/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID)

	products.POST("", handler.CreateProduct, authRequired, adminOnly)
	products.PUT("/:id", handler.UpdateProduct, authRequired, adminOnly)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, adminOnly)
}

func SetOrdersRoutes(api *echo.Group, ordersHandler *rest.OrdersHandler) {
	orders := api.Group("/orders", middleware.AuthMiddleware())
	orders.POST("", ordersHandler.CreateOrder)
	orders.GET("", ordersHandler.GetMyOrders)
	orders.GET("/:id", ordersHandler.GetOrderByID)
	orders.POST("/:id/slip", ordersHandler.UploadSlip)
	orders.POST("/:id/restore-cart", ordersHandler.RestoreCart)
}

func SetAdminOrdersRoutes(api *echo.Group, handler *rest.AdminOrdersHandler) {
	admin := api.Group("/admin/orders", middleware.AuthMiddleware(), middleware.AdminOnly())

	admin.GET("", handler.ListOrders)
	admin.PATCH("/:id/status", handler.ChangeStatus)
}

func SetAdminProductRoutes(api *echo.Group, handler *rest.ProductHandler) {
	admin := api.Group("/admin/products", middleware.AuthMiddleware(), middleware.AdminOnly())

	admin.GET("/low-stock", handler.LowStockReport)
}

func SetSettingsRoutes(api *echo.Group, handler *rest.SettingsHandler) {
	admin := api.Group("/admin/settings", middleware.AuthMiddleware(), middleware.AdminOnly())

	admin.GET("/payment", handler.GetSettings)
	admin.PUT("/payment", handler.UpdateSettings)
}
