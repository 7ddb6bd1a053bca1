package routes

import (
	"clavis/admin"
	"clavis/auth"
	"clavis/cart"
	"clavis/catalog"
	"clavis/checkout"
	"clavis/invoice"
	"clavis/middleware"
	"clavis/notify"
	"clavis/orders"
	"clavis/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(middleware.Authenticate(auth.RefreshToken)))
}

func AddCatalogRoutes(router *httprouter.Router) {
	router.GET("/api/services", catalog.GetServices)
}

func AddCartRoutes(router *httprouter.Router) {
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.POST("/api/cart/items", middleware.Authenticate(cart.AddToCart))
	router.POST("/api/cart/items/remove", middleware.Authenticate(cart.RemoveFromCart))
	router.DELETE("/api/cart", middleware.Authenticate(cart.ClearCart))
	router.GET("/api/cart/payment-method", middleware.Authenticate(cart.GetPaymentMethod))
	router.PUT("/api/cart/payment-method", middleware.Authenticate(cart.SetPaymentMethod))
}

func AddCheckoutRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/checkout", rl.Limit(middleware.Authenticate(checkout.SubmitOrder)))
}

func AddOrderRoutes(router *httprouter.Router) {
	router.GET("/api/orders", middleware.Authenticate(orders.ListMyOrders))
	router.GET("/api/orders/:orderid", middleware.Authenticate(orders.GetOrder))
	router.GET("/api/orders/:orderid/invoice", middleware.Authenticate(invoice.PrintInvoice))
}

func AddAdminRoutes(router *httprouter.Router) {
	router.GET("/api/admin/overview", middleware.Authenticate(middleware.AdminOnly(admin.GetOverview)))
	router.POST("/api/admin/orders/:orderid/edit", middleware.Authenticate(middleware.AdminOnly(admin.BeginEdit)))
	router.PATCH("/api/admin/orders/:orderid/draft", middleware.Authenticate(middleware.AdminOnly(admin.UpdateDraft)))
	router.PUT("/api/admin/orders/:orderid", middleware.Authenticate(middleware.AdminOnly(admin.SaveOrder)))
	router.POST("/api/admin/orders/:orderid/cancel", middleware.Authenticate(middleware.AdminOnly(admin.CancelEdit)))
	router.DELETE("/api/admin/orders/:orderid", middleware.Authenticate(middleware.AdminOnly(admin.DeleteOrder)))
}

func AddNotifyRoutes(router *httprouter.Router, hub *notify.Hub) {
	router.GET("/ws/admin", notify.WebSocketHandler(hub))
}
