package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jakia12/bizconnect-backend/controllers"
	"github.com/jakia12/bizconnect-backend/middleware"
	"github.com/jakia12/bizconnect-backend/models"
)

func RegisterRoutes(r *gin.Engine) {

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.PrometheusMiddleware())
	{
		api.POST("/register", controllers.Register)
		api.POST("/login", controllers.Login)
		api.POST("/logout", controllers.Logout)

		api.GET("/products", controllers.GetProductsPublic)
		api.GET("/products/:id", controllers.GetProductByID)
		api.GET("/products/:id/reviews", controllers.GetProductReviews)
		api.GET("/services", controllers.GetServicesPublic)
		api.GET("/services/:id", controllers.GetServiceByID)

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/notifications", controllers.GetNotifications)
			protected.GET("/notifications/unread-count", controllers.GetUnreadCount)
			// PATCH/DELETE on the collection act on everything read or
			// unread; the :id forms act on a single record.
			protected.PATCH("/notifications", controllers.MarkAllNotificationsRead)
			protected.PATCH("/notifications/:id", controllers.MarkNotificationRead)
			protected.DELETE("/notifications", controllers.DeleteReadNotifications)
			protected.DELETE("/notifications/:id", controllers.DeleteNotification)

			protected.POST("/messages", controllers.SendMessage)
			protected.GET("/conversations", controllers.GetConversations)
			protected.GET("/conversations/:id/messages", controllers.GetConversationMessages)

			buyer := protected.Group("/buyer")
			buyer.Use(middleware.RequireRole(models.RoleBuyer))
			{
				buyer.GET("/cart", controllers.GetCart)
				buyer.POST("/cart", controllers.AddToCart)
				buyer.PUT("/cart/:productId", controllers.UpdateCart)
				buyer.DELETE("/cart/:productId", controllers.RemoveFromCart)
				buyer.DELETE("/cart", controllers.ClearCart)

				buyer.POST("/orders", controllers.Checkout)
				buyer.GET("/orders", controllers.GetOrders)
				buyer.GET("/orders/:id", controllers.GetOrderByID)
				buyer.PUT("/orders/:id/cancel", controllers.CancelOrder)

				buyer.POST("/products/:id/reviews", controllers.CreateReview)
				buyer.DELETE("/reviews/:id", controllers.DeleteReview)
			}

			seller := protected.Group("/seller")
			seller.Use(middleware.RequireRole(models.RoleSeller))
			{
				seller.GET("/products", controllers.GetSellerProducts)
				seller.POST("/products", controllers.CreateProduct)
				seller.PUT("/products/:id", controllers.UpdateProduct)
				seller.DELETE("/products/:id", controllers.DeleteProduct)

				seller.GET("/services", controllers.GetSellerServices)
				seller.POST("/services", controllers.CreateService)
				seller.PUT("/services/:id", controllers.UpdateService)
				seller.DELETE("/services/:id", controllers.DeleteService)

				seller.GET("/orders", controllers.GetSellerOrders)
				seller.GET("/orders/:id", controllers.GetSellerOrderByID)
				seller.PUT("/orders/:id", controllers.UpdateSellerOrder)

				seller.GET("/profile", controllers.GetSellerProfile)
				seller.PUT("/profile", controllers.UpdateSellerProfile)
				seller.POST("/verification", controllers.SubmitVerification)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/sellers", controllers.GetSellersAdmin)
				admin.PUT("/sellers/:id/verification", controllers.ReviewVerification)

				admin.GET("/orders", controllers.GetOrdersAdmin)
				admin.GET("/orders/:id", controllers.GetOrderByIDAdmin)
			}
		}
	}
}
