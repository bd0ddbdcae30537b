package routes

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/milsabores/pasteleria-golang/internal/handlers"
	"github.com/milsabores/pasteleria-golang/internal/middleware"
)

// CORSMiddleware tells the browser the storefront SPA may send data to us.
func CORSMiddleware() gin.HandlerFunc {
	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173" // local Vite dev server
	}

	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Cart-Token")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Cart-Token")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// The browser sends an empty preflight request first; reply 204.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	// CORS must be the very first thing the router uses.
	router.Use(CORSMiddleware())

	// --- Ping Route (Public) ---
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong!"})
	})

	// --- Auth Routes (Public) ---
	router.POST("/auth/register", h.Register)
	router.POST("/auth/login", h.Login)

	// --- Catalog Routes (Public) ---
	router.GET("/productos", h.GetAllProducts)
	router.GET("/productos/:id", h.GetProduct)

	// --- Blog Routes (Public) ---
	router.GET("/blog", h.GetBlogPosts)
	router.GET("/blog/:id", h.GetBlogPost)

	// --- Cart Routes (session token, guests welcome) ---
	carrito := router.Group("/carrito")
	carrito.Use(middleware.CartSession())
	{
		carrito.GET("", h.GetCart)
		carrito.POST("/items", h.AddToCart)
		carrito.PUT("/items/:product_id", h.UpdateCartItem)
		carrito.DELETE("/items/:product_id", h.DeleteCartItem)
		carrito.DELETE("", h.ClearCart)
	}

	// --- Checkout (guest or logged-in) ---
	router.POST("/pedidos", middleware.CartSession(), middleware.OptionalAuth(), h.Checkout)

	// --- Protected Routes (Login Required) ---
	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/usuarios/me", h.GetMe)
		auth.GET("/pedidos", h.GetOrders)
		auth.GET("/pedidos/:id", h.GetOrderDetails)
		auth.POST("/asistente", h.ChatAssistant)
	}

	// --- Admin-Only Routes ---
	admin := router.Group("/")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware(h.DB))
	{
		admin.GET("/usuarios", h.GetAllUsers)
		admin.PATCH("/usuarios/:id", h.UpdateUser)
		admin.DELETE("/usuarios/:id", h.DeleteUser)

		admin.POST("/productos", h.CreateProduct)
		admin.PATCH("/productos/:id", h.UpdateProduct)
		admin.DELETE("/productos/:id", h.DeleteProduct)

		admin.PATCH("/pedidos/:id", h.UpdateOrderStatus)

		admin.GET("/admin/settings", h.GetSettings)
		admin.PATCH("/admin/settings", h.UpdateSettings)
		admin.GET("/admin/dashboard-stats", h.GetAdminStats)
	}

	return router
}
