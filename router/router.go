package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ShashankBagda/AI-Restaurant/controllers"
	"github.com/ShashankBagda/AI-Restaurant/live"
	"github.com/ShashankBagda/AI-Restaurant/middlewares"
	"github.com/ShashankBagda/AI-Restaurant/models"
	"github.com/ShashankBagda/AI-Restaurant/services"
)

// Deps carries every injected collaborator; nothing here is a package
// global, so tests build a fresh set per case.
type Deps struct {
	DB       *gorm.DB
	Sessions *services.SessionService
	Catalog  *services.CatalogService
	Orders   *services.OrderService
	Invent   *services.InventoryService
	Recs     *services.RecommendationService
	Hub      *live.Hub
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	authCtrl := controllers.NewAuthController(d.DB, d.Sessions)
	menuCtrl := controllers.NewMenuController(d.Catalog)
	orderCtrl := controllers.NewOrderController(d.Orders)
	userCtrl := controllers.NewUserController(d.DB)
	inventoryCtrl := controllers.NewInventoryController(d.Invent)
	billingCtrl := controllers.NewBillingController(d.DB)
	clientCtrl := controllers.NewClientController(d.DB)
	prefCtrl := controllers.NewPreferenceController(d.Recs)
	liveCtrl := controllers.NewLiveController(d.Hub)

	// Public surface: health, discovery companions, credentials.
	r.GET("/api/health", controllers.Health)
	r.POST("/api/client/ping", clientCtrl.Ping)

	credLimiter := middlewares.NewRateLimiter(10, time.Minute)
	public := r.Group("/")
	public.Use(credLimiter.RateLimit())
	{
		public.POST("/api/login", authCtrl.Login)
		public.POST("/api/register", authCtrl.Register)
	}

	// Live viewer socket: authorization happened before subscribing, the
	// socket itself is an unauthenticated event feed.
	r.GET("/ws/orders", liveCtrl.OrdersSocket)

	// Everything below requires a valid session.
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware(d.Sessions))
	{
		api.POST("/logout", authCtrl.Logout)
		api.GET("/menu", menuCtrl.GetMenu)

		api.POST("/orders", orderCtrl.CreateOrder)
		api.GET("/orders/mine", orderCtrl.ListMyOrders)
		api.POST("/orders/:order_id/pay", orderCtrl.PayOrder)
		api.POST("/orders/:order_id/rate", orderCtrl.RateOrder)

		api.GET("/preferences", prefCtrl.GetPreferences)
		api.PUT("/preferences", prefCtrl.SavePreferences)
		api.GET("/recommendations", prefCtrl.GetRecommendations)

		api.PUT("/profile/:user_id", userCtrl.UpdateProfile)
		api.DELETE("/profile", userCtrl.DeleteProfile)

		kitchen := api.Group("/")
		kitchen.Use(middlewares.RequireRole(models.RoleStaff, models.RoleAdmin))
		{
			kitchen.GET("/orders", orderCtrl.ListOrders)
			kitchen.PUT("/orders/:order_id", orderCtrl.UpdateOrder)
		}

		admin := api.Group("/")
		admin.Use(middlewares.RequireRole(models.RoleAdmin))
		{
			admin.GET("/menu/admin", menuCtrl.GetMenu)
			admin.POST("/menu", menuCtrl.CreateItem)
			admin.PUT("/menu/:item_id", menuCtrl.UpdateItem)
			admin.DELETE("/menu/:item_id", menuCtrl.DeleteItem)

			admin.GET("/inventory", inventoryCtrl.GetInventory)
			admin.PUT("/inventory/:item_id", inventoryCtrl.UpdateInventory)

			admin.GET("/billing", billingCtrl.GetBilling)

			admin.GET("/users", userCtrl.GetAllUsers)
			admin.PUT("/users/:user_id", userCtrl.UpdateUser)
			admin.DELETE("/users/:user_id", userCtrl.DeleteUser)

			admin.GET("/clients", clientCtrl.GetClients)
			admin.DELETE("/clients/:device_id", clientCtrl.DeleteClient)
			admin.POST("/clients/clear", clientCtrl.ClearClients)
		}
	}

	return r
}
