package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sumakmikuy/restaurant-backend/config"
	"github.com/sumakmikuy/restaurant-backend/controllers"
	"github.com/sumakmikuy/restaurant-backend/middlewares"
	"github.com/sumakmikuy/restaurant-backend/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, rdb *redis.Client, chatbotSvc *services.ChatbotService) *gin.Engine {
	r := gin.Default()

	// Serve uploaded dish images, image extensions only. The gate must be
	// registered before the static route to apply to it.
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
			path := strings.ToLower(c.Request.URL.Path)
			if !strings.HasSuffix(path, ".jpg") &&
				!strings.HasSuffix(path, ".jpeg") &&
				!strings.HasSuffix(path, ".png") &&
				!strings.HasSuffix(path, ".gif") {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}
		c.Next()
	})
	r.Static("/uploads", config.UploadDir())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())

	authCtrl := controllers.NewAuthController(db)
	menuCtrl := controllers.NewMenuController(db)
	contactCtrl := controllers.NewContactController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	dishCtrl := controllers.NewDishController(db)
	tableCtrl := controllers.NewTableController(db)
	reservationCtrl := controllers.NewReservationController(db)
	orderCtrl := controllers.NewOrderController(db)
	adminCtrl := controllers.NewAdminController(db)
	chatbotCtrl := controllers.NewChatbotController(chatbotSvc)

	authLimiter := middlewares.NewRateLimiter(rdb, 5, time.Minute, "auth")
	chatLimiter := middlewares.NewRateLimiter(rdb, 20, time.Minute, "chatbot")

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(authLimiter.Limit())
	{
		public.POST("/register", authCtrl.Register)
		public.POST("/login", authCtrl.Login)
	}
	r.GET("/logout", authCtrl.Logout)

	r.GET("/menu", menuCtrl.GetMenu)
	r.POST("/contact", contactCtrl.CreateContactMessage)
	r.POST("/chatbot", chatLimiter.Limit(), chatbotCtrl.Chat)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", authCtrl.GetProfile)

		auth.GET("/reservations/availability", reservationCtrl.GetAvailability)
		auth.POST("/reservations", reservationCtrl.CreateReservation)
		auth.GET("/my/reservations", reservationCtrl.GetMyReservations)

		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/my/orders", orderCtrl.GetMyOrders)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.AdminOnly())
	{
		admin.GET("/dashboard", adminCtrl.GetDashboardStats)

		admin.GET("/categories", categoryCtrl.GetAllCategories)
		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

		admin.GET("/dishes", dishCtrl.GetAllDishes)
		admin.POST("/dishes", dishCtrl.CreateDish)
		admin.GET("/dishes/:dish_id", dishCtrl.GetDishByID)
		admin.PATCH("/dishes/:dish_id", dishCtrl.UpdateDish)

		admin.GET("/tables", tableCtrl.GetAllTables)
		admin.POST("/tables", tableCtrl.CreateTable)
		admin.PATCH("/tables/:table_id/status", tableCtrl.UpdateTableStatus)

		admin.GET("/reservations", reservationCtrl.GetAllReservations)
		admin.PATCH("/reservations/:reservation_id/status", reservationCtrl.UpdateReservationStatus)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		admin.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	}

	return r
}
