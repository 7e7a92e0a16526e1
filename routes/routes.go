package routes

import (
	"teknikservis-backend/config"
	"teknikservis-backend/controllers"
	"teknikservis-backend/models"
	"teknikservis-backend/services"
	"teknikservis-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the full REST surface. Dependencies are constructed
// here from the injected config, database handle and SMS sender so tests
// can swap in an in-memory database and a fake sender.
func SetupRouter(cfg *config.Config, db *gorm.DB, tokens *utils.TokenManager, sms services.StatusSMSSender) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	r.Use(config.PerformanceLogger())

	policy := services.NewAccessPolicy()
	notifications := services.NewNotificationService(db)
	lifecycle := services.NewRepairLifecycle(db, policy, notifications, sms)
	reconcile := services.NewReconcileService(db)
	demo := services.NewDemoDataService(db)

	authController := &controllers.AuthController{DB: db, Tokens: tokens, Notifications: notifications}
	customerController := &controllers.CustomerController{DB: db, Policy: policy, Notifications: notifications}
	repairController := &controllers.RepairController{DB: db, Policy: policy, Lifecycle: lifecycle}
	userController := &controllers.UserController{DB: db, Notifications: notifications}
	notificationController := &controllers.NotificationController{DB: db}
	stockController := &controllers.StockController{DB: db}
	statsController := &controllers.StatsController{DB: db, Policy: policy}
	uploadController := &controllers.UploadController{UploadDir: cfg.UploadDir}
	adminController := &controllers.AdminController{DB: db, Demo: demo, Reconcile: reconcile}

	r.Static("/uploads", cfg.UploadDir)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware(tokens, db))
		auth.GET("/me", authController.Me)
	}

	authed := api.Group("")
	authed.Use(utils.AuthMiddleware(tokens, db))
	{
		customers := authed.Group("/customers")
		{
			customers.POST("", customerController.CreateCustomer)
			customers.GET("", customerController.GetCustomers)
			customers.GET("/me", customerController.Me)
			customers.GET("/:id", customerController.GetCustomer)
			customers.PUT("/:id", customerController.UpdateCustomer)
			customers.DELETE("/:id", customerController.DeleteCustomer)
			customers.GET("/:id/repairs", customerController.GetCustomerRepairs)
		}

		repairs := authed.Group("/repairs")
		{
			repairs.POST("", repairController.CreateRepair)
			repairs.GET("", repairController.GetRepairs)
			repairs.GET("/:id", repairController.GetRepair)
			repairs.PUT("/:id", repairController.UpdateRepair)
			repairs.DELETE("/:id", repairController.DeleteRepair)
			repairs.PUT("/:id/cancel", repairController.CancelRepair)
			repairs.PUT("/:id/status", utils.RequireRoles(models.RoleAdmin), repairController.SetStatus)
		}

		users := authed.Group("/users", utils.RequireRoles(models.RoleAdmin))
		{
			users.GET("", userController.GetUsers)
			users.GET("/pending", userController.GetPendingUsers)
			users.PUT("/:id/role", userController.UpdateRole)
			users.POST("/:id/approve", userController.ApproveUser)
		}

		notifs := authed.Group("/notifications", utils.RequireRoles(models.RoleAdmin))
		{
			notifs.GET("", notificationController.GetNotifications)
			notifs.GET("/unread-count", notificationController.UnreadCount)
			notifs.PUT("/:id/read", notificationController.MarkRead)
			notifs.DELETE("/clear-all", notificationController.ClearAll)
		}

		stock := authed.Group("/stock", utils.RequireRoles(models.RoleAdmin))
		{
			stock.POST("", stockController.CreateStockItem)
			stock.GET("", stockController.GetStockItems)
			stock.GET("/low-stock", stockController.GetLowStock)
			stock.PUT("/:id", stockController.UpdateStockItem)
			stock.DELETE("/:id", stockController.DeleteStockItem)
			stock.POST("/:id/quantity", stockController.AdjustQuantity)
		}

		authed.GET("/stats", statsController.GetStats)
		authed.GET("/search", statsController.Search)
		authed.GET("/reports/technician/:id", statsController.TechnicianReport)

		authed.POST("/upload", uploadController.Upload)
		authed.POST("/upload-multiple", uploadController.UploadMultiple)

		admin := authed.Group("/admin", utils.RequireRoles(models.RoleAdmin))
		{
			admin.DELETE("/repairs/delete-all", adminController.DeleteAllRepairs)
			admin.DELETE("/customers/delete-all", adminController.DeleteAllCustomers)
			admin.DELETE("/system/reset", adminController.SystemReset)
			admin.POST("/system/reconcile", adminController.RunReconcile)
			admin.POST("/demo/create-data", adminController.CreateDemoData)
		}
	}

	return r
}
