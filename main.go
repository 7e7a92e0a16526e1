package main

import (
	"fmt"
	"log"

	"teknikservis-backend/config"
	"teknikservis-backend/models"
	"teknikservis-backend/routes"
	"teknikservis-backend/services"
	"teknikservis-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	db, err := config.ConnectDB(cfg.DBURL)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Repair{},
		&models.Notification{},
		&models.StockItem{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiryHours)
	sms := services.NewSMSService(cfg)

	scheduler := services.NewReconcileService(db).StartScheduler()
	defer scheduler.Stop()

	r := routes.SetupRouter(cfg, db, tokens, sms)
	printRoutes(r)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
