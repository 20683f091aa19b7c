package main

import (
	"fmt"
	"log"
	"os"

	"cleanops-backend/config"
	"cleanops-backend/models"
	"cleanops-backend/routes"
	"cleanops-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Professional{},
		&models.Job{},
		&models.JobProfessional{},
		&models.Invoice{},
		&models.InvoiceJob{},
		&models.PaymentRun{},
		&models.PaymentRunItem{},
		&models.Lead{},
		&models.ReminderLog{},
	)
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	reminders := services.NewReminderService(config.DB)
	reminders.StartScheduler()

	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
