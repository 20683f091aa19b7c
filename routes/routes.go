package routes

import (
	"os"

	"cleanops-backend/config"
	"cleanops-backend/controllers"
	"cleanops-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigin := os.Getenv("FRONTEND_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:3000"
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{allowedOrigin, "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Landing-page form, no auth
	public := r.Group("/public")
	{
		public.POST("/leads", controllers.CreateLead)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
		}

		// Professional routes
		professionals := api.Group("/professionals")
		{
			professionals.POST("", controllers.CreateProfessional)
			professionals.GET("", controllers.GetProfessionals)
			professionals.GET("/:id", controllers.GetProfessional)
			professionals.PUT("/:id", controllers.UpdateProfessional)
			professionals.DELETE("/:id", controllers.DeleteProfessional)
		}

		// Job routes
		jobs := api.Group("/jobs")
		{
			jobs.GET("/occurrences", controllers.GetJobOccurrences)
			jobs.POST("", controllers.CreateJob)
			jobs.GET("", controllers.GetJobs)
			jobs.GET("/:id", controllers.GetJob)
			jobs.PUT("/:id", controllers.UpdateJob)
			jobs.DELETE("/:id", controllers.DeleteJob)
			jobs.GET("/:id/occurrences/completed", controllers.GetJobCompletedOccurrences)
			jobs.PUT("/:id/occurrences/:date", controllers.SetJobOccurrenceStatus)
		}

		// Invoice routes
		invoices := api.Group("/invoices")
		{
			invoices.POST("/generate", controllers.GenerateInvoice)
			invoices.GET("", controllers.GetInvoices)
			invoices.GET("/:id", controllers.GetInvoice)
			invoices.PUT("/:id/status", controllers.UpdateInvoiceStatus)
			invoices.POST("/:id/jobs", controllers.AddInvoiceJob)
			invoices.DELETE("/:id/jobs/:jobId", controllers.RemoveInvoiceJob)
			invoices.DELETE("/:id", controllers.DeleteInvoice)
		}

		// Payment run routes
		paymentRuns := api.Group("/payment-runs")
		{
			paymentRuns.POST("/generate", controllers.GeneratePaymentRun)
			paymentRuns.GET("", controllers.GetPaymentRuns)
			paymentRuns.GET("/:id", controllers.GetPaymentRun)
		}
		api.PUT("/payment-run-items/:id/paid", controllers.MarkPaymentRunItemPaid)

		// Finance routes
		api.GET("/finance/summary", controllers.GetFinanceSummary)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports", reportController.GetReportAnalytics)

		// Lead review
		api.GET("/leads", controllers.GetLeads)
	}

	return r
}
