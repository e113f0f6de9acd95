package routes

import (
	"formpilot-api/controllers"
	"formpilot-api/middleware"

	"github.com/gin-gonic/gin"
)

// Dependencies carries the wired controllers and auth settings.
type Dependencies struct {
	Intake    *controllers.IntakeController
	Dashboard *controllers.DashboardController
	Contact   *controllers.ContactController
	Ready     gin.HandlerFunc

	JWTSecret  []byte
	JWTIssuer  string
	AdminEmail string
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	// Public intake, posted to directly by embedded HTML forms
	api := router.Group("/api")
	{
		api.POST("/submit", deps.Intake.Submit)
		api.POST("/contact", deps.Contact.CreateContact)
	}

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", controllers.Health)
		if deps.Ready != nil {
			v1.GET("/ready", deps.Ready)
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
		{
			forms := protected.Group("/forms")
			{
				forms.GET("", deps.Dashboard.GetForms)
				forms.POST("", deps.Dashboard.CreateForm)
				forms.GET("/:form_id", deps.Dashboard.GetForm)
				forms.GET("/:form_id/embed", deps.Dashboard.GetFormEmbed)
				forms.PUT("/:form_id/settings", deps.Dashboard.UpdateFormSettings)
				forms.DELETE("/:form_id", deps.Dashboard.DeleteForm)
			}

			submissions := protected.Group("/submissions")
			{
				submissions.GET("", deps.Dashboard.GetSubmissions)
				submissions.DELETE("/:id", deps.Dashboard.DeleteSubmission)
			}

			account := protected.Group("/account")
			{
				account.GET("/summary", deps.Dashboard.GetAccountSummary)
				account.POST("/delete", deps.Dashboard.DeleteAccount)
			}

			// Only the configured admin email
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin(deps.AdminEmail))
			{
				admin.GET("/contacts", deps.Contact.GetContacts)
			}
		}
	}
}
