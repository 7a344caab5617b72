package routes

import (
	"society-intake-api/controllers"
	"society-intake-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// Admin session
		admin := api.Group("/admin")
		{
			admin.POST("/login", controllers.AdminLogin)

			authed := admin.Group("")
			authed.Use(middleware.AdminAuthMiddleware())
			{
				authed.POST("/logout", controllers.AdminLogout)
				authed.GET("/profile", controllers.GetAdminProfile)
				authed.POST("/change-password", controllers.ChangeAdminPassword)
				authed.GET("/check-auth", controllers.CheckAdminAuth)

				// Account management is super-admin territory
				users := authed.Group("/users")
				users.Use(middleware.RequireSuperAdmin())
				{
					users.GET("", controllers.GetAdminUsers)
					users.POST("", controllers.CreateAdminUser)
					users.PUT("/:id", controllers.UpdateAdminUser)
				}
			}
		}

		// Categories: reads are public, mutations admin-only
		api.GET("/categories", controllers.GetCategories)
		api.GET("/categories/:id", controllers.GetCategory)

		categories := api.Group("/categories")
		categories.Use(middleware.AdminAuthMiddleware())
		{
			categories.POST("", controllers.CreateCategory)
			categories.PUT("/:id", controllers.UpdateCategory)
			categories.DELETE("/:id", controllers.DeleteCategory)
		}

		// Applications
		applications := api.Group("/applications")
		{
			applications.POST("", controllers.SubmitApplication)
			applications.POST("/track", controllers.TrackApplication)

			// The :id segment doubles as the reference number on the
			// applicant-facing lookups, matching the public API shape.
			applications.GET("/:id", controllers.GetApplicationByReference)
			applications.GET("/:id/pdf", controllers.DownloadApplicationPDF)
			applications.GET("/:id/pdf-by-reference", controllers.DownloadApplicationPDFByReference)
			applications.POST("/:id/send-email", controllers.SendApplicationEmail)
			applications.POST("/:id/send-email-by-reference", controllers.SendApplicationEmailByReference)

			reviewed := applications.Group("")
			reviewed.Use(middleware.AdminAuthMiddleware())
			{
				reviewed.GET("", controllers.GetApplications)
				reviewed.GET("/stats", controllers.GetApplicationStats)
				reviewed.PUT("/:id/status", controllers.UpdateApplicationStatus)
			}
		}

		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"message": "Society Intake API is running",
			})
		})
	}
}
