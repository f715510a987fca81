package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rentnest/server/internal/auth"
	"rentnest/server/internal/models"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.Use(MetricsMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(auth.Authenticate(handler.auth))

	router.Static("/storage", handler.store.Root())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Page shells. Guarded pages redirect anonymous visitors to /login
	// with the original path preserved.
	router.GET("/", handler.HomePage)
	router.GET("/login", handler.LoginPage)
	router.GET("/signup", handler.SignUpPage)
	router.GET("/search", handler.SearchPage)
	router.GET("/dashboard", auth.RequireAccount(true), handler.DashboardPage)
	router.GET("/property/new", auth.RequireAccount(true), handler.NewListingPage)

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", handler.SignUp)
			authRoutes.POST("/signin", handler.SignIn)
			authRoutes.POST("/signout", handler.SignOut)
			authRoutes.GET("/session", handler.Session)
		}

		api.GET("/listings", handler.GetListings)
		api.GET("/listings/:id", handler.GetListing)
		api.GET("/cities", handler.GetCities)

		// The role gate runs before the handler, so a non-landlord
		// create never touches the database.
		api.POST("/listings", auth.RequireRole(models.RoleLandlord), handler.CreateListing)

		owned := api.Group("/", auth.RequireAccount(false))
		{
			owned.GET("my/listings", handler.GetMyListings)
			owned.PUT("listings/:id", handler.UpdateListing)
			owned.DELETE("listings/:id", handler.DeleteListing)
			owned.POST("listings/:id/images", handler.UploadListingImage)
			owned.DELETE("listings/:id/images", handler.RemoveListingImage)

			owned.GET("applications", handler.GetApplications)
			owned.PUT("applications/:id/status", handler.UpdateApplicationStatus)

			owned.GET("favorites", handler.GetFavorites)
			owned.POST("favorites", handler.AddFavorite)
			owned.DELETE("favorites/:listing_id", handler.RemoveFavorite)

			owned.POST("verification", handler.SubmitVerification)
			owned.GET("verification", handler.GetVerificationStatus)

			owned.PUT("profile", handler.UpdateProfile)

			owned.GET("dashboard", handler.GetDashboard)
		}

		api.POST("/applications", auth.RequireRole(models.RoleTenant), handler.CreateApplication)
	}
}
