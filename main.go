package main

import (
	"log"
	"net/http"
	"os"

	"review-catalogue-api/config"
	"review-catalogue-api/handlers"
	"review-catalogue-api/helper"
	"review-catalogue-api/middleware"
	"review-catalogue-api/repositories"
	"review-catalogue-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	db := config.InitDB()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	genreRepo := repositories.NewGenreRepository(db)
	titleRepo := repositories.NewTitleRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	commentRepo := repositories.NewCommentRepository(db)

	// Initialize services
	httpHelper := helper.NewHTTPHelper()
	codes := services.NewConfirmationCodes(config.JWTSecret, config.ConfirmationCodeTTL)
	authService := services.NewAuthService(userRepo, services.NewMailerFromEnv(), codes)
	userService := services.NewUserService(userRepo)
	catalogueService := services.NewCatalogueService(categoryRepo, genreRepo)
	titleService := services.NewTitleService(titleRepo, categoryRepo, genreRepo)
	reviewService := services.NewReviewService(reviewRepo, commentRepo, titleRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, httpHelper)
	userHandler := handlers.NewUserHandler(userService, httpHelper)
	catalogueHandler := handlers.NewCatalogueHandler(catalogueService, httpHelper)
	titleHandler := handlers.NewTitleHandler(titleService, httpHelper)
	reviewHandler := handlers.NewReviewHandler(reviewService, httpHelper)

	// Setup router
	router := gin.Default()

	// PUT is not supported anywhere; unsupported methods get 405 instead
	// of 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Identify())
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/token", authHandler.ObtainToken)
		}

		// Self profile (authenticated)
		me := v1.Group("/users/me")
		me.Use(middleware.RequireAuthenticated())
		{
			me.GET("", userHandler.GetProfile)
			me.PATCH("", userHandler.UpdateProfile)
		}

		// User administration (admin only)
		users := v1.Group("/users")
		users.Use(middleware.RequireAdmin())
		{
			users.GET("", userHandler.GetUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:username", userHandler.GetUser)
			users.PATCH("/:username", userHandler.UpdateUser)
			users.DELETE("/:username", userHandler.DeleteUser)
		}

		// Catalogue (read public, write admin)
		categories := v1.Group("/categories")
		categories.Use(middleware.AdminOrReadOnly())
		{
			categories.GET("", catalogueHandler.GetCategories)
			categories.POST("", catalogueHandler.CreateCategory)
			categories.DELETE("/:slug", catalogueHandler.DeleteCategory)
		}

		genres := v1.Group("/genres")
		genres.Use(middleware.AdminOrReadOnly())
		{
			genres.GET("", catalogueHandler.GetGenres)
			genres.POST("", catalogueHandler.CreateGenre)
			genres.DELETE("/:slug", catalogueHandler.DeleteGenre)
		}

		titles := v1.Group("/titles")
		titles.Use(middleware.AdminOrReadOnly())
		{
			titles.GET("", titleHandler.GetTitles)
			titles.POST("", titleHandler.CreateTitle)
			titles.GET("/:title_id", titleHandler.GetTitle)
			titles.PATCH("/:title_id", titleHandler.UpdateTitle)
			titles.DELETE("/:title_id", titleHandler.DeleteTitle)
		}

		// Reviews and comments (read public, write author/moderator/admin)
		reviews := v1.Group("/titles/:title_id/reviews")
		reviews.Use(middleware.AuthenticatedOrReadOnly())
		{
			reviews.GET("", reviewHandler.GetReviews)
			reviews.POST("", reviewHandler.CreateReview)
			reviews.GET("/:review_id", reviewHandler.GetReview)
			reviews.PATCH("/:review_id", reviewHandler.UpdateReview)
			reviews.DELETE("/:review_id", reviewHandler.DeleteReview)

			comments := reviews.Group("/:review_id/comments")
			{
				comments.GET("", reviewHandler.GetComments)
				comments.POST("", reviewHandler.CreateComment)
				comments.GET("/:comment_id", reviewHandler.GetComment)
				comments.PATCH("/:comment_id", reviewHandler.UpdateComment)
				comments.DELETE("/:comment_id", reviewHandler.DeleteComment)
			}
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
