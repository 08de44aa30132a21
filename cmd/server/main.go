package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/skillforge-app/backend/internal/config"
	"github.com/skillforge-app/backend/internal/database"
	"github.com/skillforge-app/backend/internal/handlers"
	"github.com/skillforge-app/backend/internal/jobs"
	"github.com/skillforge-app/backend/internal/repository"
	"github.com/skillforge-app/backend/internal/scheduler"
	"github.com/skillforge-app/backend/internal/services"
	"github.com/skillforge-app/backend/pkg/logger"
	"github.com/skillforge-app/backend/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	kudosRepo := repository.NewKudosRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// --- WebSocket hub (live notification delivery) ---
	notificationHub := handlers.NewNotificationHub(cfg.JWTSecret)

	// --- Services ---
	notificationService := services.NewNotificationService(notificationRepo, notificationHub)
	userService := services.NewUserService(userRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	badgeService := services.NewBadgeService(badgeRepo, activityRepo, notificationService)
	activityService := services.NewActivityService(activityRepo, categoryRepo, badgeService)
	verificationService := services.NewVerificationService(activityRepo, userRepo, notificationService, badgeService)
	statsService := services.NewStatsService(activityRepo, categoryRepo, userRepo)
	goalService := services.NewGoalService(goalRepo, activityRepo, categoryRepo, notificationService)
	kudosService := services.NewKudosService(kudosRepo, activityRepo, notificationService)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	categoryHandler := handlers.NewCategoryHandler(categoryService, statsService)
	activityHandler := handlers.NewActivityHandler(activityService)
	goalHandler := handlers.NewGoalHandler(goalService)
	badgeHandler := handlers.NewBadgeHandler(badgeService)
	feedHandler := handlers.NewFeedHandler(kudosService)
	statsHandler := handlers.NewStatsHandler(statsService)
	adminHandler := handlers.NewAdminHandler(verificationService, badgeService, userService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public user routes
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")
	router.HandleFunc("/users/verify", userHandler.VerifyEmailHandler).Methods("GET")

	// Protected user routes
	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.HandleFunc("/me", userHandler.GetMeHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/me", userHandler.UpdateProfileHandler).Methods("PATCH")
	protectedUserRoutes.HandleFunc("/me/report-card", statsHandler.GetReportCardHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/me/badges", badgeHandler.GetMyBadgesHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{id}", userHandler.GetUserHandler).Methods("GET")

	// Category routes
	categoryRoutes := router.PathPrefix("/categories").Subrouter()
	categoryRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	categoryRoutes.HandleFunc("", categoryHandler.GetCategoriesHandler).Methods("GET")
	categoryRoutes.HandleFunc("/{id}", categoryHandler.GetCategoryHandler).Methods("GET")
	categoryRoutes.HandleFunc("/{id}/subskills", categoryHandler.GetSubSkillsHandler).Methods("GET")
	categoryRoutes.HandleFunc("/{id}/stats", categoryHandler.GetCategoryStatsHandler).Methods("GET")
	categoryRoutes.HandleFunc("/{id}/leaderboard", categoryHandler.GetLeaderboardHandler).Methods("GET")

	// Activity routes
	activityRoutes := router.PathPrefix("/activities").Subrouter()
	activityRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	activityRoutes.HandleFunc("", activityHandler.LogActivityHandler).Methods("POST")
	activityRoutes.HandleFunc("", activityHandler.GetMyActivitiesHandler).Methods("GET")
	activityRoutes.HandleFunc("/approved", activityHandler.GetMyApprovedActivitiesHandler).Methods("GET")
	activityRoutes.HandleFunc("/{id}/post", activityHandler.PostActivityHandler).Methods("POST")
	activityRoutes.HandleFunc("/{id}/kudos", feedHandler.ToggleKudosHandler).Methods("POST")

	// Goal routes
	goalRoutes := router.PathPrefix("/goals").Subrouter()
	goalRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	goalRoutes.HandleFunc("", goalHandler.CreateGoalHandler).Methods("POST")
	goalRoutes.HandleFunc("", goalHandler.GetGoalsHandler).Methods("GET")
	goalRoutes.HandleFunc("/{id}", goalHandler.GetGoalHandler).Methods("GET")
	goalRoutes.HandleFunc("/{id}", goalHandler.DeleteGoalHandler).Methods("DELETE")

	// Badge routes
	badgeRoutes := router.PathPrefix("/badges").Subrouter()
	badgeRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	badgeRoutes.HandleFunc("", badgeHandler.GetBadgesHandler).Methods("GET")

	// Feed routes
	feedRoutes := router.PathPrefix("/feed").Subrouter()
	feedRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	feedRoutes.HandleFunc("", feedHandler.GetFeedHandler).Methods("GET")

	// Notification routes
	notificationRoutes := router.PathPrefix("/notifications").Subrouter()
	notificationRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	notificationRoutes.HandleFunc("", notificationHandler.GetUserNotificationsHandler).Methods("GET")
	notificationRoutes.HandleFunc("/{id}/read", notificationHandler.MarkAsReadHandler).Methods("POST")
	notificationRoutes.HandleFunc("/{id}", notificationHandler.DeleteNotificationHandler).Methods("DELETE")

	// WebSocket notification stream (token auth via query param)
	router.HandleFunc("/ws/notifications", notificationHub.StreamHandler)

	// Admin routes
	adminRoutes := router.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	adminRoutes.Use(middleware.RequireRole("admin"))
	adminRoutes.HandleFunc("/activities/pending", adminHandler.GetPendingActivitiesHandler).Methods("GET")
	adminRoutes.HandleFunc("/activities/{id}/verify", adminHandler.VerifyActivityHandler).Methods("POST")
	adminRoutes.HandleFunc("/categories", categoryHandler.CreateCategoryHandler).Methods("POST")
	adminRoutes.HandleFunc("/badges", adminHandler.CreateBadgeHandler).Methods("POST")
	adminRoutes.HandleFunc("/badges/award", adminHandler.AwardBadgeHandler).Methods("POST")
	adminRoutes.HandleFunc("/users", adminHandler.GetAllUsersHandler).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Background jobs
	notifier := jobs.NewDeadlineNotifier(goalService, notificationService)
	scheduler.StartCronJobs(notifier, notificationService)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
