// File: shopdesk/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"shopdesk/config"
	"shopdesk/database"
	appointmentRepo "shopdesk/database/repository/appointment"
	"shopdesk/handlers"
	"shopdesk/middleware"
	"shopdesk/routes"
	"shopdesk/services/calendar"
	"shopdesk/services/catalog"
	ai "shopdesk/services/intelligence"
	"shopdesk/services/receptionist"
	"shopdesk/services/scheduler"
	sessionStore "shopdesk/services/session"
	"shopdesk/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.GetLogger().Sugar().Fatalf("main: %v", err)
	}
	utils.InitializeLogger(cfg.IsProduction())
	logger := utils.GetLogger()

	loc, err := time.LoadLocation(cfg.ShopTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid shop timezone: %v", err)
	}

	// Static vehicle catalog, read once for the process lifetime.
	vehicleCatalog, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load vehicle catalog: %v", err)
	}

	redisClient, err := utils.NewSessionCacheClient(cfg)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	sessions := sessionStore.NewRedisStore(redisClient, cfg.SessionTTL())

	ctx := context.Background()
	calendarSvc, err := calendar.NewGoogleCalendarService(ctx, cfg.GoogleCredentialsPath)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar service: %v", err)
	}

	chatSvc, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
	}

	// Appointment records are optional; without a database the calendar is
	// still the scheduling source of truth.
	var apptRepo appointmentRepo.AppointmentRepository
	var apptHandler *handlers.AppointmentHandler
	if cfg.DatabaseURL != "" {
		mongoClient, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		apptRepo = appointmentRepo.NewMongoAppointmentRepo(mongoClient)
		apptHandler = handlers.NewAppointmentHandler(apptRepo)
		utils.StartHealthMonitor(redisClient, mongoClient)
	} else {
		logger.Sugar().Info("main: DATABASE_URL unset, appointment records disabled")
		utils.StartHealthMonitor(redisClient, nil)
	}

	parser := scheduler.NewNaturalDateParser(loc)
	planner := scheduler.NewPlanner(calendarSvc, cfg.CalendarID, loc, parser)

	receptionistSvc := &receptionist.DefaultReceptionistService{
		Catalog:      vehicleCatalog,
		Planner:      planner,
		Calendar:     calendarSvc,
		CalendarID:   cfg.CalendarID,
		Timezone:     cfg.ShopTimezone,
		Chat:         chatSvc,
		Sessions:     sessions,
		Appointments: apptRepo,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	chatHandler := handlers.NewChatHandler(receptionistSvc)
	routes.RegisterRoutes(router, chatHandler, apptHandler)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
