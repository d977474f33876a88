package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"t1d-manager-api/internal/cache"
	"t1d-manager-api/internal/cgm"
	"t1d-manager-api/internal/community"
	"t1d-manager-api/internal/config"
	"t1d-manager-api/internal/handler"
	"t1d-manager-api/internal/middleware"
	"t1d-manager-api/internal/nutrition"
	"t1d-manager-api/internal/router"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting T1D Manager API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize nutrition repository based on config
	var nutritionRepo nutrition.Repository
	switch cfg.Nutrition.Type {
	case "sqlite":
		sqliteRepo, err := nutrition.NewSQLiteRepository(cfg.Nutrition.Path)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		defer sqliteRepo.Close()
		nutritionRepo = sqliteRepo
		log.Println("SQLite nutrition repository initialized")
	default: // memory
		nutritionRepo = nutrition.NewMemoryRepository()
		log.Println("In-memory nutrition repository initialized")
	}

	// Initialize cache client. A missing Redis is not fatal: search
	// results simply go uncached.
	cacheClient := cache.New(cache.Config{
		Addr:           cfg.Cache.RedisAddress(),
		Password:       cfg.Cache.RedisPassword,
		DB:             cfg.Cache.RedisDB,
		ConnectTimeout: cfg.Cache.ConnectTimeout,
		OpTimeout:      cfg.Cache.OpTimeout,
	})
	defer cacheClient.Close()
	if cacheClient.Enabled() {
		log.Println("Redis cache initialized")
	}

	// Initialize domain services
	nutritionService := nutrition.NewService(nutritionRepo)

	searchClient := community.NewClient(
		cfg.Search.NaverClientID,
		cfg.Search.NaverClientSecret,
		cfg.Search.KakaoAPIKey,
		cfg.Search.ResultCount,
	)
	communityService := community.NewService(searchClient, cacheClient, cfg.Cache.SearchTTL)

	dexcomClient := cgm.NewDexcomClient(
		cfg.Dexcom.ClientID,
		cfg.Dexcom.ClientSecret,
		cfg.Dexcom.RedirectURI,
		cfg.Dexcom.Sandbox,
	)
	nightscoutClient := cgm.NewNightscoutClient(cfg.Nightscout.URL, cfg.Nightscout.APISecret)

	// Initialize handlers
	healthHandler := handler.New(cfg.App.Name, cfg.App.Version, cacheClient)
	treatmentHandler := handler.NewTreatmentHandler()
	sickDayHandler := handler.NewSickDayHandler()
	nutritionHandler := handler.NewNutritionHandler(nutritionService)
	cgmHandler := handler.NewCGMHandler(dexcomClient, nightscoutClient)
	communityHandler := handler.NewCommunityHandler(communityService)
	adminHandler := handler.NewAdminHandler(cacheClient)

	// Create router
	r := router.New(router.Config{
		Handler:          healthHandler,
		TreatmentHandler: treatmentHandler,
		SickDayHandler:   sickDayHandler,
		NutritionHandler: nutritionHandler,
		CGMHandler:       cgmHandler,
		CommunityHandler: communityHandler,
		AdminHandler:     adminHandler,
		AdminMiddleware:  middleware.AdminAuth(cfg.App.AdminAPIKey),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
