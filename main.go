package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"localserve/config"
	"localserve/database"
	bookingRepo "localserve/database/repository/booking"
	catalogRepo "localserve/database/repository/catalog"
	customerRepo "localserve/database/repository/customer"
	historyRepo "localserve/database/repository/history"
	providerRepo "localserve/database/repository/provider"
	"localserve/handlers"
	"localserve/middleware"
	"localserve/routes"
	"localserve/services/auth"
	"localserve/services/booking"
	"localserve/services/notification"
	"localserve/services/pricing"
	"localserve/services/search"
	"localserve/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	stripe.Key = config.AppConfig.StripeSecretKey

	db := database.DB()

	// repositories.
	provRepo := providerRepo.NewMongoProviderRepo(db)
	histRepo := historyRepo.NewMongoHistoryRepo(db)
	custRepo := customerRepo.NewMongoCustomerRepo(db)
	catRepo := catalogRepo.NewMongoCatalogRepo(db)
	bookRepo := bookingRepo.NewMongoBookingRepo(database.MongoClient, db)

	idxCtx, idxCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer idxCancel()
	if err := provRepo.EnsureIndexes(idxCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure provider indexes: %v", err)
	}
	if err := histRepo.EnsureIndexes(idxCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure history indexes: %v", err)
	}
	if err := custRepo.EnsureIndexes(idxCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure customer indexes: %v", err)
	}

	// services.
	estimator := pricing.NewEstimator(
		config.AppConfig.BookingFee,
		config.AppConfig.MinAdvanceAmount,
		config.AppConfig.PricingFallbackRate,
		config.AppConfig.Currency,
		logger,
	)
	engine := search.NewGeoSearchEngine(provRepo, catRepo, logger)
	searchService := search.NewService(engine, histRepo, catRepo, estimator, logger)
	bookingService := booking.NewService(bookRepo, custRepo, provRepo, catRepo, estimator, logger)

	var smsGateway notification.SMSGateway
	if config.AppConfig.TwilioAccountSID != "" {
		smsGateway = notification.NewTwilioGateway(
			config.AppConfig.TwilioAccountSID,
			config.AppConfig.TwilioAuthToken,
			config.AppConfig.TwilioFromNumber,
		)
	} else {
		smsGateway = &notification.LogGateway{Logger: logger}
	}

	otpService := auth.NewOTPService(
		auth.NewRedisOTPStore(utils.GetOTPCacheClient()),
		smsGateway,
		logger,
		config.AppConfig.OTPRequestsPerHour,
		config.AppConfig.OTPMaxAttempts,
		time.Duration(config.AppConfig.OTPTTLMinutes)*time.Minute,
	)
	tokenIssuer := auth.NewJWTIssuer(config.AppConfig.JWTSecret, 24*time.Hour)
	verification := auth.NewVerificationService(otpService, custRepo, searchService, tokenIssuer, logger)

	catalogHandlers := handlers.NewCatalogHandlers(catRepo)
	hb := handlers.NewHandlerBundle(searchService, bookingService, verification, catalogHandlers)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.MetricsMiddleware())

	routes.RegisterRoutes(router, hb, tokenIssuer)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("main: listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
	if err := database.MongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: mongo disconnect: %v", err)
	}
}
