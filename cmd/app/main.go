package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airticket/api"
	"github.com/Domenick1991/airticket/config"
	"github.com/Domenick1991/airticket/internal/bootstrap"
	"github.com/Domenick1991/airticket/internal/cache"
	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/repository"
	"github.com/Domenick1991/airticket/internal/service/booking"
	"github.com/Domenick1991/airticket/internal/service/flights"
	"github.com/Domenick1991/airticket/internal/service/pricing"
	"github.com/sirupsen/logrus"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	logger := bootstrap.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := repository.OpenPostgres(ctx, cfg.Database.DSN())
	if err != nil {
		logger.WithError(err).Fatal("open postgres")
	}
	defer pg.Close()

	if err := repository.InitialiseDB(ctx, pg.DB); err != nil {
		logger.WithError(err).Fatal("initialise schema")
	}

	redisClient := cache.NewRedisClient(cfg.Redis)
	defer redisClient.Close()
	redisCache := cache.NewRedisCache(
		redisClient,
		time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second,
		time.Duration(cfg.Booking.PricingCacheTTL)*time.Second,
	)

	codes := booking.NewCodeGenerator(cfg.Booking.CodePrefix)
	bookingRepo := repository.NewBookingRepository(pg.DB, codes.Generate, cfg.Booking.CodeAttempts)
	flightRepo := repository.NewFlightRepository(pg.DB)
	pricingRepo := repository.NewPricingRuleRepository(pg.DB)
	configRepo := repository.NewSystemConfigRepository(pg.DB, domain.BankConfig{
		Name:    cfg.Bank.Name,
		Account: cfg.Bank.Account,
		Branch:  cfg.Bank.Branch,
	})

	notifier, closeNotifier, err := bootstrap.NewNotifier(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("configure notifications")
	}
	defer closeNotifier()

	flightService := flights.NewFlightService(flightRepo, redisCache, logger)
	pricingService := pricing.NewPricingService(pricingRepo, redisCache, logger)
	bookingService := booking.NewBookingService(
		bookingRepo,
		flightService,
		configRepo,
		notifier,
		booking.WithLogger(logger),
		booking.WithNotifyTimeout(cfg.Notifications.Timeout()),
	)

	router := bootstrap.NewRouter(cfg, bootstrap.Handlers{
		Bookings: api.NewBookingHandler(bookingService),
		Flights:  api.NewFlightHandler(flightService),
		Pricing:  api.NewPricingHandler(pricingService),
	}, logger)

	logger.WithFields(logrus.Fields{
		"address":       cfg.HTTP.Address,
		"notifications": cfg.Notifications.Mode,
	}).Info("starting api")

	err = bootstrap.Run(ctx, cfg.HTTP.Address, router, logger)
	bookingService.Wait()
	if err != nil {
		logger.WithError(err).Error("server stopped")
		return
	}
	logger.Info("api stopped")
}
