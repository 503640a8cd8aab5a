package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apidoc "bikerental/api"
	"bikerental/cmd"
	api "bikerental/internal/adapters/in/http"
	"bikerental/internal/adapters/out/kafka"
	"bikerental/internal/adapters/out/postgres/wizardrepo"
	"bikerental/internal/adapters/out/redis"
	"bikerental/internal/core/domain/model/bike"
	"bikerental/internal/core/domain/model/booking"
	"bikerental/internal/core/domain/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

var rootCmd = &cobra.Command{
	Use:   "bikerental",
	Short: "Bike rental booking wizard service",
	Long: `bikerental runs the server-side booking wizard: location, bike, rental
period, drop-off partner and confirmation, followed by submission to the
rental backend.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and background jobs",
	RunE: func(c *cobra.Command, _ []string) error {
		return serve(c.Context())
	},
}

var (
	quotePerDay      int64
	quoteDeliveryFee int64
	quoteFlags       struct {
		startDate, startTime, endDate, endTime, deliveryAddress string
	}
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Compute a booking total offline",
	Example: `  bikerental quote --per-day 1000 --start-date 2024-01-01 --start-time 10:00 \
    --end-date 2024-01-03 --delivery-fee 200 --delivery-address "Main st 1"`,
	RunE: func(c *cobra.Command, _ []string) error {
		return quote(c)
	},
}

var (
	tokenUser  string
	tokenEmail string
	tokenTTL   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for local testing",
	RunE: func(c *cobra.Command, _ []string) error {
		configs, err := loadConfigs()
		if err != nil {
			return err
		}
		auth, err := api.NewJWTAuth(configs.JWTSecret, configs.LoginURL, slog.Default())
		if err != nil {
			return err
		}
		token, err := auth.Issue(tokenUser, tokenEmail, tokenTTL)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.OutOrStdout(), token)
		return err
	},
}

func init() {
	quoteCmd.Flags().Int64Var(&quotePerDay, "per-day", 0, "Daily rate in minor units (required)")
	quoteCmd.Flags().Int64Var(&quoteDeliveryFee, "delivery-fee", 0, "Delivery fee in minor units")
	quoteCmd.Flags().StringVar(&quoteFlags.startDate, "start-date", "", "Start date, YYYY-MM-DD (required)")
	quoteCmd.Flags().StringVar(&quoteFlags.startTime, "start-time", "", "Start time, HH:MM (default 00:00)")
	quoteCmd.Flags().StringVar(&quoteFlags.endDate, "end-date", "", "End date, YYYY-MM-DD (required)")
	quoteCmd.Flags().StringVar(&quoteFlags.endTime, "end-time", "", "End time, HH:MM (default 23:59)")
	quoteCmd.Flags().StringVar(&quoteFlags.deliveryAddress, "delivery-address", "", "Delivery address")
	_ = quoteCmd.MarkFlagRequired("per-day")
	_ = quoteCmd.MarkFlagRequired("start-date")
	_ = quoteCmd.MarkFlagRequired("end-date")

	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "User id (required)")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "User email")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func loadConfigs() (cmd.Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cmd.Config{}, fmt.Errorf("error loading .env file: %w", err)
	}
	return cmd.ConfigFromEnv(os.Getenv)
}

func serve(ctx context.Context) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	configs, err := loadConfigs()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	gormDB := mustGormOpen(configs.DSN())

	rdb, err := redis.Connect(ctx, configs.RedisAddr, logger)
	if err != nil {
		log.Fatalf("Redis is unavailable: %v", err)
	}
	defer rdb.Close()

	notifier, err := kafka.NewNotifier(configs.KafkaBrokers, configs.KafkaBookingCreatedTopic, logger)
	if err != nil {
		log.Fatalf("Kafka notifier: %v", err)
	}
	defer notifier.Close()

	app, err := cmd.NewCompositionRoot(configs, gormDB, rdb, notifier, logger)
	if err != nil {
		log.Fatalf("Composition failed: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	e, err := newWebServer(ctx, app)
	if err != nil {
		return fmt.Errorf("web server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(gctx, "HTTP server starting", "port", configs.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.InfoContext(shutdownCtx, "HTTP server shutting down")
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newWebServer(ctx context.Context, app *cmd.CompositionRoot) (*echo.Echo, error) {
	doc, err := api.LoadOpenAPI(ctx, apidoc.OpenAPI)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true

	metrics := api.NewMetrics()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(metrics.Middleware())
	e.Use(app.Auth().Middleware())
	e.Use(doc.ValidationMiddleware())
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	if err = doc.RegisterDocs(e); err != nil {
		return nil, err
	}

	server := api.NewServer(app.CreateHandlers(), app.Redirects())
	server.RegisterRoutes(e)
	return e, nil
}

func mustGormOpen(dsn string) *gorm.DB {
	gormDB, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Connection to postgres through gorm failed: %v", err)
	}

	if err = gormDB.AutoMigrate(&wizardrepo.WizardDTO{}); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	return gormDB
}

func quote(c *cobra.Command) error {
	var opts []bike.PricingOption
	if c.Flags().Changed("delivery-fee") {
		opts = append(opts, bike.WithDeliveryFee(quoteDeliveryFee))
	}
	pricing, err := bike.NewPricing(quotePerDay, opts...)
	if err != nil {
		return err
	}

	period, err := booking.NewRentalPeriod(
		quoteFlags.startDate, quoteFlags.startTime,
		quoteFlags.endDate, quoteFlags.endTime,
		quoteFlags.deliveryAddress,
	)
	if err != nil {
		return err
	}

	q, err := services.NewPriceCalculator().QuotePricing(pricing, period)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(c.OutOrStdout(),
		"days: %d\nper day: %d\nsubtotal: %d\ndelivery fee: %d\ntotal: %d\n",
		q.Days, q.PerDay, q.Subtotal, q.DeliveryFee, q.Total)
	return err
}
