package config

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"support-desk-api/config/common"
	"support-desk-api/config/logger"
	"support-desk-api/event"
	"support-desk-api/handler"
	"support-desk-api/middleware"
	"support-desk-api/repository"
	"support-desk-api/routes"
	"support-desk-api/security"
	"support-desk-api/usecase"
)

type AppConfig struct {
	*fiber.App
	*validator.Validate
	*logrus.Logger
	*common.Config
	*security.JWT
	DB        *gorm.DB
	AppLogger *logger.AppLogger
	Publisher event.Publisher
}

func RunServer() {
	newConfig := common.NewViper()
	log := NewLogger()
	logDir, logLevel, logConsole := newConfig.GetLogConfig()
	appLogger := logger.NewLogger(logger.Options{Dir: logDir, Level: logLevel, Console: logConsole})
	app := NewFiber(newConfig, log)
	newDB := NewDB(newConfig, appLogger)
	newValidator := common.NewValidator()
	newJWT := security.NewJWT(newConfig)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	publisher := NewPublisher(ctx, newConfig, appLogger)

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     newConfig.GetCorsOrigins(),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	notifier := App(&AppConfig{
		App:       app,
		Validate:  newValidator,
		Logger:    log,
		Config:    newConfig,
		JWT:       newJWT,
		DB:        newDB.GetDB(),
		AppLogger: appLogger,
		Publisher: publisher,
	})

	go func() {
		<-ctx.Done()
		log.Info("Shutting down server")
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Failed to shut down server")
		}
	}()

	if err := app.Listen(newConfig.GetListenAddr()); err != nil {
		log.WithError(err).Errorf("Failed to start server: %v", err)
	}
	if err := notifier.Close(); err != nil {
		log.WithError(err).Error("Failed to close event sinks")
	}
}

// NewPublisher connects to the broker, or returns a no-op publisher when
// AMQP_URL is unset or unreachable.
func NewPublisher(ctx context.Context, cfg *common.Config, log *logger.AppLogger) event.Publisher {
	url, exchange, attempts, delay := cfg.GetBrokerConfig()
	if url == "" {
		log.Event.Warning.Warn().Msg("AMQP_URL not set, events are only delivered over websocket")
		return event.NopPublisher{}
	}
	publisher, err := event.NewRabbitPublisher(ctx, event.ConnectionOptions{
		URL:            url,
		Exchange:       exchange,
		RetryAttempts:  attempts,
		Delay:          delay,
		PublishTimeout: cfg.GetBrokerPublishTimeout(),
		Log:            log,
	})
	if err != nil {
		log.Event.Error.Error().Err(err).Msg("failed to connect to broker, events are only delivered over websocket")
		return event.NopPublisher{}
	}
	return publisher
}

// App wires repositories, usecases, handlers and routes onto aC.App and
// returns the notifier so the caller can close its sinks.
func App(aC *AppConfig) *event.Notifier {
	newUserRepository := repository.NewUserRepository()
	newOTPRepository := repository.NewOTPRepository()
	newAgentRepository := repository.NewAgentRepository()
	newChatRepository := repository.NewChatRepository()
	newTransactionRepository := repository.NewTransactionRepository()

	hub := event.NewHub(aC.AppLogger)
	notifier := event.NewNotifier(aC.AppLogger, aC.Publisher, hub)

	newAuthUsecase := usecase.NewAuthUsecase(newUserRepository, newOTPRepository, aC.Validate, aC.DB, aC.JWT, aC.Config, aC.AppLogger, notifier)
	newChatUsecase := usecase.NewChatUsecase(newChatRepository, newAgentRepository, aC.Validate, aC.DB, aC.AppLogger, notifier)
	newTransactionUsecase := usecase.NewTransactionUsecase(newTransactionRepository, newChatRepository, aC.Validate, aC.DB, aC.AppLogger, notifier)

	route := routes.ConfigRoute{
		App:                aC.App,
		Middleware:         middleware.NewMiddleware(aC.Config, newUserRepository, aC.DB, aC.Logger),
		AuthHandler:        handler.NewAuthHandler(newAuthUsecase, aC.Config, aC.Logger),
		ChatHandler:        handler.NewChatHandler(newChatUsecase, aC.Logger),
		TransactionHandler: handler.NewTransactionHandler(newTransactionUsecase, aC.Logger),
	}
	route.GetRoute()
	route.GetWebSocketRoute(hub)
	return notifier
}
