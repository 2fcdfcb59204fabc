package main

import (
	"github.com/joho/godotenv"

	audithandler "tempo/internal/audit/handler"
	auditrepo "tempo/internal/audit/repository"
	auditservice "tempo/internal/audit/service"
	authhandler "tempo/internal/auth/handler"
	authservice "tempo/internal/auth/service"
	bookinghandler "tempo/internal/bookings/handler"
	bookingrepo "tempo/internal/bookings/repository"
	bookingservice "tempo/internal/bookings/service"
	bookingvalidator "tempo/internal/bookings/validator"
	userhandler "tempo/internal/users/handler"
	userrepo "tempo/internal/users/repository"
	userservice "tempo/internal/users/service"
	workspacehandler "tempo/internal/workspaces/handler"
	workspacerepo "tempo/internal/workspaces/repository"
	workspaceservice "tempo/internal/workspaces/service"
	workspacevalidator "tempo/internal/workspaces/validator"
	"tempo/pkg/app"
	"tempo/pkg/config"
	"tempo/pkg/contracts"
	"tempo/pkg/kafka"
	"tempo/pkg/token"
)

const ServiceName = "tempo"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.LogConfiguration()
	cfg.SetMongo()

	cfg.Log.Info("Starting Tempo service")

	producer := initProducer(cfg)
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)
	handlers := initHandlers(cfg, issuer, producer)

	serverApp := app.NewApplication(cfg)
	serverApp.SetProducer(producer)
	serverApp.SetApp(issuer, handlers...)
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("No Kafka brokers configured, audit events stay local")
		return nil
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.AuditEventTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize audit event producer", "error", err)
	}
	cfg.Log.Info("Audit event producer initialized", "topic", cfg.AuditEventTopic)
	return producer
}

func initHandlers(cfg *config.Config, issuer *token.Issuer, producer *kafka.Producer) []contracts.Handler {
	userRepo := userrepo.NewMongoUserRepository(cfg)
	workspaceRepo := workspacerepo.NewMongoWorkspaceRepository(cfg)
	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)
	lockRepo := bookingrepo.NewMongoBookingLockRepository(cfg)
	auditRepo := auditrepo.NewMongoAuditRepository(cfg)

	auditSvc := auditservice.NewAuditService(auditRepo, producer, cfg)
	authSvc := authservice.NewAuthService(userRepo, issuer, cfg, cfg.Log)
	userSvc := userservice.NewUserService(userRepo, cfg.Log)
	workspaceSvc := workspaceservice.NewWorkspaceService(
		workspaceRepo,
		bookingRepo,
		auditSvc,
		workspacevalidator.NewWorkspaceValidator(cfg.Log),
		cfg.Log,
	)
	bookingSvc := bookingservice.NewBookingService(
		bookingRepo,
		lockRepo,
		workspaceRepo,
		userRepo,
		auditSvc,
		bookingvalidator.NewBookingValidator(cfg.Log),
		cfg,
		cfg.Log,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		authhandler.NewAuthHandler(authSvc, cfg.Log),
		userhandler.NewUserHandler(userSvc, cfg.Log),
		workspacehandler.NewWorkspaceHandler(workspaceSvc, cfg.Log),
		bookinghandler.NewBookingHandler(bookingSvc, cfg.Log),
		audithandler.NewAuditHandler(auditSvc, cfg.Log),
	}
}
