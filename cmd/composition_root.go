package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"smartdelivery/internal/adapters/in/http"
	"smartdelivery/internal/adapters/out/accounting"
	"smartdelivery/internal/adapters/out/fcm"
	pg "smartdelivery/internal/adapters/out/postgres"
	"smartdelivery/internal/adapters/out/postgres/sectorrepo"
	"smartdelivery/internal/core/application/usecases/commands"
	"smartdelivery/internal/core/application/usecases/queries"
	"smartdelivery/internal/core/ports"
	"smartdelivery/internal/jobs"
	"smartdelivery/internal/pkg/auth"
)

// CompositionRoot builds the object graph: database, unit-of-work factory,
// outbound adapters and every command and query handler.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *pg.GormUnitOfWorkFactory
	tokens     *auth.Tokens
	notifier   ports.Notifier
	dispatcher *commands.BatchDispatcher
	accounting ports.AccountingGateway
	logger     *slog.Logger
}

// NewCompositionRoot opens the database, runs migrations and seeds the
// default sector rules, then wires the shared collaborators.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := pg.Migrate(gormDB); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	if err := sectorrepo.SeedDefaults(ctx, gormDB); err != nil {
		return nil, fmt.Errorf("seeding sector rules: %w", err)
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret, time.Now)
	if err != nil {
		return nil, err
	}

	var notifier ports.Notifier
	if cfg.FCMCredentialsFile != "" {
		notifier, err = fcm.NewNotifier(ctx, cfg.FCMCredentialsFile, logger)
		if err != nil {
			return nil, fmt.Errorf("initializing fcm: %w", err)
		}
	} else {
		logger.WarnContext(ctx, "FCM credentials not configured, push notifications disabled")
		notifier = fcm.NewNoopNotifier(logger)
	}

	gateway := accounting.NewRetryingGateway(
		accounting.NewHTTPGateway(cfg.AccountingBaseURL, nil),
		logger,
		accounting.DefaultRetryConfig(),
	)

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: pg.NewGormUnitOfWorkFactory(gormDB),
		tokens:     tokens,
		notifier:   notifier,
		dispatcher: commands.NewBatchDispatcher(notifier, logger, time.Now),
		accounting: gateway,
		logger:     logger,
	}, nil
}

// CreateHTTPServer assembles the HTTP server with every handler wired.
func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(http.Handlers{
		Tokens: c.tokens,

		CreateOrder:      commands.NewCreateOrderCommandHandler(c.uowFactory, c.dispatcher, c.logger),
		RequestDispatch:  commands.NewRequestDispatchCommandHandler(c.uowFactory, c.dispatcher),
		AcceptOrder:      commands.NewAcceptOrderCommandHandler(c.uowFactory, c.notifier, c.logger),
		StartDelivery:    commands.NewStartDeliveryCommandHandler(c.uowFactory),
		DeliverOrder:     commands.NewDeliverOrderCommandHandler(c.uowFactory, c.accounting, c.notifier, c.logger),
		FailDelivery:     commands.NewFailDeliveryCommandHandler(c.uowFactory, c.notifier, c.logger),
		CancelOrder:      commands.NewCancelOrderCommandHandler(c.uowFactory),
		RegisterDriver:   commands.NewRegisterDriverCommandHandler(c.uowFactory),
		ReviewDriver:     commands.NewReviewDriverCommandHandler(c.uowFactory),
		UpdateLocation:   commands.NewUpdateDriverLocationCommandHandler(c.uowFactory),
		RegisterFCMToken: commands.NewRegisterFCMTokenCommandHandler(c.uowFactory),
		SetAvailability:  commands.NewSetDriverAvailabilityCommandHandler(c.uowFactory),
		RegisterSender:   commands.NewRegisterEnterpriseCommandHandler(c.uowFactory),
		RegisterPayment:  commands.NewRegisterCashPaymentCommandHandler(c.uowFactory, c.accounting, c.logger),

		Login:            queries.NewLoginQueryHandler(c.gormDB, c.tokens),
		GetOrder:         queries.NewGetOrderQueryHandler(c.gormDB),
		AvailableOrders:  queries.NewGetAvailableOrdersQueryHandler(c.gormDB),
		DriverOrders:     queries.NewGetDriverOrdersQueryHandler(c.gormDB),
		EnterpriseOrders: queries.NewGetEnterpriseOrdersQueryHandler(c.gormDB),
	})
}

// CreateJobManager assembles the background job manager.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	timeoutHandler := commands.NewProcessDispatchTimeoutsCommandHandler(c.uowFactory, c.dispatcher, c.logger)
	return jobs.NewJobManager(timeoutHandler, c.logger)
}
