package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mahfuzhasan/officer-registry/internal"
	"github.com/mahfuzhasan/officer-registry/internal/audit"
	auditPostgres "github.com/mahfuzhasan/officer-registry/internal/audit/postgres"
	"github.com/mahfuzhasan/officer-registry/internal/auth"
	authPostgres "github.com/mahfuzhasan/officer-registry/internal/auth/postgres"
	"github.com/mahfuzhasan/officer-registry/internal/core/events"
	"github.com/mahfuzhasan/officer-registry/internal/office"
	officePostgres "github.com/mahfuzhasan/officer-registry/internal/office/postgres"
	"github.com/mahfuzhasan/officer-registry/internal/officer"
	officerPostgres "github.com/mahfuzhasan/officer-registry/internal/officer/postgres"
	"github.com/mahfuzhasan/officer-registry/internal/transport"
	"github.com/mahfuzhasan/officer-registry/internal/transport/rest"
	"github.com/mahfuzhasan/officer-registry/internal/unmask"
	unmaskPostgres "github.com/mahfuzhasan/officer-registry/internal/unmask/postgres"
	"github.com/mahfuzhasan/officer-registry/internal/user"
	userPostgres "github.com/mahfuzhasan/officer-registry/internal/user/postgres"
	"github.com/mahfuzhasan/officer-registry/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger

	EventBus      *events.EventBus
	UnmaskService *unmask.Service
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Observability.Logging.Format == "json" {
		logger.Init("production")
	} else {
		logger.Init("development")
	}
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	eventBus := events.NewEventBus(lg)
	subscribeUnmaskNotifier(eventBus, lg)

	// repositories
	authRepo := authPostgres.NewRepository(gormDB)
	userRepo := userPostgres.NewRepository(db)
	officerRepo := officerPostgres.NewOfficerRepository(gormDB)
	officeRepo := officePostgres.NewOfficeRepository(gormDB)
	auditRepo := auditPostgres.NewAuditRepository(gormDB)
	unmaskRepo := unmaskPostgres.NewUnmaskRepository(gormDB)

	// services
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.JWTAccessSecret,
		config.Security.JWTRefreshSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost)
	userService := user.NewService(userRepo)
	officeService := office.NewService(officeRepo, lg)
	auditService := audit.NewService(auditRepo, config.Privacy.AuditTrailLimit, lg)
	unmaskService := unmask.NewService(
		unmaskRepo,
		officer.NewSubjectSource(officerRepo),
		eventBus,
		config.Privacy.DefaultUnmaskTTL(),
		config.Privacy.MaxUnmaskTTL(),
		lg,
	)
	officerService := officer.NewService(officerRepo, auditService, unmaskService, lg)

	// handlers
	baseHandler := transport.NewBaseHandler(lg)
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	officeHandler := office.NewHandler(baseHandler, officeService)
	officerHandler := officer.NewHandler(officerService)
	unmaskHandler := unmask.NewHandler(unmaskService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.RouterDeps{
		DB:             db.DB,
		AuthHandler:    authHandler,
		UserHandler:    userHandler,
		OfficerHandler: officerHandler,
		OfficeHandler:  officeHandler,
		UnmaskHandler:  unmaskHandler,
		RoleAuth:       auth.NewRoleAuthorization(lg),
		MetricsEnabled: config.Observability.Metrics.Enabled,
		Logger:         lg,
	})

	return &Dependencies{
		Config:        config,
		Logger:        lg,
		DB:            db,
		Router:        router,
		EventBus:      eventBus,
		UnmaskService: unmaskService,
	}, nil
}

// subscribeUnmaskNotifier logs every unmask lifecycle event. Payloads
// carry ids only, never field values, so these lines are safe for any
// log sink.
func subscribeUnmaskNotifier(bus *events.EventBus, lg *slog.Logger) {
	handler := func(ctx context.Context, event events.Event) error {
		lg.Info("unmask lifecycle event",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	}

	bus.Subscribe(events.EventTypeUnmaskRequested, handler)
	bus.Subscribe(events.EventTypeUnmaskApproved, handler)
	bus.Subscribe(events.EventTypeUnmaskDenied, handler)
	bus.Subscribe(events.EventTypeUnmaskExpired, handler)
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the already-pooled pgx connection so both
// stacks share one pool.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
}
