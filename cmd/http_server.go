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

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/rootslab/opsfinance/internal"
	"github.com/rootslab/opsfinance/internal/auth"
	authPostgres "github.com/rootslab/opsfinance/internal/auth/postgres"
	"github.com/rootslab/opsfinance/internal/budget"
	budgetPostgres "github.com/rootslab/opsfinance/internal/budget/postgres"
	"github.com/rootslab/opsfinance/internal/core/events"
	"github.com/rootslab/opsfinance/internal/dashboard"
	"github.com/rootslab/opsfinance/internal/expense"
	expensePostgres "github.com/rootslab/opsfinance/internal/expense/postgres"
	"github.com/rootslab/opsfinance/internal/overtime"
	overtimePostgres "github.com/rootslab/opsfinance/internal/overtime/postgres"
	"github.com/rootslab/opsfinance/internal/report"
	"github.com/rootslab/opsfinance/internal/session"
	"github.com/rootslab/opsfinance/internal/transport/rest"
	"github.com/rootslab/opsfinance/pkg/logger"
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
	Guard  *session.Guard
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		deps.Guard.Close()
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	env := "development"
	if config.Logging.Format == "json" {
		env = "production"
	}
	logger.Init(env)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// GORM rides on the same pgx connection pool the health check pings
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	bus := events.NewEventBus(lg)
	events.RegisterAuditSubscriber(bus, lg)

	guard := session.NewGuard(config.Security.SessionIdleTimeout, func(sessionID string) {
		lg.Info("session signed out after idle timeout", "session_id", sessionID)
	}, lg)

	tokens := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenTTL,
		config.Security.RefreshTokenTTL,
	)

	authService := auth.NewService(authPostgres.NewUserRepository(gormDB), tokens, guard, config.Security.BCryptCost, lg)
	expenseService := expense.NewService(expensePostgres.NewExpenseRepository(gormDB), bus, lg)
	overtimeService := overtime.NewService(overtimePostgres.NewOvertimeRepository(gormDB), bus, lg)
	budgetService := budget.NewService(budgetPostgres.NewBudgetRepository(gormDB), bus, lg)
	dashboardService := dashboard.NewService(expenseService, overtimeService, budgetService, lg)
	reportService := report.NewService(expenseService, overtimeService, budgetService, lg)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, rest.Handlers{
		Auth:      auth.NewHandler(authService),
		Expense:   expense.NewHandler(expenseService),
		Overtime:  overtime.NewHandler(overtimeService),
		Budget:    budget.NewHandler(budgetService),
		Dashboard: dashboard.NewHandler(dashboardService),
		Report:    report.NewHandler(reportService),
	}, config.Server.AllowedOrigins, lg)

	return &Dependencies{
		Config: config,
		DB:     db,
		Router: router,
		Guard:  guard,
		Logger: lg,
	}, nil
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

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
