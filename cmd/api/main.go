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

	"github.com/attendly/attendly-backend-go/internal/config"
	handler "github.com/attendly/attendly-backend-go/internal/handler/http"
	"github.com/attendly/attendly-backend-go/internal/pkg/cron"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
	"github.com/attendly/attendly-backend-go/internal/pkg/jwt"
	"github.com/attendly/attendly-backend-go/internal/pkg/oauth"
	"github.com/attendly/attendly-backend-go/internal/pkg/storage"
	"github.com/attendly/attendly-backend-go/internal/repository/postgresql"
	attendancesvc "github.com/attendly/attendly-backend-go/internal/service/attendance"
	authsvc "github.com/attendly/attendly-backend-go/internal/service/auth"
	employeesvc "github.com/attendly/attendly-backend-go/internal/service/employee"
	leavesvc "github.com/attendly/attendly-backend-go/internal/service/leave"
	payrollsvc "github.com/attendly/attendly-backend-go/internal/service/payroll"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	logger.Info("connected to database", "host", cfg.Database.Host, "name", cfg.Database.Name)

	tokens, err := jwt.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	if err != nil {
		return fmt.Errorf("failed to initialize token manager: %w", err)
	}

	files, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize file storage: %w", err)
	}

	google := oauth.NewGoogleProvider(cfg.OAuth2Google)
	location := cfg.Location()

	// Repositories
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	timeLogRepo := postgresql.NewTimeLogRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)

	// Services
	authService := authsvc.NewService(userRepo, tokens, google, logger)
	employeeService := employeesvc.NewService(db, employeeRepo, userRepo, logger)
	attendanceService, err := attendancesvc.NewService(attendanceRepo, timeLogRepo, files, cfg.Office, location, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize attendance service: %w", err)
	}
	payrollService := payrollsvc.NewService(payrollRepo, attendanceRepo, timeLogRepo, employeeRepo, location, logger)
	leaveService := leavesvc.NewService(leaveRepo, location, logger)

	// Background jobs
	autoClose, err := cron.NewAttendanceAutoCloseJob(attendanceRepo, cfg.Office, location, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize auto-close job: %w", err)
	}
	scheduler := cron.NewScheduler(time.Hour, logger)
	scheduler.Register(autoClose)
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	router := handler.NewRouter(handler.RouterConfig{
		Logger:      logger,
		TokenAuth:   tokens.Auth(),
		FrontendURL: cfg.App.FrontendURL,
		UploadsDir:  cfg.Storage.BasePath,
		Auth:        handler.NewAuthHandler(authService),
		Employee:    handler.NewEmployeeHandler(employeeService),
		Attendance:  handler.NewAttendanceHandler(attendanceService),
		Payroll:     handler.NewPayrollHandler(payrollService),
		Leave:       handler.NewLeaveHandler(leaveService),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.App.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
