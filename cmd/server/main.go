package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/6540011013-oss/Room-Status-System/internal/config"
	"github.com/6540011013-oss/Room-Status-System/internal/handler"
	"github.com/6540011013-oss/Room-Status-System/internal/logger"
	"github.com/6540011013-oss/Room-Status-System/internal/middleware"
	"github.com/6540011013-oss/Room-Status-System/internal/service"
	"github.com/6540011013-oss/Room-Status-System/internal/store"
)

const shutdownTimeout = 30 * time.Second

func main() {
	var configFile string

	rootCmd := &cobra.Command{
		Use:          "room-status",
		Short:        "Hotel room status and maintenance tracking API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), config.Load(configFile))
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (e.g. etc/config-dev.yaml)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(configFile)
			defer logger.Init(cfg.Log).Close()

			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()
			return st.Migrate(cmd.Context())
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (*store.Store, error) {
	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		return nil, err
	}
	return store.New(db), nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	defer logger.Init(cfg.Log).Close()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		slog.Error("schema migrate failed", "err", err)
		return err
	}
	if target := int64(cfg.Database.MaxAllowedPacketMB) << 20; target > 0 {
		raised, err := st.TunePacketSize(ctx, target)
		if err != nil {
			// Needs SUPER; large photos may be rejected until an admin raises it.
			slog.Warn("max_allowed_packet unchanged", "err", err)
		} else if raised {
			slog.Info("max_allowed_packet raised", "bytes", target)
		}
	}

	clock := service.SystemClock(cfg.Location())
	maintSvc := service.NewMaintenanceService(st, clock)
	roomSvc := service.NewRoomService(st, maintSvc, clock)
	refSvc := service.NewReferenceService(st)
	janitor := service.NewJanitor(st, clock, cfg.Retention.SnapshotDays, cfg.Retention.TaskDays, cfg.SweepInterval())

	apiH := handler.NewAPIHandler(refSvc, roomSvc, maintSvc, int64(cfg.Server.MaxBodyMB)<<20)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLog())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		MaxAge:       12 * time.Hour,
	}))
	r.Use(middleware.Sweep(janitor))
	apiH.Register(r)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr, "timezone", cfg.Location().String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "err", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "err", err)
		return err
	}
	slog.Info("server stopped")
	return nil
}
