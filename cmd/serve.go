package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Rorical/RoriStake/internal/api"
	"github.com/Rorical/RoriStake/internal/config"
	"github.com/Rorical/RoriStake/internal/ledger"
	"github.com/Rorical/RoriStake/internal/logger"
)

var (
	serveAddr        string
	serveMetricsAddr string
	serveRedisAddr   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a reference staking endpoint",
	Long:  `Serve POST /api/chain/stake backed by an in-memory or Redis ledger, with /metrics and /healthz on a separate port.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		applyServeFlags(cmd, &cfg.Server)

		log, err := logger.New("roristake-serve", cfg.Server.Env, "")
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer log.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg.Server, log)
	},
}

func applyServeFlags(cmd *cobra.Command, sc *config.ServerConfig) {
	if cmd.Flags().Changed("addr") {
		sc.Addr = serveAddr
	}
	if cmd.Flags().Changed("metrics-addr") {
		sc.MetricsAddr = serveMetricsAddr
	}
	if cmd.Flags().Changed("redis") {
		sc.RedisAddr = serveRedisAddr
	}
}

func serve(ctx context.Context, sc config.ServerConfig, log *zap.Logger) error {
	log.Info("starting service", zap.String("addr", sc.Addr), zap.String("metrics_addr", sc.MetricsAddr))

	var (
		l      ledger.Ledger
		health api.HealthFunc
	)
	if sc.RedisAddr != "" {
		rdb, err := ledger.ConnectRedis(ctx, sc.RedisAddr)
		if err != nil {
			return fmt.Errorf("redis connect: %w", err)
		}
		defer rdb.Close()
		redisLedger := ledger.NewRedis(rdb, "")
		l, health = redisLedger, redisLedger.Ping
		log.Info("using redis ledger", zap.String("redis_addr", sc.RedisAddr))
	} else {
		l = ledger.NewMemory()
		log.Info("using in-memory ledger")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := api.NewMetrics(reg)

	apiSrv := &http.Server{Addr: sc.Addr, Handler: api.NewServer(log, l, metrics).Router()}
	metricsSrv := &http.Server{Addr: sc.MetricsAddr, Handler: api.MetricsHandler(reg, health)}

	errCh := make(chan error, 2)
	go func() {
		log.Info("metrics/health listening", zap.String("addr", metricsSrv.Addr))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics srv: %w", err)
		}
	}()
	go func() {
		log.Info("api listening", zap.String("addr", apiSrv.Addr))
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("api srv: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		log.Error("server failed", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = apiSrv.Shutdown(shutdownCtx)
	_ = metricsSrv.Shutdown(shutdownCtx)
	log.Info("stopped")
	return runErr
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8000", "API listen address")
	serveCmd.Flags().StringVar(&serveMetricsAddr, "metrics-addr", ":9095", "metrics and health listen address")
	serveCmd.Flags().StringVar(&serveRedisAddr, "redis", "", "Redis address; empty keeps stakes in memory")
	rootCmd.AddCommand(serveCmd)
}
