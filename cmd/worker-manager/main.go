// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"business-advisor/internal/common/camunda"
	"business-advisor/internal/common/config"
	"business-advisor/internal/common/logger"
	"business-advisor/internal/common/metrics"
	"business-advisor/internal/common/observability"
	"business-advisor/internal/common/validation"
	"business-advisor/pkg/registry"

	srd "business-advisor/internal/workers/diagnostic/score-readiness-diagnostic"
	cmi "business-advisor/internal/workers/market/compute-market-indicators"
	cbv "business-advisor/internal/workers/valuation/calculate-business-valuation"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.NewWithOptions(logger.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{cfg.Logging.Output},
	})
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...", zap.String("environment", cfg.App.Environment))

	if err := cfg.ValidateForWorkers(); err != nil {
		zapLog.Fatal("invalid worker configuration", zap.Error(err))
	}

	obs, err := observability.New(observability.Config{
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: cfg.App.Version,
		JaegerEndpoint: cfg.Observability.JaegerEndpoint,
		SampleRatio:    cfg.Observability.SampleRatio,
	})
	if err != nil {
		zapLog.Fatal("observability setup failed", zap.Error(err))
	}
	metrics.SetJobObserver(obs.ObserveJob)
	defer func() {
		if err := obs.Shutdown(context.Background()); err != nil {
			zapLog.Warn("observability shutdown", zap.Error(err))
		}
	}()

	reg, err := registry.LoadOrDefault(cfg.RegistryPath)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.Error(err))
	}
	validator, err := validation.NewValidator(reg)
	if err != nil {
		zapLog.Fatal("activity registry schemas invalid", zap.Error(err))
	}

	multipliers, err := cfg.MultiplierTable()
	if err != nil {
		zapLog.Fatal("industry multipliers invalid", zap.Error(err))
	}

	// --- Zeebe client with retry ---
	var client *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		client, err = camunda.NewClientWithConfig(camunda.ConfigFrom(cfg.Camunda))
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully", zap.String("broker", cfg.Camunda.BrokerAddress))

	zeebeClient := client.GetClient()
	var workers []*camunda.Worker

	// --- Valuation ---
	if wcfg := config.GetWorkerConfig(cfg, cbv.TaskType); wcfg.Enabled {
		wc := cbv.LoadConfig()
		wc.Timeout = config.GetDuration(wcfg.Timeout)
		wc.Multipliers = multipliers
		handler := cbv.NewHandler(wc, validator, log)
		workers = append(workers, camunda.StartWorker(zeebeClient, cbv.TaskType, wcfg, handler.Handle, log))
	}

	// --- Diagnostic ---
	if wcfg := config.GetWorkerConfig(cfg, srd.TaskType); wcfg.Enabled {
		wc := srd.LoadConfig()
		wc.Timeout = config.GetDuration(wcfg.Timeout)
		handler := srd.NewHandler(wc, validator, log)
		workers = append(workers, camunda.StartWorker(zeebeClient, srd.TaskType, wcfg, handler.Handle, log))
	}

	// --- Market ---
	if wcfg := config.GetWorkerConfig(cfg, cmi.TaskType); wcfg.Enabled {
		wc := cmi.LoadConfig()
		wc.Timeout = config.GetDuration(wcfg.Timeout)
		handler := cmi.NewHandler(wc, validator, log)
		workers = append(workers, camunda.StartWorker(zeebeClient, cmi.TaskType, wcfg, handler.Handle, log))
	}

	zapLog.Info("workers registered", zap.Int("count", len(workers)))

	var ready atomic.Bool
	ready.Store(true)
	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           newServeMux(client, &ready),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	ready.Store(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := client.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// healthChecker is the part of the Zeebe client the readiness probe needs.
type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

func newServeMux(zeebe healthChecker, ready *atomic.Bool) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy", "")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if !ready.Load() {
			writeStatus(w, http.StatusServiceUnavailable, "shutting down", "")
			return
		}
		if err := zeebe.HealthCheck(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready", err.Error())
			return
		}
		writeStatus(w, http.StatusOK, "ready", "")
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, code int, status, detail string) {
	body := map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	}
	if detail != "" {
		body["error"] = detail
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
