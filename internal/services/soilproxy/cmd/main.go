package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/bhavyp2311/Weather-Api/internal/services/soilproxy"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig()
	logger := log.New(os.Stderr, "soilproxy: ", log.LstdFlags)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	proxy := soilproxy.NewProxy(soilproxy.Config{
		SoilGridsBaseURL: cfg.SoilGridsURL,
		LandCoverURL:     cfg.LandCoverUpstreamURL,
		HTTPTimeout:      time.Duration(cfg.TimeoutMs) * time.Millisecond,
		Logger:           logger,
		Registry:         reg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           proxy.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Printf("proxy running on port %s (upstream %s)", cfg.Port, cfg.SoilGridsURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()
	stop()

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shCtx)
	logger.Println("shutdown complete")
}
