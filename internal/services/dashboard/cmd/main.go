package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/bhavyp2311/Weather-Api/internal/services/dashboard"
	"github.com/bhavyp2311/Weather-Api/pkg/dedup"
	"github.com/bhavyp2311/Weather-Api/pkg/rabbitmq"
)

var cfg = loadConfig()

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Field dashboard",
	Long: `Field dashboard fetches weather, soil composition and land cover
for a field position and shows them as summary cards.`,
	SilenceUsage: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&cfg.WeatherURL, "weather-url", cfg.WeatherURL, "Open-Meteo base URL")
	f.StringVar(&cfg.SoilSource, "soil-source", cfg.SoilSource, "soil data source: mock | proxy | direct")
	f.StringVar(&cfg.SoilProxyURL, "soil-proxy-url", cfg.SoilProxyURL, "soil proxy base URL")
	f.StringVar(&cfg.SoilGridsURL, "soilgrids-url", cfg.SoilGridsURL, "SoilGrids base URL")
	f.StringVar(&cfg.LandCoverSource, "landcover-source", cfg.LandCoverSource, "land-cover source: mock | http")
	f.StringVar(&cfg.LandCoverURL, "landcover-url", cfg.LandCoverURL, "land-cover endpoint")
	f.IntVar(&cfg.TimeoutMs, "timeout-ms", cfg.TimeoutMs, "upstream timeout in milliseconds, 0 = none")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newOrchestrator builds the sources selected by the flags and the orchestrator over them.
func newOrchestrator(logger *log.Logger, reg prometheus.Registerer, pub rabbitmq.IPublisher) (*dashboard.Orchestrator, *dashboard.State, error) {
	src, err := dashboard.NewSources(dashboard.SourceConfig{
		WeatherURL:      cfg.WeatherURL,
		SoilSource:      cfg.SoilSource,
		SoilProxyURL:    cfg.SoilProxyURL,
		SoilGridsURL:    cfg.SoilGridsURL,
		LandCoverSource: cfg.LandCoverSource,
		LandCoverURL:    cfg.LandCoverURL,
		HTTPTimeout:     time.Duration(cfg.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, err
	}

	var window *dedup.Window
	if pub != nil && cfg.ReportDedupSeconds > 0 {
		window = dedup.New(time.Duration(cfg.ReportDedupSeconds)*time.Second, 0)
	}

	state := dashboard.NewState()
	orch, err := dashboard.NewOrchestrator(dashboard.Config{
		Sources:   src,
		Publisher: pub,
		Dedup:     window,
		Logger:    logger,
		Registry:  reg,
	}, state)
	if err != nil {
		return nil, nil, err
	}
	return orch, state, nil
}
