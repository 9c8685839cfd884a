package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/bhavyp2311/Weather-Api/internal/model"
	"github.com/bhavyp2311/Weather-Api/internal/services/dashboard"
	"github.com/bhavyp2311/Weather-Api/pkg/rabbitmq"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard page and API",
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&cfg.Port, "port", cfg.Port, "listen port")
	f.StringVar(&cfg.FieldLat, "field-lat", cfg.FieldLat, "fallback latitude when the browser sends no position")
	f.StringVar(&cfg.FieldLon, "field-lon", cfg.FieldLon, "fallback longitude when the browser sends no position")
	f.StringVar(&cfg.MQTTHost, "mqtt-host", cfg.MQTTHost, "broker host for field reports, empty = disabled")
	f.StringVar(&cfg.MQTTTopic, "mqtt-topic", cfg.MQTTTopic, "topic for field reports")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := log.New(os.Stderr, "dashboard: ", log.LstdFlags)

	fallback, err := fallbackLocator()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var pub rabbitmq.IPublisher
	if cfg.MQTTHost != "" {
		client, err := rabbitmq.NewRabbitMQConn(ctx, &rabbitmq.RabbitMQConfig{
			Host:     cfg.MQTTHost,
			Port:     cfg.MQTTPort,
			User:     cfg.MQTTUser,
			Password: cfg.MQTTPassword,
			ClientID: cfg.MQTTClientID,
			Logger:   logger,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to MQTT broker: %w", err)
		}
		p := rabbitmq.NewPublisher(client, cfg.MQTTTopic, logger)
		defer p.Close()
		pub = p
		logger.Printf("publishing field reports on %s", cfg.MQTTTopic)
	}

	orch, state, err := newOrchestrator(logger, reg, pub)
	if err != nil {
		return err
	}
	defer orch.Cancel()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           dashboard.NewServer(orch, state, fallback, reg, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("dashboard running on port %s (soil=%s, landcover=%s)", cfg.Port, cfg.SoilSource, cfg.LandCoverSource)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
	case <-ctx.Done():
	}

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shCtx)
	logger.Println("shutdown complete")
	return nil
}

// fallbackLocator returns nil unless both FIELD_LAT and FIELD_LON are set.
func fallbackLocator() (dashboard.Locator, error) {
	if cfg.FieldLat == "" || cfg.FieldLon == "" {
		return nil, nil
	}
	coord, err := parseCoordinate(cfg.FieldLat, cfg.FieldLon)
	if err != nil {
		return nil, err
	}
	return dashboard.StaticLocator(coord), nil
}

func parseCoordinate(lat, lon string) (model.Coordinate, error) {
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("invalid latitude %q: %w", lat, err)
	}
	lo, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("invalid longitude %q: %w", lon, err)
	}
	return model.Coordinate{Latitude: la, Longitude: lo}, nil
}
