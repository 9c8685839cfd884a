package dashboard

import (
	"context"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bhavyp2311/Weather-Api/internal/integrations/landcover"
	"github.com/bhavyp2311/Weather-Api/internal/integrations/soilgrids"
	"github.com/bhavyp2311/Weather-Api/internal/model"
)

var fixedNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

// MockPublisher records published reports.
type MockPublisher struct {
	mu       sync.Mutex
	messages []interface{}
	err      error
}

func (p *MockPublisher) PublishMessage(message interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, message)
	return p.err
}

func (p *MockPublisher) Close() {}

func (p *MockPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages)
}

// counting wraps a fetcher and counts calls.
type counting[T any] struct {
	calls int32
	next  Fetcher[T]
}

func (c *counting[T]) Fetch(ctx context.Context, coord model.Coordinate) (T, error) {
	atomic.AddInt32(&c.calls, 1)
	return c.next.Fetch(ctx, coord)
}

func (c *counting[T]) Calls() int { return int(atomic.LoadInt32(&c.calls)) }

func staticWeather(w model.WeatherSnapshot) Fetcher[model.WeatherSnapshot] {
	return FetcherFunc[model.WeatherSnapshot](func(context.Context, model.Coordinate) (model.WeatherSnapshot, error) {
		return w, nil
	})
}

func defaultSources() Sources {
	return Sources{
		Weather:   staticWeather(model.WeatherSnapshot{Temperature: 28, WindSpeed: 10, WindDirection: 200}),
		Soil:      soilgrids.NewFixed(),
		LandCover: landcover.NewFixed(),
	}
}

func newTestOrchestrator(t *testing.T, src Sources, pub *MockPublisher) (*Orchestrator, *State, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	st := NewState()
	cfg := Config{
		Sources:  src,
		Logger:   quietLogger(),
		Registry: reg,
		Now:      func() time.Time { return fixedNow },
	}
	if pub != nil {
		cfg.Publisher = pub
	}
	o, err := NewOrchestrator(cfg, st)
	if err != nil {
		t.Fatalf("NewOrchestrator failed: %v", err)
	}
	return o, st, reg
}

func fixedSoil(t *testing.T) model.SoilProperties {
	t.Helper()
	soil, err := soilgrids.NewFixed().Fetch(context.Background(), model.Coordinate{})
	if err != nil {
		t.Fatalf("fixed soil: %v", err)
	}
	return soil
}

// cycleCount reads dashboard_fetch_cycles_total for one outcome from reg.
func cycleCount(t *testing.T, reg *prometheus.Registry, outcome string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "dashboard_fetch_cycles_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "outcome" && lp.GetValue() == outcome {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
