package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/bhavyp2311/Weather-Api/internal/model"
	"github.com/bhavyp2311/Weather-Api/pkg/dedup"
	"github.com/bhavyp2311/Weather-Api/pkg/rabbitmq"
)

var (
	ErrGeolocationUnsupported = errors.New("geolocation not supported")
	ErrLocationUnavailable    = errors.New("location access denied or unavailable")
	ErrSuperseded             = errors.New("fetch cycle superseded by a newer one")
)

// User-facing alert texts.
const (
	AlertUnsupported = "Geolocation not supported"
	AlertLocation    = "Location access denied or unavailable."
)

type Config struct {
	Sources

	// Publisher receives every committed report; optional.
	Publisher rabbitmq.IPublisher
	// Dedup suppresses publishing a report identical to a recent one; optional.
	Dedup    *dedup.Window
	Logger   *log.Logger
	Registry prometheus.Registerer
	Now      func() time.Time
}

// Orchestrator runs fetch cycles against a State. Starting a cycle cancels the
// one in flight; only the newest cycle can commit or clear the loading flag.
type Orchestrator struct {
	cfg     Config
	state   *State
	metrics *metrics

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewOrchestrator(cfg Config, state *State) (*Orchestrator, error) {
	if cfg.Weather == nil || cfg.Soil == nil || cfg.LandCover == nil {
		return nil, errors.New("all three data sources are required")
	}
	if state == nil {
		return nil, errors.New("state is nil")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Orchestrator{cfg: cfg, state: state, metrics: newMetrics(cfg.Registry)}, nil
}

// FetchAllFieldData locates the device, then fetches weather, soil and land cover
// concurrently and commits them as one report. Any fetch failure leaves the
// previous data in place and is only logged.
func (o *Orchestrator) FetchAllFieldData(ctx context.Context, loc Locator) (*model.FieldReport, error) {
	if loc == nil {
		o.state.Alert(AlertUnsupported)
		o.metrics.cycles.WithLabelValues(outcomeUnsupported).Inc()
		return nil, ErrGeolocationUnsupported
	}

	gen, cctx, cancel := o.begin(ctx)
	defer cancel()
	cycleID := uuid.NewString()

	coord, err := loc.Locate(cctx)
	if err != nil {
		if !o.state.AbortWithAlert(gen, AlertLocation) {
			return nil, o.superseded(cycleID)
		}
		o.metrics.cycles.WithLabelValues(outcomeLocation).Inc()
		return nil, fmt.Errorf("%w: %v", ErrLocationUnavailable, err)
	}

	start := time.Now()
	report, err := o.fetchAll(cctx, coord)
	o.metrics.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		if !o.state.Abort(gen) {
			return nil, o.superseded(cycleID)
		}
		o.cfg.Logger.Printf("error fetching data (cycle %s): %v", cycleID, err)
		o.metrics.cycles.WithLabelValues(outcomeFailed).Inc()
		return nil, err
	}

	report.CycleID = cycleID
	report.FetchedAt = o.cfg.Now()
	if !o.state.Commit(gen, *report) {
		return nil, o.superseded(cycleID)
	}
	o.metrics.cycles.WithLabelValues(outcomeOK).Inc()
	o.cfg.Logger.Printf("cycle %s committed at (%s, %s)", cycleID, coord.LatString(), coord.LonString())

	o.publish(report)
	return report, nil
}

func (o *Orchestrator) publish(report *model.FieldReport) {
	if o.cfg.Publisher == nil {
		return
	}
	if o.cfg.Dedup != nil && !o.cfg.Dedup.First(reportKey(report)) {
		o.cfg.Logger.Printf("report %s unchanged, not published", report.CycleID)
		return
	}
	if err := o.cfg.Publisher.PublishMessage(report); err != nil {
		o.cfg.Logger.Printf("publish report %s: %v", report.CycleID, err)
	}
}

// reportKey identifies a report by its data, ignoring cycle ID and fetch time.
func reportKey(r *model.FieldReport) string {
	b, err := json.Marshal(struct {
		Coordinate model.Coordinate
		Weather    model.WeatherSnapshot
		Soil       model.SoilProperties
		LandCover  model.LandCoverInfo
	}{r.Coordinate, r.Weather, r.Soil, r.LandCover})
	if err != nil {
		return ""
	}
	return string(b)
}

// Cancel aborts the cycle in flight, if any.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
	}
}

func (o *Orchestrator) begin(parent context.Context) (uint64, context.Context, context.CancelFunc) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	o.cancel = cancel
	return o.state.Begin(), ctx, cancel
}

// fetchAll is the joint wait: the first failure cancels the other fetches.
func (o *Orchestrator) fetchAll(ctx context.Context, coord model.Coordinate) (*model.FieldReport, error) {
	r := &model.FieldReport{Coordinate: coord}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		r.Weather, err = o.cfg.Weather.Fetch(gctx, coord)
		return err
	})
	g.Go(func() (err error) {
		r.Soil, err = o.cfg.Soil.Fetch(gctx, coord)
		return err
	})
	g.Go(func() (err error) {
		r.LandCover, err = o.cfg.LandCover.Fetch(gctx, coord)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return r, nil
}

func (o *Orchestrator) superseded(cycleID string) error {
	o.cfg.Logger.Printf("cycle %s superseded", cycleID)
	o.metrics.cycles.WithLabelValues(outcomeSuperseded).Inc()
	return ErrSuperseded
}
