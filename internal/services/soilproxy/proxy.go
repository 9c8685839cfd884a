package soilproxy

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bhavyp2311/Weather-Api/internal/integrations/soilgrids"
	"github.com/bhavyp2311/Weather-Api/internal/integrations/upstream"
)

type Config struct {
	SoilGridsBaseURL string
	// LandCoverURL enables GET /landcover when set.
	LandCoverURL string
	// HTTPTimeout bounds each upstream call; zero means no timeout.
	HTTPTimeout time.Duration

	Logger   *log.Logger
	Registry *prometheus.Registry
}

// Proxy relays coordinate queries to the soil upstreams. It holds no per-request state.
type Proxy struct {
	cfg       Config
	soil      *upstream.Upstream
	landCover *upstream.Upstream
	metrics   *metrics
	router    *mux.Router
}

func NewProxy(cfg Config) *Proxy {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if strings.TrimSpace(cfg.SoilGridsBaseURL) == "" {
		cfg.SoilGridsBaseURL = soilgrids.DefaultBaseURL
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}

	hc := &http.Client{Timeout: cfg.HTTPTimeout}
	p := &Proxy{
		cfg:       cfg,
		soil:      upstream.NewWithClient("soilgrids", hc),
		landCover: upstream.NewWithClient("landcover", hc),
		metrics:   newMetrics(cfg.Registry),
		router:    mux.NewRouter(),
	}
	p.routes()
	return p
}

func (p *Proxy) Router() http.Handler { return p.router }
