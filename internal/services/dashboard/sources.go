package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bhavyp2311/Weather-Api/internal/integrations/landcover"
	"github.com/bhavyp2311/Weather-Api/internal/integrations/openmeteo"
	"github.com/bhavyp2311/Weather-Api/internal/integrations/soilgrids"
	"github.com/bhavyp2311/Weather-Api/internal/model"
)

// Fetcher retrieves one kind of field data for a coordinate.
type Fetcher[T any] interface {
	Fetch(ctx context.Context, coord model.Coordinate) (T, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc[T any] func(ctx context.Context, coord model.Coordinate) (T, error)

func (f FetcherFunc[T]) Fetch(ctx context.Context, coord model.Coordinate) (T, error) {
	return f(ctx, coord)
}

// Sources groups the three data sources of a fetch cycle.
type Sources struct {
	Weather   Fetcher[model.WeatherSnapshot]
	Soil      Fetcher[model.SoilProperties]
	LandCover Fetcher[model.LandCoverInfo]
}

const (
	SourceMock   = "mock"
	SourceProxy  = "proxy"
	SourceDirect = "direct"
	SourceHTTP   = "http"
)

type SourceConfig struct {
	WeatherURL string

	SoilSource   string // mock | proxy | direct
	SoilProxyURL string
	SoilGridsURL string

	LandCoverSource string // mock | http
	LandCoverURL    string

	// zero = no timeout
	HTTPTimeout time.Duration
}

// NewSources picks the implementation of each source from cfg.
func NewSources(cfg SourceConfig) (Sources, error) {
	hc := &http.Client{Timeout: cfg.HTTPTimeout}

	src := Sources{
		Weather: openmeteo.NewClient(openmeteo.WithBaseURL(orDefault(cfg.WeatherURL, openmeteo.DefaultBaseURL)), openmeteo.WithHTTPClient(hc)),
	}

	switch strings.ToLower(strings.TrimSpace(cfg.SoilSource)) {
	case "", SourceMock:
		src.Soil = soilgrids.NewFixed()
	case SourceProxy:
		if strings.TrimSpace(cfg.SoilProxyURL) == "" {
			return Sources{}, fmt.Errorf("soil source %q requires a proxy URL", SourceProxy)
		}
		src.Soil = soilgrids.NewProxyClient(cfg.SoilProxyURL, hc)
	case SourceDirect:
		src.Soil = soilgrids.NewClient(cfg.SoilGridsURL, hc)
	default:
		return Sources{}, fmt.Errorf("unknown soil source %q", cfg.SoilSource)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.LandCoverSource)) {
	case "", SourceMock:
		src.LandCover = landcover.NewFixed()
	case SourceHTTP:
		if strings.TrimSpace(cfg.LandCoverURL) == "" {
			return Sources{}, fmt.Errorf("land-cover source %q requires a URL", SourceHTTP)
		}
		src.LandCover = landcover.NewClient(cfg.LandCoverURL, hc)
	default:
		return Sources{}, fmt.Errorf("unknown land-cover source %q", cfg.LandCoverSource)
	}

	return src, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
