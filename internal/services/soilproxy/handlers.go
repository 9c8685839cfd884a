package soilproxy

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bhavyp2311/Weather-Api/internal/integrations/soilgrids"
	"github.com/bhavyp2311/Weather-Api/internal/integrations/upstream"
)

func (p *Proxy) routes() {
	r := p.router
	r.Use(corsMiddleware)
	r.Use(p.logMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(p.cfg.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// GET /soil?lat=..&lon=.. ; OPTIONS is answered by corsMiddleware
	r.HandleFunc("/soil", p.handleSoil).Methods(http.MethodGet, http.MethodOptions)

	// GET /landcover?lat=..&lon=.. (only when an upstream is configured)
	if strings.TrimSpace(p.cfg.LandCoverURL) != "" {
		r.HandleFunc("/landcover", p.handleLandCover).Methods(http.MethodGet, http.MethodOptions)
	}
}

func (p *Proxy) handleSoil(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	target := soilgrids.QueryURL(p.cfg.SoilGridsBaseURL, q.Get("lat"), q.Get("lon"))
	p.relay(w, r, "soil", p.soil, target)
}

func (p *Proxy) handleLandCover(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := url.Values{}
	params.Set("lat", q.Get("lat"))
	params.Set("lon", q.Get("lon"))

	sep := "?"
	if strings.Contains(p.cfg.LandCoverURL, "?") {
		sep = "&"
	}
	p.relay(w, r, "landcover", p.landCover, p.cfg.LandCoverURL+sep+params.Encode())
}

// relay performs exactly one upstream GET and writes its JSON body back untouched
// with 200. Transport errors and non-JSON bodies become a bare 500.
func (p *Proxy) relay(w http.ResponseWriter, r *http.Request, route string, up *upstream.Upstream, target string) {
	body, err := p.fetch(r, route, up, target)
	if err != nil {
		p.cfg.Logger.Printf("GET /%s upstream failure: %v", route, err)
		p.metrics.observe(route, http.StatusInternalServerError)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	p.metrics.observe(route, http.StatusOK)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (p *Proxy) fetch(r *http.Request, route string, up *upstream.Upstream, target string) ([]byte, error) {
	start := time.Now()
	status, body, err := up.GetRaw(r.Context(), target)
	p.metrics.upstream.WithLabelValues(route).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%s upstream status %d: body is not JSON", up.Name(), status)
	}
	return body, nil
}

// corsMiddleware allows every origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (p *Proxy) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		p.cfg.Logger.Printf("%s %s [%dms]", r.Method, r.URL.RequestURI(), time.Since(start).Milliseconds())
	})
}
