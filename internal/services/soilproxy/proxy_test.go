package soilproxy

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

const soilBody = `{"type":"Feature","properties":{"layers":[{"name":"nitrogen","depths":[{"label":"0-5cm","values":{"mean":1.2}}]}]}}`

func newTestProxy(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	cfg.Logger = log.New(io.Discard, "", 0)
	ts := httptest.NewServer(NewProxy(cfg).Router())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, string(b)
}

func TestSoil_RelaysUpstreamBody(t *testing.T) {
	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Path != "/soilgrids/v2.0/properties/query" {
			t.Errorf("Unexpected upstream path %s", r.URL.Path)
		}
		q := r.URL.Query()
		expected := map[string]string{
			"latitude":  "12.9",
			"longitude": "77.6",
			"property":  "phh2o,nitrogen,phosphorus,potassium",
			"depth":     "0-5cm",
			"value":     "mean",
		}
		for k, v := range expected {
			if q.Get(k) != v {
				t.Errorf("Expected upstream %s=%q, got %q", k, v, q.Get(k))
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(soilBody))
	}))
	defer upstream.Close()

	ts := newTestProxy(t, Config{SoilGridsBaseURL: upstream.URL})
	resp, body := get(t, ts.URL+"/soil?lat=12.9&lon=77.6")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if body != soilBody {
		t.Errorf("Expected body relayed unchanged, got %s", body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}
	if origin := resp.Header.Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("Expected CORS origin *, got %q", origin)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("Expected exactly 1 upstream call, got %d", n)
	}
}

func TestSoil_PassesParametersThrough(t *testing.T) {
	var gotLat, gotLon string
	var hasLon bool
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLat = r.URL.Query().Get("latitude")
		gotLon = r.URL.Query().Get("longitude")
		_, hasLon = r.URL.Query()["longitude"]
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"loc":["query","latitude"],"msg":"value is not a valid float"}]}`))
	}))
	defer upstream.Close()

	ts := newTestProxy(t, Config{SoilGridsBaseURL: upstream.URL})
	resp, body := get(t, ts.URL+"/soil?lat=north")

	if gotLat != "north" {
		t.Errorf("Expected malformed lat forwarded as-is, got %q", gotLat)
	}
	if !hasLon || gotLon != "" {
		t.Errorf("Expected missing lon forwarded empty, got %q (present=%v)", gotLon, hasLon)
	}
	// the upstream JSON error is relayed like any other JSON document
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "not a valid float") {
		t.Errorf("Expected upstream error body, got %s", body)
	}
}

func TestSoil_UpstreamUnreachable(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	url := upstream.URL
	upstream.Close()

	ts := newTestProxy(t, Config{SoilGridsBaseURL: url})
	resp, body := get(t, ts.URL+"/soil?lat=1&lon=2")

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", resp.StatusCode)
	}
	if strings.Contains(body, "{") {
		t.Errorf("Expected no partial JSON in failure response, got %s", body)
	}
}

func TestSoil_NonJSONUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>Bad Gateway</html>"))
	}))
	defer upstream.Close()

	ts := newTestProxy(t, Config{SoilGridsBaseURL: upstream.URL})
	resp, _ := get(t, ts.URL+"/soil?lat=1&lon=2")

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", resp.StatusCode)
	}
}

func TestPreflight(t *testing.T) {
	ts := newTestProxy(t, Config{SoilGridsBaseURL: "http://127.0.0.1:1"})

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/soil", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS header on preflight")
	}
}

func TestLandCover(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lat") != "12.9" || r.URL.Query().Get("lon") != "77.6" {
			t.Errorf("Unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"texture":"Clay Loam","depth":"0–30 cm","carbon":"High (1.1%)"}`))
	}))
	defer upstream.Close()

	t.Run("not configured", func(t *testing.T) {
		ts := newTestProxy(t, Config{})
		resp, _ := get(t, ts.URL+"/landcover?lat=12.9&lon=77.6")
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("configured", func(t *testing.T) {
		ts := newTestProxy(t, Config{LandCoverURL: upstream.URL})
		resp, body := get(t, ts.URL+"/landcover?lat=12.9&lon=77.6")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		if !strings.Contains(body, "Clay Loam") {
			t.Errorf("Expected land-cover body, got %s", body)
		}
	})
}

func TestHealthAndMetrics(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(soilBody))
	}))
	defer upstream.Close()

	ts := newTestProxy(t, Config{SoilGridsBaseURL: upstream.URL})

	if resp, body := get(t, ts.URL+"/healthz"); resp.StatusCode != http.StatusOK || body != "ok" {
		t.Errorf("Expected healthz ok, got %d %q", resp.StatusCode, body)
	}

	get(t, ts.URL+"/soil?lat=1&lon=2")
	_, body := get(t, ts.URL+"/metrics")
	if !strings.Contains(body, `soilproxy_requests_total{code="200",route="soil"} 1`) {
		t.Errorf("Expected request counter in metrics, got:\n%s", body)
	}
}
