// Package soilgrids talks to the ISRIC SoilGrids v2.0 properties API, either
// directly or through the soil proxy, and provides a fixed-value stand-in.
package soilgrids

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/bhavyp2311/Weather-Api/internal/integrations/upstream"
	"github.com/bhavyp2311/Weather-Api/internal/model"
)

const (
	DefaultBaseURL = "https://rest.isric.org"
	QueryPath      = "/soilgrids/v2.0/properties/query"
)

// QueryURL builds the upstream properties query for raw lat/lon strings.
// The values are only escaped, never parsed, so whatever the caller sent reaches SoilGrids.
func QueryURL(base, lat, lon string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	b.WriteString(QueryPath)
	b.WriteString("?latitude=")
	b.WriteString(url.QueryEscape(lat))
	b.WriteString("&longitude=")
	b.WriteString(url.QueryEscape(lon))
	b.WriteString("&property=")
	b.WriteString(strings.Join(model.SoilPropertyNames, ","))
	b.WriteString("&depth=")
	b.WriteString(model.SoilDepthBand)
	b.WriteString("&value=mean")
	return b.String()
}

// Client queries SoilGrids directly.
type Client struct {
	baseURL string
	up      *upstream.Upstream
}

func NewClient(baseURL string, hc *http.Client) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: baseURL, up: upstream.NewWithClient("soilgrids", hc)}
}

func (c *Client) Fetch(ctx context.Context, coord model.Coordinate) (model.SoilProperties, error) {
	var out model.SoilProperties
	if err := c.up.GetJSON(ctx, QueryURL(c.baseURL, coord.LatString(), coord.LonString()), &out); err != nil {
		return model.SoilProperties{}, err
	}
	return out, nil
}

// ProxyClient fetches soil properties through the soil proxy's GET /soil.
type ProxyClient struct {
	baseURL string
	up      *upstream.Upstream
}

func NewProxyClient(proxyURL string, hc *http.Client) *ProxyClient {
	return &ProxyClient{
		baseURL: strings.TrimRight(strings.TrimSpace(proxyURL), "/"),
		up:      upstream.NewWithClient("soil-proxy", hc),
	}
}

func (c *ProxyClient) Fetch(ctx context.Context, coord model.Coordinate) (model.SoilProperties, error) {
	q := url.Values{}
	q.Set("lat", coord.LatString())
	q.Set("lon", coord.LonString())

	var out model.SoilProperties
	if err := c.up.GetJSON(ctx, c.baseURL+"/soil?"+q.Encode(), &out); err != nil {
		return model.SoilProperties{}, err
	}
	return out, nil
}
