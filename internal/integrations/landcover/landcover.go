// Package landcover provides land-cover descriptors for a coordinate.
package landcover

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/bhavyp2311/Weather-Api/internal/integrations/upstream"
	"github.com/bhavyp2311/Weather-Api/internal/model"
)

// Client reads land-cover data from an HTTP endpoint answering
// GET {url}?lat=..&lon=.. with {"texture","depth","carbon"}; the soil proxy's
// /landcover route has this shape.
type Client struct {
	endpoint string
	up       *upstream.Upstream
}

func NewClient(endpoint string, hc *http.Client) *Client {
	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		up:       upstream.NewWithClient("landcover", hc),
	}
}

func (c *Client) Fetch(ctx context.Context, coord model.Coordinate) (model.LandCoverInfo, error) {
	q := url.Values{}
	q.Set("lat", coord.LatString())
	q.Set("lon", coord.LonString())

	sep := "?"
	if strings.Contains(c.endpoint, "?") {
		sep = "&"
	}

	var out model.LandCoverInfo
	if err := c.up.GetJSON(ctx, c.endpoint+sep+q.Encode(), &out); err != nil {
		return model.LandCoverInfo{}, err
	}
	return out, nil
}

// Fixed returns the same descriptors for every coordinate.
type Fixed struct {
	Info model.LandCoverInfo
}

func NewFixed() *Fixed {
	return &Fixed{Info: model.LandCoverInfo{
		Texture:     "Clay Loam",
		Depth:       "0–30 cm",
		CarbonLevel: "High (1.1%)",
	}}
}

func (f *Fixed) Fetch(_ context.Context, _ model.Coordinate) (model.LandCoverInfo, error) {
	return f.Info, nil
}
