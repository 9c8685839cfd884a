// Package openmeteo fetches current conditions from the public Open-Meteo forecast API.
package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bhavyp2311/Weather-Api/internal/integrations/upstream"
	"github.com/bhavyp2311/Weather-Api/internal/model"
)

const DefaultBaseURL = "https://api.open-meteo.com"

var ErrNoCurrentWeather = errors.New("open-meteo: response has no current_weather")

type forecastResp struct {
	CurrentWeather *model.WeatherSnapshot `json:"current_weather"`
}

type Client struct {
	baseURL string
	up      *upstream.Upstream
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(strings.TrimSpace(u), "/") }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.up = upstream.NewWithClient("open-meteo", hc) }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		up:      upstream.New("open-meteo", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the current weather at coord.
func (c *Client) Fetch(ctx context.Context, coord model.Coordinate) (model.WeatherSnapshot, error) {
	url := fmt.Sprintf("%s/v1/forecast?latitude=%s&longitude=%s&current_weather=true",
		c.baseURL, coord.LatString(), coord.LonString())

	var out forecastResp
	if err := c.up.GetJSON(ctx, url, &out); err != nil {
		return model.WeatherSnapshot{}, err
	}
	if out.CurrentWeather == nil {
		return model.WeatherSnapshot{}, ErrNoCurrentWeather
	}
	return *out.CurrentWeather, nil
}
