package dashboard

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/bhavyp2311/Weather-Api/internal/model"
)

func TestBuildPage_Empty(t *testing.T) {
	p := BuildPage(View{}, fixedNow)

	expected := []struct{ title, value string }{
		{"Temperature", "--"},
		{"Soil pH", "--"},
		{"Nitrogen (N)", "--"},
		{"Active Fields", "3"},
	}
	if len(p.Cards) != len(expected) {
		t.Fatalf("Expected %d cards, got %d", len(expected), len(p.Cards))
	}
	for i, e := range expected {
		if p.Cards[i].Title != e.title || p.Cards[i].Value != e.value {
			t.Errorf("Card %d: expected %s=%s, got %s=%s", i, e.title, e.value, p.Cards[i].Title, p.Cards[i].Value)
		}
	}
	for _, b := range p.Bars {
		if b.Value != "--" || b.Width != 0 {
			t.Errorf("Expected empty bar, got %+v", b)
		}
	}
	if p.Weather != nil || p.LandCover != nil {
		t.Error("Expected no detail rows")
	}
	if p.LastUpdated != "never" {
		t.Errorf("Expected never, got %s", p.LastUpdated)
	}
}

func TestBuildPage_Full(t *testing.T) {
	soil := fixedSoil(t)
	updated := fixedNow.Add(-5 * time.Minute)
	v := View{
		Weather:   &model.WeatherSnapshot{Temperature: 28, WindSpeed: 10, WindDirection: 200},
		Soil:      &soil,
		LandCover: &model.LandCoverInfo{Texture: "Clay Loam", Depth: "0–30 cm", CarbonLevel: "High (1.1%)"},
		UpdatedAt: &updated,
	}
	p := BuildPage(v, fixedNow)

	if p.Cards[0].Value != "28°C" {
		t.Errorf("Expected 28°C, got %s", p.Cards[0].Value)
	}
	if p.Cards[1].Value != "6.5" || p.Cards[2].Value != "1.2" {
		t.Errorf("Expected pH 6.5 and N 1.2, got %s and %s", p.Cards[1].Value, p.Cards[2].Value)
	}
	if p.Bars[0].Value != "22" || p.Bars[0].Width != 22 {
		t.Errorf("Unexpected phosphorus bar %+v", p.Bars[0])
	}
	if p.Bars[1].Value != "40" || p.Bars[1].Width != 40 {
		t.Errorf("Unexpected potassium bar %+v", p.Bars[1])
	}
	if len(p.Weather) != 3 || p.Weather[1].Value != "10 km/h" || p.Weather[2].Value != "200°" {
		t.Errorf("Unexpected weather rows %+v", p.Weather)
	}
	if len(p.LandCover) != 3 || p.LandCover[0].Value != "Clay Loam" {
		t.Errorf("Unexpected land-cover rows %+v", p.LandCover)
	}
	if p.LastUpdated != "5 min ago" {
		t.Errorf("Expected 5 min ago, got %s", p.LastUpdated)
	}
}

func TestLastUpdated(t *testing.T) {
	recent := fixedNow.Add(-10 * time.Second)
	old := fixedNow.Add(-3 * time.Hour)

	tests := []struct {
		name     string
		t        *time.Time
		expected string
	}{
		{"never", nil, "never"},
		{"just now", &recent, "just now"},
		{"old", &old, "2024-06-01 07:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lastUpdated(tt.t, fixedNow); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestRenderText(t *testing.T) {
	soil := fixedSoil(t)
	v := View{
		Weather:   &model.WeatherSnapshot{Temperature: 28, WindSpeed: 10, WindDirection: 200},
		Soil:      &soil,
		LandCover: &model.LandCoverInfo{Texture: "Clay Loam"},
		Alert:     AlertLocation,
	}

	var buf bytes.Buffer
	if err := RenderText(&buf, BuildPage(v, fixedNow)); err != nil {
		t.Fatalf("RenderText failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Temperature", "28°C", "Soil pH", "6.5", "Potassium (K)", "[########............]", "Clay Loam", "! " + AlertLocation} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\n%s", want, out)
		}
	}
}

func TestBar(t *testing.T) {
	if got := bar(0); got != "[....................]" {
		t.Errorf("Unexpected empty bar %s", got)
	}
	if got := bar(100); got != "[####################]" {
		t.Errorf("Unexpected full bar %s", got)
	}
}
