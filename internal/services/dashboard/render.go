package dashboard

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/bhavyp2311/Weather-Api/internal/model"
)

// activeFields is the static count shown on the fourth summary card.
const activeFields = 3

type Card struct {
	Title string
	Value string
	Class string
}

type Bar struct {
	Label string
	Value string
	Width float64
	Class string
}

type Row struct {
	Label string
	Value string
}

// Page is the presentational model shared by the HTML and text renderers.
type Page struct {
	Cards       []Card
	Bars        []Bar
	Weather     []Row
	LandCover   []Row
	Loading     bool
	Alert       string
	LastUpdated string
}

func BuildPage(v View, now time.Time) Page {
	p := Page{
		Loading:     v.Loading,
		Alert:       v.Alert,
		LastUpdated: lastUpdated(v.UpdatedAt, now),
	}

	temp := model.Placeholder
	if v.Weather != nil {
		temp = formatFloat(v.Weather.Temperature) + "°C"
	}
	p.Cards = []Card{
		{Title: "Temperature", Value: temp, Class: "temp"},
		{Title: "Soil pH", Value: model.SoilValue(v.Soil, model.PropertyPH), Class: "ph"},
		{Title: "Nitrogen (N)", Value: model.SoilValue(v.Soil, model.PropertyNitrogen), Class: "nitrogen"},
		{Title: "Active Fields", Value: strconv.Itoa(activeFields), Class: "fields"},
	}

	p.Bars = []Bar{
		{Label: "Phosphorus (P)", Value: model.SoilValue(v.Soil, model.PropertyPhosphorus), Width: model.SoilBarWidth(v.Soil, model.PropertyPhosphorus), Class: "phosphorus"},
		{Label: "Potassium (K)", Value: model.SoilValue(v.Soil, model.PropertyPotassium), Width: model.SoilBarWidth(v.Soil, model.PropertyPotassium), Class: "potassium"},
	}

	if w := v.Weather; w != nil {
		p.Weather = []Row{
			{Label: "Temperature", Value: formatFloat(w.Temperature) + "°C"},
			{Label: "Wind Speed", Value: formatFloat(w.WindSpeed) + " km/h"},
			{Label: "Direction", Value: formatFloat(w.WindDirection) + "°"},
		}
	}
	if lc := v.LandCover; lc != nil {
		p.LandCover = []Row{
			{Label: "Texture", Value: lc.Texture},
			{Label: "Depth", Value: lc.Depth},
			{Label: "Carbon", Value: lc.CarbonLevel},
		}
	}
	return p
}

// RenderText writes the page as plain text, for terminals.
func RenderText(w io.Writer, p Page) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range p.Cards {
		fmt.Fprintf(tw, "%s\t%s\n", c.Title, c.Value)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Soil Analysis")
	for _, b := range p.Bars {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", b.Label, b.Value, bar(b.Width))
	}
	fmt.Fprintf(tw, "  Last updated: %s\n", p.LastUpdated)

	if len(p.Weather) > 0 || len(p.LandCover) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Weather & Soil Info")
	}
	for _, r := range p.Weather {
		fmt.Fprintf(tw, "  %s\t%s\n", r.Label, r.Value)
	}
	for _, r := range p.LandCover {
		fmt.Fprintf(tw, "  %s:\t%s\n", r.Label, r.Value)
	}
	if p.Alert != "" {
		fmt.Fprintf(tw, "\n! %s\n", p.Alert)
	}
	return tw.Flush()
}

func bar(width float64) string {
	const cells = 20
	n := int(width / 100 * cells)
	out := make([]byte, cells)
	for i := range out {
		if i < n {
			out[i] = '#'
		} else {
			out[i] = '.'
		}
	}
	return "[" + string(out) + "]"
}

func lastUpdated(t *time.Time, now time.Time) string {
	if t == nil {
		return "never"
	}
	d := now.Sub(*t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	default:
		return t.Format("2006-01-02 15:04")
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
