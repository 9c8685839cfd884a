package soilgrids

import (
	"context"

	"github.com/bhavyp2311/Weather-Api/internal/model"
	"github.com/bhavyp2311/Weather-Api/internal/model/entities"
)

type fixedMean struct {
	property string
	mean     float64
}

// Fixed returns the same soil profile for every coordinate.
type Fixed struct {
	profile []fixedMean
}

// NewFixed returns the stand-in profile the dashboard ships with.
func NewFixed() *Fixed {
	return &Fixed{profile: []fixedMean{
		{model.PropertyPH, 6.5},
		{model.PropertyNitrogen, 1.2},
		{model.PropertyPhosphorus, 22},
		{model.PropertyPotassium, 40},
	}}
}

// Fetch builds fresh layers on every call so callers never share mean pointers.
func (f *Fixed) Fetch(_ context.Context, _ model.Coordinate) (model.SoilProperties, error) {
	layers := make([]model.SoilLayer, 0, len(f.profile))
	for _, p := range f.profile {
		layers = append(layers, entities.NewSoilLayer(p.property, model.SoilDepthBand, p.mean))
	}
	return model.SoilProperties{Layers: layers}, nil
}
