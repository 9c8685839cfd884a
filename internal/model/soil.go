package model

import "strconv"

// Placeholder is shown wherever a value cannot be extracted.
const Placeholder = "--"

// SoilValue returns the first-band mean of property formatted for display,
// or Placeholder when p is nil or does not carry the value.
func SoilValue(p *SoilProperties, property string) string {
	v, ok := p.Mean(property)
	if !ok {
		return Placeholder
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SoilBarWidth is the progress-bar width in percent for property, clamped to [0,100].
func SoilBarWidth(p *SoilProperties, property string) float64 {
	v, ok := p.Mean(property)
	switch {
	case !ok || v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
