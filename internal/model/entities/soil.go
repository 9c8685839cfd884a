package entities

import "encoding/json"

// SoilProperties is the layered result of a SoilGrids properties query.
// On the wire it is the whole SoilGrids document; only properties.layers is kept.
type SoilProperties struct {
	Layers []SoilLayer
}

// SoilLayer is one named property (phh2o, nitrogen, ...) with its depth bands.
type SoilLayer struct {
	Name   string      `json:"name"`
	Depths []SoilDepth `json:"depths"`
}

// SoilDepth is a single depth band, e.g. "0-5cm".
type SoilDepth struct {
	Label  string     `json:"label,omitempty"`
	Values SoilValues `json:"values"`
}

// SoilValues carries the aggregated value; SoilGrids sends null over water and urban cells.
type SoilValues struct {
	Mean *float64 `json:"mean"`
}

type soilDocument struct {
	Properties struct {
		Layers []SoilLayer `json:"layers"`
	} `json:"properties"`
}

func (p SoilProperties) MarshalJSON() ([]byte, error) {
	var doc soilDocument
	doc.Properties.Layers = p.Layers
	if doc.Properties.Layers == nil {
		doc.Properties.Layers = []SoilLayer{}
	}
	return json.Marshal(doc)
}

func (p *SoilProperties) UnmarshalJSON(b []byte) error {
	var doc soilDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	p.Layers = doc.Properties.Layers
	return nil
}

// Layer returns the layer with the given property name, or nil.
func (p *SoilProperties) Layer(name string) *SoilLayer {
	if p == nil {
		return nil
	}
	for i := range p.Layers {
		if p.Layers[i].Name == name {
			return &p.Layers[i]
		}
	}
	return nil
}

// Mean returns the mean of the first depth band of the named property.
// ok is false when the layer is absent, has no depth bands, or the mean is null.
func (p *SoilProperties) Mean(name string) (v float64, ok bool) {
	l := p.Layer(name)
	if l == nil || len(l.Depths) == 0 || l.Depths[0].Values.Mean == nil {
		return 0, false
	}
	return *l.Depths[0].Values.Mean, true
}

// NewSoilLayer builds a single-band layer; used by fixed sources and tests.
func NewSoilLayer(name, label string, mean float64) SoilLayer {
	m := mean
	return SoilLayer{Name: name, Depths: []SoilDepth{{Label: label, Values: SoilValues{Mean: &m}}}}
}

// Clone returns a deep copy of p; no slice or mean pointer is shared with it.
func (p SoilProperties) Clone() SoilProperties {
	if p.Layers == nil {
		return SoilProperties{}
	}
	layers := make([]SoilLayer, len(p.Layers))
	for i, l := range p.Layers {
		layers[i].Name = l.Name
		if l.Depths == nil {
			continue
		}
		layers[i].Depths = make([]SoilDepth, len(l.Depths))
		for j, d := range l.Depths {
			layers[i].Depths[j].Label = d.Label
			if d.Values.Mean != nil {
				m := *d.Values.Mean
				layers[i].Depths[j].Values.Mean = &m
			}
		}
	}
	return SoilProperties{Layers: layers}
}
