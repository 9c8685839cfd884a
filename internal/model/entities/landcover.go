package entities

// LandCoverInfo holds free-form descriptive land-cover fields for a location.
type LandCoverInfo struct {
	Texture     string `json:"texture"`
	Depth       string `json:"depth"`
	CarbonLevel string `json:"carbon"`
}
