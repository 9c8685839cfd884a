package messages

import (
	"time"

	"github.com/bhavyp2311/Weather-Api/internal/model/entities"
)

// FieldReport is the outcome of one successful dashboard fetch cycle.
// It is committed to the dashboard state as a whole and published on field/report.
type FieldReport struct {
	CycleID    string                   `json:"cycle_id"`
	Coordinate entities.Coordinate      `json:"coordinate"`
	Weather    entities.WeatherSnapshot `json:"weather"`
	Soil       entities.SoilProperties  `json:"soil"`
	LandCover  entities.LandCoverInfo   `json:"land_cover"`
	FetchedAt  time.Time                `json:"fetched_at"`
}
