package dashboard

import (
	"sync"
	"time"

	"github.com/bhavyp2311/Weather-Api/internal/model"
)

// View is a point-in-time copy of the dashboard state handed to renderers.
type View struct {
	Weather   *model.WeatherSnapshot `json:"weather"`
	Soil      *model.SoilProperties  `json:"soil"`
	LandCover *model.LandCoverInfo   `json:"land_cover"`
	Loading   bool                   `json:"loading"`
	Alert     string                 `json:"alert,omitempty"`
	CycleID   string                 `json:"cycle_id,omitempty"`
	UpdatedAt *time.Time             `json:"updated_at,omitempty"`
}

// State holds the observable dashboard fields. Only the newest fetch cycle
// (highest generation) may commit data or clear the loading flag.
type State struct {
	mu sync.RWMutex

	weather   *model.WeatherSnapshot
	soil      *model.SoilProperties
	landCover *model.LandCoverInfo
	loading   bool
	alert     string
	cycleID   string
	updatedAt time.Time

	current uint64
}

func NewState() *State { return &State{} }

// Begin starts a new generation and raises the loading flag.
func (s *State) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current++
	s.loading = true
	s.alert = ""
	return s.current
}

// Commit stores all three slots at once. It is a no-op for superseded generations.
func (s *State) Commit(gen uint64, r model.FieldReport) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.current {
		return false
	}
	w, soil, lc := r.Weather, r.Soil.Clone(), r.LandCover
	s.weather, s.soil, s.landCover = &w, &soil, &lc
	s.cycleID = r.CycleID
	s.updatedAt = r.FetchedAt
	s.loading = false
	return true
}

// Abort ends a generation without touching the data slots.
func (s *State) Abort(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.current {
		return false
	}
	s.loading = false
	return true
}

// AbortWithAlert ends a generation and records msg, both only if gen is current.
func (s *State) AbortWithAlert(gen uint64, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.current {
		return false
	}
	s.loading = false
	s.alert = msg
	return true
}

// Alert records a user-facing message.
func (s *State) Alert(msg string) {
	s.mu.Lock()
	s.alert = msg
	s.mu.Unlock()
}

func (s *State) Snapshot() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := View{Loading: s.loading, Alert: s.alert, CycleID: s.cycleID}
	if s.weather != nil {
		w := *s.weather
		v.Weather = &w
	}
	if s.soil != nil {
		p := s.soil.Clone()
		v.Soil = &p
	}
	if s.landCover != nil {
		lc := *s.landCover
		v.LandCover = &lc
	}
	if !s.updatedAt.IsZero() {
		t := s.updatedAt
		v.UpdatedAt = &t
	}
	return v
}
