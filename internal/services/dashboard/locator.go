package dashboard

import (
	"context"
	"errors"

	"github.com/bhavyp2311/Weather-Api/internal/model"
)

// Locator acquires the device position. A nil Locator means the capability is absent.
type Locator interface {
	Locate(ctx context.Context) (model.Coordinate, error)
}

// StaticLocator always reports the same position (CLI flags, configured default,
// or a position the browser already resolved).
type StaticLocator model.Coordinate

func (l StaticLocator) Locate(_ context.Context) (model.Coordinate, error) {
	return model.Coordinate(l), nil
}

// DeniedLocator reports a failed position request, e.g. the browser's PositionError message.
type DeniedLocator struct {
	Reason string
}

func (l DeniedLocator) Locate(_ context.Context) (model.Coordinate, error) {
	if l.Reason == "" {
		return model.Coordinate{}, errors.New("position unavailable")
	}
	return model.Coordinate{}, errors.New(l.Reason)
}
