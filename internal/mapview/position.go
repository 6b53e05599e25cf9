package mapview

import (
	"context"
	"errors"

	"github.com/alexanderramin/mapty/internal/domain"
)

// ErrPositionUnavailable is returned when no current position can be obtained.
var ErrPositionUnavailable = errors.New("could not get your position")

type PositionProvider interface {
	CurrentPosition(ctx context.Context) (domain.Coordinates, error)
}

// ConfiguredPosition reports a fixed home position from configuration.
type ConfiguredPosition struct {
	Coords  domain.Coordinates
	Enabled bool
}

func (p ConfiguredPosition) CurrentPosition(ctx context.Context) (domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, err
	}
	if !p.Enabled {
		return domain.Coordinates{}, ErrPositionUnavailable
	}
	if err := domain.ValidateCoordinates(p.Coords); err != nil {
		return domain.Coordinates{}, errors.Join(ErrPositionUnavailable, err)
	}
	return p.Coords, nil
}
