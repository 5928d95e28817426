package elev

import (
	"context"
	"errors"
	"fmt"

	"elevsim/src/config"
)

// NewFleet validates cfg and creates its elevators with ids 1..N, all idle
// at the initial floor. opts are applied to every elevator after the
// configured initial floor, so they may override it.
func NewFleet(cfg config.Config, opts ...Option) ([]*Elevator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fleetOpts := append([]Option{WithInitialFloor(cfg.InitialFloor)}, opts...)
	fleet := make([]*Elevator, 0, cfg.TotalElevators)
	for id := 1; id <= cfg.TotalElevators; id++ {
		e, err := New(id, cfg.FloorTravelDuration, cfg.StopDuration, fleetOpts...)
		if err != nil {
			CloseAll(fleet)
			return nil, fmt.Errorf("failed to create elevator %d: %w", id, err)
		}
		fleet = append(fleet, e)
	}
	return fleet, nil
}

// WaitAll blocks until every elevator is idle or ctx ends.
func WaitAll(ctx context.Context, fleet []*Elevator) error {
	var errs []error
	for _, e := range fleet {
		if err := e.Wait(ctx); err != nil {
			errs = append(errs, fmt.Errorf("elevator %d: %w", e.ID(), err))
		}
	}
	return errors.Join(errs...)
}

func CloseAll(fleet []*Elevator) {
	for _, e := range fleet {
		e.Close()
	}
}
