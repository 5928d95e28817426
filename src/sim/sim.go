// Package sim drives a fleet with random hall calls, the way passengers
// pressing hall buttons would.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"elevsim/src/config"
	"elevsim/src/eventlog"
	"elevsim/src/types"
	"elevsim/src/utils"
)

// Dispatcher is the part of the dispatcher the simulator drives.
type Dispatcher interface {
	HandleHallOrder(ctx context.Context, order types.HallOrder) error
	States() []types.ElevState
}

type Simulator struct {
	cfg    config.Config
	disp   Dispatcher
	clock  clockwork.Clock
	logger *slog.Logger
	rng    *rand.Rand
	runID  uuid.UUID
	events *eventlog.Store
}

type options struct {
	clock  clockwork.Clock
	logger *slog.Logger
	events *eventlog.Store
}

type Option func(*options)

func WithClock(clock clockwork.Clock) Option {
	return func(o *options) { o.clock = clock }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithEventLog makes every run start from an empty event log.
func WithEventLog(events *eventlog.Store) Option {
	return func(o *options) { o.events = events }
}

// New creates a simulator. A zero cfg.Seed picks a seed from the clock.
func New(cfg config.Config, disp Dispatcher, opts ...Option) *Simulator {
	o := options{
		clock:  clockwork.NewRealClock(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = o.clock.Now().UnixNano()
	}
	runID := uuid.New()
	return &Simulator{
		cfg:    cfg,
		disp:   disp,
		clock:  o.clock,
		logger: o.logger.With("run", runID.String()),
		rng:    rand.New(rand.NewPCG(uint64(seed), uint64(seed))),
		runID:  runID,
		events: o.events,
	}
}

func (s *Simulator) RunID() uuid.UUID {
	return s.runID
}

// RandomCall picks a floor and a direction that exists on that floor.
// Floor 1 only has an Up button and the top floor only a Down button.
func (s *Simulator) RandomCall() types.HallOrder {
	floor := s.rng.IntN(s.cfg.TotalFloors) + 1
	switch {
	case floor == 1:
		return types.HallOrder{Floor: floor, Dir: types.MD_Up}
	case floor == s.cfg.TotalFloors:
		return types.HallOrder{Floor: floor, Dir: types.MD_Down}
	case s.rng.IntN(2) == 0:
		return types.HallOrder{Floor: floor, Dir: types.MD_Up}
	default:
		return types.HallOrder{Floor: floor, Dir: types.MD_Down}
	}
}

// PlaceCall sends one random call to the dispatcher.
func (s *Simulator) PlaceCall(ctx context.Context) {
	order := s.RandomCall()
	s.logger.Debug("Hall button pressed", "order", utils.FormatHallOrder(order))
	if err := s.disp.HandleHallOrder(ctx, order); err != nil {
		s.logger.Error("Hall call rejected", "order", utils.FormatHallOrder(order), "error", err)
	}
}

func (s *Simulator) Status() string {
	return utils.FormatStatus(s.disp.States())
}

// Run places calls every CallInterval and logs the fleet status every
// StatusInterval until ctx ends or SimDuration has passed. A zero interval
// disables its job, a zero SimDuration runs until ctx ends.
func (s *Simulator) Run(ctx context.Context) error {
	sched, err := gocron.NewScheduler(gocron.WithClock(s.clock))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	if s.cfg.CallInterval > 0 {
		if _, err := sched.NewJob(
			gocron.DurationJob(s.cfg.CallInterval),
			gocron.NewTask(func() { s.PlaceCall(ctx) }),
			gocron.WithName("hall-calls"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		); err != nil {
			return errors.Join(fmt.Errorf("failed to schedule hall calls: %w", err), sched.Shutdown())
		}
	}
	if s.cfg.StatusInterval > 0 {
		if _, err := sched.NewJob(
			gocron.DurationJob(s.cfg.StatusInterval),
			gocron.NewTask(func() { s.logger.Info("Fleet status", "status", s.Status()) }),
			gocron.WithName("status"),
		); err != nil {
			return errors.Join(fmt.Errorf("failed to schedule status report: %w", err), sched.Shutdown())
		}
	}

	if s.events != nil {
		s.events.Clear()
	}
	s.logger.Info("Simulation started",
		"floors", s.cfg.TotalFloors,
		"elevators", s.cfg.TotalElevators,
		"duration", s.cfg.SimDuration)
	sched.Start()

	var deadline <-chan time.Time
	if s.cfg.SimDuration > 0 {
		deadline = s.clock.After(s.cfg.SimDuration)
	}
	select {
	case <-ctx.Done():
		s.logger.Info("Simulation interrupted")
	case <-deadline:
		s.logger.Info("Simulation time elapsed")
	}

	if err := sched.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	if s.events != nil {
		s.logger.Debug("Simulation stopped", "events", s.events.Len())
	}
	return nil
}
