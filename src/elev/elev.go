package elev

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"elevsim/src/config"
	"elevsim/src/eventlog"
	"elevsim/src/telemetry"
	"elevsim/src/types"
)

// Elevator is one car. Its state lives in a state manager goroutine; the
// sweep runs in a second goroutine while the elevator is busy.
type Elevator struct {
	id     int
	travel time.Duration
	stop   time.Duration
	clock  clockwork.Clock
	logger *slog.Logger
	inst   *telemetry.Instruments

	cmds    chan elevStateCmd
	ctx     context.Context
	cancel  context.CancelFunc
	mgrDone chan struct{}
	sweeps  sync.WaitGroup

	// observe, if set, sees the state after every command. Set it through exec.
	observe func(state *elevState)
}

type options struct {
	clock        clockwork.Clock
	logger       *slog.Logger
	inst         *telemetry.Instruments
	initialFloor int
}

type Option func(*options)

func WithClock(clock clockwork.Clock) Option {
	return func(o *options) { o.clock = clock }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func WithInstruments(inst *telemetry.Instruments) Option {
	return func(o *options) { o.inst = inst }
}

func WithInitialFloor(floor int) Option {
	return func(o *options) { o.initialFloor = floor }
}

// New starts an idle elevator. travel is the time per floor, stop the
// passenger dwell at each serviced floor.
func New(id int, travel, stop time.Duration, opts ...Option) (*Elevator, error) {
	if travel <= 0 || stop <= 0 {
		return nil, fmt.Errorf("%w: elevator %d needs positive travel and stop durations, got %s and %s",
			config.ErrInvalidConfig, id, travel, stop)
	}

	o := options{
		clock:        clockwork.NewRealClock(),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		inst:         telemetry.Noop(),
		initialFloor: config.InitialFloor,
	}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &Elevator{
		id:      id,
		travel:  travel,
		stop:    stop,
		clock:   o.clock,
		logger:  o.logger.With(eventlog.ElevatorKey, id),
		inst:    o.inst,
		cmds:    make(chan elevStateCmd),
		ctx:     ctx,
		cancel:  cancel,
		mgrDone: make(chan struct{}),
	}
	e.startStateMgr(&elevState{floor: o.initialFloor, dir: types.MD_Stop})
	e.logger.Debug("Elevator initialized", "floor", o.initialFloor)
	return e, nil
}

func (e *Elevator) ID() int {
	return e.id
}

// AddToQueue appends floor if it is not queued yet and reports whether it
// was added. Direction and busy state are left alone.
func (e *Elevator) AddToQueue(floor int) bool {
	var added bool
	e.exec(func(state *elevState) {
		added = state.addToQueue(floor)
	})
	return added
}

func (e *Elevator) IsIdle() bool {
	return e.State().IsIdle()
}

func (e *Elevator) IsOnTheWay(floor int, dir types.MotorDirection) bool {
	return e.State().IsOnTheWay(floor, dir)
}

func (e *Elevator) GetDistanceTo(floor int) int {
	return e.State().DistanceTo(floor)
}

// StartMoving marks the elevator busy and starts its sweep, which runs until
// the queue is empty. It refuses to start a second sweep on a busy elevator.
func (e *Elevator) StartMoving() bool {
	var started bool
	e.exec(func(state *elevState) {
		started = e.startSweep(state)
	})
	return started
}

// Accept queues floor and, if the elevator was idle before the append,
// starts its sweep, all in one step.
func (e *Elevator) Accept(floor int) (added, started bool) {
	e.exec(func(state *elevState) {
		wasIdle := state.isIdle()
		added = state.addToQueue(floor)
		if wasIdle {
			started = e.startSweep(state)
		}
	})
	return added, started
}

// Wait blocks until the elevator is idle or ctx ends.
func (e *Elevator) Wait(ctx context.Context) error {
	idle := make(chan struct{})
	if !e.exec(func(state *elevState) {
		if state.isIdle() {
			close(idle)
			return
		}
		state.idleWaiters = append(state.idleWaiters, idle)
	}) {
		return context.Canceled
	}

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the state manager and any running sweep. Queued floors are
// abandoned; this is for process shutdown only.
func (e *Elevator) Close() {
	e.cancel()
	<-e.mgrDone
	e.sweeps.Wait()
}

// startSweep must run on the state manager. The first batch is taken in the
// same command, so a started elevator always has a direction.
func (e *Elevator) startSweep(state *elevState) bool {
	if state.busy {
		e.logger.Warn("Start requested while already moving")
		return false
	}
	state.busy = true
	batch := e.nextBatch(state)
	if len(batch) == 0 {
		return true
	}
	e.sweeps.Add(1)
	go e.sweep(batch)
	return true
}
