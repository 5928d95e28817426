package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/samber/lo"

	"elevsim/src/config"
	"elevsim/src/eventlog"
	"elevsim/src/telemetry"
	"elevsim/src/types"
	"elevsim/src/utils"
)

var ErrInvalidHallOrder = errors.New("invalid hall order")

// Dispatcher assigns hall calls to the fleet one at a time.
type Dispatcher struct {
	mu          sync.Mutex
	cars        []Car
	totalFloors int
	logger      *slog.Logger
	inst        *telemetry.Instruments
}

type options struct {
	logger *slog.Logger
	inst   *telemetry.Instruments
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func WithInstruments(inst *telemetry.Instruments) Option {
	return func(o *options) { o.inst = inst }
}

// FromFleet converts a slice of concrete elevators to cars.
func FromFleet[T Car](fleet []T) []Car {
	return lo.Map(fleet, func(car T, _ int) Car { return car })
}

func New(cfg config.Config, cars []Car, opts ...Option) (*Dispatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cars) == 0 {
		return nil, fmt.Errorf("%w: dispatcher needs at least one elevator", config.ErrInvalidConfig)
	}

	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		inst:   telemetry.Noop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Dispatcher{
		cars:        cars,
		totalFloors: cfg.TotalFloors,
		logger:      o.logger,
		inst:        o.inst,
	}, nil
}

// HandleHallOrder checks the call against the building and dispatches it.
// A call no elevator can take is dropped and logged; that is not an error.
func (d *Dispatcher) HandleHallOrder(ctx context.Context, order types.HallOrder) error {
	if order.Floor < 1 || order.Floor > d.totalFloors {
		return fmt.Errorf("%w: floor %d outside [1, %d]", ErrInvalidHallOrder, order.Floor, d.totalFloors)
	}
	if order.Dir != types.MD_Up && order.Dir != types.MD_Down {
		return fmt.Errorf("%w: direction must be Up or Down, got %s", ErrInvalidHallOrder, order.Dir)
	}
	d.AssignElevator(ctx, order.Floor, order.Dir)
	return nil
}

// AssignElevator scores one snapshot per elevator, queues the floor on the
// best one and starts it if it was idle. It reports false if the call was
// dropped.
func (d *Dispatcher) AssignElevator(ctx context.Context, floor int, dir types.MotorDirection) (Assignment, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	order := types.HallOrder{Floor: floor, Dir: dir}
	states := lo.Map(d.cars, func(car Car, _ int) types.ElevState { return car.State() })
	bids := collectBids(states, order)
	d.logger.Debug("Collected bids", "order", utils.FormatHallOrder(order), "bids", bids)

	best, ok := findAssignee(bids)
	if !ok {
		d.logger.Warn(fmt.Sprintf("No suitable elevator available for floor %d (%s)", floor, dir))
		d.inst.CallDropped(ctx)
		return Assignment{}, false
	}

	car, _ := lo.Find(d.cars, func(car Car) bool { return car.ID() == best.ElevatorID })
	added, started := car.Accept(floor)
	d.inst.CallAssigned(ctx, best.ElevatorID)
	d.logger.Info(fmt.Sprintf("Assigned %s", utils.FormatHallOrder(order)),
		eventlog.ElevatorKey, best.ElevatorID,
		"score", best.Score,
		"started", started)

	return Assignment{
		ElevatorID: best.ElevatorID,
		Score:      best.Score,
		Added:      added,
		Started:    started,
	}, true
}

// States returns one snapshot per elevator, in fleet order.
func (d *Dispatcher) States() []types.ElevState {
	return lo.Map(d.cars, func(car Car, _ int) types.ElevState { return car.State() })
}
