package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

const ScopeName = "elevsim"

const (
	CallsAssignedName   = "elevsim.calls.assigned"
	CallsDroppedName    = "elevsim.calls.dropped"
	FloorsTravelledName = "elevsim.floors.travelled"
	StopsServedName     = "elevsim.stops.served"
)

// Instruments are shared by the dispatcher and every elevator of a fleet.
type Instruments struct {
	callsAssigned   metric.Int64Counter
	callsDropped    metric.Int64Counter
	floorsTravelled metric.Int64Counter
	stopsServed     metric.Int64Counter
}

func New(meter metric.Meter) (*Instruments, error) {
	var (
		inst Instruments
		err  error
	)
	if inst.callsAssigned, err = meter.Int64Counter(CallsAssignedName,
		metric.WithDescription("Hall calls assigned to an elevator")); err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", CallsAssignedName, err)
	}
	if inst.callsDropped, err = meter.Int64Counter(CallsDroppedName,
		metric.WithDescription("Hall calls dropped because no elevator was eligible")); err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", CallsDroppedName, err)
	}
	if inst.floorsTravelled, err = meter.Int64Counter(FloorsTravelledName,
		metric.WithDescription("Floor-to-floor movement ticks"), metric.WithUnit("{floor}")); err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", FloorsTravelledName, err)
	}
	if inst.stopsServed, err = meter.Int64Counter(StopsServedName,
		metric.WithDescription("Floors serviced with a passenger dwell")); err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", StopsServedName, err)
	}
	return &inst, nil
}

// Noop returns instruments that record nothing.
func Noop() *Instruments {
	inst, err := New(noop.NewMeterProvider().Meter(ScopeName))
	if err != nil {
		panic(err)
	}
	return inst
}

func elevatorAttr(id int) metric.MeasurementOption {
	return metric.WithAttributes(attribute.Int("elevator", id))
}

func (i *Instruments) CallAssigned(ctx context.Context, elevatorID int) {
	i.callsAssigned.Add(ctx, 1, elevatorAttr(elevatorID))
}

func (i *Instruments) CallDropped(ctx context.Context) {
	i.callsDropped.Add(ctx, 1)
}

func (i *Instruments) FloorTravelled(ctx context.Context, elevatorID int) {
	i.floorsTravelled.Add(ctx, 1, elevatorAttr(elevatorID))
}

func (i *Instruments) StopServed(ctx context.Context, elevatorID int) {
	i.stopsServed.Add(ctx, 1, elevatorAttr(elevatorID))
}

// Setup creates an SDK meter provider backed by a manual reader, which
// Summary collects from at shutdown. Nothing is registered globally.
func Setup() (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	return provider, reader
}

// Summary totals every int64 sum across all attribute sets, keyed by
// instrument name.
func Summary(ctx context.Context, reader sdkmetric.Reader) (map[string]int64, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("failed to collect metrics: %w", err)
	}

	totals := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				totals[m.Name] += dp.Value
			}
		}
	}
	return totals, nil
}
