// Contains the sweep loop that consumes an elevator's queue in directional batches.
package elev

import (
	"errors"
	"fmt"

	"elevsim/src/timer"
	"elevsim/src/types"
)

// sweep serves batch and every batch after it until the queue is empty.
// It only talks to the state through exec, and suspends only on travel and
// dwell timers. Everything between two timers is one command, so the state
// is never seen half way through a transition.
func (e *Elevator) sweep(batch []int) {
	defer e.sweeps.Done()

	for len(batch) > 0 {
		var next []int
		for i, target := range batch {
			if err := e.moveToFloor(target); err != nil {
				e.stopped(err)
				return
			}
			if err := e.loadPassengers(); err != nil {
				e.stopped(err)
				return
			}
			last := i == len(batch)-1
			if !e.exec(func(state *elevState) {
				state.removeFromQueue(target)
				if last {
					e.finishBatch(state)
					next = e.nextBatch(state)
				}
			}) {
				return
			}
		}
		batch = next
	}
}

// nextBatch picks the direction if none is set and returns a snapshot of
// the floors to serve in it. Once the queue is empty it leaves the elevator
// idle and returns nil. Must run on the state manager.
func (e *Elevator) nextBatch(state *elevState) []int {
	if len(state.queue) == 0 {
		state.dir = types.MD_Stop
		state.busy = false
		e.logger.Info("Completed all requests, now idle")
		state.notifyIdle()
		return nil
	}

	if state.dir == types.MD_Stop {
		state.dir = initialDirection(state.queue[0], state.floor)
		e.logger.Info(fmt.Sprintf("Initial direction set to %s", state.dir))
	}

	batch := state.floorsInDirection()
	if len(batch) == 0 {
		state.dir = state.dir.Opposite()
		e.logger.Info(fmt.Sprintf("Switching direction to %s", state.dir))
		batch = state.floorsInDirection()
	}
	return batch
}

// finishBatch flips the direction when nothing is left ahead but the queue
// still holds floors behind the elevator.
func (e *Elevator) finishBatch(state *elevState) {
	if len(state.queue) == 0 || len(state.floorsInDirection()) > 0 {
		return
	}
	e.logger.Info(fmt.Sprintf("Completed %s run, switching direction", state.dir))
	state.dir = state.dir.Opposite()
}

// moveToFloor travels one floor per tick, publishing every intermediate floor.
func (e *Elevator) moveToFloor(target int) error {
	var floor int
	if !e.exec(func(state *elevState) { floor = state.floor }) {
		return e.ctx.Err()
	}
	if floor == target {
		return nil
	}

	step := types.MD_Up
	distance := target - floor
	if distance < 0 {
		step = types.MD_Down
		distance = -distance
	}
	e.logger.Info(fmt.Sprintf("Moving %s to floor %d", step, target))

	return timer.Ticks(e.ctx, e.clock, e.travel, distance, func(int) {
		e.exec(func(state *elevState) { state.floor += int(step) })
		e.inst.FloorTravelled(e.ctx, e.id)
	})
}

// loadPassengers holds the elevator at its floor for one stop interval.
func (e *Elevator) loadPassengers() error {
	if !e.exec(func(state *elevState) { state.loading = true }) {
		return e.ctx.Err()
	}
	e.logger.Info("Loading/unloading passengers")

	if err := timer.Wait(e.ctx, e.clock, e.stop); err != nil {
		return err
	}
	e.exec(func(state *elevState) { state.loading = false })
	e.inst.StopServed(e.ctx, e.id)
	return nil
}

func (e *Elevator) stopped(err error) {
	if errors.Is(err, e.ctx.Err()) {
		e.logger.Debug("Sweep stopped", "reason", err)
		return
	}
	e.logger.Error("Sweep failed", "error", err)
}
