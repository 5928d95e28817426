package elev

import (
	"github.com/tiendc/go-deepcopy"

	"elevsim/src/types"
)

// startStateMgr starts the goroutine that serializes every access to the elevator state.
func (e *Elevator) startStateMgr(state *elevState) {
	go func() {
		defer close(e.mgrDone)
		for {
			select {
			case cmd := <-e.cmds:
				cmd.exec(state)
				if e.observe != nil {
					e.observe(state)
				}
				close(cmd.done)
			case <-e.ctx.Done():
				return
			}
		}
	}()
}

// exec runs fn on the state manager and waits for it. It returns false once
// the elevator is closed.
func (e *Elevator) exec(fn func(state *elevState)) bool {
	cmd := elevStateCmd{exec: fn, done: make(chan struct{})}
	select {
	case e.cmds <- cmd:
	case <-e.ctx.Done():
		return false
	}
	<-cmd.done
	return true
}

// State returns a deep copy of the elevator state. A closed elevator only
// reports its id and Closed.
func (e *Elevator) State() types.ElevState {
	snap := types.ElevState{ID: e.id}
	if !e.exec(func(state *elevState) {
		if err := deepcopy.Copy(&snap, state.snapshot(e.id)); err != nil {
			panic(err)
		}
	}) {
		return types.ElevState{ID: e.id, Closed: true}
	}
	return snap
}
