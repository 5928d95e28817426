// State types are kept unexported so only the state manager goroutine touches them.
package elev

import (
	"elevsim/src/types"
)

// elevState is the mutable state of one elevator, owned by its state manager.
type elevState struct {
	floor   int
	queue   []int // insertion order, no duplicates
	dir     types.MotorDirection
	busy    bool
	loading bool

	idleWaiters []chan struct{}
}

// elevStateCmd is executed by the state manager; done is closed afterwards.
type elevStateCmd struct {
	exec func(state *elevState)
	done chan struct{}
}

func (s *elevState) snapshot(id int) types.ElevState {
	return types.ElevState{
		ID:      id,
		Floor:   s.floor,
		Queue:   s.queue,
		Dir:     s.dir,
		Busy:    s.busy,
		Loading: s.loading,
	}
}

func (s *elevState) isIdle() bool {
	return !s.busy && len(s.queue) == 0
}

func (s *elevState) notifyIdle() {
	for _, ch := range s.idleWaiters {
		close(ch)
	}
	s.idleWaiters = nil
}
