package elev

import (
	"slices"

	"github.com/samber/lo"

	"elevsim/src/types"
)

// addToQueue appends floor unless it is already queued.
func (s *elevState) addToQueue(floor int) bool {
	if lo.Contains(s.queue, floor) {
		return false
	}
	s.queue = append(s.queue, floor)
	return true
}

func (s *elevState) removeFromQueue(floor int) {
	s.queue = lo.Without(s.queue, floor)
}

// floorsInDirection returns a fresh, sorted copy of the queued floors at or
// ahead of the current floor, closest first. The current floor itself is
// included, unlike IsOnTheWay.
func (s *elevState) floorsInDirection() []int {
	if s.dir == types.MD_Stop {
		return nil
	}
	ahead := lo.Filter(s.queue, func(floor int, _ int) bool {
		if s.dir == types.MD_Up {
			return floor >= s.floor
		}
		return floor <= s.floor
	})
	slices.Sort(ahead)
	if s.dir == types.MD_Down {
		slices.Reverse(ahead)
	}
	return ahead
}

// initialDirection is decided by the first queued floor, not the nearest.
func initialDirection(first, floor int) types.MotorDirection {
	if first > floor {
		return types.MD_Up
	}
	return types.MD_Down
}
