package dispatcher

import (
	"math"

	"elevsim/src/types"
)

// scoreCall rates one elevator snapshot for a hall call.
//   - an idle elevator scores its distance to the floor
//   - a busy elevator scores its distance only if it moves in the call's
//     direction and the floor is strictly ahead of it
//   - anything else is not eligible
func scoreCall(state types.ElevState, order types.HallOrder) (int, bool) {
	if state.IsIdle() {
		return state.DistanceTo(order.Floor), true
	}
	if state.Dir == order.Dir && state.IsOnTheWay(order.Floor, order.Dir) {
		return state.DistanceTo(order.Floor), true
	}
	return 0, false
}

// collectBids scores every snapshot, keeping fleet order.
func collectBids(states []types.ElevState, order types.HallOrder) []Bid {
	bids := make([]Bid, 0, len(states))
	for _, state := range states {
		if score, ok := scoreCall(state, order); ok {
			bids = append(bids, Bid{ElevatorID: state.ID, Score: score})
		}
	}
	return bids
}

// findAssignee returns the lowest bid. Ties go to the earliest bid.
func findAssignee(bids []Bid) (Bid, bool) {
	best := Bid{Score: math.MaxInt}
	found := false
	for _, bid := range bids {
		if bid.Score < best.Score {
			best = bid
			found = true
		}
	}
	return best, found
}
