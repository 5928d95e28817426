package utils

import (
	"fmt"
	"strings"

	"elevsim/src/types"
)

// ForEachElevator is a helper function that reduces indentation when performing an action on all snapshots
func ForEachElevator(states []types.ElevState, action func(idx int, state types.ElevState)) {
	for idx, state := range states {
		action(idx, state)
	}
}

func FormatHallOrder(order types.HallOrder) string {
	switch order.Dir {
	case types.MD_Up:
		return fmt.Sprintf("HallUp(%d)", order.Floor)
	case types.MD_Down:
		return fmt.Sprintf("HallDown(%d)", order.Floor)
	}
	return fmt.Sprintf("Hall(%d)", order.Floor)
}

// FormatStatus renders one line per elevator, e.g. "E1 floor 4 Up busy queue=[7 9]"
func FormatStatus(states []types.ElevState) string {
	var b strings.Builder
	ForEachElevator(states, func(idx int, s types.ElevState) {
		if idx > 0 {
			b.WriteString(" | ")
		}
		if s.Closed {
			fmt.Fprintf(&b, "E%d closed", s.ID)
			return
		}
		fmt.Fprintf(&b, "E%d floor %d %s", s.ID, s.Floor, s.Dir)
		switch {
		case s.Loading:
			b.WriteString(" loading")
		case s.Busy:
			b.WriteString(" busy")
		default:
			b.WriteString(" idle")
		}
		fmt.Fprintf(&b, " queue=%v", s.Queue)
	})
	return b.String()
}
