package dispatcher

import (
	"elevsim/src/types"
)

// Car is the part of an elevator the dispatcher needs. *elev.Elevator implements it.
type Car interface {
	ID() int
	State() types.ElevState
	Accept(floor int) (added, started bool)
}

// Bid is one eligible elevator's score for a hall call; lower is better.
type Bid struct {
	ElevatorID int
	Score      int
}

// Assignment is the outcome of a successfully dispatched hall call.
type Assignment struct {
	ElevatorID int
	Score      int
	Added      bool // false if the floor was already queued
	Started    bool // true if the elevator was idle and its sweep was started
}
