package types

type MotorDirection int

const (
	MD_Up   MotorDirection = 1
	MD_Down MotorDirection = -1
	MD_Stop MotorDirection = 0
)

func (d MotorDirection) String() string {
	switch d {
	case MD_Up:
		return "Up"
	case MD_Down:
		return "Down"
	default:
		return "None"
	}
}

// Opposite flips Up and Down. MD_Stop stays MD_Stop.
func (d MotorDirection) Opposite() MotorDirection {
	return -d
}

// HallOrder is a call from a floor: the floor and the direction the
// passenger wants to travel. It is never stored; it either lands in an
// elevator queue or is dropped.
type HallOrder struct {
	Floor int
	Dir   MotorDirection
}

// ElevState is a read-only snapshot of one elevator.
type ElevState struct {
	ID      int
	Floor   int
	Queue   []int
	Dir     MotorDirection
	Busy    bool
	Loading bool
	Closed  bool // shut down; takes no calls
}

func (s ElevState) IsIdle() bool {
	return !s.Closed && !s.Busy && len(s.Queue) == 0
}

// IsOnTheWay reports whether floor lies strictly ahead of a busy elevator
// travelling in dir. An elevator standing at floor is not on the way.
func (s ElevState) IsOnTheWay(floor int, dir MotorDirection) bool {
	if !s.Busy || s.Dir != dir {
		return false
	}
	if dir == MD_Up {
		return floor > s.Floor
	}
	return floor < s.Floor
}

func (s ElevState) DistanceTo(floor int) int {
	d := floor - s.Floor
	if d < 0 {
		return -d
	}
	return d
}
