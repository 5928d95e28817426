package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"elevsim/src/types"
)

func TestFormatHallOrder(t *testing.T) {
	assert.Equal(t, "HallUp(3)", FormatHallOrder(types.HallOrder{Floor: 3, Dir: types.MD_Up}))
	assert.Equal(t, "HallDown(9)", FormatHallOrder(types.HallOrder{Floor: 9, Dir: types.MD_Down}))
	assert.Equal(t, "Hall(1)", FormatHallOrder(types.HallOrder{Floor: 1}))
}

func TestFormatStatus(t *testing.T) {
	states := []types.ElevState{
		{ID: 1, Floor: 4, Dir: types.MD_Up, Busy: true, Queue: []int{7, 9}},
		{ID: 2, Floor: 1},
		{ID: 3, Floor: 6, Dir: types.MD_Down, Busy: true, Loading: true, Queue: []int{6}},
	}

	assert.Equal(t,
		"E1 floor 4 Up busy queue=[7 9] | E2 floor 1 None idle queue=[] | E3 floor 6 Down loading queue=[6]",
		FormatStatus(states))

	assert.Equal(t, "E1 closed | E2 floor 1 None idle queue=[]",
		FormatStatus([]types.ElevState{{ID: 1, Closed: true}, {ID: 2, Floor: 1}}))
}
