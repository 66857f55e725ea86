package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	prev := 10
	next := 20

	assert.Equal(t, &prev, Coalesce(nil, &prev))
	got := Coalesce(&next, &prev)
	assert.Equal(t, 20, *got)

	next = 30
	assert.Equal(t, 20, *got, "result must not alias the candidate")
	assert.Nil(t, Coalesce[int](nil, nil))
}

func TestCoalesceString(t *testing.T) {
	assert.Equal(t, "Seats", CoalesceString("", "Seats"))
	assert.Equal(t, "Users", CoalesceString("Users", "Seats"))
}

func TestCoalesceSlice(t *testing.T) {
	prev := []int{1, 2}
	assert.Equal(t, prev, CoalesceSlice(nil, prev))
	assert.Equal(t, prev, CoalesceSlice([]int{}, prev))
	assert.Equal(t, []int{3}, CoalesceSlice([]int{3}, prev))
}

func TestCoalesceValid(t *testing.T) {
	valid := func(s string) bool { return s == "month" || s == "year" }

	assert.Equal(t, "year", CoalesceValid("year", "month", valid))
	assert.Equal(t, "month", CoalesceValid("mon", "month", valid))
	assert.Equal(t, "month", CoalesceValid("", "month", valid))
}
