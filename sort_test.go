package goshape

import (
	"slices"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Sort(t *testing.T) {
	people := tPeople(6)
	// Ages: 1:20 2:30 3:40 4:20 5:30 6:40. Cities: 1 Paris, 2 Berlin, 3 -, 4 Berlin, 5 Paris, 6 -.

	tests := []struct {
		name      string
		path      string
		direction Direction
		wantIDs   []int
		wantErr   bool
	}{
		{"default direction is ascending", "Age", "", []int{1, 4, 2, 5, 3, 6}, false},
		{"ascending keeps ties stable", "age", DirectionASC, []int{1, 4, 2, 5, 3, 6}, false},
		{"descending keeps ties stable", "Age", DirectionDESC, []int{3, 6, 2, 5, 1, 4}, false},
		{"text descending", "Name", DirectionDESC, []int{6, 5, 4, 3, 2, 1}, false},
		{"nil parent sorts as zero value ascending", "Address.City", DirectionASC, []int{3, 6, 2, 4, 1, 5}, false},
		{"nil parent sorts as zero value descending", "Address.City", DirectionDESC, []int{1, 5, 2, 4, 3, 6}, false},
		{"nullable field", "Nick", DirectionASC, []int{1, 3, 5, 2, 4, 6}, false},
		{"bool false first", "Active", DirectionASC, []int{1, 3, 5, 2, 4, 6}, false},
		{"time", "Born", DirectionDESC, []int{6, 5, 4, 3, 2, 1}, false},
		{"invalid direction", "Age", "UP", nil, true},
		{"unknown field", "Height", DirectionASC, nil, true},
		{"empty path", "", DirectionASC, nil, true},
		{"not orderable", "Tags", DirectionASC, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sort[tPerson](FromSlice(people), tt.path, tt.direction)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			assert.Equal(t, tt.wantIDs, ids(collect(t, got, err)))
		})
	}
}

func Test_Sort_NullBeforeEmptyString(t *testing.T) {
	people := []tPerson{
		{ID: 1, Nick: lo.ToPtr("a")},
		{ID: 2, Nick: lo.ToPtr("")},
		{ID: 3},
	}

	got, err := Sort[tPerson](FromSlice(people), "Nick", DirectionASC)
	assert.Equal(t, []int{3, 2, 1}, ids(collect(t, got, err)))
}

func Test_Sort_Idempotent(t *testing.T) {
	people := tPeople(12)

	for _, path := range []string{"Age", "Address.City", "Nick", "Active"} {
		for _, direction := range []Direction{DirectionASC, DirectionDESC} {
			once, err := Sort[tPerson](FromSlice(people), path, direction)
			sorted := collect(t, once, err)

			twice, err := Sort[tPerson](FromSlice(sorted), path, direction)
			assert.Equal(t, ids(sorted), ids(collect(t, twice, err)), "%s %s", path, direction)
		}
	}
}

func Test_Sort_DoesNotMutateInput(t *testing.T) {
	people := tPeople(6)
	before := slices.Clone(people)

	_, err := Sort[tPerson](FromSlice(people), "Age", DirectionDESC)
	require.NoError(t, err)

	assert.Equal(t, before, people)
}

func Test_Sort_NilSource(t *testing.T) {
	_, err := Sort[tPerson](nil, "Age", DirectionASC)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func Test_Sort_PointerElements(t *testing.T) {
	people := []*tPerson{{ID: 1, Age: 30}, nil, {ID: 2, Age: 10}}

	got, err := Sort[*tPerson](FromSlice(people), "Age", DirectionASC)
	items := collect(t, got, err)

	require.Len(t, items, 3)
	assert.Nil(t, items[0], "nil element is absent")
	assert.Equal(t, 2, items[1].ID)
	assert.Equal(t, 1, items[2].ID)
}
