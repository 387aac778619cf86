package goshape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Direction_Valid_And_ForOperator(t *testing.T) {
	tests := []struct {
		name     string
		in       Direction
		valid    bool
		operator Operator
		panicExp bool
	}{
		{"ASC valid maps to GT", DirectionASC, true, OperatorGT, false},
		{"DESC valid maps to LT", DirectionDESC, true, OperatorLT, false},
		{"empty valid maps to GT", "", true, OperatorGT, false},
		{"lower case is invalid", "asc", false, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Valid(); got != tt.valid {
				t.Errorf("%s: Valid=%v want %v", tt.name, got, tt.valid)
			}
			if tt.panicExp {
				assert.Panics(t, func() { tt.in.ForOperator() })
				return
			}
			if got := tt.in.ForOperator(); got != tt.operator {
				t.Errorf("%s: ForOperator=%v want %v", tt.name, got, tt.operator)
			}
		})
	}
}

func Test_ParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"", DirectionASC, true},
		{"asc", DirectionASC, true},
		{" Desc ", DirectionDESC, true},
		{"DESC", DirectionDESC, true},
		{"down", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if (err == nil) != tt.ok {
				t.Errorf("%q: ok=%v err=%v", tt.in, tt.ok, err)
				return
			}
			if got != tt.want {
				t.Errorf("%q: got %s want %s", tt.in, got, tt.want)
			}
		})
	}
}

func Test_OrderBy_validate(t *testing.T) {
	tests := []struct {
		name string
		in   OrderBy
		ok   bool
	}{
		{"empty path", OrderBy{}, false},
		{"invalid direction", OrderBy{Path: "id", Direction: "bad"}, false},
		{"forbidden symbols", OrderBy{Path: "id; drop table users"}, false},
		{"default direction", OrderBy{Path: "id"}, true},
		{"nested path", OrderBy{Path: "Address.City", Direction: DirectionDESC}, true},
	}
	for _, tt := range tests {
		if err := tt.in.validate(); (err == nil) != tt.ok {
			t.Errorf("%s: ok=%v err=%v", tt.name, tt.ok, err)
		}
	}
}

func Test_ParseSort(t *testing.T) {
	allowed := []string{"ID", "Name", "Address.City"}

	tests := []struct {
		name string
		in   string
		ok   bool
		want OrderBy
	}{
		{"empty", "", false, OrderBy{}},
		{"too many parts", "id asc please", false, OrderBy{}},
		{"invalid direction", "id up", false, OrderBy{}},
		{"unknown path", "idx asc", false, OrderBy{}},
		{"path only", "id", true, OrderBy{Path: "ID", Direction: DirectionASC}},
		{"valid asc", "id asc", true, OrderBy{Path: "ID", Direction: DirectionASC}},
		{"valid desc", "name DESC", true, OrderBy{Path: "Name", Direction: DirectionDESC}},
		{"nested path", "address.city desc", true, OrderBy{Path: "Address.City", Direction: DirectionDESC}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSort(tt.in, allowed...)
			if !tt.ok {
				require.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_ParseSort_SuggestsClosest(t *testing.T) {
	_, err := ParseSort("adress.city", "ID", "Name", "Address.City")
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "closest: 'Address.City'")
}

func Test_ParseSort_AnyPath(t *testing.T) {
	got, err := ParseSort("created_at desc")
	require.NoError(t, err)
	assert.Equal(t, OrderBy{Path: "created_at", Direction: DirectionDESC}, got)
	assert.Equal(t, "created_at DESC", got.String())

	_, err = ParseSort("created-at")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func Test_NewOrdering(t *testing.T) {
	age, err := ResolveFor[tPerson](DefaultResolver(), "Age")
	require.NoError(t, err)
	tags, err := ResolveFor[tPerson](DefaultResolver(), "Tags")
	require.NoError(t, err)

	o, err := NewOrdering(age, "")
	require.NoError(t, err)
	assert.Equal(t, DirectionASC, o.Direction)

	_, err = NewOrdering(nil, DirectionASC)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewOrdering(age, "sideways")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewOrdering(tags, DirectionASC)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func Test_closestName(t *testing.T) {
	names := []string{"id", "name", "created_at"}
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"closest to id", "idx", "id"},
		{"closest to name", "nme", "name"},
		{"closest to created_at", "createdat", "created_at"},
		{"case is ignored", "NAME", "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := closestName(tt.in, names); got != tt.out {
				t.Errorf("%s: got %s want %s", tt.name, got, tt.out)
			}
		})
	}
}
