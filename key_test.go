package goshape

import (
	"io"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tPersonCity = MustKey[tPerson, string]("Address.City")
	tPersonNick = MustKey[tPerson, *string]("nick")
)

func Test_NewKey(t *testing.T) {
	k, err := NewKey[tPerson, int]("age")
	require.NoError(t, err)
	assert.Equal(t, "Age", k.Path())
	assert.NotNil(t, k.Field())

	_, err = NewKey[tPerson, int64]("Age")
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "int64")

	_, err = NewKey[tPerson, string]("Nick")
	require.ErrorIs(t, err, ErrInvalidArgument, "nullable field needs a pointer key")

	_, err = NewKey[tPerson, int]("Height")
	var resolution *ResolutionError
	require.ErrorAs(t, err, &resolution)
}

func Test_MustKey_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustKey[tPerson, bool]("Age")
	})
}

func Test_Key_Value(t *testing.T) {
	people := tPeople(3)

	city, ok := tPersonCity.Value(people[0])
	assert.True(t, ok)
	assert.Equal(t, "Paris", city)

	city, ok = tPersonCity.Value(people[2])
	assert.True(t, ok, "nil address yields the zero value")
	assert.Empty(t, city)

	nick, ok := tPersonNick.Value(people[0])
	assert.True(t, ok, "a nil last link is still a value")
	assert.Nil(t, nick)

	nick, ok = tPersonNick.Value(people[1])
	assert.True(t, ok)
	assert.Equal(t, lo.ToPtr("nick2"), nick)

	_, ok = Key[tPerson, int]{}.Value(people[0])
	assert.False(t, ok)
	assert.Empty(t, Key[tPerson, int]{}.Path())
}

type tEvent struct {
	ID      int
	Err     error
	Payload any
}

func Test_Key_InterfaceFields(t *testing.T) {
	errKey := MustKey[tEvent, error]("Err")
	payload := MustKey[tEvent, any]("payload")

	err, ok := errKey.Value(tEvent{})
	assert.True(t, ok, "a nil interface is still a value")
	assert.NoError(t, err)

	err, ok = errKey.Value(tEvent{Err: io.EOF})
	assert.True(t, ok)
	assert.Equal(t, io.EOF, err)

	v, ok := payload.Value(tEvent{})
	assert.True(t, ok)
	assert.Nil(t, v)

	v, ok = payload.Value(tEvent{Payload: 3})
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func Test_Key_PointerElements(t *testing.T) {
	k := MustKey[*tPerson, string]("Address.City")

	city, ok := k.Value(nil)
	assert.True(t, ok)
	assert.Empty(t, city)

	_, ok = MustKey[*tPerson, *string]("Address.Zip").Value(nil)
	assert.False(t, ok)

	city, ok = k.Value(&tPerson{Address: &tAddress{City: "Oslo"}})
	assert.True(t, ok)
	assert.Equal(t, "Oslo", city)
}

func Test_FilterKey_SortKey(t *testing.T) {
	people := tPeople(12)

	got, err := FilterKey[tPerson](FromSlice(people), tPersonCity, "Paris")
	assert.Equal(t, []int{1, 5, 7, 11}, ids(collect(t, got, err)))

	got, err = FilterKey[tPerson](FromSlice(people), tPersonNick, nil)
	assert.Equal(t, []int{1, 3, 5, 7, 9, 11}, ids(collect(t, got, err)))

	got, err = SortKey[tPerson](FromSlice(people[:6]), tPersonCity, DirectionDESC)
	assert.Equal(t, []int{1, 5, 2, 4, 3, 6}, ids(collect(t, got, err)))

	_, err = FilterKey[tPerson](FromSlice(people), Key[tPerson, string]{}, "Paris")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = SortKey[tPerson](FromSlice(people), Key[tPerson, string]{}, DirectionASC)
	require.ErrorIs(t, err, ErrInvalidArgument)
}
