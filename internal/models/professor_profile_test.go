package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeeklySlotsForDay(t *testing.T) {
	slots := WeeklySlots{
		"monday":    {"09:00", "10:00"},
		"wednesday": {"14:00"},
	}

	assert.Equal(t, []string{"09:00", "10:00"}, slots.ForDay("monday"))
	assert.Equal(t, []string{"09:00", "10:00"}, slots.ForDay("Monday"))
	assert.Nil(t, slots.ForDay("tuesday"))

	var empty WeeklySlots
	assert.Nil(t, empty.ForDay("monday"))
}

func TestWeeklySlotsScan(t *testing.T) {
	var slots WeeklySlots
	assert.NoError(t, slots.Scan([]byte(`{"monday":["09:00"]}`)))
	assert.Equal(t, []string{"09:00"}, slots.ForDay("monday"))

	var fromString WeeklySlots
	assert.NoError(t, fromString.Scan(`{"friday":["08:00"]}`))
	assert.Equal(t, []string{"08:00"}, fromString.ForDay("friday"))

	var fromNil WeeklySlots
	assert.NoError(t, fromNil.Scan(nil))
	assert.NotNil(t, fromNil)

	var bad WeeklySlots
	assert.Error(t, bad.Scan(42))
}

func TestWeeklySlotsValue(t *testing.T) {
	v, err := WeeklySlots{"monday": {"09:00"}}.Value()
	assert.NoError(t, err)
	assert.JSONEq(t, `{"monday":["09:00"]}`, v.(string))

	v, err = WeeklySlots(nil).Value()
	assert.NoError(t, err)
	assert.Equal(t, "{}", v)
}
