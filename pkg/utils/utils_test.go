package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 100.0, RoundWithTwoDecimalPlace(100.004))
	assert.Equal(t, 33.33, RoundWithTwoDecimalPlace(100.0/3))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
	assert.Equal(t, 5.0, AbsDiff(95, 100))
}

func TestMonthBoundaries(t *testing.T) {
	d := time.Date(2024, 2, 10, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), FirstDayOfMonth(d))
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), LastDayOfMonth(d))
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-06-10")
	assert.NoError(t, err)
	assert.Equal(t, 10, date.Day())

	_, err = ParseDate("10/06/2024")
	assert.Error(t, err)

	empty, err := ParseDate("")
	assert.NoError(t, err)
	assert.True(t, empty.IsZero())
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "***", MaskSecret("abc"))
	assert.Equal(t, "ya29.a***", MaskSecret("ya29.a0AfH6SMB"))
}
