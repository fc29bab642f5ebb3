package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	require.NotNil(t, date)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), *date)

	empty, err := ParseDate("   ")
	require.NoError(t, err)
	assert.Nil(t, empty)

	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-05", FormatDate(&date))
	assert.Equal(t, "", FormatDate(nil))
}

func TestPercentChange(t *testing.T) {
	change, ok := PercentChange(200, 250)
	assert.True(t, ok)
	assert.Equal(t, 25.0, change)

	change, ok = PercentChange(-100, -50)
	assert.True(t, ok)
	assert.Equal(t, 50.0, change)

	_, ok = PercentChange(0, 10)
	assert.False(t, ok)
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, idLength)
}
