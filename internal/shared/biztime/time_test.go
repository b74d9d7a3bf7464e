package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBoundaries_InBusinessTimezone(t *testing.T) {
	require.NoError(t, Init("Asia/Tokyo"))
	t.Cleanup(func() { _ = Init("") })

	// 2024-03-10 20:00 UTC is already 2024-03-11 05:00 in Tokyo.
	ts := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC), StartOfDayUTC(ts))
	assert.Equal(t, time.Date(2024, 3, 11, 14, 59, 59, 999999999, time.UTC), EndOfDayUTC(ts))
	assert.Equal(t, "20240311", FormatInBizTimezone(ts, "20060102"))
}

func TestLocation_DefaultsToUTC(t *testing.T) {
	require.NoError(t, Init(""))
	assert.Equal(t, time.UTC, Location())
}

func TestInit_UnknownZone(t *testing.T) {
	assert.Error(t, Init("Mars/Olympus"))
}
