package timezone_test

import (
	"hotelbook/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowUsesApplicationLocation(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.ToAppTime(now).Location().String(), now.Location().String())
}

func TestFormatRoundTrip(t *testing.T) {
	in := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	formatted := timezone.Format(in, time.RFC3339)
	out, err := time.Parse(time.RFC3339, formatted)

	require.NoError(t, err)
	assert.True(t, in.Equal(out))
}

func TestParseDate(t *testing.T) {
	day, err := timezone.ParseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, day.Year())
	assert.Equal(t, time.June, day.Month())
	assert.Equal(t, 1, day.Day())

	stamp, err := timezone.ParseDate("2024-06-04T10:00:00Z")
	require.NoError(t, err)
	assert.True(t, stamp.Equal(time.Date(2024, 6, 4, 10, 0, 0, 0, time.UTC)))

	_, err = timezone.ParseDate("04/06/2024")
	assert.Error(t, err)
}
