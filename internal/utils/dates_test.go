package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDatePlainDate(t *testing.T) {
	got, err := ParseDate("2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDateRFC3339(t *testing.T) {
	got, err := ParseDate("2024-06-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC), got)
}

func TestParseDateInvalid(t *testing.T) {
	for _, s := range []string{"", "15/06/2024", "2024-13-01", "June 15, 2024"} {
		_, err := ParseDate(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	orig := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	parsed, err := ParseDate(FormatDate(orig))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(orig))
}
