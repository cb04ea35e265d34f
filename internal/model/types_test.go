package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", d.String())

	_, err = ParseDate("06/01/2025")
	assert.Error(t, err)
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2025, time.June, 1)
	b := NewDate(2025, time.June, 2)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(NewDate(2025, time.June, 1)))
}

func TestDateAddYears(t *testing.T) {
	assert.Equal(t, "2026-01-01", NewDate(2025, time.January, 1).AddYears(1).String())
	// Leap day normalizes forward.
	assert.Equal(t, "2025-03-01", NewDate(2024, time.February, 29).AddYears(1).String())
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.June, 1)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-01"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, d.Equal(parsed))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-06-01", d.String())

	require.NoError(t, d.Scan([]byte("2025-07-15")))
	assert.Equal(t, "2025-07-15", d.String())

	assert.Error(t, d.Scan(42))
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("14:30")
	require.NoError(t, err)
	assert.Equal(t, "14:30", tod.String())

	// Postgres TIME columns come back with seconds.
	tod, err = ParseTimeOfDay("09:05:00")
	require.NoError(t, err)
	assert.Equal(t, "09:05", tod.String())

	_, err = ParseTimeOfDay("2:30 PM")
	assert.Error(t, err)
}

func TestTimeOfDayOrdering(t *testing.T) {
	a := NewTimeOfDay(14, 0)
	b := NewTimeOfDay(14, 30)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(NewTimeOfDay(14, 0)))
}

func TestTimeOfDayJSONRoundTrip(t *testing.T) {
	tod := NewTimeOfDay(9, 5)

	data, err := json.Marshal(tod)
	require.NoError(t, err)
	assert.Equal(t, `"09:05"`, string(data))

	var parsed TimeOfDay
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, tod.Equal(parsed))
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd TimeOfDay
		want                       bool
	}{
		{
			name:   "partial overlap",
			aStart: NewTimeOfDay(14, 0), aEnd: NewTimeOfDay(14, 30),
			bStart: NewTimeOfDay(14, 15), bEnd: NewTimeOfDay(14, 45),
			want: true,
		},
		{
			name:   "containment",
			aStart: NewTimeOfDay(14, 0), aEnd: NewTimeOfDay(15, 0),
			bStart: NewTimeOfDay(14, 15), bEnd: NewTimeOfDay(14, 30),
			want: true,
		},
		{
			name:   "identical",
			aStart: NewTimeOfDay(14, 0), aEnd: NewTimeOfDay(14, 30),
			bStart: NewTimeOfDay(14, 0), bEnd: NewTimeOfDay(14, 30),
			want: true,
		},
		{
			name:   "touching at boundary",
			aStart: NewTimeOfDay(14, 0), aEnd: NewTimeOfDay(14, 30),
			bStart: NewTimeOfDay(14, 30), bEnd: NewTimeOfDay(15, 0),
			want: false,
		},
		{
			name:   "disjoint",
			aStart: NewTimeOfDay(9, 0), aEnd: NewTimeOfDay(9, 30),
			bStart: NewTimeOfDay(14, 0), bEnd: NewTimeOfDay(14, 30),
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tc.want, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}
