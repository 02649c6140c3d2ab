package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampAcceptedFormats(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{`"2024-06-01T10:30:00Z"`, time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)},
		{`"2024-06-01 10:30:00"`, time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)},
		{`"2024-06-01"`, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{`""`, time.Time{}},
	}

	for _, tc := range cases {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(tc.in), &ts), tc.in)
		assert.True(t, ts.Equal(tc.want), "%s parsed to %v", tc.in, ts.Time)
	}
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`42`), &ts))
}

func TestTimestampMarshalsLikeTime(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

	got, err := json.Marshal(NewTimestamp(now))
	require.NoError(t, err)

	want, err := json.Marshal(now)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}
