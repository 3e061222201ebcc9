package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetTimezone(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "local", timezone: "Local", wantErr: false},
		{name: "utc", timezone: "UTC", wantErr: false},
		{name: "named zone", timezone: "Europe/London", wantErr: false},
		{name: "empty defaults to local", timezone: "", wantErr: false},
		{name: "invalid", timezone: "Not/AZone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &TimeProvider{}
			err := provider.SetTimezone(tt.timezone)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatMillis(t *testing.T) {
	provider := &TimeProvider{}
	require.NoError(t, provider.SetTimezone("UTC"))

	instant := time.Date(2022, 4, 15, 6, 40, 0, 0, time.UTC)
	assert.Equal(t, "2022-04-15 06:40:00", provider.FormatMillis(instant.UnixMilli(), "2006-01-02 15:04:05"))

	// The unknown-timestamp sentinel renders as a placeholder, not as
	// the epoch.
	assert.Equal(t, "unknown", provider.FormatMillis(0, "2006-01-02 15:04:05"))
}
