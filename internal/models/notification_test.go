package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexBoolAsserted(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`true`, true},
		{`"true"`, true},
		{`1`, true},
		{`false`, false},
		{`"false"`, false},
		{`0`, false},
		{`"TRUE"`, false},
		{`null`, false},
		{`"yes"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var f FlexBool
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &f))
			assert.Equal(t, tt.want, f.Asserted())
		})
	}
}

func TestFlexBoolPreservesRawToken(t *testing.T) {
	for _, raw := range []string{`true`, `"true"`, `1`, `false`} {
		var f FlexBool
		require.NoError(t, json.Unmarshal([]byte(raw), &f))
		out, err := json.Marshal(f)
		require.NoError(t, err)
		assert.Equal(t, raw, string(out))
	}
}

func TestFlexBoolZeroValueMarshalsNull(t *testing.T) {
	out, err := json.Marshal(FlexBool{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
	assert.False(t, FlexBool{}.Asserted())
}

func TestShortID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"a1b2c3d4e5f6", "A1B2-C3D4"},
		{"abcdefgh", "ABCD-EFGH"},
		{"abcde", "ABCD-E"},
		{"abcd", "ABCD"},
		{"ab", "AB"},
		{"", "N/A"},
	}
	for _, tt := range tests {
		got := NotificationRecord{ID: tt.id}.ShortID()
		assert.Equal(t, tt.want, got, "id %q", tt.id)
	}
}

func TestNotificationStatusBadges(t *testing.T) {
	assert.Equal(t, BadgeWarning, NotificationStatusPending.Color())
	assert.Equal(t, BadgeSuccess, NotificationStatusSent.Color())
	assert.Equal(t, BadgeDanger, NotificationStatusFailed.Color())
	assert.Equal(t, BadgeInfo, NotificationStatusRead.Color())

	// Unknown states fail closed to the neutral presentation.
	unknown := NotificationStatus("ARCHIVED")
	assert.Equal(t, BadgeSecondary, unknown.Color())
	assert.Equal(t, BadgeNeutralIcon, unknown.Icon())
}

func TestPassStatusBadges(t *testing.T) {
	assert.Equal(t, BadgeSuccess, PassStatusPassing.Color())
	assert.Equal(t, BadgeDanger, PassStatusFailing.Color())
	assert.Equal(t, BadgeSecondary, PassStatus("UNKNOWN").Color())
}
