package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerEvent_DecodesNumericState(t *testing.T) {
	tests := []struct {
		name string
		body string
		want PlayerState
	}{
		{name: "ended code", body: `{"state": 0, "video_id": "dQw4w9WgXcQ"}`, want: PlayerEnded},
		{name: "unstarted code", body: `{"state": -1}`, want: PlayerUnstarted},
		{name: "cued code", body: `{"state": 5}`, want: PlayerCued},
		{name: "name", body: `{"state": "PAUSED"}`, want: PlayerPaused},
		{name: "lowercase name kept for parsing", body: `{"state": "ended"}`, want: PlayerState("ended")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var event PlayerEvent
			require.NoError(t, json.Unmarshal([]byte(tt.body), &event))
			assert.Equal(t, tt.want, event.State)
		})
	}
}

func TestPlayerEvent_RejectsUnknownCode(t *testing.T) {
	var event PlayerEvent
	err := json.Unmarshal([]byte(`{"state": 4}`), &event)

	assert.ErrorIs(t, err, ErrUnknownPlayerState)
}

func TestParsePlayerState(t *testing.T) {
	st, err := ParsePlayerState(" ended ")
	require.NoError(t, err)
	assert.Equal(t, PlayerEnded, st)

	_, err = ParsePlayerState("rewinding")
	assert.ErrorIs(t, err, ErrUnknownPlayerState)
}
