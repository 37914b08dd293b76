package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnknownPlayerState = errors.New("unknown player state")

// PlayerState mirrors the embedded player's state notifications.
type PlayerState string

const (
	PlayerUnstarted PlayerState = "UNSTARTED"
	PlayerEnded     PlayerState = "ENDED"
	PlayerPlaying   PlayerState = "PLAYING"
	PlayerPaused    PlayerState = "PAUSED"
	PlayerBuffering PlayerState = "BUFFERING"
	PlayerCued      PlayerState = "CUED"
)

// youtube iframe api numeric codes
var playerStateCodes = map[int]PlayerState{
	-1: PlayerUnstarted,
	0:  PlayerEnded,
	1:  PlayerPlaying,
	2:  PlayerPaused,
	3:  PlayerBuffering,
	5:  PlayerCued,
}

func ParsePlayerState(s string) (PlayerState, error) {
	st := PlayerState(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range playerStateCodes {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlayerState, s)
}

func PlayerStateFromCode(code int) (PlayerState, error) {
	st, ok := playerStateCodes[code]
	if !ok {
		return "", fmt.Errorf("%w: code %d", ErrUnknownPlayerState, code)
	}
	return st, nil
}

// UnmarshalJSON accepts either a state name or the iframe API's numeric
// onStateChange code. Names are validated later by ParsePlayerState.
func (s *PlayerState) UnmarshalJSON(data []byte) error {
	var code int
	if err := json.Unmarshal(data, &code); err == nil {
		st, err := PlayerStateFromCode(code)
		if err != nil {
			return err
		}
		*s = st
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownPlayerState, data)
	}
	*s = PlayerState(name)
	return nil
}

type PlayerAction string

const (
	ActionLoad      PlayerAction = "load"
	ActionPlay      PlayerAction = "play"
	ActionPause     PlayerAction = "pause"
	ActionSeek      PlayerAction = "seek"
	ActionSetVolume PlayerAction = "set_volume"
)

// PlayerCommand is sent to the embedded player.
type PlayerCommand struct {
	Action   PlayerAction `json:"action"`
	VideoID  string       `json:"video_id,omitempty"`
	Seconds  float64      `json:"seconds,omitempty"`
	Relative bool         `json:"relative,omitempty"`
	Volume   int          `json:"volume"`
}

// PlayerEvent is reported back by the embedded player.
type PlayerEvent struct {
	State    PlayerState `json:"state"`
	VideoID  string      `json:"video_id,omitempty"`
	Volume   *int        `json:"volume,omitempty"`
	Position *float64    `json:"position,omitempty"`
}

type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)

// Notice is a transient message shown to the user.
type Notice struct {
	Level    NoticeLevel   `json:"level"`
	Message  string        `json:"message"`
	VideoID  string        `json:"video_id,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}
