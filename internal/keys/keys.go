// Package keys maps keyboard shortcuts to player and queue navigation calls.
package keys

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"feed_player/internal/domain"
	"feed_player/internal/service"
)

var ErrUnknownKey = errors.New("unknown key")

const (
	VolumeStep  = 10
	SeekSeconds = 15
)

type Navigator interface {
	SelectNext(ctx context.Context) error
	SelectPrevious(ctx context.Context) error
}

type Handler struct {
	player service.Player
	nav    Navigator
}

func NewHandler(player service.Player, nav Navigator) *Handler {
	return &Handler{player: player, nav: nav}
}

// Handle runs the action bound to key. Key names follow the terminal
// convention: "space", "up", "down", "left", "right", "shift+left",
// "shift+right".
func (h *Handler) Handle(ctx context.Context, key string) error {
	switch normalize(key) {
	case "space":
		return h.togglePlay(ctx)
	case "up":
		return h.player.SetVolume(ctx, h.player.Volume()+VolumeStep)
	case "down":
		return h.player.SetVolume(ctx, h.player.Volume()-VolumeStep)
	case "left":
		return h.player.Seek(ctx, -SeekSeconds, true)
	case "right":
		return h.player.Seek(ctx, SeekSeconds, true)
	case "shift+left":
		return h.nav.SelectPrevious(ctx)
	case "shift+right":
		return h.nav.SelectNext(ctx)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
}

func (h *Handler) togglePlay(ctx context.Context) error {
	if h.player.State() == domain.PlayerPlaying {
		return h.player.Pause(ctx)
	}
	return h.player.Play(ctx)
}

func normalize(key string) string {
	if key == " " {
		return "space"
	}
	k := strings.ToLower(strings.TrimSpace(key))
	switch k {
	case "arrowup":
		return "up"
	case "arrowdown":
		return "down"
	case "arrowleft":
		return "left"
	case "arrowright":
		return "right"
	case "shift+arrowleft":
		return "shift+left"
	case "shift+arrowright":
		return "shift+right"
	}
	return k
}
