// Package player drives an embedded player that lives outside the process.
// Remote sends commands through a CommandSink and mirrors the player's
// state from the events it reports back.
package player

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"feed_player/internal/domain"
)

const (
	MinVolume     = 0
	MaxVolume     = 100
	DefaultVolume = 100
)

type CommandSink interface {
	SendCommand(ctx context.Context, cmd domain.PlayerCommand) error
}

// StateListener receives every state change reported by the player.
type StateListener interface {
	OnPlayerState(ctx context.Context, state domain.PlayerState) error
}

type Status struct {
	VideoID  string             `json:"video_id"`
	State    domain.PlayerState `json:"state"`
	Volume   int                `json:"volume"`
	Position float64            `json:"position"`
}

type Remote struct {
	sink   CommandSink
	logger *slog.Logger

	mu       sync.Mutex
	listener StateListener
	status   Status
}

func NewRemote(sink CommandSink, logger *slog.Logger) *Remote {
	return &Remote{
		sink:   sink,
		logger: logger.With("component", "player"),
		status: Status{State: domain.PlayerUnstarted, Volume: DefaultVolume},
	}
}

func (r *Remote) SetListener(l StateListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listener = l
}

func (r *Remote) Load(ctx context.Context, videoID string) error {
	if err := r.send(ctx, domain.PlayerCommand{Action: domain.ActionLoad, VideoID: videoID}); err != nil {
		return err
	}

	r.mu.Lock()
	r.status.VideoID = videoID
	r.status.State = domain.PlayerCued
	r.status.Position = 0
	r.mu.Unlock()
	return nil
}

func (r *Remote) Play(ctx context.Context) error {
	return r.sendAndSet(ctx, domain.PlayerCommand{Action: domain.ActionPlay}, domain.PlayerPlaying)
}

func (r *Remote) Pause(ctx context.Context) error {
	return r.sendAndSet(ctx, domain.PlayerCommand{Action: domain.ActionPause}, domain.PlayerPaused)
}

// Seek moves the playhead. A relative seek is an offset from the mirrored
// position; the result never goes below zero.
func (r *Remote) Seek(ctx context.Context, seconds float64, relative bool) error {
	if err := r.send(ctx, domain.PlayerCommand{Action: domain.ActionSeek, Seconds: seconds, Relative: relative}); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if relative {
		seconds += r.status.Position
	}
	r.status.Position = max(seconds, 0)
	return nil
}

func (r *Remote) Volume() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status.Volume
}

// SetVolume clamps volume to [MinVolume, MaxVolume].
func (r *Remote) SetVolume(ctx context.Context, volume int) error {
	volume = clampVolume(volume)
	if err := r.send(ctx, domain.PlayerCommand{Action: domain.ActionSetVolume, Volume: volume}); err != nil {
		return err
	}

	r.mu.Lock()
	r.status.Volume = volume
	r.mu.Unlock()
	return nil
}

func (r *Remote) CurrentTime() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status.Position
}

func (r *Remote) State() domain.PlayerState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status.State
}

func (r *Remote) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Apply mirrors an event reported by the player and forwards the state to
// the listener. Events for a video other than the loaded one are ignored.
func (r *Remote) Apply(ctx context.Context, event domain.PlayerEvent) error {
	state, err := domain.ParsePlayerState(string(event.State))
	if err != nil {
		return err
	}

	r.mu.Lock()
	if event.VideoID != "" && r.status.VideoID != "" && event.VideoID != r.status.VideoID {
		loaded := r.status.VideoID
		r.mu.Unlock()
		r.logger.Debug("ignoring event for stale video", "video_id", event.VideoID, "loaded", loaded)
		return nil
	}

	r.status.State = state
	if event.Volume != nil {
		r.status.Volume = clampVolume(*event.Volume)
	}
	if event.Position != nil {
		r.status.Position = *event.Position
	}
	listener := r.listener
	r.mu.Unlock()

	if listener == nil {
		return nil
	}
	return listener.OnPlayerState(ctx, state)
}

func (r *Remote) sendAndSet(ctx context.Context, cmd domain.PlayerCommand, state domain.PlayerState) error {
	if err := r.send(ctx, cmd); err != nil {
		return err
	}

	r.mu.Lock()
	r.status.State = state
	r.mu.Unlock()
	return nil
}

func (r *Remote) send(ctx context.Context, cmd domain.PlayerCommand) error {
	if err := r.sink.SendCommand(ctx, cmd); err != nil {
		return fmt.Errorf("send %s: %w", cmd.Action, err)
	}
	return nil
}

func clampVolume(v int) int {
	return min(max(v, MinVolume), MaxVolume)
}

// LogSink is a CommandSink for running without a message bus.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger.With("component", "player_sink")}
}

func (s *LogSink) SendCommand(_ context.Context, cmd domain.PlayerCommand) error {
	s.logger.Info("player command",
		"action", cmd.Action,
		"video_id", cmd.VideoID,
		"seconds", cmd.Seconds,
		"relative", cmd.Relative,
		"volume", cmd.Volume,
	)
	return nil
}
