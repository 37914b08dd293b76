// Package tui is a terminal front end for the playback controller.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"feed_player/internal/domain"
	"feed_player/internal/player"
	"feed_player/internal/service"
)

const (
	refreshInterval = 500 * time.Millisecond
	actionTimeout   = 30 * time.Second
)

type Controller interface {
	ChangeFeed(ctx context.Context, feed string) (*domain.SessionStats, error)
	LoadMore(ctx context.Context) (int, error)
	Select(ctx context.Context, id string) error
	Mark(ctx context.Context, id string, mark domain.WatchMark) error
	SaveAll(ctx context.Context) error
	ClearHistory(ctx context.Context) error
	Snapshot() domain.QueueSnapshot
}

type KeyHandler interface {
	Handle(ctx context.Context, key string) error
}

type StatusSource interface {
	Status() player.Status
}

type tickMsg time.Time

type actionMsg struct {
	what string
	err  error
}

type Model struct {
	ctrl    Controller
	keys    KeyHandler
	player  StatusSource
	notices *NoticeBoard
	feeds   []string

	snapshot domain.QueueSnapshot
	status   player.Status
	cursor   int
	lastErr  error
	width    int
}

func NewModel(ctrl Controller, keys KeyHandler, ps StatusSource, notices *NoticeBoard, feeds []string) *Model {
	m := &Model{
		ctrl:    ctrl,
		keys:    keys,
		player:  ps,
		notices: notices,
		feeds:   feeds,
	}
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.refresh()
		return m, tick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case actionMsg:
		// A superseded feed switch is expected when the user tabs quickly.
		if !errors.Is(msg.err, service.ErrStaleSession) {
			m.lastErr = msg.err
		}
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	}
	return m, nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "ctrl+c", "q":
		return tea.Quit
	case "j":
		m.moveCursor(1)
	case "k":
		m.moveCursor(-1)
	case "enter":
		if id := m.cursorID(); id != "" {
			return m.run("select", func(ctx context.Context) error { return m.ctrl.Select(ctx, id) })
		}
	case "w", "u", "f":
		if id := m.cursorID(); id != "" {
			mark := map[string]domain.WatchMark{"w": domain.MarkWatched, "u": domain.MarkUnwatched, "f": domain.MarkFinished}[key]
			return m.run("mark", func(ctx context.Context) error { return m.ctrl.Mark(ctx, id, mark) })
		}
	case "tab":
		return m.changeFeed(m.nextFeed())
	case "m":
		return m.run("load more", func(ctx context.Context) error {
			_, err := m.ctrl.LoadMore(ctx)
			return err
		})
	case "s":
		return m.run("save", m.ctrl.SaveAll)
	case "C":
		return m.run("clear history", m.ctrl.ClearHistory)
	case " ", "space", "up", "down", "left", "right", "shift+left", "shift+right":
		return m.run("key", func(ctx context.Context) error { return m.keys.Handle(ctx, key) })
	}
	return nil
}

func (m *Model) changeFeed(feed string) tea.Cmd {
	m.cursor = 0
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		_, err := m.ctrl.ChangeFeed(ctx, feed)
		return actionMsg{what: "change feed", err: err}
	}
}

func (m *Model) run(what string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return actionMsg{what: what, err: fn(ctx)}
	}
}

func (m *Model) refresh() {
	m.snapshot = m.ctrl.Snapshot()
	if m.player != nil {
		m.status = m.player.Status()
	}
	if n := len(m.snapshot.Items); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *Model) moveCursor(delta int) {
	n := len(m.snapshot.Items)
	if n == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
}

func (m *Model) cursorID() string {
	if m.cursor < 0 || m.cursor >= len(m.snapshot.Items) {
		return ""
	}
	return m.snapshot.Items[m.cursor].ID
}

func (m *Model) nextFeed() string {
	if len(m.feeds) == 0 {
		return m.snapshot.Feed
	}
	for i, f := range m.feeds {
		if f == m.snapshot.Feed {
			return m.feeds[(i+1)%len(m.feeds)]
		}
	}
	return m.feeds[0]
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("r/" + m.snapshot.Feed))
	b.WriteString("\n")
	b.WriteString(m.renderFeeds())
	b.WriteString("\n\n")

	if len(m.snapshot.Items) == 0 {
		if m.snapshot.Settled {
			b.WriteString(watchedStyle.Render("no videos in this feed"))
		} else {
			b.WriteString(watchedStyle.Render("loading..."))
		}
		b.WriteString("\n")
	}

	for i, item := range m.snapshot.Items {
		line := fmt.Sprintf("%s %s", marker(item), item.Title)
		switch {
		case i == m.cursor:
			line = cursorStyle.Render(line)
		case item.Playing:
			line = playingStyle.Render(line)
		case item.Watched:
			line = watchedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(statusStyle.Render(fmt.Sprintf("%s  vol %d  %s",
		m.status.State, m.status.Volume, formatPosition(m.status.Position))))
	b.WriteString("\n")

	if m.notices != nil {
		if n, ok := m.notices.Current(); ok {
			style := infoStyle
			if n.Level == domain.NoticeError {
				style = errorStyle
			}
			b.WriteString(style.Render(n.Message))
			b.WriteString("\n")
		}
	}
	if m.lastErr != nil {
		b.WriteString(errorStyle.Render(m.lastErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("j/k move • enter play • space pause • ←/→ seek • ↑/↓ volume • shift+←/→ prev/next"))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("w watched • u unwatched • f finished • tab feed • m more • s save • C clear • q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderFeeds() string {
	tabs := make([]string, 0, len(m.feeds))
	for _, f := range m.feeds {
		if f == m.snapshot.Feed {
			tabs = append(tabs, activeTabStyle.Render(f))
			continue
		}
		tabs = append(tabs, feedTabStyle.Render(f))
	}
	return strings.Join(tabs, "")
}

func marker(item domain.QueueItem) string {
	switch {
	case item.Playing:
		return "▶"
	case item.Finished:
		return "✓"
	case item.Watched:
		return "·"
	default:
		return " "
	}
}

func formatPosition(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
