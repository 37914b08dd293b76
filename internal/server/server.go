// Package server exposes the playback controller over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sourcegraph/conc"

	"feed_player/internal/domain"
	"feed_player/internal/player"
	"feed_player/internal/service"
)

// Controller is the queue surface driven by the API.
type Controller interface {
	ChangeFeed(ctx context.Context, feed string) (*domain.SessionStats, error)
	LoadMore(ctx context.Context) (int, error)
	Select(ctx context.Context, id string) error
	SelectNext(ctx context.Context) error
	SelectPrevious(ctx context.Context) error
	Mark(ctx context.Context, id string, mark domain.WatchMark) error
	SaveAll(ctx context.Context) error
	ClearHistory(ctx context.Context) error
	Snapshot() domain.QueueSnapshot
}

type Player interface {
	Apply(ctx context.Context, event domain.PlayerEvent) error
	Status() player.Status
}

type KeyHandler interface {
	Handle(ctx context.Context, key string) error
}

type Config struct {
	Controller Controller
	Player     Player
	Keys       KeyHandler
	Feeds      []string
	Logger     *slog.Logger
}

// reddit subreddit naming rule
var feedPattern = regexp.MustCompile(`^[A-Za-z0-9_]{2,21}$`)

type Server struct {
	router     chi.Router
	controller Controller
	player     Player
	keys       KeyHandler
	feeds      []string
	logger     *slog.Logger

	// feed sessions outlive the request that started them
	baseCtx  context.Context
	stop     context.CancelFunc
	sessions conc.WaitGroup
}

func New(cfg Config) *Server {
	logger := cfg.Logger.With("component", "server")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(slogMiddleware(logger))

	baseCtx, stop := context.WithCancel(context.Background())

	s := &Server{
		router:     r,
		controller: cfg.Controller,
		player:     cfg.Player,
		keys:       cfg.Keys,
		feeds:      cfg.Feeds,
		logger:     logger,
		baseCtx:    baseCtx,
		stop:       stop,
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close cancels running feed sessions and waits for them to return.
func (s *Server) Close() {
	s.stop()
	s.sessions.Wait()
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/queue", s.handleQueue)
		r.Get("/feeds", s.handleFeeds)
		r.Post("/feed", s.handleChangeFeed)
		r.Post("/queue/more", s.handleLoadMore)

		r.Post("/videos/{id}/select", s.handleSelect)
		r.Post("/videos/{id}/mark", s.handleMark)
		r.Post("/next", s.handleNext)
		r.Post("/previous", s.handlePrevious)

		r.Post("/save", s.handleSave)
		r.Post("/history/clear", s.handleClearHistory)

		r.Post("/keys", s.handleKey)
		r.Get("/player", s.handlePlayerStatus)
		r.Post("/player/events", s.handlePlayerEvent)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) startSession(feed string) {
	s.sessions.Go(func() {
		ctx, cancel := context.WithTimeout(s.baseCtx, 5*time.Minute)
		defer cancel()

		if _, err := s.controller.ChangeFeed(ctx, feed); err != nil {
			if errors.Is(err, service.ErrStaleSession) {
				s.logger.Debug("feed session superseded", "feed", feed)
				return
			}
			s.logger.Error("feed session failed", "feed", feed, "error", err)
		}
	})
}
