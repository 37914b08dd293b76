package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"feed_player/internal/domain"
	"feed_player/internal/keys"
	"feed_player/internal/service"
)

type feedRequest struct {
	Feed string `json:"feed"`
}

type markRequest struct {
	State string `json:"state"`
}

type keyRequest struct {
	Key string `json:"key"`
}

type feedsResponse struct {
	Current string   `json:"current"`
	Feeds   []string `json:"feeds"`
}

type loadMoreResponse struct {
	Added int `json:"added"`
}

func (s *Server) handleQueue(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, s.controller.Snapshot())
}

func (s *Server) handleFeeds(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, feedsResponse{
		Current: s.controller.Snapshot().Feed,
		Feeds:   s.feeds,
	})
}

func (s *Server) handleChangeFeed(w http.ResponseWriter, r *http.Request) {
	var req feedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	feed := strings.TrimPrefix(strings.TrimSpace(req.Feed), "r/")
	if !feedPattern.MatchString(feed) {
		WriteError(w, http.StatusBadRequest, "invalid feed name")
		return
	}

	s.startSession(feed)
	WriteJSON(w, http.StatusAccepted, feedRequest{Feed: feed})
}

func (s *Server) handleLoadMore(w http.ResponseWriter, r *http.Request) {
	added, err := s.controller.LoadMore(r.Context())
	if err != nil {
		s.writeControllerError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, loadMoreResponse{Added: added})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.Select(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeControllerError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, s.controller.Snapshot())
}

func (s *Server) handleMark(w http.ResponseWriter, r *http.Request) {
	var req markRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mark, err := domain.ParseWatchMark(req.State)
	if err != nil {
		s.writeControllerError(w, err)
		return
	}

	if err := s.controller.Mark(r.Context(), chi.URLParam(r, "id"), mark); err != nil {
		s.writeControllerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.SelectNext(r.Context()); err != nil {
		s.writeControllerError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, s.controller.Snapshot())
}

func (s *Server) handlePrevious(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.SelectPrevious(r.Context()); err != nil {
		s.writeControllerError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, s.controller.Snapshot())
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.SaveAll(r.Context()); err != nil {
		s.writeControllerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.ClearHistory(r.Context()); err != nil {
		s.writeControllerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.keys.Handle(r.Context(), req.Key); err != nil {
		s.writeControllerError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, s.player.Status())
}

func (s *Server) handlePlayerStatus(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, s.player.Status())
}

func (s *Server) handlePlayerEvent(w http.ResponseWriter, r *http.Request) {
	var event domain.PlayerEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.player.Apply(r.Context(), event); err != nil {
		s.writeControllerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeControllerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnknownMark),
		errors.Is(err, domain.ErrUnknownPlayerState),
		errors.Is(err, keys.ErrUnknownKey):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrStaleSession):
		WriteError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
