package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lox/sevenstud/internal/game"
	"github.com/lox/sevenstud/internal/phh"
	"github.com/lox/sevenstud/internal/room"
)

// errBadRequest marks malformed parameters.
var errBadRequest = errors.New("bad request")

// envelope is the body of every API response.
type envelope struct {
	OK     bool   `json:"ok"`
	Detail any    `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, envelope{OK: true})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	roomID, err := required(r, "roomId")
	if err != nil {
		s.fail(w, err)
		return
	}
	users := strings.Split(r.FormValue("users"), ",")
	ante, err := optionalInt(r, "ante", game.MinAnte)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.manager.Start(roomID, users, ante); err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, roomID, r.FormValue("viewer"))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	roomID, err := required(r, "roomId")
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, roomID, r.FormValue("viewer"))
}

// handleHistory serves the room's last finished hand as a PHH document.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	roomID, err := required(r, "roomId")
	if err != nil {
		s.fail(w, err)
		return
	}
	h, err := s.manager.History(roomID)
	if err != nil {
		s.fail(w, err)
		return
	}
	data, err := phh.EncodeToBytes(h)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/toml")
	_, _ = w.Write(data)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.roomOp(w, r, s.manager.Next)
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	s.roomOp(w, r, s.manager.Resume)
}

// roomOp runs a room-wide operation and responds with the new view.
func (s *Server) roomOp(w http.ResponseWriter, r *http.Request, op func(roomID string) error) {
	roomID, err := required(r, "roomId")
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := op(roomID); err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, roomID, r.FormValue("viewer"))
}

// handleAction serves /bet, /raise, /call, /check and /fold.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	a, err := game.ParseAction(chi.URLParam(r, "action"))
	if err != nil || !seatAction(a) {
		http.NotFound(w, r)
		return
	}
	roomID, err := required(r, "roomId")
	if err != nil {
		s.fail(w, err)
		return
	}
	user, err := required(r, "user")
	if err != nil {
		s.fail(w, err)
		return
	}
	amount, err := optionalInt(r, "amount", 0)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.manager.Act(roomID, user, a, amount); err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, roomID, user)
}

func (s *Server) respond(w http.ResponseWriter, roomID, viewer string) {
	v, err := s.manager.Snapshot(roomID, viewer)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{OK: true, Detail: v})
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, envelope{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrIllegalAction), errors.Is(err, phh.ErrUnfinished):
		return http.StatusConflict
	case errors.Is(err, game.ErrInvalidSeats), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func seatAction(a game.Action) bool {
	switch a {
	case game.ActionBet, game.ActionRaise, game.ActionCall, game.ActionCheck, game.ActionFold:
		return true
	}
	return false
}

func required(r *http.Request, key string) (string, error) {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return "", fmt.Errorf("%w: missing %s", errBadRequest, key)
	}
	return v, nil
}

func optionalInt(r *http.Request, key string, def int) (int, error) {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errBadRequest, key)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
