package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/cash-merge/internal/games/cashmerge"
	"github.com/vovakirdan/cash-merge/internal/storage"
)

const defaultScoreLimit = 10

type HandlerDeps struct {
	Manager *Manager
	Store   *storage.Store // Optional; /api/scores is empty without it
}

// Handler serves the session endpoints.
type Handler struct {
	manager *Manager
	store   *storage.Store
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{manager: deps.Manager, store: deps.Store}
}

// Create starts a game and returns its first snapshot.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := decode[CreateSessionRequest](w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.manager.Create(payload.Player, payload.Seed)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.manager.Snapshot(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Click applies a cell click. Moves and swaps come back fully settled.
func (h *Handler) Click(w http.ResponseWriter, r *http.Request) {
	payload, err := decode[ClickRequest](w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pos := cashmerge.Pos{Row: payload.Row, Col: payload.Col}
	if !pos.InBounds() {
		writeError(w, http.StatusBadRequest, "cell out of bounds")
		return
	}

	resp, err := h.manager.Click(chi.URLParam(r, "id"), pos)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Exchange toggles exchange mode; the next coin click converts that coin.
func (h *Handler) Exchange(w http.ResponseWriter, r *http.Request) {
	resp, err := h.manager.ToggleExchange(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	resp, err := h.manager.Reset(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Delete(chi.URLParam(r, "id")); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Scores lists the best finished games.
func (h *Handler) Scores(w http.ResponseWriter, r *http.Request) {
	out := []ScoreResponse{}
	if h.store == nil {
		writeJSON(w, http.StatusOK, out)
		return
	}

	entries, err := h.store.TopScores(defaultScoreLimit)
	if err != nil {
		h.manager.logger.Error("could not load scores", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load scores")
		return
	}
	for i, e := range entries {
		out = append(out, ScoreResponse{
			Rank:          i + 1,
			Player:        e.Player,
			Score:         e.Score,
			Merges:        e.Merges,
			CouponPercent: e.CouponPercent,
			CreatedAt:     e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Rules returns the currency and event catalogs.
func (h *Handler) Rules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, NewRulesResponse())
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrTooManySessions), errors.Is(err, ErrManagerClosed):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.manager.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
