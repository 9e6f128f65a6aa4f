// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/click-experiment/leaderboard"
	"github.com/danielhkuo/click-experiment/middleware"
	"github.com/danielhkuo/click-experiment/models"
)

type LeaderboardHandler struct {
	svc *leaderboard.Service
}

func NewLeaderboardHandler(svc *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

// SubmitSession handles POST /api/session
func (h *LeaderboardHandler) SubmitSession(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		// An unreadable body carries no uid
		slog.Debug("session body rejected", "error", err)
		middleware.ErrorResponse(w, http.StatusBadRequest, leaderboard.ErrInvalidUID.Error())
		return
	}

	sessionClicks := 0
	if req.SessionClicks.Valid {
		sessionClicks = req.SessionClicks.Value
	}

	view, err := h.svc.RecordSession(r.Context(), string(req.UID), string(req.Team), sessionClicks, req.TotalLocalClicks)
	if err != nil {
		if leaderboard.IsValidation(err) {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to record session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LeaderboardResponse{
		OK:              true,
		LeaderboardView: view,
	})
}

// GetLeaderboard handles GET /api/leaderboard?uid=
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	uid := r.URL.Query().Get("uid")

	middleware.JSONResponse(w, http.StatusOK, models.LeaderboardResponse{
		OK:              true,
		LeaderboardView: h.svc.Leaderboard(uid),
	})
}
