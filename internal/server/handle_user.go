package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/roadsign/internal/roadsign"
	"github.com/abhisek/roadsign/internal/store"
)

type answerRequest struct {
	ID      string `path:"id" validate:"required,max=64"`
	Correct *bool  `json:"correct" validate:"required"`
}

type planRequest struct {
	Phone string `path:"phone" validate:"required,numeric,min=6,max=20"`
	Pro   *bool  `json:"pro" validate:"required"`
}

type statsParams struct {
	Phone string `path:"phone" validate:"required,numeric,min=6,max=20"`
}

// StatsResponse reports a user's quiz counters.
type StatsResponse struct {
	Phone string `json:"phone"`
	store.QuizStats
}

func handleAnswer(logger *slog.Logger, svc *roadsign.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req answerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		req.ID = chi.URLParam(r, "id")
		if err := validateRequest(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := svc.RecordAnswer(r.Context(), req.ID, *req.Correct); err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handlePlan(logger *slog.Logger, svc *roadsign.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req planRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		req.Phone = normalizePhone(chi.URLParam(r, "phone"))
		if err := validateRequest(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := svc.SetPlan(r.Context(), req.Phone, *req.Pro); err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleStats(logger *slog.Logger, svc *roadsign.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := statsParams{Phone: normalizePhone(chi.URLParam(r, "phone"))}
		if err := validateRequest(params); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		stats, err := svc.Stats(r.Context(), params.Phone)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, StatsResponse{Phone: params.Phone, QuizStats: stats})
	}
}
