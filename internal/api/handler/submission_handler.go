package handler

import (
	"encoding/json"
	"net/http"

	"shnoor_lms/internal/api/middleware"
	"shnoor_lms/internal/app/service"
	"shnoor_lms/internal/common"
	"shnoor_lms/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type SubmissionHandler struct {
	submissionService  *service.SubmissionService
	leaderboardService *service.LeaderboardService
}

func NewSubmissionHandler(ss *service.SubmissionService, ls *service.LeaderboardService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: ss, leaderboardService: ls}
}

func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(student chi.Router) {
		student.Use(middleware.RequireRole(model.RoleStudent))
		student.Post("/{contestId}/submit", h.submit)                  // POST /api/contests/{contestId}/submit
		student.Get("/submissions/{submissionId}", h.submissionResult) // GET /api/contests/submissions/{submissionId}
		student.Get("/{contestId}/leaderboard", h.leaderboard)         // GET /api/contests/{contestId}/leaderboard
	})
}

func (h *SubmissionHandler) submit(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	contestID := chi.URLParam(r, "contestId")

	var req service.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	resp, err := h.submissionService.Submit(r.Context(), contestID, studentID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *SubmissionHandler) submissionResult(w http.ResponseWriter, r *http.Request) {
	submissionID := chi.URLParam(r, "submissionId")

	result, err := h.submissionService.GetSubmissionResult(r.Context(), submissionID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

func (h *SubmissionHandler) leaderboard(w http.ResponseWriter, r *http.Request) {
	contestID := chi.URLParam(r, "contestId")

	entries, err := h.leaderboardService.Get(r.Context(), contestID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, entries)
}
