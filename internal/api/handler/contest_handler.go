package handler

import (
	"encoding/json"
	"net/http"

	"shnoor_lms/internal/api/middleware"
	"shnoor_lms/internal/app/service"
	"shnoor_lms/internal/common"
	"shnoor_lms/internal/domain/model"
	"shnoor_lms/internal/domain/repository"

	"github.com/go-chi/chi/v5"
)

type ContestHandler struct {
	contestService *service.ContestService
}

func NewContestHandler(cs *service.ContestService) *ContestHandler {
	return &ContestHandler{contestService: cs}
}

func (h *ContestHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(instructor chi.Router) {
		instructor.Use(middleware.RequireRole(model.RoleInstructor))
		instructor.Post("/", h.createContest)              // POST /api/contests
		instructor.Get("/mine", h.listMine)                // GET /api/contests/mine
		instructor.Put("/{contestId}", h.updateContest)    // PUT /api/contests/{contestId}
		instructor.Delete("/{contestId}", h.deleteContest) // DELETE /api/contests/{contestId}
	})

	r.Group(func(student chi.Router) {
		student.Use(middleware.RequireRole(model.RoleStudent))
		student.Get("/available", h.listAvailable) // GET /api/contests/available
		student.Get("/{contestId}", h.getContest)  // GET /api/contests/{contestId}
	})
}

func (h *ContestHandler) createContest(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateContestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	contest, err := h.contestService.CreateContest(r.Context(), instructorID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, contest)
}

func (h *ContestHandler) listMine(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	contests, err := h.contestService.ListMine(r.Context(), instructorID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contests)
}

func (h *ContestHandler) updateContest(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	id := chi.URLParam(r, "contestId")

	var upd repository.ContestUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	contest, err := h.contestService.UpdateContest(r.Context(), id, instructorID, upd)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contest)
}

func (h *ContestHandler) deleteContest(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	id := chi.URLParam(r, "contestId")

	if err := h.contestService.DeleteContest(r.Context(), id, instructorID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Contest deleted successfully"})
}

func (h *ContestHandler) listAvailable(w http.ResponseWriter, r *http.Request) {
	contests, err := h.contestService.ListAvailable(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contests)
}

func (h *ContestHandler) getContest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "contestId")

	contest, err := h.contestService.GetByID(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contest)
}
