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

type QuestionHandler struct {
	questionService *service.QuestionService
}

func NewQuestionHandler(qs *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: qs}
}

func (h *QuestionHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(instructor chi.Router) {
		instructor.Use(middleware.RequireRole(model.RoleInstructor))
		instructor.Post("/{contestId}/questions", h.addQuestion) // POST /api/contests/{contestId}/questions
	})

	r.Group(func(student chi.Router) {
		student.Use(middleware.RequireRole(model.RoleStudent))
		student.Get("/{contestId}/questions", h.listForStudent) // GET /api/contests/{contestId}/questions
	})
}

type addQuestionResponse struct {
	Message    string `json:"message"`
	QuestionID string `json:"questionId"`
}

func (h *QuestionHandler) addQuestion(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	contestID := chi.URLParam(r, "contestId")

	var req service.AddQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	questionID, err := h.questionService.AddQuestion(r.Context(), contestID, instructorID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, addQuestionResponse{
		Message:    "Question added successfully",
		QuestionID: questionID,
	})
}

func (h *QuestionHandler) listForStudent(w http.ResponseWriter, r *http.Request) {
	contestID := chi.URLParam(r, "contestId")

	questions, err := h.questionService.GetQuestionsForStudent(r.Context(), contestID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, questions)
}
