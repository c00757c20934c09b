package handlers

import (
	"net/http"

	"github.com/SCC42Luanda/transcendence-server/middleware"
	"github.com/SCC42Luanda/transcendence-server/services"
)

type QuizHandler struct {
	quizService services.QuizService
}

func NewQuizHandler(qs services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: qs}
}

// CategoriesHandler trata GET /quiz/categories
func (h *QuizHandler) CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.quizService.Categories(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"categories": categories}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StartAttemptHandler trata POST /quiz/attempts
func (h *QuizHandler) StartAttemptHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required to start a quiz")
		return
	}

	var input services.StartQuizInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	attempt, questions, err := h.quizService.StartAttempt(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"attempt": attempt, "questions": questions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SubmitHandler trata POST /quiz/attempts/{attemptID}/submit
func (h *QuizHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required to submit a quiz")
		return
	}

	attemptID, err := getIDFromURL(r, "attemptID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.SubmitQuizInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.quizService.Submit(r.Context(), userID, attemptID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// HistoryHandler trata GET /quiz/history
func (h *QuizHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	attempts, err := h.quizService.History(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"attempts": attempts}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StatisticsHandler trata GET /quiz/statistics
func (h *QuizHandler) StatisticsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	stats, err := h.quizService.Statistics(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"statistics": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
