package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/activity"
	"github.com/lckh-guru/lckh-backend-go/internal/handler/http/response"
)

type ActivityHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListCategories(w http.ResponseWriter, r *http.Request)
}

type activityHandlerImpl struct {
	activityService activity.ActivityService
}

func NewActivityHandler(activityService activity.ActivityService) ActivityHandler {
	return &activityHandlerImpl{activityService: activityService}
}

// Create handles POST /activities
func (h *activityHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req activity.CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create activity decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.activityService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create activity service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Activity created successfully", result)
}

// List handles GET /activities
func (h *activityHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter activity.ActivityFilter
	var err error

	if filter.Month, err = queryInt(r, "month"); err != nil {
		response.BadRequest(w, "invalid month parameter", nil)
		return
	}
	if filter.Year, err = queryInt(r, "year"); err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return
	}
	filter.Category = r.URL.Query().Get("category")
	filter.Search = r.URL.Query().Get("search")

	result, err := h.activityService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get handles GET /activities/{id}
func (h *activityHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.activityService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update handles PUT /activities/{id}
func (h *activityHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req activity.UpdateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update activity decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.activityService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Update activity service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Activity updated successfully", result)
}

// Delete handles DELETE /activities/{id}
func (h *activityHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.activityService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Activity deleted successfully", nil)
}

// ListCategories handles GET /categories
func (h *activityHandlerImpl) ListCategories(w http.ResponseWriter, r *http.Request) {
	response.Success(w, activity.ListCategories())
}
