package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/holiday"
	"github.com/lckh-guru/lckh-backend-go/internal/handler/http/response"
)

type HolidayHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.HolidayService
	maxUploadSize  int64
}

func NewHolidayHandler(holidayService holiday.HolidayService, maxUploadSize int64) HolidayHandler {
	return &holidayHandlerImpl{holidayService: holidayService, maxUploadSize: maxUploadSize}
}

// Create handles POST /holidays
func (h *holidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create holiday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.holidayService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created successfully", result)
}

// List handles GET /holidays
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year")
	if err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return
	}

	result, err := h.holidayService.List(r.Context(), holiday.HolidayFilter{Year: year})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete handles DELETE /holidays/{id}
func (h *holidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.holidayService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted successfully", nil)
}

// Import handles POST /holidays/import with an .ics file in the "file" field
func (h *holidayHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	f, _, ok := formFile(w, r, h.maxUploadSize)
	if !ok {
		return
	}
	defer closeQuietly(f)

	result, err := h.holidayService.ImportICS(r.Context(), f)
	if err != nil {
		slog.Error("Holiday import error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Holidays imported", "inserted", result.Inserted, "skipped", result.Skipped)
	response.SuccessWithMessage(w, "Holidays imported successfully", result)
}
