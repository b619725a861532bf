package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/school"
	"github.com/lckh-guru/lckh-backend-go/internal/handler/http/response"
)

type SchoolHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	UploadPrincipalSignature(w http.ResponseWriter, r *http.Request)
	UploadStamp(w http.ResponseWriter, r *http.Request)
}

type schoolHandlerImpl struct {
	schoolService school.SchoolService
	maxUploadSize int64
}

func NewSchoolHandler(schoolService school.SchoolService, maxUploadSize int64) SchoolHandler {
	return &schoolHandlerImpl{schoolService: schoolService, maxUploadSize: maxUploadSize}
}

// Get handles GET /school
func (h *schoolHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.schoolService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Upsert handles PUT /school
func (h *schoolHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req school.UpsertSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Upsert school decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.schoolService.Upsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "School settings saved successfully", result)
}

// UploadPrincipalSignature handles POST /school/signature
func (h *schoolHandlerImpl) UploadPrincipalSignature(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, "Principal signature uploaded successfully", h.schoolService.UploadPrincipalSignature)
}

// UploadStamp handles POST /school/stamp
func (h *schoolHandlerImpl) UploadStamp(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, "School stamp uploaded successfully", h.schoolService.UploadStamp)
}

func (h *schoolHandlerImpl) upload(
	w http.ResponseWriter,
	r *http.Request,
	message string,
	save func(ctx context.Context, file io.Reader, filename string) (school.SettingsResponse, error),
) {
	f, filename, ok := formFile(w, r, h.maxUploadSize)
	if !ok {
		return
	}
	defer closeQuietly(f)

	result, err := save(r.Context(), f, filename)
	if err != nil {
		slog.Error("Upload school image error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}
