package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/user"
	"github.com/lckh-guru/lckh-backend-go/internal/handler/http/response"
)

type ProfileHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UploadSignature(w http.ResponseWriter, r *http.Request)
}

type profileHandlerImpl struct {
	profileService user.ProfileService
	maxUploadSize  int64
}

func NewProfileHandler(profileService user.ProfileService, maxUploadSize int64) ProfileHandler {
	return &profileHandlerImpl{profileService: profileService, maxUploadSize: maxUploadSize}
}

// Get handles GET /profile
func (h *profileHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.profileService.GetProfile(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update handles PUT /profile
func (h *profileHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update profile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.profileService.UpdateProfile(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated successfully", result)
}

// UploadSignature handles POST /profile/signature
func (h *profileHandlerImpl) UploadSignature(w http.ResponseWriter, r *http.Request) {
	f, filename, ok := formFile(w, r, h.maxUploadSize)
	if !ok {
		return
	}
	defer closeQuietly(f)

	result, err := h.profileService.UploadSignature(r.Context(), f, filename)
	if err != nil {
		slog.Error("Upload signature error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Signature uploaded successfully", result)
}
