package user

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/user"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/jwt"
	"github.com/lckh-guru/lckh-backend-go/internal/service/file"
)

type profileServiceImpl struct {
	userRepo    user.UserRepository
	fileService file.FileService
}

func NewProfileService(userRepo user.UserRepository, fileService file.FileService) user.ProfileService {
	return &profileServiceImpl{userRepo: userRepo, fileService: fileService}
}

func (s *profileServiceImpl) toResponse(ctx context.Context, u user.User) (user.ProfileResponse, error) {
	resp := user.ProfileResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		NIP:           u.NIP,
		Position:      u.Position,
		WorkUnit:      u.WorkUnit,
		OrgUnit:       u.OrgUnit,
		EmailVerified: u.EmailVerifiedAt != nil,
	}
	if u.SignaturePath != nil && *u.SignaturePath != "" {
		url, err := s.fileService.GetFileURL(ctx, *u.SignaturePath)
		if err != nil {
			return user.ProfileResponse{}, fmt.Errorf("failed to build signature url: %w", err)
		}
		resp.SignatureURL = &url
	}
	return resp, nil
}

// GetProfile implements user.ProfileService.
func (s *profileServiceImpl) GetProfile(ctx context.Context) (user.ProfileResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return s.toResponse(ctx, u)
}

// UpdateProfile implements user.ProfileService.
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) (user.ProfileResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.NIP = strings.TrimSpace(req.NIP)
	if err := req.Validate(); err != nil {
		return user.ProfileResponse{}, err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	u, err := s.userRepo.UpdateProfile(ctx, userID, req)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return s.toResponse(ctx, u)
}

// UploadSignature implements user.ProfileService. The previous image is removed once the new one is saved.
func (s *profileServiceImpl) UploadSignature(ctx context.Context, file io.Reader, filename string) (user.ProfileResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	current, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	path, err := s.fileService.UploadSignature(ctx, userID, file, filename)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	if err := s.userRepo.UpdateSignaturePath(ctx, userID, path); err != nil {
		if delErr := s.fileService.DeleteFile(ctx, path); delErr != nil {
			slog.Warn("failed to remove orphaned signature", "path", path, "error", delErr)
		}
		return user.ProfileResponse{}, err
	}

	if current.SignaturePath != nil && *current.SignaturePath != "" {
		if err := s.fileService.DeleteFile(ctx, *current.SignaturePath); err != nil {
			slog.Warn("failed to remove previous signature", "path", *current.SignaturePath, "error", err)
		}
	}

	current.SignaturePath = &path
	return s.toResponse(ctx, current)
}
