package school

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/school"
	"github.com/lckh-guru/lckh-backend-go/internal/service/file"
)

const (
	imagePrincipalSignature = "principal-signature"
	imageStamp              = "stamp"
)

type schoolServiceImpl struct {
	schoolRepo  school.SchoolRepository
	fileService file.FileService
}

func NewSchoolService(schoolRepo school.SchoolRepository, fileService file.FileService) school.SchoolService {
	return &schoolServiceImpl{schoolRepo: schoolRepo, fileService: fileService}
}

func (s *schoolServiceImpl) url(ctx context.Context, path *string) (*string, error) {
	if path == nil || *path == "" {
		return nil, nil
	}
	u, err := s.fileService.GetFileURL(ctx, *path)
	if err != nil {
		return nil, fmt.Errorf("failed to build image url: %w", err)
	}
	return &u, nil
}

func (s *schoolServiceImpl) toResponse(ctx context.Context, settings school.Settings) (school.SettingsResponse, error) {
	resp := school.SettingsResponse{
		SchoolName:    settings.SchoolName,
		PrincipalName: settings.PrincipalName,
		PrincipalNIP:  settings.PrincipalNIP,
		City:          settings.City,
	}
	var err error
	if resp.PrincipalSignatureURL, err = s.url(ctx, settings.PrincipalSignaturePath); err != nil {
		return school.SettingsResponse{}, err
	}
	if resp.StampURL, err = s.url(ctx, settings.StampPath); err != nil {
		return school.SettingsResponse{}, err
	}
	if !settings.UpdatedAt.IsZero() {
		updatedAt := settings.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp, nil
}

// Get implements school.SchoolService. Before the first save an empty record is returned.
func (s *schoolServiceImpl) Get(ctx context.Context) (school.SettingsResponse, error) {
	settings, err := s.schoolRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, school.ErrSettingsNotFound) {
			return school.SettingsResponse{}, nil
		}
		return school.SettingsResponse{}, err
	}
	return s.toResponse(ctx, settings)
}

// Upsert implements school.SchoolService.
func (s *schoolServiceImpl) Upsert(ctx context.Context, req school.UpsertSettingsRequest) (school.SettingsResponse, error) {
	req.SchoolName = strings.TrimSpace(req.SchoolName)
	req.PrincipalName = strings.TrimSpace(req.PrincipalName)
	req.PrincipalNIP = strings.TrimSpace(req.PrincipalNIP)
	req.City = strings.TrimSpace(req.City)
	if err := req.Validate(); err != nil {
		return school.SettingsResponse{}, err
	}

	settings, err := s.schoolRepo.Upsert(ctx, req)
	if err != nil {
		return school.SettingsResponse{}, fmt.Errorf("failed to save school settings: %w", err)
	}
	return s.toResponse(ctx, settings)
}

// UploadPrincipalSignature implements school.SchoolService.
func (s *schoolServiceImpl) UploadPrincipalSignature(ctx context.Context, file io.Reader, filename string) (school.SettingsResponse, error) {
	return s.replaceImage(ctx, imagePrincipalSignature, file, filename,
		func(st school.Settings) *string { return st.PrincipalSignaturePath },
		s.schoolRepo.UpdatePrincipalSignaturePath,
	)
}

// UploadStamp implements school.SchoolService.
func (s *schoolServiceImpl) UploadStamp(ctx context.Context, file io.Reader, filename string) (school.SettingsResponse, error) {
	return s.replaceImage(ctx, imageStamp, file, filename,
		func(st school.Settings) *string { return st.StampPath },
		s.schoolRepo.UpdateStampPath,
	)
}

func (s *schoolServiceImpl) replaceImage(
	ctx context.Context,
	kind string,
	file io.Reader,
	filename string,
	current func(school.Settings) *string,
	save func(context.Context, string) (school.Settings, error),
) (school.SettingsResponse, error) {
	var previous *string
	existing, err := s.schoolRepo.Get(ctx)
	switch {
	case err == nil:
		previous = current(existing)
	case !errors.Is(err, school.ErrSettingsNotFound):
		return school.SettingsResponse{}, err
	}

	path, err := s.fileService.UploadSchoolImage(ctx, kind, file, filename)
	if err != nil {
		return school.SettingsResponse{}, err
	}

	settings, err := save(ctx, path)
	if err != nil {
		if delErr := s.fileService.DeleteFile(ctx, path); delErr != nil {
			slog.Warn("failed to remove orphaned school image", "path", path, "error", delErr)
		}
		return school.SettingsResponse{}, fmt.Errorf("failed to save school image: %w", err)
	}

	if previous != nil && *previous != "" {
		if err := s.fileService.DeleteFile(ctx, *previous); err != nil {
			slog.Warn("failed to remove previous school image", "path", *previous, "error", err)
		}
	}

	return s.toResponse(ctx, settings)
}
