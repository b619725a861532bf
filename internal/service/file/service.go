package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Import for JPEG decoding support
	"image/png"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/storage"
	"golang.org/x/image/draw"
)

var (
	ErrUnsupportedImage = errors.New("invalid file type: only jpg, jpeg, png allowed")
	ErrImageTooLarge    = errors.New("image exceeds the maximum upload size")
)

// Signatures and stamps are printed a few centimetres wide, so larger images
// are scaled down to fit this box.
const (
	maxImageWidth  = 600
	maxImageHeight = 300
)

type FileService interface {
	// UploadSignature stores a user's signature and returns its storage path
	UploadSignature(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	// UploadSchoolImage stores a school-wide image such as the principal's signature or the stamp
	UploadSchoolImage(ctx context.Context, kind string, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string) (string, error)
}

type fileServiceImpl struct {
	storage       storage.FileStorage
	maxUploadSize int64
}

func NewFileService(storage storage.FileStorage, maxUploadSize int64) FileService {
	return &fileServiceImpl{
		storage:       storage,
		maxUploadSize: maxUploadSize,
	}
}

// UploadSignature implements FileService.
func (s *fileServiceImpl) UploadSignature(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	return s.uploadImage(ctx, path.Join("signatures", userID), file, filename)
}

// UploadSchoolImage implements FileService.
func (s *fileServiceImpl) UploadSchoolImage(ctx context.Context, kind string, file io.Reader, filename string) (string, error) {
	return s.uploadImage(ctx, path.Join("school", kind), file, filename)
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL generates URL to access file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string) (string, error) {
	return s.storage.GetURL(ctx, path)
}

func (s *fileServiceImpl) uploadImage(ctx context.Context, dir string, file io.Reader, filename string) (string, error) {
	// Validate file extension
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", ErrUnsupportedImage
	}

	// Read one byte past the limit to detect oversized uploads
	buffer, err := io.ReadAll(io.LimitReader(file, s.maxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(buffer)) > s.maxUploadSize {
		return "", ErrImageTooLarge
	}

	encoded, err := normalizeImage(buffer)
	if err != nil {
		return "", err
	}

	// Always stored as PNG to keep transparent backgrounds
	newPath := path.Join(dir, uuid.NewString()+".png")
	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(encoded), newPath, "image/png")
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return uploadedPath, nil
}

// ==================== HELPER FUNCTIONS ====================

// normalizeImage decodes a PNG/JPEG, scales it down to fit the print box and re-encodes it as PNG
func normalizeImage(buffer []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(buffer))
	if err != nil || (format != "png" && format != "jpeg") {
		return nil, ErrUnsupportedImage
	}

	bounds := img.Bounds()
	if w, h := fitWithin(bounds.Dx(), bounds.Dy(), maxImageWidth, maxImageHeight); w != bounds.Dx() || h != bounds.Dy() {
		img = resizeImage(img, w, h)
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// fitWithin returns the largest size with the same aspect ratio that fits in maxW x maxH.
// Images already inside the box keep their size.
func fitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := max(1, int(float64(w)*scale))
	nh := max(1, int(float64(h)*scale))
	return nw, nh
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// Use CatmullRom for high-quality downscaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
