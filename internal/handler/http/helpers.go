package http

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/lckh-guru/lckh-backend-go/internal/handler/http/response"
	"github.com/lckh-guru/lckh-backend-go/internal/service/file"
)

// multipartOverhead leaves room for the form boundary and headers around the file part
const multipartOverhead = 64 << 10

// formFile reads the "file" part of a multipart upload. It writes the error
// response itself and returns ok=false when the request is unusable.
func formFile(w http.ResponseWriter, r *http.Request, maxSize int64) (multipart.File, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(maxSize + multipartOverhead); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.HandleError(w, file.ErrImageTooLarge)
			return nil, "", false
		}
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return nil, "", false
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.BadRequest(w, "Field 'file' is required", nil)
			return nil, "", false
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return nil, "", false
	}
	return f, header.Filename, true
}

// queryInt parses an optional integer query parameter; an absent value yields 0
func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// closeQuietly closes c and logs failures
func closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Warn("failed to close upload", "error", err)
	}
}
