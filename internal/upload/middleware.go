package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"
	"strings"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/pkg/logger"
)

// bytes kept in memory while parsing; the rest spills to temp files
const maxMemory = 32 << 20

type ctxKey struct{}

// ErrorWriter reports a rejected upload to the client.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// Middleware parses multipart requests against a Policy and exposes the
// accepted files to the handler through the request context. Requests that
// are not multipart pass through untouched.
type Middleware struct {
	Policy  Policy
	OnError ErrorWriter
}

func NewMiddleware(policy Policy, onError ErrorWriter) *Middleware {
	return &Middleware{Policy: policy, OnError: onError}
}

// Fields accepts at most one file for each named field.
func (m *Middleware) Fields(names ...string) func(http.Handler) http.Handler {
	limits := make(map[string]int, len(names))
	for _, n := range names {
		limits[n] = 1
	}
	return m.handler(limits)
}

// Array accepts up to max files under a single field.
func (m *Middleware) Array(name string, max int) func(http.Handler) http.Handler {
	return m.handler(map[string]int{name: max})
}

func (m *Middleware) handler(limits map[string]int) func(http.Handler) http.Handler {
	total := 0
	for _, n := range limits {
		total += n
	}
	// generous enough that an oversized file still parses and gets the
	// per-file size message
	bodyLimit := 2*m.Policy.MaxBytes*int64(total) + 1<<20

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMultipart(r) {
				next.ServeHTTP(w, r)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
			files, err := m.parse(r, limits)
			if err != nil {
				logger.FromContext(r.Context()).Warn("upload rejected", "error", err)
				m.OnError(w, r, err)
				return
			}
			defer r.MultipartForm.RemoveAll()

			ctx := context.WithValue(r.Context(), ctxKey{}, files)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (m *Middleware) parse(r *http.Request, limits map[string]int) ([]dto.FileUpload, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, errs.NewValidationError(fmt.Sprintf("File too large. Maximum size is %s", humanSize(m.Policy.MaxBytes)))
		}
		return nil, errs.NewValidationError("invalid multipart form")
	}

	var files []dto.FileUpload
	for field, headers := range r.MultipartForm.File {
		max, ok := limits[field]
		if !ok {
			return nil, errs.NewValidationError(fmt.Sprintf("Unexpected file field: %s", field))
		}
		if len(headers) > max {
			return nil, errs.NewValidationError(fmt.Sprintf("Too many files for field %s (max %d)", field, max))
		}
		for _, fh := range headers {
			f, err := m.read(field, fh)
			if err != nil {
				return nil, err
			}
			files = append(files, f)
		}
	}

	// stable order for callers and tests
	slices.SortStableFunc(files, func(a, b dto.FileUpload) int {
		return strings.Compare(a.Field, b.Field)
	})
	return files, nil
}

func (m *Middleware) read(field string, fh *multipart.FileHeader) (dto.FileUpload, error) {
	if fh.Size > m.Policy.MaxBytes {
		return dto.FileUpload{}, m.Policy.Check("", fh.Size)
	}

	src, err := fh.Open()
	if err != nil {
		return dto.FileUpload{}, errs.NewValidationError("unreadable file part")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, m.Policy.MaxBytes+1))
	if err != nil {
		return dto.FileUpload{}, errs.NewValidationError("unreadable file part")
	}

	contentType := detectType(fh.Header.Get("Content-Type"), data)
	if err := m.Policy.Check(contentType, int64(len(data))); err != nil {
		return dto.FileUpload{}, err
	}

	return dto.FileUpload{
		Field:       field,
		Filename:    fh.Filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

// Files returns the uploads accepted by the middleware for this request.
func Files(ctx context.Context) []dto.FileUpload {
	files, _ := ctx.Value(ctxKey{}).([]dto.FileUpload)
	return files
}

// First returns the first upload for field, if any.
func First(ctx context.Context, field string) *dto.FileUpload {
	for _, f := range Files(ctx) {
		if f.Field == field {
			return &f
		}
	}
	return nil
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/form-data")
}
