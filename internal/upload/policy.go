package upload

import (
	"fmt"
	"mime"
	"net/http"
	"slices"
	"strings"

	"github.com/GregMSThompson/sahakari-backend/internal/errs"
)

// Policy bounds what an upload endpoint accepts.
type Policy struct {
	MaxBytes     int64
	AllowedTypes []string
}

// Check validates a single file's declared content type and size.
func (p Policy) Check(contentType string, size int64) error {
	if size > p.MaxBytes {
		return errs.NewValidationError(fmt.Sprintf("File too large. Maximum size is %s", humanSize(p.MaxBytes)))
	}
	if !p.allows(contentType) {
		return errs.NewValidationError(fmt.Sprintf("Invalid file type. Allowed types: %s", strings.Join(p.AllowedTypes, ", ")))
	}
	return nil
}

func (p Policy) allows(contentType string) bool {
	mt := normalizeType(contentType)
	return mt != "" && slices.Contains(p.AllowedTypes, mt)
}

func normalizeType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(mt)
}

// detectType prefers the part header and sniffs the payload when the client
// sent nothing useful.
func detectType(header string, data []byte) string {
	if mt := normalizeType(header); mt != "" && mt != "application/octet-stream" {
		return mt
	}
	return normalizeType(http.DetectContentType(data))
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMB", n>>20)
	case n >= 1<<20:
		return fmt.Sprintf("%.1fMB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%dKB", n>>10)
	default:
		return fmt.Sprintf("%dB", n)
	}
}
