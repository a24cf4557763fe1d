package storageclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/errs"
)

const serviceName = "media storage"

// Adapter stores uploaded media in a Cloud Storage bucket. The object name
// doubles as the public id used to remove it later.
type Adapter struct {
	client  *storage.Client
	bucket  string
	baseURL string
	log     *slog.Logger
}

func NewAdapter(ctx context.Context, log *slog.Logger, bucket, baseURL string) (*Adapter, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	if baseURL == "" {
		baseURL = "https://storage.googleapis.com"
	}

	return &Adapter{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}, nil
}

func (a *Adapter) Close() error {
	err := a.client.Close()
	if err != nil && a.log != nil {
		a.log.Error("storage adapter close failed", "error", err)
	}
	return err
}

func (a *Adapter) Store(ctx context.Context, file dto.FileUpload, folder string) (dto.StoredObject, error) {
	out := dto.StoredObject{}

	name := ObjectName(folder, file.Filename, uuid.NewString())
	w := a.client.Bucket(a.bucket).Object(name).NewWriter(ctx)
	w.ContentType = file.ContentType
	w.CacheControl = "public, max-age=31536000"

	if _, err := w.Write(file.Data); err != nil {
		_ = w.Close()
		return out, errs.NewExternalServiceError(serviceName, "upload failed", true, err)
	}
	if err := w.Close(); err != nil {
		return out, errs.NewExternalServiceError(serviceName, "upload failed", true, err)
	}

	out.PublicID = name
	out.URL = a.ObjectURL(name)
	out.Format = strings.TrimPrefix(path.Ext(name), ".")
	out.Size = int64(len(file.Data))
	return out, nil
}

// Remove deletes an object. An object that is already gone is not an error.
func (a *Adapter) Remove(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	err := a.client.Bucket(a.bucket).Object(publicID).Delete(ctx)
	if err == nil || errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return errs.NewExternalServiceError(serviceName, "delete failed", true, err)
}

func (a *Adapter) ObjectURL(name string) string {
	return fmt.Sprintf("%s/%s/%s", a.baseURL, a.bucket, name)
}

// ObjectName builds "folder/id.ext", keeping the lowercased extension of the
// original filename.
func ObjectName(folder, filename, id string) string {
	ext := strings.ToLower(path.Ext(filename))
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return id + ext
	}
	return folder + "/" + id + ext
}
