package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
	"github.com/GregMSThompson/sahakari-backend/internal/response"
	"github.com/GregMSThompson/sahakari-backend/internal/upload"
)

const mediaField = "media"

type galleryService interface {
	Create(ctx context.Context, req dto.CreateEventRequest) (*models.GalleryEvent, error)
	Get(ctx context.Context, id string) (*models.GalleryEvent, error)
	GetPublic(ctx context.Context, id string) (*models.GalleryEvent, error)
	List(ctx context.Context, f dto.EventFilter) ([]*models.GalleryEvent, error)
	ListPublic(ctx context.Context, f dto.EventFilter) ([]*models.GalleryEvent, error)
	Update(ctx context.Context, id string, req dto.UpdateEventRequest) (*models.GalleryEvent, error)
	SetPublished(ctx context.Context, id string, published bool) (*models.GalleryEvent, error)
	Delete(ctx context.Context, id string) error
	AddMedia(ctx context.Context, id string, files []dto.FileUpload) (*models.GalleryEvent, error)
	RemoveMedia(ctx context.Context, eventID, mediaID string) (*models.GalleryEvent, error)
}

type galleryHandlers struct {
	ResponseHandler response.ResponseHandler
	GallerySvc      galleryService
	Staff           func(http.Handler) http.Handler
	Uploads         *upload.Middleware
}

func NewGalleryHandlers(deps *Deps) *galleryHandlers {
	return &galleryHandlers{
		ResponseHandler: deps.ResponseHandler,
		GallerySvc:      deps.GallerySvc,
		Staff:           deps.Staff,
		Uploads:         deps.Images,
	}
}

func (h *galleryHandlers) GalleryRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/public", h.ListPublic)
	r.Get("/public/{id}", h.GetPublic)

	r.Group(func(r chi.Router) {
		r.Use(h.Staff)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}/publish", h.Publish)
		r.Delete("/{id}", h.Delete)
		r.With(h.Uploads.Array(mediaField, maxGalleryFiles)).Post("/{id}/media", h.AddMedia)
		r.Delete("/{id}/media/{mediaId}", h.RemoveMedia)
	})
	return r
}

func (h *galleryHandlers) ListPublic(w http.ResponseWriter, r *http.Request) {
	q, err := queryParams(r, "search")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	events, err := h.GallerySvc.ListPublic(r.Context(), dto.EventFilter{Search: q.Get("search")})
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, events)
}

func (h *galleryHandlers) GetPublic(w http.ResponseWriter, r *http.Request) {
	e, err := h.GallerySvc.GetPublic(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, e)
}

func (h *galleryHandlers) List(w http.ResponseWriter, r *http.Request) {
	q, err := queryParams(r, "isPublished", "search")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	published, err := queryBool(q, "isPublished")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	events, err := h.GallerySvc.List(r.Context(), dto.EventFilter{IsPublished: published, Search: q.Get("search")})
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, events)
}

func (h *galleryHandlers) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.GallerySvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, e)
}

func (h *galleryHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	e, err := h.GallerySvc.Create(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, e)
}

func (h *galleryHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateEventRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	e, err := h.GallerySvc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, e)
}

func (h *galleryHandlers) Publish(w http.ResponseWriter, r *http.Request) {
	var req dto.PublishRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	e, err := h.GallerySvc.SetPublished(r.Context(), chi.URLParam(r, "id"), req.IsPublished)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, e)
}

func (h *galleryHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.GallerySvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *galleryHandlers) AddMedia(w http.ResponseWriter, r *http.Request) {
	e, err := h.GallerySvc.AddMedia(r.Context(), chi.URLParam(r, "id"), upload.Files(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, e)
}

func (h *galleryHandlers) RemoveMedia(w http.ResponseWriter, r *http.Request) {
	e, err := h.GallerySvc.RemoveMedia(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "mediaId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, e)
}
