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

type heroService interface {
	Create(ctx context.Context, req dto.CreateHeroRequest, files []dto.FileUpload) (*models.HeroContent, error)
	Get(ctx context.Context, id string) (*models.HeroContent, error)
	List(ctx context.Context) ([]*models.HeroContent, error)
	GetActive(ctx context.Context) (*models.HeroContent, error)
	Update(ctx context.Context, id string, req dto.UpdateHeroRequest) (*models.HeroContent, error)
	Activate(ctx context.Context, id string) (*models.HeroContent, error)
	SetCurrentMedia(ctx context.Context, id string, index int) (*models.HeroContent, error)
	AddMedia(ctx context.Context, id string, files []dto.FileUpload) (*models.HeroContent, error)
	RemoveMedia(ctx context.Context, id, mediaID string) (*models.HeroContent, error)
	Delete(ctx context.Context, id string) error
}

type heroHandlers struct {
	ResponseHandler response.ResponseHandler
	HeroSvc         heroService
	Staff           func(http.Handler) http.Handler
	Uploads         *upload.Middleware
}

func NewHeroHandlers(deps *Deps) *heroHandlers {
	return &heroHandlers{
		ResponseHandler: deps.ResponseHandler,
		HeroSvc:         deps.HeroSvc,
		Staff:           deps.Staff,
		Uploads:         deps.Images,
	}
}

func (h *heroHandlers) HeroRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/active", h.GetActive)

	r.Group(func(r chi.Router) {
		r.Use(h.Staff)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.With(h.Uploads.Array(mediaField, maxGalleryFiles)).Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}/activate", h.Activate)
		r.Patch("/{id}/current-media", h.SetCurrentMedia)
		r.Delete("/{id}", h.Delete)
		r.With(h.Uploads.Array(mediaField, maxGalleryFiles)).Post("/{id}/media", h.AddMedia)
		r.Delete("/{id}/media/{mediaId}", h.RemoveMedia)
	})
	return r
}

func (h *heroHandlers) GetActive(w http.ResponseWriter, r *http.Request) {
	hero, err := h.HeroSvc.GetActive(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, hero)
}

func (h *heroHandlers) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.HeroSvc.List(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, list)
}

func (h *heroHandlers) Get(w http.ResponseWriter, r *http.Request) {
	hero, err := h.HeroSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, hero)
}

func (h *heroHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateHeroRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	hero, err := h.HeroSvc.Create(r.Context(), req, upload.Files(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, hero)
}

func (h *heroHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateHeroRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	hero, err := h.HeroSvc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, hero)
}

func (h *heroHandlers) Activate(w http.ResponseWriter, r *http.Request) {
	hero, err := h.HeroSvc.Activate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, hero)
}

func (h *heroHandlers) SetCurrentMedia(w http.ResponseWriter, r *http.Request) {
	var req dto.SetCurrentMediaRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	hero, err := h.HeroSvc.SetCurrentMedia(r.Context(), chi.URLParam(r, "id"), req.Index)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, hero)
}

func (h *heroHandlers) AddMedia(w http.ResponseWriter, r *http.Request) {
	hero, err := h.HeroSvc.AddMedia(r.Context(), chi.URLParam(r, "id"), upload.Files(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, hero)
}

func (h *heroHandlers) RemoveMedia(w http.ResponseWriter, r *http.Request) {
	hero, err := h.HeroSvc.RemoveMedia(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "mediaId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, hero)
}

func (h *heroHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.HeroSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
