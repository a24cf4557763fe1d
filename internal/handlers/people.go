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

const (
	shareholderPhotoField = "photo"
	teamPhotoField        = "image"
)

type shareholderService interface {
	Create(ctx context.Context, req dto.CreateShareholderRequest, photo *dto.FileUpload) (*models.Shareholder, error)
	Get(ctx context.Context, id string) (*models.Shareholder, error)
	List(ctx context.Context, f dto.ShareholderFilter) ([]*models.Shareholder, error)
	ListPublic(ctx context.Context, f dto.ShareholderFilter) ([]*models.Shareholder, error)
	Update(ctx context.Context, id string, req dto.UpdateShareholderRequest, photo *dto.FileUpload) (*models.Shareholder, error)
	Delete(ctx context.Context, id string) error
}

type shareholderHandlers struct {
	ResponseHandler response.ResponseHandler
	ShareholderSvc  shareholderService
	Staff           func(http.Handler) http.Handler
	Uploads         *upload.Middleware
}

func NewShareholderHandlers(deps *Deps) *shareholderHandlers {
	return &shareholderHandlers{
		ResponseHandler: deps.ResponseHandler,
		ShareholderSvc:  deps.ShareholderSvc,
		Staff:           deps.Staff,
		Uploads:         deps.Images,
	}
}

func (h *shareholderHandlers) ShareholderRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/public", h.ListPublic)

	r.Group(func(r chi.Router) {
		r.Use(h.Staff)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.With(h.Uploads.Fields(shareholderPhotoField)).Post("/", h.Create)
		r.With(h.Uploads.Fields(shareholderPhotoField)).Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func (h *shareholderHandlers) filter(r *http.Request) (dto.ShareholderFilter, error) {
	q, err := queryParams(r, "role", "search")
	if err != nil {
		return dto.ShareholderFilter{}, err
	}
	return dto.ShareholderFilter{Role: q.Get("role"), Search: q.Get("search")}, nil
}

func (h *shareholderHandlers) ListPublic(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	list, err := h.ShareholderSvc.ListPublic(r.Context(), f)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, list)
}

func (h *shareholderHandlers) List(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	list, err := h.ShareholderSvc.List(r.Context(), f)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, list)
}

func (h *shareholderHandlers) Get(w http.ResponseWriter, r *http.Request) {
	sh, err := h.ShareholderSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, sh)
}

func (h *shareholderHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateShareholderRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	sh, err := h.ShareholderSvc.Create(r.Context(), req, upload.First(r.Context(), shareholderPhotoField))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, sh)
}

func (h *shareholderHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateShareholderRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	sh, err := h.ShareholderSvc.Update(r.Context(), chi.URLParam(r, "id"), req, upload.First(r.Context(), shareholderPhotoField))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, sh)
}

func (h *shareholderHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ShareholderSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

type teamService interface {
	Create(ctx context.Context, req dto.CreateTeamMemberRequest, photo *dto.FileUpload) (*models.TeamMember, error)
	Get(ctx context.Context, id string) (*models.TeamMember, error)
	List(ctx context.Context, f dto.TeamFilter) ([]*models.TeamMember, error)
	ListPublic(ctx context.Context, f dto.TeamFilter) ([]*models.TeamMember, error)
	Update(ctx context.Context, id string, req dto.UpdateTeamMemberRequest, photo *dto.FileUpload) (*models.TeamMember, error)
	Delete(ctx context.Context, id string) error
}

type teamHandlers struct {
	ResponseHandler response.ResponseHandler
	TeamSvc         teamService
	Staff           func(http.Handler) http.Handler
	Uploads         *upload.Middleware
}

func NewTeamHandlers(deps *Deps) *teamHandlers {
	return &teamHandlers{
		ResponseHandler: deps.ResponseHandler,
		TeamSvc:         deps.TeamSvc,
		Staff:           deps.Staff,
		Uploads:         deps.Images,
	}
}

func (h *teamHandlers) TeamRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/public", h.ListPublic)

	r.Group(func(r chi.Router) {
		r.Use(h.Staff)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.With(h.Uploads.Fields(teamPhotoField)).Post("/", h.Create)
		r.With(h.Uploads.Fields(teamPhotoField)).Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func (h *teamHandlers) filter(r *http.Request) (dto.TeamFilter, error) {
	q, err := queryParams(r, "position", "search")
	if err != nil {
		return dto.TeamFilter{}, err
	}
	return dto.TeamFilter{Position: q.Get("position"), Search: q.Get("search")}, nil
}

func (h *teamHandlers) ListPublic(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	list, err := h.TeamSvc.ListPublic(r.Context(), f)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, list)
}

func (h *teamHandlers) List(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	list, err := h.TeamSvc.List(r.Context(), f)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, list)
}

func (h *teamHandlers) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.TeamSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, m)
}

func (h *teamHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTeamMemberRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	m, err := h.TeamSvc.Create(r.Context(), req, upload.First(r.Context(), teamPhotoField))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, m)
}

func (h *teamHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateTeamMemberRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	m, err := h.TeamSvc.Update(r.Context(), chi.URLParam(r, "id"), req, upload.First(r.Context(), teamPhotoField))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, m)
}

func (h *teamHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.TeamSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
