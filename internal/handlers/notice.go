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

const noticeDocumentField = "document"

type noticeService interface {
	Create(ctx context.Context, req dto.CreateNoticeRequest, file *dto.FileUpload) (*models.Notice, error)
	Get(ctx context.Context, id string) (*models.Notice, error)
	GetPublic(ctx context.Context, id string) (*models.Notice, error)
	List(ctx context.Context, f dto.NoticeFilter) ([]*models.Notice, error)
	ListPublic(ctx context.Context, f dto.NoticeFilter) ([]*models.Notice, error)
	Update(ctx context.Context, id string, req dto.UpdateNoticeRequest, file *dto.FileUpload) (*models.Notice, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Notice, error)
	Delete(ctx context.Context, id string) error
}

type noticeHandlers struct {
	ResponseHandler response.ResponseHandler
	NoticeSvc       noticeService
	Staff           func(http.Handler) http.Handler
	Uploads         *upload.Middleware
}

func NewNoticeHandlers(deps *Deps) *noticeHandlers {
	return &noticeHandlers{
		ResponseHandler: deps.ResponseHandler,
		NoticeSvc:       deps.NoticeSvc,
		Staff:           deps.Staff,
		Uploads:         deps.Documents,
	}
}

func (h *noticeHandlers) NoticeRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/public", h.ListPublic)
	r.Get("/public/{id}", h.GetPublic)

	r.Group(func(r chi.Router) {
		r.Use(h.Staff)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.With(h.Uploads.Fields(noticeDocumentField)).Post("/", h.Create)
		r.With(h.Uploads.Fields(noticeDocumentField)).Put("/{id}", h.Update)
		r.Patch("/{id}/status", h.UpdateStatus)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func (h *noticeHandlers) filter(r *http.Request, allowed ...string) (dto.NoticeFilter, error) {
	q, err := queryParams(r, allowed...)
	if err != nil {
		return dto.NoticeFilter{}, err
	}
	important, err := queryBool(q, "important")
	if err != nil {
		return dto.NoticeFilter{}, err
	}
	return dto.NoticeFilter{
		Type:      q.Get("type"),
		Status:    q.Get("status"),
		Important: important,
		Search:    q.Get("search"),
	}, nil
}

func (h *noticeHandlers) ListPublic(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r, "type", "important", "search")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	notices, err := h.NoticeSvc.ListPublic(r.Context(), f)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, notices)
}

func (h *noticeHandlers) GetPublic(w http.ResponseWriter, r *http.Request) {
	n, err := h.NoticeSvc.GetPublic(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, n)
}

func (h *noticeHandlers) List(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r, "type", "status", "important", "search")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	notices, err := h.NoticeSvc.List(r.Context(), f)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, notices)
}

func (h *noticeHandlers) Get(w http.ResponseWriter, r *http.Request) {
	n, err := h.NoticeSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, n)
}

func (h *noticeHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateNoticeRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	n, err := h.NoticeSvc.Create(r.Context(), req, upload.First(r.Context(), noticeDocumentField))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, n)
}

func (h *noticeHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateNoticeRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	n, err := h.NoticeSvc.Update(r.Context(), chi.URLParam(r, "id"), req, upload.First(r.Context(), noticeDocumentField))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, n)
}

func (h *noticeHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	n, err := h.NoticeSvc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, n)
}

func (h *noticeHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.NoticeSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
