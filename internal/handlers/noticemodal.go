package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/kv"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
	"github.com/GregMSThompson/sahakari-backend/internal/noticegate"
	"github.com/GregMSThompson/sahakari-backend/internal/response"
	"github.com/GregMSThompson/sahakari-backend/internal/services"
	"github.com/GregMSThompson/sahakari-backend/pkg/logger"
)

const (
	sessionCookie = "nm_sid"
	visitorCookie = "nm_vid"
	visitorMaxAge = 365 * 24 * time.Hour
)

type noticeModalService interface {
	Settings(ctx context.Context) (*models.NoticeModalSettings, error)
	UpdateSettings(ctx context.Context, req dto.UpdateNoticeModalRequest) (*models.NoticeModalSettings, error)
	Decide(ctx context.Context, gate services.ModalGate) dto.NoticeModalDecision
	Show(ctx context.Context, gate services.ModalGate) dto.NoticeModalDecision
	Dismiss(ctx context.Context, gate services.ModalGate, noticeID string) error
}

type dismissRequest struct {
	NoticeID string `json:"noticeId"`
}

type noticeModalHandlers struct {
	ResponseHandler response.ResponseHandler
	ModalSvc        noticeModalService
	Staff           func(http.Handler) http.Handler
	SessionKV       kv.Store
	VisitorKV       kv.Store
}

func NewNoticeModalHandlers(deps *Deps) *noticeModalHandlers {
	return &noticeModalHandlers{
		ResponseHandler: deps.ResponseHandler,
		ModalSvc:        deps.NoticeModalSvc,
		Staff:           deps.Staff,
		SessionKV:       deps.SessionKV,
		VisitorKV:       deps.VisitorKV,
	}
}

func (h *noticeModalHandlers) NoticeModalRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Decide)
	r.Post("/shown", h.Shown)
	r.Post("/dismiss", h.Dismiss)

	r.Group(func(r chi.Router) {
		r.Use(h.Staff)
		r.Get("/settings", h.Settings)
		r.Put("/", h.UpdateSettings)
	})
	return r
}

// gate builds the visitor's gate from the session and visitor cookies,
// issuing new ids when they are missing.
func (h *noticeModalHandlers) gate(w http.ResponseWriter, r *http.Request) *noticegate.Gate {
	sid := cookieID(w, r, sessionCookie, 0)
	vid := cookieID(w, r, visitorCookie, visitorMaxAge)
	return noticegate.New(
		kv.Prefixed(h.SessionKV, "session:"+sid+":"),
		kv.Prefixed(h.VisitorKV, "visitor:"+vid+":"),
		logger.FromContext(r.Context()),
	)
}

func cookieID(w http.ResponseWriter, r *http.Request, name string, maxAge time.Duration) string {
	if c, err := r.Cookie(name); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.NewString()
	secure := r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
	cookie := &http.Cookie{
		Name:     name,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		// the public site is served from another origin
		cookie.SameSite = http.SameSiteNoneMode
	}
	if maxAge > 0 {
		cookie.MaxAge = int(maxAge.Seconds())
	}
	http.SetCookie(w, cookie)
	r.AddCookie(cookie)
	return id
}

func (h *noticeModalHandlers) Decide(w http.ResponseWriter, r *http.Request) {
	decision := h.ModalSvc.Decide(r.Context(), h.gate(w, r))
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, decision)
}

func (h *noticeModalHandlers) Shown(w http.ResponseWriter, r *http.Request) {
	decision := h.ModalSvc.Show(r.Context(), h.gate(w, r))
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, decision)
}

func (h *noticeModalHandlers) Dismiss(w http.ResponseWriter, r *http.Request) {
	var req dismissRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if err := h.ModalSvc.Dismiss(r.Context(), h.gate(w, r), req.NoticeID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *noticeModalHandlers) Settings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.ModalSvc.Settings(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, settings)
}

func (h *noticeModalHandlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateNoticeModalRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	settings, err := h.ModalSvc.UpdateSettings(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, settings)
}
