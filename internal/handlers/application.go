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

type applicationService[T, Req any] interface {
	Submit(ctx context.Context, req Req, files []dto.FileUpload) (*T, error)
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, f dto.ApplicationFilter) ([]*T, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (*T, error)
	Delete(ctx context.Context, id string) error
}

type (
	accountApplicationService = applicationService[models.AccountApplication, dto.CreateAccountApplicationRequest]
	loanApplicationService    = applicationService[models.LoanApplication, dto.CreateLoanApplicationRequest]
)

// applicationHandlers serves both application collections. kindParam is the
// query parameter that filters on account or loan type.
type applicationHandlers[T, Req any] struct {
	ResponseHandler response.ResponseHandler
	Svc             applicationService[T, Req]
	Staff           func(http.Handler) http.Handler
	Uploads         *upload.Middleware
	fields          []string
	kindParam       string
}

func NewAccountApplicationHandlers(deps *Deps) *applicationHandlers[models.AccountApplication, dto.CreateAccountApplicationRequest] {
	return &applicationHandlers[models.AccountApplication, dto.CreateAccountApplicationRequest]{
		ResponseHandler: deps.ResponseHandler,
		Svc:             deps.AccountSvc,
		Staff:           deps.Staff,
		Uploads:         deps.Documents,
		fields:          dto.AccountDocumentFields,
		kindParam:       "accountType",
	}
}

func NewLoanApplicationHandlers(deps *Deps) *applicationHandlers[models.LoanApplication, dto.CreateLoanApplicationRequest] {
	return &applicationHandlers[models.LoanApplication, dto.CreateLoanApplicationRequest]{
		ResponseHandler: deps.ResponseHandler,
		Svc:             deps.LoanSvc,
		Staff:           deps.Staff,
		Uploads:         deps.Documents,
		fields:          dto.LoanDocumentFields,
		kindParam:       "loanType",
	}
}

func (h *applicationHandlers[T, Req]) ApplicationRoutes() chi.Router {
	r := chi.NewRouter()
	r.With(h.Uploads.Fields(h.fields...)).Post("/", h.Submit)

	r.Group(func(r chi.Router) {
		r.Use(h.Staff)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}/status", h.UpdateStatus)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func (h *applicationHandlers[T, Req]) Submit(w http.ResponseWriter, r *http.Request) {
	var req Req
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	app, err := h.Svc.Submit(r.Context(), req, upload.Files(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, app)
}

func (h *applicationHandlers[T, Req]) List(w http.ResponseWriter, r *http.Request) {
	q, err := queryParams(r, "status", "search", h.kindParam)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	apps, err := h.Svc.List(r.Context(), dto.ApplicationFilter{
		Status: q.Get("status"),
		Kind:   q.Get(h.kindParam),
		Search: q.Get("search"),
	})
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, apps)
}

func (h *applicationHandlers[T, Req]) Get(w http.ResponseWriter, r *http.Request) {
	app, err := h.Svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, app)
}

func (h *applicationHandlers[T, Req]) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	app, err := h.Svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, app)
}

func (h *applicationHandlers[T, Req]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
