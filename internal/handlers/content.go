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
	aboutImageField   = "image"
	businessLogoField = "logo"
	productImageField = "image"
)

type offeringService interface {
	Create(ctx context.Context, req dto.CreateServiceRequest) (*models.ServiceOffering, error)
	Get(ctx context.Context, id string) (*models.ServiceOffering, error)
	List(ctx context.Context, f dto.ServiceFilter) ([]*models.ServiceOffering, error)
	ListPublic(ctx context.Context, f dto.ServiceFilter) ([]*models.ServiceOffering, error)
	Update(ctx context.Context, id string, req dto.UpdateServiceRequest) (*models.ServiceOffering, error)
	Delete(ctx context.Context, id string) error
}

type offeringHandlers struct {
	ResponseHandler response.ResponseHandler
	OfferingSvc     offeringService
	Staff           func(http.Handler) http.Handler
}

func NewOfferingHandlers(deps *Deps) *offeringHandlers {
	return &offeringHandlers{
		ResponseHandler: deps.ResponseHandler,
		OfferingSvc:     deps.OfferingSvc,
		Staff:           deps.Staff,
	}
}

func (h *offeringHandlers) OfferingRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/public", h.ListPublic)

	r.Group(func(r chi.Router) {
		r.Use(h.Staff)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func (h *offeringHandlers) ListPublic(w http.ResponseWriter, r *http.Request) {
	q, err := queryParams(r, "category")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	list, err := h.OfferingSvc.ListPublic(r.Context(), dto.ServiceFilter{Category: q.Get("category")})
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, list)
}

func (h *offeringHandlers) List(w http.ResponseWriter, r *http.Request) {
	q, err := queryParams(r, "category")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	list, err := h.OfferingSvc.List(r.Context(), dto.ServiceFilter{Category: q.Get("category")})
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, list)
}

func (h *offeringHandlers) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.OfferingSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, o)
}

func (h *offeringHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateServiceRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	o, err := h.OfferingSvc.Create(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, o)
}

func (h *offeringHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateServiceRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	o, err := h.OfferingSvc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, o)
}

func (h *offeringHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.OfferingSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

type aboutService interface {
	Get(ctx context.Context) (*models.AboutContent, error)
	Update(ctx context.Context, req dto.UpdateAboutRequest, image *dto.FileUpload) (*models.AboutContent, error)
}

type aboutHandlers struct {
	ResponseHandler response.ResponseHandler
	AboutSvc        aboutService
	Staff           func(http.Handler) http.Handler
	Uploads         *upload.Middleware
}

func NewAboutHandlers(deps *Deps) *aboutHandlers {
	return &aboutHandlers{
		ResponseHandler: deps.ResponseHandler,
		AboutSvc:        deps.AboutSvc,
		Staff:           deps.Staff,
		Uploads:         deps.Images,
	}
}

func (h *aboutHandlers) AboutRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	r.With(h.Staff, h.Uploads.Fields(aboutImageField)).Put("/", h.Update)
	return r
}

func (h *aboutHandlers) Get(w http.ResponseWriter, r *http.Request) {
	about, err := h.AboutSvc.Get(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, about)
}

func (h *aboutHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAboutRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	about, err := h.AboutSvc.Update(r.Context(), req, upload.First(r.Context(), aboutImageField))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, about)
}

type businessService interface {
	Create(ctx context.Context, req dto.CreateBusinessRequest, logo *dto.FileUpload) (*models.Business, error)
	Get(ctx context.Context, id string) (*models.Business, error)
	GetPublic(ctx context.Context, id string) (*models.Business, error)
	List(ctx context.Context, f dto.BusinessFilter) ([]*models.Business, error)
	ListPublic(ctx context.Context, f dto.BusinessFilter) ([]*models.Business, error)
	ListPublicProducts(ctx context.Context, id string) ([]*models.Product, error)
	Update(ctx context.Context, id string, req dto.UpdateBusinessRequest, logo *dto.FileUpload) (*models.Business, error)
	Delete(ctx context.Context, id string) error
}

type businessHandlers struct {
	ResponseHandler response.ResponseHandler
	BusinessSvc     businessService
	ProductSvc      productService
	Staff           func(http.Handler) http.Handler
	Uploads         *upload.Middleware
}

func NewBusinessHandlers(deps *Deps) *businessHandlers {
	return &businessHandlers{
		ResponseHandler: deps.ResponseHandler,
		BusinessSvc:     deps.BusinessSvc,
		ProductSvc:      deps.ProductSvc,
		Staff:           deps.Staff,
		Uploads:         deps.Images,
	}
}

func (h *businessHandlers) BusinessRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/public", h.ListPublic)
	r.Get("/public/{id}", h.GetPublic)
	r.Get("/public/{id}/products", h.ListPublicProducts)

	r.Group(func(r chi.Router) {
		r.Use(h.Staff)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Get("/{id}/products", h.ListProducts)
		r.With(h.Uploads.Fields(businessLogoField)).Post("/", h.Create)
		r.With(h.Uploads.Fields(businessLogoField)).Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func (h *businessHandlers) filter(r *http.Request) (dto.BusinessFilter, error) {
	q, err := queryParams(r, "category", "featured", "search")
	if err != nil {
		return dto.BusinessFilter{}, err
	}
	featured, err := queryBool(q, "featured")
	if err != nil {
		return dto.BusinessFilter{}, err
	}
	return dto.BusinessFilter{Category: q.Get("category"), Featured: featured, Search: q.Get("search")}, nil
}

func (h *businessHandlers) ListPublic(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	list, err := h.BusinessSvc.ListPublic(r.Context(), f)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, list)
}

func (h *businessHandlers) GetPublic(w http.ResponseWriter, r *http.Request) {
	b, err := h.BusinessSvc.GetPublic(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, b)
}

func (h *businessHandlers) ListPublicProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.BusinessSvc.ListPublicProducts(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, products)
}

func (h *businessHandlers) List(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	list, err := h.BusinessSvc.List(r.Context(), f)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, list)
}

func (h *businessHandlers) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.BusinessSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, b)
}

func (h *businessHandlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.BusinessSvc.Get(r.Context(), id); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	products, err := h.ProductSvc.List(r.Context(), dto.ProductFilter{BusinessID: id})
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, products)
}

func (h *businessHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBusinessRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	b, err := h.BusinessSvc.Create(r.Context(), req, upload.First(r.Context(), businessLogoField))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, b)
}

func (h *businessHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateBusinessRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	b, err := h.BusinessSvc.Update(r.Context(), chi.URLParam(r, "id"), req, upload.First(r.Context(), businessLogoField))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, b)
}

func (h *businessHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.BusinessSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

type productService interface {
	Create(ctx context.Context, req dto.CreateProductRequest, image *dto.FileUpload) (*models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, f dto.ProductFilter) ([]*models.Product, error)
	Update(ctx context.Context, id string, req dto.UpdateProductRequest, image *dto.FileUpload) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type productHandlers struct {
	ResponseHandler response.ResponseHandler
	ProductSvc      productService
	Staff           func(http.Handler) http.Handler
	Uploads         *upload.Middleware
}

func NewProductHandlers(deps *Deps) *productHandlers {
	return &productHandlers{
		ResponseHandler: deps.ResponseHandler,
		ProductSvc:      deps.ProductSvc,
		Staff:           deps.Staff,
		Uploads:         deps.Images,
	}
}

// ProductRoutes are all back office; the public site reads products through
// the business routes.
func (h *productHandlers) ProductRoutes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.Staff)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.With(h.Uploads.Fields(productImageField)).Post("/", h.Create)
	r.With(h.Uploads.Fields(productImageField)).Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

func (h *productHandlers) List(w http.ResponseWriter, r *http.Request) {
	q, err := queryParams(r, "businessId", "search")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	list, err := h.ProductSvc.List(r.Context(), dto.ProductFilter{BusinessID: q.Get("businessId"), Search: q.Get("search")})
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, list)
}

func (h *productHandlers) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.ProductSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, p)
}

func (h *productHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	p, err := h.ProductSvc.Create(r.Context(), req, upload.First(r.Context(), productImageField))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, p)
}

func (h *productHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProductRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	p, err := h.ProductSvc.Update(r.Context(), chi.URLParam(r, "id"), req, upload.First(r.Context(), productImageField))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, p)
}

func (h *productHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ProductSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
