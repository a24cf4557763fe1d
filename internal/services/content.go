package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
	"github.com/GregMSThompson/sahakari-backend/pkg/helpers"
	"github.com/GregMSThompson/sahakari-backend/pkg/logger"
)

const (
	aboutFolder    = "about"
	businessFolder = "businesses"
	productFolder  = "products"
)

type offeringOSStore interface {
	Create(ctx context.Context, o *models.ServiceOffering) error
	Get(ctx context.Context, id string) (*models.ServiceOffering, error)
	Update(ctx context.Context, o *models.ServiceOffering) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f dto.ServiceFilter) ([]*models.ServiceOffering, error)
}

type offeringService struct {
	store offeringOSStore
	now   func() time.Time
}

func NewOfferingService(store offeringOSStore) *offeringService {
	return &offeringService{store: store, now: time.Now}
}

func (s *offeringService) Create(ctx context.Context, req dto.CreateServiceRequest) (*models.ServiceOffering, error) {
	if err := firstError(
		required("name", req.Name),
		oneOf("category", req.Category, models.ServiceCategories),
		nonNegativeRate(req.InterestRate),
	); err != nil {
		return nil, err
	}
	now := s.now()
	o := &models.ServiceOffering{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		InterestRate: req.InterestRate,
		Features:     append([]string{}, req.Features...),
		IsActive:     helpers.ValueOr(req.IsActive, true),
		Order:        req.Order,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, o); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("service created", "service_id", o.ID)
	return o, nil
}

func (s *offeringService) Get(ctx context.Context, id string) (*models.ServiceOffering, error) {
	return s.store.Get(ctx, id)
}

func (s *offeringService) List(ctx context.Context, f dto.ServiceFilter) ([]*models.ServiceOffering, error) {
	if f.Category != "" {
		if err := oneOf("category", f.Category, models.ServiceCategories); err != nil {
			return nil, err
		}
	}
	return s.store.List(ctx, f)
}

func (s *offeringService) ListPublic(ctx context.Context, f dto.ServiceFilter) ([]*models.ServiceOffering, error) {
	f.ActiveOnly = true
	return s.List(ctx, f)
}

func (s *offeringService) Update(ctx context.Context, id string, req dto.UpdateServiceRequest) (*models.ServiceOffering, error) {
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	helpers.Assign(&o.Name, req.Name)
	helpers.Assign(&o.Description, req.Description)
	helpers.Assign(&o.Category, req.Category)
	helpers.Assign(&o.InterestRate, req.InterestRate)
	helpers.Assign(&o.Features, req.Features)
	helpers.Assign(&o.IsActive, req.IsActive)
	helpers.Assign(&o.Order, req.Order)
	if err := firstError(
		required("name", o.Name),
		oneOf("category", o.Category, models.ServiceCategories),
		nonNegativeRate(o.InterestRate),
	); err != nil {
		return nil, err
	}
	o.UpdatedAt = s.now()
	if err := s.store.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *offeringService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func nonNegativeRate(v float64) error {
	if v < 0 {
		return errs.NewValidationError("interestRate must not be negative")
	}
	return nil
}

type aboutASStore interface {
	Get(ctx context.Context) (*models.AboutContent, error)
	Save(ctx context.Context, about *models.AboutContent, now time.Time) error
}

type aboutService struct {
	store aboutASStore
	media media
	now   func() time.Time
}

func NewAboutService(store aboutASStore, delegate mediaDelegate, rec uploadRecorder) *aboutService {
	return &aboutService{store: store, media: newMedia(delegate, rec), now: time.Now}
}

func (s *aboutService) Get(ctx context.Context) (*models.AboutContent, error) {
	return s.store.Get(ctx)
}

func (s *aboutService) Update(ctx context.Context, req dto.UpdateAboutRequest, image *dto.FileUpload) (*models.AboutContent, error) {
	about, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	helpers.Assign(&about.Mission, req.Mission)
	helpers.Assign(&about.Vision, req.Vision)
	helpers.Assign(&about.History, req.History)
	helpers.Assign(&about.Values, req.Values)

	old, err := replaceAttachment(ctx, s.media, &about.Image, image, req.RemoveImage, aboutFolder)
	if err != nil {
		return nil, err
	}
	err = s.store.Save(ctx, about, s.now())
	s.media.settle(ctx, about.Image, old, err)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("about content updated")
	return about, nil
}

type businessBSStore interface {
	Create(ctx context.Context, b *models.Business) error
	Get(ctx context.Context, id string) (*models.Business, error)
	Update(ctx context.Context, b *models.Business) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f dto.BusinessFilter) ([]*models.Business, error)
}

type productPSStore interface {
	Create(ctx context.Context, p *models.Product) error
	Get(ctx context.Context, id string) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f dto.ProductFilter) ([]*models.Product, error)
}

type businessService struct {
	store    businessBSStore
	products productPSStore
	media    media
	now      func() time.Time
}

func NewBusinessService(store businessBSStore, products productPSStore, delegate mediaDelegate, rec uploadRecorder) *businessService {
	return &businessService{store: store, products: products, media: newMedia(delegate, rec), now: time.Now}
}

func (s *businessService) Create(ctx context.Context, req dto.CreateBusinessRequest, logo *dto.FileUpload) (*models.Business, error) {
	if err := firstError(required("name", req.Name), required("category", req.Category)); err != nil {
		return nil, err
	}
	if req.Email != "" {
		if err := validEmail("email", req.Email); err != nil {
			return nil, err
		}
	}
	now := s.now()
	b := &models.Business{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Owner:       req.Owner,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		Featured:    req.Featured,
		IsActive:    helpers.ValueOr(req.IsActive, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if logo != nil {
		a, err := s.media.attachment(ctx, *logo, businessFolder)
		if err != nil {
			return nil, err
		}
		b.Logo = a
	}
	if err := s.store.Create(ctx, b); err != nil {
		s.media.removeAttachment(ctx, b.Logo)
		return nil, err
	}
	logger.FromContext(ctx).Info("business created", "business_id", b.ID)
	return b, nil
}

func (s *businessService) Get(ctx context.Context, id string) (*models.Business, error) {
	return s.store.Get(ctx, id)
}

func (s *businessService) GetPublic(ctx context.Context, id string) (*models.Business, error) {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsActive {
		return nil, errs.NewForbiddenError("business is not active")
	}
	return b, nil
}

func (s *businessService) List(ctx context.Context, f dto.BusinessFilter) ([]*models.Business, error) {
	list, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return filterSearch(list, f.Search, func(b *models.Business) []string {
		return []string{b.Name, b.Description, b.Owner, b.Category}
	}), nil
}

func (s *businessService) ListPublic(ctx context.Context, f dto.BusinessFilter) ([]*models.Business, error) {
	f.ActiveOnly = true
	return s.List(ctx, f)
}

// ListPublicProducts lists the available products of an active business.
func (s *businessService) ListPublicProducts(ctx context.Context, id string) ([]*models.Product, error) {
	if _, err := s.GetPublic(ctx, id); err != nil {
		return nil, err
	}
	products, err := s.products.List(ctx, dto.ProductFilter{BusinessID: id})
	if err != nil {
		return nil, err
	}
	out := make([]*models.Product, 0, len(products))
	for _, p := range products {
		if p.IsAvailable {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *businessService) Update(ctx context.Context, id string, req dto.UpdateBusinessRequest, logo *dto.FileUpload) (*models.Business, error) {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	helpers.Assign(&b.Name, req.Name)
	helpers.Assign(&b.Category, req.Category)
	helpers.Assign(&b.Description, req.Description)
	helpers.Assign(&b.Owner, req.Owner)
	helpers.Assign(&b.Address, req.Address)
	helpers.Assign(&b.Phone, req.Phone)
	helpers.Assign(&b.Email, req.Email)
	helpers.Assign(&b.Website, req.Website)
	helpers.Assign(&b.Featured, req.Featured)
	helpers.Assign(&b.IsActive, req.IsActive)
	if err := firstError(required("name", b.Name), required("category", b.Category)); err != nil {
		return nil, err
	}

	old, err := replaceAttachment(ctx, s.media, &b.Logo, logo, req.RemoveLogo, businessFolder)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt = s.now()
	err = s.store.Update(ctx, b)
	s.media.settle(ctx, b.Logo, old, err)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes the business and its products, then their stored images.
func (s *businessService) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	products, err := s.products.List(ctx, dto.ProductFilter{BusinessID: id})
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.media.removeAttachment(ctx, b.Logo)

	for _, p := range products {
		if err := s.products.Delete(ctx, p.ID); err != nil && !errs.IsNotFound(err) {
			log.Warn("failed to delete product of removed business", "product_id", p.ID, "error", err)
			continue
		}
		s.media.removeAttachment(ctx, p.Image)
	}
	log.Info("business deleted", "business_id", id, "products", len(products))
	return nil
}

type productBusinessLookup interface {
	Get(ctx context.Context, id string) (*models.Business, error)
}

type productService struct {
	store      productPSStore
	businesses productBusinessLookup
	media      media
	now        func() time.Time
}

func NewProductService(store productPSStore, businesses productBusinessLookup, delegate mediaDelegate, rec uploadRecorder) *productService {
	return &productService{store: store, businesses: businesses, media: newMedia(delegate, rec), now: time.Now}
}

// Create fails with NotFound when the business does not exist.
func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest, image *dto.FileUpload) (*models.Product, error) {
	if err := firstError(required("businessId", req.BusinessID), required("name", req.Name)); err != nil {
		return nil, err
	}
	if req.Price < 0 {
		return nil, errs.NewValidationError("price must not be negative")
	}
	if _, err := s.businesses.Get(ctx, req.BusinessID); err != nil {
		return nil, err
	}

	now := s.now()
	p := &models.Product{
		ID:          uuid.NewString(),
		BusinessID:  req.BusinessID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsAvailable: helpers.ValueOr(req.IsAvailable, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if image != nil {
		a, err := s.media.attachment(ctx, *image, productFolder)
		if err != nil {
			return nil, err
		}
		p.Image = a
	}
	if err := s.store.Create(ctx, p); err != nil {
		s.media.removeAttachment(ctx, p.Image)
		return nil, err
	}
	logger.FromContext(ctx).Info("product created", "product_id", p.ID, "business_id", p.BusinessID)
	return p, nil
}

func (s *productService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.store.Get(ctx, id)
}

func (s *productService) List(ctx context.Context, f dto.ProductFilter) ([]*models.Product, error) {
	list, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return filterSearch(list, f.Search, func(p *models.Product) []string {
		return []string{p.Name, p.Description}
	}), nil
}

func (s *productService) Update(ctx context.Context, id string, req dto.UpdateProductRequest, image *dto.FileUpload) (*models.Product, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	helpers.Assign(&p.Name, req.Name)
	helpers.Assign(&p.Description, req.Description)
	helpers.Assign(&p.Price, req.Price)
	helpers.Assign(&p.IsAvailable, req.IsAvailable)
	if err := required("name", p.Name); err != nil {
		return nil, err
	}
	if p.Price < 0 {
		return nil, errs.NewValidationError("price must not be negative")
	}

	old, err := replaceAttachment(ctx, s.media, &p.Image, image, req.RemoveImage, productFolder)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt = s.now()
	err = s.store.Update(ctx, p)
	s.media.settle(ctx, p.Image, old, err)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.media.removeAttachment(ctx, p.Image)
	return nil
}
