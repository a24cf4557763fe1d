package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
	"github.com/GregMSThompson/sahakari-backend/pkg/helpers"
)

type fakeBusinessStore struct {
	*memStore[models.Business]
}

func (f *fakeBusinessStore) List(context.Context, dto.BusinessFilter) ([]*models.Business, error) {
	return f.all(), nil
}

type fakeProductStore struct {
	*memStore[models.Product]
}

func (f *fakeProductStore) List(_ context.Context, filter dto.ProductFilter) ([]*models.Product, error) {
	var out []*models.Product
	for _, p := range f.all() {
		if filter.BusinessID != "" && p.BusinessID != filter.BusinessID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type businessFixture struct {
	businesses *fakeBusinessStore
	products   *fakeProductStore
	media      *fakeMedia
	business   *businessService
	product    *productService
}

func newBusinessFixture() *businessFixture {
	f := &businessFixture{
		businesses: &fakeBusinessStore{newMemStore(func(b *models.Business) string { return b.ID })},
		products:   &fakeProductStore{newMemStore(func(p *models.Product) string { return p.ID })},
		media:      &fakeMedia{},
	}
	rec := newRecorder()
	f.business = NewBusinessService(f.businesses, f.products, f.media, rec)
	f.product = NewProductService(f.products, f.businesses, f.media, rec)
	return f
}

func TestProductRequiresExistingBusiness(t *testing.T) {
	f := newBusinessFixture()
	_, err := f.product.Create(helpers.TestCtx(), dto.CreateProductRequest{BusinessID: "nope", Name: "Tea"}, nil)
	if !errs.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBusinessDeleteCascadesProducts(t *testing.T) {
	f := newBusinessFixture()
	ctx := helpers.TestCtx()

	logo := &dto.FileUpload{Filename: "logo.png", Data: []byte("l")}
	b, err := f.business.Create(ctx, dto.CreateBusinessRequest{Name: "Himalayan Tea", Category: "food"}, logo)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	image := &dto.FileUpload{Filename: "tea.png", Data: []byte("t")}
	p, err := f.product.Create(ctx, dto.CreateProductRequest{BusinessID: b.ID, Name: "Green tea", Price: 250}, image)
	if err != nil {
		t.Fatalf("product Create returned error: %v", err)
	}
	if _, err := f.product.Create(ctx, dto.CreateProductRequest{BusinessID: b.ID, Name: "Black tea", IsAvailable: helpers.Ptr(false)}, nil); err != nil {
		t.Fatal(err)
	}

	available, err := f.business.ListPublicProducts(ctx, b.ID)
	if err != nil {
		t.Fatalf("ListPublicProducts returned error: %v", err)
	}
	if len(available) != 1 || available[0].ID != p.ID {
		t.Fatalf("available products = %+v", available)
	}

	if err := f.business.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := f.product.Get(ctx, p.ID); !errs.IsNotFound(err) {
		t.Fatalf("product should be deleted, got %v", err)
	}
	if len(f.products.docs) != 0 {
		t.Fatalf("products remain: %d", len(f.products.docs))
	}
	if len(f.media.removed) != 2 {
		t.Fatalf("expected logo and product image removed, got %v", f.media.removed)
	}
}

func TestBusinessGetPublicInactive(t *testing.T) {
	f := newBusinessFixture()
	ctx := helpers.TestCtx()

	b, err := f.business.Create(ctx, dto.CreateBusinessRequest{Name: "Closed shop", Category: "retail", IsActive: helpers.Ptr(false)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.business.GetPublic(ctx, b.ID)
	var fe *errs.ForbiddenError
	if !errors.As(err, &fe) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
}

type fakeOfferingStore struct {
	*memStore[models.ServiceOffering]
}

func (f *fakeOfferingStore) List(context.Context, dto.ServiceFilter) ([]*models.ServiceOffering, error) {
	return f.all(), nil
}

func TestOfferingValidation(t *testing.T) {
	svc := NewOfferingService(&fakeOfferingStore{newMemStore(func(o *models.ServiceOffering) string { return o.ID })})
	ctx := helpers.TestCtx()

	o, err := svc.Create(ctx, dto.CreateServiceRequest{Name: "Fixed deposit", Category: "savings", InterestRate: 9.5, Features: []string{"monthly interest"}})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !o.IsActive {
		t.Fatal("service should default to active")
	}
	if _, err := svc.Update(ctx, o.ID, dto.UpdateServiceRequest{InterestRate: helpers.Ptr(-1.0)}); err == nil {
		t.Fatal("expected negative rate to fail")
	}
	if _, err := svc.Create(ctx, dto.CreateServiceRequest{Name: "x", Category: "crypto"}); err == nil {
		t.Fatal("expected invalid category to fail")
	}
}

type fakeAboutStore struct {
	about *models.AboutContent
	saves int
}

func (f *fakeAboutStore) Get(context.Context) (*models.AboutContent, error) {
	if f.about == nil {
		return &models.AboutContent{}, nil
	}
	cp := *f.about
	return &cp, nil
}

func (f *fakeAboutStore) Save(_ context.Context, about *models.AboutContent, now time.Time) error {
	cp := *about
	cp.UpdatedAt = now
	f.about = &cp
	f.saves++
	return nil
}

func TestAboutUpdateMergesFields(t *testing.T) {
	store := &fakeAboutStore{}
	media := &fakeMedia{}
	svc := NewAboutService(store, media, newRecorder())
	ctx := helpers.TestCtx()

	if _, err := svc.Update(ctx, dto.UpdateAboutRequest{Mission: helpers.Ptr("Serve members")}, &dto.FileUpload{Filename: "office.png"}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	got, err := svc.Update(ctx, dto.UpdateAboutRequest{Vision: helpers.Ptr("Prosperity"), RemoveImage: true}, nil)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.Mission != "Serve members" || got.Vision != "Prosperity" {
		t.Fatalf("fields not merged: %+v", got)
	}
	if got.Image != nil || len(media.removed) != 1 {
		t.Fatalf("image should be removed: image=%v removed=%v", got.Image, media.removed)
	}
}
