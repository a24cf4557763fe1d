package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
)

type serviceOfferingStore struct {
	docStore[models.ServiceOffering]
}

func NewServiceOfferingStore(client *firestore.Client) *serviceOfferingStore {
	return &serviceOfferingStore{docStore: newDocStore[models.ServiceOffering](client, "services", "service")}
}

func (s *serviceOfferingStore) Create(ctx context.Context, o *models.ServiceOffering) error {
	return s.create(ctx, o.ID, o)
}

func (s *serviceOfferingStore) Get(ctx context.Context, id string) (*models.ServiceOffering, error) {
	return s.get(ctx, id)
}

func (s *serviceOfferingStore) Update(ctx context.Context, o *models.ServiceOffering) error {
	return s.replace(ctx, o.ID, o)
}

func (s *serviceOfferingStore) Delete(ctx context.Context, id string) error {
	return s.delete(ctx, id)
}

func (s *serviceOfferingStore) List(ctx context.Context, f dto.ServiceFilter) ([]*models.ServiceOffering, error) {
	q := s.collection.Query
	if f.Category != "" {
		q = q.Where("category", "==", f.Category)
	}
	if f.ActiveOnly {
		q = q.Where("isActive", "==", true)
	}
	return s.query(ctx, q.OrderBy("order", firestore.Asc))
}

type aboutStore struct {
	doc *firestore.DocumentRef
}

func NewAboutStore(client *firestore.Client) *aboutStore {
	return &aboutStore{doc: client.Collection("about").Doc("content")}
}

// Get returns the about page, or an empty one before it is first saved.
func (s *aboutStore) Get(ctx context.Context) (*models.AboutContent, error) {
	var about models.AboutContent
	snap, err := s.doc.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return &about, nil
	}
	if err != nil {
		return nil, errs.NewDatabaseError("get about", "failed to load about content", err)
	}
	if err := snap.DataTo(&about); err != nil {
		return nil, errs.NewDatabaseError("decode about", "failed to decode about content", err)
	}
	return &about, nil
}

func (s *aboutStore) Save(ctx context.Context, about *models.AboutContent, now time.Time) error {
	about.UpdatedAt = now
	if _, err := s.doc.Set(ctx, about); err != nil {
		return errs.NewDatabaseError("save about", "failed to save about content", err)
	}
	return nil
}

type businessStore struct {
	docStore[models.Business]
}

func NewBusinessStore(client *firestore.Client) *businessStore {
	return &businessStore{docStore: newDocStore[models.Business](client, "businesses", "business")}
}

func (s *businessStore) Create(ctx context.Context, b *models.Business) error {
	return s.create(ctx, b.ID, b)
}

func (s *businessStore) Get(ctx context.Context, id string) (*models.Business, error) {
	return s.get(ctx, id)
}

func (s *businessStore) Update(ctx context.Context, b *models.Business) error {
	return s.replace(ctx, b.ID, b)
}

func (s *businessStore) Delete(ctx context.Context, id string) error {
	return s.delete(ctx, id)
}

func (s *businessStore) List(ctx context.Context, f dto.BusinessFilter) ([]*models.Business, error) {
	q := s.collection.Query
	if f.Category != "" {
		q = q.Where("category", "==", f.Category)
	}
	if f.Featured != nil {
		q = q.Where("featured", "==", *f.Featured)
	}
	if f.ActiveOnly {
		q = q.Where("isActive", "==", true)
	}
	return s.query(ctx, q.OrderBy("createdAt", firestore.Desc))
}

type productStore struct {
	docStore[models.Product]
}

func NewProductStore(client *firestore.Client) *productStore {
	return &productStore{docStore: newDocStore[models.Product](client, "products", "product")}
}

func (s *productStore) Create(ctx context.Context, p *models.Product) error {
	return s.create(ctx, p.ID, p)
}

func (s *productStore) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.get(ctx, id)
}

func (s *productStore) Update(ctx context.Context, p *models.Product) error {
	return s.replace(ctx, p.ID, p)
}

func (s *productStore) Delete(ctx context.Context, id string) error {
	return s.delete(ctx, id)
}

func (s *productStore) List(ctx context.Context, f dto.ProductFilter) ([]*models.Product, error) {
	q := s.collection.Query
	if f.BusinessID != "" {
		q = q.Where("businessId", "==", f.BusinessID)
	}
	return s.query(ctx, q.OrderBy("createdAt", firestore.Desc))
}
