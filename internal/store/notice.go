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

type noticeStore struct {
	docStore[models.Notice]
}

func NewNoticeStore(client *firestore.Client) *noticeStore {
	return &noticeStore{docStore: newDocStore[models.Notice](client, "notices", "notice")}
}

func (s *noticeStore) Create(ctx context.Context, n *models.Notice) error {
	return s.create(ctx, n.ID, n)
}

func (s *noticeStore) Get(ctx context.Context, id string) (*models.Notice, error) {
	return s.get(ctx, id)
}

func (s *noticeStore) Update(ctx context.Context, n *models.Notice) error {
	return s.replace(ctx, n.ID, n)
}

func (s *noticeStore) Delete(ctx context.Context, id string) error {
	return s.delete(ctx, id)
}

func (s *noticeStore) List(ctx context.Context, f dto.NoticeFilter) ([]*models.Notice, error) {
	q := s.collection.Query
	if f.PublishedOnly {
		q = q.Where("status", "==", models.NoticePublished)
	} else if f.Status != "" {
		q = q.Where("status", "==", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type", "==", f.Type)
	}
	if f.Important != nil {
		q = q.Where("important", "==", *f.Important)
	}
	return s.query(ctx, q.OrderBy("createdAt", firestore.Desc))
}

const noticeModalDoc = "noticeModal"

type noticeModalStore struct {
	doc *firestore.DocumentRef
}

func NewNoticeModalStore(client *firestore.Client) *noticeModalStore {
	return &noticeModalStore{doc: client.Collection("settings").Doc(noticeModalDoc)}
}

// Get returns the stored settings, or the disabled zero value when none
// have been saved yet.
func (s *noticeModalStore) Get(ctx context.Context) (*models.NoticeModalSettings, error) {
	var settings models.NoticeModalSettings
	snap, err := s.doc.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return &settings, nil
	}
	if err != nil {
		return nil, errs.NewDatabaseError("get notice modal", "failed to load notice modal settings", err)
	}
	if err := snap.DataTo(&settings); err != nil {
		return nil, errs.NewDatabaseError("decode notice modal", "failed to decode notice modal settings", err)
	}
	return &settings, nil
}

func (s *noticeModalStore) Save(ctx context.Context, settings *models.NoticeModalSettings, now time.Time) error {
	settings.UpdatedAt = now
	if _, err := s.doc.Set(ctx, settings); err != nil {
		return errs.NewDatabaseError("save notice modal", "failed to save notice modal settings", err)
	}
	return nil
}
