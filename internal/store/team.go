package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
)

type teamStore struct {
	docStore[models.TeamMember]
}

func NewTeamStore(client *firestore.Client) *teamStore {
	return &teamStore{docStore: newDocStore[models.TeamMember](client, "team_members", "team member")}
}

func (s *teamStore) Create(ctx context.Context, m *models.TeamMember) error {
	return s.create(ctx, m.ID, m)
}

func (s *teamStore) Get(ctx context.Context, id string) (*models.TeamMember, error) {
	return s.get(ctx, id)
}

func (s *teamStore) Update(ctx context.Context, m *models.TeamMember) error {
	return s.replace(ctx, m.ID, m)
}

func (s *teamStore) Delete(ctx context.Context, id string) error {
	return s.delete(ctx, id)
}

func (s *teamStore) List(ctx context.Context, f dto.TeamFilter) ([]*models.TeamMember, error) {
	q := s.collection.Query
	if f.Position != "" {
		q = q.Where("position", "==", f.Position)
	}
	if f.ActiveOnly {
		q = q.Where("isActive", "==", true)
	}
	return s.query(ctx, q.OrderBy("order", firestore.Asc))
}
