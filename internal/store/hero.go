package store

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
)

// heroStore keeps at most one hero document active. hero_state/active names
// the active document and is read and written in the same transaction as the
// isActive flags, so concurrent activations serialize on it.
type heroStore struct {
	docStore[models.HeroContent]
	state *firestore.DocumentRef
}

type heroState struct {
	ActiveID  string    `firestore:"activeId"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func NewHeroStore(client *firestore.Client) *heroStore {
	return &heroStore{
		docStore: newDocStore[models.HeroContent](client, "hero_contents", "hero content"),
		state:    client.Collection("hero_state").Doc("active"),
	}
}

// Create writes a new document. An active document is created and made the
// only active one in a single transaction, so a failed activation leaves
// nothing behind.
func (s *heroStore) Create(ctx context.Context, h *models.HeroContent) error {
	if !h.IsActive {
		return s.create(ctx, h.ID, h)
	}
	ref := s.collection.Doc(h.ID)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		others, err := s.readActive(tx)
		if err != nil {
			return err
		}
		if err := tx.Create(ref, h); err != nil {
			return err
		}
		return s.writeActive(tx, h.ID, others, h.CreatedAt)
	})
	if status.Code(err) == codes.AlreadyExists {
		return errs.NewAlreadyExistsError("hero content already exists")
	}
	if err != nil {
		return errs.NewDatabaseError("create hero content", "failed to create hero content", err)
	}
	return nil
}

func (s *heroStore) Get(ctx context.Context, id string) (*models.HeroContent, error) {
	return s.get(ctx, id)
}

// Mutate applies fn to the stored document inside a transaction. The
// isActive flag belongs to Activate and Deactivate and is kept as stored.
func (s *heroStore) Mutate(ctx context.Context, id string, fn func(*models.HeroContent) error) (*models.HeroContent, error) {
	return s.mutate(ctx, id, func(h *models.HeroContent) error {
		active := h.IsActive
		if err := fn(h); err != nil {
			return err
		}
		h.IsActive = active
		return nil
	})
}

func (s *heroStore) List(ctx context.Context) ([]*models.HeroContent, error) {
	return s.query(ctx, s.collection.OrderBy("createdAt", firestore.Desc))
}

// Activate makes id the only active hero document.
func (s *heroStore) Activate(ctx context.Context, id string, now time.Time) error {
	if id == "" {
		return s.notFound()
	}
	target := s.collection.Doc(id)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(target); err != nil {
			return err
		}
		others, err := s.readActive(tx)
		if err != nil {
			return err
		}
		if err := tx.Update(target, []firestore.Update{
			{Path: "isActive", Value: true},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}
		return s.writeActive(tx, id, others, now)
	})
	if status.Code(err) == codes.NotFound {
		return s.notFound()
	}
	if err != nil {
		return errs.NewDatabaseError("activate hero content", "failed to activate hero content", err)
	}
	return nil
}

// readActive reads the state doc, so concurrent activations conflict, and
// returns the currently active documents.
func (s *heroStore) readActive(tx *firestore.Transaction) ([]*firestore.DocumentSnapshot, error) {
	if _, err := tx.Get(s.state); err != nil && status.Code(err) != codes.NotFound {
		return nil, err
	}
	return tx.Documents(s.collection.Where("isActive", "==", true)).GetAll()
}

// writeActive clears every other active document and records id in the state doc.
func (s *heroStore) writeActive(tx *firestore.Transaction, id string, active []*firestore.DocumentSnapshot, now time.Time) error {
	for _, snap := range active {
		if snap.Ref.ID == id {
			continue
		}
		if err := tx.Update(snap.Ref, []firestore.Update{
			{Path: "isActive", Value: false},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}
	}
	return tx.Set(s.state, heroState{ActiveID: id, UpdatedAt: now})
}

// Deactivate clears the active flag on id.
func (s *heroStore) Deactivate(ctx context.Context, id string, now time.Time) error {
	if id == "" {
		return s.notFound()
	}
	target := s.collection.Doc(id)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(target); err != nil {
			return err
		}
		stateSnap, err := tx.Get(s.state)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if err := tx.Update(target, []firestore.Update{
			{Path: "isActive", Value: false},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}
		if s.isActiveState(stateSnap, id) {
			return tx.Delete(s.state)
		}
		return nil
	})
	if status.Code(err) == codes.NotFound {
		return s.notFound()
	}
	if err != nil {
		return errs.NewDatabaseError("deactivate hero content", "failed to deactivate hero content", err)
	}
	return nil
}

func (s *heroStore) isActiveState(snap *firestore.DocumentSnapshot, id string) bool {
	if snap == nil || !snap.Exists() {
		return false
	}
	var st heroState
	if err := snap.DataTo(&st); err != nil {
		return false
	}
	return st.ActiveID == id
}

// GetActive returns the active hero document, or NotFound when none is active.
func (s *heroStore) GetActive(ctx context.Context) (*models.HeroContent, error) {
	iter := s.collection.Where("isActive", "==", true).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, errs.NewNotFoundError("no active hero content")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("get active hero content", "failed to load active hero content", err)
	}
	return decode[models.HeroContent](snap, s.name)
}

// Delete removes the document and clears the state doc when it was active.
func (s *heroStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return s.notFound()
	}
	ref := s.collection.Doc(id)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		stateSnap, err := tx.Get(s.state)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if err := tx.Delete(snap.Ref); err != nil {
			return err
		}
		if s.isActiveState(stateSnap, id) {
			return tx.Delete(s.state)
		}
		return nil
	})
	if status.Code(err) == codes.NotFound {
		return s.notFound()
	}
	if err != nil {
		return errs.NewDatabaseError("delete hero content", "failed to delete hero content", err)
	}
	return nil
}
