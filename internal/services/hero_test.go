package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
	"github.com/GregMSThompson/sahakari-backend/pkg/helpers"
)

// fakeHeroStore keeps at most one document active, like the Firestore store.
type fakeHeroStore struct {
	*memStore[models.HeroContent]
}

func newFakeHeroStore() *fakeHeroStore {
	return &fakeHeroStore{newMemStore(func(h *models.HeroContent) string { return h.ID })}
}

func (f *fakeHeroStore) Create(ctx context.Context, h *models.HeroContent) error {
	active := h.IsActive
	h.IsActive = false
	if err := f.memStore.Create(ctx, h); err != nil {
		return err
	}
	if active {
		h.IsActive = true
		return f.Activate(ctx, h.ID, h.CreatedAt)
	}
	return nil
}

func (f *fakeHeroStore) List(context.Context) ([]*models.HeroContent, error) {
	return f.all(), nil
}

func (f *fakeHeroStore) Activate(_ context.Context, id string, now time.Time) error {
	if _, ok := f.docs[id]; !ok {
		return errs.NewNotFoundError("hero content not found")
	}
	for key, h := range f.docs {
		h.IsActive = key == id
		h.UpdatedAt = now
		f.docs[key] = h
	}
	return nil
}

func (f *fakeHeroStore) Deactivate(_ context.Context, id string, now time.Time) error {
	h, ok := f.docs[id]
	if !ok {
		return errs.NewNotFoundError("hero content not found")
	}
	h.IsActive, h.UpdatedAt = false, now
	f.docs[id] = h
	return nil
}

func (f *fakeHeroStore) GetActive(context.Context) (*models.HeroContent, error) {
	for _, h := range f.all() {
		if h.IsActive {
			return h, nil
		}
	}
	return nil, errs.NewNotFoundError("no active hero content")
}

func newTestHeroService(store *fakeHeroStore, media *fakeMedia) *heroService {
	svc := NewHeroService(store, media, newRecorder())
	svc.now = newClock().now
	return svc
}

func TestHeroSingleActive(t *testing.T) {
	store := newFakeHeroStore()
	svc := newTestHeroService(store, &fakeMedia{})
	ctx := helpers.TestCtx()

	if _, err := svc.GetActive(ctx); !errs.IsNotFound(err) {
		t.Fatalf("expected not found with no active hero, got %v", err)
	}

	first, err := svc.Create(ctx, dto.CreateHeroRequest{Title: "Welcome", IsActive: true}, nil)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	second, err := svc.Create(ctx, dto.CreateHeroRequest{Title: "Dashain offer"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Activate(ctx, second.ID); err != nil {
		t.Fatalf("Activate returned error: %v", err)
	}
	active, err := svc.GetActive(ctx)
	if err != nil || active.ID != second.ID {
		t.Fatalf("active = %v, %v; want %s", active, err, second.ID)
	}
	if got, _ := svc.Get(ctx, first.ID); got.IsActive {
		t.Fatal("previous hero still active")
	}

	if _, err := svc.Update(ctx, second.ID, dto.UpdateHeroRequest{IsActive: helpers.Ptr(false)}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if _, err := svc.GetActive(ctx); !errs.IsNotFound(err) {
		t.Fatalf("expected not found after deactivation, got %v", err)
	}
}

func TestHeroRemoveMediaClampsIndex(t *testing.T) {
	store := newFakeHeroStore()
	media := &fakeMedia{}
	svc := newTestHeroService(store, media)
	ctx := helpers.TestCtx()

	h, err := svc.Create(ctx, dto.CreateHeroRequest{Title: "Welcome"}, imageFiles("a.png", "b.png", "c.png"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.SetCurrentMedia(ctx, h.ID, 2); err != nil {
		t.Fatalf("SetCurrentMedia returned error: %v", err)
	}

	got, err := svc.RemoveMedia(ctx, h.ID, h.Media[2].ID)
	if err != nil {
		t.Fatalf("RemoveMedia returned error: %v", err)
	}
	if got.CurrentMediaIndex != 1 {
		t.Fatalf("index = %d, want 1", got.CurrentMediaIndex)
	}
	if len(media.removed) != 1 || media.removed[0] != h.Media[2].PublicID {
		t.Fatalf("removed = %v", media.removed)
	}

	if _, err := svc.RemoveMedia(ctx, h.ID, h.Media[0].ID); err != nil {
		t.Fatal(err)
	}
	got, err = svc.RemoveMedia(ctx, h.ID, h.Media[1].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Media) != 0 || got.CurrentMediaIndex != 0 {
		t.Fatalf("expected empty media at index 0, got %d items at %d", len(got.Media), got.CurrentMediaIndex)
	}
}

func TestHeroSetCurrentMediaOutOfRange(t *testing.T) {
	svc := newTestHeroService(newFakeHeroStore(), &fakeMedia{})
	ctx := helpers.TestCtx()

	h, err := svc.Create(ctx, dto.CreateHeroRequest{Title: "Welcome"}, imageFiles("a.png"))
	if err != nil {
		t.Fatal(err)
	}
	for _, idx := range []int{-1, 1, 5} {
		_, err := svc.SetCurrentMedia(ctx, h.ID, idx)
		var ve *errs.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("index %d: expected ValidationError, got %v", idx, err)
		}
	}
}

func TestHeroConcurrentAddMediaKeepsEveryItem(t *testing.T) {
	store := newFakeHeroStore()
	gate := &sync.WaitGroup{}
	media := &fakeMedia{}
	svc := newTestHeroService(store, media)
	ctx := helpers.TestCtx()

	h, err := svc.Create(ctx, dto.CreateHeroRequest{Title: "Welcome", IsActive: true}, nil)
	if err != nil {
		t.Fatal(err)
	}

	media.gate = gate
	gate.Add(3)
	var wg sync.WaitGroup
	for _, names := range [][]string{{"a.png"}, {"b.png", "c.png"}} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AddMedia(ctx, h.ID, imageFiles(names...)); err != nil {
				t.Errorf("AddMedia returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := svc.Get(ctx, h.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Media) != 3 {
		t.Fatalf("media items = %d, want 3", len(got.Media))
	}
	if !got.IsActive {
		t.Fatal("adding media cleared the active flag")
	}
}

func TestHeroCreateFailureRemovesUploads(t *testing.T) {
	store := newFakeHeroStore()
	store.createErr = errs.NewDatabaseError("create hero content", "failed", errors.New("aborted"))
	media := &fakeMedia{}
	svc := newTestHeroService(store, media)
	ctx := helpers.TestCtx()

	if _, err := svc.Create(ctx, dto.CreateHeroRequest{Title: "Welcome", IsActive: true}, imageFiles("a.png", "b.png")); err == nil {
		t.Fatal("expected create error")
	}
	if len(store.all()) != 0 {
		t.Fatalf("expected no hero documents, got %d", len(store.all()))
	}
	if len(media.removedSorted()) != 2 {
		t.Fatalf("expected both uploads removed, got %v", media.removed)
	}
}
