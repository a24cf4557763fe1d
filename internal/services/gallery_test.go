package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
	"github.com/GregMSThompson/sahakari-backend/pkg/helpers"
)

type fakeGalleryStore struct {
	*memStore[models.GalleryEvent]
}

func newFakeGalleryStore() *fakeGalleryStore {
	return &fakeGalleryStore{newMemStore(func(e *models.GalleryEvent) string { return e.ID })}
}

func (f *fakeGalleryStore) List(_ context.Context, filter dto.EventFilter) ([]*models.GalleryEvent, error) {
	var out []*models.GalleryEvent
	for _, e := range f.all() {
		if filter.IsPublished != nil && e.IsPublished != *filter.IsPublished {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func newTestGalleryService(store *fakeGalleryStore, media *fakeMedia) *galleryService {
	svc := NewGalleryService(store, media, newRecorder())
	svc.now = newClock().now
	return svc
}

func imageFiles(names ...string) []dto.FileUpload {
	files := make([]dto.FileUpload, len(names))
	for i, n := range names {
		files[i] = dto.FileUpload{Field: "media", Filename: n, ContentType: "image/png", Data: []byte(n)}
	}
	return files
}

func TestGalleryGetPublicUnpublishedIsForbidden(t *testing.T) {
	svc := newTestGalleryService(newFakeGalleryStore(), &fakeMedia{})
	ctx := helpers.TestCtx()

	e, err := svc.Create(ctx, dto.CreateEventRequest{Name: "Dashain", Date: "2026-10-02"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if e.Date.Format("2006-01-02") != "2026-10-02" {
		t.Fatalf("date = %v", e.Date)
	}

	_, err = svc.GetPublic(ctx, e.ID)
	var fe *errs.ForbiddenError
	if !errors.As(err, &fe) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}

	if _, err := svc.SetPublished(ctx, e.ID, true); err != nil {
		t.Fatalf("SetPublished returned error: %v", err)
	}
	if _, err := svc.GetPublic(ctx, e.ID); err != nil {
		t.Fatalf("GetPublic after publish returned error: %v", err)
	}
	public, err := svc.ListPublic(ctx, dto.EventFilter{})
	if err != nil || len(public) != 1 {
		t.Fatalf("ListPublic = %v, %v", public, err)
	}
}

func TestGalleryCreateRejectsBadDate(t *testing.T) {
	svc := newTestGalleryService(newFakeGalleryStore(), &fakeMedia{})
	_, err := svc.Create(helpers.TestCtx(), dto.CreateEventRequest{Name: "x", Date: "yesterday"})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestGalleryAddMediaKeepsRequestOrder(t *testing.T) {
	store := newFakeGalleryStore()
	svc := newTestGalleryService(store, &fakeMedia{})
	ctx := helpers.TestCtx()

	e, err := svc.Create(ctx, dto.CreateEventRequest{Name: "AGM", Date: "2026-01-15"})
	if err != nil {
		t.Fatal(err)
	}
	files := imageFiles("a.png", "b.png", "c.png", "d.png", "e.png", "f.png")
	files[2].ContentType = "video/mp4"

	got, err := svc.AddMedia(ctx, e.ID, files)
	if err != nil {
		t.Fatalf("AddMedia returned error: %v", err)
	}
	if len(got.Media) != len(files) {
		t.Fatalf("media count = %d, want %d", len(got.Media), len(files))
	}
	for i, f := range files {
		if got.Media[i].Name != f.Filename {
			t.Fatalf("media[%d] = %q, want %q", i, got.Media[i].Name, f.Filename)
		}
	}
	if got.Media[2].Type != models.MediaTypeVideo || got.Media[0].Type != models.MediaTypeImage {
		t.Fatalf("unexpected media types: %q %q", got.Media[0].Type, got.Media[2].Type)
	}
}

func TestGalleryAddMediaFailureCleansUp(t *testing.T) {
	store := newFakeGalleryStore()
	media := &fakeMedia{failOn: "bad.png"}
	svc := newTestGalleryService(store, media)
	ctx := helpers.TestCtx()

	e, err := svc.Create(ctx, dto.CreateEventRequest{Name: "AGM", Date: "2026-01-15"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddMedia(ctx, e.ID, imageFiles("a.png", "bad.png", "c.png")); err == nil {
		t.Fatal("expected upload error")
	}

	stored := append([]string{}, media.stored...)
	removed := media.removedSorted()
	if len(removed) != len(stored) {
		t.Fatalf("stored %v but removed %v", stored, removed)
	}
	got, _ := svc.Get(ctx, e.ID)
	if len(got.Media) != 0 {
		t.Fatalf("event should have no media, got %+v", got.Media)
	}
}

func TestGalleryRemoveMediaAndDelete(t *testing.T) {
	store := newFakeGalleryStore()
	media := &fakeMedia{}
	svc := newTestGalleryService(store, media)
	ctx := helpers.TestCtx()

	e, _ := svc.Create(ctx, dto.CreateEventRequest{Name: "AGM", Date: "2026-01-15"})
	e, err := svc.AddMedia(ctx, e.ID, imageFiles("a.png", "b.png"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.RemoveMedia(ctx, e.ID, "missing"); !errs.IsNotFound(err) {
		t.Fatalf("expected not found for unknown media, got %v", err)
	}
	after, err := svc.RemoveMedia(ctx, e.ID, e.Media[0].ID)
	if err != nil {
		t.Fatalf("RemoveMedia returned error: %v", err)
	}
	if len(after.Media) != 1 || after.Media[0].Name != "b.png" {
		t.Fatalf("unexpected media after remove: %+v", after.Media)
	}

	if err := svc.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(media.removed) != 2 {
		t.Fatalf("expected every object removed, got %v", media.removed)
	}
}

func TestGalleryConcurrentAddMediaKeepsEveryItem(t *testing.T) {
	store := newFakeGalleryStore()
	gate := &sync.WaitGroup{}
	media := &fakeMedia{gate: gate}
	svc := newTestGalleryService(store, media)
	ctx := helpers.TestCtx()

	e, err := svc.Create(ctx, dto.CreateEventRequest{Name: "AGM", Date: "2026-01-15"})
	if err != nil {
		t.Fatal(err)
	}

	// both requests load the event before either upload finishes
	gate.Add(2)
	var wg sync.WaitGroup
	errCh := make(chan error, 2)
	for _, name := range []string{"a.png", "b.png"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddMedia(ctx, e.ID, imageFiles(name))
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("AddMedia returned error: %v", err)
		}
	}

	got, err := svc.Get(ctx, e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Media) != 2 || len(media.stored) != 2 {
		t.Fatalf("stored %v objects but event has %d media items", media.stored, len(got.Media))
	}
}

func TestGalleryUpdateKeepsMedia(t *testing.T) {
	store := newFakeGalleryStore()
	svc := newTestGalleryService(store, &fakeMedia{})
	ctx := helpers.TestCtx()

	e, _ := svc.Create(ctx, dto.CreateEventRequest{Name: "AGM", Date: "2026-01-15"})
	if _, err := svc.AddMedia(ctx, e.ID, imageFiles("a.png")); err != nil {
		t.Fatal(err)
	}
	got, err := svc.Update(ctx, e.ID, dto.UpdateEventRequest{Name: helpers.Ptr("AGM 2026"), Date: helpers.Ptr("2026-02-01")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.Name != "AGM 2026" || got.Date.Format("2006-01-02") != "2026-02-01" || len(got.Media) != 1 {
		t.Fatalf("unexpected event after update: %+v", got)
	}

	if _, err := svc.Update(ctx, e.ID, dto.UpdateEventRequest{Name: helpers.Ptr("")}); err == nil {
		t.Fatal("expected validation error for empty name")
	}
}
