package services

import (
	"context"
	"testing"
	"time"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/kv"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
	"github.com/GregMSThompson/sahakari-backend/internal/noticegate"
	"github.com/GregMSThompson/sahakari-backend/pkg/helpers"
	"github.com/GregMSThompson/sahakari-backend/pkg/logger"
)

type fakeModalStore struct {
	settings models.NoticeModalSettings
}

func (f *fakeModalStore) Get(context.Context) (*models.NoticeModalSettings, error) {
	s := f.settings
	return &s, nil
}

func (f *fakeModalStore) Save(_ context.Context, s *models.NoticeModalSettings, now time.Time) error {
	f.settings = *s
	f.settings.UpdatedAt = now
	return nil
}

func modalFixture(t *testing.T) (*noticeModalService, *fakeNoticeStore, *fakeModalStore) {
	t.Helper()
	notices := newFakeNoticeStore()
	published := models.Notice{ID: "n1", Title: "AGM", Status: models.NoticePublished}
	draft := models.Notice{ID: "n2", Title: "Draft", Status: models.NoticeDraft}
	if err := notices.Create(context.Background(), &published); err != nil {
		t.Fatal(err)
	}
	if err := notices.Create(context.Background(), &draft); err != nil {
		t.Fatal(err)
	}
	settings := &fakeModalStore{}
	return NewNoticeModalService(settings, notices), notices, settings
}

func newTestGate(session, local kv.Store, now func() time.Time) *noticegate.Gate {
	return noticegate.New(session, local, logger.New("", logger.NewTestHandler), noticegate.WithClock(now))
}

func TestNoticeModalUpdateSettingsValidation(t *testing.T) {
	svc, _, _ := modalFixture(t)
	ctx := helpers.TestCtx()

	bad := []dto.UpdateNoticeModalRequest{
		{Enabled: true},
		{Enabled: true, SelectedNoticeID: "n2"},
		{Enabled: true, SelectedNoticeID: "missing"},
		{SelectedNoticeID: "n1", DelaySeconds: -1},
	}
	for i, req := range bad {
		if _, err := svc.UpdateSettings(ctx, req); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
	if _, err := svc.UpdateSettings(ctx, dto.UpdateNoticeModalRequest{Enabled: true, SelectedNoticeID: "n1", DelaySeconds: 3}); err != nil {
		t.Fatalf("UpdateSettings returned error: %v", err)
	}
}

func TestNoticeModalShownOncePerSession(t *testing.T) {
	svc, _, settings := modalFixture(t)
	settings.settings = models.NoticeModalSettings{Enabled: true, SelectedNoticeID: "n1", DelaySeconds: 2, DaysBeforeShowAgain: 1}
	ctx := helpers.TestCtx()

	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	local := kv.NewMemory(0)
	gate := newTestGate(kv.NewMemory(0), local, clock)

	d := svc.Decide(ctx, gate)
	if !d.Show || d.DelaySeconds != 2 || d.Notice == nil || d.Notice.ID != "n1" {
		t.Fatalf("unexpected first decision: %+v", d)
	}
	if shown := svc.Show(ctx, gate); !shown.Show {
		t.Fatal("Show should confirm the first display")
	}
	if again := svc.Decide(ctx, gate); again.Show {
		t.Fatal("modal shown twice in one session")
	}
	if err := svc.Dismiss(ctx, gate, "n1"); err != nil {
		t.Fatalf("Dismiss returned error: %v", err)
	}

	// new session, same visitor, within the suppression window
	now = now.Add(12 * time.Hour)
	next := newTestGate(kv.NewMemory(0), local, clock)
	if d := svc.Decide(ctx, next); d.Show {
		t.Fatal("modal shown again before daysBeforeShowAgain elapsed")
	}

	now = now.Add(13 * time.Hour)
	later := newTestGate(kv.NewMemory(0), local, clock)
	if d := svc.Decide(ctx, later); !d.Show {
		t.Fatal("modal should show again after the window")
	}
}

func TestNoticeModalDisabledOrUnpublished(t *testing.T) {
	svc, _, settings := modalFixture(t)
	ctx := helpers.TestCtx()
	gate := newTestGate(kv.NewMemory(0), kv.NewMemory(0), time.Now)

	settings.settings = models.NoticeModalSettings{Enabled: false, SelectedNoticeID: "n1"}
	if d := svc.Decide(ctx, gate); d.Show {
		t.Fatal("disabled modal shown")
	}
	settings.settings = models.NoticeModalSettings{Enabled: true, SelectedNoticeID: "n2"}
	if d := svc.Decide(ctx, gate); d.Show {
		t.Fatal("unpublished notice shown")
	}
	if err := svc.Dismiss(ctx, gate, ""); err == nil {
		t.Fatal("expected dismiss without id to fail")
	}
}
