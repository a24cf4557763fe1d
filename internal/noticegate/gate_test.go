package noticegate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/GregMSThompson/sahakari-backend/internal/kv"
	"github.com/GregMSThompson/sahakari-backend/pkg/logger"
)

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("storage disabled")
}
func (brokenStore) Set(context.Context, string, string) error { return errors.New("storage disabled") }
func (brokenStore) Remove(context.Context, string) error      { return errors.New("storage disabled") }

func testGate(session, local kv.Store, now *time.Time) *Gate {
	return New(session, local, logger.New("", logger.NewTestHandler), WithClock(func() time.Time { return *now }))
}

func TestShowOncePerSession(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	session, local := kv.NewMemory(0), kv.NewMemory(0)
	g := testGate(session, local, &now)
	s := Settings{Enabled: true, NoticeID: "n1"}

	assert.Equal(t, NotShown, g.State(ctx, "n1"))
	assert.True(t, g.Show(ctx, s))
	assert.Equal(t, Shown, g.State(ctx, "n1"))
	assert.False(t, g.Show(ctx, s), "second show in the same session")

	mirrored, found, _ := local.Get(ctx, keyShown)
	assert.True(t, found)
	assert.Equal(t, "n1", mirrored)

	// a new session for the same visitor is eligible again with the default policy
	g2 := testGate(kv.NewMemory(0), local, &now)
	assert.True(t, g2.Eligible(ctx, s))
}

func TestNewSelectedNoticeIsEligible(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	g := testGate(kv.NewMemory(0), kv.NewMemory(0), &now)

	assert.True(t, g.Show(ctx, Settings{Enabled: true, NoticeID: "n1"}))
	assert.True(t, g.Eligible(ctx, Settings{Enabled: true, NoticeID: "n2"}))
}

func TestDisabledOrUnselected(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	g := testGate(kv.NewMemory(0), kv.NewMemory(0), &now)

	assert.False(t, g.Eligible(ctx, Settings{Enabled: false, NoticeID: "n1"}))
	assert.False(t, g.Eligible(ctx, Settings{Enabled: true}))
}

func TestDismissAndDaysBeforeShowAgain(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	local := kv.NewMemory(0)
	g := testGate(kv.NewMemory(0), local, &now)
	s := Settings{Enabled: true, NoticeID: "n1", DaysBeforeShowAgain: 3}

	assert.True(t, g.Show(ctx, s))
	g.Dismiss(ctx, "n1")
	assert.Equal(t, Closed, g.State(ctx, "n1"))

	next := testGate(kv.NewMemory(0), local, &now)
	now = now.AddDate(0, 0, 2)
	assert.False(t, next.Eligible(ctx, s), "within cool-off window")

	now = now.AddDate(0, 0, 1)
	assert.True(t, next.Eligible(ctx, s), "window elapsed")
}

func TestStorageFailureNeverShows(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	g := testGate(brokenStore{}, brokenStore{}, &now)
	s := Settings{Enabled: true, NoticeID: "n1"}

	assert.False(t, g.Eligible(ctx, s))
	assert.False(t, g.Show(ctx, s))
	assert.NotPanics(t, func() { g.Dismiss(ctx, "n1") })
	assert.Equal(t, NotShown, g.State(ctx, "n1"))
}
