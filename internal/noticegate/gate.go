// Package noticegate decides whether a visitor should see the notice modal.
//
// A visitor moves NotShown -> Shown -> Closed for the selected notice within
// one session. The session flag is mirrored into durable visitor storage, and
// dismissal stores a timestamp used by the "don't show again for N days"
// policy. Any storage failure is logged and the modal is not shown.
package noticegate

import (
	"context"
	"log/slog"
	"time"

	"github.com/GregMSThompson/sahakari-backend/internal/kv"
)

type State int

const (
	NotShown State = iota
	Shown
	Closed
)

func (s State) String() string {
	switch s {
	case Shown:
		return "shown"
	case Closed:
		return "closed"
	default:
		return "not-shown"
	}
}

const (
	keyShown    = "noticeModal:shown"
	keyClosed   = "noticeModal:closed"
	keyClosedAt = "noticeModal:closedAt:"
)

// Settings is the operator configuration relevant to the gate.
type Settings struct {
	Enabled             bool
	NoticeID            string
	DaysBeforeShowAgain int
}

type Gate struct {
	session kv.Store
	local   kv.Store
	now     func() time.Time
	log     *slog.Logger
}

type Option func(*Gate)

func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

func New(session, local kv.Store, log *slog.Logger, opts ...Option) *Gate {
	g := &Gate{session: session, local: local, now: time.Now, log: log}
	for _, o := range opts {
		o(g)
	}
	if g.log == nil {
		g.log = slog.Default()
	}
	return g
}

// State reports where the visitor is for noticeID in the current session.
func (g *Gate) State(ctx context.Context, noticeID string) State {
	closed, _, err := g.session.Get(ctx, keyClosed)
	if err != nil {
		g.log.Warn("notice gate read failed", "key", keyClosed, "error", err)
		return NotShown
	}
	if closed == noticeID && noticeID != "" {
		return Closed
	}
	if g.shownThisSession(ctx, noticeID) {
		return Shown
	}
	return NotShown
}

// Eligible reports whether the modal may be shown now.
func (g *Gate) Eligible(ctx context.Context, s Settings) bool {
	if !s.Enabled || s.NoticeID == "" {
		return false
	}

	shown, _, err := g.session.Get(ctx, keyShown)
	if err != nil {
		g.log.Warn("notice gate read failed", "key", keyShown, "error", err)
		return false
	}
	if shown == s.NoticeID {
		return false
	}

	if s.DaysBeforeShowAgain <= 0 {
		return true
	}
	raw, found, err := g.local.Get(ctx, keyClosedAt+s.NoticeID)
	if err != nil {
		g.log.Warn("notice gate read failed", "key", keyClosedAt, "error", err)
		return false
	}
	if !found {
		return true
	}
	closedAt, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return true
	}
	return !g.now().Before(closedAt.AddDate(0, 0, s.DaysBeforeShowAgain))
}

// Show checks eligibility and, when eligible, marks the notice shown for the
// session and mirrors the flag to visitor storage. It reports whether the
// modal should be displayed.
func (g *Gate) Show(ctx context.Context, s Settings) bool {
	if !g.Eligible(ctx, s) {
		return false
	}
	if err := g.session.Set(ctx, keyShown, s.NoticeID); err != nil {
		g.log.Warn("notice gate write failed", "key", keyShown, "error", err)
		return false
	}
	if err := g.local.Set(ctx, keyShown, s.NoticeID); err != nil {
		g.log.Warn("notice gate mirror failed", "key", keyShown, "error", err)
	}
	return true
}

// Dismiss marks the notice closed and records when.
func (g *Gate) Dismiss(ctx context.Context, noticeID string) {
	if noticeID == "" {
		return
	}
	if err := g.session.Set(ctx, keyClosed, noticeID); err != nil {
		g.log.Warn("notice gate write failed", "key", keyClosed, "error", err)
	}
	if err := g.local.Set(ctx, keyClosedAt+noticeID, g.now().UTC().Format(time.RFC3339)); err != nil {
		g.log.Warn("notice gate write failed", "key", keyClosedAt, "error", err)
	}
}

func (g *Gate) shownThisSession(ctx context.Context, noticeID string) bool {
	shown, _, err := g.session.Get(ctx, keyShown)
	if err != nil {
		g.log.Warn("notice gate read failed", "key", keyShown, "error", err)
		return false
	}
	return noticeID != "" && shown == noticeID
}
