package translation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/internal/kv"
)

type fakeProvider struct {
	name  string
	out   string
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Translate(_ context.Context, text, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

type outcomes []string

func (o *outcomes) IncrementTranslation(outcome string) { *o = append(*o, outcome) }

func newTestService(providers []Provider, budget int) (*Service, *clock, *outcomes) {
	c := &clock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	rec := &outcomes{}
	svc := NewService(kv.NewMemory(0), providers, Options{
		Budget:   budget,
		TTL:      time.Hour,
		Cooldown: 5 * time.Minute,
		Timeout:  time.Second,
		Now:      c.now,
		Recorder: rec,
	})
	return svc, c, rec
}

func TestDictionaryWinsWithoutProviderCall(t *testing.T) {
	p := &fakeProvider{name: "p", out: "x"}
	svc, _, rec := newTestService([]Provider{p}, 10)

	got, err := svc.Translate(context.Background(), "Home", "ne")
	require.NoError(t, err)
	assert.Equal(t, "गृहपृष्ठ", got)
	assert.Zero(t, p.calls)
	assert.Equal(t, outcomes{OutcomeDictionary}, *rec)
}

func TestSourceLanguageReturnsText(t *testing.T) {
	svc, _, _ := newTestService(nil, 10)
	got, err := svc.Translate(context.Background(), "Hello", "en")
	require.NoError(t, err)
	assert.Equal(t, "Hello", got)
}

func TestUnsupportedTarget(t *testing.T) {
	svc, _, _ := newTestService(nil, 10)
	_, err := svc.Translate(context.Background(), "Hello", "fr")
	var ve *errs.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestFallsThroughProvidersAndCaches(t *testing.T) {
	broken := &fakeProvider{name: "broken", err: errors.New("timeout")}
	good := &fakeProvider{name: "good", out: "नमस्ते"}
	svc, _, rec := newTestService([]Provider{broken, good}, 10)

	got, _ := svc.Translate(context.Background(), "Welcome to our cooperative", "ne")
	assert.Equal(t, "नमस्ते", got)

	got, _ = svc.Translate(context.Background(), "Welcome to our cooperative", "ne")
	assert.Equal(t, "नमस्ते", got)
	assert.Equal(t, 1, broken.calls)
	assert.Equal(t, 1, good.calls, "second lookup should hit the cache")
	assert.Equal(t, outcomes{OutcomeProvider, OutcomeCache}, *rec)
}

func TestFailureIsCachedUntilTTL(t *testing.T) {
	p := &fakeProvider{name: "p", err: errors.New("bad gateway")}
	svc, c, _ := newTestService([]Provider{p}, 10)
	ctx := context.Background()

	got, _ := svc.Translate(ctx, "Quarterly report", "ne")
	assert.Equal(t, "Quarterly report", got)
	_, _ = svc.Translate(ctx, "Quarterly report", "ne")
	assert.Equal(t, 1, p.calls)

	c.t = c.t.Add(time.Hour)
	_, _ = svc.Translate(ctx, "Quarterly report", "ne")
	assert.Equal(t, 2, p.calls, "expired entry should be retried")
}

func TestBudgetExhaustedReturnsOriginalUncached(t *testing.T) {
	p := &fakeProvider{name: "p", out: "अनुवाद"}
	svc, c, rec := newTestService([]Provider{p}, 2)
	ctx := context.Background()

	_, _ = svc.Translate(ctx, "one", "ne")
	_, _ = svc.Translate(ctx, "two", "ne")
	got, _ := svc.Translate(ctx, "three", "ne")
	assert.Equal(t, "three", got)
	assert.Equal(t, 2, p.calls)
	assert.Equal(t, OutcomeBudget, (*rec)[2])

	// budget refills over the minute and "three" was not cached as a failure
	c.t = c.t.Add(time.Minute)
	got, _ = svc.Translate(ctx, "three", "ne")
	assert.Equal(t, "अनुवाद", got)
}

func TestRateLimitedProviderIsBlacklisted(t *testing.T) {
	limited := &fakeProvider{name: "limited", err: ErrRateLimited}
	backup := &fakeProvider{name: "backup", out: "ठीक"}
	svc, c, _ := newTestService([]Provider{limited, backup}, 100)
	ctx := context.Background()

	_, _ = svc.Translate(ctx, "first", "ne")
	_, _ = svc.Translate(ctx, "second", "ne")
	assert.Equal(t, 1, limited.calls, "blocked provider should be skipped")
	assert.Equal(t, 2, backup.calls)

	c.t = c.t.Add(5 * time.Minute)
	_, _ = svc.Translate(ctx, "third", "ne")
	assert.Equal(t, 2, limited.calls, "cooldown over")
}

func TestTranslateAllKeepsOrder(t *testing.T) {
	p := &fakeProvider{name: "p", out: "x"}
	svc, _, _ := newTestService([]Provider{p}, 10)

	got, err := svc.TranslateAll(context.Background(), []string{"Home", "", "Gallery"}, "ne")
	require.NoError(t, err)
	assert.Equal(t, []string{"गृहपृष्ठ", "", "ग्यालरी"}, got)
}
