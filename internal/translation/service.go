// Package translation translates short UI strings from English, preferring a
// reviewed dictionary, then a cache, then a chain of public providers.
package translation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/internal/kv"
	"github.com/GregMSThompson/sahakari-backend/pkg/logger"
)

// Outcomes reported to the recorder.
const (
	OutcomeSame       = "same"
	OutcomeDictionary = "dictionary"
	OutcomeCache      = "cache"
	OutcomeProvider   = "provider"
	OutcomeFailed     = "failed"
	OutcomeBudget     = "budget"
)

// Recorder receives one outcome per translated text.
type Recorder interface {
	IncrementTranslation(outcome string)
}

type Options struct {
	Budget   int // provider calls per rolling minute
	TTL      time.Duration
	Cooldown time.Duration
	Timeout  time.Duration
	Now      func() time.Time
	Recorder Recorder
}

type cacheEntry struct {
	Text      string    `json:"text"`
	OK        bool      `json:"ok"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Service struct {
	cache     kv.Store
	providers []Provider
	budget    *budget
	ttl       time.Duration
	cooldown  time.Duration
	timeout   time.Duration
	now       func() time.Time
	recorder  Recorder

	mu      sync.Mutex
	blocked map[string]time.Time
}

func NewService(cache kv.Store, providers []Provider, opts Options) *Service {
	if opts.Budget <= 0 {
		opts.Budget = 30
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = 5 * time.Minute
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Service{
		cache:     cache,
		providers: providers,
		budget:    newBudget(opts.Budget, time.Minute),
		ttl:       opts.TTL,
		cooldown:  opts.Cooldown,
		timeout:   opts.Timeout,
		now:       opts.Now,
		recorder:  opts.Recorder,
		blocked:   make(map[string]time.Time),
	}
}

// Translate returns text in the target language. It only fails for an
// unsupported target; every other problem returns the original text.
func (s *Service) Translate(ctx context.Context, text, target string) (string, error) {
	if !slices.Contains(SupportedLanguages, target) {
		return "", errs.NewValidationError("unsupported target language: " + target)
	}
	return s.translate(ctx, text, target), nil
}

func (s *Service) TranslateAll(ctx context.Context, texts []string, target string) ([]string, error) {
	if !slices.Contains(SupportedLanguages, target) {
		return nil, errs.NewValidationError("unsupported target language: " + target)
	}
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = s.translate(ctx, t, target)
	}
	return out, nil
}

func (s *Service) translate(ctx context.Context, text, target string) string {
	if target == SourceLanguage || strings.TrimSpace(text) == "" {
		s.record(OutcomeSame)
		return text
	}
	if v, ok := lookup(text, target); ok {
		s.record(OutcomeDictionary)
		return v
	}

	log := logger.FromContext(ctx)
	key := cacheKey(text, target)
	if entry, ok := s.cached(ctx, log, key); ok {
		s.record(OutcomeCache)
		if entry.OK {
			return entry.Text
		}
		return text
	}

	for _, p := range s.providers {
		if s.isBlocked(p.Name()) {
			continue
		}
		if !s.budget.allow(s.now()) {
			log.Debug("translation budget exhausted", "target", target)
			s.record(OutcomeBudget)
			return text
		}

		translated, err := s.call(ctx, p, text, target)
		if err == nil {
			s.store(ctx, log, key, cacheEntry{Text: translated, OK: true})
			s.record(OutcomeProvider)
			return translated
		}
		if errors.Is(err, ErrRateLimited) {
			s.block(p.Name())
			log.Warn("translation provider rate limited", "provider", p.Name(), "cooldown", s.cooldown.String())
			continue
		}
		log.Debug("translation provider failed", "provider", p.Name(), "error", err)
	}

	s.store(ctx, log, key, cacheEntry{Text: text, OK: false})
	s.record(OutcomeFailed)
	return text
}

func (s *Service) call(ctx context.Context, p Provider, text, target string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return p.Translate(ctx, text, target)
}

func (s *Service) cached(ctx context.Context, log *slog.Logger, key string) (cacheEntry, bool) {
	var entry cacheEntry
	if s.cache == nil {
		return entry, false
	}
	raw, found, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn("translation cache read failed", "error", err)
		return entry, false
	}
	if !found {
		return entry, false
	}
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return entry, false
	}
	if !s.now().Before(entry.ExpiresAt) {
		_ = s.cache.Remove(ctx, key)
		return entry, false
	}
	return entry, true
}

func (s *Service) store(ctx context.Context, log *slog.Logger, key string, entry cacheEntry) {
	if s.cache == nil {
		return
	}
	entry.ExpiresAt = s.now().Add(s.ttl)
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw)); err != nil {
		log.Warn("translation cache write failed", "error", err)
	}
}

func (s *Service) isBlocked(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.blocked[name]
	if !ok {
		return false
	}
	if !s.now().Before(until) {
		delete(s.blocked, name)
		return false
	}
	return true
}

func (s *Service) block(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocked[name] = s.now().Add(s.cooldown)
}

func (s *Service) record(outcome string) {
	if s.recorder != nil {
		s.recorder.IncrementTranslation(outcome)
	}
}

func cacheKey(text, target string) string {
	sum := sha256.Sum256([]byte(target + "\x00" + text))
	return target + ":" + hex.EncodeToString(sum[:16])
}
