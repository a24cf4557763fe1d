package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/errs"
)

// fixedClock returns a clock that advances only when told to.
type fixedClock struct{ t time.Time }

func newClock() *fixedClock {
	return &fixedClock{t: time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)}
}

func (c *fixedClock) now() time.Time          { return c.t }
func (c *fixedClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// fakeMedia records stored and removed objects.
type fakeMedia struct {
	mu       sync.Mutex
	stored   []string
	removed  []string
	failOn   string
	failErr  error
	sequence int

	// gate, when set, holds every upload until all expected uploads have started
	gate *sync.WaitGroup
}

func (f *fakeMedia) Store(_ context.Context, file dto.FileUpload, folder string) (dto.StoredObject, error) {
	if f.gate != nil {
		f.gate.Done()
		f.gate.Wait()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn != "" && file.Filename == f.failOn {
		if f.failErr == nil {
			f.failErr = errs.NewExternalServiceError("media storage", "upload failed", true, errors.New("boom"))
		}
		return dto.StoredObject{}, f.failErr
	}
	f.sequence++
	id := fmt.Sprintf("%s/%d-%s", folder, f.sequence, file.Filename)
	f.stored = append(f.stored, id)
	return dto.StoredObject{URL: "https://cdn.test/" + id, PublicID: id, Format: "png", Size: int64(len(file.Data))}, nil
}

func (f *fakeMedia) Remove(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, publicID)
	return nil
}

func (f *fakeMedia) removedSorted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string{}, f.removed...)
	sort.Strings(out)
	return out
}

type countingRecorder struct {
	uploads      map[string]int
	applications map[string]int
}

func newRecorder() *countingRecorder {
	return &countingRecorder{uploads: map[string]int{}, applications: map[string]int{}}
}

func (r *countingRecorder) IncrementUpload(folder string)    { r.uploads[folder]++ }
func (r *countingRecorder) IncrementApplication(kind string) { r.applications[kind]++ }

// memStore is an in-memory document collection keyed by id. Mutate holds
// the lock across fn, matching a Firestore transaction.
type memStore[T any] struct {
	mu        sync.Mutex
	docs      map[string]T
	order     []string
	id        func(*T) string
	createErr error
	updateErr error
}

func newMemStore[T any](id func(*T) string) *memStore[T] {
	return &memStore[T]{docs: map[string]T{}, id: id}
}

func (m *memStore[T]) Create(_ context.Context, v *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	id := m.id(v)
	if _, ok := m.docs[id]; ok {
		return errs.NewAlreadyExistsError("exists")
	}
	m.docs[id] = *v
	m.order = append(m.order, id)
	return nil
}

func (m *memStore[T]) Get(_ context.Context, id string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.docs[id]
	if !ok {
		return nil, errs.NewNotFoundError("not found")
	}
	return &v, nil
}

func (m *memStore[T]) Update(_ context.Context, v *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	id := m.id(v)
	if _, ok := m.docs[id]; !ok {
		return errs.NewNotFoundError("not found")
	}
	m.docs[id] = *v
	return nil
}

func (m *memStore[T]) Mutate(_ context.Context, id string, fn func(*T) error) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	v, ok := m.docs[id]
	if !ok {
		return nil, errs.NewNotFoundError("not found")
	}
	if err := fn(&v); err != nil {
		return nil, err
	}
	m.docs[id] = v
	out := v
	return &out, nil
}

func (m *memStore[T]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return errs.NewNotFoundError("not found")
	}
	delete(m.docs, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memStore[T]) all() []*T {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*T, 0, len(m.order))
	for _, id := range m.order {
		v := m.docs[id]
		out = append(out, &v)
	}
	return out
}
