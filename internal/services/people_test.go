package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
	"github.com/GregMSThompson/sahakari-backend/pkg/helpers"
)

// fakeShareholderStore enforces email uniqueness case-insensitively.
type fakeShareholderStore struct {
	*memStore[models.Shareholder]
}

func newFakeShareholderStore() *fakeShareholderStore {
	return &fakeShareholderStore{newMemStore(func(s *models.Shareholder) string { return s.ID })}
}

func (f *fakeShareholderStore) emailTaken(email, except string) bool {
	for id, sh := range f.docs {
		if id != except && strings.EqualFold(sh.Email, email) {
			return true
		}
	}
	return false
}

func (f *fakeShareholderStore) Create(ctx context.Context, sh *models.Shareholder) error {
	if f.emailTaken(sh.Email, "") {
		return errs.NewAlreadyExistsError("a shareholder with this email already exists")
	}
	return f.memStore.Create(ctx, sh)
}

func (f *fakeShareholderStore) Update(ctx context.Context, sh *models.Shareholder) error {
	if f.emailTaken(sh.Email, sh.ID) {
		return errs.NewAlreadyExistsError("a shareholder with this email already exists")
	}
	return f.memStore.Update(ctx, sh)
}

func (f *fakeShareholderStore) List(_ context.Context, filter dto.ShareholderFilter) ([]*models.Shareholder, error) {
	var out []*models.Shareholder
	for _, sh := range f.all() {
		if filter.ActiveOnly && !sh.IsActive {
			continue
		}
		if filter.Role != "" && sh.Role != filter.Role {
			continue
		}
		out = append(out, sh)
	}
	return out, nil
}

func TestShareholderDefaultsAndSearch(t *testing.T) {
	svc := NewShareholderService(newFakeShareholderStore(), &fakeMedia{}, newRecorder())
	ctx := helpers.TestCtx()

	sh, err := svc.Create(ctx, dto.CreateShareholderRequest{Name: "Ram Shrestha", Email: "ram@example.com", Shares: 100}, nil)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if sh.Role != "member" || !sh.IsActive {
		t.Fatalf("unexpected defaults: role=%q active=%v", sh.Role, sh.IsActive)
	}
	if _, err := svc.Create(ctx, dto.CreateShareholderRequest{Name: "Gita Rai", Email: "gita@example.com", IsActive: helpers.Ptr(false)}, nil); err != nil {
		t.Fatal(err)
	}

	got, err := svc.List(ctx, dto.ShareholderFilter{Search: "shre"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Ram Shrestha" {
		t.Fatalf("search result = %+v", got)
	}

	public, err := svc.ListPublic(ctx, dto.ShareholderFilter{})
	if err != nil || len(public) != 1 {
		t.Fatalf("ListPublic = %v, %v", public, err)
	}
}

func TestShareholderDuplicateEmail(t *testing.T) {
	media := &fakeMedia{}
	svc := NewShareholderService(newFakeShareholderStore(), media, newRecorder())
	ctx := helpers.TestCtx()

	if _, err := svc.Create(ctx, dto.CreateShareholderRequest{Name: "Ram", Email: "ram@example.com"}, nil); err != nil {
		t.Fatal(err)
	}
	photo := &dto.FileUpload{Filename: "ram.png", ContentType: "image/png", Data: []byte("x")}
	_, err := svc.Create(ctx, dto.CreateShareholderRequest{Name: "Ram 2", Email: "RAM@example.com"}, photo)
	var ae *errs.AlreadyExistsError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AlreadyExistsError, got %v", err)
	}
	if len(media.removed) != 1 {
		t.Fatalf("uploaded photo should be removed after duplicate, got %v", media.removed)
	}
}

func TestShareholderValidation(t *testing.T) {
	svc := NewShareholderService(newFakeShareholderStore(), &fakeMedia{}, newRecorder())
	ctx := helpers.TestCtx()

	reqs := []dto.CreateShareholderRequest{
		{Email: "a@example.com"},
		{Name: "A", Email: "nope"},
		{Name: "A", Email: "a@example.com", Role: "king"},
		{Name: "A", Email: "a@example.com", Shares: -1},
	}
	for i, req := range reqs {
		_, err := svc.Create(ctx, req, nil)
		var ve *errs.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("case %d: expected ValidationError, got %v", i, err)
		}
	}
}

type fakeTeamStore struct {
	*memStore[models.TeamMember]
}

func (f *fakeTeamStore) List(_ context.Context, filter dto.TeamFilter) ([]*models.TeamMember, error) {
	var out []*models.TeamMember
	for _, m := range f.all() {
		if filter.ActiveOnly && !m.IsActive {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func TestTeamListOrder(t *testing.T) {
	store := &fakeTeamStore{newMemStore(func(m *models.TeamMember) string { return m.ID })}
	svc := NewTeamService(store, &fakeMedia{}, newRecorder())
	ctx := helpers.TestCtx()

	for _, req := range []dto.CreateTeamMemberRequest{
		{Name: "Sunita", Position: "cashier", Order: 2},
		{Name: "Bikash", Position: "ceo", Order: 1},
		{Name: "Anil", Position: "staff", Order: 2},
	} {
		if _, err := svc.Create(ctx, req, nil); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	got, err := svc.List(ctx, dto.TeamFilter{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Bikash", "Anil", "Sunita"}
	for i, m := range got {
		if m.Name != want[i] {
			t.Fatalf("order[%d] = %s, want %s", i, m.Name, want[i])
		}
	}

	if _, err := svc.Create(ctx, dto.CreateTeamMemberRequest{Name: "X", Position: "pilot"}, nil); err == nil {
		t.Fatal("expected invalid position to fail")
	}
}
