package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
	"github.com/GregMSThompson/sahakari-backend/pkg/helpers"
)

var pdfDocument = []byte("%PDF-1.4 annual report")

type stubNoticeService struct {
	notices  map[string]*models.Notice
	created  *dto.CreateNoticeRequest
	updated  *dto.UpdateNoticeRequest
	document *dto.FileUpload
	filter   dto.NoticeFilter
	status   string
	deleted  string
}

func newStubNoticeService(notices ...*models.Notice) *stubNoticeService {
	s := &stubNoticeService{notices: map[string]*models.Notice{}}
	for _, n := range notices {
		s.notices[n.ID] = n
	}
	return s
}

func (s *stubNoticeService) find(id string) (*models.Notice, error) {
	n, ok := s.notices[id]
	if !ok {
		return nil, errs.NewNotFoundError("notice not found")
	}
	return n, nil
}

func (s *stubNoticeService) Create(_ context.Context, req dto.CreateNoticeRequest, file *dto.FileUpload) (*models.Notice, error) {
	s.created, s.document = &req, file
	return &models.Notice{ID: "n-new", Title: req.Title, Status: req.Status}, nil
}

func (s *stubNoticeService) Get(_ context.Context, id string) (*models.Notice, error) {
	return s.find(id)
}

func (s *stubNoticeService) GetPublic(_ context.Context, id string) (*models.Notice, error) {
	n, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if n.Status != models.NoticePublished {
		return nil, errs.NewForbiddenError("notice is not published")
	}
	return n, nil
}

func (s *stubNoticeService) List(_ context.Context, f dto.NoticeFilter) ([]*models.Notice, error) {
	s.filter = f
	return []*models.Notice{}, nil
}

func (s *stubNoticeService) ListPublic(_ context.Context, f dto.NoticeFilter) ([]*models.Notice, error) {
	s.filter = f
	return []*models.Notice{}, nil
}

func (s *stubNoticeService) Update(_ context.Context, id string, req dto.UpdateNoticeRequest, file *dto.FileUpload) (*models.Notice, error) {
	s.updated, s.document = &req, file
	return s.find(id)
}

func (s *stubNoticeService) UpdateStatus(_ context.Context, id, status string) (*models.Notice, error) {
	n, err := s.find(id)
	if err != nil {
		return nil, err
	}
	s.status = status
	n.Status = status
	return n, nil
}

func (s *stubNoticeService) Delete(_ context.Context, id string) error {
	s.deleted = id
	return nil
}

func noticeRoutes(svc *stubNoticeService) http.Handler {
	deps := testDeps()
	deps.NoticeSvc = svc
	return NewNoticeHandlers(deps).NoticeRoutes()
}

func TestCreateNoticeFromFormWithDocument(t *testing.T) {
	svc := newStubNoticeService()
	values := map[string]string{
		"title":     "[AGM] Annual general meeting",
		"content":   "All members are invited.",
		"type":      models.NoticeCircular,
		"important": "true",
	}
	req := multipartRequest(t, http.MethodPost, "/", values, formFile{noticeDocumentField, "agm.pdf", pdfDocument})

	rr := serve(noticeRoutes(svc), req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	require.NotNil(t, svc.created)
	assert.Equal(t, "[AGM] Annual general meeting", svc.created.Title)
	assert.Equal(t, models.NoticeCircular, svc.created.Type)
	assert.True(t, svc.created.Important)
	require.NotNil(t, svc.document)
	assert.Equal(t, "application/pdf", svc.document.ContentType)
	assert.Equal(t, "agm.pdf", svc.document.Filename)
}

func TestCreateNoticeFromJSON(t *testing.T) {
	svc := newStubNoticeService()
	rr := serve(noticeRoutes(svc), jsonRequest(t, http.MethodPost, "/", dto.CreateNoticeRequest{Title: "Holiday", Content: "Closed"}))
	require.Equal(t, http.StatusCreated, rr.Code)
	require.NotNil(t, svc.created)
	assert.Nil(t, svc.document)
}

func TestCreateNoticeRejectsUnexpectedFile(t *testing.T) {
	svc := newStubNoticeService()
	req := multipartRequest(t, http.MethodPost, "/", map[string]string{"title": "x", "content": "y"},
		formFile{"attachment", "agm.pdf", pdfDocument})

	rr := serve(noticeRoutes(svc), req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Nil(t, svc.created)
}

func TestGetPublicNoticeHidesDrafts(t *testing.T) {
	svc := newStubNoticeService(
		&models.Notice{ID: "draft", Status: models.NoticeDraft},
		&models.Notice{ID: "live", Status: models.NoticePublished},
	)
	h := noticeRoutes(svc)

	rr := serve(h, jsonRequest(t, http.MethodGet, "/public/draft", nil))
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr = serve(h, jsonRequest(t, http.MethodGet, "/public/live", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	rr = serve(h, jsonRequest(t, http.MethodGet, "/public/gone", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestNoticeFilters(t *testing.T) {
	svc := newStubNoticeService()
	h := noticeRoutes(svc)

	rr := serve(h, jsonRequest(t, http.MethodGet, "/public?type=news&important=true&search=loan", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, dto.NoticeFilter{Type: "news", Important: helpers.Ptr(true), Search: "loan"}, svc.filter)

	rr = serve(h, jsonRequest(t, http.MethodGet, "/?status=draft", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "draft", svc.filter.Status)

	for _, target := range []string{"/public?status=draft", "/public?important=sometimes", "/?limit=5"} {
		rr := serve(h, jsonRequest(t, http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
	}
}

func TestUpdateNoticeStatus(t *testing.T) {
	svc := newStubNoticeService(&models.Notice{ID: "n1", Status: models.NoticeDraft})
	h := noticeRoutes(svc)

	rr := serve(h, jsonRequest(t, http.MethodPatch, "/n1/status", map[string]string{"status": models.NoticePublished}))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, models.NoticePublished, svc.status)

	rr = serve(h, jsonRequest(t, http.MethodPatch, "/n1/status", `{"state":"published"}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateNoticeRemovesDocument(t *testing.T) {
	svc := newStubNoticeService(&models.Notice{ID: "n1"})
	rr := serve(noticeRoutes(svc), multipartRequest(t, http.MethodPut, "/n1", map[string]string{"removeDocument": "true"}))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.NotNil(t, svc.updated)
	assert.True(t, svc.updated.RemoveDocument)
	assert.Nil(t, svc.updated.Title)
}

func TestNoticeStaffRoutesRequireAuth(t *testing.T) {
	deps := testDeps()
	svc := newStubNoticeService(&models.Notice{ID: "n1"})
	deps.NoticeSvc = svc
	deps.Staff = denyAll
	h := NewNoticeHandlers(deps).NoticeRoutes()

	rr := serve(h, jsonRequest(t, http.MethodDelete, "/n1", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, svc.deleted)
}
