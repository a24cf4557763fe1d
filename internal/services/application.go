package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
	"github.com/GregMSThompson/sahakari-backend/pkg/logger"
)

type applicationStore[T any] interface {
	Create(ctx context.Context, id string, app *T) error
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, f dto.ApplicationFilter) ([]*T, error)
	UpdateStatus(ctx context.Context, id, status string, remarks *string, now time.Time) error
	Delete(ctx context.Context, id string) error
}

type applicationRecorder interface {
	IncrementApplication(kind string)
}

type applicationMetrics interface {
	applicationRecorder
	uploadRecorder
}

// applicationService holds the behaviour shared by account and loan
// applications: document uploads, status changes and deletes.
type applicationService[T any] struct {
	store    applicationStore[T]
	media    media
	recorder applicationRecorder
	kind     string
	folder   string
	now      func() time.Time

	idOf      func(*T) string
	details   func(*T) *models.ApplicantDetails
	documents func(*T) models.Documents
}

type accountApplicationService struct {
	applicationService[models.AccountApplication]
}

type loanApplicationService struct {
	applicationService[models.LoanApplication]
}

func NewAccountApplicationService(store applicationStore[models.AccountApplication], delegate mediaDelegate, rec applicationMetrics) *accountApplicationService {
	return &accountApplicationService{applicationService[models.AccountApplication]{
		store:     store,
		media:     newMedia(delegate, rec),
		recorder:  rec,
		kind:      "account",
		folder:    "applications/account",
		now:       time.Now,
		idOf:      func(a *models.AccountApplication) string { return a.ID },
		details:   func(a *models.AccountApplication) *models.ApplicantDetails { return &a.ApplicantDetails },
		documents: func(a *models.AccountApplication) models.Documents { return a.Documents },
	}}
}

func NewLoanApplicationService(store applicationStore[models.LoanApplication], delegate mediaDelegate, rec applicationMetrics) *loanApplicationService {
	return &loanApplicationService{applicationService[models.LoanApplication]{
		store:     store,
		media:     newMedia(delegate, rec),
		recorder:  rec,
		kind:      "loan",
		folder:    "applications/loan",
		now:       time.Now,
		idOf:      func(a *models.LoanApplication) string { return a.ID },
		details:   func(a *models.LoanApplication) *models.ApplicantDetails { return &a.ApplicantDetails },
		documents: func(a *models.LoanApplication) models.Documents { return a.Documents },
	}}
}

func (s *accountApplicationService) Submit(ctx context.Context, req dto.CreateAccountApplicationRequest, files []dto.FileUpload) (*models.AccountApplication, error) {
	if err := firstError(
		validateApplicant(req.ApplicantInput),
		oneOf("accountType", req.AccountType, models.AccountTypes),
	); err != nil {
		return nil, err
	}

	now := s.now()
	app := &models.AccountApplication{
		ID:               uuid.NewString(),
		ApplicantDetails: applicantDetails(req.ApplicantInput),
		AccountType:      req.AccountType,
		NomineeName:      req.NomineeName,
		NomineeRelation:  req.NomineeRelation,
		Status:           models.StatusPending,
		SubmittedAt:      now,
		UpdatedAt:        now,
	}
	if err := s.submit(ctx, app, files, func(d models.Documents) { app.Documents = d }); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *loanApplicationService) Submit(ctx context.Context, req dto.CreateLoanApplicationRequest, files []dto.FileUpload) (*models.LoanApplication, error) {
	if err := firstError(
		validateApplicant(req.ApplicantInput),
		oneOf("loanType", req.LoanType, models.LoanTypes),
		required("loanAmount", req.LoanAmount),
		required("loanPurpose", req.LoanPurpose),
		required("loanTerm", req.LoanTerm),
	); err != nil {
		return nil, err
	}

	now := s.now()
	app := &models.LoanApplication{
		ID:               uuid.NewString(),
		ApplicantDetails: applicantDetails(req.ApplicantInput),
		LoanType:         req.LoanType,
		LoanAmount:       req.LoanAmount,
		LoanPurpose:      req.LoanPurpose,
		LoanTerm:         req.LoanTerm,
		Collateral:       req.Collateral,
		GuarantorName:    req.GuarantorName,
		GuarantorPhone:   req.GuarantorPhone,
		Status:           models.StatusPending,
		SubmittedAt:      now,
		UpdatedAt:        now,
	}
	if err := s.submit(ctx, app, files, func(d models.Documents) { app.Documents = d }); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *applicationService[T]) submit(ctx context.Context, app *T, files []dto.FileUpload, setDocs func(models.Documents)) error {
	log := logger.FromContext(ctx)

	docs := make(models.Documents, len(files))
	for _, f := range files {
		a, err := s.media.attachment(ctx, f, s.folder)
		if err != nil {
			s.removeDocuments(ctx, docs)
			return err
		}
		docs[f.Field] = *a
	}
	setDocs(docs)

	if err := s.store.Create(ctx, s.idOf(app), app); err != nil {
		log.Error("failed to store application", "kind", s.kind, "error", err)
		s.removeDocuments(ctx, docs)
		return err
	}

	if s.recorder != nil {
		s.recorder.IncrementApplication(s.kind)
	}
	log.Info("application submitted", "kind", s.kind, "application_id", s.idOf(app), "documents", len(docs))
	log.Debug("application submitted with details", "applicant", s.details(app).FullName)
	return nil
}

func (s *applicationService[T]) Get(ctx context.Context, id string) (*T, error) {
	return s.store.Get(ctx, id)
}

func (s *applicationService[T]) List(ctx context.Context, f dto.ApplicationFilter) ([]*T, error) {
	if f.Status != "" {
		if err := oneOf("status", f.Status, models.ApplicationStatuses); err != nil {
			return nil, err
		}
	}
	apps, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return filterSearch(apps, f.Search, func(a *T) []string {
		d := s.details(a)
		return []string{d.FullName, d.Email, d.Phone}
	}), nil
}

// UpdateStatus moves the application to any of the four statuses. There is
// no transition graph.
func (s *applicationService[T]) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (*T, error) {
	if err := oneOf("status", req.Status, models.ApplicationStatuses); err != nil {
		return nil, err
	}
	if err := s.store.UpdateStatus(ctx, id, req.Status, req.Remarks, s.now()); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("application status updated", "kind", s.kind, "application_id", id, "status", req.Status)
	return s.store.Get(ctx, id)
}

func (s *applicationService[T]) Delete(ctx context.Context, id string) error {
	app, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.removeDocuments(ctx, s.documents(app))
	logger.FromContext(ctx).Info("application deleted", "kind", s.kind, "application_id", id)
	return nil
}

func (s *applicationService[T]) removeDocuments(ctx context.Context, docs models.Documents) {
	for _, d := range docs {
		s.media.remove(ctx, d.PublicID)
	}
}

func validateApplicant(in dto.ApplicantInput) error {
	return firstError(
		required("fullName", in.FullName),
		validEmail("email", in.Email),
		required("phone", in.Phone),
		required("address", in.Address),
		required("citizenshipNumber", in.CitizenshipNumber),
	)
}

func applicantDetails(in dto.ApplicantInput) models.ApplicantDetails {
	return models.ApplicantDetails{
		FullName:          in.FullName,
		Email:             in.Email,
		Phone:             in.Phone,
		DateOfBirth:       in.DateOfBirth,
		Gender:            in.Gender,
		Address:           in.Address,
		CitizenshipNumber: in.CitizenshipNumber,
		Occupation:        in.Occupation,
		Employer:          in.Employer,
		MonthlyIncome:     in.MonthlyIncome,
	}
}
