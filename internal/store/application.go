package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/sahakari-backend/internal/crypto"
	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
)

// applicationStore persists account and loan applications. The applicant's
// citizenship number is encrypted before it reaches Firestore.
type applicationStore[T any] struct {
	docStore[T]
	cipher    crypto.FieldCipher
	kindField string
	details   func(*T) *models.ApplicantDetails
}

func NewAccountApplicationStore(client *firestore.Client, cipher crypto.FieldCipher) *applicationStore[models.AccountApplication] {
	return &applicationStore[models.AccountApplication]{
		docStore:  newDocStore[models.AccountApplication](client, "account_applications", "account application"),
		cipher:    cipher,
		kindField: "accountType",
		details:   func(a *models.AccountApplication) *models.ApplicantDetails { return &a.ApplicantDetails },
	}
}

func NewLoanApplicationStore(client *firestore.Client, cipher crypto.FieldCipher) *applicationStore[models.LoanApplication] {
	return &applicationStore[models.LoanApplication]{
		docStore:  newDocStore[models.LoanApplication](client, "loan_applications", "loan application"),
		cipher:    cipher,
		kindField: "loanType",
		details:   func(a *models.LoanApplication) *models.ApplicantDetails { return &a.ApplicantDetails },
	}
}

func (s *applicationStore[T]) Create(ctx context.Context, id string, app *T) error {
	enc := *app
	d := s.details(&enc)
	cipherText, err := s.cipher.Encrypt(ctx, d.CitizenshipNumber)
	if err != nil {
		return err
	}
	d.CitizenshipNumber = cipherText
	return s.create(ctx, id, &enc)
}

func (s *applicationStore[T]) Get(ctx context.Context, id string) (*T, error) {
	app, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.decrypt(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *applicationStore[T]) List(ctx context.Context, f dto.ApplicationFilter) ([]*T, error) {
	q := s.collection.Query
	if f.Status != "" {
		q = q.Where("status", "==", f.Status)
	}
	if f.Kind != "" {
		q = q.Where(s.kindField, "==", f.Kind)
	}
	q = q.OrderBy("submittedAt", firestore.Desc)

	apps, err := s.query(ctx, q)
	if err != nil {
		return nil, err
	}
	for _, app := range apps {
		if err := s.decrypt(ctx, app); err != nil {
			return nil, err
		}
	}
	return apps, nil
}

// UpdateStatus touches only status, remarks and updatedAt so the encrypted
// fields are never rewritten. A nil remarks keeps the stored remarks.
func (s *applicationStore[T]) UpdateStatus(ctx context.Context, id, newStatus string, remarks *string, now time.Time) error {
	if id == "" {
		return s.notFound()
	}
	updates := []firestore.Update{
		{Path: "status", Value: newStatus},
		{Path: "updatedAt", Value: now},
	}
	if remarks != nil {
		updates = append(updates, firestore.Update{Path: "remarks", Value: *remarks})
	}
	_, err := s.collection.Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return s.notFound()
	}
	if err != nil {
		return errs.NewDatabaseError("update "+s.name+" status", "failed to update status", err)
	}
	return nil
}

func (s *applicationStore[T]) Delete(ctx context.Context, id string) error {
	return s.delete(ctx, id)
}

func (s *applicationStore[T]) decrypt(ctx context.Context, app *T) error {
	d := s.details(app)
	plain, err := s.cipher.Decrypt(ctx, d.CitizenshipNumber)
	if err != nil {
		return err
	}
	d.CitizenshipNumber = plain
	return nil
}
