package store

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
)

var errEmailTaken = errs.NewAlreadyExistsError("a shareholder with this email already exists")

// shareholderStore keeps emails unique through reservation documents in
// shareholder_emails, written in the same transaction as the shareholder.
type shareholderStore struct {
	docStore[models.Shareholder]
	emails *firestore.CollectionRef
}

type emailReservation struct {
	ShareholderID string `firestore:"shareholderId"`
}

func NewShareholderStore(client *firestore.Client) *shareholderStore {
	return &shareholderStore{
		docStore: newDocStore[models.Shareholder](client, "shareholders", "shareholder"),
		emails:   client.Collection("shareholder_emails"),
	}
}

func emailKey(email string) string {
	return url.PathEscape(strings.ToLower(strings.TrimSpace(email)))
}

func (s *shareholderStore) Create(ctx context.Context, sh *models.Shareholder) error {
	ref := s.collection.Doc(sh.ID)
	resv := s.emails.Doc(emailKey(sh.Email))

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := s.checkFree(tx, resv, sh.ID); err != nil {
			return err
		}
		if err := tx.Create(ref, sh); err != nil {
			return err
		}
		return tx.Set(resv, emailReservation{ShareholderID: sh.ID})
	})
	return s.txError(err, "create shareholder")
}

func (s *shareholderStore) Update(ctx context.Context, sh *models.Shareholder) error {
	if sh.ID == "" {
		return s.notFound()
	}
	ref := s.collection.Doc(sh.ID)
	newResv := s.emails.Doc(emailKey(sh.Email))

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		var current models.Shareholder
		if err := snap.DataTo(&current); err != nil {
			return err
		}
		changed := emailKey(current.Email) != emailKey(sh.Email)
		if changed {
			if err := s.checkFree(tx, newResv, sh.ID); err != nil {
				return err
			}
		}
		if err := tx.Set(ref, sh); err != nil {
			return err
		}
		if changed {
			if err := tx.Set(newResv, emailReservation{ShareholderID: sh.ID}); err != nil {
				return err
			}
			return tx.Delete(s.emails.Doc(emailKey(current.Email)))
		}
		return nil
	})
	return s.txError(err, "update shareholder")
}

func (s *shareholderStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return s.notFound()
	}
	ref := s.collection.Doc(id)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		var current models.Shareholder
		if err := snap.DataTo(&current); err != nil {
			return err
		}
		if err := tx.Delete(ref); err != nil {
			return err
		}
		return tx.Delete(s.emails.Doc(emailKey(current.Email)))
	})
	return s.txError(err, "delete shareholder")
}

func (s *shareholderStore) Get(ctx context.Context, id string) (*models.Shareholder, error) {
	return s.get(ctx, id)
}

func (s *shareholderStore) List(ctx context.Context, f dto.ShareholderFilter) ([]*models.Shareholder, error) {
	q := s.collection.Query
	if f.Role != "" {
		q = q.Where("role", "==", f.Role)
	}
	if f.ActiveOnly {
		q = q.Where("isActive", "==", true)
	}
	return s.query(ctx, q.OrderBy("createdAt", firestore.Desc))
}

// checkFree fails when the email is reserved by a different shareholder.
func (s *shareholderStore) checkFree(tx *firestore.Transaction, resv *firestore.DocumentRef, id string) error {
	snap, err := tx.Get(resv)
	if status.Code(err) == codes.NotFound {
		return nil
	}
	if err != nil {
		return err
	}
	var r emailReservation
	if err := snap.DataTo(&r); err != nil {
		return err
	}
	if r.ShareholderID != id {
		return errEmailTaken
	}
	return nil
}

func (s *shareholderStore) txError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errEmailTaken):
		return err
	case status.Code(err) == codes.NotFound:
		return s.notFound()
	case status.Code(err) == codes.AlreadyExists:
		return errs.NewAlreadyExistsError("shareholder already exists")
	default:
		return errs.NewDatabaseError(op, "failed to "+op, err)
	}
}
