package store

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/sahakari-backend/internal/errs"
)

// docStore is the CRUD plumbing shared by every collection. name is used in
// error messages ("notice not found").
type docStore[T any] struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
	name       string
}

func newDocStore[T any](client *firestore.Client, collection, name string) docStore[T] {
	return docStore[T]{
		client:     client,
		collection: client.Collection(collection),
		name:       name,
	}
}

func (s docStore[T]) notFound() error {
	return errs.NewNotFoundError(s.name + " not found")
}

func (s docStore[T]) get(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, s.notFound()
	}
	snap, err := s.collection.Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, s.notFound()
	}
	if err != nil {
		return nil, errs.NewDatabaseError("get "+s.name, "failed to load "+s.name, err)
	}
	return decode[T](snap, s.name)
}

func (s docStore[T]) create(ctx context.Context, id string, v *T) error {
	_, err := s.collection.Doc(id).Create(ctx, v)
	if status.Code(err) == codes.AlreadyExists {
		return errs.NewAlreadyExistsError(s.name + " already exists")
	}
	if err != nil {
		return errs.NewDatabaseError("create "+s.name, "failed to create "+s.name, err)
	}
	return nil
}

// replace overwrites an existing document. A document deleted concurrently
// is reported as not found rather than recreated.
func (s docStore[T]) replace(ctx context.Context, id string, v *T) error {
	if id == "" {
		return s.notFound()
	}
	ref := s.collection.Doc(id)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		return tx.Set(ref, v)
	})
	if status.Code(err) == codes.NotFound {
		return s.notFound()
	}
	if err != nil {
		return errs.NewDatabaseError("update "+s.name, "failed to update "+s.name, err)
	}
	return nil
}

// mutate loads the document, applies fn and writes the result in one
// transaction. A conflicting write makes Firestore retry the whole function,
// so fn must only change the document it is given. Errors from fn are
// returned unchanged.
func (s docStore[T]) mutate(ctx context.Context, id string, fn func(*T) error) (*T, error) {
	if id == "" {
		return nil, s.notFound()
	}
	ref := s.collection.Doc(id)

	var (
		out   *T
		fnErr error
	)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		fnErr = nil
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		var v T
		if err := snap.DataTo(&v); err != nil {
			return err
		}
		if fnErr = fn(&v); fnErr != nil {
			return fnErr
		}
		out = &v
		return tx.Set(ref, &v)
	})
	if fnErr != nil {
		return nil, fnErr
	}
	if status.Code(err) == codes.NotFound {
		return nil, s.notFound()
	}
	if err != nil {
		return nil, errs.NewDatabaseError("update "+s.name, "failed to update "+s.name, err)
	}
	return out, nil
}

func (s docStore[T]) delete(ctx context.Context, id string) error {
	if id == "" {
		return s.notFound()
	}
	_, err := s.collection.Doc(id).Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound {
		return s.notFound()
	}
	if err != nil {
		return errs.NewDatabaseError("delete "+s.name, "failed to delete "+s.name, err)
	}
	return nil
}

func (s docStore[T]) query(ctx context.Context, q firestore.Query) ([]*T, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	out := make([]*T, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("list "+s.name, "failed to list "+s.name, err)
		}
		v, err := decode[T](snap, s.name)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func decode[T any](snap *firestore.DocumentSnapshot, name string) (*T, error) {
	var v T
	if err := snap.DataTo(&v); err != nil {
		return nil, errs.NewDatabaseError("decode "+name, "failed to decode "+name, err)
	}
	return &v, nil
}
