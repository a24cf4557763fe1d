package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/sahakari-backend/internal/models"
)

type userStore struct {
	docStore[models.User]
}

func NewUserStore(client *firestore.Client) *userStore {
	return &userStore{docStore: newDocStore[models.User](client, "users", "user")}
}

func (us *userStore) CreateUser(ctx context.Context, user *models.User) error {
	return us.create(ctx, user.UID, user)
}

func (us *userStore) UpdateUser(ctx context.Context, user *models.User) error {
	return us.replace(ctx, user.UID, user)
}

func (us *userStore) GetUser(ctx context.Context, uid string) (*models.User, error) {
	return us.get(ctx, uid)
}

func (us *userStore) DeleteUser(ctx context.Context, uid string) error {
	return us.delete(ctx, uid)
}

func (us *userStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	return us.query(ctx, us.collection.OrderBy("createdAt", firestore.Desc))
}
