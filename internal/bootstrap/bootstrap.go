package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/firestore"
	gcpkms "cloud.google.com/go/kms/apiv1"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"firebase.google.com/go/v4/auth"
	"github.com/redis/go-redis/v9"

	"github.com/GregMSThompson/sahakari-backend/internal/client/storage"
	"github.com/GregMSThompson/sahakari-backend/internal/client/vertex"
	"github.com/GregMSThompson/sahakari-backend/internal/config"
	"github.com/GregMSThompson/sahakari-backend/internal/crypto"
	"github.com/GregMSThompson/sahakari-backend/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Firestore *firestore.Client
	Firebase  *auth.Client
	Storage   *storage.Adapter
	KMS       *gcpkms.KeyManagementClient
	Cipher    crypto.FieldCipher
	Redis     *redis.Client   // nil without REDISADDR
	Vertex    *vertex.Adapter // nil without VERTEXMODEL
}

func Run(ctx context.Context, cfg *config.Config) (*Bootstrap, error) {
	var err error
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)

	if err = ResolveSecrets(ctx, cfg); err != nil {
		return bs, err
	}
	bs.Firestore, err = InitFirestore(ctx, bs.Log, cfg.ProjectID)
	if err != nil {
		return bs, err
	}
	bs.Firebase, err = InitFirebase(ctx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}
	bs.Storage, err = storage.NewAdapter(ctx, bs.Log, cfg.MediaBucket, cfg.MediaBaseURL)
	if err != nil {
		return bs, err
	}

	bs.Cipher = crypto.Plaintext()
	if cfg.KMSKeyName != "" {
		bs.KMS, err = gcpkms.NewKeyManagementClient(ctx)
		if err != nil {
			return bs, fmt.Errorf("kms client: %w", err)
		}
		bs.Cipher = crypto.NewKMS(bs.KMS, cfg.KMSKeyName)
	} else {
		bs.Log.Warn("KMSKEYNAME not set, application fields stored in plaintext")
	}

	if cfg.RedisAddr != "" {
		bs.Redis, err = InitRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return bs, err
		}
	}

	if cfg.VertexModel != "" {
		bs.Vertex, err = vertex.NewAdapter(ctx, bs.Log, cfg.ProjectID, cfg.Region, cfg.VertexModel)
		if err != nil {
			return bs, err
		}
	}

	return bs, nil
}

// ResolveSecrets replaces Secret Manager references in cfg with their
// payloads. No client is created when nothing needs resolving.
func ResolveSecrets(ctx context.Context, cfg *config.Config) error {
	if !hasSecretRefs(cfg.SecretFields()) {
		return nil
	}
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("secret manager client: %w", err)
	}
	defer client.Close()
	return resolveSecrets(ctx, client, cfg.ProjectID, cfg.SecretFields())
}

func InitRedis(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

// Close releases every client that was opened, even after a partial Run.
func (bs *Bootstrap) Close() error {
	var errList []error
	if bs.Vertex != nil {
		errList = append(errList, bs.Vertex.Close())
	}
	if bs.Redis != nil {
		errList = append(errList, bs.Redis.Close())
	}
	if bs.KMS != nil {
		errList = append(errList, bs.KMS.Close())
	}
	if bs.Storage != nil {
		errList = append(errList, bs.Storage.Close())
	}
	if bs.Firestore != nil {
		errList = append(errList, bs.Firestore.Close())
	}
	return errors.Join(errList...)
}
