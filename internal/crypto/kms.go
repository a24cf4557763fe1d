package crypto

import (
	"context"
	"encoding/base64"
	"strings"

	gcpkms "cloud.google.com/go/kms/apiv1"
	"cloud.google.com/go/kms/apiv1/kmspb"
	"github.com/googleapis/gax-go/v2"

	"github.com/GregMSThompson/sahakari-backend/internal/errs"
)

// Prefix marks a stored value as KMS ciphertext.
const Prefix = "kms:"

// FieldCipher protects individual sensitive document fields at rest.
type FieldCipher interface {
	Encrypt(ctx context.Context, plaintext string) (string, error)
	Decrypt(ctx context.Context, stored string) (string, error)
}

type kmsAPI interface {
	Encrypt(ctx context.Context, req *kmspb.EncryptRequest, opts ...gax.CallOption) (*kmspb.EncryptResponse, error)
	Decrypt(ctx context.Context, req *kmspb.DecryptRequest, opts ...gax.CallOption) (*kmspb.DecryptResponse, error)
}

type kms struct {
	client  kmsAPI
	keyName string
}

var _ kmsAPI = (*gcpkms.KeyManagementClient)(nil)

func NewKMS(client kmsAPI, keyName string) *kms {
	return &kms{client: client, keyName: keyName}
}

// Encrypt encrypts plaintext with the configured key and returns prefixed base64 text.
// Empty values are stored as-is.
func (k *kms) Encrypt(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	resp, err := k.client.Encrypt(ctx, &kmspb.EncryptRequest{
		Name:      k.keyName,
		Plaintext: []byte(plaintext),
	})
	if err != nil {
		return "", errs.NewEncryptionError("kms encrypt failed", err)
	}
	return Prefix + base64.StdEncoding.EncodeToString(resp.Ciphertext), nil
}

// Decrypt reverses Encrypt. Values written before encryption was enabled carry
// no prefix and are returned unchanged.
func (k *kms) Decrypt(ctx context.Context, stored string) (string, error) {
	if !strings.HasPrefix(stored, Prefix) {
		return stored, nil
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(stored, Prefix))
	if err != nil {
		return "", errs.NewEncryptionError("invalid ciphertext encoding", err)
	}
	resp, err := k.client.Decrypt(ctx, &kmspb.DecryptRequest{
		Name:       k.keyName,
		Ciphertext: raw,
	})
	if err != nil {
		return "", errs.NewEncryptionError("kms decrypt failed", err)
	}
	return string(resp.Plaintext), nil
}

type plaintext struct{}

// Plaintext is the FieldCipher used when no KMS key is configured.
func Plaintext() FieldCipher { return plaintext{} }

func (plaintext) Encrypt(_ context.Context, v string) (string, error) { return v, nil }

func (plaintext) Decrypt(_ context.Context, v string) (string, error) {
	if strings.HasPrefix(v, Prefix) {
		return "", errs.NewEncryptionError("encrypted value but no key configured", nil)
	}
	return v, nil
}
