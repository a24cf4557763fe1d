package bootstrap

import (
	"context"
	"testing"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeSecrets struct {
	values map[string]string
	names  []string
}

func (f *fakeSecrets) AccessSecretVersion(_ context.Context, req *secretmanagerpb.AccessSecretVersionRequest, _ ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error) {
	f.names = append(f.names, req.Name)
	v, ok := f.values[req.Name]
	if !ok {
		return nil, status.Error(codes.NotFound, "no such secret")
	}
	return &secretmanagerpb.AccessSecretVersionResponse{Payload: &secretmanagerpb.SecretPayload{Data: []byte(v)}}, nil
}

func TestSecretVersionName(t *testing.T) {
	assert.Equal(t, "projects/p1/secrets/libre-key/versions/latest", secretVersionName("p1", "sm://libre-key"))
	assert.Equal(t, "projects/other/secrets/k/versions/3", secretVersionName("p1", "sm://projects/other/secrets/k/versions/3"))
	assert.Equal(t, "projects/other/secrets/k/versions/latest", secretVersionName("p1", "sm://projects/other/secrets/k"))
}

func TestResolveSecrets(t *testing.T) {
	fake := &fakeSecrets{values: map[string]string{
		"projects/p1/secrets/libre-key/versions/latest": "abc123\n",
	}}
	key, pass := "sm://libre-key", "plain-password"

	err := resolveSecrets(context.Background(), fake, "p1", []*string{&key, &pass})
	require.NoError(t, err)
	assert.Equal(t, "abc123", key)
	assert.Equal(t, "plain-password", pass)
	assert.Len(t, fake.names, 1)
}

func TestResolveSecretsNotFound(t *testing.T) {
	key := "sm://missing"
	err := resolveSecrets(context.Background(), &fakeSecrets{}, "p1", []*string{&key})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Equal(t, "sm://missing", key)
}

func TestHasSecretRefs(t *testing.T) {
	a, b := "", "value"
	assert.False(t, hasSecretRefs([]*string{&a, &b}))
	c := "sm://x"
	assert.True(t, hasSecretRefs([]*string{&a, &c}))
}
