package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/sahakari-backend/internal/config"
)

type secretAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

func hasSecretRefs(fields []*string) bool {
	for _, f := range fields {
		if strings.HasPrefix(*f, config.SecretPrefix) {
			return true
		}
	}
	return false
}

// secretVersionName expands a reference into a full version resource name.
// "sm://name" reads the latest version in projectID; a full resource path
// is used as given.
func secretVersionName(projectID, ref string) string {
	ref = strings.TrimPrefix(ref, config.SecretPrefix)
	if !strings.HasPrefix(ref, "projects/") {
		ref = fmt.Sprintf("projects/%s/secrets/%s", projectID, ref)
	}
	if !strings.Contains(ref, "/versions/") {
		ref += "/versions/latest"
	}
	return ref
}

func resolveSecrets(ctx context.Context, client secretAccessor, projectID string, fields []*string) error {
	for _, f := range fields {
		if !strings.HasPrefix(*f, config.SecretPrefix) {
			continue
		}
		name := secretVersionName(projectID, *f)
		res, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("secret %s not found", name)
		}
		if err != nil {
			return fmt.Errorf("access secret %s: %w", name, err)
		}
		*f = strings.TrimSpace(string(res.Payload.Data))
	}
	return nil
}
