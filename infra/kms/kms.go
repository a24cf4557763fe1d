package kms

import (
	"fmt"

	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/kms"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

const defaultRotation = "7776000s" // 90 days

// SetupFieldKey enables Cloud KMS and creates the key ring and symmetric key
// protecting applicant identity fields. It returns the crypto key ID in the
// form the API expects for KMSKEYNAME. app:kmsRotation overrides the rotation period.
func SetupFieldKey(ctx *pulumi.Context, prov *gcp.Provider, keyRingID, keyID string) (pulumi.StringOutput, error) {
	empty := pulumi.String("").ToStringOutput()

	gcpCfg := config.New(ctx, "gcp")
	appCfg := config.New(ctx, "app")
	rotation := appCfg.Get("kmsRotation")
	if rotation == "" {
		rotation = defaultRotation
	}

	service, err := projects.NewService(ctx, "kmsService", &projects.ServiceArgs{
		Service: pulumi.String("cloudkms.googleapis.com"),
	}, pulumi.Provider(prov))
	if err != nil {
		return empty, err
	}

	ring, err := kms.NewKeyRing(ctx, fmt.Sprintf("%s-ring", keyRingID), &kms.KeyRingArgs{
		Location: pulumi.String(gcpCfg.Require("region")),
		Name:     pulumi.String(keyRingID),
	},
		pulumi.Provider(prov),
		pulumi.DependsOn([]pulumi.Resource{service}),
	)
	if err != nil {
		return empty, err
	}

	key, err := kms.NewCryptoKey(ctx, fmt.Sprintf("%s-key", keyID), &kms.CryptoKeyArgs{
		KeyRing:        ring.ID(),
		Name:           pulumi.String(keyID),
		Purpose:        pulumi.String("ENCRYPT_DECRYPT"),
		RotationPeriod: pulumi.String(rotation),
	},
		pulumi.Provider(prov),
		pulumi.Protect(true),
	)
	if err != nil {
		return empty, err
	}

	return key.ID().ToStringOutput(), nil
}
