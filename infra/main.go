package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/sahakari-backend/infra/cloudrun"
	"github.com/GregMSThompson/sahakari-backend/infra/docker"
	"github.com/GregMSThompson/sahakari-backend/infra/firestore"
	"github.com/GregMSThompson/sahakari-backend/infra/identity"
	"github.com/GregMSThompson/sahakari-backend/infra/kms"
	"github.com/GregMSThompson/sahakari-backend/infra/provider"
	"github.com/GregMSThompson/sahakari-backend/infra/storage"
	"github.com/GregMSThompson/sahakari-backend/infra/vertex"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// enable identity service to allow using firebase
		ident, err := identity.SetupIdentity(ctx, prov)
		if err != nil {
			return err
		}

		// enable firestore, create the default database and its indexes
		err = firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		// public bucket for uploaded media
		bucket, err := storage.SetupMediaBucket(ctx, prov)
		if err != nil {
			return err
		}

		// key protecting applicant identity fields
		keyID, err := kms.SetupFieldKey(ctx, prov, "sahakari", "application-fields")
		if err != nil {
			return err
		}

		// vertex is an optional translation provider
		vertexSvc, err := vertex.SetupVertex(ctx, prov)
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx, prov)
		if err != nil {
			return err
		}

		deps := []pulumi.Resource{ident, repo}
		if vertexSvc != nil {
			deps = append(deps, vertexSvc)
		}
		_, err = cloudrun.SetupCloudRun(ctx, prov, cloudrun.Resources{
			Bucket: bucket,
			KeyID:  keyID,
		}, deps...)
		if err != nil {
			return err
		}

		ctx.Export("mediaBucket", bucket.Name)
		ctx.Export("kmsKeyName", keyID)
		return nil
	})
}
