package storage

import (
	"fmt"

	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/storage"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"

	"github.com/GregMSThompson/sahakari-backend/infra/common"
)

// SetupMediaBucket creates the bucket holding uploaded photos, gallery media
// and application documents. Objects are publicly readable so the site can
// link to them directly.
func SetupMediaBucket(ctx *pulumi.Context, prov *gcp.Provider) (*storage.Bucket, error) {
	gcpCfg := config.New(ctx, "gcp")
	appCfg := config.New(ctx, "app")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")

	svc, err := projects.NewService(ctx, "storageService", &projects.ServiceArgs{
		Service: pulumi.String("storage.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	name := appCfg.Get("mediaBucket")
	if name == "" {
		name = fmt.Sprintf("%s-media", projectID)
	}

	bucket, err := storage.NewBucket(ctx, "mediaBucket", &storage.BucketArgs{
		Name:                     pulumi.String(name),
		Location:                 pulumi.String(region),
		UniformBucketLevelAccess: pulumi.Bool(true),
		Cors: storage.BucketCorArray{
			&storage.BucketCorArgs{
				Origins:         pulumi.ToStringArray(common.SplitList(appCfg.Require("corsOrigins"))),
				Methods:         pulumi.StringArray{pulumi.String("GET"), pulumi.String("HEAD")},
				MaxAgeSeconds:   pulumi.Int(3600),
				ResponseHeaders: pulumi.StringArray{pulumi.String("Content-Type")},
			},
		},
	},
		pulumi.Provider(prov),
		pulumi.DependsOn([]pulumi.Resource{svc}),
	)
	if err != nil {
		return nil, err
	}

	_, err = storage.NewBucketIAMMember(ctx, "mediaPublicRead", &storage.BucketIAMMemberArgs{
		Bucket: bucket.Name,
		Role:   pulumi.String("roles/storage.objectViewer"),
		Member: pulumi.String("allUsers"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	return bucket, nil
}
