package vertex

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// SetupVertex enables Vertex AI when app:vertexModel is set. It returns nil
// when the translation fallback model is not configured.
func SetupVertex(ctx *pulumi.Context, prov *gcp.Provider) (pulumi.Resource, error) {
	appCfg := config.New(ctx, "app")
	if appCfg.Get("vertexModel") == "" {
		return nil, nil
	}

	svc, err := projects.NewService(ctx, "vertex", &projects.ServiceArgs{
		Service:          pulumi.String("aiplatform.googleapis.com"),
		DisableOnDestroy: pulumi.Bool(false),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}
	return svc, nil
}
