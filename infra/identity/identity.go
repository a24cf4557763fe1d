package identity

import (
	"net/url"

	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/identityplatform"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"

	"github.com/GregMSThompson/sahakari-backend/infra/common"
)

// SetupIdentity enables Identity Platform for staff sign-in. Accounts are
// created by admins through the API so self sign-up is turned off, and only
// the configured site origins may start a sign-in.
func SetupIdentity(ctx *pulumi.Context, prov *gcp.Provider) (*identityplatform.Config, error) {
	appCfg := config.New(ctx, "app")

	domains := pulumi.StringArray{pulumi.String("localhost")}
	for _, origin := range common.SplitList(appCfg.Require("corsOrigins")) {
		if u, err := url.Parse(origin); err == nil && u.Hostname() != "" && u.Hostname() != "localhost" {
			domains = append(domains, pulumi.String(u.Hostname()))
		}
	}

	return identityplatform.NewConfig(ctx,
		"identityPlatformConfig",
		&identityplatform.ConfigArgs{
			AuthorizedDomains: domains,
			SignIn: &identityplatform.ConfigSignInArgs{
				Email: &identityplatform.ConfigSignInEmailArgs{
					Enabled: pulumi.Bool(true),
				},
			},
			Client: &identityplatform.ConfigClientArgs{
				Permissions: &identityplatform.ConfigClientPermissionsArgs{
					DisabledUserSignup: pulumi.Bool(true),
				},
			},
		},
		pulumi.Provider(prov),
	)
}
