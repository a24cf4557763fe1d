package firestore

import (
	"fmt"
	"strings"

	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/firestore"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

type indexField struct {
	path  string
	order string
}

type compositeIndex struct {
	collection string
	fields     []indexField
}

func asc(path string) indexField  { return indexField{path, "ASCENDING"} }
func desc(path string) indexField { return indexField{path, "DESCENDING"} }

// indexes covers every equality filter combined with the listing order the
// API queries with.
var indexes = []compositeIndex{
	{"account_applications", []indexField{asc("status"), desc("submittedAt")}},
	{"account_applications", []indexField{asc("accountType"), desc("submittedAt")}},
	{"account_applications", []indexField{asc("status"), asc("accountType"), desc("submittedAt")}},
	{"loan_applications", []indexField{asc("status"), desc("submittedAt")}},
	{"loan_applications", []indexField{asc("loanType"), desc("submittedAt")}},
	{"loan_applications", []indexField{asc("status"), asc("loanType"), desc("submittedAt")}},
	{"notices", []indexField{asc("status"), desc("createdAt")}},
	{"notices", []indexField{asc("type"), desc("createdAt")}},
	{"notices", []indexField{asc("status"), asc("type"), desc("createdAt")}},
	{"notices", []indexField{asc("status"), asc("important"), desc("createdAt")}},
	{"gallery_events", []indexField{asc("isPublished"), desc("date")}},
	{"shareholders", []indexField{asc("role"), desc("createdAt")}},
	{"shareholders", []indexField{asc("isActive"), desc("createdAt")}},
	{"shareholders", []indexField{asc("role"), asc("isActive"), desc("createdAt")}},
	{"team_members", []indexField{asc("position"), asc("order")}},
	{"team_members", []indexField{asc("isActive"), asc("order")}},
	{"team_members", []indexField{asc("position"), asc("isActive"), asc("order")}},
	{"services", []indexField{asc("category"), asc("order")}},
	{"services", []indexField{asc("isActive"), asc("order")}},
	{"services", []indexField{asc("category"), asc("isActive"), asc("order")}},
	{"businesses", []indexField{asc("category"), desc("createdAt")}},
	{"businesses", []indexField{asc("featured"), desc("createdAt")}},
	{"businesses", []indexField{asc("isActive"), desc("createdAt")}},
	{"businesses", []indexField{asc("category"), asc("isActive"), desc("createdAt")}},
	{"businesses", []indexField{asc("featured"), asc("isActive"), desc("createdAt")}},
	{"products", []indexField{asc("businessId"), desc("createdAt")}},
}

func SetupFirestore(ctx *pulumi.Context, prov *gcp.Provider) error {
	svc, err := enableFireStore(ctx, prov)
	if err != nil {
		return err
	}

	db, err := createDatabase(ctx, prov, svc)
	if err != nil {
		return err
	}

	return createIndexes(ctx, prov, db)
}

func enableFireStore(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "firestore", &projects.ServiceArgs{
		Service: pulumi.String("firestore.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

func createDatabase(ctx *pulumi.Context, prov *gcp.Provider, res ...pulumi.Resource) (*firestore.Database, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")

	return firestore.NewDatabase(ctx, "firestoreDatabase", &firestore.DatabaseArgs{
		Project:    pulumi.String(projectID),
		Name:       pulumi.String("(default)"),
		LocationId: pulumi.String(region),
		Type:       pulumi.String("FIRESTORE_NATIVE"),
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}

func createIndexes(ctx *pulumi.Context, prov *gcp.Provider, db *firestore.Database) error {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")

	for _, idx := range indexes {
		fields := make(firestore.IndexFieldArray, 0, len(idx.fields))
		names := make([]string, 0, len(idx.fields))
		for _, f := range idx.fields {
			fields = append(fields, &firestore.IndexFieldArgs{
				FieldPath: pulumi.String(f.path),
				Order:     pulumi.String(f.order),
			})
			names = append(names, f.path)
		}

		_, err := firestore.NewIndex(ctx, fmt.Sprintf("idx-%s-%s", idx.collection, strings.Join(names, "-")), &firestore.IndexArgs{
			Project:    pulumi.String(projectID),
			Database:   db.Name,
			Collection: pulumi.String(idx.collection),
			Fields:     fields,
		},
			pulumi.Provider(prov),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
