// Package graphql exposes the admin user operations over GraphQL. Every
// field resolves to the same {code, message, data} envelope the REST API
// returns.
package graphql

import (
	"context"
	"encoding/json"

	"vocabulary/internal/pipeline"

	"github.com/getsentry/sentry-go"
	"github.com/graphql-go/graphql"
)

var adminUserType = graphql.NewObject(graphql.ObjectConfig{
	Name: "AdminUser",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: graphql.ID},
		"role":       &graphql.Field{Type: graphql.String},
		"firstName":  &graphql.Field{Type: graphql.String},
		"middleName": &graphql.Field{Type: graphql.String},
		"lastName":   &graphql.Field{Type: graphql.String},
		"username":   &graphql.Field{Type: graphql.String},
		"email":      &graphql.Field{Type: graphql.String},
		"createdAt":  &graphql.Field{Type: graphql.String},
		"updatedAt":  &graphql.Field{Type: graphql.String},
	},
})

var adminUserInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "AdminUserInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"role":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"firstName":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"middleName": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"lastName":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		"username":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		"email":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		"password":   &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

func envelopeType(name string, data graphql.Output) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"code":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"message": &graphql.Field{Type: graphql.String},
			"data":    &graphql.Field{Type: data},
		},
	})
}

// NewSchema builds the schema around admins.
func NewSchema(admins *pipeline.AdminUserPipeline) (graphql.Schema, error) {
	adminUserEnvelope := envelopeType("AdminUserResponse", adminUserType)
	adminUserListEnvelope := envelopeType("AdminUserListResponse", graphql.NewList(adminUserType))
	idArg := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getAllAdminUsers": &graphql.Field{
				Type: adminUserListEnvelope,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return envelope(p.Context, admins.List(p.Context)), nil
				},
			},
			"getAdminUserById": &graphql.Field{
				Type: adminUserEnvelope,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, _ := p.Args["id"].(string)
					return envelope(p.Context, admins.Get(p.Context, id)), nil
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addAdminUser": &graphql.Field{
				Type: adminUserEnvelope,
				Args: graphql.FieldConfigArgument{
					"request": &graphql.ArgumentConfig{Type: graphql.NewNonNull(adminUserInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					payload, err := json.Marshal(p.Args["request"])
					if err != nil {
						return nil, err
					}
					return envelope(p.Context, admins.Create(p.Context, payload)), nil
				},
			},
			"updateAdminUser": &graphql.Field{
				Type: adminUserEnvelope,
				Args: graphql.FieldConfigArgument{
					"id":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"request": &graphql.ArgumentConfig{Type: graphql.NewNonNull(adminUserInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, _ := p.Args["id"].(string)
					payload, err := json.Marshal(p.Args["request"])
					if err != nil {
						return nil, err
					}
					return envelope(p.Context, admins.Update(p.Context, id, payload)), nil
				},
			},
			"deleteAdminUserById": &graphql.Field{
				Type: adminUserEnvelope,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, _ := p.Args["id"].(string)
					return envelope(p.Context, admins.Delete(p.Context, id)), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

// envelope renders res for the resolvers and reports internal failures to
// the request's Sentry hub, if any.
func envelope(ctx context.Context, res pipeline.Result) map[string]any {
	if res.Kind == pipeline.Internal && res.Err != nil {
		if hub := sentry.GetHubFromContext(ctx); hub != nil {
			hub.CaptureException(res.Err)
		}
	}
	env := res.Envelope()
	return map[string]any{
		"code":    env.Code,
		"message": env.Message,
		"data":    env.Data,
	}
}

// Request is a GraphQL-over-HTTP request body.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// Execute runs req against schema.
func Execute(ctx context.Context, schema graphql.Schema, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        ctx,
	})
}
