// Package graphqltransport exposes the catalog over GraphQL. Resolvers are
// thin: they build a candidate item from the input, invoke the same mutation
// pipeline as REST, and render failures through the shared translator.
package graphqltransport

import (
	"errors"
	"fmt"
	"time"

	"github.com/graphql-go/graphql"

	"catalog/internal/catalog/models"
	"catalog/internal/catalog/service"
	"catalog/internal/catalog/store"
)

var contributorType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Contributor",
	Fields: graphql.Fields{
		"firstName": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"lastName":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var itemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Item",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"version":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"code":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"category":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"producer":     &graphql.Field{Type: graphql.String},
		"price":        &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"discount":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"available":    &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"releaseDate":  &graphql.Field{Type: graphql.String},
		"homepage":     &graphql.Field{Type: graphql.String},
		"tags":         &graphql.Field{Type: graphql.NewList(graphql.String)},
		"contributors": &graphql.Field{Type: graphql.NewList(contributorType)},
	},
})

var contributorInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ContributorInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"firstName": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"lastName":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var itemInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ItemInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"code":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"category":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"producer":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"price":        &graphql.InputObjectFieldConfig{Type: graphql.Float},
		"discount":     &graphql.InputObjectFieldConfig{Type: graphql.Float},
		"available":    &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		"releaseDate":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"homepage":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"tags":         &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
		"contributors": &graphql.InputObjectFieldConfig{Type: graphql.NewList(contributorInput)},
	},
})

// NewSchema builds the executable schema over the given pipeline surface.
func NewSchema(svc Service) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"item": &graphql.Field{
				Type: itemType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return resolveItem(p, svc)
				},
			},
			"items": &graphql.Field{
				Type: graphql.NewList(itemType),
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.String},
					"tags": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return resolveItems(p, svc)
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createItem": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(itemInput)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return resolveCreate(p, svc)
				},
			},
			"updateItem": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Args: graphql.FieldConfigArgument{
					"id":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"version": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"input":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(itemInput)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return resolveUpdate(p, svc)
				},
			},
			"deleteItem": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return resolveDelete(p, svc)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

func resolveItem(p graphql.ResolveParams, svc Service) (any, error) {
	id, _ := p.Args["id"].(string)
	item, err := svc.FindByID(p.Context, id)
	if err != nil {
		// Absent reads resolve to null, not an error; only store faults do.
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: internal error", service.CategoryServerFault)
	}
	return itemToMap(item), nil
}

func resolveItems(p graphql.ResolveParams, svc Service) (any, error) {
	var filter models.Filter
	if name, ok := p.Args["name"].(string); ok {
		filter.Name = name
	}
	if raw, ok := p.Args["tags"].([]any); ok {
		for _, t := range raw {
			if s, ok := t.(string); ok {
				filter.Tags = append(filter.Tags, models.Tag(s))
			}
		}
	}
	items, err := svc.Find(p.Context, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: internal error", service.CategoryServerFault)
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, itemToMap(item))
	}
	return out, nil
}

func resolveCreate(p graphql.ResolveParams, svc Service) (any, error) {
	input, _ := p.Args["input"].(map[string]any)
	candidate := itemFromInput(input)

	outcome := service.Translate(svc.Create(p.Context, candidate))
	if outcome.Category != service.CategoryCreated {
		return nil, outcomeError(outcome)
	}
	return outcome.ID, nil
}

func resolveUpdate(p graphql.ResolveParams, svc Service) (any, error) {
	input, _ := p.Args["input"].(map[string]any)
	candidate := itemFromInput(input)
	candidate.ID, _ = p.Args["id"].(string)
	version, _ := p.Args["version"].(string)

	outcome := service.Translate(svc.Update(p.Context, candidate, version))
	if outcome.Category != service.CategoryNoContent {
		return nil, outcomeError(outcome)
	}
	return int(outcome.Version), nil
}

func resolveDelete(p graphql.ResolveParams, svc Service) (any, error) {
	id, _ := p.Args["id"].(string)
	outcome := service.Translate(svc.Delete(p.Context, id))
	if outcome.Category != service.CategoryNoContent {
		return nil, outcomeError(outcome)
	}
	return true, nil
}

// outcomeError renders a failure outcome as a resolver error; the category
// prefix lets clients branch without parsing prose.
func outcomeError(outcome service.Outcome) error {
	if len(outcome.Violations) > 0 {
		return fmt.Errorf("%s: %s %v", outcome.Category, outcome.Detail, outcome.Violations)
	}
	return fmt.Errorf("%s: %s", outcome.Category, outcome.Detail)
}

func itemFromInput(input map[string]any) *models.Item {
	item := &models.Item{}
	if v, ok := input["name"].(string); ok {
		item.Name = v
	}
	if v, ok := input["code"].(string); ok {
		item.Code = v
	}
	if v, ok := input["category"].(string); ok {
		item.Category = models.Category(v)
	}
	if v, ok := input["producer"].(string); ok {
		item.Producer = v
	}
	if v, ok := input["price"].(float64); ok {
		item.Price = v
	}
	if v, ok := input["discount"].(float64); ok {
		item.Discount = v
	}
	if v, ok := input["available"].(bool); ok {
		item.Available = v
	}
	if v, ok := input["releaseDate"].(string); ok {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			item.ReleaseDate = t
		}
	}
	if v, ok := input["homepage"].(string); ok {
		item.Homepage = v
	}
	if raw, ok := input["tags"].([]any); ok {
		for _, t := range raw {
			if s, ok := t.(string); ok {
				item.Tags = append(item.Tags, models.Tag(s))
			}
		}
	}
	if raw, ok := input["contributors"].([]any); ok {
		for _, c := range raw {
			m, ok := c.(map[string]any)
			if !ok {
				continue
			}
			contributor := models.Contributor{}
			contributor.FirstName, _ = m["firstName"].(string)
			contributor.LastName, _ = m["lastName"].(string)
			item.Contributors = append(item.Contributors, contributor)
		}
	}
	return item
}

func itemToMap(item *models.Item) map[string]any {
	contributors := make([]map[string]any, 0, len(item.Contributors))
	for _, c := range item.Contributors {
		contributors = append(contributors, map[string]any{
			"firstName": c.FirstName,
			"lastName":  c.LastName,
		})
	}
	tags := make([]string, 0, len(item.Tags))
	for _, t := range item.Tags {
		tags = append(tags, string(t))
	}
	out := map[string]any{
		"id":           item.ID,
		"version":      int(item.Version),
		"name":         item.Name,
		"code":         item.Code,
		"category":     string(item.Category),
		"producer":     item.Producer,
		"price":        item.Price,
		"discount":     item.Discount,
		"available":    item.Available,
		"homepage":     item.Homepage,
		"tags":         tags,
		"contributors": contributors,
	}
	if !item.ReleaseDate.IsZero() {
		out["releaseDate"] = item.ReleaseDate.Format("2006-01-02")
	}
	return out
}
