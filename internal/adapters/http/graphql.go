package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/ddfriends/places/internal/core/usecases"
)

// buildSchema creates the read-only GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"latitude":  &graphql.Field{Type: graphql.Float},
			"longitude": &graphql.Field{Type: graphql.Float},
		},
	})

	categoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"name": &graphql.Field{Type: graphql.String},
		},
	})

	tagType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Tag",
		Fields: graphql.Fields{
			"name": &graphql.Field{Type: graphql.String},
		},
	})

	locationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Location",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.Int},
			"name":        &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"address":     &graphql.Field{Type: graphql.String},
			"user_id":     &graphql.Field{Type: graphql.String},
			"coordinate":  &graphql.Field{Type: geoPointType},
			"website":     &graphql.Field{Type: graphql.String},
			"telephone":   &graphql.Field{Type: graphql.String},
			"categories":  &graphql.Field{Type: graphql.NewList(categoryType)},
			"tags":        &graphql.Field{Type: graphql.NewList(tagType)},
			"distance":    &graphql.Field{Type: graphql.Float},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"locations": &graphql.Field{
				Type:        graphql.NewList(locationType),
				Description: "List locations matching optional filters",
				Args: graphql.FieldConfigArgument{
					"user_id":  &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"name":     &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"category": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"tag":      &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Locations.Find(p.Context, usecases.FindQuery{
						UserID:   p.Args["user_id"].(string),
						Name:     p.Args["name"].(string),
						Category: p.Args["category"].(string),
						Tag:      p.Args["tag"].(string),
					})
				},
			},
			"locationsNearby": &graphql.Field{
				Type:        graphql.NewList(locationType),
				Description: "Find locations around a point, annotated with distance in meters",
				Args: graphql.FieldConfigArgument{
					"latitude":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"longitude": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"radius":    &graphql.ArgumentConfig{Type: graphql.Float},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					lat := p.Args["latitude"].(float64)
					lon := p.Args["longitude"].(float64)
					radius := deps.DefaultRadius
					if r, ok := p.Args["radius"].(float64); ok {
						radius = r
					}
					return deps.Locations.FindNearby(p.Context, lat, lon, radius)
				},
			},
			"location": &graphql.Field{
				Type:        locationType,
				Description: "Get a single location by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(int)
					return deps.Locations.GetByID(p.Context, int64(id))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
