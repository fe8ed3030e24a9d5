package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/schoolnav/internal/core/domain"
	"github.com/samirrijal/schoolnav/internal/core/usecases"
)

// buildSchema creates the GraphQL schema wired to our services.
// Fields resolve through the domain types' json tags.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	locationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Location",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"type":        &graphql.Field{Type: graphql.String},
			"building_id": &graphql.Field{Type: graphql.String},
			"floor":       &graphql.Field{Type: graphql.Int},
			"position":    &graphql.Field{Type: geoPointType},
			"x":           &graphql.Field{Type: graphql.Float},
			"y":           &graphql.Field{Type: graphql.Float},
		},
	})

	stepType := graphql.NewObject(graphql.ObjectConfig{
		Name: "NavigationStep",
		Fields: graphql.Fields{
			"step":             &graphql.Field{Type: graphql.Int},
			"text":             &graphql.Field{Type: graphql.String},
			"distance":         &graphql.Field{Type: graphql.String},
			"icon":             &graphql.Field{Type: graphql.String},
			"type":             &graphql.Field{Type: graphql.String},
			"turnType":         &graphql.Field{Type: graphql.String},
			"needsFloorChange": &graphql.Field{Type: graphql.Boolean},
		},
	})

	voiceType := graphql.NewObject(graphql.ObjectConfig{
		Name: "VoiceQueue",
		Fields: graphql.Fields{
			"id":            &graphql.Field{Type: graphql.String},
			"language":      &graphql.Field{Type: graphql.String},
			"provider":      &graphql.Field{Type: graphql.String},
			"announcements": &graphql.Field{Type: graphql.NewList(graphql.String)},
		},
	})

	directionsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Directions",
		Fields: graphql.Fields{
			"steps":    &graphql.Field{Type: graphql.NewList(stepType)},
			"voice":    &graphql.Field{Type: voiceType},
			"provider": &graphql.Field{Type: graphql.String},
			"language": &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"locations": &graphql.Field{
				Type:        graphql.NewList(locationType),
				Description: "List map locations",
				Args: graphql.FieldConfigArgument{
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 100},
					"offset": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Locations.List(p.Context, p.Args["limit"].(int), p.Args["offset"].(int))
				},
			},
			"searchLocations": &graphql.Field{
				Type:        graphql.NewList(locationType),
				Description: "Search locations by name",
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Locations.Search(p.Context, p.Args["query"].(string), p.Args["limit"].(int))
				},
			},
			"location": &graphql.Field{
				Type:        locationType,
				Description: "Get a location by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Locations.GetByID(p.Context, p.Args["id"].(string))
				},
			},
			"directions": &graphql.Field{
				Type:        directionsType,
				Description: "Step-by-step directions along a drawn route",
				Args: graphql.FieldConfigArgument{
					"path":          &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"destinationId": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"destination":   &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"building":      &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"floor":         &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
					"startFloor":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
					"language":      &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					req := usecases.DirectionsRequest{
						Path:          p.Args["path"].(string),
						DestinationID: p.Args["destinationId"].(string),
						Language:      deps.Navigation.Language(p.Args["language"].(string)),
					}
					if name := p.Args["destination"].(string); name != "" {
						req.Destination = &domain.Destination{
							Name:     name,
							Building: p.Args["building"].(string),
							Floor:    p.Args["floor"].(int),
						}
					}
					if f := p.Args["startFloor"].(int); f != 0 {
						req.Start = &domain.StartPoint{Floor: f}
					}
					return deps.Navigation.Directions(p.Context, req)
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
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
