package http

import (
	"bytes"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/schoolnav/internal/adapters/render"
	"github.com/samirrijal/schoolnav/internal/core/domain"
	"github.com/samirrijal/schoolnav/internal/core/usecases"
)

// suggestionCount is how many names a missed search offers instead.
const suggestionCount = 3

// ListLocationsHandler returns one page of map locations.
func ListLocationsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pg := pageFromQuery(c)

		total, err := deps.Locations.Count(c.UserContext())
		if err != nil {
			return errFromService(c, err)
		}
		pg.Total = total
		locs, err := deps.Locations.List(c.UserContext(), pg.Limit, pg.Offset)
		if err != nil {
			return errFromService(c, err)
		}
		if locs == nil {
			locs = []domain.Location{}
		}

		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: locs, Pagination: pg})
	}
}

// SearchResult carries matches, or suggestions when nothing matched.
type SearchResult struct {
	Results     []domain.Location `json:"results"`
	Suggestions []string          `json:"suggestions,omitempty"`
}

// SearchLocationsHandler matches location names by substring.
func SearchLocationsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")
		if strings.TrimSpace(query) == "" {
			return errBadRequest(c, "q query parameter is required")
		}
		if len(query) > 200 {
			return errBadRequest(c, "query too long (max 200 characters)")
		}

		locs, err := deps.Locations.Search(c.UserContext(), query, c.QueryInt("limit", 20))
		if err != nil {
			return errFromService(c, err)
		}

		res := SearchResult{Results: locs}
		if len(locs) == 0 {
			res.Results = []domain.Location{}
			if names, err := deps.Locations.Suggestions(c.UserContext(), suggestionCount); err == nil {
				res.Suggestions = names
			}
		}
		return c.JSON(res)
	}
}

// NearbyLocationsHandler returns locations around a coordinate.
func NearbyLocationsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat := c.QueryFloat("lat", 0)
		lng := c.QueryFloat("lng", 0)
		radius := c.QueryFloat("radius", 200)

		if lat == 0 || lng == 0 {
			return errBadRequest(c, "lat and lng are required")
		}
		if radius <= 0 || radius > 5000 {
			return errBadRequest(c, "radius must be between 1 and 5000 meters")
		}

		locs, err := deps.Locations.FindNearby(c.UserContext(), domain.GeoPoint{Lat: lat, Lon: lng}, radius, c.QueryInt("limit", 20))
		if err != nil {
			return errFromService(c, err)
		}
		return c.JSON(locs)
	}
}

// GetLocationHandler returns a single location by ID.
func GetLocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		loc, err := deps.Locations.GetByID(c.UserContext(), c.Params("id"))
		if err != nil {
			return errFromService(c, err)
		}
		return c.JSON(loc)
	}
}

// SaveLocationHandler creates or updates a location. Admin only.
func SaveLocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var loc domain.Location
		if err := c.BodyParser(&loc); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.Locations.Save(c.UserContext(), &loc); err != nil {
			return errFromService(c, err)
		}
		logger := LoggerFromCtx(c.UserContext())
		logger.Info("location saved", "id", loc.ID, "name", loc.Name, "admin", c.Locals("admin"))
		if deps.Sheet != nil {
			if err := deps.Sheet.SaveLocation(c.UserContext(), &loc); err != nil {
				logger.Warn("sheet mirror failed", "name", loc.Name, "error", err)
			}
		}
		return c.Status(fiber.StatusCreated).JSON(loc)
	}
}

// ListBuildingsHandler returns the known buildings ordered by id.
func ListBuildingsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		buildings := deps.Buildings.List()
		sort.Slice(buildings, func(i, j int) bool { return buildings[i].ID < buildings[j].ID })
		return c.JSON(buildings)
	}
}

// routeRequest is the JSON body shared by the navigation endpoints.
type routeRequest struct {
	Path          string              `json:"path"`
	DestinationID string              `json:"destination_id"`
	Destination   *domain.Destination `json:"destination"`
	Start         *domain.StartPoint  `json:"start"`
	Language      string              `json:"language"`
	Narrate       bool                `json:"narrate"`
}

// DirectionsResponse is the JSON shape of a directions answer.
type DirectionsResponse struct {
	*domain.Directions
	Title  string       `json:"title"`
	Rows   []render.Row `json:"rows"`
	Notice string       `json:"notice,omitempty"`
}

// DirectionsHandler turns a drawn route into steps and a voice queue.
// With ?format=text the steps are rendered as plain text.
func DirectionsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req routeRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if len(req.Path) > 64*1024 {
			return errBadRequest(c, "path too long")
		}
		lang := deps.Navigation.Language(req.Language)

		dir, err := deps.Navigation.Directions(c.UserContext(), usecases.DirectionsRequest{
			Path:          req.Path,
			DestinationID: req.DestinationID,
			Destination:   req.Destination,
			Start:         req.Start,
			Language:      lang,
			Narrate:       req.Narrate,
		})
		if err != nil {
			return errFromService(c, err)
		}

		// Nothing chosen on the map yet: no start point and no drawn route.
		noStart := req.Start == nil && strings.TrimSpace(req.Path) == ""

		if c.Query("format") == "text" {
			var buf bytes.Buffer
			target := render.NewTextTarget(&buf)
			if noStart {
				err = render.RenderNoStart(target, lang)
			} else {
				err = render.Render(target, dir.Steps, lang)
			}
			if err != nil {
				return errFromService(c, err)
			}
			c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
			return c.Send(buf.Bytes())
		}

		res := DirectionsResponse{Directions: dir, Title: render.Title(lang), Rows: render.Rows(dir.Steps)}
		if noStart {
			res.Notice = render.NoStartNotice(lang)
		}
		return c.JSON(res)
	}
}

// VoiceQueueHandler returns only the announcement list for a route.
func VoiceQueueHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req routeRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		q, err := deps.Navigation.VoiceQueueFor(c.UserContext(), usecases.DirectionsRequest{
			Path:          req.Path,
			DestinationID: req.DestinationID,
			Destination:   req.Destination,
			Start:         req.Start,
			Language:      deps.Navigation.Language(req.Language),
		})
		if err != nil {
			return errFromService(c, err)
		}
		return c.JSON(q)
	}
}

type speakRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// SpeakHandler sends one step's text to the speech subsystem.
func SpeakHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req speakRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if strings.TrimSpace(req.Text) == "" {
			return errBadRequest(c, "text is required")
		}
		if len(req.Text) > 500 {
			return errBadRequest(c, "text too long (max 500 characters)")
		}

		a, err := deps.Navigation.Speak(c.UserContext(), req.Text, deps.Navigation.Language(req.Language))
		if err != nil {
			return errFromService(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(a)
	}
}
