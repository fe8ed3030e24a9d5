// Package sheets loads map locations from the Apps Script web app that
// fronts the school's location spreadsheet, with a TOML seed file and a
// built-in sample set as fallbacks.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/samirrijal/schoolnav/internal/core/domain"
	"github.com/samirrijal/schoolnav/internal/pkg/metrics"
)

// ErrNotConfigured is returned when no sheet URL is set.
var ErrNotConfigured = errors.New("sheet url not configured")

// Client implements ports.LocationSource over the Apps Script endpoint.
type Client struct {
	url     string
	timeout time.Duration
	http    *fasthttp.Client
}

// NewClient creates a Client. timeout bounds each request.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:     url,
		timeout: timeout,
		http: &fasthttp.Client{
			Name:                "schoolnav-importer",
			MaxIdleConnDuration: 30 * time.Second,
		},
	}
}

// row is one spreadsheet row as the script serializes it. Cells typed as
// text in the sheet arrive as strings, so numbers are decoded leniently.
type row struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Building    string    `json:"building"`
	Floor       flexFloat `json:"floor"`
	Lat         flexFloat `json:"lat"`
	Lng         flexFloat `json:"lng"`
	X           flexFloat `json:"x"`
	Y           flexFloat `json:"y"`
}

func (r row) location() domain.Location {
	return domain.Location{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Type:        r.Type,
		BuildingID:  r.Building,
		Floor:       int(r.Floor),
		Position:    domain.GeoPoint{Lat: float64(r.Lat), Lon: float64(r.Lng)},
		MapX:        float64(r.X),
		MapY:        float64(r.Y),
	}
}

func rowFrom(l *domain.Location) row {
	return row{
		Name:        l.Name,
		Description: l.Description,
		Type:        l.Type,
		Building:    l.BuildingID,
		Floor:       flexFloat(l.Floor),
		Lat:         flexFloat(l.Position.Lat),
		Lng:         flexFloat(l.Position.Lon),
		X:           flexFloat(l.MapX),
		Y:           flexFloat(l.MapY),
	}
}

// flexFloat accepts a JSON number, a numeric string, or an empty string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", b)
	}
	*f = flexFloat(v)
	return nil
}

// FetchLocations downloads every row. Rows without a name are skipped.
func (c *Client) FetchLocations(ctx context.Context) ([]domain.Location, error) {
	if c.url == "" {
		return nil, ErrNotConfigured
	}

	start := time.Now()
	body, err := c.do(ctx, fasthttp.MethodGet, nil)
	metrics.SheetFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SheetFetchErrors.Inc()
		return nil, err
	}

	var rows []row
	if err := json.Unmarshal(body, &rows); err != nil {
		metrics.SheetFetchErrors.Inc()
		return nil, fmt.Errorf("decode sheet: %w", err)
	}

	locs := make([]domain.Location, 0, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		locs = append(locs, r.location())
	}
	return locs, nil
}

// SaveLocation appends a row to the sheet.
func (c *Client) SaveLocation(ctx context.Context, loc *domain.Location) error {
	if c.url == "" {
		return ErrNotConfigured
	}
	payload, err := json.Marshal(rowFrom(loc))
	if err != nil {
		return err
	}
	_, err = c.do(ctx, fasthttp.MethodPost, payload)
	return err
}

func (c *Client) do(ctx context.Context, method string, payload []byte) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if payload != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	timeout := c.timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}
	req.SetTimeout(timeout)

	// Apps Script answers with a redirect to the content host.
	if err := c.http.DoRedirects(req, resp, 3); err != nil {
		return nil, fmt.Errorf("sheet %s: %w", method, err)
	}
	if code := resp.StatusCode(); code != fasthttp.StatusOK {
		return nil, fmt.Errorf("sheet %s: HTTP %d", method, code)
	}
	return bytes.Clone(resp.Body()), nil
}
