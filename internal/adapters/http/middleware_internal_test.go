package http

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestETagMatches(t *testing.T) {
	tag := weakETag([]byte(`{"ok":true}`))
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{tag, true},
		{`W/"0000000000000000", ` + tag, true},
		{"*", true},
		{`W/"0000000000000000"`, false},
	}
	for _, tt := range tests {
		if got := etagMatches(tt.header, tag); got != tt.want {
			t.Errorf("etagMatches(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}

func TestETagMiddleware_NotModified(t *testing.T) {
	app := fiber.New()
	app.Use(ETagMiddleware())
	app.Get("/x", func(c *fiber.Ctx) error { return c.SendString("hello") })

	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tag := resp.Header.Get("ETag")
	if tag == "" {
		t.Fatal("expected an ETag")
	}

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("If-None-Match", tag)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotModified {
		t.Errorf("expected 304, got %d", resp.StatusCode)
	}
}

func TestSetLinkHeaders_KeepsQuery(t *testing.T) {
	app := fiber.New()
	app.Get("/v1/locations", func(c *fiber.Ctx) error {
		p := pageFromQuery(c)
		p.Total = 5
		SetLinkHeaders(c, p)
		return c.JSON(p)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/locations?offset=2&limit=2&type=classroom", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	link := resp.Header.Get("Link")
	for _, want := range []string{
		`</v1/locations?limit=2&offset=0&type=classroom>; rel="first"`,
		`</v1/locations?limit=2&offset=0&type=classroom>; rel="prev"`,
		`</v1/locations?limit=2&offset=4&type=classroom>; rel="next"`,
		`</v1/locations?limit=2&offset=4&type=classroom>; rel="last"`,
	} {
		if !strings.Contains(link, want) {
			t.Errorf("expected %s in %s", want, link)
		}
	}
}

func TestPageFromQuery_Clamps(t *testing.T) {
	app := fiber.New()
	var got Pagination
	app.Get("/", func(c *fiber.Ctx) error {
		got = pageFromQuery(c)
		return nil
	})
	if _, err := app.Test(httptest.NewRequest("GET", "/?offset=-3&limit=5000", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Offset != 0 || got.Limit != maxPageSize {
		t.Errorf("expected offset 0 limit %d, got %+v", maxPageSize, got)
	}
}
