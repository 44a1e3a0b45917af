package context

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestRequestIDRoundTrip(t *testing.T) {
	if got := GetRequestID(context.Background()); got != "unknown" {
		t.Errorf("GetRequestID(empty) = %q", got)
	}

	ctx := WithRequestID(context.Background(), "3EB0ABCDEF")
	if got := GetRequestID(ctx); got != "3EB0ABCDEF" {
		t.Errorf("GetRequestID() = %q", got)
	}

	if got := GetRequestID(context.WithValue(context.Background(), "request_id", "plain")); got != "unknown" {
		t.Errorf("untyped key leaked: %q", got)
	}
}

func TestFromFiberCtx(t *testing.T) {
	app := fiber.New()
	app.Get("/locals", func(c *fiber.Ctx) error {
		c.Locals("X-Request-ID", "from-locals")
		return c.SendString(GetRequestID(FromFiberCtx(c)))
	})
	app.Get("/header", func(c *fiber.Ctx) error {
		return c.SendString(GetRequestID(FromFiberCtx(c)))
	})

	tests := []struct {
		path   string
		header string
		want   string
	}{
		{path: "/locals", header: "ignored", want: "from-locals"},
		{path: "/header", header: "from-header", want: "from-header"},
		{path: "/header", want: "unknown"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(fiber.MethodGet, tt.path, nil)
		if tt.header != "" {
			req.Header.Set("X-Request-ID", tt.header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		body, _ := io.ReadAll(resp.Body)
		if string(body) != tt.want {
			t.Errorf("%s: request id = %q, want %q", tt.path, body, tt.want)
		}
	}
}
