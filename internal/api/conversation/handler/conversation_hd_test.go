package conversationHandler

import (
	"RomiioBot/internal/api/conversation"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
)

func newTestApp(svc *fakeService, appEnv string, messageBurst int) *fiber.App {
	app := fiber.New()
	mw := newTestMiddleware(appEnv, messageBurst)
	app.Use(mw.NewRequestIDMiddleware())
	New(quietLogger(), validator.New(), mw, svc).Start(app)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	out := map[string]interface{}{}
	if len(raw) > 0 {
		if err := jsoniter.Unmarshal(raw, &out); err != nil {
			t.Fatalf("decode %q: %v", raw, err)
		}
	}
	return resp, out
}

func TestSimulateReturnsReply(t *testing.T) {
	svc := &fakeService{result: &conversation.Result{
		Reply:    "menu",
		Rule:     "main_menu",
		Phase:    "main",
		Category: "",
	}}
	app := newTestApp(svc, "development", 5)

	resp, body := doRequest(t, app, fiber.MethodPost, "/conversations/simulate",
		`{"customer_id":"alice","text":"hi"}`)

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}
	if body["reply"] != "menu" || body["rule"] != "main_menu" || body["phase"] != "main" {
		t.Errorf("body = %v", body)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing request id header")
	}

	calls := svc.calls()
	if len(calls) != 1 || calls[0].CustomerID != "alice" || calls[0].Text != "hi" || calls[0].MessageID == "" {
		t.Errorf("service calls = %+v", calls)
	}
}

func TestSimulateMarksMediaType(t *testing.T) {
	svc := &fakeService{result: &conversation.Result{Silent: true}}
	app := newTestApp(svc, "development", 5)

	resp, body := doRequest(t, app, fiber.MethodPost, "/conversations/simulate",
		`{"customer_id":"alice","media_type":"image"}`)

	if resp.StatusCode != fiber.StatusOK || body["silent"] != true {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}
	if calls := svc.calls(); !calls[0].HasMedia {
		t.Errorf("media flag not set: %+v", calls[0])
	}
}

func TestSimulateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"customer_id":`},
		{name: "missing customer", body: `{"text":"hi"}`},
		{name: "short customer", body: `{"customer_id":"a","text":"hi"}`},
		{name: "unknown media", body: `{"customer_id":"alice","media_type":"gif"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{result: &conversation.Result{}}
			app := newTestApp(svc, "development", 5)

			resp, body := doRequest(t, app, fiber.MethodPost, "/conversations/simulate", tt.body)
			if resp.StatusCode != fiber.StatusBadRequest || body["code"] != "VALIDATION_ERROR" {
				t.Errorf("status = %d, body = %v", resp.StatusCode, body)
			}
			if len(svc.calls()) != 0 {
				t.Error("service called for invalid request")
			}
		})
	}
}

func TestSimulateMapsServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "fault", err: conversation.ErrHandlerFault, wantStatus: 500, wantCode: "HANDLER_FAULT"},
		{name: "store down", err: conversation.ErrSessionUnavailable, wantStatus: 503, wantCode: "SESSION_UNAVAILABLE"},
		{name: "invalid", err: conversation.ErrInvalidMessage, wantStatus: 400, wantCode: "INVALID_MESSAGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&fakeService{err: tt.err}, "development", 5)

			resp, body := doRequest(t, app, fiber.MethodPost, "/conversations/simulate",
				`{"customer_id":"alice","text":"hi"}`)
			if resp.StatusCode != tt.wantStatus || body["code"] != tt.wantCode {
				t.Errorf("status = %d, body = %v", resp.StatusCode, body)
			}
		})
	}
}

func TestSimulateAppliesMessageRateLimit(t *testing.T) {
	svc := &fakeService{result: &conversation.Result{Reply: "ok"}}
	app := newTestApp(svc, "development", 2)

	for i := 0; i < 2; i++ {
		resp, _ := doRequest(t, app, fiber.MethodPost, "/conversations/simulate", `{"customer_id":"alice","text":"hi"}`)
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("request %d status = %d", i, resp.StatusCode)
		}
	}

	resp, body := doRequest(t, app, fiber.MethodPost, "/conversations/simulate", `{"customer_id":"alice","text":"hi"}`)
	if resp.StatusCode != fiber.StatusTooManyRequests || body["code"] != "RATE_LIMITED" {
		t.Errorf("status = %d, body = %v", resp.StatusCode, body)
	}

	resp, _ = doRequest(t, app, fiber.MethodPost, "/conversations/simulate", `{"customer_id":"bob","text":"hi"}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("other customer limited: status = %d", resp.StatusCode)
	}
}

func TestSessionEndpoints(t *testing.T) {
	svc := &fakeService{sessions: map[string]*conversation.SessionResponse{
		"alice": {CustomerID: "alice", Phase: "category_selected", Category: "regular"},
	}}
	app := newTestApp(svc, "development", 5)

	resp, body := doRequest(t, app, fiber.MethodGet, "/conversations/sessions/alice", "")
	if resp.StatusCode != fiber.StatusOK || body["phase"] != "category_selected" || body["category"] != "regular" {
		t.Fatalf("get status = %d, body = %v", resp.StatusCode, body)
	}

	resp, _ = doRequest(t, app, fiber.MethodDelete, "/conversations/sessions/alice", "")
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	resp, body = doRequest(t, app, fiber.MethodGet, "/conversations/sessions/alice", "")
	if resp.StatusCode != fiber.StatusNotFound || body["code"] != "SESSION_NOT_FOUND" {
		t.Errorf("get after delete status = %d, body = %v", resp.StatusCode, body)
	}
}

func TestRoutesHiddenInProduction(t *testing.T) {
	svc := &fakeService{result: &conversation.Result{Reply: "menu"}}
	app := newTestApp(svc, "production", 5)

	resp, _ := doRequest(t, app, fiber.MethodPost, "/conversations/simulate", `{"customer_id":"alice","text":"hi"}`)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if len(svc.calls()) != 0 {
		t.Error("service reached in production")
	}
}
