package telemetry

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Event is a flat record posted to the webhook. timestamp and event_id are
// added on send.
type Event map[string]interface{}

type ILogger interface {
	Log(event Event)
	Enabled() bool
	Close(ctx context.Context) error
}

type webhookLogger struct {
	log     *logrus.Logger
	url     string
	client  *http.Client
	now     func() time.Time
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
	entropy io.Reader
}

// NewWebhookLogger posts events to url. An empty url drops every event.
func NewWebhookLogger(log *logrus.Logger, url string, timeout time.Duration) ILogger {
	return &webhookLogger{
		log:     log,
		url:     url,
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

func (w *webhookLogger) Enabled() bool {
	return w.url != ""
}

// Log sends the event in the background. Delivery is at most once and
// failures are only logged.
func (w *webhookLogger) Log(event Event) {
	if !w.Enabled() {
		return
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	now := w.now()
	id, err := ulid.New(ulid.Timestamp(now), w.entropy)
	w.wg.Add(1)
	w.mu.Unlock()

	payload := make(Event, len(event)+2)
	for k, v := range event {
		payload[k] = v
	}
	payload["timestamp"] = now.UTC().Format(time.RFC3339Nano)
	if err == nil {
		payload["event_id"] = id.String()
	}

	go func() {
		defer w.wg.Done()
		if err := w.post(payload); err != nil {
			w.log.WithFields(logrus.Fields{
				"error": err.Error(),
				"event": payload["event"],
			}).Debug("Failed to deliver telemetry event")
		}
	}()
}

func (w *webhookLogger) post(payload Event) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send event: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}
	return nil
}

// Close stops accepting events and waits for in-flight posts until ctx ends.
func (w *webhookLogger) Close(ctx context.Context) error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
