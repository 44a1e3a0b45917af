package conversationHandler

import (
	"RomiioBot/internal/api/conversation"
	"RomiioBot/pkg/metrics"
	"RomiioBot/pkg/whatsapp"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type sentMessage struct {
	to   string
	text string
}

type fakeSender struct {
	mu      sync.Mutex
	sent    []sentMessage
	handler whatsapp.MessageHandler
	failing bool
}

func (f *fakeSender) SendMessage(_ context.Context, to, message string) error {
	if f.failing {
		return errors.New("socket closed")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{to: to, text: message})
	return nil
}

func (f *fakeSender) OnMessage(handler whatsapp.MessageHandler)   { f.handler = handler }
func (f *fakeSender) Connect(context.Context, time.Duration) error { return nil }
func (f *fakeSender) Disconnect() error                            { return nil }
func (f *fakeSender) IsConnected() bool                            { return true }

func (f *fakeSender) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

type whatsappFixture struct {
	handler *WhatsappHandler
	sender  *fakeSender
	metrics *metrics.Metrics
}

func newWhatsappFixture(svc *fakeService, messageBurst int) *whatsappFixture {
	f := &whatsappFixture{
		sender:  &fakeSender{},
		metrics: metrics.NewMetrics(),
	}
	f.handler = NewWhatsappHandler(quietLogger(), newTestMiddleware("development", messageBurst), svc, f.sender, f.metrics)
	f.handler.Start()
	return f
}

func (f *whatsappFixture) deliver(t *testing.T, msgs ...whatsapp.Message) {
	t.Helper()
	for _, msg := range msgs {
		f.sender.handler(msg)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := f.handler.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
}

func inbound(text string) whatsapp.Message {
	return whatsapp.Message{
		ID:         "3EB0ABCDEF",
		Chat:       "919999999999@s.whatsapp.net",
		Text:       text,
		ReceivedAt: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
	}
}

func TestWhatsappReplySentToSameChat(t *testing.T) {
	svc := &fakeService{result: &conversation.Result{Reply: "Welcome to Rent a Romiio"}}
	f := newWhatsappFixture(svc, 5)

	f.deliver(t, inbound("hi"))

	sent := f.sender.messages()
	if len(sent) != 1 || sent[0].to != "919999999999@s.whatsapp.net" || sent[0].text != "Welcome to Rent a Romiio" {
		t.Fatalf("sent = %+v", sent)
	}
	if calls := svc.calls(); calls[0].CustomerID != "919999999999@s.whatsapp.net" || calls[0].MessageID != "3EB0ABCDEF" {
		t.Errorf("inbound = %+v", calls[0])
	}
	if v := testutil.ToFloat64(f.metrics.RepliesSent); v != 1 {
		t.Errorf("replies sent = %v", v)
	}
	if v := testutil.ToFloat64(f.metrics.MessagesReceived.WithLabelValues("whatsapp")); v != 1 {
		t.Errorf("messages received = %v", v)
	}
}

func TestWhatsappSilentResultSendsNothing(t *testing.T) {
	f := newWhatsappFixture(&fakeService{result: &conversation.Result{Silent: true}}, 5)

	f.deliver(t, inbound("done"))

	if sent := f.sender.messages(); len(sent) != 0 {
		t.Errorf("sent = %+v", sent)
	}
}

func TestWhatsappServiceErrorSendsApology(t *testing.T) {
	f := newWhatsappFixture(&fakeService{err: conversation.ErrSessionUnavailable}, 5)

	f.deliver(t, inbound("1"))

	sent := f.sender.messages()
	if len(sent) != 1 || sent[0].text != conversation.ApologyText {
		t.Errorf("sent = %+v", sent)
	}
}

func TestWhatsappInvalidMessageIgnored(t *testing.T) {
	f := newWhatsappFixture(&fakeService{err: conversation.ErrInvalidMessage}, 5)

	f.deliver(t, inbound("1"))

	if sent := f.sender.messages(); len(sent) != 0 {
		t.Errorf("sent = %+v", sent)
	}
}

func TestWhatsappPanicSendsApology(t *testing.T) {
	f := newWhatsappFixture(&fakeService{panics: true}, 5)

	f.deliver(t, inbound("1"))

	sent := f.sender.messages()
	if len(sent) != 1 || sent[0].text != conversation.ApologyText {
		t.Errorf("sent = %+v", sent)
	}
	if v := testutil.ToFloat64(f.metrics.HandlerFaults); v != 1 {
		t.Errorf("handler faults = %v", v)
	}
}

func TestWhatsappRateLimitDropsMessages(t *testing.T) {
	svc := &fakeService{result: &conversation.Result{Reply: "ok"}}
	f := newWhatsappFixture(svc, 2)

	f.deliver(t, inbound("a"), inbound("b"), inbound("c"))

	if n := len(svc.calls()); n != 2 {
		t.Errorf("service calls = %d, want 2", n)
	}
	if v := testutil.ToFloat64(f.metrics.RateLimited); v != 1 {
		t.Errorf("rate limited = %v", v)
	}
}

func TestWhatsappSendFailureCounted(t *testing.T) {
	f := newWhatsappFixture(&fakeService{result: &conversation.Result{Reply: "ok"}}, 5)
	f.sender.failing = true

	f.deliver(t, inbound("hi"))

	if v := testutil.ToFloat64(f.metrics.RepliesFailed); v != 1 {
		t.Errorf("replies failed = %v", v)
	}
}
