package whatsapp

import (
	"RomiioBot/database/postgres"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mdp/qrterminal/v3"
	"github.com/sirupsen/logrus"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"google.golang.org/protobuf/proto"
)

// LiveMessage is logged once the client is connected and ready.
const LiveMessage = "🤖 Rent a Romiio WhatsApp Bot is live and connected ✅"

var ErrConnectTimeout = errors.New("whatsapp connection timeout")

type MessageHandler func(msg Message)

type IWhatsappSender interface {
	SendMessage(ctx context.Context, to, message string) error
	OnMessage(handler MessageHandler)
	Connect(ctx context.Context, pairTimeout time.Duration) error
	Disconnect() error
	IsConnected() bool
}

type whatsappSender struct {
	client   *whatsmeow.Client
	log      *logrus.Logger
	mu       sync.RWMutex
	handlers []MessageHandler
	ready    chan struct{}
	once     sync.Once
}

// New opens the whatsmeow device store in postgres and prepares a client.
// Connect must be called before messages flow.
func New(ctx context.Context, log *logrus.Logger) (IWhatsappSender, error) {
	container, err := sqlstore.New(ctx, "postgres", postgres.FormatDSN(), NewLogger(log, "Database"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get device store: %w", err)
	}

	w := &whatsappSender{
		client: whatsmeow.NewClient(deviceStore, NewLogger(log, "Client")),
		log:    log,
		ready:  make(chan struct{}),
	}
	w.client.AddEventHandler(w.handleEvent)

	return w, nil
}

func (w *whatsappSender) OnMessage(handler MessageHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Connect logs in with the stored session or prints a pairing QR code to the
// terminal, then waits until the connection is up.
func (w *whatsappSender) Connect(ctx context.Context, pairTimeout time.Duration) error {
	if w.client.Store.ID == nil {
		qrChan, err := w.client.GetQRChannel(ctx)
		if err != nil {
			return fmt.Errorf("failed to get QR channel: %w", err)
		}
		if err := w.client.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}

		go func() {
			for evt := range qrChan {
				switch evt.Event {
				case whatsmeow.QRChannelEventCode:
					w.log.Info("Scan the QR code below with WhatsApp to pair the bot")
					qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
				case whatsmeow.QRChannelSuccess.Event:
					w.log.Info("WhatsApp pairing succeeded")
				default:
					w.log.WithField("event", evt.Event).Warn("WhatsApp pairing ended")
				}
			}
		}()
	} else if err := w.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	select {
	case <-w.ready:
		w.log.Info(LiveMessage)
		return nil
	case <-time.After(pairTimeout):
		w.client.Disconnect()
		return ErrConnectTimeout
	case <-ctx.Done():
		w.client.Disconnect()
		return ctx.Err()
	}
}

func (w *whatsappSender) handleEvent(evt interface{}) {
	switch v := evt.(type) {
	case *events.Connected:
		w.once.Do(func() { close(w.ready) })
		w.log.Info("WhatsApp connected")
	case *events.Disconnected:
		w.log.Warn("WhatsApp disconnected, waiting for reconnect")
	case *events.LoggedOut:
		w.log.WithField("reason", v.Reason.String()).Error("WhatsApp session logged out, pair the device again")
	case *events.Message:
		msg, ok := ParseMessage(v)
		if !ok {
			return
		}

		w.mu.RLock()
		handlers := append([]MessageHandler(nil), w.handlers...)
		w.mu.RUnlock()

		for _, h := range handlers {
			h(msg)
		}
	}
}

func (w *whatsappSender) SendMessage(ctx context.Context, to, message string) error {
	jid, err := parseRecipient(to)
	if err != nil {
		return err
	}

	waMsg := &waE2E.Message{
		Conversation: proto.String(message),
	}

	if _, err := w.client.SendMessage(ctx, jid, waMsg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

func (w *whatsappSender) Disconnect() error {
	w.client.Disconnect()
	return nil
}

func (w *whatsappSender) IsConnected() bool {
	return w.client.IsConnected()
}

// parseRecipient accepts a full JID or a bare phone number.
func parseRecipient(to string) (types.JID, error) {
	if strings.Contains(to, "@") {
		jid, err := types.ParseJID(to)
		if err != nil {
			return types.JID{}, fmt.Errorf("invalid recipient %q: %w", to, err)
		}
		return jid, nil
	}

	phone := strings.TrimPrefix(strings.TrimSpace(to), "+")
	if phone == "" {
		return types.JID{}, fmt.Errorf("invalid recipient %q", to)
	}
	return types.NewJID(phone, types.DefaultUserServer), nil
}
