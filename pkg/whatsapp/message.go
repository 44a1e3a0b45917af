package whatsapp

import (
	"strings"
	"time"

	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
)

// Message is an inbound customer message stripped down to what the bot uses.
type Message struct {
	ID         string
	Chat       string
	Sender     string
	PushName   string
	Text       string
	HasMedia   bool
	MediaType  string
	ReceivedAt time.Time
}

// ParseMessage converts a whatsmeow message event. Own messages, group chats
// and broadcasts are skipped.
func ParseMessage(evt *events.Message) (Message, bool) {
	if evt == nil || evt.Message == nil {
		return Message{}, false
	}

	info := evt.Info
	if info.IsFromMe || info.IsGroup || info.Chat.Server == types.BroadcastServer {
		return Message{}, false
	}

	msg := Message{
		ID:         info.ID,
		Chat:       info.Chat.String(),
		Sender:     info.Sender.String(),
		PushName:   info.PushName,
		ReceivedAt: info.Timestamp,
	}

	text, mediaType := extractContent(evt.Message)
	msg.Text = strings.TrimSpace(text)
	msg.MediaType = mediaType
	msg.HasMedia = mediaType != ""

	if msg.Text == "" && !msg.HasMedia {
		return Message{}, false
	}
	return msg, true
}

func extractContent(m *waE2E.Message) (string, string) {
	// view once and ephemeral wrappers carry the real message inside
	if inner := m.GetEphemeralMessage().GetMessage(); inner != nil {
		return extractContent(inner)
	}
	if inner := m.GetViewOnceMessage().GetMessage(); inner != nil {
		return extractContent(inner)
	}

	switch {
	case m.GetConversation() != "":
		return m.GetConversation(), ""
	case m.GetExtendedTextMessage() != nil:
		return m.GetExtendedTextMessage().GetText(), ""
	case m.GetImageMessage() != nil:
		return m.GetImageMessage().GetCaption(), "image"
	case m.GetVideoMessage() != nil:
		return m.GetVideoMessage().GetCaption(), "video"
	case m.GetDocumentMessage() != nil:
		return m.GetDocumentMessage().GetCaption(), "document"
	case m.GetAudioMessage() != nil:
		return "", "audio"
	case m.GetStickerMessage() != nil:
		return "", "sticker"
	}
	return "", ""
}
