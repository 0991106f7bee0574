package telegram

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type (
	User = tgbotapi.User
	Chat = tgbotapi.Chat
)

// Update is the part of https://core.telegram.org/bots/api#update the bot
// reads. tgbotapi.Update would drop message_thread_id.
type Update struct {
	UpdateID          int      `json:"update_id"`
	Message           *Message `json:"message,omitempty"`
	EditedMessage     *Message `json:"edited_message,omitempty"`
	ChannelPost       *Message `json:"channel_post,omitempty"`
	EditedChannelPost *Message `json:"edited_channel_post,omitempty"`
}

// Message is a tgbotapi.Message plus the forum thread id, which the library
// release in use predates. The thread id ties a reply to its item.
type Message struct {
	tgbotapi.Message
	MessageThreadID *int64 `json:"message_thread_id,omitempty"`
}

// ID is MessageID widened to the int64 the stores use.
func (m *Message) ID() int64 {
	return int64(m.MessageID)
}

// Time converts the unix Date field. Zero when Date is unset.
func (m *Message) Time() time.Time {
	if m.Date == 0 {
		return time.Time{}
	}
	return time.Unix(int64(m.Date), 0).UTC()
}

// HasMedia reports whether the message carries a photo, video, document or animation.
func (m *Message) HasMedia() bool {
	return len(m.Photo) > 0 || m.Video != nil || m.Document != nil || m.Animation != nil
}

// Sender returns the username of the author, empty for anonymous posts.
func (m *Message) Sender() string {
	if m.From == nil {
		return ""
	}
	return m.From.UserName
}
