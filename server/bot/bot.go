// Package bot glues the Telegram client and the process logger into the
// Logger and Poster the rest of the server works against.
package bot

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

//go:generate mockgen -destination=mocks/mock_bot.go -package=mock_bot github.com/ericzzh/telegram-deletewatch/server/bot Logger,Poster

// Logger is the logging surface handed to services.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Poster delivers text to a Telegram chat.
type Poster interface {
	PostMessage(ctx context.Context, chatID int64, text string) error
}

// Sender is implemented by telegram.Client.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Bot implements Logger and Poster.
type Bot struct {
	sender Sender
	log    zerolog.Logger
}

// New creates a bot that sends through sender and logs to log.
func New(sender Sender, log zerolog.Logger) *Bot {
	return &Bot{
		sender: sender,
		log:    log,
	}
}

// PostMessage sends text to chatID.
func (b *Bot) PostMessage(ctx context.Context, chatID int64, text string) error {
	if err := b.sender.SendMessage(ctx, chatID, text); err != nil {
		return errors.Wrapf(err, "failed to post message to chat %d", chatID)
	}
	return nil
}

// Debugf writes a debug level log line.
func (b *Bot) Debugf(format string, args ...interface{}) {
	b.log.Debug().Msgf(format, args...)
}

// Infof writes an info level log line.
func (b *Bot) Infof(format string, args ...interface{}) {
	b.log.Info().Msgf(format, args...)
}

// Warnf writes a warn level log line.
func (b *Bot) Warnf(format string, args ...interface{}) {
	b.log.Warn().Msgf(format, args...)
}

// Errorf writes an error level log line.
func (b *Bot) Errorf(format string, args ...interface{}) {
	b.log.Error().Msgf(format, args...)
}

// Zerolog returns the underlying logger for components that log structured fields.
func (b *Bot) Zerolog() zerolog.Logger {
	return b.log
}
