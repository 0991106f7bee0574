package app

import (
	"context"

	"github.com/ericzzh/telegram-deletewatch/server/bot"
	"github.com/pkg/errors"
)

// SubscriberService is the registry of report destinations.
type SubscriberService interface {
	// Register stores chatID for username unless the username already has one.
	Register(ctx context.Context, username string, chatID int64) (bool, error)
	// Lookup returns ErrNotFound for unregistered usernames.
	Lookup(ctx context.Context, username string) (int64, error)
}

type subscriberService struct {
	store  SubscriberStore
	logger bot.Logger
}

func NewSubscriberService(store SubscriberStore, logger bot.Logger) SubscriberService {
	return &subscriberService{store: store, logger: logger}
}

func (s *subscriberService) Register(ctx context.Context, username string, chatID int64) (bool, error) {
	if username == "" {
		return false, errors.New("username is empty")
	}

	created, err := s.store.CreateSubscriber(ctx, SubscriberRecord{Username: username, ChatID: chatID})
	if err != nil {
		return false, errors.Wrapf(err, "failed to register %s", username)
	}
	if created {
		s.logger.Infof("Registry: %s registered with chat %d.", username, chatID)
	}
	return created, nil
}

func (s *subscriberService) Lookup(ctx context.Context, username string) (int64, error) {
	sub, err := s.store.GetSubscriber(ctx, username)
	if err != nil {
		return 0, err
	}
	return sub.ChatID, nil
}
