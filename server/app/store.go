package app

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by store lookups that match no row.
var ErrNotFound = errors.New("not found")

//go:generate mockgen -destination=mocks/mock_store.go -package=mock_app github.com/ericzzh/telegram-deletewatch/server/app MessageStore,ItemStore,SubscriberStore,RetentionStore

// MessageStore persists recorded replies.
type MessageStore interface {
	CreateMessage(ctx context.Context, msg MessageRecord) error
	GetAllMessages(ctx context.Context) ([]MessageRecord, error)
}

// ItemStore persists captions of thread anchors.
type ItemStore interface {
	CreateItem(ctx context.Context, item ItemRecord) error
	// GetItem returns ErrNotFound when no item has the given anchor id.
	GetItem(ctx context.Context, messageID int64) (*ItemRecord, error)
}

// SubscriberStore maps usernames to the private chat reports go to.
type SubscriberStore interface {
	// CreateSubscriber inserts the record unless the username is taken.
	// The bool reports whether a row was inserted.
	CreateSubscriber(ctx context.Context, sub SubscriberRecord) (bool, error)
	// GetSubscriber returns ErrNotFound for unknown usernames.
	GetSubscriber(ctx context.Context, username string) (*SubscriberRecord, error)
}

// RetentionStore clears recorded data.
type RetentionStore interface {
	// PurgeAll deletes every message and item in one transaction.
	PurgeAll(ctx context.Context) (PurgeStats, error)
}
