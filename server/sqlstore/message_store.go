package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/ericzzh/telegram-deletewatch/server/app"
	"github.com/pkg/errors"
)

type messageStore struct {
	store        *SQLStore
	queryBuilder sq.StatementBuilderType
}

// NewMessageStore returns the messages table as an app.MessageStore.
func NewMessageStore(sqlStore *SQLStore) app.MessageStore {
	return &messageStore{
		store:        sqlStore,
		queryBuilder: sqlStore.builder,
	}
}

func (ms *messageStore) CreateMessage(ctx context.Context, msg app.MessageRecord) error {
	_, err := ms.store.execBuilder(ctx, ms.store.db,
		ms.queryBuilder.Insert("messages").
			Columns("id", "message_id", "username", "text", "timestamp", "message_thread_id").
			Values(msg.ID, msg.MessageID, msg.Username, msg.Text, msg.Timestamp, msg.ThreadID))
	if err != nil {
		return errors.Wrapf(err, "failed to insert message %d", msg.MessageID)
	}
	return nil
}

func (ms *messageStore) GetAllMessages(ctx context.Context) ([]app.MessageRecord, error) {
	msgs := []app.MessageRecord{}

	query := ms.queryBuilder.
		Select("id", "message_id", "username", "text", "timestamp", "message_thread_id").
		From("messages")

	if err := ms.store.selectBuilder(ctx, ms.store.db, &msgs, query); err != nil {
		return nil, errors.Wrap(err, "failed to select messages")
	}
	return msgs, nil
}
