package sqlstore

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/ericzzh/telegram-deletewatch/server/app"
	"github.com/pkg/errors"
)

type subscriberStore struct {
	store        *SQLStore
	queryBuilder sq.StatementBuilderType
}

// NewSubscriberStore returns the usernames table as an app.SubscriberStore.
func NewSubscriberStore(sqlStore *SQLStore) app.SubscriberStore {
	return &subscriberStore{
		store:        sqlStore,
		queryBuilder: sqlStore.builder,
	}
}

func (ss *subscriberStore) CreateSubscriber(ctx context.Context, sub app.SubscriberRecord) (bool, error) {
	res, err := ss.store.execBuilder(ctx, ss.store.db,
		ss.queryBuilder.Insert("usernames").
			Columns("username", "chat_id").
			Values(sub.Username, sub.ChatID).
			Suffix("ON CONFLICT (username) DO NOTHING"))
	if err != nil {
		return false, errors.Wrapf(err, "failed to insert username %s", sub.Username)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed to read affected rows")
	}
	return n == 1, nil
}

func (ss *subscriberStore) GetSubscriber(ctx context.Context, username string) (*app.SubscriberRecord, error) {
	var sub app.SubscriberRecord

	query := ss.queryBuilder.
		Select("username", "chat_id").
		From("usernames").
		Where(sq.Eq{"username": username})

	err := ss.store.getBuilder(ctx, ss.store.db, &sub, query)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(app.ErrNotFound, "username %s", username)
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to get username %s", username)
	}
	return &sub, nil
}
