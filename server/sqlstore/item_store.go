package sqlstore

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/ericzzh/telegram-deletewatch/server/app"
	"github.com/pkg/errors"
)

type itemStore struct {
	store        *SQLStore
	queryBuilder sq.StatementBuilderType
}

// NewItemStore returns the items table as an app.ItemStore.
func NewItemStore(sqlStore *SQLStore) app.ItemStore {
	return &itemStore{
		store:        sqlStore,
		queryBuilder: sqlStore.builder,
	}
}

func (is *itemStore) CreateItem(ctx context.Context, item app.ItemRecord) error {
	_, err := is.store.execBuilder(ctx, is.store.db,
		is.queryBuilder.Insert("items").
			Columns("message_id", "caption").
			Values(item.MessageID, item.Caption))
	if err != nil {
		return errors.Wrapf(err, "failed to insert item %d", item.MessageID)
	}
	return nil
}

func (is *itemStore) GetItem(ctx context.Context, messageID int64) (*app.ItemRecord, error) {
	var item app.ItemRecord

	query := is.queryBuilder.
		Select("message_id", "caption").
		From("items").
		Where(sq.Eq{"message_id": messageID}).
		Limit(1)

	err := is.store.getBuilder(ctx, is.store.db, &item, query)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(app.ErrNotFound, "item %d", messageID)
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to get item %d", messageID)
	}
	return &item, nil
}
