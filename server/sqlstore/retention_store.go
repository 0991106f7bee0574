package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/ericzzh/telegram-deletewatch/server/app"
	"github.com/pkg/errors"
)

type retentionStore struct {
	store        *SQLStore
	queryBuilder sq.StatementBuilderType
}

// NewRetentionStore returns the purge side of the messages and items tables.
func NewRetentionStore(sqlStore *SQLStore) app.RetentionStore {
	return &retentionStore{
		store:        sqlStore,
		queryBuilder: sqlStore.builder,
	}
}

func (rs *retentionStore) PurgeAll(ctx context.Context) (app.PurgeStats, error) {
	var stats app.PurgeStats

	tx, err := rs.store.db.BeginTxx(ctx, nil)
	if err != nil {
		return stats, errors.Wrap(err, "failed to start transaction")
	}
	defer rs.store.finalizeTransaction(tx)

	res, err := rs.store.execBuilder(ctx, tx, rs.queryBuilder.Delete("messages"))
	if err != nil {
		return stats, errors.Wrap(err, "failed to delete from messages")
	}
	stats.Messages, _ = res.RowsAffected()

	res, err = rs.store.execBuilder(ctx, tx, rs.queryBuilder.Delete("items"))
	if err != nil {
		return stats, errors.Wrap(err, "failed to delete from items")
	}
	stats.Items, _ = res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return app.PurgeStats{}, errors.Wrap(err, "commit_transaction")
	}

	return stats, nil
}
