package sqlstore

import (
	"context"

	"github.com/pkg/errors"
)

// items.message_id is the anchor post id, not a key into messages.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		message_id BIGINT NOT NULL,
		username TEXT NOT NULL,
		text TEXT NOT NULL,
		timestamp TIMESTAMP NOT NULL,
		message_thread_id BIGINT
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		message_id BIGINT NOT NULL,
		caption TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_items_message_id ON items (message_id)`,
	`CREATE TABLE IF NOT EXISTS usernames (
		username TEXT PRIMARY KEY,
		chat_id BIGINT NOT NULL
	)`,
}

func (s *SQLStore) migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "failed to run migration")
		}
	}
	s.log.Debugf("SQLStore: %d migrations applied.", len(migrations))
	return nil
}
