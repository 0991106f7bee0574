package sqlstore

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/ericzzh/telegram-deletewatch/server/bot"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	// database/sql drivers selected by name in New.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// SQLStore owns the database handle shared by the individual stores.
type SQLStore struct {
	log     bot.Logger
	db      *sqlx.DB
	builder sq.StatementBuilderType
}

type builder interface {
	ToSql() (string, []interface{}, error)
}

// New opens the database and makes sure the tables exist.
func New(ctx context.Context, driverName, dsn string, log bot.Logger) (*SQLStore, error) {
	if driverName != DriverPostgres && driverName != DriverSQLite {
		return nil, errors.Errorf("unsupported database driver %q", driverName)
	}

	db, err := sqlx.ConnectContext(ctx, driverName, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to %s database", driverName)
	}

	if driverName == DriverSQLite {
		// one writer at a time, otherwise concurrent recorders hit "database is locked".
		db.SetMaxOpenConns(1)
	}

	s := &SQLStore{
		log:     log,
		db:      db,
		builder: getQueryBuilder(driverName),
	}

	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func getQueryBuilder(driverName string) sq.StatementBuilderType {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	if driverName == DriverPostgres {
		builder = builder.PlaceholderFormat(sq.Dollar)
	}
	return builder
}

func (s *SQLStore) selectBuilder(ctx context.Context, q sqlx.QueryerContext, dest interface{}, b builder) error {
	sqlString, args, err := b.ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build sql")
	}

	return sqlx.SelectContext(ctx, q, dest, sqlString, args...)
}

func (s *SQLStore) getBuilder(ctx context.Context, q sqlx.QueryerContext, dest interface{}, b builder) error {
	sqlString, args, err := b.ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build sql")
	}

	return sqlx.GetContext(ctx, q, dest, sqlString, args...)
}

func (s *SQLStore) execBuilder(ctx context.Context, e sqlx.ExecerContext, b builder) (sql.Result, error) {
	sqlString, args, err := b.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build sql")
	}

	return e.ExecContext(ctx, sqlString, args...)
}

func (s *SQLStore) finalizeTransaction(tx *sqlx.Tx) {
	// Rollback returns sql.ErrTxDone if the transaction was already closed.
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		s.log.Errorf("Failed to rollback transaction: %v", err)
	}
}
