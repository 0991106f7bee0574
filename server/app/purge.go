package app

import (
	"context"
	"time"

	"github.com/ericzzh/telegram-deletewatch/server/bot"
	"github.com/pkg/errors"
)

// PurgeService wipes all recorded messages and items.
type PurgeService interface {
	Purge(ctx context.Context) (PurgeStats, error)
}

type purgeService struct {
	store    RetentionStore
	logger   bot.Logger
	location *time.Location
	now      func() time.Time
}

// NewPurgeService returns a PurgeService. location is the purge schedule's
// timezone and only shows up in the log line; nil means UTC.
func NewPurgeService(store RetentionStore, location *time.Location, logger bot.Logger) PurgeService {
	if location == nil {
		location = time.UTC
	}
	return &purgeService{
		store:    store,
		logger:   logger,
		location: location,
		now:      time.Now,
	}
}

func (p *purgeService) Purge(ctx context.Context) (PurgeStats, error) {
	stats, err := p.store.PurgeAll(ctx)
	if err != nil {
		return stats, errors.Wrap(err, "failed to purge recorded data")
	}

	at := p.now().In(p.location)
	p.logger.Infof("Database cleared successfully at %s on %s. messages: %d, items: %d",
		at.Format("15:04"), at.Format("2006-01-02"), stats.Messages, stats.Items)
	return stats, nil
}
