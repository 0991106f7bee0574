package app

import (
	"context"
	"time"

	"github.com/ericzzh/telegram-deletewatch/server/bot"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// OutcomeKind tells what a recorder did with an event.
type OutcomeKind int

const (
	// OutcomeIgnored means the event did not qualify and nothing was written.
	OutcomeIgnored OutcomeKind = iota
	// OutcomeRecorded means exactly one row was written.
	OutcomeRecorded
	// OutcomeFailed means the event qualified but the write failed.
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeRecorded:
		return "recorded"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Outcome is the result of recording one event. Callers log it and move on.
type Outcome struct {
	Kind OutcomeKind
	Err  error
}

//go:generate mockgen -destination=mocks/mock_service.go -package=mock_app github.com/ericzzh/telegram-deletewatch/server/app RecorderService,SubscriberService,ReportService,PurgeService

// RecorderService records group replies and captioned media.
type RecorderService interface {
	RecordReply(ctx context.Context, ev ReplyEvent) Outcome
	RecordMedia(ctx context.Context, ev MediaEvent) Outcome
}

type recorderService struct {
	groupName    string
	messageStore MessageStore
	itemStore    ItemStore
	logger       bot.Logger
	now          func() time.Time
	newID        func() string
}

// NewRecorderService returns a recorder for the group titled groupName.
func NewRecorderService(groupName string, ms MessageStore, is ItemStore, logger bot.Logger) RecorderService {
	return &recorderService{
		groupName:    groupName,
		messageStore: ms,
		itemStore:    is,
		logger:       logger,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

func (r *recorderService) RecordReply(ctx context.Context, ev ReplyEvent) Outcome {
	if ev.GroupTitle != r.groupName || !ev.IsReply {
		return Outcome{Kind: OutcomeIgnored}
	}

	ts := ev.Timestamp
	if ts.IsZero() {
		ts = r.now()
	}

	msg := MessageRecord{
		ID:        r.newID(),
		MessageID: ev.MessageID,
		Username:  ev.Username,
		Text:      ev.Text,
		Timestamp: ts,
		ThreadID:  ev.ThreadID,
	}

	r.logger.Debugf("Recorder: storing message %d from %s.", ev.MessageID, ev.Username)
	if err := r.messageStore.CreateMessage(ctx, msg); err != nil {
		return Outcome{
			Kind: OutcomeFailed,
			Err:  errors.Wrapf(err, "failed to record message %d", ev.MessageID),
		}
	}
	return Outcome{Kind: OutcomeRecorded}
}

func (r *recorderService) RecordMedia(ctx context.Context, ev MediaEvent) Outcome {
	if ev.GroupTitle != r.groupName || ev.Caption == "" {
		return Outcome{Kind: OutcomeIgnored}
	}

	r.logger.Debugf("Recorder: storing item %d.", ev.MessageID)
	if err := r.itemStore.CreateItem(ctx, ItemRecord{MessageID: ev.MessageID, Caption: ev.Caption}); err != nil {
		return Outcome{
			Kind: OutcomeFailed,
			Err:  errors.Wrapf(err, "failed to record item %d", ev.MessageID),
		}
	}
	return Outcome{Kind: OutcomeRecorded}
}
