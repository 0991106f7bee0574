package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ericzzh/telegram-deletewatch/server/bot"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	// NoDeletedText is sent when every recorded message still exists.
	NoDeletedText = "No deleted messages detected."
	// UnknownItemCaption stands in for the caption of a thread with no item.
	UnknownItemCaption = "(unknown item)"
)

// ErrReportInProgress is returned when a report is requested while another
// one is still probing the group.
var ErrReportInProgress = errors.New("a deletion report is already running")

// DeletedMessage is a recorded message that failed its probe.
type DeletedMessage struct {
	Message MessageRecord
	Caption string
}

// Report is the outcome of one deletion check.
type Report struct {
	Checked    int
	Deleted    []DeletedMessage
	Unverified int
	// Delivered is false when the requester has no registered chat.
	Delivered bool
}

// Text renders the report the way it is sent to the requester.
func (r *Report) Text() string {
	var note string
	if r.Unverified > 0 {
		note = fmt.Sprintf("Could not verify %d message(s).", r.Unverified)
	}

	if len(r.Deleted) == 0 {
		if note != "" {
			return NoDeletedText + "\n\n" + note
		}
		return NoDeletedText
	}

	blocks := make([]string, 0, len(r.Deleted))
	for _, d := range r.Deleted {
		blocks = append(blocks, fmt.Sprintf("@%s: %s\nItem: %s\n", d.Message.Username, d.Message.Text, d.Caption))
	}
	text := strings.Join(blocks, "\n")
	if note != "" {
		text += "\n" + note
	}
	return text
}

// ReportService finds recorded messages that were deleted from the group
// and sends the list to whoever asked.
type ReportService interface {
	Report(ctx context.Context, requester string, groupID int64) (*Report, error)
}

type reportService struct {
	messageStore MessageStore
	itemStore    ItemStore
	subscribers  SubscriberService
	prober       Prober
	poster       bot.Poster
	logger       bot.Logger
	concurrency  int

	// running keeps a second report from probing while one is in flight.
	running sync.Mutex
}

// NewReportService returns a ReportService. concurrency caps how many probes
// run at once; values below 1 mean sequential probing.
func NewReportService(ms MessageStore, is ItemStore, subs SubscriberService, prober Prober, poster bot.Poster, logger bot.Logger, concurrency int) ReportService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &reportService{
		messageStore: ms,
		itemStore:    is,
		subscribers:  subs,
		prober:       prober,
		poster:       poster,
		logger:       logger,
		concurrency:  concurrency,
	}
}

type verdict struct {
	exists bool
	err    error
}

func (s *reportService) Report(ctx context.Context, requester string, groupID int64) (*Report, error) {
	if !s.running.TryLock() {
		return nil, ErrReportInProgress
	}
	defer s.running.Unlock()

	msgs, err := s.messageStore.GetAllMessages(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read recorded messages")
	}

	s.logger.Debugf("Report: probing %d messages in group %d for %s.", len(msgs), groupID, requester)
	verdicts := s.probeAll(ctx, groupID, msgs)
	if err := canceledVerdict(verdicts); err != nil {
		return nil, errors.Wrap(err, "report canceled while probing")
	}

	rep := &Report{Checked: len(msgs)}
	for i, msg := range msgs {
		v := verdicts[i]
		switch {
		case v.err != nil:
			rep.Unverified++
			s.logger.Warnf("Report: %v", v.err)
		case v.exists:
		default:
			rep.Deleted = append(rep.Deleted, DeletedMessage{
				Message: msg,
				Caption: s.caption(ctx, msg.ThreadID),
			})
		}
	}
	s.logger.Infof("Report: %d of %d messages deleted, %d unverified.", len(rep.Deleted), rep.Checked, rep.Unverified)

	chatID, err := s.subscribers.Lookup(ctx, requester)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Warnf("Report: no chat registered for %s, report not sent.", requester)
			return rep, nil
		}
		return rep, errors.Wrapf(err, "failed to look up chat for %s", requester)
	}

	if err := s.poster.PostMessage(ctx, chatID, rep.Text()); err != nil {
		return rep, errors.Wrapf(err, "failed to deliver report to %s", requester)
	}
	rep.Delivered = true
	return rep, nil
}

// probeAll returns one verdict per message, at the message's index.
func (s *reportService) probeAll(ctx context.Context, groupID int64, msgs []MessageRecord) []verdict {
	verdicts := make([]verdict, len(msgs))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range msgs {
		i := i
		g.Go(func() error {
			exists, err := s.prober.Exists(ctx, groupID, msgs[i].MessageID)
			verdicts[i] = verdict{exists: exists, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return verdicts
}

// canceledVerdict returns the first verdict error that came from ctx being
// done. Such a verdict carries no answer and leaves the report incomplete.
func canceledVerdict(verdicts []verdict) error {
	for _, v := range verdicts {
		if v.err == nil || errors.Is(v.err, ErrUnverified) {
			continue
		}
		if errors.Is(v.err, context.Canceled) || errors.Is(v.err, context.DeadlineExceeded) {
			return v.err
		}
	}
	return nil
}

func (s *reportService) caption(ctx context.Context, threadID *int64) string {
	if threadID == nil {
		return UnknownItemCaption
	}

	item, err := s.itemStore.GetItem(ctx, *threadID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warnf("Report: failed to read item %d: %v", *threadID, err)
		}
		return UnknownItemCaption
	}
	return item.Caption
}
