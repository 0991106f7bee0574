// Package command runs the bot's slash commands.
package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ericzzh/telegram-deletewatch/server/app"
	"github.com/ericzzh/telegram-deletewatch/server/bot"
	"github.com/ericzzh/telegram-deletewatch/server/config"
	"github.com/ericzzh/telegram-deletewatch/server/metrics"
	"github.com/pkg/errors"
)

const (
	CommandStart   = "/start"
	CommandDeleted = "/deleted"
	CommandHelp    = "/help"
)

const helpText = "Deleted message watch - commands\n" +
	"/start - Register this private chat to receive reports.\n" +
	"/deleted - Check the discussion group for deleted comments. The report is sent to your private chat.\n"

const (
	greetingFormat   = "Hi %s, I will now store your messages in the database. Use /deleted in the discussion group to see deleted comments."
	noUsernameText   = "Please set a Telegram username first, then send /start again."
	privateOnlyText  = "Please send /start to me in a private chat so I can deliver your reports there."
	inProgressText   = "A deleted message check is already running. Please try again in a moment."
	noGroupText      = "Send /deleted in the discussion group, or set group.id in the bot configuration."
	reportFailedText = "Sorry, the deleted message check failed. Please try again later."
)

// Report results as counted by ReportObserver.
const (
	ReportDelivered   = "delivered"
	ReportUndelivered = "undelivered"
	ReportBusy        = "busy"
	ReportFailed      = "failed"
)

// ReportObserver is told about every /deleted run. metrics.Metrics implements it.
type ReportObserver interface {
	ObserveReport(result string, d time.Duration)
	ObserveProbes(result string, n int)
}

// ChatTypePrivate is the Bot API chat type of a one to one chat with the bot.
const ChatTypePrivate = "private"

// Args is one command invocation.
type Args struct {
	Command   string
	Username  string
	ChatID    int64
	ChatTitle string
	// ChatType is the Bot API chat type: private, group, supergroup or channel.
	ChatType string
}

// IsCommand reports whether text is one of the bot's commands.
func IsCommand(text string) bool {
	switch trigger(text) {
	case CommandStart, CommandDeleted, CommandHelp:
		return true
	}
	return false
}

// trigger returns the first word of text without a "@BotName" suffix.
func trigger(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	cmd := fields[0]
	if i := strings.Index(cmd, "@"); i >= 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd)
}

// Runner handles commands.
type Runner struct {
	args          *Args
	logger        bot.Logger
	poster        bot.Poster
	configService config.Service
	subscribers   app.SubscriberService
	reports       app.ReportService
	observer      ReportObserver
}

// NewCommandRunner creates a command runner. observer may be nil.
func NewCommandRunner(args *Args,
	logger bot.Logger,
	poster bot.Poster,
	cs config.Service,
	subs app.SubscriberService,
	reports app.ReportService,
	observer ReportObserver,
) *Runner {
	return &Runner{
		args:          args,
		logger:        logger,
		poster:        poster,
		configService: cs,
		subscribers:   subs,
		reports:       reports,
		observer:      observer,
	}
}

func (r *Runner) isValid() error {
	if r.args == nil || r.subscribers == nil || r.reports == nil || r.configService == nil {
		return errors.New("invalid arguments to command.Runner")
	}
	return nil
}

// Execute should be called by the webhook when a command message arrives.
func (r *Runner) Execute(ctx context.Context) error {
	if err := r.isValid(); err != nil {
		return err
	}

	switch trigger(r.args.Command) {
	case CommandStart:
		return r.actionStart(ctx)
	case CommandDeleted:
		return r.actionDeleted(ctx)
	case CommandHelp:
		r.postCommandResponse(ctx, helpText)
	}
	return nil
}

func (r *Runner) postCommandResponse(ctx context.Context, text string) {
	if err := r.poster.PostMessage(ctx, r.args.ChatID, text); err != nil {
		r.logger.Errorf("Failed to respond to %s: %v", r.args.Command, err)
	}
}

func (r *Runner) actionStart(ctx context.Context) error {
	if r.args.Username == "" {
		r.postCommandResponse(ctx, noUsernameText)
		return nil
	}

	// The chat id becomes the delivery address for good, so only a private
	// chat may register.
	if r.args.ChatType != ChatTypePrivate {
		r.postCommandResponse(ctx, privateOnlyText)
		return nil
	}

	if _, err := r.subscribers.Register(ctx, r.args.Username, r.args.ChatID); err != nil {
		return errors.Wrapf(err, "failed to register %s", r.args.Username)
	}

	r.postCommandResponse(ctx, fmt.Sprintf(greetingFormat, r.args.Username))
	return nil
}

// groupID picks the chat to probe: the one the command came from when it is
// the monitored group, else the configured id.
func (r *Runner) groupID() int64 {
	cfg := r.configService.GetConfiguration()
	if r.args.ChatTitle != "" && r.args.ChatTitle == cfg.Group.Name {
		return r.args.ChatID
	}
	return cfg.Group.ID
}

func (r *Runner) actionDeleted(ctx context.Context) error {
	// unknown requesters never get a report, so there is nothing to reply.
	if r.args.Username == "" {
		r.logger.Warnf("Ignoring %s from a user without username.", CommandDeleted)
		return nil
	}

	groupID := r.groupID()
	if groupID == 0 {
		r.postCommandResponse(ctx, noGroupText)
		return nil
	}

	start := time.Now()
	rep, err := r.reports.Report(ctx, r.args.Username, groupID)
	switch {
	case errors.Is(err, app.ErrReportInProgress):
		r.observe(ReportBusy, 0, nil)
		r.postCommandResponse(ctx, inProgressText)
		return nil
	case err != nil:
		r.observe(ReportFailed, time.Since(start), rep)
		if rep != nil {
			return errors.Wrapf(err, "report for %s was built but not delivered", r.args.Username)
		}
		r.postCommandResponse(ctx, reportFailedText)
		return errors.Wrap(err, "failed to run deletion report")
	}

	if rep.Delivered {
		r.observe(ReportDelivered, time.Since(start), rep)
	} else {
		r.observe(ReportUndelivered, time.Since(start), rep)
	}
	return nil
}

func (r *Runner) observe(result string, d time.Duration, rep *app.Report) {
	if r.observer == nil {
		return
	}
	r.observer.ObserveReport(result, d)
	if rep == nil {
		return
	}
	r.observer.ObserveProbes(metrics.ProbeDeleted, len(rep.Deleted))
	r.observer.ObserveProbes(metrics.ProbeUnverified, rep.Unverified)
	r.observer.ObserveProbes(metrics.ProbeExisting, rep.Checked-len(rep.Deleted)-rep.Unverified)
}
