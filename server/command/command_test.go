package command_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ericzzh/telegram-deletewatch/server/app"
	mock_app "github.com/ericzzh/telegram-deletewatch/server/app/mocks"
	"github.com/ericzzh/telegram-deletewatch/server/bot"
	mock_bot "github.com/ericzzh/telegram-deletewatch/server/bot/mocks"
	"github.com/ericzzh/telegram-deletewatch/server/command"
	"github.com/ericzzh/telegram-deletewatch/server/config"
	mock_config "github.com/ericzzh/telegram-deletewatch/server/config/mocks"
	"github.com/ericzzh/telegram-deletewatch/server/metrics"
	gomock "github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	groupChatID   = int64(-1001234)
	privateChatID = int64(777)
)

type fixture struct {
	poster   *mock_bot.MockPoster
	config   *mock_config.MockService
	subs     *mock_app.MockSubscriberService
	reports  *mock_app.MockReportService
	observer *recordingObserver
}

type recordingObserver struct {
	reports []string
	probes  map[string]int
}

func (o *recordingObserver) ObserveReport(result string, d time.Duration) {
	o.reports = append(o.reports, result)
}

func (o *recordingObserver) ObserveProbes(result string, n int) {
	if o.probes == nil {
		o.probes = map[string]int{}
	}
	o.probes[result] += n
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	cfg := config.Default()
	cfg.Group.ID = -100999

	f := &fixture{
		poster:   mock_bot.NewMockPoster(ctrl),
		config:   mock_config.NewMockService(ctrl),
		subs:     mock_app.NewMockSubscriberService(ctrl),
		reports:  mock_app.NewMockReportService(ctrl),
		observer: &recordingObserver{},
	}
	f.config.EXPECT().GetConfiguration().Return(cfg).AnyTimes()
	return f
}

func (f *fixture) run(args *command.Args) error {
	return command.NewCommandRunner(args, bot.New(nil, bot.NopLogger()), f.poster, f.config, f.subs, f.reports, f.observer).
		Execute(context.Background())
}

func TestIsCommand(t *testing.T) {
	assert.True(t, command.IsCommand("/start"))
	assert.True(t, command.IsCommand("/deleted@DeleteWatchBot"))
	assert.True(t, command.IsCommand("  /help please"))
	assert.False(t, command.IsCommand("/unknown"))
	assert.False(t, command.IsCommand("is /deleted a command?"))
	assert.False(t, command.IsCommand(""))
}

func TestStart(t *testing.T) {
	t.Run("registers and greets", func(t *testing.T) {
		f := newFixture(t)
		gomock.InOrder(
			f.subs.EXPECT().Register(gomock.Any(), "alice", privateChatID).Return(true, nil),
			f.poster.EXPECT().PostMessage(gomock.Any(), privateChatID,
				"Hi alice, I will now store your messages in the database. Use /deleted in the discussion group to see deleted comments.").Return(nil),
		)

		require.NoError(t, f.run(&command.Args{Command: "/start", Username: "alice", ChatID: privateChatID, ChatType: command.ChatTypePrivate}))
	})

	t.Run("already registered still greets", func(t *testing.T) {
		f := newFixture(t)
		f.subs.EXPECT().Register(gomock.Any(), "alice", privateChatID).Return(false, nil)
		f.poster.EXPECT().PostMessage(gomock.Any(), privateChatID, gomock.Any()).Return(nil)

		require.NoError(t, f.run(&command.Args{Command: "/start@DeleteWatchBot", Username: "alice", ChatID: privateChatID, ChatType: command.ChatTypePrivate}))
	})

	t.Run("no username", func(t *testing.T) {
		f := newFixture(t)
		f.poster.EXPECT().PostMessage(gomock.Any(), privateChatID, gomock.Any()).Return(nil)

		require.NoError(t, f.run(&command.Args{Command: "/start", ChatID: privateChatID}))
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t)
		cause := errors.New("disk full")
		f.subs.EXPECT().Register(gomock.Any(), "alice", privateChatID).Return(false, cause)

		err := f.run(&command.Args{Command: "/start", Username: "alice", ChatID: privateChatID, ChatType: command.ChatTypePrivate})
		assert.ErrorIs(t, err, cause)
	})

	for _, chatType := range []string{"group", "supergroup", "channel"} {
		chatType := chatType
		t.Run("refuses to register a "+chatType+" chat", func(t *testing.T) {
			f := newFixture(t)
			f.subs.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			f.poster.EXPECT().PostMessage(gomock.Any(), groupChatID,
				"Please send /start to me in a private chat so I can deliver your reports there.").Return(nil)

			require.NoError(t, f.run(&command.Args{
				Command:   "/start",
				Username:  "alice",
				ChatID:    groupChatID,
				ChatTitle: "Cheeky Softwear Club Chat",
				ChatType:  chatType,
			}))
		})
	}
}

func TestDeleted(t *testing.T) {
	t.Run("probes the group the command came from", func(t *testing.T) {
		f := newFixture(t)
		f.reports.EXPECT().Report(gomock.Any(), "alice", groupChatID).Return(&app.Report{
			Checked:   3,
			Deleted:   []app.DeletedMessage{{Caption: "vintage jacket"}},
			Delivered: true,
		}, nil)

		require.NoError(t, f.run(&command.Args{
			Command:   "/deleted",
			Username:  "alice",
			ChatID:    groupChatID,
			ChatTitle: config.DefaultGroupName,
		}))

		assert.Equal(t, []string{command.ReportDelivered}, f.observer.reports)
		assert.Equal(t, 1, f.observer.probes[metrics.ProbeDeleted])
		assert.Equal(t, 2, f.observer.probes[metrics.ProbeExisting])
	})

	t.Run("falls back to configured group", func(t *testing.T) {
		f := newFixture(t)
		f.reports.EXPECT().Report(gomock.Any(), "alice", int64(-100999)).Return(&app.Report{Delivered: true}, nil)

		require.NoError(t, f.run(&command.Args{Command: "/deleted", Username: "alice", ChatID: privateChatID}))
	})

	t.Run("unregistered requester is silent", func(t *testing.T) {
		f := newFixture(t)
		f.reports.EXPECT().Report(gomock.Any(), "bob", groupChatID).Return(&app.Report{Checked: 1}, nil)

		require.NoError(t, f.run(&command.Args{
			Command:   "/deleted",
			Username:  "bob",
			ChatID:    groupChatID,
			ChatTitle: config.DefaultGroupName,
		}))
		assert.Equal(t, []string{command.ReportUndelivered}, f.observer.reports)
	})

	t.Run("report already running", func(t *testing.T) {
		f := newFixture(t)
		f.reports.EXPECT().Report(gomock.Any(), "alice", groupChatID).Return(nil, app.ErrReportInProgress)
		f.poster.EXPECT().PostMessage(gomock.Any(), groupChatID, gomock.Any()).Return(nil)

		require.NoError(t, f.run(&command.Args{
			Command:   "/deleted",
			Username:  "alice",
			ChatID:    groupChatID,
			ChatTitle: config.DefaultGroupName,
		}))
		assert.Equal(t, []string{command.ReportBusy}, f.observer.reports)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t)
		cause := errors.New("connection refused")
		f.reports.EXPECT().Report(gomock.Any(), "alice", groupChatID).Return(nil, cause)
		f.poster.EXPECT().PostMessage(gomock.Any(), groupChatID, gomock.Any()).Return(nil)

		err := f.run(&command.Args{
			Command:   "/deleted",
			Username:  "alice",
			ChatID:    groupChatID,
			ChatTitle: config.DefaultGroupName,
		})
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, []string{command.ReportFailed}, f.observer.reports)
	})

	t.Run("delivery failure", func(t *testing.T) {
		f := newFixture(t)
		cause := errors.New("bot was blocked by the user")
		f.reports.EXPECT().Report(gomock.Any(), "alice", groupChatID).Return(&app.Report{Checked: 1}, cause)

		err := f.run(&command.Args{
			Command:   "/deleted",
			Username:  "alice",
			ChatID:    groupChatID,
			ChatTitle: config.DefaultGroupName,
		})
		assert.ErrorIs(t, err, cause)
	})

	t.Run("no group to probe", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cs := mock_config.NewMockService(ctrl)
		cs.EXPECT().GetConfiguration().Return(config.Default()).AnyTimes()
		poster := mock_bot.NewMockPoster(ctrl)
		poster.EXPECT().PostMessage(gomock.Any(), privateChatID, gomock.Any()).Return(nil)

		runner := command.NewCommandRunner(&command.Args{Command: "/deleted", Username: "alice", ChatID: privateChatID},
			bot.New(nil, bot.NopLogger()), poster, cs,
			mock_app.NewMockSubscriberService(ctrl), mock_app.NewMockReportService(ctrl), nil)
		require.NoError(t, runner.Execute(context.Background()))
	})
}

func TestHelpAndUnknown(t *testing.T) {
	f := newFixture(t)
	f.poster.EXPECT().PostMessage(gomock.Any(), privateChatID, gomock.Any()).Return(nil).Times(1)

	require.NoError(t, f.run(&command.Args{Command: "/help", ChatID: privateChatID}))
	require.NoError(t, f.run(&command.Args{Command: "/other", ChatID: privateChatID}))
}

func TestInvalidRunner(t *testing.T) {
	err := command.NewCommandRunner(nil, bot.New(nil, bot.NopLogger()), nil, nil, nil, nil, nil).Execute(context.Background())
	require.Error(t, err)
}
