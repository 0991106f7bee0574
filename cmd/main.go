package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ericzzh/telegram-deletewatch/server"
	"github.com/ericzzh/telegram-deletewatch/server/app"
	"github.com/ericzzh/telegram-deletewatch/server/bot"
	"github.com/ericzzh/telegram-deletewatch/server/config"
	"github.com/ericzzh/telegram-deletewatch/server/metrics"
	"github.com/ericzzh/telegram-deletewatch/server/scheduler"
	"github.com/ericzzh/telegram-deletewatch/server/sqlstore"
	"github.com/ericzzh/telegram-deletewatch/server/telegram"
)

var (
	configPath string
	envFile    string
)

func Run(args []string) error {
	RootCmd.SetArgs(args)
	return RootCmd.Execute()
}

var RootCmd = &cobra.Command{
	Use:           "deletewatch",
	Short:         "Telegram bot that reports deleted comments in a discussion group",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the webhook and run the daily purge",
	RunE:  serveCmdF,
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete all recorded messages and items now",
	RunE:  purgeCmdF,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database tables",
	RunE:  migrateCmdF,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the YAML configuration file")
	RootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment")
	RootCmd.AddCommand(serveCmd, purgeCmd, migrateCmd)
}

// env is everything built from the configuration.
type env struct {
	cfg    *config.ServiceImpl
	client *telegram.Client
	bot    *bot.Bot
	store  *sqlstore.SQLStore
}

func setup(ctx context.Context) (*env, error) {
	cs, err := config.NewConfigService(configPath, envFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}
	cfg := cs.GetConfiguration()

	zl, err := bot.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Pretty)
	if err != nil {
		return nil, err
	}

	client := telegram.NewClient(cfg.BotToken, telegram.Options{
		APIURL:        cfg.Telegram.APIURL,
		RatePerSecond: cfg.Telegram.RatePerSecond,
	})
	b := bot.New(client, zl)

	store, err := sqlstore.New(ctx, cfg.Database.Driver, cfg.Database.DSN, b)
	if err != nil {
		return nil, errors.Wrap(err, "failed creating the SQL store")
	}

	return &env{cfg: cs, client: client, bot: b, store: store}, nil
}

func serveCmdF(command *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(command.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.store.Close()
	cfg := e.cfg.GetConfiguration()

	messageStore := sqlstore.NewMessageStore(e.store)
	itemStore := sqlstore.NewItemStore(e.store)
	subscriberStore := sqlstore.NewSubscriberStore(e.store)
	retentionStore := sqlstore.NewRetentionStore(e.store)

	subscribers := app.NewSubscriberService(subscriberStore, e.bot)
	prober := app.NewForwardProber(e.client, app.ProbeOptions{
		Strict:     cfg.Probe.Strict,
		IsNotFound: telegram.IsMessageNotFound,
		Timeout:    cfg.Probe.Timeout,
	})
	m := metrics.New()

	srv := server.New(server.Dependencies{
		Config:      e.cfg,
		Logger:      e.bot,
		AccessLog:   e.bot.Zerolog(),
		Poster:      e.bot,
		Recorder:    app.NewRecorderService(cfg.Group.Name, messageStore, itemStore, e.bot),
		Subscribers: subscribers,
		Reports:     app.NewReportService(messageStore, itemStore, subscribers, prober, e.bot, e.bot, cfg.Probe.Concurrency),
		Metrics:     m,
	})

	purge := app.NewPurgeService(retentionStore, cfg.PurgeLocation(), e.bot)
	sched, err := scheduler.New(cfg.PurgeCron(), cfg.PurgeLocation(), scheduler.NewWorker(purge, e.bot, m), e.bot)
	if err != nil {
		return err
	}
	go sched.Run(ctx)

	if url := cfg.WebhookURL(); url != "" {
		if err := e.client.SetWebhook(ctx, url, cfg.WebhookSecret); err != nil {
			return errors.Wrap(err, "failed to set webhook")
		}
		e.bot.Infof("Bot initialized and webhook set. group: %q", cfg.Group.Name)
	} else {
		e.bot.Warnf("webhook_domain is empty, not registering a webhook")
	}

	return srv.ListenAndServe(ctx, cfg.ListenAddr)
}

func purgeCmdF(command *cobra.Command, args []string) error {
	ctx := command.Context()
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.store.Close()

	purge := app.NewPurgeService(sqlstore.NewRetentionStore(e.store), e.cfg.GetConfiguration().PurgeLocation(), e.bot)
	stats, err := purge.Purge(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(command.OutOrStdout(), "Purged %d messages and %d items.\n", stats.Messages, stats.Items)
	return nil
}

func migrateCmdF(command *cobra.Command, args []string) error {
	e, err := setup(command.Context())
	if err != nil {
		return err
	}
	defer e.store.Close()

	fmt.Fprintln(command.OutOrStdout(), "Database is up to date.")
	return nil
}

func main() {
	if err := Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
