// Package server is the webhook front of the bot: it decodes Telegram updates,
// records group messages and runs commands.
package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ericzzh/telegram-deletewatch/server/app"
	"github.com/ericzzh/telegram-deletewatch/server/bot"
	"github.com/ericzzh/telegram-deletewatch/server/command"
	"github.com/ericzzh/telegram-deletewatch/server/config"
	"github.com/ericzzh/telegram-deletewatch/server/metrics"
	"github.com/ericzzh/telegram-deletewatch/server/telegram"
)

const (
	secretHeader = "X-Telegram-Bot-Api-Secret-Token"
	healthText   = "Bot is live."
)

// Dependencies are the services the server dispatches to.
type Dependencies struct {
	Config      config.Service
	Logger      bot.Logger
	AccessLog   zerolog.Logger
	Poster      bot.Poster
	Recorder    app.RecorderService
	Subscribers app.SubscriberService
	Reports     app.ReportService
	Metrics     *metrics.Metrics
}

// Server implements http.Handler for the webhook, health and metrics routes.
type Server struct {
	Dependencies

	router *mux.Router

	// commands outlive the webhook request; ctx bounds them instead.
	ctx      context.Context
	cancel   context.CancelFunc
	commands sync.WaitGroup
}

// New builds the router.
func New(deps Dependencies) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		Dependencies: deps,
		router:       mux.NewRouter(),
		ctx:          ctx,
		cancel:       cancel,
	}

	s.router.Use(s.accessLog)
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/webhook/{token}", s.handleWebhook).Methods(http.MethodPost)
	if deps.Metrics != nil {
		s.router.Handle("/metrics", deps.Metrics.Handler()).Methods(http.MethodGet)
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close cancels running commands and waits for them.
func (s *Server) Close() {
	s.cancel()
	s.commands.Wait()
}

// Wait blocks until every command started so far has finished.
func (s *Server) Wait() {
	s.commands.Wait()
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Infof("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrapf(err, "failed to listen on %s", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "failed to shut down http server")
	}
	s.Close()
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(healthText))
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	cfg := s.Config.GetConfiguration()

	if !equal(mux.Vars(r)["token"], cfg.BotToken) {
		http.NotFound(w, r)
		return
	}
	if cfg.WebhookSecret != "" && !equal(r.Header.Get(secretHeader), cfg.WebhookSecret) {
		http.NotFound(w, r)
		return
	}

	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.Logger.Warnf("Failed to decode update: %v", err)
		http.Error(w, "bad update", http.StatusBadRequest)
		return
	}

	s.dispatch(r.Context(), &update)
	_, _ = w.Write([]byte("OK"))
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// dispatch routes one update. Only new messages are looked at.
func (s *Server) dispatch(ctx context.Context, update *telegram.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	switch {
	case command.IsCommand(msg.Text):
		s.runCommand(msg)
	case msg.HasMedia():
		outcome := s.Recorder.RecordMedia(ctx, app.MediaEvent{
			GroupTitle: msg.Chat.Title,
			MessageID:  msg.ID(),
			Caption:    msg.Caption,
		})
		s.logOutcome("media", msg.ID(), outcome)
	case msg.Text != "":
		outcome := s.Recorder.RecordReply(ctx, app.ReplyEvent{
			GroupTitle: msg.Chat.Title,
			MessageID:  msg.ID(),
			Username:   displayName(msg.From),
			Text:       msg.Text,
			Timestamp:  msg.Time(),
			ThreadID:   msg.MessageThreadID,
			IsReply:    msg.ReplyToMessage != nil,
		})
		s.logOutcome("reply", msg.ID(), outcome)
	}
}

// displayName is the username, or the first name for users without one.
func displayName(u *telegram.User) string {
	if u == nil {
		return ""
	}
	if u.UserName != "" {
		return u.UserName
	}
	return u.FirstName
}

func (s *Server) logOutcome(kind string, messageID int64, outcome app.Outcome) {
	if s.Metrics != nil {
		s.Metrics.ObserveRecord(kind, outcome.Kind.String())
	}

	switch outcome.Kind {
	case app.OutcomeFailed:
		s.Logger.Errorf("Failed to record %s %d: %v", kind, messageID, outcome.Err)
	case app.OutcomeRecorded:
		s.Logger.Debugf("Recorded %s %d", kind, messageID)
	}
}

func (s *Server) runCommand(msg *telegram.Message) {
	args := &command.Args{
		Command:   msg.Text,
		Username:  msg.Sender(),
		ChatID:    msg.Chat.ID,
		ChatTitle: msg.Chat.Title,
		ChatType:  msg.Chat.Type,
	}

	var observer command.ReportObserver
	if s.Metrics != nil {
		observer = s.Metrics
	}
	runner := command.NewCommandRunner(args, s.Logger, s.Poster, s.Config, s.Subscribers, s.Reports, observer)

	s.commands.Add(1)
	go func() {
		defer s.commands.Done()
		if err := runner.Execute(s.ctx); err != nil {
			s.Logger.Errorf("Command %s from %s failed: %v", args.Command, args.Username, err)
		}
	}()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// accessLog writes one line per request. The webhook path carries the bot
// token, so the route template is logged instead of the URL.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}

		s.AccessLog.Info().
			Str("method", r.Method).
			Str("path", path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}
