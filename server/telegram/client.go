// Package telegram wraps go-telegram-bot-api with the calls the deleted-message
// watch needs: a shared rate limit, context cancellation and typed errors.
package telegram

import (
	"context"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	DefaultAPIURL = "https://api.telegram.org"

	// MaxMessageLength is the sendMessage text limit.
	MaxMessageLength = 4096
)

// Options tune a Client. Zero values fall back to defaults.
type Options struct {
	APIURL        string
	HTTPClient    *http.Client
	RatePerSecond float64
}

// Client calls the Bot API for one bot token. Every request waits on a shared limiter.
type Client struct {
	token    string
	endpoint string
	httpc    *http.Client
	limiter  *rate.Limiter
	scrubber *strings.Replacer
}

// NewClient creates a Client for token. Unlike tgbotapi.NewBotAPI it makes
// no request.
func NewClient(token string, opts Options) *Client {
	apiURL := strings.TrimSuffix(opts.APIURL, "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 30 * time.Second}
	}

	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}

	return &Client{
		token:    token,
		endpoint: apiURL + "/bot%s/%s",
		httpc:    httpc,
		limiter:  rate.NewLimiter(limit, 1),
		scrubber: strings.NewReplacer(token, "[EXPUNGED]"),
	}
}

// contextClient binds the requests tgbotapi builds to ctx.
type contextClient struct {
	ctx   context.Context
	httpc *http.Client
}

func (c contextClient) Do(req *http.Request) (*http.Response, error) {
	return c.httpc.Do(req.WithContext(c.ctx))
}

// api returns a BotAPI whose requests run under ctx. tgbotapi's requests
// carry no context of their own, so one is built per call.
func (c *Client) api(ctx context.Context) *tgbotapi.BotAPI {
	api := &tgbotapi.BotAPI{
		Token:  c.token,
		Client: contextClient{ctx: ctx, httpc: c.httpc},
		Buffer: 100,
	}
	api.SetAPIEndpoint(c.endpoint)
	return api
}

// call waits for the limiter and runs fn, mapping its error.
func (c *Client) call(ctx context.Context, method string, fn func(api *tgbotapi.BotAPI) error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrapf(err, "telegram %s: rate limiter", method)
	}
	if err := fn(c.api(ctx)); err != nil {
		return c.mapError(method, err)
	}
	return nil
}

func (c *Client) mapError(method string, err error) error {
	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) {
		return &APIError{
			Method:      method,
			Code:        tgErr.Code,
			Description: tgErr.Message,
			RetryAfter:  tgErr.RetryAfter,
		}
	}
	// url.Error carries the full URL, token included.
	return errors.Errorf("telegram %s: %s", method, c.scrubber.Replace(err.Error()))
}

// ForwardMessage forwards messageID from fromChatID into chatID and returns the id of the copy.
func (c *Client) ForwardMessage(ctx context.Context, chatID, fromChatID, messageID int64) (int64, error) {
	fwd := tgbotapi.NewForward(chatID, fromChatID, int(messageID))
	fwd.DisableNotification = true

	var sent tgbotapi.Message
	err := c.call(ctx, "forwardMessage", func(api *tgbotapi.BotAPI) error {
		var err error
		sent, err = api.Send(fwd)
		return err
	})
	if err != nil {
		return 0, err
	}
	return int64(sent.MessageID), nil
}

// DeleteMessage deletes messageID in chatID.
func (c *Client) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	del := tgbotapi.NewDeleteMessage(chatID, int(messageID))
	return c.call(ctx, "deleteMessage", func(api *tgbotapi.BotAPI) error {
		// The result is a bare true, which Send would fail to decode.
		_, err := api.Request(del)
		return err
	})
}

// SendMessage sends text to chatID, split into several messages when it is
// longer than MaxMessageLength.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	for _, chunk := range SplitText(text, MaxMessageLength) {
		msg := tgbotapi.NewMessage(chatID, chunk)
		err := c.call(ctx, "sendMessage", func(api *tgbotapi.BotAPI) error {
			_, err := api.Send(msg)
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// SetWebhook points the bot at url. secret, when set, comes back in the
// X-Telegram-Bot-Api-Secret-Token header of every update.
func (c *Client) SetWebhook(ctx context.Context, url, secret string) error {
	// Validates the url the same way tgbotapi.WebhookConfig would.
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return errors.Wrap(err, "invalid webhook url")
	}

	// WebhookConfig has no secret_token, so the params are built here.
	params := tgbotapi.Params{"url": wh.URL.String()}
	params.AddNonEmpty("secret_token", secret)
	if err := params.AddInterface("allowed_updates", []string{"message"}); err != nil {
		return errors.Wrap(err, "failed to encode allowed updates")
	}

	return c.call(ctx, "setWebhook", func(api *tgbotapi.BotAPI) error {
		_, err := api.MakeRequest("setWebhook", params)
		return err
	})
}

// SplitText cuts text into pieces of at most limit runes, preferring line breaks.
func SplitText(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(runes) > limit {
		cut := limit
		for i := limit; i > 0; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		if chunk := strings.TrimRight(string(runes[:cut]), "\n"); chunk != "" {
			chunks = append(chunks, chunk)
		}
		runes = runes[cut:]
	}
	if rest := strings.TrimRight(string(runes), "\n"); rest != "" {
		chunks = append(chunks, rest)
	}
	return chunks
}
