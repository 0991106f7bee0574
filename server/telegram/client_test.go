package telegram_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ericzzh/telegram-deletewatch/server/telegram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "123:secret-token"

type call struct {
	method string
	form   url.Values
}

type fakeAPI struct {
	mu      sync.Mutex
	calls   []call
	respond func(method string, form url.Values) (int, string)
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prefix := "/bot" + testToken + "/"
		require.True(t, strings.HasPrefix(r.URL.Path, prefix), r.URL.Path)
		method := strings.TrimPrefix(r.URL.Path, prefix)

		require.NoError(t, r.ParseForm())

		f.mu.Lock()
		f.calls = append(f.calls, call{method: method, form: r.PostForm})
		f.mu.Unlock()

		status, resp := http.StatusOK, `{"ok":true,"result":true}`
		if f.respond != nil {
			status, resp = f.respond(method, r.PostForm)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(resp))
	})
}

func newClient(t *testing.T, api *fakeAPI) *telegram.Client {
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)
	return telegram.NewClient(testToken, telegram.Options{APIURL: srv.URL, HTTPClient: srv.Client()})
}

func TestForwardMessage(t *testing.T) {
	api := &fakeAPI{respond: func(string, url.Values) (int, string) {
		return http.StatusOK, `{"ok":true,"result":{"message_id":900,"chat":{"id":-100,"type":"supergroup"},"date":1700000000}}`
	}}
	c := newClient(t, api)

	id, err := c.ForwardMessage(context.Background(), -100, -100, 55)
	require.NoError(t, err)
	assert.Equal(t, int64(900), id)

	require.Len(t, api.calls, 1)
	assert.Equal(t, "forwardMessage", api.calls[0].method)
	assert.Equal(t, "-100", api.calls[0].form.Get("chat_id"))
	assert.Equal(t, "-100", api.calls[0].form.Get("from_chat_id"))
	assert.Equal(t, "55", api.calls[0].form.Get("message_id"))
	assert.Equal(t, "true", api.calls[0].form.Get("disable_notification"))
}

func TestDeleteMessage(t *testing.T) {
	api := &fakeAPI{}
	c := newClient(t, api)

	require.NoError(t, c.DeleteMessage(context.Background(), -100, 900))

	require.Len(t, api.calls, 1)
	assert.Equal(t, "deleteMessage", api.calls[0].method)
	assert.Equal(t, "-100", api.calls[0].form.Get("chat_id"))
	assert.Equal(t, "900", api.calls[0].form.Get("message_id"))
}

func TestAPIErrors(t *testing.T) {
	t.Run("message not found", func(t *testing.T) {
		api := &fakeAPI{respond: func(string, url.Values) (int, string) {
			return http.StatusBadRequest, `{"ok":false,"error_code":400,"description":"Bad Request: message to forward not found"}`
		}}
		c := newClient(t, api)

		_, err := c.ForwardMessage(context.Background(), -100, -100, 55)
		require.Error(t, err)
		assert.True(t, telegram.IsMessageNotFound(err))

		var apiErr *telegram.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.Code)
	})

	t.Run("rate limited", func(t *testing.T) {
		api := &fakeAPI{respond: func(string, url.Values) (int, string) {
			return http.StatusTooManyRequests, `{"ok":false,"error_code":429,"description":"Too Many Requests: retry after 7","parameters":{"retry_after":7}}`
		}}
		c := newClient(t, api)

		err := c.DeleteMessage(context.Background(), -100, 900)
		require.Error(t, err)
		assert.False(t, telegram.IsMessageNotFound(err))

		var apiErr *telegram.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 7, apiErr.RetryAfter)
	})

	t.Run("garbage body", func(t *testing.T) {
		api := &fakeAPI{respond: func(string, url.Values) (int, string) {
			return http.StatusBadGateway, `<html>bad gateway</html>`
		}}
		c := newClient(t, api)

		err := c.DeleteMessage(context.Background(), -100, 900)
		require.Error(t, err)
		assert.False(t, telegram.IsMessageNotFound(err))
	})

	t.Run("transport error hides token", func(t *testing.T) {
		c := telegram.NewClient(testToken, telegram.Options{APIURL: "http://127.0.0.1:1"})

		err := c.DeleteMessage(context.Background(), -100, 900)
		require.Error(t, err)
		assert.NotContains(t, err.Error(), testToken)
	})

	t.Run("canceled context stops the request", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		t.Cleanup(srv.Close)
		c := telegram.NewClient(testToken, telegram.Options{APIURL: srv.URL, HTTPClient: srv.Client()})

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, err := c.ForwardMessage(ctx, -100, -100, 55)
		require.Error(t, err)
		assert.False(t, telegram.IsMessageNotFound(err))
		assert.Less(t, time.Since(start), 5*time.Second)
	})
}

func TestSendMessageSplits(t *testing.T) {
	api := &fakeAPI{respond: func(string, url.Values) (int, string) {
		return http.StatusOK, `{"ok":true,"result":{"message_id":1,"chat":{"id":42,"type":"private"},"date":1700000000}}`
	}}
	c := newClient(t, api)

	line := strings.Repeat("x", 1000) + "\n"
	text := strings.Repeat(line, 9)

	require.NoError(t, c.SendMessage(context.Background(), 42, text))

	require.Len(t, api.calls, 3)
	var joined []string
	for _, cl := range api.calls {
		assert.Equal(t, "sendMessage", cl.method)
		assert.Equal(t, "42", cl.form.Get("chat_id"))
		chunk := cl.form.Get("text")
		assert.LessOrEqual(t, len([]rune(chunk)), telegram.MaxMessageLength)
		joined = append(joined, chunk)
	}
	assert.Equal(t, strings.TrimRight(text, "\n"), strings.Join(joined, "\n"))
}

func TestSetWebhook(t *testing.T) {
	api := &fakeAPI{}
	c := newClient(t, api)

	require.NoError(t, c.SetWebhook(context.Background(), "https://example.com/webhook/abc", "s3cret"))

	require.Len(t, api.calls, 1)
	assert.Equal(t, "setWebhook", api.calls[0].method)
	assert.Equal(t, "https://example.com/webhook/abc", api.calls[0].form.Get("url"))
	assert.Equal(t, "s3cret", api.calls[0].form.Get("secret_token"))
	assert.JSONEq(t, `["message"]`, api.calls[0].form.Get("allowed_updates"))
}

func TestSetWebhookWithoutSecret(t *testing.T) {
	api := &fakeAPI{}
	c := newClient(t, api)

	require.NoError(t, c.SetWebhook(context.Background(), "https://example.com/webhook/abc", ""))

	require.Len(t, api.calls, 1)
	_, ok := api.calls[0].form["secret_token"]
	assert.False(t, ok)
}

func TestSplitText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"short", "hello", 10, []string{"hello"}},
		{"on newline", "aaaa\nbbbb\ncccc", 10, []string{"aaaa\nbbbb", "cccc"}},
		{"no newline", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"runes", "ééééé", 2, []string{"éé", "éé", "é"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, telegram.SplitText(tt.text, tt.limit))
		})
	}
}

func TestMessageHelpers(t *testing.T) {
	var u telegram.Update
	raw := `{"update_id":1,"message":{"message_id":101,"message_thread_id":55,"from":{"id":7,"first_name":"A","username":"alice"},
		"chat":{"id":-100,"type":"supergroup","title":"Club"},"date":1700000000,"text":"is this still available?",
		"reply_to_message":{"message_id":55,"chat":{"id":-100,"type":"supergroup"}}}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &u))

	require.NotNil(t, u.Message)
	assert.Equal(t, "alice", u.Message.Sender())
	assert.False(t, u.Message.HasMedia())
	require.NotNil(t, u.Message.MessageThreadID)
	assert.Equal(t, int64(55), *u.Message.MessageThreadID)
	assert.Equal(t, int64(1700000000), u.Message.Time().Unix())
	assert.Equal(t, int64(101), u.Message.ID())
	require.NotNil(t, u.Message.Chat)
	assert.Equal(t, "supergroup", u.Message.Chat.Type)
	assert.NotNil(t, u.Message.ReplyToMessage)
}

func TestMessageMedia(t *testing.T) {
	var m telegram.Message
	raw := `{"message_id":55,"chat":{"id":-100,"type":"supergroup"},"caption":"vintage jacket",
		"photo":[{"file_id":"a","file_unique_id":"b","width":90,"height":90}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	assert.True(t, m.HasMedia())
	assert.Equal(t, "", m.Sender())
	assert.True(t, m.Time().IsZero())
}
