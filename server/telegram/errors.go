package telegram

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// APIError is a Bot API answer with ok=false, built from a *tgbotapi.Error.
type APIError struct {
	Method      string
	Code        int
	Description string
	RetryAfter  int
}

func (e *APIError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("telegram %s: %d %s (retry after %ds)", e.Method, e.Code, e.Description, e.RetryAfter)
	}
	return fmt.Sprintf("telegram %s: %d %s", e.Method, e.Code, e.Description)
}

// IsMessageNotFound reports whether err is Telegram saying the message is gone,
// as opposed to a transport failure, a rate limit or a permission problem.
func IsMessageNotFound(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code != http.StatusBadRequest {
		return false
	}
	desc := strings.ToLower(apiErr.Description)
	return strings.Contains(desc, "message to forward not found") ||
		strings.Contains(desc, "message to delete not found") ||
		strings.Contains(desc, "message not found")
}
