package app

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// ErrUnverified matches probe errors that say nothing about whether the
// message still exists. Only strict probers return it.
var ErrUnverified = errors.New("message existence could not be verified")

//go:generate mockgen -destination=mocks/mock_probe.go -package=mock_app github.com/ericzzh/telegram-deletewatch/server/app GroupClient,Prober

// GroupClient is the part of the Bot API the prober needs.
type GroupClient interface {
	ForwardMessage(ctx context.Context, chatID, fromChatID, messageID int64) (int64, error)
	DeleteMessage(ctx context.Context, chatID, messageID int64) error
}

// Prober tells whether a message is still present in a group. When ctx is
// done before the answer is known, Exists returns ctx.Err() instead of a
// verdict.
type Prober interface {
	Exists(ctx context.Context, groupID, messageID int64) (bool, error)
}

// ProbeError is returned by a strict prober when the Bot API failed for a
// reason other than the message being gone.
type ProbeError struct {
	MessageID int64
	Err       error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe of message %d: %v", e.MessageID, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

func (e *ProbeError) Is(target error) bool { return target == ErrUnverified }

// ProbeOptions configures a forward prober.
type ProbeOptions struct {
	// Strict limits the deleted verdict to errors IsNotFound accepts.
	Strict bool
	// IsNotFound recognises a definitive "message not found" answer.
	IsNotFound func(error) bool
	// Timeout bounds a single forward+delete pair. Zero means none.
	Timeout time.Duration
}

type forwardProber struct {
	client GroupClient
	opts   ProbeOptions
}

// NewForwardProber returns a Prober that forwards the message into its own
// group and deletes the copy right away. There is no Bot API call that
// reports existence directly, so a failed forward or delete is read as
// "message is gone". This is the only place that mapping lives.
func NewForwardProber(client GroupClient, opts ProbeOptions) Prober {
	if opts.IsNotFound == nil {
		opts.IsNotFound = func(error) bool { return false }
	}
	return &forwardProber{client: client, opts: opts}
}

func (p *forwardProber) Exists(ctx context.Context, groupID, messageID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	callCtx := ctx
	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	copyID, err := p.client.ForwardMessage(callCtx, groupID, groupID, messageID)
	if err != nil {
		return p.classify(ctx, messageID, err)
	}
	if err := p.client.DeleteMessage(callCtx, groupID, copyID); err != nil {
		return p.classify(ctx, messageID, err)
	}
	return true, nil
}

// classify maps a failed call to a verdict. A failure caused by the caller
// giving up is not a verdict, but the per-call timeout is.
func (p *forwardProber) classify(ctx context.Context, messageID int64, err error) (bool, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	if !p.opts.Strict || p.opts.IsNotFound(err) {
		return false, nil
	}
	return false, &ProbeError{MessageID: messageID, Err: err}
}
