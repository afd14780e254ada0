package apperr

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/wikimetrics/cohortview/pkg/domain/model"
)

func Handle(ctx context.Context, err error) {
	logger := ctxlog.From(ctx)
	logger.Error("application error", "error", err)
}

// Reporter logs failures and, if a writer is given, prints a short
// message for the user.
type Reporter struct {
	mu    sync.Mutex
	w     io.Writer
	count int
}

// NewReporter creates a Reporter. w may be nil.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Report implements interfaces.FailureReporter
func (r *Reporter) Report(ctx context.Context, err error) {
	if err == nil {
		return
	}
	Handle(ctx, err)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
	if r.w != nil {
		_, _ = fmt.Fprintf(r.w, "error: %s\n", Message(err))
	}
}

// Count returns the number of failures reported so far
func (r *Reporter) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Message returns the text shown to the user for err
func Message(err error) string {
	values := goerr.Values(err)
	switch {
	case goerr.HasTag(err, model.ErrTagServerReported):
		if msg, ok := values["message"].(string); ok && msg != "" {
			return msg
		}
	case goerr.HasTag(err, model.ErrTagRedirect):
		if to, ok := values["redirect_to"].(string); ok && to != "" {
			return "server asked to continue at " + to
		}
	case goerr.HasTag(err, model.ErrTagHTTPStatus):
		if code, ok := values["status"].(int); ok {
			return fmt.Sprintf("request failed with HTTP status %d", code)
		}
	}
	return err.Error()
}
