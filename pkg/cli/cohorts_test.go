package cli

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	controller "github.com/wikimetrics/cohortview/pkg/controller/http"
	"github.com/wikimetrics/cohortview/pkg/domain/model"
	"github.com/wikimetrics/cohortview/pkg/repository"
)

func newCohortServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemory()
	gt.NoError(t, repo.PutCohort(ctx, &model.Cohort{ID: 1, Name: "Editathon", DefaultProject: "enwiki"})).Required()
	gt.NoError(t, repo.PutCohort(ctx, &model.Cohort{ID: 2, Name: "Empty"})).Required()
	gt.NoError(t, repo.PutWikiUsers(ctx, 1, []*model.WikiUser{
		{ID: "1", MediawikiUsername: "Alice", Project: "enwiki"},
		{ID: "2", MediawikiUsername: "Bob", Project: "enwiki"},
		{ID: "3", MediawikiUsername: "Carol", Project: "enwiki"},
		{ID: "4", MediawikiUsername: "Dave", Project: "enwiki"},
		{ID: "5", MediawikiUsername: "Eve", Project: "enwiki"},
	})).Required()

	server, err := controller.NewServer(ctx, ":0", repo)
	gt.NoError(t, err).Required()
	srv := httptest.NewServer(server.Server.Handler)
	t.Cleanup(srv.Close)
	return srv
}

func runCohorts(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cmdCohorts()
	cmd.Writer = &stdout
	cmd.ErrWriter = &stderr

	ctx := ctxlog.With(context.Background(), slog.New(slog.DiscardHandler))
	err := cmd.Run(ctx, append([]string{"cohorts"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestCohortsCommandList(t *testing.T) {
	srv := newCohortServer(t)

	out, _, err := runCohorts(t, "--url", srv.URL)
	gt.NoError(t, err)
	gt.S(t, out).Contains("#1 Editathon (5 members, enwiki)")
	gt.S(t, out).Contains("#2 Empty (0 members)")
	gt.False(t, bytes.Contains([]byte(out), []byte("Alice")))
}

func TestCohortsCommandView(t *testing.T) {
	srv := newCohortServer(t)

	out, _, err := runCohorts(t, "--url", srv.URL, "--view", "1")
	gt.NoError(t, err)
	gt.S(t, out).Contains("1 Alice https://en.wikipedia.org/wiki/User:Alice")
	gt.S(t, out).Contains("3 Carol")
	gt.S(t, out).Contains("... 2 more (use --full)")
	gt.False(t, bytes.Contains([]byte(out), []byte("Eve")))
}

func TestCohortsCommandFull(t *testing.T) {
	srv := newCohortServer(t)

	out, _, err := runCohorts(t, "--url", srv.URL, "--expand-all", "--full")
	gt.NoError(t, err)
	gt.S(t, out).Contains("5 Eve")
	gt.False(t, bytes.Contains([]byte(out), []byte("more (use --full)")))
}

func TestCohortsCommandInvalidID(t *testing.T) {
	srv := newCohortServer(t)

	_, _, err := runCohorts(t, "--url", srv.URL, "--view", "abc")
	gt.Error(t, err)
}

func TestCohortsCommandServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"isError":true,"message":"database unavailable"}`))
	}))
	defer srv.Close()

	out, errOut, err := runCohorts(t, "--url", srv.URL)
	gt.Error(t, err)
	gt.S(t, out).Contains("No cohorts.")
	gt.S(t, errOut).Contains("database unavailable")
}
