package http_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	controller "github.com/wikimetrics/cohortview/pkg/controller/http"
	"github.com/wikimetrics/cohortview/pkg/domain/interfaces"
	"github.com/wikimetrics/cohortview/pkg/domain/model"
	"github.com/wikimetrics/cohortview/pkg/domain/types"
	"github.com/wikimetrics/cohortview/pkg/repository"
	"github.com/wikimetrics/cohortview/pkg/service/cohortapi"
	"github.com/wikimetrics/cohortview/pkg/usecase"
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return ctxlog.With(context.Background(), logger)
}

// seededRepository holds cohort 1 with five members and cohort 2 with none
func seededRepository(t *testing.T) interfaces.Repository {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemory()

	gt.NoError(t, repo.PutCohort(ctx, &model.Cohort{ID: 1, Name: "A", DefaultProject: "enwiki"})).Required()
	gt.NoError(t, repo.PutCohort(ctx, &model.Cohort{ID: 2, Name: "B"})).Required()
	gt.NoError(t, repo.PutWikiUsers(ctx, 1, []*model.WikiUser{
		{ID: "u1", MediawikiUsername: "Alice"},
		{ID: "u2", MediawikiUsername: "Bob"},
		{ID: "u3", MediawikiUsername: "Carol"},
		{ID: "u4", MediawikiUsername: "Dave"},
		{ID: "u5", MediawikiUsername: "Erin"},
	})).Required()
	return repo
}

func newTestServer(t *testing.T, opts ...controller.ServerOption) *controller.Server {
	t.Helper()
	server, err := controller.NewServer(testContext(), ":0", seededRepository(t), opts...)
	gt.NoError(t, err).Required()
	return server
}

func serve(server *controller.Server, method, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	server.Server.Handler.ServeHTTP(w, req)
	return w
}

func TestServerHealthCheck(t *testing.T) {
	server := newTestServer(t)

	w := serve(server, http.MethodGet, "/health", nil)
	gt.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	gt.Equal(t, "healthy", response["status"])
	gt.Equal(t, "cohortview", response["service"])
}

func TestRequestIDEcho(t *testing.T) {
	server := newTestServer(t)

	w := serve(server, http.MethodGet, "/cohorts/list/", map[string]string{"X-Request-ID": "dashboard-42"})
	gt.Equal(t, http.StatusOK, w.Code)
	gt.Equal(t, "dashboard-42", w.Header().Get("X-Request-ID"))

	w = serve(server, http.MethodGet, "/cohorts/list/", nil)
	gt.NotEqual(t, "", w.Header().Get("X-Request-ID"))
}

func TestNewServerValidation(t *testing.T) {
	_, err := controller.NewServer(testContext(), ":0", nil)
	gt.Error(t, err)

	_, err = controller.NewServer(testContext(), ":0", repository.NewMemory(), controller.WithPartialDetailLimit(0))
	gt.Error(t, err)
}

func TestCohortList(t *testing.T) {
	server := newTestServer(t)

	for _, path := range []string{"/cohorts/list/", "/cohorts/list"} {
		t.Run(path, func(t *testing.T) {
			w := serve(server, http.MethodGet, path, nil)
			gt.Equal(t, http.StatusOK, w.Code)
			gt.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var resp model.ListResponse
			gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp)).Required()
			gt.A(t, resp.Cohorts).Length(2)
			gt.Equal(t, "A", resp.Cohorts[0].Name)
			gt.Equal(t, 5, resp.Cohorts[0].Size)
			gt.Equal(t, 0, resp.Cohorts[1].Size)
		})
	}

	t.Run("Empty repository returns an empty list", func(t *testing.T) {
		server, err := controller.NewServer(testContext(), ":0", repository.NewMemory())
		gt.NoError(t, err).Required()

		w := serve(server, http.MethodGet, "/cohorts/list/", nil)
		gt.Equal(t, http.StatusOK, w.Code)
		gt.S(t, w.Body.String()).Contains(`"cohorts":[]`)
	})
}

func TestCohortDetail(t *testing.T) {
	t.Run("Partial detail is limited", func(t *testing.T) {
		server := newTestServer(t)
		w := serve(server, http.MethodGet, "/cohorts/detail/1", nil)
		gt.Equal(t, http.StatusOK, w.Code)

		var resp model.DetailResponse
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp)).Required()
		gt.A(t, resp.WikiUsers).Length(controller.DefaultPartialDetailLimit)
		gt.Equal(t, types.WikiUserID("u1"), resp.WikiUsers[0].ID)
	})

	t.Run("Full detail returns every member", func(t *testing.T) {
		server := newTestServer(t)
		w := serve(server, http.MethodGet, "/cohorts/detail/1?full_detail=true", nil)
		gt.Equal(t, http.StatusOK, w.Code)

		var resp model.DetailResponse
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp)).Required()
		gt.A(t, resp.WikiUsers).Length(5)
	})

	t.Run("Custom partial limit", func(t *testing.T) {
		server := newTestServer(t, controller.WithPartialDetailLimit(1))
		w := serve(server, http.MethodGet, "/cohorts/detail/1", nil)

		var resp model.DetailResponse
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp)).Required()
		gt.A(t, resp.WikiUsers).Length(1)
	})

	t.Run("Cohort without members returns an empty list", func(t *testing.T) {
		server := newTestServer(t)
		w := serve(server, http.MethodGet, "/cohorts/detail/2", nil)
		gt.Equal(t, http.StatusOK, w.Code)
		gt.S(t, w.Body.String()).Contains(`"wikiusers":[]`)
	})

	t.Run("Unknown cohort returns an error envelope", func(t *testing.T) {
		server := newTestServer(t)
		w := serve(server, http.MethodGet, "/cohorts/detail/99", nil)
		gt.Equal(t, http.StatusOK, w.Code)

		var env model.Envelope
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &env)).Required()
		gt.True(t, env.IsError)
		gt.Equal(t, "could not retrieve this cohort", env.Message)
	})

	t.Run("Non numeric ID is not found", func(t *testing.T) {
		server := newTestServer(t)
		w := serve(server, http.MethodGet, "/cohorts/detail/abc", nil)
		gt.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCORS(t *testing.T) {
	t.Run("Allowed origin gets CORS headers", func(t *testing.T) {
		server := newTestServer(t, controller.WithAllowedOrigins("https://dashboard.example.org"))
		w := serve(server, http.MethodGet, "/cohorts/list/", map[string]string{
			"Origin": "https://dashboard.example.org",
		})
		gt.Equal(t, http.StatusOK, w.Code)
		gt.Equal(t, "https://dashboard.example.org", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("CORS is off without allowed origins", func(t *testing.T) {
		server := newTestServer(t)
		w := serve(server, http.MethodGet, "/cohorts/list/", map[string]string{
			"Origin": "https://dashboard.example.org",
		})
		gt.Equal(t, "", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

type recordingReporter struct {
	mu   sync.Mutex
	errs []error
}

func (r *recordingReporter) Report(ctx context.Context, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recordingReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errs)
}

type button struct {
	mu      sync.Mutex
	removed bool
}

func (b *button) Remove() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removed = true
}

func TestDashboardEndToEnd(t *testing.T) {
	ctx := testContext()
	server := newTestServer(t)
	srv := httptest.NewServer(server.Server.Handler)
	defer srv.Close()

	client, err := cohortapi.New(srv.URL)
	gt.NoError(t, err).Required()
	reporter := &recordingReporter{}

	vm := usecase.NewCohortList(ctx, client, reporter)
	vm.Wait()
	gt.A(t, vm.Cohorts()).Length(2)

	cohort := vm.Cohort(1)
	vm.View(ctx, cohort)
	vm.Wait()
	gt.Equal(t, controller.DefaultPartialDetailLimit, cohort.WikiUsers.Len())

	more := &button{}
	vm.ViewFull(ctx, cohort, more)
	vm.Wait()
	gt.Equal(t, 5, cohort.WikiUsers.Len())
	gt.True(t, more.removed)
	gt.Equal(t, 0, reporter.count())
}
