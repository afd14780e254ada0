package cohortapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/wikimetrics/cohortview/pkg/domain/interfaces"
	"github.com/wikimetrics/cohortview/pkg/domain/model"
	"github.com/wikimetrics/cohortview/pkg/domain/types"
)

const (
	listPath   = "cohorts/list/"
	detailPath = "cohorts/detail/"

	// RequestIDHeader carries the client generated request ID
	RequestIDHeader = "X-Request-ID"

	maxResponseSize = 32 << 20
)

// Client calls the cohort list and detail endpoints
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

var _ interfaces.CohortClient = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// New creates a Client for the server at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid base URL", goerr.V("url", baseURL))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, goerr.New("base URL must be http or https", goerr.V("url", baseURL))
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	c := &Client{
		baseURL:    u,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListCohorts implements interfaces.CohortClient
func (c *Client) ListCohorts(ctx context.Context) ([]*model.Cohort, error) {
	var resp model.ListResponse
	if err := c.get(ctx, c.endpoint(listPath, nil), &resp); err != nil {
		return nil, err
	}
	if resp.Cohorts == nil {
		return []*model.Cohort{}, nil
	}
	return resp.Cohorts, nil
}

// GetCohortDetail implements interfaces.CohortClient
func (c *Client) GetCohortDetail(ctx context.Context, id types.CohortID, full bool) ([]*model.WikiUser, error) {
	var query url.Values
	if full {
		query = url.Values{"full_detail": []string{"true"}}
	}

	var resp model.DetailResponse
	u := c.endpoint(detailPath+id.String(), query)
	if err := c.get(ctx, u, &resp, goerr.V("cohort_id", id), goerr.V("full_detail", full)); err != nil {
		return nil, err
	}
	if resp.WikiUsers == nil {
		return []*model.WikiUser{}, nil
	}
	return resp.WikiUsers, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL.JoinPath(path)
	// JoinPath drops the trailing slash the list endpoint needs
	if strings.HasSuffix(path, "/") && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// get issues a GET to u and decodes the JSON body into out. Every failure
// wraps model.ErrRequestFailed and carries opts.
func (c *Client) get(ctx context.Context, u string, out any, opts ...goerr.Option) error {
	logger := ctxlog.From(ctx)
	reqID := types.NewRequestID()
	opts = append(opts, goerr.V("url", u), goerr.V("request_id", reqID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return goerr.Wrap(model.ErrRequestFailed, "failed to build request",
			append(opts, goerr.T(model.ErrTagTransport), goerr.V("error", err.Error()))...)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID.String())

	logger.Debug("Sending cohort request", "url", u, "request_id", reqID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(model.ErrRequestFailed, "failed to send request",
			append(opts, goerr.T(model.ErrTagTransport), goerr.V("error", err.Error()))...)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return goerr.Wrap(model.ErrRequestFailed, "failed to read response",
			append(opts, goerr.T(model.ErrTagTransport), goerr.V("error", err.Error()))...)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return goerr.Wrap(model.ErrRequestFailed, "unexpected HTTP status",
			append(opts,
				goerr.T(model.ErrTagHTTPStatus),
				goerr.V("status", resp.StatusCode),
				goerr.V("body", excerpt(body)))...)
	}

	var env model.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return goerr.Wrap(model.ErrRequestFailed, "failed to decode response",
			append(opts,
				goerr.T(model.ErrTagDecode),
				goerr.V("error", err.Error()),
				goerr.V("body", excerpt(body)))...)
	}
	if err := env.Err(opts...); err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return goerr.Wrap(model.ErrRequestFailed, "failed to decode response",
			append(opts,
				goerr.T(model.ErrTagDecode),
				goerr.V("error", err.Error()),
				goerr.V("body", excerpt(body)))...)
	}

	logger.Debug("Cohort request completed",
		"url", u,
		"request_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(body))
	return nil
}

func excerpt(body []byte) string {
	const limit = 256
	body = bytes.TrimSpace(body)
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
