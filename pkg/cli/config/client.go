package config

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/wikimetrics/cohortview/pkg/service/cohortapi"
	"github.com/wikimetrics/cohortview/pkg/usecase"
)

// Client holds configuration for talking to a cohort server
type Client struct {
	URL                   string
	Timeout               time.Duration
	MaxConcurrentRequests int
}

// Flags returns CLI flags for Client configuration
func (c *Client) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "url",
			Usage:       "Base URL of the cohort server",
			Category:    "Client",
			Value:       "http://localhost:8080",
			Sources:     cli.EnvVars("COHORTVIEW_URL"),
			Destination: &c.URL,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Per request timeout (0 uses the transport default)",
			Category:    "Client",
			Sources:     cli.EnvVars("COHORTVIEW_TIMEOUT"),
			Destination: &c.Timeout,
		},
		&cli.IntFlag{
			Name:        "max-concurrent-requests",
			Usage:       "Maximum detail requests in flight (0 for unbounded)",
			Category:    "Client",
			Value:       8,
			Sources:     cli.EnvVars("COHORTVIEW_MAX_CONCURRENT_REQUESTS"),
			Destination: &c.MaxConcurrentRequests,
		},
	}
}

// Configure creates the cohort API client
func (c *Client) Configure() (*cohortapi.Client, error) {
	if c.Timeout < 0 {
		return nil, goerr.New("timeout must not be negative", goerr.V("timeout", c.Timeout))
	}

	var opts []cohortapi.Option
	if c.Timeout > 0 {
		opts = append(opts, cohortapi.WithHTTPClient(&http.Client{Timeout: c.Timeout}))
	}

	client, err := cohortapi.New(c.URL, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create cohort API client")
	}
	return client, nil
}

// ViewOptions returns the view model options for this configuration
func (c *Client) ViewOptions() []usecase.CohortListOption {
	return []usecase.CohortListOption{
		usecase.WithMaxConcurrentRequests(c.MaxConcurrentRequests),
	}
}

// LogValue returns structured log value
func (c Client) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", c.URL),
		slog.Duration("timeout", c.Timeout),
		slog.Int("max_concurrent_requests", c.MaxConcurrentRequests),
	)
}
