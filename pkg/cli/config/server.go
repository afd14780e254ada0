package config

import (
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"
	controller "github.com/wikimetrics/cohortview/pkg/controller/http"
)

// Server holds server configuration
type Server struct {
	Addr               string
	AllowedOrigins     []string
	PartialDetailLimit int
	ShutdownTimeout    time.Duration
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Sources:     cli.EnvVars("COHORTVIEW_ADDR"),
			Destination: &s.Addr,
		},
		&cli.StringSliceFlag{
			Name:        "allowed-origin",
			Usage:       "Origin allowed to call the API from a browser (repeatable)",
			Sources:     cli.EnvVars("COHORTVIEW_ALLOWED_ORIGINS"),
			Destination: &s.AllowedOrigins,
		},
		&cli.IntFlag{
			Name:        "partial-detail-limit",
			Usage:       "Number of members returned by the detail endpoint without full_detail",
			Value:       controller.DefaultPartialDetailLimit,
			Sources:     cli.EnvVars("COHORTVIEW_PARTIAL_DETAIL_LIMIT"),
			Destination: &s.PartialDetailLimit,
		},
		&cli.DurationFlag{
			Name:        "shutdown-timeout",
			Usage:       "Time allowed for in-flight requests to finish on shutdown",
			Value:       10 * time.Second,
			Sources:     cli.EnvVars("COHORTVIEW_SHUTDOWN_TIMEOUT"),
			Destination: &s.ShutdownTimeout,
		},
	}
}

// Options converts the configuration into server options
func (s *Server) Options() []controller.ServerOption {
	opts := []controller.ServerOption{
		controller.WithPartialDetailLimit(s.PartialDetailLimit),
	}
	if len(s.AllowedOrigins) > 0 {
		opts = append(opts, controller.WithAllowedOrigins(s.AllowedOrigins...))
	}
	return opts
}

// LogValue returns structured log value
func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr),
		slog.Any("allowed_origins", s.AllowedOrigins),
		slog.Int("partial_detail_limit", s.PartialDetailLimit),
		slog.Duration("shutdown_timeout", s.ShutdownTimeout),
	)
}
