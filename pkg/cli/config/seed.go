package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/wikimetrics/cohortview/pkg/domain/interfaces"
	"github.com/wikimetrics/cohortview/pkg/domain/model"
	"gopkg.in/yaml.v3"
)

// Seed holds the path of the YAML file loaded into the repository at startup
type Seed struct {
	Path string
}

// Flags returns CLI flags for Seed configuration
func (s *Seed) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "seed",
			Usage:       "YAML file with cohorts and members to load at startup",
			Category:    "Data",
			Sources:     cli.EnvVars("COHORTVIEW_SEED"),
			Destination: &s.Path,
		},
	}
}

// LoadSeedFromFile loads cohorts from a YAML file
func LoadSeedFromFile(path string) (*model.SeedConfig, error) {
	if path == "" {
		return nil, goerr.New("seed file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "seed file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read seed file",
			goerr.V("path", path))
	}

	var seed model.SeedConfig
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, goerr.Wrap(err, "failed to parse YAML seed file",
			goerr.V("path", path))
	}

	if err := seed.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid seed file",
			goerr.V("path", path))
	}

	return &seed, nil
}

// Apply loads the seed file, if any, into repo
func (s *Seed) Apply(ctx context.Context, repo interfaces.Repository) error {
	if s.Path == "" {
		return nil
	}

	seed, err := LoadSeedFromFile(s.Path)
	if err != nil {
		return err
	}

	for _, sc := range seed.Cohorts {
		cohort := sc.Cohort
		if err := repo.PutCohort(ctx, &cohort); err != nil {
			return goerr.Wrap(err, "failed to seed cohort", goerr.V("id", cohort.ID))
		}
		if err := repo.PutWikiUsers(ctx, cohort.ID, sc.WikiUsers); err != nil {
			return goerr.Wrap(err, "failed to seed wiki users", goerr.V("id", cohort.ID))
		}
	}

	ctxlog.From(ctx).Info("Seed data loaded",
		"path", s.Path,
		"cohorts", len(seed.Cohorts),
	)
	return nil
}

// LogValue returns structured log value
func (s Seed) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", s.Path),
	)
}
