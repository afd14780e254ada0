package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/wikimetrics/cohortview/pkg/domain/interfaces"
	"github.com/wikimetrics/cohortview/pkg/repository"
)

// Repository backends
const (
	BackendAuto      = "auto"
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
)

// Repository selects and configures where the server keeps cohorts
type Repository struct {
	Backend             string
	FirestoreProjectID  string
	FirestoreDatabaseID string
}

// Flags returns CLI flags for Repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository",
			Usage:       "Cohort storage backend: auto, memory or firestore (auto uses firestore when a project is set)",
			Category:    "Repository",
			Value:       BackendAuto,
			Sources:     cli.EnvVars("COHORTVIEW_REPOSITORY"),
			Destination: &r.Backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project",
			Usage:       "GCP project ID for Firestore",
			Category:    "Repository",
			Sources:     cli.EnvVars("COHORTVIEW_FIRESTORE_PROJECT"),
			Destination: &r.FirestoreProjectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database",
			Usage:       "Firestore database ID",
			Category:    "Repository",
			Value:       "(default)",
			Sources:     cli.EnvVars("COHORTVIEW_FIRESTORE_DATABASE"),
			Destination: &r.FirestoreDatabaseID,
		},
	}
}

// ResolveBackend returns the backend that Configure will use
func (r *Repository) ResolveBackend() (string, error) {
	switch r.Backend {
	case "", BackendAuto:
		if r.FirestoreProjectID != "" {
			return BackendFirestore, nil
		}
		return BackendMemory, nil
	case BackendMemory:
		return BackendMemory, nil
	case BackendFirestore:
		if r.FirestoreProjectID == "" {
			return "", goerr.New("firestore backend requires --firestore-project")
		}
		return BackendFirestore, nil
	default:
		return "", goerr.New("unknown repository backend", goerr.V("backend", r.Backend))
	}
}

// Configure opens the selected repository
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	backend, err := r.ResolveBackend()
	if err != nil {
		return nil, err
	}

	if backend == BackendMemory {
		ctxlog.From(ctx).Warn("Using memory repository. Cohorts are lost on shutdown")
		return repository.NewMemory(), nil
	}

	repo, err := repository.NewFirestore(ctx, r.FirestoreProjectID, r.FirestoreDatabaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open firestore repository",
			goerr.V("project", r.FirestoreProjectID),
			goerr.V("database", r.FirestoreDatabaseID),
		)
	}
	return repo, nil
}

// LogValue returns structured log value
func (r Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", r.Backend),
		slog.String("firestore_project", r.FirestoreProjectID),
		slog.String("firestore_database", r.FirestoreDatabaseID),
	)
}
