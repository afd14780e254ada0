package interfaces

import (
	"context"

	"github.com/wikimetrics/cohortview/pkg/domain/model"
	"github.com/wikimetrics/cohortview/pkg/domain/types"
)

// Repository stores cohorts and their members for the reference server
type Repository interface {
	// Cohort operations
	PutCohort(ctx context.Context, cohort *model.Cohort) error
	GetCohort(ctx context.Context, id types.CohortID) (*model.Cohort, error)
	ListCohorts(ctx context.Context) ([]*model.Cohort, error)

	// Member operations. limit <= 0 returns every member.
	PutWikiUsers(ctx context.Context, id types.CohortID, users []*model.WikiUser) error
	ListWikiUsers(ctx context.Context, id types.CohortID, limit int) ([]*model.WikiUser, error)

	// Close closes the repository connection
	Close() error
}
