package interfaces

//go:generate moq -out mocks/cohort_mock.go -pkg mocks . CohortClient FailureReporter Element

import (
	"context"

	"github.com/wikimetrics/cohortview/pkg/domain/model"
	"github.com/wikimetrics/cohortview/pkg/domain/types"
)

// CohortClient fetches cohorts and their members from the dashboard server
type CohortClient interface {
	// ListCohorts calls GET /cohorts/list/
	ListCohorts(ctx context.Context) ([]*model.Cohort, error)
	// GetCohortDetail calls GET /cohorts/detail/{id}, adding
	// full_detail=true when full is set
	GetCohortDetail(ctx context.Context, id types.CohortID, full bool) ([]*model.WikiUser, error)
}

// FailureReporter surfaces a failed request to the user and/or the log
type FailureReporter interface {
	Report(ctx context.Context, err error)
}

// Element is the presentation element that triggered an action, such as
// a "load more" button
type Element interface {
	Remove()
}
