package usecase

import (
	"context"
	"sync/atomic"

	"github.com/m-mizutani/ctxlog"
	"github.com/wikimetrics/cohortview/pkg/domain/interfaces"
	"github.com/wikimetrics/cohortview/pkg/domain/model"
	"github.com/wikimetrics/cohortview/pkg/domain/types"
	"github.com/wikimetrics/cohortview/pkg/utils/async"
	"github.com/wikimetrics/cohortview/pkg/utils/observable"
)

// CohortListConfig holds configuration for CohortList
type CohortListConfig struct {
	maxConcurrentRequests int
}

// CohortListOption is a functional option for configuring CohortList
type CohortListOption func(*CohortListConfig)

// WithMaxConcurrentRequests bounds the number of requests in flight.
// Zero means unbounded. Requests over the bound wait for a free slot in
// the background; View and ViewFull still return immediately.
func WithMaxConcurrentRequests(n int) CohortListOption {
	return func(c *CohortListConfig) {
		c.maxConcurrentRequests = n
	}
}

// CohortView is a cohort together with its lazily loaded members.
// WikiUsers is never nil.
type CohortView struct {
	*model.Cohort
	WikiUsers *observable.List[*model.WikiUser]

	// generation is the number of the latest detail request issued for
	// this cohort. Only the response of that request may be applied.
	generation atomic.Uint64
}

func newCohortView(cohort *model.Cohort) *CohortView {
	return &CohortView{
		Cohort:    cohort,
		WikiUsers: observable.NewList[*model.WikiUser](),
	}
}

func (c *CohortView) issue() uint64 {
	return c.generation.Add(1)
}

func (c *CohortView) apply(gen uint64, users []*model.WikiUser) bool {
	return c.WikiUsers.SetIf(users, func() bool {
		return c.generation.Load() == gen
	})
}

// CohortList is the view model of the cohort dashboard. It loads the
// cohort list once on creation and fetches members on demand.
type CohortList struct {
	client   interfaces.CohortClient
	reporter interfaces.FailureReporter
	cohorts  *observable.List[*CohortView]
	tasks    *async.Group
}

// NewCohortList creates the view model and starts loading the cohort list
// in the background. Failures go to reporter.
func NewCohortList(ctx context.Context, client interfaces.CohortClient, reporter interfaces.FailureReporter, opts ...CohortListOption) *CohortList {
	config := &CohortListConfig{}
	for _, opt := range opts {
		opt(config)
	}

	l := &CohortList{
		client:   client,
		reporter: reporter,
		cohorts:  observable.NewList[*CohortView](),
		tasks:    async.NewGroup(config.maxConcurrentRequests),
	}
	l.load(ctx)
	return l
}

func (l *CohortList) load(ctx context.Context) {
	l.tasks.Go(ctx, func(ctx context.Context) error {
		cohorts, err := l.client.ListCohorts(ctx)
		if err != nil {
			l.reporter.Report(ctx, err)
			return nil
		}

		views := make([]*CohortView, 0, len(cohorts))
		for _, cohort := range cohorts {
			if cohort == nil {
				continue
			}
			views = append(views, newCohortView(cohort))
		}
		l.cohorts.Set(views)

		ctxlog.From(ctx).Debug("Cohort list loaded", "count", len(views))
		return nil
	})
}

// Cohorts returns the current cohorts in server order
func (l *CohortList) Cohorts() []*CohortView {
	return l.cohorts.Items()
}

// Cohort returns the cohort with id, or nil if it is not loaded
func (l *CohortList) Cohort(id types.CohortID) *CohortView {
	for _, c := range l.cohorts.Items() {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// SubscribeCohorts calls fn whenever the cohort list is replaced
func (l *CohortList) SubscribeCohorts(fn func()) (unsubscribe func()) {
	return l.cohorts.Subscribe(fn)
}

// Wait blocks until every request issued so far has completed
func (l *CohortList) Wait() {
	l.tasks.Wait()
}

// View loads the cohort's members unless they are already loaded
func (l *CohortList) View(ctx context.Context, cohort *CohortView) {
	if cohort == nil {
		return
	}
	if cohort.WikiUsers.Len() > 0 {
		return
	}
	l.fetchDetail(ctx, cohort, false, nil)
}

// ViewFull always loads the cohort's full member list, replacing whatever
// is loaded. trigger, if not nil, is removed once the members are applied.
func (l *CohortList) ViewFull(ctx context.Context, cohort *CohortView, trigger interfaces.Element) {
	if cohort == nil {
		return
	}
	l.fetchDetail(ctx, cohort, true, trigger)
}

func (l *CohortList) fetchDetail(ctx context.Context, cohort *CohortView, full bool, trigger interfaces.Element) {
	gen := cohort.issue()

	l.tasks.Go(ctx, func(ctx context.Context) error {
		logger := ctxlog.From(ctx)

		users, err := l.client.GetCohortDetail(ctx, cohort.ID, full)
		if err != nil {
			l.reporter.Report(ctx, err)
			return nil
		}
		if users == nil {
			users = []*model.WikiUser{}
		}

		if !cohort.apply(gen, users) {
			logger.Debug("Discarding stale cohort detail",
				"cohort_id", cohort.ID,
				"generation", gen,
				"full_detail", full)
			return nil
		}

		if trigger != nil {
			trigger.Remove()
		}
		logger.Debug("Cohort detail loaded",
			"cohort_id", cohort.ID,
			"count", len(users),
			"full_detail", full)
		return nil
	})
}
