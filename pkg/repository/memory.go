package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/wikimetrics/cohortview/pkg/domain/interfaces"
	"github.com/wikimetrics/cohortview/pkg/domain/model"
	"github.com/wikimetrics/cohortview/pkg/domain/types"
)

// Memory implements Repository interface with in-memory storage
type Memory struct {
	mu        sync.RWMutex
	cohorts   map[types.CohortID]*model.Cohort
	wikiUsers map[types.CohortID][]*model.WikiUser
}

// NewMemory creates a new memory repository
func NewMemory() interfaces.Repository {
	return &Memory{
		cohorts:   make(map[types.CohortID]*model.Cohort),
		wikiUsers: make(map[types.CohortID][]*model.WikiUser),
	}
}

// PutCohort creates or replaces a cohort. The stored size follows the
// cohort's members, not the given value.
func (m *Memory) PutCohort(ctx context.Context, cohort *model.Cohort) error {
	if cohort == nil {
		return goerr.New("cohort is nil")
	}
	if err := cohort.Validate(); err != nil {
		return goerr.Wrap(err, "invalid cohort")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Deep copy to prevent external modifications
	cohortCopy := *cohort
	cohortCopy.Size = len(m.wikiUsers[cohort.ID])
	m.cohorts[cohort.ID] = &cohortCopy
	return nil
}

// GetCohort retrieves a cohort by ID
func (m *Memory) GetCohort(ctx context.Context, id types.CohortID) (*model.Cohort, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cohort, exists := m.cohorts[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrCohortNotFound, "failed to get cohort", goerr.V("id", id))
	}

	cohortCopy := *cohort
	return &cohortCopy, nil
}

// ListCohorts returns every cohort ordered by ID
func (m *Memory) ListCohorts(ctx context.Context) ([]*model.Cohort, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cohorts := make([]*model.Cohort, 0, len(m.cohorts))
	for _, c := range m.cohorts {
		cohortCopy := *c
		cohorts = append(cohorts, &cohortCopy)
	}
	sort.Slice(cohorts, func(i, j int) bool {
		return cohorts[i].ID < cohorts[j].ID
	})
	return cohorts, nil
}

// PutWikiUsers replaces the members of a cohort
func (m *Memory) PutWikiUsers(ctx context.Context, id types.CohortID, users []*model.WikiUser) error {
	if err := model.ValidateWikiUsers(users); err != nil {
		return goerr.Wrap(err, "invalid wiki users", goerr.V("cohort", id))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cohort, exists := m.cohorts[id]
	if !exists {
		return goerr.Wrap(model.ErrCohortNotFound, "failed to put wiki users", goerr.V("id", id))
	}

	stored := make([]*model.WikiUser, 0, len(users))
	for _, u := range users {
		userCopy := *u
		stored = append(stored, &userCopy)
	}
	m.wikiUsers[id] = stored
	cohort.Size = len(stored)
	return nil
}

// ListWikiUsers returns up to limit members of a cohort in insertion order
func (m *Memory) ListWikiUsers(ctx context.Context, id types.CohortID, limit int) ([]*model.WikiUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, exists := m.cohorts[id]; !exists {
		return nil, goerr.Wrap(model.ErrCohortNotFound, "failed to list wiki users", goerr.V("id", id))
	}

	stored := m.wikiUsers[id]
	if limit > 0 && len(stored) > limit {
		stored = stored[:limit]
	}

	users := make([]*model.WikiUser, 0, len(stored))
	for _, u := range stored {
		userCopy := *u
		users = append(users, &userCopy)
	}
	return users, nil
}

// Close does nothing for the memory repository
func (m *Memory) Close() error {
	return nil
}
