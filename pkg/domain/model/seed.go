package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/wikimetrics/cohortview/pkg/domain/types"
)

// SeedCohort is a cohort with its members, as written in a seed file
type SeedCohort struct {
	Cohort    `yaml:",inline"`
	WikiUsers []*WikiUser `yaml:"wikiusers"`
}

// SeedConfig holds the cohorts loaded into a repository at startup
type SeedConfig struct {
	Cohorts []*SeedCohort `yaml:"cohorts"`
}

// Validate validates the seed configuration
func (c *SeedConfig) Validate() error {
	ids := make(map[types.CohortID]bool)
	for i, sc := range c.Cohorts {
		if sc == nil {
			return goerr.New("cohort entry is empty", goerr.V("index", i))
		}
		if err := sc.Validate(); err != nil {
			return goerr.Wrap(err, "invalid cohort at index",
				goerr.V("index", i),
				goerr.V("id", sc.ID))
		}
		if ids[sc.ID] {
			return goerr.New("duplicate cohort ID", goerr.V("id", sc.ID))
		}
		ids[sc.ID] = true

		if err := ValidateWikiUsers(sc.WikiUsers); err != nil {
			return goerr.Wrap(err, "invalid wiki users", goerr.V("cohort", sc.ID))
		}
	}
	return nil
}
