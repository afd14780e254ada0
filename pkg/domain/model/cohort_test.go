package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/wikimetrics/cohortview/pkg/domain/model"
	"github.com/wikimetrics/cohortview/pkg/domain/types"
)

func TestUserPageURL(t *testing.T) {
	tests := []struct {
		name     string
		user     model.WikiUser
		expected string
	}{
		{"Project with wiki suffix", model.WikiUser{MediawikiUsername: "Alice", Project: "enwiki"}, "https://en.wikipedia.org/wiki/User:Alice"},
		{"Project without suffix", model.WikiUser{MediawikiUsername: "Bob", Project: "de"}, "https://de.wikipedia.org/wiki/User:Bob"},
		{"Spaces become underscores", model.WikiUser{MediawikiUsername: "Jane Doe", Project: "frwiki"}, "https://fr.wikipedia.org/wiki/User:Jane_Doe"},
		{"Missing project", model.WikiUser{MediawikiUsername: "Alice"}, ""},
		{"Missing name", model.WikiUser{Project: "enwiki"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, tt.expected, tt.user.UserPageURL())
		})
	}
}

func TestDecodeListResponse(t *testing.T) {
	var resp model.ListResponse
	err := json.Unmarshal([]byte(`{"cohorts":[{"id":1,"name":"A"},{"id":2,"name":"B","size":12}]}`), &resp)
	gt.NoError(t, err).Required()
	gt.A(t, resp.Cohorts).Length(2)
	gt.Equal(t, types.CohortID(1), resp.Cohorts[0].ID)
	gt.Equal(t, "B", resp.Cohorts[1].Name)
	gt.Equal(t, 12, resp.Cohorts[1].Size)
}

func TestEnvelopeErr(t *testing.T) {
	t.Run("Plain payload has no error", func(t *testing.T) {
		env := &model.Envelope{}
		gt.NoError(t, env.Err())
	})

	t.Run("isError is a server reported failure", func(t *testing.T) {
		err := model.NewErrorEnvelope("cohort not found").Err()
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrRequestFailed))
		gt.True(t, goerr.HasTag(err, model.ErrTagServerReported))
		gt.Equal(t, any("cohort not found"), goerr.Values(err)["message"])
	})

	t.Run("isRedirect carries the target", func(t *testing.T) {
		err := model.NewRedirectEnvelope("/login").Err()
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrRequestFailed))
		gt.True(t, goerr.HasTag(err, model.ErrTagRedirect))
		gt.Equal(t, any("/login"), goerr.Values(err)["redirect_to"])
	})
}

func TestValidateWikiUsers(t *testing.T) {
	gt.NoError(t, model.ValidateWikiUsers(nil))
	gt.NoError(t, model.ValidateWikiUsers([]*model.WikiUser{{ID: "1"}, {ID: "2"}}))

	err := model.ValidateWikiUsers([]*model.WikiUser{{ID: "1"}, {ID: "2"}, {ID: "1"}})
	gt.Error(t, err)
	gt.S(t, err.Error()).Contains("duplicate wiki user ID")

	gt.Error(t, model.ValidateWikiUsers([]*model.WikiUser{{ID: "1"}, {}}))
	gt.Error(t, model.ValidateWikiUsers([]*model.WikiUser{nil}))
}

func TestSeedConfigValidate(t *testing.T) {
	newSeed := func() *model.SeedConfig {
		return &model.SeedConfig{
			Cohorts: []*model.SeedCohort{
				{
					Cohort: model.Cohort{ID: 1, Name: "Editors"},
					WikiUsers: []*model.WikiUser{
						{ID: "u1", MediawikiUsername: "Alice"},
						{ID: "u2", MediawikiUsername: "Bob"},
					},
				},
				{Cohort: model.Cohort{ID: 2, Name: "Readers"}},
			},
		}
	}

	t.Run("Valid seed", func(t *testing.T) {
		gt.NoError(t, newSeed().Validate())
	})

	t.Run("Duplicate cohort ID", func(t *testing.T) {
		seed := newSeed()
		seed.Cohorts[1].ID = 1
		err := seed.Validate()
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("duplicate cohort ID")
	})

	t.Run("Missing cohort name", func(t *testing.T) {
		seed := newSeed()
		seed.Cohorts[0].Name = ""
		gt.Error(t, seed.Validate())
	})

	t.Run("Duplicate wiki user ID", func(t *testing.T) {
		seed := newSeed()
		seed.Cohorts[0].WikiUsers[1].ID = "u1"
		err := seed.Validate()
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("duplicate wiki user ID")
	})

	t.Run("Wiki user without ID", func(t *testing.T) {
		seed := newSeed()
		seed.Cohorts[0].WikiUsers[0].ID = ""
		gt.Error(t, seed.Validate())
	})
}
