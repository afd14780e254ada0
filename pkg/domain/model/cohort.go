package model

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/wikimetrics/cohortview/pkg/domain/types"
)

// Cohort is a named group of wiki users as returned by the list endpoint.
// Descriptive fields are carried for presentation only.
type Cohort struct {
	ID             types.CohortID `json:"id" yaml:"id" firestore:"id"`
	Name           string         `json:"name" yaml:"name" firestore:"name"`
	Description    string         `json:"description,omitempty" yaml:"description,omitempty" firestore:"description"`
	DefaultProject string         `json:"default_project,omitempty" yaml:"default_project,omitempty" firestore:"default_project"`
	Size           int            `json:"size" yaml:"-" firestore:"size"`
	Validated      bool           `json:"validated" yaml:"validated" firestore:"validated"`
}

// Validate validates the cohort
func (c *Cohort) Validate() error {
	if c.Name == "" {
		return goerr.New("cohort name is required", goerr.V("id", c.ID))
	}
	return nil
}

// WikiUser is a single member record of a cohort
type WikiUser struct {
	ID                types.WikiUserID      `json:"id" yaml:"id" firestore:"id"`
	MediawikiUsername string                `json:"mediawiki_username" yaml:"mediawiki_username" firestore:"mediawiki_username"`
	MediawikiUserID   types.MediawikiUserID `json:"mediawiki_userid,omitempty" yaml:"mediawiki_userid,omitempty" firestore:"mediawiki_userid"`
	Project           string                `json:"project,omitempty" yaml:"project,omitempty" firestore:"project"`
	Valid             bool                  `json:"valid" yaml:"valid" firestore:"valid"`
}

// ValidateWikiUsers checks a member list before it is stored. Every member
// needs an ID and IDs are unique within the list.
func ValidateWikiUsers(users []*WikiUser) error {
	seen := make(map[types.WikiUserID]bool, len(users))
	for i, u := range users {
		if u == nil || u.ID == "" {
			return goerr.New("wiki user ID is required", goerr.V("index", i))
		}
		if seen[u.ID] {
			return goerr.New("duplicate wiki user ID",
				goerr.V("index", i),
				goerr.V("wikiuser", u.ID))
		}
		seen[u.ID] = true
	}
	return nil
}

// UserPageURL returns the link to the user's page on the project wiki.
// A trailing "wiki" is dropped from the project name, so "enwiki" links
// to en.wikipedia.org.
func (u *WikiUser) UserPageURL() string {
	project := strings.TrimSuffix(u.Project, "wiki")
	if project == "" || u.MediawikiUsername == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.wikipedia.org/wiki/User:%s", project, strings.ReplaceAll(u.MediawikiUsername, " ", "_"))
}

// ListResponse is the payload of GET /cohorts/list/
type ListResponse struct {
	Cohorts []*Cohort `json:"cohorts"`
}

// DetailResponse is the payload of GET /cohorts/detail/{id}
type DetailResponse struct {
	WikiUsers []*WikiUser `json:"wikiusers"`
}

// Envelope holds the control fields the server may put in any JSON
// response instead of a payload.
type Envelope struct {
	IsError    bool   `json:"isError,omitempty"`
	Message    string `json:"message,omitempty"`
	IsRedirect bool   `json:"isRedirect,omitempty"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

// NewErrorEnvelope builds the envelope for a failure reported with HTTP 200
func NewErrorEnvelope(message string) *Envelope {
	return &Envelope{IsError: true, Message: message}
}

// NewRedirectEnvelope builds the envelope asking the client to navigate away
func NewRedirectEnvelope(url string) *Envelope {
	return &Envelope{IsRedirect: true, RedirectTo: url}
}

// Err converts the envelope into an error, or nil when it carries no
// control signal. opts are attached to the returned error.
func (e *Envelope) Err(opts ...goerr.Option) error {
	switch {
	case e.IsError:
		return goerr.Wrap(ErrRequestFailed, "server reported an error",
			append(opts, goerr.T(ErrTagServerReported), goerr.V("message", e.Message))...)
	case e.IsRedirect:
		return goerr.Wrap(ErrRequestFailed, "server requested a redirect",
			append(opts, goerr.T(ErrTagRedirect), goerr.V("redirect_to", e.RedirectTo))...)
	}
	return nil
}
