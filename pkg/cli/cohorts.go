package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/wikimetrics/cohortview/pkg/cli/config"
	"github.com/wikimetrics/cohortview/pkg/domain/types"
	"github.com/wikimetrics/cohortview/pkg/usecase"
	"github.com/wikimetrics/cohortview/pkg/utils/apperr"
)

func cmdCohorts() *cli.Command {
	var (
		clientCfg config.Client
		viewIDs   []string
		expandAll bool
		full      bool
	)

	flags := joinFlags(
		clientCfg.Flags(),
		[]cli.Flag{
			&cli.StringSliceFlag{
				Name:        "view",
				Usage:       "Cohort ID to expand (repeatable)",
				Destination: &viewIDs,
			},
			&cli.BoolFlag{
				Name:        "expand-all",
				Usage:       "Expand every cohort",
				Destination: &expandAll,
			},
			&cli.BoolFlag{
				Name:        "full",
				Usage:       "Load every member of expanded cohorts instead of the first few",
				Destination: &full,
			},
		},
	)

	return &cli.Command{
		Name:  "cohorts",
		Usage: "List cohorts and optionally their members",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)
			logger.Debug("Listing cohorts", slog.Any("client", clientCfg))

			client, err := clientCfg.Configure()
			if err != nil {
				return err
			}

			ids := make([]types.CohortID, 0, len(viewIDs))
			for _, s := range viewIDs {
				id, err := types.ParseCohortID(s)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			reporter := apperr.NewReporter(c.Root().ErrWriter)
			vm := usecase.NewCohortList(ctx, client, reporter, clientCfg.ViewOptions()...)
			vm.Wait()

			targets := vm.Cohorts()
			if !expandAll {
				targets = nil
				for _, id := range ids {
					cohort := vm.Cohort(id)
					if cohort == nil {
						logger.Warn("Cohort not found in list", "cohort_id", id)
						continue
					}
					targets = append(targets, cohort)
				}
			}

			links := make(map[types.CohortID]*moreLink, len(targets))
			for _, cohort := range targets {
				link := &moreLink{}
				links[cohort.ID] = link
				if full {
					vm.ViewFull(ctx, cohort, link)
				} else {
					vm.View(ctx, cohort)
				}
			}
			vm.Wait()

			if err := renderCohorts(c.Root().Writer, vm.Cohorts(), links); err != nil {
				return goerr.Wrap(err, "failed to write output")
			}

			if n := reporter.Count(); n > 0 {
				return goerr.New("some cohort requests failed", goerr.V("failures", n))
			}
			return nil
		},
	}
}

// moreLink stands in for the "load more" link under a partly loaded cohort
type moreLink struct {
	removed atomic.Bool
}

// Remove implements interfaces.Element
func (m *moreLink) Remove() {
	m.removed.Store(true)
}

// renderCohorts writes one line per cohort followed by its loaded members.
// links holds the "load more" link of each expanded cohort.
func renderCohorts(w io.Writer, cohorts []*usecase.CohortView, links map[types.CohortID]*moreLink) error {
	if len(cohorts) == 0 {
		_, err := fmt.Fprintln(w, "No cohorts.")
		return err
	}

	for _, cohort := range cohorts {
		header := fmt.Sprintf("#%d %s (%d members", cohort.ID, cohort.Name, cohort.Size)
		if cohort.DefaultProject != "" {
			header += ", " + cohort.DefaultProject
		}
		header += ")"
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}

		users := cohort.WikiUsers.Items()
		for _, u := range users {
			line := fmt.Sprintf("    %s %s", u.ID, u.MediawikiUsername)
			if link := u.UserPageURL(); link != "" {
				line += " " + link
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}

		link, expanded := links[cohort.ID]
		if expanded && !link.removed.Load() && len(users) < cohort.Size {
			if _, err := fmt.Fprintf(w, "    ... %d more (use --full)\n", cohort.Size-len(users)); err != nil {
				return err
			}
		}
	}
	return nil
}
