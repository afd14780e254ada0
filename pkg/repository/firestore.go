package repository

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/wikimetrics/cohortview/pkg/domain/interfaces"
	"github.com/wikimetrics/cohortview/pkg/domain/model"
	"github.com/wikimetrics/cohortview/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// Collection names
	cohortsCollection   = "cohorts"
	wikiUsersCollection = "wikiusers"

	// Field names
	fieldSize     = "size"
	fieldPosition = "position"
)

// wikiUserDoc keeps members in the order they were stored
type wikiUserDoc struct {
	Position int             `firestore:"position"`
	User     *model.WikiUser `firestore:"user"`
}

// Firestore implements Repository interface with Firestore
type Firestore struct {
	client *firestore.Client
}

// NewFirestore creates a new Firestore repository
func NewFirestore(ctx context.Context, projectID, databaseID string) (interfaces.Repository, error) {
	logger := ctxlog.From(ctx)

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Fail fast on invalid project or missing permission
	_, err = client.Collection(cohortsCollection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		logger.Debug("Firestore connection test returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore repository initialized successfully",
		"projectID", projectID,
		"databaseID", databaseID,
	)

	return &Firestore{
		client: client,
	}, nil
}

func (f *Firestore) cohortDoc(id types.CohortID) *firestore.DocumentRef {
	return f.client.Collection(cohortsCollection).Doc(id.String())
}

// PutCohort creates or replaces a cohort, keeping the stored member count
func (f *Firestore) PutCohort(ctx context.Context, cohort *model.Cohort) error {
	if cohort == nil {
		return goerr.New("cohort is nil")
	}
	if err := cohort.Validate(); err != nil {
		return goerr.Wrap(err, "invalid cohort")
	}

	ref := f.cohortDoc(cohort.ID)
	err := f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		cohortCopy := *cohort
		cohortCopy.Size = 0

		doc, err := tx.Get(ref)
		switch {
		case err == nil:
			var existing model.Cohort
			if err := doc.DataTo(&existing); err != nil {
				return goerr.Wrap(err, "failed to decode cohort")
			}
			cohortCopy.Size = existing.Size
		case status.Code(err) != codes.NotFound:
			return goerr.Wrap(err, "failed to get cohort")
		}

		return tx.Set(ref, &cohortCopy)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to save cohort to firestore", goerr.V("id", cohort.ID))
	}
	return nil
}

// GetCohort retrieves a cohort by ID
func (f *Firestore) GetCohort(ctx context.Context, id types.CohortID) (*model.Cohort, error) {
	doc, err := f.cohortDoc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrCohortNotFound, "failed to get cohort", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get cohort from firestore", goerr.V("id", id))
	}

	var cohort model.Cohort
	if err := doc.DataTo(&cohort); err != nil {
		return nil, goerr.Wrap(err, "failed to decode cohort", goerr.V("id", id))
	}
	return &cohort, nil
}

// ListCohorts returns every cohort ordered by ID
func (f *Firestore) ListCohorts(ctx context.Context) ([]*model.Cohort, error) {
	iter := f.client.Collection(cohortsCollection).Documents(ctx)
	defer iter.Stop()

	var cohorts []*model.Cohort
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate cohorts")
		}

		var cohort model.Cohort
		if err := doc.DataTo(&cohort); err != nil {
			return nil, goerr.Wrap(err, "failed to decode cohort", goerr.V("docID", doc.Ref.ID))
		}
		cohorts = append(cohorts, &cohort)
	}

	// Document IDs sort as strings, so order numerically in memory
	sort.Slice(cohorts, func(i, j int) bool {
		return cohorts[i].ID < cohorts[j].ID
	})
	return cohorts, nil
}

// PutWikiUsers replaces the members of a cohort in one transaction
func (f *Firestore) PutWikiUsers(ctx context.Context, id types.CohortID, users []*model.WikiUser) error {
	if err := model.ValidateWikiUsers(users); err != nil {
		return goerr.Wrap(err, "invalid wiki users", goerr.V("cohort", id))
	}

	ref := f.cohortDoc(id)
	members := ref.Collection(wikiUsersCollection)

	err := f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(model.ErrCohortNotFound, "failed to put wiki users", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get cohort")
		}

		existing, err := tx.Documents(members).GetAll()
		if err != nil {
			return goerr.Wrap(err, "failed to list existing wiki users")
		}

		for _, doc := range existing {
			if err := tx.Delete(doc.Ref); err != nil {
				return goerr.Wrap(err, "failed to delete wiki user", goerr.V("docID", doc.Ref.ID))
			}
		}
		for i, u := range users {
			if err := tx.Set(members.Doc(u.ID.String()), &wikiUserDoc{Position: i, User: u}); err != nil {
				return goerr.Wrap(err, "failed to set wiki user", goerr.V("wikiuser", u.ID))
			}
		}

		return tx.Update(ref, []firestore.Update{
			{Path: fieldSize, Value: len(users)},
		})
	})
	if err != nil {
		return goerr.Wrap(err, "failed to save wiki users to firestore", goerr.V("id", id))
	}
	return nil
}

// ListWikiUsers returns up to limit members of a cohort in stored order
func (f *Firestore) ListWikiUsers(ctx context.Context, id types.CohortID, limit int) ([]*model.WikiUser, error) {
	if _, err := f.GetCohort(ctx, id); err != nil {
		return nil, err
	}

	query := f.cohortDoc(id).Collection(wikiUsersCollection).OrderBy(fieldPosition, firestore.Asc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	users := []*model.WikiUser{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate wiki users", goerr.V("id", id))
		}

		var entry wikiUserDoc
		if err := doc.DataTo(&entry); err != nil {
			return nil, goerr.Wrap(err, "failed to decode wiki user", goerr.V("docID", doc.Ref.ID))
		}
		if entry.User != nil {
			users = append(users, entry.User)
		}
	}
	return users, nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
