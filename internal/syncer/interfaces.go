// Package syncer implements the queue-driven synchronization engine that
// reconciles the local object store with the remote library-sharing backend.
//
// One sync session executes actions strictly one at a time on a dedicated
// run loop. Failures are classified into fatal errors (abort the sync) and
// non-fatal errors (recorded, the sync continues with a possibly
// restructured queue). Detected conflicts are published to an external
// resolution channel; the loop parks until a resolution is enqueued.
package syncer

import (
	"context"

	"github.com/MKhiriev/go-library-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/syncer_mock.go -package=mock

// ActionsCreator derives the concrete actions a sync session executes. The
// engine never builds multi-action plans itself; it asks the creator and
// splices the result into its queue.
type ActionsCreator interface {
	// CreateInitialActions seeds the queue for a fresh sync of the given
	// kind and scope.
	CreateInitialActions(kind models.SyncKind, scope models.LibraryScope, userID int64) []models.Action

	// CreateLibraryActions builds the per-library action plan. It returns
	// the actions, the queue index to insert them at (negative means
	// append), and how many of them submit local writes to the backend.
	CreateLibraryActions(ctx context.Context, libs []models.LibraryID, options models.CreateLibraryOptions, kind models.SyncKind, perms models.KeyPermissions) ([]models.Action, int, int, error)

	// CreateBatchedObjectActions chunks the given keys into download
	// batches and optionally appends a store-version action once all
	// batches are persisted.
	CreateBatchedObjectActions(lib models.LibraryID, object models.SyncObject, keys []string, version int64, storeVersion bool) []models.Action

	// CreateGroupActions builds fetch actions for changed groups and
	// conflict-raising actions for groups that disappeared remotely.
	CreateGroupActions(toUpdate []int64, toRemove []models.Group) []models.Action
}
