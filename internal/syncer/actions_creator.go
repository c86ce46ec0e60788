package syncer

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-library-sync/internal/logger"
	"github.com/MKhiriev/go-library-sync/internal/store"
	"github.com/MKhiriev/go-library-sync/models"
)

type actionsCreator struct {
	storage store.SyncStorage
	logger  *logger.Logger
}

// NewActionsCreator returns the storage-backed [ActionsCreator].
func NewActionsCreator(storage store.SyncStorage, logger *logger.Logger) ActionsCreator {
	return &actionsCreator{
		storage: storage,
		logger:  logger,
	}
}

func (c *actionsCreator) CreateInitialActions(kind models.SyncKind, scope models.LibraryScope, userID int64) []models.Action {
	if kind == models.KeysOnlySync {
		return []models.Action{models.LoadPermissions{}}
	}

	actions := []models.Action{models.LoadPermissions{}}
	if scope.All {
		actions = append(actions, models.SyncGroupVersions{})
	}
	actions = append(actions, models.CreateLibraryActions{
		Scope:   scope,
		Options: models.AutomaticOptions,
	})
	return actions
}

func (c *actionsCreator) CreateLibraryActions(ctx context.Context, libs []models.LibraryID, options models.CreateLibraryOptions, kind models.SyncKind, perms models.KeyPermissions) ([]models.Action, int, int, error) {
	var (
		actions    []models.Action
		writeCount int
	)

	groupNames, err := c.groupNames(ctx, libs)
	if err != nil {
		return nil, 0, 0, err
	}

	for _, lib := range libs {
		var writes, downloads []models.Action

		if options != models.OnlyDownloadsOptions {
			writes, err = c.writeActions(ctx, lib, perms, groupNames)
			if err != nil {
				return nil, 0, 0, err
			}
		}
		if options != models.OnlyWritesOptions {
			downloads, err = c.downloadActions(ctx, lib, kind)
			if err != nil {
				return nil, 0, 0, err
			}
		}

		// retries after version mismatches pull fresh data before pushing
		// local changes on top of it
		if kind == models.PrioritizeDownloadsSync {
			actions = append(actions, downloads...)
			actions = append(actions, writes...)
		} else {
			actions = append(actions, writes...)
			actions = append(actions, downloads...)
		}
		writeCount += len(writes)
	}

	insertIndex := -1
	if options == models.OnlyDownloadsOptions {
		insertIndex = 0
	}

	return actions, insertIndex, writeCount, nil
}

// writeActions derives the submission plan of one library: write batches,
// delete batches, then upload derivation. Denied group permissions surface
// as conflict-raising actions instead of submissions.
func (c *actionsCreator) writeActions(ctx context.Context, lib models.LibraryID, perms models.KeyPermissions, groupNames map[int64]string) ([]models.Action, error) {
	writeBatches, err := c.storage.PendingWriteBatches(ctx, lib)
	if err != nil {
		return nil, fmt.Errorf("pending write batches for %s: %w", lib, err)
	}
	deleteBatches, err := c.storage.PendingDeleteBatches(ctx, lib)
	if err != nil {
		return nil, fmt.Errorf("pending delete batches for %s: %w", lib, err)
	}
	uploads, err := c.storage.PendingUploads(ctx, lib)
	if err != nil {
		return nil, fmt.Errorf("pending uploads for %s: %w", lib, err)
	}

	var actions []models.Action

	if lib.IsGroup() {
		access := perms.AccessFor(lib.ID)
		if !access.Write && (len(writeBatches) > 0 || len(deleteBatches) > 0) {
			return []models.Action{models.ResolveGroupMetadataWritePermission{
				GroupID: lib.ID,
				Name:    groupNames[lib.ID],
			}}, nil
		}
		if !access.Files && len(uploads) > 0 {
			actions = append(actions, models.ResolveGroupFileWritePermission{
				GroupID: lib.ID,
				Name:    groupNames[lib.ID],
			})
			uploads = nil
		}
	}

	for _, batch := range writeBatches {
		actions = append(actions, models.SubmitWriteBatch{Lib: lib, Batch: batch})
	}
	for _, batch := range deleteBatches {
		actions = append(actions, models.SubmitDeleteBatch{Lib: lib, Batch: batch})
	}
	if len(uploads) > 0 {
		actions = append(actions, models.CreateUploadActions{Lib: lib})
	}

	return actions, nil
}

// downloadActions derives the delta-fetch plan of one library. A full sync
// re-checks everything from version zero.
func (c *actionsCreator) downloadActions(ctx context.Context, lib models.LibraryID, kind models.SyncKind) ([]models.Action, error) {
	objects := []models.SyncObject{
		models.CollectionObject,
		models.SearchObject,
		models.ItemObject,
		models.TrashObject,
	}
	if kind == models.CollectionsOnlySync {
		objects = []models.SyncObject{models.CollectionObject}
	}

	var actions []models.Action

	for _, object := range objects {
		since, err := c.sinceVersion(ctx, lib, object, kind)
		if err != nil {
			return nil, err
		}
		actions = append(actions, models.SyncVersions{
			Lib:          lib,
			Object:       object,
			SinceVersion: since,
			CheckRemote:  kind == models.FullSync,
		})
	}

	if kind == models.CollectionsOnlySync {
		return actions, nil
	}

	deletionsSince := int64(0)
	if kind != models.FullSync {
		var err error
		deletionsSince, err = c.storage.DeletionsVersion(ctx, lib)
		if err != nil {
			return nil, fmt.Errorf("deletions version for %s: %w", lib, err)
		}
	}
	actions = append(actions, models.SyncDeletions{Lib: lib, SinceVersion: deletionsSince})

	settingsSince, err := c.sinceVersion(ctx, lib, models.SettingsObject, kind)
	if err != nil {
		return nil, err
	}
	actions = append(actions, models.SyncSettings{Lib: lib, SinceVersion: settingsSince})

	return actions, nil
}

func (c *actionsCreator) sinceVersion(ctx context.Context, lib models.LibraryID, object models.SyncObject, kind models.SyncKind) (int64, error) {
	if kind == models.FullSync {
		return 0, nil
	}

	version, err := c.storage.ObjectVersion(ctx, lib, object)
	if err != nil {
		return 0, fmt.Errorf("stored version for %s/%s: %w", lib, object, err)
	}
	return version, nil
}

func (c *actionsCreator) groupNames(ctx context.Context, libs []models.LibraryID) (map[int64]string, error) {
	hasGroup := false
	for _, lib := range libs {
		if lib.IsGroup() {
			hasGroup = true
			break
		}
	}
	if !hasGroup {
		return nil, nil
	}

	groups, err := c.storage.Groups(ctx)
	if err != nil {
		return nil, fmt.Errorf("local groups: %w", err)
	}

	names := make(map[int64]string, len(groups))
	for _, group := range groups {
		names[group.ID] = group.Name
	}
	return names, nil
}

func (c *actionsCreator) CreateBatchedObjectActions(lib models.LibraryID, object models.SyncObject, keys []string, version int64, storeVersion bool) []models.Action {
	if len(keys) == 0 {
		if !storeVersion {
			return nil
		}
		return []models.Action{models.StoreVersion{Lib: lib, Object: object, Version: version}}
	}

	var batches []models.DownloadBatch
	for start := 0; start < len(keys); start += models.DownloadBatchSize {
		end := min(start+models.DownloadBatchSize, len(keys))
		batches = append(batches, models.DownloadBatch{
			Lib:     lib,
			Object:  object,
			Keys:    keys[start:end],
			Version: version,
		})
	}

	actions := []models.Action{models.SyncBatchesToDb{Lib: lib, Batches: batches}}
	if storeVersion {
		actions = append(actions, models.StoreVersion{Lib: lib, Object: object, Version: version})
	}
	return actions
}

func (c *actionsCreator) CreateGroupActions(toUpdate []int64, toRemove []models.Group) []models.Action {
	var actions []models.Action
	for _, groupID := range toUpdate {
		actions = append(actions, models.SyncGroupToDb{GroupID: groupID})
	}
	for _, group := range toRemove {
		actions = append(actions, models.ResolveDeletedGroup{GroupID: group.ID, Name: group.Name})
	}
	return actions
}
