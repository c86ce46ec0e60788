package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-library-sync/internal/logger"
	"github.com/MKhiriev/go-library-sync/models"
)

type syncRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncRepository returns the SQLite-backed [SyncStorage].
func NewSyncRepository(db *DB, logger *logger.Logger) SyncStorage {
	return &syncRepository{
		DB:     db,
		logger: logger,
	}
}

// versionTag maps an object type to its row tag in the versions table. The
// deletions counter lives under its own tag next to the object tags.
func versionTag(object models.SyncObject) string {
	return string(object)
}

const deletionsTag = "deletions"

func (s *syncRepository) version(ctx context.Context, lib models.LibraryID, tag string) (int64, error) {
	log := logger.FromContext(ctx)

	var version int64
	row := s.DB.QueryRowContext(ctx, getVersion, lib.String(), tag)
	if err := row.Scan(&version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		log.Err(err).
			Str("func", "syncRepository.version").
			Str("library", lib.String()).
			Str("tag", tag).
			Msg("failed to scan version row")
		return 0, fmt.Errorf("failed to read version (library=%s, tag=%s): %w", lib, tag, err)
	}

	return version, nil
}

func (s *syncRepository) saveVersion(ctx context.Context, lib models.LibraryID, tag string, version int64) error {
	log := logger.FromContext(ctx)

	_, err := s.DB.ExecContext(ctx, saveVersion, lib.String(), tag, version)
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.saveVersion").
			Str("library", lib.String()).
			Str("tag", tag).
			Int64("version", version).
			Msg("failed to execute upsert for version")
		return fmt.Errorf("failed to save version (library=%s, tag=%s): %w", lib, tag, err)
	}

	return nil
}

func (s *syncRepository) ObjectVersion(ctx context.Context, lib models.LibraryID, object models.SyncObject) (int64, error) {
	return s.version(ctx, lib, versionTag(object))
}

func (s *syncRepository) SaveObjectVersion(ctx context.Context, lib models.LibraryID, object models.SyncObject, version int64) error {
	return s.saveVersion(ctx, lib, versionTag(object), version)
}

func (s *syncRepository) DeletionsVersion(ctx context.Context, lib models.LibraryID) (int64, error) {
	return s.version(ctx, lib, deletionsTag)
}

func (s *syncRepository) SaveDeletionsVersion(ctx context.Context, lib models.LibraryID, version int64) error {
	return s.saveVersion(ctx, lib, deletionsTag, version)
}

func (s *syncRepository) SaveObjects(ctx context.Context, lib models.LibraryID, object models.SyncObject, objects []models.RemoteObject) error {
	log := logger.FromContext(ctx)

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.SaveObjects").
			Str("library", lib.String()).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, obj := range objects {
		_, err = tx.ExecContext(ctx, saveObject,
			lib.String(),
			string(object),
			obj.Key,
			obj.Version,
			[]byte(obj.Data),
		)
		if err != nil {
			log.Err(err).
				Str("func", "syncRepository.SaveObjects").
				Str("library", lib.String()).
				Str("key", obj.Key).
				Msg("failed to execute upsert for downloaded object")
			return fmt.Errorf("failed to save object (key=%s): %w", obj.Key, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *syncRepository) MarkSubmitted(ctx context.Context, lib models.LibraryID, object models.SyncObject, keys []string, version int64) error {
	log := logger.FromContext(ctx)

	if len(keys) == 0 {
		return nil
	}

	query, args, err := buildMarkSubmittedQuery(lib, object, keys, version)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "syncRepository.MarkSubmitted").
			Str("library", lib.String()).
			Msg("failed to clear change flags after submission")
		return fmt.Errorf("failed to mark objects as submitted: %w", err)
	}

	// rows flagged deleted were accepted by the backend, drop the bookkeeping
	query, args, err = buildDeleteSubmittedRowsQuery(lib, object, keys)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "syncRepository.MarkSubmitted").
			Str("library", lib.String()).
			Msg("failed to drop submitted deletion rows")
		return fmt.Errorf("failed to drop submitted deletion rows: %w", err)
	}

	return nil
}

func (s *syncRepository) MarkChangesAsResolved(ctx context.Context, lib models.LibraryID) error {
	log := logger.FromContext(ctx)

	_, err := s.DB.ExecContext(ctx, clearChangedFlags, lib.String())
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.MarkChangesAsResolved").
			Str("library", lib.String()).
			Msg("failed to clear change flags")
		return fmt.Errorf("failed to mark changes as resolved (library=%s): %w", lib, err)
	}

	return nil
}

func (s *syncRepository) RevertLibraryToOriginal(ctx context.Context, lib models.LibraryID) error {
	log := logger.FromContext(ctx)

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, revertChangedObjects, lib.String()); err != nil {
		log.Err(err).
			Str("func", "syncRepository.RevertLibraryToOriginal").
			Str("library", lib.String()).
			Msg("failed to restore original object payloads")
		return fmt.Errorf("failed to revert library (library=%s): %w", lib, err)
	}

	// objects created locally have no original payload to fall back to
	if _, err = tx.ExecContext(ctx, dropUnsyncedObjects, lib.String()); err != nil {
		log.Err(err).
			Str("func", "syncRepository.RevertLibraryToOriginal").
			Str("library", lib.String()).
			Msg("failed to drop locally created objects")
		return fmt.Errorf("failed to drop unsynced objects (library=%s): %w", lib, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *syncRepository) PendingWriteBatches(ctx context.Context, lib models.LibraryID) ([]models.WriteBatch, error) {
	log := logger.FromContext(ctx)

	rows, err := s.DB.QueryContext(ctx, getChangedObjects, lib.String())
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.PendingWriteBatches").
			Str("library", lib.String()).
			Msg("failed to execute query for changed objects")
		return nil, fmt.Errorf("failed to query changed objects: %w", err)
	}
	defer rows.Close()

	type changedObject struct {
		object models.SyncObject
		key    string
		data   []byte
	}
	perObject := make(map[models.SyncObject][]changedObject)

	for rows.Next() {
		var (
			objectType string
			key        string
			version    int64
			data       []byte
		)
		if scanErr := rows.Scan(&objectType, &key, &version, &data); scanErr != nil {
			log.Err(scanErr).
				Str("func", "syncRepository.PendingWriteBatches").
				Str("library", lib.String()).
				Msg("failed to scan changed object row")
			return nil, fmt.Errorf("failed to scan changed object row: %w", scanErr)
		}
		object := models.SyncObject(objectType)
		perObject[object] = append(perObject[object], changedObject{object: object, key: key, data: data})
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating changed object rows: %w", rowsErr)
	}

	var batches []models.WriteBatch
	for _, object := range []models.SyncObject{models.CollectionObject, models.SearchObject, models.ItemObject} {
		changed := perObject[object]
		if len(changed) == 0 {
			continue
		}

		version, verErr := s.ObjectVersion(ctx, lib, object)
		if verErr != nil {
			return nil, verErr
		}

		for start := 0; start < len(changed); start += models.WriteBatchSize {
			end := min(start+models.WriteBatchSize, len(changed))

			batch := models.WriteBatch{
				Lib:     lib,
				Object:  object,
				Version: version,
			}
			for _, obj := range changed[start:end] {
				batch.Keys = append(batch.Keys, obj.key)
				batch.Parameters = append(batch.Parameters, json.RawMessage(obj.data))
			}
			batches = append(batches, batch)
		}
	}

	return batches, nil
}

func (s *syncRepository) PendingDeleteBatches(ctx context.Context, lib models.LibraryID) ([]models.DeleteBatch, error) {
	log := logger.FromContext(ctx)

	rows, err := s.DB.QueryContext(ctx, getDeletedKeys, lib.String())
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.PendingDeleteBatches").
			Str("library", lib.String()).
			Msg("failed to execute query for locally deleted keys")
		return nil, fmt.Errorf("failed to query locally deleted keys: %w", err)
	}
	defer rows.Close()

	perObject := make(map[models.SyncObject][]string)

	for rows.Next() {
		var (
			objectType string
			key        string
			version    int64
		)
		if scanErr := rows.Scan(&objectType, &key, &version); scanErr != nil {
			log.Err(scanErr).
				Str("func", "syncRepository.PendingDeleteBatches").
				Str("library", lib.String()).
				Msg("failed to scan deleted key row")
			return nil, fmt.Errorf("failed to scan deleted key row: %w", scanErr)
		}
		object := models.SyncObject(objectType)
		perObject[object] = append(perObject[object], key)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating deleted key rows: %w", rowsErr)
	}

	var batches []models.DeleteBatch
	for _, object := range []models.SyncObject{models.CollectionObject, models.SearchObject, models.ItemObject} {
		keys := perObject[object]
		if len(keys) == 0 {
			continue
		}

		version, verErr := s.ObjectVersion(ctx, lib, object)
		if verErr != nil {
			return nil, verErr
		}

		for start := 0; start < len(keys); start += models.WriteBatchSize {
			end := min(start+models.WriteBatchSize, len(keys))
			batches = append(batches, models.DeleteBatch{
				Lib:     lib,
				Object:  object,
				Version: version,
				Keys:    keys[start:end],
			})
		}
	}

	return batches, nil
}

func (s *syncRepository) PendingUploads(ctx context.Context, lib models.LibraryID) ([]models.AttachmentUpload, error) {
	log := logger.FromContext(ctx)

	rows, err := s.DB.QueryContext(ctx, getPendingUploads, lib.String())
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.PendingUploads").
			Str("library", lib.String()).
			Msg("failed to execute query for pending uploads")
		return nil, fmt.Errorf("failed to query pending uploads: %w", err)
	}
	defer rows.Close()

	var uploads []models.AttachmentUpload

	for rows.Next() {
		upload := models.AttachmentUpload{Lib: lib}
		if scanErr := rows.Scan(&upload.Key, &upload.Filename, &upload.MD5, &upload.Mtime, &upload.Size); scanErr != nil {
			log.Err(scanErr).
				Str("func", "syncRepository.PendingUploads").
				Str("library", lib.String()).
				Msg("failed to scan pending upload row")
			return nil, fmt.Errorf("failed to scan pending upload row: %w", scanErr)
		}
		uploads = append(uploads, upload)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating pending upload rows: %w", rowsErr)
	}

	return uploads, nil
}

func (s *syncRepository) MarkUploadComplete(ctx context.Context, lib models.LibraryID, key string) error {
	log := logger.FromContext(ctx)

	_, err := s.DB.ExecContext(ctx, markUploadComplete, lib.String(), key)
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.MarkUploadComplete").
			Str("library", lib.String()).
			Str("key", key).
			Msg("failed to mark upload as complete")
		return fmt.Errorf("failed to mark upload as complete (key=%s): %w", key, err)
	}

	return nil
}

func (s *syncRepository) ResetUploadState(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	result, err := s.DB.ExecContext(ctx, resetUploadState, key)
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.ResetUploadState").
			Str("key", key).
			Msg("failed to reset upload state")
		return fmt.Errorf("failed to reset upload state (key=%s): %w", key, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected (key=%s): %w", key, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: upload (key=%s)", ErrNotFound, key)
	}

	return nil
}

func (s *syncRepository) PerformDeletions(ctx context.Context, lib models.LibraryID, deletions models.Deletions, version int64, mode models.DeletionConflictMode) ([]string, error) {
	var conflicted []string

	perObject := map[models.SyncObject][]string{
		models.CollectionObject: deletions.Collections,
		models.SearchObject:     deletions.Searches,
		models.ItemObject:       deletions.Items,
	}

	for _, object := range []models.SyncObject{models.CollectionObject, models.SearchObject, models.ItemObject} {
		keys := perObject[object]
		if len(keys) == 0 {
			continue
		}

		changed, err := s.changedKeys(ctx, lib, object, keys)
		if err != nil {
			return nil, err
		}

		toDelete := keys
		switch mode {
		case models.ResolveConflicts:
			toDelete = subtract(keys, changed)
			if object == models.ItemObject {
				conflicted = append(conflicted, changed...)
			}
		case models.RestoreConflicts:
			toDelete = subtract(keys, changed)
			if err = s.restoreDeletionsForObject(ctx, lib, object, changed); err != nil {
				return nil, err
			}
		case models.DeleteConflicts:
			// conflicted keys are deleted with the rest
		}

		if err = s.deleteObjects(ctx, lib, object, toDelete); err != nil {
			return nil, err
		}
	}

	if err := s.SaveDeletionsVersion(ctx, lib, version); err != nil {
		return nil, err
	}

	return conflicted, nil
}

func (s *syncRepository) RestoreDeletions(ctx context.Context, lib models.LibraryID, collections, items []string) error {
	if err := s.restoreDeletionsForObject(ctx, lib, models.CollectionObject, collections); err != nil {
		return err
	}
	return s.restoreDeletionsForObject(ctx, lib, models.ItemObject, items)
}

func (s *syncRepository) restoreDeletionsForObject(ctx context.Context, lib models.LibraryID, object models.SyncObject, keys []string) error {
	log := logger.FromContext(ctx)

	if len(keys) == 0 {
		return nil
	}

	query, args, err := buildRestoreObjectsQuery(lib, object, keys)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "syncRepository.restoreDeletionsForObject").
			Str("library", lib.String()).
			Msg("failed to restore remotely deleted objects")
		return fmt.Errorf("failed to restore deletions (library=%s): %w", lib, err)
	}

	return nil
}

func (s *syncRepository) changedKeys(ctx context.Context, lib models.LibraryID, object models.SyncObject, keys []string) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildChangedKeysQuery(lib, object, keys)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.changedKeys").
			Str("library", lib.String()).
			Msg("failed to execute query for changed keys")
		return nil, fmt.Errorf("failed to query changed keys: %w", err)
	}
	defer rows.Close()

	var changed []string
	for rows.Next() {
		var key string
		if scanErr := rows.Scan(&key); scanErr != nil {
			return nil, fmt.Errorf("failed to scan changed key row: %w", scanErr)
		}
		changed = append(changed, key)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating changed key rows: %w", rowsErr)
	}

	return changed, nil
}

func (s *syncRepository) deleteObjects(ctx context.Context, lib models.LibraryID, object models.SyncObject, keys []string) error {
	log := logger.FromContext(ctx)

	if len(keys) == 0 {
		return nil
	}

	query, args, err := buildDeleteObjectsQuery(lib, object, keys)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "syncRepository.deleteObjects").
			Str("library", lib.String()).
			Msg("failed to delete objects")
		return fmt.Errorf("failed to delete objects (library=%s): %w", lib, err)
	}

	return nil
}

func (s *syncRepository) Groups(ctx context.Context) ([]models.Group, error) {
	log := logger.FromContext(ctx)

	rows, err := s.DB.QueryContext(ctx, getAllGroups)
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.Groups").
			Msg("failed to execute query for groups")
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var group models.Group
		scanErr := rows.Scan(
			&group.ID,
			&group.Name,
			&group.Version,
			&group.CanEditMetadata,
			&group.CanEditFiles,
			&group.LocalOnly,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "syncRepository.Groups").
				Msg("failed to scan group row")
			return nil, fmt.Errorf("failed to scan group row: %w", scanErr)
		}
		groups = append(groups, group)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating group rows: %w", rowsErr)
	}

	return groups, nil
}

func (s *syncRepository) SaveGroup(ctx context.Context, group models.Group) error {
	log := logger.FromContext(ctx)

	_, err := s.DB.ExecContext(ctx, saveGroup,
		group.ID,
		group.Name,
		group.Version,
		group.CanEditMetadata,
		group.CanEditFiles,
		group.LocalOnly,
	)
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.SaveGroup").
			Int64("group_id", group.ID).
			Msg("failed to execute upsert for group")
		return fmt.Errorf("failed to save group (id=%d): %w", group.ID, err)
	}

	return nil
}

func (s *syncRepository) DeleteGroup(ctx context.Context, groupID int64) error {
	log := logger.FromContext(ctx)

	lib := models.GroupLibrary(groupID)

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteGroup, groupID); err != nil {
		log.Err(err).
			Str("func", "syncRepository.DeleteGroup").
			Int64("group_id", groupID).
			Msg("failed to delete group")
		return fmt.Errorf("failed to delete group (id=%d): %w", groupID, err)
	}

	if _, err = tx.ExecContext(ctx, deleteLibraryObjects, lib.String()); err != nil {
		return fmt.Errorf("failed to delete group objects (id=%d): %w", groupID, err)
	}

	if _, err = tx.ExecContext(ctx, deleteLibraryVersions, lib.String()); err != nil {
		return fmt.Errorf("failed to delete group versions (id=%d): %w", groupID, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *syncRepository) MarkGroupAsLocalOnly(ctx context.Context, groupID int64) error {
	log := logger.FromContext(ctx)

	result, err := s.DB.ExecContext(ctx, markGroupAsLocalOnly, groupID)
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.MarkGroupAsLocalOnly").
			Int64("group_id", groupID).
			Msg("failed to mark group as local only")
		return fmt.Errorf("failed to mark group as local only (id=%d): %w", groupID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected (id=%d): %w", groupID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: group (id=%d)", ErrNotFound, groupID)
	}

	return nil
}

func (s *syncRepository) SaveSettings(ctx context.Context, lib models.LibraryID, settings map[string]json.RawMessage) error {
	log := logger.FromContext(ctx)

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for name, value := range settings {
		if _, err = tx.ExecContext(ctx, saveSetting, lib.String(), name, []byte(value)); err != nil {
			log.Err(err).
				Str("func", "syncRepository.SaveSettings").
				Str("library", lib.String()).
				Str("setting", name).
				Msg("failed to execute upsert for setting")
			return fmt.Errorf("failed to save setting (name=%s): %w", name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// subtract returns the members of keys that are not in remove.
func subtract(keys, remove []string) []string {
	if len(remove) == 0 {
		return keys
	}

	removed := make(map[string]struct{}, len(remove))
	for _, key := range remove {
		removed[key] = struct{}{}
	}

	var rest []string
	for _, key := range keys {
		if _, ok := removed[key]; !ok {
			rest = append(rest, key)
		}
	}
	return rest
}
