// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-library-sync/models"
)

const (
	getVersion = `
		SELECT version
		FROM versions
		WHERE library = $1 AND tag = $2;`

	saveVersion = `
		INSERT INTO versions (library, tag, version)
		VALUES ($1, $2, $3)
		ON CONFLICT (library, tag) DO UPDATE SET version = excluded.version;`

	saveObject = `
		INSERT INTO objects (library, object_type, key, version, data, changed, deleted)
		VALUES ($1, $2, $3, $4, $5, false, false)
		ON CONFLICT (library, object_type, key) DO UPDATE SET
			version = excluded.version,
			data    = excluded.data,
			changed = false,
			deleted = false;`

	clearChangedFlags = `
		UPDATE objects SET changed = false
		WHERE library = $1;`

	revertChangedObjects = `
		UPDATE objects SET
			data    = original_data,
			changed = false,
			deleted = false
		WHERE library = $1 AND changed = true AND original_data IS NOT NULL;`

	dropUnsyncedObjects = `
		DELETE FROM objects
		WHERE library = $1 AND changed = true AND original_data IS NULL;`

	getChangedObjects = `
		SELECT object_type, key, version, data
		FROM objects
		WHERE library = $1 AND changed = true AND deleted = false
		ORDER BY object_type, key;`

	getDeletedKeys = `
		SELECT object_type, key, version
		FROM objects
		WHERE library = $1 AND deleted = true
		ORDER BY object_type, key;`

	getAllGroups = `
		SELECT id, name, version, can_edit_metadata, can_edit_files, local_only
		FROM groups
		ORDER BY id;`

	saveGroup = `
		INSERT INTO groups (id, name, version, can_edit_metadata, can_edit_files, local_only)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name              = excluded.name,
			version           = excluded.version,
			can_edit_metadata = excluded.can_edit_metadata,
			can_edit_files    = excluded.can_edit_files,
			local_only        = excluded.local_only;`

	deleteGroup = `
		DELETE FROM groups
		WHERE id = $1;`

	deleteLibraryObjects = `
		DELETE FROM objects
		WHERE library = $1;`

	deleteLibraryVersions = `
		DELETE FROM versions
		WHERE library = $1;`

	markGroupAsLocalOnly = `
		UPDATE groups SET local_only = true
		WHERE id = $1;`

	saveSetting = `
		INSERT INTO settings (library, name, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (library, name) DO UPDATE SET value = excluded.value;`

	getPendingUploads = `
		SELECT key, filename, md5, mtime, size
		FROM uploads
		WHERE library = $1 AND state = 'pending'
		ORDER BY key;`

	markUploadComplete = `
		UPDATE uploads SET state = 'complete'
		WHERE library = $1 AND key = $2;`

	resetUploadState = `
		UPDATE uploads SET state = 'pending'
		WHERE key = $1;`
)

// buildChangedKeysQuery selects which of the given keys carry local changes.
// squirrel handles the IN expansion for the key slice.
func buildChangedKeysQuery(lib models.LibraryID, object models.SyncObject, keys []string) (string, []any, error) {
	return sq.Select("key").
		From("objects").
		Where(sq.Eq{
			"library":     lib.String(),
			"object_type": string(object),
			"key":         keys,
			"changed":     true,
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// buildDeleteObjectsQuery removes the given keys of one object type.
func buildDeleteObjectsQuery(lib models.LibraryID, object models.SyncObject, keys []string) (string, []any, error) {
	return sq.Delete("objects").
		Where(sq.Eq{
			"library":     lib.String(),
			"object_type": string(object),
			"key":         keys,
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// buildMarkSubmittedQuery clears change flags and records the post-submission
// version for the given keys.
func buildMarkSubmittedQuery(lib models.LibraryID, object models.SyncObject, keys []string, version int64) (string, []any, error) {
	return sq.Update("objects").
		Set("changed", false).
		Set("version", version).
		Where(sq.Eq{
			"library":     lib.String(),
			"object_type": string(object),
			"key":         keys,
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// buildRestoreObjectsQuery re-marks the given keys as locally changed so they
// are resubmitted instead of following a remote deletion.
func buildRestoreObjectsQuery(lib models.LibraryID, object models.SyncObject, keys []string) (string, []any, error) {
	return sq.Update("objects").
		Set("changed", true).
		Set("deleted", false).
		Where(sq.Eq{
			"library":     lib.String(),
			"object_type": string(object),
			"key":         keys,
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// buildDeleteSubmittedRowsQuery removes synced deletion bookkeeping rows once
// their batch has been accepted by the backend.
func buildDeleteSubmittedRowsQuery(lib models.LibraryID, object models.SyncObject, keys []string) (string, []any, error) {
	return sq.Delete("objects").
		Where(sq.Eq{
			"library":     lib.String(),
			"object_type": string(object),
			"key":         keys,
			"deleted":     true,
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}
