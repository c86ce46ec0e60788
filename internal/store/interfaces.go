// Package store implements the SQLite-backed local object store consumed by
// the sync engine. All repository failures are plain wrapped errors; the sync
// error classifier treats any of them as fatal to the running sync.
package store

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/go-library-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/sync_storage_mock.go -package=mock

// SyncStorage is the local persistence seam of the sync engine.
type SyncStorage interface {
	// ObjectVersion returns the last fully synced version for one object type
	// in lib. A library that was never synced yields 0.
	ObjectVersion(ctx context.Context, lib models.LibraryID, object models.SyncObject) (int64, error)
	// SaveObjectVersion records version as the last fully synced version for
	// one object type in lib.
	SaveObjectVersion(ctx context.Context, lib models.LibraryID, object models.SyncObject, version int64) error
	// DeletionsVersion returns the version up to which remote deletions have
	// been applied in lib.
	DeletionsVersion(ctx context.Context, lib models.LibraryID) (int64, error)
	// SaveDeletionsVersion records the version up to which remote deletions
	// have been applied in lib.
	SaveDeletionsVersion(ctx context.Context, lib models.LibraryID, version int64) error

	// SaveObjects upserts downloaded object payloads and clears their local
	// change flag.
	SaveObjects(ctx context.Context, lib models.LibraryID, object models.SyncObject, objects []models.RemoteObject) error
	// MarkSubmitted clears the local change flag of the given keys and bumps
	// their stored version after a successful submission.
	MarkSubmitted(ctx context.Context, lib models.LibraryID, object models.SyncObject, keys []string, version int64) error
	// MarkChangesAsResolved clears every local change flag in lib without
	// submitting anything. Used when the user keeps the remote state.
	MarkChangesAsResolved(ctx context.Context, lib models.LibraryID) error
	// RevertLibraryToOriginal discards local modifications in lib, restoring
	// the last downloaded payloads.
	RevertLibraryToOriginal(ctx context.Context, lib models.LibraryID) error

	// PendingWriteBatches collects locally changed objects of lib as
	// submission batches, chunked at [models.WriteBatchSize].
	PendingWriteBatches(ctx context.Context, lib models.LibraryID) ([]models.WriteBatch, error)
	// PendingDeleteBatches collects locally deleted object keys of lib as
	// deletion batches, chunked at [models.WriteBatchSize].
	PendingDeleteBatches(ctx context.Context, lib models.LibraryID) ([]models.DeleteBatch, error)
	// PendingUploads collects attachments of lib queued for upload.
	PendingUploads(ctx context.Context, lib models.LibraryID) ([]models.AttachmentUpload, error)
	// MarkUploadComplete records a finished (or remotely present) upload.
	MarkUploadComplete(ctx context.Context, lib models.LibraryID, key string) error
	// ResetUploadState clears the failure state of one attachment so a later
	// sync derives its upload again.
	ResetUploadState(ctx context.Context, key string) error

	// PerformDeletions applies remote deletions to the local store. Keys with
	// local changes are handled per mode: with [models.ResolveConflicts]
	// they are left untouched and returned for conflict resolution, with
	// [models.DeleteConflicts] they are deleted anyway, with
	// [models.RestoreConflicts] they are kept and re-marked as changed so the
	// next sync pushes them back.
	PerformDeletions(ctx context.Context, lib models.LibraryID, deletions models.Deletions, version int64, mode models.DeletionConflictMode) ([]string, error)
	// RestoreDeletions re-marks the given objects as locally changed so they
	// survive a remote deletion and are resubmitted.
	RestoreDeletions(ctx context.Context, lib models.LibraryID, collections, items []string) error

	// Groups lists all locally known groups, including local-only ones.
	Groups(ctx context.Context) ([]models.Group, error)
	// SaveGroup upserts group metadata.
	SaveGroup(ctx context.Context, group models.Group) error
	// DeleteGroup removes a group and all objects of its library.
	DeleteGroup(ctx context.Context, groupID int64) error
	// MarkGroupAsLocalOnly detaches a group from remote syncing while keeping
	// its local data.
	MarkGroupAsLocalOnly(ctx context.Context, groupID int64) error

	// SaveSettings upserts per-library settings blobs.
	SaveSettings(ctx context.Context, lib models.LibraryID, settings map[string]json.RawMessage) error
}
