// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Action is one unit of work in the sync queue. The set of variants is
// closed: every implementation lives in this file and dispatch sites switch
// over the concrete types. Library reports the library the action is scoped
// to; ok is false for library-agnostic actions (key loading, seeding).
type Action interface {
	Library() (lib LibraryID, ok bool)
	isAction()
}

// unscoped is embedded by actions that are not bound to a library.
type unscoped struct{}

func (unscoped) Library() (LibraryID, bool) { return LibraryID{}, false }

// LoadPermissions fetches the API key's access permissions from the backend.
// Always the first action of a sync.
type LoadPermissions struct{ unscoped }

// CreateLibraryActions asks the actions creator to seed per-library work for
// the given scope.
type CreateLibraryActions struct {
	unscoped
	Scope   LibraryScope         `json:"scope"`
	Options CreateLibraryOptions `json:"options"`
}

// CreateLibraryOptions controls which per-library work gets seeded.
type CreateLibraryOptions string

const (
	// AutomaticOptions seeds the full download+submission pipeline.
	AutomaticOptions CreateLibraryOptions = "automatic"
	// OnlyDownloadsOptions restricts the seeded work to downloads. Used by
	// upload accounting when a library's uploads turned out unreachable.
	OnlyDownloadsOptions CreateLibraryOptions = "onlyDownloads"
	// OnlyWritesOptions restricts the seeded work to local submissions.
	OnlyWritesOptions CreateLibraryOptions = "onlyWrites"
)

// SyncGroupVersions diffs remote group versions against local groups and
// enqueues group metadata fetches and removal conflicts.
type SyncGroupVersions struct{ unscoped }

// SyncGroupToDb fetches one group's metadata and stores it locally.
type SyncGroupToDb struct {
	unscoped
	GroupID int64 `json:"group_id"`
}

// SyncVersions fetches remote object versions for one object type changed
// since SinceVersion and enqueues batched object downloads. CheckRemote
// forces the remote request even when the local version matches.
type SyncVersions struct {
	Lib          LibraryID  `json:"library"`
	Object       SyncObject `json:"object"`
	SinceVersion int64      `json:"since_version"`
	CheckRemote  bool       `json:"check_remote"`
}

// SyncDeletions fetches remote deletions since SinceVersion and applies them
// locally, surfacing conflicts for deleted objects with local changes.
type SyncDeletions struct {
	Lib          LibraryID `json:"library"`
	SinceVersion int64     `json:"since_version"`
}

// SyncSettings fetches library settings changed since SinceVersion.
type SyncSettings struct {
	Lib          LibraryID `json:"library"`
	SinceVersion int64     `json:"since_version"`
}

// SyncBatchesToDb downloads the objects of the given batches and writes them
// to the local store. All batches belong to the same library.
type SyncBatchesToDb struct {
	Lib     LibraryID       `json:"library"`
	Batches []DownloadBatch `json:"batches"`
}

// StoreVersion persists a library version for one object type.
type StoreVersion struct {
	Lib     LibraryID  `json:"library"`
	Object  SyncObject `json:"object"`
	Version int64      `json:"version"`
}

// StoreDeletionVersion persists the deletions version of a library.
type StoreDeletionVersion struct {
	Lib     LibraryID `json:"library"`
	Version int64     `json:"version"`
}

// SubmitWriteBatch pushes a batch of locally changed objects to the backend.
type SubmitWriteBatch struct {
	Lib   LibraryID  `json:"library"`
	Batch WriteBatch `json:"batch"`
}

// SubmitDeleteBatch pushes a batch of locally deleted object keys to the
// backend.
type SubmitDeleteBatch struct {
	Lib   LibraryID   `json:"library"`
	Batch DeleteBatch `json:"batch"`
}

// CreateUploadActions derives the pending attachment uploads of a library
// and enqueues one UploadAttachment per file.
type CreateUploadActions struct {
	Lib LibraryID `json:"library"`
}

// UploadAttachment uploads a single attachment file to the backend.
type UploadAttachment struct {
	Lib    LibraryID        `json:"library"`
	Upload AttachmentUpload `json:"upload"`
}

// PerformDeletions applies remote deletions to the local store. ConflictMode
// decides what happens to deleted objects that carry local changes.
type PerformDeletions struct {
	Lib          LibraryID            `json:"library"`
	Collections  []string             `json:"collections"`
	Items        []string             `json:"items"`
	Searches     []string             `json:"searches"`
	Tags         []string             `json:"tags"`
	Version      int64                `json:"version"`
	ConflictMode DeletionConflictMode `json:"conflict_mode"`
}

// DeletionConflictMode controls PerformDeletions behaviour for objects with
// local changes.
type DeletionConflictMode string

const (
	// ResolveConflicts surfaces changed objects as a conflict instead of
	// deleting them.
	ResolveConflicts DeletionConflictMode = "resolveConflicts"
	// DeleteConflicts deletes changed objects along with the rest.
	DeleteConflicts DeletionConflictMode = "deleteConflicts"
	// RestoreConflicts keeps changed objects and re-marks them for upload.
	RestoreConflicts DeletionConflictMode = "restoreConflicts"
)

// RestoreDeletions re-creates remotely deleted objects from their local
// state, scheduling them for upload.
type RestoreDeletions struct {
	Lib         LibraryID `json:"library"`
	Collections []string  `json:"collections"`
	Items       []string  `json:"items"`
}

// DeleteGroup removes a group and all its objects from the local store.
type DeleteGroup struct {
	unscoped
	GroupID int64 `json:"group_id"`
}

// MarkGroupAsLocalOnly detaches a group from remote syncing while keeping
// its local data.
type MarkGroupAsLocalOnly struct {
	unscoped
	GroupID int64 `json:"group_id"`
}

// RevertLibraryToOriginal discards local changes in a library, restoring the
// last synced state.
type RevertLibraryToOriginal struct {
	Lib LibraryID `json:"library"`
}

// MarkChangesAsResolved marks all local changes of a library as synced
// without submitting them.
type MarkChangesAsResolved struct {
	Lib LibraryID `json:"library"`
}

// ResolveGroupMetadataWritePermission raises a conflict for a group whose
// metadata became read-only while local metadata edits exist.
type ResolveGroupMetadataWritePermission struct {
	unscoped
	GroupID int64  `json:"group_id"`
	Name    string `json:"name"`
}

// ResolveGroupFileWritePermission raises a conflict for a group whose file
// storage became read-only while local file edits exist.
type ResolveGroupFileWritePermission struct {
	unscoped
	GroupID int64  `json:"group_id"`
	Name    string `json:"name"`
}

// ResolveDeletedGroup raises a conflict for a group that was removed
// remotely but still exists locally.
type ResolveDeletedGroup struct {
	unscoped
	GroupID int64  `json:"group_id"`
	Name    string `json:"name"`
}

// FixUpload resets the local state of a failed attachment so a later sync
// re-derives its upload.
type FixUpload struct {
	Lib LibraryID `json:"library"`
	Key string    `json:"key"`
}

// RemoveActions drops all queued actions of a library from the queue.
type RemoveActions struct {
	unscoped
	Lib LibraryID `json:"library"`
}

// PerformWebDavDeletions deletes attachment files from WebDAV storage.
type PerformWebDavDeletions struct {
	Lib  LibraryID `json:"library"`
	Keys []string  `json:"keys"`
}

func (a SyncVersions) Library() (LibraryID, bool)            { return a.Lib, true }
func (a SyncDeletions) Library() (LibraryID, bool)           { return a.Lib, true }
func (a SyncSettings) Library() (LibraryID, bool)            { return a.Lib, true }
func (a SyncBatchesToDb) Library() (LibraryID, bool)         { return a.Lib, true }
func (a StoreVersion) Library() (LibraryID, bool)            { return a.Lib, true }
func (a StoreDeletionVersion) Library() (LibraryID, bool)    { return a.Lib, true }
func (a SubmitWriteBatch) Library() (LibraryID, bool)        { return a.Lib, true }
func (a SubmitDeleteBatch) Library() (LibraryID, bool)       { return a.Lib, true }
func (a CreateUploadActions) Library() (LibraryID, bool)     { return a.Lib, true }
func (a UploadAttachment) Library() (LibraryID, bool)        { return a.Lib, true }
func (a PerformDeletions) Library() (LibraryID, bool)        { return a.Lib, true }
func (a RestoreDeletions) Library() (LibraryID, bool)        { return a.Lib, true }
func (a RevertLibraryToOriginal) Library() (LibraryID, bool) { return a.Lib, true }
func (a MarkChangesAsResolved) Library() (LibraryID, bool)   { return a.Lib, true }
func (a FixUpload) Library() (LibraryID, bool)               { return a.Lib, true }
func (a PerformWebDavDeletions) Library() (LibraryID, bool)  { return a.Lib, true }

func (LoadPermissions) isAction()                     {}
func (CreateLibraryActions) isAction()                {}
func (SyncGroupVersions) isAction()                   {}
func (SyncGroupToDb) isAction()                       {}
func (SyncVersions) isAction()                        {}
func (SyncDeletions) isAction()                       {}
func (SyncSettings) isAction()                        {}
func (SyncBatchesToDb) isAction()                     {}
func (StoreVersion) isAction()                        {}
func (StoreDeletionVersion) isAction()                {}
func (SubmitWriteBatch) isAction()                    {}
func (SubmitDeleteBatch) isAction()                   {}
func (CreateUploadActions) isAction()                 {}
func (UploadAttachment) isAction()                    {}
func (PerformDeletions) isAction()                    {}
func (RestoreDeletions) isAction()                    {}
func (DeleteGroup) isAction()                         {}
func (MarkGroupAsLocalOnly) isAction()                {}
func (RevertLibraryToOriginal) isAction()             {}
func (MarkChangesAsResolved) isAction()               {}
func (ResolveGroupMetadataWritePermission) isAction() {}
func (ResolveGroupFileWritePermission) isAction()     {}
func (ResolveDeletedGroup) isAction()                 {}
func (FixUpload) isAction()                           {}
func (RemoveActions) isAction()                       {}
func (PerformWebDavDeletions) isAction()              {}
