// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Conflict describes a detected divergence between local and remote state
// that needs a decision external to the engine. Closed sum: every variant
// lives in this file.
type Conflict interface {
	isConflict()
}

// GroupRemoved: a group present locally no longer exists remotely (or the
// key lost access to it).
type GroupRemoved struct {
	GroupID int64  `json:"group_id"`
	Name    string `json:"name"`
}

// GroupMetadataWriteDenied: local metadata edits exist in a group whose
// metadata became read-only.
type GroupMetadataWriteDenied struct {
	GroupID int64  `json:"group_id"`
	Name    string `json:"name"`
}

// GroupFileWriteDenied: local file edits exist in a group whose file storage
// became read-only.
type GroupFileWriteDenied struct {
	GroupID int64  `json:"group_id"`
	Name    string `json:"name"`
}

// RemovedItemsHaveLocalChanges: remotely deleted items carry local changes.
// Version is the deletions version the resolution must echo back.
type RemovedItemsHaveLocalChanges struct {
	Keys    []string  `json:"keys"`
	Lib     LibraryID `json:"library"`
	Version int64     `json:"version"`
}

// ObjectsRemovedRemotely: remote deletions touching active local objects
// (objects currently open or referenced) that need explicit confirmation.
// The engine has no notion of an active object, so it never raises this
// variant itself; frontends that track open objects publish it and feed the
// resolution back through the engine's resolution entry point.
type ObjectsRemovedRemotely struct {
	Collections []string  `json:"collections"`
	Items       []string  `json:"items"`
	Searches    []string  `json:"searches"`
	Tags        []string  `json:"tags"`
	Lib         LibraryID `json:"library"`
	Version     int64     `json:"version"`
}

func (GroupRemoved) isConflict()                 {}
func (GroupMetadataWriteDenied) isConflict()     {}
func (GroupFileWriteDenied) isConflict()         {}
func (RemovedItemsHaveLocalChanges) isConflict() {}
func (ObjectsRemovedRemotely) isConflict()       {}

// ConflictResolution is the external answer to a Conflict. Each variant maps
// deterministically to zero, one or two follow-up actions spliced at the
// front of the queue.
type ConflictResolution interface {
	isResolution()
}

// DeleteGroupResolution removes the group locally.
type DeleteGroupResolution struct {
	GroupID int64 `json:"group_id"`
}

// KeepGroupChangesResolution keeps local group changes and marks them as
// resolved without submitting.
type KeepGroupChangesResolution struct {
	Lib LibraryID `json:"library"`
}

// MarkGroupAsLocalOnlyResolution detaches the group from remote syncing.
type MarkGroupAsLocalOnlyResolution struct {
	GroupID int64 `json:"group_id"`
}

// RevertGroupChangesResolution discards local changes in the group.
type RevertGroupChangesResolution struct {
	Lib LibraryID `json:"library"`
}

// RevertGroupFilesResolution discards local attachment file changes in the
// group.
type RevertGroupFilesResolution struct {
	Lib LibraryID `json:"library"`
}

// SkipGroupResolution leaves the group untouched for this sync.
type SkipGroupResolution struct {
	GroupID int64 `json:"group_id"`
}

// RemoteDeletionOfActiveObjectResolution decides, per object list, which
// remotely deleted active objects get deleted locally and which restored.
type RemoteDeletionOfActiveObjectResolution struct {
	Lib                  LibraryID `json:"library"`
	ToDeleteCollections  []string  `json:"to_delete_collections"`
	ToRestoreCollections []string  `json:"to_restore_collections"`
	ToDeleteItems        []string  `json:"to_delete_items"`
	ToRestoreItems       []string  `json:"to_restore_items"`
	Searches             []string  `json:"searches"`
	Tags                 []string  `json:"tags"`
	Version              int64     `json:"version"`
}

// RemoteDeletionOfChangedItemResolution decides which remotely deleted,
// locally changed items get deleted and which restored for upload.
type RemoteDeletionOfChangedItemResolution struct {
	Lib       LibraryID `json:"library"`
	ToDelete  []string  `json:"to_delete"`
	ToRestore []string  `json:"to_restore"`
	Version   int64     `json:"version"`
}

func (DeleteGroupResolution) isResolution()                  {}
func (KeepGroupChangesResolution) isResolution()             {}
func (MarkGroupAsLocalOnlyResolution) isResolution()         {}
func (RevertGroupChangesResolution) isResolution()           {}
func (RevertGroupFilesResolution) isResolution()             {}
func (SkipGroupResolution) isResolution()                    {}
func (RemoteDeletionOfActiveObjectResolution) isResolution() {}
func (RemoteDeletionOfChangedItemResolution) isResolution()  {}
