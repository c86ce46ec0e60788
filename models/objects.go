// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// KeyPermissions describes what the configured API key may access.
type KeyPermissions struct {
	UserID             int64       `json:"user_id"`
	Username           string      `json:"username"`
	DisplayName        string      `json:"display_name"`
	LibraryAccess      bool        `json:"library_access"`
	NotesAccess        bool        `json:"notes_access"`
	WriteAccess        bool        `json:"write_access"`
	FileAccess         bool        `json:"file_access"`
	DefaultGroupAccess GroupAccess `json:"default_group_access"`
	// GroupAccess overrides DefaultGroupAccess per group id.
	GroupAccess map[int64]GroupAccess `json:"group_access,omitempty"`
}

// GroupAccess is the per-group slice of key permissions.
type GroupAccess struct {
	Library bool `json:"library"`
	Write   bool `json:"write"`
	Files   bool `json:"files"`
}

// AccessFor resolves the effective group access for groupID.
func (k KeyPermissions) AccessFor(groupID int64) GroupAccess {
	if a, ok := k.GroupAccess[groupID]; ok {
		return a
	}
	return k.DefaultGroupAccess
}

// Group is the locally stored metadata of a shared group library.
type Group struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Version         int64  `json:"version"`
	CanEditMetadata bool   `json:"can_edit_metadata"`
	CanEditFiles    bool   `json:"can_edit_files"`
	LocalOnly       bool   `json:"local_only"`
}

// DownloadBatch is one chunk of object keys to fetch from the backend and
// write to the local store. Version is the library version the keys were
// reported at; a mismatch during download means the library moved on.
type DownloadBatch struct {
	Lib     LibraryID  `json:"library"`
	Object  SyncObject `json:"object"`
	Keys    []string   `json:"keys"`
	Version int64      `json:"version"`
}

// DownloadBatchSize is the maximum number of keys per download batch.
const DownloadBatchSize = 50

// WriteBatch is one chunk of locally changed objects to submit. Parameters
// are the JSON representations the backend expects. Version is the local
// library version used for optimistic concurrency.
type WriteBatch struct {
	Lib        LibraryID         `json:"library"`
	Object     SyncObject        `json:"object"`
	Version    int64             `json:"version"`
	Parameters []json.RawMessage `json:"parameters"`
	Keys       []string          `json:"keys"`
}

// WriteBatchSize is the maximum number of objects per submission batch.
const WriteBatchSize = 50

// DeleteBatch is one chunk of locally deleted object keys to submit.
type DeleteBatch struct {
	Lib     LibraryID  `json:"library"`
	Object  SyncObject `json:"object"`
	Version int64      `json:"version"`
	Keys    []string   `json:"keys"`
}

// AttachmentUpload describes one pending attachment file upload.
type AttachmentUpload struct {
	Lib      LibraryID `json:"library"`
	Key      string    `json:"key"`
	Filename string    `json:"filename"`
	MD5      string    `json:"md5"`
	Mtime    int64     `json:"mtime"`
	Size     int64     `json:"size"`
}

// Deletions lists the object keys deleted remotely since some version.
type Deletions struct {
	Collections []string `json:"collections"`
	Items       []string `json:"items"`
	Searches    []string `json:"searches"`
	Tags        []string `json:"tags"`
}

// IsEmpty reports whether no deletions were returned.
func (d Deletions) IsEmpty() bool {
	return len(d.Collections) == 0 && len(d.Items) == 0 && len(d.Searches) == 0 && len(d.Tags) == 0
}

// RemoteObject is one object payload fetched from the backend, kept raw for
// the store to decode and persist.
type RemoteObject struct {
	Key     string          `json:"key"`
	Version int64           `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// UpdatesResponse is the backend's per-object outcome of a write submission.
type UpdatesResponse struct {
	Successful map[string]string            `json:"successful"`
	Unchanged  map[string]string            `json:"unchanged"`
	Failed     map[string]SubmissionFailure `json:"failed"`
}

// SubmissionFailure is one failed object of a write submission.
type SubmissionFailure struct {
	Key     string `json:"key"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}
