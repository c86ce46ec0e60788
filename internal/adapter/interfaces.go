// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for the versioned REST API of
// the library-sharing backend.
//
// The primary abstraction is [ServerAdapter], which decouples the sync
// engine from the wire protocol. Versioned-protocol headers
// (If-Modified-Since-Version, If-Unmodified-Since-Version on requests,
// Last-Modified-Version on responses) are handled here; non-2xx responses
// surface as [*ResponseError] carrying the raw status, body and version so
// the sync error classifier can map them without transport knowledge.
package adapter

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/go-library-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the backend.
// Implementations are responsible for serialisation, authentication header
// management, and surfacing non-2xx responses as [*ResponseError].
type ServerAdapter interface {
	// UserID returns the user identity extracted from the configured API
	// key's claims. Available without a server round-trip.
	UserID() int64

	// KeyPermissions fetches the access permissions of the configured API
	// key. Always the first call of a sync.
	KeyPermissions(ctx context.Context) (models.KeyPermissions, error)

	// GroupVersions fetches the version of every group library readable by
	// userID, keyed by group id.
	GroupVersions(ctx context.Context, userID int64) (map[int64]int64, error)

	// Group fetches the metadata of a single group. The returned version is
	// the Last-Modified-Version of the response.
	Group(ctx context.Context, groupID int64) (models.Group, int64, error)

	// ObjectVersions fetches the versions of all objects of one type changed
	// in lib since the given version, keyed by object key. When
	// checkRemote is false the request carries If-Modified-Since-Version and
	// an unchanged library yields a 304 [*ResponseError].
	ObjectVersions(ctx context.Context, lib models.LibraryID, object models.SyncObject, since int64, checkRemote bool) (map[string]int64, int64, error)

	// Deletions fetches the keys deleted in lib since the given version.
	Deletions(ctx context.Context, lib models.LibraryID, since int64) (models.Deletions, int64, error)

	// Settings fetches the library settings changed since the given version
	// as opaque JSON blobs keyed by setting name.
	Settings(ctx context.Context, lib models.LibraryID, since int64) (map[string]json.RawMessage, int64, error)

	// Objects fetches full object payloads for the given keys.
	Objects(ctx context.Context, lib models.LibraryID, object models.SyncObject, keys []string) ([]models.RemoteObject, int64, error)

	// SubmitUpdates pushes locally changed objects. The request carries
	// If-Unmodified-Since-Version: version; a concurrent remote change
	// yields a 412 [*ResponseError]. Returns the per-object outcome and the
	// new library version.
	SubmitUpdates(ctx context.Context, lib models.LibraryID, object models.SyncObject, version int64, params []json.RawMessage) (models.UpdatesResponse, int64, error)

	// SubmitDeletions pushes locally deleted object keys. Same optimistic
	// concurrency contract as SubmitUpdates. Returns the new library
	// version.
	SubmitDeletions(ctx context.Context, lib models.LibraryID, object models.SyncObject, keys []string, version int64) (int64, error)

	// UploadAttachment authorizes, transfers and registers one attachment
	// file. Returns a [*models.SyncActionError] with kind
	// attachmentAlreadyUploaded when the backend already has the file, and
	// kind attachmentMissing when the local file cannot be read.
	UploadAttachment(ctx context.Context, upload models.AttachmentUpload) error

	// DeleteWebDavFiles removes attachment files from the configured WebDAV
	// storage. Returns the keys whose deletion failed.
	DeleteWebDavFiles(ctx context.Context, lib models.LibraryID, keys []string) ([]string, error)
}
