// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models contains the domain types shared between the sync engine,
// the server adapter, and the local store: library identifiers, sync actions,
// the fatal/non-fatal error taxonomy, conflicts and their resolutions, and
// the batch payloads moved between the backend and the local database.
package models

import "fmt"

// LibraryKind distinguishes the user's personal library from shared group
// libraries. Each library carries its own monotonically increasing version
// counter on the backend.
type LibraryKind string

const (
	// UserLibraryKind is the personal library owned by the authenticated user.
	UserLibraryKind LibraryKind = "user"
	// GroupLibraryKind is a shared group library.
	GroupLibraryKind LibraryKind = "group"
)

// LibraryID identifies a single library: the user's own library or a group.
type LibraryID struct {
	Kind LibraryKind `json:"kind"`
	ID   int64       `json:"id"`
}

// UserLibrary returns the identifier of the personal library of userID.
func UserLibrary(userID int64) LibraryID {
	return LibraryID{Kind: UserLibraryKind, ID: userID}
}

// GroupLibrary returns the identifier of the group library groupID.
func GroupLibrary(groupID int64) LibraryID {
	return LibraryID{Kind: GroupLibraryKind, ID: groupID}
}

// IsGroup reports whether the library is a shared group library.
func (l LibraryID) IsGroup() bool {
	return l.Kind == GroupLibraryKind
}

// APIPath returns the URL prefix of the library on the backend,
// e.g. "users/12345" or "groups/42".
func (l LibraryID) APIPath() string {
	if l.IsGroup() {
		return fmt.Sprintf("groups/%d", l.ID)
	}
	return fmt.Sprintf("users/%d", l.ID)
}

func (l LibraryID) String() string {
	return fmt.Sprintf("%s/%d", l.Kind, l.ID)
}

// SyncObject is the kind of object tracked by per-library version counters.
type SyncObject string

const (
	CollectionObject SyncObject = "collection"
	SearchObject     SyncObject = "search"
	ItemObject       SyncObject = "item"
	TrashObject      SyncObject = "trash"
	SettingsObject   SyncObject = "settings"
)

// SyncKind is the scope/strategy of one sync attempt.
type SyncKind string

const (
	// NormalSync fetches deltas since the locally stored versions.
	NormalSync SyncKind = "normal"
	// FullSync ignores stored versions and re-checks every object.
	FullSync SyncKind = "full"
	// KeysOnlySync only reloads key permissions, no library work.
	KeysOnlySync SyncKind = "keysOnly"
	// PrioritizeDownloadsSync skips local submissions and downloads first.
	// Used by retries after version-mismatch and precondition failures.
	PrioritizeDownloadsSync SyncKind = "prioritizeDownloads"
	// CollectionsOnlySync restricts the sync to collection objects.
	CollectionsOnlySync SyncKind = "collectionsOnly"
	// IgnoreIndividualDelaysSync behaves like NormalSync but bypasses
	// per-library scheduling delays.
	IgnoreIndividualDelaysSync SyncKind = "ignoreIndividualDelays"
)

// LibraryScope selects which libraries one sync attempt covers.
type LibraryScope struct {
	All       bool        `json:"all"`
	Libraries []LibraryID `json:"libraries,omitempty"`
}

// AllLibraries is the scope covering every readable library.
func AllLibraries() LibraryScope {
	return LibraryScope{All: true}
}

// SpecificLibraries is the scope covering exactly the given libraries.
func SpecificLibraries(ids ...LibraryID) LibraryScope {
	return LibraryScope{Libraries: ids}
}

// RetryDirective instructs the caller to start a new, narrower sync attempt.
// Attempt carries the incremented retry counter of the finished sync. Fixes
// are repair actions the re-armed sync must run before its seeded queue,
// e.g. FixUpload for attachments whose item could not be submitted.
type RetryDirective struct {
	Kind      SyncKind     `json:"kind"`
	Scope     LibraryScope `json:"scope"`
	Attempt   int          `json:"attempt"`
	RetryOnce bool         `json:"retry_once"`
	Fixes     []Action     `json:"-"`
}
