// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// SyncError is the classified outcome of a failed sync step. It is a closed
// sum of Fatal and NonFatal: a Fatal error aborts the whole sync, a NonFatal
// error is recorded and the sync continues in a possibly reduced scope.
type SyncError interface {
	error
	isSyncError()
}

// FatalKind enumerates the errors that terminate the entire sync.
type FatalKind string

const (
	FatalPermissionLoadFailed     FatalKind = "permissionLoadingFailed"
	FatalAllLibrariesFetchFailed  FatalKind = "allLibrariesFetchFailed"
	FatalGroupSyncFailed          FatalKind = "groupSyncFailed"
	FatalUploadObjectConflict     FatalKind = "uploadObjectConflict"
	FatalCantSubmitAttachmentItem FatalKind = "cantSubmitAttachmentItem"
	FatalDBError                  FatalKind = "dbError"
	FatalServiceUnavailable       FatalKind = "serviceUnavailable"
	FatalForbidden                FatalKind = "forbidden"
	FatalAPIError                 FatalKind = "apiError"
	FatalCancelled                FatalKind = "cancelled"
)

// Fatal terminates the whole sync. Data is populated for the kinds that feed
// retry decisions (upload-object-conflict, cant-submit-attachment-item);
// Status/Response are populated for apiError.
type Fatal struct {
	Kind     FatalKind `json:"kind"`
	Data     ErrorData `json:"data,omitempty"`
	Status   int       `json:"status,omitempty"`
	Response string    `json:"response,omitempty"`
	Message  string    `json:"message,omitempty"`
}

func (f Fatal) Error() string {
	if f.Message != "" {
		return fmt.Sprintf("fatal sync error %s: %s", f.Kind, f.Message)
	}
	if f.Status != 0 {
		return fmt.Sprintf("fatal sync error %s: http %d: %s", f.Kind, f.Status, f.Response)
	}
	return fmt.Sprintf("fatal sync error %s", f.Kind)
}

func (Fatal) isSyncError() {}

// NonFatalKind enumerates the errors that are recorded without aborting.
type NonFatalKind string

const (
	NonFatalVersionMismatch      NonFatalKind = "versionMismatch"
	NonFatalUnchanged            NonFatalKind = "unchanged"
	NonFatalPreconditionFailed   NonFatalKind = "preconditionFailed"
	NonFatalQuotaLimit           NonFatalKind = "quotaLimit"
	NonFatalInsufficientSpace    NonFatalKind = "insufficientSpace"
	NonFatalAttachmentMissing    NonFatalKind = "attachmentMissing"
	NonFatalAnnotationDidSplit   NonFatalKind = "annotationDidSplit"
	NonFatalSchema               NonFatalKind = "schema"
	NonFatalParsing              NonFatalKind = "parsing"
	NonFatalAPIError             NonFatalKind = "apiError"
	NonFatalUnknown              NonFatalKind = "unknown"
	NonFatalWebDavDeletion       NonFatalKind = "webDavDeletion"
	NonFatalWebDavDeletionFailed NonFatalKind = "webDavDeletionFailed"
)

// NonFatal is recorded in the session error list and the sync continues.
// Library is populated for the library-scoped kinds (version-mismatch,
// precondition-failed, quota-limit, annotation-did-split); Version carries
// the Last-Modified-Version of an unchanged response.
type NonFatal struct {
	Kind     NonFatalKind `json:"kind"`
	Lib      LibraryID    `json:"library,omitempty"`
	Version  int64        `json:"version,omitempty"`
	Status   int          `json:"status,omitempty"`
	Response string       `json:"response,omitempty"`
	Message  string       `json:"message,omitempty"`
	Data     ErrorData    `json:"data,omitempty"`
}

func (n NonFatal) Error() string {
	if n.Message != "" {
		return fmt.Sprintf("sync error %s: %s", n.Kind, n.Message)
	}
	if n.Status != 0 {
		return fmt.Sprintf("sync error %s: http %d: %s", n.Kind, n.Status, n.Response)
	}
	return fmt.Sprintf("sync error %s", n.Kind)
}

func (NonFatal) isSyncError() {}

// ErrorData describes the objects a sync error refers to. It is carried for
// diagnostics and for constructing follow-up actions.
type ErrorData struct {
	Object SyncObject `json:"object,omitempty"`
	Keys   []string   `json:"keys,omitempty"`
	Lib    LibraryID  `json:"library,omitempty"`
}

// ActionErrorKind enumerates structured failures reported by the attachment
// and submission subsystems. The classifier maps each kind 1:1 onto a
// SyncError.
type ActionErrorKind string

const (
	ActionAttachmentMissing         ActionErrorKind = "attachmentMissing"
	ActionAnnotationNeededSplit     ActionErrorKind = "annotationNeededSplit"
	ActionSubmitUpdateFailures      ActionErrorKind = "submitUpdateFailures"
	ActionAuthorizationFailed       ActionErrorKind = "authorizationFailed"
	ActionAttachmentAlreadyUploaded ActionErrorKind = "attachmentAlreadyUploaded"
	ActionItemNotSubmitted          ActionErrorKind = "itemNotSubmitted"
	ActionObjectPreconditionError   ActionErrorKind = "objectPreconditionError"
)

// SyncActionError is a structured failure surfaced by an action's
// collaborator (attachment transport, submission handling) before
// classification.
type SyncActionError struct {
	Kind    ActionErrorKind
	Lib     LibraryID
	Key     string
	Message string
}

func (e *SyncActionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("sync action error %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("sync action error %s", e.Kind)
}
