// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncer

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-library-sync/internal/adapter"
	"github.com/MKhiriev/go-library-sync/internal/store"
	"github.com/MKhiriev/go-library-sync/models"
)

// ErrInvalidSchema marks a downloaded payload that failed schema validation.
// Wrap it so [Classify] maps the failure to the schema non-fatal kind.
var ErrInvalidSchema = errors.New("object schema validation failed")

// Classify maps a raw failure plus context into a [models.SyncError].
//
// Precedence: an error that already is a SyncError passes through unchanged;
// structured action errors map 1:1; local database failures are fatal (the
// engine cannot continue without a working store); schema and parse failures
// are non-fatal; backend responses classify by HTTP status; anything left is
// the unknown non-fatal kind.
func Classify(err error, data models.ErrorData) models.SyncError {
	var fatal models.Fatal
	if errors.As(err, &fatal) {
		return fatal
	}
	var nonFatal models.NonFatal
	if errors.As(err, &nonFatal) {
		return nonFatal
	}

	var actionErr *models.SyncActionError
	if errors.As(err, &actionErr) {
		return classifyActionError(actionErr, data)
	}

	if isDatabaseError(err) {
		return models.Fatal{Kind: models.FatalDBError, Data: data, Message: err.Error()}
	}

	if errors.Is(err, ErrInvalidSchema) {
		return models.NonFatal{Kind: models.NonFatalSchema, Lib: data.Lib, Message: err.Error(), Data: data}
	}
	if isParseError(err) {
		return models.NonFatal{Kind: models.NonFatalParsing, Lib: data.Lib, Message: err.Error(), Data: data}
	}

	var respErr *adapter.ResponseError
	if errors.As(err, &respErr) {
		return classifyResponse(respErr, data)
	}

	return models.NonFatal{Kind: models.NonFatalUnknown, Lib: data.Lib, Message: err.Error(), Data: data}
}

func classifyActionError(err *models.SyncActionError, data models.ErrorData) models.SyncError {
	switch err.Kind {
	case models.ActionObjectPreconditionError:
		return models.Fatal{Kind: models.FatalUploadObjectConflict, Data: data, Message: err.Error()}
	case models.ActionItemNotSubmitted:
		// the retry directive derives fix-upload actions from Data
		if len(data.Keys) == 0 && err.Key != "" {
			data.Keys = []string{err.Key}
		}
		if data.Lib == (models.LibraryID{}) {
			data.Lib = err.Lib
		}
		return models.Fatal{Kind: models.FatalCantSubmitAttachmentItem, Data: data, Message: err.Error()}
	case models.ActionAttachmentMissing:
		return models.NonFatal{Kind: models.NonFatalAttachmentMissing, Lib: err.Lib, Message: err.Error(), Data: data}
	case models.ActionAnnotationNeededSplit:
		return models.NonFatal{Kind: models.NonFatalAnnotationDidSplit, Lib: err.Lib, Message: err.Error(), Data: data}
	case models.ActionSubmitUpdateFailures,
		models.ActionAuthorizationFailed,
		models.ActionAttachmentAlreadyUploaded:
		return models.NonFatal{Kind: models.NonFatalUnknown, Lib: err.Lib, Message: err.Error(), Data: data}
	default:
		return models.NonFatal{Kind: models.NonFatalUnknown, Lib: err.Lib, Message: err.Error(), Data: data}
	}
}

func classifyResponse(err *adapter.ResponseError, data models.ErrorData) models.SyncError {
	switch err.StatusCode {
	case http.StatusNotModified:
		return models.NonFatal{Kind: models.NonFatalUnchanged, Lib: data.Lib, Version: err.Version}
	case http.StatusForbidden:
		return models.Fatal{Kind: models.FatalForbidden, Data: data, Status: err.StatusCode, Response: err.Body}
	case http.StatusPreconditionFailed:
		return models.NonFatal{Kind: models.NonFatalPreconditionFailed, Lib: data.Lib, Version: err.Version, Status: err.StatusCode, Response: err.Body, Data: data}
	case http.StatusRequestEntityTooLarge:
		return models.NonFatal{Kind: models.NonFatalQuotaLimit, Lib: data.Lib, Status: err.StatusCode, Response: err.Body, Data: data}
	case http.StatusServiceUnavailable:
		return models.Fatal{Kind: models.FatalServiceUnavailable, Data: data, Status: err.StatusCode, Response: err.Body}
	case http.StatusInsufficientStorage:
		return models.NonFatal{Kind: models.NonFatalInsufficientSpace, Lib: data.Lib, Status: err.StatusCode, Response: err.Body, Data: data}
	}

	// remaining client errors are unrecoverable within this sync, remaining
	// server errors are assumed transient
	if err.StatusCode >= http.StatusBadRequest && err.StatusCode < http.StatusInternalServerError {
		return models.Fatal{Kind: models.FatalAPIError, Data: data, Status: err.StatusCode, Response: err.Body}
	}

	return models.NonFatal{Kind: models.NonFatalAPIError, Lib: data.Lib, Status: err.StatusCode, Response: err.Body, Data: data}
}

func isDatabaseError(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return true
	}

	return errors.Is(err, store.ErrBuildingSQLQuery) ||
		errors.Is(err, store.ErrBeginningTransaction) ||
		errors.Is(err, store.ErrCommitingTransaction) ||
		errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, sql.ErrTxDone) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, driver.ErrBadConn)
}

func isParseError(err error) bool {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr)
}
