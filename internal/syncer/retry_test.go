// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-library-sync/models"
)

// ── AfterAbort ───────────────────────────────────────────────────────────────

func TestRetryPolicy_AfterAbort_UploadObjectConflict(t *testing.T) {
	policy := NewRetryPolicy(3)

	directive := policy.AfterAbort(
		models.Fatal{Kind: models.FatalUploadObjectConflict},
		models.NormalSync,
		models.SpecificLibraries(models.UserLibrary(1)),
		0,
	)

	require.NotNil(t, directive)
	assert.Equal(t, models.FullSync, directive.Kind)
	assert.True(t, directive.Scope.All)
	assert.True(t, directive.RetryOnce)
	assert.Equal(t, 1, directive.Attempt)
}

func TestRetryPolicy_AfterAbort_CantSubmitAttachmentItem(t *testing.T) {
	policy := NewRetryPolicy(3)
	lib := models.GroupLibrary(42)
	scope := models.SpecificLibraries(lib)

	directive := policy.AfterAbort(
		models.Fatal{
			Kind: models.FatalCantSubmitAttachmentItem,
			Data: models.ErrorData{Keys: []string{"K1", "K2"}, Lib: lib},
		},
		models.PrioritizeDownloadsSync,
		scope,
		1,
	)

	require.NotNil(t, directive)
	assert.Equal(t, models.PrioritizeDownloadsSync, directive.Kind)
	assert.Equal(t, scope, directive.Scope)
	assert.False(t, directive.RetryOnce)
	assert.Equal(t, 2, directive.Attempt)

	// the re-armed sync must reset the failed attachments before it runs
	assert.Equal(t, []models.Action{
		models.FixUpload{Lib: lib, Key: "K1"},
		models.FixUpload{Lib: lib, Key: "K2"},
	}, directive.Fixes)
}

func TestRetryPolicy_AfterAbort_NoRetryForOtherFatals(t *testing.T) {
	policy := NewRetryPolicy(3)

	for _, kind := range []models.FatalKind{
		models.FatalDBError,
		models.FatalForbidden,
		models.FatalServiceUnavailable,
		models.FatalAPIError,
		models.FatalCancelled,
	} {
		directive := policy.AfterAbort(models.Fatal{Kind: kind}, models.NormalSync, models.AllLibraries(), 0)
		assert.Nil(t, directive, "kind %s must not re-arm", kind)
	}
}

func TestRetryPolicy_AfterAbort_RespectsCap(t *testing.T) {
	policy := NewRetryPolicy(2)

	directive := policy.AfterAbort(
		models.Fatal{Kind: models.FatalUploadObjectConflict},
		models.NormalSync,
		models.AllLibraries(),
		2,
	)
	assert.Nil(t, directive)
}

// ── AfterFinish ──────────────────────────────────────────────────────────────

func TestRetryPolicy_AfterFinish_RetriesOnlyMismatchedLibraries(t *testing.T) {
	policy := NewRetryPolicy(3)
	libA := models.UserLibrary(1)
	libB := models.GroupLibrary(42)

	errs := []models.SyncError{
		models.NonFatal{Kind: models.NonFatalVersionMismatch, Lib: libA, Version: 12},
		models.NonFatal{Kind: models.NonFatalSchema, Lib: libB},
	}

	directive := policy.AfterFinish(errs, models.NormalSync, 0)

	require.NotNil(t, directive)
	assert.Equal(t, models.PrioritizeDownloadsSync, directive.Kind)
	assert.Equal(t, []models.LibraryID{libA}, directive.Scope.Libraries)
	assert.Equal(t, 1, directive.Attempt)
}

func TestRetryPolicy_AfterFinish_AnnotationSplitKeepsKind(t *testing.T) {
	policy := NewRetryPolicy(3)
	lib := models.UserLibrary(1)

	errs := []models.SyncError{
		models.NonFatal{Kind: models.NonFatalAnnotationDidSplit, Lib: lib},
	}

	directive := policy.AfterFinish(errs, models.NormalSync, 0)

	require.NotNil(t, directive)
	assert.Equal(t, models.NormalSync, directive.Kind)
	assert.Equal(t, []models.LibraryID{lib}, directive.Scope.Libraries)
}

func TestRetryPolicy_AfterFinish_DeduplicatesLibraries(t *testing.T) {
	policy := NewRetryPolicy(3)
	lib := models.UserLibrary(1)

	errs := []models.SyncError{
		models.NonFatal{Kind: models.NonFatalVersionMismatch, Lib: lib, Version: 10},
		models.NonFatal{Kind: models.NonFatalPreconditionFailed, Lib: lib, Version: 11},
	}

	directive := policy.AfterFinish(errs, models.NormalSync, 0)

	require.NotNil(t, directive)
	assert.Equal(t, []models.LibraryID{lib}, directive.Scope.Libraries)
}

func TestRetryPolicy_AfterFinish_NothingToRetry(t *testing.T) {
	policy := NewRetryPolicy(3)

	assert.Nil(t, policy.AfterFinish(nil, models.NormalSync, 0))

	errs := []models.SyncError{
		models.NonFatal{Kind: models.NonFatalQuotaLimit, Lib: models.UserLibrary(1)},
		models.NonFatal{Kind: models.NonFatalUnknown},
	}
	assert.Nil(t, policy.AfterFinish(errs, models.NormalSync, 0))
}

func TestRetryPolicy_AfterFinish_RespectsCap(t *testing.T) {
	policy := NewRetryPolicy(1)

	errs := []models.SyncError{
		models.NonFatal{Kind: models.NonFatalVersionMismatch, Lib: models.UserLibrary(1), Version: 5},
	}
	assert.Nil(t, policy.AfterFinish(errs, models.NormalSync, 1))
}
