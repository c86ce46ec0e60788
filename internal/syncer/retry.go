package syncer

import "github.com/MKhiriev/go-library-sync/models"

// RetryPolicy decides whether a finished or aborted sync warrants a new,
// narrower attempt. It is pure: all inputs arrive as arguments.
type RetryPolicy struct {
	maxRetries int
}

func NewRetryPolicy(maxRetries int) *RetryPolicy {
	return &RetryPolicy{maxRetries: maxRetries}
}

// AfterAbort maps a single fatal error onto a retry directive, or nil. Only
// the upload-object-conflict and cant-submit-attachment-item kinds re-arm a
// sync, and only while the attempt counter is below the retry cap. The
// cant-submit directive carries one FixUpload per affected attachment key.
func (p *RetryPolicy) AfterAbort(fatal models.Fatal, kind models.SyncKind, scope models.LibraryScope, attempt int) *models.RetryDirective {
	if attempt >= p.maxRetries {
		return nil
	}

	switch fatal.Kind {
	case models.FatalUploadObjectConflict:
		return &models.RetryDirective{
			Kind:      models.FullSync,
			Scope:     models.AllLibraries(),
			Attempt:   attempt + 1,
			RetryOnce: true,
		}
	case models.FatalCantSubmitAttachmentItem:
		fixes := make([]models.Action, 0, len(fatal.Data.Keys))
		for _, key := range fatal.Data.Keys {
			fixes = append(fixes, models.FixUpload{Lib: fatal.Data.Lib, Key: key})
		}
		return &models.RetryDirective{
			Kind:    kind,
			Scope:   scope,
			Attempt: attempt + 1,
			Fixes:   fixes,
		}
	default:
		return nil
	}
}

// AfterFinish scans the accumulated non-fatal errors of a finished sync.
// Version mismatches and precondition failures add their library to the
// retry set and downgrade the kind to prioritize-downloads; annotation
// splits add their library without changing the kind. Everything else stays
// in the reported error list without triggering a retry.
func (p *RetryPolicy) AfterFinish(errs []models.SyncError, kind models.SyncKind, attempt int) *models.RetryDirective {
	if attempt >= p.maxRetries {
		return nil
	}

	var (
		libs     []models.LibraryID
		seen     = make(map[models.LibraryID]struct{})
		nextKind = kind
	)
	add := func(lib models.LibraryID) {
		if _, ok := seen[lib]; ok {
			return
		}
		seen[lib] = struct{}{}
		libs = append(libs, lib)
	}

	for _, err := range errs {
		nonFatal, ok := err.(models.NonFatal)
		if !ok {
			continue
		}

		switch nonFatal.Kind {
		case models.NonFatalVersionMismatch, models.NonFatalPreconditionFailed:
			add(nonFatal.Lib)
			nextKind = models.PrioritizeDownloadsSync
		case models.NonFatalAnnotationDidSplit:
			add(nonFatal.Lib)
		}
	}

	if len(libs) == 0 {
		return nil
	}

	return &models.RetryDirective{
		Kind:    nextKind,
		Scope:   models.SpecificLibraries(libs...),
		Attempt: attempt + 1,
	}
}
