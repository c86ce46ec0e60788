package syncer

import (
	"context"
	"errors"
	"slices"
	"sync"

	"golang.org/x/exp/maps"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-library-sync/internal/adapter"
	"github.com/MKhiriev/go-library-sync/internal/config"
	"github.com/MKhiriev/go-library-sync/internal/logger"
	"github.com/MKhiriev/go-library-sync/internal/store"
	"github.com/MKhiriev/go-library-sync/models"
)

// Engine owns the action queue and the sync lifecycle. One sync session runs
// at a time; actions execute strictly sequentially on the session's run
// loop. External entries (Cancel, EnqueueResolution) are marshalled onto the
// loop through the engine mutex.
type Engine struct {
	adapter adapter.ServerAdapter
	storage store.SyncStorage
	creator ActionsCreator
	retry   *RetryPolicy
	logger  *logger.Logger

	conflicts chan models.Conflict
	reports   chan Report

	mu   sync.Mutex
	cond *sync.Cond
	// session is non-nil while a sync is running. Only the run loop mutates
	// its queue and counters; external entries touch it under mu.
	session *session
	// generation invalidates in-flight continuations of cancelled sessions.
	generation uint64
}

// session is the mutable state of one running sync.
type session struct {
	id      uuid.UUID
	kind    models.SyncKind
	scope   models.LibraryScope
	attempt int

	queue []models.Action
	// awaiting parks the run loop while a published conflict waits for its
	// resolution.
	awaiting bool

	currentLib          *models.LibraryID
	lastReturnedVersion *int64

	permissions models.KeyPermissions
	errs        []models.SyncError
	accounting  uploadAccounting
}

// NewEngine wires the engine to its collaborators. cfg supplies the retry
// cap; the backoff schedule between attempts is owned by the scheduler, not
// the engine.
func NewEngine(serverAdapter adapter.ServerAdapter, storage store.SyncStorage, creator ActionsCreator, cfg config.ClientSync, log *logger.Logger) *Engine {
	e := &Engine{
		adapter:   serverAdapter,
		storage:   storage,
		creator:   creator,
		retry:     NewRetryPolicy(cfg.MaxRetries),
		logger:    log,
		conflicts: make(chan models.Conflict, 8),
		reports:   make(chan Report, 8),
	}
	e.cond = sync.NewCond(&e.mu)
	return e
}

// Conflicts is the channel the engine publishes detected conflicts on.
func (e *Engine) Conflicts() <-chan models.Conflict { return e.conflicts }

// Reports is the channel the engine publishes terminal sync reports on.
func (e *Engine) Reports() <-chan Report { return e.reports }

// InProgress reports whether a sync session is currently running.
func (e *Engine) InProgress() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session != nil
}

// Start begins a new sync of the given kind and scope. It is a no-op
// returning false while a sync is already running. attempt carries the retry
// counter of a re-armed sync, zero for a fresh one.
func (e *Engine) Start(ctx context.Context, kind models.SyncKind, scope models.LibraryScope, attempt int) bool {
	return e.start(ctx, kind, scope, attempt, nil)
}

// StartRetry begins the re-armed sync a retry directive describes. The
// directive's fix actions run before the seeded queue, so repairs like
// resetting a failed attachment's upload state land before the new attempt
// derives its pending work.
func (e *Engine) StartRetry(ctx context.Context, directive models.RetryDirective) bool {
	return e.start(ctx, directive.Kind, directive.Scope, directive.Attempt, directive.Fixes)
}

func (e *Engine) start(ctx context.Context, kind models.SyncKind, scope models.LibraryScope, attempt int, prelude []models.Action) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		e.logger.Warn().Msg("sync already in progress, ignoring start")
		return false
	}

	queue := append(slices.Clone(prelude), e.creator.CreateInitialActions(kind, scope, e.adapter.UserID())...)
	s := &session{
		id:      uuid.New(),
		kind:    kind,
		scope:   scope,
		attempt: attempt,
		queue:   queue,
	}
	e.session = s
	gen := e.generation

	e.logger.Info().
		Str("session", s.id.String()).
		Str("kind", string(kind)).
		Int("attempt", attempt).
		Msg("starting sync")

	go e.run(ctx, s, gen)
	return true
}

// Cancel tears down the running session immediately and reports the
// cancelled terminal status. Any in-flight action's result is discarded.
// No-op when nothing is running.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil {
		return
	}

	e.logger.Info().Str("session", s.id.String()).Msg("cancelling sync")

	e.generation++
	e.session = nil
	e.cond.Broadcast()

	e.publishReport(Report{
		Fatal:  &models.Fatal{Kind: models.FatalCancelled},
		Errors: s.errs,
	})
}

// EnqueueResolution is the re-entry point of the conflict bridge: it
// translates the external decision into follow-up actions spliced at the
// front of the queue and resumes draining. Calling it while no conflict is
// pending only inserts the actions; sequencing is the caller's
// responsibility.
func (e *Engine) EnqueueResolution(resolution models.ConflictResolution) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil {
		return
	}

	actions := resolutionActions(resolution)
	s.queue = append(actions, s.queue...)
	s.awaiting = false
	e.cond.Broadcast()
}

// run drains the session queue one action at a time. gen pins the loop to
// its session: a cancellation bumps the engine generation, so a continuation
// returning from an in-flight call notices and exits without touching state.
func (e *Engine) run(ctx context.Context, s *session, gen uint64) {
	for {
		e.mu.Lock()
		if e.session != s || gen != e.generation {
			e.mu.Unlock()
			return
		}

		for s.awaiting {
			e.cond.Wait()
			if e.session != s || gen != e.generation {
				e.mu.Unlock()
				return
			}
		}

		if len(s.queue) == 0 {
			e.finishLocked(s)
			e.mu.Unlock()
			return
		}

		action := s.queue[0]
		s.queue = s.queue[1:]

		// version tracking is only valid within a run of same-library actions
		if lib, ok := action.Library(); ok {
			if s.currentLib == nil || *s.currentLib != lib {
				libCopy := lib
				s.currentLib = &libCopy
				s.lastReturnedVersion = nil
			}
		}

		// queue-mutating actions never leave the lock
		if remove, ok := action.(models.RemoveActions); ok {
			e.removeAllActionsLocked(s, remove.Lib)
			e.mu.Unlock()
			continue
		}
		e.mu.Unlock()

		result := e.process(ctx, s, action)

		e.mu.Lock()
		if e.session != s || gen != e.generation {
			e.mu.Unlock()
			return
		}
		e.applyLocked(s, result)
		done := e.session == nil
		e.mu.Unlock()

		if done {
			return
		}
	}
}

// stepResult is what processing one action hands back to the run loop.
type stepResult struct {
	// followUps are spliced into the queue at index (negative appends).
	followUps []models.Action
	index     int

	// err is the raw failure to classify; errData is its context.
	err     error
	errData models.ErrorData
	// additional runs before the rest of the queue when err classifies to a
	// recorded non-fatal kind.
	additional models.Action

	// fatal bypasses classification.
	fatal *models.Fatal

	// recorded are pre-classified non-fatal errors appended to the session.
	recorded []models.SyncError

	// conflict parks the loop until a resolution is enqueued.
	conflict models.Conflict
}

func proceed() stepResult { return stepResult{index: -1} }

func (e *Engine) applyLocked(s *session, result stepResult) {
	if result.fatal != nil {
		e.abortLocked(s, *result.fatal)
		return
	}

	if result.err != nil {
		switch classified := Classify(result.err, result.errData).(type) {
		case models.Fatal:
			e.abortLocked(s, classified)
			return
		case models.NonFatal:
			e.handleNonFatalLocked(s, classified, result.additional)
		}
	}

	s.errs = append(s.errs, result.recorded...)

	if result.conflict != nil {
		s.awaiting = true
		e.publishConflict(result.conflict)
	}

	if len(result.followUps) > 0 {
		e.enqueueLocked(s, result.followUps, result.index)
	}
}

// enqueueLocked splices actions into the queue. index 0 runs them before the
// rest; a negative index appends.
func (e *Engine) enqueueLocked(s *session, actions []models.Action, index int) {
	if index < 0 || index >= len(s.queue) {
		s.queue = append(s.queue, actions...)
		return
	}
	s.queue = slices.Insert(s.queue, index, actions...)
}

// handleNonFatalLocked implements the non-fatal dispatch table: library
// invalidation for version mismatches and precondition failures, queue
// rewriting for unchanged responses, pass-through recording for the rest.
func (e *Engine) handleNonFatalLocked(s *session, nonFatal models.NonFatal, additional models.Action) {
	switch nonFatal.Kind {
	case models.NonFatalVersionMismatch, models.NonFatalPreconditionFailed:
		// remaining same-library work operates on invalidated assumptions
		e.removeAllActionsLocked(s, nonFatal.Lib)
		s.errs = append(s.errs, nonFatal)

	case models.NonFatalUnchanged:
		if nonFatal.Version == 0 {
			if additional != nil {
				e.enqueueLocked(s, []models.Action{additional}, 0)
			}
			return
		}
		version := nonFatal.Version
		s.lastReturnedVersion = &version
		if s.kind != models.FullSync {
			e.rewriteQueueForUnchangedLocked(s, nonFatal.Lib, version)
		}

	case models.NonFatalQuotaLimit:
		// unhandled by the engine: the storage-quota surface owns the
		// reaction, the error is only recorded
		s.errs = append(s.errs, nonFatal)

	default:
		s.errs = append(s.errs, nonFatal)
		if additional != nil {
			e.enqueueLocked(s, []models.Action{additional}, 0)
		}
	}
}

// rewriteQueueForUnchangedLocked downgrades queued same-library version
// checks against the returned version and drops actions the unchanged
// response proved redundant.
func (e *Engine) rewriteQueueForUnchangedLocked(s *session, lib models.LibraryID, version int64) {
	rewritten := s.queue[:0]
	for _, action := range s.queue {
		actionLib, scoped := action.Library()
		if !scoped || actionLib != lib {
			rewritten = append(rewritten, action)
			continue
		}

		switch a := action.(type) {
		case models.SyncVersions:
			a.CheckRemote = a.SinceVersion < version
			rewritten = append(rewritten, a)
		case models.SyncSettings:
			if a.SinceVersion != version {
				rewritten = append(rewritten, a)
			}
		case models.SyncDeletions:
			if a.SinceVersion != version {
				rewritten = append(rewritten, a)
			}
		case models.StoreDeletionVersion:
			if a.Version != version {
				rewritten = append(rewritten, a)
			}
		default:
			rewritten = append(rewritten, action)
		}
	}
	s.queue = rewritten
}

// removeAllActionsLocked drops the maximal prefix of queued actions
// belonging to lib. The first action of a different library (or
// library-agnostic) stops the scan.
func (e *Engine) removeAllActionsLocked(s *session, lib models.LibraryID) {
	removed := 0
	for _, action := range s.queue {
		actionLib, scoped := action.Library()
		if !scoped || actionLib != lib {
			break
		}
		removed++
	}
	if removed > 0 {
		e.logger.Debug().
			Str("session", s.id.String()).
			Str("library", lib.String()).
			Int("count", removed).
			Msg("dropping invalidated queued actions")
		s.queue = s.queue[removed:]
	}
}

// finishLocked runs when the queue empties: consult the retry policy, report
// completion, reset the session.
func (e *Engine) finishLocked(s *session) {
	directive := e.retry.AfterFinish(s.errs, s.kind, s.attempt)

	e.logger.Info().
		Str("session", s.id.String()).
		Int("errors", len(s.errs)).
		Bool("retry", directive != nil).
		Msg("sync finished")

	e.publishReport(Report{Errors: s.errs, Retry: directive})
	e.session = nil
}

func (e *Engine) abortLocked(s *session, fatal models.Fatal) {
	directive := e.retry.AfterAbort(fatal, s.kind, s.scope, s.attempt)

	e.logger.Warn().
		Str("session", s.id.String()).
		Str("kind", string(fatal.Kind)).
		Bool("retry", directive != nil).
		Msg("sync aborted")

	e.publishReport(Report{Fatal: &fatal, Errors: s.errs, Retry: directive})
	e.session = nil
}

// process dispatches one action. It runs outside the engine mutex; session
// fields it touches (permissions, accounting, last returned version) are
// owned by the run loop.
func (e *Engine) process(ctx context.Context, s *session, action models.Action) stepResult {
	switch a := action.(type) {
	case models.LoadPermissions:
		return e.processLoadPermissions(ctx, s)
	case models.SyncGroupVersions:
		return e.processSyncGroupVersions(ctx, s)
	case models.SyncGroupToDb:
		return e.processSyncGroupToDb(ctx, a)
	case models.CreateLibraryActions:
		return e.processCreateLibraryActions(ctx, s, a)
	case models.SyncVersions:
		return e.processSyncVersions(ctx, s, a)
	case models.SyncDeletions:
		return e.processSyncDeletions(ctx, s, a)
	case models.SyncSettings:
		return e.processSyncSettings(ctx, s, a)
	case models.SyncBatchesToDb:
		return e.processSyncBatchesToDb(ctx, s, a)
	case models.StoreVersion:
		return e.storageStep(ctx, a.Lib, a.Object, nil, e.storage.SaveObjectVersion(ctx, a.Lib, a.Object, a.Version))
	case models.StoreDeletionVersion:
		return e.storageStep(ctx, a.Lib, "", nil, e.storage.SaveDeletionsVersion(ctx, a.Lib, a.Version))
	case models.SubmitWriteBatch:
		return e.processSubmitWriteBatch(ctx, s, a)
	case models.SubmitDeleteBatch:
		return e.processSubmitDeleteBatch(ctx, s, a)
	case models.CreateUploadActions:
		return e.processCreateUploadActions(ctx, s, a)
	case models.UploadAttachment:
		return e.processUploadAttachment(ctx, s, a)
	case models.PerformDeletions:
		return e.processPerformDeletions(ctx, a)
	case models.RestoreDeletions:
		return e.storageStep(ctx, a.Lib, "", nil, e.storage.RestoreDeletions(ctx, a.Lib, a.Collections, a.Items))
	case models.DeleteGroup:
		return e.storageStep(ctx, models.GroupLibrary(a.GroupID), "", nil, e.storage.DeleteGroup(ctx, a.GroupID))
	case models.MarkGroupAsLocalOnly:
		return e.storageStep(ctx, models.GroupLibrary(a.GroupID), "", nil, e.storage.MarkGroupAsLocalOnly(ctx, a.GroupID))
	case models.RevertLibraryToOriginal:
		return e.storageStep(ctx, a.Lib, "", nil, e.storage.RevertLibraryToOriginal(ctx, a.Lib))
	case models.MarkChangesAsResolved:
		return e.storageStep(ctx, a.Lib, "", nil, e.storage.MarkChangesAsResolved(ctx, a.Lib))
	case models.ResolveGroupMetadataWritePermission:
		return stepResult{index: -1, conflict: models.GroupMetadataWriteDenied{GroupID: a.GroupID, Name: a.Name}}
	case models.ResolveGroupFileWritePermission:
		return stepResult{index: -1, conflict: models.GroupFileWriteDenied{GroupID: a.GroupID, Name: a.Name}}
	case models.ResolveDeletedGroup:
		return stepResult{index: -1, conflict: models.GroupRemoved{GroupID: a.GroupID, Name: a.Name}}
	case models.FixUpload:
		return e.storageStep(ctx, a.Lib, "", []string{a.Key}, e.storage.ResetUploadState(ctx, a.Key))
	case models.PerformWebDavDeletions:
		return e.processPerformWebDavDeletions(ctx, a)
	default:
		e.logger.Warn().Str("session", s.id.String()).Msg("unhandled action variant, skipping")
		return proceed()
	}
}

// storageStep wraps a bare local-store call: any failure classifies to the
// fatal db-error kind.
func (e *Engine) storageStep(_ context.Context, lib models.LibraryID, object models.SyncObject, keys []string, err error) stepResult {
	if err != nil {
		return stepResult{index: -1, err: err, errData: models.ErrorData{Object: object, Keys: keys, Lib: lib}}
	}
	return proceed()
}

func (e *Engine) processLoadPermissions(ctx context.Context, s *session) stepResult {
	perms, err := e.adapter.KeyPermissions(ctx)
	if err != nil {
		return stepResult{index: -1, fatal: &models.Fatal{
			Kind:    models.FatalPermissionLoadFailed,
			Message: err.Error(),
		}}
	}

	s.permissions = perms
	return proceed()
}

func (e *Engine) processSyncGroupVersions(ctx context.Context, s *session) stepResult {
	remote, err := e.adapter.GroupVersions(ctx, e.adapter.UserID())
	if err != nil {
		return stepResult{index: -1, fatal: &models.Fatal{
			Kind:    models.FatalAllLibrariesFetchFailed,
			Message: err.Error(),
		}}
	}

	local, err := e.storage.Groups(ctx)
	if err != nil {
		return stepResult{index: -1, err: err}
	}

	localByID := make(map[int64]models.Group, len(local))
	for _, group := range local {
		localByID[group.ID] = group
	}

	remoteIDs := maps.Keys(remote)
	slices.Sort(remoteIDs)
	var toUpdate []int64
	for _, groupID := range remoteIDs {
		known, ok := localByID[groupID]
		if !ok || remote[groupID] > known.Version {
			toUpdate = append(toUpdate, groupID)
		}
	}

	var toRemove []models.Group
	for _, group := range local {
		if group.LocalOnly {
			continue
		}
		if _, ok := remote[group.ID]; !ok {
			toRemove = append(toRemove, group)
		}
	}

	return stepResult{followUps: e.creator.CreateGroupActions(toUpdate, toRemove), index: 0}
}

func (e *Engine) processSyncGroupToDb(ctx context.Context, a models.SyncGroupToDb) stepResult {
	group, _, err := e.adapter.Group(ctx, a.GroupID)
	if err != nil {
		return stepResult{index: -1, fatal: &models.Fatal{
			Kind:    models.FatalGroupSyncFailed,
			Message: err.Error(),
		}}
	}

	if err = e.storage.SaveGroup(ctx, group); err != nil {
		return stepResult{index: -1, err: err}
	}
	return proceed()
}

func (e *Engine) processCreateLibraryActions(ctx context.Context, s *session, a models.CreateLibraryActions) stepResult {
	libs, err := e.resolveScope(ctx, a.Scope)
	if err != nil {
		return stepResult{index: -1, err: err}
	}

	actions, index, writeCount, err := e.creator.CreateLibraryActions(ctx, libs, a.Options, s.kind, s.permissions)
	if err != nil {
		return stepResult{index: -1, err: err}
	}

	e.logger.Debug().
		Str("session", s.id.String()).
		Int("actions", len(actions)).
		Int("writes", writeCount).
		Msg("seeded library actions")

	return stepResult{followUps: actions, index: index}
}

func (e *Engine) resolveScope(ctx context.Context, scope models.LibraryScope) ([]models.LibraryID, error) {
	if !scope.All {
		return scope.Libraries, nil
	}

	groups, err := e.storage.Groups(ctx)
	if err != nil {
		return nil, err
	}

	libs := []models.LibraryID{models.UserLibrary(e.adapter.UserID())}
	for _, group := range groups {
		if group.LocalOnly {
			continue
		}
		libs = append(libs, models.GroupLibrary(group.ID))
	}
	return libs, nil
}

func (e *Engine) processSyncVersions(ctx context.Context, s *session, a models.SyncVersions) stepResult {
	data := models.ErrorData{Object: a.Object, Lib: a.Lib}

	versions, returned, err := e.adapter.ObjectVersions(ctx, a.Lib, a.Object, a.SinceVersion, a.CheckRemote)
	if err != nil {
		return stepResult{index: -1, err: err, errData: data}
	}

	if mismatch := e.checkReturnedVersion(s, a.Lib, returned); mismatch != nil {
		return stepResult{index: -1, err: mismatch, errData: data}
	}

	keys := maps.Keys(versions)
	slices.Sort(keys)
	return stepResult{
		followUps: e.creator.CreateBatchedObjectActions(a.Lib, a.Object, keys, returned, true),
		index:     0,
	}
}

// checkReturnedVersion enforces version stability within one run of
// same-library actions. A drift means the library changed remotely while
// this sync was touching it.
func (e *Engine) checkReturnedVersion(s *session, lib models.LibraryID, returned int64) error {
	if s.lastReturnedVersion != nil && *s.lastReturnedVersion != returned {
		return models.NonFatal{Kind: models.NonFatalVersionMismatch, Lib: lib, Version: returned}
	}
	version := returned
	s.lastReturnedVersion = &version
	return nil
}

func (e *Engine) processSyncDeletions(ctx context.Context, s *session, a models.SyncDeletions) stepResult {
	data := models.ErrorData{Lib: a.Lib}

	deletions, returned, err := e.adapter.Deletions(ctx, a.Lib, a.SinceVersion)
	if err != nil {
		return stepResult{index: -1, err: err, errData: data}
	}

	if mismatch := e.checkReturnedVersion(s, a.Lib, returned); mismatch != nil {
		return stepResult{index: -1, err: mismatch, errData: data}
	}

	if deletions.IsEmpty() {
		return stepResult{
			followUps: []models.Action{models.StoreDeletionVersion{Lib: a.Lib, Version: returned}},
			index:     0,
		}
	}

	return stepResult{
		followUps: []models.Action{models.PerformDeletions{
			Lib:          a.Lib,
			Collections:  deletions.Collections,
			Items:        deletions.Items,
			Searches:     deletions.Searches,
			Tags:         deletions.Tags,
			Version:      returned,
			ConflictMode: models.ResolveConflicts,
		}},
		index: 0,
	}
}

func (e *Engine) processSyncSettings(ctx context.Context, s *session, a models.SyncSettings) stepResult {
	data := models.ErrorData{Object: models.SettingsObject, Lib: a.Lib}

	settings, returned, err := e.adapter.Settings(ctx, a.Lib, a.SinceVersion)
	if err != nil {
		return stepResult{index: -1, err: err, errData: data}
	}

	if mismatch := e.checkReturnedVersion(s, a.Lib, returned); mismatch != nil {
		return stepResult{index: -1, err: mismatch, errData: data}
	}

	if err = e.storage.SaveSettings(ctx, a.Lib, settings); err != nil {
		return stepResult{index: -1, err: err, errData: data}
	}
	if err = e.storage.SaveObjectVersion(ctx, a.Lib, models.SettingsObject, returned); err != nil {
		return stepResult{index: -1, err: err, errData: data}
	}

	return proceed()
}

func (e *Engine) processSyncBatchesToDb(ctx context.Context, s *session, a models.SyncBatchesToDb) stepResult {
	for _, batch := range a.Batches {
		data := models.ErrorData{Object: batch.Object, Keys: batch.Keys, Lib: batch.Lib}

		objects, returned, err := e.adapter.Objects(ctx, batch.Lib, batch.Object, batch.Keys)
		if err != nil {
			return stepResult{index: -1, err: err, errData: data}
		}
		if returned != batch.Version {
			return stepResult{
				index:   -1,
				err:     models.NonFatal{Kind: models.NonFatalVersionMismatch, Lib: batch.Lib, Version: returned},
				errData: data,
			}
		}

		if err = e.storage.SaveObjects(ctx, batch.Lib, batch.Object, objects); err != nil {
			return stepResult{index: -1, err: err, errData: data}
		}
	}

	return proceed()
}

func (e *Engine) processSubmitWriteBatch(ctx context.Context, s *session, a models.SubmitWriteBatch) stepResult {
	data := models.ErrorData{Object: a.Batch.Object, Keys: a.Batch.Keys, Lib: a.Lib}

	response, returned, err := e.adapter.SubmitUpdates(ctx, a.Lib, a.Batch.Object, a.Batch.Version, a.Batch.Parameters)
	if err != nil {
		var respErr *adapter.ResponseError
		if errors.As(err, &respErr) {
			s.accounting.didReachBackend = true
		}
		return stepResult{index: -1, err: err, errData: data}
	}
	s.accounting.didReachBackend = true

	successful := a.Batch.Keys
	if len(response.Failed) > 0 {
		failedKeys := make(map[string]struct{}, len(response.Failed))
		for _, failure := range response.Failed {
			failedKeys[failure.Key] = struct{}{}
		}
		successful = nil
		for _, key := range a.Batch.Keys {
			if _, failed := failedKeys[key]; !failed {
				successful = append(successful, key)
			}
		}
	}

	if err = e.storage.MarkSubmitted(ctx, a.Lib, a.Batch.Object, successful, returned); err != nil {
		return stepResult{index: -1, err: err, errData: data}
	}
	if err = e.storage.SaveObjectVersion(ctx, a.Lib, a.Batch.Object, returned); err != nil {
		return stepResult{index: -1, err: err, errData: data}
	}

	version := returned
	s.lastReturnedVersion = &version

	result := proceed()
	if len(response.Failed) > 0 {
		failedErr := &models.SyncActionError{
			Kind:    models.ActionSubmitUpdateFailures,
			Lib:     a.Lib,
			Message: submitFailureSummary(response.Failed),
		}
		result.recorded = append(result.recorded, Classify(failedErr, data))
	}
	return result
}

func submitFailureSummary(failed map[string]models.SubmissionFailure) string {
	keys := maps.Keys(failed)
	slices.Sort(keys)
	first := failed[keys[0]]
	if len(keys) == 1 {
		return first.Message
	}
	return first.Message + " (and more)"
}

func (e *Engine) processSubmitDeleteBatch(ctx context.Context, s *session, a models.SubmitDeleteBatch) stepResult {
	data := models.ErrorData{Object: a.Batch.Object, Keys: a.Batch.Keys, Lib: a.Lib}

	returned, err := e.adapter.SubmitDeletions(ctx, a.Lib, a.Batch.Object, a.Batch.Keys, a.Batch.Version)
	if err != nil {
		var respErr *adapter.ResponseError
		if errors.As(err, &respErr) {
			s.accounting.didReachBackend = true
		}
		return stepResult{index: -1, err: err, errData: data}
	}
	s.accounting.didReachBackend = true

	if err = e.storage.MarkSubmitted(ctx, a.Lib, a.Batch.Object, a.Batch.Keys, returned); err != nil {
		return stepResult{index: -1, err: err, errData: data}
	}
	if err = e.storage.SaveObjectVersion(ctx, a.Lib, a.Batch.Object, returned); err != nil {
		return stepResult{index: -1, err: err, errData: data}
	}

	version := returned
	s.lastReturnedVersion = &version
	return proceed()
}

func (e *Engine) processCreateUploadActions(ctx context.Context, s *session, a models.CreateUploadActions) stepResult {
	uploads, err := e.storage.PendingUploads(ctx, a.Lib)
	if err != nil {
		return stepResult{index: -1, err: err, errData: models.ErrorData{Lib: a.Lib}}
	}

	s.accounting.register(a.Lib, len(uploads))

	actions := make([]models.Action, 0, len(uploads))
	for _, upload := range uploads {
		actions = append(actions, models.UploadAttachment{Lib: a.Lib, Upload: upload})
	}
	return stepResult{followUps: actions, index: 0}
}

func (e *Engine) processUploadAttachment(ctx context.Context, s *session, a models.UploadAttachment) stepResult {
	data := models.ErrorData{Object: models.ItemObject, Keys: []string{a.Upload.Key}, Lib: a.Lib}

	err := e.adapter.UploadAttachment(ctx, a.Upload)
	if err == nil {
		s.accounting.didReachBackend = true
		if markErr := e.storage.MarkUploadComplete(ctx, a.Lib, a.Upload.Key); markErr != nil {
			return stepResult{index: -1, err: markErr, errData: data}
		}
		return proceed()
	}

	var actionErr *models.SyncActionError
	if errors.As(err, &actionErr) {
		switch actionErr.Kind {
		case models.ActionAttachmentAlreadyUploaded:
			// the backend already holds the file, record the upload as done
			if markErr := e.storage.MarkUploadComplete(ctx, a.Lib, a.Upload.Key); markErr != nil {
				return stepResult{index: -1, err: markErr, errData: data}
			}
			return proceed()

		case models.ActionAttachmentMissing:
			result := stepResult{index: -1, err: err, errData: data}
			if s.accounting.markFailedPreTransmission(a.Lib) {
				// every upload of this library failed before reaching the
				// backend: local state is likely stale, re-derive from a
				// fresh download pass
				s.accounting.reset()
				result.followUps = []models.Action{models.CreateLibraryActions{
					Scope:   models.SpecificLibraries(a.Lib),
					Options: models.OnlyDownloadsOptions,
				}}
				result.index = 0
			}
			return result
		}
	}

	var respErr *adapter.ResponseError
	if errors.As(err, &respErr) {
		s.accounting.didReachBackend = true
	}
	return stepResult{index: -1, err: err, errData: data}
}

func (e *Engine) processPerformDeletions(ctx context.Context, a models.PerformDeletions) stepResult {
	deletions := models.Deletions{
		Collections: a.Collections,
		Items:       a.Items,
		Searches:    a.Searches,
		Tags:        a.Tags,
	}

	conflicted, err := e.storage.PerformDeletions(ctx, a.Lib, deletions, a.Version, a.ConflictMode)
	if err != nil {
		return stepResult{index: -1, err: err, errData: models.ErrorData{Lib: a.Lib}}
	}

	if len(conflicted) > 0 && a.ConflictMode == models.ResolveConflicts {
		return stepResult{
			index:    -1,
			conflict: models.RemovedItemsHaveLocalChanges{Keys: conflicted, Lib: a.Lib, Version: a.Version},
		}
	}
	return proceed()
}

func (e *Engine) processPerformWebDavDeletions(ctx context.Context, a models.PerformWebDavDeletions) stepResult {
	failed, err := e.adapter.DeleteWebDavFiles(ctx, a.Lib, a.Keys)
	if err != nil {
		// attachment cleanup is best effort, a dead WebDAV endpoint must not
		// take the whole sync down
		return stepResult{index: -1, recorded: []models.SyncError{models.NonFatal{
			Kind:    models.NonFatalWebDavDeletion,
			Lib:     a.Lib,
			Message: err.Error(),
			Data:    models.ErrorData{Keys: a.Keys, Lib: a.Lib},
		}}}
	}

	result := proceed()
	if len(failed) > 0 {
		result.recorded = append(result.recorded, models.NonFatal{
			Kind: models.NonFatalWebDavDeletionFailed,
			Lib:  a.Lib,
			Data: models.ErrorData{Keys: failed, Lib: a.Lib},
		})
	}
	return result
}
