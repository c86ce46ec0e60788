package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-library-sync/internal/logger"
	"github.com/MKhiriev/go-library-sync/internal/syncer"
	"github.com/MKhiriev/go-library-sync/models"
)

// ConflictResolver consumes the engine's conflict channel and answers every
// conflict with a conservative keep-local resolution, so a headless client
// never parks a sync indefinitely. Interactive frontends replace this worker
// with their own resolution flow.
type ConflictResolver struct {
	engine *syncer.Engine
	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewConflictResolver(engine *syncer.Engine, log *logger.Logger) *ConflictResolver {
	return &ConflictResolver{
		engine: engine,
		logger: log,
	}
}

// Run implements [Worker].
func (r *ConflictResolver) Run() {
	r.Start(context.Background())
}

// Start stops any previous consumer, then launches a goroutine resolving
// published conflicts until ctx is cancelled or Stop is called.
func (r *ConflictResolver) Start(ctx context.Context) {
	r.Stop()

	r.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		for {
			select {
			case <-jobCtx.Done():
				return
			case conflict := <-r.engine.Conflicts():
				r.resolve(conflict)
			}
		}
	}()
}

// Stop cancels the consumer goroutine and blocks until it has exited. Safe
// to call when not running.
func (r *ConflictResolver) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	r.wg.Wait()
}

func (r *ConflictResolver) resolve(conflict models.Conflict) {
	resolution := keepLocalResolution(conflict)
	if resolution == nil {
		r.logger.Error().
			Str("func", "ConflictResolver.resolve").
			Msg("no default resolution for conflict, cancelling sync")
		r.engine.Cancel()
		return
	}

	r.logger.Info().
		Str("func", "ConflictResolver.resolve").
		Msg("resolving conflict with keep-local default")
	r.engine.EnqueueResolution(resolution)
}

// keepLocalResolution maps every conflict onto the resolution that preserves
// local data: denied or removed groups are kept locally, remotely deleted
// objects with local changes are restored for resubmission.
func keepLocalResolution(conflict models.Conflict) models.ConflictResolution {
	switch c := conflict.(type) {
	case models.GroupRemoved:
		return models.MarkGroupAsLocalOnlyResolution{GroupID: c.GroupID}

	case models.GroupMetadataWriteDenied:
		return models.KeepGroupChangesResolution{Lib: models.GroupLibrary(c.GroupID)}

	case models.GroupFileWriteDenied:
		return models.SkipGroupResolution{GroupID: c.GroupID}

	case models.RemovedItemsHaveLocalChanges:
		return models.RemoteDeletionOfChangedItemResolution{
			Lib:       c.Lib,
			ToRestore: c.Keys,
			Version:   c.Version,
		}

	case models.ObjectsRemovedRemotely:
		return models.RemoteDeletionOfActiveObjectResolution{
			Lib:                  c.Lib,
			ToRestoreCollections: c.Collections,
			ToRestoreItems:       c.Items,
			Searches:             c.Searches,
			Tags:                 c.Tags,
			Version:              c.Version,
		}

	default:
		return nil
	}
}
