package syncer

import "github.com/MKhiriev/go-library-sync/models"

// Report is the terminal status of one sync attempt, published on the
// engine's report channel after finish, abort or cancel.
type Report struct {
	// Fatal is set when the sync aborted. A cancelled sync carries the
	// cancelled fatal kind.
	Fatal *models.Fatal
	// Errors lists every non-fatal error recorded during the attempt,
	// including those that contributed to Retry.
	Errors []models.SyncError
	// Retry is the directive for the next, narrower attempt. Nil when no
	// retry is warranted.
	Retry *models.RetryDirective
}

// publishReport delivers a report without ever blocking the run loop. A slow
// or absent subscriber loses reports beyond the channel capacity.
func (e *Engine) publishReport(report Report) {
	select {
	case e.reports <- report:
	default:
		e.logger.Warn().Msg("report channel full, dropping sync report")
	}
}

// publishConflict delivers a conflict without blocking. The queue stays
// parked either way; a dropped conflict has to be resolved by cancelling.
func (e *Engine) publishConflict(conflict models.Conflict) {
	select {
	case e.conflicts <- conflict:
	default:
		e.logger.Warn().Msg("conflict channel full, dropping conflict")
	}
}
