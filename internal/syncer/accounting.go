package syncer

import "github.com/MKhiriev/go-library-sync/models"

// uploadAccounting tracks, per sync session, how many attachment uploads
// were enqueued for the current library boundary and how many of them failed
// before any request reached the backend. When every enqueued upload failed
// pre-transmission and no write action has reached the backend yet, local
// state is assumed stale and the library is re-synced download-only.
type uploadAccounting struct {
	lib                   models.LibraryID
	enqueued              int
	failedPreTransmission int

	// didReachBackend is set once any write action of this sync received a
	// response from the backend, success or not.
	didReachBackend bool
}

// register records count uploads enqueued for lib. Crossing a library
// boundary resets the counters.
func (a *uploadAccounting) register(lib models.LibraryID, count int) {
	if a.lib != lib {
		a.lib = lib
		a.enqueued = 0
		a.failedPreTransmission = 0
	}
	a.enqueued += count
}

// markFailedPreTransmission records one upload of lib that failed before a
// request went out. Returns true when every enqueued upload of the library
// has now failed this way and no write reached the backend: the caller
// should reset and fall back to a download-only pass.
func (a *uploadAccounting) markFailedPreTransmission(lib models.LibraryID) bool {
	if a.lib != lib || a.enqueued == 0 {
		return false
	}

	a.failedPreTransmission++
	return !a.didReachBackend && a.failedPreTransmission >= a.enqueued
}

func (a *uploadAccounting) reset() {
	a.lib = models.LibraryID{}
	a.enqueued = 0
	a.failedPreTransmission = 0
}
