package syncer

import "github.com/MKhiriev/go-library-sync/models"

// resolutionActions translates an external conflict resolution into the
// follow-up actions spliced at the front of the queue. Every resolution maps
// deterministically to zero, one or two actions.
func resolutionActions(resolution models.ConflictResolution) []models.Action {
	switch r := resolution.(type) {
	case models.DeleteGroupResolution:
		return []models.Action{models.DeleteGroup{GroupID: r.GroupID}}

	case models.KeepGroupChangesResolution:
		return []models.Action{models.MarkChangesAsResolved{Lib: r.Lib}}

	case models.MarkGroupAsLocalOnlyResolution:
		return []models.Action{models.MarkGroupAsLocalOnly{GroupID: r.GroupID}}

	case models.RevertGroupChangesResolution:
		return []models.Action{models.RevertLibraryToOriginal{Lib: r.Lib}}

	case models.RevertGroupFilesResolution:
		return []models.Action{models.RevertLibraryToOriginal{Lib: r.Lib}}

	case models.SkipGroupResolution:
		return nil

	case models.RemoteDeletionOfActiveObjectResolution:
		return []models.Action{
			models.PerformDeletions{
				Lib:          r.Lib,
				Collections:  r.ToDeleteCollections,
				Items:        r.ToDeleteItems,
				Searches:     r.Searches,
				Tags:         r.Tags,
				Version:      r.Version,
				ConflictMode: models.DeleteConflicts,
			},
			models.RestoreDeletions{
				Lib:         r.Lib,
				Collections: r.ToRestoreCollections,
				Items:       r.ToRestoreItems,
			},
		}

	case models.RemoteDeletionOfChangedItemResolution:
		return []models.Action{
			models.PerformDeletions{
				Lib:          r.Lib,
				Items:        r.ToDelete,
				Version:      r.Version,
				ConflictMode: models.DeleteConflicts,
			},
			models.RestoreDeletions{
				Lib:   r.Lib,
				Items: r.ToRestore,
			},
		}

	default:
		return nil
	}
}
