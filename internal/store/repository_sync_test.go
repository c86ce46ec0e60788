package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-library-sync/internal/logger"
	"github.com/MKhiriev/go-library-sync/models"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newDBFromSQL(db *sql.DB) *DB {
	return &DB{
		DB:     db,
		logger: logger.Nop(),
	}
}

func newTestRepo(t *testing.T, db *sql.DB) SyncStorage {
	t.Helper()
	return NewSyncRepository(newDBFromSQL(db), logger.Nop())
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func toDriverValues(args []any) []driver.Value {
	values := make([]driver.Value, len(args))
	for i, arg := range args {
		values[i] = arg
	}
	return values
}

// ── Versions ─────────────────────────────────────────────────────────────────

func TestObjectVersion(t *testing.T) {
	lib := models.UserLibrary(1)

	tests := []struct {
		name     string
		rows     *sqlmock.Rows
		queryErr error
		want     int64
		wantErr  string
	}{
		{
			name: "stored version returned",
			rows: sqlmock.NewRows([]string{"version"}).AddRow(int64(42)),
			want: 42,
		},
		{
			name: "missing row means version zero",
			rows: sqlmock.NewRows([]string{"version"}),
			want: 0,
		},
		{
			name:     "query failure surfaces",
			queryErr: errors.New("disk I/O error"),
			wantErr:  "failed to read version",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			repo := newTestRepo(t, db)

			expectation := mock.ExpectQuery(regexp.QuoteMeta(getVersion)).
				WithArgs(lib.String(), string(models.ItemObject))
			if tc.queryErr != nil {
				expectation.WillReturnError(tc.queryErr)
			} else {
				expectation.WillReturnRows(tc.rows)
			}

			version, err := repo.ObjectVersion(testContext(), lib, models.ItemObject)

			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.want, version)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSaveObjectVersion(t *testing.T) {
	lib := models.GroupLibrary(42)
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	mock.ExpectExec(regexp.QuoteMeta(saveVersion)).
		WithArgs(lib.String(), string(models.CollectionObject), int64(17)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveObjectVersion(testContext(), lib, models.CollectionObject, 17))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletionsVersion_UsesDeletionsTag(t *testing.T) {
	lib := models.UserLibrary(1)
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	mock.ExpectQuery(regexp.QuoteMeta(getVersion)).
		WithArgs(lib.String(), deletionsTag).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(9)))
	mock.ExpectExec(regexp.QuoteMeta(saveVersion)).
		WithArgs(lib.String(), deletionsTag, int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	version, err := repo.DeletionsVersion(testContext(), lib)
	require.NoError(t, err)
	assert.Equal(t, int64(9), version)

	require.NoError(t, repo.SaveDeletionsVersion(testContext(), lib, 12))
	require.NoError(t, mock.ExpectationsWereMet())
}

// ── Downloaded objects ───────────────────────────────────────────────────────

func TestSaveObjects(t *testing.T) {
	lib := models.UserLibrary(1)
	objects := []models.RemoteObject{
		{Key: "K1", Version: 10, Data: json.RawMessage(`{"title":"a"}`)},
		{Key: "K2", Version: 11, Data: json.RawMessage(`{"title":"b"}`)},
	}

	t.Run("upserts every object in one transaction", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectBegin()
		for _, obj := range objects {
			mock.ExpectExec(regexp.QuoteMeta(saveObject)).
				WithArgs(lib.String(), string(models.ItemObject), obj.Key, obj.Version, []byte(obj.Data)).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}
		mock.ExpectCommit()

		require.NoError(t, repo.SaveObjects(testContext(), lib, models.ItemObject, objects))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when an upsert fails", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(saveObject)).
			WithArgs(lib.String(), string(models.ItemObject), "K1", int64(10), []byte(objects[0].Data)).
			WillReturnError(errors.New("constraint violated"))
		mock.ExpectRollback()

		err := repo.SaveObjects(testContext(), lib, models.ItemObject, objects)
		require.ErrorContains(t, err, "failed to save object (key=K1)")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure wraps the sentinel", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectBegin().WillReturnError(errors.New("database is locked"))

		err := repo.SaveObjects(testContext(), lib, models.ItemObject, objects)
		require.ErrorIs(t, err, ErrBeginningTransaction)
	})

	t.Run("commit failure wraps the sentinel", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(saveObject)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(saveObject)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit().WillReturnError(errors.New("disk full"))

		err := repo.SaveObjects(testContext(), lib, models.ItemObject, objects)
		require.ErrorIs(t, err, ErrCommitingTransaction)
	})
}

// ── Submission bookkeeping ───────────────────────────────────────────────────

func TestMarkSubmitted(t *testing.T) {
	lib := models.UserLibrary(1)
	keys := []string{"K1", "K2"}

	t.Run("clears flags then drops deletion rows", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		query, args, err := buildMarkSubmittedQuery(lib, models.ItemObject, keys, 30)
		require.NoError(t, err)
		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs(toDriverValues(args)...).
			WillReturnResult(sqlmock.NewResult(0, 2))

		query, args, err = buildDeleteSubmittedRowsQuery(lib, models.ItemObject, keys)
		require.NoError(t, err)
		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs(toDriverValues(args)...).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, repo.MarkSubmitted(testContext(), lib, models.ItemObject, keys, 30))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no keys means no statements", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		require.NoError(t, repo.MarkSubmitted(testContext(), lib, models.ItemObject, nil, 30))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec failure surfaces", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		query, args, err := buildMarkSubmittedQuery(lib, models.ItemObject, keys, 30)
		require.NoError(t, err)
		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs(toDriverValues(args)...).
			WillReturnError(errors.New("database is locked"))

		err = repo.MarkSubmitted(testContext(), lib, models.ItemObject, keys, 30)
		require.ErrorContains(t, err, "failed to mark objects as submitted")
	})
}

func TestMarkChangesAsResolved(t *testing.T) {
	lib := models.GroupLibrary(42)
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	mock.ExpectExec(regexp.QuoteMeta(clearChangedFlags)).
		WithArgs(lib.String()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.MarkChangesAsResolved(testContext(), lib))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRevertLibraryToOriginal(t *testing.T) {
	lib := models.GroupLibrary(42)

	t.Run("restores payloads and drops unsynced rows", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(revertChangedObjects)).
			WithArgs(lib.String()).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(regexp.QuoteMeta(dropUnsyncedObjects)).
			WithArgs(lib.String()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.RevertLibraryToOriginal(testContext(), lib))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the drop fails", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(revertChangedObjects)).
			WithArgs(lib.String()).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(regexp.QuoteMeta(dropUnsyncedObjects)).
			WithArgs(lib.String()).
			WillReturnError(errors.New("database is locked"))
		mock.ExpectRollback()

		err := repo.RevertLibraryToOriginal(testContext(), lib)
		require.ErrorContains(t, err, "failed to drop unsynced objects")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

// ── Pending batches ──────────────────────────────────────────────────────────

var changedObjectColumns = []string{"object_type", "key", "version", "data"}

func TestPendingWriteBatches(t *testing.T) {
	lib := models.UserLibrary(1)

	t.Run("groups per object and chunks at the batch size", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		rows := sqlmock.NewRows(changedObjectColumns).
			AddRow("collection", "C1", int64(3), []byte(`{"name":"papers"}`))
		itemCount := 2*models.WriteBatchSize + 20
		for i := 0; i < itemCount; i++ {
			key := fmt.Sprintf("K%03d", i)
			rows.AddRow("item", key, int64(5), []byte(`{"title":"t"}`))
		}

		mock.ExpectQuery(regexp.QuoteMeta(getChangedObjects)).
			WithArgs(lib.String()).
			WillReturnRows(rows)
		mock.ExpectQuery(regexp.QuoteMeta(getVersion)).
			WithArgs(lib.String(), string(models.CollectionObject)).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(10)))
		mock.ExpectQuery(regexp.QuoteMeta(getVersion)).
			WithArgs(lib.String(), string(models.ItemObject)).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(40)))

		batches, err := repo.PendingWriteBatches(testContext(), lib)
		require.NoError(t, err)
		require.Len(t, batches, 4)

		// collections come before items
		assert.Equal(t, models.CollectionObject, batches[0].Object)
		assert.Equal(t, int64(10), batches[0].Version)
		assert.Equal(t, []string{"C1"}, batches[0].Keys)
		assert.Equal(t, json.RawMessage(`{"name":"papers"}`), batches[0].Parameters[0])

		assert.Len(t, batches[1].Keys, models.WriteBatchSize)
		assert.Len(t, batches[2].Keys, models.WriteBatchSize)
		assert.Len(t, batches[3].Keys, 20)
		for _, batch := range batches[1:] {
			assert.Equal(t, models.ItemObject, batch.Object)
			assert.Equal(t, int64(40), batch.Version)
			assert.Equal(t, lib, batch.Lib)
		}
		assert.Equal(t, "K000", batches[1].Keys[0])
		assert.Equal(t, "K100", batches[3].Keys[0])

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing changed yields no batches", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectQuery(regexp.QuoteMeta(getChangedObjects)).
			WithArgs(lib.String()).
			WillReturnRows(sqlmock.NewRows(changedObjectColumns))

		batches, err := repo.PendingWriteBatches(testContext(), lib)
		require.NoError(t, err)
		assert.Empty(t, batches)
	})

	t.Run("query failure surfaces", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectQuery(regexp.QuoteMeta(getChangedObjects)).
			WithArgs(lib.String()).
			WillReturnError(errors.New("disk I/O error"))

		_, err := repo.PendingWriteBatches(testContext(), lib)
		require.ErrorContains(t, err, "failed to query changed objects")
	})
}

func TestPendingDeleteBatches(t *testing.T) {
	lib := models.UserLibrary(1)
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	rows := sqlmock.NewRows([]string{"object_type", "key", "version"}).
		AddRow("item", "K1", int64(5)).
		AddRow("item", "K2", int64(5)).
		AddRow("search", "S1", int64(2))

	mock.ExpectQuery(regexp.QuoteMeta(getDeletedKeys)).
		WithArgs(lib.String()).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(getVersion)).
		WithArgs(lib.String(), string(models.SearchObject)).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(7)))
	mock.ExpectQuery(regexp.QuoteMeta(getVersion)).
		WithArgs(lib.String(), string(models.ItemObject)).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(9)))

	batches, err := repo.PendingDeleteBatches(testContext(), lib)
	require.NoError(t, err)
	require.Len(t, batches, 2)

	assert.Equal(t, models.SearchObject, batches[0].Object)
	assert.Equal(t, []string{"S1"}, batches[0].Keys)
	assert.Equal(t, int64(7), batches[0].Version)

	assert.Equal(t, models.ItemObject, batches[1].Object)
	assert.Equal(t, []string{"K1", "K2"}, batches[1].Keys)
	assert.Equal(t, int64(9), batches[1].Version)

	require.NoError(t, mock.ExpectationsWereMet())
}

// ── Attachment uploads ───────────────────────────────────────────────────────

func TestPendingUploads(t *testing.T) {
	lib := models.UserLibrary(1)
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	rows := sqlmock.NewRows([]string{"key", "filename", "md5", "mtime", "size"}).
		AddRow("K1", "paper.pdf", "d41d8cd98f00b204e9800998ecf8427e", int64(1756100000000), int64(2048))

	mock.ExpectQuery(regexp.QuoteMeta(getPendingUploads)).
		WithArgs(lib.String()).
		WillReturnRows(rows)

	uploads, err := repo.PendingUploads(testContext(), lib)
	require.NoError(t, err)
	require.Len(t, uploads, 1)
	assert.Equal(t, models.AttachmentUpload{
		Lib:      lib,
		Key:      "K1",
		Filename: "paper.pdf",
		MD5:      "d41d8cd98f00b204e9800998ecf8427e",
		Mtime:    1756100000000,
		Size:     2048,
	}, uploads[0])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkUploadComplete(t *testing.T) {
	lib := models.UserLibrary(1)
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	mock.ExpectExec(regexp.QuoteMeta(markUploadComplete)).
		WithArgs(lib.String(), "K1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkUploadComplete(testContext(), lib, "K1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResetUploadState(t *testing.T) {
	t.Run("re-arms the pending row", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectExec(regexp.QuoteMeta(resetUploadState)).
			WithArgs("K1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.ResetUploadState(testContext(), "K1"))
	})

	t.Run("unknown key reports not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectExec(regexp.QuoteMeta(resetUploadState)).
			WithArgs("KX").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.ResetUploadState(testContext(), "KX")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

// ── Remote deletions ─────────────────────────────────────────────────────────

func TestPerformDeletions_ResolveConflicts(t *testing.T) {
	lib := models.UserLibrary(1)
	keys := []string{"K1", "K2", "K3"}
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	query, args, err := buildChangedKeysQuery(lib, models.ItemObject, keys)
	require.NoError(t, err)
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(toDriverValues(args)...).
		WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow("K2"))

	query, args, err = buildDeleteObjectsQuery(lib, models.ItemObject, []string{"K1", "K3"})
	require.NoError(t, err)
	mock.ExpectExec(regexp.QuoteMeta(query)).
		WithArgs(toDriverValues(args)...).
		WillReturnResult(sqlmock.NewResult(0, 2))

	mock.ExpectExec(regexp.QuoteMeta(saveVersion)).
		WithArgs(lib.String(), deletionsTag, int64(20)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	conflicted, err := repo.PerformDeletions(testContext(), lib, models.Deletions{Items: keys}, 20, models.ResolveConflicts)
	require.NoError(t, err)
	assert.Equal(t, []string{"K2"}, conflicted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPerformDeletions_RestoreConflicts(t *testing.T) {
	lib := models.UserLibrary(1)
	keys := []string{"K1", "K2"}
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	query, args, err := buildChangedKeysQuery(lib, models.ItemObject, keys)
	require.NoError(t, err)
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(toDriverValues(args)...).
		WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow("K2"))

	query, args, err = buildRestoreObjectsQuery(lib, models.ItemObject, []string{"K2"})
	require.NoError(t, err)
	mock.ExpectExec(regexp.QuoteMeta(query)).
		WithArgs(toDriverValues(args)...).
		WillReturnResult(sqlmock.NewResult(0, 1))

	query, args, err = buildDeleteObjectsQuery(lib, models.ItemObject, []string{"K1"})
	require.NoError(t, err)
	mock.ExpectExec(regexp.QuoteMeta(query)).
		WithArgs(toDriverValues(args)...).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(regexp.QuoteMeta(saveVersion)).
		WithArgs(lib.String(), deletionsTag, int64(25)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	conflicted, err := repo.PerformDeletions(testContext(), lib, models.Deletions{Items: keys}, 25, models.RestoreConflicts)
	require.NoError(t, err)
	assert.Empty(t, conflicted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPerformDeletions_DeleteConflicts(t *testing.T) {
	lib := models.GroupLibrary(42)
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	// collections go first, changed rows are deleted with the rest
	query, args, err := buildChangedKeysQuery(lib, models.CollectionObject, []string{"C1"})
	require.NoError(t, err)
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(toDriverValues(args)...).
		WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow("C1"))

	query, args, err = buildDeleteObjectsQuery(lib, models.CollectionObject, []string{"C1"})
	require.NoError(t, err)
	mock.ExpectExec(regexp.QuoteMeta(query)).
		WithArgs(toDriverValues(args)...).
		WillReturnResult(sqlmock.NewResult(0, 1))

	query, args, err = buildChangedKeysQuery(lib, models.ItemObject, []string{"K1"})
	require.NoError(t, err)
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(toDriverValues(args)...).
		WillReturnRows(sqlmock.NewRows([]string{"key"}))

	query, args, err = buildDeleteObjectsQuery(lib, models.ItemObject, []string{"K1"})
	require.NoError(t, err)
	mock.ExpectExec(regexp.QuoteMeta(query)).
		WithArgs(toDriverValues(args)...).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(regexp.QuoteMeta(saveVersion)).
		WithArgs(lib.String(), deletionsTag, int64(30)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deletions := models.Deletions{Collections: []string{"C1"}, Items: []string{"K1"}}
	conflicted, err := repo.PerformDeletions(testContext(), lib, deletions, 30, models.DeleteConflicts)
	require.NoError(t, err)
	assert.Empty(t, conflicted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPerformDeletions_EmptySetStillAdvancesVersion(t *testing.T) {
	lib := models.UserLibrary(1)
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	mock.ExpectExec(regexp.QuoteMeta(saveVersion)).
		WithArgs(lib.String(), deletionsTag, int64(40)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	conflicted, err := repo.PerformDeletions(testContext(), lib, models.Deletions{}, 40, models.ResolveConflicts)
	require.NoError(t, err)
	assert.Empty(t, conflicted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRestoreDeletions(t *testing.T) {
	lib := models.UserLibrary(1)
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	query, args, err := buildRestoreObjectsQuery(lib, models.CollectionObject, []string{"C1"})
	require.NoError(t, err)
	mock.ExpectExec(regexp.QuoteMeta(query)).
		WithArgs(toDriverValues(args)...).
		WillReturnResult(sqlmock.NewResult(0, 1))

	query, args, err = buildRestoreObjectsQuery(lib, models.ItemObject, []string{"K1", "K2"})
	require.NoError(t, err)
	mock.ExpectExec(regexp.QuoteMeta(query)).
		WithArgs(toDriverValues(args)...).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.RestoreDeletions(testContext(), lib, []string{"C1"}, []string{"K1", "K2"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRestoreDeletions_NothingToRestore(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	require.NoError(t, repo.RestoreDeletions(testContext(), models.UserLibrary(1), nil, nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

// ── Groups ───────────────────────────────────────────────────────────────────

func TestGroups(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	rows := sqlmock.NewRows([]string{"id", "name", "version", "can_edit_metadata", "can_edit_files", "local_only"}).
		AddRow(int64(42), "lab", int64(7), true, false, false).
		AddRow(int64(43), "reading club", int64(2), false, false, true)

	mock.ExpectQuery(regexp.QuoteMeta(getAllGroups)).
		WillReturnRows(rows)

	groups, err := repo.Groups(testContext())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, models.Group{ID: 42, Name: "lab", Version: 7, CanEditMetadata: true}, groups[0])
	assert.Equal(t, models.Group{ID: 43, Name: "reading club", Version: 2, LocalOnly: true}, groups[1])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveGroup(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	group := models.Group{ID: 42, Name: "lab", Version: 7, CanEditMetadata: true, CanEditFiles: true}

	mock.ExpectExec(regexp.QuoteMeta(saveGroup)).
		WithArgs(group.ID, group.Name, group.Version, true, true, false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveGroup(testContext(), group))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteGroup(t *testing.T) {
	lib := models.GroupLibrary(42)
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteGroup)).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteLibraryObjects)).
		WithArgs(lib.String()).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec(regexp.QuoteMeta(deleteLibraryVersions)).
		WithArgs(lib.String()).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteGroup(testContext(), 42))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkGroupAsLocalOnly(t *testing.T) {
	t.Run("flags the group", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectExec(regexp.QuoteMeta(markGroupAsLocalOnly)).
			WithArgs(int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.MarkGroupAsLocalOnly(testContext(), 42))
	})

	t.Run("unknown group reports not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectExec(regexp.QuoteMeta(markGroupAsLocalOnly)).
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkGroupAsLocalOnly(testContext(), 99)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

// ── Settings ─────────────────────────────────────────────────────────────────

func TestSaveSettings(t *testing.T) {
	lib := models.UserLibrary(1)
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	value := json.RawMessage(`[{"name":"important","color":"#FF0000"}]`)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(saveSetting)).
		WithArgs(lib.String(), "tagColors", []byte(value)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	settings := map[string]json.RawMessage{"tagColors": value}
	require.NoError(t, repo.SaveSettings(testContext(), lib, settings))
	require.NoError(t, mock.ExpectationsWereMet())
}

// ── subtract ─────────────────────────────────────────────────────────────────

func TestSubtract(t *testing.T) {
	assert.Equal(t, []string{"K1", "K3"}, subtract([]string{"K1", "K2", "K3"}, []string{"K2"}))
	assert.Equal(t, []string{"K1"}, subtract([]string{"K1"}, nil))
	assert.Nil(t, subtract([]string{"K1"}, []string{"K1"}))
}
