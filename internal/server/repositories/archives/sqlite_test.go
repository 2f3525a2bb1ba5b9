package archives_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/metco-eng/fieldvault/internal/common"
	"github.com/metco-eng/fieldvault/internal/server/repositories/archives"
	"github.com/metco-eng/fieldvault/internal/server/repositories/repomanager"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:archivesrepo?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	rm, err := repomanager.NewSqliteRepositoryManager()
	require.NoError(t, err)
	require.NoError(t, rm.RunMigrations(context.Background(), db))

	_, err = db.Exec(`DELETE FROM zip_files`)
	require.NoError(t, err)
	return db
}

func TestInsertAndGet(t *testing.T) {
	db := setupDB(t)
	repo := archives.NewSqliteRepository(db)
	ctx := context.Background()

	id, err := repo.Insert(ctx, "WO-1_20250314_092653_Bldg7_NoDesc.zip", []byte{1, 2, 3})
	require.NoError(t, err)
	require.Positive(t, id)

	byID, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "WO-1_20250314_092653_Bldg7_NoDesc.zip", byID.Filename)
	require.Equal(t, []byte{1, 2, 3}, byID.Content)

	byName, err := repo.GetByName(ctx, "WO-1_20250314_092653_Bldg7_NoDesc.zip")
	require.NoError(t, err)
	require.Equal(t, byID.ID, byName.ID)
}

func TestGetByName_IdempotentRetrieval(t *testing.T) {
	db := setupDB(t)
	repo := archives.NewSqliteRepository(db)
	ctx := context.Background()

	_, err := repo.Insert(ctx, "a.zip", []byte("zip-bytes"))
	require.NoError(t, err)

	first, err := repo.GetByName(ctx, "a.zip")
	require.NoError(t, err)
	second, err := repo.GetByName(ctx, "a.zip")
	require.NoError(t, err)
	require.Equal(t, first.Content, second.Content, "retrieval must be byte-identical")
}

func TestList_NewestFirstAndFiltered(t *testing.T) {
	db := setupDB(t)
	repo := archives.NewSqliteRepository(db)
	ctx := context.Background()

	_, err := repo.Insert(ctx, "WO-1_pumphouse.zip", []byte("a"))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, "WO-2_roof.zip", []byte("b"))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, "WO-3_PumpHouse.zip", []byte("c"))
	require.NoError(t, err)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "WO-3_PumpHouse.zip", all[0].Filename, "insertion descending")
	require.Equal(t, "WO-1_pumphouse.zip", all[2].Filename)

	filtered, err := repo.List(ctx, "PUMPHOUSE")
	require.NoError(t, err)
	require.Len(t, filtered, 2, "filename filter is case-insensitive")

	none, err := repo.List(ctx, "boiler")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestGet_NotFound(t *testing.T) {
	db := setupDB(t)
	repo := archives.NewSqliteRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 999)
	require.True(t, errors.Is(err, common.ErrorNotFound))

	_, err = repo.GetByName(ctx, "missing.zip")
	require.True(t, errors.Is(err, common.ErrorNotFound))
}
