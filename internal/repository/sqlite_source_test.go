package repository

import (
	"context"
	"database/sql"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openparcel/parcelkit/internal/hierarchy"
	"github.com/openparcel/parcelkit/internal/testutil"
)

func sourceTestSetup(t *testing.T) (*sql.DB, *SQLiteSourceRepo, string) {
	t.Helper()
	database := testutil.NewTestDB(t)
	projects := NewSQLiteProjectRepo(database)
	p := testutil.NewTestProject("Source Test")
	require.NoError(t, projects.Create(context.Background(), p))
	return database, NewSQLiteSourceRepo(database), p.ID
}

func TestSourceRepo_LegacyRoundTrip(t *testing.T) {
	_, repo, projectID := sourceTestSetup(t)
	ctx := context.Background()
	src := testutil.LegacySourceSet()

	require.NoError(t, repo.ReplaceLegacy(ctx, projectID, src.LegacyPhases, src.LegacyParcels))
	require.NoError(t, repo.ReplaceAreaNames(ctx, projectID, map[int]string{1: "Riverbend"}))

	loaded, err := repo.LoadSourceSet(ctx, projectID)
	require.NoError(t, err)
	assert.Len(t, loaded.LegacyPhases, 3)
	require.Len(t, loaded.LegacyParcels, 3)
	assert.Equal(t, "Riverbend", loaded.AreaNames[1])

	var pc1 *hierarchy.LegacyParcelRow
	for i := range loaded.LegacyParcels {
		if loaded.LegacyParcels[i].ParcelID == "pc-1" {
			pc1 = &loaded.LegacyParcels[i]
		}
	}
	require.NotNil(t, pc1)
	require.NotNil(t, pc1.Acres)
	assert.Equal(t, 10.0, *pc1.Acres)
	require.NotNil(t, pc1.Units)
	assert.Equal(t, 40.0, *pc1.Units)
	assert.Equal(t, "SFD", pc1.TypeCode)
	assert.Nil(t, pc1.Efficiency)
}

func TestSourceRepo_ReplaceIsWholesale(t *testing.T) {
	_, repo, projectID := sourceTestSetup(t)
	ctx := context.Background()
	src := testutil.LegacySourceSet()

	require.NoError(t, repo.ReplaceLegacy(ctx, projectID, src.LegacyPhases, src.LegacyParcels))
	require.NoError(t, repo.ReplaceLegacy(ctx, projectID,
		[]hierarchy.LegacyPhaseRow{{PhaseID: "ph-only", AreaNo: 1, PhaseNo: 1}}, nil))

	loaded, err := repo.LoadSourceSet(ctx, projectID)
	require.NoError(t, err)
	assert.Len(t, loaded.LegacyPhases, 1)
	assert.Empty(t, loaded.LegacyParcels)
}

func TestSourceRepo_NaNStoredAsNullComesBackNaN(t *testing.T) {
	_, repo, projectID := sourceTestSetup(t)
	ctx := context.Background()

	phases := []hierarchy.LegacyPhaseRow{{PhaseID: "ph-bad", AreaNo: math.NaN(), PhaseNo: 1}}
	require.NoError(t, repo.ReplaceLegacy(ctx, projectID, phases, nil))

	loaded, err := repo.LoadSourceSet(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, loaded.LegacyPhases, 1)
	assert.True(t, math.IsNaN(loaded.LegacyPhases[0].AreaNo), "builder sees the malformed value")
}

func TestSourceRepo_ContainerRoundTrip(t *testing.T) {
	_, repo, projectID := sourceTestSetup(t)
	ctx := context.Background()

	nodes := []hierarchy.ContainerNode{
		{DivisionID: "d-a1", Level: 1, DisplayName: "West Village", SortOrder: 1},
		{DivisionID: "d-p1", Level: 2, DisplayName: "Phase 1", SortOrder: 1, ParentID: "d-a1"},
		{DivisionID: "d-x1", Level: 3, DisplayName: "1.1.01", SortOrder: 1, ParentID: "d-p1",
			Attributes: map[string]any{"acres": 10.0, "family_name": "Residential"}},
	}
	require.NoError(t, repo.ReplaceContainers(ctx, projectID, nodes))

	loaded, err := repo.LoadSourceSet(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, loaded.Containers, 3)
	parcel := loaded.Containers[2]
	assert.Equal(t, "d-x1", parcel.DivisionID)
	assert.Equal(t, "d-p1", parcel.ParentID)
	assert.Equal(t, 10.0, parcel.Attributes["acres"])
	assert.Equal(t, "Residential", parcel.Attributes["family_name"])
}

func TestSourceRepo_UpdateLegacyParcel(t *testing.T) {
	_, repo, projectID := sourceTestSetup(t)
	ctx := context.Background()
	src := testutil.LegacySourceSet()
	require.NoError(t, repo.ReplaceLegacy(ctx, projectID, src.LegacyPhases, src.LegacyParcels))

	err := repo.UpdateLegacyParcel(ctx, projectID, "pc-1", ParcelUpdate{
		Acres:       testutil.FloatPtr(12.5),
		ProductCode: testutil.StrPtr("60x120"),
	})
	require.NoError(t, err)

	loaded, err := repo.LoadSourceSet(ctx, projectID)
	require.NoError(t, err)
	for _, row := range loaded.LegacyParcels {
		if row.ParcelID != "pc-1" {
			continue
		}
		require.NotNil(t, row.Acres)
		assert.Equal(t, 12.5, *row.Acres)
		assert.Equal(t, "60x120", row.ProductCode)
		assert.Equal(t, "SFD", row.TypeCode, "untouched fields preserved")
	}
}

func TestSourceRepo_UpdateLegacyParcel_Missing(t *testing.T) {
	_, repo, projectID := sourceTestSetup(t)
	err := repo.UpdateLegacyParcel(context.Background(), projectID, "nope", ParcelUpdate{
		Acres: testutil.FloatPtr(1),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSourceRepo_UpdateContainerParcel_MergesAttributes(t *testing.T) {
	_, repo, projectID := sourceTestSetup(t)
	ctx := context.Background()

	nodes := []hierarchy.ContainerNode{
		{DivisionID: "d-x1", Level: 3, DisplayName: "1.1.01", SortOrder: 1,
			Attributes: map[string]any{"acres": 10.0, "family_name": "Residential"}},
	}
	require.NoError(t, repo.ReplaceContainers(ctx, projectID, nodes))

	err := repo.UpdateContainerParcel(ctx, projectID, "d-x1", ParcelUpdate{
		Units:    testutil.FloatPtr(44),
		TypeCode: testutil.StrPtr("SFD"),
	})
	require.NoError(t, err)

	loaded, err := repo.LoadSourceSet(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, loaded.Containers, 1)
	attrs := loaded.Containers[0].Attributes
	assert.Equal(t, 44.0, attrs["units"])
	assert.Equal(t, "SFD", attrs["type_code"])
	assert.Equal(t, 10.0, attrs["acres"], "existing attributes preserved")
}
