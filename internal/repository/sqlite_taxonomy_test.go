package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openparcel/parcelkit/internal/taxonomy"
	"github.com/openparcel/parcelkit/internal/testutil"
)

func TestTaxonomyRepo_ReplaceAndFetch(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTaxonomyRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, testutil.TaxonomyFile()))

	families, err := repo.FetchFamilies(ctx)
	require.NoError(t, err)
	require.Len(t, families, 2)
	assert.Equal(t, "Commercial", families[0].Name, "ordered by name")

	types, err := repo.FetchTypes(ctx, "f-res")
	require.NoError(t, err)
	assert.Len(t, types, 2)

	products, err := repo.FetchProducts(ctx, "t-sfd")
	require.NoError(t, err)
	assert.Len(t, products, 2)

	none, err := repo.FetchProducts(ctx, "t-th")
	require.NoError(t, err)
	assert.Empty(t, none, "type with no products is a valid terminal")
}

func TestTaxonomyRepo_AlternateIDKeysResolved(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTaxonomyRepo(database)
	ctx := context.Background()

	file := &taxonomy.File{
		Families: []taxonomy.FamilyRecord{{ID: "f1", Name: "Residential"}},
		Types:    []taxonomy.TypeRecord{{SubtypeID: "t1", FamilyID: "f1", Code: "SFD", Name: "Detached"}},
	}
	require.NoError(t, repo.ReplaceAll(ctx, file))

	types, err := repo.FetchTypes(ctx, "f1")
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "t1", types[0].TypeID)
}

func TestTaxonomyRepo_DanglingRecordsDropped(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTaxonomyRepo(database)
	ctx := context.Background()

	file := &taxonomy.File{
		Families: []taxonomy.FamilyRecord{{FamilyID: "f1", Name: "Residential"}},
		Types: []taxonomy.TypeRecord{
			{TypeID: "t1", FamilyID: "f1", Code: "SFD", Name: "Detached"},
			{TypeID: "t-dangling", FamilyID: "f-missing", Code: "X", Name: "Orphan"},
			{FamilyID: "f1", Code: "Y", Name: "No ID"},
		},
		Products: []taxonomy.ProductRecord{
			{ProductID: "p-dangling", TypeID: "t-missing", Code: "Z", Name: "Orphan"},
		},
	}
	require.NoError(t, repo.ReplaceAll(ctx, file))

	families, types, products, err := repo.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, families)
	assert.Equal(t, 1, types)
	assert.Equal(t, 0, products)
}

func TestTaxonomyRepo_WorksAsCacheSource(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTaxonomyRepo(database)
	ctx := context.Background()
	require.NoError(t, repo.ReplaceAll(ctx, testutil.TaxonomyFile()))

	cache := taxonomy.NewCache(repo)
	families, err := cache.Families(ctx)
	require.NoError(t, err)
	assert.Len(t, families, 2)

	types, err := cache.Types(ctx, "f-res")
	require.NoError(t, err)
	assert.Len(t, types, 2)
}
