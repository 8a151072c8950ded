package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openparcel/parcelkit/internal/domain"
	"github.com/openparcel/parcelkit/internal/taxonomy"
	"github.com/openparcel/parcelkit/internal/testutil"
)

func TestTaxonomyService_Import_CountsStoredRecords(t *testing.T) {
	_, _, taxRepo, _ := setupRepos(t)
	ctx := context.Background()

	svc := NewTaxonomyService(taxRepo)

	result, err := svc.Import(ctx, writeJSONFile(t, testutil.TaxonomyFile()))
	require.NoError(t, err)

	assert.Equal(t, 2, result.FamilyCount)
	assert.Equal(t, 3, result.TypeCount)
	assert.Equal(t, 2, result.ProductCount)
}

func TestTaxonomyService_ListsComeFromCache(t *testing.T) {
	_, _, taxRepo, _ := setupRepos(t)
	ctx := context.Background()

	svc := NewTaxonomyService(taxRepo)
	_, err := svc.Import(ctx, writeJSONFile(t, testutil.TaxonomyFile()))
	require.NoError(t, err)

	families, err := svc.Families(ctx)
	require.NoError(t, err)
	require.Len(t, families, 2)

	var resID string
	for _, f := range families {
		if f.Name == "Residential" {
			resID = f.ID
		}
	}
	require.NotEmpty(t, resID)

	types, err := svc.Types(ctx, resID)
	require.NoError(t, err)
	assert.Len(t, types, 2, "only the residential types")

	products, err := svc.Products(ctx, "t-sfd")
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestTaxonomyService_Resolve_FullChain(t *testing.T) {
	_, _, taxRepo, _ := setupRepos(t)
	ctx := context.Background()

	svc := NewTaxonomyService(taxRepo)
	_, err := svc.Import(ctx, writeJSONFile(t, testutil.TaxonomyFile()))
	require.NoError(t, err)

	sel, err := svc.Resolve(ctx, &domain.Parcel{
		FamilyName:  "residential",
		TypeCode:    "SFD",
		ProductCode: "50x120",
	})
	require.NoError(t, err)

	assert.Equal(t, "f-res", sel.FamilyID)
	assert.Equal(t, "t-sfd", sel.TypeID)
	assert.Equal(t, "p-50", sel.ProductID)
	assert.True(t, sel.Complete)
}

func TestTaxonomyService_Resolve_ZeroProductTypeIsComplete(t *testing.T) {
	_, _, taxRepo, _ := setupRepos(t)
	ctx := context.Background()

	svc := NewTaxonomyService(taxRepo)
	_, err := svc.Import(ctx, writeJSONFile(t, testutil.TaxonomyFile()))
	require.NoError(t, err)

	sel, err := svc.Resolve(ctx, &domain.Parcel{
		FamilyName: "Commercial",
		TypeCode:   "RET",
	})
	require.NoError(t, err)

	assert.Equal(t, "t-ret", sel.TypeID)
	assert.Empty(t, sel.ProductID)
	assert.True(t, sel.Complete, "retail carries no products")
}

func TestTaxonomyService_ReimportInvalidatesCache(t *testing.T) {
	_, _, taxRepo, _ := setupRepos(t)
	ctx := context.Background()

	svc := NewTaxonomyService(taxRepo)
	_, err := svc.Import(ctx, writeJSONFile(t, testutil.TaxonomyFile()))
	require.NoError(t, err)

	// Warm the cache.
	_, err = svc.Families(ctx)
	require.NoError(t, err)

	replacement := &taxonomy.File{
		Families: []taxonomy.FamilyRecord{
			{FamilyID: "f-ind", Code: "IND", Name: "Industrial"},
		},
	}
	_, err = svc.Import(ctx, writeJSONFile(t, replacement))
	require.NoError(t, err)

	families, err := svc.Families(ctx)
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "Industrial", families[0].Name)
}
