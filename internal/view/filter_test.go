package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openparcel/parcelkit/internal/domain"
)

func testTree() []*domain.Area {
	return []*domain.Area{
		{
			ID: "area-1", DisplayName: "Area 1", SequenceNumber: 1,
			Phases: []*domain.Phase{
				{
					ID: "phase-1-1", DisplayName: "A", SequenceNumber: 1, AreaNo: 1,
					Parcels: []*domain.Parcel{
						{ID: "parcel-a", DisplayName: "1.101", AreaNo: 1, PhaseNo: 1,
							Acres: 10.4, Units: 40, FamilyName: domain.FamilyResidential, TypeCode: "SFD"},
						{ID: "parcel-b", DisplayName: "1.102", AreaNo: 1, PhaseNo: 1,
							Acres: 5.2, Units: 99, FamilyName: "Commercial", TypeCode: "RET"},
					},
				},
				{ID: "phase-1-2", DisplayName: "Empty", SequenceNumber: 2, AreaNo: 1},
			},
		},
		{
			ID: "area-2", DisplayName: "Area 2", SequenceNumber: 2,
			Phases: []*domain.Phase{
				{
					ID: "phase-2-1", DisplayName: "B", SequenceNumber: 1, AreaNo: 2,
					Parcels: []*domain.Parcel{
						{ID: "parcel-c", DisplayName: "2.101", AreaNo: 2, PhaseNo: 1,
							Acres: 3.3, Units: 12, FamilyName: domain.FamilyResidential, TypeCode: "TH"},
					},
				},
			},
		},
	}
}

func TestApply_NoFilters(t *testing.T) {
	res := Apply(testTree(), Filter{})
	assert.Len(t, res.Areas, 2)
	assert.Len(t, res.Parcels, 3)

	phaseIDs := make([]string, 0, len(res.Phases))
	for _, p := range res.Phases {
		phaseIDs = append(phaseIDs, p.ID)
	}
	assert.NotContains(t, phaseIDs, "phase-1-2", "empty phases never appear even unfiltered")
	assert.Len(t, res.Phases, 2)
}

func TestApply_DimensionsIntersect(t *testing.T) {
	// Area 1 only holds phase A; phase B only exists in area 2. Conjunctive
	// dimensions must intersect to nothing.
	res := Apply(testTree(), Filter{
		AreaNos:    map[int]bool{1: true},
		PhaseNames: map[string]bool{"B": true},
	})
	assert.Empty(t, res.Parcels)
	assert.Len(t, res.Areas, 1)
}

func TestApply_DisjunctiveWithinDimension(t *testing.T) {
	res := Apply(testTree(), Filter{
		PhaseNames: map[string]bool{"A": true, "B": true},
	})
	assert.Len(t, res.Parcels, 3)
}

func TestApply_LandUseCode(t *testing.T) {
	res := Apply(testTree(), Filter{LandUseCode: "SFD"})
	require.Len(t, res.Parcels, 1)
	assert.Equal(t, "parcel-a", res.Parcels[0].ID)
}

func TestApply_RollupsFromPostFilterSet(t *testing.T) {
	res := Apply(testTree(), Filter{LandUseCode: "SFD"})
	require.Len(t, res.Rollups, 2)

	r1 := res.Rollups[0]
	assert.Equal(t, 1, r1.AreaNo)
	assert.InDelta(t, 10.4, r1.GrossAcres, 1e-9, "float retained")
	assert.Equal(t, 10, r1.GrossAcresRounded)
	assert.Equal(t, 1, r1.PhaseCount)
	assert.Equal(t, 1, r1.ParcelCount)
	assert.Equal(t, 40, r1.UnitSum)

	r2 := res.Rollups[1]
	assert.Equal(t, 2, r2.AreaNo)
	assert.Zero(t, r2.GrossAcres, "zero-safe rollup for an area with no visible parcels")
	assert.Zero(t, r2.ParcelCount)
	assert.Zero(t, r2.UnitSum)
}

func TestApply_UnitSumCountsResidentialOnly(t *testing.T) {
	res := Apply(testTree(), Filter{AreaNos: map[int]bool{1: true}})
	require.Len(t, res.Rollups, 1)
	assert.Equal(t, 40, res.Rollups[0].UnitSum, "commercial units are not applicable")
	assert.Equal(t, 2, res.Rollups[0].ParcelCount)
}

func TestApply_RoundingHalfUp(t *testing.T) {
	tree := []*domain.Area{{
		SequenceNumber: 1,
		Phases: []*domain.Phase{{
			DisplayName: "A", SequenceNumber: 1, AreaNo: 1,
			Parcels: []*domain.Parcel{{ID: "p", DisplayName: "x", Acres: 2.5}},
		}},
	}}
	res := Apply(tree, Filter{})
	require.Len(t, res.Rollups, 1)
	assert.InDelta(t, 2.5, res.Rollups[0].GrossAcres, 1e-9)
	assert.Equal(t, 3, res.Rollups[0].GrossAcresRounded)
}

func TestApply_DoesNotMutateTree(t *testing.T) {
	tree := testTree()
	_ = Apply(tree, Filter{LandUseCode: "SFD"})
	assert.Len(t, tree[0].Phases[0].Parcels, 2)
	assert.Len(t, tree[0].Phases, 2)
}
