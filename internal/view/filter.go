// Package view scopes the canonical tree to multi-select filters and
// recomputes per-area rollups over the post-filter parcel set.
package view

import (
	"math"

	"github.com/openparcel/parcelkit/internal/domain"
)

// Filter holds the multi-select view filters. An empty set or blank code is
// a wildcard for its dimension. Dimensions combine conjunctively; values
// within a dimension combine disjunctively.
type Filter struct {
	AreaNos     map[int]bool
	PhaseNames  map[string]bool
	LandUseCode string
}

// Rollup aggregates the visible parcels of one area. GrossAcres keeps the
// unrounded float; GrossAcresRounded is the whole-unit figure area tiles
// display. Zero-valued for an area with no visible parcels, never NaN.
type Rollup struct {
	AreaNo            int
	GrossAcres        float64
	GrossAcresRounded int
	PhaseCount        int
	ParcelCount       int
	UnitSum           int
}

// Result is a view-scoped slice of the canonical tree. Nodes are shared with
// the input tree, not copies; Apply never mutates them.
type Result struct {
	Areas   []*domain.Area
	Phases  []*domain.Phase
	Parcels []*domain.Parcel
	Rollups []Rollup // one per visible area, in area order
}

// Apply filters the tree. A parcel is visible iff every dimension admits it.
// Phase-level visibility additionally requires the phase to contain at least
// one parcel regardless of filters: empty phases never appear in phase-level
// views.
func Apply(tree []*domain.Area, f Filter) Result {
	var res Result
	for _, area := range tree {
		if !f.areaVisible(area.SequenceNumber) {
			continue
		}
		res.Areas = append(res.Areas, area)

		rollup := Rollup{AreaNo: area.SequenceNumber}
		phasesSeen := make(map[int]bool)

		for _, phase := range area.Phases {
			if !f.phaseNameVisible(phase.DisplayName) {
				continue
			}
			if len(phase.Parcels) > 0 {
				res.Phases = append(res.Phases, phase)
			}
			for _, parcel := range phase.Parcels {
				if !f.landUseVisible(parcel.TypeCode) {
					continue
				}
				res.Parcels = append(res.Parcels, parcel)
				rollup.GrossAcres += parcel.Acres
				rollup.ParcelCount++
				rollup.UnitSum += parcel.CountableUnits()
				phasesSeen[phase.SequenceNumber] = true
			}
		}

		rollup.PhaseCount = len(phasesSeen)
		rollup.GrossAcresRounded = int(math.Round(rollup.GrossAcres))
		res.Rollups = append(res.Rollups, rollup)
	}
	return res
}

func (f Filter) areaVisible(areaNo int) bool {
	return len(f.AreaNos) == 0 || f.AreaNos[areaNo]
}

func (f Filter) phaseNameVisible(name string) bool {
	return len(f.PhaseNames) == 0 || f.PhaseNames[name]
}

func (f Filter) landUseVisible(typeCode string) bool {
	return f.LandUseCode == "" || typeCode == f.LandUseCode
}
