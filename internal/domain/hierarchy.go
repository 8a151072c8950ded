package domain

import "fmt"

// Area is the top level of the canonical planning tree. Identity is the
// sequence number; ID is a derived display key, never a storage key.
type Area struct {
	ID             string
	DisplayName    string
	SequenceNumber int
	Phases         []*Phase
}

// AreaID derives the opaque tree key for an area sequence number.
func AreaID(seq int) string {
	return fmt.Sprintf("area-%d", seq)
}

type Phase struct {
	ID             string
	DisplayName    string
	SequenceNumber int
	AreaNo         int // must equal the parent area's SequenceNumber
	Description    string
	Parcels        []*Parcel
}

// PhaseID derives the opaque tree key for a (area_no, phase_no) pair.
func PhaseID(areaNo, phaseNo int) string {
	return fmt.Sprintf("phase-%d-%d", areaNo, phaseNo)
}

// Parcel is a leaf of the canonical tree. SourceID is the upstream row
// identity (container division id or legacy parcel id); ID is tree-local.
type Parcel struct {
	ID          string
	SourceID    string
	AreaNo      int
	PhaseNo     int
	DisplayName string

	Acres      float64
	Units      int
	Frontage   float64
	LotWidth   float64
	BuildingSF float64

	FamilyName  string
	TypeCode    string
	ProductCode string

	// EfficiencyOverride replaces the project-level planning-efficiency
	// factor for this parcel when non-nil.
	EfficiencyOverride *float64
}

// IsResidential reports whether the parcel's family makes unit counts
// meaningful.
func (p *Parcel) IsResidential() bool {
	return p.FamilyName == FamilyResidential
}

// CountableUnits returns the unit count for aggregation. Units are only
// meaningful for residential parcels; every other family counts as zero
// regardless of the stored value.
func (p *Parcel) CountableUnits() int {
	if !p.IsResidential() {
		return 0
	}
	return p.Units
}

// Efficiency resolves the planning-efficiency factor for this parcel:
// the parcel override when set, else the supplied project factor, else 1.
func (p *Parcel) Efficiency(projectFactor float64) float64 {
	if p.EfficiencyOverride != nil && *p.EfficiencyOverride > 0 {
		return *p.EfficiencyOverride
	}
	if projectFactor > 0 {
		return projectFactor
	}
	return 1
}
