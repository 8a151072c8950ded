package domain

// Container node levels in the unified hierarchy representation.
const (
	LevelArea   = 1
	LevelPhase  = 2
	LevelParcel = 3
)

// FamilyResidential is the land-use family whose parcels carry meaningful
// unit counts. Matching is by canonical family name.
const FamilyResidential = "Residential"

// SourceKind identifies which upstream representation a tree was built from.
type SourceKind string

const (
	SourceContainer SourceKind = "container"
	SourceLegacy    SourceKind = "legacy"
)

// DefaultLevel1Label is the synthesized area label prefix when a project has
// not configured one and the legacy source carries no name lookup.
const DefaultLevel1Label = "Area"
