package hierarchy

import (
	"encoding/json"
	"fmt"
	"os"
)

// ContainerNode is one row of the newer unified hierarchy representation.
// The three levels map directly to Area/Phase/Parcel; parcel numeric fields
// and land-use codes ride in the free-form attributes map.
type ContainerNode struct {
	DivisionID  string         `json:"division_id"`
	Level       int            `json:"level"`
	DisplayName string         `json:"display_name"`
	SortOrder   int            `json:"sort_order"`
	ParentID    string         `json:"parent_id,omitempty"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

// LegacyPhaseRow is one row of the older flat phase table. Area and phase
// numbers are kept as float64 exactly as JSON delivers them; the builder
// rejects rows whose numbers are non-finite or non-integral.
type LegacyPhaseRow struct {
	PhaseID     string  `json:"phase_id"`
	AreaID      string  `json:"area_id,omitempty"`
	AreaNo      float64 `json:"area_no"`
	PhaseNo     float64 `json:"phase_no"`
	PhaseName   string  `json:"phase_name,omitempty"`
	Description string  `json:"description,omitempty"`
}

// LegacyParcelRow is one row of the older flat parcel table. ParcelName is
// the dotted identifier string ("{area}.{phase}.{parcel}").
type LegacyParcelRow struct {
	ParcelID    string   `json:"parcel_id"`
	AreaNo      float64  `json:"area_no"`
	PhaseNo     float64  `json:"phase_no"`
	PhaseName   string   `json:"phase_name,omitempty"`
	ParcelName  string   `json:"parcel_name"`
	UseCode     string   `json:"usecode,omitempty"`
	Acres       *float64 `json:"acres,omitempty"`
	Units       *float64 `json:"units,omitempty"`
	FrontFeet   *float64 `json:"frontfeet,omitempty"`
	LotWidth    *float64 `json:"lot_width,omitempty"`
	BuildingSF  *float64 `json:"building_sf,omitempty"`
	Product     string   `json:"product,omitempty"`
	FamilyName  string   `json:"family_name,omitempty"`
	TypeCode    string   `json:"type_code,omitempty"`
	ProductCode string   `json:"product_code,omitempty"`
	Efficiency  *float64 `json:"efficiency,omitempty"`
}

// SourceSet bundles both upstream representations plus caller-supplied
// naming. Container rows win whenever present (see Build).
type SourceSet struct {
	Containers    []ContainerNode   `json:"containers,omitempty"`
	LegacyPhases  []LegacyPhaseRow  `json:"phases,omitempty"`
	LegacyParcels []LegacyParcelRow `json:"parcels,omitempty"`

	// AreaNames maps area_no to a caller-supplied display name for the
	// legacy path. Missing entries fall back to "{Level1Label} {area_no}".
	AreaNames map[int]string `json:"area_names,omitempty"`

	// Level1Label is the label prefix for synthesized area names.
	Level1Label string `json:"level1_label,omitempty"`
}

// LoadSourceSet reads and parses a source payload JSON file.
func LoadSourceSet(path string) (*SourceSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var src SourceSet
	if err := json.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("parsing source file: %w", err)
	}
	return &src, nil
}
