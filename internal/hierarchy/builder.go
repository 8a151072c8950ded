package hierarchy

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/openparcel/parcelkit/internal/domain"
)

// Build converts either upstream representation into the canonical
// Area → Phase → Parcel tree. Selection between the two sources is
// presence-based: the container rows win whenever non-empty, regardless of
// whether legacy rows were also supplied. Build is deterministic and
// side-effect free; malformed rows are dropped, never fatal.
func Build(src SourceSet) []*domain.Area {
	if len(src.Containers) > 0 {
		return buildFromContainers(src.Containers)
	}
	return buildFromLegacy(src)
}

func buildFromContainers(nodes []ContainerNode) []*domain.Area {
	areasByDivision := make(map[string]*domain.Area)
	phasesByDivision := make(map[string]*domain.Phase)

	// Level 1: areas. Sequence number comes from the area_no attribute when
	// present, else the node's sort order.
	for _, n := range nodes {
		if n.Level != domain.LevelArea || !validContainerNode(n) {
			continue
		}
		if _, ok := areasByDivision[n.DivisionID]; ok {
			continue // duplicate division id, keep first
		}
		seq := attrInt(n.Attributes, n.SortOrder, "area_no")
		areasByDivision[n.DivisionID] = &domain.Area{
			ID:             domain.AreaID(seq),
			DisplayName:    strings.TrimSpace(n.DisplayName),
			SequenceNumber: seq,
		}
	}

	// Level 2: phases. A phase whose parent is not a known area is dropped.
	for _, n := range nodes {
		if n.Level != domain.LevelPhase || !validContainerNode(n) {
			continue
		}
		area, ok := areasByDivision[n.ParentID]
		if !ok {
			continue
		}
		if _, ok := phasesByDivision[n.DivisionID]; ok {
			continue
		}
		seq := attrInt(n.Attributes, n.SortOrder, "phase_no")
		phase := &domain.Phase{
			ID:             domain.PhaseID(area.SequenceNumber, seq),
			DisplayName:    strings.TrimSpace(n.DisplayName),
			SequenceNumber: seq,
			AreaNo:         area.SequenceNumber,
			Description:    attrString(n.Attributes, "description"),
		}
		phasesByDivision[n.DivisionID] = phase
		area.Phases = append(area.Phases, phase)
	}

	// Level 3: parcels. A parcel whose parent is not a known phase is an
	// orphan and never promoted into a synthetic phase.
	for _, n := range nodes {
		if n.Level != domain.LevelParcel || !validContainerNode(n) {
			continue
		}
		phase, ok := phasesByDivision[n.ParentID]
		if !ok {
			continue
		}
		phase.Parcels = append(phase.Parcels, parcelFromContainer(n, phase))
	}

	areas := make([]*domain.Area, 0, len(areasByDivision))
	for _, a := range areasByDivision {
		areas = append(areas, a)
	}
	sortTree(areas)
	return areas
}

func parcelFromContainer(n ContainerNode, phase *domain.Phase) *domain.Parcel {
	name := FormatDottedID(strings.TrimSpace(n.DisplayName))
	p := &domain.Parcel{
		ID:          fmt.Sprintf("parcel-%s", n.DivisionID),
		SourceID:    n.DivisionID,
		AreaNo:      phase.AreaNo,
		PhaseNo:     phase.SequenceNumber,
		DisplayName: name,
		Acres:       attrFloat(n.Attributes, "acres"),
		Units:       int(attrFloat(n.Attributes, "units")),
		Frontage:    attrFloat(n.Attributes, "frontfeet", "front_feet"),
		LotWidth:    attrFloat(n.Attributes, "lot_width", "lotwidth"),
		BuildingSF:  attrFloat(n.Attributes, "building_sf"),
		FamilyName:  attrString(n.Attributes, "family_name", "family"),
		TypeCode:    attrString(n.Attributes, "type_code", "usecode"),
		ProductCode: attrString(n.Attributes, "product_code", "product"),
	}
	if eff := attrFloat(n.Attributes, "efficiency"); eff > 0 {
		p.EfficiencyOverride = &eff
	}
	return p
}

func buildFromLegacy(src SourceSet) []*domain.Area {
	label := domain.CoalesceStr(src.Level1Label, domain.DefaultLevel1Label)

	areasByNo := make(map[int]*domain.Area)
	phasesByKey := make(map[string]*domain.Phase)

	for _, row := range src.LegacyPhases {
		if row.PhaseID == "" {
			continue
		}
		areaNo, ok := intFromFloat(row.AreaNo)
		if !ok {
			continue
		}
		phaseNo, ok := intFromFloat(row.PhaseNo)
		if !ok {
			continue
		}

		area, ok := areasByNo[areaNo]
		if !ok {
			name := src.AreaNames[areaNo]
			if name == "" {
				name = fmt.Sprintf("%s %d", label, areaNo)
			}
			area = &domain.Area{
				ID:             domain.AreaID(areaNo),
				DisplayName:    name,
				SequenceNumber: areaNo,
			}
			areasByNo[areaNo] = area
		}

		key := domain.PhaseID(areaNo, phaseNo)
		if _, ok := phasesByKey[key]; ok {
			continue // duplicate (area_no, phase_no), keep first
		}
		phase := &domain.Phase{
			ID:             key,
			DisplayName:    domain.CoalesceStr(strings.TrimSpace(row.PhaseName), fmt.Sprintf("Phase %d", phaseNo)),
			SequenceNumber: phaseNo,
			AreaNo:         areaNo,
			Description:    row.Description,
		}
		phasesByKey[key] = phase
		area.Phases = append(area.Phases, phase)
	}

	for _, row := range src.LegacyParcels {
		if row.ParcelID == "" {
			continue
		}
		areaNo, ok := intFromFloat(row.AreaNo)
		if !ok {
			continue
		}
		phaseNo, ok := intFromFloat(row.PhaseNo)
		if !ok {
			continue
		}
		phase, ok := phasesByKey[domain.PhaseID(areaNo, phaseNo)]
		if !ok {
			continue // orphan parcel, never synthesize a phase
		}
		phase.Parcels = append(phase.Parcels, parcelFromLegacy(row, areaNo, phaseNo))
	}

	areas := make([]*domain.Area, 0, len(areasByNo))
	for _, a := range areasByNo {
		areas = append(areas, a)
	}
	sortTree(areas)
	return areas
}

func parcelFromLegacy(row LegacyParcelRow, areaNo, phaseNo int) *domain.Parcel {
	name := FormatDottedID(strings.TrimSpace(row.ParcelName))
	if name == "" {
		name = row.ParcelID
	}
	p := &domain.Parcel{
		ID:          fmt.Sprintf("parcel-%s", row.ParcelID),
		SourceID:    row.ParcelID,
		AreaNo:      areaNo,
		PhaseNo:     phaseNo,
		DisplayName: name,
		Acres:       nonNegFinite(domain.Float64FromPtrWithDefault(0, row.Acres)),
		Units:       int(nonNegFinite(domain.Float64FromPtrWithDefault(0, row.Units))),
		Frontage:    nonNegFinite(domain.Float64FromPtrWithDefault(0, row.FrontFeet)),
		LotWidth:    nonNegFinite(domain.Float64FromPtrWithDefault(0, row.LotWidth)),
		BuildingSF:  nonNegFinite(domain.Float64FromPtrWithDefault(0, row.BuildingSF)),
		FamilyName:  strings.TrimSpace(row.FamilyName),
		TypeCode:    domain.CoalesceStr(strings.TrimSpace(row.TypeCode), strings.TrimSpace(row.UseCode)),
		ProductCode: domain.CoalesceStr(strings.TrimSpace(row.ProductCode), strings.TrimSpace(row.Product)),
	}
	if row.Efficiency != nil {
		if eff := nonNegFinite(*row.Efficiency); eff > 0 {
			p.EfficiencyOverride = &eff
		}
	}
	return p
}

// sortTree orders areas and phases numerically and parcels by display name
// using locale-aware collation.
func sortTree(areas []*domain.Area) {
	coll := collate.New(language.English, collate.Loose)
	sort.Slice(areas, func(i, j int) bool {
		return areas[i].SequenceNumber < areas[j].SequenceNumber
	})
	for _, area := range areas {
		sort.Slice(area.Phases, func(i, j int) bool {
			return area.Phases[i].SequenceNumber < area.Phases[j].SequenceNumber
		})
		for _, phase := range area.Phases {
			parcels := phase.Parcels
			sort.SliceStable(parcels, func(i, j int) bool {
				return coll.CompareString(parcels[i].DisplayName, parcels[j].DisplayName) < 0
			})
		}
	}
}

func validContainerNode(n ContainerNode) bool {
	return n.DivisionID != "" && strings.TrimSpace(n.DisplayName) != ""
}

func intFromFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func nonNegFinite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// attrFloat extracts the first coercible numeric attribute under keys.
// Absent or non-coercible values default to 0.
func attrFloat(attrs map[string]any, keys ...string) float64 {
	for _, key := range keys {
		v, ok := attrs[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return nonNegFinite(n)
		case int:
			return nonNegFinite(float64(n))
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return nonNegFinite(f)
			}
		}
	}
	return 0
}

// attrInt is attrFloat restricted to integral values, with a fallback.
func attrInt(attrs map[string]any, fallback int, keys ...string) int {
	for _, key := range keys {
		v, ok := attrs[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			if i, ok := intFromFloat(n); ok {
				return i
			}
		case int:
			return n
		case string:
			if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
				return i
			}
		}
	}
	return fallback
}

// attrString extracts the first non-blank string attribute under keys.
func attrString(attrs map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := attrs[key]; ok {
			if s, ok := v.(string); ok {
				if trimmed := strings.TrimSpace(s); trimmed != "" {
					return trimmed
				}
			}
		}
	}
	return ""
}
