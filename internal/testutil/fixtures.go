package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/openparcel/parcelkit/internal/domain"
	"github.com/openparcel/parcelkit/internal/hierarchy"
	"github.com/openparcel/parcelkit/internal/taxonomy"
)

var testShortIDCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithEfficiency(factor float64) ProjectOption {
	return func(p *domain.Project) {
		p.Efficiency = factor
	}
}

func WithLevel1Label(label string) ProjectOption {
	return func(p *domain.Project) {
		p.Level1Label = label
	}
}

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

// NewTestProject builds a project with a unique short id.
func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		ShortID:   fmt.Sprintf("TEST%02d", testShortIDCounter.Add(1)),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func FloatPtr(f float64) *float64 { return &f }

func StrPtr(s string) *string { return &s }

// LegacySourceSet returns a small two-area legacy payload with one
// residential and one commercial parcel.
func LegacySourceSet() *hierarchy.SourceSet {
	return &hierarchy.SourceSet{
		LegacyPhases: []hierarchy.LegacyPhaseRow{
			{PhaseID: "ph-1", AreaNo: 1, PhaseNo: 1, PhaseName: "Phase One"},
			{PhaseID: "ph-2", AreaNo: 1, PhaseNo: 2, PhaseName: "Phase Two"},
			{PhaseID: "ph-3", AreaNo: 2, PhaseNo: 1, PhaseName: "North Ridge"},
		},
		LegacyParcels: []hierarchy.LegacyParcelRow{
			{ParcelID: "pc-1", AreaNo: 1, PhaseNo: 1, ParcelName: "1.1.01",
				Acres: FloatPtr(10), Units: FloatPtr(40), LotWidth: FloatPtr(50),
				FamilyName: "Residential", TypeCode: "SFD", ProductCode: "50x120"},
			{ParcelID: "pc-2", AreaNo: 1, PhaseNo: 2, ParcelName: "1.2.03",
				Acres: FloatPtr(5), BuildingSF: FloatPtr(21780),
				FamilyName: "Commercial", TypeCode: "RET"},
			{ParcelID: "pc-3", AreaNo: 2, PhaseNo: 1, ParcelName: "2.1.01",
				Acres: FloatPtr(3), Units: FloatPtr(12),
				FamilyName: "Residential", TypeCode: "TH"},
		},
	}
}

// TaxonomyFile returns a taxonomy payload matching LegacySourceSet's codes.
func TaxonomyFile() *taxonomy.File {
	return &taxonomy.File{
		Families: []taxonomy.FamilyRecord{
			{FamilyID: "f-res", Code: "RES", Name: "Residential"},
			{FamilyID: "f-com", Code: "COM", Name: "Commercial"},
		},
		Types: []taxonomy.TypeRecord{
			{TypeID: "t-sfd", FamilyID: "f-res", Code: "SFD", Name: "Single Family Detached"},
			{TypeID: "t-th", FamilyID: "f-res", Code: "TH", Name: "Townhome"},
			{TypeID: "t-ret", FamilyID: "f-com", Code: "RET", Name: "Retail"},
		},
		Products: []taxonomy.ProductRecord{
			{ProductID: "p-50", TypeID: "t-sfd", Code: "50x120", Name: "50' Lot"},
			{ProductID: "p-60", TypeID: "t-sfd", Code: "60x120", Name: "60' Lot"},
		},
	}
}
