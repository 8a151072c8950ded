package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAreaID(t *testing.T) {
	assert.Equal(t, "area-3", AreaID(3))
	assert.Equal(t, "area-0", AreaID(0))
}

func TestPhaseID(t *testing.T) {
	assert.Equal(t, "phase-1-2", PhaseID(1, 2))
}

func TestCountableUnits_Residential(t *testing.T) {
	p := &Parcel{FamilyName: FamilyResidential, Units: 40}
	assert.Equal(t, 40, p.CountableUnits())
}

func TestCountableUnits_NonResidentialIsZero(t *testing.T) {
	cases := []string{"Commercial", "Industrial", "", "residential"}
	for _, family := range cases {
		p := &Parcel{FamilyName: family, Units: 40}
		assert.Equal(t, 0, p.CountableUnits(), "family=%q", family)
	}
}

func TestEfficiency_OverrideWins(t *testing.T) {
	override := 0.85
	p := &Parcel{EfficiencyOverride: &override}
	assert.Equal(t, 0.85, p.Efficiency(0.7))
}

func TestEfficiency_ProjectFactor(t *testing.T) {
	p := &Parcel{}
	assert.Equal(t, 0.7, p.Efficiency(0.7))
}

func TestEfficiency_UnconfiguredDefaultsToOne(t *testing.T) {
	p := &Parcel{}
	assert.Equal(t, 1.0, p.Efficiency(0))

	zero := 0.0
	p = &Parcel{EfficiencyOverride: &zero}
	assert.Equal(t, 1.0, p.Efficiency(0), "non-positive override is ignored")
}

func TestValidateShortID(t *testing.T) {
	cases := []struct {
		shortID string
		ok      bool
	}{
		{"MESA02", true},
		{"RIVERTON", true},
		{"AB", true},
		{"", false},
		{"mesa02", false},
		{"M1", false},
		{"TOOLONGNAME01", false},
	}
	for _, tc := range cases {
		p := &Project{ShortID: tc.shortID}
		err := p.ValidateShortID()
		if tc.ok {
			assert.NoError(t, err, "shortID=%q", tc.shortID)
		} else {
			assert.Error(t, err, "shortID=%q", tc.shortID)
		}
	}
}
