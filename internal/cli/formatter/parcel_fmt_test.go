package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openparcel/parcelkit/internal/domain"
)

func TestFormatParcelTable_UndefinedMetricsRenderAsDashes(t *testing.T) {
	rows := []ParcelRow{
		{
			Parcel: &domain.Parcel{
				DisplayName: "1.203",
				FamilyName:  "Commercial",
				TypeCode:    "RET",
				Acres:       5,
				BuildingSF:  21780,
			},
			FAR:      0.1,
			FAROK:    true,
			Complete: true,
		},
	}

	out := FormatParcelTable(rows)

	assert.Contains(t, out, "1.203")
	assert.Contains(t, out, "0.10", "defined FAR renders with two decimals")
	assert.Contains(t, out, Undefined, "undefined density renders as the placeholder")
	assert.NotContains(t, out, "0.00", "undefined metrics never render as zero")
}

func TestFormatParcelTable_ResidentialShowsUnits(t *testing.T) {
	rows := []ParcelRow{
		{
			Parcel: &domain.Parcel{
				DisplayName: "1.101",
				FamilyName:  domain.FamilyResidential,
				TypeCode:    "SFD",
				ProductCode: "50x120",
				Acres:       10,
				Units:       40,
			},
			Density:   5,
			DensityOK: true,
			Complete:  true,
		},
	}

	out := FormatParcelTable(rows)

	assert.Contains(t, out, "40")
	assert.Contains(t, out, "5.00")
	assert.Contains(t, out, "50x120")
}

func TestFormatParcelTable_Empty(t *testing.T) {
	out := FormatParcelTable(nil)
	assert.Contains(t, out, "No parcels match")
}

func TestFormatParcelDetail_IncompleteShowsWarning(t *testing.T) {
	row := ParcelRow{
		Parcel: &domain.Parcel{
			DisplayName: "2.101",
			SourceID:    "pc-3",
			AreaNo:      2,
			PhaseNo:     1,
			FamilyName:  domain.FamilyResidential,
			TypeCode:    "TH",
			Acres:       3,
			Units:       12,
		},
		Density:   4,
		DensityOK: true,
		Complete:  false,
	}

	out := FormatParcelDetail(row, domain.Selection{FamilyID: "f-res", TypeID: "t-th"})

	assert.Contains(t, out, "incomplete")
	assert.Contains(t, out, "pc-3")
	assert.Contains(t, out, "f-res")
}
