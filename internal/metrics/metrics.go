// Package metrics derives planning metrics from raw parcel attributes.
// Every function returns (value, ok); ok=false means the inputs make the
// metric meaningless. NaN never escapes into a caller's rollup.
package metrics

import "math"

// SquareFeetPerAcre is the surveyor's acre in square feet.
const SquareFeetPerAcre = 43560

// Density computes dwelling units per net acre. An efficiency of 0 means the
// project has not configured a planning-efficiency factor and is treated
// as 1. Not meaningful when acres (or the effective net acreage) is zero or
// negative.
func Density(units float64, acres float64, efficiency float64) (float64, bool) {
	if efficiency == 0 {
		efficiency = 1
	}
	if !finite(units) || !finite(acres) || !finite(efficiency) {
		return 0, false
	}
	net := acres * efficiency
	if net <= 0 {
		return 0, false
	}
	return units / net, true
}

// FrontFeetPerAcre computes lineal front footage per acre from unit count
// and typical lot width. All three inputs must be finite and positive.
func FrontFeetPerAcre(units float64, lotWidth float64, acres float64) (float64, bool) {
	if !positive(units) || !positive(lotWidth) || !positive(acres) {
		return 0, false
	}
	return (units * lotWidth) / acres, true
}

// FloorAreaRatio computes building square footage over site area.
func FloorAreaRatio(buildingSF float64, acres float64) (float64, bool) {
	if !positive(buildingSF) || !positive(acres) {
		return 0, false
	}
	return buildingSF / (acres * SquareFeetPerAcre), true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func positive(f float64) bool {
	return finite(f) && f > 0
}
