package domain

import (
	"fmt"
	"regexp"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{2,8}[0-9]{0,4}$`)

// Project is the local registry entry a planning tree belongs to. It carries
// the two per-project knobs the engine consumes: the planning-efficiency
// factor (feeds density) and the level-1 label (feeds legacy area naming).
type Project struct {
	ID          string
	ShortID     string
	Name        string
	Efficiency  float64 // 0 means unconfigured; density falls back to 1
	Level1Label string  // "" means unconfigured; builder falls back to "Area"
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateShortID checks that ShortID is non-empty and matches the required
// format: 2-8 uppercase letters optionally followed by up to 4 digits
// (e.g. RIVERTON, MESA02).
func (p *Project) ValidateShortID() error {
	if p.ShortID == "" {
		return fmt.Errorf("short ID is required (use --id flag)")
	}
	if !shortIDPattern.MatchString(p.ShortID) {
		return fmt.Errorf("short ID %q must be 2-8 uppercase letters optionally followed by up to 4 digits (e.g. MESA02)", p.ShortID)
	}
	return nil
}

// Level1LabelOrDefault returns the configured level-1 label, or the default.
func (p *Project) Level1LabelOrDefault() string {
	return CoalesceStr(p.Level1Label, DefaultLevel1Label)
}
