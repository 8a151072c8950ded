package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
)

// File is the top-level JSON structure for a taxonomy import payload.
// Records keep the upstream field names, alternate id keys included.
type File struct {
	Families []FamilyRecord  `json:"families"`
	Types    []TypeRecord    `json:"types"`
	Products []ProductRecord `json:"products"`
}

// LoadFile reads and parses a taxonomy import JSON file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing taxonomy file: %w", err)
	}
	return &f, nil
}
