package taxonomy

import (
	"context"
	"strings"

	"github.com/openparcel/parcelkit/internal/domain"
)

// Source fetches raw taxonomy option lists. Implementations wrap whatever
// upstream actually serves the data (HTTP endpoints, a local store); the
// cache owns normalization and memoization.
type Source interface {
	FetchFamilies(ctx context.Context) ([]FamilyRecord, error)
	FetchTypes(ctx context.Context, familyID string) ([]TypeRecord, error)
	FetchProducts(ctx context.Context, typeID string) ([]ProductRecord, error)
}

// Raw records accept the historical alternate id field names that appear in
// upstream payloads (family_id vs id, type_id vs subtype_id).

type FamilyRecord struct {
	FamilyID string `json:"family_id,omitempty"`
	ID       string `json:"id,omitempty"`
	Code     string `json:"code,omitempty"`
	Name     string `json:"name"`
}

type TypeRecord struct {
	TypeID    string `json:"type_id,omitempty"`
	SubtypeID string `json:"subtype_id,omitempty"`
	ID        string `json:"id,omitempty"`
	FamilyID  string `json:"family_id,omitempty"`
	Code      string `json:"code,omitempty"`
	Name      string `json:"name"`
}

type ProductRecord struct {
	ProductID string `json:"product_id,omitempty"`
	ID        string `json:"id,omitempty"`
	TypeID    string `json:"type_id,omitempty"`
	Code      string `json:"code,omitempty"`
	Name      string `json:"name"`
}

// Malformed records (no resolvable id, blank name after trimming) are
// silently dropped rather than surfaced as errors.

func normalizeFamilies(records []FamilyRecord) []domain.Family {
	out := make([]domain.Family, 0, len(records))
	for _, r := range records {
		id := domain.CoalesceStr(r.FamilyID, r.ID)
		name := strings.TrimSpace(r.Name)
		if id == "" || name == "" {
			continue
		}
		out = append(out, domain.Family{ID: id, Code: strings.TrimSpace(r.Code), Name: name})
	}
	return out
}

func normalizeTypes(records []TypeRecord, familyID string) []domain.LandUseType {
	out := make([]domain.LandUseType, 0, len(records))
	for _, r := range records {
		id := domain.CoalesceStr(r.TypeID, r.SubtypeID, r.ID)
		name := strings.TrimSpace(r.Name)
		if id == "" || name == "" {
			continue
		}
		out = append(out, domain.LandUseType{
			ID:       id,
			FamilyID: domain.CoalesceStr(r.FamilyID, familyID),
			Code:     strings.TrimSpace(r.Code),
			Name:     name,
		})
	}
	return out
}

func normalizeProducts(records []ProductRecord, typeID string) []domain.Product {
	out := make([]domain.Product, 0, len(records))
	for _, r := range records {
		id := domain.CoalesceStr(r.ProductID, r.ID)
		name := strings.TrimSpace(r.Name)
		if id == "" || name == "" {
			continue
		}
		out = append(out, domain.Product{
			ID:     id,
			TypeID: domain.CoalesceStr(r.TypeID, typeID),
			Code:   strings.TrimSpace(r.Code),
			Name:   name,
		})
	}
	return out
}
