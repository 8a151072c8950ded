package repository

import (
	"context"

	"github.com/openparcel/parcelkit/internal/domain"
	"github.com/openparcel/parcelkit/internal/hierarchy"
	"github.com/openparcel/parcelkit/internal/taxonomy"
)

// ParcelUpdate carries optional field changes for one stored parcel row.
// Nil pointers leave the stored value untouched.
type ParcelUpdate struct {
	Acres       *float64
	Units       *float64
	FrontFeet   *float64
	LotWidth    *float64
	BuildingSF  *float64
	Efficiency  *float64
	FamilyName  *string
	TypeCode    *string
	ProductCode *string
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// SourceRepo stores the raw upstream payloads a tree is rebuilt from.
// Replace operations swap a project's rows wholesale; the canonical tree is
// never stored, only rebuilt.
type SourceRepo interface {
	ReplaceContainers(ctx context.Context, projectID string, nodes []hierarchy.ContainerNode) error
	ReplaceLegacy(ctx context.Context, projectID string, phases []hierarchy.LegacyPhaseRow, parcels []hierarchy.LegacyParcelRow) error
	ReplaceAreaNames(ctx context.Context, projectID string, names map[int]string) error
	LoadSourceSet(ctx context.Context, projectID string) (*hierarchy.SourceSet, error)
	UpdateLegacyParcel(ctx context.Context, projectID, parcelID string, upd ParcelUpdate) error
	UpdateContainerParcel(ctx context.Context, projectID, divisionID string, upd ParcelUpdate) error
}

// TaxonomyRepo is the sqlite-backed taxonomy source plus its import side.
type TaxonomyRepo interface {
	taxonomy.Source
	ReplaceAll(ctx context.Context, file *taxonomy.File) error
	CountRecords(ctx context.Context) (families, types, products int, err error)
}
