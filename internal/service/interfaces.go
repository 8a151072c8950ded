package service

import (
	"context"

	"github.com/openparcel/parcelkit/internal/domain"
	"github.com/openparcel/parcelkit/internal/repository"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// PlanView is a freshly rebuilt canonical tree plus its project context.
type PlanView struct {
	Project *domain.Project
	Areas   []*domain.Area
	Source  domain.SourceKind
}

// SourceImportResult reports what a source import stored.
type SourceImportResult struct {
	ContainerCount int
	PhaseCount     int
	ParcelCount    int
	AreaNameCount  int
}

// PlanService rebuilds the canonical tree from the stored source payloads.
// Every BuildTree call rebuilds from scratch; nothing tree-shaped is cached
// or stored.
type PlanService interface {
	BuildTree(ctx context.Context, projectID string) (*PlanView, error)
	ImportSources(ctx context.Context, projectID string, filePath string) (*SourceImportResult, error)
}

// ParcelService reads and edits individual parcels. Edits mutate one stored
// source row; the next BuildTree picks them up.
type ParcelService interface {
	Get(ctx context.Context, projectID, sourceID string) (*domain.Parcel, error)
	Set(ctx context.Context, projectID, sourceID string, upd repository.ParcelUpdate) error
}

// TaxonomyImportResult reports what a taxonomy import stored.
type TaxonomyImportResult struct {
	FamilyCount  int
	TypeCount    int
	ProductCount int
}

// TaxonomyService fronts the cached taxonomy: option lists for pickers and
// chain resolution for display and validation.
type TaxonomyService interface {
	Import(ctx context.Context, filePath string) (*TaxonomyImportResult, error)
	Families(ctx context.Context) ([]domain.Family, error)
	Types(ctx context.Context, familyID string) ([]domain.LandUseType, error)
	Products(ctx context.Context, typeID string) ([]domain.Product, error)
	Resolve(ctx context.Context, parcel *domain.Parcel) (domain.Selection, error)
}
