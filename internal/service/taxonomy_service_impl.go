package service

import (
	"context"
	"fmt"

	"github.com/openparcel/parcelkit/internal/domain"
	"github.com/openparcel/parcelkit/internal/repository"
	"github.com/openparcel/parcelkit/internal/taxonomy"
)

type taxonomyService struct {
	repo  repository.TaxonomyRepo
	cache *taxonomy.Cache
}

func NewTaxonomyService(repo repository.TaxonomyRepo) TaxonomyService {
	return &taxonomyService{repo: repo, cache: taxonomy.NewCache(repo)}
}

func (s *taxonomyService) Import(ctx context.Context, filePath string) (*TaxonomyImportResult, error) {
	file, err := taxonomy.LoadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading taxonomy file: %w", err)
	}
	if err := s.repo.ReplaceAll(ctx, file); err != nil {
		return nil, err
	}
	s.cache.Invalidate()

	families, types, products, err := s.repo.CountRecords(ctx)
	if err != nil {
		return nil, err
	}
	return &TaxonomyImportResult{
		FamilyCount:  families,
		TypeCount:    types,
		ProductCount: products,
	}, nil
}

func (s *taxonomyService) Families(ctx context.Context) ([]domain.Family, error) {
	return s.cache.Families(ctx)
}

func (s *taxonomyService) Types(ctx context.Context, familyID string) ([]domain.LandUseType, error) {
	return s.cache.Types(ctx, familyID)
}

func (s *taxonomyService) Products(ctx context.Context, typeID string) ([]domain.Product, error) {
	return s.cache.Products(ctx, typeID)
}

func (s *taxonomyService) Resolve(ctx context.Context, parcel *domain.Parcel) (domain.Selection, error) {
	return taxonomy.Resolve(ctx, parcel, s.cache)
}
