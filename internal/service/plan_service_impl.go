package service

import (
	"context"
	"fmt"

	"github.com/openparcel/parcelkit/internal/db"
	"github.com/openparcel/parcelkit/internal/domain"
	"github.com/openparcel/parcelkit/internal/hierarchy"
	"github.com/openparcel/parcelkit/internal/repository"
)

type planService struct {
	projects repository.ProjectRepo
	sources  repository.SourceRepo
	uow      db.UnitOfWork
}

func NewPlanService(projects repository.ProjectRepo, sources repository.SourceRepo, uow db.UnitOfWork) PlanService {
	return &planService{projects: projects, sources: sources, uow: uow}
}

func (s *planService) BuildTree(ctx context.Context, projectID string) (*PlanView, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}

	src, err := s.sources.LoadSourceSet(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading sources: %w", err)
	}
	src.Level1Label = project.Level1LabelOrDefault()

	kind := domain.SourceLegacy
	if len(src.Containers) > 0 {
		kind = domain.SourceContainer
	}

	return &PlanView{
		Project: project,
		Areas:   hierarchy.Build(*src),
		Source:  kind,
	}, nil
}

// ImportSources loads a source payload file and swaps the project's stored
// rows for its contents in one transaction. Both representations may arrive
// in one file; Build applies the presence-based priority on every read.
func (s *planService) ImportSources(ctx context.Context, projectID string, filePath string) (*SourceImportResult, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}

	src, err := hierarchy.LoadSourceSet(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading source file: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteSourceRepo(tx)
		if err := repo.ReplaceContainers(ctx, projectID, src.Containers); err != nil {
			return err
		}
		if err := repo.ReplaceLegacy(ctx, projectID, src.LegacyPhases, src.LegacyParcels); err != nil {
			return err
		}
		if err := repo.ReplaceAreaNames(ctx, projectID, src.AreaNames); err != nil {
			return err
		}
		if src.Level1Label != "" && src.Level1Label != project.Level1Label {
			project.Level1Label = src.Level1Label
			projectRepo := repository.NewSQLiteProjectRepo(tx)
			if err := projectRepo.Update(ctx, project); err != nil {
				return fmt.Errorf("updating project label: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SourceImportResult{
		ContainerCount: len(src.Containers),
		PhaseCount:     len(src.LegacyPhases),
		ParcelCount:    len(src.LegacyParcels),
		AreaNameCount:  len(src.AreaNames),
	}, nil
}
