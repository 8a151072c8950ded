package service

import (
	"context"
	"fmt"

	"github.com/openparcel/parcelkit/internal/domain"
	"github.com/openparcel/parcelkit/internal/repository"
)

type parcelService struct {
	plans   PlanService
	sources repository.SourceRepo
}

func NewParcelService(plans PlanService, sources repository.SourceRepo) ParcelService {
	return &parcelService{plans: plans, sources: sources}
}

// Get finds a parcel by its upstream source id in a freshly rebuilt tree, so
// reads always reflect the latest stored edits.
func (s *parcelService) Get(ctx context.Context, projectID, sourceID string) (*domain.Parcel, error) {
	plan, err := s.plans.BuildTree(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, area := range plan.Areas {
		for _, phase := range area.Phases {
			for _, parcel := range phase.Parcels {
				if parcel.SourceID == sourceID {
					return parcel, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("parcel %q: %w", sourceID, repository.ErrNotFound)
}

// Set mutates one stored source row. The live representation decides where
// the edit lands: container attributes when container rows are present,
// else the legacy parcel row.
func (s *parcelService) Set(ctx context.Context, projectID, sourceID string, upd repository.ParcelUpdate) error {
	src, err := s.sources.LoadSourceSet(ctx, projectID)
	if err != nil {
		return fmt.Errorf("loading sources: %w", err)
	}
	if len(src.Containers) > 0 {
		return s.sources.UpdateContainerParcel(ctx, projectID, sourceID, upd)
	}
	return s.sources.UpdateLegacyParcel(ctx, projectID, sourceID, upd)
}
