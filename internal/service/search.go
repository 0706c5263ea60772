package service

import (
	"context"

	"equipshare-backend/internal/domain"
	"equipshare-backend/internal/repository"
	"equipshare-backend/internal/utils"
)

type searchService struct {
	equipmentRepo repository.EquipmentRepository
}

func NewSearchService(equipmentRepo repository.EquipmentRepository) SearchService {
	return &searchService{equipmentRepo: equipmentRepo}
}

// Search runs the catalog query. A radius constraint is translated into an
// equirectangular bounding box; listings without coordinates never match a
// radius search.
func (s *searchService) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	if params.Limit <= 0 || params.Limit > 100 {
		params.Limit = 20
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	if params.MinPriceCents < 0 || params.MaxPriceCents < 0 {
		return nil, domain.NewValidationError("price", "cannot be negative")
	}
	if params.MinPriceCents > 0 && params.MaxPriceCents > 0 && params.MinPriceCents > params.MaxPriceCents {
		return nil, domain.NewValidationError("price", "min cannot exceed max")
	}

	filter := repository.EquipmentFilter{
		Query:         params.Query,
		EquipmentType: params.EquipmentType,
		Subtype:       params.Subtype,
		Location:      params.Location,
		MinPriceCents: params.MinPriceCents,
		MaxPriceCents: params.MaxPriceCents,
		Features:      params.Features,
		Limit:         params.Limit,
		Offset:        params.Offset,
	}

	geoSet := 0
	for _, v := range []*float64{params.Lat, params.Lng, params.RadiusKm} {
		if v != nil {
			geoSet++
		}
	}
	switch geoSet {
	case 0:
	case 3:
		if *params.RadiusKm <= 0 {
			return nil, domain.NewValidationError("radius_km", "must be positive")
		}
		box := utils.BoundingBoxForRadius(*params.Lat, *params.Lng, *params.RadiusKm)
		filter.Bounds = &repository.GeoBounds{
			MinLat: box.MinLat,
			MaxLat: box.MaxLat,
			MinLng: box.MinLng,
			MaxLng: box.MaxLng,
		}
	default:
		return nil, domain.NewValidationError("location", "lat, lng and radius_km must be set together")
	}

	items, total, err := s.equipmentRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Items:   items,
		Total:   total,
		HasMore: params.Offset+params.Limit < total,
	}, nil
}
