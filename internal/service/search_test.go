package service

import (
	"context"
	"testing"

	"equipshare-backend/internal/domain"
	"equipshare-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSearchService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("Pagination has_more", func(t *testing.T) {
		equipmentRepo := new(MockEquipmentRepo)
		svc := NewSearchService(equipmentRepo)

		equipmentRepo.On("Search", ctx, mock.AnythingOfType("repository.EquipmentFilter")).
			Return(make([]domain.Equipment, 20), int32(45), nil)

		res, err := svc.Search(ctx, SearchParams{Limit: 20, Offset: 0})
		assert.NoError(t, err)
		assert.Equal(t, int32(45), res.Total)
		assert.True(t, res.HasMore)

		res, err = svc.Search(ctx, SearchParams{Limit: 20, Offset: 40})
		assert.NoError(t, err)
		assert.False(t, res.HasMore)
	})

	t.Run("Radius builds bounding box", func(t *testing.T) {
		equipmentRepo := new(MockEquipmentRepo)
		svc := NewSearchService(equipmentRepo)

		lat, lng, radius := 28.5, -81.4, 10.0
		equipmentRepo.On("Search", ctx, mock.MatchedBy(func(f repository.EquipmentFilter) bool {
			return f.Bounds != nil &&
				f.Bounds.MinLat < lat && f.Bounds.MaxLat > lat &&
				f.Bounds.MinLng < lng && f.Bounds.MaxLng > lng
		})).Return([]domain.Equipment{}, int32(0), nil)

		_, err := svc.Search(ctx, SearchParams{Lat: &lat, Lng: &lng, RadiusKm: &radius})
		assert.NoError(t, err)
		equipmentRepo.AssertExpectations(t)
	})

	t.Run("Incomplete geo triple rejected", func(t *testing.T) {
		svc := NewSearchService(new(MockEquipmentRepo))

		lat := 28.5
		_, err := svc.Search(ctx, SearchParams{Lat: &lat})
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("Inverted price bounds rejected", func(t *testing.T) {
		svc := NewSearchService(new(MockEquipmentRepo))

		_, err := svc.Search(ctx, SearchParams{MinPriceCents: 5000, MaxPriceCents: 1000})
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("Limit clamped", func(t *testing.T) {
		equipmentRepo := new(MockEquipmentRepo)
		svc := NewSearchService(equipmentRepo)

		equipmentRepo.On("Search", ctx, mock.MatchedBy(func(f repository.EquipmentFilter) bool {
			return f.Limit == 20
		})).Return([]domain.Equipment{}, int32(0), nil)

		_, err := svc.Search(ctx, SearchParams{Limit: 1000})
		assert.NoError(t, err)
		equipmentRepo.AssertExpectations(t)
	})
}
