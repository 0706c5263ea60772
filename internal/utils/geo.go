package utils

import "math"

const earthRadiusKm = 6371

// BoundingBox is an equirectangular lat/lng box around a center point.
// It approximates a radius search well enough at city scale; it is not a
// great-circle distance and degrades for large radii or near the poles.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// BoundingBoxForRadius computes the box covering radiusKm around
// (lat, lng).
func BoundingBoxForRadius(lat, lng, radiusKm float64) BoundingBox {
	latDelta := (radiusKm / earthRadiusKm) * (180 / math.Pi)
	lngDelta := latDelta / math.Cos(lat*math.Pi/180)

	return BoundingBox{
		MinLat: lat - latDelta,
		MaxLat: lat + latDelta,
		MinLng: lng - lngDelta,
		MaxLng: lng + lngDelta,
	}
}
