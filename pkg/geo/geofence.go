// Package geo berisi cek geofence untuk clock-in berbasis koordinat.
package geo

import "math"

const earthRadiusMeters = 6371000

// HaversineMeters menghitung jarak permukaan bumi antara dua koordinat.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// WithinRadius melaporkan apakah titik (lat, lng) berada dalam radius meter
// dari pusat geofence.
func WithinRadius(centerLat, centerLng, lat, lng, radiusMeters float64) bool {
	return HaversineMeters(centerLat, centerLng, lat, lng) <= radiusMeters
}
