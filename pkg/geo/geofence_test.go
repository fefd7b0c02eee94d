package geo

import "testing"

func TestHaversineMeters(t *testing.T) {
	if d := HaversineMeters(-6.2, 106.8, -6.2, 106.8); d != 0 {
		t.Fatalf("distance to itself = %f, want 0", d)
	}

	// 0.01 derajat lintang ≈ 1.11 km.
	d := HaversineMeters(-6.20, 106.8, -6.21, 106.8)
	if d < 1100 || d > 1125 {
		t.Fatalf("0.01 degree latitude = %f m, expected ~1112 m", d)
	}
}

func TestWithinRadius(t *testing.T) {
	centerLat, centerLng := -6.208763, 106.845599

	tests := []struct {
		name   string
		lat    float64
		lng    float64
		radius float64
		want   bool
	}{
		{name: "at center", lat: centerLat, lng: centerLng, radius: 100, want: true},
		{name: "just inside", lat: centerLat + 0.0005, lng: centerLng, radius: 100, want: true},
		{name: "outside", lat: centerLat + 0.002, lng: centerLng, radius: 100, want: false},
		{name: "larger radius admits", lat: centerLat + 0.002, lng: centerLng, radius: 500, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithinRadius(centerLat, centerLng, tt.lat, tt.lng, tt.radius)
			if got != tt.want {
				t.Fatalf("WithinRadius(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
