package payroll

import "testing"

func TestApplyRounding(t *testing.T) {
	tests := []struct {
		name     string
		raw      int
		interval int
		buffer   int
		want     int
	}{
		{name: "remainder below threshold rounds down", raw: 52, interval: 15, buffer: 5, want: 45},
		{name: "remainder at threshold rounds up", raw: 56, interval: 15, buffer: 5, want: 60},
		{name: "exact multiple unchanged", raw: 60, interval: 15, buffer: 5, want: 60},
		{name: "interval zero is exact mode", raw: 52, interval: 0, buffer: 5, want: 52},
		{name: "zero minutes", raw: 0, interval: 15, buffer: 5, want: 0},
		{name: "negative clamped to zero", raw: -10, interval: 15, buffer: 5, want: 0},
		{name: "buffer zero never rounds up", raw: 59, interval: 15, buffer: 0, want: 45},
		{name: "below one interval rounds to zero", raw: 7, interval: 15, buffer: 5, want: 0},
		{name: "below one interval within buffer rounds up", raw: 11, interval: 15, buffer: 5, want: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyRounding(tt.raw, tt.interval, tt.buffer)
			if got != tt.want {
				t.Fatalf("ApplyRounding(%d, %d, %d) = %d, want %d", tt.raw, tt.interval, tt.buffer, got, tt.want)
			}
		})
	}
}

func TestValidateRounding(t *testing.T) {
	tests := []struct {
		name     string
		interval int
		buffer   int
		wantErr  bool
	}{
		{name: "valid pair", interval: 15, buffer: 5, wantErr: false},
		{name: "exact mode", interval: 0, buffer: 0, wantErr: false},
		{name: "buffer equals interval", interval: 15, buffer: 15, wantErr: true},
		{name: "buffer above interval", interval: 15, buffer: 20, wantErr: true},
		{name: "negative interval", interval: -1, buffer: 0, wantErr: true},
		{name: "negative buffer", interval: 15, buffer: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRounding(tt.interval, tt.buffer)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateRounding(%d, %d) error = %v, wantErr %v", tt.interval, tt.buffer, err, tt.wantErr)
			}
		})
	}
}

func TestFormatHoursMinutes(t *testing.T) {
	if got := FormatHoursMinutes(125); got != "2h 5m" {
		t.Fatalf("FormatHoursMinutes(125) = %q, want %q", got, "2h 5m")
	}
	if got := FormatHoursMinutes(0); got != "0h 0m" {
		t.Fatalf("FormatHoursMinutes(0) = %q, want %q", got, "0h 0m")
	}
}
