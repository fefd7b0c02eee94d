package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PayrollSettings adalah konfigurasi pembulatan durasi absensi.
// RoundingInterval 0 berarti mode waktu eksak (tanpa pembulatan);
// RoundingBuffer harus lebih kecil dari interval.
type PayrollSettings struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	RoundingInterval int                `json:"rounding_interval" bson:"rounding_interval"`
	RoundingBuffer   int                `json:"rounding_buffer" bson:"rounding_buffer"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type PayrollSettingsPayload struct {
	RoundingInterval *int `json:"rounding_interval" validate:"required,min=0,max=120"`
	RoundingBuffer   *int `json:"rounding_buffer" validate:"required,min=0,max=120"`
}

// EmployeePayrollTotal adalah rekap per karyawan dalam satu jendela laporan.
type EmployeePayrollTotal struct {
	UserID         string  `json:"user_id"`
	UserName       string  `json:"user_name,omitempty"`
	Sessions       int     `json:"sessions"`
	RawMinutes     int     `json:"raw_minutes"`
	RoundedMinutes int     `json:"rounded_minutes"`
	RoundedLabel   string  `json:"rounded_label"`
	HourlyRate     float64 `json:"hourly_rate"`
	Pay            float64 `json:"pay"`
	HasOpenSession bool    `json:"has_open_session"`
}
