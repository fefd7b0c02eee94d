package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Alasan penutupan sesi absensi.
const (
	CloseReasonManual        = "manual"
	CloseReasonShiftEnd      = "auto_shift_end"
	CloseReasonLocationClose = "auto_location_close"
)

// Kode kegagalan clock-in yang dikembalikan ke client.
const (
	FailOutsideGeofence       = "outside_geofence"
	FailOutsideOperatingHours = "outside_operating_hours"
	FailOutsideShiftHours     = "outside_shift_hours"
)

// Attendance adalah satu sesi clock-in/out. ClockOut nil berarti sesi masih
// terbuka. Sesi hanya dimutasi sekali: saat ditutup (manual atau otomatis).
type Attendance struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"user_id" bson:"user_id"`
	LocationID  primitive.ObjectID `json:"location_id" bson:"location_id"`
	Date        string             `json:"date" bson:"date"` // tanggal clock-in pada timezone organisasi
	ClockIn     time.Time          `json:"clock_in" bson:"clock_in"`
	ClockOut    *time.Time         `json:"clock_out,omitempty" bson:"clock_out,omitempty"`
	CloseReason string             `json:"close_reason,omitempty" bson:"close_reason,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type ClockInPayload struct {
	LocationID string  `json:"location_id" validate:"required,objectid"`
	Latitude   float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude  float64 `json:"longitude" validate:"min=-180,max=180"`
}

type AttendanceWithUser struct {
	ID           primitive.ObjectID `json:"id" bson:"_id"`
	UserID       primitive.ObjectID `json:"user_id" bson:"user_id"`
	LocationID   primitive.ObjectID `json:"location_id" bson:"location_id"`
	Date         string             `json:"date" bson:"date"`
	ClockIn      time.Time          `json:"clock_in" bson:"clock_in"`
	ClockOut     *time.Time         `json:"clock_out,omitempty" bson:"clock_out,omitempty"`
	CloseReason  string             `json:"close_reason,omitempty" bson:"close_reason,omitempty"`
	UserName     string             `json:"user_name" bson:"user_name"`
	UserEmail    string             `json:"user_email" bson:"user_email"`
	UserPosition string             `json:"user_position,omitempty" bson:"user_position,omitempty"`
}
