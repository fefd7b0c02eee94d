package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShiftTemplate adalah aturan shift berulang mingguan. Template tidak pernah
// dihapus fisik selama masih dirujuk occurrence; masa berlakunya yang
// diakhiri (EffectiveUntil diisi).
type ShiftTemplate struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SeriesID       string             `json:"series_id" bson:"series_id"`
	UserID         primitive.ObjectID `json:"user_id" bson:"user_id"`
	LocationID     primitive.ObjectID `json:"location_id" bson:"location_id"`
	Weekday        int                `json:"weekday" bson:"weekday"` // 0=Minggu s/d 6=Sabtu
	StartTime      string             `json:"start_time" bson:"start_time"` // "15:04"
	EndTime        string             `json:"end_time" bson:"end_time"`
	EffectiveFrom  string             `json:"effective_from" bson:"effective_from"` // "2006-01-02"
	EffectiveUntil string             `json:"effective_until,omitempty" bson:"effective_until,omitempty"`
	Note           string             `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

// ShiftInstance adalah shift konkret yang tersimpan untuk satu tanggal.
// SeriesID terisi berarti instance ini override dari occurrence virtual
// seriesnya; kosong berarti shift satuan (one-off). Excluded menandai
// tombstone: tanggal tersebut dihapus dari seriesnya.
type ShiftInstance struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SeriesID   string             `json:"series_id,omitempty" bson:"series_id,omitempty"`
	UserID     primitive.ObjectID `json:"user_id" bson:"user_id"`
	LocationID primitive.ObjectID `json:"location_id" bson:"location_id"`
	Date       string             `json:"date" bson:"date"` // "2006-01-02"
	StartsAt   time.Time          `json:"starts_at" bson:"starts_at"`
	EndsAt     time.Time          `json:"ends_at" bson:"ends_at"`
	Excluded   bool               `json:"excluded,omitempty" bson:"excluded,omitempty"`
	Note       string             `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type ShiftTemplateCreatePayload struct {
	UserID         string `json:"user_id" validate:"required,objectid"`
	LocationID     string `json:"location_id" validate:"required,objectid"`
	Weekday        *int   `json:"weekday" validate:"required,min=0,max=6"`
	StartTime      string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime        string `json:"end_time" validate:"required,datetime=15:04"`
	EffectiveFrom  string `json:"effective_from" validate:"required,datetime=2006-01-02"`
	EffectiveUntil string `json:"effective_until" validate:"omitempty,datetime=2006-01-02"`
	Note           string `json:"note"`
}

type ShiftTemplateTerminatePayload struct {
	EffectiveUntil string `json:"effective_until" validate:"required,datetime=2006-01-02"`
}

type OneOffShiftPayload struct {
	UserID     string `json:"user_id" validate:"required,objectid"`
	LocationID string `json:"location_id" validate:"required,objectid"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime    string `json:"end_time" validate:"required,datetime=15:04"`
	Note       string `json:"note"`
}

// OccurrenceEditPayload mengubah satu occurrence dari sebuah series dengan
// cakupan this / future / all.
type OccurrenceEditPayload struct {
	SeriesID  string `json:"series_id" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Scope     string `json:"scope" validate:"required,oneof=this future all"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

type OccurrenceDeletePayload struct {
	SeriesID string `json:"series_id" validate:"required"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Scope    string `json:"scope" validate:"required,oneof=this future all"`
}

// EffectiveShiftView adalah bentuk JSON dari hasil resolusi shift untuk
// frontend kalender.
type EffectiveShiftView struct {
	UserID       string    `json:"user_id"`
	UserName     string    `json:"user_name,omitempty"`
	LocationID   string    `json:"location_id"`
	LocationName string    `json:"location_name,omitempty"`
	Date         string    `json:"date"`
	StartsAt     time.Time `json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
	IsVirtual    bool      `json:"is_virtual"`
	SeriesID     string    `json:"series_id,omitempty"`
	InstanceID   string    `json:"instance_id,omitempty"`
}
