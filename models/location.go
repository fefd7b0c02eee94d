package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OperatingDay adalah jam operasional lokasi untuk satu hari dalam seminggu.
// OpenTime/CloseTime dalam format "15:04", dibaca pada timezone organisasi.
type OperatingDay struct {
	Open      bool   `json:"open" bson:"open"`
	OpenTime  string `json:"open_time,omitempty" bson:"open_time,omitempty"`
	CloseTime string `json:"close_time,omitempty" bson:"close_time,omitempty"`
}

// Location adalah profil lokasi kerja: titik geofence + jam operasional
// mingguan. OperatingHours diindeks 0=Minggu s/d 6=Sabtu (time.Weekday).
type Location struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Address        string             `json:"address,omitempty" bson:"address,omitempty"`
	Latitude       float64            `json:"latitude" bson:"latitude"`
	Longitude      float64            `json:"longitude" bson:"longitude"`
	RadiusMeters   float64            `json:"radius_meters" bson:"radius_meters"`
	OperatingHours [7]OperatingDay    `json:"operating_hours" bson:"operating_hours"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type OperatingDayPayload struct {
	Open      bool   `json:"open"`
	OpenTime  string `json:"open_time" validate:"omitempty,datetime=15:04"`
	CloseTime string `json:"close_time" validate:"omitempty,datetime=15:04"`
}

type LocationCreatePayload struct {
	Name           string                 `json:"name" validate:"required,min=3,max=100"`
	Address        string                 `json:"address" validate:"omitempty,min=5,max=255"`
	Latitude       float64                `json:"latitude" validate:"min=-90,max=90"`
	Longitude      float64                `json:"longitude" validate:"min=-180,max=180"`
	RadiusMeters   float64                `json:"radius_meters" validate:"omitempty,min=10,max=5000"`
	OperatingHours [7]OperatingDayPayload `json:"operating_hours" validate:"dive"`
}

type LocationUpdatePayload struct {
	Name           string                  `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Address        string                  `json:"address,omitempty" validate:"omitempty,min=5,max=255"`
	Latitude       *float64                `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude      *float64                `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	RadiusMeters   *float64                `json:"radius_meters,omitempty" validate:"omitempty,min=10,max=5000"`
	OperatingHours *[7]OperatingDayPayload `json:"operating_hours,omitempty" validate:"omitempty,dive"`
}
