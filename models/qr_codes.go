package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QRCode adalah kode absensi kios harian untuk satu lokasi. Scan kode yang
// masih berlaku menggantikan cek geofence (karyawan terbukti berada di
// lokasi karena memindai layar kios).
type QRCode struct {
	ID         primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Code       string               `json:"code" bson:"code,omitempty"`
	LocationID primitive.ObjectID   `json:"location_id" bson:"location_id"`
	Date       string               `json:"date" bson:"date,omitempty"`
	ExpiresAt  time.Time            `json:"expires_at" bson:"expires_at,omitempty"`
	UsedBy     []primitive.ObjectID `json:"used_by,omitempty" bson:"used_by,omitempty"`
	CreatedAt  time.Time            `json:"created_at" bson:"created_at,omitempty"`
}

type QRCodeGeneratePayload struct {
	LocationID string `json:"location_id" validate:"required,objectid"`
}

type QRCodeScanPayload struct {
	QRCodeValue string `json:"qr_code_value" validate:"required"`
}
