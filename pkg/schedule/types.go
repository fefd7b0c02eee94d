// Package schedule adalah mesin resolusi shift: ekspansi template berulang,
// penggabungan dengan override tersimpan, propagasi edit/hapus per cakupan,
// dan keputusan auto-close sesi absensi. Semua fungsi di paket ini murni:
// tanpa side effect, aman dipanggil paralel, dan hasilnya deterministik
// untuk input yang sama. Side effect (tulis ke mongo, notifikasi) menjadi
// urusan pemanggil di layer handler/repository.
package schedule

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrgConfig adalah konfigurasi organisasi yang dibutuhkan resolusi shift.
// Dilewatkan eksplisit ke setiap pemanggilan, bukan dibaca dari state
// global, supaya mesin bisa diuji dengan konfigurasi sintetis.
type OrgConfig struct {
	Loc *time.Location
}

// Origin menandai asal sebuah EffectiveShift: hasil sintesis dari template
// (virtual) atau dokumen instance tersimpan. Sum type tertutup; setiap call
// site wajib menangani kedua kasus lewat type switch, tidak ada struct
// "mungkin-punya-id".
type Origin interface {
	isOrigin()
}

// VirtualOrigin: occurrence disintesis murni dari template, belum punya
// dokumen tersimpan.
type VirtualOrigin struct {
	TemplateID primitive.ObjectID
	SeriesID   string
	Date       string
}

// PersistedOrigin: shift berasal dari dokumen ShiftInstance.
type PersistedOrigin struct {
	InstanceID primitive.ObjectID
}

func (VirtualOrigin) isOrigin()   {}
func (PersistedOrigin) isOrigin() {}

// EffectiveShift adalah proyeksi shift final untuk satu karyawan/tanggal
// setelah template dan override digabung. Dibuat baru di setiap pemanggilan
// Resolve, tidak pernah disimpan.
type EffectiveShift struct {
	UserID     primitive.ObjectID
	LocationID primitive.ObjectID
	SeriesID   string // kosong untuk shift satuan
	Date       string // "2006-01-02" pada timezone organisasi
	StartsAt   time.Time
	EndsAt     time.Time
	Origin     Origin
}

// IsVirtual melaporkan apakah shift ini masih occurrence sintesis.
func (s EffectiveShift) IsVirtual() bool {
	_, ok := s.Origin.(VirtualOrigin)
	return ok
}
