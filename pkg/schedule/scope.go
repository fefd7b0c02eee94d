package schedule

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Absensi-Shift/models"
	"Sistem-Absensi-Shift/pkg/timeutil"
)

// Cakupan edit/hapus occurrence dalam sebuah series.
const (
	ScopeThis   = "this"
	ScopeFuture = "future"
	ScopeAll    = "all"
)

// InstanceTimeUpdate mengubah jam mulai/selesai satu instance tersimpan
// tanpa mengubah tanggalnya.
type InstanceTimeUpdate struct {
	ID       primitive.ObjectID
	StartsAt time.Time
	EndsAt   time.Time
}

// MutationPlan adalah himpunan mutasi instance yang dihasilkan propagasi
// cakupan. Repository wajib mengeksekusinya sebagai SATU batch atomik
// (mongo BulkWrite ordered); penerapan parsial di tengah series adalah
// pelanggaran kebenaran.
type MutationPlan struct {
	Inserts   []models.ShiftInstance
	Updates   []InstanceTimeUpdate
	DeleteIDs []primitive.ObjectID
}

// IsEmpty melaporkan plan tanpa mutasi sama sekali.
func (p MutationPlan) IsEmpty() bool {
	return len(p.Inserts) == 0 && len(p.Updates) == 0 && len(p.DeleteIDs) == 0
}

// PlanEdit menerjemahkan edit jam dinding (newStart/newEnd "15:04") pada
// target dengan cakupan tertentu menjadi MutationPlan:
//
//   - this: target virtual dimaterialisasi jadi override baru dengan tanggal
//     aslinya, lalu jam barunya diterapkan; target tersimpan diubah langsung.
//   - future: semua instance tersimpan dalam series dengan tanggal >= tanggal
//     target menerima jam dinding baru pada tanggalnya masing-masing. Tanggal
//     virtual tanpa override dibiarkan memakai jam template sampai
//     dimaterialisasi sendiri.
//   - all: seperti future tanpa batas bawah tanggal.
//
// seriesInstances adalah seluruh instance tersimpan milik series target
// (tombstone ikut dilewatkan; plan tidak menyentuhnya).
func PlanEdit(target EffectiveShift, scope, newStart, newEnd string, seriesInstances []models.ShiftInstance, cfg OrgConfig) (MutationPlan, error) {
	if err := validateClockRange(target.Date, newStart, newEnd, cfg); err != nil {
		return MutationPlan{}, err
	}

	var plan MutationPlan
	switch scope {
	case ScopeThis:
		startsAt, endsAt, err := clockRangeOn(target.Date, newStart, newEnd, cfg)
		if err != nil {
			return MutationPlan{}, err
		}
		switch origin := target.Origin.(type) {
		case VirtualOrigin:
			plan.Inserts = append(plan.Inserts, models.ShiftInstance{
				SeriesID:   origin.SeriesID,
				UserID:     target.UserID,
				LocationID: target.LocationID,
				Date:       origin.Date,
				StartsAt:   startsAt,
				EndsAt:     endsAt,
			})
		case PersistedOrigin:
			plan.Updates = append(plan.Updates, InstanceTimeUpdate{
				ID:       origin.InstanceID,
				StartsAt: startsAt,
				EndsAt:   endsAt,
			})
		}

	case ScopeFuture, ScopeAll:
		for _, inst := range seriesInstances {
			if inst.Excluded {
				continue
			}
			if scope == ScopeFuture && inst.Date < target.Date {
				continue
			}
			startsAt, endsAt, err := clockRangeOn(inst.Date, newStart, newEnd, cfg)
			if err != nil {
				return MutationPlan{}, err
			}
			plan.Updates = append(plan.Updates, InstanceTimeUpdate{
				ID:       inst.ID,
				StartsAt: startsAt,
				EndsAt:   endsAt,
			})
		}

	default:
		return MutationPlan{}, fmt.Errorf("cakupan tidak dikenal: %q", scope)
	}
	return plan, nil
}

// PlanDelete menerjemahkan penghapusan occurrence menjadi MutationPlan
// dengan semantik cakupan yang sama seperti PlanEdit. Occurrence virtual
// yang dihapus dengan cakupan this dimaterialisasi sebagai tombstone
// (instance dengan excluded=true) supaya resolver membuang tanggal itu.
// Tombstone yang sudah ada tidak ikut dihapus pada cakupan future/all:
// menghapusnya justru menghidupkan kembali occurrence virtualnya.
func PlanDelete(target EffectiveShift, scope string, seriesInstances []models.ShiftInstance) (MutationPlan, error) {
	var plan MutationPlan
	switch scope {
	case ScopeThis:
		switch origin := target.Origin.(type) {
		case VirtualOrigin:
			plan.Inserts = append(plan.Inserts, models.ShiftInstance{
				SeriesID:   origin.SeriesID,
				UserID:     target.UserID,
				LocationID: target.LocationID,
				Date:       origin.Date,
				StartsAt:   target.StartsAt,
				EndsAt:     target.EndsAt,
				Excluded:   true,
			})
		case PersistedOrigin:
			plan.DeleteIDs = append(plan.DeleteIDs, origin.InstanceID)
		}

	case ScopeFuture, ScopeAll:
		for _, inst := range seriesInstances {
			if inst.Excluded {
				continue
			}
			if scope == ScopeFuture && inst.Date < target.Date {
				continue
			}
			plan.DeleteIDs = append(plan.DeleteIDs, inst.ID)
		}

	default:
		return MutationPlan{}, fmt.Errorf("cakupan tidak dikenal: %q", scope)
	}
	return plan, nil
}

func clockRangeOn(date, startClock, endClock string, cfg OrgConfig) (time.Time, time.Time, error) {
	startsAt, err := timeutil.CombineDateTime(date, startClock, cfg.Loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("jam mulai tidak valid: %w", err)
	}
	endsAt, err := timeutil.CombineDateTime(date, endClock, cfg.Loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("jam selesai tidak valid: %w", err)
	}
	return startsAt, endsAt, nil
}

func validateClockRange(date, startClock, endClock string, cfg OrgConfig) error {
	startsAt, endsAt, err := clockRangeOn(date, startClock, endClock, cfg)
	if err != nil {
		return err
	}
	if !endsAt.After(startsAt) {
		return fmt.Errorf("jam selesai harus setelah jam mulai")
	}
	return nil
}
