package schedule

import (
	"fmt"
	"log"
	"sort"

	"Sistem-Absensi-Shift/models"
)

type seriesDateKey struct {
	seriesID string
	date     string
}

// Resolve menggabungkan occurrence virtual hasil ekspansi template dengan
// instance tersimpan menjadi himpunan shift efektif untuk jendela tanggal
// [windowStart, windowEnd]:
//
//  1. semua template diekspansi (virtual);
//  2. instance tersimpan dipartisi menjadi override ber-series dan shift
//     satuan;
//  3. override menang atas occurrence virtual pada (series, tanggal) yang
//     sama; tombstone (excluded) menghapus tanggal itu dari hasil;
//  4. shift satuan ditambahkan apa adanya;
//  5. hasil diurutkan berdasarkan waktu mulai.
//
// Dua pemanggilan dengan input identik menghasilkan output identik
// byte-per-byte: tie-break pengurutan memakai field yang deterministik,
// bukan urutan map.
func Resolve(templates []models.ShiftTemplate, instances []models.ShiftInstance, windowStart, windowEnd string, cfg OrgConfig) ([]EffectiveShift, error) {
	var virtuals []EffectiveShift
	for _, tpl := range templates {
		occ, err := Expand(tpl, windowStart, windowEnd, cfg)
		if err != nil {
			return nil, fmt.Errorf("gagal ekspansi template %s: %w", tpl.ID.Hex(), err)
		}
		virtuals = append(virtuals, occ...)
	}

	overrides := map[seriesDateKey]models.ShiftInstance{}
	var oneOffs []models.ShiftInstance
	for _, inst := range instances {
		if inst.SeriesID == "" {
			oneOffs = append(oneOffs, inst)
			continue
		}
		key := seriesDateKey{inst.SeriesID, inst.Date}
		if existing, ok := overrides[key]; ok {
			// Anomali integritas data: dua override untuk satu
			// (series, tanggal). Pilih yang terakhir diubah supaya jadwal
			// tetap bisa tampil; jangan pernah fatal di jalur baca.
			log.Printf("WARNING: override ganda untuk series %s tanggal %s, memakai yang terbaru", inst.SeriesID, inst.Date)
			if !inst.UpdatedAt.After(existing.UpdatedAt) {
				continue
			}
		}
		overrides[key] = inst
	}

	matched := map[seriesDateKey]bool{}
	var resolved []EffectiveShift
	for _, v := range virtuals {
		key := seriesDateKey{v.SeriesID, v.Date}
		inst, ok := overrides[key]
		if !ok {
			resolved = append(resolved, v)
			continue
		}
		matched[key] = true
		if inst.Excluded {
			continue // tanggal ini dihapus dari seriesnya
		}
		resolved = append(resolved, fromInstance(inst))
	}

	// Override ber-series yang tidak lagi punya pasangan virtual (mis.
	// template sudah diakhiri masa berlakunya) tetap ditampilkan: dokumen
	// tersimpan adalah kenyataan jadwal.
	for key, inst := range overrides {
		if matched[key] || inst.Excluded {
			continue
		}
		resolved = append(resolved, fromInstance(inst))
	}

	for _, inst := range oneOffs {
		if inst.Excluded {
			continue
		}
		resolved = append(resolved, fromInstance(inst))
	}

	sort.Slice(resolved, func(i, j int) bool {
		a, b := resolved[i], resolved[j]
		if !a.StartsAt.Equal(b.StartsAt) {
			return a.StartsAt.Before(b.StartsAt)
		}
		if a.UserID != b.UserID {
			return a.UserID.Hex() < b.UserID.Hex()
		}
		return a.SeriesID < b.SeriesID
	})
	return resolved, nil
}

func fromInstance(inst models.ShiftInstance) EffectiveShift {
	return EffectiveShift{
		UserID:     inst.UserID,
		LocationID: inst.LocationID,
		SeriesID:   inst.SeriesID,
		Date:       inst.Date,
		StartsAt:   inst.StartsAt,
		EndsAt:     inst.EndsAt,
		Origin:     PersistedOrigin{InstanceID: inst.ID},
	}
}
