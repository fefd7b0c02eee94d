package schedule

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"Sistem-Absensi-Shift/models"
	"Sistem-Absensi-Shift/pkg/timeutil"
)

// Pemetaan time.Weekday (Minggu=0) ke konstanta rrule (Senin=0).
var rruleWeekdays = [7]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// Expand mensintesis occurrence virtual dari satu template untuk setiap
// tanggal di [windowStart, windowEnd] (inklusif, format "2006-01-02") yang
// cocok dengan weekday template dan masih dalam masa berlakunya. Template
// tanpa EffectiveUntil berlaku tanpa batas ke depan. Hasil terurut naik
// berdasarkan waktu mulai.
func Expand(tpl models.ShiftTemplate, windowStart, windowEnd string, cfg OrgConfig) ([]EffectiveShift, error) {
	if tpl.Weekday < 0 || tpl.Weekday > 6 {
		return nil, fmt.Errorf("weekday template tidak valid: %d", tpl.Weekday)
	}

	dtstart, err := time.ParseInLocation("2006-01-02", tpl.EffectiveFrom, cfg.Loc)
	if err != nil {
		return nil, fmt.Errorf("effective_from template tidak valid: %w", err)
	}

	opt := rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rruleWeekdays[tpl.Weekday]},
		Dtstart:   dtstart,
	}
	if tpl.EffectiveUntil != "" {
		until, err := time.ParseInLocation("2006-01-02", tpl.EffectiveUntil, cfg.Loc)
		if err != nil {
			return nil, fmt.Errorf("effective_until template tidak valid: %w", err)
		}
		// Inklusif: occurrence pada tanggal effective_until masih berlaku.
		opt.Until = until.AddDate(0, 0, 1).Add(-time.Second)
	}

	rr, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("gagal membangun aturan perulangan: %w", err)
	}

	lower, err := time.ParseInLocation("2006-01-02", windowStart, cfg.Loc)
	if err != nil {
		return nil, fmt.Errorf("window start tidak valid: %w", err)
	}
	upperDate, err := time.ParseInLocation("2006-01-02", windowEnd, cfg.Loc)
	if err != nil {
		return nil, fmt.Errorf("window end tidak valid: %w", err)
	}
	upper := upperDate.AddDate(0, 0, 1).Add(-time.Second)

	var out []EffectiveShift
	for _, occ := range rr.Between(lower, upper, true) {
		date := occ.In(cfg.Loc).Format("2006-01-02")
		startsAt, err := timeutil.CombineDateTime(date, tpl.StartTime, cfg.Loc)
		if err != nil {
			return nil, fmt.Errorf("start_time template tidak valid: %w", err)
		}
		endsAt, err := timeutil.CombineDateTime(date, tpl.EndTime, cfg.Loc)
		if err != nil {
			return nil, fmt.Errorf("end_time template tidak valid: %w", err)
		}
		if !endsAt.After(startsAt) {
			return nil, fmt.Errorf("jam selesai template harus setelah jam mulai")
		}

		out = append(out, EffectiveShift{
			UserID:     tpl.UserID,
			LocationID: tpl.LocationID,
			SeriesID:   tpl.SeriesID,
			Date:       date,
			StartsAt:   startsAt,
			EndsAt:     endsAt,
			Origin: VirtualOrigin{
				TemplateID: tpl.ID,
				SeriesID:   tpl.SeriesID,
				Date:       date,
			},
		})
	}
	return out, nil
}
