package payroll

import (
	"sort"
	"time"

	"Sistem-Absensi-Shift/models"
)

// minSessionMinutes: sesi tertutup di bawah 1 menit dianggap double-punch
// dan tidak ikut dihitung.
const minSessionMinutes = 1

// Aggregate melipat sesi absensi menjadi total per karyawan. Sesi terbuka
// dihitung dengan elapsed time sampai now (untuk tampilan "hari ini"); untuk
// ekspor final panggil dengan includeOpen=false. rates memetakan hex UserID
// ke tarif per jam; names opsional untuk label rekap.
func Aggregate(sessions []models.Attendance, settings models.PayrollSettings, rates map[string]float64, names map[string]string, now time.Time, includeOpen bool) []models.EmployeePayrollTotal {
	byUser := map[string]*models.EmployeePayrollTotal{}

	for _, s := range sessions {
		open := s.ClockOut == nil
		if open && !includeOpen {
			continue
		}

		var out time.Time
		if open {
			out = now
		} else {
			out = *s.ClockOut
		}
		rawMinutes := int(out.Sub(s.ClockIn).Minutes())
		if rawMinutes < 0 {
			rawMinutes = 0
		}
		if !open && rawMinutes < minSessionMinutes {
			continue
		}

		key := s.UserID.Hex()
		total, ok := byUser[key]
		if !ok {
			total = &models.EmployeePayrollTotal{
				UserID:     key,
				UserName:   names[key],
				HourlyRate: rates[key],
			}
			byUser[key] = total
		}
		total.Sessions++
		total.RawMinutes += rawMinutes
		total.RoundedMinutes += ApplyRounding(rawMinutes, settings.RoundingInterval, settings.RoundingBuffer)
		if open {
			total.HasOpenSession = true
		}
	}

	totals := make([]models.EmployeePayrollTotal, 0, len(byUser))
	for _, total := range byUser {
		total.RoundedLabel = FormatHoursMinutes(total.RoundedMinutes)
		total.Pay = float64(total.RoundedMinutes) / 60.0 * total.HourlyRate
		totals = append(totals, *total)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].UserID < totals[j].UserID })
	return totals
}
