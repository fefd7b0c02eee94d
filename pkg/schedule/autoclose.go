package schedule

import (
	"time"

	"Sistem-Absensi-Shift/models"
	"Sistem-Absensi-Shift/pkg/timeutil"
)

// ClosureDecision: sesi harus ditutup pada ClockOut dengan alasan Reason.
// ClockOut adalah batas jadwal/jam operasional, BUKAN saat pengecekan:
// karyawan dibayar hanya sampai jendela kerjanya berakhir.
type ClosureDecision struct {
	ClockOut time.Time
	Reason   string
}

// DecideAutoClose memutuskan apakah sesi absensi terbuka sudah harus
// ditutup otomatis pada saat now:
//
//  1. kalau ada EffectiveShift untuk karyawan+lokasi sesi pada tanggal
//     clock-in, batasnya jam selesai shift itu (auto_shift_end);
//  2. kalau tidak ada, batasnya jam tutup lokasi hari itu
//     (auto_location_close);
//  3. lokasi tutup sepanjang hari atau tidak punya jam tutup: tidak ada
//     keputusan, sesi dibiarkan terbuka sampai ditutup manual.
//
// Fungsi ini murni; pemanggil yang melakukan penutupan, dan wajib
// memeriksa ulang sesi masih terbuka sebelum menulis supaya tidak menimpa
// clock-out manual yang mendahului.
func DecideAutoClose(session models.Attendance, shifts []EffectiveShift, location models.Location, now time.Time, cfg OrgConfig) *ClosureDecision {
	if session.ClockOut != nil {
		return nil
	}

	var expectedOut time.Time
	reason := ""
	for _, s := range shifts {
		if s.UserID == session.UserID && s.LocationID == session.LocationID && s.Date == session.Date {
			expectedOut = s.EndsAt
			reason = models.CloseReasonShiftEnd
			break
		}
	}

	if reason == "" {
		day, err := time.ParseInLocation("2006-01-02", session.Date, cfg.Loc)
		if err != nil {
			return nil
		}
		hours := location.OperatingHours[int(day.Weekday())]
		if !hours.Open || hours.CloseTime == "" {
			return nil
		}
		closeAt, err := timeutil.CombineDateTime(session.Date, hours.CloseTime, cfg.Loc)
		if err != nil {
			return nil
		}
		expectedOut = closeAt
		reason = models.CloseReasonLocationClose
	}

	if !now.After(expectedOut) {
		return nil
	}
	return &ClosureDecision{ClockOut: expectedOut, Reason: reason}
}
