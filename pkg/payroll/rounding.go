// Package payroll menghitung menit kerja yang dibayar dari sesi absensi:
// pembulatan durasi mentah ke kelipatan interval, lalu rekap per karyawan.
package payroll

import "fmt"

// ValidateRounding memeriksa pasangan interval/buffer pembulatan.
// Buffer harus 0 <= buffer < interval ketika interval > 0.
func ValidateRounding(interval, buffer int) error {
	if interval < 0 {
		return fmt.Errorf("interval pembulatan tidak boleh negatif")
	}
	if buffer < 0 {
		return fmt.Errorf("buffer pembulatan tidak boleh negatif")
	}
	if interval > 0 && buffer >= interval {
		return fmt.Errorf("buffer pembulatan (%d) harus lebih kecil dari interval (%d)", buffer, interval)
	}
	return nil
}

// ApplyRounding membulatkan durasi mentah (menit) ke kelipatan interval.
// interval 0 berarti mode waktu eksak: durasi dikembalikan apa adanya.
// Sisa pembagian >= interval-buffer dibulatkan NAIK, selain itu dibulatkan
// turun. Tidak ada mode round-to-nearest.
func ApplyRounding(rawMinutes, interval, buffer int) int {
	if rawMinutes < 0 {
		rawMinutes = 0
	}
	if interval <= 0 {
		return rawMinutes
	}
	remainder := rawMinutes % interval
	if remainder == 0 {
		return rawMinutes
	}
	if remainder >= interval-buffer {
		return rawMinutes - remainder + interval
	}
	return rawMinutes - remainder
}

// FormatHoursMinutes memformat menit sebagai "Hh Mm" untuk tampilan rekap.
func FormatHoursMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
