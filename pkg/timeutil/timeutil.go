// Package timeutil menangani resolusi timezone organisasi dan perhitungan
// batas hari/minggu lokal. Batas dihitung pada wall-clock lokal, bukan offset
// UTC tetap, sehingga tetap benar pada tanggal transisi DST.
package timeutil

import "time"

// DefaultZone dipakai ketika label timezone tidak dikenali.
const DefaultZone = "Asia/Jakarta"

// Label timezone yang dipakai admin di pengaturan organisasi.
var zoneLabels = map[string]string{
	"WIB":  "Asia/Jakarta",
	"WITA": "Asia/Makassar",
	"WIT":  "Asia/Jayapura",
	"UTC":  "UTC",
}

// ResolveTimezone memetakan label admin (WIB/WITA/WIT/UTC) atau nama IANA
// ke *time.Location. Label yang tidak dikenali jatuh ke DefaultZone.
func ResolveTimezone(name string) *time.Location {
	if iana, ok := zoneLabels[name]; ok {
		name = iana
	}
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	loc, err := time.LoadLocation(DefaultZone)
	if err != nil {
		// tzdata dibundel lewat import time/tzdata di main
		return time.UTC
	}
	return loc
}

// DayWindow mengembalikan rentang [00:00:00, 23:59:59.999999999] lokal untuk
// tanggal kalender yang memuat t pada zona loc. Durasi absolutnya bisa 23
// atau 25 jam pada tanggal transisi DST; batas wall-clock-nya tetap.
func DayWindow(loc *time.Location, t time.Time) (time.Time, time.Time) {
	local := t.In(loc)
	y, m, d := local.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	end := time.Date(y, m, d+1, 0, 0, 0, 0, loc).Add(-time.Nanosecond)
	return start, end
}

// WeekWindow mengembalikan rentang Senin 00:00 s/d akhir hari Minggu yang
// memuat t pada zona loc.
func WeekWindow(loc *time.Location, t time.Time) (time.Time, time.Time) {
	local := t.In(loc)
	// time.Weekday: Minggu=0. Geser supaya Senin jadi awal minggu.
	offset := (int(local.Weekday()) + 6) % 7
	y, m, d := local.Date()
	start := time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
	end := time.Date(y, m, d-offset+7, 0, 0, 0, 0, loc).Add(-time.Nanosecond)
	return start, end
}

// CombineDateTime membentuk instant lokal dari tanggal "2006-01-02" dan jam
// dinding "15:04" pada zona loc.
func CombineDateTime(dateStr, clockStr string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return time.Time{}, err
	}
	clock, err := time.Parse("15:04", clockStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

// DateOf memformat tanggal kalender lokal dari sebuah instant.
func DateOf(loc *time.Location, t time.Time) string {
	return t.In(loc).Format("2006-01-02")
}
