package util

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Holiday struct {
	Date string `json:"Date"`
	Name string `json:"Name"`
}

// HolidayAPIData adalah struct helper untuk parsing JSON dari API
type HolidayAPIData struct {
	Date              string `json:"holiday_date"`
	Name              string `json:"holiday_name"`
	IsNationalHoliday bool   `json:"is_national_holiday"`
}

var holidayClient = &http.Client{Timeout: 10 * time.Second}

// GetHolidayMap mengambil hari libur nasional dari API eksternal sebagai map
// tanggal -> true, untuk menyaring jadwal shift.
func GetHolidayMap(year string) (map[string]bool, error) {
	holidays, err := fetchHolidays(year)
	if err != nil {
		return nil, err
	}

	holidayMap := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		holidayMap[h.Date] = true
	}
	return holidayMap, nil
}

// GetHolidays mengambil daftar hari libur nasional untuk ditampilkan di
// kalender frontend.
func GetHolidays(year string) ([]Holiday, error) {
	raw, err := fetchHolidays(year)
	if err != nil {
		return nil, err
	}

	var holidays []Holiday
	for _, h := range raw {
		holidays = append(holidays, Holiday{Date: h.Date, Name: h.Name})
	}
	return holidays, nil
}

func fetchHolidays(year string) ([]HolidayAPIData, error) {
	resp, err := holidayClient.Get("https://api-harilibur.vercel.app/api?year=" + year)
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil data hari libur: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var rawHolidays []HolidayAPIData
	if err := json.Unmarshal(body, &rawHolidays); err != nil {
		return nil, fmt.Errorf("gagal parsing data hari libur: %w", err)
	}

	var national []HolidayAPIData
	for _, h := range rawHolidays {
		if !h.IsNationalHoliday {
			continue
		}
		// API mengembalikan tanggal tanpa zero-padding ("2026-1-1");
		// normalkan ke format tanggal jadwal.
		if parsed, err := time.Parse("2006-1-2", h.Date); err == nil {
			h.Date = parsed.Format("2006-01-02")
		}
		national = append(national, h)
	}
	return national, nil
}
