package handlers

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"Sistem-Absensi-Shift/models"
	"Sistem-Absensi-Shift/pkg/payroll"
	"Sistem-Absensi-Shift/pkg/schedule"
	"Sistem-Absensi-Shift/pkg/timeutil"
	util "Sistem-Absensi-Shift/pkg/utils"
	"Sistem-Absensi-Shift/repository"
)

type PayrollHandler struct {
	settingsRepo   repository.PayrollSettingsRepository
	attendanceRepo repository.AttendanceRepository
	userRepo       *repository.UserRepository
	org            schedule.OrgConfig
}

func NewPayrollHandler(settingsRepo repository.PayrollSettingsRepository, attendanceRepo repository.AttendanceRepository, userRepo *repository.UserRepository, org schedule.OrgConfig) *PayrollHandler {
	return &PayrollHandler{
		settingsRepo:   settingsRepo,
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		org:            org,
	}
}

// GetSettings godoc
// @Summary Get Payroll Settings
// @Description Pengaturan pembulatan durasi organisasi. Interval 0 berarti mode waktu eksak.
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.PayrollSettings
// @Router /admin/payroll/settings [get]
func (h *PayrollHandler) GetSettings(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	settings, err := h.settingsRepo.Get(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil pengaturan payroll"})
	}
	return c.Status(fiber.StatusOK).JSON(settings)
}

// UpdateSettings godoc
// @Summary Update Payroll Settings
// @Description Menyetel interval dan buffer pembulatan (admin only). Buffer wajib lebih kecil dari interval.
// @Tags Payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param settings body models.PayrollSettingsPayload true "Pengaturan pembulatan"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/payroll/settings [put]
func (h *PayrollHandler) UpdateSettings(c *fiber.Ctx) error {
	var payload models.PayrollSettingsPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data tidak valid", "details": err.Error()})
	}
	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	interval := *payload.RoundingInterval
	buffer := *payload.RoundingBuffer
	if err := payroll.ValidateRounding(interval, buffer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.settingsRepo.Upsert(ctx, interval, buffer); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan pengaturan payroll"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Pengaturan payroll berhasil disimpan"})
}

func (h *PayrollHandler) aggregateWindow(ctx context.Context, startDate, endDate string, includeOpen bool) ([]models.EmployeePayrollTotal, error) {
	settings, err := h.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := h.attendanceRepo.FindAttendanceInWindow(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}
	rates, names, err := h.userRepo.GetRateAndNameMaps(ctx)
	if err != nil {
		return nil, err
	}
	return payroll.Aggregate(sessions, *settings, rates, names, time.Now().In(h.org.Loc), includeOpen), nil
}

// GetSummary godoc
// @Summary Get Payroll Summary
// @Description Rekap durasi dan upah per karyawan dalam satu rentang tanggal (admin only). Sesi yang masih terbuka dihitung berjalan sampai sekarang.
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Awal rentang (2006-01-02), default Senin minggu ini"
// @Param end_date query string false "Akhir rentang (2006-01-02), default Minggu minggu ini"
// @Success 200 {object} object{data=array,total=int}
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/payroll/summary [get]
func (h *PayrollHandler) GetSummary(c *fiber.Ctx) error {
	startDate, endDate, err := h.parseWindowQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	totals, err := h.aggregateWindow(ctx, startDate, endDate, true)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyusun rekap payroll", "details": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": totals, "total": len(totals)})
}

// ExportCSV godoc
// @Summary Export Payroll CSV
// @Description Ekspor rekap payroll final sebagai CSV (admin only). Sesi terbuka tidak ikut; tutup dulu sebelum ekspor.
// @Tags Payroll
// @Produce text/csv
// @Security BearerAuth
// @Param start_date query string false "Awal rentang (2006-01-02), default Senin minggu ini"
// @Param end_date query string false "Akhir rentang (2006-01-02), default Minggu minggu ini"
// @Success 200 {string} string "CSV"
// @Router /admin/payroll/export [get]
func (h *PayrollHandler) ExportCSV(c *fiber.Ctx) error {
	startDate, endDate, err := h.parseWindowQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	totals, err := h.aggregateWindow(ctx, startDate, endDate, false)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyusun rekap payroll", "details": err.Error()})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="payroll_%s_%s.csv"`, startDate, endDate))

	writer := csv.NewWriter(c)
	defer writer.Flush()

	header := []string{"user_id", "nama", "sesi", "menit_mentah", "menit_dibulatkan", "durasi", "tarif_per_jam", "upah"}
	if err := writer.Write(header); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menulis CSV"})
	}
	for _, t := range totals {
		record := []string{
			t.UserID,
			t.UserName,
			strconv.Itoa(t.Sessions),
			strconv.Itoa(t.RawMinutes),
			strconv.Itoa(t.RoundedMinutes),
			t.RoundedLabel,
			strconv.FormatFloat(t.HourlyRate, 'f', 2, 64),
			strconv.FormatFloat(t.Pay, 'f', 2, 64),
		}
		if err := writer.Write(record); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menulis CSV"})
		}
	}
	return nil
}

// parseWindowQuery membaca rentang tanggal dari query. Tanpa parameter,
// rentangnya minggu berjalan (Senin s/d Minggu) di timezone organisasi.
func (h *PayrollHandler) parseWindowQuery(c *fiber.Ctx) (string, string, error) {
	layout := "2006-01-02"
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	if startDate == "" && endDate == "" {
		weekStart, weekEnd := timeutil.WeekWindow(h.org.Loc, time.Now().In(h.org.Loc))
		return weekStart.Format(layout), weekEnd.Format(layout), nil
	}

	if _, err := time.Parse(layout, startDate); err != nil {
		return "", "", fmt.Errorf("Invalid start_date format")
	}
	if _, err := time.Parse(layout, endDate); err != nil {
		return "", "", fmt.Errorf("Invalid end_date format")
	}
	if endDate < startDate {
		return "", "", fmt.Errorf("end_date tidak boleh sebelum start_date")
	}
	return startDate, endDate, nil
}
