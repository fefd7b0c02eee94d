package handlers

import (
	"context"
	"encoding/base64"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Absensi-Shift/models"
	"Sistem-Absensi-Shift/pkg/geo"
	"Sistem-Absensi-Shift/pkg/notification"
	"Sistem-Absensi-Shift/pkg/schedule"
	"Sistem-Absensi-Shift/pkg/timeutil"
	util "Sistem-Absensi-Shift/pkg/utils"
	"Sistem-Absensi-Shift/repository"
)

// Toleransi clock-in sebelum jam mulai shift.
const clockInEarlyTolerance = 30 * time.Minute

type AttendanceHandler struct {
	attendanceRepo repository.AttendanceRepository
	shiftRepo      repository.ShiftRepository
	userRepo       *repository.UserRepository
	locationRepo   repository.LocationRepository
	notifier       notification.Sender
	org            schedule.OrgConfig
	defaultRadius  float64
}

func NewAttendanceHandler(
	attendanceRepo repository.AttendanceRepository,
	shiftRepo repository.ShiftRepository,
	userRepo *repository.UserRepository,
	locationRepo repository.LocationRepository,
	notifier notification.Sender,
	org schedule.OrgConfig,
	defaultRadius float64,
) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceRepo: attendanceRepo,
		shiftRepo:      shiftRepo,
		userRepo:       userRepo,
		locationRepo:   locationRepo,
		notifier:       notifier,
		org:            org,
		defaultRadius:  defaultRadius,
	}
}

// resolveShiftsFor meresolusi jadwal efektif satu karyawan untuk satu tanggal.
func (h *AttendanceHandler) resolveShiftsFor(ctx context.Context, userID primitive.ObjectID, date string) ([]schedule.EffectiveShift, error) {
	templates, err := h.shiftRepo.FindAllTemplates(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	instances, err := h.shiftRepo.FindInstancesInWindow(ctx, date, date, &userID)
	if err != nil {
		return nil, err
	}
	return schedule.Resolve(templates, instances, date, date, h.org)
}

// ClockIn godoc
// @Summary Clock In
// @Description Membuka sesi absensi. Ditolak dengan kode kegagalan bertipe jika di luar geofence lokasi, di luar jam operasional, atau di luar jam shift karyawan.
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.ClockInPayload true "Lokasi dan koordinat"
// @Success 201 {object} object{message=string,data=models.Attendance}
// @Failure 403 {object} models.ClockInFailureResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /attendance/clock-in [post]
func (h *AttendanceHandler) ClockIn(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*models.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token tidak valid"})
	}

	var payload models.ClockInPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data tidak valid", "details": err.Error()})
	}
	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	locationID, err := primitive.ObjectIDFromHex(payload.LocationID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID lokasi tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	location, err := h.locationRepo.GetLocationByID(ctx, locationID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data lokasi"})
	}
	if location == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lokasi tidak ditemukan"})
	}

	now := time.Now().In(h.org.Loc)
	date := timeutil.DateOf(h.org.Loc, now)

	existing, err := h.attendanceRepo.FindOpenSessionByUserAndDate(ctx, claims.UserID, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memeriksa sesi absensi"})
	}
	if existing != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Anda masih punya sesi absensi terbuka hari ini"})
	}

	radius := location.RadiusMeters
	if radius <= 0 {
		radius = h.defaultRadius
	}
	if !geo.WithinRadius(location.Latitude, location.Longitude, payload.Latitude, payload.Longitude, radius) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "Anda berada di luar area lokasi kerja",
			"failure": models.FailOutsideGeofence,
		})
	}

	if failure := h.checkOperatingHours(location, now, date); failure != "" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "Lokasi sedang di luar jam operasional",
			"failure": failure,
		})
	}

	shifts, err := h.resolveShiftsFor(ctx, claims.UserID, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal meresolusi jadwal shift", "details": err.Error()})
	}
	if failure := checkShiftHours(shifts, locationID, date, now); failure != "" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "Di luar jam shift Anda hari ini",
			"failure": failure,
		})
	}

	attendance := &models.Attendance{
		UserID:     claims.UserID,
		LocationID: locationID,
		Date:       date,
		ClockIn:    now,
	}
	if _, err := h.attendanceRepo.CreateAttendance(ctx, attendance); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan sesi absensi"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Berhasil clock-in pukul " + now.Format("15:04"), "data": attendance})
}

func (h *AttendanceHandler) checkOperatingHours(location *models.Location, now time.Time, date string) string {
	hours := location.OperatingHours[int(now.Weekday())]
	if !hours.Open {
		return models.FailOutsideOperatingHours
	}
	if hours.OpenTime != "" {
		openAt, err := timeutil.CombineDateTime(date, hours.OpenTime, h.org.Loc)
		if err == nil && now.Before(openAt) {
			return models.FailOutsideOperatingHours
		}
	}
	if hours.CloseTime != "" {
		closeAt, err := timeutil.CombineDateTime(date, hours.CloseTime, h.org.Loc)
		if err == nil && now.After(closeAt) {
			return models.FailOutsideOperatingHours
		}
	}
	return ""
}

// checkShiftHours menuntut clock-in berada dalam jendela shift hanya kalau
// karyawan memang punya shift di lokasi itu hari itu. Tanpa shift, jam
// operasional lokasi yang jadi pagarnya (konsisten dengan aturan auto-close).
func checkShiftHours(shifts []schedule.EffectiveShift, locationID primitive.ObjectID, date string, now time.Time) string {
	for _, s := range shifts {
		if s.LocationID != locationID || s.Date != date {
			continue
		}
		if now.Before(s.StartsAt.Add(-clockInEarlyTolerance)) || now.After(s.EndsAt) {
			return models.FailOutsideShiftHours
		}
		return ""
	}
	return ""
}

// ClockOut godoc
// @Summary Clock Out
// @Description Menutup sesi absensi terbuka milik karyawan untuk hari ini
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /attendance/clock-out [post]
func (h *AttendanceHandler) ClockOut(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*models.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	now := time.Now().In(h.org.Loc)
	date := timeutil.DateOf(h.org.Loc, now)

	session, err := h.attendanceRepo.FindOpenSessionByUserAndDate(ctx, claims.UserID, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memeriksa sesi absensi"})
	}
	if session == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tidak ada sesi absensi terbuka hari ini"})
	}

	closed, err := h.attendanceRepo.CloseSessionIfOpen(ctx, session.ID, now, models.CloseReasonManual)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menutup sesi absensi"})
	}
	if !closed {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Sesi sudah ditutup"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Berhasil clock-out pukul " + now.Format("15:04")})
}

// GetMyAttendanceHistory godoc
// @Summary Get My Attendance History
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{data=array}
// @Router /attendance/my-history [get]
func (h *AttendanceHandler) GetMyAttendanceHistory(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*models.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	history, err := h.attendanceRepo.FindAttendanceByUserID(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil riwayat absensi"})
	}
	if history == nil {
		history = []models.Attendance{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": history})
}

// GetTodayAttendance godoc
// @Summary Get Today Attendance
// @Description Daftar absensi hari ini beserta detail karyawan (admin only)
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{data=array}
// @Router /admin/attendance/today [get]
func (h *AttendanceHandler) GetTodayAttendance(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	date := timeutil.DateOf(h.org.Loc, time.Now())
	records, err := h.attendanceRepo.GetTodayAttendanceWithUserDetails(ctx, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil absensi hari ini"})
	}
	if records == nil {
		records = []models.AttendanceWithUser{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": records})
}

// RunAutoClose godoc
// @Summary Run Auto Close
// @Description Memaksa satu putaran penutupan otomatis sesi yang lewat batas jadwal (admin only). Putaran yang sama juga berjalan periodik lewat ticker internal.
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string,closed=int}
// @Router /admin/attendance/auto-close [post]
func (h *AttendanceHandler) RunAutoClose(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	closed, err := h.AutoCloseOnce(ctx, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Putaran auto-close gagal", "details": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Putaran auto-close selesai", "closed": closed})
}

// AutoCloseOnce memeriksa semua sesi terbuka dan menutup yang sudah lewat
// batas jadwalnya. Dipanggil dari endpoint admin dan dari ticker di main.
// Kegagalan per sesi hanya dilog; satu sesi bermasalah tidak menghentikan
// putaran.
func (h *AttendanceHandler) AutoCloseOnce(ctx context.Context, now time.Time) (int, error) {
	sessions, err := h.attendanceRepo.FindOpenSessions(ctx)
	if err != nil {
		return 0, err
	}
	if len(sessions) == 0 {
		return 0, nil
	}

	locations := map[primitive.ObjectID]*models.Location{}
	emails, err := h.userRepo.GetEmailMap(ctx)
	if err != nil {
		log.Printf("auto-close: gagal mengambil email user: %v", err)
		emails = map[string]string{}
	}

	closedCount := 0
	for _, session := range sessions {
		location, ok := locations[session.LocationID]
		if !ok {
			location, err = h.locationRepo.GetLocationByID(ctx, session.LocationID)
			if err != nil {
				log.Printf("auto-close: gagal mengambil lokasi %s: %v", session.LocationID.Hex(), err)
				continue
			}
			locations[session.LocationID] = location
		}
		if location == nil {
			continue
		}

		shifts, err := h.resolveShiftsFor(ctx, session.UserID, session.Date)
		if err != nil {
			log.Printf("auto-close: gagal meresolusi shift user %s: %v", session.UserID.Hex(), err)
			continue
		}

		decision := schedule.DecideAutoClose(session, shifts, *location, now, h.org)
		if decision == nil {
			continue
		}

		ok, err = h.attendanceRepo.CloseSessionIfOpen(ctx, session.ID, decision.ClockOut, decision.Reason)
		if err != nil {
			log.Printf("auto-close: gagal menutup sesi %s: %v", session.ID.Hex(), err)
			continue
		}
		if !ok {
			// Clock-out manual mendahului; biarkan.
			continue
		}
		closedCount++

		email := emails[session.UserID.Hex()]
		locationName := location.Name
		reason := decision.Reason
		go h.notifier.SendAutoClose(email, locationName, reason)
	}
	return closedCount, nil
}

// GenerateQRCode godoc
// @Summary Generate QR Code
// @Description Membuat QR absensi kios harian untuk satu lokasi (admin only)
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.QRCodeGeneratePayload true "Lokasi kios"
// @Success 200 {object} object{message=string,qr_code_image=string,expires_at=string}
// @Router /admin/attendance/qr-code [post]
func (h *AttendanceHandler) GenerateQRCode(c *fiber.Ctx) error {
	var payload models.QRCodeGeneratePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data tidak valid", "details": err.Error()})
	}
	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	locationID, err := primitive.ObjectIDFromHex(payload.LocationID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID lokasi tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	location, err := h.locationRepo.GetLocationByID(ctx, locationID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data lokasi"})
	}
	if location == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lokasi tidak ditemukan"})
	}

	now := time.Now().In(h.org.Loc)
	uniqueCode := uuid.New().String()
	expiresAt := time.Date(now.Year(), now.Month(), now.Day(), 23, 0, 0, 0, h.org.Loc)

	newQRCode := &models.QRCode{
		ID:         primitive.NewObjectID(),
		Code:       uniqueCode,
		LocationID: locationID,
		Date:       timeutil.DateOf(h.org.Loc, now),
		ExpiresAt:  expiresAt,
		UsedBy:     []primitive.ObjectID{},
		CreatedAt:  now,
	}

	if _, err := h.attendanceRepo.CreateQRCode(ctx, newQRCode); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan data QR Code"})
	}

	png, err := qrcode.Encode(uniqueCode, qrcode.Medium, 256)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat gambar QR Code"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":       "QR Code berhasil dibuat",
		"qr_code_image": "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		"expires_at":    expiresAt,
	})
}

// ScanQRCode godoc
// @Summary Scan QR Code
// @Description Absensi mode kios: scan QR lokasi menggantikan cek geofence. Scan pertama membuka sesi, scan kedua menutupnya.
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.QRCodeScanPayload true "Isi QR yang dipindai"
// @Success 200 {object} object{message=string}
// @Failure 409 {object} models.ErrorResponse
// @Router /attendance/scan [post]
func (h *AttendanceHandler) ScanQRCode(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*models.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token tidak valid"})
	}

	var payload models.QRCodeScanPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data tidak valid", "details": err.Error()})
	}
	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	qrCode, err := h.attendanceRepo.FindQRCodeByValue(ctx, payload.QRCodeValue)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mencari QR Code"})
	}
	if qrCode == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "QR Code tidak ditemukan atau tidak valid"})
	}

	now := time.Now().In(h.org.Loc)
	if now.After(qrCode.ExpiresAt) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "QR Code sudah kadaluarsa"})
	}
	date := timeutil.DateOf(h.org.Loc, now)
	if qrCode.Date != date {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "QR Code ini tidak berlaku untuk hari ini"})
	}

	session, err := h.attendanceRepo.FindOpenSessionByUserAndDate(ctx, claims.UserID, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memeriksa sesi absensi"})
	}

	// Scan kedua hari itu = clock-out.
	if session != nil {
		closed, err := h.attendanceRepo.CloseSessionIfOpen(ctx, session.ID, now, models.CloseReasonManual)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal melakukan clock-out"})
		}
		if !closed {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Sesi sudah ditutup"})
		}
		if _, err := h.attendanceRepo.MarkQRCodeAsUsed(ctx, qrCode.ID, claims.UserID); err != nil {
			log.Printf("scan: gagal menandai QR terpakai: %v", err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Berhasil clock-out pukul " + now.Format("15:04")})
	}

	location, err := h.locationRepo.GetLocationByID(ctx, qrCode.LocationID)
	if err != nil || location == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data lokasi QR"})
	}

	// Kios membuktikan kehadiran fisik, jadi geofence dilewati; jam
	// operasional dan jam shift tetap berlaku.
	if failure := h.checkOperatingHours(location, now, date); failure != "" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "Lokasi sedang di luar jam operasional",
			"failure": failure,
		})
	}
	shifts, err := h.resolveShiftsFor(ctx, claims.UserID, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal meresolusi jadwal shift"})
	}
	if failure := checkShiftHours(shifts, qrCode.LocationID, date, now); failure != "" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "Di luar jam shift Anda hari ini",
			"failure": failure,
		})
	}

	attendance := &models.Attendance{
		UserID:     claims.UserID,
		LocationID: qrCode.LocationID,
		Date:       date,
		ClockIn:    now,
	}
	if _, err := h.attendanceRepo.CreateAttendance(ctx, attendance); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal melakukan clock-in"})
	}
	if _, err := h.attendanceRepo.MarkQRCodeAsUsed(ctx, qrCode.ID, claims.UserID); err != nil {
		log.Printf("scan: gagal menandai QR terpakai: %v", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Berhasil clock-in pukul " + now.Format("15:04")})
}
