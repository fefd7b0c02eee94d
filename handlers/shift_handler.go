package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Absensi-Shift/models"
	"Sistem-Absensi-Shift/pkg/schedule"
	"Sistem-Absensi-Shift/pkg/timeutil"
	util "Sistem-Absensi-Shift/pkg/utils"
	"Sistem-Absensi-Shift/repository"
)

type ShiftHandler struct {
	shiftRepo    repository.ShiftRepository
	userRepo     *repository.UserRepository
	locationRepo repository.LocationRepository
	org          schedule.OrgConfig
}

func NewShiftHandler(shiftRepo repository.ShiftRepository, userRepo *repository.UserRepository, locationRepo repository.LocationRepository, org schedule.OrgConfig) *ShiftHandler {
	return &ShiftHandler{
		shiftRepo:    shiftRepo,
		userRepo:     userRepo,
		locationRepo: locationRepo,
		org:          org,
	}
}

// CreateShiftTemplate godoc
// @Summary Create Shift Template
// @Description Membuat aturan shift berulang mingguan untuk satu karyawan (admin only)
// @Tags Shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param template body models.ShiftTemplateCreatePayload true "Data template shift"
// @Success 201 {object} object{message=string,data=models.ShiftTemplate}
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/shifts/templates [post]
func (h *ShiftHandler) CreateShiftTemplate(c *fiber.Ctx) error {
	var payload models.ShiftTemplateCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data tidak valid", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	if payload.EndTime <= payload.StartTime {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "jam selesai harus setelah jam mulai"})
	}
	if payload.EffectiveUntil != "" && payload.EffectiveUntil < payload.EffectiveFrom {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "effective_until tidak boleh sebelum effective_from"})
	}

	userID, err := primitive.ObjectIDFromHex(payload.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID user tidak valid"})
	}
	locationID, err := primitive.ObjectIDFromHex(payload.LocationID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID lokasi tidak valid"})
	}

	tpl := &models.ShiftTemplate{
		SeriesID:       uuid.New().String(),
		UserID:         userID,
		LocationID:     locationID,
		Weekday:        *payload.Weekday,
		StartTime:      strings.TrimSpace(payload.StartTime),
		EndTime:        strings.TrimSpace(payload.EndTime),
		EffectiveFrom:  payload.EffectiveFrom,
		EffectiveUntil: payload.EffectiveUntil,
		Note:           payload.Note,
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	_, err = h.shiftRepo.CreateTemplate(ctx, tpl)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan template shift", "details": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Template shift berhasil ditambahkan", "data": tpl})
}

// GetAllShiftTemplates godoc
// @Summary Get All Shift Templates
// @Tags Shifts
// @Produce json
// @Security BearerAuth
// @Param user_id query string false "Filter template milik satu karyawan"
// @Success 200 {object} object{data=array}
// @Router /shifts/templates [get]
func (h *ShiftHandler) GetAllShiftTemplates(c *fiber.Ctx) error {
	filter := bson.M{}
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		userID, err := primitive.ObjectIDFromHex(userIDStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID user tidak valid"})
		}
		filter["user_id"] = userID
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	templates, err := h.shiftRepo.FindAllTemplates(ctx, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil template shift"})
	}
	if templates == nil {
		templates = []models.ShiftTemplate{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": templates})
}

// TerminateShiftTemplate godoc
// @Summary Terminate Shift Template
// @Description Mengakhiri masa berlaku template (template tidak dihapus fisik)
// @Tags Shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Param payload body models.ShiftTemplateTerminatePayload true "Tanggal akhir berlaku"
// @Success 200 {object} object{message=string}
// @Router /admin/shifts/templates/{id}/terminate [put]
func (h *ShiftHandler) TerminateShiftTemplate(c *fiber.Ctx) error {
	objectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID template tidak valid"})
	}

	var payload models.ShiftTemplateTerminatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data tidak valid", "details": err.Error()})
	}
	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.shiftRepo.TerminateTemplate(ctx, objectID, payload.EffectiveUntil); err != nil {
		if strings.Contains(err.Error(), "tidak ditemukan") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template shift tidak ditemukan"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengakhiri template shift", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Masa berlaku template shift berhasil diakhiri"})
}

// CreateOneOffShift godoc
// @Summary Create One-Off Shift
// @Description Membuat shift satuan untuk satu tanggal, di luar series mana pun (admin only)
// @Tags Shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shift body models.OneOffShiftPayload true "Data shift satuan"
// @Success 201 {object} object{message=string,data=models.ShiftInstance}
// @Router /admin/shifts/one-off [post]
func (h *ShiftHandler) CreateOneOffShift(c *fiber.Ctx) error {
	var payload models.OneOffShiftPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data tidak valid", "details": err.Error()})
	}
	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	userID, err := primitive.ObjectIDFromHex(payload.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID user tidak valid"})
	}
	locationID, err := primitive.ObjectIDFromHex(payload.LocationID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID lokasi tidak valid"})
	}

	startsAt, err := timeutil.CombineDateTime(payload.Date, payload.StartTime, h.org.Loc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "jam mulai tidak valid"})
	}
	endsAt, err := timeutil.CombineDateTime(payload.Date, payload.EndTime, h.org.Loc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "jam selesai tidak valid"})
	}
	if !endsAt.After(startsAt) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "jam selesai harus setelah jam mulai"})
	}

	inst := &models.ShiftInstance{
		UserID:     userID,
		LocationID: locationID,
		Date:       payload.Date,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
		Note:       payload.Note,
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	_, err = h.shiftRepo.CreateInstance(ctx, inst)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan shift satuan", "details": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Shift satuan berhasil ditambahkan", "data": inst})
}

// GetEffectiveShifts godoc
// @Summary Get Effective Shifts
// @Description Jadwal shift final hasil gabungan template berulang dan override untuk satu rentang tanggal
// @Tags Shifts
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "Awal rentang (2006-01-02)"
// @Param end_date query string true "Akhir rentang (2006-01-02)"
// @Param user_id query string false "Filter satu karyawan"
// @Param skip_holidays query bool false "Buang tanggal libur nasional"
// @Success 200 {object} models.EffectiveShiftsResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /shifts/effective [get]
func (h *ShiftHandler) GetEffectiveShifts(c *fiber.Ctx) error {
	layout := "2006-01-02"
	startDateStr := c.Query("start_date")
	endDateStr := c.Query("end_date")

	startDate, err := time.Parse(layout, startDateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_date format"})
	}
	endDate, err := time.Parse(layout, endDateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_date format"})
	}
	if endDate.Before(startDate) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_date tidak boleh sebelum start_date"})
	}

	templateFilter := bson.M{}
	var userID *primitive.ObjectID
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		parsed, err := primitive.ObjectIDFromHex(userIDStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID user tidak valid"})
		}
		userID = &parsed
		templateFilter["user_id"] = parsed
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	templates, err := h.shiftRepo.FindAllTemplates(ctx, templateFilter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil template shift"})
	}
	instances, err := h.shiftRepo.FindInstancesInWindow(ctx, startDateStr, endDateStr, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil instance shift"})
	}

	resolved, err := schedule.Resolve(templates, instances, startDateStr, endDateStr, h.org)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal meresolusi jadwal shift", "details": err.Error()})
	}

	if c.QueryBool("skip_holidays") {
		resolved = h.filterHolidays(resolved, startDate, endDate)
	}

	views := h.toViews(ctx, resolved)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": views, "total": len(views)})
}

func (h *ShiftHandler) filterHolidays(shifts []schedule.EffectiveShift, startDate, endDate time.Time) []schedule.EffectiveShift {
	holidayMap, err := util.GetHolidayMap(startDate.Format("2006"))
	if err != nil {
		// Jadwal tetap tampil tanpa filter libur; jangan gagalkan request.
		return shifts
	}
	if startDate.Year() != endDate.Year() {
		nextYear, err := util.GetHolidayMap(endDate.Format("2006"))
		if err == nil {
			for date, val := range nextYear {
				holidayMap[date] = val
			}
		}
	}

	filtered := shifts[:0]
	for _, s := range shifts {
		if !holidayMap[s.Date] {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// toViews melengkapi hasil resolusi dengan nama user dan lokasi untuk
// tampilan kalender.
func (h *ShiftHandler) toViews(ctx context.Context, shifts []schedule.EffectiveShift) []models.EffectiveShiftView {
	_, names, err := h.userRepo.GetRateAndNameMaps(ctx)
	if err != nil {
		names = map[string]string{}
	}
	locationNames := map[string]string{}
	if locations, err := h.locationRepo.GetAllLocations(ctx); err == nil {
		for _, loc := range locations {
			locationNames[loc.ID.Hex()] = loc.Name
		}
	}

	views := make([]models.EffectiveShiftView, 0, len(shifts))
	for _, s := range shifts {
		view := models.EffectiveShiftView{
			UserID:       s.UserID.Hex(),
			UserName:     names[s.UserID.Hex()],
			LocationID:   s.LocationID.Hex(),
			LocationName: locationNames[s.LocationID.Hex()],
			Date:         s.Date,
			StartsAt:     s.StartsAt,
			EndsAt:       s.EndsAt,
			SeriesID:     s.SeriesID,
		}
		switch origin := s.Origin.(type) {
		case schedule.VirtualOrigin:
			view.IsVirtual = true
		case schedule.PersistedOrigin:
			view.InstanceID = origin.InstanceID.Hex()
		}
		views = append(views, view)
	}
	return views
}

// findOccurrence meresolusi satu tanggal dan mencari occurrence milik
// series target di dalamnya.
func (h *ShiftHandler) findOccurrence(ctx context.Context, seriesID, date string) (*schedule.EffectiveShift, []models.ShiftInstance, error) {
	tpl, err := h.shiftRepo.FindTemplateBySeriesID(ctx, seriesID)
	if err != nil {
		return nil, nil, err
	}

	seriesInstances, err := h.shiftRepo.FindInstancesBySeries(ctx, seriesID)
	if err != nil {
		return nil, nil, err
	}

	var templates []models.ShiftTemplate
	if tpl != nil {
		templates = append(templates, *tpl)
	}
	var dayInstances []models.ShiftInstance
	for _, inst := range seriesInstances {
		if inst.Date == date {
			dayInstances = append(dayInstances, inst)
		}
	}

	resolved, err := schedule.Resolve(templates, dayInstances, date, date, h.org)
	if err != nil {
		return nil, nil, err
	}
	for i := range resolved {
		if resolved[i].SeriesID == seriesID && resolved[i].Date == date {
			return &resolved[i], seriesInstances, nil
		}
	}
	return nil, seriesInstances, nil
}

// EditOccurrence godoc
// @Summary Edit Occurrence
// @Description Mengubah jam satu occurrence series dengan cakupan this/future/all. Occurrence virtual dimaterialisasi jadi override saat pertama diedit; mutasi multi-instance dieksekusi sebagai satu batch atomik.
// @Tags Shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.OccurrenceEditPayload true "Edit occurrence"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /admin/shifts/occurrence [put]
func (h *ShiftHandler) EditOccurrence(c *fiber.Ctx) error {
	var payload models.OccurrenceEditPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data tidak valid", "details": err.Error()})
	}
	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}
	if payload.EndTime <= payload.StartTime {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "jam selesai harus setelah jam mulai"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	target, seriesInstances, err := h.findOccurrence(ctx, payload.SeriesID, payload.Date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mencari occurrence", "details": err.Error()})
	}
	if target == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Occurrence tidak ditemukan untuk series dan tanggal tersebut"})
	}

	plan, err := schedule.PlanEdit(*target, payload.Scope, payload.StartTime, payload.EndTime, seriesInstances, h.org)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.shiftRepo.ExecutePlan(ctx, plan); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menerapkan perubahan series", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Occurrence berhasil diperbarui"})
}

// DeleteOccurrence godoc
// @Summary Delete Occurrence
// @Description Menghapus occurrence dengan cakupan this/future/all. Hapus this pada occurrence virtual menyimpan tombstone supaya tanggal itu hilang dari seriesnya.
// @Tags Shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.OccurrenceDeletePayload true "Hapus occurrence"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /admin/shifts/occurrence [delete]
func (h *ShiftHandler) DeleteOccurrence(c *fiber.Ctx) error {
	var payload models.OccurrenceDeletePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data tidak valid", "details": err.Error()})
	}
	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	target, seriesInstances, err := h.findOccurrence(ctx, payload.SeriesID, payload.Date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mencari occurrence", "details": err.Error()})
	}
	if target == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Occurrence tidak ditemukan untuk series dan tanggal tersebut"})
	}

	plan, err := schedule.PlanDelete(*target, payload.Scope, seriesInstances)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.shiftRepo.ExecutePlan(ctx, plan); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menghapus occurrence", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Occurrence berhasil dihapus"})
}

// GetHolidays godoc
// @Summary Get Holidays
// @Description Daftar hari libur nasional untuk kalender frontend
// @Tags Shifts
// @Produce json
// @Param year query string false "Tahun (default: tahun berjalan)"
// @Success 200 {array} util.Holiday
// @Router /shifts/holidays [get]
func (h *ShiftHandler) GetHolidays(c *fiber.Ctx) error {
	year := c.Query("year")
	if year == "" {
		year = time.Now().In(h.org.Loc).Format("2006")
	}

	holidays, err := util.GetHolidays(year)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data hari libur", "details": err.Error()})
	}
	if holidays == nil {
		holidays = []util.Holiday{}
	}
	return c.Status(fiber.StatusOK).JSON(holidays)
}
