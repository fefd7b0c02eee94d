package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Absensi-Shift/models"
	util "Sistem-Absensi-Shift/pkg/utils"
	"Sistem-Absensi-Shift/repository"
)

type LocationHandler struct {
	locationRepo        repository.LocationRepository
	defaultRadiusMeters float64
}

func NewLocationHandler(locationRepo repository.LocationRepository, defaultRadiusMeters float64) *LocationHandler {
	return &LocationHandler{
		locationRepo:        locationRepo,
		defaultRadiusMeters: defaultRadiusMeters,
	}
}

// buildOperatingHours memvalidasi dan mengkonversi payload jam operasional.
// Hari yang buka wajib punya jam buka dan tutup, dan jam tutup harus
// setelah jam buka.
func buildOperatingHours(payload [7]models.OperatingDayPayload) (*[7]models.OperatingDay, string) {
	var hours [7]models.OperatingDay
	for i, day := range payload {
		if day.Open {
			if day.OpenTime == "" || day.CloseTime == "" {
				return nil, "hari yang buka wajib punya jam buka dan jam tutup"
			}
			if day.CloseTime <= day.OpenTime {
				return nil, "jam tutup harus setelah jam buka"
			}
		}
		hours[i] = models.OperatingDay{
			Open:      day.Open,
			OpenTime:  day.OpenTime,
			CloseTime: day.CloseTime,
		}
	}
	return &hours, ""
}

// CreateLocation godoc
// @Summary Create Location
// @Description Membuat lokasi kerja baru dengan geofence dan jam operasional (admin only)
// @Tags Locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param location body models.LocationCreatePayload true "Data lokasi"
// @Success 201 {object} object{message=string,data=models.Location}
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/locations [post]
func (h *LocationHandler) CreateLocation(c *fiber.Ctx) error {
	var payload models.LocationCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data tidak valid", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	hours, msg := buildOperatingHours(payload.OperatingHours)
	if msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	radius := payload.RadiusMeters
	if radius == 0 {
		radius = h.defaultRadiusMeters
	}

	location := &models.Location{
		Name:           strings.TrimSpace(payload.Name),
		Address:        payload.Address,
		Latitude:       payload.Latitude,
		Longitude:      payload.Longitude,
		RadiusMeters:   radius,
		OperatingHours: *hours,
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	_, err := h.locationRepo.CreateLocation(ctx, location)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan lokasi", "details": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Lokasi berhasil ditambahkan", "data": location})
}

// GetAllLocations godoc
// @Summary Get All Locations
// @Tags Locations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{data=array}
// @Router /locations [get]
func (h *LocationHandler) GetAllLocations(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	locations, err := h.locationRepo.GetAllLocations(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data lokasi"})
	}
	if locations == nil {
		locations = []models.Location{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": locations})
}

// GetLocationByID godoc
// @Summary Get Location by ID
// @Tags Locations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Location ID"
// @Success 200 {object} object{data=models.Location}
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /locations/{id} [get]
func (h *LocationHandler) GetLocationByID(c *fiber.Ctx) error {
	objectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID lokasi tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	location, err := h.locationRepo.GetLocationByID(ctx, objectID)
	if err != nil {
		if strings.Contains(err.Error(), "tidak ditemukan") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lokasi tidak ditemukan"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil lokasi", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": location})
}

// UpdateLocation godoc
// @Summary Update Location
// @Description Memperbarui profil lokasi (admin only)
// @Tags Locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Location ID"
// @Param payload body models.LocationUpdatePayload true "Data yang diubah"
// @Success 200 {object} object{message=string}
// @Router /admin/locations/{id} [put]
func (h *LocationHandler) UpdateLocation(c *fiber.Ctx) error {
	objectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID lokasi tidak valid"})
	}

	var payload models.LocationUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data tidak valid", "details": err.Error()})
	}
	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	updateData := bson.M{}
	if payload.Name != "" {
		updateData["name"] = strings.TrimSpace(payload.Name)
	}
	if payload.Address != "" {
		updateData["address"] = payload.Address
	}
	if payload.Latitude != nil {
		updateData["latitude"] = *payload.Latitude
	}
	if payload.Longitude != nil {
		updateData["longitude"] = *payload.Longitude
	}
	if payload.RadiusMeters != nil {
		updateData["radius_meters"] = *payload.RadiusMeters
	}
	if payload.OperatingHours != nil {
		hours, msg := buildOperatingHours(*payload.OperatingHours)
		if msg != "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
		}
		updateData["operating_hours"] = *hours
	}
	if len(updateData) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tidak ada data yang diubah"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.locationRepo.UpdateLocation(ctx, objectID, updateData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memperbarui lokasi", "details": err.Error()})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lokasi tidak ditemukan"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Lokasi berhasil diperbarui"})
}

// DeleteLocation godoc
// @Summary Delete Location
// @Tags Locations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Location ID"
// @Success 200 {object} object{message=string}
// @Router /admin/locations/{id} [delete]
func (h *LocationHandler) DeleteLocation(c *fiber.Ctx) error {
	objectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID lokasi tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.locationRepo.DeleteLocation(ctx, objectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menghapus lokasi", "details": err.Error()})
	}
	if result.DeletedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lokasi tidak ditemukan"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Lokasi berhasil dihapus"})
}
