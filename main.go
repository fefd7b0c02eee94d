package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"Sistem-Absensi-Shift/config"
	"Sistem-Absensi-Shift/handlers"
	"Sistem-Absensi-Shift/repository"
	"Sistem-Absensi-Shift/router"
	"Sistem-Absensi-Shift/seeder"

	_ "Sistem-Absensi-Shift/docs"
	_ "time/tzdata"
)

// Interval ticker auto-close. Batas penutupan memakai jam jadwal, bukan jam
// pengecekan, jadi interval ini hanya memengaruhi seberapa cepat sesi
// nyangkut terdeteksi.
const autoCloseInterval = 5 * time.Minute

// @title Sistem Absensi Shift API
// @version 1.0
// @description API absensi karyawan berbasis shift: template shift berulang, override per tanggal dengan cakupan this/future/all, geofence clock-in, penutupan sesi otomatis, dan rekap payroll dengan pembulatan durasi
//
// @contact.name API Support
// @contact.email support@example.com
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:3000
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the PASETO token.
//
// @tag.name Auth
// @tag.description Authentication endpoints
//
// @tag.name Users
// @tag.description User management endpoints
//
// @tag.name Locations
// @tag.description Work location and operating hours endpoints
//
// @tag.name Shifts
// @tag.description Shift templates, occurrences, and effective schedule endpoints
//
// @tag.name Attendance
// @tag.description Clock-in/out and kiosk QR endpoints
//
// @tag.name Payroll
// @tag.description Rounding settings and payroll summary endpoints
func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file tidak ditemukan, menggunakan environment variables sistem")
	}

	cfg := config.LoadConfig()

	config.MongoConnect()
	config.InitDatabase()
	defer config.DisconnectDB()

	if os.Getenv("SEED_ON_START") == "true" {
		seeder.SeedUsers(repository.NewUserRepository())
		seeder.SeedLocations(repository.NewLocationRepository())
	}

	app := fiber.New()

	config.SetupCORS(app)
	app.Use(logger.New())

	attendanceHandler := router.SetupRoutes(app, cfg)
	go runAutoCloseLoop(attendanceHandler)

	log.Printf("Server running on port %s", cfg.Port)
	log.Printf("API Documentation: http://localhost:%s/docs/index.html", cfg.Port)
	log.Printf("Timezone organisasi: %s", cfg.Timezone)
	log.Printf("CORS enabled for origins: %v", config.GetAllowedOrigins())
	log.Fatal(app.Listen(":" + cfg.Port))
}

func runAutoCloseLoop(h *handlers.AttendanceHandler) {
	ticker := time.NewTicker(autoCloseInterval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		closed, err := h.AutoCloseOnce(ctx, time.Now())
		cancel()
		if err != nil {
			log.Printf("auto-close: putaran gagal: %v", err)
			continue
		}
		if closed > 0 {
			log.Printf("auto-close: %d sesi ditutup otomatis", closed)
		}
	}
}
