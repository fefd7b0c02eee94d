package router

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"Sistem-Absensi-Shift/config"
	"Sistem-Absensi-Shift/config/middleware"
	_ "Sistem-Absensi-Shift/docs"
	"Sistem-Absensi-Shift/handlers"
	"Sistem-Absensi-Shift/pkg/notification"
	"Sistem-Absensi-Shift/pkg/schedule"
	"Sistem-Absensi-Shift/pkg/timeutil"
	"Sistem-Absensi-Shift/repository"
)

// SetupRoutes mendaftarkan semua rute dan mengembalikan AttendanceHandler
// supaya main bisa menjalankan ticker auto-close di atas instance yang sama.
func SetupRoutes(app *fiber.App, cfg *config.AppConfig) *handlers.AttendanceHandler {
	log.Println("Memulai pendaftaran rute aplikasi...")

	org := schedule.OrgConfig{Loc: timeutil.ResolveTimezone(cfg.Timezone)}
	notifier := notification.NewLogSender()

	// Inisialisasi Repositories
	userRepo := repository.NewUserRepository()
	locationRepo := repository.NewLocationRepository()
	shiftRepo := repository.NewShiftRepository()
	attendanceRepo := repository.NewAttendanceRepository()
	payrollRepo := repository.NewPayrollSettingsRepository()

	// Inisialisasi Handlers
	authHandler := handlers.NewAuthHandler(userRepo)
	userHandler := handlers.NewUserHandler(userRepo)
	locationHandler := handlers.NewLocationHandler(locationRepo, cfg.DefaultGeofenceRadius)
	shiftHandler := handlers.NewShiftHandler(shiftRepo, userRepo, locationRepo, org)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceRepo, shiftRepo, userRepo, locationRepo, notifier, org, cfg.DefaultGeofenceRadius)
	payrollHandler := handlers.NewPayrollHandler(payrollRepo, attendanceRepo, userRepo, org)

	// Health check & Docs
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Sistem Absensi Shift API",
			"status":  "running",
			"docs":    "/docs/index.html",
		})
	})
	app.Get("/docs/*", swagger.HandlerDefault)

	// API v1 group
	api := app.Group("/api/v1")

	// Authentication routes
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// User routes
	protectedUserGroup := api.Group("/users", middleware.AuthMiddleware())
	protectedUserGroup.Post("/change-password", authHandler.ChangePassword)
	protectedUserGroup.Get("/:id", userHandler.GetUserByID)
	protectedUserGroup.Put("/:id", userHandler.UpdateUser)

	// Admin routes
	adminGroup := api.Group("/admin", middleware.AuthMiddleware(), middleware.AdminMiddleware())
	adminGroup.Get("/users", userHandler.GetAllUsers)
	adminGroup.Delete("/users/:id", userHandler.DeleteUser)

	// Location routes
	api.Get("/locations", middleware.AuthMiddleware(), locationHandler.GetAllLocations)
	api.Get("/locations/:id", middleware.AuthMiddleware(), locationHandler.GetLocationByID)
	adminGroup.Post("/locations", locationHandler.CreateLocation)
	adminGroup.Put("/locations/:id", locationHandler.UpdateLocation)
	adminGroup.Delete("/locations/:id", locationHandler.DeleteLocation)

	// Shift routes: template, one-off, occurrence, jadwal efektif
	shiftGroup := api.Group("/shifts", middleware.AuthMiddleware())
	shiftGroup.Get("/templates", shiftHandler.GetAllShiftTemplates)
	shiftGroup.Get("/effective", shiftHandler.GetEffectiveShifts)
	shiftGroup.Get("/holidays", shiftHandler.GetHolidays)
	adminGroup.Post("/shifts/templates", shiftHandler.CreateShiftTemplate)
	adminGroup.Put("/shifts/templates/:id/terminate", shiftHandler.TerminateShiftTemplate)
	adminGroup.Post("/shifts/one-off", shiftHandler.CreateOneOffShift)
	adminGroup.Put("/shifts/occurrence", shiftHandler.EditOccurrence)
	adminGroup.Delete("/shifts/occurrence", shiftHandler.DeleteOccurrence)

	// Attendance routes
	attendanceGroup := api.Group("/attendance", middleware.AuthMiddleware())
	attendanceGroup.Post("/clock-in", attendanceHandler.ClockIn)
	attendanceGroup.Post("/clock-out", attendanceHandler.ClockOut)
	attendanceGroup.Post("/scan", attendanceHandler.ScanQRCode)
	attendanceGroup.Get("/my-history", attendanceHandler.GetMyAttendanceHistory)
	adminGroup.Get("/attendance/today", attendanceHandler.GetTodayAttendance)
	adminGroup.Post("/attendance/qr-code", attendanceHandler.GenerateQRCode)
	adminGroup.Post("/attendance/auto-close", attendanceHandler.RunAutoClose)

	// Payroll routes
	adminGroup.Get("/payroll/settings", payrollHandler.GetSettings)
	adminGroup.Put("/payroll/settings", payrollHandler.UpdateSettings)
	adminGroup.Get("/payroll/summary", payrollHandler.GetSummary)
	adminGroup.Get("/payroll/export", payrollHandler.ExportCSV)

	log.Println("Semua rute aplikasi berhasil didaftarkan.")
	log.Println("Routes yang tersedia:")
	log.Println("- POST /api/v1/auth/register")
	log.Println("- POST /api/v1/auth/login")
	log.Println("- POST /api/v1/users/change-password (protected)")
	log.Println("- GET /api/v1/users/:id (protected)")
	log.Println("- PUT /api/v1/users/:id (protected)")
	log.Println("- GET /api/v1/admin/users (admin only)")
	log.Println("- DELETE /api/v1/admin/users/:id (admin only)")
	log.Println("- GET /api/v1/locations (protected)")
	log.Println("- GET /api/v1/locations/:id (protected)")
	log.Println("- POST /api/v1/admin/locations (admin only)")
	log.Println("- PUT /api/v1/admin/locations/:id (admin only)")
	log.Println("- DELETE /api/v1/admin/locations/:id (admin only)")
	log.Println("- GET /api/v1/shifts/templates (protected)")
	log.Println("- GET /api/v1/shifts/effective (protected)")
	log.Println("- GET /api/v1/shifts/holidays (protected)")
	log.Println("- POST /api/v1/admin/shifts/templates (admin only)")
	log.Println("- PUT /api/v1/admin/shifts/templates/:id/terminate (admin only)")
	log.Println("- POST /api/v1/admin/shifts/one-off (admin only)")
	log.Println("- PUT /api/v1/admin/shifts/occurrence (admin only)")
	log.Println("- DELETE /api/v1/admin/shifts/occurrence (admin only)")
	log.Println("- POST /api/v1/attendance/clock-in (protected)")
	log.Println("- POST /api/v1/attendance/clock-out (protected)")
	log.Println("- POST /api/v1/attendance/scan (protected)")
	log.Println("- GET /api/v1/attendance/my-history (protected)")
	log.Println("- GET /api/v1/admin/attendance/today (admin only)")
	log.Println("- POST /api/v1/admin/attendance/qr-code (admin only)")
	log.Println("- POST /api/v1/admin/attendance/auto-close (admin only)")
	log.Println("- GET /api/v1/admin/payroll/settings (admin only)")
	log.Println("- PUT /api/v1/admin/payroll/settings (admin only)")
	log.Println("- GET /api/v1/admin/payroll/summary (admin only)")
	log.Println("- GET /api/v1/admin/payroll/export (admin only)")
	log.Println("Swagger documentation tersedia di: /docs/index.html")

	return attendanceHandler
}
