package models

// Success Response Models

// RegisterSuccessResponse represents successful registration response
type RegisterSuccessResponse struct {
	Message string `json:"message" example:"User berhasil didaftarkan (oleh admin)"`
	UserID  string `json:"user_id" example:"507f1f77bcf86cd799439011"`
}

// LoginSuccessResponse represents successful login response
type LoginSuccessResponse struct {
	Message      string `json:"message" example:"Login berhasil"`
	Token        string `json:"token" example:"v2.local.Ft9QcxZhJXEYyb7-bMM..."`
	UserID       string `json:"user_id" example:"507f1f77bcf86cd799439011"`
	Role         string `json:"role" example:"karyawan"`
	IsFirstLogin bool   `json:"is_first_login" example:"true"`
}

// ClockInSuccessResponse represents successful clock-in response
type ClockInSuccessResponse struct {
	Message      string `json:"message" example:"Berhasil clock-in pukul 08:02"`
	AttendanceID string `json:"attendance_id" example:"507f1f77bcf86cd799439011"`
}

// ClockInFailureResponse represents a typed clock-in rejection
type ClockInFailureResponse struct {
	Error   string `json:"error" example:"Anda berada di luar area lokasi kerja"`
	Failure string `json:"failure" example:"outside_geofence"`
}

// EffectiveShiftsResponse represents the resolved schedule for a window
type EffectiveShiftsResponse struct {
	Data  []EffectiveShiftView `json:"data"`
	Total int                  `json:"total" example:"14"`
}

// Error Response Models

// ErrorResponse represents basic error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Details string `json:"details,omitempty" example:"validation failed"`
}

// UnauthorizedErrorResponse represents unauthorized error response
type UnauthorizedErrorResponse struct {
	Error string `json:"error" example:"Token tidak valid atau tidak ada"`
}

// ForbiddenErrorResponse represents forbidden error response
type ForbiddenErrorResponse struct {
	Error string `json:"error" example:"Akses ditolak. Hanya admin yang dapat mengakses endpoint ini"`
}

// NotFoundErrorResponse represents not found error response
type NotFoundErrorResponse struct {
	Error string `json:"error" example:"Data tidak ditemukan"`
}
