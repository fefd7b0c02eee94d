package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Sistem-Absensi-Shift/config"
	"Sistem-Absensi-Shift/models"
)

type AttendanceRepository interface {
	// --- Sesi absensi ---
	CreateAttendance(ctx context.Context, attendance *models.Attendance) (*mongo.InsertOneResult, error)
	FindOpenSessionByUserAndDate(ctx context.Context, userID primitive.ObjectID, date string) (*models.Attendance, error)
	FindOpenSessions(ctx context.Context) ([]models.Attendance, error)
	CloseSessionIfOpen(ctx context.Context, attendanceID primitive.ObjectID, clockOut time.Time, reason string) (bool, error)
	FindAttendanceByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Attendance, error)
	FindAttendanceInWindow(ctx context.Context, startDate, endDate string) ([]models.Attendance, error)
	GetTodayAttendanceWithUserDetails(ctx context.Context, date string) ([]models.AttendanceWithUser, error)

	// --- QR kios ---
	CreateQRCode(ctx context.Context, qrCode *models.QRCode) (*mongo.InsertOneResult, error)
	FindQRCodeByValue(ctx context.Context, code string) (*models.QRCode, error)
	MarkQRCodeAsUsed(ctx context.Context, qrCodeID primitive.ObjectID, userID primitive.ObjectID) (*mongo.UpdateResult, error)
}

type attendanceRepository struct {
	attendanceCollection *mongo.Collection
	qrCodeCollection     *mongo.Collection
}

func NewAttendanceRepository() AttendanceRepository {
	return &attendanceRepository{
		attendanceCollection: config.GetCollection(config.AttendanceCollection),
		qrCodeCollection:     config.GetCollection(config.QRCodeCollection),
	}
}

func (r *attendanceRepository) CreateAttendance(ctx context.Context, attendance *models.Attendance) (*mongo.InsertOneResult, error) {
	attendance.ID = primitive.NewObjectID()
	attendance.CreatedAt = time.Now()
	attendance.UpdatedAt = time.Now()

	res, err := r.attendanceCollection.InsertOne(ctx, attendance)
	if err != nil {
		return nil, fmt.Errorf("gagal menyimpan sesi absensi: %w", err)
	}
	return res, nil
}

func (r *attendanceRepository) FindOpenSessionByUserAndDate(ctx context.Context, userID primitive.ObjectID, date string) (*models.Attendance, error) {
	var attendance models.Attendance
	filter := bson.M{
		"user_id":   userID,
		"date":      date,
		"clock_out": bson.M{"$exists": false},
	}
	err := r.attendanceCollection.FindOne(ctx, filter).Decode(&attendance)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal mencari sesi terbuka: %w", err)
	}
	return &attendance, nil
}

func (r *attendanceRepository) FindOpenSessions(ctx context.Context) ([]models.Attendance, error) {
	filter := bson.M{"clock_out": bson.M{"$exists": false}}
	cursor, err := r.attendanceCollection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil sesi terbuka: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Attendance
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("gagal mendecode sesi terbuka: %w", err)
	}
	return sessions, nil
}

// CloseSessionIfOpen menutup sesi HANYA jika masih terbuka: filter update
// menyertakan "clock_out tidak ada", jadi auto-close yang balapan dengan
// clock-out manual tidak akan menimpanya. Mengembalikan false kalau sesi
// sudah keburu ditutup pihak lain (bukan error).
func (r *attendanceRepository) CloseSessionIfOpen(ctx context.Context, attendanceID primitive.ObjectID, clockOut time.Time, reason string) (bool, error) {
	filter := bson.M{
		"_id":       attendanceID,
		"clock_out": bson.M{"$exists": false},
	}
	update := bson.M{"$set": bson.M{
		"clock_out":    clockOut,
		"close_reason": reason,
		"updated_at":   time.Now(),
	}}

	res, err := r.attendanceCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("gagal menutup sesi absensi: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

func (r *attendanceRepository) FindAttendanceByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Attendance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "clock_in", Value: -1}})
	cursor, err := r.attendanceCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil riwayat absensi: %w", err)
	}
	defer cursor.Close(ctx)

	var history []models.Attendance
	if err = cursor.All(ctx, &history); err != nil {
		return nil, fmt.Errorf("gagal mendecode riwayat absensi: %w", err)
	}
	return history, nil
}

func (r *attendanceRepository) FindAttendanceInWindow(ctx context.Context, startDate, endDate string) ([]models.Attendance, error) {
	filter := bson.M{"date": bson.M{"$gte": startDate, "$lte": endDate}}
	cursor, err := r.attendanceCollection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil absensi dalam rentang: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Attendance
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("gagal mendecode absensi: %w", err)
	}
	return sessions, nil
}

func (r *attendanceRepository) GetTodayAttendanceWithUserDetails(ctx context.Context, date string) ([]models.AttendanceWithUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"date": date}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         config.UserCollection,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$project", Value: bson.M{
			"user_id":       1,
			"location_id":   1,
			"date":          1,
			"clock_in":      1,
			"clock_out":     1,
			"close_reason":  1,
			"user_name":     "$user.name",
			"user_email":    "$user.email",
			"user_position": "$user.position",
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "clock_in", Value: -1}}}},
	}

	cursor, err := r.attendanceCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil absensi hari ini: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.AttendanceWithUser
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("gagal mendecode absensi hari ini: %w", err)
	}
	return results, nil
}

func (r *attendanceRepository) CreateQRCode(ctx context.Context, qrCode *models.QRCode) (*mongo.InsertOneResult, error) {
	res, err := r.qrCodeCollection.InsertOne(ctx, qrCode)
	if err != nil {
		return nil, fmt.Errorf("gagal membuat QR Code: %w", err)
	}
	return res, nil
}

func (r *attendanceRepository) FindQRCodeByValue(ctx context.Context, value string) (*models.QRCode, error) {
	var qrCode models.QRCode
	err := r.qrCodeCollection.FindOne(ctx, bson.M{"code": value}).Decode(&qrCode)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal mencari QR Code: %w", err)
	}
	return &qrCode, nil
}

func (r *attendanceRepository) MarkQRCodeAsUsed(ctx context.Context, qrCodeID primitive.ObjectID, userID primitive.ObjectID) (*mongo.UpdateResult, error) {
	update := bson.M{"$addToSet": bson.M{"used_by": userID}}
	res, err := r.qrCodeCollection.UpdateByID(ctx, qrCodeID, update)
	if err != nil {
		return nil, fmt.Errorf("gagal menandai QR Code terpakai: %w", err)
	}
	return res, nil
}
