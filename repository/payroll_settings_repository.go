package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Sistem-Absensi-Shift/config"
	"Sistem-Absensi-Shift/models"
)

type PayrollSettingsRepository interface {
	Get(ctx context.Context) (*models.PayrollSettings, error)
	Upsert(ctx context.Context, interval, buffer int) error
}

type payrollSettingsRepository struct {
	collection *mongo.Collection
}

func NewPayrollSettingsRepository() PayrollSettingsRepository {
	return &payrollSettingsRepository{
		collection: config.GetCollection(config.PayrollSettingsCollection),
	}
}

// Get mengambil pengaturan pembulatan organisasi. Belum pernah disetel
// berarti mode waktu eksak (interval 0).
func (r *payrollSettingsRepository) Get(ctx context.Context) (*models.PayrollSettings, error) {
	var settings models.PayrollSettings
	err := r.collection.FindOne(ctx, bson.M{}).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.PayrollSettings{}, nil
		}
		return nil, fmt.Errorf("gagal mengambil pengaturan payroll: %w", err)
	}
	return &settings, nil
}

func (r *payrollSettingsRepository) Upsert(ctx context.Context, interval, buffer int) error {
	update := bson.M{"$set": bson.M{
		"rounding_interval": interval,
		"rounding_buffer":   buffer,
		"updated_at":        time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("gagal menyimpan pengaturan payroll: %w", err)
	}
	return nil
}
