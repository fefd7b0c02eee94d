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
	"Sistem-Absensi-Shift/pkg/schedule"
)

type ShiftRepository interface {
	// --- Template (aturan shift berulang) ---
	CreateTemplate(ctx context.Context, tpl *models.ShiftTemplate) (*mongo.InsertOneResult, error)
	FindTemplateByID(ctx context.Context, id primitive.ObjectID) (*models.ShiftTemplate, error)
	FindTemplateBySeriesID(ctx context.Context, seriesID string) (*models.ShiftTemplate, error)
	FindAllTemplates(ctx context.Context, filter bson.M) ([]models.ShiftTemplate, error)
	TerminateTemplate(ctx context.Context, id primitive.ObjectID, effectiveUntil string) error

	// --- Instance (override dan shift satuan) ---
	CreateInstance(ctx context.Context, inst *models.ShiftInstance) (*mongo.InsertOneResult, error)
	FindInstancesInWindow(ctx context.Context, startDate, endDate string, userID *primitive.ObjectID) ([]models.ShiftInstance, error)
	FindInstancesBySeries(ctx context.Context, seriesID string) ([]models.ShiftInstance, error)
	ExecutePlan(ctx context.Context, plan schedule.MutationPlan) error
}

type shiftRepository struct {
	templateCollection *mongo.Collection
	instanceCollection *mongo.Collection
}

func NewShiftRepository() ShiftRepository {
	return &shiftRepository{
		templateCollection: config.GetCollection(config.ShiftTemplateCollection),
		instanceCollection: config.GetCollection(config.ShiftInstanceCollection),
	}
}

func (r *shiftRepository) CreateTemplate(ctx context.Context, tpl *models.ShiftTemplate) (*mongo.InsertOneResult, error) {
	tpl.ID = primitive.NewObjectID()
	tpl.CreatedAt = time.Now()
	tpl.UpdatedAt = time.Now()

	res, err := r.templateCollection.InsertOne(ctx, tpl)
	if err != nil {
		return nil, fmt.Errorf("gagal menyimpan template shift: %w", err)
	}
	return res, nil
}

func (r *shiftRepository) FindTemplateByID(ctx context.Context, id primitive.ObjectID) (*models.ShiftTemplate, error) {
	var tpl models.ShiftTemplate
	err := r.templateCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&tpl)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal menemukan template shift: %w", err)
	}
	return &tpl, nil
}

func (r *shiftRepository) FindTemplateBySeriesID(ctx context.Context, seriesID string) (*models.ShiftTemplate, error) {
	var tpl models.ShiftTemplate
	err := r.templateCollection.FindOne(ctx, bson.M{"series_id": seriesID}).Decode(&tpl)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal menemukan template berdasarkan series: %w", err)
	}
	return &tpl, nil
}

func (r *shiftRepository) FindAllTemplates(ctx context.Context, filter bson.M) ([]models.ShiftTemplate, error) {
	cursor, err := r.templateCollection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil template shift: %w", err)
	}
	defer cursor.Close(ctx)

	var templates []models.ShiftTemplate
	if err = cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("gagal mendecode template shift: %w", err)
	}
	return templates, nil
}

// TerminateTemplate mengakhiri masa berlaku template. Template tidak pernah
// dihapus fisik selama masih dirujuk occurrence.
func (r *shiftRepository) TerminateTemplate(ctx context.Context, id primitive.ObjectID, effectiveUntil string) error {
	update := bson.M{"$set": bson.M{
		"effective_until": effectiveUntil,
		"updated_at":      time.Now(),
	}}
	res, err := r.templateCollection.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("gagal mengakhiri template shift: %w", err)
	}
	if res.MatchedCount == 0 {
		return errors.New("template shift tidak ditemukan")
	}
	return nil
}

func (r *shiftRepository) CreateInstance(ctx context.Context, inst *models.ShiftInstance) (*mongo.InsertOneResult, error) {
	inst.ID = primitive.NewObjectID()
	inst.CreatedAt = time.Now()
	inst.UpdatedAt = time.Now()

	res, err := r.instanceCollection.InsertOne(ctx, inst)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("sudah ada override untuk series dan tanggal tersebut")
		}
		return nil, fmt.Errorf("gagal menyimpan instance shift: %w", err)
	}
	return res, nil
}

func (r *shiftRepository) FindInstancesInWindow(ctx context.Context, startDate, endDate string, userID *primitive.ObjectID) ([]models.ShiftInstance, error) {
	filter := bson.M{
		"date": bson.M{"$gte": startDate, "$lte": endDate},
	}
	if userID != nil {
		filter["user_id"] = *userID
	}

	cursor, err := r.instanceCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil instance shift: %w", err)
	}
	defer cursor.Close(ctx)

	var instances []models.ShiftInstance
	if err = cursor.All(ctx, &instances); err != nil {
		return nil, fmt.Errorf("gagal mendecode instance shift: %w", err)
	}
	return instances, nil
}

func (r *shiftRepository) FindInstancesBySeries(ctx context.Context, seriesID string) ([]models.ShiftInstance, error) {
	cursor, err := r.instanceCollection.Find(ctx, bson.M{"series_id": seriesID}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil instance series: %w", err)
	}
	defer cursor.Close(ctx)

	var instances []models.ShiftInstance
	if err = cursor.All(ctx, &instances); err != nil {
		return nil, fmt.Errorf("gagal mendecode instance series: %w", err)
	}
	return instances, nil
}

// ExecutePlan mengeksekusi MutationPlan hasil propagasi cakupan sebagai SATU
// BulkWrite ordered. Kegagalan di tengah batch diperlakukan sebagai
// kegagalan seluruh batch dan dipropagasi sebagai error retryable; tidak ada
// commit parsial yang bisa diterima di tengah series.
func (r *shiftRepository) ExecutePlan(ctx context.Context, plan schedule.MutationPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	now := time.Now()
	var writes []mongo.WriteModel

	for _, inst := range plan.Inserts {
		inst.ID = primitive.NewObjectID()
		inst.CreatedAt = now
		inst.UpdatedAt = now
		writes = append(writes, mongo.NewInsertOneModel().SetDocument(inst))
	}
	for _, upd := range plan.Updates {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": upd.ID}).
			SetUpdate(bson.M{"$set": bson.M{
				"starts_at":  upd.StartsAt,
				"ends_at":    upd.EndsAt,
				"updated_at": now,
			}}))
	}
	for _, id := range plan.DeleteIDs {
		writes = append(writes, mongo.NewDeleteOneModel().SetFilter(bson.M{"_id": id}))
	}

	_, err := r.instanceCollection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("sudah ada override untuk series dan tanggal tersebut")
		}
		return fmt.Errorf("gagal mengeksekusi batch mutasi series: %w", err)
	}
	return nil
}
