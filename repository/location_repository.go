package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Sistem-Absensi-Shift/config"
	"Sistem-Absensi-Shift/models"
)

type LocationRepository interface {
	CreateLocation(ctx context.Context, location *models.Location) (*mongo.InsertOneResult, error)
	GetAllLocations(ctx context.Context) ([]models.Location, error)
	GetLocationByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error)
	UpdateLocation(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error)
	DeleteLocation(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
	FindLocationByName(ctx context.Context, name string) (*models.Location, error)
}

type locationRepository struct {
	collection *mongo.Collection
}

func NewLocationRepository() LocationRepository {
	return &locationRepository{
		collection: config.GetCollection(config.LocationCollection),
	}
}

func (r *locationRepository) CreateLocation(ctx context.Context, location *models.Location) (*mongo.InsertOneResult, error) {
	location.ID = primitive.NewObjectID()
	location.CreatedAt = time.Now()
	location.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, location)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("nama lokasi sudah ada")
		}
		return nil, fmt.Errorf("gagal membuat lokasi: %w", err)
	}
	return result, nil
}

func (r *locationRepository) GetAllLocations(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("gagal menemukan lokasi: %w", err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &locations); err != nil {
		return nil, fmt.Errorf("gagal mendecode lokasi: %w", err)
	}
	return locations, nil
}

func (r *locationRepository) GetLocationByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	var location models.Location
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&location)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("lokasi tidak ditemukan")
		}
		return nil, fmt.Errorf("gagal menemukan lokasi berdasarkan ID: %w", err)
	}
	return &location, nil
}

func (r *locationRepository) UpdateLocation(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error) {
	updateData["updated_at"] = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updateData})
	if err != nil {
		return nil, fmt.Errorf("gagal mengupdate lokasi: %w", err)
	}
	return result, nil
}

func (r *locationRepository) DeleteLocation(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("gagal menghapus lokasi: %w", err)
	}
	return result, nil
}

func (r *locationRepository) FindLocationByName(ctx context.Context, name string) (*models.Location, error) {
	var location models.Location
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&location)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal menemukan lokasi berdasarkan nama: %w", err)
	}
	return &location, nil
}
