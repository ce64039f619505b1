package cleanerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tidywave/database"
	"tidywave/models"
)

// ErrNotFound is returned when a cleaner does not exist.
var ErrNotFound = errors.New("cleaner not found")

// CleanerRepository abstracts persistence of cleaning staff records.
type CleanerRepository interface {
	Create(ctx context.Context, cleaner *models.Cleaner) error
	Update(ctx context.Context, cleaner *models.Cleaner) error
	GetByID(ctx context.Context, id string) (*models.Cleaner, error)
	GetAll(ctx context.Context) ([]models.Cleaner, error)
}

// MongoCleanerRepo implements CleanerRepository using MongoDB.
type MongoCleanerRepo struct {
	coll *mongo.Collection
}

// NewMongoCleanerRepo creates a new CleanerRepository backed by MongoDB.
func NewMongoCleanerRepo() CleanerRepository {
	coll := database.Collection("cleaners")
	repo := &MongoCleanerRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoCleanerRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new cleaner document.
func (r *MongoCleanerRepo) Create(ctx context.Context, cleaner *models.Cleaner) error {
	now := time.Now()
	cleaner.CreatedAt = now
	cleaner.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, cleaner); err != nil {
		return fmt.Errorf("failed to create cleaner: %w", err)
	}
	return nil
}

// Update replaces an existing cleaner document.
func (r *MongoCleanerRepo) Update(ctx context.Context, cleaner *models.Cleaner) error {
	cleaner.UpdatedAt = time.Now()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": cleaner.ID}, bson.M{"$set": cleaner})
	if err != nil {
		return fmt.Errorf("failed to update cleaner %s: %w", cleaner.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a cleaner by its unique ID.
func (r *MongoCleanerRepo) GetByID(ctx context.Context, id string) (*models.Cleaner, error) {
	var cleaner models.Cleaner
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&cleaner); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch cleaner %s: %w", id, err)
	}
	return &cleaner, nil
}

// GetAll retrieves all cleaners.
func (r *MongoCleanerRepo) GetAll(ctx context.Context) ([]models.Cleaner, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cleaners: %w", err)
	}
	defer cursor.Close(ctx)

	var cleaners []models.Cleaner
	for cursor.Next(ctx) {
		var c models.Cleaner
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode cleaner: %w", err)
		}
		cleaners = append(cleaners, c)
	}
	return cleaners, nil
}
