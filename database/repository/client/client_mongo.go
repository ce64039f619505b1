package clientRepo

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

// ErrNotFound is returned when a client does not exist.
var ErrNotFound = errors.New("client not found")

// ClientRepository abstracts persistence of customer accounts.
type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	Update(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id string) (*models.Client, error)
	GetByEmail(ctx context.Context, email string) (*models.Client, error)
	GetByVerificationToken(ctx context.Context, token string) (*models.Client, error)
}

// MongoClientRepo implements ClientRepository using MongoDB.
type MongoClientRepo struct {
	coll *mongo.Collection
}

// NewMongoClientRepo creates a new ClientRepository backed by MongoDB.
func NewMongoClientRepo() ClientRepository {
	coll := database.Collection("clients")
	repo := &MongoClientRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoClientRepo) ensureIndexes() error {
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

// Create inserts a new client document.
func (r *MongoClientRepo) Create(ctx context.Context, client *models.Client) error {
	now := time.Now()
	client.CreatedAt = now
	client.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, client); err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// Update replaces an existing client document.
func (r *MongoClientRepo) Update(ctx context.Context, client *models.Client) error {
	client.UpdatedAt = time.Now()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": client.ID}, bson.M{"$set": client})
	if err != nil {
		return fmt.Errorf("failed to update client %s: %w", client.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a client by its unique ID.
func (r *MongoClientRepo) GetByID(ctx context.Context, id string) (*models.Client, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

// GetByEmail retrieves a client by email. Returns (nil, nil) when no client
// has the address, so callers can distinguish "absent" from a lookup failure.
func (r *MongoClientRepo) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	var client models.Client
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&client); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch client with email %s: %w", email, err)
	}
	return &client, nil
}

// GetByVerificationToken retrieves a client by a live verification or reset
// token.
func (r *MongoClientRepo) GetByVerificationToken(ctx context.Context, token string) (*models.Client, error) {
	return r.findOne(ctx, bson.M{
		"verification_token":   token,
		"verification_expires": bson.M{"$gt": time.Now()},
	})
}

func (r *MongoClientRepo) findOne(ctx context.Context, filter bson.M) (*models.Client, error) {
	var client models.Client
	if err := r.coll.FindOne(ctx, filter).Decode(&client); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch client: %w", err)
	}
	return &client, nil
}
