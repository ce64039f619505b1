package orderRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tidywave/database"
	"tidywave/models"
)

// MongoOrderRepo implements OrderRepository using MongoDB. Order items are
// embedded in the order document as pricing snapshots.
type MongoOrderRepo struct {
	coll *mongo.Collection
}

// NewMongoOrderRepo creates a new OrderRepository backed by MongoDB.
func NewMongoOrderRepo() OrderRepository {
	coll := database.Collection("orders")
	repo := &MongoOrderRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoOrderRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "scheduled_date", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// CreateIfAvailable re-checks availability against same-date orders and
// inserts the order inside a single Mongo session transaction. The check
// callback receives every order on the candidate date; deciding which of
// them block is the caller's concern.
func (r *MongoOrderRepo) CreateIfAvailable(ctx context.Context, order *models.Order, available func(existing []models.Order) bool) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	txnFn := func(sc mongo.SessionContext) error {
		existing, err := r.listByDate(sc, order.ScheduledDate)
		if err != nil {
			return err
		}
		if !available(existing) {
			return ErrSlotTaken
		}
		if _, err := r.coll.InsertOne(sc, order); err != nil {
			return fmt.Errorf("insert order failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrSlotTaken {
			return ErrSlotTaken
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}

// GetByID retrieves an order by its unique ID.
func (r *MongoOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch order %s: %w", id, err)
	}
	return &order, nil
}

// List retrieves orders matching the filter, newest scheduled date first.
func (r *MongoOrderRepo) List(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	dateRange := bson.M{}
	if filter.DateFrom != "" {
		dateRange["$gte"] = filter.DateFrom
	}
	if filter.DateTo != "" {
		dateRange["$lte"] = filter.DateTo
	}
	if len(dateRange) > 0 {
		query["scheduled_date"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "scheduled_date", Value: -1}})
	return r.find(ctx, query, opts)
}

// ListByDate retrieves all orders scheduled on the given date.
func (r *MongoOrderRepo) ListByDate(ctx context.Context, date string) ([]models.Order, error) {
	return r.listByDate(ctx, date)
}

func (r *MongoOrderRepo) listByDate(ctx context.Context, date string) ([]models.Order, error) {
	return r.find(ctx, bson.M{"scheduled_date": date}, options.Find())
}

// ListByClient retrieves a client's orders.
func (r *MongoOrderRepo) ListByClient(ctx context.Context, clientID string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_date", Value: -1}})
	return r.find(ctx, bson.M{"client_id": clientID}, opts)
}

func (r *MongoOrderRepo) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]models.Order, error) {
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	for cursor.Next(ctx) {
		var o models.Order
		if err := cursor.Decode(&o); err != nil {
			return nil, fmt.Errorf("failed to decode order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// UpdateStatus sets a new status (and optionally notes) on an order. The
// transition itself must already have been validated.
func (r *MongoOrderRepo) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, notes string) error {
	set := bson.M{"status": status, "updated_at": time.Now()}
	if notes != "" {
		set["notes"] = notes
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update order %s status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AssignCleaner sets the cleaner reference on an order.
func (r *MongoOrderRepo) AssignCleaner(ctx context.Context, id string, cleanerID string) error {
	set := bson.M{"cleaner_id": cleanerID, "updated_at": time.Now()}

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to assign cleaner on order %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
