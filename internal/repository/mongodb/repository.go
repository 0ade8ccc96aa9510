package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/mamadbah2/ranch/internal/domain/models"
)

// ErrNotFound is returned when no analysis matches the requested id.
var ErrNotFound = errors.New("analysis not found")

const defaultCollection = "analyses"

// Repository defines the storage operations for computed analyses.
type Repository interface {
	Save(ctx context.Context, record models.AnalysisRecord) error
	FindByID(ctx context.Context, id string) (*models.AnalysisRecord, error)
	ListByFarm(ctx context.Context, farmID string, limit int64) ([]models.AnalysisRecord, error)
	ListSince(ctx context.Context, since time.Time) ([]models.AnalysisRecord, error)
}

// connection is the client lifecycle the repository owns.
type connection interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
	Disconnect(ctx context.Context) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client     connection
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewMongoDBRepository connects to MongoDB and makes sure the analysis
// indexes exist.
func NewMongoDBRepository(ctx context.Context, uri, dbName, collName string, logger *zap.Logger) (*MongoDBRepository, error) {
	if collName == "" {
		collName = defaultCollection
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	return open(ctx, client, client.Database(dbName).Collection(collName), logger)
}

// open checks the connection and prepares the collection. The client is
// disconnected when either step fails.
func open(ctx context.Context, client connection, collection *mongo.Collection, logger *zap.Logger) (*MongoDBRepository, error) {
	if err := client.Ping(ctx, nil); err != nil {
		return nil, disconnectOnError(ctx, client, fmt.Errorf("failed to ping mongodb: %w", err))
	}

	repo := newRepository(client, collection, logger)
	if err := repo.ensureIndexes(ctx); err != nil {
		return nil, disconnectOnError(ctx, client, err)
	}

	return repo, nil
}

func disconnectOnError(ctx context.Context, client connection, err error) error {
	if dErr := client.Disconnect(ctx); dErr != nil {
		return errors.Join(err, fmt.Errorf("failed to disconnect mongodb: %w", dErr))
	}
	return err
}

func newRepository(client connection, collection *mongo.Collection, logger *zap.Logger) *MongoDBRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MongoDBRepository{client: client, collection: collection, logger: logger}
}

func (r *MongoDBRepository) ensureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "farm_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create analysis indexes: %w", err)
	}
	return nil
}

// Save inserts a computed analysis.
func (r *MongoDBRepository) Save(ctx context.Context, record models.AnalysisRecord) error {
	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert analysis %s: %w", record.ID, err)
	}
	r.logger.Debug("analysis stored", zap.String("id", record.ID), zap.String("farm_id", record.FarmID))
	return nil
}

// FindByID loads a single analysis or returns ErrNotFound.
func (r *MongoDBRepository) FindByID(ctx context.Context, id string) (*models.AnalysisRecord, error) {
	var record models.AnalysisRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis %s: %w", id, err)
	}
	return &record, nil
}

// ListByFarm returns a farm's analyses, newest first. A limit of zero or
// less returns every analysis.
func (r *MongoDBRepository) ListByFarm(ctx context.Context, farmID string, limit int64) ([]models.AnalysisRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(ctx, bson.M{"farm_id": farmID}, opts)
}

// ListSince returns every analysis created at or after since, oldest first.
func (r *MongoDBRepository) ListSince(ctx context.Context, since time.Time) ([]models.AnalysisRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return r.find(ctx, bson.M{"created_at": bson.M{"$gte": since}}, opts)
}

func (r *MongoDBRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.AnalysisRecord, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.AnalysisRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode analyses: %w", err)
	}
	return records, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
