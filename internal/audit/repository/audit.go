package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tempo/pkg/config"
	"tempo/pkg/model"
)

const (
	CollectionName = "Audit_logs"
)

type AuditRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	FindRecent(ctx context.Context, limit int) ([]*model.AuditLog, error)
	FindByEntity(ctx context.Context, entityType, entityID string) ([]*model.AuditLog, error)
}

type mongoAuditRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAuditRepository(cfg *config.Config) AuditRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAuditRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoAuditRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	entry.ID = ""
	entry.Timestamp = time.Now().UTC().Truncate(time.Millisecond)

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid.Hex()
	}
	return nil
}

func (r *mongoAuditRepository) FindRecent(ctx context.Context, limit int) ([]*model.AuditLog, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find audit logs: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*model.AuditLog
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode audit logs: %w", err)
	}

	return entries, nil
}

func (r *mongoAuditRepository) FindByEntity(ctx context.Context, entityType, entityID string) ([]*model.AuditLog, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"entity_type": entityType,
		"entity_id":   entityID,
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find audit logs by entity: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*model.AuditLog
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode audit logs: %w", err)
	}

	return entries, nil
}
