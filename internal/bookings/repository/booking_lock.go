package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "tempo/internal/bookings/errors"
	"tempo/pkg/config"
	"tempo/pkg/model"
)

const (
	LockCollectionName = "Booking_locks"
)

// BookingLockRepository provides per-workspace advisory locks. The lock
// is an _id-keyed document insert: the unique index on _id makes exactly
// one concurrent admission win, and the TTL index on expires_at reclaims
// locks leaked by a crashed process.
type BookingLockRepository interface {
	Acquire(ctx context.Context, workspaceID int64, ttl time.Duration) (string, error)
	Release(ctx context.Context, lockID string) error
}

type mongoBookingLockRepository struct {
	collection *mongo.Collection
}

func NewMongoBookingLockRepository(cfg *config.Config) BookingLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingLockRepository{
		collection: db.Collection(LockCollectionName),
	}
}

func LockID(workspaceID int64) string {
	return fmt.Sprintf("workspace:%d", workspaceID)
}

// Acquire inserts the lock document. A duplicate key error means another
// admission holds the lock; that is reported as ErrLockHeld so the
// service can retry.
func (r *mongoBookingLockRepository) Acquire(ctx context.Context, workspaceID int64, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	lock := &model.BookingLock{
		ID:        LockID(workspaceID),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", bookingserrors.ErrLockHeld
		}
		return "", fmt.Errorf("failed to acquire admission lock: %w", err)
	}

	return lock.ID, nil
}

func (r *mongoBookingLockRepository) Release(ctx context.Context, lockID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	return err
}
