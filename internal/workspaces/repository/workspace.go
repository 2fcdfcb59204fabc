package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	workspaceserrors "tempo/internal/workspaces/errors"
	"tempo/pkg/config"
	mongotx "tempo/pkg/db/mongo"
	"tempo/pkg/model"
)

const (
	CollectionName        = "Workspaces"
	CounterCollectionName = "Counters"

	workspaceCounterID = "workspace_id"
)

type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *model.Workspace) error
	FindByID(ctx context.Context, id int64) (*model.Workspace, error)
	FindAll(ctx context.Context) ([]*model.Workspace, error)
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*model.Workspace, error)
	Delete(ctx context.Context, id int64) (*model.Workspace, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoWorkspaceRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	counters   *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoWorkspaceRepository(cfg *config.Config) WorkspaceRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoWorkspaceRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		counters:   db.Collection(CounterCollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout unless it already runs
// inside a transaction, where wrapping a SessionContext would break
// transaction semantics.
func (r *mongoWorkspaceRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

// nextID allocates the next sequential workspace id from the counters
// collection. Gaps after failed inserts are acceptable.
func (r *mongoWorkspaceRepository) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": workspaceCounterID},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate workspace id: %w", err)
	}

	return counter.Seq, nil
}

func (r *mongoWorkspaceRepository) Create(ctx context.Context, workspace *model.Workspace) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}

	workspace.ID = id
	workspace.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.collection.InsertOne(ctx, workspace); err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}
	return nil
}

func (r *mongoWorkspaceRepository) FindByID(ctx context.Context, id int64) (*model.Workspace, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var workspace model.Workspace
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workspace)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, workspaceserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	return &workspace, nil
}

func (r *mongoWorkspaceRepository) FindAll(ctx context.Context) ([]*model.Workspace, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find workspaces: %w", err)
	}
	defer cursor.Close(ctx)

	var workspaces []*model.Workspace
	if err = cursor.All(ctx, &workspaces); err != nil {
		return nil, fmt.Errorf("failed to decode workspaces: %w", err)
	}

	return workspaces, nil
}

// FindByIDs fetches the given workspaces in one query, keyed by id.
// Missing ids are simply absent from the result.
func (r *mongoWorkspaceRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*model.Workspace, error) {
	if len(ids) == 0 {
		return map[int64]*model.Workspace{}, nil
	}

	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find workspaces by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var workspaces []*model.Workspace
	if err = cursor.All(ctx, &workspaces); err != nil {
		return nil, fmt.Errorf("failed to decode workspaces: %w", err)
	}

	byID := make(map[int64]*model.Workspace, len(workspaces))
	for _, ws := range workspaces {
		byID[ws.ID] = ws
	}
	return byID, nil
}

func (r *mongoWorkspaceRepository) Delete(ctx context.Context, id int64) (*model.Workspace, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	var deleted model.Workspace
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, workspaceserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete workspace: %w", err)
	}

	return &deleted, nil
}

func (r *mongoWorkspaceRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
