package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mwalczyk/taskboard/internal/models"
)

// TaskStore handles task CRUD in MongoDB. Every operation is scoped by the
// owner passed in; updates and deletes are single atomic find-and-mutate
// calls against {_id, owner}, so concurrent writers are linearized by the
// store itself.
type TaskStore struct {
	col *mongo.Collection
}

func NewTaskStore(db *mongo.Database) *TaskStore {
	return &TaskStore{col: db.Collection("tasks")}
}

// ListByOwner returns all tasks owned by owner, sorted by (order ascending,
// createdAt descending).
func (s *TaskStore) ListByOwner(ctx context.Context, owner string) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "order", Value: 1},
		{Key: "created_at", Value: -1},
	})
	cur, err := s.col.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	defer cur.Close(ctx)

	tasks := []models.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Insert stores a new task, assigning both server timestamps.
func (s *TaskStore) Insert(ctx context.Context, t *models.Task) (*models.Task, error) {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	res, err := s.col.InsertOne(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	t.ID = res.InsertedID.(primitive.ObjectID)
	return t, nil
}

// Update applies patch to the task matching (id, owner) and returns the
// updated document. A malformed, unknown or foreign id is ErrNotFound
// either way.
func (s *TaskStore) Update(ctx context.Context, id, owner string, patch models.TaskPatch) (*models.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.DueDate != nil {
		set["due_date"] = *patch.DueDate
	}
	if patch.Order != nil {
		set["order"] = *patch.Order
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Task
	err = s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "owner": owner},
		bson.M{"$set": set},
		opts,
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &updated, nil
}

// Delete removes the task matching (id, owner).
func (s *TaskStore) Delete(ctx context.Context, id, owner string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid, "owner": owner})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
