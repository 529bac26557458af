package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status labels a task's board column. Any status is reachable from any
// other in a single transition; it is a label, not a workflow gate.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Task is a single card stored in MongoDB. Every task belongs to exactly one
// owner; all reads and writes are filtered by that owner.
type Task struct {
	ID          primitive.ObjectID `json:"id"                    bson:"_id,omitempty"`
	Owner       string             `json:"-"                     bson:"owner"`
	Title       string             `json:"title"                 bson:"title"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Status      Status             `json:"status"                bson:"status"`
	DueDate     time.Time          `json:"dueDate"               bson:"due_date"`
	Order       float64            `json:"order"                 bson:"order"`
	CreatedAt   time.Time          `json:"createdAt"             bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt"             bson:"updated_at"`
}

// CreateTaskRequest is the JSON body for POST /api/tasks. The owner is never
// part of the payload; it always comes from the verified identity.
type CreateTaskRequest struct {
	Title       string `json:"title"                 validate:"required,max=200"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	DueDate     string `json:"dueDate"               validate:"required"`
	Status      Status `json:"status,omitempty"      validate:"omitempty,oneof=todo in-progress done"`
}

// UpdateTaskRequest is the JSON body for PUT /api/tasks/{id}. All fields are
// optional; only the ones present are applied.
type UpdateTaskRequest struct {
	Title       *string  `json:"title,omitempty"       validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Status      *Status  `json:"status,omitempty"      validate:"omitempty,oneof=todo in-progress done"`
	DueDate     *string  `json:"dueDate,omitempty"`
	Order       *float64 `json:"order,omitempty"`
}

// TaskPatch is the validated partial update handed to the store, and also
// the wire shape the board client sends for moves.
type TaskPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Order       *float64   `json:"order,omitempty"`
}
