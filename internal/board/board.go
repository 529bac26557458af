package board

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mwalczyk/taskboard/internal/models"
)

// TaskAPI is the server surface the board needs; *Client implements it.
type TaskAPI interface {
	List(ctx context.Context) ([]models.Task, error)
	Create(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error)
	Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id string) error
}

// Notifier surfaces user-visible failure notices (a toast, a status line).
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Board owns the client-side task state and the optimistic move protocol.
// All mutations flow through the reducer, and the server's canonical
// responses win over any optimistic state: a confirmation is matched by task
// id and discarded when its updatedAt is older than one already applied, so
// a slow response never clobbers a newer move.
type Board struct {
	api    TaskAPI
	notify Notifier

	mu        sync.Mutex
	state     State
	confirmed map[string]time.Time // last applied server updatedAt per task
}

func New(api TaskAPI, notify Notifier) *Board {
	if notify == nil {
		notify = NotifierFunc(func(string) {})
	}
	return &Board{
		api:       api,
		notify:    notify,
		confirmed: make(map[string]time.Time),
	}
}

// Snapshot returns the current state.
func (b *Board) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Load fetches the canonical list from the server.
func (b *Board) Load(ctx context.Context) error {
	items, err := b.api.List(ctx)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.state = Reduce(b.state, TasksLoaded{Items: items})
	b.confirmed = make(map[string]time.Time, len(items))
	for _, t := range items {
		b.confirmed[t.ID.Hex()] = t.UpdatedAt
	}
	b.mu.Unlock()
	return nil
}

// CreateTask adds a task through the server and records the canonical
// result.
func (b *Board) CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	created, err := b.api.Create(ctx, req)
	if err != nil {
		b.notify.Notify("Failed to create task")
		return nil, err
	}

	b.mu.Lock()
	b.state = Reduce(b.state, TaskAdded{Task: *created})
	b.confirmed[created.ID.Hex()] = created.UpdatedAt
	b.mu.Unlock()
	return created, nil
}

// DeleteTask removes a task through the server.
func (b *Board) DeleteTask(ctx context.Context, id string) error {
	if err := b.api.Delete(ctx, id); err != nil {
		b.notify.Notify("Failed to delete task")
		return err
	}

	b.mu.Lock()
	b.state = Reduce(b.state, TaskRemoved{ID: id})
	delete(b.confirmed, id)
	b.mu.Unlock()
	return nil
}

// Clear resets the board, e.g. after logout.
func (b *Board) Clear() {
	b.mu.Lock()
	b.state = Reduce(b.state, StateCleared{})
	b.confirmed = make(map[string]time.Time)
	b.mu.Unlock()
}

// Move translates a drag gesture into a (status, order) update. The local
// state mutates before the request goes out, so the card lands in its new
// slot with zero perceived latency; the server response then either confirms
// the move or rolls it back.
func (b *Board) Move(ctx context.Context, src, dst Position) error {
	// Dropping a card back where it came from writes nothing.
	if src == dst {
		return nil
	}

	b.mu.Lock()
	srcCol := Column(b.state.Items, src.Status)
	if src.Index < 0 || src.Index >= len(srcCol) {
		b.mu.Unlock()
		return fmt.Errorf("no task at %s[%d]", src.Status, src.Index)
	}
	dragged := srcCol[src.Index]
	id := dragged.ID.Hex()
	prevStatus, prevOrder := dragged.Status, dragged.Order

	// The dragged card is not its own neighbor.
	destCol := Column(b.state.Items, dst.Status)
	neighbors := make([]models.Task, 0, len(destCol))
	for _, t := range destCol {
		if t.ID != dragged.ID {
			neighbors = append(neighbors, t)
		}
	}
	newOrder := dropOrder(neighbors, dst.Index)

	b.state = Reduce(b.state, TaskMoved{ID: id, Status: dst.Status, Order: &newOrder})
	b.mu.Unlock()

	updated, err := b.api.Update(ctx, id, models.TaskPatch{Status: &dst.Status, Order: &newOrder})
	if err != nil {
		// Roll back: the card must never sit in a column it does not occupy
		// server-side.
		b.mu.Lock()
		b.state = Reduce(b.state, TaskMoved{ID: id, Status: prevStatus, Order: &prevOrder})
		b.mu.Unlock()
		b.notify.Notify("Failed to move task")
		return err
	}

	b.confirm(*updated)
	return nil
}

// MoveStatusOnly is the fallback strategy: no optimistic mutation and no
// local order computation, just a status write followed by a refetch of the
// server's canonical list.
func (b *Board) MoveStatusOnly(ctx context.Context, id string, status models.Status) error {
	if _, err := b.api.Update(ctx, id, models.TaskPatch{Status: &status}); err != nil {
		b.notify.Notify("Failed to move task")
		return err
	}
	return b.Load(ctx)
}

// confirm reconciles a server response into local state, dropping responses
// that arrive after a newer confirmation for the same task.
func (b *Board) confirm(t models.Task) {
	id := t.ID.Hex()
	b.mu.Lock()
	defer b.mu.Unlock()

	if last, ok := b.confirmed[id]; ok && t.UpdatedAt.Before(last) {
		return
	}
	b.confirmed[id] = t.UpdatedAt
	b.state = Reduce(b.state, TaskReplaced{Task: t})
}
