// Package board is the client side of the task API: an in-memory state
// container with pure reducer-style transitions, the fractional-ordering
// computation for drag-and-drop, and the optimistic move protocol that keeps
// the local list consistent with the server's canonical records.
package board

import "github.com/mwalczyk/taskboard/internal/models"

// State is the board's in-memory task list. Reduce treats it as immutable:
// transitions return a fresh State and never mutate items in place.
type State struct {
	Items []models.Task
}

// Event is a single state transition input for Reduce.
type Event interface {
	isEvent()
}

// TasksLoaded replaces the whole list with the server's canonical view.
type TasksLoaded struct{ Items []models.Task }

// TaskAdded appends a newly created task.
type TaskAdded struct{ Task models.Task }

// TaskReplaced swaps in the server's canonical record for an existing task.
type TaskReplaced struct{ Task models.Task }

// TaskRemoved drops a task by id.
type TaskRemoved struct{ ID string }

// TaskMoved applies an optimistic (status, order) change to a task. A nil
// Order changes the status only.
type TaskMoved struct {
	ID     string
	Status models.Status
	Order  *float64
}

// StateCleared resets the board, e.g. on logout.
type StateCleared struct{}

func (TasksLoaded) isEvent()  {}
func (TaskAdded) isEvent()    {}
func (TaskReplaced) isEvent() {}
func (TaskRemoved) isEvent()  {}
func (TaskMoved) isEvent()    {}
func (StateCleared) isEvent() {}

// Reduce is the pure transition function: prior state plus one event in, new
// state out.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case TasksLoaded:
		items := make([]models.Task, len(e.Items))
		copy(items, e.Items)
		return State{Items: items}

	case TaskAdded:
		items := make([]models.Task, 0, len(s.Items)+1)
		items = append(items, s.Items...)
		items = append(items, e.Task)
		return State{Items: items}

	case TaskReplaced:
		items := make([]models.Task, len(s.Items))
		copy(items, s.Items)
		for i := range items {
			if items[i].ID == e.Task.ID {
				items[i] = e.Task
				break
			}
		}
		return State{Items: items}

	case TaskRemoved:
		items := make([]models.Task, 0, len(s.Items))
		for _, t := range s.Items {
			if t.ID.Hex() != e.ID {
				items = append(items, t)
			}
		}
		return State{Items: items}

	case TaskMoved:
		items := make([]models.Task, len(s.Items))
		copy(items, s.Items)
		for i := range items {
			if items[i].ID.Hex() == e.ID {
				items[i].Status = e.Status
				if e.Order != nil {
					items[i].Order = *e.Order
				}
				break
			}
		}
		return State{Items: items}

	case StateCleared:
		return State{}
	}
	return s
}
