package board

import (
	"sort"

	"github.com/mwalczyk/taskboard/internal/models"
)

// defaultOrderStep spaces appended tasks far apart so later inserts can take
// midpoints without renumbering siblings.
const defaultOrderStep = 1000

// Position addresses a slot on the board: a status column plus an index
// within it.
type Position struct {
	Status models.Status
	Index  int
}

// SortBoard orders tasks the way columns render them: order ascending,
// createdAt descending as the tie-break.
func SortBoard(items []models.Task) []models.Task {
	out := make([]models.Task, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Column returns the sorted tasks of one status column.
func Column(items []models.Task, status models.Status) []models.Task {
	var col []models.Task
	for _, t := range SortBoard(items) {
		if t.Status == status {
			col = append(col, t)
		}
	}
	return col
}

// dropOrder computes the fractional sort key for inserting at index into a
// column that no longer contains the dragged task. Order values are opaque
// reals, never dense indexes: a neighbor midpoint places the card without
// touching any sibling's key.
func dropOrder(column []models.Task, index int) float64 {
	var prev, next *models.Task
	if index-1 >= 0 && index-1 < len(column) {
		prev = &column[index-1]
	}
	if index >= 0 && index < len(column) {
		next = &column[index]
	}

	switch {
	case prev == nil && next == nil:
		return defaultOrderStep
	case prev == nil:
		return next.Order / 2
	case next == nil:
		return prev.Order + defaultOrderStep
	default:
		return (prev.Order + next.Order) / 2
	}
}
