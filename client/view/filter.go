// Package view holds the presentation helpers a UI builds on top of the
// data the client returns: task filters, calendar grids and age labels.
package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/Carcandyx/baby-steps-client/client/internal/types"
)

// Status selects tasks by completion.
type Status string

const (
	StatusAll       Status = "all"
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
)

// ParseStatus accepts all, completed or pending. The empty string means all.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusPending:
		return StatusPending, nil
	default:
		return "", fmt.Errorf("unknown task status %q (want all, completed or pending)", s)
	}
}

// Filter narrows a task list.
type Filter struct {
	Status Status
	// Search matches title or description, case-insensitively.
	Search string
}

// FilterTasks returns the tasks matching f, preserving order.
func FilterTasks(tasks []types.Task, f Filter) []types.Task {
	needle := strings.ToLower(f.Search)
	out := make([]types.Task, 0, len(tasks))
	for _, t := range tasks {
		switch f.Status {
		case StatusCompleted:
			if !t.Completed {
				continue
			}
		case StatusPending:
			if t.Completed {
				continue
			}
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// TasksDueOn returns the tasks whose deadline falls on day's calendar date,
// evaluated in day's location.
func TasksDueOn(tasks []types.Task, day time.Time) []types.Task {
	loc := day.Location()
	y, m, d := day.Date()
	var out []types.Task
	for _, t := range tasks {
		ty, tm, td := t.DeadlineDate.In(loc).Date()
		if ty == y && tm == m && td == d {
			out = append(out, t)
		}
	}
	return out
}

// ReplaceTask returns a copy of tasks with the entry whose ID matches
// updated swapped for it.
func ReplaceTask(tasks []types.Task, updated types.Task) []types.Task {
	out := make([]types.Task, len(tasks))
	for i, t := range tasks {
		if t.ID == updated.ID {
			out[i] = updated
			continue
		}
		out[i] = t
	}
	return out
}
