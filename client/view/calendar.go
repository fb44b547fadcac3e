package view

import (
	"time"

	"github.com/Carcandyx/baby-steps-client/client/internal/types"
)

// Day is one cell of a month grid.
type Day struct {
	Date    time.Time
	InMonth bool
	Tasks   int
}

// MonthGrid returns the weeks covering month, each exactly seven days
// starting on weekStart. Leading and trailing cells come from the adjacent
// months and have InMonth false.
func MonthGrid(year int, month time.Month, weekStart time.Weekday, loc *time.Location) [][]Day {
	if loc == nil {
		loc = time.Local
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	lead := (int(first.Weekday()) - int(weekStart) + 7) % 7
	daysInMonth := first.AddDate(0, 1, -1).Day()
	cells := lead + daysInMonth
	if rem := cells % 7; rem != 0 {
		cells += 7 - rem
	}

	start := first.AddDate(0, 0, -lead)
	weeks := make([][]Day, 0, cells/7)
	for w := 0; w < cells/7; w++ {
		week := make([]Day, 7)
		for d := 0; d < 7; d++ {
			date := start.AddDate(0, 0, w*7+d)
			week[d] = Day{Date: date, InMonth: date.Month() == month}
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// CountByDay fills in the Tasks count of every cell from the task
// deadlines, evaluated in each cell's location.
func CountByDay(grid [][]Day, tasks []types.Task) {
	for _, week := range grid {
		for i := range week {
			week[i].Tasks = len(TasksDueOn(tasks, week[i].Date))
		}
	}
}
