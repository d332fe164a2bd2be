package taskview

import (
	"time"

	"github.com/studyhelper-dev/studyhelper/internal/models"
)

// View selects which categories a task listing returns.
type View string

const (
	ViewAll      View = "all"
	ViewToday    View = "today"
	ViewWeek     View = "week"
	ViewUpcoming View = "upcoming"
)

// ParseView maps a query-string value to a View. Unrecognized values fall
// back to ViewAll.
func ParseView(s string) View {
	switch View(s) {
	case ViewToday, ViewWeek, ViewUpcoming:
		return View(s)
	default:
		return ViewAll
	}
}

// Matches reports whether a category belongs to the view. The week view
// matches tasks due today as well as later this week.
func (v View) Matches(c Category) bool {
	switch v {
	case ViewToday:
		return c == CategoryToday
	case ViewWeek:
		return c == CategoryToday || c == CategoryWeek
	case ViewUpcoming:
		return c == CategoryUpcoming
	default:
		return true
	}
}

// Filter returns the tasks matching the view and, when completed is non-nil,
// the completion state. Input order is preserved and the input slice is left
// untouched.
func Filter(tasks []models.Task, view View, completed *bool, today time.Time) []models.Task {
	var status string

	if completed != nil {
		if *completed {
			status = models.StatusCompleted
		} else {
			status = models.StatusPending
		}
	}

	filtered := make([]models.Task, 0, len(tasks))

	for _, task := range tasks {
		if completed != nil && task.Status != status {
			continue
		}

		if view != ViewAll && !view.Matches(Classify(today, task.DueDate)) {
			continue
		}

		filtered = append(filtered, task)
	}

	return filtered
}
