package taskview

import (
	"sort"
	"time"

	"github.com/studyhelper-dev/studyhelper/internal/models"
)

// SortKey names a task ordering.
type SortKey string

const (
	SortCreatedAt SortKey = "created_at"
	SortDueDate   SortKey = "due_date"
	SortPriority  SortKey = "priority"
)

// ParseSortKey maps a query-string value to a SortKey. Unrecognized values
// fall back to creation order.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortDueDate, SortPriority:
		return SortKey(s)
	default:
		return SortCreatedAt
	}
}

// Descending reports whether an order parameter asks for reverse order.
func Descending(order string) bool {
	return order == "desc"
}

// maxDueDate stands in for a missing due date, so undated tasks sort after
// every dated one in ascending order.
var maxDueDate = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

const unknownPriorityRank = 3

var priorityRank = map[string]int{
	models.PriorityHigh:   0,
	models.PriorityMedium: 1,
	models.PriorityLow:    2,
}

func rank(priority string) int {
	if r, ok := priorityRank[priority]; ok {
		return r
	}
	return unknownPriorityRank
}

func dueOrMax(due *time.Time) time.Time {
	if due == nil {
		return maxDueDate
	}
	return *due
}

// Sort returns a copy of tasks ordered by the given key. Stable in both
// directions: elements comparing equal keep their incoming order.
func Sort(tasks []models.Task, key SortKey, descending bool) []models.Task {
	sorted := append([]models.Task(nil), tasks...)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		var cmp int

		switch key {
		case SortDueDate:
			cmp = dueOrMax(a.DueDate).Compare(dueOrMax(b.DueDate))
		case SortPriority:
			cmp = rank(a.Priority) - rank(b.Priority)
		default:
			cmp = a.CreatedAt.Compare(b.CreatedAt)
		}

		if descending {
			return cmp > 0
		}

		return cmp < 0
	})

	return sorted
}
