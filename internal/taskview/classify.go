// Package taskview implements the date bucketing, filtering and ordering
// behind task listings. Everything here is pure: the reference day is always
// passed in, so one request sees one consistent "today".
package taskview

import "time"

// Category places a task's due date relative to a reference day. Every task
// falls in exactly one category.
type Category string

const (
	CategoryNoDueDate Category = "no_due_date"
	CategoryOverdue   Category = "overdue"
	CategoryToday     Category = "today"
	CategoryWeek      Category = "week"
	CategoryUpcoming  Category = "upcoming"
)

// weekSpan is how many days past today still count as this week.
const weekSpan = 7

// DateOnly strips the time-of-day portion, leaving a comparable calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Classify buckets a due date against today. The due timestamp is read in
// today's location first, so a task stored as UTC lands on the calendar day
// the caller sees. Due dates exactly weekSpan days out are still week; one
// day past that is upcoming.
func Classify(today time.Time, due *time.Time) Category {
	if due == nil {
		return CategoryNoDueDate
	}

	day := DateOnly(today)
	dueDay := DateOnly(due.In(today.Location()))

	switch {
	case dueDay.Before(day):
		return CategoryOverdue
	case dueDay.Equal(day):
		return CategoryToday
	case !dueDay.After(day.AddDate(0, 0, weekSpan)):
		return CategoryWeek
	default:
		return CategoryUpcoming
	}
}
