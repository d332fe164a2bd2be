package services

import (
	"time"

	"github.com/studyhelper-dev/studyhelper/db"
	"github.com/studyhelper-dev/studyhelper/internal/models"
	"github.com/studyhelper-dev/studyhelper/internal/taskview"
)

const DefaultTaskLimit = 50

// TaskQuery carries the listing parameters for one course's tasks. A nil
// Completed means no completion filter; Limit of zero means DefaultTaskLimit.
type TaskQuery struct {
	View       taskview.View
	SortBy     taskview.SortKey
	Descending bool
	Completed  *bool
	Limit      int
	Offset     int
}

// ListCourseTasks fetches a course's tasks and runs the pure view filter and
// sorter over the snapshot. Completion filtering and pagination happen in
// SQL, and rows always come back ordered by creation time so pages stay
// deterministic regardless of the requested sort.
func ListCourseTasks(courseID uint, query TaskQuery, today time.Time) ([]models.Task, error) {
	limit := query.Limit

	if limit <= 0 {
		limit = DefaultTaskLimit
	}

	tx := db.DB.Where("course_id = ?", courseID)

	if query.Completed != nil {
		status := models.StatusPending
		if *query.Completed {
			status = models.StatusCompleted
		}
		tx = tx.Where("status = ?", status)
	}

	var tasks []models.Task

	if err := tx.Order("created_at ASC").Limit(limit).Offset(query.Offset).Find(&tasks).Error; err != nil {
		return nil, err
	}

	tasks = taskview.Filter(tasks, query.View, nil, today)

	return taskview.Sort(tasks, query.SortBy, query.Descending), nil
}

// AggregateAcrossCourses collects the view's tasks from every non-archived
// course the user owns. Each course is queried through ListCourseTasks, then
// the concatenation is re-sorted by due date ascending so the merged result
// reads as a single agenda instead of per-course blocks.
func AggregateAcrossCourses(userID uint, view taskview.View, today time.Time) ([]models.Task, error) {
	var courses []models.Course

	if err := db.DB.Where("user_id = ? AND is_archived = ?", userID, false).Find(&courses).Error; err != nil {
		return nil, err
	}

	all := make([]models.Task, 0)

	for _, course := range courses {
		tasks, err := ListCourseTasks(course.ID, TaskQuery{View: view, SortBy: taskview.SortDueDate}, today)

		if err != nil {
			return nil, err
		}

		all = append(all, tasks...)
	}

	return taskview.Sort(all, taskview.SortDueDate, false), nil
}
