package handlers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taskBody struct {
	ID               uint       `json:"id"`
	CourseID         uint       `json:"course_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	DueDate          *time.Time `json:"due_date"`
	Priority         string     `json:"priority"`
	Status           string     `json:"status"`
	CompletedAt      *time.Time `json:"completed_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	Subtasks         []uint     `json:"subtasks"`
	LinkedNotesCount int64      `json:"linked_notes_count"`
}

func dueIn(days int) string {
	return time.Now().AddDate(0, 0, days).Format(time.RFC3339)
}

func TestCreateTask(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "task@example.com")
	courseID := createTestCourse(t, r, token, "Astronomy")

	w := performRequest(t, r, http.MethodPost, "/api/v1/tasks", gin.H{
		"course_id":   courseID,
		"title":       "telescope night",
		"description": "bring gloves",
		"due_date":    dueIn(3),
		"priority":    "high",
	}, token)

	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var task taskBody
	decodeBody(t, w, &task)

	assert.Equal(t, courseID, task.CourseID)
	assert.Equal(t, "telescope night", task.Title)
	assert.Equal(t, "high", task.Priority)
	assert.Equal(t, "pending", task.Status)
	assert.Nil(t, task.CompletedAt)
	require.NotNil(t, task.DueDate)
	assert.NotNil(t, task.Subtasks)
	assert.Empty(t, task.Subtasks)
	assert.Zero(t, task.LinkedNotesCount)
}

func TestCreateTask_BlankTitleGetsPlaceholder(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "untitled@example.com")
	courseID := createTestCourse(t, r, token, "Philosophy")

	w := performRequest(t, r, http.MethodPost, "/api/v1/tasks", gin.H{
		"course_id": courseID,
		"title":     "   ",
	}, token)

	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var task taskBody
	decodeBody(t, w, &task)

	assert.True(t, strings.HasPrefix(task.Title, "Untitled Task - "), "got title %q", task.Title)
}

func TestCreateTask_PriorityRules(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "priority@example.com")
	courseID := createTestCourse(t, r, token, "Law")

	w := performRequest(t, r, http.MethodPost, "/api/v1/tasks", gin.H{
		"course_id": courseID,
		"title":     "read case",
		"priority":  "urgent",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(t, r, http.MethodPost, "/api/v1/tasks", gin.H{
		"course_id": courseID,
		"title":     "read case",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var task taskBody
	decodeBody(t, w, &task)
	assert.Equal(t, "medium", task.Priority)
}

func TestCreateTask_RequiresOwnedCourse(t *testing.T) {
	r := setupTest(t)
	ownerToken := registerUser(t, r, "taskowner@example.com")
	courseID := createTestCourse(t, r, ownerToken, "Private")

	strangerToken := registerUser(t, r, "taskstranger@example.com")

	w := performRequest(t, r, http.MethodPost, "/api/v1/tasks", gin.H{
		"course_id": courseID,
		"title":     "sneaky",
	}, strangerToken)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCourseTasks_Filters(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "taskfilter@example.com")
	courseID := createTestCourse(t, r, token, "Biochemistry")

	weekTask := createTestTask(t, r, token, courseID, "within week", gin.H{"due_date": dueIn(3)})
	farTask := createTestTask(t, r, token, courseID, "far out", gin.H{"due_date": dueIn(20)})
	doneTask := createTestTask(t, r, token, courseID, "already done", nil)

	w := performRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/tasks/%d", doneTask), gin.H{
		"is_completed": true,
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	base := fmt.Sprintf("/api/v1/courses/%d/tasks", courseID)

	w = performRequest(t, r, http.MethodGet, base+"?completed=false", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var tasks []taskBody
	decodeBody(t, w, &tasks)
	require.Len(t, tasks, 2)
	assert.Equal(t, weekTask, tasks[0].ID)
	assert.Equal(t, farTask, tasks[1].ID)

	w = performRequest(t, r, http.MethodGet, base+"?completed=true", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	decodeBody(t, w, &tasks)
	require.Len(t, tasks, 1)
	assert.Equal(t, doneTask, tasks[0].ID)

	w = performRequest(t, r, http.MethodGet, base+"?view=week", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	decodeBody(t, w, &tasks)
	require.Len(t, tasks, 1)
	assert.Equal(t, weekTask, tasks[0].ID)
}

func TestGetCourseTasks_SortByDueDate(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "tasksort@example.com")
	courseID := createTestCourse(t, r, token, "Meteorology")

	late := createTestTask(t, r, token, courseID, "late", gin.H{"due_date": dueIn(9)})
	early := createTestTask(t, r, token, courseID, "early", gin.H{"due_date": dueIn(2)})
	undated := createTestTask(t, r, token, courseID, "undated", nil)

	base := fmt.Sprintf("/api/v1/courses/%d/tasks", courseID)

	w := performRequest(t, r, http.MethodGet, base+"?sort_by=due_date", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var tasks []taskBody
	decodeBody(t, w, &tasks)
	require.Len(t, tasks, 3)
	assert.Equal(t, early, tasks[0].ID)
	assert.Equal(t, late, tasks[1].ID)
	// Tasks without a due date go last when ascending.
	assert.Equal(t, undated, tasks[2].ID)

	w = performRequest(t, r, http.MethodGet, base+"?sort_by=due_date&order=desc", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	decodeBody(t, w, &tasks)
	require.Len(t, tasks, 3)
	assert.Equal(t, undated, tasks[0].ID)
	assert.Equal(t, late, tasks[1].ID)
	assert.Equal(t, early, tasks[2].ID)
}

func TestGetCourseTasks_UnknownViewAndSortFallBack(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "taskfallback@example.com")
	courseID := createTestCourse(t, r, token, "Drama")

	createTestTask(t, r, token, courseID, "rehearse", nil)

	base := fmt.Sprintf("/api/v1/courses/%d/tasks", courseID)

	w := performRequest(t, r, http.MethodGet, base+"?view=someday&sort_by=alphabetical", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var tasks []taskBody
	decodeBody(t, w, &tasks)
	assert.Len(t, tasks, 1)
}

func TestUpdateTask_CompletionTransitions(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "transitions@example.com")
	courseID := createTestCourse(t, r, token, "Anatomy")
	taskID := createTestTask(t, r, token, courseID, "flashcards", nil)

	path := fmt.Sprintf("/api/v1/tasks/%d", taskID)

	w := performRequest(t, r, http.MethodPatch, path, gin.H{"is_completed": true}, token)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var task taskBody
	decodeBody(t, w, &task)
	assert.Equal(t, "completed", task.Status)
	require.NotNil(t, task.CompletedAt)
	firstCompletion := *task.CompletedAt

	// Completing again refreshes the completion time.
	time.Sleep(10 * time.Millisecond)
	w = performRequest(t, r, http.MethodPatch, path, gin.H{"is_completed": true}, token)
	require.Equal(t, http.StatusOK, w.Code)

	decodeBody(t, w, &task)
	assert.Equal(t, "completed", task.Status)
	require.NotNil(t, task.CompletedAt)
	assert.True(t, task.CompletedAt.After(firstCompletion))

	w = performRequest(t, r, http.MethodPatch, path, gin.H{"is_completed": false}, token)
	require.Equal(t, http.StatusOK, w.Code)

	decodeBody(t, w, &task)
	assert.Equal(t, "pending", task.Status)
	assert.Nil(t, task.CompletedAt)
}

func TestUpdateTask_PartialUpdate(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "taskpartial@example.com")
	courseID := createTestCourse(t, r, token, "Genetics")
	taskID := createTestTask(t, r, token, courseID, "read paper", gin.H{"priority": "low"})

	path := fmt.Sprintf("/api/v1/tasks/%d", taskID)

	w := performRequest(t, r, http.MethodPatch, path, gin.H{"due_date": dueIn(5)}, token)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var task taskBody
	decodeBody(t, w, &task)

	assert.Equal(t, "read paper", task.Title)
	assert.Equal(t, "low", task.Priority)
	require.NotNil(t, task.DueDate)

	w = performRequest(t, r, http.MethodPatch, path, gin.H{"priority": "critical"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(t, r, http.MethodPatch, path, gin.H{"title": ""}, token)
	require.Equal(t, http.StatusOK, w.Code)

	decodeBody(t, w, &task)
	assert.True(t, strings.HasPrefix(task.Title, "Untitled Task - "), "got title %q", task.Title)
}

func TestUpdateTask_NotOwned(t *testing.T) {
	r := setupTest(t)
	ownerToken := registerUser(t, r, "tasko@example.com")
	courseID := createTestCourse(t, r, ownerToken, "Private")
	taskID := createTestTask(t, r, ownerToken, courseID, "secret", nil)

	strangerToken := registerUser(t, r, "tasks@example.com")

	w := performRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/tasks/%d", taskID), gin.H{
		"title": "mine now",
	}, strangerToken)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTask(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "taskdel@example.com")
	courseID := createTestCourse(t, r, token, "Archery")
	taskID := createTestTask(t, r, token, courseID, "restring bow", nil)

	path := fmt.Sprintf("/api/v1/tasks/%d", taskID)

	w := performRequest(t, r, http.MethodDelete, path, nil, token)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = performRequest(t, r, http.MethodPatch, path, gin.H{"title": "gone"}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskViews_AggregateAcrossCourses(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "views@example.com")

	math := createTestCourse(t, r, token, "Math")
	physics := createTestCourse(t, r, token, "Physics")
	archived := createTestCourse(t, r, token, "Old Semester")

	w := performRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/courses/%d", archived), gin.H{
		"is_archived": true,
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	todayTask := createTestTask(t, r, token, math, "due today", gin.H{"due_date": dueIn(0)})
	soonTask := createTestTask(t, r, token, physics, "due soon", gin.H{"due_date": dueIn(2)})
	laterTask := createTestTask(t, r, token, math, "due later", gin.H{"due_date": dueIn(6)})
	farTask := createTestTask(t, r, token, physics, "far out", gin.H{"due_date": dueIn(15)})
	createTestTask(t, r, token, archived, "hidden", gin.H{"due_date": dueIn(2)})

	w = performRequest(t, r, http.MethodGet, "/api/v1/tasks/today", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var tasks []taskBody
	decodeBody(t, w, &tasks)
	require.Len(t, tasks, 1)
	assert.Equal(t, todayTask, tasks[0].ID)

	w = performRequest(t, r, http.MethodGet, "/api/v1/tasks/week", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	decodeBody(t, w, &tasks)
	require.Len(t, tasks, 3)
	// One agenda across courses, ordered by due date.
	assert.Equal(t, todayTask, tasks[0].ID)
	assert.Equal(t, soonTask, tasks[1].ID)
	assert.Equal(t, laterTask, tasks[2].ID)

	w = performRequest(t, r, http.MethodGet, "/api/v1/tasks/upcoming", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	decodeBody(t, w, &tasks)
	require.Len(t, tasks, 1)
	assert.Equal(t, farTask, tasks[0].ID)
}
