package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studyhelper-dev/studyhelper/db"
	"github.com/studyhelper-dev/studyhelper/internal/models"
	"github.com/studyhelper-dev/studyhelper/internal/services"
	"github.com/studyhelper-dev/studyhelper/internal/taskview"
	"github.com/studyhelper-dev/studyhelper/internal/utils"
	"gorm.io/gorm"
)

type CreateTaskRequest struct {
	CourseID    uint       `json:"course_id" binding:"required"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *string    `json:"priority"`
	IsCompleted *bool      `json:"is_completed"`
}

type TaskResponse struct {
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
	Subtasks         []uint     `json:"subtasks"` // Always empty, kept for client compatibility
	LinkedNotesCount int64      `json:"linked_notes_count"`
}

func validPriority(priority string) bool {
	switch priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return true
	}
	return false
}

// placeholderTitle names tasks created or updated with a blank title.
func placeholderTitle(now time.Time) string {
	return "Untitled Task - " + now.UTC().Format("2006-01-02 15:04:05")
}

func buildTaskResponse(task models.Task, linkedNotes int64) TaskResponse {
	return TaskResponse{
		ID:               task.ID,
		CourseID:         task.CourseID,
		Title:            task.Title,
		Description:      task.Description,
		DueDate:          task.DueDate,
		Priority:         task.Priority,
		Status:           task.Status,
		CompletedAt:      task.CompletedAt,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
		Subtasks:         []uint{},
		LinkedNotesCount: linkedNotes,
	}
}

func buildTaskResponses(tasks []models.Task) ([]TaskResponse, error) {
	taskIDs := make([]uint, 0, len(tasks))

	for _, task := range tasks {
		taskIDs = append(taskIDs, task.ID)
	}

	counts, err := services.LinkedNoteCounts(taskIDs)

	if err != nil {
		return nil, err
	}

	responses := make([]TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		responses = append(responses, buildTaskResponse(task, counts[task.ID]))
	}

	return responses, nil
}

func CreateTask(ctx *gin.Context) {
	var body CreateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var course models.Course

	if err := db.DB.Where("id = ? AND user_id = ?", body.CourseID, userID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve course"})
		}
		return
	}

	title := strings.TrimSpace(body.Title)

	if title == "" {
		title = placeholderTitle(time.Now())
	}

	priority := body.Priority

	if priority == "" {
		priority = models.PriorityMedium
	} else if !validPriority(priority) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Priority must be low, medium or high"})
		return
	}

	task := models.Task{
		CourseID:    body.CourseID,
		Title:       title,
		Description: body.Description,
		DueDate:     body.DueDate,
		Priority:    priority,
		Status:      models.StatusPending,
	}

	if err := db.DB.Create(&task).Error; err != nil {
		log.Printf("Failed to create task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	ctx.JSON(http.StatusCreated, buildTaskResponse(task, 0))
}

// GetCourseTasks lists a course's tasks. The completion filter and pagination
// run in SQL over creation order; the view filter and requested sort run in
// memory against a single "today" captured for the whole request.
func GetCourseTasks(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	courseID, err := utils.GetCourseID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var course models.Course

	if err := db.DB.Where("id = ? AND user_id = ?", courseID, userID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve course"})
		}
		return
	}

	var completed *bool

	if completedStr := ctx.Query("completed"); completedStr != "" {
		value, err := strconv.ParseBool(completedStr)

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid completed value"})
			return
		}

		completed = &value
	}

	limit, offset, err := parsePagination(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := services.TaskQuery{
		View:       taskview.ParseView(ctx.Query("view")),
		SortBy:     taskview.ParseSortKey(ctx.Query("sort_by")),
		Descending: taskview.Descending(ctx.Query("order")),
		Completed:  completed,
		Limit:      limit,
		Offset:     offset,
	}

	tasks, err := services.ListCourseTasks(courseID, query, time.Now())

	if err != nil {
		log.Printf("Failed to list tasks: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	responses, err := buildTaskResponses(tasks)

	if err != nil {
		log.Printf("Failed to fetch linked note counts: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	ctx.JSON(http.StatusOK, responses)
}

func UpdateTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var task models.Task

	if err := db.DB.Joins("JOIN courses ON courses.id = tasks.course_id").
		Where("tasks.id = ? AND courses.user_id = ?", taskID, userID).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	updates := make(map[string]interface{})

	if body.Title != nil {
		title := strings.TrimSpace(*body.Title)

		if title == "" {
			title = placeholderTitle(time.Now())
		}

		updates["title"] = title
	}

	if body.Description != nil {
		updates["description"] = *body.Description
	}

	if body.DueDate != nil {
		updates["due_date"] = *body.DueDate
	}

	if body.Priority != nil {
		if !validPriority(*body.Priority) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Priority must be low, medium or high"})
			return
		}
		updates["priority"] = *body.Priority
	}

	// Completing an already-completed task refreshes its completion time.
	if body.IsCompleted != nil {
		if *body.IsCompleted {
			updates["status"] = models.StatusCompleted
			updates["completed_at"] = time.Now().UTC()
		} else {
			updates["status"] = models.StatusPending
			updates["completed_at"] = nil
		}
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&task).Updates(updates).Error; err != nil {
			log.Printf("Failed to update task: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
			return
		}

		if err := db.DB.First(&task, task.ID).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
			return
		}
	}

	counts, err := services.LinkedNoteCounts([]uint{task.ID})

	if err != nil {
		log.Printf("Failed to fetch linked note counts: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}

	ctx.JSON(http.StatusOK, buildTaskResponse(task, counts[task.ID]))
}

func DeleteTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var task models.Task

	if err := db.DB.Joins("JOIN courses ON courses.id = tasks.course_id").
		Where("tasks.id = ? AND courses.user_id = ?", taskID, userID).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	if err := db.DB.Delete(&task).Error; err != nil {
		log.Printf("Failed to delete task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func TodayTasks(ctx *gin.Context) {
	aggregatedTasks(ctx, taskview.ViewToday)
}

func WeekTasks(ctx *gin.Context) {
	aggregatedTasks(ctx, taskview.ViewWeek)
}

func UpcomingTasks(ctx *gin.Context) {
	aggregatedTasks(ctx, taskview.ViewUpcoming)
}

func aggregatedTasks(ctx *gin.Context, view taskview.View) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	tasks, err := services.AggregateAcrossCourses(userID, view, time.Now())

	if err != nil {
		log.Printf("Failed to aggregate tasks: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	responses, err := buildTaskResponses(tasks)

	if err != nil {
		log.Printf("Failed to fetch linked note counts: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	ctx.JSON(http.StatusOK, responses)
}
