package handlers

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studyhelper-dev/studyhelper/db"
	"github.com/studyhelper-dev/studyhelper/internal/models"
	"github.com/studyhelper-dev/studyhelper/internal/utils"
	"gorm.io/gorm"
)

const DefaultCourseColor = "#3B82F6"

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type CreateCourseRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type UpdateCourseRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	IsArchived  *bool   `json:"is_archived"`
}

type CourseResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	IsArchived  bool      `json:"is_archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	NotesCount  int64     `json:"notes_count"`
	TasksCount  int64     `json:"tasks_count"`
}

func buildCourseResponse(course models.Course) CourseResponse {
	var notesCount, tasksCount int64

	db.DB.Model(&models.Note{}).Where("course_id = ?", course.ID).Count(&notesCount)
	db.DB.Model(&models.Task{}).Where("course_id = ?", course.ID).Count(&tasksCount)

	return CourseResponse{
		ID:          course.ID,
		Name:        course.Name,
		Description: course.Description,
		Color:       course.Color,
		IsArchived:  course.IsArchived,
		CreatedAt:   course.CreatedAt,
		UpdatedAt:   course.UpdatedAt,
		NotesCount:  notesCount,
		TasksCount:  tasksCount,
	}
}

func CreateCourse(ctx *gin.Context) {
	var body CreateCourseRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	color := body.Color

	if color == "" {
		color = DefaultCourseColor
	}

	if !colorPattern.MatchString(color) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Color must be a hex value like #3B82F6"})
		return
	}

	course := models.Course{
		UserID:      userID,
		Name:        body.Name,
		Description: body.Description,
		Color:       color,
	}

	if err := db.DB.Create(&course).Error; err != nil {
		log.Printf("Failed to create course: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course"})
		return
	}

	ctx.JSON(http.StatusCreated, buildCourseResponse(course))
}

func ListCourses(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	tx := db.DB.Where("user_id = ?", userID)

	if isArchivedStr := ctx.Query("is_archived"); isArchivedStr != "" {
		isArchived, err := strconv.ParseBool(isArchivedStr)

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid is_archived value"})
			return
		}

		tx = tx.Where("is_archived = ?", isArchived)
	}

	var courses []models.Course

	if err := tx.Order("created_at DESC").Find(&courses).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve courses"})
		return
	}

	responses := make([]CourseResponse, 0, len(courses))

	for _, course := range courses {
		responses = append(responses, buildCourseResponse(course))
	}

	ctx.JSON(http.StatusOK, responses)
}

func UpdateCourse(ctx *gin.Context) {
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

	var body UpdateCourseRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
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

	updates := make(map[string]interface{})

	if body.Name != nil {
		if strings.TrimSpace(*body.Name) == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Name cannot be empty"})
			return
		}
		updates["name"] = *body.Name
	}

	if body.Description != nil {
		updates["description"] = *body.Description
	}

	if body.Color != nil {
		if !colorPattern.MatchString(*body.Color) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Color must be a hex value like #3B82F6"})
			return
		}
		updates["color"] = *body.Color
	}

	if body.IsArchived != nil {
		updates["is_archived"] = *body.IsArchived
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&course).Updates(updates).Error; err != nil {
			log.Printf("Failed to update course: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update course"})
			return
		}

		if err := db.DB.First(&course, course.ID).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve course"})
			return
		}
	}

	ctx.JSON(http.StatusOK, buildCourseResponse(course))
}

func DeleteCourse(ctx *gin.Context) {
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

	// Notes, tasks and note-task links go with the course via FK cascades.
	if err := db.DB.Delete(&course).Error; err != nil {
		log.Printf("Failed to delete course: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete course"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
