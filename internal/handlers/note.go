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
	"github.com/studyhelper-dev/studyhelper/internal/utils"
	"gorm.io/gorm"
)

type CreateNoteRequest struct {
	CourseID uint   `json:"course_id" binding:"required"`
	Title    string `json:"title" binding:"required,max=200"`
	Content  string `json:"content"`
	Tags     string `json:"tags"`
}

type UpdateNoteRequest struct {
	Title   *string `json:"title" binding:"omitempty,max=200"`
	Content *string `json:"content"`
	Tags    *string `json:"tags"`
}

type NoteResponse struct {
	ID          uint      `json:"id"`
	CourseID    uint      `json:"course_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Tags        string    `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	LinkedTasks []uint    `json:"linked_tasks"`
}

// noteSortColumns whitelists what lands in the ORDER BY clause. Anything else
// falls back to creation time.
var noteSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"title":      "title",
}

// parsePagination reads limit and offset query params, defaulting to the
// first DefaultTaskLimit rows.
func parsePagination(ctx *gin.Context) (int, int, error) {
	limit := services.DefaultTaskLimit
	offset := 0

	if limitStr := ctx.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)

		if err != nil || parsed < 1 {
			return 0, 0, errors.New("Invalid limit")
		}

		limit = parsed
	}

	if offsetStr := ctx.Query("offset"); offsetStr != "" {
		parsed, err := strconv.Atoi(offsetStr)

		if err != nil || parsed < 0 {
			return 0, 0, errors.New("Invalid offset")
		}

		offset = parsed
	}

	return limit, offset, nil
}

func buildNoteResponse(note models.Note, linkedTasks []uint) NoteResponse {
	if linkedTasks == nil {
		linkedTasks = []uint{}
	}

	return NoteResponse{
		ID:          note.ID,
		CourseID:    note.CourseID,
		Title:       note.Title,
		Content:     note.Content,
		Tags:        note.Tags,
		CreatedAt:   note.CreatedAt,
		UpdatedAt:   note.UpdatedAt,
		LinkedTasks: linkedTasks,
	}
}

func CreateNote(ctx *gin.Context) {
	var body CreateNoteRequest

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

	note := models.Note{
		CourseID: body.CourseID,
		Title:    body.Title,
		Content:  body.Content,
		Tags:     body.Tags,
	}

	if err := db.DB.Create(&note).Error; err != nil {
		log.Printf("Failed to create note: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create note"})
		return
	}

	ctx.JSON(http.StatusCreated, buildNoteResponse(note, nil))
}

// GetCourseNotes lists a course's notes, newest first by default. Sorting and
// pagination run in SQL; linked task IDs are attached from one batched query.
func GetCourseNotes(ctx *gin.Context) {
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

	column, ok := noteSortColumns[ctx.Query("sort_by")]

	if !ok {
		column = "created_at"
	}

	direction := "DESC"

	if ctx.Query("order") == "asc" {
		direction = "ASC"
	}

	limit, offset, err := parsePagination(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var notes []models.Note

	if err := db.DB.Where("course_id = ?", courseID).
		Order(column + " " + direction).
		Limit(limit).
		Offset(offset).
		Find(&notes).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notes"})
		return
	}

	noteIDs := make([]uint, 0, len(notes))

	for _, note := range notes {
		noteIDs = append(noteIDs, note.ID)
	}

	linkedTasks, err := services.LinkedTaskIDs(noteIDs)

	if err != nil {
		log.Printf("Failed to fetch linked tasks: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notes"})
		return
	}

	responses := make([]NoteResponse, 0, len(notes))

	for _, note := range notes {
		responses = append(responses, buildNoteResponse(note, linkedTasks[note.ID]))
	}

	ctx.JSON(http.StatusOK, responses)
}

func UpdateNote(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	noteID, err := utils.GetNoteID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateNoteRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var note models.Note

	if err := db.DB.Joins("JOIN courses ON courses.id = notes.course_id").
		Where("notes.id = ? AND courses.user_id = ?", noteID, userID).
		First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve note"})
		}
		return
	}

	updates := make(map[string]interface{})

	if body.Title != nil {
		if strings.TrimSpace(*body.Title) == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title cannot be empty"})
			return
		}
		updates["title"] = *body.Title
	}

	if body.Content != nil {
		updates["content"] = *body.Content
	}

	if body.Tags != nil {
		updates["tags"] = *body.Tags
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&note).Updates(updates).Error; err != nil {
			log.Printf("Failed to update note: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update note"})
			return
		}

		if err := db.DB.First(&note, note.ID).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve note"})
			return
		}
	}

	linkedTasks, err := services.LinkedTaskIDs([]uint{note.ID})

	if err != nil {
		log.Printf("Failed to fetch linked tasks: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve note"})
		return
	}

	ctx.JSON(http.StatusOK, buildNoteResponse(note, linkedTasks[note.ID]))
}

func DeleteNote(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	noteID, err := utils.GetNoteID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var note models.Note

	if err := db.DB.Joins("JOIN courses ON courses.id = notes.course_id").
		Where("notes.id = ? AND courses.user_id = ?", noteID, userID).
		First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve note"})
		}
		return
	}

	// Removes the note's task links with it; linked tasks themselves survive.
	if err := db.DB.Delete(&note).Error; err != nil {
		log.Printf("Failed to delete note: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete note"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
