package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyhelper-dev/studyhelper/db"
	"github.com/studyhelper-dev/studyhelper/internal/models"
	"github.com/studyhelper-dev/studyhelper/internal/utils"
	"gorm.io/gorm"
)

type LinkTaskRequest struct {
	TaskID uint `json:"task_id" binding:"required"`
}

// LinkTask attaches a task to a note. Both sides must belong to the current
// user; the pair is unique, so linking twice answers 409.
func LinkTask(ctx *gin.Context) {
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

	var body LinkTaskRequest

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

	var task models.Task

	if err := db.DB.Joins("JOIN courses ON courses.id = tasks.course_id").
		Where("tasks.id = ? AND courses.user_id = ?", body.TaskID, userID).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	var existing models.NoteTaskLink

	err = db.DB.Where("note_id = ? AND task_id = ?", note.ID, task.ID).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Note and task are already linked"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing link: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link task"})
		return
	}

	link := models.NoteTaskLink{
		NoteID: note.ID,
		TaskID: task.ID,
	}

	if err := db.DB.Create(&link).Error; err != nil {
		log.Printf("Failed to create link: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link task"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"note_id": link.NoteID,
		"task_id": link.TaskID,
	})
}

// UnlinkTask removes the link between a note and a task. Neither the note nor
// the task is touched.
func UnlinkTask(ctx *gin.Context) {
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

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var link models.NoteTaskLink

	if err := db.DB.Joins("JOIN notes ON notes.id = note_task_links.note_id").
		Joins("JOIN courses ON courses.id = notes.course_id").
		Where("note_task_links.note_id = ? AND note_task_links.task_id = ? AND courses.user_id = ?", noteID, taskID, userID).
		First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve link"})
		}
		return
	}

	if err := db.DB.Delete(&link).Error; err != nil {
		log.Printf("Failed to delete link: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlink task"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
