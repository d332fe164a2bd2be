package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func parseIDParam(ctx *gin.Context, name string, missing string, invalid string) (uint, error) {
	idStr := ctx.Param(name)

	if idStr == "" {
		return 0, errors.New(missing)
	}

	id, err := strconv.ParseUint(idStr, 10, 32)

	if err != nil {
		return 0, errors.New(invalid)
	}

	return uint(id), nil
}

func GetCourseID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "course_id", "Course ID not found", "Invalid Course ID")
}

func GetNoteID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "note_id", "Note ID not found", "Invalid Note ID")
}

func GetTaskID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "task_id", "Task ID not found", "Invalid Task ID")
}
