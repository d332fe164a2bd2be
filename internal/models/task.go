package models

import "time"

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	StatusPending   = "pending"
	StatusCompleted = "completed"
)

type Task struct {
	BaseModel

	CourseID    uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	DueDate     *time.Time `gorm:"index"`
	Priority    string     `gorm:"not null;default:'medium'"`
	Status      string     `gorm:"not null;default:'pending'"`
	CompletedAt *time.Time // Set iff Status is completed

	// Relationships
	Course    Course         `gorm:"foreignKey:CourseID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	NoteLinks []NoteTaskLink `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
