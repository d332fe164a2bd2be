package models

import "time"

// BaseModel is embedded by every entity. Unlike gorm.Model it carries JSON
// tags and no soft-delete column, so deletes are real row deletes and the
// database-level cascade constraints fire.
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
