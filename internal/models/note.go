package models

type Note struct {
	BaseModel

	CourseID uint   `gorm:"not null;index"`
	Title    string `gorm:"not null"`
	Content  string // Markdown
	Tags     string // Comma-separated

	// Relationships
	Course    Course         `gorm:"foreignKey:CourseID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	TaskLinks []NoteTaskLink `gorm:"foreignKey:NoteID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
