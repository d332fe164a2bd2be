package models

type Course struct {
	BaseModel

	UserID      uint   `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Description string
	Color       string `gorm:"not null;default:'#3B82F6'"` // Hex display color
	IsArchived  bool   `gorm:"not null;default:false"`

	// Relationships
	User  User   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Notes []Note `gorm:"foreignKey:CourseID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tasks []Task `gorm:"foreignKey:CourseID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
