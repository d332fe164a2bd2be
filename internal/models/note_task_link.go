package models

// NoteTaskLink associates notes and tasks many-to-many. The composite primary
// key keeps a pair unique; cascades run per side, so deleting a note removes
// its links but never the linked task, and vice versa.
type NoteTaskLink struct {
	NoteID uint `gorm:"primaryKey;autoIncrement:false"`
	TaskID uint `gorm:"primaryKey;autoIncrement:false"`

	// Relationships
	Note Note `gorm:"foreignKey:NoteID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Task Task `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
