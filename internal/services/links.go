package services

import (
	"github.com/studyhelper-dev/studyhelper/db"
	"github.com/studyhelper-dev/studyhelper/internal/models"
)

// LinkedNoteCounts returns how many notes each of the given tasks is linked
// to, in a single grouped query. Tasks with no links are absent from the map.
func LinkedNoteCounts(taskIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(taskIDs))

	if len(taskIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		TaskID uint
		Count  int64
	}

	err := db.DB.Model(&models.NoteTaskLink{}).
		Select("task_id, COUNT(*) as count").
		Where("task_id IN ?", taskIDs).
		Group("task_id").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.TaskID] = row.Count
	}

	return counts, nil
}

// LinkedTaskIDs returns the linked task IDs for each of the given notes,
// ordered by task ID. Notes with no links are absent from the map.
func LinkedTaskIDs(noteIDs []uint) (map[uint][]uint, error) {
	links := make(map[uint][]uint, len(noteIDs))

	if len(noteIDs) == 0 {
		return links, nil
	}

	var rows []models.NoteTaskLink

	err := db.DB.
		Where("note_id IN ?", noteIDs).
		Order("task_id ASC").
		Find(&rows).Error

	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		links[row.NoteID] = append(links[row.NoteID], row.TaskID)
	}

	return links, nil
}
