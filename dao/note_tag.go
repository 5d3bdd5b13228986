package dao

import (
	"Margin/models"
	"context"

	"gorm.io/gorm"
)

type NoteTagDAO struct {
	Repo[models.NoteTag]
}

func NewNoteTagDAO(db *gorm.DB) *NoteTagDAO {
	return &NoteTagDAO{Repo: NewRepo[models.NoteTag](db)}
}

// BatchCreate 为笔记批量挂标签
func (d *NoteTagDAO) BatchCreate(ctx context.Context, noteID uint64, tagIDs []uint64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]*models.NoteTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, &models.NoteTag{NoteID: noteID, TagID: tagID})
	}
	return d.Conn(ctx).Create(&rows).Error
}

func (d *NoteTagDAO) DeleteByNoteID(ctx context.Context, noteID uint64) (int64, error) {
	return d.DeleteWhere(ctx, "note_id = ?", noteID)
}

// ListTagsByNoteID 笔记关联的全部标签
func (d *NoteTagDAO) ListTagsByNoteID(ctx context.Context, noteID uint64) ([]*models.Tag, error) {
	tags := make([]*models.Tag, 0)
	err := d.Conn(ctx).
		Model(&models.Tag{}).
		Joins("INNER JOIN note_tags ON note_tags.tag_id = tags.id").
		Where("note_tags.note_id = ?", noteID).
		Order("note_tags.id ASC").
		Find(&tags).Error
	return tags, err
}
