package dao

import (
	"Margin/models"
	"context"

	"gorm.io/gorm"
)

type NoteMentionDAO struct {
	Repo[models.NoteMention]
}

func NewNoteMentionDAO(db *gorm.DB) *NoteMentionDAO {
	return &NoteMentionDAO{Repo: NewRepo[models.NoteMention](db)}
}

func (d *NoteMentionDAO) BatchCreate(ctx context.Context, noteID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]*models.NoteMention, 0, len(userIDs))
	for _, userID := range userIDs {
		rows = append(rows, &models.NoteMention{NoteID: noteID, UserID: userID})
	}
	return d.Conn(ctx).Create(&rows).Error
}

func (d *NoteMentionDAO) DeleteByNoteID(ctx context.Context, noteID uint64) (int64, error) {
	return d.DeleteWhere(ctx, "note_id = ?", noteID)
}

func (d *NoteMentionDAO) ListByNoteID(ctx context.Context, noteID uint64) ([]*models.NoteMention, error) {
	return d.FindAll(ctx, "note_id = ?", noteID)
}
