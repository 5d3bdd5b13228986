package dao

import (
	"Margin/models"
	"context"

	"gorm.io/gorm"
)

type LiveSessionDAO struct {
	Repo[models.LiveSession]
}

func NewLiveSessionDAO(db *gorm.DB) *LiveSessionDAO {
	return &LiveSessionDAO{Repo: NewRepo[models.LiveSession](db)}
}

func (d *LiveSessionDAO) ListByNoteID(ctx context.Context, noteID uint64) ([]*models.LiveSession, error) {
	return d.FindAll(ctx, "note_id = ?", noteID)
}

func (d *LiveSessionDAO) DeleteByID(ctx context.Context, id uint64) error {
	return d.Conn(ctx).Where("id = ?", id).Delete(&models.LiveSession{}).Error
}

func (d *LiveSessionDAO) DeleteByNoteID(ctx context.Context, noteID uint64) (int64, error) {
	return d.DeleteWhere(ctx, "note_id = ?", noteID)
}
