package dao

import (
	"Margin/models"
	"context"

	"gorm.io/gorm"
)

type BookmarkDAO struct {
	Repo[models.Bookmark]
}

func NewBookmarkDAO(db *gorm.DB) *BookmarkDAO {
	return &BookmarkDAO{Repo: NewRepo[models.Bookmark](db)}
}

// GetByNoteUser 查询指定用户对指定笔记的收藏，不存在返回 nil
func (d *BookmarkDAO) GetByNoteUser(ctx context.Context, noteID uint64, userID uint64) (*models.Bookmark, error) {
	return d.FindOneOrNil(ctx, "note_id = ? AND user_id = ?", noteID, userID)
}

func (d *BookmarkDAO) Delete(ctx context.Context, bookmark *models.Bookmark) error {
	return d.Conn(ctx).Delete(bookmark).Error
}

func (d *BookmarkDAO) DeleteByNoteID(ctx context.Context, noteID uint64) (int64, error) {
	return d.DeleteWhere(ctx, "note_id = ?", noteID)
}

// IsBookmarked 用户是否收藏了该笔记
func (d *BookmarkDAO) IsBookmarked(ctx context.Context, noteID uint64, userID uint64) (bool, error) {
	return d.IsExist(ctx, "note_id = ? AND user_id = ?", noteID, userID)
}
