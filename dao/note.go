package dao

import (
	"Margin/models"
	"Margin/types"
	"context"

	"gorm.io/gorm"
)

type NoteDAO struct {
	Repo[models.Note]
}

func NewNoteDAO(db *gorm.DB) *NoteDAO {
	return &NoteDAO{Repo: NewRepo[models.Note](db)}
}

// NoteFilter 笔记列表的查询条件
// ContextID 为空时 FragmentTagID 不生效；AuthorID / BookmarkedBy 之间是 OR
type NoteFilter struct {
	ContextID     *uint64
	FragmentTagID *uint64
	AuthorID      *uint64
	BookmarkedBy  *uint64
}

// DetachChildren 把子笔记的 parent_note_id 置空
func (d *NoteDAO) DetachChildren(ctx context.Context, parentID uint64) (int64, error) {
	result := d.Model(ctx).
		Where("parent_note_id = ?", parentID).
		Update("parent_note_id", nil)
	return result.RowsAffected, result.Error
}

// DeleteByID 删除笔记本身
func (d *NoteDAO) DeleteByID(ctx context.Context, noteID uint64) error {
	return d.Conn(ctx).Where("id = ?", noteID).Delete(&models.Note{}).Error
}

// ListByContext 某个讨论下的全部笔记，可按片段标签过滤
func (d *NoteDAO) ListByContext(ctx context.Context, contextID uint64, fragmentTagID *uint64, page types.PageRequest) ([]*models.Note, int64, error) {
	query := d.Model(ctx).Where("notes.context_id = ?", contextID)
	if fragmentTagID != nil {
		query = query.Where("notes.fragment_tag_id = ?", *fragmentTagID)
	}
	return d.paginate(query, page)
}

// ListByFilter 按作者 / 收藏人查询，二者为 OR
func (d *NoteDAO) ListByFilter(ctx context.Context, filter NoteFilter, page types.PageRequest) ([]*models.Note, int64, error) {
	query := d.Model(ctx)
	if filter.ContextID != nil {
		query = query.Where("notes.context_id = ?", *filter.ContextID)
		if filter.FragmentTagID != nil {
			query = query.Where("notes.fragment_tag_id = ?", *filter.FragmentTagID)
		}
	}

	var owner *gorm.DB
	if filter.AuthorID != nil {
		owner = d.Conn(ctx).Where("notes.author_id = ?", *filter.AuthorID)
	}
	if filter.BookmarkedBy != nil {
		favorites := d.Conn(ctx).Model(&models.Bookmark{}).
			Select("note_id").
			Where("user_id = ?", *filter.BookmarkedBy)
		if owner == nil {
			owner = d.Conn(ctx).Where("notes.id IN (?)", favorites)
		} else {
			owner = owner.Or("notes.id IN (?)", favorites)
		}
	}
	if owner != nil {
		query = query.Where(owner)
	}

	return d.paginate(query, page)
}

func (d *NoteDAO) paginate(query *gorm.DB, page types.PageRequest) ([]*models.Note, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	notes := make([]*models.Note, 0)
	if total == 0 {
		return notes, 0, nil
	}

	err := query.
		Order(page.OrderBy("notes")).
		Limit(page.Limit()).
		Offset(page.Offset()).
		Find(&notes).Error
	return notes, total, err
}
