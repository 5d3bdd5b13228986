package models

import "time"

// Bookmark 收藏记录。(note_id, user_id) 只建普通索引，唯一性不在这一层保证
type Bookmark struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	NoteID    uint64    `gorm:"column:note_id;not null;index:idx_note_user,priority:1" json:"note_id"`
	UserID    uint64    `gorm:"column:user_id;not null;index:idx_note_user,priority:2;index" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Bookmark) TableName() string { return "bookmarks" }
