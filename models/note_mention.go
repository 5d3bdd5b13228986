package models

import "time"

// NoteMention 笔记中 @ 到的用户
type NoteMention struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	NoteID    uint64    `gorm:"column:note_id;not null;index" json:"note_id"`
	UserID    uint64    `gorm:"column:user_id;not null;index" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (NoteMention) TableName() string {
	return "note_mentions"
}
