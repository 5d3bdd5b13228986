package models

import "time"

// Tag 标签，首次被笔记引用时创建
type Tag struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(64);uniqueIndex:idx_tags_name;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Tag) TableName() string {
	return "tags"
}

// NoteTag 笔记与标签的中间表
type NoteTag struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	NoteID    uint64    `gorm:"column:note_id;not null;index" json:"note_id"`
	TagID     uint64    `gorm:"column:tag_id;not null;index" json:"tag_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (NoteTag) TableName() string {
	return "note_tags"
}
