package models

import (
	"time"
)

// Note 笔记：挂在某个讨论 (Context) 下的一段带 #tag / @mention 的短文本
type Note struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	AuthorID      uint64    `gorm:"column:author_id;not null;index:idx_author_created,priority:1" json:"author_id"`
	Content       string    `gorm:"column:content;type:text;not null" json:"content"`
	ContextID     *uint64   `gorm:"column:context_id;index:idx_context_fragment,priority:1" json:"context_id,omitempty"`
	FragmentTagID *uint64   `gorm:"column:fragment_tag_id;index:idx_context_fragment,priority:2" json:"fragment_tag_id,omitempty"`
	ParentNoteID  *uint64   `gorm:"column:parent_note_id;index" json:"parent_note_id,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;index:idx_author_created,priority:2" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (n Note) TableName() string {
	return "notes"
}

// IsAuthoredBy 是否为该用户所写
func (n *Note) IsAuthoredBy(user *User) bool {
	return user != nil && n.AuthorID == user.ID
}
