package models

import (
	"time"

	"gorm.io/datatypes"
)

// 结束的会话直接删除，不保留状态
const LiveSessionStatusActive int8 = 1

// LiveSession 基于某条笔记的实时会话，只能由笔记作者发起
type LiveSession struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	NoteID    uint64         `gorm:"column:note_id;not null;index" json:"note_id"`
	AuthorID  uint64         `gorm:"column:author_id;not null;index" json:"author_id"`
	Status    int8           `gorm:"column:status;not null;default:1" json:"status"`
	Metadata  datatypes.JSON `gorm:"column:metadata;type:json" json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (LiveSession) TableName() string {
	return "live_sessions"
}
