package models

import "time"

// Context 讨论上下文，笔记挂在它下面
type Context struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Title       string    `gorm:"column:title;type:varchar(255);not null;default:''" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Context) TableName() string {
	return "contexts"
}
