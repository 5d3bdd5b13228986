package models

import "time"

// ActivationKey 邮箱验证用的一次性激活码，绑定一个未启用的用户
type ActivationKey struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;index" json:"user_id"`
	Code      string    `gorm:"column:code;type:varchar(64);uniqueIndex;not null" json:"code"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ActivationKey) TableName() string {
	return "activation_keys"
}
