package models

import (
	"Margin/pkg/encrypt"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Username  string    `gorm:"column:username;type:varchar(64);uniqueIndex;not null" json:"username" validate:"required,min=2,max=50,username"`
	Email     string    `gorm:"column:email;type:varchar(255);not null;default:''" json:"email" validate:"omitempty,email"`
	Password  string    `gorm:"column:password;type:varchar(255);not null;default:''" json:"-" validate:"required"`
	Enabled   bool      `gorm:"column:enabled;not null;default:false" json:"enabled"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// BeforeSave 明文密码在落库前统一做 bcrypt，已是密文的（从库里读出再保存）跳过
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Password == "" || encrypt.IsHashed(u.Password) {
		return nil
	}
	hashed, err := encrypt.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return nil
}
