package models

// Role 角色，Authority 形如 ROLE_USER / ROLE_ADMIN
type Role struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Authority string `gorm:"column:authority;type:varchar(64);uniqueIndex;not null" json:"authority"`
}

func (Role) TableName() string {
	return "roles"
}

type UserRole struct {
	ID     uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID uint64 `gorm:"column:user_id;not null;index" json:"user_id"`
	RoleID uint64 `gorm:"column:role_id;not null;index" json:"role_id"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
