package dao

import (
	"Margin/models"
	"context"
	"strings"

	"gorm.io/gorm"
)

type Users struct {
	Repo[models.User]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repo: NewRepo[models.User](db),
	}
}

// FindByUsername 用户名查询，不存在返回 gorm.ErrRecordNotFound
func (u *Users) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return u.Repo.FindByWhere(ctx, "username = ?", username)
}

// FindIDsByUsernames 批量把用户名解析为 ID，忽略大小写匹配，key 是库里的用户名
func (u *Users) FindIDsByUsernames(ctx context.Context, usernames []string) (map[string]uint64, error) {
	result := make(map[string]uint64, len(usernames))
	if len(usernames) == 0 {
		return result, nil
	}

	lowered := make([]string, 0, len(usernames))
	for _, name := range usernames {
		lowered = append(lowered, strings.ToLower(name))
	}

	var rows []struct {
		ID       uint64
		Username string
	}
	err := u.Model(ctx).
		Select("id", "username").
		Where("LOWER(username) IN ?", lowered).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.Username] = row.ID
	}
	return result, nil
}

// IsUsernameExist 判断用户名是否已被占用
func (u *Users) IsUsernameExist(ctx context.Context, username string) (bool, error) {
	return u.Repo.IsExist(ctx, "username = ?", username)
}

// UpdateEnabled 只更新 enabled 字段
func (u *Users) UpdateEnabled(ctx context.Context, userID uint64, enabled bool) error {
	return u.Model(ctx).Where("id = ?", userID).Update("enabled", enabled).Error
}
