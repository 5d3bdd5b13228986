package dao

import (
	"Margin/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoleDAO struct {
	Repo[models.Role]
}

func NewRoleDAO(db *gorm.DB) *RoleDAO {
	return &RoleDAO{Repo: NewRepo[models.Role](db)}
}

// FindOrCreate 按 authority 获取角色，不存在则创建
func (d *RoleDAO) FindOrCreate(ctx context.Context, authority string) (*models.Role, error) {
	err := d.Conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "authority"}},
		DoNothing: true,
	}).Create(&models.Role{Authority: authority}).Error
	if err != nil {
		return nil, err
	}
	return d.FindByWhere(ctx, "authority = ?", authority)
}

type UserRoleDAO struct {
	Repo[models.UserRole]
}

func NewUserRoleDAO(db *gorm.DB) *UserRoleDAO {
	return &UserRoleDAO{Repo: NewRepo[models.UserRole](db)}
}

func (d *UserRoleDAO) Assign(ctx context.Context, userID, roleID uint64) error {
	return d.Create(ctx, &models.UserRole{UserID: userID, RoleID: roleID})
}

func (d *UserRoleDAO) HasRole(ctx context.Context, userID, roleID uint64) (bool, error) {
	return d.IsExist(ctx, "user_id = ? AND role_id = ?", userID, roleID)
}

// HasAuthority 按角色名判断
func (d *UserRoleDAO) HasAuthority(ctx context.Context, userID uint64, authority string) (bool, error) {
	var count int64
	err := d.Model(ctx).
		Joins("INNER JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ? AND roles.authority = ?", userID, authority).
		Count(&count).Error
	return count > 0, err
}

func (d *UserRoleDAO) DeleteByUserID(ctx context.Context, userID uint64) (int64, error) {
	return d.DeleteWhere(ctx, "user_id = ?", userID)
}

// ListAuthorities 用户拥有的全部角色名
func (d *UserRoleDAO) ListAuthorities(ctx context.Context, userID uint64) ([]string, error) {
	authorities := make([]string, 0)
	err := d.Model(ctx).
		Joins("INNER JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ?", userID).
		Order("roles.authority").
		Pluck("roles.authority", &authorities).Error
	return authorities, err
}
