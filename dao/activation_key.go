package dao

import (
	"Margin/models"
	"context"

	"gorm.io/gorm"
)

type ActivationKeyDAO struct {
	Repo[models.ActivationKey]
}

func NewActivationKeyDAO(db *gorm.DB) *ActivationKeyDAO {
	return &ActivationKeyDAO{Repo: NewRepo[models.ActivationKey](db)}
}

// FindByCode 不存在返回 nil
func (d *ActivationKeyDAO) FindByCode(ctx context.Context, code string) (*models.ActivationKey, error) {
	return d.FindOneOrNil(ctx, "code = ?", code)
}

// Consume 删除激活码，返回是否真的删掉了一行
func (d *ActivationKeyDAO) Consume(ctx context.Context, key *models.ActivationKey) (bool, error) {
	n, err := d.DeleteWhere(ctx, "id = ? AND user_id = ?", key.ID, key.UserID)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
